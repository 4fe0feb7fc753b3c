// Package ledger reads and writes the flat-file record store: the expense
// and income tables plus the preferences record. Every read re-parses the
// backing files and every mutation rewrites the affected file whole, so a
// write is visible to the next read with nothing cached in between.
package ledger

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/avikothari/bling/internal/model"
)

// File names inside the data directory, byte-compatible with the historical
// layout so existing data files keep working unchanged.
const (
	ExpenseFile    = "expenses.csv"
	IncomeFile     = "income.csv"
	PreferenceFile = "preferences.json"
)

var (
	expenseHeader = []string{"Date", "Category", "Amount", "Note"}
	incomeHeader  = []string{"Month", "Income"}
)

// ErrRowUnavailable reports an edit or delete aimed at a positional index
// that no longer exists, e.g. because the file shrank since display time.
var ErrRowUnavailable = errors.New("row unavailable")

// Ledger is the one collaborator that touches the data files. It keeps no
// row cache; the mutex only serializes concurrent UI goroutines within this
// process. External edits are not detected and the next rewrite wins.
type Ledger struct {
	mu  sync.Mutex
	dir string
}

// New returns a Ledger rooted at dir, creating the directory if needed.
func New(dir string) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Ledger{dir: dir}, nil
}

// DefaultDir returns the platform data directory for bling.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "bling")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "bling")
}

// Dir returns the data directory this ledger operates on.
func (l *Ledger) Dir() string { return l.dir }

// ExpensesPath returns the full path of the expenses table.
func (l *Ledger) ExpensesPath() string { return filepath.Join(l.dir, ExpenseFile) }

// IncomePath returns the full path of the income table.
func (l *Ledger) IncomePath() string { return filepath.Join(l.dir, IncomeFile) }

// PreferencesPath returns the full path of the preferences record.
func (l *Ledger) PreferencesPath() string { return filepath.Join(l.dir, PreferenceFile) }

// ─── Expenses ───

// Expenses parses the expense table in file order. The file is created with
// its header on first touch. Fields are whitespace-trimmed; a missing
// amount cell reads as "0".
func (l *Ledger) Expenses() ([]model.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readExpenses()
}

// AppendExpense adds one row at the end of the expense table.
func (l *Ledger) AppendExpense(e model.Expense) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	path := l.ExpensesPath()
	if err := ensureCSV(path, expenseHeader); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", ExpenseFile, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{e.Date, e.Category, e.Amount, e.Note}); err != nil {
		f.Close()
		return fmt.Errorf("appending expense: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("appending expense: %w", err)
	}
	return f.Close()
}

// UpdateExpense replaces the row at index i, rewriting the whole table.
// An index outside the current row range returns ErrRowUnavailable with
// no write performed.
func (l *Ledger) UpdateExpense(i int, e model.Expense) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.readExpenses()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(rows) {
		return ErrRowUnavailable
	}
	rows[i] = e
	return l.writeExpenses(rows)
}

// DeleteExpense removes the row at index i, preserving the order of the
// remaining rows.
func (l *Ledger) DeleteExpense(i int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.readExpenses()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(rows) {
		return ErrRowUnavailable
	}
	rows = append(rows[:i], rows[i+1:]...)
	return l.writeExpenses(rows)
}

func (l *Ledger) readExpenses() ([]model.Expense, error) {
	path := l.ExpensesPath()
	if err := ensureCSV(path, expenseHeader); err != nil {
		return nil, err
	}
	records, err := readAll(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ExpenseFile, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	col := headerIndex(records[0])
	rows := make([]model.Expense, 0, len(records)-1)
	for _, rec := range records[1:] {
		amount := field(rec, column(col, "Amount"))
		if amount == "" {
			amount = "0"
		}
		rows = append(rows, model.Expense{
			Date:     strings.TrimSpace(field(rec, column(col, "Date"))),
			Category: strings.TrimSpace(field(rec, column(col, "Category"))),
			Amount:   strings.TrimSpace(amount),
			Note:     strings.TrimSpace(field(rec, column(col, "Note"))),
		})
	}
	return rows, nil
}

func (l *Ledger) writeExpenses(rows []model.Expense) error {
	f, err := os.Create(l.ExpensesPath())
	if err != nil {
		return fmt.Errorf("rewriting %s: %w", ExpenseFile, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(expenseHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range rows {
		if err := w.Write([]string{e.Date, e.Category, e.Amount, e.Note}); err != nil {
			f.Close()
			return fmt.Errorf("writing expense row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("rewriting %s: %w", ExpenseFile, err)
	}
	return f.Close()
}

// ─── Incomes ───

type incomeEntry struct {
	month  string
	amount float64
}

// Incomes returns the month to income mapping. An income cell that fails
// to parse degrades to 0 for that month rather than failing the read.
func (l *Ledger) Incomes() (map[string]float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.readIncomeEntries()
	if err != nil {
		return nil, err
	}
	incomes := make(map[string]float64, len(entries))
	for _, en := range entries {
		incomes[en.month] = en.amount
	}
	return incomes, nil
}

// SetIncome records the income figure for one month, overwriting any prior
// value while keeping the month's original position in the file.
func (l *Ledger) SetIncome(month string, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.readIncomeEntries()
	if err != nil {
		return err
	}
	found := false
	for i := range entries {
		if entries[i].month == month {
			entries[i].amount = amount
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, incomeEntry{month: month, amount: amount})
	}
	return l.writeIncomeEntries(entries)
}

func (l *Ledger) readIncomeEntries() ([]incomeEntry, error) {
	path := l.IncomePath()
	if err := ensureCSV(path, incomeHeader); err != nil {
		return nil, err
	}
	records, err := readAll(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", IncomeFile, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	col := headerIndex(records[0])
	var entries []incomeEntry
	pos := make(map[string]int)
	for _, rec := range records[1:] {
		m := strings.TrimSpace(field(rec, column(col, "Month")))
		raw := field(rec, column(col, "Income"))
		if raw == "" {
			raw = "0"
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			v = 0
		}
		// Duplicate months keep their first position, last value.
		if i, ok := pos[m]; ok {
			entries[i].amount = v
			continue
		}
		pos[m] = len(entries)
		entries = append(entries, incomeEntry{month: m, amount: v})
	}
	return entries, nil
}

func (l *Ledger) writeIncomeEntries(entries []incomeEntry) error {
	f, err := os.Create(l.IncomePath())
	if err != nil {
		return fmt.Errorf("rewriting %s: %w", IncomeFile, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(incomeHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, en := range entries {
		if err := w.Write([]string{en.month, fmt.Sprintf("%.2f", en.amount)}); err != nil {
			f.Close()
			return fmt.Errorf("writing income row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("rewriting %s: %w", IncomeFile, err)
	}
	return f.Close()
}

// ─── Preferences ───

// Preferences never fails: a missing file is created with defaults, an
// unreadable or corrupt one falls back to defaults without blocking
// startup. A blank currency symbol also falls back to the default.
func (l *Ledger) Preferences() model.Preferences {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.PreferencesPath())
	if errors.Is(err, os.ErrNotExist) {
		prefs := model.DefaultPreferences()
		_ = l.writePreferences(prefs)
		return prefs
	}
	if err != nil {
		return model.DefaultPreferences()
	}
	var prefs model.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return model.DefaultPreferences()
	}
	if strings.TrimSpace(prefs.CurrencySymbol) == "" {
		prefs.CurrencySymbol = model.DefaultCurrencySymbol
	}
	return prefs
}

// SavePreferences persists the preference record as indented JSON.
func (l *Ledger) SavePreferences(p model.Preferences) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writePreferences(p)
}

func (l *Ledger) writePreferences(p model.Preferences) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := os.WriteFile(l.PreferencesPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", PreferenceFile, err)
	}
	return nil
}

// ─── CSV helpers ───

func ensureCSV(path string, header []string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", filepath.Base(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	return f.Close()
}

func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func column(idx map[string]int, name string) int {
	if i, ok := idx[name]; ok {
		return i
	}
	return -1
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
