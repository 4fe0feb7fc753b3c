package ledger

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/avikothari/bling/internal/model"
)

func newLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func writeRaw(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestExpensesCreatesFileWithHeader(t *testing.T) {
	l := newLedger(t)

	rows, err := l.Expenses()
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}

	data, err := os.ReadFile(l.ExpensesPath())
	if err != nil {
		t.Fatalf("reading created file: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "Date,Category,Amount,Note" {
		t.Errorf("header = %q, want %q", got, "Date,Category,Amount,Note")
	}
}

func TestAppendAndReadRoundTrip(t *testing.T) {
	l := newLedger(t)

	want := []model.Expense{
		{Date: "2025-08-01", Category: "Food", Amount: "₹250.00", Note: "lunch"},
		{Date: "2025-08-02", Category: "Travel", Amount: "$12.50", Note: "bus, then metro"},
		{Date: "2025-08-03", Category: "", Amount: "AED99.99", Note: ""},
	}
	for _, e := range want {
		if err := l.AppendExpense(e); err != nil {
			t.Fatalf("AppendExpense: %v", err)
		}
	}

	got, err := l.Expenses()
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExpensesTrimsAndDefaultsAmount(t *testing.T) {
	l := newLedger(t)
	writeRaw(t, l.ExpensesPath(),
		"Date,Category,Amount,Note\n"+
			" 2025-08-01 , Food ,,  milk \n"+
			"2025-08-02,Rent\n")

	rows, err := l.Expenses()
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Date != "2025-08-01" || rows[0].Category != "Food" || rows[0].Note != "milk" {
		t.Errorf("row 0 not trimmed: %+v", rows[0])
	}
	if rows[0].Amount != "0" {
		t.Errorf("empty amount = %q, want %q", rows[0].Amount, "0")
	}
	if rows[1].Amount != "0" {
		t.Errorf("short row amount = %q, want %q", rows[1].Amount, "0")
	}
}

func TestUpdateExpense(t *testing.T) {
	l := newLedger(t)
	for _, e := range []model.Expense{
		{Date: "2025-08-01", Category: "Food", Amount: "₹100.00"},
		{Date: "2025-08-02", Category: "Food", Amount: "₹200.00"},
	} {
		if err := l.AppendExpense(e); err != nil {
			t.Fatalf("AppendExpense: %v", err)
		}
	}

	edited := model.Expense{Date: "2025-08-02", Category: "Rent", Amount: "₹5000", Note: "edited"}
	if err := l.UpdateExpense(1, edited); err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}

	rows, err := l.Expenses()
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	if rows[1] != edited {
		t.Errorf("row 1 = %+v, want %+v", rows[1], edited)
	}
	if rows[0].Amount != "₹100.00" {
		t.Errorf("row 0 disturbed: %+v", rows[0])
	}

	if err := l.UpdateExpense(5, edited); !errors.Is(err, ErrRowUnavailable) {
		t.Errorf("out-of-range update err = %v, want ErrRowUnavailable", err)
	}
	if err := l.UpdateExpense(-1, edited); !errors.Is(err, ErrRowUnavailable) {
		t.Errorf("negative index err = %v, want ErrRowUnavailable", err)
	}
}

func TestDeleteExpensePreservesOrder(t *testing.T) {
	l := newLedger(t)
	for _, cat := range []string{"a", "b", "c", "d"} {
		if err := l.AppendExpense(model.Expense{Date: "2025-08-01", Category: cat, Amount: "₹1.00"}); err != nil {
			t.Fatalf("AppendExpense: %v", err)
		}
	}

	if err := l.DeleteExpense(1); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}

	rows, err := l.Expenses()
	if err != nil {
		t.Fatalf("Expenses: %v", err)
	}
	var cats []string
	for _, r := range rows {
		cats = append(cats, r.Category)
	}
	if got := strings.Join(cats, ","); got != "a,c,d" {
		t.Errorf("order after delete = %q, want %q", got, "a,c,d")
	}

	if err := l.DeleteExpense(99); !errors.Is(err, ErrRowUnavailable) {
		t.Errorf("out-of-range delete err = %v, want ErrRowUnavailable", err)
	}
}

func TestIncomesParseDegradation(t *testing.T) {
	l := newLedger(t)
	writeRaw(t, l.IncomePath(),
		"Month,Income\n2025-07,52000.00\n2025-08,not-a-number\n")

	incomes, err := l.Incomes()
	if err != nil {
		t.Fatalf("Incomes: %v", err)
	}
	if incomes["2025-07"] != 52000 {
		t.Errorf("2025-07 = %v, want 52000", incomes["2025-07"])
	}
	if incomes["2025-08"] != 0 {
		t.Errorf("bad value = %v, want 0", incomes["2025-08"])
	}
}

func TestSetIncomeOverwritesKeepingPosition(t *testing.T) {
	l := newLedger(t)
	steps := []struct {
		month  string
		amount float64
	}{
		{"2025-06", 40000},
		{"2025-07", 45000},
		{"2025-06", 41000},
	}
	for _, s := range steps {
		if err := l.SetIncome(s.month, s.amount); err != nil {
			t.Fatalf("SetIncome(%s): %v", s.month, err)
		}
	}

	data, err := os.ReadFile(l.IncomePath())
	if err != nil {
		t.Fatalf("reading income file: %v", err)
	}
	want := "Month,Income\n2025-06,41000.00\n2025-07,45000.00\n"
	if string(data) != want {
		t.Errorf("income file = %q, want %q", string(data), want)
	}
}

func TestPreferencesDefaults(t *testing.T) {
	t.Run("missing file creates defaults", func(t *testing.T) {
		l := newLedger(t)
		p := l.Preferences()
		if p.CurrencySymbol != "₹" || p.DefaultMonthlyBudget != 0 {
			t.Errorf("defaults = %+v", p)
		}
		if _, err := os.Stat(l.PreferencesPath()); err != nil {
			t.Errorf("preferences file not created: %v", err)
		}
	})

	t.Run("corrupt file degrades", func(t *testing.T) {
		l := newLedger(t)
		writeRaw(t, l.PreferencesPath(), "{not json")
		p := l.Preferences()
		if p.CurrencySymbol != "₹" {
			t.Errorf("symbol = %q, want ₹", p.CurrencySymbol)
		}
	})

	t.Run("blank symbol falls back", func(t *testing.T) {
		l := newLedger(t)
		writeRaw(t, l.PreferencesPath(), `{"currency_symbol": " ", "default_monthly_budget": 750}`)
		p := l.Preferences()
		if p.CurrencySymbol != "₹" {
			t.Errorf("symbol = %q, want ₹", p.CurrencySymbol)
		}
		if p.DefaultMonthlyBudget != 750 {
			t.Errorf("budget = %v, want 750", p.DefaultMonthlyBudget)
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	l := newLedger(t)
	want := model.Preferences{CurrencySymbol: "$", DefaultMonthlyBudget: 1200.5}
	if err := l.SavePreferences(want); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	if got := l.Preferences(); got != want {
		t.Errorf("Preferences = %+v, want %+v", got, want)
	}
}
