package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/model"
	"github.com/avikothari/bling/internal/pipeline"

	"github.com/charmbracelet/huh"
)

// modalKind discriminates which record form is on screen.
type modalKind int

const (
	modalAdd modalKind = iota
	modalEdit
	modalIncome
	modalDelete
	modalPrefs
)

// modalState holds the active form and its bound values. It is held by
// pointer in App so the huh bindings survive bubbletea's model copies.
type modalState struct {
	kind modalKind
	form *huh.Form

	// Absolute expense index for edit and delete.
	rowIdx int

	// Expense form fields
	date     string
	category string
	amount   string
	note     string
	currency string

	// Income form fields
	month        string
	incomeAmount string

	// Delete confirmation
	confirmDelete bool

	// Preferences form fields
	prefCurrency string
	prefBudget   string
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validateDate(s string) error {
	if _, ok := pipeline.MonthKey(strings.TrimSpace(s)); !ok {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validateMonth(s string) error {
	if _, ok := pipeline.MonthKey(strings.TrimSpace(s)); !ok {
		return errors.New("use YYYY-MM")
	}
	return nil
}

// newAddModal builds the add-expense form. The amount is typed as a plain
// number and stored with the preferred currency symbol prefixed.
func newAddModal(currency string) *modalState {
	m := &modalState{
		kind:     modalAdd,
		date:     time.Now().Format("2006-01-02"),
		currency: currency,
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Validate(validateDate).
				Value(&m.date),
			huh.NewInput().
				Title("Category").
				Placeholder("Food, Rent, Travel...").
				Validate(validateRequired).
				Value(&m.category),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Validate(validateAmount).
				Value(&m.amount),
			huh.NewSelect[string]().
				Title("Currency").
				Options(huh.NewOptions(model.CurrencyOptions...)...).
				Value(&m.currency),
			huh.NewInput().
				Title("Note").
				Placeholder("optional").
				Value(&m.note),
		),
	)
	return m
}

// newEditModal builds the edit form prefilled with the current row. Fields
// only have to be non-empty; the amount text is stored exactly as typed so
// an existing symbol prefix survives untouched.
func newEditModal(rowIdx int, e model.Expense) *modalState {
	m := &modalState{
		kind:     modalEdit,
		rowIdx:   rowIdx,
		date:     e.Date,
		category: e.Category,
		amount:   e.Amount,
		note:     e.Note,
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Validate(validateRequired).
				Value(&m.date),
			huh.NewInput().
				Title("Category").
				Validate(validateRequired).
				Value(&m.category),
			huh.NewInput().
				Title("Amount").
				Validate(validateRequired).
				Value(&m.amount),
			huh.NewInput().
				Title("Note").
				Value(&m.note),
		),
	)
	return m
}

// newIncomeModal builds the set-income form for one month.
func newIncomeModal(month string) *modalState {
	m := &modalState{
		kind:  modalIncome,
		month: month,
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Month").
				Placeholder("YYYY-MM").
				Validate(validateMonth).
				Value(&m.month),
			huh.NewInput().
				Title("Income").
				Placeholder("0.00").
				Validate(validateAmount).
				Value(&m.incomeAmount),
		),
	)
	return m
}

// newDeleteModal builds the delete confirmation for one row.
func newDeleteModal(rowIdx int, e model.Expense) *modalState {
	m := &modalState{
		kind:   modalDelete,
		rowIdx: rowIdx,
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this expense? This action cannot be undone.").
				Description(fmt.Sprintf("%s · %s · %s", e.Date, e.Category, e.Amount)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.confirmDelete),
		),
	)
	return m
}

// newPrefsModal builds the preferences form prefilled from the record.
func newPrefsModal(prefs model.Preferences) *modalState {
	m := &modalState{
		kind:         modalPrefs,
		prefCurrency: prefs.CurrencySymbol,
		prefBudget:   strconv.FormatFloat(prefs.DefaultMonthlyBudget, 'f', -1, 64),
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Currency symbol").
				Options(huh.NewOptions(model.CurrencyOptions...)...).
				Value(&m.prefCurrency),
			huh.NewInput().
				Title("Default monthly budget").
				Validate(validateBudget).
				Value(&m.prefBudget),
		),
	)
	return m
}

// applyModal performs the mutation the completed form described and returns
// the status notice. Callers broadcast a refresh on nil error.
func (a *App) applyModal(m *modalState) (string, error) {
	switch m.kind {
	case modalAdd:
		amt := parseFloatOrZero(m.amount)
		e := model.Expense{
			Date:     strings.TrimSpace(m.date),
			Category: strings.TrimSpace(m.category),
			Amount:   cli.FormatMoney(m.currency, amt),
			Note:     strings.TrimSpace(m.note),
		}
		if err := a.led.AppendExpense(e); err != nil {
			return "", err
		}
		return "Expense added", nil

	case modalEdit:
		e := model.Expense{
			Date:     strings.TrimSpace(m.date),
			Category: strings.TrimSpace(m.category),
			Amount:   strings.TrimSpace(m.amount),
			Note:     strings.TrimSpace(m.note),
		}
		if err := a.led.UpdateExpense(m.rowIdx, e); err != nil {
			return "", err
		}
		return "Expense updated", nil

	case modalIncome:
		key, _ := pipeline.MonthKey(strings.TrimSpace(m.month))
		if err := a.led.SetIncome(key, parseFloatOrZero(m.incomeAmount)); err != nil {
			return "", err
		}
		return fmt.Sprintf("Income set for %s", key), nil

	case modalDelete:
		if !m.confirmDelete {
			return "", nil
		}
		if err := a.led.DeleteExpense(m.rowIdx); err != nil {
			return "", err
		}
		return "Expense deleted", nil

	case modalPrefs:
		prefs := model.Preferences{
			CurrencySymbol:       strings.TrimSpace(m.prefCurrency),
			DefaultMonthlyBudget: parseFloatOrZero(m.prefBudget),
		}
		if prefs.CurrencySymbol == "" {
			prefs.CurrencySymbol = model.DefaultCurrencySymbol
		}
		if err := a.led.SavePreferences(prefs); err != nil {
			return "", err
		}
		return "Preferences saved", nil
	}
	return "", nil
}
