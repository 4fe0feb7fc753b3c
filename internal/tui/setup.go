package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/avikothari/bling/internal/model"

	"github.com/charmbracelet/huh"
)

// setupValues collects the first-run form answers. The form binds pointers
// into this struct, so it must stay heap-shared across model copies.
type setupValues struct {
	currency string
	budget   string
}

// newSetupForm builds the first-run preferences form. It only appears when
// neither a preferences file nor any expense rows exist yet.
func newSetupForm(vals *setupValues) *huh.Form {
	if vals.currency == "" {
		vals.currency = model.DefaultCurrencySymbol
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Currency symbol").
				Description("Prefixes every stored amount").
				Options(huh.NewOptions(model.CurrencyOptions...)...).
				Value(&vals.currency),
			huh.NewInput().
				Title("Default monthly budget").
				Description("Leave 0 to skip budgeting").
				Placeholder("0").
				Validate(validateBudget).
				Value(&vals.budget),
		),
	)
}

func validateBudget(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// applySetup persists the collected answers as the preference record.
func (a *App) applySetup() error {
	prefs := model.Preferences{
		CurrencySymbol:       strings.TrimSpace(a.setupVals.currency),
		DefaultMonthlyBudget: parseFloatOrZero(a.setupVals.budget),
	}
	if prefs.CurrencySymbol == "" {
		prefs.CurrencySymbol = model.DefaultCurrencySymbol
	}
	return a.led.SavePreferences(prefs)
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
