package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/config"
	"github.com/avikothari/bling/internal/model"
	"github.com/avikothari/bling/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	led, cfg, err := openLedger()
	if err != nil {
		return err
	}
	prefs := led.Preferences()

	currency := prefs.CurrencySymbol
	budget := ""
	if prefs.DefaultMonthlyBudget > 0 {
		budget = strconv.FormatFloat(prefs.DefaultMonthlyBudget, 'f', -1, 64)
	}
	themeName := cfg.Theme

	themeNames := make([]string, 0, len(theme.All))
	for _, t := range theme.All {
		themeNames = append(themeNames, t.Name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Currency symbol").
				Description("Prefixes every stored amount.").
				Options(huh.NewOptions(model.CurrencyOptions...)...).
				Value(&currency),
			huh.NewInput().
				Title("Monthly budget").
				Description("Plain number, leave empty for none.").
				Validate(validateSetupBudget).
				Value(&budget),
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(themeNames...)...).
				Value(&themeName),
		),
	)

	fmt.Println()
	fmt.Println("  Welcome to bling!")
	fmt.Println()

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup aborted: %w", err)
	}

	prefs.CurrencySymbol = currency
	prefs.DefaultMonthlyBudget = 0
	if b := strings.TrimSpace(budget); b != "" {
		v, err := strconv.ParseFloat(b, 64)
		if err == nil && v > 0 {
			prefs.DefaultMonthlyBudget = v
		}
	}
	if err := led.SavePreferences(prefs); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}

	cfg.Theme = themeName
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  %s\n", cli.Good("Preferences saved"))
	fmt.Printf("  Data in %s, config in %s\n", led.Dir(), config.ConfigPath())
	fmt.Println("  Run `bling setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func validateSetupBudget(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("enter a plain number")
	}
	if v < 0 {
		return errors.New("must be zero or more")
	}
	return nil
}
