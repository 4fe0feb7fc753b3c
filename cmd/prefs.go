package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagPrefsCurrency string
	flagPrefsBudget   float64
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or update preferences",
	RunE:  runPrefs,
}

func init() {
	rootCmd.AddCommand(prefsCmd)

	prefsCmd.Flags().StringVar(&flagPrefsCurrency, "currency", "", "Currency symbol for new expenses")
	prefsCmd.Flags().Float64Var(&flagPrefsBudget, "budget", 0, "Default monthly budget (0 clears it)")
}

func runPrefs(cmd *cobra.Command, _ []string) error {
	led, _, err := openLedger()
	if err != nil {
		return err
	}
	prefs := led.Preferences()

	changed := false
	if cmd.Flags().Changed("currency") {
		symbol := strings.TrimSpace(flagPrefsCurrency)
		if !slices.Contains(model.CurrencyOptions, symbol) {
			return fmt.Errorf("currency %q is not one of %s", symbol, strings.Join(model.CurrencyOptions, " "))
		}
		prefs.CurrencySymbol = symbol
		changed = true
	}
	if cmd.Flags().Changed("budget") {
		if flagPrefsBudget < 0 {
			return errors.New("budget must be zero or more")
		}
		prefs.DefaultMonthlyBudget = flagPrefsBudget
		changed = true
	}

	if changed {
		if err := led.SavePreferences(prefs); err != nil {
			return err
		}
		fmt.Printf("  %s\n", cli.Good("Preferences saved."))
		return nil
	}

	budget := "not set"
	if prefs.DefaultMonthlyBudget > 0 {
		budget = cli.FormatMoney(prefs.CurrencySymbol, prefs.DefaultMonthlyBudget)
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Preferences",
		Headers: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Currency symbol", prefs.CurrencySymbol},
			{"Monthly budget", budget},
			{"File", led.PreferencesPath()},
		},
	}))

	return nil
}
