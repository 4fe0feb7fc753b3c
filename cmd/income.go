package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/pipeline"

	"github.com/spf13/cobra"
)

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Manage monthly income figures",
}

var incomeSetCmd = &cobra.Command{
	Use:   "set <month> <amount>",
	Short: "Set the income for a month",
	Args:  cobra.ExactArgs(2),
	RunE:  runIncomeSet,
}

var incomeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded incomes by month",
	RunE:  runIncomeList,
}

func init() {
	rootCmd.AddCommand(incomeCmd)
	incomeCmd.AddCommand(incomeSetCmd, incomeListCmd)
}

func runIncomeSet(_ *cobra.Command, args []string) error {
	month, ok := pipeline.MonthKey(args[0])
	if !ok {
		return fmt.Errorf("month %q is not a month, use YYYY-MM", args[0])
	}

	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("amount %q must be a number", args[1])
	}
	if amount < 0 {
		return errors.New("amount must be zero or more")
	}

	led, _, err := openLedger()
	if err != nil {
		return err
	}
	if err := led.SetIncome(month, amount); err != nil {
		return err
	}

	symbol := led.Preferences().CurrencySymbol
	fmt.Printf("  %s\n", cli.Good(fmt.Sprintf("Income for %s saved: %s", month, cli.FormatMoney(symbol, amount))))
	return nil
}

func runIncomeList(_ *cobra.Command, _ []string) error {
	led, _, err := openLedger()
	if err != nil {
		return err
	}

	incomes, err := led.Incomes()
	if err != nil {
		return err
	}
	if len(incomes) == 0 {
		fmt.Println("\n  No income recorded yet. Run `bling income set 2025-08 52000`.")
		return nil
	}

	months := make([]string, 0, len(incomes))
	for m := range incomes {
		months = append(months, m)
	}
	sort.Strings(months)

	symbol := led.Preferences().CurrencySymbol
	rows := make([][]string, 0, len(months))
	var total float64
	for _, m := range months {
		total += incomes[m]
		rows = append(rows, []string{m, cli.FormatMonth(m), cli.FormatMoney(symbol, incomes[m])})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", "", cli.FormatMoney(symbol, total)})

	fmt.Println()
	fmt.Println(cli.RenderTitle("INCOME BY MONTH"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Label", "Income"},
		Rows:    rows,
	}))

	return nil
}
