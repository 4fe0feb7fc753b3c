package cmd

import (
	"fmt"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/pipeline"
	"github.com/avikothari/bling/internal/suggest"

	"github.com/spf13/cobra"
)

var flagSummaryMonth string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Income, spending and balance for a month",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVar(&flagSummaryMonth, "month", "", "Month to summarize (YYYY-MM, default current)")
}

func runSummary(_ *cobra.Command, _ []string) error {
	led, _, err := openLedger()
	if err != nil {
		return err
	}

	month := flagSummaryMonth
	if month == "" {
		month = pipeline.CurrentMonth()
	} else if key, ok := pipeline.MonthKey(month); ok {
		month = key
	} else {
		return fmt.Errorf("month %q is not a month, use YYYY-MM", month)
	}

	rows, err := led.Expenses()
	if err != nil {
		return err
	}
	incomes, err := led.Incomes()
	if err != nil {
		return err
	}

	prefs := led.Preferences()
	symbol := prefs.CurrencySymbol
	sum := suggest.Summarize(rows, incomes, month)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SUMMARY  %s", cli.FormatMonth(month))))
	fmt.Println()

	if sum.NoIncome && sum.Expenditure == 0 {
		fmt.Printf("  No expenses found for %s\n\n", month)
		return nil
	}

	tableRows := [][]string{
		{"Income", cli.FormatMoney(symbol, sum.Income)},
		{"Expenditure", cli.FormatMoney(symbol, sum.Expenditure)},
		{"Balance", cli.FormatMoney(symbol, sum.Balance)},
	}
	if prefs.DefaultMonthlyBudget > 0 {
		used := ""
		if sum.Expenditure > 0 {
			used = fmt.Sprintf("%s (%.0f%% used)",
				cli.FormatMoney(symbol, prefs.DefaultMonthlyBudget),
				sum.Expenditure/prefs.DefaultMonthlyBudget*100)
		} else {
			used = cli.FormatMoney(symbol, prefs.DefaultMonthlyBudget)
		}
		tableRows = append(tableRows, []string{"Budget", used})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    tableRows,
	}))

	switch {
	case sum.NoIncome:
		fmt.Printf("  %s\n", cli.Warn("No income recorded for this month"))
	case sum.Overspend > 0:
		fmt.Printf("  %s\n", cli.Bad(fmt.Sprintf("Overspent by %s", cli.FormatMoney(symbol, sum.Overspend))))
	case sum.CanSave:
		fmt.Printf("  %s\n", cli.Good(fmt.Sprintf("You could set aside %s this month", cli.FormatMoney(symbol, sum.Balance))))
	default:
		fmt.Printf("  %s\n", cli.Muted("Spending is close to income this month"))
	}

	if len(sum.TopCategories) > 0 {
		maxTotal := sum.TopCategories[0].Total
		fmt.Println()
		fmt.Println("  Where it went")
		for _, ct := range sum.TopCategories {
			fmt.Printf("%s %s\n",
				cli.RenderHorizontalBar(cli.Truncate(ct.Category, 16), ct.Total, maxTotal, 24),
				cli.FormatMoney(symbol, ct.Total))
		}
	}
	fmt.Println()

	return nil
}
