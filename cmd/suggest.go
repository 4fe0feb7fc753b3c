package cmd

import (
	"fmt"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/pipeline"
	"github.com/avikothari/bling/internal/suggest"

	"github.com/spf13/cobra"
)

var flagSuggestMonth string

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Spending advice for a month",
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().StringVar(&flagSuggestMonth, "month", "", "Month to review (YYYY-MM, default current)")
}

func runSuggest(_ *cobra.Command, _ []string) error {
	led, _, err := openLedger()
	if err != nil {
		return err
	}

	month := flagSuggestMonth
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

	symbol := led.Preferences().CurrencySymbol
	sum := suggest.Summarize(rows, incomes, month)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ADVICE  %s", cli.FormatMonth(month))))
	fmt.Println()

	switch {
	case sum.NoIncome && sum.Expenditure == 0:
		fmt.Printf("  No expenses found for %s\n", month)
	case sum.NoIncome:
		fmt.Printf("  %s\n", cli.Warn("No income recorded for this month"))
		fmt.Printf("  Spent so far: %s\n", cli.FormatMoney(symbol, sum.Expenditure))
	case sum.Overspend > 0:
		fmt.Printf("  %s\n", cli.Bad(fmt.Sprintf("Overspent by %s", cli.FormatMoney(symbol, sum.Overspend))))
	case sum.CanSave:
		fmt.Printf("  %s\n", cli.Good(fmt.Sprintf("You could set aside %s this month", cli.FormatMoney(symbol, sum.Balance))))
	default:
		fmt.Printf("  %s\n", cli.Muted("Spending is close to income this month"))
	}

	if len(sum.TopCategories) > 0 {
		fmt.Println()
		fmt.Println("  Where it went")
		for i, ct := range sum.TopCategories {
			fmt.Printf("    %d. %s: %s\n", i+1, ct.Category, cli.FormatMoney(symbol, ct.Total))
		}
	}

	fmt.Println()
	fmt.Println("  Quick actions")
	for _, tip := range suggest.Tips() {
		fmt.Printf("    • %s\n", tip)
	}
	fmt.Println()

	return nil
}
