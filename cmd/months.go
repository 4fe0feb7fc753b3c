package cmd

import (
	"fmt"
	"strings"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/pipeline"

	"github.com/spf13/cobra"
)

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "Income vs spending by month",
	RunE:  runMonths,
}

func init() {
	rootCmd.AddCommand(monthsCmd)
}

func runMonths(_ *cobra.Command, _ []string) error {
	led, _, err := openLedger()
	if err != nil {
		return err
	}

	rows, err := led.Expenses()
	if err != nil {
		return err
	}
	incomes, err := led.Incomes()
	if err != nil {
		return err
	}
	if len(rows) == 0 && len(incomes) == 0 {
		fmt.Println("\n  Nothing recorded yet. Run `bling add` or `bling income set`.")
		return nil
	}

	flows := pipeline.MonthFlows(rows, incomes, pipeline.CurrentMonth())

	var maxFlow float64
	for _, f := range flows {
		maxFlow = max(maxFlow, f.Income, f.Expenditure)
	}

	symbol := led.Preferences().CurrencySymbol

	fmt.Println()
	fmt.Println(cli.RenderTitle("CASH FLOW BY MONTH"))
	fmt.Println()

	for _, f := range flows {
		fmt.Printf("  %s  %s %s  %s\n",
			cli.PadLabel(cli.FormatMonth(f.Month), 8),
			cli.Muted("in "),
			flowBar(f.Income, maxFlow, 28, cli.Good),
			cli.FormatMoney(symbol, f.Income))
		fmt.Printf("  %s  %s %s  %s\n",
			strings.Repeat(" ", 8),
			cli.Muted("out"),
			flowBar(f.Expenditure, maxFlow, 28, cli.Warn),
			cli.FormatMoney(symbol, f.Expenditure))
	}
	fmt.Println()

	return nil
}

// flowBar scales one value against the largest flow so the two bars of a
// month stay comparable across the whole listing.
func flowBar(value, maxValue float64, width int, style func(string) string) string {
	barLen := 0
	if maxValue > 0 {
		barLen = int(value / maxValue * float64(width))
	}
	if value > 0 && barLen == 0 {
		barLen = 1
	}
	if barLen > width {
		barLen = width
	}
	return style(strings.Repeat("█", barLen)) + strings.Repeat(" ", width-barLen)
}
