package cmd

import (
	"fmt"
	"strconv"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagListMonth string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded expenses",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&flagListMonth, "month", "", "Only rows for this month (YYYY-MM)")
}

func runList(_ *cobra.Command, _ []string) error {
	led, _, err := openLedger()
	if err != nil {
		return err
	}

	rows, err := led.Expenses()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("\n  No expenses recorded yet. Run `bling add` to record one.")
		return nil
	}

	title := "EXPENSES"
	if flagListMonth != "" {
		title = fmt.Sprintf("EXPENSES  %s", flagListMonth)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	// Row numbers are the handles that edit/delete take, so a month filter
	// keeps each row's position in the full table.
	var total float64
	tableRows := make([][]string, 0, len(rows))
	for i, r := range rows {
		if flagListMonth != "" {
			key, ok := pipeline.MonthKey(r.Date)
			if !ok {
				key = pipeline.CurrentMonth()
			}
			if key != flagListMonth {
				continue
			}
		}
		total += pipeline.NormalizeAmount(r.Amount)
		tableRows = append(tableRows, []string{
			strconv.Itoa(i),
			r.Date,
			r.Category,
			r.Amount,
			cli.Truncate(r.Note, 32),
		})
	}

	if len(tableRows) == 0 {
		fmt.Printf("  No expenses found for %s\n", flagListMonth)
		return nil
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Date", "Category", "Amount", "Note"},
		Rows:    tableRows,
	}))

	symbol := led.Preferences().CurrencySymbol
	fmt.Printf("  %s, %s total\n\n",
		cli.FormatCount(len(tableRows), "row"),
		cli.FormatMoney(symbol, total))

	return nil
}
