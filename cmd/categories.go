package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagCategoriesTop int

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "All-time top spending categories",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().IntVar(&flagCategoriesTop, "top", 10, "How many categories to show")
}

func runCategories(_ *cobra.Command, _ []string) error {
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

	top := pipeline.TopCategories(rows, flagCategoriesTop)
	if len(top) == 0 {
		fmt.Println("\n  No category data yet.")
		return nil
	}

	var total float64
	for _, r := range rows {
		total += pipeline.NormalizeAmount(r.Amount)
	}
	symbol := led.Preferences().CurrencySymbol

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TOP CATEGORIES  All time, top %d", len(top))))
	fmt.Println()

	maxTotal := top[0].Total
	tableRows := make([][]string, 0, len(top)+2)
	for i, ct := range top {
		share := ""
		if total > 0 {
			share = cli.FormatPercent(ct.Total / total)
		}
		tableRows = append(tableRows, []string{
			strconv.Itoa(i + 1),
			ct.Category,
			cli.FormatMoney(symbol, ct.Total),
			categoryBar(ct.Total, maxTotal, 20),
			share,
		})
	}
	tableRows = append(tableRows, []string{"---"})
	tableRows = append(tableRows, []string{"", "TOTAL", cli.FormatMoney(symbol, total), "", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Category", "Amount", "Bar", "Share"},
		Rows:    tableRows,
	}))

	return nil
}

func categoryBar(value, maxValue float64, width int) string {
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
	return cli.Good(strings.Repeat("█", barLen))
}
