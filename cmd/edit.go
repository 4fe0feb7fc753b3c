package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/ledger"
	"github.com/avikothari/bling/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagEditDate     string
	flagEditCategory string
	flagEditAmount   string
	flagEditNote     string
)

var editCmd = &cobra.Command{
	Use:   "edit <row>",
	Short: "Edit an expense by row number",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&flagEditDate, "date", "", "New date, YYYY-MM-DD")
	editCmd.Flags().StringVarP(&flagEditCategory, "category", "c", "", "New category")
	editCmd.Flags().StringVarP(&flagEditAmount, "amount", "a", "", "New amount text (symbol allowed)")
	editCmd.Flags().StringVarP(&flagEditNote, "note", "m", "", "New note")
}

func runEdit(cmd *cobra.Command, args []string) error {
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("row %q must be a number from `bling list`", args[0])
	}

	led, _, err := openLedger()
	if err != nil {
		return err
	}
	rows, err := led.Expenses()
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(rows) {
		fmt.Printf("  %s\n", cli.Bad("Row unavailable."))
		return nil
	}

	row := rows[idx]
	if cmd.Flags().Changed("date") {
		row.Date = strings.TrimSpace(flagEditDate)
	}
	if cmd.Flags().Changed("category") {
		row.Category = strings.TrimSpace(flagEditCategory)
	}
	if cmd.Flags().Changed("amount") {
		row.Amount = strings.TrimSpace(flagEditAmount)
	}
	if cmd.Flags().Changed("note") {
		row.Note = strings.TrimSpace(flagEditNote)
	}

	if row.Date == "" || row.Category == "" || row.Amount == "" {
		return errors.New("date, category and amount must stay non-empty")
	}
	if _, ok := pipeline.MonthKey(row.Date); !ok {
		return fmt.Errorf("date %q is not a date, use YYYY-MM-DD", row.Date)
	}

	if err := led.UpdateExpense(idx, row); err != nil {
		if errors.Is(err, ledger.ErrRowUnavailable) {
			fmt.Printf("  %s\n", cli.Bad("Row unavailable."))
			return nil
		}
		return err
	}

	fmt.Printf("  %s\n", cli.Good(fmt.Sprintf("Expense updated: %s  %s  %s", row.Date, row.Category, row.Amount)))
	return nil
}
