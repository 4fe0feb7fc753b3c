package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/ledger"

	"github.com/spf13/cobra"
)

var flagDeleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <row>",
	Short: "Delete an expense by row number",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&flagDeleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(_ *cobra.Command, args []string) error {
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
	if !flagDeleteYes {
		fmt.Printf("  Delete this expense? This action cannot be undone.\n")
		fmt.Printf("    %s  %s  %s\n", row.Date, row.Category, row.Amount)
		fmt.Print("  [y/N] > ")

		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("  Kept.")
			return nil
		}
	}

	if err := led.DeleteExpense(idx); err != nil {
		if errors.Is(err, ledger.ErrRowUnavailable) {
			fmt.Printf("  %s\n", cli.Bad("Row unavailable."))
			return nil
		}
		return err
	}

	fmt.Printf("  %s\n", cli.Good("Deleted."))
	return nil
}
