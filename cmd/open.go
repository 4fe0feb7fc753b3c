package cmd

import (
	"fmt"
	"os"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/ledger"
	"github.com/avikothari/bling/internal/sysopen"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the expenses file with the system handler",
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(_ *cobra.Command, _ []string) error {
	led, _, err := openLedger()
	if err != nil {
		return err
	}

	path := led.ExpensesPath()
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("  %s\n", cli.Warn(fmt.Sprintf(
			"File '%s' not found. Add at least one expense to create it.", ledger.ExpenseFile)))
		return nil
	}

	if err := sysopen.Open(path); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	fmt.Printf("  %s\n", cli.Muted("Opened "+path))
	return nil
}
