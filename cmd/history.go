package cmd

import (
	"fmt"
	"strconv"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/store"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past report and workbook exports",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "How many exports to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	led, _, err := openLedger()
	if err != nil {
		return err
	}

	hist, err := store.Open(store.Path(led.Dir()))
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer hist.Close()

	exports, err := hist.Recent(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(exports) == 0 {
		fmt.Println("\n  No exports recorded yet. Run `bling report` to create one.")
		return nil
	}

	rows := make([][]string, 0, len(exports))
	for _, e := range exports {
		month := e.Month
		if month == "" {
			month = "all"
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			month,
			e.Format,
			cli.Truncate(e.Path, 48),
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("EXPORT HISTORY"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "When", "Month", "Format", "Path"},
		Rows:    rows,
	}))

	total, err := hist.Count()
	if err == nil && total > len(exports) {
		fmt.Printf("  %s\n\n", cli.Muted(fmt.Sprintf("Showing %d of %d exports", len(exports), total)))
	}

	return nil
}
