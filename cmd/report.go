package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avikothari/bling/internal/chart"
	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/ledger"
	"github.com/avikothari/bling/internal/pipeline"
	"github.com/avikothari/bling/internal/report"
	"github.com/avikothari/bling/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagReportMonth string
	flagReportOut   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the monthly report",
	Long:  "Write a PDF report with the category-share chart for one month. Without a usable TTF font the chart PNG and a CSV extract are written instead.",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&flagReportMonth, "month", "", "Month to report on (YYYY-MM, default current)")
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "Output path for the PDF")
}

func runReport(_ *cobra.Command, _ []string) error {
	led, cfg, err := openLedger()
	if err != nil {
		return err
	}

	month := flagReportMonth
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

	outPath := flagReportOut
	if outPath == "" {
		outPath = filepath.Join(cfg.ReportsPath(led.Dir()), fmt.Sprintf("report-%s.pdf", month))
	}

	exp := report.Exporter{
		Currency: led.Preferences().CurrencySymbol,
		FontPath: cfg.FontPath,
		ChartSize: chart.Size{
			Width:  cfg.ChartWidth,
			Height: cfg.ChartHeight,
		},
	}

	res, err := exp.Month(rows, incomes, month, outPath)
	if err != nil {
		if errors.Is(err, report.ErrNoExpenses) {
			fmt.Printf("  No expenses found for %s\n", month)
			return nil
		}
		return err
	}

	recordExport(led, month, res)

	if res.Degraded {
		fmt.Printf("  %s\n", cli.Warn("PDF unavailable, wrote PNG and CSV instead"))
		fmt.Printf("  %s\n", cli.Muted(res.Reason))
	}
	for _, p := range res.Paths {
		fmt.Printf("  %s %s\n", cli.Good("Wrote"), p)
	}

	return nil
}

// recordExport notes the export in the history store. History problems
// never fail an export that already produced its files.
func recordExport(led *ledger.Ledger, month string, res report.Result) {
	if len(res.Paths) == 0 {
		return
	}
	hist, err := store.Open(store.Path(led.Dir()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "  history unavailable: %v\n", err)
		return
	}
	defer hist.Close()

	if err := hist.Record(month, res.Format, res.Paths[0]); err != nil {
		fmt.Fprintf(os.Stderr, "  history not updated: %v\n", err)
	}
}
