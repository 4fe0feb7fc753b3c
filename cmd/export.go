package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/avikothari/bling/internal/chart"
	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/pipeline"
	"github.com/avikothari/bling/internal/report"

	"github.com/spf13/cobra"
)

var (
	flagExcelMonth string
	flagExcelOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export expense data",
}

var exportExcelCmd = &cobra.Command{
	Use:   "excel",
	Short: "Write an Excel workbook of expenses and categories",
	RunE:  runExportExcel,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportExcelCmd)

	exportExcelCmd.Flags().StringVar(&flagExcelMonth, "month", "", "Only this month (YYYY-MM, default all)")
	exportExcelCmd.Flags().StringVarP(&flagExcelOut, "out", "o", "", "Output path for the workbook")
}

func runExportExcel(_ *cobra.Command, _ []string) error {
	led, cfg, err := openLedger()
	if err != nil {
		return err
	}

	month := flagExcelMonth
	if month != "" {
		key, ok := pipeline.MonthKey(month)
		if !ok {
			return fmt.Errorf("month %q is not a month, use YYYY-MM", month)
		}
		month = key
	}

	rows, err := led.Expenses()
	if err != nil {
		return err
	}
	incomes, err := led.Incomes()
	if err != nil {
		return err
	}

	outPath := flagExcelOut
	if outPath == "" {
		name := "expenses-all.xlsx"
		if month != "" {
			name = fmt.Sprintf("expenses-%s.xlsx", month)
		}
		outPath = filepath.Join(cfg.ReportsPath(led.Dir()), name)
	}

	exp := report.Exporter{
		Currency: led.Preferences().CurrencySymbol,
		ChartSize: chart.Size{
			Width:  cfg.ChartWidth,
			Height: cfg.ChartHeight,
		},
	}

	res, err := exp.Excel(rows, incomes, month, outPath)
	if err != nil {
		if errors.Is(err, report.ErrNoExpenses) {
			if month == "" {
				fmt.Println("  No expenses recorded yet.")
			} else {
				fmt.Printf("  No expenses found for %s\n", month)
			}
			return nil
		}
		return err
	}

	recordExport(led, month, res)

	fmt.Printf("  %s %s\n", cli.Good("Wrote"), res.Paths[0])
	return nil
}
