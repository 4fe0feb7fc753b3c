package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/avikothari/bling/internal/model"
	"github.com/avikothari/bling/internal/pipeline"
)

const (
	sheetExpenses   = "Expenses"
	sheetCategories = "Categories"
)

// Excel writes a two-sheet workbook: the raw expense rows with a summary
// block, and the per-category breakdown. An empty month selects all rows.
// Amount text on the Expenses sheet is preserved as stored; the Categories
// sheet carries parsed numbers.
func (e Exporter) Excel(all []model.Expense, incomes map[string]float64, month, outPath string) (Result, error) {
	rows := all
	income := 0.0
	if month != "" {
		rows = pipeline.RowsForMonth(all, month)
		income = incomes[month]
	} else {
		for _, v := range incomes {
			income += v
		}
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrNoExpenses, monthLabel(month))
	}

	var expenditure float64
	for _, r := range rows {
		expenditure += pipeline.NormalizeAmount(r.Amount)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetExpenses)
	if _, err := f.NewSheet(sheetCategories); err != nil {
		return Result{}, fmt.Errorf("creating sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"3AA99F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return Result{}, fmt.Errorf("building styles: %w", err)
	}
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})
	percentStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 10})
	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	boldMoneyStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})

	e.fillExpenseSheet(f, rows, income, expenditure, headerStyle, moneyStyle, boldStyle)
	e.fillCategorySheet(f, rows, expenditure, headerStyle, moneyStyle, percentStyle, boldStyle, boldMoneyStyle)

	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return Result{}, fmt.Errorf("creating reports dir: %w", err)
	}
	if err := f.SaveAs(outPath); err != nil {
		return Result{}, fmt.Errorf("writing workbook: %w", err)
	}

	return Result{Format: "xlsx", Paths: []string{outPath}}, nil
}

func (e Exporter) fillExpenseSheet(f *excelize.File, rows []model.Expense, income, expenditure float64, headerStyle, moneyStyle, boldStyle int) {
	headers := []string{"Date", "Category", "Amount", "Note"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetExpenses, cell, h)
	}
	f.SetCellStyle(sheetExpenses, "A1", "D1", headerStyle)
	f.SetColWidth(sheetExpenses, "A", "A", 12)
	f.SetColWidth(sheetExpenses, "B", "B", 18)
	f.SetColWidth(sheetExpenses, "C", "C", 14)
	f.SetColWidth(sheetExpenses, "D", "D", 40)

	r := 2
	for _, row := range rows {
		f.SetCellValue(sheetExpenses, fmt.Sprintf("A%d", r), row.Date)
		f.SetCellValue(sheetExpenses, fmt.Sprintf("B%d", r), row.Category)
		f.SetCellValue(sheetExpenses, fmt.Sprintf("C%d", r), row.Amount)
		f.SetCellValue(sheetExpenses, fmt.Sprintf("D%d", r), row.Note)
		r++
	}

	r++
	labels := []struct {
		name  string
		value float64
	}{
		{"Income", income},
		{"Expenditure", expenditure},
		{"Balance", income - expenditure},
	}
	for _, l := range labels {
		f.SetCellValue(sheetExpenses, fmt.Sprintf("A%d", r), l.name)
		f.SetCellValue(sheetExpenses, fmt.Sprintf("B%d", r), l.value)
		f.SetCellStyle(sheetExpenses, fmt.Sprintf("A%d", r), fmt.Sprintf("A%d", r), boldStyle)
		f.SetCellStyle(sheetExpenses, fmt.Sprintf("B%d", r), fmt.Sprintf("B%d", r), moneyStyle)
		r++
	}
}

func (e Exporter) fillCategorySheet(f *excelize.File, rows []model.Expense, total float64, headerStyle, moneyStyle, percentStyle, boldStyle, boldMoneyStyle int) {
	headers := []string{"Rank", "Category", "Amount", "Share"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetCategories, cell, h)
	}
	f.SetCellStyle(sheetCategories, "A1", "D1", headerStyle)
	f.SetColWidth(sheetCategories, "B", "B", 18)
	f.SetColWidth(sheetCategories, "C", "C", 14)

	cats := pipeline.TopCategories(rows, -1)
	r := 2
	for i, ct := range cats {
		share := 0.0
		if total > 0 {
			share = ct.Total / total
		}
		f.SetCellValue(sheetCategories, fmt.Sprintf("A%d", r), i+1)
		f.SetCellValue(sheetCategories, fmt.Sprintf("B%d", r), ct.Category)
		f.SetCellValue(sheetCategories, fmt.Sprintf("C%d", r), ct.Total)
		f.SetCellValue(sheetCategories, fmt.Sprintf("D%d", r), share)
		f.SetCellStyle(sheetCategories, fmt.Sprintf("C%d", r), fmt.Sprintf("C%d", r), moneyStyle)
		f.SetCellStyle(sheetCategories, fmt.Sprintf("D%d", r), fmt.Sprintf("D%d", r), percentStyle)
		r++
	}

	f.SetCellValue(sheetCategories, fmt.Sprintf("B%d", r), "Total")
	f.SetCellValue(sheetCategories, fmt.Sprintf("C%d", r), total)
	f.SetCellStyle(sheetCategories, fmt.Sprintf("B%d", r), fmt.Sprintf("B%d", r), boldStyle)
	f.SetCellStyle(sheetCategories, fmt.Sprintf("C%d", r), fmt.Sprintf("C%d", r), boldMoneyStyle)
}

func monthLabel(month string) string {
	if month == "" {
		return "all months"
	}
	return month
}
