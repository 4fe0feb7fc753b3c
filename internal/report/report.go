// Package report builds monthly export artifacts: a PDF report when a TTF
// font is available, a PNG+CSV pair otherwise, and Excel workbooks.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/signintech/gopdf"

	"github.com/avikothari/bling/internal/chart"
	"github.com/avikothari/bling/internal/model"
	"github.com/avikothari/bling/internal/pipeline"
)

// ErrNoExpenses reports that the selected month has no matching rows, so
// there is nothing to export.
var ErrNoExpenses = errors.New("no expenses for month")

// errFontLoad marks a discovered font that gopdf could not embed. It routes
// the export to the fallback path instead of failing outright.
var errFontLoad = errors.New("font unusable")

const reportFont = "report"

// Exporter builds monthly report artifacts.
type Exporter struct {
	Currency  string
	FontPath  string // optional TTF override; empty probes the system
	ChartSize chart.Size
}

// Result describes what an export produced.
type Result struct {
	Format   string // "pdf", "png+csv" or "xlsx"
	Paths    []string
	Degraded bool
	Reason   string // why the fallback was taken, empty otherwise
}

// Month exports the report for one month to outPath (a .pdf target). Rows
// are matched strictly on the month key; expenditure is summed over the
// matched rows only. With no usable font the chart PNG and a CSV extract
// land next to the intended PDF path instead.
func (e Exporter) Month(all []model.Expense, incomes map[string]float64, month, outPath string) (Result, error) {
	rows := pipeline.RowsForMonth(all, month)
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrNoExpenses, month)
	}

	var expenditure float64
	for _, r := range rows {
		expenditure += pipeline.NormalizeAmount(r.Amount)
	}
	income := incomes[month]
	top := pipeline.TopCategories(rows, 10)

	var pie bytes.Buffer
	title := fmt.Sprintf("Category share — %s", month)
	if err := chart.Pie(&pie, title, pipeline.PieBreakdown(rows), e.ChartSize); err != nil {
		return Result{}, fmt.Errorf("rendering chart: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return Result{}, fmt.Errorf("creating reports dir: %w", err)
	}

	fontPath, ferr := FindFont(e.FontPath)
	if ferr == nil {
		err := e.writePDF(outPath, month, income, expenditure, top, pie.Bytes(), fontPath)
		if err == nil {
			return Result{Format: "pdf", Paths: []string{outPath}}, nil
		}
		if !errors.Is(err, errFontLoad) {
			return Result{}, err
		}
		ferr = err
	}

	return e.writeFallback(outPath, rows, pie.Bytes(), ferr)
}

func (e Exporter) writePDF(path, month string, income, expenditure float64, top []model.CategoryTotal, pie []byte, fontPath string) error {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := pdf.AddTTFFont(reportFont, fontPath); err != nil {
		return fmt.Errorf("%w: %s: %v", errFontLoad, fontPath, err)
	}

	text := func(x, y float64, s string) {
		pdf.SetX(x)
		pdf.SetY(y)
		pdf.Cell(nil, s)
	}

	if err := pdf.SetFont(reportFont, "", 16); err != nil {
		return fmt.Errorf("%w: %s: %v", errFontLoad, fontPath, err)
	}
	pdf.SetTextColor(16, 15, 15)
	text(40, 40, fmt.Sprintf("Monthly Expense Report — %s", month))

	pdf.SetFont(reportFont, "", 11)
	text(40, 75, fmt.Sprintf("Income: %s%.2f", e.Currency, income))
	text(200, 75, fmt.Sprintf("Expenditure: %s%.2f", e.Currency, expenditure))

	img, err := gopdf.ImageHolderByBytes(pie)
	if err != nil {
		return fmt.Errorf("embedding chart: %w", err)
	}
	if err := pdf.ImageByHolder(img, 40, 100, &gopdf.Rect{W: 515, H: 343}); err != nil {
		return fmt.Errorf("embedding chart: %w", err)
	}

	pdf.SetFont(reportFont, "", 12)
	text(40, 470, "Top expenses:")

	pdf.SetFont(reportFont, "", 11)
	y := 495.0
	for i, ct := range top {
		text(50, y, fmt.Sprintf("%d. %s: %s%.2f", i+1, ct.Category, e.Currency, ct.Total))
		y += 20
	}

	if err := pdf.WritePdf(path); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// writeFallback places the chart PNG and a CSV extract next to the
// intended PDF path. Amount text is preserved byte for byte.
func (e Exporter) writeFallback(pdfPath string, rows []model.Expense, pie []byte, cause error) (Result, error) {
	base := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))
	pngPath := base + ".png"
	csvPath := base + ".csv"

	if err := os.WriteFile(pngPath, pie, 0o644); err != nil {
		return Result{}, fmt.Errorf("writing chart image: %w", err)
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return Result{}, fmt.Errorf("writing csv extract: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Category", "Amount", "Note"}); err != nil {
		return Result{}, fmt.Errorf("writing csv extract: %w", err)
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Date, r.Category, r.Amount, r.Note}); err != nil {
			return Result{}, fmt.Errorf("writing csv extract: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Result{}, fmt.Errorf("writing csv extract: %w", err)
	}

	reason := ErrNoFont.Error()
	if cause != nil {
		reason = cause.Error()
	}
	return Result{
		Format:   "png+csv",
		Paths:    []string{pngPath, csvPath},
		Degraded: true,
		Reason:   reason,
	}, nil
}
