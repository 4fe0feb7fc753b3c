package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/avikothari/bling/internal/model"
)

func sampleRows() []model.Expense {
	return []model.Expense{
		{Date: "2025-07-01", Category: "Food", Amount: "₹1200.00", Note: "groceries, veg"},
		{Date: "2025-07-03", Category: "Rent", Amount: "₹15000.00", Note: ""},
		{Date: "2025-06-28", Category: "Food", Amount: "₹500.00", Note: "prev month"},
	}
}

func sampleIncomes() map[string]float64 {
	return map[string]float64{"2025-07": 45000, "2025-06": 41000}
}

func TestMonthNoExpenses(t *testing.T) {
	e := Exporter{Currency: "₹"}
	out := filepath.Join(t.TempDir(), "report-2031-01.pdf")

	_, err := e.Month(sampleRows(), sampleIncomes(), "2031-01", out)
	if !errors.Is(err, ErrNoExpenses) {
		t.Fatalf("Month() error = %v, want ErrNoExpenses", err)
	}
	if _, serr := os.Stat(out); serr == nil {
		t.Error("artifact written despite empty month")
	}
}

func TestMonthFallbackWritesPNGAndCSV(t *testing.T) {
	e := Exporter{Currency: "₹", FontPath: filepath.Join(t.TempDir(), "missing.ttf")}
	dir := t.TempDir()
	out := filepath.Join(dir, "report-2025-07.pdf")

	res, err := e.Month(sampleRows(), sampleIncomes(), "2025-07", out)
	if err != nil {
		t.Fatalf("Month() error = %v", err)
	}
	if !res.Degraded || res.Format != "png+csv" {
		t.Fatalf("result = %+v, want degraded png+csv", res)
	}
	if res.Reason == "" {
		t.Error("degraded result carries no reason")
	}
	if _, serr := os.Stat(out); serr == nil {
		t.Error("pdf written despite missing font")
	}

	pngPath := filepath.Join(dir, "report-2025-07.png")
	csvPath := filepath.Join(dir, "report-2025-07.csv")
	if !reflect.DeepEqual(res.Paths, []string{pngPath, csvPath}) {
		t.Errorf("Paths = %v", res.Paths)
	}

	png, rerr := os.ReadFile(pngPath)
	if rerr != nil {
		t.Fatalf("reading fallback png: %v", rerr)
	}
	if !bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("fallback image is not a PNG")
	}

	f, oerr := os.Open(csvPath)
	if oerr != nil {
		t.Fatalf("opening fallback csv: %v", oerr)
	}
	defer f.Close()
	records, cerr := csv.NewReader(f).ReadAll()
	if cerr != nil {
		t.Fatalf("parsing fallback csv: %v", cerr)
	}

	want := [][]string{
		{"Date", "Category", "Amount", "Note"},
		{"2025-07-01", "Food", "₹1200.00", "groceries, veg"},
		{"2025-07-03", "Rent", "₹15000.00", ""},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("csv extract = %v, want %v", records, want)
	}
}

func TestMonthFallbackOnUnusableFont(t *testing.T) {
	stub := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(stub, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := Exporter{Currency: "₹", FontPath: stub}
	out := filepath.Join(t.TempDir(), "report-2025-07.pdf")

	res, err := e.Month(sampleRows(), sampleIncomes(), "2025-07", out)
	if err != nil {
		t.Fatalf("Month() error = %v", err)
	}
	if !res.Degraded {
		t.Fatalf("result = %+v, want degraded fallback", res)
	}
	if res.Reason == "" {
		t.Error("fallback reason missing")
	}
}

func TestMonthPDFWhenFontAvailable(t *testing.T) {
	if _, err := FindFont(""); err != nil {
		t.Skip("no system TTF available")
	}

	e := Exporter{Currency: "₹"}
	out := filepath.Join(t.TempDir(), "report-2025-07.pdf")

	res, err := e.Month(sampleRows(), sampleIncomes(), "2025-07", out)
	if err != nil {
		t.Fatalf("Month() error = %v", err)
	}
	if res.Degraded || res.Format != "pdf" {
		t.Fatalf("result = %+v, want pdf", res)
	}

	data, rerr := os.ReadFile(out)
	if rerr != nil {
		t.Fatalf("reading pdf: %v", rerr)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestFindFont(t *testing.T) {
	t.Run("missing override", func(t *testing.T) {
		_, err := FindFont(filepath.Join(t.TempDir(), "nope.ttf"))
		if !errors.Is(err, ErrNoFont) {
			t.Errorf("error = %v, want ErrNoFont", err)
		}
	})

	t.Run("existing override wins", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "custom.ttf")
		if err := os.WriteFile(p, []byte("stub"), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := FindFont(p)
		if err != nil {
			t.Fatalf("FindFont() error = %v", err)
		}
		if got != p {
			t.Errorf("FindFont() = %q, want override %q", got, p)
		}
	})
}

func TestExcelAllMonths(t *testing.T) {
	e := Exporter{Currency: "₹"}
	out := filepath.Join(t.TempDir(), "bling.xlsx")

	res, err := e.Excel(sampleRows(), sampleIncomes(), "", out)
	if err != nil {
		t.Fatalf("Excel() error = %v", err)
	}
	if res.Format != "xlsx" || len(res.Paths) != 1 {
		t.Fatalf("result = %+v", res)
	}

	f, oerr := excelize.OpenFile(out)
	if oerr != nil {
		t.Fatalf("opening workbook: %v", oerr)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(sheetExpenses, "A1"); got != "Date" {
		t.Errorf("A1 = %q, want Date", got)
	}
	if got, _ := f.GetCellValue(sheetExpenses, "C2"); got != "₹1200.00" {
		t.Errorf("C2 = %q, want raw amount text", got)
	}

	// All three rows plus blank then the three summary lines.
	if got, _ := f.GetCellValue(sheetExpenses, "A6"); got != "Income" {
		t.Errorf("A6 = %q, want Income", got)
	}

	// Rent 15000 outranks Food 1700 across both months.
	if got, _ := f.GetCellValue(sheetCategories, "B2"); got != "Rent" {
		t.Errorf("Categories B2 = %q, want Rent", got)
	}
	if got, _ := f.GetCellValue(sheetCategories, "B4"); got != "Total" {
		t.Errorf("Categories B4 = %q, want Total", got)
	}
}

func TestExcelMonthFilter(t *testing.T) {
	e := Exporter{Currency: "₹"}
	out := filepath.Join(t.TempDir(), "bling-07.xlsx")

	if _, err := e.Excel(sampleRows(), sampleIncomes(), "2025-07", out); err != nil {
		t.Fatalf("Excel() error = %v", err)
	}

	f, oerr := excelize.OpenFile(out)
	if oerr != nil {
		t.Fatalf("opening workbook: %v", oerr)
	}
	defer f.Close()

	// Two July rows, so the summary block starts at row 5.
	if got, _ := f.GetCellValue(sheetExpenses, "A5"); got != "Income" {
		t.Errorf("A5 = %q, want Income", got)
	}
	if got, _ := f.GetCellValue(sheetExpenses, "A4"); got != "" {
		t.Errorf("A4 = %q, want blank spacer", got)
	}
}

func TestExcelNoRows(t *testing.T) {
	e := Exporter{Currency: "₹"}
	out := filepath.Join(t.TempDir(), "empty.xlsx")

	_, err := e.Excel(sampleRows(), sampleIncomes(), "2031-01", out)
	if !errors.Is(err, ErrNoExpenses) {
		t.Fatalf("Excel() error = %v, want ErrNoExpenses", err)
	}
}
