package pipeline

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/avikothari/bling/internal/model"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"₹500.00", 500},
		{"$1,234.50", 1234.5},
		{" 300 ", 300},
		{"", 0},
		{"abc", 0},
		{"-₹45.00", -45},
		{"AED99.99", 99.99},
		{"12.34.56", 0},
		{"--5", 0},
		{"1e5", 15}, // 'e' is stripped, digits keep their order
		{"0", 0},
		{".5", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeAmount(tt.in); got != tt.want {
				t.Errorf("NormalizeAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeAmountIdempotent(t *testing.T) {
	inputs := []string{"₹500.00", "$1,234.50", " 300 ", "", "abc", "-12.75", "1e5"}
	for _, in := range inputs {
		first := NormalizeAmount(in)
		again := NormalizeAmount(strconv.FormatFloat(first, 'f', -1, 64))
		if first != again {
			t.Errorf("NormalizeAmount not idempotent for %q: %v then %v", in, first, again)
		}
	}
}

func TestMonthKey(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"2024-03-15", "2024-03", true},
		{"2024-3-5", "2024-03", true},
		{"2024-03", "2024-03", true},
		{"2024-13-40", "2024-13", true}, // numeric split path, no range check
		{"2024-02-30", "2024-02", true},
		{"2025-08-01T10:30:00", "2025-08", true},
		{"2025-08-01 10:30:00", "2025-08", true},
		{"-2024-5", "2024-05", true},
		{"not-a-date", "", false},
		{"2024-03-xx", "", false}, // every segment must be numeric
		{"20240315", "", false},
		{"2024", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := MonthKey(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MonthKey(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func testRows() []model.Expense {
	return []model.Expense{
		{Date: "2025-07-03", Category: "Food", Amount: "₹250.00"},
		{Date: "2025-07-10", Category: "Travel", Amount: "₹120.00"},
		{Date: "2025-08-01", Category: "Food", Amount: "₹80.00"},
		{Date: "garbage", Category: "", Amount: "₹40.00"},
		{Date: "2025-08-02", Category: "Rent", Amount: "not-a-number"},
	}
}

func TestConservationAcrossGroupings(t *testing.T) {
	rows := testRows()
	fallback := "2025-08"

	var direct float64
	for _, r := range rows {
		direct += NormalizeAmount(r.Amount)
	}

	var byCat float64
	for _, v := range TotalsByCategory(rows) {
		byCat += v
	}
	var byMonth float64
	for _, v := range TotalsByMonth(rows, fallback) {
		byMonth += v
	}

	const eps = 1e-9
	if math.Abs(byCat-direct) > eps || math.Abs(byMonth-direct) > eps {
		t.Errorf("totals diverge: direct=%v byCategory=%v byMonth=%v", direct, byCat, byMonth)
	}
}

func TestTotalsByCategory(t *testing.T) {
	totals := TotalsByCategory(testRows())
	if totals["Food"] != 330 {
		t.Errorf("Food = %v, want 330", totals["Food"])
	}
	if totals[Uncategorized] != 40 {
		t.Errorf("Uncategorized = %v, want 40", totals[Uncategorized])
	}
	if totals["Rent"] != 0 {
		t.Errorf("Rent = %v, want 0", totals["Rent"])
	}
}

func TestTotalsByMonthFallback(t *testing.T) {
	totals := TotalsByMonth(testRows(), "2025-08")
	if totals["2025-07"] != 370 {
		t.Errorf("2025-07 = %v, want 370", totals["2025-07"])
	}
	// 80 + 40 (unparseable date) + 0 (unparseable amount)
	if totals["2025-08"] != 120 {
		t.Errorf("2025-08 = %v, want 120", totals["2025-08"])
	}
}

func TestMonthCategoryTotals(t *testing.T) {
	totals := MonthCategoryTotals(testRows(), "2025-08")
	if totals["2025-07"]["Food"] != 250 {
		t.Errorf("2025-07/Food = %v, want 250", totals["2025-07"]["Food"])
	}
	if totals["2025-08"][Uncategorized] != 40 {
		t.Errorf("2025-08/Uncategorized = %v, want 40", totals["2025-08"][Uncategorized])
	}
}

func TestTopCategoriesOrderAndTies(t *testing.T) {
	rows := []model.Expense{
		{Date: "2025-08-01", Category: "Snacks", Amount: "50"},
		{Date: "2025-08-01", Category: "Books", Amount: "50"},
		{Date: "2025-08-01", Category: "Rent", Amount: "900"},
		{Date: "2025-08-02", Category: "Snacks", Amount: "25"},
	}

	got := TopCategories(rows, 10)
	want := []model.CategoryTotal{
		{Category: "Rent", Total: 900},
		{Category: "Snacks", Total: 75},
		{Category: "Books", Total: 50},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("top[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	// Equal sums keep first-encountered order.
	tied := []model.Expense{
		{Date: "2025-08-01", Category: "B", Amount: "10"},
		{Date: "2025-08-01", Category: "A", Amount: "10"},
	}
	top := TopCategories(tied, 2)
	if top[0].Category != "B" || top[1].Category != "A" {
		t.Errorf("tie order = %s,%s, want B,A", top[0].Category, top[1].Category)
	}

	if got := TopCategories(rows, 2); len(got) != 2 {
		t.Errorf("capped len = %d, want 2", len(got))
	}
}

func TestPieBreakdown(t *testing.T) {
	t.Run("others residual", func(t *testing.T) {
		var rows []model.Expense
		for i, amt := range []string{"800", "700", "600", "500", "400", "300", "20", "10"} {
			rows = append(rows, model.Expense{
				Date:     "2025-08-01",
				Category: string(rune('a' + i)),
				Amount:   amt,
			})
		}
		slices := PieBreakdown(rows)
		if len(slices) != 7 {
			t.Fatalf("slices = %d, want 7", len(slices))
		}
		last := slices[6]
		if last.Label != "Others" || last.Value != 30 {
			t.Errorf("residual = %+v, want Others/30", last)
		}
	})

	t.Run("six or fewer has no others", func(t *testing.T) {
		rows := []model.Expense{
			{Date: "2025-08-01", Category: "a", Amount: "10"},
			{Date: "2025-08-01", Category: "b", Amount: "20"},
		}
		slices := PieBreakdown(rows)
		if len(slices) != 2 {
			t.Fatalf("slices = %d, want 2", len(slices))
		}
		for _, s := range slices {
			if s.Label == "Others" {
				t.Errorf("unexpected Others bucket: %+v", slices)
			}
		}
	})

	t.Run("zero total placeholder", func(t *testing.T) {
		for _, rows := range [][]model.Expense{
			nil,
			{{Date: "2025-08-01", Category: "a", Amount: "junk"}},
		} {
			slices := PieBreakdown(rows)
			if len(slices) != 1 || slices[0].Label != "No data" || slices[0].Value != 1 {
				t.Errorf("placeholder = %+v, want [No data/1]", slices)
			}
		}
	})
}

func TestRowsForMonth(t *testing.T) {
	rows := testRows()
	got := RowsForMonth(rows, "2025-07")
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0].Category != "Food" || got[1].Category != "Travel" {
		t.Errorf("order not preserved: %+v", got)
	}

	// Rows with no derivable key never match, even the fallback month.
	if got := RowsForMonth(rows, CurrentMonth()); len(got) != 0 {
		t.Errorf("no-key rows matched: %+v", got)
	}
}

func TestMonthsSpan(t *testing.T) {
	span := MonthsSpan(
		map[string]float64{"2025-08": 1, "2025-06": 2},
		map[string]float64{"2025-07": 3, "2025-06": 4},
	)
	want := []string{"2025-06", "2025-07", "2025-08"}
	if len(span) != len(want) {
		t.Fatalf("span = %v, want %v", span, want)
	}
	for i := range want {
		if span[i] != want[i] {
			t.Fatalf("span = %v, want %v", span, want)
		}
	}

	empty := MonthsSpan(nil, nil)
	if len(empty) != 1 || empty[0] != time.Now().Format("2006-01") {
		t.Errorf("empty span = %v, want current month", empty)
	}
}

func TestMonthFlows(t *testing.T) {
	rows := []model.Expense{
		{Date: "2025-07-01", Category: "Food", Amount: "100"},
	}
	incomes := map[string]float64{"2025-08": 5000}

	flows := MonthFlows(rows, incomes, "2025-08")
	if len(flows) != 2 {
		t.Fatalf("flows = %d, want 2", len(flows))
	}
	if flows[0].Month != "2025-07" || flows[0].Expenditure != 100 || flows[0].Income != 0 {
		t.Errorf("flows[0] = %+v", flows[0])
	}
	if flows[1].Month != "2025-08" || flows[1].Income != 5000 || flows[1].Expenditure != 0 {
		t.Errorf("flows[1] = %+v", flows[1])
	}
}
