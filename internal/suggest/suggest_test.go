package suggest

import (
	"testing"

	"github.com/avikothari/bling/internal/model"
)

func TestSummarizeOverspend(t *testing.T) {
	rows := []model.Expense{
		{Date: "2025-08-02", Category: "Rent", Amount: "₹30000.00"},
		{Date: "2025-08-10", Category: "Food", Amount: "₹15000.00"},
	}
	incomes := map[string]float64{"2025-08": 40000}

	s := Summarize(rows, incomes, "2025-08")
	if s.Income != 40000 || s.Expenditure != 45000 {
		t.Fatalf("income/expenditure = %v/%v", s.Income, s.Expenditure)
	}
	if s.Overspend != 5000 {
		t.Errorf("overspend = %v, want 5000", s.Overspend)
	}
	if s.CanSave {
		t.Error("CanSave set alongside overspend")
	}
	if s.Balance != -5000 {
		t.Errorf("balance = %v, want -5000", s.Balance)
	}
}

func TestSummarizeSavingsNote(t *testing.T) {
	rows := []model.Expense{
		{Date: "2025-08-02", Category: "Food", Amount: "₹2000.00"},
	}
	incomes := map[string]float64{"2025-08": 3000}

	s := Summarize(rows, incomes, "2025-08")
	if s.Overspend != 0 {
		t.Errorf("overspend = %v, want 0", s.Overspend)
	}
	if !s.CanSave {
		t.Error("CanSave not set at balance 1000")
	}
}

func TestSummarizeNeither(t *testing.T) {
	rows := []model.Expense{
		{Date: "2025-08-02", Category: "Food", Amount: "₹2500.00"},
	}
	incomes := map[string]float64{"2025-08": 3000}

	s := Summarize(rows, incomes, "2025-08")
	if s.Overspend != 0 || s.CanSave {
		t.Errorf("classification = %+v, want neither", s)
	}
}

func TestSummarizeNoIncome(t *testing.T) {
	rows := []model.Expense{
		{Date: "2025-08-02", Category: "Food", Amount: "₹2500.00"},
	}

	s := Summarize(rows, nil, "2025-08")
	if !s.NoIncome {
		t.Error("NoIncome not set")
	}
	// Spending without income is not an overspend warning.
	if s.Overspend != 0 {
		t.Errorf("overspend = %v, want 0", s.Overspend)
	}
}

func TestSummarizeTopCategories(t *testing.T) {
	rows := []model.Expense{
		{Date: "2025-08-01", Category: "a", Amount: "10"},
		{Date: "2025-08-01", Category: "b", Amount: "90"},
		{Date: "2025-08-01", Category: "c", Amount: "30"},
		{Date: "2025-08-01", Category: "d", Amount: "40"},
		{Date: "2025-08-01", Category: "e", Amount: "50"},
		{Date: "2025-08-01", Category: "f", Amount: "60"},
		{Date: "2025-08-01", Category: "g", Amount: "70"},
		{Date: "2025-07-15", Category: "other-month", Amount: "999"},
		{Date: "bad-date", Category: "no-key", Amount: "5"},
	}

	s := Summarize(rows, nil, "2025-08")
	if len(s.TopCategories) != 6 {
		t.Fatalf("top categories = %d, want 6", len(s.TopCategories))
	}
	if s.TopCategories[0].Category != "b" {
		t.Errorf("top = %s, want b", s.TopCategories[0].Category)
	}
	for _, ct := range s.TopCategories {
		if ct.Category == "other-month" || ct.Category == "no-key" {
			t.Errorf("unexpected category %q in month list", ct.Category)
		}
	}

	// The fallback-keyed expenditure still counts the unparseable row.
	if want := 10.0 + 90 + 30 + 40 + 50 + 60 + 70 + 5; s.Expenditure != want {
		t.Errorf("expenditure = %v, want %v", s.Expenditure, want)
	}
}

func TestTipsFixed(t *testing.T) {
	a, b := Tips(), Tips()
	if len(a) == 0 {
		t.Fatal("no tips")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("tips vary between calls: %q vs %q", a[i], b[i])
		}
	}
}
