// Package suggest derives the monthly advice summary: the income versus
// spending picture for one month, its classification, and the fixed
// quick-action tips. Pure derivation over the current rows; nothing here
// persists state.
package suggest

import (
	"github.com/avikothari/bling/internal/model"
	"github.com/avikothari/bling/internal/pipeline"
)

// Summarize builds the advice picture for one month from the full expense
// list and the income mapping. Expenditure buckets rows with unparseable
// dates into the inspected month, mirroring the totals fallback; the top
// category list only counts rows whose date resolves to the month.
func Summarize(rows []model.Expense, incomes map[string]float64, month string) model.MonthSummary {
	monthTotals := pipeline.TotalsByMonth(rows, month)

	s := model.MonthSummary{
		Month:       month,
		Income:      incomes[month],
		Expenditure: monthTotals[month],
	}
	s.Balance = s.Income - s.Expenditure
	s.NoIncome = s.Income == 0

	// Overspending beats the savings note; a month can show one or neither.
	if s.Income > 0 && s.Expenditure > s.Income {
		s.Overspend = s.Expenditure - s.Income
	} else if s.Balance >= model.SavingsThreshold {
		s.CanSave = true
	}

	s.TopCategories = pipeline.TopCategories(pipeline.RowsForMonth(rows, month), 6)
	return s
}

// Tips returns the fixed quick-action tips shown under every summary.
func Tips() []string {
	return []string{
		"Run the planner to size a recurring monthly investment.",
		"Set this month's income to unlock overspend alerts.",
		"Export a report at month end to review where the money went.",
	}
}
