// Package pipeline derives aggregates from raw expense rows: amount and
// month-key normalization, category and month totals, and the breakdowns
// behind every chart and summary surface. Everything here is a pure
// function recomputed fresh per call; nothing is memoized.
package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/avikothari/bling/internal/model"
)

// Uncategorized labels rows whose category cell is blank.
const Uncategorized = "Uncategorized"

// NormalizeAmount converts stored amount text that may carry a currency
// symbol, thousands separators, or stray whitespace into a number. Only
// ASCII digits, '.', and '-' survive, in their original order; anything the
// filtered string cannot parse as degrades to 0. The function is total and
// idempotent on its own formatted output.
func NormalizeAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// MonthKey derives the YYYY-MM bucket for a date string. Stages, each tried
// only when the prior one fails: strict YYYY-MM-DD, common ISO-8601
// date/time layouts, then splitting on '-' and taking the first two numeric
// segments (every non-blank segment must be numeric). When all stages fail
// ok is false and callers substitute a context default, usually the current
// month.
func MonthKey(s string) (string, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format("2006-01"), true
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01"), true
		}
	}
	var nums []int
	for _, p := range strings.Split(s, "-") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", false
		}
		nums = append(nums, n)
	}
	if len(nums) < 2 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d", nums[0], nums[1]), true
}

// CurrentMonth returns the month key for today in local time.
func CurrentMonth() string {
	return time.Now().Format("2006-01")
}

// TotalsByCategory sums all-time amounts per category. Category text is
// case-sensitive; blank categories land in Uncategorized.
func TotalsByCategory(rows []model.Expense) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range rows {
		totals[categoryOf(r)] += NormalizeAmount(r.Amount)
	}
	return totals
}

// TotalsByMonth sums amounts per month key. Rows whose date yields no key
// are bucketed into fallback so no row ever drops out of the totals.
func TotalsByMonth(rows []model.Expense, fallback string) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range rows {
		totals[monthOf(r, fallback)] += NormalizeAmount(r.Amount)
	}
	return totals
}

// MonthCategoryTotals produces the nested month -> category -> sum mapping.
func MonthCategoryTotals(rows []model.Expense, fallback string) map[string]map[string]float64 {
	totals := make(map[string]map[string]float64)
	for _, r := range rows {
		m := monthOf(r, fallback)
		if totals[m] == nil {
			totals[m] = make(map[string]float64)
		}
		totals[m][categoryOf(r)] += NormalizeAmount(r.Amount)
	}
	return totals
}

// TopCategories returns up to n categories ordered by summed amount
// descending. Ties keep first-encountered row order (stable sort over the
// accumulation order). A negative n returns all categories.
func TopCategories(rows []model.Expense, n int) []model.CategoryTotal {
	totals := orderedCategoryTotals(rows)
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})
	if n >= 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// PieBreakdown prepares the category-share slices fed to pie-style charts:
// the top 6 categories plus an "Others" residual when more exist. A zero
// grand total substitutes the single "No data" placeholder valued 1 so the
// chart has something nonzero to render. The placeholder lives only at
// this boundary, never in the underlying totals.
func PieBreakdown(rows []model.Expense) []model.PieSlice {
	totals := orderedCategoryTotals(rows)
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})

	slices := make([]model.PieSlice, 0, 7)
	var residual float64
	for i, ct := range totals {
		if i < 6 {
			slices = append(slices, model.PieSlice{Label: ct.Category, Value: ct.Total})
		} else {
			residual += ct.Total
		}
	}
	if len(totals) > 6 {
		slices = append(slices, model.PieSlice{Label: "Others", Value: residual})
	}

	var sum float64
	for _, s := range slices {
		sum += s.Value
	}
	if sum == 0 {
		return []model.PieSlice{{Label: "No data", Value: 1}}
	}
	return slices
}

// RowsForMonth filters rows to those whose date resolves to month, keeping
// file order. Rows with no derivable key never match; the current-month
// fallback applies only to the totals functions.
func RowsForMonth(rows []model.Expense, month string) []model.Expense {
	var out []model.Expense
	for _, r := range rows {
		if k, ok := MonthKey(r.Date); ok && k == month {
			out = append(out, r)
		}
	}
	return out
}

// MonthsSpan returns the sorted union of months seen in the expense totals
// and the income mapping. An empty union yields just the current month so
// chart surfaces always have one bucket.
func MonthsSpan(monthTotals, incomes map[string]float64) []string {
	seen := make(map[string]struct{}, len(monthTotals)+len(incomes))
	for m := range monthTotals {
		seen[m] = struct{}{}
	}
	for m := range incomes {
		seen[m] = struct{}{}
	}
	if len(seen) == 0 {
		return []string{CurrentMonth()}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// MonthFlows pairs income against expenditure for every month in the span,
// in chronological order. Months absent from either mapping read as zero.
func MonthFlows(rows []model.Expense, incomes map[string]float64, fallback string) []model.MonthFlow {
	monthTotals := TotalsByMonth(rows, fallback)
	months := MonthsSpan(monthTotals, incomes)

	flows := make([]model.MonthFlow, 0, len(months))
	for _, m := range months {
		flows = append(flows, model.MonthFlow{
			Month:       m,
			Income:      incomes[m],
			Expenditure: monthTotals[m],
		})
	}
	return flows
}

func categoryOf(r model.Expense) string {
	if r.Category == "" {
		return Uncategorized
	}
	return r.Category
}

func monthOf(r model.Expense, fallback string) string {
	if k, ok := MonthKey(r.Date); ok {
		return k
	}
	return fallback
}

// orderedCategoryTotals accumulates per-category sums preserving the order
// in which categories first appear, which is what makes the descending
// sorts above tie-stable.
func orderedCategoryTotals(rows []model.Expense) []model.CategoryTotal {
	index := make(map[string]int)
	var totals []model.CategoryTotal
	for _, r := range rows {
		cat := categoryOf(r)
		i, ok := index[cat]
		if !ok {
			i = len(totals)
			index[cat] = i
			totals = append(totals, model.CategoryTotal{Category: cat})
		}
		totals[i].Total += NormalizeAmount(r.Amount)
	}
	return totals
}
