package pipeline

import (
	"fmt"
	"testing"

	"github.com/avikothari/bling/internal/model"
)

// benchRows builds a table shaped like a few years of real data: mixed
// currency prefixes, a dozen categories, dates across 36 months.
func benchRows(n int) []model.Expense {
	categories := []string{
		"Food", "Rent", "Transport", "Utilities", "Health", "Shopping",
		"Travel", "Education", "Entertainment", "Gifts", "Repairs", "Misc",
	}
	symbols := []string{"₹", "$", "€"}

	rows := make([]model.Expense, n)
	for i := range rows {
		month := i%36 + 1
		rows[i] = model.Expense{
			Date:     fmt.Sprintf("%04d-%02d-%02d", 2023+month/13, (month-1)%12+1, i%28+1),
			Category: categories[i%len(categories)],
			Amount:   fmt.Sprintf("%s%d.%02d", symbols[i%len(symbols)], 100+i%900, i%100),
			Note:     "bench",
		}
	}
	return rows
}

func BenchmarkNormalizeAmount(b *testing.B) {
	samples := []string{"₹1450.00", "$ 12,99", "keine", "-37.5", "AED 120.00"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NormalizeAmount(samples[i%len(samples)])
	}
}

func BenchmarkMonthKey(b *testing.B) {
	samples := []string{"2025-08-21", "2025-08-21T10:30:00Z", "2025-8", "soon"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MonthKey(samples[i%len(samples)])
	}
}

func BenchmarkTotalsByCategory(b *testing.B) {
	rows := benchRows(2000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = TotalsByCategory(rows)
	}
}

func BenchmarkMonthFlows(b *testing.B) {
	rows := benchRows(2000)
	incomes := map[string]float64{"2025-08": 52000, "2025-07": 52000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MonthFlows(rows, incomes, "2025-08")
	}
}
