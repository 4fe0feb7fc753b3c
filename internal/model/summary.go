package model

// SavingsThreshold is the balance above which a month is flagged as a
// savings opportunity. The value is an absolute amount in whatever unit
// the stored figures use; it is intentionally not currency-aware.
const SavingsThreshold = 1000

// MonthSummary holds the derived income and spending picture for one month.
type MonthSummary struct {
	Month       string
	Income      float64
	Expenditure float64
	Balance     float64

	// Overspend is the amount by which expenditure exceeds a nonzero
	// income, zero otherwise.
	Overspend float64
	// CanSave reports that the balance cleared SavingsThreshold.
	CanSave bool
	// NoIncome reports that no income figure is recorded for the month.
	NoIncome bool

	TopCategories []CategoryTotal
}
