// Package model defines domain types for bling records and aggregates.
package model

// Expense is one row of the expenses table. Amount is kept exactly as the
// stored display text (currency symbol prefix plus a 2-decimal number) and
// re-parsed for any arithmetic.
type Expense struct {
	Date     string
	Category string
	Amount   string
	Note     string
}

// CategoryTotal pairs a category label with its summed amount.
type CategoryTotal struct {
	Category string
	Total    float64
}

// PieSlice is one wedge of the category-share breakdown fed to chart
// surfaces. The label set may include the synthetic "Others" residual or
// the "No data" placeholder.
type PieSlice struct {
	Label string
	Value float64
}

// MonthFlow holds income versus expenditure for one calendar month.
type MonthFlow struct {
	Month       string
	Income      float64
	Expenditure float64
}
