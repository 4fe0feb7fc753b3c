package model

// CurrencyOptions are the symbols offered as quick picks by the setup and
// preferences forms. Free-text symbols are accepted everywhere else.
var CurrencyOptions = []string{"₹", "$", "€", "£", "¥", "AED", "AUD", "CAD", "SGD"}

// DefaultCurrencySymbol prefixes stored amounts when nothing is configured.
const DefaultCurrencySymbol = "₹"

// Preferences is the persisted user preference record.
type Preferences struct {
	CurrencySymbol       string  `json:"currency_symbol"`
	DefaultMonthlyBudget float64 `json:"default_monthly_budget"`
}

// DefaultPreferences returns the values used when no preferences file
// exists yet or the existing one cannot be read.
func DefaultPreferences() Preferences {
	return Preferences{
		CurrencySymbol:       DefaultCurrencySymbol,
		DefaultMonthlyBudget: 0,
	}
}
