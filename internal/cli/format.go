// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"
)

// FormatMoney renders an amount with the user's currency symbol.
// Mirrors the stored record format, so CLI output and CSV contents agree.
// e.g., ("₹", 1234.5) -> "₹1234.50"
func FormatMoney(symbol string, amount float64) string {
	return fmt.Sprintf("%s%.2f", symbol, amount)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatMonth renders a YYYY-MM key as a short human month.
// e.g., "2025-07" -> "Jul 2025". Unparsable keys pass through unchanged.
func FormatMonth(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// Truncate shortens a string to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// FormatCount pluralizes a row count for status lines.
func FormatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// PadLabel left-aligns a label into a fixed-width column, truncating long ones.
func PadLabel(s string, width int) string {
	s = Truncate(s, width)
	if pad := width - len([]rune(s)); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
