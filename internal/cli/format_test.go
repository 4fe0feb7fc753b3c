package cli

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		symbol string
		amount float64
		want   string
	}{
		{"₹", 1234.5, "₹1234.50"},
		{"$", 0, "$0.00"},
		{"AED", 99.999, "AED100.00"},
		{"₹", -5000, "₹-5000.00"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.symbol, tt.amount); got != tt.want {
			t.Errorf("FormatMoney(%q, %v) = %q, want %q", tt.symbol, tt.amount, got, tt.want)
		}
	}
}

func TestFormatMonth(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"2025-07", "Jul 2025"},
		{"2024-01", "Jan 2024"},
		{"garbage", "garbage"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatMonth(tt.key); got != tt.want {
			t.Errorf("FormatMonth(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer note here", 10, "a longer …"},
		{"₹₹₹₹₹", 3, "₹₹…"},
		{"anything", 0, ""},
		{"ab", 1, "…"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1, "expense"); got != "1 expense" {
		t.Errorf("FormatCount(1) = %q", got)
	}
	if got := FormatCount(3, "expense"); got != "3 expenses" {
		t.Errorf("FormatCount(3) = %q", got)
	}
	if got := FormatCount(0, "expense"); got != "0 expenses" {
		t.Errorf("FormatCount(0) = %q", got)
	}
}
