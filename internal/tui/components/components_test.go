package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/avikothari/bling/internal/tui/theme"
)

func init() {
	// Force TrueColor output so styling is exercised in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
	theme.SetActive("flexoki-dark")
}

func TestLayoutRowSumsExactly(t *testing.T) {
	tests := []struct {
		total, n int
	}{
		{100, 3},
		{80, 4},
		{7, 3},
		{55, 1},
	}

	for _, tt := range tests {
		widths := LayoutRow(tt.total, tt.n)
		if len(widths) != tt.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tt.total, tt.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tt.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tt.total, tt.n, sum)
		}
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	short := ContentCard("Short", "one line", 22)
	tall := ContentCard("Tall", "1\n2\n3\n4\n5", 22)

	joined := CardRow([]string{tall, short})
	lines := strings.Split(joined, "\n")
	tallLines := len(strings.Split(tall, "\n"))

	if len(lines) != tallLines {
		t.Errorf("joined height = %d, want tallest card height %d", len(lines), tallLines)
	}

	for i, line := range lines {
		if w := lipgloss.Width(line); w != lipgloss.Width(lines[0]) {
			t.Errorf("line %d width = %d, want %d", i, w, lipgloss.Width(lines[0]))
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	metrics := []Metric{
		{Label: "Income", Value: "₹45000.00"},
		{Label: "Spent", Value: "₹38000.00"},
		{Label: "Balance", Value: "₹7000.00"},
	}

	row := MetricCardRow(metrics, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestTabWidthsStableAcrossActivation(t *testing.T) {
	// Mouse hitboxes assume a tab is the same width active or not,
	// otherwise clicks land on the wrong tab after switching.
	for _, tab := range Tabs {
		active := TabVisualWidth(tab, true)
		inactive := TabVisualWidth(tab, false)
		if active != inactive {
			t.Errorf("tab %s: active width %d != inactive width %d", tab.Name, active, inactive)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('3'); got != 2 {
		t.Errorf("TabIdxByKey('3') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestSparklineWidthMatchesValues(t *testing.T) {
	values := []float64{0, 10, 25, 5, 100, 60}
	out := Sparkline(values, theme.Active.Accent)
	if w := lipgloss.Width(out); w != len(values) {
		t.Errorf("sparkline width = %d, want %d", w, len(values))
	}
}

func TestHBarRow(t *testing.T) {
	full := HBarRow("Rent", "₹15000.00", 15000, 15000, 10, 20, theme.Active.Green)
	if got := strings.Count(full, "█"); got != 20 {
		t.Errorf("max value fills %d cells, want 20", got)
	}

	zero := HBarRow("Misc", "₹0.00", 0, 15000, 10, 20, theme.Active.Green)
	if strings.Contains(zero, "█") {
		t.Error("zero value rendered bar cells")
	}

	tiny := HBarRow("Tea", "₹1.00", 1, 15000, 10, 20, theme.Active.Green)
	if got := strings.Count(tiny, "█"); got != 1 {
		t.Errorf("tiny nonzero value fills %d cells, want 1", got)
	}
}

func TestProgressBarClamps(t *testing.T) {
	over := ProgressBar(1.5, 10)
	if !strings.Contains(over, "150%") {
		t.Errorf("over-progress output %q lacks 150%%", over)
	}
	if got := strings.Count(over, "█"); got != 10 {
		t.Errorf("over-progress fills %d cells, want clamp to 10", got)
	}

	under := ProgressBar(-0.2, 10)
	if strings.Contains(under, "█") {
		t.Error("negative progress rendered filled cells")
	}
}
