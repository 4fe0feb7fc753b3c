package components

import (
	"strings"

	"github.com/avikothari/bling/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs, in display order.
var Tabs = []Tab{
	{Name: "Overview", Key: '1'},
	{Name: "Expenses", Key: '2'},
	{Name: "Charts", Key: '3'},
	{Name: "Planner", Key: '4'},
	{Name: "Advice", Key: '5'},
	{Name: "Settings", Key: '6'},
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active

	if active {
		style := lipgloss.NewStyle().
			Foreground(t.AccentBright).
			Background(t.SurfaceHover).
			Bold(true)
		return style.Render(" " + string(tab.Key) + ":" + tab.Name + " ")
	}

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	return " " + keyStyle.Render(string(tab.Key)) + nameStyle.Render(":"+tab.Name) + " "
}

// TabVisualWidth returns the rendered width of one tab. Mouse hitboxes in
// the app are derived from this, so it must match renderTab exactly.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the single-row tab bar. Tabs are separated by one
// column, matching the hitbox math in the app's mouse handler.
func RenderTabBar(activeIdx int, width int) string {
	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}

	bar := strings.Join(parts, " ")

	barStyle := lipgloss.NewStyle().Width(width)
	return barStyle.Render(bar)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
