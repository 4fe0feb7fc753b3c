package components

import (
	"fmt"

	"github.com/avikothari/bling/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left, a
// transient notice in the middle, row count and data dir on the right.
func RenderStatusBar(width int, notice string, rowCount int, dataDir string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	noticeStyle := lipgloss.NewStyle().Foreground(t.Yellow)

	left := " [?]help  [q]uit"
	right := fmt.Sprintf("%d rows · %s ", rowCount, dataDir)
	middle := ""
	if notice != "" {
		middle = noticeStyle.Render(notice)
	}

	padTotal := width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	if padTotal < 0 {
		right = ""
		padTotal = width - lipgloss.Width(left) - lipgloss.Width(middle)
	}
	if padTotal < 0 {
		padTotal = 0
	}
	leftPad := padTotal / 2
	rightPad := padTotal - leftPad

	bar := left
	for i := 0; i < leftPad; i++ {
		bar += " "
	}
	bar += middle
	for i := 0; i < rightPad; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
