package tui

import (
	"fmt"
	"strings"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/ledger"
	"github.com/avikothari/bling/internal/model"
	"github.com/avikothari/bling/internal/pipeline"
	"github.com/avikothari/bling/internal/tui/components"
	"github.com/avikothari/bling/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// expensesTab is the editable row view. The cursor addresses rows by file
// position, which is also the index the ledger mutations take.
type expensesTab struct {
	led *ledger.Ledger

	rows    []model.Expense
	incomes map[string]float64
	prefs   model.Preferences
	err     error

	cursor int
	offset int
}

func newExpensesTab(led *ledger.Ledger) *expensesTab {
	return &expensesTab{led: led}
}

func (e *expensesTab) Refresh() {
	e.rows, e.err = e.led.Expenses()
	if e.err != nil {
		return
	}
	e.incomes, e.err = e.led.Incomes()
	if e.err != nil {
		return
	}
	e.prefs = e.led.Preferences()
	e.clampCursor()
}

func (e *expensesTab) clampCursor() {
	if e.cursor >= len(e.rows) {
		e.cursor = len(e.rows) - 1
	}
	if e.cursor < 0 {
		e.cursor = 0
	}
}

func (e *expensesTab) moveCursor(delta int) {
	e.cursor += delta
	e.clampCursor()
}

func (e *expensesTab) jumpTop() {
	e.cursor = 0
	e.offset = 0
}

func (e *expensesTab) jumpBottom() {
	e.cursor = len(e.rows) - 1
	e.clampCursor()
}

// selected returns the row under the cursor and its absolute index.
func (e *expensesTab) selected() (model.Expense, int, bool) {
	if e.cursor < 0 || e.cursor >= len(e.rows) {
		return model.Expense{}, 0, false
	}
	return e.rows[e.cursor], e.cursor, true
}

func (e *expensesTab) render(cw, h int) string {
	t := theme.Active

	if e.err != nil {
		return components.ContentCard("Expenses", errLineStyle().Render(e.err.Error()), cw)
	}
	if len(e.rows) == 0 {
		body := mutedLineStyle().Render("No expenses yet · press a") + "\n\n" +
			mutedLineStyle().Render(keyHintLine())
		return components.ContentCard("Expenses", body, cw)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	inner := components.CardInnerWidth(cw)

	// Column plan: marker(2) idx(4) date(10) category(flex) amount(12) note(rest)
	catW := 16
	amtW := 12
	noteW := inner - 2 - 5 - 11 - catW - 1 - amtW - 2
	if noteW < 6 {
		noteW = 6
		catW = inner - 2 - 5 - 11 - amtW - 2 - noteW - 1
		if catW < 8 {
			catW = 8
		}
	}

	header := fmt.Sprintf("  %4s %-10s %-*s %*s  %-*s", "#", "Date", catW, "Category", amtW, "Amount", noteW, "Note")
	var b strings.Builder
	b.WriteString(headerStyle.Render(truncStr(header, inner)))
	b.WriteString("\n")

	// Scroll window follows the cursor
	visible := h - 8 // borders, header row, totals row, footer hint
	if visible < 4 {
		visible = 4
	}
	if e.cursor < e.offset {
		e.offset = e.cursor
	}
	if e.cursor >= e.offset+visible {
		e.offset = e.cursor - visible + 1
	}
	end := e.offset + visible
	if end > len(e.rows) {
		end = len(e.rows)
	}

	// Row numbers match the handles `bling edit` and `bling delete` take.
	for i := e.offset; i < end; i++ {
		r := e.rows[i]
		line := fmt.Sprintf("%4d %-10s %-*s %*s  %-*s",
			i,
			truncStr(r.Date, 10),
			catW, truncStr(displayCategory(r.Category), catW),
			amtW, truncStr(r.Amount, amtW),
			noteW, truncStr(r.Note, noteW))
		line = truncStr(line, inner-2)

		if i == e.cursor {
			b.WriteString(markerStyle.Render("▸ "))
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if end < len(e.rows) {
		b.WriteString(mutedLineStyle().Render(fmt.Sprintf("  … %d more below", len(e.rows)-end)))
		b.WriteString("\n")
	}

	// Totals strip for the current month
	month := pipeline.CurrentMonth()
	spent := pipeline.TotalsByMonth(e.rows, month)[month]
	income := e.incomes[month]
	sym := e.prefs.CurrencySymbol
	b.WriteString("\n")
	b.WriteString(mutedLineStyle().Render(fmt.Sprintf("%s · spent %s · income %s",
		cli.FormatMonth(month), cli.FormatMoney(sym, spent), cli.FormatMoney(sym, income))))
	b.WriteString("\n")
	b.WriteString(mutedLineStyle().Render(keyHintLine()))

	title := fmt.Sprintf("Expenses · %s", cli.FormatCount(len(e.rows), "row"))
	return components.ContentCard(title, b.String(), cw)
}

func keyHintLine() string {
	return "[a]dd  [e]dit  [d]elete  [i]ncome  [o]pen csv  ·  j/k move  g/G jump"
}

func displayCategory(c string) string {
	if c == "" {
		return pipeline.Uncategorized
	}
	return c
}
