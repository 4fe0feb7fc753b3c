package tui

import (
	"fmt"
	"strings"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/ledger"
	"github.com/avikothari/bling/internal/model"
	"github.com/avikothari/bling/internal/pipeline"
	"github.com/avikothari/bling/internal/suggest"
	"github.com/avikothari/bling/internal/tui/components"
	"github.com/avikothari/bling/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// adviceTab shows the month summary with its overspend or savings note,
// plus the quick-action tips. The inspected month pages through every
// month that has either expenses or an income figure.
type adviceTab struct {
	led *ledger.Ledger

	month   string
	months  []string
	rows    []model.Expense
	incomes map[string]float64
	prefs   model.Preferences
	summary model.MonthSummary
	err     error

	// Last report artifacts, shown until the next refresh
	lastReport string
}

func newAdviceTab(led *ledger.Ledger) *adviceTab {
	return &adviceTab{led: led, month: pipeline.CurrentMonth()}
}

func (v *adviceTab) Refresh() {
	v.rows, v.err = v.led.Expenses()
	if v.err != nil {
		return
	}
	v.incomes, v.err = v.led.Incomes()
	if v.err != nil {
		return
	}
	v.prefs = v.led.Preferences()

	monthTotals := pipeline.TotalsByMonth(v.rows, pipeline.CurrentMonth())
	v.months = pipeline.MonthsSpan(monthTotals, v.incomes)
	v.summary = suggest.Summarize(v.rows, v.incomes, v.month)
}

// pageMonth moves the inspected month through the span. A month outside
// the span resolves to the nearest end before paging.
func (v *adviceTab) pageMonth(delta int) {
	if len(v.months) == 0 {
		return
	}
	idx := -1
	for i, m := range v.months {
		if m == v.month {
			idx = i
			break
		}
	}
	if idx == -1 {
		if delta < 0 {
			idx = len(v.months)
		} else {
			idx = -1
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(v.months) {
		idx = len(v.months) - 1
	}
	v.month = v.months[idx]
	v.summary = suggest.Summarize(v.rows, v.incomes, v.month)
}

func (v *adviceTab) render(cw int, compact bool) string {
	t := theme.Active
	if v.err != nil {
		return components.ContentCard("Advice", errLineStyle().Render(v.err.Error()), cw)
	}

	sym := v.prefs.CurrencySymbol
	s := v.summary

	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	goodStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)
	badStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	var body strings.Builder
	line := func(label string, val string) {
		body.WriteString(mutedLineStyle().Render(fmt.Sprintf("%-14s", label)))
		body.WriteString(valueStyle.Render(val))
		body.WriteString("\n")
	}
	line("Income", cli.FormatMoney(sym, s.Income))
	line("Expenditure", cli.FormatMoney(sym, s.Expenditure))
	line("Balance", cli.FormatMoney(sym, s.Balance))
	body.WriteString("\n")

	switch {
	case s.NoIncome && s.Expenditure == 0:
		body.WriteString(mutedLineStyle().Render(fmt.Sprintf("No expenses found for %s", v.month)))
	case s.NoIncome:
		body.WriteString(warnStyle.Render("No income recorded for this month"))
	case s.Overspend > 0:
		body.WriteString(badStyle.Render(fmt.Sprintf("Overspent by %s", cli.FormatMoney(sym, s.Overspend))))
	case s.CanSave:
		body.WriteString(goodStyle.Render(fmt.Sprintf("You could set aside %s this month", cli.FormatMoney(sym, s.Balance))))
	default:
		body.WriteString(mutedLineStyle().Render("Spending is close to income this month"))
	}

	if len(s.TopCategories) > 0 {
		body.WriteString("\n\n")
		body.WriteString(mutedLineStyle().Render("Where it went"))
		body.WriteString("\n")
		for i, ct := range s.TopCategories {
			body.WriteString(valueStyle.Render(fmt.Sprintf("%d. %s: %s",
				i+1, ct.Category, cli.FormatMoney(sym, ct.Total))))
			if i < len(s.TopCategories)-1 {
				body.WriteString("\n")
			}
		}
	}

	if v.lastReport != "" {
		body.WriteString("\n\n")
		body.WriteString(goodStyle.Render(v.lastReport))
	}

	var tipsBody strings.Builder
	for i, tip := range suggest.Tips() {
		tipsBody.WriteString(mutedLineStyle().Render("• "))
		tipsBody.WriteString(valueStyle.Render(tip))
		if i < len(suggest.Tips())-1 {
			tipsBody.WriteString("\n")
		}
	}

	title := fmt.Sprintf("Advice · %s", cli.FormatMonth(v.month))
	var b strings.Builder
	if compact {
		b.WriteString(components.ContentCard(title, body.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Tips", tipsBody.String(), cw))
	} else {
		split := []int{cw * 3 / 5, cw - cw*3/5}
		b.WriteString(components.CardRow([]string{
			components.ContentCard(title, body.String(), split[0]),
			components.ContentCard("Tips", tipsBody.String(), split[1]),
		}))
	}
	b.WriteString("\n")
	b.WriteString(mutedLineStyle().Render(" [ / ] change month  ·  [r]eport  ·  [p]references"))

	return b.String()
}
