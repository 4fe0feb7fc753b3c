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

// chartsTab renders the aggregate views: income versus spending per month,
// the all-time category ranking, and the category share breakdown.
type chartsTab struct {
	led *ledger.Ledger

	rows  []model.Expense
	prefs model.Preferences
	flows []model.MonthFlow
	top   []model.CategoryTotal
	share []model.PieSlice
	err   error
}

func newChartsTab(led *ledger.Ledger) *chartsTab {
	return &chartsTab{led: led}
}

func (c *chartsTab) Refresh() {
	c.rows, c.err = c.led.Expenses()
	if c.err != nil {
		return
	}
	incomes, err := c.led.Incomes()
	if err != nil {
		c.err = err
		return
	}
	c.prefs = c.led.Preferences()
	c.flows = pipeline.MonthFlows(c.rows, incomes, pipeline.CurrentMonth())
	c.top = pipeline.TopCategories(c.rows, 10)
	c.share = nil
	if len(c.rows) > 0 {
		c.share = pipeline.PieBreakdown(c.rows)
	}
}

func (c *chartsTab) render(cw int, compact bool) string {
	t := theme.Active
	if c.err != nil {
		return components.ContentCard("Charts", errLineStyle().Render(c.err.Error()), cw)
	}

	sym := c.prefs.CurrencySymbol
	inner := components.CardInnerWidth(cw)
	var b strings.Builder

	// Income vs expenditure, most recent months last
	flows := c.flows
	if len(flows) > 6 {
		flows = flows[len(flows)-6:]
	}
	maxFlow := 0.0
	for _, f := range flows {
		maxFlow = max(maxFlow, max(f.Income, f.Expenditure))
	}
	labelW := 8
	barMax := inner - labelW - 16
	if barMax < 10 {
		barMax = 10
	}

	legendStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	var flowBody strings.Builder
	flowBody.WriteString(legendStyle.Render("income / spent"))
	flowBody.WriteString("\n")
	for i, f := range flows {
		flowBody.WriteString(components.HBarRow(
			cli.FormatMonth(f.Month), cli.FormatMoney(sym, f.Income),
			f.Income, maxFlow, labelW, barMax, t.Green))
		flowBody.WriteString("\n")
		flowBody.WriteString(components.HBarRow(
			"", cli.FormatMoney(sym, f.Expenditure),
			f.Expenditure, maxFlow, labelW, barMax, t.Orange))
		if i < len(flows)-1 {
			flowBody.WriteString("\n")
		}
	}
	b.WriteString(components.ContentCard("Monthly Cash Flow", flowBody.String(), cw))
	b.WriteString("\n")

	// Second row: category ranking beside the share breakdown. The two
	// stack on narrow terminals.
	if compact {
		b.WriteString(components.ContentCard("Top Categories · all time", c.renderTopList(cw, sym), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Category Share", c.renderShareList(cw), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Top Categories · all time", c.renderTopList(halves[0], sym), halves[0]),
			components.ContentCard("Category Share", c.renderShareList(halves[1]), halves[1]),
		}))
	}

	return b.String()
}

func (c *chartsTab) renderTopList(cardW int, sym string) string {
	t := theme.Active
	if len(c.top) == 0 {
		return mutedLineStyle().Render("No expenses yet")
	}

	maxTotal := c.top[0].Total
	labelW := 14
	barMax := components.CardInnerWidth(cardW) - labelW - 16
	if barMax < 8 {
		barMax = 8
	}

	var b strings.Builder
	for i, ct := range c.top {
		b.WriteString(components.HBarRow(
			truncStr(ct.Category, labelW),
			cli.FormatMoney(sym, ct.Total),
			ct.Total, maxTotal, labelW, barMax, t.Blue))
		if i < len(c.top)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (c *chartsTab) renderShareList(cardW int) string {
	t := theme.Active
	var total float64
	for _, s := range c.share {
		total += s.Value
	}
	if len(c.share) == 0 || total == 0 {
		return mutedLineStyle().Render("No expenses yet")
	}

	labelW := 14
	barMax := components.CardInnerWidth(cardW) - labelW - 10
	if barMax < 8 {
		barMax = 8
	}

	colors := []lipgloss.Color{t.Cyan, t.Magenta, t.Yellow, t.Green, t.Blue, t.Orange, t.TextMuted}

	var b strings.Builder
	for i, s := range c.share {
		share := s.Value / total
		b.WriteString(components.HBarRow(
			truncStr(s.Label, labelW),
			fmt.Sprintf("%5.1f%%", share*100),
			s.Value, c.share[0].Value, labelW, barMax, colors[i%len(colors)]))
		if i < len(c.share)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
