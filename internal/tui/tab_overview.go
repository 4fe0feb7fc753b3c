package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/ledger"
	"github.com/avikothari/bling/internal/model"
	"github.com/avikothari/bling/internal/pipeline"
	"github.com/avikothari/bling/internal/tui/components"
	"github.com/avikothari/bling/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// overviewTab shows the current month at a glance: headline figures, the
// spending trend, and the most recent rows.
type overviewTab struct {
	led *ledger.Ledger

	rows    []model.Expense
	incomes map[string]float64
	prefs   model.Preferences
	flows   []model.MonthFlow
	err     error
}

func newOverviewTab(led *ledger.Ledger) *overviewTab {
	return &overviewTab{led: led}
}

func (o *overviewTab) Refresh() {
	o.rows, o.err = o.led.Expenses()
	if o.err != nil {
		return
	}
	o.incomes, o.err = o.led.Incomes()
	if o.err != nil {
		return
	}
	o.prefs = o.led.Preferences()
	o.flows = pipeline.MonthFlows(o.rows, o.incomes, pipeline.CurrentMonth())
}

func (o *overviewTab) render(cw int, compact bool) string {
	t := theme.Active
	if o.err != nil {
		return components.ContentCard("Overview", errLineStyle().Render(o.err.Error()), cw)
	}

	sym := o.prefs.CurrencySymbol
	month := pipeline.CurrentMonth()
	monthTotals := pipeline.TotalsByMonth(o.rows, month)
	income := o.incomes[month]
	spent := monthTotals[month]
	balance := income - spent

	var allTime float64
	for _, r := range o.rows {
		allTime += pipeline.NormalizeAmount(r.Amount)
	}

	var b strings.Builder

	// Row 1: headline metric cards
	balanceColor := t.Green
	balanceNote := ""
	if balance < 0 {
		balanceColor = t.Red
		balanceNote = "overspent"
	} else if balance >= model.SavingsThreshold {
		balanceNote = "room to save"
	}
	incomeNote := cli.FormatMonth(month)
	if income == 0 {
		incomeNote = "not set · press i"
	}

	metrics := []components.Metric{
		{Label: "Income", Value: cli.FormatMoney(sym, income), Note: incomeNote, Color: t.Cyan},
		{Label: "Spent", Value: cli.FormatMoney(sym, spent), Note: cli.FormatCount(len(pipeline.RowsForMonth(o.rows, month)), "row"), Color: t.Orange},
		{Label: "Balance", Value: cli.FormatMoney(sym, balance), Note: balanceNote, Color: balanceColor},
		{Label: "All Time", Value: cli.FormatMoney(sym, allTime), Note: cli.FormatCount(len(o.rows), "row")},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: monthly spending trend
	if len(o.flows) > 0 {
		months := o.flows
		if len(months) > 12 {
			months = months[len(months)-12:]
		}
		vals := make([]float64, len(months))
		labels := make([]string, len(months))
		for i, f := range months {
			vals[i] = f.Expenditure
			labels[i] = shortMonthLabel(f.Month)
		}
		chartH := 10
		if compact {
			chartH = 7
		}
		b.WriteString(components.ContentCard(
			"Monthly Spending",
			components.BarChart(vals, labels, t.Blue, components.CardInnerWidth(cw), chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: budget utilization, only when a budget is configured
	if o.prefs.DefaultMonthlyBudget > 0 {
		pct := spent / o.prefs.DefaultMonthlyBudget
		body := components.UtilizationBar(cli.FormatMonth(month), pct, 10, components.CardInnerWidth(cw)-28) +
			"\n" + mutedLineStyle().Render(fmt.Sprintf("%s of %s budget",
			cli.FormatMoney(sym, spent), cli.FormatMoney(sym, o.prefs.DefaultMonthlyBudget)))
		b.WriteString(components.ContentCard("Budget", body, cw))
		b.WriteString("\n")
	}

	// Row 4: recent rows next to the month's top categories
	halves := components.LayoutRow(cw, 2)

	recent := o.rows
	if len(recent) > 6 {
		recent = recent[len(recent)-6:]
	}
	var recentBody strings.Builder
	if len(recent) == 0 {
		recentBody.WriteString(mutedLineStyle().Render("No expenses yet · press a"))
	}
	innerW := components.CardInnerWidth(halves[0])
	for i := len(recent) - 1; i >= 0; i-- {
		r := recent[i]
		line := fmt.Sprintf("%-10s  %s  %s",
			truncStr(r.Date, 10),
			cli.PadLabel(truncStr(r.Category, 14), 14),
			r.Amount)
		recentBody.WriteString(truncStr(line, innerW))
		if i > 0 {
			recentBody.WriteString("\n")
		}
	}

	top := pipeline.TopCategories(pipeline.RowsForMonth(o.rows, month), 5)
	var topBody strings.Builder
	if len(top) == 0 {
		topBody.WriteString(mutedLineStyle().Render(fmt.Sprintf("No expenses found for %s", month)))
	}
	maxTotal := 0.0
	for _, ct := range top {
		maxTotal = max(maxTotal, ct.Total)
	}
	barMax := components.CardInnerWidth(halves[1]) - 30
	if barMax < 8 {
		barMax = 8
	}
	for i, ct := range top {
		topBody.WriteString(components.HBarRow(
			truncStr(ct.Category, 12),
			cli.FormatMoney(sym, ct.Total),
			ct.Total, maxTotal, 12, barMax, t.Green))
		if i < len(top)-1 {
			topBody.WriteString("\n")
		}
	}

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Recent Expenses", recentBody.String(), halves[0]),
		components.ContentCard(fmt.Sprintf("Top Categories · %s", cli.FormatMonth(month)), topBody.String(), halves[1]),
	}))

	return b.String()
}

// shortMonthLabel turns "2025-07" into "Jul", keeping the raw text when it
// does not parse.
func shortMonthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("Jan")
}

func mutedLineStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Background(theme.Active.Surface)
}

func errLineStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Active.Red).Background(theme.Active.Surface)
}
