package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/ledger"
	"github.com/avikothari/bling/internal/plan"
	"github.com/avikothari/bling/internal/tui/components"
	"github.com/avikothari/bling/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const (
	plannerFieldMonthly = iota
	plannerFieldRate
	plannerFieldYears
	plannerFieldGoal
	plannerFieldCount // sentinel
)

var plannerFieldLabels = [plannerFieldCount]string{
	"Monthly amount",
	"Annual return %",
	"Years",
	"Goal (optional)",
}

// plannerTab is the savings calculator. Fields are edited one at a time in
// the settings-tab manner and every commit recomputes the projection.
type plannerTab struct {
	led      *ledger.Ledger
	currency string

	cursor  int
	editing bool
	input   textinput.Model

	fields [plannerFieldCount]string

	result   *plan.Projection
	inputErr string
}

func newPlannerTab(led *ledger.Ledger) *plannerTab {
	p := &plannerTab{led: led}
	p.fields[plannerFieldMonthly] = "5000"
	p.fields[plannerFieldRate] = "12"
	p.fields[plannerFieldYears] = "10"
	p.compute()
	return p
}

func (p *plannerTab) Refresh() {
	p.currency = p.led.Preferences().CurrencySymbol
}

func (p *plannerTab) moveCursor(delta int) {
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= plannerFieldCount {
		p.cursor = plannerFieldCount - 1
	}
}

func (p *plannerTab) startEdit() {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 20
	ti.Placeholder = "0"
	if p.cursor == plannerFieldGoal {
		ti.Placeholder = "leave empty to skip"
	}
	ti.SetValue(p.fields[p.cursor])
	ti.Focus()
	p.input = ti
	p.editing = true
}

func (p *plannerTab) commitEdit() {
	p.fields[p.cursor] = strings.TrimSpace(p.input.Value())
	p.editing = false
	p.compute()
}

func (p *plannerTab) cancelEdit() {
	p.editing = false
}

func (p *plannerTab) compute() {
	p.result = nil
	p.inputErr = ""

	monthly, err := strconv.ParseFloat(p.fields[plannerFieldMonthly], 64)
	if err != nil {
		p.inputErr = "monthly amount must be a number"
		return
	}
	rate, err := strconv.ParseFloat(p.fields[plannerFieldRate], 64)
	if err != nil {
		p.inputErr = "annual return must be a number"
		return
	}
	years, err := strconv.ParseFloat(p.fields[plannerFieldYears], 64)
	if err != nil {
		p.inputErr = "years must be a number"
		return
	}

	var goal *float64
	if g := p.fields[plannerFieldGoal]; g != "" {
		v, err := strconv.ParseFloat(g, 64)
		if err != nil {
			p.inputErr = "goal must be a number"
			return
		}
		goal = &v
	}

	proj, err := plan.Project(monthly, rate, years, goal)
	if err != nil {
		p.inputErr = err.Error()
		return
	}
	p.result = &proj
}

func (p *plannerTab) render(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	var formBody strings.Builder
	for i := 0; i < plannerFieldCount; i++ {
		label := plannerFieldLabels[i]
		value := p.fields[i]
		if value == "" {
			value = "(not set)"
		}

		if p.editing && i == p.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-16s ", label)))
			formBody.WriteString(p.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == p.cursor {
			marker := markerStyle.Render("▸ ")
			lbl := selectedLabelStyle.Render(fmt.Sprintf("%-16s ", label+":"))
			val := selectedStyle.Render(value)
			formBody.WriteString(marker)
			formBody.WriteString(lbl)
			formBody.WriteString(val)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(lbl) + lipgloss.Width(val)
			padLen := components.CardInnerWidth(cw) - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", label+":")))
			formBody.WriteString(valueStyle.Render(value))
		}
		formBody.WriteString("\n")
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var b strings.Builder
	b.WriteString(components.ContentCard("Savings Plan", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Projection", p.renderResult(cw), cw))
	return b.String()
}

func (p *plannerTab) renderResult(cw int) string {
	t := theme.Active

	if p.inputErr != "" {
		return errLineStyle().Render(p.inputErr)
	}
	if p.result == nil {
		return mutedLineStyle().Render("Fill in the fields above")
	}

	r := p.result
	bigStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	b.WriteString(mutedLineStyle().Render("Future value"))
	b.WriteString("\n")
	b.WriteString(bigStyle.Render(cli.FormatMoney(p.currency, r.FutureValue)))
	b.WriteString("\n")
	b.WriteString(mutedLineStyle().Render(fmt.Sprintf("%d contributions of %s at %.1f%% over %.1f years",
		r.Periods, cli.FormatMoney(p.currency, r.Monthly), r.AnnualRate, r.Years)))

	if r.HasGoal {
		b.WriteString("\n\n")
		b.WriteString(textStyle.Render(fmt.Sprintf("Goal %s needs %s per month",
			cli.FormatMoney(p.currency, r.Goal),
			cli.FormatMoney(p.currency, r.RequiredMonthly))))
		if r.Goal > 0 {
			b.WriteString("\n")
			barW := components.CardInnerWidth(cw) - 10
			if barW < 10 {
				barW = 10
			}
			b.WriteString(components.ProgressBar(r.FutureValue/r.Goal, barW))
		}
	} else {
		b.WriteString("\n\n")
		b.WriteString(mutedLineStyle().Render("Set a goal to size the contribution"))
	}

	b.WriteString("\n\n")
	b.WriteString(mutedLineStyle().Render("Automate the transfer via your bank or fund platform."))

	return b.String()
}
