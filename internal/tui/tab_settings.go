package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avikothari/bling/internal/config"
	"github.com/avikothari/bling/internal/ledger"
	"github.com/avikothari/bling/internal/model"
	"github.com/avikothari/bling/internal/tui/components"
	"github.com/avikothari/bling/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldBudget
	settingsFieldCount // sentinel
)

// settingsTab edits the app config (theme) and the preference record
// (currency, budget) in place. Everything else on screen is informational.
type settingsTab struct {
	led   *ledger.Ledger
	prefs model.Preferences

	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "Saved!" after a successful save
	saveErr error // non-nil if the last save failed
}

func newSettingsTab(led *ledger.Ledger) *settingsTab {
	return &settingsTab{led: led}
}

func (s *settingsTab) Refresh() {
	s.prefs = s.led.Preferences()
}

func (s *settingsTab) moveCursor(delta int) {
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= settingsFieldCount {
		s.cursor = settingsFieldCount - 1
	}
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (s *settingsTab) startEdit() {
	cfg, _ := config.Load()
	s.editing = true
	s.saved = false

	ti := newSettingsInput()
	switch s.cursor {
	case settingsFieldTheme:
		names := make([]string, len(theme.All))
		for i, t := range theme.All {
			names[i] = t.Name
		}
		ti.Placeholder = strings.Join(names, ", ")
		ti.SetValue(cfg.Theme)
	case settingsFieldCurrency:
		ti.Placeholder = strings.Join(model.CurrencyOptions, " ")
		ti.SetValue(s.prefs.CurrencySymbol)
	case settingsFieldBudget:
		ti.Placeholder = "0 clears the budget"
		ti.SetValue(strconv.FormatFloat(s.prefs.DefaultMonthlyBudget, 'f', -1, 64))
	}

	ti.Focus()
	s.input = ti
}

// save applies the edited field. Invalid values keep the last good value
// rather than surfacing a validation dialog.
func (s *settingsTab) save() {
	val := strings.TrimSpace(s.input.Value())

	switch s.cursor {
	case settingsFieldTheme:
		for _, t := range theme.All {
			if t.Name == val {
				cfg, _ := config.Load()
				cfg.Theme = val
				theme.SetActive(val)
				s.saveErr = config.Save(cfg)
				return
			}
		}
		s.saveErr = nil

	case settingsFieldCurrency:
		for _, opt := range model.CurrencyOptions {
			if opt == val {
				s.prefs.CurrencySymbol = val
				s.saveErr = s.led.SavePreferences(s.prefs)
				return
			}
		}
		s.saveErr = nil

	case settingsFieldBudget:
		var b float64
		if _, err := fmt.Sscanf(val, "%f", &b); err == nil && b >= 0 {
			s.prefs.DefaultMonthlyBudget = b
			s.saveErr = s.led.SavePreferences(s.prefs)
			return
		}
		s.saveErr = nil
	}
}

func (s *settingsTab) render(cw int, dataDir string) string {
	t := theme.Active
	cfg, _ := config.Load()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	budgetDisplay := "(not set)"
	if s.prefs.DefaultMonthlyBudget > 0 {
		budgetDisplay = strconv.FormatFloat(s.prefs.DefaultMonthlyBudget, 'f', -1, 64)
	}

	fields := []struct{ label, value string }{
		{"Theme", cfg.Theme},
		{"Currency symbol", s.prefs.CurrencySymbol},
		{"Monthly budget", budgetDisplay},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if s.editing && i == s.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(s.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == s.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			padLen := components.CardInnerWidth(cw) - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if s.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", s.saveErr)))
	} else if s.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Data directory:  ") + valueStyle.Render(dataDir) + "\n")
	infoBody.WriteString(labelStyle.Render("Expenses file:   ") + valueStyle.Render(ledger.ExpenseFile) + "\n")
	infoBody.WriteString(labelStyle.Render("Income file:     ") + valueStyle.Render(ledger.IncomeFile) + "\n")
	infoBody.WriteString(labelStyle.Render("Preferences:     ") + valueStyle.Render(ledger.PreferenceFile) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Files", infoBody.String(), cw))

	return b.String()
}
