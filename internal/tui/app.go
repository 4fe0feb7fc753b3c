// Package tui provides the interactive Bubble Tea dashboard for bling.
package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avikothari/bling/internal/chart"
	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/config"
	"github.com/avikothari/bling/internal/ledger"
	"github.com/avikothari/bling/internal/pipeline"
	"github.com/avikothari/bling/internal/report"
	"github.com/avikothari/bling/internal/store"
	"github.com/avikothari/bling/internal/sysopen"
	"github.com/avikothari/bling/internal/tui/components"
	"github.com/avikothari/bling/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tab indices, matching components.Tabs order.
const (
	tabOverview = iota
	tabExpenses
	tabCharts
	tabPlanner
	tabAdvice
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	noticeTTL = 4 * time.Second
)

// loadDoneMsg signals that the initial ledger read should run.
type loadDoneMsg struct{}

// clearNoticeMsg expires the status bar notice identified by seq.
type clearNoticeMsg struct{ seq int }

// App is the root Bubble Tea model. Tab views live behind pointers shared
// through the registry, so the refresh broadcast after a mutation reaches
// them regardless of how often bubbletea copies the model value.
type App struct {
	led *ledger.Ledger
	cfg config.Config
	reg *Registry

	overview *overviewTab
	expenses *expensesTab
	charts   *chartsTab
	planner  *plannerTab
	advice   *adviceTab
	settings *settingsTab

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	loaded    bool

	notice    string
	noticeSeq int

	spinner spinner.Model

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	// Record forms (add, edit, income, delete, preferences)
	modal *modalState
}

// NewApp creates the TUI app model rooted at the given ledger.
func NewApp(led *ledger.Ledger, cfg config.Config) App {
	// The preferences read path creates the file on first access, so the
	// first-run probe has to stat before any tab touches preferences.
	_, statErr := os.Stat(led.PreferencesPath())
	rows, _ := led.Expenses()
	needSetup := errors.Is(statErr, os.ErrNotExist) && len(rows) == 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	reg := NewRegistry()
	a := App{
		led:       led,
		cfg:       cfg,
		reg:       reg,
		spinner:   sp,
		needSetup: needSetup,
		setupVals: &setupValues{},
	}

	a.overview = reg.GetOrCreate("overview", func() View { return newOverviewTab(led) }).(*overviewTab)
	a.expenses = reg.GetOrCreate("expenses", func() View { return newExpensesTab(led) }).(*expensesTab)
	a.charts = reg.GetOrCreate("charts", func() View { return newChartsTab(led) }).(*chartsTab)
	a.planner = reg.GetOrCreate("planner", func() View { return newPlannerTab(led) }).(*plannerTab)
	a.advice = reg.GetOrCreate("advice", func() View { return newAdviceTab(led) }).(*adviceTab)
	a.settings = reg.GetOrCreate("settings", func() View { return newSettingsTab(led) }).(*settingsTab)

	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		func() tea.Msg { return loadDoneMsg{} },
	)
}

// withNotice shows text in the status bar and schedules its expiry.
func (a App) withNotice(text string) (tea.Model, tea.Cmd) {
	a.notice = text
	a.noticeSeq++
	seq := a.noticeSeq
	return a, tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case loadDoneMsg:
		// Every tab does its initial read here, inside Update, so no view
		// renders half-loaded state.
		a.reg.BroadcastRefresh()
		a.loaded = true

		if a.needSetup {
			a.setupForm = newSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case clearNoticeMsg:
		if msg.seq == a.noticeSeq {
			a.notice = ""
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.modal != nil || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabExpenses {
				a.expenses.moveCursor(-1)
			}
			return a, nil
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabExpenses {
				a.expenses.moveCursor(1)
			}
			return a, nil
		case tea.MouseButtonLeft:
			// Tab bar is the first row
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}

		// First-run setup intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// An open record form intercepts all keys
		if a.modal != nil {
			return a.updateModal(msg)
		}

		// Inline field editors
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		if a.activeTab == tabPlanner && a.planner.editing {
			return a.updatePlannerInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Expenses tab keybindings
		if a.activeTab == tabExpenses {
			switch key {
			case "j", "down":
				a.expenses.moveCursor(1)
				return a, nil
			case "k", "up":
				a.expenses.moveCursor(-1)
				return a, nil
			case "g":
				a.expenses.jumpTop()
				return a, nil
			case "G":
				a.expenses.jumpBottom()
				return a, nil
			case "a":
				a.modal = newAddModal(a.led.Preferences().CurrencySymbol)
				return a, a.modal.form.Init()
			case "e":
				row, idx, ok := a.expenses.selected()
				if !ok {
					return a.withNotice("Row unavailable.")
				}
				a.modal = newEditModal(idx, row)
				return a, a.modal.form.Init()
			case "d":
				row, idx, ok := a.expenses.selected()
				if !ok {
					return a.withNotice("Row unavailable.")
				}
				a.modal = newDeleteModal(idx, row)
				return a, a.modal.form.Init()
			case "i":
				a.modal = newIncomeModal(pipeline.CurrentMonth())
				return a, a.modal.form.Init()
			case "o":
				if err := sysopen.Open(a.led.ExpensesPath()); err != nil {
					return a.withNotice("Open failed: " + err.Error())
				}
				return a.withNotice("Opened " + ledger.ExpenseFile)
			}
		}

		// Planner tab navigation (non-editing mode)
		if a.activeTab == tabPlanner {
			switch key {
			case "j", "down":
				a.planner.moveCursor(1)
				return a, nil
			case "k", "up":
				a.planner.moveCursor(-1)
				return a, nil
			case "enter":
				a.planner.startEdit()
				return a, a.planner.input.Cursor.BlinkCmd()
			}
		}

		// Advice tab keybindings
		if a.activeTab == tabAdvice {
			switch key {
			case "[":
				a.advice.pageMonth(-1)
				return a, nil
			case "]":
				a.advice.pageMonth(1)
				return a, nil
			case "r":
				return a.runReport()
			case "p":
				a.modal = newPrefsModal(a.led.Preferences())
				return a, a.modal.form.Init()
			}
		}

		// Settings tab navigation (non-editing mode)
		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				a.settings.moveCursor(1)
				return a, nil
			case "k", "up":
				a.settings.moveCursor(-1)
				return a, nil
			case "enter":
				a.settings.startEdit()
				return a, a.settings.input.Cursor.BlinkCmd()
			}
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Manual refresh
		if key == "r" {
			a.reg.BroadcastRefresh()
			return a.withNotice("Refreshed")
		}

		// Tab navigation
		switch key {
		case "1", "2", "3", "4", "5", "6":
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		case "tab", "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		case "shift+tab", "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to active forms (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.modal != nil {
		return a.updateModal(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		err := a.applySetup()
		a.needSetup = false
		a.setupForm = nil
		a.reg.BroadcastRefresh()
		if err != nil {
			return a.withNotice("Setup failed: " + err.Error())
		}
		return a.withNotice("Preferences saved")
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.modal.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.modal.form = f
	}

	if a.modal.form.State == huh.StateCompleted {
		m := a.modal
		a.modal = nil
		notice, err := a.applyModal(m)
		if err != nil {
			if errors.Is(err, ledger.ErrRowUnavailable) {
				return a.withNotice("Row unavailable.")
			}
			return a.withNotice(err.Error())
		}
		a.reg.BroadcastRefresh()
		if notice == "" {
			return a, nil
		}
		return a.withNotice(notice)
	}

	if a.modal.form.State == huh.StateAborted {
		a.modal = nil
		return a, nil
	}

	return a, cmd
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.save()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		a.reg.BroadcastRefresh()
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a App) updatePlannerInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.planner.commitEdit()
		return a, nil
	case "esc":
		a.planner.cancelEdit()
		return a, nil
	}

	var cmd tea.Cmd
	a.planner.input, cmd = a.planner.input.Update(msg)
	return a, cmd
}

// runReport exports the advice tab's month and records it in the export
// history. Font problems degrade to the PNG and CSV pair.
func (a App) runReport() (tea.Model, tea.Cmd) {
	month := a.advice.month
	outDir := a.cfg.ReportsPath(a.led.Dir())
	outPath := filepath.Join(outDir, fmt.Sprintf("report-%s.pdf", month))

	ex := report.Exporter{
		Currency:  a.advice.prefs.CurrencySymbol,
		FontPath:  a.cfg.FontPath,
		ChartSize: chart.Size{Width: a.cfg.ChartWidth, Height: a.cfg.ChartHeight},
	}
	res, err := ex.Month(a.advice.rows, a.advice.incomes, month, outPath)
	if err != nil {
		if errors.Is(err, report.ErrNoExpenses) {
			return a.withNotice(fmt.Sprintf("No expenses found for %s", month))
		}
		return a.withNotice("Report failed: " + err.Error())
	}

	a.recordExport(month, res)
	a.advice.lastReport = "Wrote " + strings.Join(res.Paths, ", ")

	if res.Degraded {
		return a.withNotice("PDF unavailable, wrote PNG and CSV")
	}
	return a.withNotice("Report saved")
}

// recordExport appends to the export history, best-effort.
func (a App) recordExport(month string, res report.Result) {
	h, err := store.Open(store.Path(a.led.Dir()))
	if err != nil {
		return
	}
	defer func() { _ = h.Close() }()
	_ = h.Record(month, res.Format, res.Paths[0])
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run setup form
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.modal != nil {
		return a.viewModal()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  bling needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ bling"))
	b.WriteString(subtitleStyle.Render(" · Personal Finance"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Reading ledger..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewModal() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	card := cardStyle.Render(a.modal.form.View())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	section := func(b *strings.Builder, title string, bindings []struct{ key, desc string }) {
		b.WriteString(sectionStyle.Render(title))
		b.WriteString("\n")
		for _, bind := range bindings {
			fmt.Fprintf(b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	section(&b, "Navigation", []struct{ key, desc string }{
		{"1-6", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"g G", "First / Last row"},
	})
	b.WriteString("\n")
	section(&b, "Expenses", []struct{ key, desc string }{
		{"a", "Add expense"},
		{"e", "Edit selected row"},
		{"d", "Delete selected row"},
		{"i", "Set monthly income"},
		{"o", "Open the CSV file"},
	})
	b.WriteString("\n")
	section(&b, "Advice", []struct{ key, desc string }{
		{"[ ]", "Earlier / Later month"},
		{"r", "Export report"},
		{"p", "Edit preferences"},
	})
	b.WriteString("\n")
	section(&b, "Actions", []struct{ key, desc string }{
		{"Enter", "Edit / Confirm"},
		{"Esc", "Back / Cancel"},
		{"r", "Reload data files"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	})

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + context pill
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pill := pillStyle.Render(" ") +
		pillAccentStyle.Render(cli.FormatMonth(pipeline.CurrentMonth())) +
		pillStyle.Render(" │ ") +
		pillAccentStyle.Render(a.expenses.prefs.CurrencySymbol) +
		pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		pillRowStyle.Render(pill)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.notice, len(a.expenses.rows), a.led.Dir())

	// 3. Content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Active tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.overview.render(cw, a.isCompactLayout())
	case tabExpenses:
		content = a.expenses.render(cw, contentH)
	case tabCharts:
		content = a.charts.render(cw, a.isCompactLayout())
	case tabPlanner:
		content = a.planner.render(cw)
	case tabAdvice:
		content = a.advice.render(cw, a.isCompactLayout())
	case tabSettings:
		content = a.settings.render(cw, a.led.Dir())
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width so gaps between cards keep the
	// background color
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center content when w > cw
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Fill the whole terminal in case the height math leaves a gap
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background
// color so partial-width lines do not leave unstyled cells.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1. Hitboxes
// are derived from the same width rules RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
