// Package tui provides the interactive Bubble Tea dashboard for budgettdb.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/config"
	"github.com/theirongolddev/budgettdb/internal/dataset"
	"github.com/theirongolddev/budgettdb/internal/model"
	"github.com/theirongolddev/budgettdb/internal/tui/components"
	"github.com/theirongolddev/budgettdb/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tab indexes, in components.Tabs order.
const (
	tabOverview = iota
	tabSections
	tabEfficiency
	tabCompare
	tabSimulate
	tabTrends
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	cfg config.Config

	// Current fiscal year and what is derived from it
	years  []int
	year   int
	data   model.YearData
	health calc.Health

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string

	// Per-tab state
	sections sectionsState
	compare  compareState
	sim      simState
	trends   trendsState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5 // minimum content area height
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model. year 0 selects the configured default
// year, falling back to the latest one.
func NewApp(year int) App {
	cfg := loadConfigOrDefault()
	theme.SetActive(config.EffectiveTheme(cfg))

	a := App{
		cfg:       cfg,
		years:     dataset.Years(),
		needSetup: !config.Exists(),
	}
	a.sim.state.Reset(a.defaultTransfer())
	a.compare.cursor = a.peerIndex(cfg.Comparison.DefaultCountry)

	if year == 0 {
		year = cfg.General.DefaultYear
	}
	a.setYear(year)

	if a.needSetup {
		a.setupForm = newSetupForm(&a.setupVals, a.cfg)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// setYear switches the dashboard to year, or to the latest year when year
// is not in the dataset.
func (a *App) setYear(year int) {
	data, ok := dataset.Year(year)
	if !ok {
		data = dataset.Latest()
	}
	a.year = data.Year
	a.data = data
	a.recompute()
}

// stepYear moves delta years along the available list, clamped at the ends.
func (a *App) stepYear(delta int) {
	idx := 0
	for i, y := range a.years {
		if y == a.year {
			idx = i
		}
	}
	idx = max(0, min(idx+delta, len(a.years)-1))
	if a.years[idx] != a.year {
		a.setYear(a.years[idx])
		a.flash = fmt.Sprintf("Budget %d", a.year)
	}
}

func (a *App) recompute() {
	a.health = calc.YearHealth(a.data)

	if a.sections.cursor >= len(a.data.Sections) {
		a.sections.cursor = max(0, len(a.data.Sections)-1)
	}

	cands := calc.TransferCandidates(a.data.Sections)
	if a.sim.cursor >= len(cands) {
		a.sim.cursor = max(0, len(cands)-1)
	}
	// Keep the amount within the new year's bounds.
	if src, ok := a.simSource(); ok {
		a.sim.state.Amount = calc.ClampTransfer(a.sim.state.Amount, src)
	}

	if a.trends.cursor >= len(dataset.SectionIDs()) {
		a.trends.cursor = 0
	}
}

func (a *App) toggleTheme() {
	next := config.ToggleTheme(theme.Active.Name)
	theme.SetActive(next)

	cfg, err := config.SaveTheme(next)
	if err != nil {
		a.flash = "Thème non sauvegardé: " + err.Error()
		return
	}
	a.cfg = cfg
	a.flash = "Thème " + next
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

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.sim.editing || a.settings.editing {
		return a.updateTextInput(msg)
	}

	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		if tab := components.TabAt(a.activeTab, a.width, msg.X, msg.Y); tab >= 0 {
			a.activeTab = tab
		}
	}
	return a, nil
}

// moveCursor moves the list cursor of the active tab.
func (a *App) moveCursor(delta int) {
	step := func(cur, n int) int {
		return max(0, min(cur+delta, n-1))
	}
	switch a.activeTab {
	case tabSections:
		if !a.sections.drill {
			a.sections.cursor = step(a.sections.cursor, len(a.data.Sections))
		} else {
			a.sections.scroll = max(0, a.sections.scroll+delta)
		}
	case tabCompare:
		a.compare.cursor = step(a.compare.cursor, len(dataset.Peers()))
	case tabSimulate:
		a.sim.cursor = step(a.sim.cursor, len(calc.TransferCandidates(a.data.Sections)))
	case tabTrends:
		a.trends.cursor = step(a.trends.cursor, len(dataset.SectionIDs()))
	case tabSettings:
		a.settings.cursor = step(a.settings.cursor, settingsFieldCount)
	}
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Text inputs capture everything until Enter or Esc
	if a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if a.sim.editing {
		return a.updateSimInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	a.flash = ""

	// Tab-specific bindings
	var handled bool
	var cmd tea.Cmd
	switch a.activeTab {
	case tabSections:
		handled = a.updateSectionsKey(key)
	case tabCompare, tabTrends:
		switch key {
		case "j", "down":
			a.moveCursor(1)
			handled = true
		case "k", "up":
			a.moveCursor(-1)
			handled = true
		}
	case tabSimulate:
		handled, cmd = a.updateSimKey(key)
	case tabSettings:
		handled, cmd = a.updateSettingsKey(key)
	}
	if handled {
		return a, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "T":
		a.toggleTheme()
	case "[":
		a.stepYear(-1)
	case "]":
		a.stepYear(1)
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateTextInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if a.settings.editing {
		a.settings.input, cmd = a.settings.input.Update(msg)
	} else if a.sim.editing {
		a.sim.input, cmd = a.sim.input.Update(msg)
	}
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		if err := a.saveSetupConfig(); err != nil {
			a.flash = "Configuration non sauvegardée: " + err.Error()
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
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

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
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
		"\n  Terminal too narrow (%d cols)\n\n  budgettdb needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	type binding struct{ key, desc string }
	groups := []struct {
		title    string
		bindings []binding
	}{
		{"Navigation", []binding{
			{"o c e p m r g", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"[ ]", "Previous / Next year"},
			{"j k", "Navigate lists"},
			{"Enter Esc", "Open / Close detail"},
		}},
		{"Simulation", []binding{
			{"s t", "Pick source / target"},
			{"+ -", "Amount ±1 Md€"},
			{"> <", "Amount ±5 Md€"},
			{"a", "Type an amount"},
			{"x", "Reset"},
		}},
		{"General", []binding{
			{"T", "Toggle dark / light theme"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Raccourcis clavier"))
	b.WriteString("\n")
	for _, g := range groups {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(g.title))
		b.WriteString("\n")
		for _, bind := range g.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-14s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
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

	// 1. Header: tab bar + year pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var yearStr strings.Builder
	yearStr.WriteString(pillStyle.Render(" "))
	for i, y := range a.years {
		if i > 0 {
			yearStr.WriteString(pillStyle.Render(" │ "))
		}
		if y == a.year {
			yearStr.WriteString(pillAccent.Render(fmt.Sprintf("%d", y)))
		} else {
			yearStr.WriteString(pillStyle.Render(fmt.Sprintf("%d", y)))
		}
	}
	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" + rowStyle.Render(yearStr.String())

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.year, a.flash)

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabSections:
		content = a.renderSectionsTab(cw, contentH)
	case tabEfficiency:
		content = a.renderEfficiencyTab(cw)
	case tabCompare:
		content = a.renderCompareTab(cw)
	case tabSimulate:
		content = a.renderSimulateTab(cw)
	case tabTrends:
		content = a.renderTrendsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func (a App) peerIndex(id string) int {
	for i, p := range dataset.Peers() {
		if p.ID == id {
			return i
		}
	}
	return 0
}

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

// padCell left-aligns s in w display columns.
func padCell(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// padCellLeft right-aligns s in w display columns.
func padCellLeft(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
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
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
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
