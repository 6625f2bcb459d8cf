package tui

import (
	"math"
	"strings"
	"testing"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/config"
	"github.com/theirongolddev/budgettdb/internal/dataset"
	"github.com/theirongolddev/budgettdb/internal/tui/components"
	"github.com/theirongolddev/budgettdb/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T, year int) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.ThemeEnv, "")
	t.Cleanup(func() { theme.SetActive(config.ThemeDark) })

	a := NewApp(year)
	a.needSetup = false
	a.setupForm = nil
	a.width = 160
	a.height = 50
	return a
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		m, _ := a.Update(keyMsg(k))
		next, ok := m.(App)
		if !ok {
			t.Fatalf("Update returned %T", m)
		}
		a = next
	}
	return a
}

func TestNewAppYearSelection(t *testing.T) {
	latest := dataset.Latest().Year

	if a := newTestApp(t, 0); a.year != latest {
		t.Errorf("default year = %d, want %d", a.year, latest)
	}
	if a := newTestApp(t, 2023); a.year != 2023 || a.data.Year != 2023 {
		t.Errorf("year = %d/%d, want 2023", a.year, a.data.Year)
	}
	if a := newTestApp(t, 1999); a.year != latest {
		t.Errorf("unknown year = %d, want fallback %d", a.year, latest)
	}
}

func TestNewAppNeedsSetupWithoutConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := NewApp(0)
	if !a.needSetup || a.setupForm == nil {
		t.Fatal("expected first-run setup form")
	}
}

func TestTabKeys(t *testing.T) {
	a := newTestApp(t, 0)
	for i, tab := range components.Tabs {
		a = press(t, a, string(tab.Key))
		if a.activeTab != i {
			t.Errorf("key %q -> tab %d, want %d", tab.Key, a.activeTab, i)
		}
	}

	a = press(t, a, "o", "left")
	if a.activeTab != len(components.Tabs)-1 {
		t.Errorf("left from first tab = %d, want wrap to last", a.activeTab)
	}
	a = press(t, a, "right")
	if a.activeTab != tabOverview {
		t.Errorf("right from last tab = %d, want 0", a.activeTab)
	}
}

func TestYearStepping(t *testing.T) {
	a := newTestApp(t, 2024)

	a = press(t, a, "[")
	if a.year != 2023 {
		t.Fatalf("[ -> %d, want 2023", a.year)
	}
	a = press(t, a, "[")
	if a.year != 2023 {
		t.Fatalf("[ at first year -> %d, want 2023", a.year)
	}
	a = press(t, a, "]", "]", "]")
	if a.year != 2025 {
		t.Fatalf("] past last year -> %d, want 2025", a.year)
	}
	if a.health != calc.YearHealth(a.data) {
		t.Error("health not recomputed after year change")
	}
}

func TestSectionsDrillDown(t *testing.T) {
	a := newTestApp(t, 0)
	a = press(t, a, "c", "j", "enter")
	if !a.sections.drill || a.sections.cursor != 1 {
		t.Fatalf("drill=%v cursor=%d, want drill on section 1", a.sections.drill, a.sections.cursor)
	}
	if !strings.Contains(a.View(), a.data.Sections[1].Title) {
		t.Error("drill-down view missing section title")
	}

	a = press(t, a, "esc")
	if a.sections.drill || a.activeTab != tabSections {
		t.Errorf("esc: drill=%v tab=%d", a.sections.drill, a.activeTab)
	}
}

func TestSimulateFlow(t *testing.T) {
	a := newTestApp(t, 0)
	cands := calc.TransferCandidates(a.data.Sections)

	a = press(t, a, "m", "s", "j", "t")
	st := a.sim.state
	if st.SourceID != cands[0].ID || st.TargetID != cands[1].ID {
		t.Fatalf("source/target = %q/%q, want %q/%q", st.SourceID, st.TargetID, cands[0].ID, cands[1].ID)
	}
	if !st.Ready() {
		t.Fatal("state should be ready")
	}
	if st.Amount != calc.DefaultTransfer {
		t.Errorf("amount = %v, want %v", st.Amount, calc.DefaultTransfer)
	}

	a = press(t, a, "+", ">")
	if a.sim.state.Amount != calc.DefaultTransfer+6 {
		t.Errorf("amount after +1 +5 = %v", a.sim.state.Amount)
	}
	if !strings.Contains(a.View(), a.data.Sections[1].Title+" : -") {
		t.Error("view missing source impact")
	}

	// Selecting the target row as source is refused.
	a = press(t, a, "s")
	if a.sim.state.SourceID != cands[0].ID || a.flash == "" {
		t.Errorf("source changed to %q, flash %q", a.sim.state.SourceID, a.flash)
	}

	for i := 0; i < 30; i++ {
		a = press(t, a, "<")
	}
	if a.sim.state.Amount != 1 {
		t.Errorf("amount floor = %v, want 1", a.sim.state.Amount)
	}
	for i := 0; i < 100; i++ {
		a = press(t, a, ">")
	}
	if want := calc.MaxTransfer(cands[0]); a.sim.state.Amount != want {
		t.Errorf("amount ceiling = %v, want %v", a.sim.state.Amount, want)
	}

	a = press(t, a, "x")
	if a.sim.state.SourceID != "" || a.sim.state.TargetID != "" || a.sim.state.Amount != calc.DefaultTransfer {
		t.Errorf("reset state = %+v", a.sim.state)
	}
	if !strings.Contains(a.View(), "Sélectionnez un poste source") {
		t.Error("empty simulation prompt missing")
	}
}

func TestSimulateClearSourceResets(t *testing.T) {
	a := newTestApp(t, 0)
	a = press(t, a, "m", "s", "j", "t", "k", "s")
	if a.sim.state.SourceID != "" || a.sim.state.TargetID != "" {
		t.Errorf("clearing source left %+v", a.sim.state)
	}
}

func TestSimulateTypedAmount(t *testing.T) {
	a := newTestApp(t, 0)
	a = press(t, a, "m", "a")
	if !a.sim.editing {
		t.Fatal("a should open the amount input")
	}
	a.sim.input.SetValue("7,5")
	a = press(t, a, "enter")
	if a.sim.editing || a.sim.state.Amount != 7.5 {
		t.Errorf("editing=%v amount=%v, want 7.5", a.sim.editing, a.sim.state.Amount)
	}

	a = press(t, a, "a")
	a.sim.input.SetValue("abc")
	a = press(t, a, "enter")
	if a.sim.state.Amount != 7.5 || a.flash == "" {
		t.Errorf("invalid input changed amount to %v (flash %q)", a.sim.state.Amount, a.flash)
	}
}

func TestSimulateRejectsNonFiniteAmount(t *testing.T) {
	a := newTestApp(t, 0)
	a = press(t, a, "m")
	before := a.sim.state.Amount
	for _, in := range []string{"nan", "NaN", "inf", "-Inf", "0", "-3"} {
		a = press(t, a, "a")
		a.sim.input.SetValue(in)
		a = press(t, a, "enter")
		if a.sim.state.Amount != before {
			t.Errorf("input %q changed amount to %v", in, a.sim.state.Amount)
		}
	}

	a.setSimAmount(math.NaN())
	if a.sim.state.Amount != before {
		t.Errorf("setSimAmount(NaN) stored %v", a.sim.state.Amount)
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]bool{
		"12":    true,
		" 7,5 ": true,
		"0.1":   true,
		"0":     false,
		"-1":    false,
		"nan":   false,
		"+Inf":  false,
		"1e400": false,
		"douze": false,
	}
	for in, ok := range cases {
		if _, got := parseAmount(in); got != ok {
			t.Errorf("parseAmount(%q) ok = %v, want %v", in, got, ok)
		}
	}
}

func TestThemeToggleIsPersisted(t *testing.T) {
	a := newTestApp(t, 0)
	a = press(t, a, "T")
	if theme.Active.Name != config.ThemeLight {
		t.Fatalf("active theme = %q, want light", theme.Active.Name)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Appearance.Theme != config.ThemeLight {
		t.Errorf("stored theme = %q, want light", cfg.Appearance.Theme)
	}
	a = press(t, a, "T")
	if theme.Active.Name != config.ThemeDark {
		t.Errorf("second toggle = %q, want dark", theme.Active.Name)
	}
}

func TestSettingsEditGDP(t *testing.T) {
	a := newTestApp(t, 0)
	a = press(t, a, "g", "j", "j", "j", "enter")
	if !a.settings.editing || a.settings.cursor != settingsFieldGDP {
		t.Fatalf("editing=%v cursor=%d", a.settings.editing, a.settings.cursor)
	}
	a.settings.input.SetValue("3000")
	a = press(t, a, "enter")
	if a.settings.saveErr != nil {
		t.Fatal(a.settings.saveErr)
	}
	if a.cfg.Comparison.GDP != 3000 {
		t.Errorf("gdp = %v, want 3000", a.cfg.Comparison.GDP)
	}
	cfg, _ := config.Load()
	if cfg.Comparison.GDP != 3000 {
		t.Errorf("stored gdp = %v, want 3000", cfg.Comparison.GDP)
	}
}

func TestSettingsRejectsNonFiniteNumbers(t *testing.T) {
	a := newTestApp(t, 0)
	a = press(t, a, "g", "j", "j", "j", "enter")
	a.settings.input.SetValue("nan")
	a = press(t, a, "enter")
	if a.settings.saveErr == nil {
		t.Fatal("expected an error for a NaN GDP")
	}

	a = press(t, a, "j", "enter")
	if a.settings.cursor != settingsFieldAmount {
		t.Fatalf("cursor = %d, want amount field", a.settings.cursor)
	}
	a.settings.input.SetValue("inf")
	a = press(t, a, "enter")
	if a.settings.saveErr == nil {
		t.Fatal("expected an error for an infinite amount")
	}
	if config.Exists() {
		t.Error("config written despite invalid value")
	}
}

func TestSettingsRejectsUnknownCountry(t *testing.T) {
	a := newTestApp(t, 0)
	a = press(t, a, "g", "j", "j", "enter")
	a.settings.input.SetValue("atlantide")
	a = press(t, a, "enter")
	if a.settings.saveErr == nil {
		t.Fatal("expected an error for an unknown country")
	}
	if config.Exists() {
		t.Error("config written despite invalid value")
	}
}

func TestMouseClickSelectsTab(t *testing.T) {
	a := newTestApp(t, 0)
	x := 1
	for i := 0; i < tabCompare; i++ {
		x += components.TabVisualWidth(components.Tabs[i], i == a.activeTab) + 1
	}
	m, _ := a.Update(tea.MouseMsg{X: x + 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != tabCompare {
		t.Errorf("click selected tab %d, want %d", got, tabCompare)
	}
}

func TestMouseWheelMovesCursor(t *testing.T) {
	a := newTestApp(t, 0)
	a = press(t, a, "p")
	start := a.compare.cursor
	m, _ := a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := m.(App).compare.cursor; got != start+1 {
		t.Errorf("wheel down cursor = %d, want %d", got, start+1)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t, 0)
	want := map[int]string{
		tabOverview:   "Santé budgétaire",
		tabSections:   "Postes budgétaires",
		tabEfficiency: "Efficience France vs moyenne OCDE",
		tabCompare:    "Économie potentielle",
		tabSimulate:   "Réallocation",
		tabTrends:     "Indicateurs macro",
		tabSettings:   "Réglages",
	}
	for tab, text := range want {
		a.activeTab = tab
		if v := a.View(); !strings.Contains(v, text) {
			t.Errorf("tab %d view missing %q", tab, text)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t, 0)
	a.width = 60
	if !strings.Contains(a.View(), "Terminal too narrow") {
		t.Error("expected narrow-terminal notice")
	}
}

func TestHelpToggle(t *testing.T) {
	a := newTestApp(t, 0)
	a = press(t, a, "?")
	if !a.showHelp || !strings.Contains(a.View(), "Raccourcis clavier") {
		t.Fatal("help not shown")
	}
	a = press(t, a, "q")
	if a.showHelp {
		t.Error("any key should close help")
	}
}
