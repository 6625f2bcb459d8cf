package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/budgettdb/internal/config"
	"github.com/theirongolddev/budgettdb/internal/dataset"
	"github.com/theirongolddev/budgettdb/internal/tui/components"
	"github.com/theirongolddev/budgettdb/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldYear
	settingsFieldCountry
	settingsFieldGDP
	settingsFieldAmount
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 30
	return ti
}

func (a *App) updateSettingsKey(key string) (bool, tea.Cmd) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "enter":
		return true, a.settingsStartEdit()
	default:
		return false, nil
	}
	return true, nil
}

func (a *App) settingsStartEdit() tea.Cmd {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = "dark, light"
		ti.SetValue(config.NormalizeTheme(cfg.Appearance.Theme))
	case settingsFieldYear:
		ti.Placeholder = yearsHint()
		if cfg.General.DefaultYear != 0 {
			ti.SetValue(strconv.Itoa(cfg.General.DefaultYear))
		}
	case settingsFieldCountry:
		ti.Placeholder = "allemagne, suede, ..."
		ti.SetValue(cfg.Comparison.DefaultCountry)
	case settingsFieldGDP:
		ti.Placeholder = "2800 (Md€)"
		ti.SetValue(strconv.FormatFloat(cfg.Comparison.GDP, 'f', -1, 64))
	case settingsFieldAmount:
		ti.Placeholder = "10 (Md€)"
		ti.SetValue(strconv.FormatFloat(cfg.Simulation.DefaultAmount, 'f', -1, 64))
	}

	ti.Focus()
	a.settings.input = ti
	return ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	a.settings.saveErr = nil
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		cfg.Appearance.Theme = config.NormalizeTheme(val)
		theme.SetActive(config.EffectiveTheme(cfg))
	case settingsFieldYear:
		if val == "" {
			cfg.General.DefaultYear = 0
			break
		}
		y, err := strconv.Atoi(val)
		if _, ok := dataset.Year(y); err != nil || !ok {
			a.settings.saveErr = fmt.Errorf("année inconnue %q (%s)", val, yearsHint())
			return
		}
		cfg.General.DefaultYear = y
	case settingsFieldCountry:
		id := strings.ToLower(val)
		if c, ok := dataset.Country(id); !ok || c.ID == dataset.FranceID {
			a.settings.saveErr = fmt.Errorf("pays inconnu %q", val)
			return
		}
		cfg.Comparison.DefaultCountry = id
		a.compare.cursor = a.peerIndex(id)
	case settingsFieldGDP:
		v, ok := parseAmount(val)
		if !ok {
			a.settings.saveErr = fmt.Errorf("PIB invalide %q", val)
			return
		}
		cfg.Comparison.GDP = v
	case settingsFieldAmount:
		v, ok := parseAmount(val)
		if !ok {
			a.settings.saveErr = fmt.Errorf("montant invalide %q", val)
			return
		}
		cfg.Simulation.DefaultAmount = v
	}

	a.settings.saveErr = config.Save(cfg)
	if a.settings.saveErr == nil {
		a.cfg = cfg
	}
}

func yearsHint() string {
	ys := dataset.Years()
	parts := make([]string, len(ys))
	for i, y := range ys {
		parts[i] = strconv.Itoa(y)
	}
	return strings.Join(parts, ", ")
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	yearDisplay := "(dernière)"
	if cfg.General.DefaultYear != 0 {
		yearDisplay = strconv.Itoa(cfg.General.DefaultYear)
	}
	countryDisplay := cfg.Comparison.DefaultCountry
	if c, ok := dataset.Country(cfg.Comparison.DefaultCountry); ok {
		countryDisplay = c.Flag + " " + c.Name
	}

	fields := []field{
		{"Thème", theme.Active.Name},
		{"Année par défaut", yearDisplay},
		{"Pays comparé", countryDisplay},
		{"PIB (Md€)", strconv.FormatFloat(cfg.Comparison.GDP, 'f', -1, 64)},
		{"Montant simulé", strconv.FormatFloat(cfg.Simulation.DefaultAmount, 'f', -1, 64) + " Md€"},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(padCell(f.label, 18) + " "))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			// Selected row with marker and highlight
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(padCell(f.label+":", 18) + " ")
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(padCell(f.label+":", 18) + " "))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Échec: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Enregistré"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Fichier config:  ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Années:          ") + valueStyle.Render(yearsHint()) + "\n")
	infoBody.WriteString(labelStyle.Render("Pays:            ") + valueStyle.Render(strconv.Itoa(len(dataset.Countries()))) + "\n")
	infoBody.WriteString(labelStyle.Render("Variable thème:  ") + valueStyle.Render(config.ThemeEnv))

	var b strings.Builder
	b.WriteString(components.ContentCard("Réglages", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Données", infoBody.String(), cw))

	return b.String()
}
