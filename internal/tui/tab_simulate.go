package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/model"
	"github.com/theirongolddev/budgettdb/internal/tui/components"
	"github.com/theirongolddev/budgettdb/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// unboundedTransfer is the slider ceiling before a source is picked.
const unboundedTransfer = 50

// simState tracks the reallocation simulator.
type simState struct {
	cursor  int
	state   model.SimulationState
	editing bool
	input   textinput.Model
}

func (a App) simCandidates() []model.BudgetSection {
	return calc.TransferCandidates(a.data.Sections)
}

func (a App) simSource() (model.BudgetSection, bool) {
	for _, s := range a.simCandidates() {
		if s.ID == a.sim.state.SourceID {
			return s, true
		}
	}
	return model.BudgetSection{}, false
}

// simMax is the upper bound of the amount slider.
func (a App) simMax() float64 {
	if src, ok := a.simSource(); ok {
		return max(1, calc.MaxTransfer(src))
	}
	return unboundedTransfer
}

func (a *App) setSimAmount(v float64) {
	if math.IsNaN(v) {
		return
	}
	a.sim.state.Amount = max(1, min(v, a.simMax()))
}

// parseAmount reads a finite amount above zero, accepting a decimal comma.
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

func (a App) defaultTransfer() float64 {
	if a.cfg.Simulation.DefaultAmount > 0 {
		return a.cfg.Simulation.DefaultAmount
	}
	return calc.DefaultTransfer
}

func (a *App) updateSimKey(key string) (bool, tea.Cmd) {
	cands := a.simCandidates()
	var under model.BudgetSection
	if a.sim.cursor < len(cands) {
		under = cands[a.sim.cursor]
	}
	st := &a.sim.state

	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "s":
		switch under.ID {
		case "":
		case st.SourceID:
			st.ClearSource(a.defaultTransfer())
		case st.TargetID:
			a.flash = "Le poste cible ne peut pas être la source"
		default:
			st.SourceID = under.ID
			a.setSimAmount(st.Amount)
		}
	case "t":
		switch under.ID {
		case "":
		case st.TargetID:
			st.ClearTarget(a.defaultTransfer())
		case st.SourceID:
			a.flash = "Le poste source ne peut pas être la cible"
		default:
			st.TargetID = under.ID
		}
	case "+", "=":
		a.setSimAmount(st.Amount + 1)
	case "-":
		a.setSimAmount(st.Amount - 1)
	case ">", ".":
		a.setSimAmount(st.Amount + 5)
	case "<", ",":
		a.setSimAmount(st.Amount - 5)
	case "a":
		ti := textinput.New()
		ti.Placeholder = fmt.Sprintf("1-%s", strconv.FormatFloat(a.simMax(), 'f', -1, 64))
		ti.CharLimit = 8
		ti.Width = 12
		ti.SetValue(strconv.FormatFloat(st.Amount, 'f', -1, 64))
		ti.Focus()
		a.sim.input = ti
		a.sim.editing = true
		return true, ti.Cursor.BlinkCmd()
	case "x":
		st.Reset(a.defaultTransfer())
	default:
		return false, nil
	}
	return true, nil
}

func (a App) updateSimInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.sim.editing = false
		v, ok := parseAmount(a.sim.input.Value())
		if !ok {
			a.flash = "Montant invalide: " + a.sim.input.Value()
			return a, nil
		}
		a.setSimAmount(v)
		return a, nil
	case "esc":
		a.sim.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.sim.input, cmd = a.sim.input.Update(msg)
	return a, cmd
}

func (a App) renderSimulateTab(cw int) string {
	t := theme.Active
	st := a.sim.state
	cands := a.simCandidates()

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	srcStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	dstStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	widths := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		widths = []int{cw, cw}
	}

	// Left: section picker + amount
	listW := components.CardInnerWidth(widths[0])
	amountW := 12
	var pick strings.Builder
	for i, s := range cands {
		tag := "   "
		tagStyle := mutedStyle
		switch s.ID {
		case st.SourceID:
			tag, tagStyle = "[S]", srcStyle
		case st.TargetID:
			tag, tagStyle = "[C]", dstStyle
		}
		nameW := max(8, listW-2-4-amountW)
		name := padCell(truncStr(s.Icon+" "+s.Title, nameW), nameW)
		amount := padCellLeft(cli.FormatMd(s.TotalAmount), amountW)
		if i == a.sim.cursor {
			pick.WriteString(markerStyle.Render("▸ "))
			pick.WriteString(tagStyle.Background(t.SurfaceBright).Render(tag))
			pick.WriteString(selStyle.Render(" " + name + amount))
		} else {
			pick.WriteString(rowStyle.Render("  "))
			pick.WriteString(tagStyle.Render(tag))
			pick.WriteString(rowStyle.Render(" " + name + amount))
		}
		pick.WriteString("\n")
	}
	pick.WriteString("\n")

	maxAmt := a.simMax()
	pick.WriteString(mutedStyle.Render("Montant transféré  "))
	if a.sim.editing {
		pick.WriteString(a.sim.input.View())
	} else {
		pick.WriteString(accentStyle.Render(cli.FormatMd(st.Amount)))
		pick.WriteString(mutedStyle.Render(" / " + cli.FormatMd(maxAmt)))
	}
	pick.WriteString("\n")
	pick.WriteString(components.HBar(st.Amount, maxAmt, max(8, listW), t.Accent))
	pick.WriteString("\n\n")
	pick.WriteString(mutedStyle.Render("[s] source  [t] cible  [+/-] ±1  [>/<] ±5"))
	pick.WriteString("\n")
	pick.WriteString(mutedStyle.Render("[a] saisir montant  [x] réinitialiser"))

	pickCard := components.ContentCard("Réallocation", pick.String(), widths[0])

	// Right: result
	var res strings.Builder
	if !st.Ready() {
		res.WriteString(mutedStyle.Render("Sélectionnez un poste source et un poste cible"))
		res.WriteString("\n")
		res.WriteString(mutedStyle.Render("pour lancer la simulation"))
	} else {
		result := calc.SimulateReallocation(a.data.Sections, st.SourceID, st.TargetID, st.Amount)
		res.WriteString(a.renderSimResult(result, components.CardInnerWidth(widths[1])))
	}
	resCard := components.ContentCard("Impact estimé", res.String(), widths[1])

	if a.isCompactLayout() {
		return pickCard + "\n" + resCard
	}
	return components.CardRow([]string{pickCard, resCard})
}

func (a App) renderSimResult(result model.SimulationResult, innerW int) string {
	t := theme.Active
	st := a.sim.state

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	srcStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	dstStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)

	if err := calc.SimulationErr(result, st.SourceID, st.TargetID); err != nil {
		return srcStyle.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(srcStyle.Render(result.SourceImpact))
	b.WriteString("\n")
	b.WriteString(dstStyle.Render(result.TargetImpact))
	b.WriteString("\n\n")

	labelW := max(12, innerW-12-12-16)
	b.WriteString(headerStyle.Render(padCell("Poste", labelW) + padCellLeft("Avant", 12) +
		padCellLeft("Après", 12) + padCellLeft("Efficience", 16)))
	b.WriteString("\n")

	for i, after := range result.NewSections {
		if after.ID != st.SourceID && after.ID != st.TargetID {
			continue
		}
		before := a.data.Sections[i]
		style := dstStyle
		if after.ID == st.SourceID {
			style = srcStyle
		}
		eff := fmt.Sprintf("%s → %s", cli.FormatScore(before.Efficiency), cli.FormatScore(after.Efficiency))
		b.WriteString(rowStyle.Render(padCell(truncStr(after.Title, labelW), labelW)))
		b.WriteString(mutedStyle.Render(padCellLeft(cli.FormatMd(before.TotalAmount), 12)))
		b.WriteString(style.Render(padCellLeft(cli.FormatMd(after.TotalAmount), 12)))
		b.WriteString(style.Render(padCellLeft(eff, 16)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	beforeAvg := calc.AverageEfficiency(a.data.Sections)
	afterAvg := calc.AverageEfficiency(result.NewSections)
	b.WriteString(mutedStyle.Render("Nouvelle efficience moyenne "))
	b.WriteString(rowStyle.Render(fmt.Sprintf("%s → %s", cli.FormatScore(beforeAvg), cli.FormatScore(afterAvg))))
	b.WriteString("\n")

	beforeScore := a.health.Score
	afterScore := calc.BudgetHealthScore(a.data.Deficit, a.data.DebtRatio, afterAvg)
	b.WriteString(mutedStyle.Render("Score santé                 "))
	b.WriteString(lipgloss.NewStyle().Foreground(components.ColorForScore(float64(afterScore))).Background(t.Surface).Bold(true).
		Render(fmt.Sprintf("%d → %d", beforeScore, afterScore)))

	return b.String()
}
