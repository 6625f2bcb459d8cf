package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/tui/components"
	"github.com/theirongolddev/budgettdb/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// sectionsState tracks the section list and its drill-down.
type sectionsState struct {
	cursor int
	drill  bool
	scroll int // first visible item row in drill-down
}

func (a *App) updateSectionsKey(key string) bool {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "enter":
		if len(a.data.Sections) > 0 {
			a.sections.drill = true
			a.sections.scroll = 0
		}
	case "esc", "backspace":
		if !a.sections.drill {
			return false
		}
		a.sections.drill = false
	default:
		return false
	}
	return true
}

func (a App) renderSectionsTab(cw, h int) string {
	if a.sections.drill && a.sections.cursor < len(a.data.Sections) {
		return a.renderSectionDetail(cw, h)
	}
	return a.renderSectionList(cw)
}

func (a App) renderSectionList(cw int) string {
	t := theme.Active
	shares := calc.SectionShares(a.data)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	innerW := components.CardInnerWidth(cw)
	titleW := max(16, innerW-2-12-9-11-14)

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("  %s%12s%9s%11s  %-12s",
		padCell("Poste", titleW), "Montant", "Part", "Efficience", "Statut")))
	body.WriteString("\n")

	for i, s := range shares {
		effColor := components.ColorForScore(s.Section.Efficiency)
		title := s.Section.Icon + " " + s.Section.Title
		cells := padCell(truncStr(title, titleW), titleW) +
			padCellLeft(cli.FormatMd(s.Section.TotalAmount), 12) +
			padCellLeft(cli.FormatPct(s.Percentage, false), 9)

		if i == a.sections.cursor {
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(selStyle.Render(cells))
			body.WriteString(selStyle.Foreground(effColor).Render(padCellLeft(cli.FormatScore(s.Section.Efficiency), 11)))
			body.WriteString(selStyle.Foreground(levelColor(s.Status.Level)).Render("  " + padCell(s.Status.Label, 12)))
			used := 2 + lipgloss.Width(cells) + 11 + 14
			if pad := innerW - used; pad > 0 {
				body.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			body.WriteString(rowStyle.Render("  " + cells))
			body.WriteString(rowStyle.Foreground(effColor).Render(padCellLeft(cli.FormatScore(s.Section.Efficiency), 11)))
			body.WriteString(rowStyle.Foreground(levelColor(s.Status.Level)).Render("  " + padCell(s.Status.Label, 12)))
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("Part des recettes mesurée sur le total des recettes."))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("[j/k] navigate  [Enter] détail"))

	var b strings.Builder
	b.WriteString(components.ContentCard(fmt.Sprintf("Postes budgétaires %d", a.year), body.String(), cw))

	if a.sections.cursor < len(a.data.Sections) {
		s := a.data.Sections[a.sections.cursor]
		if s.Description != "" {
			b.WriteString("\n")
			b.WriteString(components.ContentCard(s.Title, mutedStyle.Render(s.Description), cw))
		}
	}
	return b.String()
}

func (a App) renderSectionDetail(cw, h int) string {
	t := theme.Active
	s := a.data.Sections[a.sections.cursor]

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface)

	// Header metrics
	status := calc.EfficiencyStatus(s.Efficiency)
	delta := calc.EfficiencyDelta(s.Efficiency, s.OECDAverage)
	metrics := []components.Metric{
		{Label: "Montant", Value: cli.FormatMd(s.TotalAmount), Delta: fmt.Sprintf("%d lignes", len(s.Items))},
		{Label: "Efficience", Value: cli.FormatScore(s.Efficiency) + "/100", Delta: status.Label,
			ValueColor: components.ColorForScore(s.Efficiency), DeltaColor: levelColor(status.Level)},
		{Label: "Moyenne OCDE", Value: cli.FormatScore(s.OECDAverage) + "/100",
			Delta: "France " + cli.FormatPoints(delta.Delta) + " pts", DeltaColor: deltaColor(delta.Status)},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Items
	innerW := components.CardInnerWidth(cw)
	amountW, pctW, trendW := 12, 8, 9
	labelW := min(40, max(16, innerW/3))
	barW := max(4, innerW-labelW-amountW-pctW-trendW-2)

	items := calc.ItemShares(s)
	maxPct := 0.0
	for _, it := range items {
		maxPct = max(maxPct, it.Percentage)
	}

	// Two lines per metric row, header, and card chrome
	visible := max(3, h-8-4)
	start := min(a.sections.scroll, max(0, len(items)-visible))
	end := min(len(items), start+visible)

	var body strings.Builder
	body.WriteString(headerStyle.Render(padCell("Ligne", labelW) + padCellLeft("Montant", amountW) +
		padCellLeft("Part", pctW) + padCellLeft("Évol.", trendW)))
	body.WriteString("\n")
	for _, it := range items[start:end] {
		trend := "   –"
		trendColor := t.TextDim
		if it.Item.Trend != nil {
			trend = cli.FormatPct(*it.Item.Trend, true)
			if *it.Item.Trend > 0 {
				trendColor = t.Orange
			} else if *it.Item.Trend < 0 {
				trendColor = t.Green
			}
		}
		body.WriteString(rowStyle.Render(padCell(truncStr(it.Item.Label, labelW), labelW)))
		body.WriteString(rowStyle.Render(padCellLeft(cli.FormatMd(it.Item.Amount), amountW)))
		body.WriteString(mutedStyle.Render(padCellLeft(cli.FormatPct(it.Percentage, false), pctW)))
		body.WriteString(rowStyle.Foreground(trendColor).Render(padCellLeft(trend, trendW)))
		body.WriteString(space.Render("  "))
		body.WriteString(components.HBar(it.Percentage, maxPct, barW, sectionColor(s.Color, t.Accent)))
		body.WriteString("\n")
	}
	if end < len(items) || start > 0 {
		body.WriteString(mutedStyle.Render(fmt.Sprintf("%d-%d / %d", start+1, end, len(items))))
		body.WriteString("\n")
	}
	body.WriteString(mutedStyle.Render("[Esc] retour"))

	b.WriteString(components.ContentCard(s.Icon+" "+s.Title, body.String(), cw))
	return b.String()
}
