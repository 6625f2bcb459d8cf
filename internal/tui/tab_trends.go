package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/dataset"
	"github.com/theirongolddev/budgettdb/internal/tui/components"
	"github.com/theirongolddev/budgettdb/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// trendsState tracks the selected section series.
type trendsState struct {
	cursor int
}

func (a App) renderTrendsTab(cw int) string {
	t := theme.Active
	years := dataset.AllYears()
	series := calc.TrendSeries(years, dataset.SectionIDs())

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	space := lipgloss.NewStyle().Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	valW := 11
	changeW := 9
	titleW := max(14, innerW-2-valW*len(years)-changeW-len(years)-2)

	var body strings.Builder
	header := "  " + padCell("Poste", titleW)
	for _, y := range years {
		header += padCellLeft(fmt.Sprintf("%d", y.Year), valW)
	}
	header += padCellLeft("Évol.", changeW) + "  " + "Tendance"
	body.WriteString(headerStyle.Render(header))
	body.WriteString("\n")

	for i, s := range series {
		cells := padCell(truncStr(s.Title, titleW), titleW)
		for _, v := range s.Values {
			cells += padCellLeft(cli.FormatMd(v), valW)
		}
		change := s.Change()
		changeColor := t.TextMuted
		if change > 0 {
			changeColor = t.Orange
		} else if change < 0 {
			changeColor = t.Green
		}
		if s.ID == calc.RevenueSectionID && change > 0 {
			changeColor = t.Green
		}

		if i == a.trends.cursor {
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(selStyle.Render(cells))
			body.WriteString(selStyle.Foreground(changeColor).Render(padCellLeft(cli.FormatPct(change, true), changeW)))
		} else {
			body.WriteString(rowStyle.Render("  " + cells))
			body.WriteString(rowStyle.Foreground(changeColor).Render(padCellLeft(cli.FormatPct(change, true), changeW)))
		}
		body.WriteString(space.Render("  "))
		body.WriteString(components.Sparkline(s.Values, t.Blue))
		body.WriteString("\n")
	}
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("[j/k] navigate"))

	var b strings.Builder
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Évolution des postes %d-%d", years[0].Year, years[len(years)-1].Year),
		body.String(), cw))
	b.WriteString("\n")

	if a.trends.cursor < len(series) {
		s := series[a.trends.cursor]
		labels := make([]string, len(years))
		for i, y := range years {
			labels[i] = fmt.Sprintf("%d", y.Year)
		}
		chartH := 8
		if a.isCompactLayout() {
			chartH = 6
		}
		b.WriteString(components.ContentCard(
			s.Title+" (Md€)",
			components.BarChart(s.Values, labels, t.Accent, innerW, chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Macro indicators across the same years
	var macro strings.Builder
	macro.WriteString(headerStyle.Render(padCell("Indicateur", 26)))
	for _, y := range years {
		macro.WriteString(headerStyle.Render(padCellLeft(fmt.Sprintf("%d", y.Year), valW)))
	}
	macro.WriteString("\n")
	rows := []struct {
		label string
		value func(i int) string
	}{
		{"Déficit (% PIB)", func(i int) string { return cli.FormatPct(years[i].Deficit, false) }},
		{"Dette / PIB", func(i int) string { return cli.FormatPct(years[i].DebtRatio, false) }},
		{"Prélèvements (% PIB)", func(i int) string { return cli.FormatPct(years[i].TaxBurden, false) }},
		{"Score santé", func(i int) string { return fmt.Sprintf("%d", calc.YearHealth(years[i]).Score) }},
	}
	for _, r := range rows {
		macro.WriteString(rowStyle.Render(padCell(r.label, 26)))
		for i := range years {
			macro.WriteString(rowStyle.Render(padCellLeft(r.value(i), valW)))
		}
		macro.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Indicateurs macro", strings.TrimRight(macro.String(), "\n"), cw))

	return b.String()
}
