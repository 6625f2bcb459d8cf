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

func (a App) renderEfficiencyTab(cw int) string {
	t := theme.Active
	sections := a.data.Sections

	var better, worse int
	for _, s := range sections {
		switch calc.EfficiencyDelta(s.Efficiency, s.OECDAverage).Status {
		case calc.Better:
			better++
		case calc.Worse:
			worse++
		}
	}

	avg := a.health.AvgEfficiency
	avgStatus := calc.EfficiencyStatus(avg)
	metrics := []components.Metric{
		{Label: "Efficience moyenne", Value: cli.FormatScore(avg) + "/100", Delta: avgStatus.Label,
			ValueColor: components.ColorForScore(avg), DeltaColor: levelColor(avgStatus.Level)},
		{Label: "Au-dessus de l'OCDE", Value: fmt.Sprintf("%d", better), Delta: "écart > 2 points", ValueColor: t.Green},
		{Label: "En dessous de l'OCDE", Value: fmt.Sprintf("%d", worse), Delta: "écart < -2 points", ValueColor: t.Red},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	labelW := min(26, innerW/3)
	deltaW := 12
	barW := max(10, innerW-labelW-deltaW-6)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var body strings.Builder
	for i, s := range sections {
		if i > 0 {
			body.WriteString("\n")
		}
		d := calc.EfficiencyDelta(s.Efficiency, s.OECDAverage)
		pair := components.PairBar(s.Icon+" "+s.Title, s.Efficiency, s.OECDAverage, labelW, barW,
			components.ColorForScore(s.Efficiency))
		top, bottom, _ := strings.Cut(pair, "\n")
		deltaStyle := lipgloss.NewStyle().Foreground(deltaColor(d.Status)).Background(t.Surface).Bold(true)
		body.WriteString(top)
		body.WriteString(space.Render(" "))
		body.WriteString(deltaStyle.Render(padCellLeft(cli.FormatPoints(d.Delta)+" pts", deltaW)))
		body.WriteString("\n")
		body.WriteString(bottom)
		body.WriteString(space.Render(" "))
		body.WriteString(mutedStyle.Render(padCellLeft("OCDE", deltaW)))
		body.WriteString("\n")
	}

	b.WriteString(components.ContentCard("Efficience France vs moyenne OCDE", body.String(), cw))
	return b.String()
}
