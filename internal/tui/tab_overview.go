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

// levelColor maps a calc severity to the active theme.
func levelColor(l calc.Level) lipgloss.Color {
	t := theme.Active
	switch l {
	case calc.LevelGood:
		return t.Green
	case calc.LevelWarning:
		return t.Yellow
	default:
		return t.Red
	}
}

// deltaColor colours an efficiency gap: green when France does better.
func deltaColor(s calc.DeltaStatus) lipgloss.Color {
	t := theme.Active
	switch s {
	case calc.Better:
		return t.Green
	case calc.Worse:
		return t.Red
	default:
		return t.TextMuted
	}
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	y := a.data
	h := a.health
	var b strings.Builder

	// Row 1: headline metrics
	debt := calc.DebtStatus(y.DebtRatio)
	taxGap := y.TaxBurden - dataset.OECDTaxBurden
	metrics := []components.Metric{
		{
			Label:      "Déficit public",
			Value:      cli.FormatPct(y.Deficit, false) + " PIB",
			Delta:      "Limite Maastricht -3 %",
			ValueColor: t.Red,
		},
		{
			Label:      "Dette / PIB",
			Value:      cli.FormatPct(y.DebtRatio, false),
			Delta:      debt.Label + " · " + debt.Detail,
			DeltaColor: levelColor(debt.Level),
		},
		{
			Label:      "Prélèvements obligatoires",
			Value:      cli.FormatPct(y.TaxBurden, false) + " PIB",
			Delta:      fmt.Sprintf("OCDE %s (%s pts)", cli.FormatPct(dataset.OECDTaxBurden, false), cli.FormatPoints(taxGap)),
			DeltaColor: t.Orange,
		},
		{
			Label:      "Santé budgétaire",
			Value:      fmt.Sprintf("%d/100", h.Score),
			Delta:      h.Status.Label,
			ValueColor: levelColor(h.Status.Level),
			DeltaColor: levelColor(h.Status.Level),
		},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: money flows + section shares
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface)

	var flows strings.Builder
	kv := func(label, value string, color lipgloss.Color) {
		flows.WriteString(labelStyle.Render(padCell(label, 22)))
		flows.WriteString(valueStyle.Foreground(color).Render(value))
		flows.WriteString("\n")
	}
	kv("Recettes", cli.FormatMd(y.TotalRevenues), t.Green)
	kv("Dépenses", cli.FormatMd(y.TotalExpenditures), t.Orange)
	kv("Écart à financer", cli.FormatMd(h.Gap), t.Red)
	kv("Efficience moyenne", cli.FormatScore(h.AvgEfficiency)+"/100", components.ColorForScore(h.AvgEfficiency))
	flows.WriteString("\n")
	flows.WriteString(labelStyle.Render(padCell("Score santé", 22)))
	gaugeW := max(8, components.CardInnerWidth(halves[0])-32)
	flows.WriteString(components.Gauge(h.Score, gaugeW))

	flowCard := components.ContentCard(fmt.Sprintf("Budget %d", y.Year), flows.String(), halves[0])

	shares := calc.SectionShares(y)
	innerW := components.CardInnerWidth(halves[1])
	labelW := min(18, innerW/3)
	pctW := 7
	barW := max(4, innerW-labelW-pctW-2)

	maxPct := 0.0
	for _, s := range shares {
		if s.Section.ID != calc.RevenueSectionID {
			maxPct = max(maxPct, s.Percentage)
		}
	}

	var shareBody strings.Builder
	for _, s := range shares {
		if s.Section.ID == calc.RevenueSectionID {
			continue
		}
		color := sectionColor(s.Section.Color, t.Accent)
		shareBody.WriteString(labelStyle.Render(padCell(truncStr(s.Section.Title, labelW), labelW)))
		shareBody.WriteString(space.Render(" "))
		shareBody.WriteString(components.HBar(s.Percentage, maxPct, barW, color))
		shareBody.WriteString(space.Render(" "))
		shareBody.WriteString(valueStyle.Foreground(t.TextPrimary).Render(padCellLeft(cli.FormatPct(s.Percentage, false), pctW-1)))
		shareBody.WriteString("\n")
	}
	shareCard := components.ContentCard("Répartition des dépenses", strings.TrimRight(shareBody.String(), "\n"), halves[1])

	if a.isCompactLayout() {
		b.WriteString(flowCard)
		b.WriteString("\n")
		b.WriteString(shareCard)
	} else {
		b.WriteString(components.CardRow([]string{flowCard, shareCard}))
	}
	b.WriteString("\n")

	// Row 3: section totals chart
	var vals []float64
	var labels []string
	for _, s := range calc.TransferCandidates(y.Sections) {
		vals = append(vals, s.TotalAmount)
		labels = append(labels, s.Title)
	}
	if len(vals) > 0 {
		chartH := 10
		if a.isCompactLayout() {
			chartH = 7
		}
		b.WriteString(components.ContentCard(
			"Dépenses par poste (Md€)",
			components.BarChart(vals, labels, t.Blue, components.CardInnerWidth(cw), chartH),
			cw,
		))
	}

	return b.String()
}

// sectionColor returns the dataset color of a section, or fallback when the
// section has none.
func sectionColor(hex string, fallback lipgloss.Color) lipgloss.Color {
	if hex == "" {
		return fallback
	}
	return lipgloss.Color(hex)
}
