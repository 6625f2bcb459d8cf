package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/dataset"
	"github.com/theirongolddev/budgettdb/internal/model"
	"github.com/theirongolddev/budgettdb/internal/tui/components"
	"github.com/theirongolddev/budgettdb/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// compareState tracks the selected peer country.
type compareState struct {
	cursor int
}

func (a App) selectedPeer() (model.CountryData, bool) {
	peers := dataset.Peers()
	if a.compare.cursor < 0 || a.compare.cursor >= len(peers) {
		return model.CountryData{}, false
	}
	return peers[a.compare.cursor], true
}

// sectionTitle returns the current year's title for a section id.
func (a App) sectionTitle(id string) string {
	for _, s := range a.data.Sections {
		if s.ID == id {
			return s.Title
		}
	}
	return id
}

func (a App) renderCompareTab(cw int) string {
	t := theme.Active
	france := dataset.France()
	peer, ok := a.selectedPeer()
	if !ok {
		return components.ContentCard("Comparaison", "Aucun pays disponible", cw)
	}
	cmp := calc.CompareCountries(france, peer, dataset.SectionIDs(), a.cfg.Comparison.GDP)

	// Row 1: headline comparison
	debtColor := t.TextPrimary
	if peer.DebtRatio > 90 {
		debtColor = t.Red
	}
	taxDeltaColor := t.Orange
	if cmp.TaxDelta <= 0 {
		taxDeltaColor = t.Green
	}
	tsrColor := t.Green
	if cmp.FranceTSR < cmp.OtherTSR {
		tsrColor = t.Red
	}
	savingsColor := t.Green
	if cmp.Savings <= 0 {
		savingsColor = t.TextMuted
	}

	metrics := []components.Metric{
		{
			Label:      "Prélèvements obligatoires",
			Value:      fmt.Sprintf("%s vs %s", cli.FormatPct(france.TaxBurden, false), cli.FormatPct(peer.TaxBurden, false)),
			Delta:      fmt.Sprintf("Delta : %s points de PIB", cli.FormatPoints(cmp.TaxDelta)),
			DeltaColor: taxDeltaColor,
		},
		{
			Label:      "Dette / PIB",
			Value:      fmt.Sprintf("%s vs %s", cli.FormatPct(france.DebtRatio, false), cli.FormatPct(peer.DebtRatio, false)),
			Delta:      fmt.Sprintf("Écart : %s points", cli.FormatScore(math.Abs(cmp.DebtGap))),
			ValueColor: debtColor,
		},
		{
			Label:      "Ratio Impôt / Service",
			Value:      fmt.Sprintf("%s vs %s", cli.FormatScore(cmp.FranceTSR), cli.FormatScore(cmp.OtherTSR)),
			Delta:      "qualité de service par point de PIB",
			ValueColor: tsrColor,
		},
		{
			Label:      "Économie potentielle",
			Value:      cli.FormatSavings(cmp.Savings),
			Delta:      fmt.Sprintf("Si ratio dépenses/PIB de %s %s", peer.Flag, peer.Name),
			ValueColor: savingsColor,
		},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: country picker + per-section efficiency
	widths := []int{30, cw - 30}
	if a.isCompactLayout() {
		widths = []int{cw, cw}
	}

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	var list strings.Builder
	listW := components.CardInnerWidth(widths[0])
	for i, c := range dataset.Peers() {
		name := truncStr(c.Flag+" "+c.Name, listW-2)
		if i == a.compare.cursor {
			list.WriteString(markerStyle.Render("▸ "))
			list.WriteString(selStyle.Render(padCell(name, listW-2)))
		} else {
			list.WriteString(rowStyle.Render("  " + name))
		}
		list.WriteString("\n")
	}
	list.WriteString("\n")
	list.WriteString(mutedStyle.Render("Qualité des services"))
	list.WriteString("\n")
	sqBarW := max(4, listW-8-5)
	list.WriteString(components.ScoreBar(france.Flag+" FR", france.ServiceQualityIndex, 8, sqBarW))
	list.WriteString("\n")
	list.WriteString(components.ScoreBar(peer.Flag+" "+peer.Name, peer.ServiceQualityIndex, 8, sqBarW))
	list.WriteString("\n\n")
	list.WriteString(mutedStyle.Render("[j/k] pays"))
	listCard := components.ContentCard("Pays", list.String(), widths[0])

	innerW := components.CardInnerWidth(widths[1])
	labelW := min(24, innerW/3)
	deltaW := 10
	barW := max(8, innerW-labelW-deltaW-6)

	var sect strings.Builder
	sect.WriteString(mutedStyle.Render(fmt.Sprintf("%s France   %s %s", france.Flag, peer.Flag, peer.Name)))
	sect.WriteString("\n")
	for _, sc := range cmp.Sections {
		pair := components.PairBar(a.sectionTitle(sc.ID), sc.France, sc.Other, labelW, barW, components.ColorForScore(sc.France))
		top, bottom, _ := strings.Cut(pair, "\n")
		deltaStyle := lipgloss.NewStyle().Foreground(deltaColor(sc.Delta.Status)).Background(t.Surface).Bold(true)
		sect.WriteString(top)
		sect.WriteString(deltaStyle.Render(padCellLeft(cli.FormatPoints(sc.Delta.Delta), deltaW)))
		sect.WriteString("\n")
		sect.WriteString(bottom)
		sect.WriteString("\n")
	}
	if len(cmp.Sections) == 0 {
		sect.WriteString(mutedStyle.Render("Aucun indicateur commun"))
	}
	sectCard := components.ContentCard("Efficience par secteur", strings.TrimRight(sect.String(), "\n"), widths[1])

	if a.isCompactLayout() {
		b.WriteString(listCard)
		b.WriteString("\n")
		b.WriteString(sectCard)
	} else {
		b.WriteString(components.CardRow([]string{listCard, sectCard}))
	}
	b.WriteString("\n")

	// Row 3: tax-to-service ranking
	var rank strings.Builder
	ranked := calc.RankByTSR(dataset.Countries())
	best := 0.0
	if len(ranked) > 0 {
		best = calc.TaxToServiceRatio(ranked[0].ServiceQualityIndex, ranked[0].TaxBurden)
	}
	rankW := components.CardInnerWidth(cw)
	nameW := 22
	for i, c := range ranked {
		tsr := calc.TaxToServiceRatio(c.ServiceQualityIndex, c.TaxBurden)
		color := t.Blue
		if c.ID == dataset.FranceID {
			color = t.Accent
		} else if c.ID == peer.ID {
			color = t.Magenta
		}
		rank.WriteString(rowStyle.Render(padCell(fmt.Sprintf("%2d. %s %s", i+1, c.Flag, truncStr(c.Name, nameW-8)), nameW)))
		rank.WriteString(components.HBar(tsr, best, max(8, rankW-nameW-8), color))
		rank.WriteString(rowStyle.Render(padCellLeft(cli.FormatScore(tsr), 8)))
		rank.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Classement Impôt / Service", strings.TrimRight(rank.String(), "\n"), cw))

	return b.String()
}
