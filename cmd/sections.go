package cmd

import (
	"fmt"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/dataset"
	"github.com/theirongolddev/budgettdb/internal/model"

	"github.com/spf13/cobra"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections [id]",
	Short: "Budget sections, or the line items of one section",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(_ *cobra.Command, args []string) error {
	y, err := selectedYear()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		s, ok := dataset.Section(y.Year, args[0])
		if !ok {
			return fmt.Errorf("unknown section %q (available: %v)", args[0], dataset.SectionIDs())
		}
		printSectionDetail(y.Year, s)
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("POSTES BUDGÉTAIRES  %d", y.Year)))
	fmt.Println()

	shares := calc.SectionShares(y)
	rows := make([][]string, 0, len(shares))
	for _, s := range shares {
		rows = append(rows, []string{
			s.Section.ID,
			s.Section.Title,
			cli.FormatMd(s.Section.TotalAmount),
			cli.FormatPct(s.Percentage, false),
			cli.FormatScore(s.Section.Efficiency),
			cli.RenderLevel(s.Status.Label, level(s.Status.Level)),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Id", "Poste", "Montant", "Part", "Efficience", "Statut"},
		Rows:    rows,
	}))
	fmt.Println()
	note("Part des recettes mesurée sur le total des recettes, des autres postes sur les dépenses.")
	note("`budgettdb sections <id>` pour le détail d'un poste.")
	return nil
}

func printSectionDetail(year int, s model.BudgetSection) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %d", s.Title, year)))
	fmt.Println()

	status := calc.EfficiencyStatus(s.Efficiency)
	delta := calc.EfficiencyDelta(s.Efficiency, s.OECDAverage)

	fmt.Print(cli.RenderKV([][2]string{
		{"Montant", cli.FormatMd(s.TotalAmount)},
		{"Efficience", cli.FormatScore(s.Efficiency) + "/100  " + cli.RenderLevel(status.Label, level(status.Level))},
		{"Moyenne OCDE", cli.FormatScore(s.OECDAverage) + "/100"},
		{"France vs OCDE", cli.FormatPoints(delta.Delta) + " pts (" + deltaLabel(delta.Status) + ")"},
	}))
	if s.Description != "" {
		fmt.Println()
		fmt.Println("  " + cli.RenderMuted(s.Description))
	}
	fmt.Println()

	items := calc.ItemShares(s)
	maxPct := 0.0
	for _, it := range items {
		maxPct = max(maxPct, it.Percentage)
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		trend := "–"
		if it.Item.Trend != nil {
			trend = cli.FormatPct(*it.Item.Trend, true)
		}
		rows = append(rows, []string{
			it.Item.Label,
			cli.FormatMd(it.Item.Amount),
			cli.FormatPct(it.Percentage, false),
			trend,
			cli.RenderHorizontalBar(it.Percentage, maxPct, 20, cli.AccentColor()),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Ligne", "Montant", "Part", "Évol.", ""},
		Rows:    rows,
	}))
}

func deltaLabel(s calc.DeltaStatus) string {
	switch s {
	case calc.Better:
		return "meilleur"
	case calc.Worse:
		return "moins bon"
	default:
		return "comparable"
	}
}
