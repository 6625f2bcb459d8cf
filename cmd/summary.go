package cmd

import (
	"fmt"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/dataset"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline figures and budget health for a year",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

// level converts a calc severity for rendering. Both share the same values.
func level(l calc.Level) cli.Level {
	return cli.Level(l)
}

func runSummary(_ *cobra.Command, _ []string) error {
	y, err := selectedYear()
	if err != nil {
		return err
	}
	h := calc.YearHealth(y)
	debt := calc.DebtStatus(y.DebtRatio)
	avgStatus := calc.EfficiencyStatus(h.AvgEfficiency)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET DE L'ÉTAT  %d", y.Year)))
	fmt.Println()

	rows := [][]string{
		{"Déficit public", cli.FormatPct(y.Deficit, false) + " du PIB"},
		{"Dette / PIB", cli.FormatPct(y.DebtRatio, false) + "  " +
			cli.RenderLevel(debt.Label+" · "+debt.Detail, level(debt.Level))},
		{"Prélèvements obligatoires", fmt.Sprintf("%s  (OCDE %s, %s pts)",
			cli.FormatPct(y.TaxBurden, false),
			cli.FormatPct(dataset.OECDTaxBurden, false),
			cli.FormatPoints(y.TaxBurden-dataset.OECDTaxBurden))},
		{"---"},
		{"Recettes", cli.FormatMd(y.TotalRevenues)},
		{"Dépenses", cli.FormatMd(y.TotalExpenditures)},
		{"Écart à financer", cli.FormatMd(h.Gap)},
		{"---"},
		{"Efficience moyenne", cli.FormatScore(h.AvgEfficiency) + "/100  " +
			cli.RenderLevel(avgStatus.Label, level(avgStatus.Level))},
		{"Santé budgétaire", fmt.Sprintf("%s  %s",
			cli.RenderScoreBar(float64(h.Score), 20, level(h.Status.Level)),
			cli.RenderLevel(h.Status.Label, level(h.Status.Level)))},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Indicateur", "Valeur"},
		Rows:    rows,
	}))
	fmt.Println()
	note("Montants en milliards d'euros. `budgettdb sections` pour le détail par poste.")
	return nil
}
