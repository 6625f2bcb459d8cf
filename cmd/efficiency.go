package cmd

import (
	"fmt"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/cli"

	"github.com/spf13/cobra"
)

var efficiencyCmd = &cobra.Command{
	Use:   "efficiency",
	Short: "Section efficiency against the OECD average",
	RunE:  runEfficiency,
}

func init() {
	rootCmd.AddCommand(efficiencyCmd)
}

func runEfficiency(_ *cobra.Command, _ []string) error {
	y, err := selectedYear()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("EFFICIENCE  France vs OCDE  %d", y.Year)))
	fmt.Println()

	rows := make([][]string, 0, len(y.Sections)*2)
	for i, s := range y.Sections {
		if i > 0 {
			rows = append(rows, []string{"---"})
		}
		st := calc.EfficiencyStatus(s.Efficiency)
		d := calc.EfficiencyDelta(s.Efficiency, s.OECDAverage)
		rows = append(rows,
			[]string{s.Title, "France", cli.RenderScoreBar(s.Efficiency, 24, level(st.Level)),
				cli.FormatPoints(d.Delta) + " pts"},
			[]string{"", "OCDE", cli.RenderScoreBar(s.OECDAverage, 24, cli.Warning), deltaLabel(d.Status)},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Poste", "", "Score", "Écart"},
		Rows:    rows,
	}))
	fmt.Println()

	h := calc.YearHealth(y)
	fmt.Printf("  Efficience moyenne: %s/100\n", cli.FormatScore(h.AvgEfficiency))
	note("Écarts de ±2 points considérés comme comparables.")
	return nil
}
