package cmd

import (
	"fmt"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/dataset"

	"github.com/spf13/cobra"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Section totals across fiscal years",
	RunE:  runTrends,
}

func init() {
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(_ *cobra.Command, _ []string) error {
	years := dataset.AllYears()
	if len(years) == 0 {
		fmt.Println("\n  Aucune année disponible.")
		return nil
	}
	series := calc.TrendSeries(years, dataset.SectionIDs())

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ÉVOLUTION  %d-%d", years[0].Year, years[len(years)-1].Year)))
	fmt.Println()

	headers := []string{"Poste"}
	for _, y := range years {
		headers = append(headers, fmt.Sprintf("%d", y.Year))
	}
	headers = append(headers, "Évol.", "")

	rows := make([][]string, 0, len(series)+5)
	for _, s := range series {
		row := []string{s.Title}
		for _, v := range s.Values {
			row = append(row, cli.FormatMd(v))
		}
		row = append(row, cli.FormatPct(s.Change(), true), cli.RenderSparkline(s.Values))
		rows = append(rows, row)
	}

	rows = append(rows, []string{"---"})
	macro := []struct {
		label string
		value func(i int) string
	}{
		{"Déficit (% PIB)", func(i int) string { return cli.FormatPct(years[i].Deficit, false) }},
		{"Dette / PIB", func(i int) string { return cli.FormatPct(years[i].DebtRatio, false) }},
		{"Santé budgétaire", func(i int) string { return fmt.Sprintf("%d", calc.YearHealth(years[i]).Score) }},
	}
	for _, m := range macro {
		row := []string{m.label}
		for i := range years {
			row = append(row, m.value(i))
		}
		row = append(row, "", "")
		rows = append(rows, row)
	}

	fmt.Print(cli.RenderTable(cli.Table{Headers: headers, Rows: rows}))
	return nil
}
