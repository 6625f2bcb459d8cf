package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/dataset"

	"github.com/spf13/cobra"
)

var flagCompareList bool

var compareCmd = &cobra.Command{
	Use:   "compare [country]",
	Short: "Compare France with another country",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().BoolVarP(&flagCompareList, "list", "l", false, "List comparable countries ranked by tax-to-service ratio")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, args []string) error {
	if flagCompareList && len(args) == 0 {
		printCountryRanking()
		return nil
	}

	id := appCfg.Comparison.DefaultCountry
	if len(args) == 1 {
		id = strings.ToLower(args[0])
	}
	if id == dataset.FranceID {
		return fmt.Errorf("compare France with another country, e.g. %q", appCfg.Comparison.DefaultCountry)
	}
	other, err := dataset.MustCountry(id)
	if err != nil {
		return err
	}

	france := dataset.France()
	latest := dataset.Latest()
	cmp := calc.CompareCountries(france, other, dataset.SectionIDs(), appCfg.Comparison.GDP)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s France vs %s %s", france.Flag, other.Flag, other.Name)))
	fmt.Println()

	debtValue := cli.FormatPct(other.DebtRatio, false)
	if other.DebtRatio > 90 {
		debtValue = cli.RenderLevel(debtValue, cli.Critical)
	}
	savings := cli.FormatSavings(cmp.Savings)
	if cmp.Savings > 0 {
		savings = cli.RenderLevel(savings, cli.Good)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Indicateur", "France", other.Name, "Écart"},
		Rows: [][]string{
			{"Prélèvements obligatoires", cli.FormatPct(france.TaxBurden, false), cli.FormatPct(other.TaxBurden, false),
				fmt.Sprintf("Delta : %s points de PIB", cli.FormatPoints(cmp.TaxDelta))},
			{"Dette / PIB", cli.FormatPct(france.DebtRatio, false), debtValue,
				fmt.Sprintf("Écart : %s points", cli.FormatScore(math.Abs(cmp.DebtGap)))},
			{"Dépenses publiques (% PIB)", cli.FormatPct(france.PublicSpendingPct, false), cli.FormatPct(other.PublicSpendingPct, false), ""},
			{"Ratio Impôt / Service", cli.FormatScore(cmp.FranceTSR), cli.FormatScore(cmp.OtherTSR), ""},
			{"---"},
			{"Économie potentielle", savings, "", fmt.Sprintf("Si ratio dépenses/PIB de %s %s", other.Flag, other.Name)},
		},
	}))
	fmt.Println()

	if len(cmp.Sections) > 0 {
		titles := make(map[string]string, len(latest.Sections))
		for _, s := range latest.Sections {
			titles[s.ID] = s.Title
		}
		rows := make([][]string, 0, len(cmp.Sections))
		for _, sc := range cmp.Sections {
			title := titles[sc.ID]
			if title == "" {
				title = sc.ID
			}
			rows = append(rows, []string{
				title,
				cli.FormatScore(sc.France),
				cli.FormatScore(sc.Other),
				cli.FormatPoints(sc.Delta.Delta),
				deltaLabel(sc.Delta.Status),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Efficience par secteur",
			Headers: []string{"Secteur", "France", other.Name, "Delta", ""},
			Rows:    rows,
		}))
		fmt.Println()
	}

	note("PIB de référence %s (config comparison.gdp).", cli.FormatMd(appCfg.Comparison.GDP))
	return nil
}

func printCountryRanking() {
	fmt.Println()
	fmt.Println(cli.RenderTitle("PAYS  classés par ratio Impôt / Service"))
	fmt.Println()

	ranked := calc.RankByTSR(dataset.Countries())
	rows := make([][]string, 0, len(ranked))
	for i, c := range ranked {
		name := c.Flag + " " + c.Name
		if c.ID == dataset.FranceID {
			name = cli.RenderAccent(name)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			c.ID,
			name,
			cli.FormatPct(c.TaxBurden, false),
			cli.FormatPct(c.DebtRatio, false),
			cli.FormatScore(calc.TaxToServiceRatio(c.ServiceQualityIndex, c.TaxBurden)),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Id", "Pays", "Prélèvements", "Dette", "Impôt/Service"},
		Rows:    rows,
	}))
}
