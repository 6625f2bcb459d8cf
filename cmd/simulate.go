package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagSimFrom   string
	flagSimTo     string
	flagSimAmount float64
)

// errInvalidTransfer wraps every rejected simulate invocation.
var errInvalidTransfer = errors.New("invalid transfer")

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate moving money between two sections",
	Example: "  budgettdb simulate --from souverainete --to education --amount 10\n" +
		"  budgettdb simulate --from social --to economie -a 25 -y 2024",
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&flagSimFrom, "from", "f", "", "Source section id")
	simulateCmd.Flags().StringVarP(&flagSimTo, "to", "t", "", "Target section id")
	simulateCmd.Flags().Float64VarP(&flagSimAmount, "amount", "a", 0, "Amount in Md€ (default from config)")
	rootCmd.AddCommand(simulateCmd)
}

// validateTransfer checks a reallocation request against the year's
// sections and returns the source section.
func validateTransfer(y model.YearData, from, to string, amount float64) (model.BudgetSection, error) {
	if from == "" || to == "" {
		return model.BudgetSection{}, fmt.Errorf("%w: --from and --to are required", errInvalidTransfer)
	}
	if from == to {
		return model.BudgetSection{}, fmt.Errorf("%w: source and target are both %q", errInvalidTransfer, from)
	}

	cands := calc.TransferCandidates(y.Sections)
	var src model.BudgetSection
	var srcOK, dstOK bool
	for _, s := range cands {
		switch s.ID {
		case from:
			src, srcOK = s, true
		case to:
			dstOK = true
		}
	}
	ids := make([]string, len(cands))
	for i, s := range cands {
		ids[i] = s.ID
	}
	if !srcOK {
		return model.BudgetSection{}, fmt.Errorf("%w: source %q not a spending section in %d (available: %v)", errInvalidTransfer, from, y.Year, ids)
	}
	if !dstOK {
		return model.BudgetSection{}, fmt.Errorf("%w: target %q not a spending section in %d (available: %v)", errInvalidTransfer, to, y.Year, ids)
	}

	maxAmt := calc.MaxTransfer(src)
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 || amount > maxAmt {
		return model.BudgetSection{}, fmt.Errorf("%w: amount %s outside (0, %s] for %s",
			errInvalidTransfer, cli.FormatMd(amount), cli.FormatMd(maxAmt), src.Title)
	}
	return src, nil
}

// transferAmount returns the --amount value when given, the configured
// default otherwise. An explicit 0 is kept so validation rejects it.
func transferAmount(given bool, flag, fallback float64) float64 {
	if given {
		return flag
	}
	return fallback
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	y, err := selectedYear()
	if err != nil {
		return err
	}

	amount := transferAmount(cmd.Flags().Changed("amount"), flagSimAmount, appCfg.Simulation.DefaultAmount)
	if _, err := validateTransfer(y, flagSimFrom, flagSimTo, amount); err != nil {
		return err
	}

	base := y
	res := calc.SimulateReallocation(base.Sections, flagSimFrom, flagSimTo, amount)
	if err := calc.SimulationErr(res, flagSimFrom, flagSimTo); err != nil {
		return err
	}
	slog.Debug("simulation", "year", y.Year, "from", flagSimFrom, "to", flagSimTo, "amount", amount)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SIMULATION  %d  %s", y.Year, cli.FormatMd(amount))))
	fmt.Println()

	fmt.Println("  " + cli.RenderLevel(res.SourceImpact, cli.Critical))
	fmt.Println("  " + cli.RenderLevel(res.TargetImpact, cli.Good))
	fmt.Println()

	rows := make([][]string, 0, 2)
	for i, after := range res.NewSections {
		if after.ID != flagSimFrom && after.ID != flagSimTo {
			continue
		}
		before := base.Sections[i]
		rows = append(rows, []string{
			after.Title,
			cli.FormatMd(before.TotalAmount),
			cli.FormatMd(after.TotalAmount),
			cli.FormatMdDelta(after.TotalAmount - before.TotalAmount),
			cli.FormatScore(before.Efficiency) + " → " + cli.FormatScore(after.Efficiency),
		})
	}

	beforeAvg := calc.AverageEfficiency(base.Sections)
	afterAvg := calc.AverageEfficiency(res.NewSections)
	rows = append(rows,
		[]string{"---"},
		[]string{"Efficience moyenne", "", "", "", cli.FormatScore(beforeAvg) + " → " + cli.FormatScore(afterAvg)},
		[]string{"Santé budgétaire", "", "", "", fmt.Sprintf("%d → %d",
			calc.BudgetHealthScore(base.Deficit, base.DebtRatio, beforeAvg),
			calc.BudgetHealthScore(base.Deficit, base.DebtRatio, afterAvg))},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Poste", "Avant", "Après", "Variation", "Efficience"},
		Rows:    rows,
	}))
	fmt.Println()
	note("Estimation: -0,3 point d'efficience par %% retiré, +0,2 par %% ajouté.")
	return nil
}
