package cmd

import (
	"fmt"

	"github.com/theirongolddev/budgettdb/internal/config"
	"github.com/theirongolddev/budgettdb/internal/dataset"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DefaultYear != 0 {
		fmt.Printf("    Default year: %d\n", cfg.General.DefaultYear)
	} else {
		fmt.Printf("    Default year: latest (%d)\n", dataset.Latest().Year)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	if eff := config.EffectiveTheme(cfg); eff != cfg.Appearance.Theme {
		fmt.Printf("    Effective: %s (%s)\n", eff, config.ThemeEnv)
	}
	fmt.Println()

	fmt.Println("  [Comparison]")
	country := cfg.Comparison.DefaultCountry
	if c, ok := dataset.Country(country); ok {
		country = fmt.Sprintf("%s %s (%s)", c.Flag, c.Name, c.ID)
	}
	fmt.Printf("    Default country: %s\n", country)
	fmt.Printf("    GDP:             %g Md€\n", cfg.Comparison.GDP)
	fmt.Println()

	fmt.Println("  [Simulation]")
	fmt.Printf("    Default amount: %g Md€\n", cfg.Simulation.DefaultAmount)
	fmt.Println()

	fmt.Println("  Run `budgettdb setup` to reconfigure.")
	return nil
}
