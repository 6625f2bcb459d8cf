// Package cmd implements the budgettdb CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/config"
	"github.com/theirongolddev/budgettdb/internal/dataset"
	"github.com/theirongolddev/budgettdb/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagYear    int
	flagVerbose bool
	flagQuiet   bool
)

// appCfg is loaded once before any command runs.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "budgettdb",
	Short: "French state budget dashboard",
	Long: "Explore the French state budget: sections, efficiency scores, " +
		"international comparisons and reallocation simulations.",
	PersistentPreRunE: setup,
	RunE:              runSummary,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", 0, "Fiscal year (default from config, else latest)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging on stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notes and hints")
}

func setup(_ *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	switch {
	case flagVerbose:
		level = slog.LevelDebug
	case flagQuiet:
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config unreadable, using defaults", "path", config.ConfigPath(), "err", err)
	}
	appCfg = cfg
	cli.UsePalette(config.EffectiveTheme(cfg))
	slog.Debug("config loaded", "path", config.ConfigPath(), "exists", config.Exists(), "theme", cfg.Appearance.Theme)
	return nil
}

// selectedYear resolves --year, then the configured default, then the
// latest year in the dataset.
func selectedYear() (model.YearData, error) {
	year := flagYear
	if year == 0 {
		year = appCfg.General.DefaultYear
	}
	if year == 0 {
		return dataset.Latest(), nil
	}
	y, err := dataset.MustYear(year)
	if err != nil {
		return model.YearData{}, err
	}
	slog.Debug("year selected", "year", y.Year, "sections", len(y.Sections))
	return y, nil
}

// note prints a hint line unless --quiet.
func note(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Println("  " + cli.RenderMuted(fmt.Sprintf(format, args...)))
}
