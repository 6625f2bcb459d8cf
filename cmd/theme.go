package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/config"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or set the color theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{config.ThemeDark, config.ThemeLight, "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Printf("  Theme: %s\n", config.EffectiveTheme(appCfg))
		if env := os.Getenv(config.ThemeEnv); env != "" {
			note("Overridden by %s=%s (stored: %s).", config.ThemeEnv, env, config.NormalizeTheme(appCfg.Appearance.Theme))
		}
		return nil
	}

	next := args[0]
	if next == "toggle" {
		next = config.ToggleTheme(appCfg.Appearance.Theme)
	}
	cfg, err := config.SaveTheme(next)
	if err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	appCfg = cfg
	cli.UsePalette(config.EffectiveTheme(cfg))

	fmt.Printf("  Theme set to %s\n", cli.RenderAccent(cfg.Appearance.Theme))
	return nil
}
