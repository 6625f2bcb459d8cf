package tui

import (
	"fmt"

	"github.com/theirongolddev/budgettdb/internal/config"
	"github.com/theirongolddev/budgettdb/internal/dataset"
	"github.com/theirongolddev/budgettdb/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the answers of the first-run form.
type setupValues struct {
	theme   string
	year    int
	country string
}

// setupFields builds the form groups shared by the TUI first run and the
// `setup` command. vals is pre-filled from cfg.
func setupFields(vals *setupValues, cfg config.Config) []*huh.Group {
	vals.theme = config.EffectiveTheme(cfg)
	vals.year = cfg.General.DefaultYear
	if _, ok := dataset.Year(vals.year); !ok {
		vals.year = dataset.Latest().Year
	}
	vals.country = cfg.Comparison.DefaultCountry

	yearOpts := make([]huh.Option[int], 0, len(dataset.Years()))
	for _, y := range dataset.Years() {
		yearOpts = append(yearOpts, huh.NewOption(fmt.Sprintf("%d", y), y))
	}

	countryOpts := make([]huh.Option[string], 0, len(dataset.Peers()))
	for _, c := range dataset.Peers() {
		countryOpts = append(countryOpts, huh.NewOption(c.Flag+" "+c.Name, c.ID))
	}

	return []*huh.Group{
		huh.NewGroup(
			huh.NewNote().
				Title("budgettdb").
				Description("Tableau de bord du budget de l'État.\nQuelques réglages avant de commencer."),
			huh.NewSelect[string]().
				Title("Thème").
				Options(
					huh.NewOption("Sombre", config.ThemeDark),
					huh.NewOption("Clair", config.ThemeLight),
				).
				Value(&vals.theme),
			huh.NewSelect[int]().
				Title("Année par défaut").
				Options(yearOpts...).
				Value(&vals.year),
			huh.NewSelect[string]().
				Title("Pays de comparaison").
				Options(countryOpts...).
				Value(&vals.country),
		),
	}
}

// NewSetupForm returns a standalone setup form writing into a fresh value
// set. Apply copies the answers into a config.
func NewSetupForm(cfg config.Config) (*huh.Form, func(config.Config) config.Config) {
	vals := &setupValues{}
	form := huh.NewForm(setupFields(vals, cfg)...)
	return form, func(c config.Config) config.Config { return vals.apply(c) }
}

func newSetupForm(vals *setupValues, cfg config.Config) *huh.Form {
	return huh.NewForm(setupFields(vals, cfg)...).WithShowHelp(true)
}

func (v setupValues) apply(cfg config.Config) config.Config {
	cfg.Appearance.Theme = config.NormalizeTheme(v.theme)
	if _, ok := dataset.Year(v.year); ok {
		cfg.General.DefaultYear = v.year
	}
	if _, ok := dataset.Country(v.country); ok {
		cfg.Comparison.DefaultCountry = v.country
	}
	return cfg
}

func (a *App) saveSetupConfig() error {
	cfg := a.setupVals.apply(loadConfigOrDefault())
	a.cfg = cfg

	theme.SetActive(config.EffectiveTheme(cfg))
	a.compare.cursor = a.peerIndex(cfg.Comparison.DefaultCountry)
	a.setYear(cfg.General.DefaultYear)

	return config.Save(cfg)
}
