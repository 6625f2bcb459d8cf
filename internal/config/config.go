// Package config reads and writes the budgettdb TOML configuration.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Theme names. Anything else is treated as dark.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ThemeEnv overrides the stored theme for a single run.
const ThemeEnv = "BUDGETTDB_THEME"

// Config holds all budgettdb configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Comparison ComparisonConfig `toml:"comparison"`
	Simulation SimulationConfig `toml:"simulation"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultYear int `toml:"default_year,omitempty"` // 0 means latest
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ComparisonConfig holds international comparison settings.
type ComparisonConfig struct {
	DefaultCountry string  `toml:"default_country"`
	GDP            float64 `toml:"gdp"` // Md€
}

// SimulationConfig holds reallocation simulator settings.
type SimulationConfig struct {
	DefaultAmount float64 `toml:"default_amount"` // Md€
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme: ThemeDark,
		},
		Comparison: ComparisonConfig{
			DefaultCountry: "allemagne",
			GDP:            2800,
		},
		Simulation: SimulationConfig{
			DefaultAmount: 10,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgettdb")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgettdb")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// On a read or parse error the defaults are returned alongside the error.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize repairs values a hand-edited file may have broken.
func (c *Config) normalize() {
	def := DefaultConfig()
	c.Appearance.Theme = NormalizeTheme(c.Appearance.Theme)
	if c.Comparison.DefaultCountry == "" {
		c.Comparison.DefaultCountry = def.Comparison.DefaultCountry
	}
	if !positive(c.Comparison.GDP) {
		c.Comparison.GDP = def.Comparison.GDP
	}
	if !positive(c.Simulation.DefaultAmount) {
		c.Simulation.DefaultAmount = def.Simulation.DefaultAmount
	}
}

// positive reports whether v is a finite number above zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// NormalizeTheme maps a stored value to a legal theme name. Only "light"
// selects the light theme.
func NormalizeTheme(name string) string {
	if strings.EqualFold(strings.TrimSpace(name), ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// ToggleTheme returns the other theme.
func ToggleTheme(name string) string {
	if NormalizeTheme(name) == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// EffectiveTheme returns the theme for this run: the env override if set,
// otherwise the stored preference.
func EffectiveTheme(cfg Config) string {
	if env := os.Getenv(ThemeEnv); env != "" {
		return NormalizeTheme(env)
	}
	return NormalizeTheme(cfg.Appearance.Theme)
}

// SaveTheme loads the current config, sets the theme and writes it back.
func SaveTheme(name string) (Config, error) {
	cfg, err := Load()
	if err != nil {
		return cfg, err
	}
	cfg.Appearance.Theme = NormalizeTheme(name)
	if err := Save(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
