// Package export writes dataset snapshots with derived health figures as
// JSON, YAML or SQLite.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/model"
	"github.com/theirongolddev/budgettdb/internal/store"

	"gopkg.in/yaml.v3"
)

// Format is an export encoding.
type Format string

const (
	JSON   Format = "json"
	YAML   Format = "yaml"
	SQLite Format = "sqlite"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML, SQLite}

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat resolves a format name, accepting "yml" and "db" aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "sqlite", "db":
		return SQLite, nil
	}
	return "", fmt.Errorf("%w: %q (want json, yaml or sqlite)", ErrUnknownFormat, name)
}

// Health is the derived health summary stored next to each year.
type Health struct {
	Score         int     `yaml:"score" json:"score"`
	Label         string  `yaml:"label" json:"label"`
	AvgEfficiency float64 `yaml:"avg_efficiency" json:"avgEfficiency"`
	Gap           float64 `yaml:"gap" json:"gap"`
}

// Year is one fiscal year plus its health.
type Year struct {
	model.YearData `yaml:",inline"`
	Health         Health `yaml:"health" json:"health"`
}

// Country is one country plus its tax-to-service ratio.
type Country struct {
	model.CountryData `yaml:",inline"`
	TaxToService      float64 `yaml:"tax_to_service" json:"taxToService"`
}

// Snapshot is the full exported document.
type Snapshot struct {
	Years        []Year             `yaml:"years" json:"years"`
	Countries    []Country          `yaml:"countries" json:"countries"`
	OECDAverages map[string]float64 `yaml:"oecd_averages" json:"oecdAverages"`
}

// Build derives a snapshot from dataset records.
func Build(years []model.YearData, countries []model.CountryData, oecd map[string]float64) Snapshot {
	snap := Snapshot{
		Years:        make([]Year, len(years)),
		Countries:    make([]Country, len(countries)),
		OECDAverages: oecd,
	}
	for i, y := range years {
		h := calc.YearHealth(y)
		snap.Years[i] = Year{
			YearData: y,
			Health: Health{
				Score:         h.Score,
				Label:         h.Status.Label,
				AvgEfficiency: h.AvgEfficiency,
				Gap:           h.Gap,
			},
		}
	}
	for i, c := range countries {
		snap.Countries[i] = Country{
			CountryData:  c,
			TaxToService: calc.TaxToServiceRatio(c.ServiceQualityIndex, c.TaxBurden),
		}
	}
	return snap
}

// Encode writes a text snapshot (JSON or YAML) to w.
func Encode(w io.Writer, f Format, snap Snapshot) error {
	switch f {
	case JSON:
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case SQLite:
		return errors.New("sqlite snapshots need a file path")
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteFile writes the snapshot to path, creating parent directories.
func WriteFile(path string, f Format, snap Snapshot) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	if f == SQLite {
		return writeSQLite(path, snap)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Encode(out, f, snap); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func writeSQLite(path string, snap Snapshot) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	years := make([]store.YearRow, len(snap.Years))
	for i, y := range snap.Years {
		years[i] = store.YearRow{
			Year:          y.YearData,
			HealthScore:   y.Health.Score,
			HealthLabel:   y.Health.Label,
			AvgEfficiency: y.Health.AvgEfficiency,
		}
	}
	countries := make([]store.CountryRow, len(snap.Countries))
	for i, c := range snap.Countries {
		countries[i] = store.CountryRow{Country: c.CountryData, TaxToService: c.TaxToService}
	}

	if err := db.Replace(years, countries); err != nil {
		return fmt.Errorf("writing sqlite snapshot: %w", err)
	}
	loaded, err := db.LoadYears()
	if err != nil {
		return fmt.Errorf("reading back sqlite snapshot: %w", err)
	}
	if len(loaded) != len(years) {
		return fmt.Errorf("sqlite snapshot holds %d years, wrote %d", len(loaded), len(years))
	}
	return nil
}

// SQLiteCounts returns the row count of every table in a written snapshot.
func SQLiteCounts(path string) (map[string]int, error) {
	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	return db.Counts()
}

// DefaultPath returns the output file name for a format.
func DefaultPath(f Format) string {
	switch f {
	case YAML:
		return "budgettdb.yaml"
	case SQLite:
		return "budgettdb.db"
	default:
		return "budgettdb.json"
	}
}
