// Package dataset provides the embedded, read-only budget and country tables.
package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/theirongolddev/budgettdb/internal/model"

	"gopkg.in/yaml.v3"
)

// France is the country every comparison is made against.
const FranceID = "france"

// OECDTaxBurden is the OECD average tax burden (% of GDP) used as a reference
// in the header metrics.
const OECDTaxBurden = 34.0

var (
	// ErrUnknownYear is returned when a fiscal year is not in the dataset.
	ErrUnknownYear = errors.New("unknown fiscal year")
	// ErrUnknownCountry is returned when a country id is not in the dataset.
	ErrUnknownCountry = errors.New("unknown country")
)

//go:embed data/budget.yaml
var budgetYAML []byte

//go:embed data/countries.yaml
var countriesYAML []byte

type budgetFile struct {
	Years []model.YearData `yaml:"years"`
}

type countriesFile struct {
	Countries    []model.CountryData `yaml:"countries"`
	OECDAverages map[string]float64  `yaml:"oecd_averages"`
}

// registry is decoded once and never mutated afterwards.
type registry struct {
	years     []model.YearData
	byYear    map[int]int
	countries []model.CountryData
	byCountry map[string]int
	oecd      map[string]float64
}

var (
	loadOnce sync.Once
	reg      *registry
)

func get() *registry {
	loadOnce.Do(func() {
		r, err := decode(budgetYAML, countriesYAML)
		if err != nil {
			panic(fmt.Sprintf("dataset: %v", err))
		}
		reg = r
	})
	return reg
}

func decode(budgetData, countryData []byte) (*registry, error) {
	var bf budgetFile
	if err := yaml.Unmarshal(budgetData, &bf); err != nil {
		return nil, fmt.Errorf("parse budget data: %w", err)
	}
	var cf countriesFile
	if err := yaml.Unmarshal(countryData, &cf); err != nil {
		return nil, fmt.Errorf("parse country data: %w", err)
	}
	if err := Validate(bf.Years, cf.Countries); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	sort.SliceStable(bf.Years, func(i, j int) bool {
		return bf.Years[i].Year < bf.Years[j].Year
	})

	r := &registry{
		years:     bf.Years,
		byYear:    make(map[int]int, len(bf.Years)),
		countries: cf.Countries,
		byCountry: make(map[string]int, len(cf.Countries)),
		oecd:      cf.OECDAverages,
	}
	for i, y := range r.years {
		r.byYear[y.Year] = i
	}
	for i, c := range r.countries {
		r.byCountry[c.ID] = i
	}
	return r, nil
}

// Years returns the available fiscal years in ascending order.
func Years() []int {
	r := get()
	out := make([]int, len(r.years))
	for i, y := range r.years {
		out[i] = y.Year
	}
	return out
}

// Year returns a copy of one fiscal year's snapshot.
func Year(year int) (model.YearData, bool) {
	r := get()
	idx, ok := r.byYear[year]
	if !ok {
		return model.YearData{}, false
	}
	return r.years[idx].Clone(), true
}

// MustYear is Year with an error for unknown years.
func MustYear(year int) (model.YearData, error) {
	y, ok := Year(year)
	if !ok {
		return model.YearData{}, fmt.Errorf("%w: %d (available: %v)", ErrUnknownYear, year, Years())
	}
	return y, nil
}

// AllYears returns copies of every year, oldest first.
func AllYears() []model.YearData {
	r := get()
	out := make([]model.YearData, len(r.years))
	for i, y := range r.years {
		out[i] = y.Clone()
	}
	return out
}

// Latest returns the most recent fiscal year.
func Latest() model.YearData {
	r := get()
	return r.years[len(r.years)-1].Clone()
}

// Section looks up a section by id within a year.
func Section(year int, id string) (model.BudgetSection, bool) {
	r := get()
	idx, ok := r.byYear[year]
	if !ok {
		return model.BudgetSection{}, false
	}
	for _, s := range r.years[idx].Sections {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return model.BudgetSection{}, false
}

// SectionIDs returns section ids in the latest year's display order.
func SectionIDs() []string {
	r := get()
	latest := r.years[len(r.years)-1]
	ids := make([]string, len(latest.Sections))
	for i, s := range latest.Sections {
		ids[i] = s.ID
	}
	return ids
}

// Countries returns every country in dataset order (France first).
func Countries() []model.CountryData {
	r := get()
	out := make([]model.CountryData, len(r.countries))
	for i, c := range r.countries {
		out[i] = c.Clone()
	}
	return out
}

// Peers returns every country except France.
func Peers() []model.CountryData {
	r := get()
	out := make([]model.CountryData, 0, len(r.countries)-1)
	for _, c := range r.countries {
		if c.ID != FranceID {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Country looks up a country by id.
func Country(id string) (model.CountryData, bool) {
	r := get()
	idx, ok := r.byCountry[id]
	if !ok {
		return model.CountryData{}, false
	}
	return r.countries[idx].Clone(), true
}

// MustCountry is Country with an error for unknown ids.
func MustCountry(id string) (model.CountryData, error) {
	c, ok := Country(id)
	if !ok {
		return model.CountryData{}, fmt.Errorf("%w: %q", ErrUnknownCountry, id)
	}
	return c, nil
}

// France returns the comparison baseline.
func France() model.CountryData {
	c, _ := Country(FranceID)
	return c
}

// OECDAverages returns the OECD per-section efficiency averages.
func OECDAverages() map[string]float64 {
	r := get()
	out := make(map[string]float64, len(r.oecd))
	for k, v := range r.oecd {
		out[k] = v
	}
	return out
}
