package dataset

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/budgettdb/internal/model"
)

// Validate checks the structural invariants of the tables. It does not
// require section totals to match the sum of their items.
func Validate(years []model.YearData, countries []model.CountryData) error {
	var errs []error

	if len(years) == 0 {
		errs = append(errs, errors.New("no fiscal years"))
	}
	seenYears := make(map[int]bool, len(years))
	for _, y := range years {
		if seenYears[y.Year] {
			errs = append(errs, fmt.Errorf("year %d defined twice", y.Year))
		}
		seenYears[y.Year] = true
		errs = append(errs, validateYear(y)...)
	}

	france := 0
	seenCountries := make(map[string]bool, len(countries))
	for _, c := range countries {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("country %q has no id", c.Name))
			continue
		}
		if seenCountries[c.ID] {
			errs = append(errs, fmt.Errorf("country %q defined twice", c.ID))
		}
		seenCountries[c.ID] = true
		if c.ID == FranceID {
			france++
		}
		if !inScoreRange(c.ServiceQualityIndex) {
			errs = append(errs, fmt.Errorf("country %q: service quality %.1f outside 0-100", c.ID, c.ServiceQualityIndex))
		}
		for id, v := range c.SectionBenchmarks {
			if !inScoreRange(v) {
				errs = append(errs, fmt.Errorf("country %q: benchmark %s=%.1f outside 0-100", c.ID, id, v))
			}
		}
	}
	if france != 1 {
		errs = append(errs, fmt.Errorf("expected exactly one %q entry, found %d", FranceID, france))
	}

	return errors.Join(errs...)
}

func validateYear(y model.YearData) []error {
	var errs []error
	seen := make(map[string]bool, len(y.Sections))
	for _, s := range y.Sections {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("%d: section %q has no id", y.Year, s.Title))
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("%d: section %q defined twice", y.Year, s.ID))
		}
		seen[s.ID] = true

		if s.TotalAmount < 0 {
			errs = append(errs, fmt.Errorf("%d/%s: negative total", y.Year, s.ID))
		}
		if !inScoreRange(s.Efficiency) || !inScoreRange(s.OECDAverage) {
			errs = append(errs, fmt.Errorf("%d/%s: scores outside 0-100", y.Year, s.ID))
		}

		items := make(map[string]bool, len(s.Items))
		for _, it := range s.Items {
			if items[it.ID] {
				errs = append(errs, fmt.Errorf("%d/%s: item %q defined twice", y.Year, s.ID, it.ID))
			}
			items[it.ID] = true
			if it.Amount < 0 {
				errs = append(errs, fmt.Errorf("%d/%s/%s: negative amount", y.Year, s.ID, it.ID))
			}
		}
	}
	return errs
}

func inScoreRange(v float64) bool {
	return v >= 0 && v <= 100
}
