package calc

import (
	"sort"

	"github.com/theirongolddev/budgettdb/internal/model"
)

// ItemShare is one line item with its share of the section total.
type ItemShare struct {
	Item       model.BudgetItem
	Percentage float64
}

// ItemShares returns the section's items with their share of the section
// total, largest first. Ties keep dataset order.
func ItemShares(section model.BudgetSection) []ItemShare {
	out := make([]ItemShare, len(section.Items))
	for i, it := range section.Items {
		out[i] = ItemShare{Item: it, Percentage: SectionPercentage(it.Amount, section.TotalAmount)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Item.Amount > out[j].Item.Amount
	})
	return out
}

// SectionShare is a section with its share of total expenditure.
type SectionShare struct {
	Section    model.BudgetSection
	Percentage float64
	Status     Status
}

// SectionShares rates every section of a year. Spending sections are shares
// of total expenditure; revenues are reported against total revenues.
func SectionShares(y model.YearData) []SectionShare {
	total := TotalExpenditure(y.Sections)
	out := make([]SectionShare, len(y.Sections))
	for i, s := range y.Sections {
		base := total
		if s.ID == RevenueSectionID {
			base = y.TotalRevenues
		}
		out[i] = SectionShare{
			Section:    s,
			Percentage: SectionPercentage(s.TotalAmount, base),
			Status:     EfficiencyStatus(s.Efficiency),
		}
	}
	return out
}

// Series is one section's totals across years.
type Series struct {
	ID     string
	Title  string
	Values []float64
}

// First returns the oldest value, 0 for an empty series.
func (s Series) First() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Values[0]
}

// Last returns the newest value, 0 for an empty series.
func (s Series) Last() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Values[len(s.Values)-1]
}

// Change returns the first-to-last change in percent, 0 when the series
// starts at zero.
func (s Series) Change() float64 {
	first := s.First()
	if first == 0 {
		return 0
	}
	return round1((s.Last() - first) / first * 100)
}

// TrendSeries builds per-section totals across the given years, in ids order.
// A section missing from a year contributes 0.
func TrendSeries(years []model.YearData, ids []string) []Series {
	out := make([]Series, len(ids))
	for i, id := range ids {
		out[i] = Series{ID: id, Values: make([]float64, len(years))}
	}
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	for yi, y := range years {
		for _, s := range y.Sections {
			i, ok := index[s.ID]
			if !ok {
				continue
			}
			out[i].Values[yi] = s.TotalAmount
			out[i].Title = s.Title
		}
	}
	for i := range out {
		if out[i].Title == "" {
			out[i].Title = out[i].ID
		}
	}
	return out
}

// SectionComparison is France against another country for one section.
type SectionComparison struct {
	ID     string
	France float64
	Other  float64
	Delta  Delta
}

// Comparison is France measured against one peer.
type Comparison struct {
	Country   model.CountryData
	TaxDelta  float64 // France minus peer, points of GDP
	DebtGap   float64
	FranceTSR float64
	OtherTSR  float64
	Savings   float64 // Md€ saved at the peer's spending ratio
	Sections  []SectionComparison
}

// CompareCountries measures france against other. Sections appear in order
// and only when both countries carry a benchmark for them.
func CompareCountries(france, other model.CountryData, order []string, gdp float64) Comparison {
	c := Comparison{
		Country:   other,
		TaxDelta:  round1(france.TaxBurden - other.TaxBurden),
		DebtGap:   round1(france.DebtRatio - other.DebtRatio),
		FranceTSR: TaxToServiceRatio(france.ServiceQualityIndex, france.TaxBurden),
		OtherTSR:  TaxToServiceRatio(other.ServiceQualityIndex, other.TaxBurden),
		Savings:   SavingsOpportunity(france.PublicSpendingPct, other.PublicSpendingPct, gdp),
	}
	for _, id := range order {
		fr, ok := france.SectionBenchmarks[id]
		if !ok {
			continue
		}
		ot, ok := other.SectionBenchmarks[id]
		if !ok {
			continue
		}
		c.Sections = append(c.Sections, SectionComparison{
			ID:     id,
			France: fr,
			Other:  ot,
			Delta:  EfficiencyDelta(fr, ot),
		})
	}
	return c
}

// RankByTSR orders countries by tax-to-service ratio, best first.
func RankByTSR(countries []model.CountryData) []model.CountryData {
	out := make([]model.CountryData, len(countries))
	copy(out, countries)
	sort.SliceStable(out, func(i, j int) bool {
		return TaxToServiceRatio(out[i].ServiceQualityIndex, out[i].TaxBurden) >
			TaxToServiceRatio(out[j].ServiceQualityIndex, out[j].TaxBurden)
	})
	return out
}
