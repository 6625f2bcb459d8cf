package dataset

import (
	"testing"

	"github.com/theirongolddev/budgettdb/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearsAscending(t *testing.T) {
	assert.Equal(t, []int{2023, 2024, 2025}, Years())
	assert.Equal(t, 2025, Latest().Year)
}

func TestYearLookup(t *testing.T) {
	y, ok := Year(2024)
	require.True(t, ok)
	assert.Equal(t, 2024, y.Year)
	assert.Len(t, y.Sections, 7)

	_, ok = Year(1999)
	assert.False(t, ok)

	_, err := MustYear(1999)
	assert.ErrorIs(t, err, ErrUnknownYear)
}

func TestSectionOrder(t *testing.T) {
	assert.Equal(t, []string{
		"recettes", "souverainete", "education", "social",
		"economie", "dette", "fonctionnement",
	}, SectionIDs())
}

func TestSectionIDsStableAcrossYears(t *testing.T) {
	ids := SectionIDs()
	for _, y := range AllYears() {
		got := make([]string, len(y.Sections))
		for i, s := range y.Sections {
			got[i] = s.ID
		}
		assert.Equal(t, ids, got, "year %d", y.Year)
	}
}

func TestSectionTotalsMatchItems(t *testing.T) {
	for _, y := range AllYears() {
		for _, s := range y.Sections {
			var sum float64
			for _, it := range s.Items {
				sum += it.Amount
			}
			assert.InDelta(t, s.TotalAmount, sum, 0.05, "%d/%s", y.Year, s.ID)
		}
	}
}

func TestExpendituresApproximateSectionSum(t *testing.T) {
	for _, y := range AllYears() {
		var sum float64
		for _, s := range y.Sections {
			if s.ID != "recettes" {
				sum += s.TotalAmount
			}
		}
		assert.InDelta(t, y.TotalExpenditures, sum, 60, "year %d", y.Year)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	y, ok := Year(2025)
	require.True(t, ok)
	y.Sections[0].TotalAmount = -1
	y.Sections[0].Items[0].Amount = -1

	again, _ := Year(2025)
	assert.NotEqual(t, -1.0, again.Sections[0].TotalAmount)
	assert.NotEqual(t, -1.0, again.Sections[0].Items[0].Amount)

	fr := France()
	fr.SectionBenchmarks["education"] = 0
	assert.NotZero(t, France().SectionBenchmarks["education"])

	avg := OECDAverages()
	avg["dette"] = 0
	assert.NotZero(t, OECDAverages()["dette"])
}

func TestCountries(t *testing.T) {
	all := Countries()
	require.Len(t, all, 12)
	assert.Equal(t, FranceID, all[0].ID)

	peers := Peers()
	assert.Len(t, peers, 11)
	for _, p := range peers {
		assert.NotEqual(t, FranceID, p.ID)
	}

	de, ok := Country("allemagne")
	require.True(t, ok)
	assert.Equal(t, "Allemagne", de.Name)

	_, err := MustCountry("atlantide")
	assert.ErrorIs(t, err, ErrUnknownCountry)
}

func TestSectionLookup(t *testing.T) {
	s, ok := Section(2025, "education")
	require.True(t, ok)
	assert.Equal(t, "education", s.ID)

	_, ok = Section(2025, "nope")
	assert.False(t, ok)
	_, ok = Section(1900, "education")
	assert.False(t, ok)
}

func TestValidateReportsEveryViolation(t *testing.T) {
	years := []model.YearData{{
		Year: 2025,
		Sections: []model.BudgetSection{
			{ID: "a", Efficiency: 120, Items: []model.BudgetItem{{ID: "x"}, {ID: "x"}}},
			{ID: "a", TotalAmount: -3},
		},
	}}
	countries := []model.CountryData{{ID: "allemagne", ServiceQualityIndex: 50}}

	err := Validate(years, countries)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "scores outside 0-100")
	assert.Contains(t, msg, `item "x" defined twice`)
	assert.Contains(t, msg, `section "a" defined twice`)
	assert.Contains(t, msg, "negative total")
	assert.Contains(t, msg, `exactly one "france"`)
}

func TestValidateAcceptsMismatchedTotals(t *testing.T) {
	years := []model.YearData{{
		Year: 2025,
		Sections: []model.BudgetSection{{
			ID: "a", TotalAmount: 100, Efficiency: 50, OECDAverage: 50,
			Items: []model.BudgetItem{{ID: "x", Amount: 1}},
		}},
	}}
	countries := []model.CountryData{{ID: FranceID, ServiceQualityIndex: 50}}
	assert.NoError(t, Validate(years, countries))
}

func TestDecodeRejectsBrokenYAML(t *testing.T) {
	_, err := decode([]byte("years: [oops"), countriesYAML)
	assert.ErrorContains(t, err, "parse budget data")
}
