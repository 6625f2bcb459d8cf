package calc

import (
	"testing"

	"github.com/theirongolddev/budgettdb/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemShares(t *testing.T) {
	s := model.BudgetSection{
		TotalAmount: 200,
		Items: []model.BudgetItem{
			{ID: "small", Amount: 50},
			{ID: "big", Amount: 150},
		},
	}
	shares := ItemShares(s)
	require.Len(t, shares, 2)
	assert.Equal(t, "big", shares[0].Item.ID)
	assert.Equal(t, 75.0, shares[0].Percentage)
	assert.Equal(t, 25.0, shares[1].Percentage)

	assert.Zero(t, ItemShares(model.BudgetSection{Items: []model.BudgetItem{{Amount: 3}}})[0].Percentage)
}

func TestSectionShares(t *testing.T) {
	y := model.YearData{
		TotalRevenues: 500,
		Sections: []model.BudgetSection{
			{ID: "recettes", TotalAmount: 500, Efficiency: 80},
			{ID: "a", TotalAmount: 300, Efficiency: 60},
			{ID: "b", TotalAmount: 100, Efficiency: 20},
		},
	}
	shares := SectionShares(y)
	require.Len(t, shares, 3)
	assert.Equal(t, 100.0, shares[0].Percentage)
	assert.Equal(t, 75.0, shares[1].Percentage)
	assert.Equal(t, 25.0, shares[2].Percentage)
	assert.Equal(t, LevelCritical, shares[2].Status.Level)
}

func TestTrendSeries(t *testing.T) {
	years := []model.YearData{
		{Year: 2023, Sections: []model.BudgetSection{{ID: "a", Title: "Alpha", TotalAmount: 10}}},
		{Year: 2024, Sections: []model.BudgetSection{{ID: "a", Title: "Alpha", TotalAmount: 12}, {ID: "b", Title: "Beta", TotalAmount: 4}}},
	}
	series := TrendSeries(years, []string{"b", "a", "c"})
	require.Len(t, series, 3)

	assert.Equal(t, "Beta", series[0].Title)
	assert.Equal(t, []float64{0, 4}, series[0].Values)
	assert.Zero(t, series[0].Change())

	assert.Equal(t, []float64{10, 12}, series[1].Values)
	assert.Equal(t, 20.0, series[1].Change())

	assert.Equal(t, "c", series[2].Title)
	assert.Equal(t, []float64{0, 0}, series[2].Values)
}

func TestCompareCountries(t *testing.T) {
	fr := model.CountryData{
		ID: "france", TaxBurden: 43.5, DebtRatio: 113, PublicSpendingPct: 57,
		ServiceQualityIndex: 72,
		SectionBenchmarks:   map[string]float64{"a": 60, "b": 50, "only_fr": 10},
	}
	de := model.CountryData{
		ID: "allemagne", TaxBurden: 38, DebtRatio: 63.6, PublicSpendingPct: 49.5,
		ServiceQualityIndex: 80,
		SectionBenchmarks:   map[string]float64{"a": 70, "b": 49},
	}

	c := CompareCountries(fr, de, []string{"b", "a", "only_fr"}, DefaultGDP)
	assert.Equal(t, 5.5, c.TaxDelta)
	assert.Equal(t, 49.4, c.DebtGap)
	assert.Equal(t, 165.5, c.FranceTSR)
	assert.Equal(t, 210.5, c.OtherTSR)
	assert.Equal(t, 210.0, c.Savings)

	require.Len(t, c.Sections, 2)
	assert.Equal(t, "b", c.Sections[0].ID)
	assert.Equal(t, Equal, c.Sections[0].Delta.Status)
	assert.Equal(t, Worse, c.Sections[1].Delta.Status)
}

func TestRankByTSR(t *testing.T) {
	in := []model.CountryData{
		{ID: "low", ServiceQualityIndex: 50, TaxBurden: 50},
		{ID: "high", ServiceQualityIndex: 90, TaxBurden: 30},
		{ID: "none", ServiceQualityIndex: 90, TaxBurden: 0},
	}
	got := RankByTSR(in)
	assert.Equal(t, "high", got[0].ID)
	assert.Equal(t, "none", got[2].ID)
	assert.Equal(t, "low", in[0].ID)
}
