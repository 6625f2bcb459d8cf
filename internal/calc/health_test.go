package calc

import (
	"testing"

	"github.com/theirongolddev/budgettdb/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetHealthScoreBounds(t *testing.T) {
	assert.Equal(t, 100, BudgetHealthScore(0, 0, 100))
	assert.Equal(t, 7, BudgetHealthScore(-10, 150, 0))
}

func TestBudgetHealthScoreDebtBands(t *testing.T) {
	// deficit 0 and efficiency 0 leave 35 + 0.3*debtScore.
	tests := []struct {
		debt float64
		want int
	}{
		{59.9, 65},
		{60, 56},
		{89.9, 56},
		{90, 47},
		{119.9, 47},
		{120, 38},
		{200, 38},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BudgetHealthScore(0, tt.debt, 0), "debt %v", tt.debt)
	}
}

func TestBudgetHealthScoreDeficitFloor(t *testing.T) {
	assert.Equal(t, BudgetHealthScore(-7.5, 50, 50), BudgetHealthScore(-20, 50, 50))
	assert.Greater(t, BudgetHealthScore(-3, 50, 50), BudgetHealthScore(-5, 50, 50))
}

func TestEfficiencyStatus(t *testing.T) {
	assert.Equal(t, "Performant", EfficiencyStatus(75).Label)
	assert.Equal(t, LevelGood, EfficiencyStatus(90).Level)
	assert.Equal(t, "Modéré", EfficiencyStatus(74.9).Label)
	assert.Equal(t, "Modéré", EfficiencyStatus(50).Label)
	assert.Equal(t, "Critique", EfficiencyStatus(49.9).Label)
	assert.Equal(t, LevelCritical, EfficiencyStatus(0).Level)
}

func TestDebtStatus(t *testing.T) {
	assert.Equal(t, "Risque", DebtStatus(116).Label)
	assert.Equal(t, "Maastricht dépassé", DebtStatus(116).Detail)
	assert.Equal(t, "Attention", DebtStatus(100).Label)
}

func TestHealthLabel(t *testing.T) {
	assert.Equal(t, "Budget maîtrisé", HealthLabel(60).Label)
	assert.Equal(t, "Sous tension", HealthLabel(59).Label)
	assert.Equal(t, "Sous tension", HealthLabel(40).Label)
	assert.Equal(t, "Dégradée", HealthLabel(39).Label)
}

func TestAverageEfficiencyAndTotals(t *testing.T) {
	assert.Zero(t, AverageEfficiency(nil))

	sections := []model.BudgetSection{
		{ID: "recettes", TotalAmount: 1000, Efficiency: 70},
		{ID: "a", TotalAmount: 100, Efficiency: 50},
		{ID: "b", TotalAmount: 50, Efficiency: 30},
	}
	assert.Equal(t, 50.0, AverageEfficiency(sections))
	assert.Equal(t, 150.0, TotalExpenditure(sections))
}

func TestYearHealth(t *testing.T) {
	y := model.YearData{
		Deficit:           -5.4,
		DebtRatio:         116,
		TotalRevenues:     1502,
		TotalExpenditures: 1631,
		Sections: []model.BudgetSection{
			{Efficiency: 68}, {Efficiency: 72}, {Efficiency: 58}, {Efficiency: 62},
			{Efficiency: 55}, {Efficiency: 25}, {Efficiency: 48},
		},
	}
	h := YearHealth(y)
	require.InDelta(t, 388.0/7, h.AvgEfficiency, 1e-9)
	assert.Equal(t, 44, h.Score)
	assert.Equal(t, "Sous tension", h.Status.Label)
	assert.Equal(t, 129.0, h.Gap)
}
