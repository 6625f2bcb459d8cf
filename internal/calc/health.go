package calc

import (
	"math"

	"github.com/theirongolddev/budgettdb/internal/model"
)

// Weights of the composite health score.
const (
	deficitWeight    = 0.35
	debtWeight       = 0.30
	efficiencyWeight = 0.35
)

// RevenueSectionID is the section holding revenues rather than spending.
const RevenueSectionID = "recettes"

// BudgetHealthScore combines deficit, debt ratio and average efficiency into
// a 0-100 score. Each deficit point costs 12, floored at 10; debt follows the
// 60/90/120 bands.
func BudgetHealthScore(deficit, debtRatio, avgEfficiency float64) int {
	deficitScore := math.Max(10, 100+deficit*12)
	score := deficitScore*deficitWeight + debtScore(debtRatio)*debtWeight + avgEfficiency*efficiencyWeight
	return int(math.Round(score))
}

func debtScore(debtRatio float64) float64 {
	switch {
	case debtRatio < 60:
		return 100
	case debtRatio < 90:
		return 70
	case debtRatio < 120:
		return 40
	default:
		return 10
	}
}

// Level is a coarse severity used for colouring.
type Level string

const (
	LevelGood     Level = "good"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Status is a labelled severity.
type Status struct {
	Label  string
	Detail string
	Level  Level
}

// EfficiencyStatus labels an efficiency score.
func EfficiencyStatus(score float64) Status {
	switch {
	case score >= 75:
		return Status{Label: "Performant", Level: LevelGood}
	case score >= 50:
		return Status{Label: "Modéré", Level: LevelWarning}
	default:
		return Status{Label: "Critique", Level: LevelCritical}
	}
}

// DebtStatus labels a debt-to-GDP ratio against the Maastricht reference.
func DebtStatus(debtRatio float64) Status {
	if debtRatio > 100 {
		return Status{Label: "Risque", Detail: "Maastricht dépassé", Level: LevelCritical}
	}
	return Status{Label: "Attention", Detail: "Sous surveillance", Level: LevelWarning}
}

// HealthLabel names a health score band.
func HealthLabel(score int) Status {
	switch {
	case score >= 60:
		return Status{Label: "Budget maîtrisé", Level: LevelGood}
	case score >= 40:
		return Status{Label: "Sous tension", Level: LevelWarning}
	default:
		return Status{Label: "Dégradée", Level: LevelCritical}
	}
}

// AverageEfficiency is the mean efficiency of the sections, 0 for none.
func AverageEfficiency(sections []model.BudgetSection) float64 {
	if len(sections) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sections {
		sum += s.Efficiency
	}
	return sum / float64(len(sections))
}

// TotalExpenditure sums every section except revenues.
func TotalExpenditure(sections []model.BudgetSection) float64 {
	var sum float64
	for _, s := range sections {
		if s.ID != RevenueSectionID {
			sum += s.TotalAmount
		}
	}
	return sum
}

// Health is the header summary of one fiscal year.
type Health struct {
	Score         int
	Status        Status
	AvgEfficiency float64
	Gap           float64 // expenditures minus revenues, Md€
}

// YearHealth scores a fiscal year.
func YearHealth(y model.YearData) Health {
	avg := AverageEfficiency(y.Sections)
	score := BudgetHealthScore(y.Deficit, y.DebtRatio, avg)
	return Health{
		Score:         score,
		Status:        HealthLabel(score),
		AvgEfficiency: avg,
		Gap:           y.TotalExpenditures - y.TotalRevenues,
	}
}
