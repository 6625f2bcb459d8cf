// Package calc holds the pure budget calculations: ratios, scoring,
// reallocation simulation and the aggregates derived from them.
//
// Nothing here returns an error for bad arithmetic input. Divisions by zero
// yield 0 and unknown identifiers are no-ops.
package calc

import (
	"math"
	"strconv"
)

// DefaultGDP is France's approximate nominal GDP in Md€.
const DefaultGDP = 2800.0

// noiseBand is the efficiency gap below which two scores count as equal.
const noiseBand = 2.0

// round1 rounds to one decimal place using the exact binary value of x, so
// 0.15 (stored as 0.1499...) gives 0.1. Exact ties such as 0.25 round away
// from zero.
func round1(x float64) float64 {
	a := math.Abs(x)
	if f := a - math.Floor(a); f == 0.25 || f == 0.75 {
		return math.Round(x*10) / 10
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return v
}

// TaxToServiceRatio returns service quality per point of tax burden, scaled
// by 100. Zero tax burden yields 0.
func TaxToServiceRatio(serviceQualityIndex, taxBurden float64) float64 {
	if taxBurden == 0 {
		return 0
	}
	return round1(serviceQualityIndex / taxBurden * 100)
}

// SavingsOpportunity returns the Md€ France would save by matching another
// country's public-spending-to-GDP ratio. Positive when France spends more.
func SavingsOpportunity(francePct, comparePct, gdp float64) float64 {
	return round1((francePct - comparePct) / 100 * gdp)
}

// DeltaStatus classifies an efficiency gap.
type DeltaStatus string

const (
	Better DeltaStatus = "better"
	Worse  DeltaStatus = "worse"
	Equal  DeltaStatus = "equal"
)

// Delta is France's efficiency score minus a comparison score.
type Delta struct {
	Delta  float64
	Status DeltaStatus
}

// EfficiencyDelta compares two efficiency scores. Gaps within ±2 are Equal.
func EfficiencyDelta(franceScore, compareScore float64) Delta {
	d := franceScore - compareScore
	switch {
	case d > noiseBand:
		return Delta{Delta: d, Status: Better}
	case d < -noiseBand:
		return Delta{Delta: d, Status: Worse}
	default:
		return Delta{Delta: d, Status: Equal}
	}
}

// SectionPercentage returns sectionAmount as a share of totalAmount, one
// decimal. Zero total yields 0.
func SectionPercentage(sectionAmount, totalAmount float64) float64 {
	if totalAmount == 0 {
		return 0
	}
	return round1(sectionAmount / totalAmount * 100)
}
