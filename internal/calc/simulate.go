package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/theirongolddev/budgettdb/internal/model"
)

// Efficiency points lost per percent cut and gained per percent added.
const (
	cutPenalty = 0.3
	addGain    = 0.2
)

// DefaultTransfer is the initial simulator amount in Md€.
const DefaultTransfer = 10.0

// ErrSectionNotFound reports a simulation endpoint missing from the sections.
var ErrSectionNotFound = errors.New("section not found")

// MaxTransfer is the largest amount the simulator offers to move out of a
// section: half its total, rounded down.
func MaxTransfer(section model.BudgetSection) float64 {
	return math.Floor(section.TotalAmount * 0.5)
}

// SimulateReallocation moves amount Md€ from sourceID to targetID and
// estimates the efficiency impact. The input slice is never modified. Unknown
// ids leave sections untouched and produce empty impact strings. When the two
// ids are equal only the source branch changes the section.
func SimulateReallocation(sections []model.BudgetSection, sourceID, targetID string, amount float64) model.SimulationResult {
	res := model.SimulationResult{NewSections: make([]model.BudgetSection, len(sections))}

	for i, s := range sections {
		out := s.Clone()
		switch s.ID {
		case sourceID:
			out.TotalAmount = math.Max(0, s.TotalAmount-amount)
			cut := shareOf(amount, s.TotalAmount)
			out.Efficiency = clamp(s.Efficiency-cut*cutPenalty, 0, 100)
		case targetID:
			out.TotalAmount = s.TotalAmount + amount
			add := shareOf(amount, s.TotalAmount)
			out.Efficiency = math.Min(100, s.Efficiency+add*addGain)
		}
		res.NewSections[i] = out
	}

	if src, ok := find(sections, sourceID); ok {
		res.SourceFound = true
		res.SourceImpact = impact(src.Title, "-", amount, src.TotalAmount)
	}
	if dst, ok := find(sections, targetID); ok {
		res.TargetFound = true
		res.TargetImpact = impact(dst.Title, "+", amount, dst.TotalAmount)
	}
	return res
}

// SimulationErr returns nil when both endpoints were found.
func SimulationErr(res model.SimulationResult, sourceID, targetID string) error {
	var errs []error
	if !res.SourceFound {
		errs = append(errs, fmt.Errorf("source %q: %w", sourceID, ErrSectionNotFound))
	}
	if !res.TargetFound {
		errs = append(errs, fmt.Errorf("target %q: %w", targetID, ErrSectionNotFound))
	}
	return errors.Join(errs...)
}

func find(sections []model.BudgetSection, id string) (model.BudgetSection, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s, true
		}
	}
	return model.BudgetSection{}, false
}

func shareOf(amount, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return amount / total * 100
}

func impact(title, sign string, amount, total float64) string {
	return fmt.Sprintf("%s : %s%s Md€ (%.1f%%)", title, sign, strconv.FormatFloat(amount, 'f', -1, 64), shareOf(amount, total))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// TransferCandidates returns the sections money can be moved between:
// every spending section, in dataset order.
func TransferCandidates(sections []model.BudgetSection) []model.BudgetSection {
	out := make([]model.BudgetSection, 0, len(sections))
	for _, s := range sections {
		if s.ID != RevenueSectionID {
			out = append(out, s)
		}
	}
	return out
}

// ClampTransfer bounds an amount to [1, MaxTransfer(source)].
func ClampTransfer(amount float64, source model.BudgetSection) float64 {
	hi := math.Max(1, MaxTransfer(source))
	return clamp(amount, 1, hi)
}
