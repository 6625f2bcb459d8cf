package model

// SimulationState holds the transient reallocation inputs picked in the UI.
type SimulationState struct {
	SourceID string
	TargetID string
	Amount   float64 // Md€
}

// Ready reports whether the state describes a runnable simulation:
// two distinct endpoints and a positive amount.
func (s SimulationState) Ready() bool {
	return s.SourceID != "" && s.TargetID != "" && s.SourceID != s.TargetID && s.Amount > 0
}

// Reset clears both endpoints and restores the default amount.
func (s *SimulationState) Reset(defaultAmount float64) {
	s.SourceID = ""
	s.TargetID = ""
	s.Amount = defaultAmount
}

// ClearSource drops the source selection. Clearing either endpoint resets the
// whole simulation.
func (s *SimulationState) ClearSource(defaultAmount float64) {
	s.Reset(defaultAmount)
}

// ClearTarget drops the target selection and resets the simulation.
func (s *SimulationState) ClearTarget(defaultAmount float64) {
	s.Reset(defaultAmount)
}

// SimulationResult is the hypothetical outcome of moving money between sections.
type SimulationResult struct {
	NewSections  []BudgetSection
	SourceImpact string
	TargetImpact string
	SourceFound  bool
	TargetFound  bool
}
