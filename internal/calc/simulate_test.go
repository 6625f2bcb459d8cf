package calc

import (
	"testing"

	"github.com/theirongolddev/budgettdb/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSections() []model.BudgetSection {
	return []model.BudgetSection{
		{ID: "a", Title: "Alpha", TotalAmount: 20, Efficiency: 50},
		{ID: "b", Title: "Beta", TotalAmount: 30, Efficiency: 60},
	}
}

func TestSimulateReallocation(t *testing.T) {
	res := SimulateReallocation(twoSections(), "a", "b", 10)

	require.Len(t, res.NewSections, 2)
	assert.Equal(t, 10.0, res.NewSections[0].TotalAmount)
	assert.InDelta(t, 35, res.NewSections[0].Efficiency, 1e-9)
	assert.Equal(t, 40.0, res.NewSections[1].TotalAmount)
	assert.InDelta(t, 66.67, res.NewSections[1].Efficiency, 0.01)

	assert.Equal(t, "Alpha : -10 Md€ (50.0%)", res.SourceImpact)
	assert.Equal(t, "Beta : +10 Md€ (33.3%)", res.TargetImpact)
	assert.True(t, res.SourceFound)
	assert.True(t, res.TargetFound)
	assert.NoError(t, SimulationErr(res, "a", "b"))
}

func TestSimulateReallocationDoesNotMutateInput(t *testing.T) {
	in := twoSections()
	in[0].Items = []model.BudgetItem{{ID: "x", Amount: 20}}

	res := SimulateReallocation(in, "a", "b", 10)
	res.NewSections[0].Items[0].Amount = 999

	assert.Equal(t, twoSections()[0].TotalAmount, in[0].TotalAmount)
	assert.Equal(t, twoSections()[1].Efficiency, in[1].Efficiency)
	assert.Equal(t, 20.0, in[0].Items[0].Amount)
}

func TestSimulateReallocationIdentity(t *testing.T) {
	in := twoSections()
	res := SimulateReallocation(in, "a", "b", 0)
	assert.Equal(t, in, res.NewSections)
}

func TestSimulateReallocationRepeatable(t *testing.T) {
	in := twoSections()
	first := SimulateReallocation(in, "a", "b", 5)
	second := SimulateReallocation(in, "a", "b", 5)
	assert.Equal(t, first, second)
}

func TestSimulateReallocationSameID(t *testing.T) {
	res := SimulateReallocation(twoSections(), "a", "a", 10)

	// Source branch wins: the section loses money and is not credited back.
	assert.Equal(t, 10.0, res.NewSections[0].TotalAmount)
	assert.InDelta(t, 35, res.NewSections[0].Efficiency, 1e-9)
	assert.Equal(t, twoSections()[1], res.NewSections[1])
}

func TestSimulateReallocationUnknownIDs(t *testing.T) {
	in := twoSections()
	res := SimulateReallocation(in, "zz", "b", 10)

	assert.Equal(t, in[0], res.NewSections[0])
	assert.Equal(t, 40.0, res.NewSections[1].TotalAmount)
	assert.Empty(t, res.SourceImpact)
	assert.NotEmpty(t, res.TargetImpact)
	assert.False(t, res.SourceFound)

	err := SimulationErr(res, "zz", "b")
	assert.ErrorIs(t, err, ErrSectionNotFound)
	assert.ErrorContains(t, err, `"zz"`)

	none := SimulateReallocation(in, "x", "y", 10)
	assert.Equal(t, in, none.NewSections)
	assert.Empty(t, none.TargetImpact)
}

func TestSimulateReallocationClampsSource(t *testing.T) {
	res := SimulateReallocation(twoSections(), "a", "b", 100)

	assert.Zero(t, res.NewSections[0].TotalAmount)
	// 500% cut penalty drives efficiency to the floor.
	assert.Zero(t, res.NewSections[0].Efficiency)
	assert.Equal(t, 100.0, res.NewSections[1].Efficiency)
}

func TestSimulateReallocationZeroTotals(t *testing.T) {
	in := []model.BudgetSection{
		{ID: "a", Title: "Alpha", TotalAmount: 0, Efficiency: 40},
		{ID: "b", Title: "Beta", TotalAmount: 0, Efficiency: 40},
	}
	res := SimulateReallocation(in, "a", "b", 5)

	assert.Zero(t, res.NewSections[0].TotalAmount)
	assert.Equal(t, 40.0, res.NewSections[0].Efficiency)
	assert.Equal(t, 5.0, res.NewSections[1].TotalAmount)
	assert.Equal(t, 40.0, res.NewSections[1].Efficiency)
	assert.Equal(t, "Alpha : -5 Md€ (0.0%)", res.SourceImpact)
}

func TestSimulateReallocationFractionalAmount(t *testing.T) {
	res := SimulateReallocation(twoSections(), "a", "b", 2.5)
	assert.Equal(t, "Alpha : -2.5 Md€ (12.5%)", res.SourceImpact)
	assert.Equal(t, 17.5, res.NewSections[0].TotalAmount)
}

func TestMaxTransfer(t *testing.T) {
	assert.Equal(t, 42.0, MaxTransfer(model.BudgetSection{TotalAmount: 85}))
	assert.Equal(t, 29.0, MaxTransfer(model.BudgetSection{TotalAmount: 58}))
	assert.Zero(t, MaxTransfer(model.BudgetSection{TotalAmount: 1}))
}

func TestTransferCandidatesSkipRevenues(t *testing.T) {
	in := []model.BudgetSection{{ID: "recettes"}, {ID: "a"}, {ID: "b"}}
	got := TransferCandidates(in)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
}

func TestClampTransfer(t *testing.T) {
	src := model.BudgetSection{TotalAmount: 58}
	assert.Equal(t, 29.0, ClampTransfer(100, src))
	assert.Equal(t, 1.0, ClampTransfer(-4, src))
	assert.Equal(t, 12.0, ClampTransfer(12, src))
	assert.Equal(t, 1.0, ClampTransfer(5, model.BudgetSection{TotalAmount: 1}))
}
