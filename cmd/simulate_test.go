package cmd

import (
	"errors"
	"math"
	"testing"

	"github.com/theirongolddev/budgettdb/internal/calc"
	"github.com/theirongolddev/budgettdb/internal/dataset"
)

func TestValidateTransfer(t *testing.T) {
	y := dataset.Latest()
	cands := calc.TransferCandidates(y.Sections)
	from, to := cands[0], cands[1]
	maxAmt := calc.MaxTransfer(from)

	tests := []struct {
		name   string
		from   string
		to     string
		amount float64
		ok     bool
	}{
		{"valid", from.ID, to.ID, 10, true},
		{"at max", from.ID, to.ID, maxAmt, true},
		{"above max", from.ID, to.ID, maxAmt + 1, false},
		{"zero", from.ID, to.ID, 0, false},
		{"negative", from.ID, to.ID, -5, false},
		{"nan", from.ID, to.ID, math.NaN(), false},
		{"infinite", from.ID, to.ID, math.Inf(1), false},
		{"negative infinite", from.ID, to.ID, math.Inf(-1), false},
		{"same section", from.ID, from.ID, 10, false},
		{"missing from", "", to.ID, 10, false},
		{"unknown target", from.ID, "lune", 10, false},
		{"revenues as source", calc.RevenueSectionID, to.ID, 10, false},
		{"revenues as target", from.ID, calc.RevenueSectionID, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := validateTransfer(y, tt.from, tt.to, tt.amount)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if src.ID != tt.from {
					t.Errorf("source = %q, want %q", src.ID, tt.from)
				}
				return
			}
			if !errors.Is(err, errInvalidTransfer) {
				t.Errorf("err = %v, want errInvalidTransfer", err)
			}
		})
	}
}

func TestTransferAmount(t *testing.T) {
	if got := transferAmount(false, 0, 10); got != 10 {
		t.Errorf("flag absent = %v, want config default 10", got)
	}
	if got := transferAmount(true, 25, 10); got != 25 {
		t.Errorf("flag given = %v, want 25", got)
	}

	y := dataset.Latest()
	cands := calc.TransferCandidates(y.Sections)
	amount := transferAmount(true, 0, 10)
	if _, err := validateTransfer(y, cands[0].ID, cands[1].ID, amount); !errors.Is(err, errInvalidTransfer) {
		t.Errorf("explicit zero amount err = %v, want errInvalidTransfer", err)
	}
}

func TestSelectedYear(t *testing.T) {
	defer func() { flagYear = 0; appCfg.General.DefaultYear = 0 }()

	flagYear, appCfg.General.DefaultYear = 0, 0
	if y, err := selectedYear(); err != nil || y.Year != dataset.Latest().Year {
		t.Errorf("default = %d, %v", y.Year, err)
	}

	appCfg.General.DefaultYear = 2023
	if y, _ := selectedYear(); y.Year != 2023 {
		t.Errorf("config default = %d, want 2023", y.Year)
	}

	flagYear = 2024
	if y, _ := selectedYear(); y.Year != 2024 {
		t.Errorf("flag = %d, want 2024", y.Year)
	}

	flagYear = 1999
	if _, err := selectedYear(); !errors.Is(err, dataset.ErrUnknownYear) {
		t.Errorf("unknown year err = %v", err)
	}
}
