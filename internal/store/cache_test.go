package store

import (
	"path/filepath"
	"testing"

	"github.com/theirongolddev/budgettdb/internal/model"
)

func sampleYears() []YearRow {
	trend := -2.5
	return []YearRow{{
		Year: model.YearData{
			Year: 2025, Deficit: -5.4, DebtRatio: 116, TotalRevenues: 100, TotalExpenditures: 120, TaxBurden: 43.5,
			Sections: []model.BudgetSection{
				{ID: "b", Title: "Bêta", TotalAmount: 30, Efficiency: 60, OECDAverage: 70,
					Items: []model.BudgetItem{{ID: "x", Label: "X", Amount: 20, Trend: &trend}, {ID: "y", Label: "Y", Amount: 10}}},
				{ID: "a", Title: "Alpha", TotalAmount: 20, Efficiency: 50, OECDAverage: 55},
			},
		},
		HealthScore: 44, HealthLabel: "Sous tension", AvgEfficiency: 55,
	}}
}

func sampleCountries() []CountryRow {
	return []CountryRow{{
		Country: model.CountryData{
			ID: "france", Name: "France", TaxBurden: 43.5, ServiceQualityIndex: 72,
			SectionBenchmarks: map[string]float64{"a": 50, "b": 60},
		},
		TaxToService: 165.5,
	}}
}

func openTemp(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := Open(filepath.Join(t.TempDir(), "nested", "budget.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = snap.Close() })
	return snap
}

func TestReplaceAndLoadYears(t *testing.T) {
	snap := openTemp(t)

	if err := snap.Replace(sampleYears(), sampleCountries()); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	years, err := snap.LoadYears()
	if err != nil {
		t.Fatalf("LoadYears: %v", err)
	}
	if len(years) != 1 {
		t.Fatalf("got %d years, want 1", len(years))
	}
	got := years[0]
	if got.HealthScore != 44 || got.HealthLabel != "Sous tension" {
		t.Fatalf("health = %d %q", got.HealthScore, got.HealthLabel)
	}
	secs := got.Year.Sections
	if len(secs) != 2 || secs[0].ID != "b" || secs[1].ID != "a" {
		t.Fatalf("section order not preserved: %+v", secs)
	}
	if secs[0].Title != "Bêta" {
		t.Fatalf("title = %q", secs[0].Title)
	}
	if len(secs[0].Items) != 2 || secs[0].Items[0].ID != "x" {
		t.Fatalf("items = %+v", secs[0].Items)
	}
	if secs[0].Items[0].Trend == nil || *secs[0].Items[0].Trend != -2.5 {
		t.Fatalf("trend not restored: %v", secs[0].Items[0].Trend)
	}
	if secs[0].Items[1].Trend != nil {
		t.Fatal("missing trend should stay nil")
	}
}

func TestReplaceIsIdempotent(t *testing.T) {
	snap := openTemp(t)

	for i := 0; i < 2; i++ {
		if err := snap.Replace(sampleYears(), sampleCountries()); err != nil {
			t.Fatalf("Replace #%d: %v", i, err)
		}
	}

	counts, err := snap.Counts()
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	want := map[string]int{"years": 1, "sections": 2, "items": 2, "countries": 1, "benchmarks": 2}
	for table, n := range want {
		if counts[table] != n {
			t.Errorf("%s rows = %d, want %d", table, counts[table], n)
		}
	}
}
