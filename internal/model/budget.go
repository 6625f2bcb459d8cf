// Package model defines domain types for budget years, sections and countries.
package model

// BudgetItem is one expenditure or revenue line inside a section.
type BudgetItem struct {
	ID          string   `yaml:"id" json:"id"`
	Label       string   `yaml:"label" json:"label"`
	Amount      float64  `yaml:"amount" json:"amount"` // Md€
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Trend       *float64 `yaml:"trend,omitempty" json:"trend,omitempty"` // % change vs previous year
}

// BudgetSection is a top-level budget category for one fiscal year.
// TotalAmount conventionally equals the sum of its items but nothing enforces it.
type BudgetSection struct {
	ID          string       `yaml:"id" json:"id"`
	Title       string       `yaml:"title" json:"title"`
	Icon        string       `yaml:"icon" json:"icon"`
	Color       string       `yaml:"color" json:"color"`
	ColorDim    string       `yaml:"color_dim" json:"colorDim"`
	TotalAmount float64      `yaml:"total_amount" json:"totalAmount"` // Md€
	Items       []BudgetItem `yaml:"items" json:"items"`
	Efficiency  float64      `yaml:"efficiency" json:"efficiency"`    // 0-100
	OECDAverage float64      `yaml:"oecd_average" json:"oecdAverage"` // 0-100
	Description string       `yaml:"description" json:"description"`
}

// Clone returns a deep copy so callers can never reach shared item slices.
func (s BudgetSection) Clone() BudgetSection {
	out := s
	if s.Items != nil {
		out.Items = make([]BudgetItem, len(s.Items))
		for i, it := range s.Items {
			out.Items[i] = it
			if it.Trend != nil {
				v := *it.Trend
				out.Items[i].Trend = &v
			}
		}
	}
	return out
}

// YearData is one fiscal year's complete snapshot.
type YearData struct {
	Year              int             `yaml:"year" json:"year"`
	Deficit           float64         `yaml:"deficit" json:"deficit"`      // % of GDP, negative for a deficit
	DebtRatio         float64         `yaml:"debt_ratio" json:"debtRatio"` // % of GDP
	TotalRevenues     float64         `yaml:"total_revenues" json:"totalRevenues"`
	TotalExpenditures float64         `yaml:"total_expenditures" json:"totalExpenditures"`
	TaxBurden         float64         `yaml:"tax_burden" json:"taxBurden"` // % of GDP
	Sections          []BudgetSection `yaml:"sections" json:"sections"`
}

// Clone returns a deep copy of the year.
func (y YearData) Clone() YearData {
	out := y
	if y.Sections != nil {
		out.Sections = make([]BudgetSection, len(y.Sections))
		for i, s := range y.Sections {
			out.Sections[i] = s.Clone()
		}
	}
	return out
}

// CountryData is one country's fiscal profile used for comparisons.
type CountryData struct {
	ID                  string             `yaml:"id" json:"id"`
	Name                string             `yaml:"name" json:"name"`
	Flag                string             `yaml:"flag" json:"flag"`
	TaxBurden           float64            `yaml:"tax_burden" json:"taxBurden"`
	DebtRatio           float64            `yaml:"debt_ratio" json:"debtRatio"`
	Deficit             float64            `yaml:"deficit" json:"deficit"`
	PublicSpendingPct   float64            `yaml:"public_spending_pct" json:"publicSpendingPct"`
	ServiceQualityIndex float64            `yaml:"service_quality_index" json:"serviceQualityIndex"`
	SectionBenchmarks   map[string]float64 `yaml:"section_benchmarks" json:"sectionBenchmarks"`
}

// Clone returns a copy with its own benchmark map.
func (c CountryData) Clone() CountryData {
	out := c
	if c.SectionBenchmarks != nil {
		out.SectionBenchmarks = make(map[string]float64, len(c.SectionBenchmarks))
		for k, v := range c.SectionBenchmarks {
			out.SectionBenchmarks[k] = v
		}
	}
	return out
}
