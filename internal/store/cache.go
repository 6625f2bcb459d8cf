// Package store writes and reads SQLite snapshots of the budget dataset.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/theirongolddev/budgettdb/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Snapshot is an open SQLite snapshot database.
type Snapshot struct {
	db *sql.DB
}

// YearRow is one fiscal year with its derived health figures.
type YearRow struct {
	Year          model.YearData
	HealthScore   int
	HealthLabel   string
	AvgEfficiency float64
}

// CountryRow is one country with its derived tax-to-service ratio.
type CountryRow struct {
	Country      model.CountryData
	TaxToService float64
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Snapshot, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Snapshot{db: db}, nil
}

// Close closes the snapshot database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// Replace swaps the database contents for the given years and countries in
// one transaction.
func (s *Snapshot) Replace(years []YearRow, countries []CountryRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"items", "sections", "years", "benchmarks", "countries"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, yr := range years {
		if err := insertYear(tx, yr); err != nil {
			return fmt.Errorf("year %d: %w", yr.Year.Year, err)
		}
	}
	for i, c := range countries {
		if err := insertCountry(tx, i, c); err != nil {
			return fmt.Errorf("country %s: %w", c.Country.ID, err)
		}
	}

	return tx.Commit()
}

func insertYear(tx *sql.Tx, yr YearRow) error {
	y := yr.Year
	_, err := tx.Exec(`INSERT INTO years
		(year, deficit, debt_ratio, total_revenues, total_expenditures, tax_burden,
		 health_score, health_label, avg_efficiency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		y.Year, y.Deficit, y.DebtRatio, y.TotalRevenues, y.TotalExpenditures, y.TaxBurden,
		yr.HealthScore, yr.HealthLabel, yr.AvgEfficiency,
	)
	if err != nil {
		return err
	}

	for si, sec := range y.Sections {
		_, err = tx.Exec(`INSERT INTO sections
			(year, section_id, position, title, icon, color, total_amount,
			 efficiency, oecd_average, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			y.Year, sec.ID, si, sec.Title, sec.Icon, sec.Color, sec.TotalAmount,
			sec.Efficiency, sec.OECDAverage, sec.Description,
		)
		if err != nil {
			return err
		}

		for ii, it := range sec.Items {
			var trend sql.NullFloat64
			if it.Trend != nil {
				trend = sql.NullFloat64{Float64: *it.Trend, Valid: true}
			}
			_, err = tx.Exec(`INSERT INTO items
				(year, section_id, item_id, position, label, amount, description, trend)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				y.Year, sec.ID, it.ID, ii, it.Label, it.Amount, it.Description, trend,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func insertCountry(tx *sql.Tx, pos int, row CountryRow) error {
	c := row.Country
	_, err := tx.Exec(`INSERT INTO countries
		(country_id, position, name, flag, tax_burden, debt_ratio, deficit,
		 public_spending_pct, service_quality, tax_to_service)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, pos, c.Name, c.Flag, c.TaxBurden, c.DebtRatio, c.Deficit,
		c.PublicSpendingPct, c.ServiceQualityIndex, row.TaxToService,
	)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(c.SectionBenchmarks))
	for id := range c.SectionBenchmarks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		_, err = tx.Exec(`INSERT INTO benchmarks (country_id, section_id, score) VALUES (?, ?, ?)`,
			c.ID, id, c.SectionBenchmarks[id])
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadYears reads every year back with its sections and items, oldest first.
func (s *Snapshot) LoadYears() ([]YearRow, error) {
	rows, err := s.db.Query(`SELECT
		year, deficit, debt_ratio, total_revenues, total_expenditures, tax_burden,
		health_score, health_label, avg_efficiency
		FROM years ORDER BY year`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var years []YearRow
	for rows.Next() {
		var yr YearRow
		y := &yr.Year
		if err := rows.Scan(&y.Year, &y.Deficit, &y.DebtRatio, &y.TotalRevenues,
			&y.TotalExpenditures, &y.TaxBurden, &yr.HealthScore, &yr.HealthLabel, &yr.AvgEfficiency); err != nil {
			return nil, err
		}
		years = append(years, yr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	yearIdx := make(map[int]int, len(years))
	for i, yr := range years {
		yearIdx[yr.Year.Year] = i
	}

	secRows, err := s.db.Query(`SELECT
		year, section_id, title, icon, color, total_amount, efficiency, oecd_average, description
		FROM sections ORDER BY year, position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = secRows.Close() }()

	for secRows.Next() {
		var year int
		var sec model.BudgetSection
		var icon, color, desc sql.NullString
		if err := secRows.Scan(&year, &sec.ID, &sec.Title, &icon, &color, &sec.TotalAmount,
			&sec.Efficiency, &sec.OECDAverage, &desc); err != nil {
			return nil, err
		}
		sec.Icon, sec.Color, sec.Description = icon.String, color.String, desc.String
		if idx, ok := yearIdx[year]; ok {
			years[idx].Year.Sections = append(years[idx].Year.Sections, sec)
		}
	}
	if err := secRows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := s.db.Query(`SELECT
		year, section_id, item_id, label, amount, description, trend
		FROM items ORDER BY year, section_id, position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = itemRows.Close() }()

	for itemRows.Next() {
		var year int
		var sectionID string
		var it model.BudgetItem
		var desc sql.NullString
		var trend sql.NullFloat64
		if err := itemRows.Scan(&year, &sectionID, &it.ID, &it.Label, &it.Amount, &desc, &trend); err != nil {
			return nil, err
		}
		it.Description = desc.String
		if trend.Valid {
			v := trend.Float64
			it.Trend = &v
		}
		idx, ok := yearIdx[year]
		if !ok {
			continue
		}
		secs := years[idx].Year.Sections
		for i := range secs {
			if secs[i].ID == sectionID {
				secs[i].Items = append(secs[i].Items, it)
				break
			}
		}
	}
	return years, itemRows.Err()
}

// Counts returns the number of rows per table.
func (s *Snapshot) Counts() (map[string]int, error) {
	out := make(map[string]int)
	for _, table := range []string{"years", "sections", "items", "countries", "benchmarks"} {
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}
