package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/theirongolddev/budgettdb/internal/cli"
	"github.com/theirongolddev/budgettdb/internal/dataset"
	"github.com/theirongolddev/budgettdb/internal/export"

	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dataset with derived health scores",
	Long: "Write every fiscal year, country and OECD average to a file, " +
		"together with the health score of each year. Use --out - to print JSON or YAML.",
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", string(export.JSON), "Output format: json, yaml or sqlite")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output path (default budgettdb.<ext>)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	f, err := export.ParseFormat(flagExportFormat)
	if err != nil {
		return err
	}
	snap := export.Build(dataset.AllYears(), dataset.Countries(), dataset.OECDAverages())

	if flagExportOut == "-" {
		return export.Encode(os.Stdout, f, snap)
	}

	path := flagExportOut
	if path == "" {
		path = export.DefaultPath(f)
	}
	slog.Debug("exporting", "format", f, "path", path, "years", len(snap.Years), "countries", len(snap.Countries))
	if err := export.WriteFile(path, f, snap); err != nil {
		return err
	}

	if flagQuiet {
		return nil
	}
	fmt.Printf("  Exported %d years and %d countries to %s\n", len(snap.Years), len(snap.Countries), path)
	if f == export.SQLite {
		counts, err := export.SQLiteCounts(path)
		if err != nil {
			return err
		}
		note("%s", sqliteRowNote(counts))
	}
	return nil
}

// sqliteRowNote summarizes table sizes, e.g. "3 years, 21 sections".
func sqliteRowNote(counts map[string]int) string {
	parts := make([]string, 0, len(sqliteTables))
	for _, table := range sqliteTables {
		parts = append(parts, cli.FormatNumber(int64(counts[table]))+" "+table)
	}
	return "Rows: " + strings.Join(parts, ", ")
}

var sqliteTables = []string{"years", "sections", "items", "countries", "benchmarks"}
