package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/internal/parquet"
	"github.com/huangsam/tempdash/schema"
)

// PrintSnapshot outputs the report, dispatching based on the output format configured.
func PrintSnapshot(report schema.SnapshotReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON snapshot"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteReadingsCSV(w, report.Readings)
		}, "Wrote CSV snapshot"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteReadings(w, parquet.ConvertReadings(report.Readings))
		}, "Wrote Parquet snapshot"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable dashboard
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return RenderDashboard(w, report, cfg)
		}, "Wrote dashboard"); err != nil {
			return fmt.Errorf("error writing dashboard output: %w", err)
		}
	}
	return nil
}

// WriteReadingsCSV writes readings as temp,timestamp rows, oldest first.
func WriteReadingsCSV(w io.Writer, readings []schema.Reading) error {
	return writeCSVWithHeader(w, []string{"temp", "timestamp"}, func(cw *csv.Writer) error {
		for _, r := range readings {
			if err := cw.Write([]string{strconv.FormatFloat(r.Temp, 'f', 1, 64), r.Timestamp}); err != nil {
				return err
			}
		}
		return nil
	})
}
