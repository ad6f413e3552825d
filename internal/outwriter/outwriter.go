package outwriter

import (
	"io"

	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSnapshot prints a snapshot report using the configured output format.
func (ow *OutWriter) WriteSnapshot(report schema.SnapshotReport, cfg *contract.Config) error {
	return PrintSnapshot(report, cfg)
}

// WriteDashboard redraws the live terminal dashboard on w.
func (ow *OutWriter) WriteDashboard(w io.Writer, report schema.SnapshotReport, cfg *contract.Config) error {
	return RefreshDashboard(w, report, cfg)
}

// WriteChart renders the chart for report into the configured chart file.
// Nothing is written when no chart file is configured.
func (ow *OutWriter) WriteChart(report schema.SnapshotReport, cfg *contract.Config) error {
	if cfg.ChartFile == "" {
		return nil
	}
	return WriteChartFile(cfg.ChartFile, report, cfg.ChartFormat)
}
