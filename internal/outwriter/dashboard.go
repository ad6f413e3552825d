package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/tempdash/internal/contract"
	"github.com/huangsam/tempdash/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

// RenderDashboard writes the text dashboard for report: value boxes for the
// latest reading, window statistics, the readings table and the chart.
func RenderDashboard(w io.Writer, report schema.SnapshotReport, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", DashboardTitle, subtitle(report, cfg)); err != nil {
		return err
	}
	if report.Empty() {
		_, err := fmt.Fprintln(w, "Waiting for the first reading...")
		return err
	}

	if err := writeValueBoxes(w, report, cfg); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", statsLine(report, cfg)); err != nil {
		return err
	}
	if err := writeReadingsTable(w, report); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return WritePlot(w, report, GetPlotWidth(cfg))
}

// RefreshDashboard clears the terminal and redraws the dashboard.
func RefreshDashboard(w io.Writer, report schema.SnapshotReport, cfg *contract.Config) error {
	if _, err := io.WriteString(w, clearScreen); err != nil {
		return err
	}
	return RenderDashboard(w, report, cfg)
}

// subtitle describes which temperature band the latest reading falls in.
func subtitle(report schema.SnapshotReport, cfg *contract.Config) string {
	if report.Empty() {
		return "No readings yet"
	}
	label := report.Label
	if label == "" {
		label = contract.GetPlainLabel(report.Latest.Temp)
	}
	if cfg.UseColors {
		label = contract.GetColorLabel(report.Latest.Temp)
	}
	return fmt.Sprintf("Latest reading is %s (%d/%d in window)", label, report.Len(), cfg.Capacity)
}

// writeValueBoxes renders the latest value and its timestamp as two boxes.
func writeValueBoxes(w io.Writer, report schema.SnapshotReport, cfg *contract.Config) error {
	value := report.Latest.TempString()
	stamp := report.Latest.Timestamp
	if cfg.UseColors {
		value = contract.BoxColor.Sprint(value)
		stamp = contract.BoxColor.Sprint(stamp)
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Temperature", "Last Updated"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignCenter
	})
	if err := table.Append([]string{value, stamp}); err != nil {
		return err
	}
	return table.Render()
}

// statsLine summarizes the window and its trend on one line.
func statsLine(report schema.SnapshotReport, cfg *contract.Config) string {
	line := fmt.Sprintf("Tick %d | min %s | max %s | mean %s",
		report.Tick, fmtTemp(report.Stats.Min), fmtTemp(report.Stats.Max), fmtTemp(report.Stats.Mean))
	if report.Trend == nil {
		return line + " | trend n/a"
	}
	trend := fmt.Sprintf("trend %+.2f F/tick (r=%.2f)", report.Trend.Slope, report.Trend.R)
	if cfg.UseColors {
		switch {
		case report.Trend.Slope > 0:
			trend = contract.HotColor.Sprint(trend)
		case report.Trend.Slope < 0:
			trend = contract.CoolColor.Sprint(trend)
		}
	}
	return line + " | " + trend
}

// writeReadingsTable renders the window as (value, timestamp) rows, oldest first.
func writeReadingsTable(w io.Writer, report schema.SnapshotReport) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Temperature", "Timestamp", "Band"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range report.Readings {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			r.TempString(),
			r.Timestamp,
			contract.GetPlainLabel(r.Temp),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
