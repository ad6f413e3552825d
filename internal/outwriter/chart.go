package outwriter

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/tempdash/schema"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default chart image size in pixels.
const (
	DefaultChartWidth  = 800
	DefaultChartHeight = 400
)

// Titles, axis and series names shared by the image and terminal charts.
const (
	DashboardTitle = "Live Temperature Dashboard"
	ChartTitle     = "Temperature Readings with Regression Line"
	XAxisName      = "Time"
	YAxisName      = "Temperature (°F)"
	readingsSeries = "Readings"
	trendSeries    = "Trend"
)

// ErrNoReadings is returned when a chart is requested for an empty window.
var ErrNoReadings = errors.New("no readings to chart")

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// lineStyle returns a style that renders a plain line.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
	}
}

// ChartContentType returns the MIME type of a rendered chart.
func ChartContentType(format schema.ChartFormat) string {
	if format == schema.PNGChart {
		return "image/png"
	}
	return "image/svg+xml"
}

// BuildChart assembles the scatter plot of the window with the trend line
// overlaid when the report carries one.
func BuildChart(report schema.SnapshotReport, width, height int) (chart.Chart, error) {
	times := report.Times()
	values := report.Values()
	if len(times) == 0 {
		return chart.Chart{}, ErrNoReadings
	}
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}

	xs, ys := times, values
	st := pointStyle(chart.ColorBlue)
	if len(xs) == 1 {
		// Pad to at least two X values for go-chart
		xs = []time.Time{times[0], times[0].Add(time.Second)}
		ys = []float64{values[0], values[0]}
		st.DotWidth = 7
	}
	series := []chart.Series{
		chart.TimeSeries{Name: readingsSeries, XValues: xs, YValues: ys, Style: st},
	}
	yMin, yMax := report.Stats.Min, report.Stats.Max
	if report.Trend != nil {
		series = append(series, chart.TimeSeries{
			Name:    trendSeries,
			XValues: times,
			YValues: report.Trend.Fitted,
			Style:   lineStyle(chart.ColorRed),
		})
		for _, v := range report.Trend.Fitted {
			yMin = min(yMin, v)
			yMax = max(yMax, v)
		}
	}

	// Ensure non-zero ranges even when every reading shares a value or an instant
	minF := chart.TimeToFloat64(xs[0])
	maxF := chart.TimeToFloat64(xs[len(xs)-1])
	if maxF <= minF {
		maxF = chart.TimeToFloat64(xs[0].Add(time.Second))
	}

	ch := chart.Chart{
		Title:      ChartTitle,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           XAxisName,
			ValueFormatter: chart.TimeValueFormatterWithFormat(time.TimeOnly),
			Range:          &chart.ContinuousRange{Min: minF, Max: maxF},
		},
		YAxis: chart.YAxis{
			Name:  YAxisName,
			Range: &chart.ContinuousRange{Min: yMin - 0.5, Max: yMax + 0.5},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}

// RenderChart writes the chart for report to w in the given format.
func RenderChart(w io.Writer, report schema.SnapshotReport, format schema.ChartFormat, width, height int) error {
	ch, err := BuildChart(report, width, height)
	if err != nil {
		return err
	}
	provider := chart.SVG
	if format == schema.PNGChart {
		provider = chart.PNG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", format, err)
	}
	return nil
}

// WriteChartFile renders the chart for report into path.
func WriteChartFile(path string, report schema.SnapshotReport, format schema.ChartFormat) error {
	return writeWithFile(path, func(w io.Writer) error {
		return RenderChart(w, report, format, DefaultChartWidth, DefaultChartHeight)
	}, fmt.Sprintf("Wrote %s chart", format))
}
