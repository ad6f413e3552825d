// Package algo has the pure statistics computed over a reading window.
package algo

import (
	"errors"
	"math"

	"github.com/huangsam/tempdash/schema"
)

// MinFitPoints is the smallest window a trend can be fitted over.
const MinFitPoints = 2

// ErrInsufficientData is returned when a fit is requested over fewer than MinFitPoints values.
var ErrInsufficientData = errors.New("insufficient data")

// Fit computes the ordinary least-squares line through (i, values[i]) for
// i = 0..len(values)-1 and returns it with a fitted value per index.
func Fit(values []float64) (schema.TrendLine, error) {
	n := len(values)
	if n < MinFitPoints {
		return schema.TrendLine{}, ErrInsufficientData
	}

	nf := float64(n)
	xMean := (nf - 1) / 2
	var yMean float64
	for _, y := range values {
		yMean += y
	}
	yMean /= nf

	var sxx, sxy, syy float64
	for i, y := range values {
		dx := float64(i) - xMean
		dy := y - yMean
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	// sxx > 0 whenever n >= 2 since the indices are distinct.
	slope := sxy / sxx
	intercept := yMean - slope*xMean

	var r float64
	if syy > 0 {
		r = sxy / math.Sqrt(sxx*syy)
	}

	line := schema.TrendLine{
		Slope:     slope,
		Intercept: intercept,
		R:         r,
		Fitted:    make([]float64, n),
	}
	for i := range line.Fitted {
		line.Fitted[i] = line.At(float64(i))
	}
	return line, nil
}

// FitSnapshot fits a trend over the snapshot's reading values.
func FitSnapshot(snap schema.Snapshot) (schema.TrendLine, error) {
	return Fit(snap.Values())
}

// Summarize returns count, min, max and mean of values. The zero value is
// returned for an empty slice.
func Summarize(values []float64) schema.WindowStats {
	if len(values) == 0 {
		return schema.WindowStats{}
	}
	stats := schema.WindowStats{
		Count: len(values),
		Min:   math.Inf(1),
		Max:   math.Inf(-1),
	}
	var sum float64
	for _, v := range values {
		stats.Min = min(stats.Min, v)
		stats.Max = max(stats.Max, v)
		sum += v
	}
	stats.Mean = sum / float64(len(values))
	return stats
}

// BuildReport bundles a snapshot with its trend, stats and band label.
// The label function is supplied by the caller so this package stays free of
// presentation concerns.
func BuildReport(snap schema.Snapshot, label func(float64) string) schema.SnapshotReport {
	report := schema.SnapshotReport{
		Snapshot: snap,
		Stats:    Summarize(snap.Values()),
	}
	if trend, err := FitSnapshot(snap); err == nil {
		report.Trend = &trend
	}
	if label != nil && !snap.Empty() {
		report.Label = label(snap.Latest.Temp)
	}
	return report
}
