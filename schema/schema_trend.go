package schema

// TrendLine is an ordinary least-squares fit of reading values against their
// position in the window. It is derived from a Snapshot and never stored.
type TrendLine struct {
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	R         float64   `json:"r"`      // Pearson correlation, 0 when undefined
	Fitted    []float64 `json:"fitted"` // Slope*i + Intercept for each index i
}

// At returns the fitted value at index x.
func (t TrendLine) At(x float64) float64 {
	return t.Slope*x + t.Intercept
}

// WindowStats summarizes the values inside the history window.
type WindowStats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// SnapshotReport bundles a Snapshot with its derived values for export.
// Trend is nil when the window holds fewer than two readings.
type SnapshotReport struct {
	Snapshot
	Trend *TrendLine  `json:"trend,omitempty"`
	Stats WindowStats `json:"stats"`
	Label string      `json:"label"`
}
