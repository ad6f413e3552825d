package outwriter

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/huangsam/tempdash/schema"
)

// Glyphs used by the terminal chart.
const (
	pointGlyph = '●'
	trendGlyph = '·'
	plotHeight = 10
)

// plotGrid is a character canvas with the value axis running top to bottom.
type plotGrid struct {
	cells      [][]rune
	width      int
	height     int
	yMin, yMax float64
}

func newPlotGrid(width, height int, yMin, yMax float64) *plotGrid {
	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", width))
	}
	if yMax <= yMin {
		yMin, yMax = yMin-0.5, yMax+0.5
	}
	return &plotGrid{cells: cells, width: width, height: height, yMin: yMin, yMax: yMax}
}

// row maps a value to a grid row, where row 0 is the top.
func (g *plotGrid) row(v float64) int {
	frac := (v - g.yMin) / (g.yMax - g.yMin)
	r := g.height - 1 - int(math.Round(frac*float64(g.height-1)))
	return min(max(r, 0), g.height-1)
}

// col maps a window index to a grid column.
func (g *plotGrid) col(i, n int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) * float64(g.width-1) / float64(n-1)))
}

func (g *plotGrid) set(r, c int, glyph rune) {
	if c < 0 || c >= g.width {
		return
	}
	g.cells[r][c] = glyph
}

// WritePlot draws the window as a scatter of points with the trend line
// beneath them, labelled with the value range and the first and last times.
func WritePlot(w io.Writer, report schema.SnapshotReport, width int) error {
	n := report.Len()
	if n == 0 {
		return ErrNoReadings
	}
	width = max(width, minPlotWidth)

	yMin, yMax := report.Stats.Min, report.Stats.Max
	if report.Trend != nil {
		for _, v := range report.Trend.Fitted {
			yMin = min(yMin, v)
			yMax = max(yMax, v)
		}
	}
	grid := newPlotGrid(width, plotHeight, yMin, yMax)

	if report.Trend != nil && n > 1 {
		for c := range width {
			x := float64(c) * float64(n-1) / float64(width-1)
			grid.set(grid.row(report.Trend.At(x)), c, trendGlyph)
		}
	}
	for i, r := range report.Readings {
		grid.set(grid.row(r.Temp), grid.col(i, n), pointGlyph)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", ChartTitle, YAxisName)
	for i, line := range grid.cells {
		label := ""
		switch i {
		case 0:
			label = fmt.Sprintf("%.1f", grid.yMax)
		case grid.height - 1:
			label = fmt.Sprintf("%.1f", grid.yMin)
		}
		fmt.Fprintf(&b, "%7s │%s\n", label, string(line))
	}
	fmt.Fprintf(&b, "%7s └%s\n", "", strings.Repeat("─", width))

	first := report.Readings[0].Time.Format(time.TimeOnly)
	last := report.Readings[n-1].Time.Format(time.TimeOnly)
	gap := max(width-len(first)-len(last), 1)
	fmt.Fprintf(&b, "%7s  %s%s%s\n", "", first, strings.Repeat(" ", gap), last)
	fmt.Fprintf(&b, "%7s  %s\n", "", XAxisName)
	if report.Trend == nil {
		fmt.Fprintf(&b, "%7s  %c %s\n", "", pointGlyph, readingsSeries)
	} else {
		fmt.Fprintf(&b, "%7s  %c %s  %c %s\n", "", pointGlyph, readingsSeries, trendGlyph, trendSeries)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
