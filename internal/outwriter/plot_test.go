package outwriter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/huangsam/tempdash/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePlot(t *testing.T) {
	report := sampleReport(8)
	var buf bytes.Buffer
	require.NoError(t, WritePlot(&buf, report, 40))

	out := buf.String()
	assert.Equal(t, 8, strings.Count(out, string(pointGlyph))-1, "One glyph per reading plus the legend")
	assert.Contains(t, out, string(trendGlyph))
	assert.Contains(t, out, "10:30:00")
	assert.Contains(t, out, "10:30:21")
	assert.Contains(t, out, trendSeries)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title + axis name + grid rows + border + times + axis name + legend
	assert.Len(t, lines, plotHeight+6)
	assert.Equal(t, ChartTitle, lines[0])
}

func TestWritePlot_SingleReading(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlot(&buf, sampleReport(1), 30))

	out := buf.String()
	assert.NotContains(t, out, trendSeries)
	assert.Equal(t, 2, strings.Count(out, string(pointGlyph)))
}

func TestWritePlot_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WritePlot(&buf, sampleReport(0), 30), ErrNoReadings)
}

func TestPlotGrid_Bounds(t *testing.T) {
	g := newPlotGrid(20, plotHeight, 50, 60)
	assert.Equal(t, 0, g.row(60))
	assert.Equal(t, plotHeight-1, g.row(50))
	assert.Equal(t, 0, g.row(75), "Values above the range clamp to the top")
	assert.Equal(t, plotHeight-1, g.row(10), "Values below the range clamp to the bottom")
	assert.Equal(t, 0, g.col(0, 5))
	assert.Equal(t, 19, g.col(4, 5))
	assert.Equal(t, 0, g.col(0, 1))

	flat := newPlotGrid(20, plotHeight, 55, 55)
	assert.Less(t, flat.yMin, flat.yMax)
}

func TestGetPlotWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{"wide terminal", 300, maxPlotWidth},
		{"typical terminal", 80, 70},
		{"narrow terminal", 15, minPlotWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.width, GetTerminalWidth(cfg))
			assert.Equal(t, tt.expected, GetPlotWidth(cfg))
		})
	}
}
