// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/huangsam/tempdash/internal/contract"
	"golang.org/x/term"
)

// Plot width bounds for the terminal chart.
const (
	minPlotWidth = 20
	maxPlotWidth = 120
	plotGutter   = 10 // Y-axis labels and border
)

// GetTerminalWidth returns the configured width override, or the detected
// width of stdout, or 80 when neither is available.
func GetTerminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80
	}
	return detectedWidth
}

// GetPlotWidth calculates the number of plot columns available to the
// terminal chart after reserving space for the axis gutter.
func GetPlotWidth(cfg *contract.Config) int {
	available := GetTerminalWidth(cfg) - plotGutter
	if available < minPlotWidth {
		return minPlotWidth
	}
	if available > maxPlotWidth {
		return maxPlotWidth
	}
	return available
}
