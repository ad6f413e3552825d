package cmd

import (
	"github.com/huangsam/tempdash/core"
	"github.com/spf13/cobra"
)

// snapshotCmd prints a single window without waiting on the timer.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Generate a window of readings and print it once",
	Long: `Run --ticks ticks back to back (default: the window capacity) and print the
resulting window with its trend.

Examples:
  # Print a text dashboard
  tempdash snapshot

  # Reproducible JSON output
  tempdash snapshot --seed 42 --output json

  # CSV readings and a PNG chart
  tempdash snapshot --output csv --output-file readings.csv --chart-file trend.png`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteSnapshot(rootCtx, cfg, journalManager)
	},
}
