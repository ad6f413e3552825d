package cmd

import (
	"github.com/huangsam/tempdash/core"
	"github.com/spf13/cobra"
)

// watchCmd redraws the dashboard in the terminal on every tick.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the live dashboard in the terminal",
	Long: `Redraw the terminal dashboard on every tick.

Each tick generates one reading, appends it to the history window and redraws:
- The latest value and its timestamp
- Min, max and mean of the window
- The readings table
- A scatter chart of the window with its trend line

Examples:
  # Tick every second
  tempdash watch --interval 1s

  # Keep 20 readings and stop after a minute
  tempdash watch --capacity 20 --ticks 60 --interval 1s

  # Save the final chart when done
  tempdash watch --ticks 10 --chart-file trend.svg`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteWatch(rootCtx, cfg, journalManager)
	},
}
