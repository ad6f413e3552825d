package cmd

import (
	"github.com/huangsam/tempdash/core"
	"github.com/spf13/cobra"
)

// serveCmd runs the web dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live dashboard over HTTP",
	Long: `Run the scheduler and serve the dashboard as a web page.

Routes:
  /              Dashboard page, refreshed every interval
  /api/snapshot  Latest window with trend and statistics as JSON
  /chart.svg     Chart of the window (also /chart.png)
  /metrics       Prometheus metrics
  /healthz       Health check

Examples:
  # Serve on the default address
  tempdash serve

  # Serve on another port with a faster tick
  tempdash serve --addr :9090 --interval 1s`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteServe(rootCtx, cfg, journalManager)
	},
}
