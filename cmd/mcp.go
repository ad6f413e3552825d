package cmd

import (
	"github.com/huangsam/tempdash/core"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the tempdash MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents read the live window, its trend and statistics via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr since stdio carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteMCP(rootCtx, cfg, journalManager)
	},
}
