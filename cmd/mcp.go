package cmd

import (
	"github.com/fermata-energy/fermata/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the fermata MCP server",
	Long:  `Launch an MCP server that allows AI agents to merge buildings and query metadata via standard tools.`,
	// The server speaks over stdio, so tool handlers suppress the batch header.
	PreRunE: trackedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager, version)
	},
}
