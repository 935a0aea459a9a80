// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the fermata MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Fermata Feature Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: merge_building ---
	s.AddTool(mcp.NewTool("merge_building",
		mcp.WithDescription("Merge the load and weather series of one building into a feature table and report the outcome."),
		mcp.WithString("bldg_id", mcp.Description("Building identifier, the name of its directory under the building directory."), mcp.Required()),
		mcp.WithString("building_dir", mcp.Description("Directory holding one sub-directory per building.")),
		mcp.WithString("results_dir", mcp.Description("Directory the feature table is written to.")),
		mcp.WithString("table_format", mcp.Description("Feature table format. Defaults to 'csv'."), mcp.Enum("csv", "parquet")),
		mcp.WithBoolean("keep_timestamp", mcp.Description("Keep the timestamp column in the feature table.")),
	), h.handleMergeBuilding)

	// --- 2. Tool: metadata_stats ---
	s.AddTool(mcp.NewTool("metadata_stats",
		mcp.WithDescription("Count the buildings of a cluster along with their building types and heating fuels."),
		mcp.WithString("metadata_path", mcp.Description("Path to the building metadata CSV.")),
		mcp.WithString("cluster", mcp.Description("Cluster name to filter on. All rows are counted when empty.")),
	), h.handleMetadataStats)

	// --- 3. Tool: split_buildings ---
	s.AddTool(mcp.NewTool("split_buildings",
		mcp.WithDescription("Split the metadata buildings into train and test sets stratified by building type group."),
		mcp.WithString("metadata_path", mcp.Description("Path to the building metadata CSV.")),
		mcp.WithNumber("test_fraction", mcp.Description("Share of each group placed in the test set, between 0 and 1.")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed.")),
	), h.handleSplitBuildings)

	return s
}

// StartMCPServer starts the fermata MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager, version string) error {
	s := NewMCPServer(baseCfg, mgr, version)
	return server.ServeStdio(s)
}
