package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fermata-energy/fermata/core"
	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// withMetadata applies the metadata_path argument to cfg.
func withMetadata(cfg *contract.Config, request mcp.CallToolRequest) error {
	if p := request.GetString("metadata_path", ""); p != "" {
		cfg.MetadataPath = filepath.Clean(p)
	}
	if cfg.MetadataPath == "" {
		return fmt.Errorf("metadata_path is required")
	}
	return nil
}

func (h *toolHandler) handleMergeBuilding(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	id := request.GetString("bldg_id", "")
	if id == "" {
		return mcp.NewToolResultError("bldg_id is required"), nil
	}
	if d := request.GetString("building_dir", ""); d != "" {
		cfg.BuildingDir = filepath.Clean(d)
	}
	if d := request.GetString("results_dir", ""); d != "" {
		cfg.ResultsDir = filepath.Clean(d)
	}
	if f := request.GetString("table_format", ""); f != "" {
		format := schema.OutputMode(f)
		if _, ok := schema.ValidTableFormats[format]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid table_format %q. must be csv or parquet", f)), nil
		}
		cfg.TableFormat = format
	}
	cfg.KeepTimestamp = request.GetBool("keep_timestamp", cfg.KeepTimestamp)
	if cfg.BuildingDir == cfg.ResultsDir {
		return mcp.NewToolResultError("results_dir must differ from building_dir"), nil
	}

	summary, err := core.GetMergeResults(core.WithSuppressHeader(ctx), cfg, h.mgr, []string{id})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("merge failed: %v", err)), nil
	}
	return jsonResult(summary)
}

func (h *toolHandler) handleMetadataStats(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := withMetadata(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.Cluster = request.GetString("cluster", cfg.Cluster)

	stats, err := core.MetadataStatsFor(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("metadata stats failed: %v", err)), nil
	}
	return jsonResult(stats)
}

func (h *toolHandler) handleSplitBuildings(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := withMetadata(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.TestFraction = request.GetFloat("test_fraction", cfg.TestFraction)
	if cfg.TestFraction <= 0 || cfg.TestFraction >= 1 {
		return mcp.NewToolResultError(fmt.Sprintf("test_fraction must be between 0 and 1 exclusive (received %.3f)", cfg.TestFraction)), nil
	}
	if seed := request.GetInt("seed", -1); seed >= 0 {
		cfg.SplitSeed = uint64(seed)
	}

	result, err := core.SplitBuildings(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("split failed: %v", err)), nil
	}
	return jsonResult(result)
}
