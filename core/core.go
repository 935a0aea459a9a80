// Package core has the batch logic for merging building load and weather data into
// feature tables, plus the metadata and spectrum tools around it.
package core

import (
	"context"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/internal/observability"
	"github.com/fermata-energy/fermata/internal/outwriter"
	"github.com/fermata-energy/fermata/schema"
	"github.com/jonboulle/clockwork"
)

// ExecutorFunc defines the function signature for executing the batch commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, args []string) error

// ExecuteMerge merges the selected buildings and prints the run summary.
// It serves as the main entry point for the 'merge' command.
func ExecuteMerge(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, args []string) error {
	return executeMerge(ctx, cfg, mgr, args, clockwork.NewRealClock())
}

// executeMerge runs the batch on clock and reports the run time measured by that clock.
func executeMerge(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, args []string, clock clockwork.Clock) error {
	summary, err := getMergeResults(ctx, cfg, mgr, args, clock)
	if err != nil && len(summary.Results) == 0 {
		return err
	}
	if printErr := outwriter.NewOutWriter().WriteMergeSummary(summary, cfg, summary.Duration()); printErr != nil {
		return printErr
	}
	return err
}

// GetMergeResults merges the selected buildings and returns the summary without printing it.
func GetMergeResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, args []string) (schema.BatchSummary, error) {
	return getMergeResults(ctx, cfg, mgr, args, clockwork.NewRealClock())
}

func getMergeResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, args []string, clock clockwork.Clock) (schema.BatchSummary, error) {
	if err := contract.ValidateBuildingDir(cfg); err != nil {
		return schema.BatchSummary{}, err
	}
	ids, err := ResolveBuildingIDs(cfg, args)
	if err != nil {
		return schema.BatchSummary{}, err
	}
	batch := NewBatch(cfg, mgr, outwriter.NewOutWriter(), observability.NewMetrics(), clock)
	return batch.Run(ctx, ids)
}

// ExecuteMetadataClean writes the metadata rows of buildings that have data.
// The first arg, if any, is the output path.
func ExecuteMetadataClean(_ context.Context, cfg *contract.Config, _ contract.StoreManager, args []string) error {
	outPath := DefaultCleanPath(cfg.MetadataPath)
	if len(args) > 0 {
		outPath = args[0]
	}
	result, err := CleanMetadata(cfg, outPath)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCleanResult(result, cfg)
}

// ExecuteMetadataStats prints cluster statistics of the metadata file.
func ExecuteMetadataStats(_ context.Context, cfg *contract.Config, _ contract.StoreManager, _ []string) error {
	stats, err := MetadataStatsFor(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteMetadataStats(stats, cfg)
}

// ExecuteSplit prints a stratified train/test split of the metadata buildings.
func ExecuteSplit(_ context.Context, cfg *contract.Config, _ contract.StoreManager, _ []string) error {
	result, err := SplitBuildings(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSplit(result, cfg)
}

// ExecuteSpectrum prints the load spectrum of the building named by the first arg.
func ExecuteSpectrum(_ context.Context, cfg *contract.Config, _ contract.StoreManager, args []string) error {
	if len(args) == 0 {
		return ErrNoBuildings
	}
	result, err := BuildingSpectrum(cfg, args[0])
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSpectrum(result, cfg)
}
