package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/internal/observability"
	"github.com/fermata-energy/fermata/internal/outwriter"
	"github.com/fermata-energy/fermata/internal/tsio"
	"github.com/fermata-energy/fermata/schema"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// ErrNoBuildings is returned when there is nothing to merge.
var ErrNoBuildings = errors.New("no buildings found")

// ResolveBuildingIDs picks the buildings of a batch: the given args, else the bldg_id column
// of the metadata file, else every sub-directory of the building directory.
func ResolveBuildingIDs(cfg *contract.Config, args []string) ([]string, error) {
	var ids []string
	switch {
	case len(args) > 0:
		for _, a := range args {
			if a = strings.TrimSpace(a); a != "" && !slices.Contains(ids, a) {
				ids = append(ids, a)
			}
		}
	case cfg.MetadataPath != "":
		df, err := tsio.ReadMetadata(cfg.MetadataPath)
		if err != nil {
			return nil, err
		}
		ids = tsio.BuildingIDs(df)
	default:
		var err error
		ids, err = tsio.ListBuildingDirs(cfg.BuildingDir)
		if err != nil {
			return nil, fmt.Errorf("failed to list building directory: %w", err)
		}
	}
	if len(ids) == 0 {
		return nil, ErrNoBuildings
	}
	return ids, nil
}

// Batch merges many buildings, isolating failures per building.
type Batch struct {
	cfg     *contract.Config
	merger  *Merger
	writer  contract.TableWriter
	store   contract.RunStore
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewBatch creates a batch driver. A nil manager or store disables run tracking and nil
// metrics disables instrumentation.
func NewBatch(cfg *contract.Config, mgr contract.StoreManager, writer contract.TableWriter, metrics *observability.Metrics, clock clockwork.Clock) *Batch {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	var store contract.RunStore
	if mgr != nil {
		store = mgr.GetRunStore()
	}
	return &Batch{
		cfg:     cfg,
		merger:  NewMerger(cfg, nil, clock),
		writer:  writer,
		store:   store,
		metrics: metrics,
		clock:   clock,
	}
}

// Run merges the buildings in ids. Results keep the order of ids. When ctx is cancelled no
// further buildings are started; the summary then only holds those that were, and the
// context error is returned alongside it.
func (b *Batch) Run(ctx context.Context, ids []string) (schema.BatchSummary, error) {
	start := b.clock.Now()
	summary := schema.BatchSummary{StartTime: start}

	if err := os.MkdirAll(b.cfg.ResultsDir, 0o755); err != nil {
		return summary, fmt.Errorf("failed to create results directory: %w", err)
	}

	// --- 0. Begin Run Tracking (if configured) ---
	if b.store != nil {
		runID, err := b.store.BeginRun(start, b.runParams(len(ids)))
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		} else if runID > 0 {
			summary.RunID = runID
			ctx = withRunID(ctx, runID)
		}
	}

	if !shouldSuppressHeader(ctx) && b.cfg.Output == schema.TextOut {
		logBatchHeader(b.cfg, len(ids))
	}

	// --- 1. Merge buildings with a bounded pool ---
	results := make([]schema.BuildingResult, len(ids))
	scheduled := 0
	var g errgroup.Group
	g.SetLimit(max(b.cfg.Workers, 1))
	for i, id := range ids {
		if ctx.Err() != nil {
			break
		}
		scheduled++
		g.Go(func() error {
			results[i] = b.processBuilding(ctx, id)
			return nil
		})
	}
	_ = g.Wait()
	summary.Results = results[:scheduled]

	// --- 2. End Run Tracking ---
	end := b.clock.Now()
	summary.EndTime = end
	if runID, ok := getRunID(ctx); ok {
		if err := b.store.EndRun(runID, end, len(summary.Results)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	b.metrics.ObserveRun(start, end)
	if b.cfg.MetricsFile != "" && b.metrics != nil {
		if err := b.metrics.WriteTextfile(b.cfg.MetricsFile); err != nil {
			contract.LogWarn("Failed to write metrics file", err)
		}
	}

	return summary, ctx.Err()
}

// processBuilding merges one building and writes its table. It never fails.
func (b *Batch) processBuilding(ctx context.Context, buildingID string) schema.BuildingResult {
	table, result := b.merger.MergeBuilding(ctx, buildingID)

	if result.OK() {
		path := filepath.Join(b.cfg.ResultsDir, outwriter.FeatureTableFileName(buildingID, b.cfg.TableFormat))
		if err := b.writer.WriteFeatureTable(table, path, b.cfg); err != nil {
			err = fmt.Errorf("building %s: %w: %w", buildingID, contract.ErrOutput, err)
			result.Status, result.Kind = contract.Classify(err)
			result.Reason = err.Error()
		} else {
			result.OutputPath = path
		}
		result.Duration = b.clock.Since(result.ProcessingTime)
	}

	b.recordBuilding(ctx, result)
	b.metrics.ObserveBuilding(result)
	return result
}

// recordBuilding stores the result in the run store without disrupting the batch.
func (b *Batch) recordBuilding(ctx context.Context, result schema.BuildingResult) {
	runID, ok := getRunID(ctx)
	if !ok {
		return
	}
	if err := b.store.RecordBuilding(runID, result); err != nil {
		contract.LogWarn(fmt.Sprintf("Run tracking failed for building %s", result.BuildingID), err)
	}
}

func (b *Batch) runParams(buildings int) map[string]any {
	return map[string]any{
		"building_dir":   b.cfg.BuildingDir,
		"results_dir":    b.cfg.ResultsDir,
		"buildings":      buildings,
		"workers":        b.cfg.Workers,
		"table_format":   string(b.cfg.TableFormat),
		"keep_timestamp": b.cfg.KeepTimestamp,
		"columns":        b.cfg.Columns,
	}
}

// logBatchHeader prints what the batch is about to do.
func logBatchHeader(cfg *contract.Config, buildings int) {
	prefix := ""
	if cfg.UseEmojis {
		prefix = "🏗️  "
	}
	fmt.Printf("%sMerging %d buildings from %s into %s with %d workers\n",
		prefix, buildings, cfg.BuildingDir, cfg.ResultsDir, cfg.Workers)
}
