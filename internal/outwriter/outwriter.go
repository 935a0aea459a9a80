// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteFeatureTable persists one building's feature table in the configured table format.
func (ow *OutWriter) WriteFeatureTable(table *schema.FeatureTable, path string, cfg *contract.Config) error {
	return WriteFeatureTable(table, path, cfg)
}

// WriteMergeSummary prints the outcome of a merge run using the configured output format.
func (ow *OutWriter) WriteMergeSummary(summary schema.BatchSummary, cfg *contract.Config, duration time.Duration) error {
	return WriteMergeSummary(summary, cfg, duration)
}

// WriteMetadataStats prints cluster statistics using the configured output format.
func (ow *OutWriter) WriteMetadataStats(stats schema.MetadataStats, cfg *contract.Config) error {
	return WriteMetadataStats(stats, cfg)
}

// WriteCleanResult prints what a metadata clean kept.
func (ow *OutWriter) WriteCleanResult(result schema.CleanResult, cfg *contract.Config) error {
	return WriteCleanResult(result, cfg)
}

// WriteSplit prints a train/test split of building files.
func (ow *OutWriter) WriteSplit(result schema.SplitResult, cfg *contract.Config) error {
	return WriteSplit(result, cfg)
}

// WriteSpectrum prints the load spectrum of a building.
func (ow *OutWriter) WriteSpectrum(result schema.SpectrumResult, cfg *contract.Config) error {
	return WriteSpectrum(result, cfg)
}
