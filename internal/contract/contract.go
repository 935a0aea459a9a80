// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/fermata-energy/fermata/schema"
)

// StoreManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetRunStore() RunStore
}

// TableWriter persists the feature table of one building.
type TableWriter interface {
	WriteFeatureTable(table *schema.FeatureTable, path string, cfg *Config) error
}

// RunStore defines the interface for tracking batch runs and their per-building outcomes.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalBuildings int) error

	// RecordBuilding stores the outcome of one building within a run
	RecordBuilding(runID int64, result schema.BuildingResult) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns returns every recorded run ordered by ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllBuildingResults returns every recorded building outcome ordered by run and building
	GetAllBuildingResults() ([]schema.BuildingRunRecord, error)

	// Close closes the underlying connection
	Close() error
}
