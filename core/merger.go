package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fermata-energy/fermata/core/feature"
	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/internal/tsio"
	"github.com/fermata-energy/fermata/schema"
	"github.com/jonboulle/clockwork"
)

// mergeCounts are the row counts observed while merging one building.
type mergeCounts struct {
	load, weather, resampled, merged int
}

// MergeRecords runs the feature pipeline over one building's parsed inputs: resample weather to
// the 15-minute grid, derive the heat index, inner-join with load, then add calendar features
// and hourly extremes. It never fails; an empty result means nothing matched.
func MergeRecords(buildingID string, load []schema.LoadRecord, weather []schema.WeatherRecord, holidays feature.HolidayCalendar) []schema.MergedRecord {
	records, _ := mergeRecords(buildingID, load, weather, holidays)
	return records
}

func mergeRecords(buildingID string, load []schema.LoadRecord, weather []schema.WeatherRecord, holidays feature.HolidayCalendar) ([]schema.MergedRecord, mergeCounts) {
	counts := mergeCounts{load: len(load), weather: len(weather)}

	resampled := feature.WithHeatIndex(feature.ResampleWeather(weather, feature.ResampleInterval))
	counts.resampled = len(resampled)

	records := feature.JoinOnTimestamp(load, resampled)
	counts.merged = len(records)
	if len(records) == 0 {
		return records, counts
	}

	feature.ExtractCalendar(records, holidays)
	feature.HourlyExtremes(records)
	feature.TagBuilding(records, buildingID)
	return records, counts
}

// Merger turns the raw files of a building into its feature table.
type Merger struct {
	cfg      *contract.Config
	holidays feature.HolidayCalendar
	clock    clockwork.Clock
}

// NewMerger creates a merger reading from cfg.BuildingDir.
func NewMerger(cfg *contract.Config, holidays feature.HolidayCalendar, clock clockwork.Clock) *Merger {
	if holidays == nil {
		holidays = feature.NewUSCalendar()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Merger{cfg: cfg, holidays: holidays, clock: clock}
}

// MergeBuilding merges one building. Failures are reported through the result and never
// returned as errors, so callers can keep going with the next building.
// The table is nil unless the result is ok.
func (m *Merger) MergeBuilding(ctx context.Context, buildingID string) (*schema.FeatureTable, schema.BuildingResult) {
	start := m.clock.Now()
	result := schema.BuildingResult{BuildingID: buildingID, ProcessingTime: start}

	table, counts, err := m.merge(ctx, buildingID)
	result.LoadRows = counts.load
	result.WeatherRows = counts.weather
	result.ResampledRows = counts.resampled
	result.MergedRows = counts.merged
	if err == nil || errors.Is(err, contract.ErrEmptyMerge) {
		result.DroppedRows = counts.load - counts.merged
	}

	result.Status, result.Kind = contract.Classify(err)
	if err != nil {
		result.Reason = err.Error()
		table = nil
	}
	result.Duration = m.clock.Since(start)
	return table, result
}

func (m *Merger) merge(ctx context.Context, buildingID string) (*schema.FeatureTable, mergeCounts, error) {
	var counts mergeCounts
	if err := ctx.Err(); err != nil {
		return nil, counts, err
	}

	dir := m.cfg.BuildingPath(buildingID)
	load, err := tsio.ReadLoad(filepath.Join(dir, schema.LoadFileName), m.cfg.Columns)
	if err != nil {
		return nil, counts, fmt.Errorf("building %s load: %w", buildingID, err)
	}
	counts.load = len(load)

	weather, err := tsio.ReadWeather(filepath.Join(dir, schema.WeatherFileName), m.cfg.Columns)
	if err != nil {
		return nil, counts, fmt.Errorf("building %s weather: %w", buildingID, err)
	}

	records, counts := mergeRecords(buildingID, load, weather, m.holidays)
	if len(records) == 0 {
		return nil, counts, fmt.Errorf("building %s: %w", buildingID, contract.ErrEmptyMerge)
	}

	return &schema.FeatureTable{
		BuildingID: buildingID,
		Columns:    m.cfg.Columns,
		Records:    records,
	}, counts, nil
}
