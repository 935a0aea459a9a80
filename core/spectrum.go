package core

import (
	"fmt"
	"path/filepath"

	"github.com/fermata-energy/fermata/core/feature"
	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/internal/tsio"
	"github.com/fermata-energy/fermata/schema"
)

// BuildingSpectrum computes the load spectrum of one building after aligning its load to the
// 15-minute grid. Gaps and blank readings are interpolated.
func BuildingSpectrum(cfg *contract.Config, buildingID string) (schema.SpectrumResult, error) {
	result := schema.SpectrumResult{
		BuildingID:      buildingID,
		SampleIntervalS: feature.ResampleInterval.Seconds(),
	}

	path := filepath.Join(cfg.BuildingPath(buildingID), schema.LoadFileName)
	load, err := tsio.ReadLoad(path, cfg.Columns)
	if err != nil {
		return result, fmt.Errorf("building %s load: %w", buildingID, err)
	}

	values := feature.ResampleLoad(load, feature.ResampleInterval)
	result.Samples = len(values)

	points, err := feature.LoadSpectrum(values, feature.ResampleInterval)
	if err != nil {
		return result, fmt.Errorf("building %s spectrum: %w", buildingID, err)
	}
	result.Points = points
	return result, nil
}
