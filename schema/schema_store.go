package schema

import "time"

// RunRecord represents a row from the fermata_runs table.
type RunRecord struct {
	RunID          int64
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	TotalBuildings int32
	ConfigParams   *string
}

// BuildingRunRecord represents a row from the fermata_building_results table.
type BuildingRunRecord struct {
	RunID          int64
	BuildingID     string
	ProcessingTime time.Time
	Status         string
	ErrorKind      *string
	Reason         *string
	LoadRows       int32
	WeatherRows    int32
	MergedRows     int32
	OutputPath     *string
	DurationMs     int32
}
