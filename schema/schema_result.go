package schema

import "time"

// BuildingResult is the typed outcome of merging one building.
type BuildingResult struct {
	BuildingID     string         `json:"bldg_id"`
	Status         BuildingStatus `json:"status"`
	Kind           ErrorKind      `json:"error_kind,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	LoadRows       int            `json:"load_rows"`
	WeatherRows    int            `json:"weather_rows"`
	ResampledRows  int            `json:"resampled_rows"`
	MergedRows     int            `json:"merged_rows"`
	DroppedRows    int            `json:"dropped_rows"`
	OutputPath     string         `json:"output_path,omitempty"`
	Duration       time.Duration  `json:"duration"`
	ProcessingTime time.Time      `json:"processing_time"`
}

// OK reports whether the building produced a feature table.
func (r BuildingResult) OK() bool {
	return r.Status == OKStatus
}

// BatchSummary aggregates the building results of one merge run.
type BatchSummary struct {
	RunID     int64            `json:"run_id"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Results   []BuildingResult `json:"results"`
}

// Counts returns the number of buildings per status.
func (s BatchSummary) Counts() map[BuildingStatus]int {
	counts := make(map[BuildingStatus]int, len(AllBuildingStatuses))
	for _, st := range AllBuildingStatuses {
		counts[st] = 0
	}
	for _, r := range s.Results {
		counts[r.Status]++
	}
	return counts
}

// TotalRows returns the number of feature rows produced across all buildings.
func (s BatchSummary) TotalRows() int {
	total := 0
	for _, r := range s.Results {
		if r.OK() {
			total += r.MergedRows
		}
	}
	return total
}

// Duration returns the wall time of the run.
func (s BatchSummary) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
