package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBatchSummary(t *testing.T) {
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	summary := BatchSummary{
		StartTime: start,
		EndTime:   start.Add(90 * time.Second),
		Results: []BuildingResult{
			{BuildingID: "1", Status: OKStatus, MergedRows: 96},
			{BuildingID: "2", Status: OKStatus, MergedRows: 4},
			{BuildingID: "3", Status: EmptyStatus, MergedRows: 0},
			{BuildingID: "4", Status: FailedStatus, Kind: MissingColumnKind, MergedRows: 12},
		},
	}

	assert.Equal(t, map[BuildingStatus]int{
		OKStatus:      2,
		EmptyStatus:   1,
		SkippedStatus: 0,
		FailedStatus:  1,
	}, summary.Counts())
	assert.Equal(t, 100, summary.TotalRows(), "only ok buildings contribute rows")
	assert.Equal(t, 90*time.Second, summary.Duration())
}

func TestBuildingResultOK(t *testing.T) {
	tests := []struct {
		status BuildingStatus
		want   bool
	}{
		{OKStatus, true},
		{SkippedStatus, false},
		{FailedStatus, false},
		{EmptyStatus, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, BuildingResult{Status: tt.status}.OK())
		})
	}
}

func TestDefaultColumnNames(t *testing.T) {
	cols := DefaultColumnNames()
	assert.Equal(t, "timestamp", cols.LoadTimestamp)
	assert.Equal(t, "out.electricity.total.energy_consumption", cols.LoadValue)
	assert.Equal(t, "date_time", cols.WeatherTimestamp)
}
