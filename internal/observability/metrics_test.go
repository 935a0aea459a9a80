package observability

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fermata-energy/fermata/schema"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBuilding(t *testing.T) {
	m := NewMetrics()

	m.ObserveBuilding(schema.BuildingResult{Status: schema.OKStatus, MergedRows: 96, DroppedRows: 4, Duration: 200 * time.Millisecond})
	m.ObserveBuilding(schema.BuildingResult{Status: schema.OKStatus, MergedRows: 4})
	m.ObserveBuilding(schema.BuildingResult{Status: schema.SkippedStatus})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BuildingsProcessed.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BuildingsProcessed.WithLabelValues("skipped")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BuildingsProcessed.WithLabelValues("failed")))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.RowsMerged))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.RowsDropped))
	assert.Equal(t, 1, testutil.CollectAndCount(m.BuildingDuration))
}

func TestObserveRunAndNilSafety(t *testing.T) {
	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		nilMetrics.ObserveBuilding(schema.BuildingResult{Status: schema.OKStatus})
		nilMetrics.ObserveRun(time.Now(), time.Now())
	})

	m := NewMetrics()
	start := time.Date(2024, 4, 26, 15, 0, 0, 0, time.UTC)
	m.ObserveRun(start, start.Add(90*time.Second))
	assert.Equal(t, 90.0, testutil.ToFloat64(m.RunDuration))
	assert.Equal(t, float64(start.Add(90*time.Second).Unix()), testutil.ToFloat64(m.LastRunTimestamp))
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.ObserveBuilding(schema.BuildingResult{Status: schema.FailedStatus})

	path := filepath.Join(t.TempDir(), "fermata.prom")
	require.NoError(t, m.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `fermata_buildings_processed_total{status="failed"} 1`)
	assert.Contains(t, string(content), "fermata_rows_merged_total 0")

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	assert.Len(t, families, 6)
}
