package iostore

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/fermata-energy/fermata/internal/parquet"
	"github.com/fermata-energy/fermata/schema"
	pq "github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runStart = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func newMemoryStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func okResult(id string, rows int) schema.BuildingResult {
	return schema.BuildingResult{
		BuildingID:     id,
		Status:         schema.OKStatus,
		LoadRows:       rows,
		WeatherRows:    rows / 4,
		MergedRows:     rows,
		OutputPath:     "/results/" + id + ".csv",
		Duration:       250 * time.Millisecond,
		ProcessingTime: runStart.Add(time.Second),
	}
}

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(runStart, map[string]any{"workers": 4})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, store.EndRun(1, runStart, 10))
	assert.NoError(t, store.RecordBuilding(1, okResult("100", 96)))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	assert.NoError(t, store.Close())
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	assert.ErrorContains(t, err, "unsupported backend")
}

func TestRunStore_SQLiteLifecycle(t *testing.T) {
	store := newMemoryStore(t)

	runID, err := store.BeginRun(runStart, map[string]any{"workers": 2, "table_format": "csv"})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	require.NoError(t, store.RecordBuilding(runID, okResult("100", 96)))
	require.NoError(t, store.RecordBuilding(runID, schema.BuildingResult{
		BuildingID:     "200",
		Status:         schema.SkippedStatus,
		Kind:           schema.MissingSourceKind,
		Reason:         "weather.csv not found",
		ProcessingTime: runStart.Add(2 * time.Second),
	}))
	require.NoError(t, store.EndRun(runID, runStart.Add(90*time.Second), 2))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.True(t, runStart.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, runStart.Add(90*time.Second).Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(90000), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.TotalBuildings)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"workers": 2, "table_format": "csv"}`, *run.ConfigParams)

	buildings, err := store.GetAllBuildingResults()
	require.NoError(t, err)
	require.Len(t, buildings, 2)

	ok := buildings[0]
	assert.Equal(t, "100", ok.BuildingID)
	assert.Equal(t, "ok", ok.Status)
	assert.Nil(t, ok.ErrorKind)
	assert.Nil(t, ok.Reason)
	require.NotNil(t, ok.OutputPath)
	assert.Equal(t, "/results/100.csv", *ok.OutputPath)
	assert.Equal(t, int32(96), ok.LoadRows)
	assert.Equal(t, int32(24), ok.WeatherRows)
	assert.Equal(t, int32(250), ok.DurationMs)
	assert.True(t, runStart.Add(time.Second).Equal(ok.ProcessingTime))

	skipped := buildings[1]
	assert.Equal(t, "200", skipped.BuildingID)
	assert.Equal(t, "skipped", skipped.Status)
	require.NotNil(t, skipped.ErrorKind)
	assert.Equal(t, string(schema.MissingSourceKind), *skipped.ErrorKind)
	require.NotNil(t, skipped.Reason)
	assert.Equal(t, "weather.csv not found", *skipped.Reason)
	assert.Nil(t, skipped.OutputPath)
}

func TestRunStore_DuplicateBuildingRejected(t *testing.T) {
	store := newMemoryStore(t)
	runID, err := store.BeginRun(runStart, nil)
	require.NoError(t, err)

	require.NoError(t, store.RecordBuilding(runID, okResult("100", 4)))
	assert.Error(t, store.RecordBuilding(runID, okResult("100", 4)))
}

func TestRunStore_EndUnknownRun(t *testing.T) {
	store := newMemoryStore(t)
	err := store.EndRun(42, runStart, 0)
	assert.ErrorContains(t, err, "failed to get start_time for run 42")
}

func TestRunStore_GetStatus(t *testing.T) {
	store := newMemoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Empty(t, status.BuildingsByStatus)
	assert.Equal(t, map[string]int64{runsTable: 0, buildingResultsTable: 0}, status.TableSizes)

	first, err := store.BeginRun(runStart, nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordBuilding(first, okResult("100", 8)))
	require.NoError(t, store.EndRun(first, runStart.Add(time.Minute), 1))

	second, err := store.BeginRun(runStart.Add(time.Hour), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordBuilding(second, okResult("100", 8)))
	require.NoError(t, store.RecordBuilding(second, schema.BuildingResult{
		BuildingID: "300", Status: schema.FailedStatus, Kind: schema.MissingColumnKind,
		Reason: "no temp column", ProcessingTime: runStart,
	}))
	require.NoError(t, store.EndRun(second, runStart.Add(2*time.Hour), 2))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, second, status.LastRunID)
	assert.True(t, runStart.Add(time.Hour).Equal(status.LastRunTime))
	assert.True(t, runStart.Equal(status.OldestRunTime))
	assert.Equal(t, 3, status.TotalBuildings)
	assert.Equal(t, map[string]int64{"ok": 2, "failed": 1}, status.BuildingsByStatus)
	assert.Equal(t, map[string]int64{runsTable: 2, buildingResultsTable: 3}, status.TableSizes)
}

func TestRunStore_ReopenFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.BeginRun(runStart, nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	runs, err := reopened.GetAllRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		want    string
	}{
		{"sqlite", schema.SQLiteBackend, "UPDATE t SET a = ?, b = ? WHERE c = ?"},
		{"mysql", schema.MySQLBackend, "UPDATE t SET a = ?, b = ? WHERE c = ?"},
		{"postgresql", schema.PostgreSQLBackend, "UPDATE t SET a = $1, b = $2 WHERE c = $3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rebind("UPDATE t SET a = ?, b = ? WHERE c = ?", tt.backend))
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`fermata_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"fermata_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"fermata_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
}

func TestDBTimeScan(t *testing.T) {
	want := time.Date(2024, 7, 1, 12, 30, 15, 0, time.UTC)
	tests := []struct {
		name    string
		src     any
		wantErr bool
	}{
		{"time value", want, false},
		{"rfc3339 text", "2024-07-01T12:30:15Z", false},
		{"mysql bytes", []byte("2024-07-01 12:30:15.000000"), false},
		{"mysql text", "2024-07-01 12:30:15", false},
		{"garbage", "yesterday", true},
		{"integer", int64(5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got dbTime
			err := got.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, want.Equal(got.Time), "got %v", got.Time)
		})
	}

	var null nullDBTime
	require.NoError(t, null.Scan(nil))
	assert.False(t, null.Valid)
}

func TestExportRuns(t *testing.T) {
	store := newMemoryStore(t)
	runID, err := store.BeginRun(runStart, map[string]any{"workers": 1})
	require.NoError(t, err)
	require.NoError(t, store.RecordBuilding(runID, okResult("100", 96)))
	require.NoError(t, store.RecordBuilding(runID, okResult("101", 48)))
	require.NoError(t, store.EndRun(runID, runStart.Add(time.Second), 2))

	prefix := filepath.Join(t.TempDir(), "export")
	var out bytes.Buffer
	require.NoError(t, ExportRuns(store, prefix, &out))

	assert.Contains(t, out.String(), "Exported 1 runs to: "+prefix+".runs.parquet")
	assert.Contains(t, out.String(), "Exported 2 building records to: "+prefix+".building_results.parquet")

	runs, err := pq.ReadFile[parquet.Run](prefix + ".runs.parquet")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)

	buildings, err := pq.ReadFile[parquet.BuildingResult](prefix + ".building_results.parquet")
	require.NoError(t, err)
	require.Len(t, buildings, 2)
	assert.Equal(t, "101", buildings[1].BuildingID)
}

func TestExportRuns_Errors(t *testing.T) {
	store := newMemoryStore(t)

	assert.ErrorContains(t, ExportRuns(store, "", &bytes.Buffer{}), "--output-file is required")
	assert.ErrorIs(t, ExportRuns(nil, "out", &bytes.Buffer{}), ErrNoRunStore)
	assert.ErrorContains(t, ExportRuns(store, "out", &bytes.Buffer{}), "no run data found")
}

func TestPrintRunStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintRunStatus(&buf, schema.RunStatus{Backend: "none"})
	assert.Equal(t, "Run Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintRunStatus(&buf, schema.RunStatus{
		Backend:           "sqlite",
		Connected:         true,
		TotalRuns:         2,
		LastRunID:         7,
		LastRunTime:       runStart.Add(time.Hour),
		OldestRunTime:     runStart,
		TotalBuildings:    5,
		BuildingsByStatus: map[string]int64{"ok": 4, "failed": 1},
		TableSizes:        map[string]int64{runsTable: 2, buildingResultsTable: 5},
	})
	want := "Run Backend: sqlite\n" +
		"Connected: true\n" +
		"Total Runs: 2\n" +
		"Last Run ID: 7\n" +
		"Last Run: 2024-07-01 13:00:00\n" +
		"Oldest Run: 2024-07-01 12:00:00\n" +
		"Total Buildings: 5\n" +
		"Buildings By Status:\n" +
		"  ok: 4\n" +
		"  failed: 1\n" +
		"Table Sizes:\n" +
		"  fermata_building_results: 5 rows\n" +
		"  fermata_runs: 2 rows\n"
	assert.Equal(t, want, buf.String())
}
