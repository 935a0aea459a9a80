//go:build basic

// Package integration contains end-to-end tests for the fermata binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeWithSQLiteTracking(t *testing.T) {
	w := newWorkspace(t)

	out := w.mustRun(t, "merge", "--output", "json")
	var summary struct {
		RunID     int64 `json:"run_id"`
		TotalRows int   `json:"total_rows"`
		Results   []struct {
			BuildingID string `json:"bldg_id"`
			Status     string `json:"status"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Positive(t, summary.RunID)
	require.Len(t, summary.Results, 2)
	assert.Equal(t, "ok", summary.Results[0].Status)
	assert.Equal(t, "skipped", summary.Results[1].Status)
	assert.FileExists(t, filepath.Join(w.root, "results", "100.csv"))

	status := w.mustRun(t, "runs", "status")
	assert.Contains(t, status, "Total Runs: 1")
	assert.Contains(t, status, "ok: 1")
	assert.Contains(t, status, "skipped: 1")

	w.mustRun(t, "runs", "export", "--output-file", "history")
	assert.FileExists(t, filepath.Join(w.root, "history.runs.parquet"))
	assert.FileExists(t, filepath.Join(w.root, "history.building_results.parquet"))

	w.mustRun(t, "runs", "clear")
	assert.NoFileExists(t, filepath.Join(w.root, ".fermata_runs.db"))
}

func TestMergeParquetTables(t *testing.T) {
	w := newWorkspace(t, "FERMATA_RUN_BACKEND=none")
	w.mustRun(t, "merge", "100", "--table-format", "parquet", "--keep-timestamp")
	assert.FileExists(t, filepath.Join(w.root, "results", "100.parquet"))
	assert.NoFileExists(t, filepath.Join(w.root, ".fermata_runs.db"))
}

func TestMetadataCommands(t *testing.T) {
	w := newWorkspace(t)

	w.mustRun(t, "metadata", "clean", "--metadata", "meta.csv")
	content, err := os.ReadFile(filepath.Join(w.root, "meta_clean.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 3, "header plus buildings 100 and 200")

	out := w.mustRun(t, "metadata", "stats", "--metadata", "meta.csv", "--cluster", "Tucson", "--output", "json")
	assert.Contains(t, out, `"buildings": 1`)
}

func TestSplitIsDeterministic(t *testing.T) {
	w := newWorkspace(t)
	first := w.mustRun(t, "split", "--metadata", "meta.csv", "--seed", "7", "--output", "json")
	second := w.mustRun(t, "split", "--metadata", "meta.csv", "--seed", "7", "--output", "json")
	assert.JSONEq(t, first, second)
}

func TestInvalidConfiguration(t *testing.T) {
	w := newWorkspace(t)
	tests := []struct {
		name string
		args []string
	}{
		{"same dirs", []string{"merge", "--results-dir", "buildings"}},
		{"bad workers", []string{"merge", "--workers", "0"}},
		{"bad table format", []string{"merge", "--table-format", "xlsx"}},
		{"bad fraction", []string{"split", "--metadata", "meta.csv", "--test-fraction", "1.5"}},
		{"spectrum without id", []string{"spectrum"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
