package contract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fermata-energy/fermata/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status schema.BuildingStatus
		kind   schema.ErrorKind
	}{
		{"nil", nil, schema.OKStatus, schema.NoErrorKind},
		{"missing source", fmt.Errorf("open weather.csv: %w", ErrMissingSource), schema.SkippedStatus, schema.MissingSourceKind},
		{"missing column", fmt.Errorf("load.csv: %w", ErrMissingColumn), schema.FailedStatus, schema.MissingColumnKind},
		{"malformed timestamp", fmt.Errorf("row 3: %w", ErrMalformedTimestamp), schema.EmptyStatus, schema.MalformedTimestampKind},
		{"empty merge", ErrEmptyMerge, schema.EmptyStatus, schema.EmptyMergeKind},
		{"output", fmt.Errorf("write: %w", ErrOutput), schema.FailedStatus, schema.OutputKind},
		{"unknown", errors.New("boom"), schema.FailedStatus, schema.UnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, kind := Classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestGetColorStatus(t *testing.T) {
	for _, status := range schema.AllBuildingStatuses {
		t.Run(string(status), func(t *testing.T) {
			assert.Contains(t, GetColorStatus(status), string(status))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetRunDBFilePath(t *testing.T) {
	path := GetRunDBFilePath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".fermata_runs.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.csv", TruncatePath("short.csv", 20))
	assert.Equal(t, "...100.csv", TruncatePath("results/100.csv", 10))
	assert.Equal(t, "results/100.csv", TruncatePath("results/100.csv", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("perhaps")
	assert.Error(t, err)
}
