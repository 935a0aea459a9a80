package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{name: "precision 3", precision: 3, value: 66.84912, expected: "66.849"},
		{name: "precision 0", precision: 0, value: 20.5, expected: "20"},
		{name: "negative value", precision: 2, value: -4.567, expected: "-4.57"},
		{name: "nan is blank", precision: 3, value: math.NaN(), expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, intFmt := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.value))
			assert.Equal(t, "%d", intFmt)
		})
	}
}

func TestFmtBool(t *testing.T) {
	assert.Equal(t, "1", fmtBool(true))
	assert.Equal(t, "0", fmtBool(false))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]any{"bldg_id": "100", "rows": 96}))
	assert.Equal(t, "{\n  \"bldg_id\": \"100\",\n  \"rows\": 96\n}\n", buf.String())

	err := writeJSON(&buf, math.NaN())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		expected string
	}{
		{
			name:     "rows",
			header:   []string{"bldg_id", "status"},
			rows:     [][]string{{"100", "ok"}, {"200", "skipped"}},
			expected: "bldg_id,status\n100,ok\n200,skipped\n",
		},
		{
			name:     "header only",
			header:   []string{"split", "file"},
			expected: "split,file\n",
		},
		{
			name:     "quoted column names",
			header:   []string{"Dry Bulb Temperature [°C]", "note"},
			rows:     [][]string{{"20.5", "a, b"}},
			expected: "Dry Bulb Temperature [°C],note\n20.5,\"a, b\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeCSVWithHeader(&buf, tt.header, func(w *csv.Writer) error {
				for _, row := range tt.rows {
					if err := w.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}

	t.Run("row error propagates", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeCSVWithHeader(&buf, []string{"col"}, func(*csv.Writer) error {
			return assert.AnError
		})
		assert.Equal(t, assert.AnError, err)
	})
}

func TestWriteWithFile(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		called := false
		err := writeWithFile("", func(io.Writer) error {
			called = true
			return nil
		}, "Wrote nothing")
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		require.NoError(t, writeWithFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "merged")
			return err
		}, "Wrote text"))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "merged", string(content))
	})

	t.Run("writer error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		err := writeWithFile(path, func(io.Writer) error { return assert.AnError }, "Wrote text")
		assert.Equal(t, assert.AnError, err)
	})

	t.Run("invalid path", func(t *testing.T) {
		err := writeWithFile("/nonexistent/path/out.txt", func(io.Writer) error { return nil }, "Wrote text")
		require.Error(t, err)
	})
}
