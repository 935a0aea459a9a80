// Package tsio reads building time series and metadata CSV files into typed records.
package tsio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/schema"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// timestampLayouts are tried in order when parsing a timestamp cell.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006 15:04",
}

// ParseTimestamp parses a naive wall-clock timestamp as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", s, contract.ErrMalformedTimestamp)
}

// ReadFrame reads a CSV file into a string-typed dataframe.
// A file that does not exist yields contract.ErrMissingSource.
func ReadFrame(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dataframe.DataFrame{}, fmt.Errorf("%s: %w", path, contract.ErrMissingSource)
		}
		return dataframe.DataFrame{}, err
	}
	defer func() { _ = f.Close() }()

	return ReadFrameFrom(f, path)
}

// ReadFrameFrom reads CSV content from r. The name is only used in error messages.
// A file holding only a header row yields a frame with those columns and no rows.
func ReadFrameFrom(r io.Reader, name string) (dataframe.DataFrame, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(content),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String))
	if df.Err != nil {
		if header, ok := headerOnly(content); ok {
			return emptyFrame(header), nil
		}
		return df, fmt.Errorf("failed to read %s: %w", name, df.Err)
	}
	return df, nil
}

// headerOnly reports whether content is a CSV with a header row and nothing else.
func headerOnly(content []byte) ([]string, bool) {
	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

// emptyFrame builds a zero-row string frame with the given columns.
func emptyFrame(columns []string) dataframe.DataFrame {
	cols := make([]series.Series, len(columns))
	for i, c := range columns {
		cols[i] = series.New([]string{}, series.String, c)
	}
	return dataframe.New(cols...)
}

// WriteFrame writes a dataframe to a CSV file, replacing any existing file.
func WriteFrame(path string, df dataframe.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// RequireColumns fails with contract.ErrMissingColumn when any of the columns is absent.
func RequireColumns(df dataframe.DataFrame, name string, columns ...string) error {
	names := df.Names()
	var missing []string
	for _, c := range columns {
		if !slices.Contains(names, c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s lacks %s: %w", name, strings.Join(missing, ", "), contract.ErrMissingColumn)
	}
	return nil
}

// resolveColumn returns the first of the candidates present in df, or the first candidate.
func resolveColumn(df dataframe.DataFrame, candidates ...string) string {
	names := df.Names()
	for _, c := range candidates {
		if slices.Contains(names, c) {
			return c
		}
	}
	return candidates[0]
}

// parseTimestamps parses every cell of a timestamp column.
func parseTimestamps(df dataframe.DataFrame, column, name string) ([]time.Time, error) {
	cells := df.Col(column).Records()
	out := make([]time.Time, len(cells))
	for i, cell := range cells {
		t, err := ParseTimestamp(cell)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, i+1, err)
		}
		out[i] = t
	}
	return out, nil
}

// ReadLoad reads a building's load series.
func ReadLoad(path string, cols schema.ColumnNames) ([]schema.LoadRecord, error) {
	df, err := ReadFrame(path)
	if err != nil {
		return nil, err
	}
	return LoadFromFrame(df, path, cols)
}

// LoadFromFrame converts a load dataframe into records.
func LoadFromFrame(df dataframe.DataFrame, name string, cols schema.ColumnNames) ([]schema.LoadRecord, error) {
	if err := RequireColumns(df, name, cols.LoadTimestamp, cols.LoadValue); err != nil {
		return nil, err
	}

	times, err := parseTimestamps(df, cols.LoadTimestamp, name)
	if err != nil {
		return nil, err
	}
	values := df.Col(cols.LoadValue).Float()

	records := make([]schema.LoadRecord, len(times))
	for i := range times {
		records[i] = schema.LoadRecord{Timestamp: times[i], EnergyConsumption: values[i]}
	}
	return records, nil
}

// ReadWeather reads a building's weather observations. The configured timestamp column falls
// back to the load timestamp column name when absent.
func ReadWeather(path string, cols schema.ColumnNames) ([]schema.WeatherRecord, error) {
	df, err := ReadFrame(path)
	if err != nil {
		return nil, err
	}
	return WeatherFromFrame(df, path, cols)
}

// WeatherFromFrame converts a weather dataframe into records.
func WeatherFromFrame(df dataframe.DataFrame, name string, cols schema.ColumnNames) ([]schema.WeatherRecord, error) {
	tsCol := resolveColumn(df, cols.WeatherTimestamp, cols.LoadTimestamp, schema.DefaultLoadTimestampColumn)
	if err := RequireColumns(df, name, tsCol, cols.Temperature, cols.Humidity); err != nil {
		return nil, err
	}

	times, err := parseTimestamps(df, tsCol, name)
	if err != nil {
		return nil, err
	}
	temps := df.Col(cols.Temperature).Float()
	humidity := df.Col(cols.Humidity).Float()

	records := make([]schema.WeatherRecord, len(times))
	for i := range times {
		records[i] = schema.WeatherRecord{
			Timestamp:           times[i],
			DryBulbTempC:        temps[i],
			RelativeHumidityPct: humidity[i],
		}
	}
	return records, nil
}

// ReadMetadata reads a building metadata CSV and checks it is keyed by building ID.
func ReadMetadata(path string) (dataframe.DataFrame, error) {
	df, err := ReadFrame(path)
	if err != nil {
		return df, err
	}
	if err := RequireColumns(df, path, schema.BuildingIDColumn); err != nil {
		return df, err
	}
	return df, nil
}

// BuildingIDs returns the building identifiers of a metadata frame in row order, without
// duplicates or blanks.
func BuildingIDs(df dataframe.DataFrame) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, id := range df.Col(schema.BuildingIDColumn).Records() {
		id = strings.TrimSpace(id)
		if id == "" || id == "NaN" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// ListBuildingDirs returns the names of the sub-directories of dir, sorted.
func ListBuildingDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			ids = append(ids, e.Name())
		}
	}
	slices.Sort(ids)
	return ids, nil
}
