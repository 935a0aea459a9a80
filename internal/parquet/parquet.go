// Package parquet provides data structures and functions for exporting fermata
// run history and feature tables to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/fermata-energy/fermata/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single merge run with metadata.
// This struct maps to the fermata_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalBuildings is the number of buildings processed in this run
	TotalBuildings int32 `parquet:"total_buildings,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// BuildingResult represents the outcome of one building in a run.
// This struct maps to the fermata_building_results database table.
type BuildingResult struct {
	RunID          int64     `parquet:"run_id,snappy"`
	BuildingID     string    `parquet:"bldg_id,dict,snappy"`
	ProcessingTime time.Time `parquet:"processing_time,snappy"`
	Status         string    `parquet:"status,dict,snappy"`
	ErrorKind      *string   `parquet:"error_kind,optional,dict,snappy"`
	Reason         *string   `parquet:"reason,optional,snappy"`
	LoadRows       int32     `parquet:"load_rows,snappy"`
	WeatherRows    int32     `parquet:"weather_rows,snappy"`
	MergedRows     int32     `parquet:"merged_rows,snappy"`
	OutputPath     *string   `parquet:"output_path,optional,snappy"`
	DurationMs     int32     `parquet:"duration_ms,snappy"`
}

// FeatureRow is one row of a building feature table. Parquet column names are fixed, unlike
// the CSV table which reuses the source column names.
type FeatureRow struct {
	Index               int64      `parquet:"index,snappy"`
	Timestamp           *time.Time `parquet:"timestamp,optional,snappy"`
	EnergyConsumption   float64    `parquet:"energy_consumption,snappy"`
	DryBulbTempC        float64    `parquet:"dry_bulb_temp_c,snappy"`
	RelativeHumidityPct float64    `parquet:"relative_humidity_pct,snappy"`
	HeatIndexF          float64    `parquet:"heat_index,snappy"`
	Hour                int32      `parquet:"hour,snappy"`
	Month               int32      `parquet:"month,snappy"`
	IsWeekday           bool       `parquet:"is_weekday"`
	IsHoliday           bool       `parquet:"is_holiday"`
	MaxLoadHourly       float64    `parquet:"max_load_hourly,snappy"`
	MaxTempHourly       float64    `parquet:"max_temp_hourly,snappy"`
	MinTempHourly       float64    `parquet:"min_temp_hourly,snappy"`
	BuildingID          string     `parquet:"bldg_id,dict,snappy"`
}

// writeRows writes a slice of rows to a new Parquet file, inferring the schema from T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// WriteRunsParquet writes runs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteBuildingResultsParquet writes building results to a Parquet file.
func WriteBuildingResultsParquet(data []BuildingResult, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteFeatureTableParquet writes a feature table to a Parquet file.
// The timestamp column is only filled when keepTimestamp is set.
func WriteFeatureTableParquet(table *schema.FeatureTable, outputPath string, keepTimestamp bool) error {
	return writeRows(ConvertFeatureTable(table, keepTimestamp), outputPath)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:          record.RunID,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			TotalBuildings: record.TotalBuildings,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertBuildingRunRecords converts schema.BuildingRunRecord to BuildingResult for Parquet export.
func ConvertBuildingRunRecords(records []schema.BuildingRunRecord) []BuildingResult {
	result := make([]BuildingResult, len(records))
	for i, record := range records {
		result[i] = BuildingResult{
			RunID:          record.RunID,
			BuildingID:     record.BuildingID,
			ProcessingTime: record.ProcessingTime,
			Status:         record.Status,
			ErrorKind:      record.ErrorKind,
			Reason:         record.Reason,
			LoadRows:       record.LoadRows,
			WeatherRows:    record.WeatherRows,
			MergedRows:     record.MergedRows,
			OutputPath:     record.OutputPath,
			DurationMs:     record.DurationMs,
		}
	}
	return result
}

// ConvertBuildingResults converts in-memory results of a run for Parquet export.
func ConvertBuildingResults(runID int64, results []schema.BuildingResult) []BuildingResult {
	rows := make([]BuildingResult, len(results))
	for i, r := range results {
		rows[i] = BuildingResult{
			RunID:          runID,
			BuildingID:     r.BuildingID,
			ProcessingTime: r.ProcessingTime,
			Status:         string(r.Status),
			ErrorKind:      optionalString(string(r.Kind)),
			Reason:         optionalString(r.Reason),
			LoadRows:       int32(r.LoadRows),
			WeatherRows:    int32(r.WeatherRows),
			MergedRows:     int32(r.MergedRows),
			OutputPath:     optionalString(r.OutputPath),
			DurationMs:     int32(r.Duration.Milliseconds()),
		}
	}
	return rows
}

// ConvertFeatureTable converts a feature table into Parquet rows.
func ConvertFeatureTable(table *schema.FeatureTable, keepTimestamp bool) []FeatureRow {
	if table == nil {
		return nil
	}
	rows := make([]FeatureRow, len(table.Records))
	for i, r := range table.Records {
		row := FeatureRow{
			Index:               int64(i),
			EnergyConsumption:   r.EnergyConsumption,
			DryBulbTempC:        r.DryBulbTempC,
			RelativeHumidityPct: r.RelativeHumidityPct,
			HeatIndexF:          r.HeatIndexF,
			Hour:                int32(r.Hour),
			Month:               int32(r.Month),
			IsWeekday:           r.IsWeekday,
			IsHoliday:           r.IsHoliday,
			MaxLoadHourly:       r.MaxLoadHourly,
			MaxTempHourly:       r.MaxTempHourly,
			MinTempHourly:       r.MinTempHourly,
			BuildingID:          r.BuildingID,
		}
		if keepTimestamp {
			ts := r.Timestamp
			row.Timestamp = &ts
		}
		rows[i] = row
	}
	return rows
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
