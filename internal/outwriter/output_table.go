package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/internal/parquet"
	"github.com/fermata-energy/fermata/schema"
)

// timestampLayout is how the optional timestamp column is written.
const timestampLayout = "2006-01-02 15:04:05"

// WriteFeatureTable writes the feature table of one building to path as CSV or Parquet,
// depending on cfg.TableFormat.
func WriteFeatureTable(table *schema.FeatureTable, path string, cfg *contract.Config) error {
	if table == nil {
		return fmt.Errorf("no feature table to write to %s", path)
	}
	switch cfg.TableFormat {
	case schema.ParquetOut:
		return parquet.WriteFeatureTableParquet(table, path, cfg.KeepTimestamp)
	default:
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := writeFeatureCSV(file, table, cfg.Precision, cfg.KeepTimestamp); err != nil {
			_ = file.Close()
			return err
		}
		return file.Close()
	}
}

// featureHeader returns the CSV header of a feature table. Measurement columns reuse the
// names they were read under.
func featureHeader(cols schema.ColumnNames, keepTimestamp bool) []string {
	header := []string{schema.IndexColumn}
	if keepTimestamp {
		header = append(header, schema.OutTimestampColumn)
	}
	return append(header,
		cols.LoadValue,
		cols.Temperature,
		cols.Humidity,
		schema.HeatIndexColumn,
		schema.HourColumn,
		schema.MonthColumn,
		schema.IsWeekdayColumn,
		schema.IsHolidayColumn,
		schema.MaxLoadHourlyColumn,
		schema.MaxTempHourlyColumn,
		schema.MinTempHourlyColumn,
		schema.BuildingIDColumn,
	)
}

// writeFeatureCSV writes the table rows in join order with a zero-based Index column.
func writeFeatureCSV(w io.Writer, table *schema.FeatureTable, precision int, keepTimestamp bool) error {
	fmtFloat, intFmt := createFormatters(precision)
	header := featureHeader(table.Columns, keepTimestamp)

	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		row := make([]string, 0, len(header))
		for i, r := range table.Records {
			row = append(row[:0], strconv.Itoa(i))
			if keepTimestamp {
				row = append(row, r.Timestamp.Format(timestampLayout))
			}
			row = append(row,
				fmtFloat(r.EnergyConsumption),
				fmtFloat(r.DryBulbTempC),
				fmtFloat(r.RelativeHumidityPct),
				fmtFloat(r.HeatIndexF),
				fmt.Sprintf(intFmt, r.Hour),
				fmt.Sprintf(intFmt, r.Month),
				fmtBool(r.IsWeekday),
				fmtBool(r.IsHoliday),
				fmtFloat(r.MaxLoadHourly),
				fmtFloat(r.MaxTempHourly),
				fmtFloat(r.MinTempHourly),
				r.BuildingID,
			)
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// FeatureTableFileName returns the results file name of a building for the given table format.
func FeatureTableFileName(buildingID string, format schema.OutputMode) string {
	if format == schema.ParquetOut {
		return buildingID + ".parquet"
	}
	return buildingID + ".csv"
}
