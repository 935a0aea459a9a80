package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/internal/parquet"
	"github.com/fermata-energy/fermata/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMergeSummary outputs the per-building results of a run, dispatching based on the
// output format configured.
func WriteMergeSummary(summary schema.BatchSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryJSON(w, summary)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, summary.Results)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.ConvertBuildingResults(summary.RunID, summary.Results)
		if err := parquet.WriteBuildingResultsParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(w, summary, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryJSON writes the summary along with its per-status counts.
func writeSummaryJSON(w io.Writer, summary schema.BatchSummary) error {
	type jsonSummary struct {
		schema.BatchSummary
		Counts    map[schema.BuildingStatus]int `json:"counts"`
		TotalRows int                           `json:"total_rows"`
	}
	return writeJSON(w, jsonSummary{
		BatchSummary: summary,
		Counts:       summary.Counts(),
		TotalRows:    summary.TotalRows(),
	})
}

// writeSummaryCSV writes one line per building.
func writeSummaryCSV(w io.Writer, results []schema.BuildingResult) error {
	header := []string{
		"bldg_id",
		"status",
		"error_kind",
		"reason",
		"load_rows",
		"weather_rows",
		"resampled_rows",
		"merged_rows",
		"dropped_rows",
		"output_path",
		"duration_ms",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range results {
			rec := []string{
				r.BuildingID,
				string(r.Status),
				string(r.Kind),
				r.Reason,
				strconv.Itoa(r.LoadRows),
				strconv.Itoa(r.WeatherRows),
				strconv.Itoa(r.ResampledRows),
				strconv.Itoa(r.MergedRows),
				strconv.Itoa(r.DroppedRows),
				r.OutputPath,
				strconv.FormatInt(r.Duration.Milliseconds(), 10),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeSummaryTable generates and writes the human-readable table.
func writeSummaryTable(writer io.Writer, summary schema.BatchSummary, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Building", "Status", "Load", "Weather", "Merged", "Dropped", "Time", "Output"})

	// 2. Configure alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for _, r := range summary.Results {
		detail := r.OutputPath
		if !r.OK() {
			detail = r.Reason
		}
		data = append(data, []string{
			r.BuildingID,
			contract.GetColorStatus(r.Status),
			strconv.Itoa(r.LoadRows),
			strconv.Itoa(r.WeatherRows),
			strconv.Itoa(r.MergedRows),
			strconv.Itoa(r.DroppedRows),
			r.Duration.Round(time.Millisecond).String(),
			contract.TruncatePath(detail, maxWidth),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	counts := summary.Counts()
	if _, err := fmt.Fprintf(writer, "Merged %d of %d buildings (%d rows): %d empty, %d skipped, %d failed\n",
		counts[schema.OKStatus], len(summary.Results), summary.TotalRows(),
		counts[schema.EmptyStatus], counts[schema.SkippedStatus], counts[schema.FailedStatus]); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Run completed in %v with %d workers. Run backend: %s\n", duration, cfg.Workers, cfg.RunBackend); err != nil {
		return err
	}
	return nil
}
