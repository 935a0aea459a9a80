package outwriter

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// spectrumTableLimit is how many of the strongest bins the spectrum table shows.
const spectrumTableLimit = 20

// WriteMetadataStats outputs cluster statistics, dispatching based on the output format configured.
func WriteMetadataStats(stats schema.MetadataStats, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, stats)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsCSV(w, stats)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTable(w, stats)
		}, "Wrote table")
	}
}

// writeStatsCSV writes one line per (column, value) pair.
func writeStatsCSV(w io.Writer, stats schema.MetadataStats) error {
	return writeCSVWithHeader(w, []string{"cluster", "column", "value", "count"}, func(csvWriter *csv.Writer) error {
		for _, group := range statsGroups(stats) {
			for _, vc := range group.counts {
				if err := csvWriter.Write([]string{stats.Cluster, group.column, vc.Value, strconv.Itoa(vc.Count)}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeStatsTable generates and writes the human-readable table.
func writeStatsTable(writer io.Writer, stats schema.MetadataStats) error {
	if _, err := fmt.Fprintf(writer, "Cluster %q: %d buildings, %d columns\n", stats.Cluster, stats.Buildings, stats.Columns); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Column", "Value", "Count"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, group := range statsGroups(stats) {
		for _, vc := range group.counts {
			data = append(data, []string{group.column, vc.Value, strconv.Itoa(vc.Count)})
		}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

type statsGroup struct {
	column string
	counts []schema.ValueCount
}

func statsGroups(stats schema.MetadataStats) []statsGroup {
	return []statsGroup{
		{column: schema.BuildingTypeColumn, counts: stats.BuildingTypes},
		{column: schema.HeatingFuelColumn, counts: stats.HeatingFuels},
	}
}

// WriteCleanResult reports a metadata clean. Text output is a one-line message.
func WriteCleanResult(result schema.CleanResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"input_rows", "kept_rows", "output_path"}, func(csvWriter *csv.Writer) error {
				return csvWriter.Write([]string{strconv.Itoa(result.InputRows), strconv.Itoa(result.KeptRows), result.OutputPath})
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Kept %d of %d metadata rows in %s\n", result.KeptRows, result.InputRows, result.OutputPath)
			return err
		}, "Wrote summary")
	}
}

// WriteSplit outputs a train/test split. Text and JSON output are both the JSON document the
// training code reads; CSV lists one file per line.
func WriteSplit(result schema.SplitResult, cfg *contract.Config) error {
	if cfg.Output == schema.CSVOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSplitCSV(w, result)
		}, "Wrote CSV")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

func writeSplitCSV(w io.Writer, result schema.SplitResult) error {
	return writeCSVWithHeader(w, []string{"split", "file"}, func(csvWriter *csv.Writer) error {
		for _, name := range result.TrainBuildingIDs {
			if err := csvWriter.Write([]string{"train", name}); err != nil {
				return err
			}
		}
		for _, name := range result.TestBuildingIDs {
			if err := csvWriter.Write([]string{"test", name}); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSpectrum outputs a load spectrum. The table only shows the strongest periodic
// components; CSV and JSON carry every bin.
func WriteSpectrum(result schema.SpectrumResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSpectrumCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSpectrumTable(w, result, fmtFloat)
		}, "Wrote table")
	}
}

func writeSpectrumCSV(w io.Writer, result schema.SpectrumResult, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"frequency_hz", "magnitude", "phase"}, func(csvWriter *csv.Writer) error {
		for _, p := range result.Points {
			// Frequencies are tiny at a 15-minute cadence, so they keep full precision.
			freq := strconv.FormatFloat(p.FrequencyHz, 'g', -1, 64)
			if err := csvWriter.Write([]string{freq, fmtFloat(p.Magnitude), fmtFloat(p.Phase)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// strongestBins returns up to limit non-DC bins ordered by magnitude, strongest first.
func strongestBins(points []schema.SpectrumPoint, limit int) []schema.SpectrumPoint {
	var bins []schema.SpectrumPoint
	for _, p := range points {
		if p.FrequencyHz > 0 {
			bins = append(bins, p)
		}
	}
	slices.SortStableFunc(bins, func(a, b schema.SpectrumPoint) int {
		return cmp.Compare(b.Magnitude, a.Magnitude)
	})
	if len(bins) > limit {
		bins = bins[:limit]
	}
	return bins
}

func writeSpectrumTable(writer io.Writer, result schema.SpectrumResult, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Period (h)", "Frequency (Hz)", "Magnitude", "Phase"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, p := range strongestBins(result.Points, spectrumTableLimit) {
		period := 1 / p.FrequencyHz / 3600
		data = append(data, []string{
			strconv.Itoa(i + 1),
			fmtFloat(period),
			strconv.FormatFloat(p.FrequencyHz, 'e', 3, 64),
			fmtFloat(p.Magnitude),
			fmtFloat(p.Phase),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	dc := math.NaN()
	if len(result.Points) > 0 {
		dc = result.Points[0].Magnitude
	}
	_, err := fmt.Fprintf(writer, "Building %s: %d samples every %gs, DC magnitude %s\n",
		result.BuildingID, result.Samples, result.SampleIntervalS, fmtFloat(dc))
	return err
}
