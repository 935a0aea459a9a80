package iostore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/internal/parquet"
)

// ErrNoRunStore is returned when run tracking is needed but was never initialized.
var ErrNoRunStore = errors.New("run tracking is not initialized")

// ExecuteRunsExport exports the global run store to Parquet files prefixed by outputFile.
func ExecuteRunsExport(outputFile string) error {
	return ExportRuns(Manager.GetRunStore(), outputFile, os.Stdout)
}

// ExportRuns writes the runs and building results of store to
// <outputFile>.runs.parquet and <outputFile>.building_results.parquet.
func ExportRuns(store contract.RunStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return ErrNoRunStore
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total building records: %d\n", status.TableSizes[buildingResultsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	buildings, err := store.GetAllBuildingResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve building results: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	buildingsFile := outputFile + ".building_results.parquet"
	if err := parquet.WriteBuildingResultsParquet(parquet.ConvertBuildingRunRecords(buildings), buildingsFile); err != nil {
		return fmt.Errorf("failed to write building results: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d building records to: %s\n", len(buildings), buildingsFile)

	return nil
}
