package iostore

import (
	"fmt"
	"io"
	"slices"

	"github.com/fermata-energy/fermata/schema"
)

const statusTimeLayout = "2006-01-02 15:04:05"

// PrintRunStatus prints run store status information.
func PrintRunStatus(w io.Writer, status schema.RunStatus) {
	_, _ = fmt.Fprintf(w, "Run Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format(statusTimeLayout))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Format(statusTimeLayout))
		_, _ = fmt.Fprintf(w, "Total Buildings: %d\n", status.TotalBuildings)
	}
	if len(status.BuildingsByStatus) > 0 {
		_, _ = fmt.Fprintln(w, "Buildings By Status:")
		for _, st := range schema.AllBuildingStatuses {
			if n, ok := status.BuildingsByStatus[string(st)]; ok {
				_, _ = fmt.Fprintf(w, "  %s: %d\n", st, n)
			}
		}
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
