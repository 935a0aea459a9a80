package cmd

import (
	"github.com/fermata-energy/fermata/core"
	"github.com/spf13/cobra"
)

// mergeCmd merges load and weather series for each building.
var mergeCmd = &cobra.Command{
	Use:   "merge [bldg_id...]",
	Short: "Build feature tables from building load and weather files.",
	Long: `For every building, read its load and weather files, align them on the
15-minute grid, add calendar, holiday and heat-index features, aggregate to
hourly rows, and write one feature table to the results directory.

Without arguments every sub-directory of --building-dir is processed.
Buildings with missing inputs are reported as skipped, not failed.`,
	PreRunE: trackedSetupWrapper,
	Run:     runExecutor("Merge", core.ExecuteMerge),
}
