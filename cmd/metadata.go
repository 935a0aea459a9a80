package cmd

import (
	"github.com/fermata-energy/fermata/core"
	"github.com/spf13/cobra"
)

// metadataCmd is the parent command for building metadata operations.
var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Inspect and clean the building metadata table.",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// metadataCleanCmd keeps only the metadata rows whose building has inputs on disk.
var metadataCleanCmd = &cobra.Command{
	Use:   "clean [output]",
	Short: "Drop metadata rows for buildings that are missing from --building-dir.",
	Long: `Read --metadata and write the rows whose bldg_id has a directory under
--building-dir. The result goes to [output], or next to the input with a
_clean suffix.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Metadata clean", core.ExecuteMetadataClean),
}

// metadataStatsCmd summarizes one cluster of the metadata table.
var metadataStatsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Count buildings, building types and heating fuels for a cluster.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Metadata stats", core.ExecuteMetadataStats),
}
