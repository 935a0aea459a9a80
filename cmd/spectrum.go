package cmd

import (
	"github.com/fermata-energy/fermata/core"
	"github.com/spf13/cobra"
)

// spectrumCmd reports the dominant periods of one building's load.
var spectrumCmd = &cobra.Command{
	Use:     "spectrum <bldg_id>",
	Short:   "Show the strongest frequencies of a building's load series.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Spectrum", core.ExecuteSpectrum),
}
