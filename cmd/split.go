package cmd

import (
	"github.com/fermata-energy/fermata/core"
	"github.com/spf13/cobra"
)

// splitCmd produces a stratified train/test split of the metadata buildings.
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split buildings into train and test sets by building type group.",
	Long: `Shuffle the buildings of each building type group with --seed and place
--test-fraction of them in the test set. Groups with a single building stay
in the train set. The same seed always yields the same split.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Split", core.ExecuteSplit),
}
