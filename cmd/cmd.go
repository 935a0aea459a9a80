// Package cmd defines the command-line interface for fermata.
package cmd

import (
	"github.com/fermata-energy/fermata/core"
	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(spectrumCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the metadata subcommands to the parent metadata command
	metadataCmd.AddCommand(metadataCleanCmd)
	metadataCmd.AddCommand(metadataStatsCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("building-dir", contract.DefaultBuildingDir, "Directory holding one sub-directory per building")
	rootCmd.PersistentFlags().String("results-dir", contract.DefaultResultsDir, "Directory feature tables are written to")
	rootCmd.PersistentFlags().String("metadata", "", "Path to the building metadata CSV")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of buildings processed concurrently")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("run-backend", string(schema.SQLiteBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for run tracking (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of mergeCmd to Viper
	mergeCmd.Flags().String("table-format", string(schema.CSVOut), "Feature table format: csv or parquet")
	mergeCmd.Flags().Bool("keep-timestamp", false, "Keep the timestamp column in feature tables")
	mergeCmd.Flags().String("metrics-file", "", "Write Prometheus batch metrics to this file")
	if err := viper.BindPFlags(mergeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding merge flags", err)
	}

	// Bind all flags of metadataStatsCmd to Viper
	metadataStatsCmd.Flags().String("cluster", "", "Cluster name to filter on (empty = all rows)")
	if err := viper.BindPFlags(metadataStatsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding metadata stats flags", err)
	}

	// Bind all flags of splitCmd to Viper
	splitCmd.Flags().Float64("test-fraction", contract.DefaultTestFraction, "Share of each building type group placed in the test set")
	splitCmd.Flags().Uint64("seed", contract.DefaultSplitSeed, "Shuffle seed")
	if err := viper.BindPFlags(splitCmd.Flags()); err != nil {
		contract.LogFatal("Error binding split flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}

// runExecutor adapts a core executor to a cobra Run function.
func runExecutor(name string, fn core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, args []string) {
		if err := fn(rootCtx, cfg, storeManager, args); err != nil {
			contract.LogFatal(name+" failed", err)
		}
	}
}
