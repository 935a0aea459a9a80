package cmd

import (
	"fmt"
	"os"

	"github.com/fermata-energy/fermata/internal/contract"
	"github.com/fermata-energy/fermata/internal/iostore"
	"github.com/fermata-energy/fermata/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsBackend reads and validates the run tracking backend settings.
func runsBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(viper.GetString("run-backend"))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("run-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// runsSetup is a minimal setup for runs commands that only opens the run store.
func runsSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := runsBackend()
	if err != nil {
		return err
	}
	return iostore.InitStores(backend, connStr)
}

// runsCmd is the parent command for run tracking operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage the history of merge runs.",
	Long:  `Every merge records its configuration and per-building outcome in the run tracking store.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// runsStatusCmd prints a summary of the run tracking store.
var runsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show run counts, building outcomes and table sizes.",
	PreRunE: runsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := iostore.Manager.GetRunStore()
		if store == nil {
			contract.LogFatal("Failed to get run status", iostore.ErrNoRunStore)
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run status", err)
		}
		iostore.PrintRunStatus(os.Stdout, status)
	},
}

// runsClearCmd deletes all run tracking data.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs.",
	Run: func(_ *cobra.Command, _ []string) {
		backend, connStr, err := runsBackend()
		if err != nil {
			contract.LogFatal("Failed to load run settings", err)
		}
		dbFilePath := contract.GetRunDBFilePath()
		if backend == schema.SQLiteBackend && connStr != "" {
			dbFilePath = connStr
		}
		if err := iostore.ClearRuns(backend, dbFilePath, connStr); err != nil {
			contract.LogFatal("Failed to clear runs", err)
		}
		fmt.Println("Run history cleared.")
	},
}

// runsExportCmd writes the run tracking tables to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export runs and building results to Parquet.",
	Long: `Write <output-file>.runs.parquet and <output-file>.building_results.parquet
from the run tracking store. Requires --output-file.`,
	PreRunE: runsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteRunsExport(viper.GetString("output-file")); err != nil {
			contract.LogFatal("Failed to export runs", err)
		}
	},
}

// runsMigrateCmd moves the run tracking schema to a given version.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back run tracking schema migrations.",
	Run: func(_ *cobra.Command, _ []string) {
		backend, connStr, err := runsBackend()
		if err != nil {
			contract.LogFatal("Failed to load run settings", err)
		}
		if err := iostore.MigrateRuns(backend, connStr, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate runs", err)
		}
	},
}
