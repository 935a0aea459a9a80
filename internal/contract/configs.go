package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fermata-energy/fermata/schema"
)

// Default values for configuration.
const (
	DefaultBuildingDir  = "buildings"
	DefaultResultsDir   = "results"
	DefaultPrecision    = 3
	MaxPrecision        = 6
	DefaultTestFraction = 0.2
	DefaultSplitSeed    = 42
)

// DefaultWorkers is the number of buildings processed at once unless configured otherwise.
const DefaultWorkers = 1

// MaxWorkers caps the bounded pool used by the batch driver.
var MaxWorkers = 4 * runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for a batch.
// This struct is the "final, validated" config.
type Config struct {
	BuildingDir  string
	ResultsDir   string
	MetadataPath string

	Columns       schema.ColumnNames
	KeepTimestamp bool
	TableFormat   schema.OutputMode

	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	MetricsFile string
	Width       int // Terminal width override (0 = auto-detect)

	Cluster      string
	TestFraction float64
	SplitSeed    uint64

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ProfileConfig holds pprof settings for a single command run.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) {
	if prefix := strings.TrimSpace(profilePrefix); prefix != "" {
		profile.Enabled = true
		profile.Prefix = prefix
	}
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	BuildingDir  string `mapstructure:"building-dir"`
	ResultsDir   string `mapstructure:"results-dir"`
	Metadata     string `mapstructure:"metadata"`
	Workers      int    `mapstructure:"workers"`
	Precision    int    `mapstructure:"precision"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Width        int    `mapstructure:"width"`
	RunBackend   string `mapstructure:"run-backend"`
	RunDBConnect string `mapstructure:"run-db-connect"`
	Emoji        string `mapstructure:"emoji"`
	Color        string `mapstructure:"color"`

	// --- Fields from mergeCmd.Flags() ---
	TableFormat   string `mapstructure:"table-format"`
	KeepTimestamp bool   `mapstructure:"keep-timestamp"`
	MetricsFile   string `mapstructure:"metrics-file"`

	// --- Column names, usually from the config file ---
	LoadTimestampColumn    string `mapstructure:"load-timestamp-column"`
	LoadColumn             string `mapstructure:"load-column"`
	WeatherTimestampColumn string `mapstructure:"weather-timestamp-column"`
	TemperatureColumn      string `mapstructure:"temperature-column"`
	HumidityColumn         string `mapstructure:"humidity-column"`

	// --- Fields from statsCmd.Flags() ---
	Cluster string `mapstructure:"cluster"`

	// --- Fields from splitCmd.Flags() ---
	TestFraction float64 `mapstructure:"test-fraction"`
	Seed         uint64  `mapstructure:"seed"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// BuildingPath returns the directory holding the inputs of one building.
func (c *Config) BuildingPath(buildingID string) string {
	return filepath.Join(c.BuildingDir, buildingID)
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processColumns(cfg, input); err != nil {
		return err
	}
	if err := processSplit(cfg, input); err != nil {
		return err
	}
	return processPaths(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for the host:port address")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ValidateBuildingDir checks that the building directory exists and is a directory.
// Only commands that read building inputs call it.
func ValidateBuildingDir(cfg *Config) error {
	info, err := os.Stat(cfg.BuildingDir)
	if err != nil {
		return fmt.Errorf("building directory %q: %w", cfg.BuildingDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("building directory %q is not a directory", cfg.BuildingDir)
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.MetricsFile = input.MetricsFile
	cfg.KeepTimestamp = input.KeepTimestamp
	cfg.Width = input.Width
	cfg.Cluster = strings.TrimSpace(input.Cluster)

	emojis, err := ParseBoolString(orDefault(input.Emoji, "no"))
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(orDefault(input.Color, "yes"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Workers Validation ---
	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(orDefault(input.Output, string(schema.TextOut))))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output parquet requires --output-file")
	}

	cfg.TableFormat = schema.OutputMode(strings.ToLower(orDefault(input.TableFormat, string(schema.CSVOut))))
	if _, ok := schema.ValidTableFormats[cfg.TableFormat]; !ok {
		return fmt.Errorf("invalid table format '%s'. must be csv, parquet", input.TableFormat)
	}

	// --- 3. Backend Validation ---
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(orDefault(input.RunBackend, string(schema.SQLiteBackend))))
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	return ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect)
}

// processColumns resolves input column names, keeping the defaults for unset ones.
func processColumns(cfg *Config, input *ConfigRawInput) error {
	defaults := schema.DefaultColumnNames()
	cfg.Columns = schema.ColumnNames{
		LoadTimestamp:    orDefault(input.LoadTimestampColumn, defaults.LoadTimestamp),
		LoadValue:        orDefault(input.LoadColumn, defaults.LoadValue),
		WeatherTimestamp: orDefault(input.WeatherTimestampColumn, defaults.WeatherTimestamp),
		Temperature:      orDefault(input.TemperatureColumn, defaults.Temperature),
		Humidity:         orDefault(input.HumidityColumn, defaults.Humidity),
	}

	seen := make(map[string]string)
	for role, name := range map[string]string{
		"load": cfg.Columns.LoadValue, "temperature": cfg.Columns.Temperature, "humidity": cfg.Columns.Humidity,
	} {
		if other, ok := seen[name]; ok {
			return fmt.Errorf("%s and %s columns must differ (both %q)", other, role, name)
		}
		seen[name] = role
	}
	return nil
}

// processSplit handles the train/test split parameters.
func processSplit(cfg *Config, input *ConfigRawInput) error {
	cfg.TestFraction = input.TestFraction
	if cfg.TestFraction == 0 {
		cfg.TestFraction = DefaultTestFraction
	}
	if cfg.TestFraction <= 0 || cfg.TestFraction >= 1 {
		return fmt.Errorf("test-fraction must be between 0 and 1 exclusive (received %.3f)", input.TestFraction)
	}
	cfg.SplitSeed = input.Seed
	return nil
}

// processPaths cleans the directory and file paths.
func processPaths(cfg *Config, input *ConfigRawInput) error {
	cfg.BuildingDir = filepath.Clean(orDefault(strings.TrimSpace(input.BuildingDir), DefaultBuildingDir))
	cfg.ResultsDir = filepath.Clean(orDefault(strings.TrimSpace(input.ResultsDir), DefaultResultsDir))
	if metadata := strings.TrimSpace(input.Metadata); metadata != "" {
		cfg.MetadataPath = filepath.Clean(metadata)
	}

	if cfg.BuildingDir == cfg.ResultsDir {
		return fmt.Errorf("results directory must differ from building directory (both %q)", cfg.BuildingDir)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
