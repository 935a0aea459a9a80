package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string

	// BuildingStatus represents the outcome of processing a single building.
	BuildingStatus string

	// ErrorKind classifies why a building did not produce a feature table.
	ErrorKind string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All building statuses supported.
const (
	OKStatus      BuildingStatus = "ok"
	SkippedStatus BuildingStatus = "skipped"
	FailedStatus  BuildingStatus = "failed"
	EmptyStatus   BuildingStatus = "empty"
)

// Error kinds recorded for non-ok buildings.
const (
	NoErrorKind            ErrorKind = ""
	MissingSourceKind      ErrorKind = "missing_source"
	MissingColumnKind      ErrorKind = "missing_column"
	MalformedTimestampKind ErrorKind = "malformed_timestamp"
	EmptyMergeKind         ErrorKind = "empty_merge"
	OutputKind             ErrorKind = "output"
	UnknownKind            ErrorKind = "unknown"
)

// Source file names inside a building directory.
const (
	LoadFileName    = "load.csv"
	WeatherFileName = "weather.csv"
)

// Default column names of the ComStock style inputs.
const (
	DefaultLoadTimestampColumn    = "timestamp"
	DefaultLoadValueColumn        = "out.electricity.total.energy_consumption"
	DefaultWeatherTimestampColumn = "date_time"
	DefaultTemperatureColumn      = "Dry Bulb Temperature [°C]"
	DefaultHumidityColumn         = "Relative Humidity [%]"
)

// Metadata column names.
const (
	BuildingIDColumn        = "bldg_id"
	ClusterNameColumn       = "in.cluster_name"
	BuildingTypeColumn      = "in.comstock_building_type"
	BuildingTypeGroupColumn = "in.comstock_building_type_group"
	HeatingFuelColumn       = "in.heating_fuel"
)

// Derived column names written to the feature table.
const (
	IndexColumn         = "Index"
	OutTimestampColumn  = "timestamp"
	HeatIndexColumn     = "heat_index"
	HourColumn          = "hour"
	MonthColumn         = "month"
	IsWeekdayColumn     = "is_weekday"
	IsHolidayColumn     = "is_holiday"
	MaxLoadHourlyColumn = "max_load_hourly"
	MaxTempHourlyColumn = "max_temp_hourly"
	MinTempHourlyColumn = "min_temp_hourly"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidTableFormats lists the formats a per-building feature table can be written in.
var ValidTableFormats = map[OutputMode]struct{}{
	CSVOut:     {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AllBuildingStatuses returns the statuses in display order.
var AllBuildingStatuses = []BuildingStatus{OKStatus, EmptyStatus, SkippedStatus, FailedStatus}
