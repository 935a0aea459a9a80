// Package schema has models and constants shared by all parts of fermata.
package schema

import "time"

// LoadRecord is one reporting interval of a building's electricity load.
type LoadRecord struct {
	Timestamp         time.Time
	EnergyConsumption float64
}

// WeatherRecord is one weather observation. Missing measurements are NaN.
type WeatherRecord struct {
	Timestamp           time.Time
	DryBulbTempC        float64
	RelativeHumidityPct float64
}

// ResampledWeather is a weather observation on the 15-minute grid with its heat index.
type ResampledWeather struct {
	WeatherRecord
	HeatIndexF float64
}

// MergedRecord is one row of a building's feature table.
// Day and Year are kept for hourly grouping and are not written out.
type MergedRecord struct {
	Timestamp           time.Time `json:"timestamp"`
	EnergyConsumption   float64   `json:"energy_consumption"`
	DryBulbTempC        float64   `json:"dry_bulb_temp_c"`
	RelativeHumidityPct float64   `json:"relative_humidity_pct"`
	HeatIndexF          float64   `json:"heat_index_f"`
	Hour                int       `json:"hour"`
	Day                 int       `json:"-"`
	Month               int       `json:"month"`
	Year                int       `json:"-"`
	IsWeekday           bool      `json:"is_weekday"`
	IsHoliday           bool      `json:"is_holiday"`
	MaxLoadHourly       float64   `json:"max_load_hourly"`
	MaxTempHourly       float64   `json:"max_temp_hourly"`
	MinTempHourly       float64   `json:"min_temp_hourly"`
	BuildingID          string    `json:"bldg_id"`
}

// ColumnNames holds the source column names used to read and label a feature table.
type ColumnNames struct {
	LoadTimestamp    string `json:"load_timestamp"`
	LoadValue        string `json:"load_value"`
	WeatherTimestamp string `json:"weather_timestamp"`
	Temperature      string `json:"temperature"`
	Humidity         string `json:"humidity"`
}

// DefaultColumnNames returns the ComStock column names.
func DefaultColumnNames() ColumnNames {
	return ColumnNames{
		LoadTimestamp:    DefaultLoadTimestampColumn,
		LoadValue:        DefaultLoadValueColumn,
		WeatherTimestamp: DefaultWeatherTimestampColumn,
		Temperature:      DefaultTemperatureColumn,
		Humidity:         DefaultHumidityColumn,
	}
}

// FeatureTable is the merged feature table of one building.
type FeatureTable struct {
	BuildingID string         `json:"bldg_id"`
	Columns    ColumnNames    `json:"columns"`
	Records    []MergedRecord `json:"records"`
}

// Len returns the number of rows in the table.
func (t *FeatureTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
