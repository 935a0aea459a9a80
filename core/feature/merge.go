package feature

import (
	"math"

	"github.com/fermata-energy/fermata/schema"
)

// JoinOnTimestamp inner-joins load rows with resampled weather rows on exact timestamp
// equality. Output follows load order; load rows without a weather match are dropped.
func JoinOnTimestamp(load []schema.LoadRecord, weather []schema.ResampledWeather) []schema.MergedRecord {
	byTime := make(map[int64]schema.ResampledWeather, len(weather))
	for _, w := range weather {
		byTime[w.Timestamp.UnixNano()] = w
	}

	merged := make([]schema.MergedRecord, 0, len(load))
	for _, l := range load {
		w, ok := byTime[l.Timestamp.UnixNano()]
		if !ok {
			continue
		}
		merged = append(merged, schema.MergedRecord{
			Timestamp:           l.Timestamp,
			EnergyConsumption:   l.EnergyConsumption,
			DryBulbTempC:        w.DryBulbTempC,
			RelativeHumidityPct: w.RelativeHumidityPct,
			HeatIndexF:          w.HeatIndexF,
		})
	}
	return merged
}

type hourKey struct {
	year, month, day, hour int
}

type extremes struct {
	maxLoad, maxTemp, minTemp float64
}

// HourlyExtremes computes the maximum load and the maximum and minimum temperature of every
// (hour, day, month, year) group and writes them back onto each row of the group.
// NaN values are ignored; a group with no valid value gets NaN.
func HourlyExtremes(records []schema.MergedRecord) {
	groups := make(map[hourKey]*extremes)
	for _, r := range records {
		k := hourKey{r.Year, r.Month, r.Day, r.Hour}
		e, ok := groups[k]
		if !ok {
			e = &extremes{maxLoad: math.NaN(), maxTemp: math.NaN(), minTemp: math.NaN()}
			groups[k] = e
		}
		e.maxLoad = nanMax(e.maxLoad, r.EnergyConsumption)
		e.maxTemp = nanMax(e.maxTemp, r.DryBulbTempC)
		e.minTemp = nanMin(e.minTemp, r.DryBulbTempC)
	}

	for i := range records {
		r := &records[i]
		e := groups[hourKey{r.Year, r.Month, r.Day, r.Hour}]
		r.MaxLoadHourly = e.maxLoad
		r.MaxTempHourly = e.maxTemp
		r.MinTempHourly = e.minTemp
	}
}

func nanMax(acc, v float64) float64 {
	switch {
	case math.IsNaN(v):
		return acc
	case math.IsNaN(acc):
		return v
	default:
		return math.Max(acc, v)
	}
}

func nanMin(acc, v float64) float64 {
	switch {
	case math.IsNaN(v):
		return acc
	case math.IsNaN(acc):
		return v
	default:
		return math.Min(acc, v)
	}
}

// TagBuilding sets the building identifier on every record.
func TagBuilding(records []schema.MergedRecord, buildingID string) {
	for i := range records {
		records[i].BuildingID = buildingID
	}
}
