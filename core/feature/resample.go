// Package feature has the pure time series transforms behind the load/weather merge.
package feature

import (
	"math"
	"sort"
	"time"

	"github.com/fermata-energy/fermata/schema"
)

// ResampleInterval is the cadence weather observations are upsampled to.
const ResampleInterval = 15 * time.Minute

// series is a sorted run of valid (non-NaN) observations for one measurement.
type series struct {
	times  []time.Time
	values []float64
}

// ResampleWeather upsamples weather observations onto a grid of the given step using linear
// interpolation in time. The grid runs from the first step boundary at or after the earliest
// observation to the last step boundary at or before the latest one, so no point is
// extrapolated. Each measurement is interpolated independently between its own valid
// observations; a grid point outside that range is NaN. Duplicate timestamps keep the last row.
func ResampleWeather(obs []schema.WeatherRecord, step time.Duration) []schema.WeatherRecord {
	if len(obs) == 0 || step <= 0 {
		return nil
	}

	sorted := sortAndDedupe(obs)
	first := sorted[0].Timestamp
	last := sorted[len(sorted)-1].Timestamp

	start := ceilTime(first, step)
	end := last.Truncate(step)
	if start.After(end) {
		return nil
	}

	temps := collectSeries(sorted, func(r schema.WeatherRecord) float64 { return r.DryBulbTempC })
	humidity := collectSeries(sorted, func(r schema.WeatherRecord) float64 { return r.RelativeHumidityPct })

	n := int(end.Sub(start)/step) + 1
	out := make([]schema.WeatherRecord, 0, n)
	for t := start; !t.After(end); t = t.Add(step) {
		out = append(out, schema.WeatherRecord{
			Timestamp:           t,
			DryBulbTempC:        temps.at(t),
			RelativeHumidityPct: humidity.at(t),
		})
	}
	return out
}

// ResampleLoad interpolates load readings onto a grid of the given step between the first and
// last finite readings. Blank or non-finite readings are filled from their neighbours, so the
// result has no gaps. Duplicate timestamps keep the last finite reading.
func ResampleLoad(load []schema.LoadRecord, step time.Duration) []float64 {
	if step <= 0 {
		return nil
	}

	sorted := make([]schema.LoadRecord, len(load))
	copy(sorted, load)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var s series
	for _, r := range sorted {
		v := r.EnergyConsumption
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if n := len(s.times); n > 0 && s.times[n-1].Equal(r.Timestamp) {
			s.values[n-1] = v
			continue
		}
		s.times = append(s.times, r.Timestamp)
		s.values = append(s.values, v)
	}
	if len(s.times) == 0 {
		return nil
	}

	start := ceilTime(s.times[0], step)
	end := s.times[len(s.times)-1].Truncate(step)
	var out []float64
	for t := start; !t.After(end); t = t.Add(step) {
		out = append(out, s.at(t))
	}
	return out
}

// sortAndDedupe returns a time-ordered copy of obs with one row per timestamp.
func sortAndDedupe(obs []schema.WeatherRecord) []schema.WeatherRecord {
	sorted := make([]schema.WeatherRecord, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	out := sorted[:0]
	for _, r := range sorted {
		if len(out) > 0 && out[len(out)-1].Timestamp.Equal(r.Timestamp) {
			out[len(out)-1] = r
			continue
		}
		out = append(out, r)
	}
	return out
}

func collectSeries(obs []schema.WeatherRecord, value func(schema.WeatherRecord) float64) series {
	var s series
	for _, r := range obs {
		v := value(r)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		s.times = append(s.times, r.Timestamp)
		s.values = append(s.values, v)
	}
	return s
}

// at returns the linearly interpolated value at t, or NaN outside the observed range.
func (s series) at(t time.Time) float64 {
	idx := sort.Search(len(s.times), func(i int) bool {
		return !s.times[i].Before(t)
	})
	if idx < len(s.times) && s.times[idx].Equal(t) {
		return s.values[idx]
	}
	if idx == 0 || idx == len(s.times) {
		return math.NaN()
	}

	t0, t1 := s.times[idx-1], s.times[idx]
	v0, v1 := s.values[idx-1], s.values[idx]
	frac := float64(t.Sub(t0)) / float64(t1.Sub(t0))
	return v0 + (v1-v0)*frac
}

// ceilTime rounds t up to the next multiple of step.
func ceilTime(t time.Time, step time.Duration) time.Time {
	floor := t.Truncate(step)
	if floor.Before(t) {
		return floor.Add(step)
	}
	return floor
}
