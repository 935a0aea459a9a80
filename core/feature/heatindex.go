package feature

import (
	"math"

	"github.com/fermata-energy/fermata/schema"
)

// CelsiusToFahrenheit converts a temperature from degrees Celsius to degrees Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// HeatIndex returns the NWS heat index in degrees Fahrenheit for a dry-bulb temperature in
// degrees Celsius and a relative humidity in percent.
//
// At or below 40 F the heat index is the temperature itself. Otherwise the Steadman simple
// formula is used while it stays under 79 F and the Rothfusz regression above that. The
// low-humidity (RH <= 13%, 80-112 F) and high-humidity (RH > 85%, 80-87 F) adjustments are
// applied on top. NaN inputs give NaN.
func HeatIndex(tempC, rhPct float64) float64 {
	if math.IsNaN(tempC) || math.IsNaN(rhPct) {
		return math.NaN()
	}

	t := CelsiusToFahrenheit(tempC)
	rh := rhPct / 100

	var hi float64
	switch simple := -10.3 + 1.1*t + 4.7*rh; {
	case t <= 40:
		hi = t
	case simple < 79:
		hi = simple
	default:
		t2 := t * t
		rh2 := rh * rh
		hi = -42.379 +
			2.04901523*t +
			1014.333127*rh -
			22.475541*t*rh -
			6.83783e-3*t2 -
			5.481717e2*rh2 +
			1.22874e-1*t2*rh +
			8.5282*t*rh2 -
			1.99e-2*t2*rh2
	}

	if rhPct <= 13 && t >= 80 && t <= 112 {
		hi -= (13 - rhPct) / 4 * math.Sqrt((17-math.Abs(t-95))/17)
	}
	if rhPct > 85 && t >= 80 && t <= 87 {
		hi += 0.02 * (rhPct - 85) * (87 - t)
	}
	return hi
}

// WithHeatIndex attaches the heat index to every resampled weather row.
func WithHeatIndex(weather []schema.WeatherRecord) []schema.ResampledWeather {
	out := make([]schema.ResampledWeather, len(weather))
	for i, w := range weather {
		out[i] = schema.ResampledWeather{
			WeatherRecord: w,
			HeatIndexF:    HeatIndex(w.DryBulbTempC, w.RelativeHumidityPct),
		}
	}
	return out
}
