package feature

import (
	"errors"
	"math"
	"math/cmplx"
	"time"

	"github.com/fermata-energy/fermata/schema"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrNonFiniteSample is returned when a spectrum is requested over a series with gaps.
var ErrNonFiniteSample = errors.New("series contains NaN or infinite samples")

// LoadSpectrum computes the Fourier magnitude and phase of a uniformly sampled load series
// for frequencies from zero up to Nyquist.
func LoadSpectrum(values []float64, sampleInterval time.Duration) ([]schema.SpectrumPoint, error) {
	if len(values) == 0 {
		return nil, errors.New("cannot compute spectrum of an empty series")
	}
	if sampleInterval <= 0 {
		return nil, errors.New("sample interval must be positive")
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrNonFiniteSample
		}
	}

	fft := fourier.NewFFT(len(values))
	coeffs := fft.Coefficients(nil, values)
	dt := sampleInterval.Seconds()

	points := make([]schema.SpectrumPoint, len(coeffs))
	for i, c := range coeffs {
		points[i] = schema.SpectrumPoint{
			FrequencyHz: fft.Freq(i) / dt,
			Magnitude:   cmplx.Abs(c),
			Phase:       cmplx.Phase(c),
		}
	}
	return points, nil
}
