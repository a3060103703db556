package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X[k]| for k in [0, n/2).
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin of
// a series sampled every dt seconds, or 0 when there is none.
func DominantFrequency(series []float64, dt float64) float64 {
	if len(series) < 2 || dt <= 0 {
		return 0
	}
	ps := PowerSpectrum(series)

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	return float64(maxIdx) / (float64(len(series)) * dt)
}

// Probe extracts the time series of one grid point from recorded frames.
func Probe(frames [][]float64, index int) []float64 {
	series := make([]float64, 0, len(frames))
	for _, f := range frames {
		if index >= 0 && index < len(f) {
			series = append(series, f[index])
		}
	}
	return series
}
