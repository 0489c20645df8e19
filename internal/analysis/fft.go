package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the series'
// spectrum. The mean is removed first so bin 0 carries no offset.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency is the frequency in Hz of the strongest non-zero bin
// of a series sampled every dt seconds. It returns 0 when the series is
// flat or too short.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	best := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if best == 0 || ps[best] < 1e-12 {
		return 0
	}
	return float64(best) / (float64(len(data)) * dt)
}

// SettleTick returns the first index after which every step of the series
// changes by less than tol, or -1 if it never settles.
func SettleTick(data []float64, tol float64) int {
	if len(data) == 0 {
		return -1
	}
	settled := len(data) - 1
	for i := len(data) - 1; i > 0; i-- {
		d := data[i] - data[i-1]
		if d > tol || d < -tol {
			break
		}
		settled = i - 1
	}
	if settled == len(data)-1 && len(data) > 1 {
		return -1
	}
	return settled
}
