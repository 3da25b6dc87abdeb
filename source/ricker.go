/*package source generates the time signature injected at the source cell.
*/
package source

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Delay is the time shift of the wavelet peak in units of the dominant
// period 1/f0.
const Delay = 1.5

// Ricker returns the amplitude of a Ricker wavelet with dominant frequency f0
// and peak amplitude q0 at time t. The peak is at t = Delay / f0.
func Ricker(t, f0, q0 float64) float64 {
	tau := math.Pi * f0 * (t - Delay/f0)
	tau2 := tau * tau
	return q0 * (1 - 2*tau2) * math.Exp(-tau2)
}

// RickerSignal samples a Ricker wavelet at each of the times in ts.
func RickerSignal(ts []float64, f0, q0 float64) []float64 {
	q := make([]float64, len(ts))
	for i, t := range ts {
		q[i] = Ricker(t, f0, q0)
	}
	return q
}

// Spectrum returns the one-sided amplitude spectrum of a signal sampled every
// dt seconds. freqs[i] is the frequency in Hz of amps[i].
func Spectrum(sig []float64, dt float64) (freqs, amps []float64) {
	n := len(sig)
	if n == 0 {
		return []float64{}, []float64{}
	}

	X := fft.FFTReal(sig)
	half := n/2 + 1
	freqs, amps = make([]float64, half), make([]float64, half)
	df := 1 / (float64(n) * dt)
	for i := 0; i < half; i++ {
		freqs[i] = float64(i) * df
		amps[i] = cmplx.Abs(X[i]) * dt
	}
	return freqs, amps
}

// PeakFrequency returns the frequency at which the amplitude spectrum of sig
// is largest.
func PeakFrequency(sig []float64, dt float64) float64 {
	freqs, amps := Spectrum(sig, dt)
	if len(amps) == 0 {
		return 0
	}
	best := 0
	for i := range amps {
		if amps[i] > amps[best] {
			best = i
		}
	}
	return freqs[best]
}
