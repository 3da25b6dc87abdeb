/*package plot draws diagnostic figures of the source wavelet and receiver
traces.

Figures are built up as a matplotlib script and only drawn once Execute is
called, so Execute must be called once after every figure has been queued.
*/
package plot

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/guptarohit/asciigraph"
	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/fdwave/source"
)

const (
	asciiHeight = 12
	asciiWidth  = 72
)

// PlotSource queues a figure of the source wavelet against time and a second
// figure of its amplitude spectrum. The spectrum is written next to fname,
// see SpectrumName.
func PlotSource(fname string, ts, sig []float64, f0 float64) error {
	if len(ts) != len(sig) {
		return fmt.Errorf("Source has %d times but %d samples.", len(ts), len(sig))
	} else if len(ts) < 2 {
		return fmt.Errorf("Cannot plot a source with %d samples.", len(ts))
	}

	plt.Figure()
	plt.Plot(ts, sig, "k", plt.LW(2))
	plt.Title(fmt.Sprintf(`Ricker wavelet, $f_0$ = %g Hz`, f0))
	plt.XLabel(`$t$ [s]`, plt.FontSize(16))
	plt.YLabel(`$q$`, plt.FontSize(16))
	plt.SaveFig(fname)

	dt := ts[1] - ts[0]
	freqs, amps := source.Spectrum(sig, dt)
	peak := source.PeakFrequency(sig, dt)

	plt.Figure()
	plt.Plot(freqs, amps, "k", plt.LW(2))
	plt.Plot([]float64{peak, peak}, []float64{0, maxOf(amps)}, "r")
	plt.Title(fmt.Sprintf("Amplitude spectrum, peak at %.3g Hz", peak))
	plt.XLabel(`$f$ [Hz]`, plt.FontSize(16))
	plt.YLabel(`$|\hat{q}|$`, plt.FontSize(16))
	plt.XLim(0, 4*f0)
	plt.SaveFig(SpectrumName(fname))

	return nil
}

// PlotTrace queues a figure of the pressure recorded at a receiver.
func PlotTrace(fname string, ts, vals []float64, y, x int) error {
	if len(ts) != len(vals) {
		return fmt.Errorf("Trace has %d times but %d values.", len(ts), len(vals))
	} else if len(ts) == 0 {
		return fmt.Errorf("Cannot plot an empty trace.")
	}

	plt.Figure()
	plt.Plot(ts, vals, "k", plt.LW(2))
	plt.Title(fmt.Sprintf("Receiver at (y, x) = (%d, %d)", y, x))
	plt.XLabel(`$t$ [s]`, plt.FontSize(16))
	plt.YLabel(`$p$`, plt.FontSize(16))
	plt.SaveFig(fname)

	return nil
}

// Execute draws every queued figure.
func Execute() { plt.Execute() }

// SpectrumName returns the file that PlotSource writes the spectrum of the
// wavelet in fname to: dir/name.ext becomes dir/name_spectrum.ext.
func SpectrumName(fname string) string {
	ext := filepath.Ext(fname)
	return strings.TrimSuffix(fname, ext) + "_spectrum" + ext
}

// ASCII returns a console plot of vals.
func ASCII(vals []float64, caption string) string {
	if len(vals) == 0 {
		return ""
	}
	return asciigraph.Plot(
		vals, asciigraph.Height(asciiHeight),
		asciigraph.Width(asciiWidth), asciigraph.Caption(caption),
	)
}

func maxOf(xs []float64) float64 {
	max := xs[0]
	for _, x := range xs {
		if x > max {
			max = x
		}
	}
	return max
}
