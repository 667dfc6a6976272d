package plot

import (
	"fmt"
	"math"

	"github.com/echoflaresat/spectrum/colormap"
	"golang.org/x/image/colornames"
)

// WavelengthLabel is the x axis label of spectrum plots.
const WavelengthLabel = "λ (Wavelength nm)"

// PlotSpectrum draws the intensity curve (x, y) over a background colored by
// wavelength, and whites out the area above the curve.
//
// When y is nil, x holds the intensities and the wavelengths are spread evenly
// from Lo to Hi (see WithRange). Without WithAxes a new surface of the default
// size is created. The surface is returned either way.
func PlotSpectrum(x, y []float64, opts ...Option) (*Axes, error) {
	o := ApplyOptions(opts...)

	if y == nil {
		y = x
		x = Linspace(o.Lo, o.Hi, len(y))
	}
	if len(y) == 0 {
		return nil, ErrEmptySeries
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: len(x)=%d len(y)=%d", ErrLengthMismatch, len(x), len(y))
	}
	if i := firstNonFinite(x); i >= 0 {
		return nil, fmt.Errorf("%w: x[%d]=%v", ErrNonFinite, i, x[i])
	}
	if i := firstNonFinite(y); i >= 0 {
		return nil, fmt.Errorf("%w: y[%d]=%v", ErrNonFinite, i, y[i])
	}

	ax := o.Axes
	if ax == nil {
		ax = NewAxes(DefaultWidth, DefaultHeight)
	}

	ax.Plot(x, y, o.LineColor)

	yMax := math.Max(1, maxOf(y))
	xMin, xMax := minOf(x), maxOf(x)
	ax.ImShow(&Image{
		Extent:   Extent{X0: xMin, X1: xMax, Y0: 0, Y1: yMax},
		Colormap: colormap.ForGamma(o.Gamma),
		Norm:     colormap.VisibleRangePlus,
		Value:    func(wl, _ float64) float64 { return wl },
	})
	ax.SetXLabel(WavelengthLabel)
	if o.YLabel != "" {
		ax.SetYLabel(o.YLabel)
	}
	ax.FillBetween(x, y, yMax, colornames.White)
	return ax, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive. A single
// value sits at lo.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

func firstNonFinite(v []float64) int {
	for i, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return i
		}
	}
	return -1
}

func minOf(v []float64) float64 {
	m := v[0]
	for _, f := range v[1:] {
		m = math.Min(m, f)
	}
	return m
}

func maxOf(v []float64) float64 {
	m := v[0]
	for _, f := range v[1:] {
		m = math.Max(m, f)
	}
	return m
}
