package plot

import (
	"image/color"

	"github.com/echoflaresat/spectrum/colors"
	"golang.org/x/image/colornames"
)

// Default wavelength range (nm) assigned to intensities given without x values.
const (
	DefaultLo = 400.0
	DefaultHi = 700.0
)

// Options configures PlotSpectrum.
type Options struct {
	Lo, Hi    float64
	YLabel    string
	Axes      *Axes
	Gamma     float64
	LineColor color.Color
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the settings PlotSpectrum starts from.
func DefaultOptions() Options {
	return Options{
		Lo:        DefaultLo,
		Hi:        DefaultHi,
		Gamma:     colors.DefaultGamma,
		LineColor: colornames.Darkred,
	}
}

// WithRange sets the wavelengths spanned by intensities passed without x values.
func WithRange(lo, hi float64) Option {
	return func(o *Options) {
		o.Lo, o.Hi = lo, hi
	}
}

// WithYLabel sets the y axis label.
func WithYLabel(label string) Option {
	return func(o *Options) {
		o.YLabel = label
	}
}

// WithAxes draws onto an existing surface instead of a new one.
func WithAxes(ax *Axes) Option {
	return func(o *Options) {
		o.Axes = ax
	}
}

// WithGamma selects the gamma of the background spectrum.
func WithGamma(gamma float64) Option {
	return func(o *Options) {
		if gamma > 0 {
			o.Gamma = gamma
		}
	}
}

func WithLineColor(c color.Color) Option {
	return func(o *Options) {
		if c != nil {
			o.LineColor = c
		}
	}
}

// ApplyOptions applies opts to the defaults.
func ApplyOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
