package colors

import "math"

// Visible range handled by FromWavelength, in nanometers.
const (
	VisibleMin = 380.0
	VisibleMax = 750.0
)

const (
	// DefaultGamma is the exponent applied to every color ramp.
	DefaultGamma = 0.8
	// OutOfRangeAlpha marks colors computed for wavelengths outside the visible range.
	OutOfRangeAlpha = 0.5
)

// WavelengthToRGB is FromWavelength with DefaultGamma.
func WavelengthToRGB(nm float64) Color4 {
	return FromWavelength(nm, DefaultGamma)
}

// FromWavelength approximates the color of monochromatic light of the given
// wavelength (nm), after Dan Bruton's piecewise-linear spectrum ramps.
//
// Wavelengths outside [VisibleMin, VisibleMax] are clamped to the nearest edge
// and returned with alpha OutOfRangeAlpha. The outer bands fade to 30% intensity
// towards the edges of the visible range.
func FromWavelength(nm, gamma float64) Color4 {
	a := 1.0
	if !(nm >= VisibleMin && nm <= VisibleMax) {
		a = OutOfRangeAlpha
	}
	w := nm
	if w < VisibleMin {
		w = VisibleMin
	}
	if w > VisibleMax {
		w = VisibleMax
	}

	p := func(v float64) float64 { return math.Pow(v, gamma) }
	switch {
	case w >= 380 && w <= 440:
		att := 0.3 + 0.7*(w-380)/(440-380)
		return Color4{R: p(-(w - 440) / (440 - 380) * att), G: 0, B: p(att), A: a}
	case w >= 440 && w <= 490:
		return Color4{R: 0, G: p((w - 440) / (490 - 440)), B: 1, A: a}
	case w >= 490 && w <= 510:
		return Color4{R: 0, G: 1, B: p(-(w - 510) / (510 - 490)), A: a}
	case w >= 510 && w <= 580:
		return Color4{R: p((w - 510) / (580 - 510)), G: 1, B: 0, A: a}
	case w >= 580 && w <= 645:
		return Color4{R: 1, G: p(-(w - 645) / (645 - 580)), B: 0, A: a}
	case w >= 645 && w <= 750:
		att := 0.3 + 0.7*(750-w)/(750-645)
		return Color4{R: p(att), G: 0, B: 0, A: a}
	}
	// only NaN gets here
	return Color4{A: a}
}

// Spectrum samples FromWavelength from lo to hi (inclusive) every step nm.
func Spectrum(lo, hi, step, gamma float64) []Color4 {
	if step <= 0 || hi < lo {
		return nil
	}
	n := int((hi-lo)/step) + 1
	out := make([]Color4, n)
	for i := range out {
		out[i] = FromWavelength(lo+float64(i)*step, gamma)
	}
	return out
}
