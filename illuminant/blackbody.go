// Package illuminant generates reference light spectra: blackbody radiators
// and direct sunlight filtered by the atmosphere.
package illuminant

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	planck    = 6.62607015e-34 // J·s
	lightC    = 2.99792458e8   // m/s
	boltzmann = 1.380649e-23   // J/K
)

// SunTemperature is the effective blackbody temperature of the Sun, in kelvin.
const SunTemperature = 5778.0

// Planck returns the spectral radiance of a blackbody at the given wavelength
// (nm) and temperature (K), in W·sr⁻¹·m⁻³. Non-positive inputs yield 0.
func Planck(nm, kelvin float64) float64 {
	if nm <= 0 || kelvin <= 0 {
		return 0
	}
	l := nm * 1e-9
	x := planck * lightC / (l * boltzmann * kelvin)
	return 2 * planck * lightC * lightC / math.Pow(l, 5) / math.Expm1(x)
}

// Blackbody samples Planck at each wavelength and scales the result to a
// peak of 1.
func Blackbody(wavelengths []float64, kelvin float64) []float64 {
	out := make([]float64, len(wavelengths))
	for i, wl := range wavelengths {
		out[i] = Planck(wl, kelvin)
	}
	Normalize(out)
	return out
}

// PeakWavelength returns the wavelength (nm) of maximum emission after Wien's
// displacement law.
func PeakWavelength(kelvin float64) float64 {
	const wien = 2.897771955e-3 // m·K
	return wien / kelvin * 1e9
}

// Normalize scales samples in place so the largest value is 1. Spectra
// without a positive peak are left untouched.
func Normalize(samples []float64) {
	peak := 0.0
	for _, v := range samples {
		peak = math.Max(peak, v)
	}
	if peak <= 0 {
		return
	}
	vecmath.ScaleBlock(samples, samples, 1/peak)
}
