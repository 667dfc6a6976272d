package colormap

import (
	"fmt"

	"github.com/echoflaresat/spectrum/colors"
	lru "github.com/hashicorp/golang-lru"
)

// VisibleRangePlus is the wavelength window (nm) covered by the spectral map,
// slightly wider than the visible range so its faded edges show.
var VisibleRangePlus = Normalize{Min: 350, Max: 780}

// SampleStep is the wavelength spacing (nm) of the spectral map's stops.
const SampleStep = 2.0

// Spectral colors wavelengths normalized by VisibleRangePlus.
var Spectral = mustSpectral(colors.DefaultGamma)

var gammaCache, _ = lru.New(16) // gamma -> *Segmented

// ForGamma returns the spectral map for another gamma. Maps are built on first
// use and kept in a small LRU cache.
func ForGamma(gamma float64) *Segmented {
	if gamma == colors.DefaultGamma {
		return Spectral
	}
	if v, ok := gammaCache.Get(gamma); ok {
		return v.(*Segmented)
	}
	m := mustSpectral(gamma)
	gammaCache.Add(gamma, m)
	return m
}

// SpectralStops samples colors.FromWavelength across VisibleRangePlus.
func SpectralStops(gamma float64) []Stop {
	samples := colors.Spectrum(VisibleRangePlus.Min, VisibleRangePlus.Max, SampleStep, gamma)
	stops := make([]Stop, len(samples))
	for i, c := range samples {
		wl := VisibleRangePlus.Min + float64(i)*SampleStep
		stops[i] = Stop{Pos: VisibleRangePlus.Apply(wl), Color: c}
	}
	return stops
}

func mustSpectral(gamma float64) *Segmented {
	m, err := FromList("spectrum", SpectralStops(gamma))
	if err != nil {
		panic(fmt.Errorf("building spectral colormap: %w", err))
	}
	return m
}
