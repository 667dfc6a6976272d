// Package plot renders spectra onto raster plotting surfaces.
//
// An Axes collects artists (lines, fills, colormapped images) and rasterizes
// them into an *image.NRGBA with ticks and axis labels. PlotSpectrum is the
// one-call entry point: it draws an intensity curve over a background colored
// by wavelength.
package plot
