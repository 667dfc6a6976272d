package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/echoflaresat/spectrum/capture"
	"github.com/echoflaresat/spectrum/colormap"
	"github.com/echoflaresat/spectrum/illuminant"
	"github.com/echoflaresat/spectrum/plot"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"golang.org/x/sync/errgroup"
)

// sourceSamples is the sampling density of generated spectra.
const sourceSamples = 301

// settings are the flag values shared by every job.
type settings struct {
	lo, hi, gamma  float64
	ylabel         string
	width, height  int
	rowFrom, rowTo int
	lineColor      color.Color
}

func (s settings) options(ax *plot.Axes) []plot.Option {
	return []plot.Option{
		plot.WithAxes(ax),
		plot.WithRange(s.lo, s.hi),
		plot.WithGamma(s.gamma),
		plot.WithYLabel(s.ylabel),
		plot.WithLineColor(s.lineColor),
	}
}

// plot renders (x, y) to out; a nil x spreads y over [lo, hi].
func (s settings) plot(out string, x, y []float64) error {
	if x == nil {
		x, y = y, nil
	}
	ax, err := plot.PlotSpectrum(x, y, s.options(plot.NewAxes(s.width, s.height))...)
	if err != nil {
		return err
	}
	if err := ax.SavePNG(out); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	w, h := ax.Size()
	slog.Info("wrote plot", "path", out, "width", w, "height", h)
	return nil
}

func writeSwatch(out string, s settings) error {
	m := colormap.ForGamma(s.gamma)
	if err := writePNG(out, m.Bar(s.width, s.height)); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	slog.Info("wrote swatch", "path", out, "colormap", m.Name(), "from", colormap.VisibleRangePlus.Min, "to", colormap.VisibleRangePlus.Max)
	return nil
}

func plotBlackbody(out string, kelvin float64, s settings) error {
	wl := plot.Linspace(s.lo, s.hi, sourceSamples)
	if s.ylabel == "" {
		s.ylabel = "Relative radiance"
	}
	slog.Debug("blackbody", "kelvin", kelvin, "peak_nm", illuminant.PeakWavelength(kelvin))
	return s.plot(out, wl, illuminant.Blackbody(wl, kelvin))
}

func plotSunlight(out string, t time.Time, lat, lon float64, s settings) error {
	wl := plot.Linspace(s.lo, s.hi, sourceSamples)
	if s.ylabel == "" {
		s.ylabel = "Relative irradiance"
	}
	elev := illuminant.SunElevation(t, lat, lon)
	if elev <= 0 {
		slog.Warn("sun is below the horizon", "time", t, "lat", lat, "lon", lon, "elevation", elev)
	}
	return s.plot(out, wl, illuminant.Sunlight(wl, t, lat, lon))
}

// plotInputs renders one plot per input, at most workers at a time.
func plotInputs(inputs []string, out string, workers int, s settings) error {
	dsts := []string{out}
	if len(inputs) > 1 {
		dir := outputDir(out)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		dsts = outputPaths(dir, inputs)
	}

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, in := range inputs {
		dst := dsts[i]
		g.Go(func() error {
			x, y, err := readInput(in, s)
			if err != nil {
				return err
			}
			if err := s.plot(dst, x, y); err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// readInput loads a CSV table, or the column profile of an image.
func readInput(path string, s settings) (x, y []float64, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return capture.LoadCSV(path)
	}

	frame, err := capture.LoadImage(path)
	if err != nil {
		return nil, nil, err
	}
	defer frame.Close()

	rowTo := s.rowTo
	if rowTo < 0 {
		rowTo = frame.Bounds().Max.Y
	}
	y, err = capture.ProfileRows(frame, s.rowFrom, rowTo)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return nil, y, nil
}

// outputDir treats a .png -out as a hint for its directory in batch mode.
func outputDir(out string) string {
	if strings.EqualFold(filepath.Ext(out), ".png") {
		return filepath.Dir(out)
	}
	return out
}

// outputPaths names one PNG per input inside dir. Inputs sharing a stem keep
// their extension (lamp.csv.png) and remaining clashes get a numeric suffix,
// so no two inputs write the same file.
func outputPaths(dir string, inputs []string) []string {
	names := make([]string, len(inputs))
	stems := make(map[string]int, len(inputs))
	for i, in := range inputs {
		base := filepath.Base(in)
		names[i] = strings.TrimSuffix(base, filepath.Ext(base))
		stems[names[i]]++
	}

	taken := make(map[string]bool, len(inputs))
	out := make([]string, len(inputs))
	for i, in := range inputs {
		name := names[i]
		if stems[name] > 1 {
			name = filepath.Base(in)
		}
		cand := name
		for k := 2; taken[cand]; k++ {
			cand = fmt.Sprintf("%s-%d", name, k)
		}
		taken[cand] = true
		out[i] = filepath.Join(dir, cand+".png")
	}
	return out
}

// parseSize reads "<width>x<height>".
func parseSize(s string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	width, werr := strconv.Atoi(ws)
	height, herr := strconv.Atoi(hs)
	if werr != nil || herr != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: dimensions must be positive integers", s)
	}
	return width, height, nil
}

// parseLineColor accepts an SVG color name or a #rrggbb hex triplet.
func parseLineColor(s string) (color.Color, error) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("unknown line color %q: %w", s, err)
	}
	return c.Clamped(), nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
