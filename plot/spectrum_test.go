package plot

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/echoflaresat/spectrum/colormap"
	"github.com/echoflaresat/spectrum/colors"
	"golang.org/x/image/colornames"
)

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestPlotSpectrumSingleSeries(t *testing.T) {
	y := make([]float64, 50)
	for i := range y {
		y[i] = math.Sin(float64(i) / 8)
	}
	ax, err := PlotSpectrum(y, nil)
	if err != nil {
		t.Fatalf("PlotSpectrum: %v", err)
	}
	if ax.XLabel() != WavelengthLabel {
		t.Fatalf("xlabel %q", ax.XLabel())
	}
	if ax.YLabel() != "" {
		t.Fatalf("ylabel should stay empty, got %q", ax.YLabel())
	}

	arts := ax.Artists()
	if len(arts) != 3 {
		t.Fatalf("got %d artists want 3", len(arts))
	}
	line, ok := arts[0].(*Line)
	if !ok {
		t.Fatalf("first artist %T", arts[0])
	}
	if len(line.X) != 50 || line.X[0] != DefaultLo || line.X[49] != DefaultHi {
		t.Fatalf("synthesized x: len %d, [%v..%v]", len(line.X), line.X[0], line.X[len(line.X)-1])
	}

	x0, x1, y0, y1 := ax.Limits()
	if x0 != DefaultLo || x1 != DefaultHi {
		t.Fatalf("x limits [%v, %v]", x0, x1)
	}
	if y0 > -0.99 || y1 != 1 {
		t.Fatalf("y limits [%v, %v]", y0, y1)
	}
}

func TestPlotSpectrumExplicitXY(t *testing.T) {
	x := Linspace(380, 750, 38)
	y := make([]float64, len(x))
	for i := range y {
		y[i] = float64(i)
	}
	ax, err := PlotSpectrum(x, y, WithYLabel("counts"))
	if err != nil {
		t.Fatalf("PlotSpectrum: %v", err)
	}
	if ax.XLabel() == "" || ax.YLabel() != "counts" {
		t.Fatalf("labels %q / %q", ax.XLabel(), ax.YLabel())
	}
	_, _, _, y1 := ax.Limits()
	if y1 != 37 {
		t.Fatalf("top should follow max(y) when above 1, got %v", y1)
	}
	img := ax.Render()
	if img.Bounds().Dx() != DefaultWidth || img.Bounds().Dy() != DefaultHeight {
		t.Fatalf("bounds %v", img.Bounds())
	}
}

func TestPlotSpectrumRange(t *testing.T) {
	ax, err := PlotSpectrum(flat(11, 0.5), nil, WithRange(500, 600))
	if err != nil {
		t.Fatal(err)
	}
	line := ax.Artists()[0].(*Line)
	for i, v := range line.X {
		if want := 500 + 10*float64(i); math.Abs(v-want) > 1e-9 {
			t.Fatalf("x[%d]=%v want %v", i, v, want)
		}
	}
}

func TestPlotSpectrumErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		x, y []float64
		want error
	}{
		{name: "empty single", x: []float64{}, y: nil, want: ErrEmptySeries},
		{name: "empty pair", x: []float64{}, y: []float64{}, want: ErrEmptySeries},
		{name: "mismatch", x: []float64{1, 2, 3}, y: []float64{1, 2}, want: ErrLengthMismatch},
		{name: "nan y", x: []float64{1, 2}, y: []float64{1, math.NaN()}, want: ErrNonFinite},
		{name: "inf x", x: []float64{1, math.Inf(1)}, y: []float64{1, 2}, want: ErrNonFinite},
	} {
		ax := NewAxes(0, 0)
		_, err := PlotSpectrum(tc.x, tc.y, WithAxes(ax))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, err, tc.want)
		}
		if len(ax.Artists()) != 0 {
			t.Fatalf("%s: failed call must not touch the axes", tc.name)
		}
	}
}

func TestPlotSpectrumReusesAxes(t *testing.T) {
	ax := NewAxes(320, 240)
	got, err := PlotSpectrum(flat(5, 0.2), nil, WithAxes(ax))
	if err != nil {
		t.Fatal(err)
	}
	if got != ax {
		t.Fatalf("expected the supplied axes back")
	}
	if _, err := PlotSpectrum(flat(5, 0.8), nil, WithAxes(ax)); err != nil {
		t.Fatal(err)
	}
	if n := len(ax.Artists()); n != 6 {
		t.Fatalf("got %d artists want 6", n)
	}
}

func TestPlotSpectrumSingleSample(t *testing.T) {
	ax, err := PlotSpectrum([]float64{0.5}, nil)
	if err != nil {
		t.Fatal(err)
	}
	x0, x1, _, _ := ax.Limits()
	if x0 != DefaultLo-1 || x1 != DefaultLo+1 {
		t.Fatalf("degenerate x range not widened: [%v, %v]", x0, x1)
	}
	ax.Render()
}

func TestRenderPixels(t *testing.T) {
	ax, err := PlotSpectrum(flat(31, 0.5), nil)
	if err != nil {
		t.Fatal(err)
	}
	img := ax.Render()
	tr := ax.Transform()

	// below the curve: spectrum color over white
	px, py := int(tr.Px(550)), int(tr.Py(0.25))
	wl, _ := tr.Data(float64(px)+0.5, float64(py)+0.5)
	want := colormap.Spectral.At(colormap.VisibleRangePlus.Apply(wl)).CompositeOver(colors.White()).ToNRGBA()
	if got := img.NRGBAAt(px, py); got != want {
		t.Fatalf("background at %vnm: got %v want %v", wl, got, want)
	}

	// above the curve: whited out
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if got := img.NRGBAAt(px, int(tr.Py(0.75))); got != white {
		t.Fatalf("above curve: got %v want white", got)
	}

	// on the curve: line color
	darkred := color.NRGBAModel.Convert(colornames.Darkred).(color.NRGBA)
	if got := img.NRGBAAt(px, int(tr.Py(0.5))); got != darkred {
		t.Fatalf("on curve: got %v want %v", got, darkred)
	}
}

func TestRenderFadedEdges(t *testing.T) {
	ax, err := PlotSpectrum(flat(44, 1), nil, WithRange(350, 780))
	if err != nil {
		t.Fatal(err)
	}
	img := ax.Render()
	tr := ax.Transform()
	px, py := int(tr.Px(360)), int(tr.Py(0.5))
	got := img.NRGBAAt(px, py)
	// half-transparent violet over white keeps every channel well above zero
	if got.R < 100 || got.G < 100 || got.B < 100 || got.A != 255 {
		t.Fatalf("faded edge pixel %v", got)
	}
}

func TestWithGamma(t *testing.T) {
	ax, err := PlotSpectrum(flat(3, 0), nil, WithGamma(1))
	if err != nil {
		t.Fatal(err)
	}
	im := ax.Artists()[1].(*Image)
	if im.Colormap != colormap.ForGamma(1) {
		t.Fatalf("gamma option not applied")
	}
}

func TestWriteAndSavePNG(t *testing.T) {
	ax, err := PlotSpectrum(flat(10, 0.3), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := ax.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != DefaultWidth {
		t.Fatalf("decoded width %d", img.Bounds().Dx())
	}

	path := filepath.Join(t.TempDir(), "spectrum.png")
	if err := ax.SavePNG(path); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("saved file: %v", err)
	}
}

func TestLinspace(t *testing.T) {
	if Linspace(0, 1, 0) != nil {
		t.Fatalf("n=0 should be nil")
	}
	if got := Linspace(3, 9, 1); len(got) != 1 || got[0] != 3 {
		t.Fatalf("n=1 got %v", got)
	}
	got := Linspace(400, 700, 50)
	if len(got) != 50 || got[0] != 400 || got[49] != 700 {
		t.Fatalf("got len %d [%v..%v]", len(got), got[0], got[len(got)-1])
	}
	step := 300.0 / 49
	for i := 1; i < len(got); i++ {
		if math.Abs(got[i]-got[i-1]-step) > 1e-9 {
			t.Fatalf("uneven step at %d", i)
		}
	}
}

func TestWithLineColor(t *testing.T) {
	blue := color.NRGBA{B: 255, A: 255}
	ax, err := PlotSpectrum(flat(4, 0.5), nil, WithLineColor(blue))
	if err != nil {
		t.Fatal(err)
	}
	if line := ax.Artists()[0].(*Line); line.Color != blue {
		t.Fatalf("line color %v", line.Color)
	}
	ax, err = PlotSpectrum(flat(4, 0.5), nil, WithLineColor(nil))
	if err != nil {
		t.Fatal(err)
	}
	if line := ax.Artists()[0].(*Line); line.Color != colornames.Darkred {
		t.Fatalf("nil color should keep the default, got %v", line.Color)
	}
}
