package plot

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"sort"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Margins around the plot area, in pixels.
const (
	marginLeft   = 64
	marginRight  = 20
	marginTop    = 16
	marginBottom = 52
)

// Axes is a retained plotting surface. Artists are collected by the plotting
// calls and rasterized by Render. An Axes must not be mutated concurrently.
type Axes struct {
	width, height  int
	xlabel, ylabel string
	artists        []Artist
	xlim, ylim     *[2]float64
}

// NewAxes returns an empty surface of the given pixel size. Non-positive sizes
// fall back to the defaults.
func NewAxes(width, height int) *Axes {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Axes{width: width, height: height}
}

func (a *Axes) Size() (width, height int) { return a.width, a.height }

func (a *Axes) SetXLabel(s string) { a.xlabel = s }
func (a *Axes) SetYLabel(s string) { a.ylabel = s }
func (a *Axes) XLabel() string     { return a.xlabel }
func (a *Axes) YLabel() string     { return a.ylabel }

// SetXLim fixes the x data range instead of deriving it from the artists.
func (a *Axes) SetXLim(lo, hi float64) { a.xlim = &[2]float64{lo, hi} }

// SetYLim fixes the y data range instead of deriving it from the artists.
func (a *Axes) SetYLim(lo, hi float64) { a.ylim = &[2]float64{lo, hi} }

// Add appends artists to the surface.
func (a *Axes) Add(artists ...Artist) {
	a.artists = append(a.artists, artists...)
}

// Artists returns the artists in insertion order.
func (a *Axes) Artists() []Artist {
	return append([]Artist(nil), a.artists...)
}

// Plot adds a polyline.
func (a *Axes) Plot(x, y []float64, c color.Color) *Line {
	l := &Line{X: x, Y: y, Color: c, Width: DefaultLineWidth}
	a.Add(l)
	return l
}

// FillBetween fills the region between the curve (x, y) and the constant top.
func (a *Axes) FillBetween(x, y []float64, top float64, c color.Color) *Fill {
	f := &Fill{X: x, Y: y, Top: top, Color: c}
	a.Add(f)
	return f
}

// ImShow adds a colormapped image covering its extent.
func (a *Axes) ImShow(img *Image) *Image {
	a.Add(img)
	return img
}

// Limits returns the data range shown by the plot area. Unfixed ranges are
// the union of the artists' data; empty or degenerate ranges are widened by 1.
func (a *Axes) Limits() (x0, x1, y0, y1 float64) {
	x0, x1 = math.Inf(1), math.Inf(-1)
	y0, y1 = math.Inf(1), math.Inf(-1)
	for _, art := range a.artists {
		ext, ok := art.DataLimits()
		if !ok {
			continue
		}
		x0, x1 = math.Min(x0, ext.X0), math.Max(x1, ext.X1)
		y0, y1 = math.Min(y0, ext.Y0), math.Max(y1, ext.Y1)
	}
	if a.xlim != nil {
		x0, x1 = a.xlim[0], a.xlim[1]
	}
	if a.ylim != nil {
		y0, y1 = a.ylim[0], a.ylim[1]
	}
	x0, x1 = widen(x0, x1)
	y0, y1 = widen(y0, y1)
	return x0, x1, y0, y1
}

func widen(lo, hi float64) (float64, float64) {
	if math.IsInf(lo, 1) || math.IsInf(hi, -1) {
		return 0, 1
	}
	if lo == hi {
		return lo - 1, hi + 1
	}
	return lo, hi
}

// PlotRect is the pixel rectangle of the plot area.
func (a *Axes) PlotRect() image.Rectangle {
	r := image.Rect(marginLeft, marginTop, a.width-marginRight, a.height-marginBottom)
	if r.Empty() {
		return image.Rect(0, 0, a.width, a.height)
	}
	return r
}

// Transform maps data coordinates onto the plot area.
func (a *Axes) Transform() Transform {
	x0, x1, y0, y1 := a.Limits()
	return Transform{Rect: a.PlotRect(), X0: x0, X1: x1, Y0: y0, Y1: y1}
}

// Render rasterizes the surface: artists in z-order clipped to the plot
// area, then frame, ticks and labels.
func (a *Axes) Render() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, a.width, a.height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	tr := a.Transform()
	ordered := a.Artists()
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ZOrder() < ordered[j].ZOrder() })
	for _, art := range ordered {
		art.Draw(img, tr)
	}

	drawFrame(img, tr.Rect, color.Black)
	a.drawDecorations(img, tr)
	return img
}

// WritePNG renders the surface and encodes it as PNG.
func (a *Axes) WritePNG(w io.Writer) error {
	return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(w, a.Render())
}

// SavePNG writes the rendered surface to path.
func (a *Axes) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Transform maps between data space and pixel space of a plot area.
type Transform struct {
	Rect           image.Rectangle
	X0, X1, Y0, Y1 float64
}

// Px returns the horizontal pixel coordinate of data x.
func (t Transform) Px(x float64) float64 {
	return float64(t.Rect.Min.X) + (x-t.X0)/(t.X1-t.X0)*float64(t.Rect.Dx())
}

// Py returns the vertical pixel coordinate of data y; y grows upwards.
func (t Transform) Py(y float64) float64 {
	return float64(t.Rect.Max.Y) - (y-t.Y0)/(t.Y1-t.Y0)*float64(t.Rect.Dy())
}

// Data returns the data coordinates of a pixel position.
func (t Transform) Data(px, py float64) (x, y float64) {
	x = t.X0 + (px-float64(t.Rect.Min.X))/float64(t.Rect.Dx())*(t.X1-t.X0)
	y = t.Y0 + (float64(t.Rect.Max.Y)-py)/float64(t.Rect.Dy())*(t.Y1-t.Y0)
	return x, y
}

func drawFrame(img *image.NRGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X - 1; x <= r.Max.X; x++ {
		img.Set(x, r.Min.Y-1, c)
		img.Set(x, r.Max.Y, c)
	}
	for y := r.Min.Y - 1; y <= r.Max.Y; y++ {
		img.Set(r.Min.X-1, y, c)
		img.Set(r.Max.X, y, c)
	}
}

// Clip clamps x into the inclusive range [min, max].
func Clip(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
