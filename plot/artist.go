package plot

import (
	"image"
	"image/color"
	"math"

	"github.com/echoflaresat/spectrum/colormap"
	"github.com/echoflaresat/spectrum/colors"
	"golang.org/x/image/vector"
)

// Default z-orders, lowest drawn first.
const (
	ZImage = 0
	ZFill  = 1
	ZLine  = 2
)

// DefaultLineWidth is the stroke width of Line, in pixels.
const DefaultLineWidth = 2.0

// Extent is a rectangle in data coordinates.
type Extent struct {
	X0, X1, Y0, Y1 float64
}

func (e Extent) contains(x, y float64) bool {
	return x >= e.X0 && x <= e.X1 && y >= e.Y0 && y <= e.Y1
}

// Artist is anything an Axes can draw.
type Artist interface {
	ZOrder() int
	// DataLimits reports the data extent used for autoscaling; ok is false
	// when the artist has nothing to contribute.
	DataLimits() (ext Extent, ok bool)
	Draw(dst *image.NRGBA, tr Transform)
}

// Line is a polyline through (X[i], Y[i]).
type Line struct {
	X, Y  []float64
	Color color.Color
	Width float64
}

func (l *Line) ZOrder() int { return ZLine }

func (l *Line) DataLimits() (Extent, bool) {
	return seriesLimits(l.X, l.Y)
}

func (l *Line) Draw(dst *image.NRGBA, tr Transform) {
	n := min(len(l.X), len(l.Y))
	if n == 0 {
		return
	}
	hw := l.Width / 2
	if hw <= 0 {
		hw = DefaultLineWidth / 2
	}
	ox, oy := float64(tr.Rect.Min.X), float64(tr.Rect.Min.Y)
	rasterize(dst, tr.Rect, l.Color, func(z *vector.Rasterizer) {
		px := func(i int) (float64, float64) {
			return tr.Px(l.X[i]) - ox, tr.Py(l.Y[i]) - oy
		}
		for i := 0; i < n; i++ {
			x, y := px(i)
			square(z, x, y, hw)
			if i == 0 {
				continue
			}
			x0, y0 := px(i - 1)
			segment(z, x0, y0, x, y, hw)
		}
	})
}

// Fill covers the area between the curve (X[i], Y[i]) and the constant Top.
type Fill struct {
	X, Y  []float64
	Top   float64
	Color color.Color
}

func (f *Fill) ZOrder() int { return ZFill }

func (f *Fill) DataLimits() (Extent, bool) {
	ext, ok := seriesLimits(f.X, f.Y)
	if !ok {
		return ext, false
	}
	ext.Y0 = math.Min(ext.Y0, f.Top)
	ext.Y1 = math.Max(ext.Y1, f.Top)
	return ext, true
}

func (f *Fill) Draw(dst *image.NRGBA, tr Transform) {
	n := min(len(f.X), len(f.Y))
	if n < 2 {
		return
	}
	ox, oy := float64(tr.Rect.Min.X), float64(tr.Rect.Min.Y)
	top := tr.Py(f.Top) - oy
	rasterize(dst, tr.Rect, f.Color, func(z *vector.Rasterizer) {
		z.MoveTo(pt(tr.Px(f.X[0])-ox, tr.Py(f.Y[0])-oy))
		for i := 1; i < n; i++ {
			z.LineTo(pt(tr.Px(f.X[i])-ox, tr.Py(f.Y[i])-oy))
		}
		z.LineTo(pt(tr.Px(f.X[n-1])-ox, top))
		z.LineTo(pt(tr.Px(f.X[0])-ox, top))
		z.ClosePath()
	})
}

// Image colors every pixel inside Extent by Colormap.At(Norm.Apply(Value(x, y))).
type Image struct {
	Extent   Extent
	Colormap *colormap.Segmented
	Norm     colormap.Normalize
	Value    func(x, y float64) float64
}

func (m *Image) ZOrder() int { return ZImage }

func (m *Image) DataLimits() (Extent, bool) {
	return m.Extent, true
}

func (m *Image) Draw(dst *image.NRGBA, tr Transform) {
	r := tr.Rect.Intersect(dst.Bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			x, y := tr.Data(float64(px)+0.5, float64(py)+0.5)
			if !m.Extent.contains(x, y) {
				continue
			}
			c := m.Colormap.At(m.Norm.Apply(m.Value(x, y)))
			if c.A <= 0 {
				continue
			}
			bg := colors.FromStandardColor(dst.NRGBAAt(px, py))
			dst.SetNRGBA(px, py, c.CompositeOver(bg).ToNRGBA())
		}
	}
}

func seriesLimits(x, y []float64) (Extent, bool) {
	n := min(len(x), len(y))
	if n == 0 {
		return Extent{}, false
	}
	ext := Extent{X0: x[0], X1: x[0], Y0: y[0], Y1: y[0]}
	for i := 1; i < n; i++ {
		ext.X0, ext.X1 = math.Min(ext.X0, x[i]), math.Max(ext.X1, x[i])
		ext.Y0, ext.Y1 = math.Min(ext.Y0, y[i]), math.Max(ext.Y1, y[i])
	}
	return ext, true
}
