package plot

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// Path coordinates are clamped to this many pixels outside the target so
// extreme data values do not overflow the float32 rasterizer.
const pathSlack = 1 << 14

// rasterize fills the paths built by fn with c. Path coordinates are relative
// to r.Min and anything outside r is clipped.
func rasterize(dst *image.NRGBA, r image.Rectangle, c color.Color, fn func(z *vector.Rasterizer)) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	fn(z)
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}

func pt(x, y float64) (float32, float32) {
	return float32(Clip(x, -pathSlack, pathSlack)), float32(Clip(y, -pathSlack, pathSlack))
}

// segment adds the quad covering a stroke of half-width hw from (x0,y0) to
// (x1,y1). All quads and squares share one winding so overlaps never cancel.
func segment(z *vector.Rasterizer, x0, y0, x1, y1, hw float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(pt(x0+nx, y0+ny))
	z.LineTo(pt(x1+nx, y1+ny))
	z.LineTo(pt(x1-nx, y1-ny))
	z.LineTo(pt(x0-nx, y0-ny))
	z.ClosePath()
}

// square adds a joint of half-size hw centred on (x,y).
func square(z *vector.Rasterizer, x, y, hw float64) {
	z.MoveTo(pt(x-hw, y-hw))
	z.LineTo(pt(x-hw, y+hw))
	z.LineTo(pt(x+hw, y+hw))
	z.LineTo(pt(x+hw, y-hw))
	z.ClosePath()
}
