package colors

import (
	"image/color"
	"math"
)

// Color4 is a straight (non-premultiplied) RGBA color with float64 components in [0,1].
type Color4 struct {
	R, G, B, A float64
}

func New(r, g, b, a float64) Color4 {
	return Color4{R: r, G: g, B: b, A: a}
}

// RGBA implements color.Color. Components are clamped before premultiplying.
func (c Color4) RGBA() (r, g, b, a uint32) {
	cc := c.Clamp01()
	return uint32(cc.R * cc.A * 0xffff),
		uint32(cc.G * cc.A * 0xffff),
		uint32(cc.B * cc.A * 0xffff),
		uint32(cc.A * 0xffff)
}

func FromStandardColor(c color.Color) Color4 {
	if c4, ok := c.(Color4); ok {
		return c4
	}

	r16, g16, b16, a16 := c.RGBA()
	if a16 == 0 {
		return Color4{}
	}

	// De-premultiply and normalize to [0,1]
	a := float64(a16)
	return Color4{
		R: float64(r16) / a,
		G: float64(g16) / a,
		B: float64(b16) / a,
		A: float64(a16) / 0xffff,
	}
}

func White() Color4 {
	return Color4{R: 1, G: 1, B: 1, A: 1}
}

func Black() Color4 {
	return Color4{R: 0, G: 0, B: 0, A: 1}
}

// Mix returns lerp(c, o, t) = c*(1-t) + o*t, alpha included.
func (c Color4) Mix(o Color4, t float64) Color4 {
	return Color4{
		R: c.R*(1-t) + o.R*t,
		G: c.G*(1-t) + o.G*t,
		B: c.B*(1-t) + o.B*t,
		A: c.A*(1-t) + o.A*t,
	}
}

func (c Color4) WithAlpha(a float64) Color4 {
	return Color4{R: c.R, G: c.G, B: c.B, A: a}
}

// CompositeOver blends c over an opaque background using c.A as coverage.
func (c Color4) CompositeOver(bg Color4) Color4 {
	return Color4{
		R: c.R*c.A + bg.R*(1-c.A),
		G: c.G*c.A + bg.G*(1-c.A),
		B: c.B*c.A + bg.B*(1-c.A),
		A: 1.0,
	}
}

// Luminance returns the Rec.709 relative luminance of the RGB channels.
func (c Color4) Luminance() float64 {
	const rY, gY, bY = 0.2126, 0.7152, 0.0722
	return rY*c.R + gY*c.G + bY*c.B
}

// Clamp01 clamps each component into [0,1].
func (c Color4) Clamp01() Color4 {
	return Color4{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

// ToNRGBA converts to 8-bit straight alpha, rounding to nearest.
func (c Color4) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8bit(c.R),
		G: to8bit(c.G),
		B: to8bit(c.B),
		A: to8bit(c.A),
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func to8bit(x float64) uint8 {
	return uint8(math.Round(255.0 * clamp01(x)))
}
