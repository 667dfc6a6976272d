// Package colormap maps normalized scalars to colors through a lookup table
// built from sorted color stops.
package colormap

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/echoflaresat/spectrum/colors"
	"github.com/lucasb-eyer/go-colorful"
)

// LUTSize is the number of lookup table entries of a Segmented colormap.
const LUTSize = 256

var (
	ErrNoStops     = errors.New("colormap needs at least one stop")
	ErrStopBounds  = errors.New("colormap stops must start at 0 and end at 1")
	ErrStopOrdered = errors.New("colormap stops must be in increasing order")
)

// Stop anchors a color at a position in [0,1].
type Stop struct {
	Pos   float64
	Color colors.Color4
}

// Segmented is a piecewise-linear colormap sampled into a fixed lookup table.
// It is immutable once built.
type Segmented struct {
	name  string
	lut   []colors.Color4
	under colors.Color4
	over  colors.Color4
	bad   colors.Color4
}

// FromList builds a colormap from stops sorted by position. A single stop
// yields a constant map.
func FromList(name string, stops []Stop) (*Segmented, error) {
	if len(stops) == 0 {
		return nil, ErrNoStops
	}
	if len(stops) == 1 {
		stops = []Stop{{Pos: 0, Color: stops[0].Color}, {Pos: 1, Color: stops[0].Color}}
	}
	if stops[0].Pos != 0 || stops[len(stops)-1].Pos != 1 {
		return nil, fmt.Errorf("%s: %w", name, ErrStopBounds)
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].Pos < stops[i-1].Pos {
			return nil, fmt.Errorf("%s: stop %d at %v: %w", name, i, stops[i].Pos, ErrStopOrdered)
		}
	}

	lut := make([]colors.Color4, LUTSize)
	for i := range lut {
		lut[i] = blendAt(stops, float64(i)/float64(LUTSize-1))
	}
	return &Segmented{
		name:  name,
		lut:   lut,
		under: lut[0],
		over:  lut[len(lut)-1],
	}, nil
}

// blendAt interpolates between the two stops around t. RGB goes through
// go-colorful, alpha through Color4.Mix.
func blendAt(stops []Stop, t float64) colors.Color4 {
	// first stop with Pos > t
	k := sort.Search(len(stops), func(i int) bool { return stops[i].Pos > t })
	if k == 0 {
		return stops[0].Color
	}
	if k == len(stops) {
		return stops[len(stops)-1].Color
	}
	lo, hi := stops[k-1], stops[k]
	span := hi.Pos - lo.Pos
	if span <= 0 {
		return hi.Color
	}
	f := (t - lo.Pos) / span

	c1 := colorful.Color{R: lo.Color.R, G: lo.Color.G, B: lo.Color.B}
	c2 := colorful.Color{R: hi.Color.R, G: hi.Color.G, B: hi.Color.B}
	mixed := c1.BlendRgb(c2, f)
	return colors.Color4{
		R: mixed.R,
		G: mixed.G,
		B: mixed.B,
		A: lo.Color.Mix(hi.Color, f).A,
	}
}

func (m *Segmented) Name() string { return m.name }

// At returns the color for a normalized value. Values below 0 or above 1 map
// to the under and over colors, NaN maps to the bad color.
func (m *Segmented) At(t float64) colors.Color4 {
	switch {
	case math.IsNaN(t):
		return m.bad
	case t < 0:
		return m.under
	case t > 1:
		return m.over
	}
	i := int(t * float64(len(m.lut)))
	if i >= len(m.lut) {
		i = len(m.lut) - 1
	}
	return m.lut[i]
}

// WithExtremes returns a copy using the given under, over and bad colors.
func (m *Segmented) WithExtremes(under, over, bad colors.Color4) *Segmented {
	cp := *m
	cp.under, cp.over, cp.bad = under, over, bad
	return &cp
}

// LUT returns a copy of the lookup table.
func (m *Segmented) LUT() []colors.Color4 {
	return append([]colors.Color4(nil), m.lut...)
}

// Bar renders the map left to right as a width×height strip.
func (m *Segmented) Bar(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		t := 0.0
		if width > 1 {
			t = float64(x) / float64(width-1)
		}
		c := m.At(t).ToNRGBA()
		for y := 0; y < height; y++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
