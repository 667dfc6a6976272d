package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	tickFontSize  = 11
	labelFontSize = 13
	tickLength    = 5
	xTickTarget   = 6
	yTickTarget   = 5
)

var labelFont = mustParseFont()

func mustParseFont() *opentype.Font {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(fmt.Errorf("parsing label font: %w", err))
	}
	return f
}

// newFace returns a face for one render; faces are not safe for concurrent use.
func newFace(size float64) font.Face {
	face, err := opentype.NewFace(labelFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		slog.Warn("failed to create font face", "size", size, "error", err)
		return nil
	}
	return face
}

func (a *Axes) drawDecorations(img *image.NRGBA, tr Transform) {
	tickFace := newFace(tickFontSize)
	labelFace := newFace(labelFontSize)
	if tickFace == nil || labelFace == nil {
		return
	}
	defer tickFace.Close()
	defer labelFace.Close()

	r := tr.Rect
	asc := tickFace.Metrics().Ascent.Ceil()

	xticks, xstep := niceTicks(tr.X0, tr.X1, xTickTarget)
	for _, v := range xticks {
		px := int(math.Round(tr.Px(v)))
		for y := r.Max.Y; y < r.Max.Y+tickLength; y++ {
			img.Set(px, y, color.Black)
		}
		s := formatTick(v, xstep)
		w := font.MeasureString(tickFace, s).Ceil()
		drawText(img, tickFace, s, px-w/2, r.Max.Y+tickLength+2+asc)
	}

	yticks, ystep := niceTicks(tr.Y0, tr.Y1, yTickTarget)
	for _, v := range yticks {
		py := int(math.Round(tr.Py(v)))
		for x := r.Min.X - tickLength; x < r.Min.X; x++ {
			img.Set(x, py, color.Black)
		}
		s := formatTick(v, ystep)
		w := font.MeasureString(tickFace, s).Ceil()
		drawText(img, tickFace, s, r.Min.X-tickLength-3-w, py+asc/2)
	}

	if a.xlabel != "" {
		w := font.MeasureString(labelFace, a.xlabel).Ceil()
		lasc := labelFace.Metrics().Ascent.Ceil()
		drawText(img, labelFace, a.xlabel, r.Min.X+(r.Dx()-w)/2, r.Max.Y+tickLength+asc+8+lasc)
	}
	if a.ylabel != "" {
		drawVerticalText(img, labelFace, a.ylabel, 4, r.Min.Y+r.Dy()/2)
	}
}

// drawText draws s with its baseline starting at (x, y).
func drawText(dst draw.Image, face font.Face, s string, x, y int) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawVerticalText draws s rotated 90° counter-clockwise, its left edge at x
// and centred vertically on cy.
func drawVerticalText(dst *image.NRGBA, face font.Face, s string, x, cy int) {
	m := face.Metrics()
	w := font.MeasureString(face, s).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	if w <= 0 || h <= 0 {
		return
	}
	flat := image.NewNRGBA(image.Rect(0, 0, w, h))
	drawText(flat, face, s, 0, m.Ascent.Ceil())

	rot := image.NewNRGBA(image.Rect(0, 0, h, w))
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			rot.SetNRGBA(sy, w-1-sx, flat.NRGBAAt(sx, sy))
		}
	}
	at := image.Rect(x, cy-w/2, x+h, cy-w/2+w)
	draw.Draw(dst, at, rot, image.Point{}, draw.Over)
}

// niceTicks returns evenly spaced round values within [lo, hi] and their step.
func niceTicks(lo, hi float64, target int) ([]float64, float64) {
	span := hi - lo
	if !(span > 0) || math.IsInf(span, 0) || target <= 0 {
		return []float64{lo}, 1
	}
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := 10 * mag
	for _, m := range []float64{1, 2, 2.5, 5} {
		if m*mag >= raw {
			step = m * mag
			break
		}
	}
	first := math.Ceil(lo/step-1e-9) * step
	var out []float64
	for i := 0; ; i++ {
		v := first + float64(i)*step
		if v > hi+step*1e-9 {
			break
		}
		out = append(out, v)
	}
	return out, step
}

// formatTick prints v with just enough decimals to tell steps apart.
func formatTick(v, step float64) string {
	if math.Abs(v) < step*1e-9 {
		v = 0
	}
	d := 0
	for scaled := step; d < 8 && math.Abs(scaled-math.Round(scaled)) > 1e-9*math.Max(1, scaled); d++ {
		scaled *= 10
	}
	return strconv.FormatFloat(v, 'f', d, 64)
}
