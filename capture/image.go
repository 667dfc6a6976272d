// Package capture turns files into spectra: photographs of a spectrometer
// strip and CSV intensity tables.
package capture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG format with image.Decode
	_ "image/png"  // register PNG format with image.Decode
	"io"
	"log/slog"
	"os"

	"github.com/echoflaresat/spectrum/colors"
	"github.com/echoflaresat/tiff"
	_ "golang.org/x/image/bmp" // register BMP format with image.Decode
)

var (
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrEmptyBand        = errors.New("row band is empty")
)

// Frame is a decoded image together with its open file. TIFF frames may
// read pixels lazily, so the frame must stay open while it is sampled.
type Frame struct {
	image.Image
	file *os.File
}

// Close releases the underlying file.
func (f *Frame) Close() error {
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

// LoadImage decodes path, trying TIFF first and then the registered codecs
// (PNG, JPEG, BMP).
func LoadImage(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	img, err := tiff.Decode(f)
	if err == nil {
		return &Frame{Image: img, file: f}, nil
	}
	slog.Debug("not a TIFF, falling back to image codecs", "path", path, "error", err)

	// fallback to image codecs
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	img, format, err := image.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w: %v", path, ErrUnsupportedImage, err)
	}
	slog.Debug("decoded image", "path", path, "format", format, "bounds", img.Bounds())
	return &Frame{Image: img, file: f}, nil
}

// Profile averages the Rec.709 luminance of every column, turning an image
// of a dispersed spectrum into one intensity sample per column.
func Profile(img image.Image) []float64 {
	b := img.Bounds()
	p, _ := ProfileRows(img, b.Min.Y, b.Max.Y)
	return p
}

// ProfileRows is Profile restricted to rows [y0, y1), clamped to the image.
// Transparent pixels count as dark.
func ProfileRows(img image.Image, y0, y1 int) ([]float64, error) {
	b := img.Bounds()
	y0, y1 = max(y0, b.Min.Y), min(y1, b.Max.Y)
	if y1 <= y0 || b.Dx() == 0 {
		return nil, fmt.Errorf("rows [%d,%d) of %v: %w", y0, y1, b, ErrEmptyBand)
	}

	out := make([]float64, b.Dx())
	for x := b.Min.X; x < b.Max.X; x++ {
		sum := 0.0
		for y := y0; y < y1; y++ {
			c := colors.FromStandardColor(img.At(x, y))
			sum += c.Luminance() * c.A
		}
		out[x-b.Min.X] = sum / float64(y1-y0)
	}
	return out, nil
}
