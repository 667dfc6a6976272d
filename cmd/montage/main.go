// Command montage tiles equally sized plots into one grid image.
package main

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/echoflaresat/spectrum/capture"
)

var errLayout = errors.New("invalid layout")

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <cols>x<rows> <output.png|.jpg> <tile1> <tile2> ...\n", os.Args[0])
		os.Exit(1)
	}

	cols, rows, err := parseLayout(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	output := os.Args[2]
	inputFiles := os.Args[3:]
	if len(inputFiles) > cols*rows {
		log.Fatalf("Layout %dx%d holds %d tiles, got %d", cols, rows, cols*rows, len(inputFiles))
	}

	canvas, err := montage(cols, rows, inputFiles)
	if err != nil {
		log.Fatal(err)
	}
	if err := save(output, canvas); err != nil {
		log.Fatal(err)
	}
}

// parseLayout reads "<cols>x<rows>".
func parseLayout(s string) (cols, rows int, err error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q (expected NxM)", errLayout, s)
	}
	if cols, err = strconv.Atoi(parts[0]); err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: cols in %q", errLayout, s)
	}
	if rows, err = strconv.Atoi(parts[1]); err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("%w: rows in %q", errLayout, s)
	}
	return cols, rows, nil
}

// montage draws each tile into its cell, row-major. Missing cells stay
// transparent.
func montage(cols, rows int, paths []string) (*image.NRGBA, error) {
	var canvas *image.NRGBA
	var tileW, tileH int
	for idx, path := range paths {
		slog.Info("adding tile", "path", path, "index", idx)
		tile, err := capture.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("loading tile %q: %w", path, err)
		}

		b := tile.Bounds()
		if canvas == nil {
			tileW, tileH = b.Dx(), b.Dy()
			canvas = image.NewNRGBA(image.Rect(0, 0, cols*tileW, rows*tileH))
		} else if tileW != b.Dx() || tileH != b.Dy() {
			tile.Close()
			return nil, fmt.Errorf("tile size mismatch for %q: expected %dx%d, got %dx%d",
				path, tileW, tileH, b.Dx(), b.Dy())
		}

		x := (idx % cols) * tileW
		y := (idx / cols) * tileH
		draw.Draw(canvas, image.Rect(x, y, x+tileW, y+tileH), tile, b.Min, draw.Over)
		tile.Close()
	}
	if canvas == nil {
		return nil, errors.New("no tiles")
	}
	return canvas, nil
}

func save(output string, canvas *image.NRGBA) error {
	var encode func(io.Writer, image.Image) error
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".png":
		encode = (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
		}
	default:
		return fmt.Errorf("unsupported output format: %s", ext)
	}

	slog.Info("writing montage", "path", output, "bounds", canvas.Bounds())
	outFile, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := encode(outFile, canvas); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}
