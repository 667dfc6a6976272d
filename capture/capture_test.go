package capture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// stripe builds a w×h image whose column x has gray level 255*x/(w-1).
func stripe(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(255 * x / (w - 1))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strip.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadImagePNG(t *testing.T) {
	path := writePNG(t, stripe(16, 4))
	frame, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	defer frame.Close()
	if b := frame.Bounds(); b.Dx() != 16 || b.Dy() != 4 {
		t.Fatalf("bounds %v", b)
	}
	if _, _, _, a := frame.At(15, 0).RGBA(); a != 0xffff {
		t.Fatalf("alpha %d", a)
	}
}

func TestLoadImageUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(path); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("got %v want ErrUnsupportedImage", err)
	}
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: %v", err)
	}
}

func TestProfile(t *testing.T) {
	p := Profile(stripe(5, 3))
	if len(p) != 5 {
		t.Fatalf("len %d", len(p))
	}
	if p[0] != 0 || math.Abs(p[4]-1) > 1e-9 {
		t.Fatalf("profile ends %v %v", p[0], p[4])
	}
	for i := 1; i < len(p); i++ {
		if p[i] <= p[i-1] {
			t.Fatalf("profile not increasing at %d: %v", i, p)
		}
	}
}

func TestProfileRows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 4))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	img.SetNRGBA(0, 1, white)
	img.SetNRGBA(1, 1, white)

	p, err := ProfileRows(img, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	// one lit row out of two, the other is transparent
	if math.Abs(p[0]-0.5) > 1e-9 || math.Abs(p[1]-0.5) > 1e-9 {
		t.Fatalf("band profile %v", p)
	}

	if p, err := ProfileRows(img, -10, 100); err != nil || math.Abs(p[0]-0.25) > 1e-9 {
		t.Fatalf("clamped band: %v %v", p, err)
	}
	if _, err := ProfileRows(img, 3, 3); !errors.Is(err, ErrEmptyBand) {
		t.Fatalf("got %v want ErrEmptyBand", err)
	}
}

func TestReadCSV(t *testing.T) {
	for _, tc := range []struct {
		name  string
		in    string
		wantX []float64
		wantY []float64
	}{
		{name: "single column", in: "0.1\n0.2\n0.3\n", wantY: []float64{0.1, 0.2, 0.3}},
		{name: "pairs with header", in: "nm,counts\n400, 1\n410, 2\n", wantX: []float64{400, 410}, wantY: []float64{1, 2}},
		{name: "comments", in: "# exported\n500,3\n# mid\n510,4\n", wantX: []float64{500, 510}, wantY: []float64{3, 4}},
		{name: "extra columns", in: "1,2,99\n3,4,99\n", wantX: []float64{1, 3}, wantY: []float64{2, 4}},
	} {
		x, y, err := ReadCSV(strings.NewReader(tc.in))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !equal(x, tc.wantX) || !equal(y, tc.wantY) {
			t.Fatalf("%s: got x=%v y=%v", tc.name, x, y)
		}
	}
}

func TestReadCSVErrors(t *testing.T) {
	if _, _, err := ReadCSV(strings.NewReader("# nothing\n")); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("empty: %v", err)
	}
	if _, _, err := ReadCSV(strings.NewReader("header\n")); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("header only: %v", err)
	}
	if _, _, err := ReadCSV(strings.NewReader("1,2\n3\n")); !errors.Is(err, ErrCSVShape) {
		t.Fatalf("shape: %v", err)
	}
	if _, _, err := ReadCSV(strings.NewReader("1\nabc\n")); err == nil {
		t.Fatalf("expected parse error")
	}
	// a numeric first row with a typo is an error, not a header
	if _, _, err := ReadCSV(strings.NewReader("1,abc\n2,3\n")); err == nil {
		t.Fatalf("expected parse error for a malformed first row")
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.csv")
	if err := os.WriteFile(path, []byte("450,0.5\n460,0.75\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	x, y, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(x, []float64{450, 460}) || !equal(y, []float64{0.5, 0.75}) {
		t.Fatalf("got %v %v", x, y)
	}
}

func equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
