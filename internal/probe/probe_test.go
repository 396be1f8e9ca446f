package probe

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// writeImage encodes a solid-color image into dir and returns its path.
func writeImage(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer func() { _ = f.Close() }()

	switch filepath.Ext(name) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg":
		err = jpeg.Encode(f, img, nil)
	case ".gif":
		err = gif.Encode(f, img, nil)
	default:
		t.Fatalf("unsupported test extension %s", name)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return path
}

func TestHeader_Formats(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		file       string
		wantFormat string
	}{
		{"png", "a.png", "png"},
		{"jpeg", "a.jpg", "jpeg"},
		{"gif", "a.gif", "gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, dir, tt.file, 30, 20, color.RGBA{R: 255, A: 255})

			info, err := Header(path)
			if err != nil {
				t.Fatalf("Header() error = %v", err)
			}
			if info.Width != 30 || info.Height != 20 {
				t.Errorf("Header() = %dx%d, want 30x20", info.Width, info.Height)
			}
			if info.Format != tt.wantFormat {
				t.Errorf("Header() format = %q, want %q", info.Format, tt.wantFormat)
			}
		})
	}
}

func TestHeader_MissingFile(t *testing.T) {
	_, err := Header(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("Header() on missing file returned nil error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Header() error = %v, want wrapped fs.ErrNotExist", err)
	}
}

func TestHeader_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Header(path); err == nil {
		t.Error("Header() on corrupt file returned nil error")
	}
}

func TestDigest_Stable(t *testing.T) {
	dir := t.TempDir()
	a := writeImage(t, dir, "a.png", 10, 10, color.RGBA{R: 255, A: 255})
	b := writeImage(t, dir, "b.png", 10, 10, color.RGBA{R: 255, A: 255})
	c := writeImage(t, dir, "c.png", 10, 10, color.RGBA{G: 255, A: 255})

	da, err := Digest(a)
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}
	db, _ := Digest(b)
	dc, _ := Digest(c)

	if da != db {
		t.Error("identical content produced different digests")
	}
	if da == dc {
		t.Error("different content produced equal digests")
	}
	if len(da) != 40 {
		t.Errorf("digest length = %d, want 40 hex chars", len(da))
	}
}

func TestDominantColor_Solid(t *testing.T) {
	path := writeImage(t, t.TempDir(), "red.png", 40, 40, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	r, g, b, ok, err := DominantColor(path)
	if err != nil {
		t.Fatalf("DominantColor() error = %v", err)
	}
	if !ok {
		t.Fatal("DominantColor() ok = false for opaque image")
	}
	if r != 200 || g != 10 || b != 10 {
		t.Errorf("DominantColor() = (%d, %d, %d), want (200, 10, 10)", r, g, b)
	}
}

func TestDominantColor_Majority(t *testing.T) {
	// Two-color image: 3/4 blue, 1/4 white. Dominant must be blue.
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	blue := color.RGBA{B: 230, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x < 10 {
				img.Set(x, y, white)
			} else {
				img.Set(x, y, blue)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "split.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	r, g, b, ok, err := DominantColor(path)
	if err != nil || !ok {
		t.Fatalf("DominantColor() = ok %v, err %v", ok, err)
	}
	if b < 200 || r > 60 || g > 60 {
		t.Errorf("DominantColor() = (%d, %d, %d), want blue-dominant", r, g, b)
	}
}

func TestDominantColor_Transparent(t *testing.T) {
	path := writeImage(t, t.TempDir(), "clear.png", 16, 16, color.RGBA{})

	_, _, _, ok, err := DominantColor(path)
	if err != nil {
		t.Fatalf("DominantColor() error = %v", err)
	}
	if ok {
		t.Error("DominantColor() ok = true for fully transparent image")
	}
}

func TestStatFrame_Downscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 640, 320))
	frame := statFrame(src)

	b := frame.Bounds()
	if b.Dx() != maxStatDim || b.Dy() != maxStatDim/2 {
		t.Errorf("statFrame() = %dx%d, want %dx%d", b.Dx(), b.Dy(), maxStatDim, maxStatDim/2)
	}
}
