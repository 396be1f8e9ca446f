// Package probe implements source image inspection for the planning
// pipeline: a cheap header-only metadata probe, content digests for cache
// keys, and dominant-color pixel statistics.
//
// The probe understands png, jpeg and gif via the standard library and
// webp, bmp and tiff via golang.org/x/image.
package probe

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Registered decoders for image.DecodeConfig / image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info is the result of a header-only probe.
type Info struct {
	// Width and Height are the pixel dimensions.
	Width, Height int

	// Format is the decoder's format name ("png", "jpeg", ...).
	Format string

	// Density is the pixel density declared in the header ("72dpi"),
	// or empty when the format carries none.
	Density string
}

// Header probes the image header at path without decoding pixel data.
func Header(path string) (Info, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Info{}, fmt.Errorf("probe: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("probe: decode config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("probe: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}

	info := Info{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}

	// Density lives in format-specific header segments; rewind and scan.
	if _, err := f.Seek(0, io.SeekStart); err == nil {
		info.Density = headerDensity(f, format)
	}

	return info, nil
}

// Digest returns the hex SHA-1 of the file's content. Used as the
// metadata cache key: identical bytes share one statistics computation.
func Digest(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("probe: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("probe: digest: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
