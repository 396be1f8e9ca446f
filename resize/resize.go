// Package resize provides a default in-process implementation of
// gatsby.Resizer built on the golang.org/x/image scalers.
//
// It mirrors the library's collaborator pattern: production deployments
// typically delegate to an image service or libvips binding, but the
// software resizer makes the pipeline fully usable out of the box and in
// tests. It decodes the source once per batch, scales each variant, and
// encodes jpeg, png or gif output; small variants are emitted as base64
// data URIs, larger ones as files under the configured output directory.
package resize

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	// Registered decoders for image.Decode (gif, jpeg and png register
	// via the named imports above).
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kaneshin/gatsby"
)

// ErrUnsupportedFormat is returned when a variant requests an output
// format the software encoder cannot produce (e.g. webp or avif).
var ErrUnsupportedFormat = errors.New("resize: unsupported output format")

// Default encoder settings.
const (
	defaultQuality         = 75
	defaultDataURIMaxWidth = 64

	// approxScaleWidth is the width at or below which the cheap
	// bilinear scaler replaces Catmull-Rom. Placeholder-sized targets
	// gain nothing from the expensive kernel.
	approxScaleWidth = 32
)

// Software is an in-process gatsby.Resizer.
// Construct with New; safe for concurrent use.
type Software struct {
	outputDir       string
	quality         int
	dataURIMaxWidth int
}

var _ gatsby.Resizer = (*Software)(nil)

// Option configures a Software resizer.
type Option func(*Software)

// WithOutputDir sets the directory variant files are written to.
// Defaults to the current directory.
func WithOutputDir(dir string) Option {
	return func(s *Software) {
		s.outputDir = dir
	}
}

// WithQuality sets the default JPEG quality (1-100) used when the request
// carries none.
func WithQuality(q int) Option {
	return func(s *Software) {
		s.quality = q
	}
}

// WithDataURIMaxWidth sets the widest variant still emitted inline as a
// base64 data URI instead of a file. Zero disables inlining.
func WithDataURIMaxWidth(w int) Option {
	return func(s *Software) {
		s.dataURIMaxWidth = w
	}
}

// New creates a Software resizer.
func New(opts ...Option) *Software {
	s := &Software{
		outputDir:       ".",
		quality:         defaultQuality,
		dataURIMaxWidth: defaultDataURIMaxWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BatchResize renders one encoded image per spec, preserving input order.
// The source is decoded once for the whole batch. Any failure aborts the
// batch; no partial result is returned.
func (s *Software) BatchResize(ctx context.Context, path string, specs []gatsby.VariantSpec, args gatsby.LayoutArgs) ([]gatsby.EncodedImage, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	src, err := decodeSource(path)
	if err != nil {
		return nil, err
	}

	out := make([]gatsby.EncodedImage, 0, len(specs))
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := s.renderVariant(src, path, spec, args)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}

// decodeSource loads and decodes the source image.
func decodeSource(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("resize: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("resize: decode: %w", err)
	}
	return img, nil
}

// renderVariant scales, encodes and materializes one variant.
func (s *Software) renderVariant(src image.Image, path string, spec gatsby.VariantSpec, args gatsby.LayoutArgs) (gatsby.EncodedImage, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return gatsby.EncodedImage{}, fmt.Errorf("resize: invalid variant %dx%d", spec.Width, spec.Height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, spec.Width, spec.Height))

	var scaler draw.Scaler = draw.CatmullRom
	if spec.Width <= approxScaleWidth {
		scaler = draw.ApproxBiLinear
	}
	scaler.Scale(dst, dst.Bounds(), src, sourceRect(src, spec, args.Fit), draw.Src, nil)

	data, err := s.encode(dst, spec.Format, args.Quality)
	if err != nil {
		return gatsby.EncodedImage{}, err
	}

	srcRef, err := s.materialize(path, spec, data)
	if err != nil {
		return gatsby.EncodedImage{}, err
	}

	return gatsby.EncodedImage{
		Src:         srcRef,
		Width:       spec.Width,
		Height:      spec.Height,
		AspectRatio: float64(spec.Width) / float64(spec.Height),
		Format:      spec.Format,
	}, nil
}

// sourceRect selects the source region for the target box. Cover and
// outside center-crop the source to the target's proportions; fill and
// the remaining modes map the whole frame.
func sourceRect(src image.Image, spec gatsby.VariantSpec, fit gatsby.Fit) image.Rectangle {
	b := src.Bounds()
	if fit != gatsby.FitCover && fit != gatsby.FitOutside {
		return b
	}

	srcRatio := float64(b.Dx()) / float64(b.Dy())
	dstRatio := float64(spec.Width) / float64(spec.Height)

	if srcRatio > dstRatio {
		// Source is wider: crop left and right.
		w := int(float64(b.Dy()) * dstRatio)
		x0 := b.Min.X + (b.Dx()-w)/2
		return image.Rect(x0, b.Min.Y, x0+w, b.Max.Y)
	}
	// Source is taller: crop top and bottom.
	h := int(float64(b.Dx()) / dstRatio)
	y0 := b.Min.Y + (b.Dy()-h)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+h)
}

// encode serializes the scaled frame in the requested format.
func (s *Software) encode(img image.Image, format gatsby.Format, quality int) ([]byte, error) {
	if quality <= 0 {
		quality = s.quality
	}

	var buf bytes.Buffer
	switch format {
	case gatsby.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("resize: encode jpeg: %w", err)
		}
	case gatsby.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("resize: encode png: %w", err)
		}
	case gatsby.FormatGIF:
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, fmt.Errorf("resize: encode gif: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return buf.Bytes(), nil
}

// materialize turns encoded bytes into a source reference: an inline data
// URI for sub-threshold widths, otherwise a file in the output directory.
func (s *Software) materialize(path string, spec gatsby.VariantSpec, data []byte) (string, error) {
	if s.dataURIMaxWidth > 0 && spec.Width <= s.dataURIMaxWidth {
		return "data:" + spec.Format.ContentType() + ";base64," +
			base64.StdEncoding.EncodeToString(data), nil
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("resize: output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := fmt.Sprintf("%s-%dw.%s", base, spec.Width, extension(spec.Format))
	out := filepath.Join(s.outputDir, name)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("resize: write %s: %w", name, err)
	}
	return filepath.ToSlash(out), nil
}

// extension maps a format to its conventional file extension.
func extension(f gatsby.Format) string {
	if f == gatsby.FormatJPEG {
		return "jpg"
	}
	return string(f)
}
