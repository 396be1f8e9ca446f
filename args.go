package gatsby

import (
	"fmt"
	"strings"
)

// Layout selects how the final image occupies space in the page.
type Layout int

const (
	// LayoutFixed renders the image at an exact pixel size.
	LayoutFixed Layout = iota

	// LayoutFluid renders the image at a percentage of its container,
	// with unitless 1 x 1/aspectRatio dimensions scaled via CSS.
	LayoutFluid

	// LayoutConstrained renders the image fluidly up to a maximum width.
	LayoutConstrained
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutFixed:
		return "fixed"
	case LayoutFluid:
		return "fluid"
	case LayoutConstrained:
		return "constrained"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so descriptors serialize
// with layout names instead of numbers.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseLayout parses a layout name. The empty string maps to the default
// (fixed).
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "", "fixed":
		return LayoutFixed, nil
	case "fluid":
		return LayoutFluid, nil
	case "constrained":
		return LayoutConstrained, nil
	default:
		return 0, fmt.Errorf("gatsby: unknown layout %q", s)
	}
}

// Fit selects how the source maps into the requested box when width and
// height are independently constrained.
type Fit int

const (
	// FitCover crops the image to fill the box (default).
	FitCover Fit = iota

	// FitContain letterboxes the image inside the box.
	FitContain

	// FitFill stretches the image to the box, ignoring proportions.
	FitFill

	// FitInside scales down preserving proportions so the image fits
	// entirely inside the box.
	FitInside

	// FitOutside scales preserving proportions so the image covers the
	// box entirely, possibly exceeding it.
	FitOutside
)

// String returns the fit mode name.
func (f Fit) String() string {
	switch f {
	case FitCover:
		return "cover"
	case FitContain:
		return "contain"
	case FitFill:
		return "fill"
	case FitInside:
		return "inside"
	case FitOutside:
		return "outside"
	default:
		return "unknown"
	}
}

// ParseFit parses a fit mode name. The empty string maps to the default
// (cover).
func ParseFit(s string) (Fit, error) {
	switch strings.ToLower(s) {
	case "", "cover":
		return FitCover, nil
	case "contain":
		return FitContain, nil
	case "fill":
		return FitFill, nil
	case "inside":
		return FitInside, nil
	case "outside":
		return FitOutside, nil
	default:
		return 0, fmt.Errorf("gatsby: unknown fit mode %q", s)
	}
}

// preservesSourceRatio reports whether the fit mode keeps the source
// proportions regardless of any explicit dimensions.
func (f Fit) preservesSourceRatio() bool {
	return f == FitInside || f == FitOutside
}

// PlaceholderKind selects the placeholder strategy.
type PlaceholderKind int

const (
	// PlaceholderDominantColor surfaces the source's dominant color as a
	// flat background (default).
	PlaceholderDominantColor PlaceholderKind = iota

	// PlaceholderBlurred embeds a tiny encoded variant, typically as a
	// base64 data URI, to be blurred up by the consumer.
	PlaceholderBlurred

	// PlaceholderTracedSVG embeds a traced vector outline of the image.
	PlaceholderTracedSVG

	// PlaceholderNone produces no placeholder and no background color.
	PlaceholderNone
)

// String returns the placeholder strategy name.
func (p PlaceholderKind) String() string {
	switch p {
	case PlaceholderDominantColor:
		return "dominantColor"
	case PlaceholderBlurred:
		return "blurred"
	case PlaceholderTracedSVG:
		return "tracedSVG"
	case PlaceholderNone:
		return "none"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p PlaceholderKind) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParsePlaceholder parses a placeholder strategy name. The empty string
// maps to the default (dominantColor).
func ParsePlaceholder(s string) (PlaceholderKind, error) {
	switch s {
	case "", "dominantColor":
		return PlaceholderDominantColor, nil
	case "blurred":
		return PlaceholderBlurred, nil
	case "tracedSVG":
		return PlaceholderTracedSVG, nil
	case "none":
		return PlaceholderNone, nil
	default:
		return 0, fmt.Errorf("gatsby: unknown placeholder strategy %q", s)
	}
}

// Format identifies an image encoding. The set is open: collaborators may
// understand formats this package has no constant for.
type Format string

// Well-known formats.
const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
	FormatWebP Format = "webp"
	FormatAVIF Format = "avif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ContentType returns the MIME type for the format, e.g. "image/webp".
func (f Format) ContentType() string {
	if f == "" {
		return ""
	}
	return "image/" + string(f)
}

// defaultBlurredWidth is the target width of the blurred placeholder
// variant when no explicit override is given.
const defaultBlurredWidth = 20

// LayoutArgs is the caller's request: layout mode, placeholder strategy,
// explicit dimensions and formats. The zero value is a valid request
// (fixed layout, cover fit, dominantColor placeholder, source format).
//
// LayoutArgs is a value object; the pipeline never mutates it.
type LayoutArgs struct {
	Layout      Layout
	Placeholder PlaceholderKind
	Fit         Fit

	// Explicit presentation dimensions (fixed layout).
	Width  int
	Height int

	// Bounding box (fluid/constrained layouts).
	MaxWidth  int
	MaxHeight int

	// Format is the primary output format. Empty means the source's
	// intrinsic format.
	Format Format

	// SecondaryFormat, when non-empty, requests an additional source-set
	// in a second format (e.g. webp alongside jpeg).
	SecondaryFormat Format

	// Base64Width/Base64Height override the blurred placeholder's
	// variant dimensions.
	Base64Width  int
	Base64Height int

	// Quality is an encoder hint, passed through to the resize
	// collaborator. Zero means the collaborator's default.
	Quality int

	// TraceOptions is handed verbatim to the vectorization collaborator.
	TraceOptions map[string]any

	// Extra is the opaque pass-through bag for format-specific options
	// this package does not interpret.
	Extra map[string]any
}
