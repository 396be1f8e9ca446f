// Package sizes provides the default sizing collaborator: breakpoint
// target widths plus srcset/sizes string synthesis.
//
// The breakpoint policy here is a reasonable general-purpose default, not
// part of the planning contract. Callers with their own policy implement
// gatsby.Sizer and inject it via gatsby.WithSizer.
package sizes

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/kaneshin/gatsby"
)

// defaultPresentationWidth applies when the request names no explicit
// width and no bounding box.
const defaultPresentationWidth = 800

// Default implements gatsby.Sizer.
//
// Breakpoints per layout: fixed targets 1x and 2x of the presentation
// width (device-pixel-ratio variants); fluid and constrained target
// quarter, half, full and double the presentation width. Candidates are
// capped at the source width (no upscaling), rounded, and deduplicated;
// the presentation width itself is always in the list.
type Default struct{}

var _ gatsby.Sizer = Default{}

// CalculateTargetWidths derives the presentation geometry and the ordered
// target-width list for the request.
func (Default) CalculateTargetWidths(_ context.Context, _ string, args gatsby.LayoutArgs, meta *gatsby.Metadata) (gatsby.SizingResult, error) {
	ratio := gatsby.ResolveAspectRatio(args, meta)

	pw := presentationWidth(args, meta, ratio)

	var candidates []float64
	if args.Layout == gatsby.LayoutFixed {
		candidates = []float64{pw, pw * 2}
	} else {
		candidates = []float64{pw / 4, pw / 2, pw, pw * 2}
	}

	maxW := float64(meta.Width)
	seen := make(map[int]bool, len(candidates))
	widths := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		if c > maxW {
			c = maxW
		}
		r := int(math.Round(c))
		if r < 1 || seen[r] {
			continue
		}
		seen[r] = true
		widths = append(widths, c)
	}

	return gatsby.SizingResult{
		Widths:             widths,
		PresentationWidth:  pw,
		PresentationHeight: math.Round(pw / ratio),
		AspectRatio:        ratio,
	}, nil
}

// presentationWidth resolves the width the image will be presented at,
// capped at the source width.
func presentationWidth(args gatsby.LayoutArgs, meta *gatsby.Metadata, ratio float64) float64 {
	var pw float64
	if args.Layout == gatsby.LayoutFixed {
		switch {
		case args.Width > 0:
			pw = float64(args.Width)
		case args.Height > 0:
			pw = math.Round(float64(args.Height) * ratio)
		default:
			pw = float64(meta.Width)
		}
	} else {
		if args.MaxWidth > 0 {
			pw = float64(args.MaxWidth)
		} else {
			pw = defaultPresentationWidth
		}
	}

	if pw > float64(meta.Width) {
		pw = float64(meta.Width)
	}
	if pw < 1 {
		pw = 1
	}
	return pw
}

// SizesAttr synthesizes a CSS sizes attribute for the presentation width.
func (Default) SizesAttr(presentationWidth float64) string {
	w := int(math.Round(presentationWidth))
	return fmt.Sprintf("(min-width: %dpx) %dpx, 100vw", w, w)
}

// SrcSet synthesizes the srcset string, one "url Nw" entry per encoded
// image, in input order.
func (Default) SrcSet(images []gatsby.EncodedImage) string {
	parts := make([]string, 0, len(images))
	for _, img := range images {
		if img.Src == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %dw", img.Src, img.Width))
	}
	return strings.Join(parts, ",\n")
}
