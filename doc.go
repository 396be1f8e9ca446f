// Package gatsby computes declarative plans for rendering a single source
// image as a responsive set of pre-sized, pre-formatted variants, and
// assembles the structured descriptor a layout-aware image component
// consumes.
//
// # Overview
//
// The package never touches pixels beyond metadata statistics: decoding,
// resizing and encoding are delegated to injected collaborators. What it
// owns is the planning and assembly logic: resolving ambiguous layout
// inputs into one aspect ratio, turning target widths into per-format
// encode requests, selecting a placeholder strategy, and deriving final
// presentation dimensions per layout mode.
//
// # Quick Start
//
//	import (
//	    "github.com/kaneshin/gatsby"
//	    "github.com/kaneshin/gatsby/resize"
//	    "github.com/kaneshin/gatsby/sizes"
//	)
//
//	p := gatsby.New(
//	    gatsby.WithResizer(resize.New(resize.WithOutputDir("public/static"))),
//	    gatsby.WithSizer(sizes.Default{}),
//	)
//
//	desc, err := p.Generate(ctx, "hero.jpg", gatsby.LayoutArgs{
//	    Layout:          gatsby.LayoutConstrained,
//	    MaxWidth:        800,
//	    SecondaryFormat: gatsby.FormatWebP,
//	})
//
// A nil descriptor with a nil error means no variants could be produced.
//
// # Architecture
//
// The pipeline is a chain of small pure stages around injected
// collaborators:
//   - MetadataResolver: header probe plus cached dominant-color statistics
//   - ResolveAspectRatio: ordered decision table over layout/fit inputs
//   - BuildPlan: target widths to VariantSpec rows
//   - placeholder synthesis: one of four strategies
//   - Assemble: encode results to the final ImageDescriptor
//
// Default collaborator implementations live in the resize and sizes
// sub-packages; production callers typically swap in their own.
package gatsby

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
