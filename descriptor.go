package gatsby

import "math"

// EncodedImage is the resize collaborator's output for one VariantSpec.
// Results are order-preserving with the plan that produced them.
type EncodedImage struct {
	Src         string  `json:"src"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspectRatio"`
	Format      Format  `json:"format"`
}

// Placeholder is the lightweight stand-in payload. Kind selects the
// strategy; Data holds the blurred variant's source string or the traced
// SVG markup. The dominantColor strategy carries no payload (it surfaces
// as the descriptor's BackgroundColor instead).
type Placeholder struct {
	Kind PlaceholderKind `json:"kind"`
	Data string          `json:"data,omitempty"`
}

// FallbackImage is the primary-format entry of the descriptor's source set.
type FallbackImage struct {
	Src    string `json:"src"`
	SrcSet string `json:"srcSet"`
	Sizes  string `json:"sizes"`
}

// Source is one secondary-format entry of the descriptor's source set.
type Source struct {
	SrcSet string `json:"srcSet"`
	Type   string `json:"type"`
	Sizes  string `json:"sizes"`
}

// ImageSet groups the fallback entry with secondary-format sources.
type ImageSet struct {
	Fallback FallbackImage `json:"fallback"`
	Sources  []Source      `json:"sources,omitempty"`
}

// ImageDescriptor is the final output consumed by a layout-aware image
// component. Produced once per call; never mutated afterwards. A nil
// descriptor means no variants could be produced.
type ImageDescriptor struct {
	Layout          Layout       `json:"layout"`
	Width           float64      `json:"width"`
	Height          float64      `json:"height"`
	BackgroundColor string       `json:"backgroundColor,omitempty"`
	Placeholder     *Placeholder `json:"placeholder,omitempty"`
	Images          ImageSet     `json:"images"`
}

// Assemble combines resolved encode results into the final descriptor.
//
// Returns nil when encoded is empty: a caller with zero resolvable
// variants cannot produce a usable image, and that is a defined no-result
// outcome, not an error.
//
// The primary variant is the encoded image whose width exactly equals the
// rounded presentation width. There is deliberately no nearest-match
// fallback: an unmatched presentation width leaves the fallback Src empty,
// which signals a configuration bug in the caller's width list rather
// than being silently approximated.
//
// Final dimensions per layout:
//   - fixed: the primary's encoded pixel size, identity.
//   - fluid: 1 x 1/aspectRatio, intentionally unitless; the consumer
//     scales via CSS.
//   - constrained: maxWidth when given, else the primary width, else 1;
//     height follows the aspect ratio.
func Assemble(
	layout Layout,
	encoded []EncodedImage,
	presentationWidth float64,
	srcSet, sizesAttr string,
	sources []Source,
	placeholder *Placeholder,
	backgroundColor string,
	maxWidth int,
) *ImageDescriptor {
	if len(encoded) == 0 {
		return nil
	}

	target := int(math.Round(presentationWidth))
	var primary EncodedImage
	for _, img := range encoded {
		if img.Width == target {
			primary = img
			break
		}
	}

	// Unreported aspect ratio defaults to 1 so height derivation never
	// divides by zero.
	ratio := primary.AspectRatio
	if ratio <= 0 {
		ratio = 1
	}

	desc := &ImageDescriptor{
		Layout:          layout,
		BackgroundColor: backgroundColor,
		Placeholder:     placeholder,
		Images: ImageSet{
			Fallback: FallbackImage{
				Src:    primary.Src,
				SrcSet: srcSet,
				Sizes:  sizesAttr,
			},
			Sources: sources,
		},
	}

	switch layout {
	case LayoutFixed:
		desc.Width = float64(primary.Width)
		desc.Height = float64(primary.Height)
	case LayoutFluid:
		desc.Width = 1
		desc.Height = 1 / ratio
	case LayoutConstrained:
		switch {
		case maxWidth > 0:
			desc.Width = float64(maxWidth)
		case primary.Width > 0:
			desc.Width = float64(primary.Width)
		default:
			desc.Width = 1
		}
		desc.Height = desc.Width / ratio
	}

	return desc
}
