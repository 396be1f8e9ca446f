package gatsby

import (
	"context"
	"errors"
)

// synthesizePlaceholder runs the placeholder state machine. Exactly one of
// the four strategies is active per call:
//
//   - dominantColor: the resolved metadata's color becomes the
//     descriptor's background; no payload.
//   - blurred: one small encoded variant is requested from the resize
//     collaborator; its source string is the payload verbatim.
//   - tracedSVG: the vectorization collaborator's markup is the payload
//     verbatim; its failure propagates.
//   - none: neither payload nor background color.
//
// At most one of backgroundColor and the payload is populated.
func (p *Pipeline) synthesizePlaceholder(
	ctx context.Context,
	path string,
	args LayoutArgs,
	meta *Metadata,
	aspectRatio float64,
	format Format,
) (backgroundColor string, placeholder *Placeholder, err error) {
	switch args.Placeholder {
	case PlaceholderDominantColor:
		return meta.DominantColor, nil, nil

	case PlaceholderBlurred:
		w := args.Base64Width
		if w <= 0 {
			w = defaultBlurredWidth
		}
		h := args.Base64Height
		if h <= 0 {
			h = roundHalfAway(float64(w) / aspectRatio)
		}
		spec := VariantSpec{Width: w, Height: h, Format: format}

		imgs, err := p.resizer.BatchResize(ctx, path, []VariantSpec{spec}, args)
		if err != nil {
			return "", nil, &ResizeError{Path: path, Err: err}
		}
		if len(imgs) == 0 {
			return "", nil, nil
		}
		return "", &Placeholder{Kind: PlaceholderBlurred, Data: imgs[0].Src}, nil

	case PlaceholderTracedSVG:
		if p.tracer == nil {
			return "", nil, &VectorizeError{Path: path, Err: errors.New("no vectorization collaborator configured")}
		}
		svg, err := p.tracer.Trace(ctx, path, args.TraceOptions, args)
		if err != nil {
			return "", nil, &VectorizeError{Path: path, Err: err}
		}
		return "", &Placeholder{Kind: PlaceholderTracedSVG, Data: svg}, nil

	default: // PlaceholderNone
		return "", nil, nil
	}
}
