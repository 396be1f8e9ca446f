package gatsby

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// SizingResult is the sizing collaborator's answer: which widths to
// target and the presentation geometry they were derived from.
type SizingResult struct {
	// Widths is the ordered list of target widths. Order is preserved
	// through planning and encoding.
	Widths []float64

	PresentationWidth  float64
	PresentationHeight float64
	AspectRatio        float64
}

// Sizer is the external sizing collaborator: it owns the breakpoint-width
// algorithm and the srcset/sizes string synthesis.
type Sizer interface {
	// CalculateTargetWidths turns the request into an ordered width list
	// and the presentation geometry.
	CalculateTargetWidths(ctx context.Context, path string, args LayoutArgs, meta *Metadata) (SizingResult, error)

	// SizesAttr synthesizes the CSS sizes attribute for the
	// presentation width.
	SizesAttr(presentationWidth float64) string

	// SrcSet synthesizes the srcset string for a list of encoded images.
	SrcSet(images []EncodedImage) string
}

// Resizer is the external image-resizing collaborator. BatchResize must
// return exactly one result per input spec, in input order; that ordering
// is a contractual requirement, not something this package re-checks.
type Resizer interface {
	BatchResize(ctx context.Context, path string, specs []VariantSpec, args LayoutArgs) ([]EncodedImage, error)
}

// Tracer is the external vectorization collaborator for the tracedSVG
// placeholder.
type Tracer interface {
	Trace(ctx context.Context, path string, traceOptions map[string]any, args LayoutArgs) (string, error)
}

// Pipeline wires the resolvers, the plan builder and the assembler to the
// injected collaborators. Construct with New; safe for concurrent use
// (the only shared mutable state is the metadata cache).
type Pipeline struct {
	resizer  Resizer
	sizer    Sizer
	tracer   Tracer
	metadata *MetadataResolver
}

// New creates a Pipeline. Resizer and Sizer collaborators must be
// injected via options before Generate is called; the metadata resolver
// defaults to one with a private unlimited cache.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.metadata == nil {
		p.metadata = NewMetadataResolver(nil)
	}
	return p
}

// Generate computes the full image descriptor for the source at path.
//
// Control flow: metadata -> aspect ratio -> variant plan -> batch resize,
// with the secondary-format encode and the placeholder synthesis running
// as independent tasks joined before assembly. Sequential execution would
// be equally correct; the concurrency is a performance option.
//
// Any collaborator failure aborts the whole call: no partial descriptor
// is ever returned. A nil descriptor with a nil error means the sizing
// collaborator produced no encodable variants, which is a defined
// no-result outcome.
func (p *Pipeline) Generate(ctx context.Context, path string, args LayoutArgs) (*ImageDescriptor, error) {
	if p.resizer == nil {
		return nil, errors.New("gatsby: no resize collaborator configured")
	}
	if p.sizer == nil {
		return nil, errors.New("gatsby: no sizing collaborator configured")
	}

	needDominant := args.Placeholder == PlaceholderDominantColor
	meta, err := p.metadata.Resolve(path, needDominant)
	if err != nil {
		return nil, err
	}

	sizing, err := p.sizer.CalculateTargetWidths(ctx, path, args, meta)
	if err != nil {
		return nil, err
	}

	ratio := ResolveAspectRatio(args, meta)
	primaryFormat := args.Format
	if primaryFormat == "" {
		primaryFormat = meta.Format
	}

	plan := BuildPlan(sizing.Widths, ratio, primaryFormat)
	Logger().Debug("variant plan built",
		"path", path,
		"layout", args.Layout.String(),
		"format", string(primaryFormat),
		"variants", len(plan),
	)

	var (
		encoded         []EncodedImage
		secondary       []EncodedImage
		backgroundColor string
		placeholder     *Placeholder
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		imgs, err := p.resizer.BatchResize(gctx, path, plan, args)
		if err != nil {
			return &ResizeError{Path: path, Err: err}
		}
		encoded = imgs
		return nil
	})

	secondaryFormat := args.SecondaryFormat
	if secondaryFormat != "" && secondaryFormat != primaryFormat {
		secondaryPlan := BuildPlan(sizing.Widths, ratio, secondaryFormat)
		g.Go(func() error {
			imgs, err := p.resizer.BatchResize(gctx, path, secondaryPlan, args)
			if err != nil {
				return &ResizeError{Path: path, Err: err}
			}
			secondary = imgs
			return nil
		})
	}

	g.Go(func() error {
		bg, ph, err := p.synthesizePlaceholder(gctx, path, args, meta, ratio, primaryFormat)
		if err != nil {
			return err
		}
		backgroundColor, placeholder = bg, ph
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sizesAttr := p.sizer.SizesAttr(sizing.PresentationWidth)
	srcSet := p.sizer.SrcSet(encoded)

	var sources []Source
	if secondary != nil {
		sources = append(sources, Source{
			SrcSet: p.sizer.SrcSet(secondary),
			Type:   secondaryFormat.ContentType(),
			Sizes:  sizesAttr,
		})
	}

	return Assemble(
		args.Layout,
		encoded,
		sizing.PresentationWidth,
		srcSet,
		sizesAttr,
		sources,
		placeholder,
		backgroundColor,
		args.MaxWidth,
	), nil
}
