package gatsby

// Option configures a Pipeline during creation.
// Use functional options to inject collaborators.
//
// Example:
//
//	p := gatsby.New(
//	    gatsby.WithResizer(resize.New(resize.WithOutputDir("public"))),
//	    gatsby.WithSizer(sizes.Default{}),
//	)
type Option func(*Pipeline)

// WithResizer sets the batch resize collaborator. Required for Generate
// and for the blurred placeholder.
func WithResizer(r Resizer) Option {
	return func(p *Pipeline) {
		p.resizer = r
	}
}

// WithSizer sets the sizing collaborator that produces target widths and
// the srcset/sizes strings. Required for Generate.
func WithSizer(s Sizer) Option {
	return func(p *Pipeline) {
		p.sizer = s
	}
}

// WithTracer sets the vectorization collaborator. Only consulted when the
// tracedSVG placeholder is requested.
func WithTracer(t Tracer) Option {
	return func(p *Pipeline) {
		p.tracer = t
	}
}

// WithMetadataResolver sets the metadata resolver, letting the caller
// control the cache's scope and lifetime. Defaults to a resolver with a
// private unlimited cache.
func WithMetadataResolver(r *MetadataResolver) Option {
	return func(p *Pipeline) {
		p.metadata = r
	}
}
