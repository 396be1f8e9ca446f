package gatsby

import (
	"fmt"

	"github.com/kaneshin/gatsby/cache"
	"github.com/kaneshin/gatsby/internal/probe"
)

// Metadata holds the intrinsic properties of a source image.
// Immutable once resolved: Width and Height are strictly positive and
// Format is non-empty on any successfully resolved record.
type Metadata struct {
	Width  int
	Height int
	Format Format

	// Density is the header-declared pixel density ("72dpi"), when the
	// format carries one.
	Density string

	// DominantColor is a 6-digit hex color ("#rrggbb"). Populated only
	// when the record was resolved with dominant-color statistics.
	DominantColor string
}

// fallbackDominantColor is used when pixel statistics cannot produce a
// dominant color (e.g. a fully transparent image).
const fallbackDominantColor = "#000000"

// RGBToHex converts an RGB triple to a 6-digit hex string, e.g. "#ff8800".
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// MetadataCache is the cache type injected into a MetadataResolver,
// keyed by content digest.
type MetadataCache = cache.Cache[string, *Metadata]

// MetadataResolver resolves image metadata with a memoized slow path for
// dominant-color statistics. The cache is caller-owned and session-scoped;
// the resolver itself holds no other state.
type MetadataResolver struct {
	cache          *MetadataCache
	forceRecompute bool
}

// MetadataResolverOption configures a MetadataResolver.
type MetadataResolverOption func(*MetadataResolver)

// ForceRecompute bypasses the cache's short-circuit on hit, recomputing
// statistics on every call. Intended for deterministic tests.
func ForceRecompute() MetadataResolverOption {
	return func(r *MetadataResolver) {
		r.forceRecompute = true
	}
}

// NewMetadataResolver creates a resolver backed by the given cache.
// A nil cache is replaced with an unlimited private one.
func NewMetadataResolver(c *MetadataCache, opts ...MetadataResolverOption) *MetadataResolver {
	r := &MetadataResolver{cache: c}
	if r.cache == nil {
		r.cache = cache.New[string, *Metadata](0)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve probes the image at path.
//
// With needDominantColor false it performs only the cheap header probe:
// width, height, format, density. No caching: the probe reads a few
// hundred bytes.
//
// With needDominantColor true it consults the content-digest cache, and on
// miss decodes the pixels, computes the dominant color and stores the
// record before returning. A probe failure yields a *DecodeError.
func (r *MetadataResolver) Resolve(path string, needDominantColor bool) (*Metadata, error) {
	if !needDominantColor {
		return r.probeHeader(path)
	}

	digest, err := probe.Digest(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	if !r.forceRecompute {
		if m, ok := r.cache.Get(digest); ok {
			Logger().Debug("metadata cache hit", "path", path, "digest", digest)
			return m, nil
		}
	}

	m, err := r.computeFull(path)
	if err != nil {
		return nil, err
	}

	if r.forceRecompute {
		r.cache.Set(digest, m)
		return m, nil
	}

	// Insert-if-absent: a concurrent resolver may have stored the record
	// first; return the stored one so callers share a single object.
	return r.cache.GetOrCreate(digest, func() *Metadata { return m }), nil
}

// probeHeader performs the header-only fast path.
func (r *MetadataResolver) probeHeader(path string) (*Metadata, error) {
	info, err := probe.Header(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &Metadata{
		Width:   info.Width,
		Height:  info.Height,
		Format:  Format(info.Format),
		Density: info.Density,
	}, nil
}

// computeFull probes the header and runs pixel statistics.
func (r *MetadataResolver) computeFull(path string) (*Metadata, error) {
	m, err := r.probeHeader(path)
	if err != nil {
		return nil, err
	}

	cr, cg, cb, ok, err := probe.DominantColor(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if !ok {
		Logger().Warn("dominant color unavailable, using fallback", "path", path)
		m.DominantColor = fallbackDominantColor
		return m, nil
	}

	m.DominantColor = RGBToHex(cr, cg, cb)
	return m, nil
}
