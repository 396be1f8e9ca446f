package gatsby

// ResolveAspectRatio maps the caller's layout arguments and the source's
// intrinsic metadata to the single aspect ratio the variant plan is built
// against. Pure ordered decision table; first match wins:
//
//  1. fit inside/outside preserve source proportions by definition, so
//     explicit dimensions are ignored.
//  2. fixed layout with both width and height is an explicit contract from
//     the caller and wins over source proportions.
//  3. non-fixed layouts treat maxWidth/maxHeight as a bounding box whose
//     own ratio matters only when both are given.
//  4. otherwise the source's proportions.
func ResolveAspectRatio(args LayoutArgs, meta *Metadata) float64 {
	source := float64(meta.Width) / float64(meta.Height)

	if args.Fit.preservesSourceRatio() {
		return source
	}
	if args.Layout == LayoutFixed && args.Width > 0 && args.Height > 0 {
		return float64(args.Width) / float64(args.Height)
	}
	if args.Layout != LayoutFixed && args.MaxWidth > 0 && args.MaxHeight > 0 {
		return float64(args.MaxWidth) / float64(args.MaxHeight)
	}
	return source
}
