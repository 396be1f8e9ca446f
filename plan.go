package gatsby

import "math"

// VariantSpec is one row of the variant plan: a concrete
// (width, height, format) rendering target. Derived, never mutated.
type VariantSpec struct {
	Width  int
	Height int
	Format Format
}

// BuildPlan turns an ordered list of target widths into encode-request
// descriptors, one per width, preserving input order (the order later
// determines which encoded image is primary).
//
// Widths round half away from zero. The height derives from the *rounded*
// width, not the raw target, so the plan's own width list and its heights
// cannot drift apart.
func BuildPlan(targetWidths []float64, aspectRatio float64, format Format) []VariantSpec {
	specs := make([]VariantSpec, 0, len(targetWidths))
	for _, w := range targetWidths {
		rw := roundHalfAway(w)
		specs = append(specs, VariantSpec{
			Width:  rw,
			Height: roundHalfAway(float64(rw) / aspectRatio),
			Format: format,
		})
	}
	return specs
}

// roundHalfAway rounds to the nearest integer, halves away from zero.
func roundHalfAway(v float64) int {
	return int(math.Round(v))
}
