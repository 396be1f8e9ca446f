package sizes

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/kaneshin/gatsby"
)

func widthsAsInts(widths []float64) []int {
	out := make([]int, len(widths))
	for i, w := range widths {
		out[i] = int(math.Round(w))
	}
	return out
}

func TestCalculateTargetWidths_Constrained(t *testing.T) {
	meta := &gatsby.Metadata{Width: 4000, Height: 2000, Format: gatsby.FormatJPEG}
	args := gatsby.LayoutArgs{Layout: gatsby.LayoutConstrained, MaxWidth: 800}

	res, err := Default{}.CalculateTargetWidths(context.Background(), "a.jpg", args, meta)
	if err != nil {
		t.Fatalf("CalculateTargetWidths() error = %v", err)
	}

	want := []int{200, 400, 800, 1600}
	got := widthsAsInts(res.Widths)
	if len(got) != len(want) {
		t.Fatalf("widths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("widths[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if res.PresentationWidth != 800 {
		t.Errorf("PresentationWidth = %v, want 800", res.PresentationWidth)
	}
	if res.PresentationHeight != 400 {
		t.Errorf("PresentationHeight = %v, want 400", res.PresentationHeight)
	}
	if res.AspectRatio != 2 {
		t.Errorf("AspectRatio = %v, want 2", res.AspectRatio)
	}
}

func TestCalculateTargetWidths_Fixed(t *testing.T) {
	meta := &gatsby.Metadata{Width: 4000, Height: 3000, Format: gatsby.FormatJPEG}
	args := gatsby.LayoutArgs{Layout: gatsby.LayoutFixed, Width: 400}

	res, err := Default{}.CalculateTargetWidths(context.Background(), "a.jpg", args, meta)
	if err != nil {
		t.Fatalf("CalculateTargetWidths() error = %v", err)
	}

	got := widthsAsInts(res.Widths)
	if len(got) != 2 || got[0] != 400 || got[1] != 800 {
		t.Errorf("widths = %v, want [400 800] (1x and 2x)", got)
	}
}

func TestCalculateTargetWidths_CapsAtSourceWidth(t *testing.T) {
	// A 500px source cannot serve 2x of an 800px request; candidates cap
	// at the source width and deduplicate.
	meta := &gatsby.Metadata{Width: 500, Height: 500, Format: gatsby.FormatPNG}
	args := gatsby.LayoutArgs{Layout: gatsby.LayoutConstrained, MaxWidth: 800}

	res, err := Default{}.CalculateTargetWidths(context.Background(), "a.png", args, meta)
	if err != nil {
		t.Fatalf("CalculateTargetWidths() error = %v", err)
	}

	got := widthsAsInts(res.Widths)
	for i, w := range got {
		if w > 500 {
			t.Errorf("widths[%d] = %d exceeds source width 500", i, w)
		}
	}
	seen := map[int]bool{}
	for _, w := range got {
		if seen[w] {
			t.Errorf("duplicate width %d in %v", w, got)
		}
		seen[w] = true
	}

	// The (capped) presentation width must be present for the exact-match
	// primary lookup.
	if res.PresentationWidth != 500 {
		t.Errorf("PresentationWidth = %v, want 500 (capped)", res.PresentationWidth)
	}
	if !seen[500] {
		t.Errorf("widths %v do not contain the presentation width 500", got)
	}
}

func TestCalculateTargetWidths_DefaultPresentationWidth(t *testing.T) {
	meta := &gatsby.Metadata{Width: 4000, Height: 4000, Format: gatsby.FormatJPEG}

	res, err := Default{}.CalculateTargetWidths(context.Background(), "a.jpg", gatsby.LayoutArgs{Layout: gatsby.LayoutFluid}, meta)
	if err != nil {
		t.Fatalf("CalculateTargetWidths() error = %v", err)
	}
	if res.PresentationWidth != defaultPresentationWidth {
		t.Errorf("PresentationWidth = %v, want %d", res.PresentationWidth, defaultPresentationWidth)
	}
}

func TestSizesAttr(t *testing.T) {
	got := Default{}.SizesAttr(800)
	want := "(min-width: 800px) 800px, 100vw"
	if got != want {
		t.Errorf("SizesAttr(800) = %q, want %q", got, want)
	}
}

func TestSrcSet(t *testing.T) {
	images := []gatsby.EncodedImage{
		{Src: "a-200w.jpg", Width: 200},
		{Src: "a-400w.jpg", Width: 400},
		{Src: "", Width: 800}, // skipped
	}

	got := Default{}.SrcSet(images)
	if !strings.Contains(got, "a-200w.jpg 200w") || !strings.Contains(got, "a-400w.jpg 400w") {
		t.Errorf("SrcSet() = %q, missing entries", got)
	}
	if strings.Contains(got, "800w") {
		t.Errorf("SrcSet() = %q, must skip entries without a source", got)
	}
	if strings.Index(got, "200w") > strings.Index(got, "400w") {
		t.Errorf("SrcSet() = %q, order not preserved", got)
	}
}
