package probe

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

const (
	// maxStatDim caps the statistics frame size. Dominant color is a
	// perceptual aggregate; a 64px thumbnail is indistinguishable from
	// the full frame and bounds the histogram pass.
	maxStatDim = 64

	// bucketBits quantizes each channel for histogram bucketing.
	bucketBits = 4

	// alphaFloor excludes near-transparent pixels from statistics.
	alphaFloor = 16
)

// DominantColor decodes the image at path and returns its dominant color.
// ok is false when the image has no opaque pixels to aggregate (the caller
// applies its documented fallback).
func DominantColor(path string) (r, g, b uint8, ok bool, err error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, 0, 0, false, fmt.Errorf("probe: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	src, _, err := image.Decode(f)
	if err != nil {
		return 0, 0, 0, false, fmt.Errorf("probe: decode: %w", err)
	}

	frame := statFrame(src)
	r, g, b, ok = dominantOf(frame)
	return r, g, b, ok, nil
}

// statFrame downscales src to at most maxStatDim on its longer side,
// normalized to RGBA. Small images are converted without scaling.
func statFrame(src image.Image) *image.RGBA {
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()

	if w <= maxStatDim && h <= maxStatDim {
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Copy(out, image.Point{}, src, sb, draw.Src, nil)
		return out
	}

	if w >= h {
		h = h * maxStatDim / w
		w = maxStatDim
	} else {
		w = w * maxStatDim / h
		h = maxStatDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), src, sb, draw.Src, nil)
	return out
}

// dominantOf histograms the frame into quantized buckets and averages the
// most populated bucket's members.
func dominantOf(frame *image.RGBA) (r, g, b uint8, ok bool) {
	const buckets = 1 << (3 * bucketBits)
	shift := uint(8 - bucketBits)

	var (
		count [buckets]uint32
		sumR  [buckets]uint64
		sumG  [buckets]uint64
		sumB  [buckets]uint64
	)

	pix := frame.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i+3] < alphaFloor {
			continue
		}
		pr, pg, pb := pix[i], pix[i+1], pix[i+2]
		idx := (uint32(pr>>shift) << (2 * bucketBits)) |
			(uint32(pg>>shift) << bucketBits) |
			uint32(pb>>shift)
		count[idx]++
		sumR[idx] += uint64(pr)
		sumG[idx] += uint64(pg)
		sumB[idx] += uint64(pb)
	}

	var best int
	var bestCount uint32
	for i, c := range count {
		if c > bestCount {
			best = i
			bestCount = c
		}
	}
	if bestCount == 0 {
		return 0, 0, 0, false
	}

	n := uint64(bestCount)
	return uint8(sumR[best] / n), uint8(sumG[best] / n), uint8(sumB[best] / n), true
}
