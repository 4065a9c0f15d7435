/*
DESCRIPTION
  similar.go provides gray frame similarity used to suppress near-duplicate
  keyframes.

AUTHORS
  Trek Hopton <trek@ausocean.org>
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vision

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"
)

// DefaultSimilarity is the kernel's default similarity threshold. The
// extractor applies a stricter threshold at commit time.
const DefaultSimilarity = 0.75

// FramesSimilar reports whether two gray frames look alike: the mean of
// their 32-bin histogram correlation and the normalised cross-correlation of
// 32x32 thumbnails, compared against the threshold. Pairs that cannot be
// correlated (flat planes) are not considered similar.
func FramesSimilar(g1, g2 Gray, threshold float64) bool {
	if len(g1.Pix) == 0 || len(g2.Pix) == 0 {
		return false
	}
	h := HistCorrel(Hist1D(g1, 32), Hist1D(g2, 32))
	t := normXCorr(resizeGray32(g1), resizeGray32(g2))
	sim := 0.5*h + 0.5*t
	if math.IsNaN(sim) {
		return false
	}
	return sim > threshold
}

// resizeGray32 scales a gray plane to a 32x32 thumbnail with bilinear
// interpolation.
func resizeGray32(g Gray) Gray {
	src := &image.Gray{Pix: g.Pix, Stride: g.W, Rect: image.Rect(0, 0, g.W, g.H)}
	dst := image.NewGray(image.Rect(0, 0, 32, 32))
	draw.BiLinear.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return Gray{Pix: dst.Pix, W: 32, H: 32}
}

// normXCorr is the normalised cross-correlation coefficient of two equal
// size patches, which for whole patches reduces to Pearson correlation.
func normXCorr(a, b Gray) float64 {
	if len(a.Pix) != len(b.Pix) {
		return math.NaN()
	}
	x := make([]float64, len(a.Pix))
	y := make([]float64, len(b.Pix))
	for i := range a.Pix {
		x[i] = float64(a.Pix[i])
		y[i] = float64(b.Pix[i])
	}
	return stat.Correlation(x, y, nil)
}
