/*
DESCRIPTION
  ops.go provides the pixel level operations the scoring kernels are built
  from: grayscale conversion, separable Gaussian blur, histograms and their
  correlation, absolute difference and area resampling.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vision

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ToGray converts a BGR image to a single gray plane using the Rec.601 luma
// coefficients.
func ToGray(m Image) Gray {
	g := NewGray(m.W, m.H)
	for i := 0; i < m.W*m.H; i++ {
		b := float64(m.Pix[3*i])
		gr := float64(m.Pix[3*i+1])
		r := float64(m.Pix[3*i+2])
		g.Pix[i] = uint8(0.114*b + 0.587*gr + 0.299*r + 0.5)
	}
	return g
}

// gauss5 is the normalised 5-tap Gaussian kernel for sigma 1.0.
var gauss5 = [5]float32{0.054488685, 0.24420134, 0.40261996, 0.24420134, 0.054488685}

// reflect101 mirrors an out of range coordinate about the edge pixel.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	if i < 0 {
		return -i
	}
	if i >= n {
		return 2*n - 2 - i
	}
	return i
}

// gaussianBlur5 applies a separable 5x5 Gaussian (sigma 1.0) to a float
// plane with reflected borders.
func gaussianBlur5(src plane) plane {
	tmp := newPlane(src.w, src.h)
	dst := newPlane(src.w, src.h)
	for y := 0; y < src.h; y++ {
		row := y * src.w
		for x := 0; x < src.w; x++ {
			var s float32
			for k := -2; k <= 2; k++ {
				s += gauss5[k+2] * src.pix[row+reflect101(x+k, src.w)]
			}
			tmp.pix[row+x] = s
		}
	}
	for y := 0; y < src.h; y++ {
		for x := 0; x < src.w; x++ {
			var s float32
			for k := -2; k <= 2; k++ {
				s += gauss5[k+2] * tmp.pix[reflect101(y+k, src.h)*src.w+x]
			}
			dst.pix[y*src.w+x] = s
		}
	}
	return dst
}

// Hist3D computes a joint 32x32x32 histogram over the B, G and R channels.
func Hist3D(m Image) []float64 {
	h := make([]float64, 32*32*32)
	for i := 0; i < m.W*m.H; i++ {
		b := int(m.Pix[3*i]) >> 3
		g := int(m.Pix[3*i+1]) >> 3
		r := int(m.Pix[3*i+2]) >> 3
		h[(b<<10)|(g<<5)|r]++
	}
	return h
}

// Hist1D computes a histogram of a gray plane with the given number of bins
// over the range [0,256).
func Hist1D(g Gray, bins int) []float64 {
	h := make([]float64, bins)
	for _, v := range g.Pix {
		h[int(v)*bins/256]++
	}
	return h
}

// HistCorrel compares two histograms using Pearson correlation, the standard
// histogram correlation comparator. The result is in [-1,1]. Identical
// histograms give 1 even when they have zero spread; otherwise the result is
// NaN when either histogram has zero spread.
func HistCorrel(h1, h2 []float64) float64 {
	if len(h1) != len(h2) {
		return math.NaN()
	}
	c := stat.Correlation(h1, h2, nil)
	if !math.IsNaN(c) {
		return c
	}
	for i := range h1 {
		if h1[i] != h2[i] {
			return c
		}
	}
	return 1
}

// AbsDiff returns the per-pixel absolute difference of two equal size gray
// planes.
func AbsDiff(a, b Gray) Gray {
	d := NewGray(a.W, a.H)
	for i := range a.Pix {
		v := int(a.Pix[i]) - int(b.Pix[i])
		if v < 0 {
			v = -v
		}
		d.Pix[i] = uint8(v)
	}
	return d
}

// meanAbsDiff returns the mean absolute per-pixel difference of two equal
// size gray planes without materialising the difference plane.
func meanAbsDiff(a, b Gray) float64 {
	if a.W != b.W || a.H != b.H || len(a.Pix) == 0 {
		return math.NaN()
	}
	var sum int64
	for i := range a.Pix {
		v := int64(a.Pix[i]) - int64(b.Pix[i])
		if v < 0 {
			v = -v
		}
		sum += v
	}
	return float64(sum) / float64(len(a.Pix))
}

// meanGray returns the mean of a gray plane.
func meanGray(g Gray) float64 {
	if len(g.Pix) == 0 {
		return math.NaN()
	}
	var sum int64
	for _, v := range g.Pix {
		sum += int64(v)
	}
	return float64(sum) / float64(len(g.Pix))
}

// ResizeToHeight scales a BGR image to the given height keeping aspect
// ratio, using area resampling. Images already at the target height, or
// degenerate ones, are returned unchanged.
func ResizeToHeight(m Image, target int) Image {
	if m.Empty() || m.H == target {
		return m
	}
	nw := int(math.Round(float64(m.W) * float64(target) / float64(m.H)))
	if nw < 1 {
		nw = 1
	}
	return resizeArea(m, nw, target)
}

// resizeArea resamples a BGR image by averaging the source area covered by
// each destination pixel, with fractional edge weights.
func resizeArea(m Image, nw, nh int) Image {
	dst := NewImage(nw, nh)
	sx := float64(m.W) / float64(nw)
	sy := float64(m.H) / float64(nh)
	for y := 0; y < nh; y++ {
		y0, y1 := float64(y)*sy, float64(y+1)*sy
		for x := 0; x < nw; x++ {
			x0, x1 := float64(x)*sx, float64(x+1)*sx
			var acc [3]float64
			var area float64
			for yy := int(y0); float64(yy) < y1 && yy < m.H; yy++ {
				wy := math.Min(y1, float64(yy+1)) - math.Max(y0, float64(yy))
				if wy <= 0 {
					continue
				}
				for xx := int(x0); float64(xx) < x1 && xx < m.W; xx++ {
					wx := math.Min(x1, float64(xx+1)) - math.Max(x0, float64(xx))
					if wx <= 0 {
						continue
					}
					w := wx * wy
					o := 3 * (yy*m.W + xx)
					acc[0] += w * float64(m.Pix[o])
					acc[1] += w * float64(m.Pix[o+1])
					acc[2] += w * float64(m.Pix[o+2])
					area += w
				}
			}
			o := 3 * (y*nw + x)
			if area > 0 {
				dst.Pix[o] = uint8(acc[0]/area + 0.5)
				dst.Pix[o+1] = uint8(acc[1]/area + 0.5)
				dst.Pix[o+2] = uint8(acc[2]/area + 0.5)
			}
		}
	}
	return dst
}
