/*
DESCRIPTION
  canny.go provides Sobel gradients, Canny edge detection and Laplacian
  variance over gray planes.

AUTHORS
  Russell Stanley <russell@ausocean.org>

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

// Canny computes a binary edge map (0 or 255) of a gray plane using 3x3
// Sobel gradients, L1 gradient magnitude, non-maximum suppression and
// hysteresis thresholding between lo and hi.
func Canny(g Gray, lo, hi float64) Gray {
	edges := NewGray(g.W, g.H)
	if g.W < 3 || g.H < 3 {
		return edges
	}

	gx, gy := sobel(g)
	n := g.W * g.H
	mag := make([]float64, n)
	for i := 0; i < n; i++ {
		mag[i] = math.Abs(float64(gx[i])) + math.Abs(float64(gy[i]))
	}

	// Non-maximum suppression along the quantised gradient direction,
	// then classification into strong and weak edges.
	const (
		none   = 0
		weak   = 1
		strong = 2
	)
	class := make([]uint8, n)
	for y := 1; y < g.H-1; y++ {
		for x := 1; x < g.W-1; x++ {
			i := y*g.W + x
			m := mag[i]
			if m < lo {
				continue
			}
			var m1, m2 float64
			ang := math.Atan2(float64(gy[i]), float64(gx[i])) * 180 / math.Pi
			if ang < 0 {
				ang += 180
			}
			switch {
			case ang < 22.5 || ang >= 157.5: // Horizontal gradient.
				m1, m2 = mag[i-1], mag[i+1]
			case ang < 67.5: // Rising diagonal.
				m1, m2 = mag[i-g.W-1], mag[i+g.W+1]
			case ang < 112.5: // Vertical gradient.
				m1, m2 = mag[i-g.W], mag[i+g.W]
			default: // Falling diagonal.
				m1, m2 = mag[i-g.W+1], mag[i+g.W-1]
			}
			if m < m1 || m < m2 {
				continue
			}
			if m >= hi {
				class[i] = strong
			} else {
				class[i] = weak
			}
		}
	}

	// Hysteresis: weak edges survive only when connected to a strong edge.
	stack := make([]int, 0, n/8)
	for i := 0; i < n; i++ {
		if class[i] == strong {
			edges.Pix[i] = 255
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%g.W, i/g.W
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= g.W || ny < 0 || ny >= g.H {
					continue
				}
				j := ny*g.W + nx
				if class[j] == weak && edges.Pix[j] == 0 {
					edges.Pix[j] = 255
					stack = append(stack, j)
				}
			}
		}
	}
	return edges
}

// sobel computes 3x3 Sobel gradients with reflected borders.
func sobel(g Gray) (gx, gy []int32) {
	n := g.W * g.H
	gx = make([]int32, n)
	gy = make([]int32, n)
	at := func(x, y int) int32 {
		return int32(g.Pix[reflect101(y, g.H)*g.W+reflect101(x, g.W)])
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			tl, tc, tr := at(x-1, y-1), at(x, y-1), at(x+1, y-1)
			ml, mr := at(x-1, y), at(x+1, y)
			bl, bc, br := at(x-1, y+1), at(x, y+1), at(x+1, y+1)
			i := y*g.W + x
			gx[i] = (tr + 2*mr + br) - (tl + 2*ml + bl)
			gy[i] = (bl + 2*bc + br) - (tl + 2*tc + tr)
		}
	}
	return gx, gy
}

// edgeDensity is the fraction of pixels marked as edges.
func edgeDensity(edges Gray) float64 {
	if len(edges.Pix) == 0 {
		return 0
	}
	var count int
	for _, v := range edges.Pix {
		if v > 0 {
			count++
		}
	}
	return float64(count) / float64(len(edges.Pix))
}

// laplacianVariance measures frame sharpness as the population variance of
// the 3x3 Laplacian response.
func laplacianVariance(g Gray) float64 {
	if g.W < 1 || g.H < 1 {
		return 0
	}
	at := func(x, y int) float64 {
		return float64(g.Pix[reflect101(y, g.H)*g.W+reflect101(x, g.W)])
	}
	resp := make([]float64, g.W*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			resp[y*g.W+x] = at(x-1, y) + at(x+1, y) + at(x, y-1) + at(x, y+1) - 4*at(x, y)
		}
	}
	return stat.PopVariance(resp, nil)
}
