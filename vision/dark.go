/*
DESCRIPTION
  dark.go provides dark frame detection used to reject unusable frames
  before scoring.

AUTHORS
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

// darkThreshold is the brightness level below which pixels and frame means
// are considered dark.
const darkThreshold = 35

// IsDark reports whether a frame is dominated by low luminance: a low mean,
// near-total dark pixel coverage, or a flat low-entropy plane. Frames that
// cannot be examined are not considered dark.
func IsDark(m Image) bool {
	return isDark(m, darkThreshold)
}

func isDark(m Image, threshold float64) bool {
	if m.Empty() {
		return false
	}
	g := ToGray(m)
	size := float64(len(g.Pix))

	mean := meanGray(g)

	var dark int
	for _, v := range g.Pix {
		if float64(v) < threshold {
			dark++
		}
	}
	darkRatio := float64(dark) / size

	vals := make([]float64, len(g.Pix))
	for i, v := range g.Pix {
		vals[i] = float64(v)
	}
	std := stat.PopStdDev(vals, nil)

	hist := Hist1D(g, 256)
	var entropy float64
	for _, c := range hist {
		p := c / size
		entropy -= p * math.Log2(p+1e-7)
	}

	return mean < threshold || darkRatio > 0.95 || (std < 10 && entropy < 3.0)
}
