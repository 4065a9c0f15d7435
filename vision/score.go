/*
DESCRIPTION
  score.go provides the frame scoring kernels: scene-change score, frame
  quality and the comprehensive score combining the two.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Russell Stanley <russell@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vision

import "math"

// Config holds the scoring constants for content-driven extraction. The
// shipped values are frozen; tests may construct overrides for sensitivity
// analysis.
type Config struct {
	// SceneChangeThreshold is the change score above which the adaptive
	// step collapses to MinInterval.
	SceneChangeThreshold float64

	// MinInterval and MaxInterval bound the adaptive step in seconds.
	MinInterval float64
	MaxInterval float64

	// Weights of the scene-change score terms.
	HistWeight   float64
	SSIMWeight   float64
	EdgeWeight   float64
	MotionWeight float64

	// Weights of the comprehensive score terms.
	QualityWeight float64
	ChangeWeight  float64

	// QualityThreshold is reported in extraction parameters; it is not a
	// hard filter.
	QualityThreshold float64
}

// DefaultConfig returns the shipped scoring constants.
func DefaultConfig() Config {
	return Config{
		SceneChangeThreshold: 35.0,
		MinInterval:          0.5,
		MaxInterval:          3.0,
		HistWeight:           0.3,
		SSIMWeight:           0.3,
		EdgeWeight:           0.3,
		MotionWeight:         0.1,
		QualityWeight:        0.4,
		ChangeWeight:         0.6,
		QualityThreshold:     20.0,
	}
}

// SceneChangeScore measures how different two frames are, in [0,100]. It
// combines colour histogram dissimilarity, structural dissimilarity
// (1 - mean SSIM), edge map difference and pixel motion. When any term is
// not finite the score falls back to the mean absolute gray difference, and
// to 0 when the frames are not comparable at all.
func (c Config) SceneChangeScore(f1, f2 Image) float64 {
	if f1.Empty() || f2.Empty() {
		return 0
	}
	g1, g2 := ToGray(f1), ToGray(f2)
	if g1.W != g2.W || g1.H != g2.H {
		return 0
	}

	histCorr := HistCorrel(Hist3D(f1), Hist3D(f2))
	histScore := (1 - math.Max(0, histCorr)) * 100

	ssimScore := (1 - ssimMean(g1, g2)) * 100

	edgeChange := meanAbsDiff(Canny(g1, 50, 150), Canny(g2, 50, 150)) * 2

	motion := meanAbsDiff(g1, g2)

	score := histScore*c.HistWeight + ssimScore*c.SSIMWeight + edgeChange*c.EdgeWeight + motion*c.MotionWeight
	if math.IsNaN(score) || math.IsInf(score, 0) {
		fallback := meanAbsDiff(g1, g2)
		if math.IsNaN(fallback) {
			return 0
		}
		return fallback
	}
	return math.Min(100, math.Max(0, score))
}

// SSIM constants for 8-bit dynamic range.
const (
	ssimC1 = (0.01 * 255) * (0.01 * 255)
	ssimC2 = (0.03 * 255) * (0.03 * 255)
)

// ssimMean computes the mean of the SSIM map of two equal size gray planes,
// with local statistics estimated by a 5x5 Gaussian (sigma 1.0).
func ssimMean(g1, g2 Gray) float64 {
	p1, p2 := grayToPlane(g1), grayToPlane(g2)
	mu1 := gaussianBlur5(p1)
	mu2 := gaussianBlur5(p2)
	sq1 := mulPlanes(p1, p1)
	sq2 := mulPlanes(p2, p2)
	p12 := mulPlanes(p1, p2)
	e1 := gaussianBlur5(sq1)
	e2 := gaussianBlur5(sq2)
	e12 := gaussianBlur5(p12)

	var sum float64
	for i := range mu1.pix {
		m1 := float64(mu1.pix[i])
		m2 := float64(mu2.pix[i])
		s1 := float64(e1.pix[i]) - m1*m1
		s2 := float64(e2.pix[i]) - m2*m2
		s12 := float64(e12.pix[i]) - m1*m2
		sum += ((2*m1*m2 + ssimC1) * (2*s12 + ssimC2)) / ((m1*m1 + m2*m2 + ssimC1) * (s1 + s2 + ssimC2))
	}
	return sum / float64(len(mu1.pix))
}

func mulPlanes(a, b plane) plane {
	p := newPlane(a.w, a.h)
	for i := range a.pix {
		p.pix[i] = a.pix[i] * b.pix[i]
	}
	return p
}

// FrameQuality estimates frame sharpness as a weighted sum of Laplacian
// variance and scaled edge density. Higher is sharper and busier. Frames
// that cannot be scored get a neutral 50.
func FrameQuality(m Image) float64 {
	if m.Empty() {
		return 50.0
	}
	g := ToGray(m)
	lapVar := laplacianVariance(g)
	density := edgeDensity(Canny(g, 50, 150))
	q := 0.7*lapVar + 0.3*1000*density
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 50.0
	}
	return q
}

// ComprehensiveScore combines normalised frame quality with the scene
// change relative to prev. A nil prev contributes zero change.
func (c Config) ComprehensiveScore(m Image, prev *Image) (total, quality, change float64) {
	quality = math.Min(100, FrameQuality(m)/5)
	if prev != nil {
		change = c.SceneChangeScore(*prev, m)
	}
	total = quality*c.QualityWeight + change*c.ChangeWeight
	return total, quality, change
}
