/*
DESCRIPTION
  score_test.go provides testing for the scoring kernels: scene change,
  frame quality, dark frame detection and frame similarity.

AUTHORS
  Trek Hopton <trek@ausocean.org>
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
	"testing"
)

func TestSceneChangeScoreIdentical(t *testing.T) {
	cfg := DefaultConfig()
	for _, m := range []Image{gradient(64, 64), checker(64, 64, 16, false), noise(64, 64, 7)} {
		score := cfg.SceneChangeScore(m, m)
		if math.Abs(score) > 1e-3 {
			t.Errorf("scene change of a frame against itself = %f, want 0", score)
		}
	}
}

func TestSceneChangeScoreInvertedChecker(t *testing.T) {
	cfg := DefaultConfig()
	a := checker(64, 64, 16, false)
	b := checker(64, 64, 16, true)
	score := cfg.SceneChangeScore(a, b)
	if score <= cfg.SceneChangeThreshold {
		t.Errorf("scene change of inverted checkerboards = %f, want > %f", score, cfg.SceneChangeThreshold)
	}
	if score > 100 {
		t.Errorf("scene change = %f, want <= 100", score)
	}
}

func TestSceneChangeScoreMismatchedFrames(t *testing.T) {
	cfg := DefaultConfig()
	score := cfg.SceneChangeScore(gradient(64, 64), gradient(32, 32))
	if score != 0 {
		t.Errorf("scene change of incomparable frames = %f, want 0", score)
	}
}

// blurred returns a copy of m with n passes of 5x5 Gaussian smoothing,
// emulating capture at ever lower sharpness.
func blurred(m Image, n int) Image {
	g := ToGray(m)
	p := grayToPlane(g)
	for i := 0; i < n; i++ {
		p = gaussianBlur5(p)
	}
	out := NewImage(m.W, m.H)
	for i := 0; i < m.W*m.H; i++ {
		v := uint8(math.Min(255, math.Max(0, float64(p.pix[i])+0.5)))
		out.Pix[3*i], out.Pix[3*i+1], out.Pix[3*i+2] = v, v, v
	}
	return out
}

func TestFrameQualityMonotoneUnderBlur(t *testing.T) {
	m := noise(64, 64, 99)
	prev := math.Inf(1)
	// Tolerance covers rebinarisation jitter in the edge density term.
	for _, n := range []int{0, 1, 3, 6} {
		q := FrameQuality(blurred(m, n))
		if q > prev+0.5 {
			t.Fatalf("quality increased from %f to %f after more blurring", prev, q)
		}
		prev = q
	}
}

func TestComprehensiveScoreNoPrev(t *testing.T) {
	cfg := DefaultConfig()
	m := noise(64, 64, 3)
	total, quality, change := cfg.ComprehensiveScore(m, nil)
	if change != 0 {
		t.Errorf("change with no previous frame = %f, want 0", change)
	}
	if quality > 100 {
		t.Errorf("normalised quality = %f, want <= 100", quality)
	}
	want := quality * cfg.QualityWeight
	if math.Abs(total-want) > 1e-9 {
		t.Errorf("total = %f, want %f", total, want)
	}
}

func TestIsDark(t *testing.T) {
	tests := []struct {
		name string
		m    Image
		want bool
	}{
		{"black", solid(64, 64, 0, 0, 0), true},
		{"near black", solid(64, 64, 10, 10, 10), true},
		{"checkerboard", checker(64, 64, 16, false), false},
		{"noise", noise(64, 64, 5), false},
		{"gradient", gradient(64, 64), false},
	}
	for _, test := range tests {
		if got := IsDark(test.m); got != test.want {
			t.Errorf("IsDark(%s) = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestFramesSimilar(t *testing.T) {
	g := ToGray(gradient(64, 64))
	if !FramesSimilar(g, g, DefaultSimilarity) {
		t.Error("identical frames not reported similar")
	}
	if !FramesSimilar(g, g, 0.8) {
		t.Error("identical frames not reported similar at the commit threshold")
	}

	a := ToGray(checker(64, 64, 16, false))
	b := ToGray(checker(64, 64, 16, true))
	if FramesSimilar(a, b, DefaultSimilarity) {
		t.Error("inverted checkerboards reported similar")
	}
}

func TestFramesSimilarFlat(t *testing.T) {
	// Flat planes cannot be correlated and must not be called similar.
	a := ToGray(solid(64, 64, 128, 128, 128))
	if FramesSimilar(a, a, DefaultSimilarity) {
		t.Error("uncorrelatable flat frames reported similar")
	}
}
