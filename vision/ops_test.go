/*
DESCRIPTION
  ops_test.go provides testing for the pixel level operations in ops.go.

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
	"testing"
)

// solid returns a frame filled with one BGR colour.
func solid(w, h int, b, g, r uint8) Image {
	m := NewImage(w, h)
	for i := 0; i < w*h; i++ {
		m.Pix[3*i] = b
		m.Pix[3*i+1] = g
		m.Pix[3*i+2] = r
	}
	return m
}

// gradient returns a frame whose brightness ramps left to right.
func gradient(w, h int) Image {
	m := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / (w - 1))
			o := 3 * (y*w + x)
			m.Pix[o], m.Pix[o+1], m.Pix[o+2] = v, v, v
		}
	}
	return m
}

// checker returns a checkerboard frame with the given cell size; invert
// flips black and white.
func checker(w, h, cell int, invert bool) Image {
	m := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			on := (x/cell+y/cell)%2 == 0
			if invert {
				on = !on
			}
			var v uint8
			if on {
				v = 255
			}
			o := 3 * (y*w + x)
			m.Pix[o], m.Pix[o+1], m.Pix[o+2] = v, v, v
		}
	}
	return m
}

// noise returns a deterministic pseudo-random frame.
func noise(w, h int, seed uint32) Image {
	m := NewImage(w, h)
	s := seed
	for i := range m.Pix {
		s = s*1664525 + 1013904223
		m.Pix[i] = uint8(s >> 24)
	}
	return m
}

func TestToGray(t *testing.T) {
	tests := []struct {
		b, g, r uint8
		want    uint8
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{0, 0, 255, 76},  // Pure red.
		{0, 255, 0, 150}, // Pure green.
		{255, 0, 0, 29},  // Pure blue.
	}
	for _, test := range tests {
		gray := ToGray(solid(4, 4, test.b, test.g, test.r))
		if gray.Pix[0] != test.want {
			t.Errorf("ToGray(b=%d,g=%d,r=%d) = %d, want %d", test.b, test.g, test.r, gray.Pix[0], test.want)
		}
	}
}

func TestHistCorrelIdentical(t *testing.T) {
	g := ToGray(gradient(64, 64))
	h := Hist1D(g, 32)
	corr := HistCorrel(h, h)
	if math.Abs(corr-1) > 1e-9 {
		t.Errorf("identical histograms correlate at %f, want 1", corr)
	}
}

func TestHistCorrelDisjoint(t *testing.T) {
	h1 := Hist3D(solid(32, 32, 0, 0, 0))
	h2 := Hist3D(solid(32, 32, 255, 255, 255))
	corr := HistCorrel(h1, h2)
	if corr > 0.1 {
		t.Errorf("disjoint histograms correlate at %f, want <= 0.1", corr)
	}
}

func TestAbsDiff(t *testing.T) {
	a := Gray{Pix: []uint8{10, 200, 0, 255}, W: 2, H: 2}
	b := Gray{Pix: []uint8{20, 100, 0, 0}, W: 2, H: 2}
	d := AbsDiff(a, b)
	want := []uint8{10, 100, 0, 255}
	for i := range want {
		if d.Pix[i] != want[i] {
			t.Errorf("AbsDiff[%d] = %d, want %d", i, d.Pix[i], want[i])
		}
	}
}

func TestGaussianBlurPreservesConstant(t *testing.T) {
	p := newPlane(16, 16)
	for i := range p.pix {
		p.pix[i] = 42
	}
	out := gaussianBlur5(p)
	for i, v := range out.pix {
		if math.Abs(float64(v)-42) > 1e-3 {
			t.Fatalf("blurred constant plane has %f at %d, want 42", v, i)
		}
	}
}

func TestResizeToHeight(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{1280, 720, 1280, 720}, // Already at target.
		{640, 360, 1280, 720},
		{1920, 1080, 1280, 720},
		{100, 90, 800, 720},
	}
	for _, test := range tests {
		out := ResizeToHeight(solid(test.w, test.h, 10, 20, 30), 720)
		if out.W != test.wantW || out.H != test.wantH {
			t.Errorf("ResizeToHeight(%dx%d) = %dx%d, want %dx%d", test.w, test.h, out.W, out.H, test.wantW, test.wantH)
		}
		if out.Pix[0] != 10 || out.Pix[1] != 20 || out.Pix[2] != 30 {
			t.Errorf("ResizeToHeight(%dx%d) did not preserve solid colour", test.w, test.h)
		}
	}
}

func TestCannyFindsEdge(t *testing.T) {
	// Left half black, right half white: one vertical edge.
	m := NewImage(32, 32)
	for y := 0; y < 32; y++ {
		for x := 16; x < 32; x++ {
			o := 3 * (y*32 + x)
			m.Pix[o], m.Pix[o+1], m.Pix[o+2] = 255, 255, 255
		}
	}
	edges := Canny(ToGray(m), 50, 150)
	var count int
	for _, v := range edges.Pix {
		if v > 0 {
			count++
		}
	}
	if count == 0 {
		t.Fatal("no edges found on a step image")
	}
	flat := Canny(ToGray(solid(32, 32, 128, 128, 128)), 50, 150)
	for i, v := range flat.Pix {
		if v != 0 {
			t.Fatalf("edge reported at %d on a flat image", i)
		}
	}
}
