/*
DESCRIPTION
  vision.go provides the pixel buffer types shared by the image operations
  and scoring kernels.

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

// Package vision provides the image operations and frame scoring kernels
// used for content-driven keyframe selection: grayscale conversion,
// histograms, Gaussian blur, Canny edges, SSIM, scene-change and quality
// scoring, dark-frame detection and frame similarity.
package vision

// Image is an 8-bit colour frame with interleaved BGR channels, the channel
// order delivered by video capture. Pix has length 3*W*H.
type Image struct {
	Pix  []uint8
	W, H int
}

// NewImage returns a zeroed BGR image of the given dimensions.
func NewImage(w, h int) Image {
	return Image{Pix: make([]uint8, 3*w*h), W: w, H: h}
}

// Clone returns a deep copy of the image.
func (m Image) Clone() Image {
	p := make([]uint8, len(m.Pix))
	copy(p, m.Pix)
	return Image{Pix: p, W: m.W, H: m.H}
}

// Empty reports whether the image holds no pixels.
func (m Image) Empty() bool { return m.W <= 0 || m.H <= 0 || len(m.Pix) < 3*m.W*m.H }

// Gray is a single channel 8-bit plane. Pix has length W*H.
type Gray struct {
	Pix  []uint8
	W, H int
}

// NewGray returns a zeroed gray plane of the given dimensions.
func NewGray(w, h int) Gray {
	return Gray{Pix: make([]uint8, w*h), W: w, H: h}
}

// plane is a single channel float32 plane used by the blur based kernels.
type plane struct {
	pix  []float32
	w, h int
}

func newPlane(w, h int) plane {
	return plane{pix: make([]float32, w*h), w: w, h: h}
}

func grayToPlane(g Gray) plane {
	p := newPlane(g.W, g.H)
	for i, v := range g.Pix {
		p.pix[i] = float32(v)
	}
	return p
}
