//go:build withcv
// +build withcv

/*
DESCRIPTION
  capture.go provides a Reader implementation backed by an OpenCV
  VideoCapture.

AUTHORS
  Russell Stanley <russell@ausocean.org>
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package video

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/ausocean/keyframes/vision"
)

// Capture reads frames from a video file through OpenCV.
type Capture struct {
	vc   *gocv.VideoCapture
	mat  gocv.Mat
	meta Meta
}

// Open opens the video at path and reads its metadata.
func Open(path string) (*Capture, error) {
	vc, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, fmt.Errorf("could not open video %s: %w", path, err)
	}
	c := &Capture{vc: vc, mat: gocv.NewMat()}
	c.meta = metaFor(
		int(vc.Get(gocv.VideoCaptureFrameCount)),
		vc.Get(gocv.VideoCaptureFPS),
		int(vc.Get(gocv.VideoCaptureFrameWidth)),
		int(vc.Get(gocv.VideoCaptureFrameHeight)),
	)
	return c, nil
}

// Meta returns the video metadata read at open time.
func (c *Capture) Meta() Meta { return c.meta }

// ReadAt seeks to the given frame index and decodes one BGR frame. A nil
// frame with nil error means the index could not be read.
func (c *Capture) ReadAt(idx int) (*vision.Image, error) {
	c.vc.Set(gocv.VideoCapturePosFrames, float64(idx))
	if ok := c.vc.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, nil
	}
	m := c.mat
	if m.Channels() != 3 {
		converted := gocv.NewMat()
		defer converted.Close()
		gocv.CvtColor(m, &converted, gocv.ColorGrayToBGR)
		m = converted
	}
	buf := m.ToBytes()
	img := vision.Image{Pix: make([]uint8, len(buf)), W: m.Cols(), H: m.Rows()}
	copy(img.Pix, buf)
	return &img, nil
}

// Close frees resources used by gocv. It has to be done manually, due to
// gocv using c-go.
func (c *Capture) Close() error {
	c.mat.Close()
	return c.vc.Close()
}
