/*
DESCRIPTION
  video.go defines the frame reader contract consumed by the keyframe
  extractors.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package video provides random access frame reading from video files. The
// concrete implementation wraps an OpenCV VideoCapture and is built with the
// withcv build tag; without the tag Open fails so that the pure Go scoring
// and extraction logic can still be built and tested.
package video

import "github.com/ausocean/keyframes/vision"

// Meta describes an opened video.
type Meta struct {
	TotalFrames int
	FPS         float64
	Duration    float64 // Seconds; zero when FPS is unknown.
	Width       int
	Height      int
}

// Reader provides random access to the frames of an open video. Reads are
// serialised by the reader's internal seek state.
type Reader interface {
	// Meta returns the video metadata read at open time.
	Meta() Meta

	// ReadAt seeks to the given frame index and decodes one frame. A nil
	// frame with a nil error denotes EOF or an unreadable index.
	ReadAt(idx int) (*vision.Image, error)

	// Close releases the underlying video handle.
	Close() error
}

// metaFor derives a Meta from raw capture properties, tolerating zero FPS.
func metaFor(totalFrames int, fps float64, w, h int) Meta {
	m := Meta{TotalFrames: totalFrames, FPS: fps, Width: w, Height: h}
	if fps > 0 {
		m.Duration = float64(totalFrames) / fps
	}
	return m
}
