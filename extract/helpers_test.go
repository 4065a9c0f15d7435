/*
DESCRIPTION
  helpers_test.go provides the stub collaborators and synthetic frame
  generators shared by the extraction tests.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package extract

import (
	"github.com/ausocean/keyframes/video"
	"github.com/ausocean/keyframes/vision"
)

// stubReader serves synthetic frames by index. When err is set every read
// fails with it.
type stubReader struct {
	meta    video.Meta
	frameAt func(idx int) *vision.Image
	err     error
	reads   []int
}

func (r *stubReader) Meta() video.Meta { return r.meta }

func (r *stubReader) ReadAt(idx int) (*vision.Image, error) {
	r.reads = append(r.reads, idx)
	if r.err != nil {
		return nil, r.err
	}
	return r.frameAt(idx), nil
}

func (r *stubReader) Close() error { return nil }

// stubWriter records writes without touching the filesystem.
type stubWriter struct {
	writes []stubWrite
}

type stubWrite struct {
	path string
	w, h int
}

func (w *stubWriter) WriteJPEG(path string, m vision.Image, quality int) (int64, error) {
	w.writes = append(w.writes, stubWrite{path: path, w: m.W, h: m.H})
	return 1000, nil
}

// recordSink captures progress events and milestone messages.
type recordSink struct {
	updates  []Progress
	messages []string
}

func (s *recordSink) Update(p Progress)  { s.updates = append(s.updates, p) }
func (s *recordSink) Message(msg string) { s.messages = append(s.messages, msg) }

// solidFrame returns a frame filled with one BGR colour.
func solidFrame(w, h int, b, g, r uint8) vision.Image {
	m := vision.NewImage(w, h)
	for i := 0; i < w*h; i++ {
		m.Pix[3*i] = b
		m.Pix[3*i+1] = g
		m.Pix[3*i+2] = r
	}
	return m
}

// gradientFrame returns a frame whose brightness ramps left to right.
func gradientFrame(w, h int) vision.Image {
	m := vision.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / (w - 1))
			o := 3 * (y*w + x)
			m.Pix[o], m.Pix[o+1], m.Pix[o+2] = v, v, v
		}
	}
	return m
}

// checkerFrame returns a checkerboard frame; invert flips black and white.
func checkerFrame(w, h, cell int, invert bool) vision.Image {
	m := vision.NewImage(w, h)
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

// frameServer bounds a generator to the valid index range of a video.
func frameServer(total int, gen func(idx int) vision.Image) func(idx int) *vision.Image {
	return func(idx int) *vision.Image {
		if idx < 0 || idx >= total {
			return nil
		}
		m := gen(idx)
		return &m
	}
}
