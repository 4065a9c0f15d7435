/*
DESCRIPTION
  writer.go encodes extracted frames as JPEG files on disk.

AUTHORS
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package extract

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"

	"github.com/ausocean/keyframes/vision"
)

// jpegQuality is the encode quality for all keyframe output.
const jpegQuality = 85

// ImageWriter encodes a frame to disk and reports the bytes written.
type ImageWriter interface {
	WriteJPEG(path string, m vision.Image, quality int) (int64, error)
}

// FileWriter writes frames as JPEG files.
type FileWriter struct{}

// WriteJPEG encodes m to path at the given JPEG quality.
func (FileWriter) WriteJPEG(path string, m vision.Image, quality int) (int64, error) {
	if m.Empty() {
		return 0, fmt.Errorf("cannot encode empty frame to %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("could not create keyframe file: %w", err)
	}

	cw := &countingWriter{w: f}
	bw := bufio.NewWriter(cw)
	err = jpeg.Encode(bw, bgrToRGBA(m), &jpeg.Options{Quality: quality})
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("could not encode keyframe: %w", err)
	}
	err = bw.Flush()
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("could not flush keyframe: %w", err)
	}
	return cw.n, f.Close()
}

// bgrToRGBA converts an interleaved BGR buffer to the image type understood
// by the JPEG encoder.
func bgrToRGBA(m vision.Image) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.W, m.H))
	for i := 0; i < m.W*m.H; i++ {
		img.Pix[4*i] = m.Pix[3*i+2]
		img.Pix[4*i+1] = m.Pix[3*i+1]
		img.Pix[4*i+2] = m.Pix[3*i]
		img.Pix[4*i+3] = 0xff
	}
	return img
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
