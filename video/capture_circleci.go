//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  Replaces the capture implementation that uses the gocv package. When
  Circle-CI builds keyframes this is needed because Circle-CI does not
  have a copy of Open CV installed.

AUTHORS
  Russell Stanley <russell@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package video

import (
	"errors"

	"github.com/ausocean/keyframes/vision"
)

// Capture is a placeholder for builds without OpenCV support.
type Capture struct{}

// Open fails; reading video files requires a build with the withcv tag.
func Open(path string) (*Capture, error) {
	return nil, errors.New("video capture requires a build with the withcv tag")
}

// Meta returns an empty Meta for builds without OpenCV support.
func (c *Capture) Meta() Meta { return Meta{} }

// ReadAt always reports an unreadable index for builds without OpenCV support.
func (c *Capture) ReadAt(idx int) (*vision.Image, error) { return nil, nil }

// Close performs no operation for builds without OpenCV support.
func (c *Capture) Close() error { return nil }
