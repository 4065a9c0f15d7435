/*
DESCRIPTION
  simple.go implements the deterministic fallback extractors: fixed frame
  stride, uniform distribution and a minimal last-resort anchor set.

AUTHORS
  Trek Hopton <trek@ausocean.org>
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
	"fmt"
	"sort"

	"github.com/ausocean/keyframes/video"
)

// interval reads frames at a fixed index stride and writes each until the
// frame budget or EOF. Read errors are fatal; write failures drop the
// individual frame.
func (e *Extractor) interval(r video.Reader, intervalFrames int) ([]Keyframe, error) {
	meta := r.Meta()
	used := make(map[string]bool)
	var saved []Keyframe
	idx := 0
	for len(saved) < e.cfg.MaxFrames {
		frame, err := r.ReadAt(idx)
		if err != nil {
			return nil, fmt.Errorf("could not read frame %d: %w", idx, err)
		}
		if frame == nil {
			break
		}
		kf, err := e.writeFrame(*frame, len(saved), timestampFor(idx, meta.FPS), used)
		if err != nil {
			e.log.Warning("dropping frame, write failed", "index", idx, "error", err.Error())
			idx += intervalFrames
			continue
		}
		saved = append(saved, kf)
		idx += intervalFrames
	}
	return saved, nil
}

// uniform reads MaxFrames frames evenly spread over the video. The cover
// frame at index zero can be excluded, and numbering can continue from
// startIndex with an existing name set, so a caller can append a uniform
// pass after another extraction.
func (e *Extractor) uniform(r video.Reader, includeCover bool, startIndex int, used map[string]bool) ([]Keyframe, error) {
	meta := r.Meta()
	if used == nil {
		used = make(map[string]bool)
	}
	interval := meta.TotalFrames / e.cfg.MaxFrames
	if interval < 1 {
		interval = 1
	}
	var saved []Keyframe
	for i := 0; i < e.cfg.MaxFrames; i++ {
		idx := i * interval
		if !includeCover && idx == 0 {
			idx += interval
		}
		if idx >= meta.TotalFrames {
			break
		}
		frame, err := r.ReadAt(idx)
		if err != nil {
			return nil, fmt.Errorf("could not read frame %d: %w", idx, err)
		}
		if frame == nil {
			continue
		}
		kf, err := e.writeFrame(*frame, startIndex+i, timestampFor(idx, meta.FPS), used)
		if err != nil {
			e.log.Warning("dropping frame, write failed", "index", idx, "error", err.Error())
			continue
		}
		saved = append(saved, kf)
	}
	return saved, nil
}

// minimal is the last rung of the retry ladder: a fixed anchor set of the
// first, last and middle frames plus evenly spaced fill, deduplicated and
// sorted. It absorbs all read and write failures and returns whatever it
// managed to save.
func (e *Extractor) minimal(r video.Reader) []Keyframe {
	meta := r.Meta()
	max := e.cfg.MaxFrames

	set := make(map[int]bool)
	if max >= 1 {
		set[0] = true
	}
	if max >= 2 {
		set[meta.TotalFrames-1] = true
	}
	if max >= 3 {
		set[meta.TotalFrames/2] = true
	}
	if max > 3 {
		interval := meta.TotalFrames / max
		for i := 1; i < max-2; i++ {
			idx := i * interval
			if idx < meta.TotalFrames {
				set[idx] = true
			}
		}
	}
	indices := make([]int, 0, len(set))
	for idx := range set {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	if len(indices) > max {
		indices = indices[:max]
	}

	used := make(map[string]bool)
	var saved []Keyframe
	for i, idx := range indices {
		frame, err := r.ReadAt(idx)
		if err != nil {
			e.log.Warning("dropping frame, read failed", "index", idx, "error", err.Error())
			continue
		}
		if frame == nil {
			continue
		}
		kf, err := e.writeFrame(*frame, i, timestampFor(idx, meta.FPS), used)
		if err != nil {
			e.log.Warning("dropping frame, write failed", "index", idx, "error", err.Error())
			continue
		}
		saved = append(saved, kf)
	}
	e.log.Info("minimal extraction complete", "keyframes", len(saved))
	return saved
}
