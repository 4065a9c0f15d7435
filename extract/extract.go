/*
DESCRIPTION
  extract.go provides the keyframe extraction orchestrator: mode dispatch,
  the smart to interval to minimal retry ladder, filename allocation and
  summary logging.

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

// Package extract writes a bounded set of representative JPEG stills from a
// video to an output directory. The smart mode scores frames for scene
// change and quality and keeps the best frame of each second; uniform and
// interval modes are simple stride selectors, and a minimal last-resort
// selector anchors the start, middle and end of the video.
package extract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"

	"github.com/ausocean/keyframes/video"
	"github.com/ausocean/keyframes/vision"
)

// targetHeight is the output height all keyframes are resized to.
const targetHeight = 720

// Keyframe describes one written keyframe file.
type Keyframe struct {
	Path      string
	Timestamp float64 // Seconds of video time.
	Width     int
	Height    int
	FileSize  int64
}

// Extractor extracts keyframes from a video according to its config. An
// Extractor is good for one extraction call at a time; the output directory
// must not be shared with a concurrent extraction.
type Extractor struct {
	cfg Config
	log logging.Logger

	// Score samples collected during debug runs.
	samples []scoreSample
	commits []float64
}

type scoreSample struct {
	t, score float64
}

// New returns a new Extractor, validating the config and creating the
// output directory.
func New(cfg Config) (*Extractor, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "config struct is bad")
	}
	err = os.MkdirAll(cfg.OutputDir, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "could not create output directory")
	}
	return &Extractor{cfg: cfg, log: cfg.Logger}, nil
}

// ExtractFile opens the video at path and extracts keyframes from it. The
// video handle is released on all exit paths. In smart mode an open failure
// steps the retry ladder like any other extraction failure.
func (e *Extractor) ExtractFile(path string) ([]Keyframe, error) {
	r, err := video.Open(path)
	if err != nil {
		return e.openFailed(err)
	}
	defer r.Close()
	return e.Extract(r)
}

// openFailed handles a video open failure. In smart mode the failure walks
// the retry ladder; every rung needs an open reader, so the ladder exhausts
// and the result is empty with the failure logged at each rung. The other
// modes surface the error to the caller.
func (e *Extractor) openFailed(err error) ([]Keyframe, error) {
	if e.cfg.Mode != ModeSmart {
		return nil, errors.Wrap(err, "could not open video")
	}
	e.log.Warning("smart extraction failed, falling back to interval extraction", "error", err.Error())
	e.log.Error("interval extraction also failed, using minimal extraction", "error", err.Error())
	e.log.Error("minimal extraction failed, could not open video", "error", err.Error())
	return nil, nil
}

// Extract runs the configured extraction mode against an open reader and
// returns the keyframes written, ordered by commit. Smart mode failures
// step down a retry ladder: interval extraction, then a minimal extraction
// that cannot fail.
func (e *Extractor) Extract(r video.Reader) (kf []Keyframe, err error) {
	defer e.monitor(time.Now(), &kf, &err)

	meta := r.Meta()
	if meta.Duration > 0 {
		e.send(fmt.Sprintf("video analysis: total_frames=%d fps=%.2f duration=%.2fs density=%.1f frames/s",
			meta.TotalFrames, meta.FPS, meta.Duration, float64(meta.TotalFrames)/meta.Duration))
	} else {
		e.send(fmt.Sprintf("video analysis: total_frames=%d fps=%.2f", meta.TotalFrames, meta.FPS))
	}

	switch e.cfg.Mode {
	case ModeSmart:
		e.send("selected smart extraction mode")
		kf, err = e.smart(r)
		if err == nil {
			break
		}
		e.log.Warning("smart extraction failed, falling back to interval extraction", "error", err.Error())
		kf, err = e.interval(r, e.intervalFrames(meta))
		if err == nil {
			break
		}
		e.log.Error("interval extraction also failed, using minimal extraction", "error", err.Error())
		kf, err = e.minimal(r), nil
	case ModeUniform:
		e.send("selected uniform extraction mode")
		e.send("strategy: evenly spaced frame indices")
		kf, err = e.uniform(r, true, 0, nil)
		err = errors.Wrap(err, "uniform extraction")
	case ModeInterval:
		e.send("selected interval extraction mode")
		kf, err = e.interval(r, e.intervalFrames(meta))
		err = errors.Wrap(err, "interval extraction")
	default:
		return nil, fmt.Errorf("unknown extraction mode: %s", e.cfg.Mode)
	}
	if err != nil {
		return nil, err
	}

	e.send("keyframe extraction task complete")
	e.send(fmt.Sprintf("extracted: %d keyframes", len(kf)))
	e.send(fmt.Sprintf("files: %s", preview(kf, 5)))
	return kf, nil
}

// monitor logs the outcome and duration of an extraction on all exit paths.
func (e *Extractor) monitor(start time.Time, kf *[]Keyframe, err *error) {
	elapsed := time.Since(start).Seconds()
	if *err != nil {
		e.log.Error("keyframe extraction failed", "elapsed", fmt.Sprintf("%.2fs", elapsed), "error", (*err).Error())
		return
	}
	e.log.Info("keyframe extraction succeeded", "elapsed", fmt.Sprintf("%.2fs", elapsed), "keyframes", len(*kf))
}

// intervalFrames derives the frame stride for interval mode from duration,
// a user supplied seconds interval, and the frame budget. Long videos are
// never sampled finer than duration/300.
func (e *Extractor) intervalFrames(meta video.Meta) int {
	var secs float64
	switch {
	case meta.Duration > 300:
		secs = meta.Duration / 300
		if e.cfg.TimeInterval > 0 && e.cfg.TimeInterval > secs {
			secs = e.cfg.TimeInterval
		}
	case e.cfg.TimeInterval > 0:
		secs = e.cfg.TimeInterval
	default:
		secs = meta.Duration / float64(e.cfg.MaxFrames)
	}

	if meta.FPS > 0 {
		n := int(math.Round(secs * meta.FPS))
		if n < 1 {
			n = 1
		}
		return n
	}
	n := meta.TotalFrames / e.cfg.MaxFrames
	if n < 1 {
		n = 1
	}
	return n
}

// writeFrame resizes a frame to the output height, writes it under the next
// collision-free name, and returns the resulting Keyframe.
func (e *Extractor) writeFrame(m vision.Image, n int, ts float64, used map[string]bool) (Keyframe, error) {
	name := allocName(n, ts, used)
	resized := vision.ResizeToHeight(m, targetHeight)
	path := filepath.Join(e.cfg.OutputDir, name)
	size, err := e.cfg.Writer.WriteJPEG(path, resized, jpegQuality)
	if err != nil {
		return Keyframe{}, err
	}
	return Keyframe{Path: path, Timestamp: ts, Width: resized.W, Height: resized.H, FileSize: size}, nil
}

// allocName returns the next keyframe filename, suffixing _v1, _v2, ... on
// collision, and records it as used.
func allocName(n int, ts float64, used map[string]bool) string {
	base := fmt.Sprintf("keyframe_%03d_%.2fs.jpg", n, ts)
	name := base
	for i := 1; used[name]; i++ {
		name = fmt.Sprintf("%s_v%d.jpg", strings.TrimSuffix(base, ".jpg"), i)
	}
	used[name] = true
	return name
}

// timestampFor converts a frame index to seconds of video time, falling
// back to the raw index when the frame rate is unknown.
func timestampFor(idx int, fps float64) float64 {
	if fps > 0 {
		return float64(idx) / fps
	}
	return float64(idx)
}

// preview renders the first n keyframe basenames for summary logging.
func preview(kf []Keyframe, n int) string {
	names := make([]string, 0, n)
	for i, k := range kf {
		if i >= n {
			break
		}
		names = append(names, filepath.Base(k.Path))
	}
	s := strings.Join(names, ", ")
	if len(kf) > n {
		s += ", ..."
	}
	return s
}
