/*
DESCRIPTION
  smart.go implements content-driven keyframe extraction: streaming
  per-second aggregation of scored frames with an adaptive temporal step,
  dark frame rejection and near-duplicate suppression at commit time.

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

package extract

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/ausocean/keyframes/video"
	"github.com/ausocean/keyframes/vision"
)

// commitSimilarity is the similarity threshold applied when committing a
// candidate against the previously saved frame. Stricter than the kernel
// default to suppress near-duplicates across seconds.
const commitSimilarity = 0.8

// shortVideo is the duration in seconds below which the strategy log calls
// the video short.
const shortVideo = 120

// candidate is the best frame observed so far within the active second.
type candidate struct {
	frame     vision.Image // Owned copy.
	timestamp float64
	total     float64
	quality   float64
	change    float64
}

// smartState is the mutable state of one smart extraction call. All
// mutations are serial.
type smartState struct {
	currentTime float64
	step        float64
	active      int // Active integer second.
	hasActive   bool
	best        *candidate
	saved       []Keyframe
	used        map[string]bool

	lastFrame *vision.Image // Owned copy of the last committed frame.
	lastGray  *vision.Gray
	lastTime  float64

	skippedDark    int
	skippedSimilar int
	lastReport     float64
}

// smart runs content-driven extraction against an open reader. At most one
// frame is committed per integer second of video time, and no committed
// frame is near-identical to its predecessor.
func (e *Extractor) smart(r video.Reader) ([]Keyframe, error) {
	start := time.Now()
	meta := r.Meta()
	cfg := e.cfg.Scoring
	e.samples, e.commits = nil, nil

	e.send("=== content-driven keyframe extraction ===")
	if meta.Duration > 0 {
		e.send(fmt.Sprintf("video info: total_frames=%d fps=%.2f duration=%.2fs density=%.1f frames/s",
			meta.TotalFrames, meta.FPS, meta.Duration, float64(meta.TotalFrames)/meta.Duration))
	} else {
		e.send(fmt.Sprintf("video info: total_frames=%d fps=%.2f", meta.TotalFrames, meta.FPS))
	}
	if meta.Duration <= shortVideo {
		e.log.Info("strategy: short video content-driven mode")
	} else {
		e.log.Info("strategy: long video content-driven mode")
	}
	e.send(fmt.Sprintf("extraction parameters: min_interval=%.1fs max_interval=%.1fs scene_change_threshold=%.1f max_frames=%d",
		cfg.MinInterval, cfg.MaxInterval, cfg.SceneChangeThreshold, e.cfg.MaxFrames))
	e.send("strategy: adaptive stepping + scene change detection + quality scoring, best frame per second")

	s := &smartState{step: cfg.MinInterval, used: make(map[string]bool)}

	for s.currentTime < meta.Duration && len(s.saved) < e.cfg.MaxFrames {
		if s.currentTime-s.lastReport >= 10 {
			s.lastReport = s.currentTime
			e.send(fmt.Sprintf("progress %.1f%% | extracted %d frames | at %.1fs",
				s.currentTime/meta.Duration*100, len(s.saved), s.currentTime))
		}

		curSec := int(s.currentTime)
		if !s.hasActive {
			s.active = curSec
			s.hasActive = true
		} else if curSec != s.active {
			if len(s.saved) < e.cfg.MaxFrames {
				e.commitBest(s, meta)
			}
			s.active = curSec
		}

		idx := int(s.currentTime * meta.FPS)
		frame, err := r.ReadAt(idx)
		if err != nil {
			return nil, fmt.Errorf("could not read frame %d: %w", idx, err)
		}
		if frame == nil {
			s.currentTime += s.step
			continue
		}

		if vision.IsDark(*frame) {
			s.skippedDark++
			if s.skippedDark%10 == 1 {
				e.send(fmt.Sprintf("skipping dark frame at %.2fs", s.currentTime))
			}
			s.currentTime += s.step
			continue
		}

		total, quality, change := cfg.ComprehensiveScore(*frame, s.lastFrame)
		if e.cfg.Debug {
			e.samples = append(e.samples, scoreSample{t: s.currentTime, score: total})
		}
		if s.best == nil || total > s.best.total {
			s.best = &candidate{
				frame:     frame.Clone(),
				timestamp: s.currentTime,
				total:     total,
				quality:   quality,
				change:    change,
			}
		}

		if change > cfg.SceneChangeThreshold {
			s.step = cfg.MinInterval
		} else {
			s.step = math.Min(cfg.MaxInterval, s.step*1.2)
		}
		s.currentTime += s.step
	}

	// Residual best of the final second.
	if len(s.saved) < e.cfg.MaxFrames {
		e.commitBest(s, meta)
	}

	covered := math.Min(s.currentTime, meta.Duration)
	summary := fmt.Sprintf("content-driven extraction complete: saved=%d dark_skips=%d similar_skips=%d covered=%.2fs",
		len(s.saved), s.skippedDark, s.skippedSimilar, covered)
	if len(s.saved) > 0 && meta.Duration > 0 {
		summary += fmt.Sprintf(" spacing=%.2fs/frame", meta.Duration/float64(len(s.saved)))
	}
	e.send(summary)

	elapsed := time.Since(start).Seconds()
	e.log.Info("smart extraction summary", "keyframes", len(s.saved), "elapsed", fmt.Sprintf("%.2fs", elapsed))
	if elapsed > 0 {
		e.log.Info("extraction rate", "frames/s", fmt.Sprintf("%.1f", float64(len(s.saved))/elapsed))
	}
	if meta.Duration > 0 {
		e.log.Info("coverage density", "frames/s", fmt.Sprintf("%.2f", float64(len(s.saved))/meta.Duration))
	}
	return s.saved, nil
}

// commitBest writes the active second's best candidate, unless it is
// near-identical to the previously saved frame. The candidate buffer is
// cleared either way; write failures skip the commit and extraction
// continues.
func (e *Extractor) commitBest(s *smartState, meta video.Meta) {
	if s.best == nil {
		return
	}
	best := s.best
	s.best = nil

	bestGray := vision.ToGray(best.frame)
	if s.lastGray != nil && vision.FramesSimilar(*s.lastGray, bestGray, commitSimilarity) {
		s.skippedSimilar++
		return
	}

	kf, err := e.writeFrame(best.frame, len(s.saved), best.timestamp, s.used)
	if err != nil {
		e.log.Warning("could not write keyframe, skipping commit", "timestamp", best.timestamp, "error", err.Error())
		return
	}
	s.saved = append(s.saved, kf)
	s.lastFrame = &best.frame
	s.lastGray = &bestGray
	s.lastTime = best.timestamp
	e.send(fmt.Sprintf("saved keyframe %s | score=%.1f | quality=%.1f", filepath.Base(kf.Path), best.total, best.quality))

	if e.cfg.Debug {
		e.commits = append(e.commits, best.timestamp)
	}
	if e.cfg.Sink != nil {
		var coverage float64
		if meta.Duration > 0 {
			coverage = math.Min(1, best.timestamp/meta.Duration)
		}
		e.cfg.Sink.Update(Progress{
			Coverage:          coverage,
			ElapsedSeconds:    best.timestamp,
			DurationSeconds:   meta.Duration,
			SavedFrames:       len(s.saved),
			MaxFrames:         e.cfg.MaxFrames,
			NewFramePath:      kf.Path,
			NewFrameTimestamp: best.timestamp,
			ChangeScore:       best.change,
			QualityScore:      best.quality,
			Width:             kf.Width,
			Height:            kf.Height,
			FileSize:          kf.FileSize,
		})
	}

	cfg := e.cfg.Scoring
	if best.change > cfg.SceneChangeThreshold {
		s.step = cfg.MinInterval
	} else {
		s.step = math.Min(cfg.MaxInterval, s.step*1.5)
	}
}
