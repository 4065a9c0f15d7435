/*
DESCRIPTION
  debug.go writes the debug artifacts of an extraction run: a JSON summary
  of video info, parameters and performance, and a plot of the per-sample
  comprehensive scores.

AUTHORS
  Russell Stanley <russell@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/keyframes/video"
)

// DebugInfo is the debug artifact written alongside the keyframes. It is
// not consulted by the extractor itself.
type DebugInfo struct {
	VideoInfo        VideoInfo        `json:"video_info"`
	ExtractionParams ExtractionParams `json:"extraction_params"`
	Performance      Performance      `json:"performance"`
	Error            string           `json:"error,omitempty"`
}

// VideoInfo mirrors the metadata of the analysed video.
type VideoInfo struct {
	FPS         float64 `json:"fps"`
	TotalFrames int     `json:"total_frames"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Duration    float64 `json:"duration"`
}

// ExtractionParams records the parameters the run was performed with.
type ExtractionParams struct {
	Method           string  `json:"method"`
	MaxFrames        int     `json:"max_frames"`
	ChangeThreshold  float64 `json:"change_threshold"`
	QualityThreshold float64 `json:"quality_threshold"`
}

// Performance records timing of the run.
type Performance struct {
	ProcessingTime float64 `json:"processing_time"`
	TotalKeyframes int     `json:"total_keyframes"`
	FPSPerformance float64 `json:"fps_performance"`
}

// DebugExtract runs an extraction and writes the debug artifacts to the
// output directory: debug_keyframes_{unix}.json always, and a
// debug_scores_{unix}.png score timeline for smart runs. The video is
// opened once; an open failure takes the same path as in ExtractFile and
// is recorded in the artifact.
func (e *Extractor) DebugExtract(path string) ([]Keyframe, DebugInfo, error) {
	start := time.Now()
	var info DebugInfo
	info.ExtractionParams = ExtractionParams{
		Method:           e.cfg.Mode,
		MaxFrames:        e.cfg.MaxFrames,
		ChangeThreshold:  e.cfg.Scoring.SceneChangeThreshold,
		QualityThreshold: e.cfg.Scoring.QualityThreshold,
	}

	var kf []Keyframe
	var err error
	r, oerr := video.Open(path)
	if oerr != nil {
		info.Error = oerr.Error()
		kf, err = e.openFailed(oerr)
	} else {
		m := r.Meta()
		info.VideoInfo = VideoInfo{
			FPS:         m.FPS,
			TotalFrames: m.TotalFrames,
			Width:       m.Width,
			Height:      m.Height,
			Duration:    m.Duration,
		}
		kf, err = e.Extract(r)
		r.Close()
	}
	elapsed := time.Since(start).Seconds()
	info.Performance = Performance{ProcessingTime: elapsed, TotalKeyframes: len(kf)}
	if elapsed > 0 {
		info.Performance.FPSPerformance = float64(len(kf)) / elapsed
	}
	if err != nil {
		info.Error = err.Error()
	}

	now := time.Now().Unix()
	jsonPath := filepath.Join(e.cfg.OutputDir, fmt.Sprintf("debug_keyframes_%d.json", now))
	werr := writeDebugJSON(jsonPath, info)
	if werr != nil {
		e.log.Warning("could not write debug artifact", "error", werr.Error())
	} else {
		e.log.Info("debug artifact written", "path", jsonPath)
	}

	if len(e.samples) > 0 {
		plotPath := filepath.Join(e.cfg.OutputDir, fmt.Sprintf("debug_scores_%d.png", now))
		perr := e.writeScorePlot(plotPath)
		if perr != nil {
			e.log.Warning("could not write score plot", "error", perr.Error())
		} else {
			e.log.Info("score plot written", "path", plotPath)
		}
	}
	return kf, info, err
}

func writeDebugJSON(path string, info DebugInfo) error {
	b, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal debug info: %w", err)
	}
	return os.WriteFile(path, b, 0644)
}

// writeScorePlot renders the comprehensive score timeline of the last smart
// run, with committed frames marked.
func (e *Extractor) writeScorePlot(path string) error {
	p := plot.New()
	p.Title.Text = "comprehensive score"
	p.X.Label.Text = "video time (s)"
	p.Y.Label.Text = "score"

	xys := make(plotter.XYs, len(e.samples))
	for i, s := range e.samples {
		xys[i].X = s.t
		xys[i].Y = s.score
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("could not build score line: %w", err)
	}
	p.Add(line)

	if len(e.commits) > 0 {
		pts := make(plotter.XYs, 0, len(e.commits))
		for _, t := range e.commits {
			pts = append(pts, plotter.XY{X: t, Y: scoreAt(e.samples, t)})
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("could not build commit markers: %w", err)
		}
		p.Add(scatter)
	}
	return p.Save(20*vg.Centimeter, 10*vg.Centimeter, path)
}

// scoreAt finds the sampled score closest to time t.
func scoreAt(samples []scoreSample, t float64) float64 {
	var best float64
	bestDist := -1.0
	for _, s := range samples {
		d := s.t - t
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = s.score
		}
	}
	return best
}
