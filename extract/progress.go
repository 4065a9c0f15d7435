/*
DESCRIPTION
  progress.go defines the progress events emitted during extraction.

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

// Progress describes a newly committed keyframe and overall coverage. It is
// delivered to the configured Sink on every commit.
type Progress struct {
	Coverage          float64 // Fraction of video duration covered, in [0,1].
	ElapsedSeconds    float64 // Commit timestamp in video time.
	DurationSeconds   float64
	SavedFrames       int
	MaxFrames         int
	NewFramePath      string
	NewFrameTimestamp float64
	ChangeScore       float64
	QualityScore      float64
	Width             int
	Height            int
	FileSize          int64
}

// Sink receives extraction progress. Implementations must be prepared for
// synchronous calls from the extraction loop.
type Sink interface {
	// Update is called with every committed keyframe.
	Update(Progress)

	// Message is called with free-form milestone messages.
	Message(string)
}

// send logs a milestone message and forwards it to the sink when one is set.
func (e *Extractor) send(msg string) {
	if e.cfg.Sink != nil {
		e.cfg.Sink.Message(msg)
	}
	e.log.Info(msg)
}
