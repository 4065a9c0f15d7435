/*
DESCRIPTION
  config.go contains the configuration settings for keyframe extraction.

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
	"errors"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/keyframes/vision"
)

// Extraction modes.
const (
	ModeSmart    = "smart"
	ModeUniform  = "uniform"
	ModeInterval = "interval"
)

// Defaults for configuration fields left unset.
const (
	defaultMaxFrames = 300
	defaultMode      = ModeSmart
)

// Config provides parameters relevant to an Extractor instance. A new config
// must be passed to the constructor.
type Config struct {
	// Logger is the logger for extraction to use. Must be set.
	Logger logging.Logger

	// OutputDir is the directory keyframe JPEGs are written to. The
	// directory is created if it does not exist. Must be set.
	OutputDir string

	// MaxFrames bounds the number of keyframes extracted.
	MaxFrames int

	// Mode selects the extraction mode: ModeSmart, ModeUniform or
	// ModeInterval.
	Mode string

	// TimeInterval is the seconds between frames for ModeInterval. Ignored
	// by the other modes.
	TimeInterval float64

	// Sink optionally receives progress events and milestone messages.
	Sink Sink

	// Debug enables the debug artifacts: a JSON summary and a score
	// timeline plot written next to the keyframes.
	Debug bool

	// Scoring holds the scoring constants. Zero value means defaults.
	Scoring vision.Config

	// Writer encodes frames to disk. Zero value means the JPEG file writer.
	Writer ImageWriter
}

// Validate checks for required fields and fills in sane defaults for the
// rest. Replacing a bad MaxFrames or a bad Mode is logged; the other
// defaults are filled in silently.
func (c *Config) Validate() error {
	if c.Logger == nil {
		return errors.New("no logger set in config")
	}
	if c.OutputDir == "" {
		return errors.New("no output directory set in config")
	}
	if c.MaxFrames <= 0 {
		c.Logger.Info("MaxFrames bad or unset, defaulting", "MaxFrames", defaultMaxFrames)
		c.MaxFrames = defaultMaxFrames
	}
	switch c.Mode {
	case ModeSmart, ModeUniform, ModeInterval:
	case "":
		c.Mode = defaultMode
	default:
		c.Logger.Info("Mode bad, defaulting", "Mode", defaultMode)
		c.Mode = defaultMode
	}
	if c.Scoring == (vision.Config{}) {
		c.Scoring = vision.DefaultConfig()
	}
	if c.Writer == nil {
		c.Writer = FileWriter{}
	}
	return nil
}
