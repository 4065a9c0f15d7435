/*
DESCRIPTION
  keyframes is a command line tool that extracts representative still
  images from a video file into a directory of JPEGs, using content-driven
  smart extraction with interval and uniform fallback modes.

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

// Package main provides the keyframes CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/keyframes/extract"
)

// Current software version.
const version = "v1.0.0"

// Logging configuration.
const (
	logFile      = "keyframes.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

// Exit codes.
const (
	exitOK           = 0
	exitNoKeyframes  = 1
	exitInvalidInput = 2
)

func main() {
	var (
		out          = flag.String("out", "", "output directory (default: {video_dir}/{video_stem}_keyframes)")
		maxFrames    = flag.Int("max-frames", 300, "maximum number of keyframes")
		mode         = flag.String("mode", extract.ModeSmart, "extraction mode: smart, uniform or interval")
		timeInterval = flag.Float64("time-interval", 0, "seconds between frames for interval mode")
		debug        = flag.Bool("debug", false, "write debug artifacts next to the keyframes")
		showVersion  = flag.Bool("version", false, "show version")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(exitOK)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: keyframes [flags] <video>")
		flag.PrintDefaults()
		os.Exit(exitInvalidInput)
	}
	videoPath, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid video path: %v\n", err)
		os.Exit(exitInvalidInput)
	}
	fi, err := os.Stat(videoPath)
	if err != nil || !fi.Mode().IsRegular() {
		fmt.Fprintf(os.Stderr, "invalid video file: %s\n", videoPath)
		os.Exit(exitInvalidInput)
	}

	outDir := *out
	if outDir == "" {
		stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
		outDir = filepath.Join(filepath.Dir(videoPath), stem+"_keyframes")
	}
	err = os.MkdirAll(outDir, 0755)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create output directory: %v\n", err)
		os.Exit(exitNoKeyframes)
	}

	// Create lumberjack logger to handle logging to file, and log to both
	// the file and stderr.
	fileLog := &lumberjack.Logger{
		Filename:   filepath.Join(outDir, logFile),
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	log.Info("starting keyframes", "version", version, "video", videoPath, "out", outDir)

	e, err := extract.New(extract.Config{
		Logger:       log,
		OutputDir:    outDir,
		MaxFrames:    *maxFrames,
		Mode:         *mode,
		TimeInterval: *timeInterval,
		Debug:        *debug,
	})
	if err != nil {
		log.Error("could not initialise extractor", "error", err.Error())
		os.Exit(exitNoKeyframes)
	}

	var keyframes []extract.Keyframe
	if *debug {
		keyframes, _, err = e.DebugExtract(videoPath)
	} else {
		keyframes, err = e.ExtractFile(videoPath)
	}
	if err != nil {
		log.Error("extraction failed", "error", err.Error())
		os.Exit(exitNoKeyframes)
	}
	if len(keyframes) == 0 {
		fmt.Fprintln(os.Stderr, "no keyframes produced")
		os.Exit(exitNoKeyframes)
	}

	fmt.Printf("extracted %d keyframes -> %s\n", len(keyframes), outDir)
	names := make([]string, 0, 5)
	for i, k := range keyframes {
		if i >= 5 {
			break
		}
		names = append(names, filepath.Base(k.Path))
	}
	suffix := ""
	if len(keyframes) > 5 {
		suffix = " ..."
	}
	fmt.Printf("examples: %s%s\n", strings.Join(names, ", "), suffix)
	os.Exit(exitOK)
}
