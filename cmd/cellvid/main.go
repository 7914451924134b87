/*
DESCRIPTION
  cellvid is a command-line tool that converts a raw BGRA frame file
  into a palettized cellvid stream for a character-cell display host.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements the cellvid command-line conversion tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/cellvid/config"
	"github.com/ausocean/cellvid/palette"
	"github.com/ausocean/cellvid/pipeline"
	"github.com/ausocean/cellvid/rawsource"
)

// Logging configuration.
const (
	logPath      = "/var/log/cellvid/cellvid.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

// Current software version.
const version = "v0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "show version")
	inPath := flag.String("in", "", "path to raw BGRA frame file")
	outPath := flag.String("out", "", "path to write the cellvid stream to")
	width := flag.Int("width", 0, "source frame width in pixels")
	height := flag.Int("height", 0, "source frame height in pixels")
	align := flag.Int("align", config.DefaultAlign, "row alignment in pixels of the input frames")
	fps := flag.Int("fps", 30, "source frame rate")
	workers := flag.Int("workers", 0, "number of converter workers (0 = auto)")
	palettePath := flag.String("palette", "", "path to a 16-color base palette file (empty = built-in)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if *inPath == "" || *outPath == "" || *width <= 0 || *height <= 0 {
		log.Fatal("cellvid: -in, -out, -width and -height are all required")
	}

	base := palette.WatlingtonBase
	if *palettePath != "" {
		var err error
		base, err = palette.LoadBase(*palettePath)
		if err != nil {
			log.Fatal("cellvid: could not load base palette", "error", err.Error())
		}
	}

	gp, tables, err := palette.NewGamePalette(base)
	if err != nil {
		log.Fatal("cellvid: could not build game palette", "error", err.Error())
	}

	src := rawsource.New(log, *inPath, *width, *height, *align, *fps)
	defer src.Close()

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatal("cellvid: could not create output file", "error", err.Error())
	}
	defer out.Close()

	cfg := config.Config{
		Width: uint(*width), Height: uint(*height),
		Align:       uint(*align),
		Workers:     uint(*workers),
		SourceFPS:   uint(*fps),
		PalettePath: *palettePath,
		OutputPath:  *outPath,
		Logger:      log,
		LogLevel:    logVerbosity,
	}

	p, err := pipeline.New(cfg, tables, gp, src, out)
	if err != nil {
		log.Fatal("cellvid: could not construct pipeline", "error", err.Error())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Info("cellvid: starting conversion", "in", *inPath, "out", *outPath)
	if err := p.Run(ctx); err != nil {
		log.Fatal("cellvid: conversion failed", "error", err.Error())
	}
	log.Info("cellvid: conversion complete")
}
