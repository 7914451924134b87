/*
DESCRIPTION
  config.go defines the cellvid Config struct, its validation and
  defaulting, and a map-based Update mechanism for runtime
  reconfiguration, following the pattern of revid's own config package.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config holds the configuration settings for a cellvid
// pipeline.
package config

import (
	"errors"

	"github.com/ausocean/utils/logging"
)

// Config provides the parameters relevant to a cellvid pipeline
// instance. Defaults for zero-valued fields are applied by Validate.
type Config struct {
	// Width and Height are the target frame dimensions in pixels, as
	// produced by the configured FrameSource.
	Width, Height uint

	// Align is the row alignment, in pixels, that the FrameSource pads
	// each row to. Zero defaults to 64, matching the teacher's FFmpeg
	// convention.
	Align uint

	// Workers is the number of converter goroutines to run. Zero means
	// auto-select: max(1, min(6, runtime.NumCPU()-2)).
	Workers uint

	// ConvertQueueCap bounds the decoder->converter channel. Zero
	// defaults to 4*Workers.
	ConvertQueueCap uint

	// SourceFPS is the input frame rate reported by the FrameSource,
	// used to compute the frame-skipping factor.
	SourceFPS uint

	// PalettePath is a path to a 16-color base palette description
	// file (one "B G R" triple per line). Empty selects the built-in
	// Watlington base palette.
	PalettePath string

	// OutputPath is the destination file for the encoded stream.
	OutputPath string

	// Logger holds an implementation of the logging.Logger interface.
	// This must be set for the pipeline to work correctly.
	Logger logging.Logger

	// LogLevel is the logging verbosity level. Valid values are
	// defined by enums from the logging package: logging.Debug,
	// logging.Info, logging.Warning, logging.Error, logging.Fatal.
	LogLevel int8
}

// Validate checks c's fields for errors and defaults any that have
// been left unset.
func (c *Config) Validate() error {
	if c.Logger == nil {
		return errors.New("config: Logger must be set")
	}
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	c.Logger.SetLevel(c.LogLevel)
	return nil
}

// Update takes a map of configuration variable names and their
// corresponding string values, parses each and assigns it to the
// matching Config field.
func (c *Config) Update(vars map[string]string) {
	for _, v := range Variables {
		if val, ok := vars[v.Name]; ok && v.Update != nil {
			v.Update(c, val)
		}
	}
}

// LogInvalidField logs that a field was bad or unset and is being
// defaulted to def.
func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
