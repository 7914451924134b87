/*
DESCRIPTION
  source.go defines the FrameSource contract the pipeline consumes:
  an abstraction over the out-of-scope demux/decode/scale stage that
  yields BGRA frames at a fixed target resolution and known frame rate.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pipeline implements the decode -> quantize -> frame-diff
// encode producer/converter/consumer pipeline: a decoder goroutine
// feeding a bounded convert queue, N converter workers feeding an
// ordered write queue, and a single writer goroutine that reassembles
// frames in strictly ascending order.
package pipeline

import "errors"

// SourceError wraps a FrameSource failure encountered outside of the
// normal EOF path.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string { return "pipeline: source error: " + e.Err.Error() }
func (e *SourceError) Unwrap() error { return e.Err }

// ErrSourceClosed is a sentinel a FrameSource implementation may return
// from ReadFrame once it has been closed. The pipeline treats it like
// any other ReadFrame error; rawsource.File does not return it.
var ErrSourceClosed = errors.New("pipeline: source closed")

// FrameSource is the external collaborator that yields decoded BGRA
// frames. The pipeline calls ReadFrame only from its single decoder
// goroutine, and SeekFrame and FrameRate only from Run before the
// stages start. Width and Height are also called from the worker and
// writer goroutines, so they must be safe to call concurrently with
// ReadFrame.
type FrameSource interface {
	// ReadFrame returns the next frame's bytes and true, or nil and
	// false at end of stream. The returned slice is only valid until
	// the next call to ReadFrame; callers that need to retain it must
	// copy it first.
	ReadFrame() ([]byte, bool, error)

	// SeekFrame resets the source so the next ReadFrame returns frame
	// n (only n==0, "rewind to the start", is required by this spec).
	SeekFrame(n int) error

	// FrameRate returns the truncated average frame rate of the
	// source stream.
	FrameRate() int

	// FrameSizeInBytes returns the size, in bytes, of each frame
	// buffer returned by ReadFrame, including row padding.
	FrameSizeInBytes() int

	// Width and Height return the target frame dimensions in pixels.
	Width() int
	Height() int
}
