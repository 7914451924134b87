/*
DESCRIPTION
  writer.go encodes the stream header and per-frame records to an
  io.Writer using the binary little-endian (and big-endian header
  dimension) layout the host renderer expects.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package stream encodes the cellvid output format: a 5-byte header
// followed by a sequence of frame records, each a 4-byte count and
// that many 6-byte pixel records.
package stream

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ausocean/cellvid/diff"
)

// hexDigits maps a 0-15 cell index to its ASCII hex character, per the
// wire format.
var hexDigits = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// IOError wraps a write failure to the output sink.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("stream: %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// Writer encodes a cellvid stream to an underlying io.Writer. Writer
// is not safe for concurrent use; the pipeline's writer goroutine owns
// it exclusively.
type Writer struct {
	w             io.Writer
	width, height uint16
	fps           uint8
}

// NewWriter returns a Writer for a stream of the given frame
// dimensions and output frame rate. width, height and fps must each
// fit in their wire-format width (uint16, uint16, uint8 respectively).
func NewWriter(w io.Writer, width, height, fps int) (*Writer, error) {
	if width < 0 || width > 0xffff {
		return nil, fmt.Errorf("stream: width %d out of range", width)
	}
	if height < 0 || height > 0xffff {
		return nil, fmt.Errorf("stream: height %d out of range", height)
	}
	if fps < 0 || fps > 0xff {
		return nil, fmt.Errorf("stream: fps %d out of range", fps)
	}
	return &Writer{w: w, width: uint16(width), height: uint16(height), fps: uint8(fps)}, nil
}

// WriteHeader writes the 5-byte stream header: width and height as
// big-endian u16, followed by the output fps byte.
func (w *Writer) WriteHeader() error {
	var hdr [5]byte
	hdr[0] = byte(w.width >> 8)
	hdr[1] = byte(w.width)
	hdr[2] = byte(w.height >> 8)
	hdr[3] = byte(w.height)
	hdr[4] = w.fps
	if _, err := w.w.Write(hdr[:]); err != nil {
		return &IOError{Op: "write header", Err: err}
	}
	return nil
}

// WriteFrame writes one frame record: a little-endian u32 count
// followed by that many 6-byte pixel records (u16 LE x, u16 LE y, and
// the ASCII hex bg/fg cell characters).
func (w *Writer) WriteFrame(recs []diff.Record) error {
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(recs)))
	if _, err := w.w.Write(countBuf[:]); err != nil {
		return &IOError{Op: "write frame count", Err: err}
	}

	buf := make([]byte, 6*len(recs))
	for i, r := range recs {
		off := i * 6
		binary.LittleEndian.PutUint16(buf[off:], r.X)
		binary.LittleEndian.PutUint16(buf[off+2:], r.Y)
		buf[off+4] = hexDigits[r.BG&0xf]
		buf[off+5] = hexDigits[r.FG&0xf]
	}
	if _, err := w.w.Write(buf); err != nil {
		return &IOError{Op: "write frame records", Err: err}
	}
	return nil
}
