/*
DESCRIPTION
  rawsource.go implements a pipeline.FrameSource over a file of
  fixed-size, pre-decoded BGRA frames, standing in for the out-of-scope
  demux/decode/scale stage described by the spec's FrameSource
  contract. It is modeled on device/file's AVFile: a path is opened
  lazily on first use and read sequentially, with mid-stream read failures
  surfaced as end-of-stream rather than as errors.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package rawsource implements pipeline.FrameSource over a plain file
// of concatenated, fixed-size BGRA frames.
package rawsource

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"

	"github.com/ausocean/cellvid/frame"
)

// File is a pipeline.FrameSource reading concatenated, fixed-size BGRA
// frames from a file. Each frame occupies frame.Stride(width,align)*height
// bytes, matching the row-padded layout the rest of the module expects.
// The buffer ReadFrame returns is overwritten by the next ReadFrame, so
// concurrent readers would see each other's frames; the pipeline calls
// ReadFrame only from its single decoder goroutine.
type File struct {
	log                  logging.Logger
	path                 string
	width, height, align int
	fps                  int

	mu   sync.Mutex
	f    *os.File
	buf  []byte
	size int
}

// New returns a File FrameSource for the raw frame file at path, with
// frames of the given width/height/align at the given source frame
// rate. The file is not opened until the first call to ReadFrame or
// SeekFrame.
func New(log logging.Logger, path string, width, height, align, fps int) *File {
	stride := frame.Stride(width, align)
	return &File{
		log: log, path: path,
		width: width, height: height, align: align, fps: fps,
		size: stride * height,
		buf:  make([]byte, stride*height),
	}
}

// Width returns the frame width in pixels.
func (s *File) Width() int { return s.width }

// Height returns the frame height in pixels.
func (s *File) Height() int { return s.height }

// FrameRate returns the configured source frame rate.
func (s *File) FrameRate() int { return s.fps }

// FrameSizeInBytes returns the size, in bytes, of each padded BGRA
// frame this source yields.
func (s *File) FrameSizeInBytes() int { return s.size }

// open lazily opens the underlying file, matching device/file's
// Start-on-first-use convention adapted for a source with no explicit
// lifecycle method in the FrameSource contract.
func (s *File) open() error {
	if s.f != nil {
		return nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return errors.Wrap(err, "rawsource: could not open raw frame file")
	}
	s.f = f
	return nil
}

// ReadFrame reads the next fixed-size frame from the file. A clean
// end-of-file returns (nil, false, nil). Per the FrameSource contract,
// a mid-stream read failure (a short, non-EOF-terminated frame) is
// also surfaced as end-of-stream rather than as an error; only a
// failure to open the file at all is reported as an error.
func (s *File) ReadFrame() ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return nil, false, err
	}

	_, err := io.ReadFull(s.f, s.buf)
	switch {
	case err == nil:
		return s.buf, true, nil
	case errors.Is(err, io.EOF):
		return nil, false, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.log.Warning("rawsource: truncated final frame, treating as end of stream")
		return nil, false, nil
	default:
		s.log.Warning("rawsource: read failure mid-stream, treating as end of stream", "error", err.Error())
		return nil, false, nil
	}
}

// SeekFrame rewinds the source so the next ReadFrame returns frame 0.
// Only n==0 is supported, per the FrameSource contract.
func (s *File) SeekFrame(n int) error {
	if n != 0 {
		return fmt.Errorf("rawsource: SeekFrame(%d): only SeekFrame(0) is supported", n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "rawsource: could not seek to start")
	}
	return nil
}

// Close releases the underlying file handle. It is safe to call Close
// without having read any frames. A ReadFrame or SeekFrame after Close
// reopens the file from the start.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
