/*
DESCRIPTION
  frame.go defines the BGRA raster and palettized frame types shared
  across the pipeline, along with the row-stride/padding arithmetic
  every component must respect.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package frame defines the BGRA and palettized (pal8) frame buffer
// types, and the Mapper that converts between them using a quantizer
// and an error diffuser.
package frame

import "fmt"

// BytesPerPixel is the number of bytes per BGRA pixel.
const BytesPerPixel = 4

// Pad returns the row padding, in pixels, that a width w must receive
// to make the row stride a multiple of align pixels.
func Pad(w, align int) int {
	if align <= 0 {
		return 0
	}
	return (align - w%align) % align
}

// Stride returns the row stride, in bytes, for a BGRA frame of width w
// aligned to align pixels.
func Stride(w, align int) int {
	return (w + Pad(w, align)) * BytesPerPixel
}

// Frame is a BGRA raster: width W, height H, and a byte buffer Pix
// whose rows are Stride bytes apart (Stride may exceed W*4 to account
// for row padding). An alpha channel may be present but is ignored by
// every consumer in this module.
type Frame struct {
	W, H   int
	Stride int
	Pix    []byte
}

// NewFrame returns a Frame with a freshly allocated, zeroed Pix buffer
// sized for height h rows of the given stride.
func NewFrame(w, h, stride int) *Frame {
	return &Frame{W: w, H: h, Stride: stride, Pix: make([]byte, stride*h)}
}

// At returns the BGR channels of the pixel at (x,y). It panics if the
// frame's buffer is too small for the requested row, which indicates a
// caller bug rather than a recoverable runtime condition.
func (f *Frame) At(x, y int) (b, g, r uint8) {
	off := y*f.Stride + x*BytesPerPixel
	return f.Pix[off], f.Pix[off+1], f.Pix[off+2]
}

// Validate checks that Pix is large enough to hold H rows of Stride
// bytes and that Stride can fit W pixels.
func (f *Frame) Validate() error {
	if f.Stride < f.W*BytesPerPixel {
		return fmt.Errorf("frame: stride %d too small for width %d", f.Stride, f.W)
	}
	if len(f.Pix) < f.Stride*f.H {
		return fmt.Errorf("frame: buffer length %d too small for %d rows of stride %d", len(f.Pix), f.H, f.Stride)
	}
	return nil
}

// Pal8Frame is an 8-bit indexed-color image: one byte per pixel,
// tightly packed in row-major order (no stride/padding), referencing a
// 256-entry palette.
type Pal8Frame struct {
	W, H int
	Pix  []byte
}

// NewPal8Frame returns a Pal8Frame with a freshly allocated, zeroed
// W*H buffer.
func NewPal8Frame(w, h int) *Pal8Frame {
	return &Pal8Frame{W: w, H: h, Pix: make([]byte, w*h)}
}
