/*
DESCRIPTION
  mapper.go iterates a BGRA frame's pixels, applying accumulated
  dither error, quantizing each effective pixel, and feeding the
  resulting error back into the diffuser, producing a fresh pal8
  frame.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package frame

import (
	"github.com/ausocean/cellvid/dither"
	"github.com/ausocean/cellvid/palette"
	"github.com/ausocean/cellvid/quantize"
)

// Mapper converts BGRA frames to pal8 frames. A Mapper owns one
// Diffuser, which it reuses (and zeroes) across every frame it
// converts; it must therefore be used by a single goroutine at a time.
type Mapper struct {
	t *palette.Tables
	q *quantize.Quantizer
	d *dither.Diffuser
}

// NewMapper returns a Mapper backed by t, sized for frames w pixels
// wide.
func NewMapper(t *palette.Tables, w int) *Mapper {
	return &Mapper{
		t: t,
		q: quantize.New(t),
		d: dither.New(w),
	}
}

func clamp8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Convert maps every pixel of f to its nearest palette index, applying
// Sierra-Lite error diffusion row by row, and returns a freshly
// allocated Pal8Frame. f is not mutated. m's Diffuser is zeroed before
// returning so the next call starts with a clean frame.
func (m *Mapper) Convert(f *Frame) (*Pal8Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	out := NewPal8Frame(f.W, f.H)

	for y := 0; y < f.H; y++ {
		rowOff := y * f.Stride
		for x := 0; x < f.W; x++ {
			pixOff := rowOff + x*BytesPerPixel
			eb, eg, er := m.d.At(x)

			b := clamp8(int32(f.Pix[pixOff]) + eb)
			g := clamp8(int32(f.Pix[pixOff+1]) + eg)
			r := clamp8(int32(f.Pix[pixOff+2]) + er)

			idx := m.q.Nearest(b, g, r)
			out.Pix[y*f.W+x] = byte(idx)

			pc := m.t.Palette[idx]
			m.d.Add(int32(b)-int32(pc.B), int32(g)-int32(pc.G), int32(r)-int32(pc.R), x)
		}
		m.d.EndRow()
	}
	m.d.EndFrame()

	return out, nil
}
