/*
DESCRIPTION
  diff.go produces a delta-encoded record stream from a sequence of
  pal8 frames: the first frame is emitted in full, and subsequent
  frames emit only changed pixels plus a synchronization marker at
  linear index 0.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package diff turns consecutive palettized frames into a sparse
// stream of changed-pixel records, using a palette.GamePalette to
// translate each pal8 index into its background/foreground cell pair.
package diff

import (
	"fmt"

	"github.com/ausocean/cellvid/frame"
	"github.com/ausocean/cellvid/palette"
)

// Record describes a single changed cell: its 1-based (x,y) position
// and its 0-15 background/foreground palette indices.
type Record struct {
	X, Y   uint16
	BG, FG uint8
}

// Differencer encodes a sequence of same-sized pal8 frames into
// Records, retaining the previous frame for exactly one frame's worth
// of comparison.
type Differencer struct {
	gp   palette.GamePalette
	prev *frame.Pal8Frame
}

// NewDifferencer returns a Differencer that looks up cell colors in gp.
func NewDifferencer(gp palette.GamePalette) *Differencer {
	return &Differencer{gp: gp}
}

// Encode returns the Records for cur relative to the previously
// encoded frame (or every pixel, if cur is the first frame seen).
// Encode takes ownership of cur as the new "previous" frame; the
// caller must not retain or mutate cur afterwards.
func (d *Differencer) Encode(cur *frame.Pal8Frame) ([]Record, error) {
	if d.prev != nil && (d.prev.W != cur.W || d.prev.H != cur.H) {
		return nil, fmt.Errorf("diff: frame size changed from %dx%d to %dx%d", d.prev.W, d.prev.H, cur.W, cur.H)
	}

	var recs []Record
	if d.prev == nil {
		recs = make([]Record, 0, cur.W*cur.H)
		for i, idx := range cur.Pix {
			recs = append(recs, d.recordFor(i, cur.W, idx))
		}
	} else {
		for i, idx := range cur.Pix {
			if i != 0 && d.prev.Pix[i] == idx {
				continue
			}
			recs = append(recs, d.recordFor(i, cur.W, idx))
		}
	}

	d.prev = cur
	return recs, nil
}

func (d *Differencer) recordFor(i, w int, idx byte) Record {
	return Record{
		X:  uint16(i%w) + 1,
		Y:  uint16(i/w) + 1,
		BG: d.gp.BG[idx],
		FG: d.gp.FG[idx],
	}
}
