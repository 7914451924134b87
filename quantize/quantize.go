/*
DESCRIPTION
  quantize.go implements the accelerated nearest-neighbor color
  quantizer: Mean-ordered Partial Search (MPS), Partial Distance Search
  (PDS) and Triangular Inequality Elimination (TIE), searching outward
  from a mean-predicted index in a palette sorted ascending by mean.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package quantize maps a 24-bit BGR pixel to the nearest entry of a
// palette.Tables using Hu & Su's accelerated pixel mapping scheme:
// MPS + PDS + TIE. The result is always a full-search nearest entry;
// only the search order differs, and among equally near entries the
// one the search reaches first is returned.
package quantize

import "github.com/ausocean/cellvid/palette"

// Quantizer maps pixels to palette indices using a fixed, precomputed
// palette.Tables. A Quantizer is safe for concurrent use by multiple
// goroutines since it never mutates its Tables.
type Quantizer struct {
	t *palette.Tables
}

// New returns a Quantizer backed by t. t is not copied and must not be
// mutated after this call.
func New(t *palette.Tables) *Quantizer {
	return &Quantizer{t: t}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Nearest returns the index into q's sorted palette of the color
// closest to (b,g,r) in squared Euclidean distance. Ties are broken in
// favor of the earlier-found (lower-index-distance) candidate.
func (q *Quantizer) Nearest(b, g, r uint8) int {
	t := q.t
	k := len(t.Palette)

	mean := clamp((int(b)+int(g)+int(r))/3, 0, 255)
	pred := int(t.IndexLUT[mean])

	best := pred
	sedMin := sed(int(b), int(g), int(r), t.Palette[pred])

	down, up := pred+1, pred-1
	downActive, upActive := down <= k-1, up >= 0

	for downActive || upActive {
		if downActive {
			c := down
			ssd := meanSumDist(int(b), int(g), int(r), t.Palette[c])
			switch {
			case 3*sedMin < ssd:
				downActive = false
			case 4*sedMin < t.PaletteDistance[best][c]:
				// Skipped by the triangular inequality rule.
			default:
				if test, ok := partialSed(int(b), int(g), int(r), t.Palette[c], sedMin); ok {
					sedMin, best = test, c
				}
			}
			if downActive {
				down++
				if down > k-1 {
					downActive = false
				}
			}
		}

		if upActive {
			c := up
			ssd := meanSumDist(int(b), int(g), int(r), t.Palette[c])
			switch {
			case 3*sedMin < ssd:
				upActive = false
			case 4*sedMin < t.PaletteDistance[best][c]:
				// Skipped by the triangular inequality rule.
			default:
				if test, ok := partialSed(int(b), int(g), int(r), t.Palette[c], sedMin); ok {
					sedMin, best = test, c
				}
			}
			if upActive {
				up--
				if up < 0 {
					upActive = false
				}
			}
		}
	}

	return best
}

// sed returns the squared Euclidean distance between (b,g,r) and c.
func sed(b, g, r int, c palette.Color) int32 {
	db := int32(b) - int32(c.B)
	dg := int32(g) - int32(c.G)
	dr := int32(r) - int32(c.R)
	return db*db + dg*dg + dr*dr
}

// meanSumDist returns the squared difference of the channel sums of
// (b,g,r) and c, the MPS cut-off quantity.
func meanSumDist(b, g, r int, c palette.Color) int32 {
	d := int32(b+g+r) - int32(int(c.B)+int(c.G)+int(c.R))
	return d * d
}

// partialSed computes the squared-channel error between (b,g,r) and c
// in B, G, R order, aborting as soon as the running sum reaches limit.
// ok is false if the full distance was never below limit.
func partialSed(b, g, r int, c palette.Color, limit int32) (dist int32, ok bool) {
	db := int32(b) - int32(c.B)
	dist = db * db
	if dist >= limit {
		return 0, false
	}
	dg := int32(g) - int32(c.G)
	dist += dg * dg
	if dist >= limit {
		return 0, false
	}
	dr := int32(r) - int32(c.R)
	dist += dr * dr
	if dist >= limit {
		return 0, false
	}
	return dist, true
}
