/*
DESCRIPTION
  palette.go builds the sorted color palette and the derived lookup
  tables (mean palette, predicted-index LUT, pairwise distance LUT)
  that the quantize and dither packages depend on.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package palette builds and holds the sorted 256-entry color palette
// and the lookup tables an accelerated nearest-neighbor quantizer needs:
// a per-entry mean, a mean-to-predicted-index LUT, and a full pairwise
// distance table.
package palette

import (
	"errors"
	"fmt"
	"sort"
)

// ErrTooSmall is returned by Build when the supplied palette has fewer
// than two colors.
var ErrTooSmall = errors.New("palette: fewer than two colors")

// ErrNoWhite is returned by Build when the palette's mean range does
// not reach 255, meaning indexLUT cannot be fully populated. This
// mirrors the source implementation's "palette does not have white"
// failure.
var ErrNoWhite = errors.New("palette: mean range does not reach 255")

// PaletteError wraps a palette construction failure.
type PaletteError struct {
	Err error
	K   int
}

func (e *PaletteError) Error() string {
	return fmt.Sprintf("palette: build failed for %d entries: %v", e.K, e.Err)
}

func (e *PaletteError) Unwrap() error { return e.Err }

// Color is a 24-bit BGR color. An alpha channel may accompany a pixel
// in a frame buffer but is never part of a Color.
type Color struct {
	B, G, R uint8
}

// mean returns the integer mean (B+G+R)/3 of the color.
func (c Color) mean() int {
	return (int(c.B) + int(c.G) + int(c.R)) / 3
}

// sed returns the squared Euclidean distance between two colors.
func sed(a, b Color) int32 {
	db := int32(a.B) - int32(b.B)
	dg := int32(a.G) - int32(b.G)
	dr := int32(a.R) - int32(b.R)
	return db*db + dg*dg + dr*dr
}

// Tables holds a sorted palette and its derived lookup tables. All
// fields are read-only after Build returns.
type Tables struct {
	// Palette is the input palette, sorted ascending by integer mean.
	Palette []Color

	// MeanPalette holds the integer mean of each sorted palette entry.
	MeanPalette []uint8

	// IndexLUT maps a pixel's own mean (0-255) to the palette index the
	// quantizer should begin its search from. Non-decreasing.
	IndexLUT [256]uint8

	// PaletteDistance[i][j] is the squared Euclidean distance between
	// sorted palette entries i and j. Symmetric, zero on the diagonal.
	PaletteDistance [][]int32
}

// Build sorts a copy of raw ascending by integer mean and derives
// MeanPalette, IndexLUT and PaletteDistance from the sorted copy. raw
// is never mutated.
func Build(raw []Color) (*Tables, error) {
	k := len(raw)
	if k < 2 {
		return nil, &PaletteError{Err: ErrTooSmall, K: k}
	}

	pal := make([]Color, k)
	copy(pal, raw)
	sort.SliceStable(pal, func(i, j int) bool { return pal[i].mean() < pal[j].mean() })

	mean := make([]uint8, k)
	for i, c := range pal {
		mean[i] = uint8(c.mean())
	}

	var lut [256]uint8
	if err := buildIndexLUT(mean, &lut); err != nil {
		return nil, &PaletteError{Err: err, K: k}
	}

	dist := make([][]int32, k)
	for i := range dist {
		dist[i] = make([]int32, k)
		for j := range dist[i] {
			dist[i][j] = sed(pal[i], pal[j])
		}
	}

	return &Tables{
		Palette:         pal,
		MeanPalette:     mean,
		IndexLUT:        lut,
		PaletteDistance: dist,
	}, nil
}

// buildIndexLUT populates lut[m] for m in [0,255] with the predicted
// palette index for a pixel of mean m: values below the midpoint of
// entries 0 and 1 map to 0, and lut[m] is otherwise the largest j such
// that m is at or beyond the midpoint of entries j-1 and j, for j in
// [1, K-2]. Once m reaches kCheck (the midpoint of the top two
// entries) the remainder of the table is filled with K-1 and the scan
// stops early, exactly as the source implementation's loop does.
//
// If the largest entry mean is below 255 the palette's mean range does
// not reach white; this is ErrNoWhite, mirroring the source's
// "palette does not have white" failure. Any slot the scan still
// leaves unset afterwards (an unusual mean distribution) is filled
// with K-1 per the resolved open question in SPEC_FULL.md, and the
// final table is validated to be fully assigned and non-decreasing.
func buildIndexLUT(mean []uint8, lut *[256]uint8) error {
	k := len(mean)
	zeroCheck := (int(mean[0]) + int(mean[1])) / 2
	kCheck := (int(mean[k-2]) + int(mean[k-1])) / 2

	if int(mean[k-1]) < 255 {
		return ErrNoWhite
	}

	set := make([]bool, 256)
	reachedTop := false
	for m := 0; m < 256 && !reachedTop; m++ {
		switch {
		case m < zeroCheck:
			lut[m] = 0
			set[m] = true
		default:
			for j := 1; j < k-1; j++ {
				lo := (int(mean[j-1]) + int(mean[j])) / 2
				hi := (int(mean[j]) + int(mean[j+1])) / 2
				if m >= lo && m < hi {
					lut[m] = uint8(j)
					set[m] = true
				}
			}
		}

		if m >= kCheck {
			for n := m; n < 256; n++ {
				lut[n] = uint8(k - 1)
				set[n] = true
			}
			reachedTop = true
		}
	}

	for m := 0; m < 256; m++ {
		if !set[m] {
			lut[m] = uint8(k - 1)
		}
	}

	for m := 1; m < 256; m++ {
		if lut[m] < lut[m-1] {
			return ErrNoWhite
		}
	}

	return nil
}
