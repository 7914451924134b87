/*
DESCRIPTION
  gamepalette.go derives the 256-entry "expanded" palette (and its
  background/foreground cell mapping) from a 16-color base palette by
  40/60 blending every ordered pair.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package palette

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// BaseSize is the number of colors in the base palette that the
// expanded 256-color game palette is derived from.
const BaseSize = 16

// WatlingtonBase is the default 16-color base palette (John A.
// Watlington, alumni.media.mit.edu/~wad/color/palette.html), used
// whenever a caller has no palette of their own.
var WatlingtonBase = [BaseSize]Color{
	{B: 0, G: 0, R: 0},       // Black
	{B: 87, G: 87, R: 87},    // Dark gray
	{B: 35, G: 35, R: 173},   // Red
	{B: 215, G: 75, R: 42},   // Blue
	{B: 20, G: 105, R: 29},   // Green
	{B: 25, G: 74, R: 129},   // Brown
	{B: 192, G: 38, R: 129},  // Purple
	{B: 160, G: 160, R: 160}, // Light gray
	{B: 122, G: 197, R: 129}, // Light green
	{B: 255, G: 175, R: 157}, // Light blue
	{B: 208, G: 208, R: 41},  // Cyan
	{B: 51, G: 146, R: 255},  // Orange
	{B: 51, G: 238, R: 255},  // Yellow
	{B: 187, G: 222, R: 233}, // Tan
	{B: 243, G: 205, R: 255}, // Pink
	{B: 255, G: 255, R: 255}, // White
}

// GamePalette maps a sorted-palette index (the output of a quantizer
// built over the same expanded palette) to the 0-15 background and
// foreground cell indices that blended to produce it.
type GamePalette struct {
	BG [256]uint8
	FG [256]uint8
}

// blend mixes two base colors 40/60 (a weighted 0.4, b weighted 0.6),
// truncating toward zero exactly as the source implementation's
// (int) cast does.
func blend(a, b Color) Color {
	return Color{
		B: uint8(0.4*float64(a.B) + 0.6*float64(b.B)),
		G: uint8(0.4*float64(a.G) + 0.6*float64(b.G)),
		R: uint8(0.4*float64(a.R) + 0.6*float64(b.R)),
	}
}

// NewGamePalette expands base into a 256-color palette by blending
// every ordered pair (i,j) as 0.4*base[i] + 0.6*base[j], builds the
// quantizer Tables from the expanded palette, and returns the sorted
// (bg,fg) lookup alongside those Tables. Entry (i,j) has bg=j, fg=i,
// matching the original "GamePixel" convention.
func NewGamePalette(base [BaseSize]Color) (GamePalette, *Tables, error) {
	type entry struct {
		c      Color
		bg, fg uint8
	}

	entries := make([]entry, 0, BaseSize*BaseSize)
	for i := 0; i < BaseSize; i++ {
		for j := 0; j < BaseSize; j++ {
			entries = append(entries, entry{
				c:  blend(base[i], base[j]),
				bg: uint8(j),
				fg: uint8(i),
			})
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].c.mean() < entries[b].c.mean()
	})

	raw := make([]Color, len(entries))
	var gp GamePalette
	for i, e := range entries {
		raw[i] = e.c
		gp.BG[i] = e.bg
		gp.FG[i] = e.fg
	}

	t, err := Build(raw)
	if err != nil {
		return GamePalette{}, nil, err
	}

	// Build sorts its own copy of raw by mean; since raw is already
	// sorted by mean (stable sort, same comparator) the resulting
	// Tables.Palette order matches entries/gp one-for-one.
	return gp, t, nil
}

// LoadBase reads a 16-color base palette from path: one "B G R" triple
// of 0-255 integers per non-blank, non-comment ("#"-prefixed) line.
func LoadBase(path string) ([BaseSize]Color, error) {
	f, err := os.Open(path)
	if err != nil {
		return [BaseSize]Color{}, fmt.Errorf("palette: could not open base palette file: %w", err)
	}
	defer f.Close()
	return ParseBase(f)
}

// ParseBase reads a 16-color base palette from r, in the same format
// as LoadBase.
func ParseBase(r io.Reader) ([BaseSize]Color, error) {
	var base [BaseSize]Color
	var n int

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if n >= BaseSize {
			return [BaseSize]Color{}, fmt.Errorf("palette: base palette file has more than %d entries", BaseSize)
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return [BaseSize]Color{}, fmt.Errorf("palette: line %q: want 3 fields (B G R), got %d", line, len(fields))
		}

		c, err := parseColorFields(fields)
		if err != nil {
			return [BaseSize]Color{}, fmt.Errorf("palette: line %q: %w", line, err)
		}
		base[n] = c
		n++
	}
	if err := sc.Err(); err != nil {
		return [BaseSize]Color{}, fmt.Errorf("palette: could not read base palette: %w", err)
	}
	if n != BaseSize {
		return [BaseSize]Color{}, fmt.Errorf("palette: base palette file has %d entries, want %d", n, BaseSize)
	}
	return base, nil
}

func parseColorFields(fields []string) (Color, error) {
	var v [3]uint8
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Color{}, fmt.Errorf("could not parse %q as an integer: %w", f, err)
		}
		if n < 0 || n > 255 {
			return Color{}, fmt.Errorf("value %d out of range [0,255]", n)
		}
		v[i] = uint8(n)
	}
	return Color{B: v[0], G: v[1], R: v[2]}, nil
}
