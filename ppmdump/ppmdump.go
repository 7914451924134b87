/*
DESCRIPTION
  ppmdump.go writes BGRA and pal8 frames out as PPM images, for
  debugging a pipeline run by eye. It is not wired into the Pipeline by
  default; callers opt in by calling WriteFrame/WritePal8Frame
  themselves, mirroring the commented-out writePPM/writePal8PPM calls
  in the reference tool this module replaces.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ppmdump provides debug-only PPM (P6) dumping of BGRA and
// pal8 frames. Nothing in this package is reachable from a normal
// pipeline run.
package ppmdump

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ausocean/cellvid/frame"
	"github.com/ausocean/cellvid/palette"
)

// WriteFrame writes f as a binary PPM (P6) image, dropping the alpha
// channel and any row padding.
func WriteFrame(w io.Writer, f *frame.Frame) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("ppmdump: %w", err)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", f.W, f.H); err != nil {
		return fmt.Errorf("ppmdump: could not write header: %w", err)
	}

	row := make([]byte, f.W*3)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			b, g, r := f.At(x, y)
			row[x*3] = r
			row[x*3+1] = g
			row[x*3+2] = b
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("ppmdump: could not write row %d: %w", y, err)
		}
	}
	return bw.Flush()
}

// WritePal8Frame writes pf as a binary PPM (P6) image, looking each
// index up in tables.Palette to recover its RGB color.
func WritePal8Frame(w io.Writer, pf *frame.Pal8Frame, tables *palette.Tables) error {
	if len(pf.Pix) != pf.W*pf.H {
		return fmt.Errorf("ppmdump: pal8 buffer length %d does not match %dx%d", len(pf.Pix), pf.W, pf.H)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", pf.W, pf.H); err != nil {
		return fmt.Errorf("ppmdump: could not write header: %w", err)
	}

	row := make([]byte, pf.W*3)
	for y := 0; y < pf.H; y++ {
		for x := 0; x < pf.W; x++ {
			idx := pf.Pix[y*pf.W+x]
			if int(idx) >= len(tables.Palette) {
				return fmt.Errorf("ppmdump: index %d at (%d,%d) out of range for %d-color palette", idx, x, y, len(tables.Palette))
			}
			c := tables.Palette[idx]
			row[x*3] = c.R
			row[x*3+1] = c.G
			row[x*3+2] = c.B
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("ppmdump: could not write row %d: %w", y, err)
		}
	}
	return bw.Flush()
}

// WriteGamePalette writes the 256-entry palette in tables as a 16x16
// PPM, one pixel per entry in sorted-palette order (each entry is one
// blended (bg,fg) combination), mirroring the reference tool's
// commented-out expandedPalette dump used to sanity-check blending.
func WriteGamePalette(w io.Writer, tables *palette.Tables) error {
	const n = 16
	if len(tables.Palette) != n*n {
		return fmt.Errorf("ppmdump: expected a %d-color palette, got %d", n*n, len(tables.Palette))
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", n, n); err != nil {
		return fmt.Errorf("ppmdump: could not write header: %w", err)
	}
	for _, c := range tables.Palette {
		if _, err := bw.Write([]byte{c.R, c.G, c.B}); err != nil {
			return fmt.Errorf("ppmdump: could not write palette swatch: %w", err)
		}
	}
	return bw.Flush()
}
