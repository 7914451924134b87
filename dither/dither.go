/*
DESCRIPTION
  dither.go implements Sierra-Lite error diffusion: 1/2 of a pixel's
  quantization error to the right neighbor, 1/4 below-left, 1/4 below.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package dither implements Sierra-Lite error diffusion over two
// rolling per-row error buffers.
package dither

// Diffuser accumulates per-channel quantization error across a row
// and distributes it to the current and next row, Sierra-Lite style.
// A Diffuser is reused across every row of a frame and across frames;
// call EndRow after each row and EndFrame after the last row.
type Diffuser struct {
	w           int
	row1, row2  []int32 // 4*(w+1) signed channels each; row1 is "current", row2 is "next".
}

// New returns a Diffuser sized for a frame w pixels wide.
func New(w int) *Diffuser {
	return &Diffuser{
		w:    w,
		row1: make([]int32, 4*(w+1)),
		row2: make([]int32, 4*(w+1)),
	}
}

// At returns the accumulated error for the current row at column x,
// one B/G/R triple already queued up for the pixel at x.
func (d *Diffuser) At(x int) (b, g, r int32) {
	off := 4 * x
	return d.row1[off], d.row1[off+1], d.row1[off+2]
}

// Add distributes the per-channel error e=(b,g,r) for the pixel just
// quantized at column x: half to the right neighbor on this row,
// a quarter below-left (skipped when x==0) and a quarter directly
// below, both on the next row.
func (d *Diffuser) Add(b, g, r int32, x int) {
	b >>= 1
	g >>= 1
	r >>= 1

	right := 4 * (x + 1)
	d.row1[right] += b
	d.row1[right+1] += g
	d.row1[right+2] += r

	b >>= 1
	g >>= 1
	r >>= 1

	if x != 0 {
		belowLeft := 4 * (x - 1)
		d.row2[belowLeft] += b
		d.row2[belowLeft+1] += g
		d.row2[belowLeft+2] += r
	}

	below := 4 * x
	d.row2[below] += b
	d.row2[below+1] += g
	d.row2[below+2] += r
}

// EndRow clears the row just consumed and swaps in the accumulated
// next-row errors as the new current row.
func (d *Diffuser) EndRow() {
	for i := range d.row1 {
		d.row1[i] = 0
	}
	d.row1, d.row2 = d.row2, d.row1
}

// EndFrame zeroes both rows so the Diffuser can be reused for a fresh
// frame with no residual error carried over.
func (d *Diffuser) EndFrame() {
	for i := range d.row1 {
		d.row1[i] = 0
	}
	for i := range d.row2 {
		d.row2[i] = 0
	}
}
