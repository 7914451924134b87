package quantize

import (
	"math/rand"
	"testing"

	"github.com/ausocean/cellvid/palette"
)

// bruteForce returns the full-search nearest palette index, breaking
// ties in favor of the earlier (lower) index. Nearest breaks ties in
// search order instead, so the tests compare the distances of the two
// results, not the indices.
func bruteForce(t *palette.Tables, b, g, r uint8) int {
	best := 0
	bestD := sed(int(b), int(g), int(r), t.Palette[0])
	for i := 1; i < len(t.Palette); i++ {
		d := sed(int(b), int(g), int(r), t.Palette[i])
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

func randomPalette(rng *rand.Rand, k int) []palette.Color {
	cols := make([]palette.Color, k)
	for i := range cols {
		cols[i] = palette.Color{
			B: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			R: uint8(rng.Intn(256)),
		}
	}
	// Guarantee black and white are present so the palette always
	// spans the full mean range and Build succeeds.
	cols[0] = palette.Color{0, 0, 0}
	cols[1] = palette.Color{255, 255, 255}
	return cols
}

func TestNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cols := randomPalette(rng, 256)
	tb, err := palette.Build(cols)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	q := New(tb)

	const trials = 10000
	for i := 0; i < trials; i++ {
		b := uint8(rng.Intn(256))
		g := uint8(rng.Intn(256))
		r := uint8(rng.Intn(256))

		got := q.Nearest(b, g, r)
		want := bruteForce(tb, b, g, r)
		if sed(int(b), int(g), int(r), tb.Palette[got]) != sed(int(b), int(g), int(r), tb.Palette[want]) {
			t.Fatalf("Nearest(%d,%d,%d) = %d, want %d (brute force)", b, g, r, got, want)
		}
	}
}

func TestNearestGamePalette(t *testing.T) {
	_, tb, err := palette.NewGamePalette(palette.WatlingtonBase)
	if err != nil {
		t.Fatalf("NewGamePalette: %v", err)
	}
	q := New(tb)

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 5000; i++ {
		b := uint8(rng.Intn(256))
		g := uint8(rng.Intn(256))
		r := uint8(rng.Intn(256))

		got := q.Nearest(b, g, r)
		want := bruteForce(tb, b, g, r)
		if sed(int(b), int(g), int(r), tb.Palette[got]) != sed(int(b), int(g), int(r), tb.Palette[want]) {
			t.Fatalf("Nearest(%d,%d,%d) = %d, want %d (brute force)", b, g, r, got, want)
		}
	}
}

func TestNearestNamedColorPalette(t *testing.T) {
	cols := namedColorPalette(200)
	cols[0] = palette.Color{0, 0, 0}
	cols[1] = palette.Color{255, 255, 255}
	tb, err := palette.Build(cols)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	q := New(tb)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 5000; i++ {
		b := uint8(rng.Intn(256))
		g := uint8(rng.Intn(256))
		r := uint8(rng.Intn(256))

		got := q.Nearest(b, g, r)
		want := bruteForce(tb, b, g, r)
		if sed(int(b), int(g), int(r), tb.Palette[got]) != sed(int(b), int(g), int(r), tb.Palette[want]) {
			t.Fatalf("Nearest(%d,%d,%d) = %d, want %d (brute force)", b, g, r, got, want)
		}
	}
}

func TestNearestExactPaletteColor(t *testing.T) {
	_, tb, err := palette.NewGamePalette(palette.WatlingtonBase)
	if err != nil {
		t.Fatalf("NewGamePalette: %v", err)
	}
	q := New(tb)

	for k, c := range tb.Palette {
		if got := q.Nearest(c.B, c.G, c.R); got != k {
			t.Errorf("Nearest(palette[%d]) = %d, want %d", k, got, k)
		}
	}
}
