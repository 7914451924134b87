package quantize

import (
	"sort"

	"golang.org/x/image/colornames"

	"github.com/ausocean/cellvid/palette"
)

// namedColorPalette returns up to n colors drawn from the CSS named
// color table, converted to BGR. This gives the equivalence tests a
// palette of real, human-meaningful colors rather than only uniform
// random noise, while still being deterministic across runs.
func namedColorPalette(n int) []palette.Color {
	names := make([]string, 0, len(colornames.Map))
	for name := range colornames.Map {
		names = append(names, name)
	}
	sort.Strings(names) // map iteration order is randomized; fix it.

	if n > len(names) {
		n = len(names)
	}

	cols := make([]palette.Color, n)
	for i, name := range names[:n] {
		c := colornames.Map[name]
		cols[i] = palette.Color{B: c.B, G: c.G, R: c.R}
	}
	return cols
}
