package diff

import (
	"testing"

	"github.com/ausocean/cellvid/frame"
	"github.com/ausocean/cellvid/palette"
)

func gamePaletteOrFatal(t *testing.T) palette.GamePalette {
	t.Helper()
	gp, _, err := palette.NewGamePalette(palette.WatlingtonBase)
	if err != nil {
		t.Fatalf("NewGamePalette: %v", err)
	}
	return gp
}

func pal8(w, h int, vals ...byte) *frame.Pal8Frame {
	f := frame.NewPal8Frame(w, h)
	copy(f.Pix, vals)
	return f
}

func TestFirstFrameEmitsEveryPixel(t *testing.T) {
	d := NewDifferencer(gamePaletteOrFatal(t))
	recs, err := d.Encode(pal8(2, 1, 5, 7))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if recs[0].X != 1 || recs[0].Y != 1 {
		t.Errorf("recs[0] position = (%d,%d), want (1,1)", recs[0].X, recs[0].Y)
	}
	if recs[1].X != 2 || recs[1].Y != 1 {
		t.Errorf("recs[1] position = (%d,%d), want (2,1)", recs[1].X, recs[1].Y)
	}
}

func TestIdenticalFramesEmitOnlySyncMarker(t *testing.T) {
	d := NewDifferencer(gamePaletteOrFatal(t))
	if _, err := d.Encode(pal8(2, 1, 5, 5)); err != nil {
		t.Fatalf("Encode (1st): %v", err)
	}
	recs, err := d.Encode(pal8(2, 1, 5, 5))
	if err != nil {
		t.Fatalf("Encode (2nd): %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1 (sync marker only)", len(recs))
	}
	if recs[0].X != 1 || recs[0].Y != 1 {
		t.Errorf("sync marker position = (%d,%d), want (1,1)", recs[0].X, recs[0].Y)
	}
}

func TestSinglePixelChangeEmitsSyncPlusChange(t *testing.T) {
	d := NewDifferencer(gamePaletteOrFatal(t))
	// 4x4 image; linear index 5 is (x=2,y=2) in 1-based coords.
	if _, err := d.Encode(pal8(4, 4, make([]byte, 16)...)); err != nil {
		t.Fatalf("Encode (1st): %v", err)
	}
	second := make([]byte, 16)
	second[5] = 9
	recs, err := d.Encode(pal8(4, 4, second...))
	if err != nil {
		t.Fatalf("Encode (2nd): %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2 (sync marker + changed pixel)", len(recs))
	}
	if recs[0].X != 1 || recs[0].Y != 1 {
		t.Errorf("recs[0] (sync) = (%d,%d), want (1,1)", recs[0].X, recs[0].Y)
	}
	if recs[1].X != 2 || recs[1].Y != 2 {
		t.Errorf("recs[1] (changed) = (%d,%d), want (2,2)", recs[1].X, recs[1].Y)
	}
}

func TestEncodeRejectsSizeChange(t *testing.T) {
	d := NewDifferencer(gamePaletteOrFatal(t))
	if _, err := d.Encode(pal8(2, 2, make([]byte, 4)...)); err != nil {
		t.Fatalf("Encode (1st): %v", err)
	}
	if _, err := d.Encode(pal8(3, 3, make([]byte, 9)...)); err == nil {
		t.Fatal("Encode with changed dimensions: want error, got nil")
	}
}
