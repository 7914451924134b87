package dither

import "testing"

func TestAddDistributesSierraLite(t *testing.T) {
	d := New(4)
	d.Add(100, 100, 100, 1) // not at x==0, so all three targets get error.

	if b, g, r := d.At(2); b != 50 || g != 50 || r != 50 {
		t.Errorf("right neighbor error = (%d,%d,%d), want (50,50,50)", b, g, r)
	}

	d.EndRow()
	if b, g, r := d.At(0); b != 25 || g != 25 || r != 25 {
		t.Errorf("below-left error after swap = (%d,%d,%d), want (25,25,25)", b, g, r)
	}
	if b, g, r := d.At(1); b != 25 || g != 25 || r != 25 {
		t.Errorf("below error after swap = (%d,%d,%d), want (25,25,25)", b, g, r)
	}
}

func TestAddSkipsBelowLeftAtColumnZero(t *testing.T) {
	d := New(4)
	d.Add(100, 100, 100, 0)
	d.EndRow()

	// Below (column 0) should have received a quarter error...
	if b, _, _ := d.At(0); b != 25 {
		t.Errorf("below error at x=0 = %d, want 25", b)
	}
	// ...and there is no column -1 to have received anything; the row
	// must otherwise be all zero.
	for x := 1; x < 4; x++ {
		if b, g, r := d.At(x); b != 0 || g != 0 || r != 0 {
			t.Errorf("At(%d) = (%d,%d,%d), want all zero", x, b, g, r)
		}
	}
}

func TestEndFrameZeroesBothRows(t *testing.T) {
	d := New(4)
	d.Add(100, 100, 100, 2)
	d.EndFrame()
	for x := 0; x < 4; x++ {
		if b, g, r := d.At(x); b != 0 || g != 0 || r != 0 {
			t.Errorf("At(%d) after EndFrame = (%d,%d,%d), want all zero", x, b, g, r)
		}
	}
	d.EndRow()
	for x := 0; x < 4; x++ {
		if b, g, r := d.At(x); b != 0 || g != 0 || r != 0 {
			t.Errorf("At(%d) after EndRow post-EndFrame = (%d,%d,%d), want all zero", x, b, g, r)
		}
	}
}
