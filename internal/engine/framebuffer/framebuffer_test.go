package framebuffer

import (
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	fb := New(4, 3)
	w, h := fb.Size()
	if w != 4 || h != 3 {
		t.Errorf("Size = %dx%d, want 4x3", w, h)
	}
	if fb.Stride() != 16 {
		t.Errorf("Stride = %d, want 16", fb.Stride())
	}
	if len(fb.Pix()) != 48 {
		t.Errorf("len(Pix) = %d, want 48", len(fb.Pix()))
	}
}

func TestResizeReusesBuffer(t *testing.T) {
	fb := New(8, 8)
	fb.Pix()[5] = 42
	before := &fb.Pix()[0]

	if fb.Resize(8, 8) {
		t.Error("Resize with equal dimensions should not reallocate")
	}
	if &fb.Pix()[0] != before {
		t.Error("backing array changed on same-size Resize")
	}
	if fb.Pix()[5] != 42 {
		t.Error("contents should survive same-size Resize")
	}

	if !fb.Resize(8, 9) {
		t.Error("Resize with new dimensions should reallocate")
	}
	if len(fb.Pix()) != 8*9*4 {
		t.Errorf("len(Pix) = %d, want %d", len(fb.Pix()), 8*9*4)
	}
}

func TestResizeEmpty(t *testing.T) {
	fb := New(0, 0)
	if len(fb.Pix()) != 0 {
		t.Errorf("len(Pix) = %d, want 0", len(fb.Pix()))
	}
	fb.Clear(color.RGBA{1, 2, 3, 4}) // must not panic

	fb = New(-3, 5)
	if w, h := fb.Size(); w != 0 || h != 5 {
		t.Errorf("Size = %dx%d, want 0x5", w, h)
	}
}

func TestClear(t *testing.T) {
	fb := New(5, 3) // odd size exercises the tail of the doubling copy
	c := color.RGBA{10, 20, 30, 40}
	fb.Clear(c)

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if got := fb.RGBAAt(x, y); got != c {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}
}

func TestImageSharesPixels(t *testing.T) {
	fb := New(2, 2)
	img := fb.Image()
	img.SetRGBA(1, 1, color.RGBA{255, 0, 0, 255})

	if got := fb.RGBAAt(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("RGBAAt(1,1) = %v, want red written through Image()", got)
	}
	if got := fb.RGBAAt(5, 5); got != (color.RGBA{}) {
		t.Errorf("out-of-bounds RGBAAt = %v, want zero", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	fb := New(1, 1)
	snap := fb.Snapshot()
	fb.Pix()[0] = 7
	if snap[0] != 0 {
		t.Error("Snapshot should not alias the frame buffer")
	}
}
