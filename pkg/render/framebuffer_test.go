package render

import (
	"image/color"
	"math"
	"testing"
)

func TestFramebufferLayout(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	if len(fb.Pix) != 4*3*4 {
		t.Fatalf("len(Pix) = %d, want 48", len(fb.Pix))
	}

	fb.SetPixel(2, 1, color.RGBA{10, 20, 30, 40})
	i := (1*4 + 2) * 4
	if got := fb.Pix[i : i+4]; got[0] != 10 || got[1] != 20 || got[2] != 30 || got[3] != 40 {
		t.Errorf("Pix[%d:%d] = %v, want [10 20 30 40]", i, i+4, got)
	}
	if got := fb.GetPixel(2, 1); got != (color.RGBA{10, 20, 30, 40}) {
		t.Errorf("GetPixel = %v", got)
	}
}

func TestFramebufferOutOfBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		fb.SetPixel(p[0], p[1], ColorWhite)
		if got := fb.GetPixel(p[0], p[1]); got != (color.RGBA{}) {
			t.Errorf("GetPixel(%v) = %v, want zero", p, got)
		}
	}
	for i, b := range fb.Pix {
		if b != 0 {
			t.Fatalf("out-of-bounds write reached Pix[%d]", i)
		}
	}
}

func TestFramebufferClear(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 5}, {17, 9}} {
		fb := NewFramebuffer(size[0], size[1])
		c := RGB(1, 2, 3)
		fb.Clear(c)
		for y := range fb.Height {
			for x := range fb.Width {
				if got := fb.GetPixel(x, y); got != c {
					t.Fatalf("%v: pixel (%d,%d) = %v, want %v", size, x, y, got, c)
				}
			}
		}
	}
	NewFramebuffer(0, 0).Clear(ColorWhite)
}

func TestFramebufferDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLine(1, 1, 8, 5, ColorWhite)

	if fb.GetPixel(1, 1) != ColorWhite || fb.GetPixel(8, 5) != ColorWhite {
		t.Error("line endpoints not drawn")
	}
	// One pixel per column for a shallow line.
	for x := 1; x <= 8; x++ {
		n := 0
		for y := range 10 {
			if fb.GetPixel(x, y) == ColorWhite {
				n++
			}
		}
		if n != 1 {
			t.Errorf("column %d has %d pixels, want 1", x, n)
		}
	}

	// Lines leaving the raster are clipped per pixel.
	fb.DrawLine(-5, -5, 20, 20, ColorWhite)
}

func TestFramebufferToImageSharesPixels(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	img := fb.ToImage()
	img.SetRGBA(1, 1, RGB(9, 8, 7))

	if got := fb.GetPixel(1, 1); got != RGB(9, 8, 7) {
		t.Errorf("framebuffer pixel = %v after drawing into the image", got)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("image bounds = %v", img.Bounds())
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Resize(5, 3)
	if fb.Width != 5 || fb.Height != 3 || len(fb.Pix) != 60 {
		t.Errorf("after Resize: %dx%d, %d bytes", fb.Width, fb.Height, len(fb.Pix))
	}
}

func TestDepthBuffer(t *testing.T) {
	d := NewDepthBuffer(4, 4)

	if !math.IsInf(d.At(2, 2), 1) {
		t.Fatalf("fresh depth = %v, want +Inf", d.At(2, 2))
	}
	if !d.TestAndSet(2, 2, 0.5) {
		t.Fatal("first write should pass")
	}

	tests := []struct {
		name string
		z    float64
		want bool
	}{
		{"equal keeps existing", 0.5, false},
		{"farther", 0.7, false},
		{"NaN", math.NaN(), false},
		{"closer", 0.3, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.TestAndSet(2, 2, tc.z); got != tc.want {
				t.Errorf("TestAndSet(%v) = %v, want %v", tc.z, got, tc.want)
			}
		})
	}

	if d.TestAndSet(-1, 0, 0) || d.TestAndSet(4, 0, 0) {
		t.Error("out-of-bounds TestAndSet should fail")
	}
	if !math.IsInf(d.At(9, 9), 1) {
		t.Error("out-of-bounds At should be +Inf")
	}

	d.Clear()
	for y := range 4 {
		for x := range 4 {
			if !math.IsInf(d.At(x, y), 1) {
				t.Fatalf("depth (%d,%d) = %v after Clear", x, y, d.At(x, y))
			}
		}
	}
}
