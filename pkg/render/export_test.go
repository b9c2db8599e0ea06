package render

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImageFramebuffer() *Framebuffer {
	fb := NewFramebuffer(8, 6)
	fb.Clear(ColorBlack)
	fb.DrawLine(0, 0, 7, 5, ColorWhite)
	return fb
}

func TestEncodeFormats(t *testing.T) {
	img := testImageFramebuffer().ToImage()
	for _, ext := range []string{".png", ".jpg", ".JPEG", ".webp", ".tga"} {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, ext, 1); err != nil {
				t.Fatalf("Encode(%s) = %v", ext, err)
			}
			if buf.Len() == 0 {
				t.Error("encoder wrote nothing")
			}
		})
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, ".bmp", 1); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("Encode(.bmp) = %v, want ErrUnsupportedImage", err)
	}
}

func TestUpscale(t *testing.T) {
	fb := testImageFramebuffer()
	var buf bytes.Buffer
	if err := Encode(&buf, fb.ToImage(), ".png", 3); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 18 {
		t.Fatalf("upscaled bounds = %v, want 24x18", b)
	}
	// Every source pixel becomes a 3x3 block.
	r, _, _, _ := img.At(2, 2).RGBA()
	r2, _, _, _ := img.At(0, 0).RGBA()
	if r != r2 || r>>8 != 255 {
		t.Errorf("block (0,0) not uniformly white: %d %d", r>>8, r2>>8)
	}

	src := fb.ToImage()
	if Upscale(src, 1) != src || Upscale(src, 0) != src {
		t.Error("scale below 2 should return the image unchanged")
	}
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	img := testImageFramebuffer().ToImage()

	path := filepath.Join(dir, "frame.png")
	if err := SaveImage(path, img, 2); err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Errorf("saved file: %v, %v", st, err)
	}

	bad := filepath.Join(dir, "frame.gif")
	if err := SaveImage(bad, img, 1); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("SaveImage(.gif) = %v, want ErrUnsupportedImage", err)
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Error("unsupported format left a file behind")
	}
}
