package render

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// ErrUnsupportedImage reports an output extension with no encoder.
var ErrUnsupportedImage = errors.New("unsupported image format")

// Encode writes img to w in the format named by ext (".png", ".jpg",
// ".jpeg", ".webp" or ".tga"). A scale above 1 enlarges the image by that
// integer factor with nearest-neighbour sampling first.
func Encode(w io.Writer, img image.Image, ext string, scale int) error {
	img = Upscale(img, scale)

	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".webp":
		return nativewebp.Encode(w, img, nil)
	case ".tga":
		return tga.Encode(w, img)
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedImage, ext)
	}
}

// Upscale returns img enlarged by an integer factor. Factors below 2 return
// img unchanged.
func Upscale(img image.Image, scale int) image.Image {
	if scale < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SaveImage encodes img to path, choosing the format from its extension.
func SaveImage(path string, img image.Image, scale int) (err error) {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".webp", ".tga":
	default:
		return fmt.Errorf("%s: %w %q", path, ErrUnsupportedImage, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close image: %w", cerr)
		}
	}()

	if err := Encode(f, img, ext, scale); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
