// Package render is the facet software rasterizer: framebuffer, depth
// buffer, camera, lighting, the vertex stage and triangle scan conversion.
package render

import (
	"image"
	"image/color"
)

// Framebuffer is an RGBA8 raster. Pixel (x, y) occupies Pix[(y*Width+x)*4:]
// in R, G, B, A order.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFramebuffer creates a framebuffer of the given dimensions, cleared to
// transparent black.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// Resize reallocates the pixel storage when the dimensions change.
func (fb *Framebuffer) Resize(width, height int) {
	if width == fb.Width && height == fb.Height {
		return
	}
	fb.Width = width
	fb.Height = height
	fb.Pix = make([]uint8, width*height*4)
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	if len(fb.Pix) == 0 {
		return
	}
	fb.Pix[0], fb.Pix[1], fb.Pix[2], fb.Pix[3] = c.R, c.G, c.B, c.A
	for filled := 4; filled < len(fb.Pix); filled *= 2 {
		copy(fb.Pix[filled:], fb.Pix[:filled])
	}
}

// InBounds reports whether (x, y) lies inside the raster.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets the pixel at (x, y). Writes outside the raster are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if !fb.InBounds(x, y) {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.Pix[i] = c.R
	fb.Pix[i+1] = c.G
	fb.Pix[i+2] = c.B
	fb.Pix[i+3] = c.A
}

// GetPixel returns the color at (x, y), or transparent black if out of
// bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	i := (y*fb.Width + x) * 4
	return color.RGBA{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage returns an image.RGBA view of the framebuffer. The image shares
// Pix with the framebuffer, so drawing into it draws into the framebuffer.
func (fb *Framebuffer) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.Pix,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}
