package render

import "math"

// DepthBuffer holds one depth value per pixel. Smaller is closer.
type DepthBuffer struct {
	Width  int
	Height int
	data   []float64
}

// NewDepthBuffer creates a depth buffer cleared to +Inf.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{Width: width, Height: height, data: make([]float64, width*height)}
	d.Clear()
	return d
}

// Resize reallocates the buffer when the dimensions change.
func (d *DepthBuffer) Resize(width, height int) {
	if width == d.Width && height == d.Height {
		return
	}
	d.Width = width
	d.Height = height
	d.data = make([]float64, width*height)
	d.Clear()
}

// Clear resets every sample to +Inf.
func (d *DepthBuffer) Clear() {
	if len(d.data) == 0 {
		return
	}
	d.data[0] = math.Inf(1)
	for filled := 1; filled < len(d.data); filled *= 2 {
		copy(d.data[filled:], d.data[:filled])
	}
}

// At returns the stored depth at (x, y); out-of-range reads return +Inf.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return math.Inf(1)
	}
	return d.data[y*d.Width+x]
}

// TestAndSet stores z at (x, y) and reports true when z is strictly closer
// than the stored value. Ties and NaN keep the existing sample.
func (d *DepthBuffer) TestAndSet(x, y int, z float64) bool {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return false
	}
	i := y*d.Width + x
	if !(z < d.data[i]) {
		return false
	}
	d.data[i] = z
	return true
}
