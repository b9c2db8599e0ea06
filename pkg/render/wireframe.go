package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/taigrr/facet/pkg/math3d"
	"golang.org/x/image/vector"
)

// DrawWireframe draws every mesh edge whose two endpoints survive the
// vertex stage. Lines are not depth tested.
func (r *Renderer) DrawWireframe(mesh MeshRenderer, mvp math3d.Mat4, c color.RGBA, antialias bool) {
	r.projectMesh(mesh, mvp, math3d.Identity(), math3d.Zero3())

	if antialias {
		if r.aa == nil {
			r.aa = NewWireframeAA(r.fb.Width, r.fb.Height)
		} else {
			r.aa.Reset(r.fb.Width, r.fb.Height)
		}
	}

	for _, e := range meshEdges(mesh) {
		a, okA := r.slot(e[0])
		b, okB := r.slot(e[1])
		if !okA || !okB {
			continue
		}
		if antialias {
			r.aa.Line(float64(a.X)+0.5, float64(a.Y)+0.5, float64(b.X)+0.5, float64(b.Y)+0.5)
			continue
		}
		r.fb.DrawLine(a.X, a.Y, b.X, b.Y, c)
	}

	if antialias {
		r.aa.Draw(r.fb, c)
	}
}

// meshEdges returns the mesh's unique edges, deriving them from faces when
// the mesh does not list them.
func meshEdges(mesh MeshRenderer) [][2]int {
	if em, ok := mesh.(EdgeMeshRenderer); ok {
		return em.Edges()
	}

	seen := make(map[[2]int]struct{})
	var edges [][2]int
	for i := range mesh.TriangleCount() {
		f := mesh.GetFace(i)
		for _, e := range [3][2]int{{f[0], f[1]}, {f[1], f[2]}, {f[2], f[0]}} {
			key := e
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// WireframeAA accumulates lines as thin quads in a coverage rasterizer and
// composites them in one pass.
type WireframeAA struct {
	ras   *vector.Rasterizer
	Width float64 // line width in pixels
}

// NewWireframeAA creates an anti-aliased line accumulator for a w×h raster.
func NewWireframeAA(w, h int) *WireframeAA {
	return &WireframeAA{ras: vector.NewRasterizer(w, h), Width: 1}
}

// Reset clears accumulated lines and resizes the coverage buffer.
func (a *WireframeAA) Reset(w, h int) {
	a.ras.Reset(w, h)
}

// Line adds a segment from (x0, y0) to (x1, y1) in pixel coordinates.
func (a *WireframeAA) Line(x0, y0, x1, y1 float64) {
	p0, p1 := math3d.V2(x0, y0), math3d.V2(x1, y1)
	dir := p1.Sub(p0).Normalize()
	if dir == (math3d.Vec2{}) {
		dir = math3d.V2(1, 0)
	}
	off := dir.Perp().Scale(a.Width / 2)
	// Extend the ends by half a pixel so joints close.
	p0 = p0.Sub(dir.Scale(0.5))
	p1 = p1.Add(dir.Scale(0.5))

	a.ras.MoveTo(float32(p0.X+off.X), float32(p0.Y+off.Y))
	a.ras.LineTo(float32(p1.X+off.X), float32(p1.Y+off.Y))
	a.ras.LineTo(float32(p1.X-off.X), float32(p1.Y-off.Y))
	a.ras.LineTo(float32(p0.X-off.X), float32(p0.Y-off.Y))
	a.ras.ClosePath()
}

// Draw composites the accumulated coverage in color c over fb.
func (a *WireframeAA) Draw(fb *Framebuffer, c color.RGBA) {
	a.ras.DrawOp = draw.Over
	dst := fb.ToImage()
	a.ras.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}
