package render

import (
	"image/color"

	"github.com/taigrr/facet/pkg/math3d"
)

// MeshRenderer is the read-only mesh view the renderer draws from.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer is a mesh that can report its bounding box, enabling
// frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// EdgeMeshRenderer is a mesh that lists its unique edges. Meshes without it
// have their edges derived from faces.
type EdgeMeshRenderer interface {
	MeshRenderer
	Edges() [][2]int
}

// ScreenVertex is a vertex after the vertex stage.
type ScreenVertex struct {
	X, Y   int
	Depth  float64     // (ndc.z+1)/2, in [0, 1]
	Normal math3d.Vec3 // view-space, unit length
	Color  color.RGBA  // lit per-vertex color
}

// FrameConfig is the per-frame render configuration. It is read once at
// the start of RenderFrame.
type FrameConfig struct {
	Shading    ShadingMode
	Projection ProjectionMode
	Lens       Projection
	Background color.RGBA
	Style      Style
	Overlay    bool       // draw the wireframe over Solid meshes
	Antialias  bool       // coverage-based wireframe lines
	LineColor  color.RGBA // wireframe and point color; zero means white
}

// DefaultFrameConfig returns Phong-shaded solid rendering through the
// default lens on a black background.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		Shading:    Phong,
		Projection: Perspective,
		Lens:       DefaultProjection(),
		Background: ColorBlack,
		Style:      Solid,
		LineColor:  ColorWhite,
	}
}

// FrameStats counts the work done for one frame.
type FrameStats struct {
	MeshesTested int // meshes with bounds checked against the frustum
	MeshesCulled int
	MeshesDrawn  int

	TrianglesSubmitted  int
	TrianglesClipped    int // at least one vertex outside the clip cube
	TrianglesDegenerate int // screen area below the epsilon
	PixelsWritten       int
}

type vertexSlot struct {
	v  ScreenVertex
	ok bool
}

// Renderer owns a framebuffer, its depth buffer and the per-frame vertex
// table. A Renderer must only be used by one goroutine at a time.
type Renderer struct {
	fb       *Framebuffer
	depth    *DepthBuffer
	lighting Lighting
	slots    []vertexSlot
	aa       *WireframeAA
	stats    FrameStats
}

// NewRenderer creates a renderer drawing into fb.
func NewRenderer(fb *Framebuffer, lighting Lighting) *Renderer {
	return &Renderer{
		fb:       fb,
		depth:    NewDepthBuffer(fb.Width, fb.Height),
		lighting: lighting,
	}
}

// Framebuffer returns the render target.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// Depth returns the depth buffer.
func (r *Renderer) Depth() *DepthBuffer { return r.depth }

// Lighting returns the light model.
func (r *Renderer) Lighting() Lighting { return r.lighting }

// SetLighting replaces the light model.
func (r *Renderer) SetLighting(l Lighting) { r.lighting = l }

// Stats returns the counters accumulated since the last BeginFrame.
func (r *Renderer) Stats() FrameStats { return r.stats }

// BeginFrame clears color and depth and resets the frame counters. The depth
// buffer follows the framebuffer if it was resized.
func (r *Renderer) BeginFrame(background color.RGBA) {
	r.depth.Resize(r.fb.Width, r.fb.Height)
	r.fb.Clear(background)
	r.depth.Clear()
	r.stats = FrameStats{}
}

// RenderFrame clears the frame and draws every mesh through cam with the
// identity model matrix.
func (r *Renderer) RenderFrame(cam *Camera, meshes []MeshRenderer, cfg FrameConfig) FrameStats {
	r.BeginFrame(cfg.Background)

	lens := cfg.Lens
	if lens.Aspect <= 0 && r.fb.Height > 0 {
		lens.Aspect = float64(r.fb.Width) / float64(r.fb.Height)
	}
	view := cam.ViewMatrix()
	mvp := lens.Matrix(cfg.Projection).Mul(view)
	frustum := NewFrustumFromMatrix(mvp)

	lineColor := cfg.LineColor
	if lineColor.A == 0 {
		lineColor = ColorWhite
	}

	for _, mesh := range meshes {
		if b, ok := mesh.(BoundedMeshRenderer); ok {
			r.stats.MeshesTested++
			if !frustum.IntersectAABB(NewAABB(b.GetBounds())) {
				r.stats.MeshesCulled++
				continue
			}
		}
		r.stats.MeshesDrawn++

		switch cfg.Style {
		case Wireframe:
			r.DrawWireframe(mesh, mvp, lineColor, cfg.Antialias)
		case Points:
			r.DrawPoints(mesh, mvp, lineColor)
		default:
			r.DrawMesh(mesh, mvp, view, cam, cfg.Shading)
			if cfg.Overlay {
				r.DrawWireframe(mesh, mvp, lineColor, cfg.Antialias)
			}
		}
	}

	return r.stats
}

// Project runs the vertex stage for one vertex. It reports false when w is
// zero or the vertex lies outside the clip cube after the divide.
func (r *Renderer) Project(pos, normal math3d.Vec3, mvp, normalMat math3d.Mat4, viewDir math3d.Vec3) (ScreenVertex, bool) {
	ndc, ok := mvp.MulVec4(math3d.Point(pos)).PerspectiveDivide()
	if !ok || !ndc.InClipCube() {
		return ScreenVertex{}, false
	}

	n := normalMat.MulVec3Dir(normal).Normalize()
	return ScreenVertex{
		X:      int((ndc.X + 1) / 2 * float64(r.fb.Width)),
		Y:      int((1 - (ndc.Y+1)/2) * float64(r.fb.Height)),
		Depth:  (ndc.Z + 1) / 2,
		Normal: n,
		Color:  r.lighting.Color(n, viewDir),
	}, true
}

// projectMesh fills the vertex table for mesh.
func (r *Renderer) projectMesh(mesh MeshRenderer, mvp, view math3d.Mat4, viewDir math3d.Vec3) {
	n := mesh.VertexCount()
	if cap(r.slots) < n {
		r.slots = make([]vertexSlot, n)
	}
	r.slots = r.slots[:n]

	normalMat := view.NormalMatrix()
	for i := range n {
		pos, normal := mesh.GetVertex(i)
		r.slots[i].v, r.slots[i].ok = r.Project(pos, normal, mvp, normalMat, viewDir)
	}
}

// slot returns the projected vertex i, or false if it is invalid or out of
// range.
func (r *Renderer) slot(i int) (ScreenVertex, bool) {
	if i < 0 || i >= len(r.slots) {
		return ScreenVertex{}, false
	}
	s := r.slots[i]
	return s.v, s.ok
}

// DrawMesh runs the vertex stage over mesh and rasterizes every face whose
// three vertices survived it. Faces are submitted as (v2, v1, v0) so that
// counter-clockwise front faces have positive screen area.
func (r *Renderer) DrawMesh(mesh MeshRenderer, mvp, view math3d.Mat4, cam *Camera, mode ShadingMode) {
	r.projectMesh(mesh, mvp, view, cam.Position)

	for i := range mesh.TriangleCount() {
		r.stats.TrianglesSubmitted++
		f := mesh.GetFace(i)
		v0, ok0 := r.slot(f[0])
		v1, ok1 := r.slot(f[1])
		v2, ok2 := r.slot(f[2])
		if !ok0 || !ok1 || !ok2 {
			r.stats.TrianglesClipped++
			continue
		}
		r.DrawTriangle(v2, v1, v0, cam, mode)
	}
}

// DrawPoints writes one pixel per vertex that survives the vertex stage.
// Vertices on the right or bottom clip plane map one past the raster and
// are skipped.
func (r *Renderer) DrawPoints(mesh MeshRenderer, mvp math3d.Mat4, c color.RGBA) {
	r.projectMesh(mesh, mvp, math3d.Identity(), math3d.Zero3())
	for _, s := range r.slots {
		if s.ok && r.fb.InBounds(s.v.X, s.v.Y) {
			r.fb.SetPixel(s.v.X, s.v.Y, c)
			r.stats.PixelsWritten++
		}
	}
}
