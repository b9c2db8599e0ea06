package render

import (
	"github.com/taigrr/facet/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// planeFromRow builds a plane from a 4-vector of matrix row combinations.
func planeFromRow(v math3d.Vec4) Plane {
	return Plane{Normal: v.Vec3(), D: v.W}
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum represents the 6 planes of a view frustum.
// Planes are ordered: Left, Right, Bottom, Top, Near, Far.
// Each plane's normal points inward (toward the center of the frustum).
type Frustum struct {
	Planes [6]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a model-view-projection
// matrix with the Gribb/Hartmann method. The planes are exactly the clip
// cube |x|,|y|,|z| <= w, normalized, with normals pointing inward.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)

	f := Frustum{Planes: [6]Plane{
		FrustumLeft:   planeFromRow(r3.Add(r0)),
		FrustumRight:  planeFromRow(r3.Sub(r0)),
		FrustumBottom: planeFromRow(r3.Add(r1)),
		FrustumTop:    planeFromRow(r3.Sub(r1)),
		FrustumNear:   planeFromRow(r3.Add(r2)),
		FrustumFar:    planeFromRow(r3.Sub(r2)),
	}}

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(lo, hi math3d.Vec3) AABB {
	return AABB{Min: lo, Max: hi}
}

// IntersectAABB reports whether any part of the box may be inside the
// frustum. It uses the "positive vertex" test, so it is conservative: a box
// near a frustum corner can pass without being visible.
func (f Frustum) IntersectAABB(box AABB) bool {
	for i := range f.Planes {
		plane := f.Planes[i]

		// The corner furthest along the plane normal.
		pVertex := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)

		if plane.DistanceToPoint(pVertex) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
