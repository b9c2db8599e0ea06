// Package models provides the mesh record and model loaders for facet.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/facet/pkg/math3d"
)

// ErrFaceIndex reports a face referencing a vertex that does not exist.
var ErrFaceIndex = errors.New("face index out of range")

// Face is a triangle given as three zero-based vertex indices.
type Face [3]int

// Mesh is an indexed triangle mesh. Normals is parallel to Vertices: the
// normal of vertex i is Normals[i].
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Normals  []math3d.Vec3
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddVertex appends a vertex with a zero normal and returns its index.
func (m *Mesh) AddVertex(p math3d.Vec3) int {
	m.Vertices = append(m.Vertices, p)
	m.Normals = append(m.Normals, math3d.Vec3{})
	return len(m.Vertices) - 1
}

// AddFace appends a triangle.
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{a, b, c})
}

// Validate checks that every face index refers to an existing vertex and
// that there is exactly one normal per vertex.
func (m *Mesh) Validate() error {
	if len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("mesh %q: %d normals for %d vertices", m.Name, len(m.Normals), len(m.Vertices))
	}
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("mesh %q: face %d: vertex %d of %d: %w", m.Name, i, idx, n, ErrFaceIndex)
			}
		}
	}
	return nil
}

// ComputeNormals derives smooth per-vertex normals. Each face contributes
// its unnormalized cross product, so larger triangles weigh more, and the
// accumulated sums are normalized at the end.
func (m *Mesh) ComputeNormals() {
	if len(m.Normals) != len(m.Vertices) {
		m.Normals = make([]math3d.Vec3, len(m.Vertices))
	}
	for i := range m.Normals {
		m.Normals[i] = math3d.Vec3{}
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f[0]]
		v1 := m.Vertices[f[1]]
		v2 := m.Vertices[f[2]]

		n := v1.Sub(v0).Cross(v2.Sub(v0)) // area-weighted, not normalized

		m.Normals[f[0]] = m.Normals[f[0]].Add(n)
		m.Normals[f[1]] = m.Normals[f[1]].Add(n)
		m.Normals[f[2]] = m.Normals[f[2]].Add(n)
	}

	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}
}

// HasNormals reports whether any vertex carries a non-zero normal.
func (m *Mesh) HasNormals() bool {
	for _, n := range m.Normals {
		if n.LenSq() > 1e-12 {
			return true
		}
	}
	return false
}

// Edges returns each undirected triangle edge once, in the order the faces
// first reference them.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]struct{}, len(m.Faces)*3/2)
	edges := make([][2]int, 0, len(m.Faces)*3/2)
	for _, f := range m.Faces {
		for _, e := range [3][2]int{{f[0], f[1]}, {f[1], f[2]}, {f[2], f[0]}} {
			key := e
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	m.BoundsMin, m.BoundsMax = vertexBounds(m.Vertices)
}

func vertexBounds(vs []math3d.Vec3) (lo, hi math3d.Vec3) {
	if len(vs) == 0 {
		return
	}
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return lo, hi
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Transform applies mat to every position and mat's normal matrix to every
// normal.
func (m *Mesh) Transform(mat math3d.Mat4) {
	nm := mat.NormalMatrix()
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	for i := range m.Normals {
		m.Normals[i] = nm.MulVec3Dir(m.Normals[i]).Normalize()
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its largest
// dimension equals extent.
func (m *Mesh) Fit(extent float64) {
	m.CalculateBounds()
	maxDim := m.Size().MaxComponent()
	if maxDim <= 0 {
		return
	}
	s := extent / maxDim
	m.Transform(math3d.ScaleUniform(s).Mul(math3d.Translate(m.Center().Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:      m.Name,
		Vertices:  append([]math3d.Vec3(nil), m.Vertices...),
		Normals:   append([]math3d.Vec3(nil), m.Normals...),
		Faces:     append([]Face(nil), m.Faces...),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetVertex returns the position and normal of vertex i.
// Implements render.MeshRenderer.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3) {
	return m.Vertices[i], m.Normals[i]
}

// GetFace returns the vertex indices of face i.
// Implements render.MeshRenderer.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i]
}

// GetBounds returns the axis-aligned bounding box of the current vertices.
// The cached BoundsMin and BoundsMax are neither read nor written.
// Implements render.BoundedMeshRenderer.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return vertexBounds(m.Vertices)
}
