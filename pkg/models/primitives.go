package models

import "github.com/taigrr/facet/pkg/math3d"

// NewCube creates an axis-aligned cube centered on the origin with 8 shared
// vertices and 12 counter-clockwise (outward-facing) triangles. Normals are
// left zero; call ComputeNormals before rendering.
func NewCube(size float64) *Mesh {
	h := size / 2
	m := NewMesh("cube")
	for _, p := range [8]math3d.Vec3{
		{X: -h, Y: -h, Z: -h},
		{X: h, Y: -h, Z: -h},
		{X: h, Y: h, Z: -h},
		{X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: h, Z: h},
		{X: -h, Y: h, Z: h},
	} {
		m.AddVertex(p)
	}

	for _, f := range [12]Face{
		{4, 5, 6}, {4, 6, 7}, // +Z
		{1, 0, 3}, {1, 3, 2}, // -Z
		{5, 1, 2}, {5, 2, 6}, // +X
		{0, 4, 7}, {0, 7, 3}, // -X
		{7, 6, 2}, {7, 2, 3}, // +Y
		{0, 1, 5}, {0, 5, 4}, // -Y
	} {
		m.Faces = append(m.Faces, f)
	}

	m.CalculateBounds()
	return m
}

// NewTetrahedron creates a regular tetrahedron inscribed in the cube of the
// given edge size, with outward-facing triangles.
func NewTetrahedron(size float64) *Mesh {
	h := size / 2
	m := NewMesh("tetrahedron")
	m.AddVertex(math3d.V3(h, h, h))
	m.AddVertex(math3d.V3(-h, -h, h))
	m.AddVertex(math3d.V3(-h, h, -h))
	m.AddVertex(math3d.V3(h, -h, -h))

	m.AddFace(0, 2, 1)
	m.AddFace(0, 1, 3)
	m.AddFace(0, 3, 2)
	m.AddFace(1, 2, 3)

	m.CalculateBounds()
	return m
}

// Builtin returns a generated mesh by name, with normals computed.
func Builtin(name string) (*Mesh, bool) {
	var m *Mesh
	switch name {
	case "cube":
		m = NewCube(2)
	case "tetrahedron":
		m = NewTetrahedron(2)
	default:
		return nil, false
	}
	m.ComputeNormals()
	return m, true
}
