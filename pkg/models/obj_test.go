package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

func TestParseOBJQuadTriangulated(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ), "quad")
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 4 {
		t.Errorf("vertices = %d, want 4", m.VertexCount())
	}
	want := []Face{{0, 1, 2}, {0, 2, 3}}
	if len(m.Faces) != len(want) {
		t.Fatalf("faces = %v, want %v", m.Faces, want)
	}
	for i := range want {
		if m.Faces[i] != want[i] {
			t.Errorf("face %d = %v, want %v", i, m.Faces[i], want[i])
		}
	}
	// Computed normals face +Z for a CCW quad in the XY plane.
	for i, n := range m.Normals {
		if !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
			t.Errorf("normal %d = %v, want +Z", i, n)
		}
	}
}

func TestParseOBJCornerFormats(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 2
f 1/1/1 2/2/1 3/3/1
`
	m, err := ParseOBJ(strings.NewReader(src), "tri")
	if err != nil {
		t.Fatal(err)
	}
	if m.Faces[0] != (Face{0, 1, 2}) {
		t.Errorf("face = %v, want {0 1 2}", m.Faces[0])
	}
	for i, n := range m.Normals {
		if !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
			t.Errorf("normal %d = %v, want normalized file normal", i, n)
		}
	}
}

func TestParseOBJSharedCornerNormals(t *testing.T) {
	const verts = `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
vn 0 0 1
vn 0 1 0
`
	tests := []struct {
		name  string
		faces string
		want  math3d.Vec3
	}{
		{"same normal", "f 1//1 2//1 3//1\nf 1//1 3//1 4//1\n", math3d.V3(0, 0, 1)},
		{"two normals", "f 1//1 2//1 3//1\nf 1//2 3//2 4//2\n", math3d.V3(0, 1, 1).Normalize()},
		{"reversed order", "f 1//2 3//2 4//2\nf 1//1 2//1 3//1\n", math3d.V3(0, 1, 1).Normalize()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseOBJ(strings.NewReader(verts+tt.faces), "shared")
			if err != nil {
				t.Fatal(err)
			}
			if n := m.Normals[0]; !n.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("shared vertex normal = %v, want %v", n, tt.want)
			}
		})
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	m, err := ParseOBJ(strings.NewReader(src), "neg")
	if err != nil {
		t.Fatal(err)
	}
	if m.Faces[0] != (Face{0, 1, 2}) {
		t.Errorf("face = %v, want {0 1 2}", m.Faces[0])
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n", ErrFaceIndex},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrFaceIndex},
		{"short vertex", "v 0 0\n", ErrMalformed},
		{"bad number", "v 0 x 0\n", ErrMalformed},
		{"two corner face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrMalformed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tc.src), tc.name)
			if !errors.Is(err, tc.want) {
				t.Errorf("ParseOBJ() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParseOBJIgnoresUnknownRecords(t *testing.T) {
	src := "o thing\ng group\nusemtl red\ns 1\n" + quadOBJ
	m, err := ParseOBJ(strings.NewReader(src), "extra")
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 2 {
		t.Errorf("triangles = %d, want 2", m.TriangleCount())
	}
}

func TestLoadOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "quad.obj" {
		t.Errorf("name = %q, want quad.obj", m.Name)
	}
	if m.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("bounds max = %v", m.BoundsMax)
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("LoadOBJ of a missing file succeeded")
	}
}
