package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/facet/pkg/math3d"
)

// GLTFLoader loads glTF/GLB files into a single Mesh.
type GLTFLoader struct {
	// ComputeNormals recomputes area-weighted normals even when the file
	// provides them.
	ComputeNormals bool
}

// LoadGLTF loads a .gltf or .glb file with default options.
func LoadGLTF(path string) (*Mesh, error) {
	return (&GLTFLoader{}).Load(path)
}

// Load loads a glTF or GLB file. All triangle primitives of all meshes are
// merged into one Mesh; node transforms are not applied.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := l.appendMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	if l.ComputeNormals || !mesh.HasNormals() {
		mesh.ComputeNormals()
	}
	mesh.CalculateBounds()

	return mesh, nil
}

// appendMesh adds every triangle primitive of m to mesh.
func (l *GLTFLoader) appendMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for pi, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("primitive %d: read positions: %w", pi, err)
		}

		var normals [][3]float32
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
			if err != nil {
				return fmt.Errorf("primitive %d: read normals: %w", pi, err)
			}
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			mesh.AddVertex(vec3f(p))
			if i < len(normals) {
				mesh.Normals[base+i] = vec3f(normals[i]).Normalize()
			}
		}

		if prim.Indices != nil {
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("primitive %d: read indices: %w", pi, err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.AddFace(base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2]))
			}
			continue
		}

		// Non-indexed: consecutive triples.
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.AddFace(base+i, base+i+1, base+i+2)
		}
	}
	return nil
}

func vec3f(v [3]float32) math3d.Vec3 {
	return math3d.V3(float64(v[0]), float64(v[1]), float64(v[2]))
}
