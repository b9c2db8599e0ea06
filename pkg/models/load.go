package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat reports a model file extension with no loader.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Load resolves a builtin mesh name ("cube", "tetrahedron") or loads a
// model file chosen by extension (.obj, .glb, .gltf).
func Load(path string) (*Mesh, error) {
	if m, ok := Builtin(path); ok {
		return m, nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%s: %w %q (use .obj, .glb or .gltf)", path, ErrUnsupportedFormat, ext)
	}
}
