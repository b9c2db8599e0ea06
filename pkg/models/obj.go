package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/facet/pkg/math3d"
)

// ErrMalformed reports a model file that could not be parsed.
var ErrMalformed = errors.New("malformed model")

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ reads OBJ geometry from r. Only v, vn and f records are used;
// polygons are fan-triangulated and negative indices count back from the
// most recent element. Vertex normals come from the file when every face
// corner names one or when there is exactly one vn per v; otherwise they
// are computed with ComputeNormals. A vertex whose corners name different
// vn records gets the normalized average of them.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	var fileNormals []math3d.Vec3
	cornerNormal := make(map[int]math3d.Vec3) // vertex index -> sum of corner vn
	allCornersNormal := true

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			mesh.AddVertex(p)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			fileNormals = append(fileNormals, n)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs 3 vertices, got %d: %w", lineNo, len(fields)-1, ErrMalformed)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				vi, ni, err := parseCorner(tok, len(mesh.Vertices), len(fileNormals))
				if err != nil {
					return nil, fmt.Errorf("line %d: face %q: %w", lineNo, tok, err)
				}
				if ni >= 0 {
					cornerNormal[vi] = cornerNormal[vi].Add(fileNormals[ni].Normalize())
				} else {
					allCornersNormal = false
				}
				corners = append(corners, vi)
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.AddFace(corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	switch {
	case len(fileNormals) > 0 && allCornersNormal && len(mesh.Faces) > 0:
		for vi, sum := range cornerNormal {
			mesh.Normals[vi] = sum.Normalize()
		}
	case len(fileNormals) == len(mesh.Vertices):
		for i, n := range fileNormals {
			mesh.Normals[i] = n.Normalize()
		}
	}
	if !mesh.HasNormals() {
		mesh.ComputeNormals()
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("need 3 components, got %d: %w", len(fields), ErrMalformed)
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		c[i] = f
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn" into zero-based
// vertex and normal indices. ni is -1 when the corner names no normal.
func parseCorner(tok string, nVerts, nNormals int) (vi, ni int, err error) {
	parts := strings.Split(tok, "/")
	vi, err = resolveIndex(parts[0], nVerts)
	if err != nil {
		return 0, 0, err
	}
	ni = -1
	if len(parts) == 3 && parts[2] != "" {
		ni, err = resolveIndex(parts[2], nNormals)
		if err != nil {
			return 0, 0, err
		}
	}
	return vi, ni, nil
}

func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("index 0: %w", ErrFaceIndex)
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %s of %d: %w", s, count, ErrFaceIndex)
	}
	return i, nil
}
