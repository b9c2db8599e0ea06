package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/facet/pkg/math3d"
)

// ShadingMode selects how triangle interiors are colored.
type ShadingMode int

const (
	// Flat lights each face once with its averaged vertex normal.
	Flat ShadingMode = iota
	// Gouraud interpolates per-vertex colors.
	Gouraud
	// Phong interpolates normals and lights every pixel.
	Phong
)

var shadingNames = [...]string{Flat: "flat", Gouraud: "gouraud", Phong: "phong"}

func (m ShadingMode) String() string {
	if m < 0 || int(m) >= len(shadingNames) {
		return fmt.Sprintf("ShadingMode(%d)", int(m))
	}
	return shadingNames[m]
}

// ParseShading parses "flat", "gouraud" or "phong".
func ParseShading(s string) (ShadingMode, error) {
	for i, name := range shadingNames {
		if strings.EqualFold(s, name) {
			return ShadingMode(i), nil
		}
	}
	return Flat, fmt.Errorf("unknown shading mode %q", s)
}

// ProjectionMode selects the projection matrix.
type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Orthographic
)

func (m ProjectionMode) String() string {
	switch m {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("ProjectionMode(%d)", int(m))
	}
}

// Toggle returns the other projection mode.
func (m ProjectionMode) Toggle() ProjectionMode {
	if m == Perspective {
		return Orthographic
	}
	return Perspective
}

// ParseProjection parses "perspective"/"persp" or "orthographic"/"ortho".
func ParseProjection(s string) (ProjectionMode, error) {
	switch strings.ToLower(s) {
	case "perspective", "persp":
		return Perspective, nil
	case "orthographic", "ortho":
		return Orthographic, nil
	}
	return Perspective, fmt.Errorf("unknown projection %q", s)
}

// Style selects what the renderer draws for each mesh.
type Style int

const (
	// Solid rasterizes shaded triangles.
	Solid Style = iota
	// Wireframe draws projected edges.
	Wireframe
	// Points draws one pixel per visible vertex.
	Points
)

var styleNames = [...]string{Solid: "solid", Wireframe: "wireframe", Points: "points"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// ParseStyle parses "solid", "wireframe" or "points".
func ParseStyle(s string) (Style, error) {
	for i, name := range styleNames {
		if strings.EqualFold(s, name) {
			return Style(i), nil
		}
	}
	return Solid, fmt.Errorf("unknown style %q", s)
}

// Projection holds the lens parameters for both projection modes.
type Projection struct {
	FOV         float64 // Vertical field of view in radians
	Aspect      float64 // Width / Height; 0 means use the framebuffer's
	Near        float64
	Far         float64
	OrthoHeight float64 // Half-height of the orthographic view volume
}

// DefaultProjection returns a 90° lens with near 0.1 and far 100.
func DefaultProjection() Projection {
	return Projection{
		FOV:         math.Pi / 2,
		Aspect:      1,
		Near:        0.1,
		Far:         100,
		OrthoHeight: 2,
	}
}

// Matrix returns the projection matrix for mode.
func (p Projection) Matrix(mode ProjectionMode) math3d.Mat4 {
	aspect := p.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	if mode == Orthographic {
		h := p.OrthoHeight
		if h <= 0 {
			h = 2
		}
		return math3d.Orthographic(-h*aspect, h*aspect, -h, h, p.Near, p.Far)
	}
	return math3d.Perspective(p.FOV, aspect, p.Near, p.Far)
}
