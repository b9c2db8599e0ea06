package render

import (
	"image/color"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// Lighting is a single-light Phong reflectance model producing greyscale
// output. The light position is used as a direction from the origin.
type Lighting struct {
	Position  math3d.Vec3
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
}

// DefaultLighting returns a light at (0, 10, 10) with ambient 0.1, diffuse
// 1.0, specular 0.5 and shininess 100.
func DefaultLighting() Lighting {
	return Lighting{
		Position:  math3d.V3(0, 10, 10),
		Ambient:   0.1,
		Diffuse:   1.0,
		Specular:  0.5,
		Shininess: 100,
	}
}

// Intensity returns the light intensity in [0, 1] for a surface normal seen
// from viewDir.
func (l Lighting) Intensity(normal, viewDir math3d.Vec3) float64 {
	n := normal.Normalize()
	ld := l.Position.Normalize()
	v := viewDir.Normalize()

	nDotL := n.Dot(ld)
	r := ld.Negate().Reflect(n).Normalize() // 2(N·L)N - L

	diffuse := math.Max(0, nDotL)
	specular := math.Pow(math.Max(0, r.Dot(v)), l.Shininess)

	i := l.Ambient + l.Diffuse*diffuse + l.Specular*specular
	return math.Max(0, math.Min(1, i))
}

// Color returns Intensity as an opaque grey.
func (l Lighting) Color(normal, viewDir math3d.Vec3) color.RGBA {
	g := uint8(l.Intensity(normal, viewDir) * 255)
	return color.RGBA{g, g, g, 255}
}
