package render

import (
	"image/color"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// minArea is the smallest screen-space signed area a triangle may have
// before it is dropped as degenerate.
const minArea = 1e-6

// edgeFunction returns (a.x-c.x)(b.y-c.y) - (b.x-c.x)(a.y-c.y), twice the
// signed area of triangle abc.
func edgeFunction(ax, ay, bx, by, cx, cy float64) float64 {
	return (ax-cx)*(by-cy) - (bx-cx)*(ay-cy)
}

// barycentric returns the weights of p relative to triangle abc. Weights
// are negative outside the triangle; the result is zero for a degenerate
// triangle.
func barycentric(ax, ay, bx, by, cx, cy, px, py float64) math3d.Vec3 {
	area := edgeFunction(ax, ay, bx, by, cx, cy)
	if math.Abs(area) < minArea {
		return math3d.Vec3{}
	}
	return math3d.V3(
		edgeFunction(bx, by, cx, cy, px, py)/area,
		edgeFunction(cx, cy, ax, ay, px, py)/area,
		edgeFunction(ax, ay, bx, by, px, py)/area,
	)
}

// perspectiveDepth interpolates depth with perspective correction,
// 1/(α/za + β/zb + γ/zc).
func perspectiveDepth(alpha, beta, gamma, za, zb, zc float64) float64 {
	return 1 / (alpha/za + beta/zb + gamma/zc)
}

// blendColor mixes three colors by barycentric weight. Channels are clamped
// to [0, 255] and truncated.
func blendColor(ca, cb, cc color.RGBA, alpha, beta, gamma float64) color.RGBA {
	ch := func(a, b, c uint8) uint8 {
		v := alpha*float64(a) + beta*float64(b) + gamma*float64(c)
		return uint8(math.Max(0, math.Min(255, v)))
	}
	return color.RGBA{
		R: ch(ca.R, cb.R, cc.R),
		G: ch(ca.G, cb.G, cc.G),
		B: ch(ca.B, cb.B, cc.B),
		A: 255,
	}
}

// DrawTriangle scan-converts triangle abc with the depth test and the given
// shading mode. Pixels are sampled at integer coordinates and are inside
// when all three edge functions are non-negative, so triangles with
// negative screen area draw nothing.
func (r *Renderer) DrawTriangle(a, b, c ScreenVertex, cam *Camera, mode ShadingMode) {
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	cx, cy := float64(c.X), float64(c.Y)

	area := edgeFunction(ax, ay, bx, by, cx, cy)
	if math.Abs(area) < minArea {
		r.stats.TrianglesDegenerate++
		return
	}

	minX := max(min(a.X, b.X, c.X), 0)
	maxX := min(max(a.X, b.X, c.X), r.fb.Width-1)
	minY := max(min(a.Y, b.Y, c.Y), 0)
	maxY := min(max(a.Y, b.Y, c.Y), r.fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	viewDir := cam.Position

	var faceColor color.RGBA
	if mode == Flat {
		n := a.Normal.Add(b.Normal).Add(c.Normal).Normalize()
		faceColor = r.lighting.Color(n, viewDir)
	}

	for y := minY; y <= maxY; y++ {
		py := float64(y)
		for x := minX; x <= maxX; x++ {
			px := float64(x)

			w0 := edgeFunction(bx, by, cx, cy, px, py)
			w1 := edgeFunction(cx, cy, ax, ay, px, py)
			w2 := edgeFunction(ax, ay, bx, by, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			alpha, beta, gamma := w0/area, w1/area, w2/area
			z := perspectiveDepth(alpha, beta, gamma, a.Depth, b.Depth, c.Depth)
			if !r.depth.TestAndSet(x, y, z) {
				continue
			}

			var col color.RGBA
			switch mode {
			case Gouraud:
				col = blendColor(a.Color, b.Color, c.Color, alpha, beta, gamma)
			case Phong:
				n := math3d.Weighted(a.Normal, b.Normal, c.Normal, alpha, beta, gamma).Normalize()
				col = r.lighting.Color(n, viewDir)
			default:
				col = faceColor
			}

			r.fb.SetPixel(x, y, col)
			r.stats.PixelsWritten++
		}
	}
}
