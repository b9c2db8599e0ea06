package math3d

import "math"

// Mat4 is a 4x4 matrix stored in row-major order: element (row, col) lives
// at index row*4+col.
//
// Memory layout (indices):
// | 0  1  2  3  |
// | 4  5  6  7  |
// | 8  9  10 11 |
// | 12 13 14 15 |
//
// Vectors are columns, so a.Mul(b) applied to v transforms by b first.
// For an affine transform the translation sits in the last column:
// | Xx Yx Zx Tx |
// | Xy Yy Zy Ty |
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX creates a right-handed rotation about the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY creates a right-handed rotation about the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ creates a right-handed rotation about the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rotate creates a right-handed rotation about an arbitrary axis.
func Rotate(axis Vec3, angle float64) Mat4 {
	axis = axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// LookAt creates a view matrix looking from eye towards center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	}
}

// Perspective creates a perspective projection matrix.
// fovy is the vertical field of view in radians and aspect is width/height.
// Points between near and far map into the clip cube [-1, 1].
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovy/2)
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	}
}

// Orthographic creates an orthographic projection matrix mapping the box
// [left,right]x[bottom,top]x[-near,-far] onto the clip cube [-1, 1].
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4{
		2 * rl, 0, 0, -(right + left) * rl,
		0, 2 * tb, 0, -(top + bottom) * tb,
		0, 0, -2 * fn, -(far + near) * fn,
		0, 0, 0, 1,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row*4+k] * b[k*4+col]
			}
			m[row*4+col] = sum
		}
	}
	return m
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// MulVec3 transforms a Vec3 as a point (w=1), dividing by the resulting w
// when it is non-zero.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	p, _ := m.MulVec4(Point(v)).PerspectiveDivide()
	return p
}

// MulVec3Dir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// Row returns row i as a Vec4.
func (m Mat4) Row(i int) Vec4 {
	return Vec4{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Determinant returns the determinant of the matrix, expanded over the
// 2x2 minors of the top and bottom row pairs.
func (m Mat4) Determinant() float64 {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	return s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
}

// singularEps is the pivot magnitude below which a matrix is treated as
// singular.
const singularEps = 1e-12

// Inverse returns the inverse of the matrix using Gauss-Jordan elimination
// with partial pivoting. Returns identity if the matrix is singular.
func (m Mat4) Inverse() Mat4 {
	a := m
	inv := Identity()

	for col := range 4 {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(a[row*4+col]) > math.Abs(a[pivot*4+col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot*4+col]) < singularEps {
			return Identity()
		}
		if pivot != col {
			a.swapRows(pivot, col)
			inv.swapRows(pivot, col)
		}

		p := 1 / a[col*4+col]
		for k := range 4 {
			a[col*4+k] *= p
			inv[col*4+k] *= p
		}

		for row := range 4 {
			if row == col {
				continue
			}
			f := a[row*4+col]
			if f == 0 {
				continue
			}
			for k := range 4 {
				a[row*4+k] -= f * a[col*4+k]
				inv[row*4+k] -= f * inv[col*4+k]
			}
		}
	}

	return inv
}

func (m *Mat4) swapRows(i, j int) {
	for k := range 4 {
		m[i*4+k], m[j*4+k] = m[j*4+k], m[i*4+k]
	}
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 block,
// embedded in a Mat4 with no translation. Normals transformed by it stay
// perpendicular to surfaces under non-uniform scale. For a pure rotation it
// equals the rotation itself. Returns identity if the block is singular.
func (m Mat4) NormalMatrix() Mat4 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[4], m[5], m[6]
	g, h, i := m[8], m[9], m[10]

	// Cofactors of the 3x3 block.
	c00, c01, c02 := e*i-f*h, f*g-d*i, d*h-e*g
	c10, c11, c12 := c*h-b*i, a*i-c*g, b*g-a*h
	c20, c21, c22 := b*f-c*e, c*d-a*f, a*e-b*d

	det := a*c00 + b*c01 + c*c02
	if math.Abs(det) < singularEps {
		return Identity()
	}
	inv := 1 / det

	return Mat4{
		c00 * inv, c01 * inv, c02 * inv, 0,
		c10 * inv, c11 * inv, c12 * inv, 0,
		c20 * inv, c21 * inv, c22 * inv, 0,
		0, 0, 0, 1,
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row*4+col]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row*4+col] = val
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// ApproxEqual reports whether every element of m is within eps of n.
func (m Mat4) ApproxEqual(n Mat4, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-n[i]) > eps {
			return false
		}
	}
	return true
}
