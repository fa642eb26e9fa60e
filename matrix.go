// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import "math"

// Matrix is a 4x4 transform stored in column-major order, the layout
// OpenGL uses for glLoadMatrixf. Element m[col*4+row] is row "row" of
// column "col":
//
//	| m[0] m[4] m[8]  m[12] |
//	| m[1] m[5] m[9]  m[13] |
//	| m[2] m[6] m[10] m[14] |
//	| m[3] m[7] m[11] m[15] |
//
// Points are column vectors, so m.Multiply(n) applied to p is m*(n*p):
// n acts first.
type Matrix [16]float32

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(x, y, z float32) Matrix {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale creates a scaling matrix.
func Scale(x, y, z float32) Matrix {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// Rotate creates a rotation of angle radians around the axis (x, y, z).
// The axis is normalized first; a zero axis yields the identity.
func Rotate(angle float32, x, y, z float32) Matrix {
	l := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if l == 0 {
		return Identity()
	}
	x, y, z = x/l, y/l, z/l

	s := float32(math.Sin(float64(angle)))
	c := float32(math.Cos(float64(angle)))
	t := 1 - c
	return Matrix{
		x*x*t + c, y*x*t + z*s, z*x*t - y*s, 0,
		x*y*t - z*s, y*y*t + c, z*y*t + x*s, 0,
		x*z*t + y*s, y*z*t - x*s, z*z*t + c, 0,
		0, 0, 0, 1,
	}
}

// Ortho creates an orthographic projection, as glOrtho.
// The second result is false when a pair of bounds coincides.
func Ortho(left, right, bottom, top, near, far float64) (Matrix, bool) {
	rl, tb, fn := right-left, top-bottom, far-near
	if rl == 0 || tb == 0 || fn == 0 {
		return Identity(), false
	}
	var m Matrix
	m[0] = float32(2 / rl)
	m[5] = float32(2 / tb)
	m[10] = float32(-2 / fn)
	m[12] = float32(-(left + right) / rl)
	m[13] = float32(-(top + bottom) / tb)
	m[14] = float32(-(far + near) / fn)
	m[15] = 1
	return m, true
}

// Frustum creates a perspective projection, as glFrustum.
// The second result is false when a pair of bounds coincides.
func Frustum(left, right, bottom, top, near, far float64) (Matrix, bool) {
	rl, tb, fn := right-left, top-bottom, far-near
	if rl == 0 || tb == 0 || fn == 0 {
		return Identity(), false
	}
	var m Matrix
	m[0] = float32(2 * near / rl)
	m[5] = float32(2 * near / tb)
	m[8] = float32((right + left) / rl)
	m[9] = float32((top + bottom) / tb)
	m[10] = float32(-(far + near) / fn)
	m[11] = -1
	m[14] = float32(-2 * far * near / fn)
	return m, true
}

// MatrixFromFloats builds a matrix from 16 column-major floats, the
// argument layout of glMultMatrixf.
func MatrixFromFloats(f [16]float32) Matrix { return Matrix(f) }

// Floats returns the matrix as 16 column-major floats.
func (m Matrix) Floats() [16]float32 { return [16]float32(m) }

// Multiply returns m * other.
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			r[c*4+row] = m[row]*other[c*4] +
				m[4+row]*other[c*4+1] +
				m[8+row]*other[c*4+2] +
				m[12+row]*other[c*4+3]
		}
	}
	return r
}

// Transpose returns the transposed matrix.
func (m Matrix) Transpose() Matrix {
	var r Matrix
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			r[row*4+c] = m[c*4+row]
		}
	}
	return r
}

// Transform applies the matrix to a homogeneous vector.
func (m Matrix) Transform(v [4]float32) [4]float32 {
	return [4]float32{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// TransformPoint applies the matrix to the point (x, y, z, 1) and returns
// the xyz part without perspective division.
func (m Matrix) TransformPoint(x, y, z float32) (float32, float32, float32) {
	v := m.Transform([4]float32{x, y, z, 1})
	return v[0], v[1], v[2]
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// ApproxEqual reports whether every element of m and other differ by at
// most eps.
func (m Matrix) ApproxEqual(other Matrix, eps float32) bool {
	for i := range m {
		d := m[i] - other[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}

func deg2rad(deg float32) float32 { return deg * math.Pi / 180 }
