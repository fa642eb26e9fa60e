// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pica

import "github.com/gogpu/rlgl"

// Uniform is a 4x4 matrix as loaded into four float vector uniform
// registers. Each register holds one column of the rlgl matrix with its
// components stored in w, z, y, x order.
type Uniform [16]float32

// MatrixLayout converts m to the uniform register layout by reversing
// every group of four components.
func MatrixLayout(m rlgl.Matrix) Uniform {
	var u Uniform
	for g := 0; g < 4; g++ {
		for i := 0; i < 4; i++ {
			u[g*4+3-i] = m[g*4+i]
		}
	}
	return u
}

// Matrix converts u back to an rlgl matrix.
func (u Uniform) Matrix() rlgl.Matrix {
	var m rlgl.Matrix
	for g := 0; g < 4; g++ {
		for i := 0; i < 4; i++ {
			m[g*4+i] = u[g*4+3-i]
		}
	}
	return m
}

// transform multiplies a column vector by the matrix held in u, reading
// the registers the way the vertex shader does.
func (u Uniform) transform(v [4]float32) [4]float32 {
	var out [4]float32
	for g := 0; g < 4; g++ {
		reg := u[g*4 : g*4+4]
		out[0] += reg[3] * v[g]
		out[1] += reg[2] * v[g]
		out[2] += reg[1] * v[g]
		out[3] += reg[0] * v[g]
	}
	return out
}
