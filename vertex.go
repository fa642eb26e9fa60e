// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import "fmt"

// Topology selects how Begin groups the submitted vertices.
// The values match the GL primitive enums.
type Topology int32

const (
	Lines     Topology = 0x0001 // GL_LINES
	Triangles Topology = 0x0004 // GL_TRIANGLES
	Quads     Topology = 0x0007 // GL_QUADS
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case Lines:
		return "Lines"
	case Triangles:
		return "Triangles"
	case Quads:
		return "Quads"
	default:
		return fmt.Sprintf("Topology(%#x)", int32(t))
	}
}

// verticesPerPrimitive returns how many vertices form one primitive.
func (t Topology) verticesPerPrimitive() int {
	switch t {
	case Lines:
		return 2
	case Triangles:
		return 3
	case Quads:
		return 4
	default:
		return 1
	}
}

// Attribute identifies one per-vertex attribute slot. The value is the
// shader input location.
type Attribute int

const (
	AttribPosition Attribute = iota
	AttribTexCoord
	AttribColor
	AttribNormal

	numAttributes
)

// DefaultShaderAttributes is the attribute count of the default shader:
// position, texcoord and color. Normals are accepted but not consumed.
const DefaultShaderAttributes = 3

// String returns the attribute name.
func (a Attribute) String() string {
	switch a {
	case AttribPosition:
		return "position"
	case AttribTexCoord:
		return "texcoord"
	case AttribColor:
		return "color"
	case AttribNormal:
		return "normal"
	default:
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
}

// Vertex is one complete vertex record. Every attribute is a
// 4-component tuple; unused components keep their reset values.
type Vertex struct {
	Position [4]float32
	TexCoord [4]float32
	Color    [4]float32
	Normal   [4]float32
}

// attribute returns a pointer to the slot for a.
func (v *Vertex) attribute(a Attribute) *[4]float32 {
	switch a {
	case AttribPosition:
		return &v.Position
	case AttribTexCoord:
		return &v.TexCoord
	case AttribColor:
		return &v.Color
	default:
		return &v.Normal
	}
}

// resetVertex holds the values every attribute takes at Begin.
var resetVertex = Vertex{
	Position: [4]float32{0, 0, 0, 0},
	TexCoord: [4]float32{0, 0, 0, 0},
	Color:    [4]float32{1, 1, 1, 1},
	Normal:   [4]float32{0, 0, 1, 0},
}
