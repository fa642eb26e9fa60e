// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cgo && !nogpu

package opengl

import (
	"fmt"
	"image/color"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/gogpu/rlgl"
)

// Client array layout of rlgl.Vertex.
const (
	vertexStride   = int32(unsafe.Sizeof(rlgl.Vertex{}))
	texCoordOffset = unsafe.Offsetof(rlgl.Vertex{}.TexCoord)
	colorOffset    = unsafe.Offsetof(rlgl.Vertex{}.Color)
)

// blendFunc is the GL blend configuration of a blend mode.
type blendFunc struct {
	src, dst uint32
	equation uint32
}

func blendFor(m rlgl.BlendMode) blendFunc {
	switch m {
	case rlgl.BlendAdditive:
		return blendFunc{gl.SRC_ALPHA, gl.ONE, gl.FUNC_ADD}
	case rlgl.BlendMultiplied:
		return blendFunc{gl.DST_COLOR, gl.ONE_MINUS_SRC_ALPHA, gl.FUNC_ADD}
	case rlgl.BlendAddColors:
		return blendFunc{gl.ONE, gl.ONE, gl.FUNC_ADD}
	case rlgl.BlendSubtractColors:
		return blendFunc{gl.ONE, gl.ONE, gl.FUNC_SUBTRACT}
	default:
		return blendFunc{gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.FUNC_ADD}
	}
}

func enable(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// applyState loads s into the fixed function pipeline.
func applyState(s rlgl.RenderState) {
	bf := blendFor(s.Blend)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(bf.src, bf.dst)
	gl.BlendEquation(bf.equation)

	enable(gl.DEPTH_TEST, s.DepthTest)
	gl.DepthMask(s.DepthMask)
	enable(gl.CULL_FACE, s.Cull)
	if s.Wire {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	// GL shares the bottom-left origin of rlgl rectangles.
	vp := s.Viewport
	gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height)) //nolint:gosec // validated by rlgl
	enable(gl.SCISSOR_TEST, s.Scissor)
	if s.Scissor {
		r := s.ScissorRect
		gl.Scissor(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height)) //nolint:gosec // validated by rlgl
	}
}

func loadMatrices(projection, modelview rlgl.Matrix) {
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&projection[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(&modelview[0])
}

// Draw submits cmd from client arrays pointing into its vertex slice.
func (b *Backend) Draw(cmd *rlgl.DrawCommand) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return ErrNotInitialized
	}
	if cmd.Screen != rlgl.ScreenTop {
		return fmt.Errorf("%w: %v", ErrUnsupportedScreen, cmd.Screen)
	}

	var mode uint32
	verts := cmd.Vertices
	switch cmd.Mode {
	case rlgl.Triangles:
		mode, verts = gl.TRIANGLES, verts[:len(verts)/3*3]
	case rlgl.Lines:
		mode, verts = gl.LINES, verts[:len(verts)/2*2]
	default:
		return fmt.Errorf("opengl: unsupported primitive %v", cmd.Mode)
	}
	if len(verts) == 0 {
		return nil
	}

	if cmd.Texture != nil {
		tex, err := b.lookup(cmd.Texture)
		if err != nil {
			return err
		}
		gl.Enable(gl.TEXTURE_2D)
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		defer gl.Disable(gl.TEXTURE_2D)
	}
	applyState(cmd.State)
	loadMatrices(cmd.Projection, cmd.Modelview)

	base := unsafe.Pointer(&verts[0])
	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.EnableClientState(gl.COLOR_ARRAY)
	gl.VertexPointer(4, gl.FLOAT, vertexStride, base)
	gl.TexCoordPointer(2, gl.FLOAT, vertexStride, unsafe.Add(base, texCoordOffset))
	gl.ColorPointer(4, gl.FLOAT, vertexStride, unsafe.Add(base, colorOffset))

	gl.DrawArrays(mode, 0, int32(len(verts))) //nolint:gosec // batch sized

	gl.DisableClientState(gl.COLOR_ARRAY)
	gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.DisableClientState(gl.VERTEX_ARRAY)
	runtime.KeepAlive(verts)
	return glError("draw")
}

// Clear clears the whole color buffer to c and depth to the far plane.
func (b *Backend) Clear(s rlgl.Screen, c color.RGBA) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return ErrNotInitialized
	}
	if s != rlgl.ScreenTop {
		return fmt.Errorf("%w: %v", ErrUnsupportedScreen, s)
	}
	gl.Disable(gl.SCISSOR_TEST)
	gl.DepthMask(true)
	gl.ClearColor(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return glError("clear")
}
