// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"image"
	"math"
	"os"

	_ "golang.org/x/image/bmp" // BMP textures

	"github.com/gogpu/rlgl"
)

// sceneTexture loads the image at path, or builds a checkerboard when
// path is empty.
func sceneTexture(ctx *rlgl.Context, path string) (uint32, error) {
	if path == "" {
		id, err := ctx.CreateTexture(checkerboard(16, 4), 16, 16, rlgl.PixelFormatR8G8B8A8, 1)
		if err != nil {
			return 0, err
		}
		for _, p := range []rlgl.TextureParam{rlgl.TextureMagFilter, rlgl.TextureMinFilter} {
			if err := ctx.SetTextureParameter(id, p, rlgl.FilterNearest); err != nil {
				return 0, err
			}
		}
		return id, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	id, err := ctx.LoadTextureFromImage(img)
	if err != nil {
		return 0, err
	}
	if _, err := ctx.GenerateMipmaps(id); err == nil {
		_ = ctx.SetTextureParameter(id, rlgl.TextureMinFilter, rlgl.FilterMipLinear)
	}
	return id, nil
}

// checkerboard returns size x size RGBA8 texels in cells of cell pixels.
func checkerboard(size, cell int) []byte {
	pix := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := byte(0x40)
			if (x/cell+y/cell)%2 == 0 {
				v = 0xF0
			}
			i := (y*size + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 0xFF
		}
	}
	return pix
}

// screenOrtho sets a pixel projection with the origin at the top-left of
// the current screen.
func screenOrtho(ctx *rlgl.Context) (w, h float32) {
	sz := ctx.Caps().ScreenSize(ctx.CurrentScreen())
	if ctx.CurrentScreen() == rlgl.ScreenBottom {
		ctx.MatrixMode(rlgl.ProjectionBottom)
	} else {
		ctx.MatrixMode(rlgl.Projection)
	}
	ctx.LoadIdentity()
	ctx.Ortho(0, float64(sz.X), float64(sz.Y), 0, -1, 1)
	ctx.MatrixMode(rlgl.Modelview)
	ctx.LoadIdentity()
	return float32(sz.X), float32(sz.Y)
}

func drawScene(ctx *rlgl.Context, tex uint32, frame int) {
	w, h := screenOrtho(ctx)
	ctx.ClearColor(24, 28, 40, 255)
	ctx.ClearScreenBuffers()

	// Background grid.
	ctx.Begin(rlgl.Lines)
	ctx.Color4ub(60, 70, 90, 255)
	for x := float32(0); x <= w; x += 20 {
		ctx.Vertex2f(x, 0)
		ctx.Vertex2f(x, h)
	}
	for y := float32(0); y <= h; y += 20 {
		ctx.Vertex2f(0, y)
		ctx.Vertex2f(w, y)
	}
	ctx.End()

	// Textured quad spinning about the center.
	_ = ctx.PushMatrix()
	ctx.Translatef(w/2, h/2, 0)
	ctx.Rotatef(float32(frame*3), 0, 0, 1)
	_ = ctx.SetTexture(tex)
	ctx.Begin(rlgl.Quads)
	ctx.Color4ub(255, 255, 255, 255)
	ctx.TexCoord2f(0, 0)
	ctx.Vertex2f(-48, -48)
	ctx.TexCoord2f(0, 1)
	ctx.Vertex2f(-48, 48)
	ctx.TexCoord2f(1, 1)
	ctx.Vertex2f(48, 48)
	ctx.TexCoord2f(1, 0)
	ctx.Vertex2f(48, -48)
	ctx.End()
	_ = ctx.SetTexture(0)
	ctx.PopMatrix()

	// Gouraud triangle.
	ctx.Begin(rlgl.Triangles)
	ctx.Color4ub(230, 41, 55, 255)
	ctx.Vertex2f(40, h-30)
	ctx.Color4ub(0, 228, 48, 255)
	ctx.Vertex2f(100, h-30)
	ctx.Color4ub(0, 121, 241, 255)
	ctx.Vertex2f(70, h-90)
	ctx.End()

	// Overlapping additive discs.
	ctx.SetBlendMode(rlgl.BlendAdditive)
	for i, c := range [][3]uint8{{200, 40, 40}, {40, 200, 40}, {40, 40, 200}} {
		a := float64(i)*2*math.Pi/3 + float64(frame)*0.05
		disc(ctx, w-70+float32(18*math.Cos(a)), 70+float32(18*math.Sin(a)), 30, c)
	}
	ctx.SetBlendMode(rlgl.BlendAlpha)

	// Wireframe hexagon.
	ctx.EnableWireMode()
	disc(ctx, w-70, h-60, 36, [3]uint8{250, 220, 120})
	ctx.DisableWireMode()
}

// disc draws a filled polygon approximating a circle as a triangle fan.
func disc(ctx *rlgl.Context, cx, cy, r float32, c [3]uint8) {
	const sides = 6
	ctx.Begin(rlgl.Triangles)
	ctx.Color4ub(c[0], c[1], c[2], 255)
	for i := 0; i < sides; i++ {
		a0 := float64(i) * 2 * math.Pi / sides
		a1 := float64(i+1) * 2 * math.Pi / sides
		ctx.Vertex2f(cx, cy)
		ctx.Vertex2f(cx+r*float32(math.Cos(a1)), cy+r*float32(math.Sin(a1)))
		ctx.Vertex2f(cx+r*float32(math.Cos(a0)), cy+r*float32(math.Sin(a0)))
	}
	ctx.End()
}

// drawStatus draws a progress bar on the bottom screen, clipped to a
// scissor box.
func drawStatus(ctx *rlgl.Context, frame int) {
	w, h := screenOrtho(ctx)
	ctx.ClearColor(10, 10, 10, 255)
	ctx.ClearScreenBuffers()

	progress := float32(frame%60+1) / 60
	ctx.Scissor(20, int(h)/2-10, int(w)-40, 20)
	ctx.EnableScissorTest()
	ctx.Begin(rlgl.Quads)
	ctx.Color4ub(255, 161, 0, 255)
	ctx.Vertex2f(20, h/2-10)
	ctx.Vertex2f(20, h/2+10)
	ctx.Vertex2f(20+(w-40)*progress, h/2+10)
	ctx.Vertex2f(20+(w-40)*progress, h/2-10)
	ctx.End()
	ctx.DisableScissorTest()
}
