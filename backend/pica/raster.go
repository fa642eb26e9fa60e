// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pica

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/internal/parallel"
)

// minBandHeight is the smallest band a draw is split into.
const minBandHeight = 16

// fragment is a vertex after the vertex shader and viewport transform.
type fragment struct {
	x, y  float32 // window coordinates, y down
	z     float32 // depth in 0..1
	invW  float32
	color [4]float32
	uv    [2]float32
}

// raster holds the state of one draw.
type raster struct {
	t     *target
	tex   *texture
	state rlgl.RenderState
	clip  image.Rectangle
	vp    image.Rectangle
}

// Draw runs the vertex shader on every vertex of cmd and rasterizes the
// resulting primitives into the target of cmd.Screen.
func (b *Backend) Draw(cmd *rlgl.DrawCommand) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, err := b.target(cmd.Screen)
	if err != nil {
		return err
	}
	b.projection = MatrixLayout(cmd.Projection)
	b.modelview = MatrixLayout(cmd.Modelview)

	r := raster{t: t, state: cmd.State}
	if cmd.Texture != nil {
		if r.tex, err = b.lookup(cmd.Texture); err != nil {
			return err
		}
	}
	r.setup()
	if r.clip.Empty() {
		return nil
	}

	if cmd.Mode != rlgl.Triangles && cmd.Mode != rlgl.Lines {
		return fmt.Errorf("pica: unsupported primitive %v", cmd.Mode)
	}

	frags := make([]fragment, len(cmd.Vertices))
	valid := make([]bool, len(cmd.Vertices))
	for i := range cmd.Vertices {
		frags[i], valid[i] = r.shade(b.projection, b.modelview, &cmd.Vertices[i])
	}

	bands := []image.Rectangle{r.clip}
	if b.pool != nil {
		bands = parallel.Bands(r.clip, b.pool.Workers(), minBandHeight)
	}
	if len(bands) == 1 {
		r.primitives(cmd.Mode, frags, valid)
		return nil
	}
	// Bands share no pixels, so each keeps the submission order of its
	// own pixels.
	work := make([]func(), len(bands))
	for i, band := range bands {
		br := r
		br.clip = band
		work[i] = func() { br.primitives(cmd.Mode, frags, valid) }
	}
	b.pool.ExecuteAll(work)
	return nil
}

// primitives rasterizes the shaded vertices inside r.clip.
func (r *raster) primitives(mode rlgl.Topology, frags []fragment, valid []bool) {
	switch mode {
	case rlgl.Triangles:
		for i := 0; i+3 <= len(frags); i += 3 {
			if !valid[i] || !valid[i+1] || !valid[i+2] {
				continue
			}
			a, b, c := &frags[i], &frags[i+1], &frags[i+2]
			if r.state.Wire {
				r.line(a, b)
				r.line(b, c)
				r.line(c, a)
				continue
			}
			r.triangle(a, b, c)
		}
	case rlgl.Lines:
		for i := 0; i+2 <= len(frags); i += 2 {
			if valid[i] && valid[i+1] {
				r.line(&frags[i], &frags[i+1])
			}
		}
	}
}

// setup derives the viewport and clip rectangles in window coordinates.
// rlgl rectangles have their origin at the bottom-left.
func (r *raster) setup() {
	h := r.t.color.Rect.Dy()
	flip := func(x, y, w, hh int) image.Rectangle {
		return image.Rect(x, h-(y+hh), x+w, h-y)
	}
	v := r.state.Viewport
	r.vp = flip(v.X, v.Y, v.Width, v.Height)
	r.clip = r.vp.Intersect(r.t.color.Rect)
	if r.state.Scissor {
		s := r.state.ScissorRect
		r.clip = r.clip.Intersect(flip(s.X, s.Y, s.Width, s.Height))
	}
}

// shade is the vertex shader: both uniform matrices followed by the
// perspective divide and the viewport transform.
func (r *raster) shade(projection, modelview Uniform, v *rlgl.Vertex) (fragment, bool) {
	clip := projection.transform(modelview.transform(v.Position))
	if clip[3] <= 0 {
		return fragment{}, false
	}
	inv := 1 / clip[3]
	nx, ny, nz := clip[0]*inv, clip[1]*inv, clip[2]*inv
	vp := r.vp
	return fragment{
		x:     float32(vp.Min.X) + (nx+1)/2*float32(vp.Dx()),
		y:     float32(vp.Max.Y) - (ny+1)/2*float32(vp.Dy()),
		z:     (nz + 1) / 2,
		invW:  inv,
		color: v.Color,
		uv:    [2]float32{v.TexCoord[0], v.TexCoord[1]},
	}, true
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// triangle fills a triangle with perspective correct attributes.
// Counter-clockwise triangles in GL orientation are front facing.
func (r *raster) triangle(a, b, c *fragment) {
	area := edge(a.x, a.y, b.x, b.y, c.x, c.y)
	if area == 0 {
		return
	}
	// Window y points down, so a front facing triangle has negative area.
	if r.state.Cull && area > 0 {
		return
	}

	minX := int(math.Floor(float64(min(a.x, b.x, c.x))))
	maxX := int(math.Ceil(float64(max(a.x, b.x, c.x))))
	minY := int(math.Floor(float64(min(a.y, b.y, c.y))))
	maxY := int(math.Ceil(float64(max(a.y, b.y, c.y))))
	box := image.Rect(minX, minY, maxX, maxY).Intersect(r.clip)

	inv := 1 / area
	for y := box.Min.Y; y < box.Max.Y; y++ {
		py := float32(y) + 0.5
		for x := box.Min.X; x < box.Max.X; x++ {
			px := float32(x) + 0.5
			w0 := edge(b.x, b.y, c.x, c.y, px, py) * inv
			w1 := edge(c.x, c.y, a.x, a.y, px, py) * inv
			w2 := edge(a.x, a.y, b.x, b.y, px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			r.interpolate(x, y, a, b, c, w0, w1, w2)
		}
	}
}

// interpolate computes the attributes at the barycentric weights and
// writes the pixel.
func (r *raster) interpolate(x, y int, a, b, c *fragment, w0, w1, w2 float32) {
	z := a.z*w0 + b.z*w1 + c.z*w2
	p0, p1, p2 := w0*a.invW, w1*b.invW, w2*c.invW
	norm := 1 / (p0 + p1 + p2)
	p0, p1, p2 = p0*norm, p1*norm, p2*norm

	var col [4]float32
	for i := range col {
		col[i] = a.color[i]*p0 + b.color[i]*p1 + c.color[i]*p2
	}
	u := a.uv[0]*p0 + b.uv[0]*p1 + c.uv[0]*p2
	v := a.uv[1]*p0 + b.uv[1]*p1 + c.uv[1]*p2
	r.write(x, y, z, col, u, v)
}

// subpixels is the precision of window coordinates, the 4 fractional
// bits of the PICA200 rasterizer.
const subpixels = 16

// snap rounds a window coordinate to the subpixel grid.
func snap(v float32) float32 {
	return float32(math.Round(float64(v)*subpixels)) / subpixels
}

// line draws a one pixel wide line with linear attributes. Endpoints
// are snapped first so that a vertex at 9.99999 lights the same pixel
// as one at 10.
func (r *raster) line(a, b *fragment) {
	ax, ay := snap(a.x), snap(a.y)
	dx, dy := snap(b.x)-ax, snap(b.y)-ay
	steps := int(math.Ceil(float64(max(abs(dx), abs(dy)))))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		x := int(math.Floor(float64(ax + dx*t)))
		y := int(math.Floor(float64(ay + dy*t)))
		if !(image.Point{X: x, Y: y}).In(r.clip) {
			continue
		}
		var col [4]float32
		for k := range col {
			col[k] = a.color[k] + (b.color[k]-a.color[k])*t
		}
		u := a.uv[0] + (b.uv[0]-a.uv[0])*t
		v := a.uv[1] + (b.uv[1]-a.uv[1])*t
		r.write(x, y, a.z+(b.z-a.z)*t, col, u, v)
	}
}

// write runs the texture combiner, the depth test and the blender for
// one pixel. The depth test passes fragments at or beyond the stored
// depth, like the GPU_GEQUAL setup of the hardware, so the decreasing
// depth of later 2D primitives puts them on top.
func (r *raster) write(x, y int, z float32, col [4]float32, u, v float32) {
	w := r.t.color.Rect.Dx()
	di := y*w + x
	if r.state.DepthTest && z < r.t.depth[di] {
		return
	}
	if r.tex != nil {
		s := r.tex.sample(u, v)
		for i := range col {
			col[i] *= s[i]
		}
	}

	pi := r.t.color.PixOffset(x, y)
	pix := r.t.color.Pix[pi : pi+4 : pi+4]
	var dst [4]float32
	for i := range dst {
		dst[i] = float32(pix[i]) / 255
	}
	out := blend(r.state.Blend, col, dst)
	for i := range out {
		pix[i] = uint8(clamp01(out[i])*255 + 0.5)
	}
	if r.state.DepthMask {
		r.t.depth[di] = z
	}
}

// blend combines source and destination colors like the matching GL
// blend equations.
func blend(mode rlgl.BlendMode, src, dst [4]float32) [4]float32 {
	var out [4]float32
	a := src[3]
	for i := 0; i < 3; i++ {
		switch mode {
		case rlgl.BlendAdditive:
			out[i] = src[i]*a + dst[i]
		case rlgl.BlendMultiplied:
			out[i] = src[i]*dst[i] + dst[i]*(1-a)
		case rlgl.BlendAddColors:
			out[i] = src[i] + dst[i]
		case rlgl.BlendSubtractColors:
			out[i] = src[i] - dst[i]
		default:
			out[i] = src[i]*a + dst[i]*(1-a)
		}
	}
	switch mode {
	case rlgl.BlendAddColors:
		out[3] = src[3] + dst[3]
	case rlgl.BlendSubtractColors:
		out[3] = src[3] - dst[3]
	default:
		out[3] = a + dst[3]*(1-a)
	}
	return out
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float32) float32 { return min(max(v, 0), 1) }
