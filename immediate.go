// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

// Begin starts a primitive run of topology t. The projection of the
// current screen and the modelview are captured for the draw call record.
func (c *Context) Begin(t Topology) {
	if t != Lines && t != Triangles && t != Quads {
		c.log.Warn("rlgl: unknown topology", "topology", t)
		return
	}
	if c.asm.active {
		c.log.Debug("rlgl: Begin inside Begin, closing previous primitive")
		c.End()
	}
	c.asm.begin(t)
	c.primVertices = 0
	c.beginProjection = c.matrices.activeProjection(c.screen)
	c.beginModelview = c.matrices.modelview
	c.openRecord()
}

// End flushes the pending vertex and closes the primitive run. Vertices of
// an incomplete trailing primitive are discarded. The batch depth then
// moves one DepthEpsilon further back.
func (c *Context) End() {
	if !c.asm.active {
		c.log.Debug("rlgl: End without Begin")
		return
	}
	c.asm.end()
	if n := c.primVertices % c.asm.topology.verticesPerPrimitive(); n != 0 {
		c.log.Debug("rlgl: incomplete primitive discarded", "topology", c.asm.topology, "vertices", n)
		c.batch.truncate(n)
		c.stats.DroppedVertices += n
	}
	c.batch.depth -= DepthEpsilon
}

// openRecord makes the open draw call record match the current primitive
// run, drawing the batch first when it is out of records.
func (c *Context) openRecord() {
	mode := c.asm.topology
	if c.batch.open(mode, c.texture, c.beginProjection, c.beginModelview) {
		return
	}
	c.DrawRenderBatchActive()
	if !c.batch.open(mode, c.texture, c.beginProjection, c.beginModelview) {
		c.log.Error("rlgl: render batch cannot open a draw call")
	}
}

// emitVertex receives completed vertices from the assembler.
func (c *Context) emitVertex(v *Vertex) {
	out := *v
	if c.matrices.transformRequired {
		p := &out.Position
		p[0], p[1], p[2] = c.matrices.transform.TransformPoint(p[0], p[1], p[2])
	}
	if !c.matrices.texture.IsIdentity() {
		t := c.matrices.texture.Transform([4]float32{out.TexCoord[0], out.TexCoord[1], 0, 1})
		out.TexCoord[0], out.TexCoord[1] = t[0], t[1]
	}

	// A primitive never straddles two records or two batch draws. Its
	// first vertex picks up texture changes made since the last one and
	// draws the batch when the primitive does not fit.
	per := c.asm.topology.verticesPerPrimitive()
	if c.primVertices%per == 0 {
		c.openRecord()
		if !c.batch.fits(per) {
			c.DrawRenderBatchActive()
		}
	}
	if !c.batch.push(&out) {
		c.log.Error("rlgl: render batch overflow, vertex dropped",
			"capacity", c.batch.Capacity())
		c.stats.DroppedVertices++
		return
	}
	c.primVertices++
}

func (c *Context) attr(a Attribute, v [4]float32) {
	if !c.asm.active {
		c.log.Debug("rlgl: attribute outside Begin/End ignored", "attribute", a)
		return
	}
	c.asm.set(a, v)
}

// Vertex2i submits a 2D position at the current batch depth.
func (c *Context) Vertex2i(x, y int) {
	c.attr(AttribPosition, [4]float32{float32(x), float32(y), c.batch.depth, 1})
}

// Vertex2f submits a 2D position at the current batch depth.
func (c *Context) Vertex2f(x, y float32) {
	c.attr(AttribPosition, [4]float32{x, y, c.batch.depth, 1})
}

// Vertex3f submits a 3D position.
func (c *Context) Vertex3f(x, y, z float32) {
	c.attr(AttribPosition, [4]float32{x, y, z, 1})
}

// TexCoord2f submits a texture coordinate.
func (c *Context) TexCoord2f(u, v float32) {
	c.attr(AttribTexCoord, [4]float32{u, v, 0, 0})
}

// Normal3f submits a normal.
func (c *Context) Normal3f(x, y, z float32) {
	c.attr(AttribNormal, [4]float32{x, y, z, 0})
}

// Color4ub submits a color with 8-bit components.
func (c *Context) Color4ub(r, g, b, a uint8) {
	c.attr(AttribColor, [4]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255})
}

// Color3f submits an opaque color.
func (c *Context) Color3f(r, g, b float32) {
	c.attr(AttribColor, [4]float32{r, g, b, 1})
}

// Color4f submits a color.
func (c *Context) Color4f(r, g, b, a float32) {
	c.attr(AttribColor, [4]float32{r, g, b, a})
}

// SetDepth sets the depth used by Vertex2i and Vertex2f.
func (c *Context) SetDepth(depth float32) { c.batch.depth = depth }

// Depth returns the depth used by Vertex2i and Vertex2f.
func (c *Context) Depth() float32 { return c.batch.depth }
