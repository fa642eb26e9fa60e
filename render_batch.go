// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

// LoadRenderBatch allocates a render batch usable with SetRenderBatch.
func (c *Context) LoadRenderBatch(buffers, elements int) *RenderBatch {
	return NewRenderBatch(buffers, elements, DefaultBatchDraws)
}

// UnloadRenderBatch draws whatever b still holds and detaches it if it is
// active. The batch must not be used afterwards.
func (c *Context) UnloadRenderBatch(b *RenderBatch) {
	if b == nil {
		return
	}
	c.DrawRenderBatch(b)
	if c.batch == b {
		c.SetRenderBatch(nil)
	}
}

// SetRenderBatch makes b the active batch. Nil selects the default batch.
// The previously active batch is drawn first.
func (c *Context) SetRenderBatch(b *RenderBatch) {
	if b == nil {
		b = c.defaultBatch
	}
	if b == c.batch {
		return
	}
	c.DrawRenderBatchActive()
	c.batch = b
	if c.asm.active {
		c.openRecord()
	}
}

// RenderBatch returns the active batch.
func (c *Context) RenderBatch() *RenderBatch { return c.batch }

// DrawRenderBatchActive draws the active batch.
func (c *Context) DrawRenderBatchActive() { c.DrawRenderBatch(c.batch) }

// CheckRenderBatchLimit draws the active batch if n more vertices do not
// fit into it and reports whether it did.
func (c *Context) CheckRenderBatchLimit(n int) bool {
	if c.batch.fits(n) {
		return false
	}
	c.DrawRenderBatchActive()
	if c.asm.active {
		c.openRecord()
	}
	if !c.batch.fits(n) {
		c.log.Error("rlgl: vertex count exceeds render batch capacity", "vertices", n, "capacity", c.batch.Capacity())
	}
	return true
}

// DrawRenderBatch submits every draw call record of b in order, then
// resets b and advances it to its next vertex buffer. With stereo
// rendering enabled every record is drawn once per eye.
func (c *Context) DrawRenderBatch(b *RenderBatch) {
	if c.closed {
		return
	}
	if !b.empty() {
		eyes := []int{-1}
		if c.stereo {
			eyes = []int{0, 1}
		}
		for _, eye := range eyes {
			c.drawEye(b, eye)
		}
		c.stats.BatchDraws++
	}

	b.reset(0)
	// A primitive run that is still open continues in a fresh record.
	if b == c.batch && c.asm.active {
		b.open(c.asm.topology, c.texture, c.beginProjection, c.beginModelview)
	}
}

func (c *Context) drawEye(b *RenderBatch, eye int) {
	state := c.state
	if eye >= 0 {
		half := state.Viewport.Width / 2
		state.Viewport = Rect{X: state.Viewport.X + eye*half, Y: state.Viewport.Y, Width: half, Height: state.Viewport.Height}
	}

	for i := range b.draws {
		d := &b.draws[i]
		if d.VertexCount == 0 {
			continue
		}
		mode, verts := b.vertices(d)
		cmd := DrawCommand{
			Mode:       mode,
			Vertices:   verts,
			TextureID:  d.TextureID,
			Projection: d.Projection,
			Modelview:  d.Modelview,
			State:      state,
			Screen:     c.screen,
			Eye:        eye,
		}
		if eye >= 0 {
			cmd.Projection = c.stereoProjection[eye]
			cmd.Modelview = c.stereoViewOffset[eye].Multiply(d.Modelview)
		}
		if d.TextureID != 0 {
			e, ok := c.textures.table.Get(d.TextureID)
			if !ok {
				c.log.Warn("rlgl: draw references a destroyed texture", "id", d.TextureID)
				continue
			}
			cmd.Texture = e.tex
		}
		if err := c.backend.Draw(&cmd); err != nil {
			c.stats.BackendErrors++
			c.log.Error("rlgl: backend draw failed", "error", err, "mode", mode, "vertices", len(verts))
			continue
		}
		c.stats.DrawCalls++
		c.stats.Vertices += len(verts)
	}
}
