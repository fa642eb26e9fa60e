// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

// DepthEpsilon is the amount the batch depth decreases after every
// completed primitive, so later 2D primitives land in front of earlier
// ones without a depth test.
const DepthEpsilon float32 = 1.0 / 20000.0

// DrawCall is one draw call record of a render batch.
type DrawCall struct {
	Mode        Topology
	VertexCount int

	// VertexAlignment is the number of unused buffer slots after this
	// record, keeping the next record aligned to a multiple of four.
	VertexAlignment int

	TextureID  uint32
	Projection Matrix
	Modelview  Matrix

	first int // offset of the first vertex in the buffer
}

// vertexBuffer holds the vertices of one buffering slot.
type vertexBuffer struct {
	vertices []Vertex
	count    int // used slots, including alignment padding
}

// RenderBatch accumulates draw call records and their vertices until it
// is drawn. A Context draws its active batch on overflow, on state
// changes and at EndFrame.
type RenderBatch struct {
	buffers  []vertexBuffer
	current  int
	elements int // quads per buffer

	draws    []DrawCall
	maxDraws int

	depth float32

	quadScratch []Vertex
}

// NewRenderBatch allocates a batch with the given number of vertex
// buffers, quads per buffer and draw call records.
func NewRenderBatch(buffers, elements, maxDraws int) *RenderBatch {
	buffers = max(buffers, 1)
	elements = max(elements, 1)
	maxDraws = max(maxDraws, 1)

	b := &RenderBatch{
		buffers:  make([]vertexBuffer, buffers),
		elements: elements,
		draws:    make([]DrawCall, 0, maxDraws),
		maxDraws: maxDraws,
	}
	for i := range b.buffers {
		b.buffers[i].vertices = make([]Vertex, elements*4)
	}
	return b
}

// Capacity returns the number of vertices one buffer holds.
func (b *RenderBatch) Capacity() int { return b.elements * 4 }

// Buffers returns the number of vertex buffers.
func (b *RenderBatch) Buffers() int { return len(b.buffers) }

// CurrentBuffer returns the index of the buffer being filled.
func (b *RenderBatch) CurrentBuffer() int { return b.current }

// VertexCount returns the used slots of the current buffer, including
// alignment padding.
func (b *RenderBatch) VertexCount() int { return b.buffers[b.current].count }

// Draws returns the draw call records of the batch. The slice is only
// valid until the batch is modified.
func (b *RenderBatch) Draws() []DrawCall { return b.draws }

// Depth returns the depth assigned to the next 2D vertex.
func (b *RenderBatch) Depth() float32 { return b.depth }

// empty reports whether the batch has nothing to draw.
func (b *RenderBatch) empty() bool {
	for _, d := range b.draws {
		if d.VertexCount > 0 {
			return false
		}
	}
	return true
}

// fits reports whether n more vertices fit into the current buffer.
func (b *RenderBatch) fits(n int) bool {
	return b.buffers[b.current].count+n <= b.Capacity()
}

// last returns the open record, or nil.
func (b *RenderBatch) last() *DrawCall {
	if len(b.draws) == 0 {
		return nil
	}
	return &b.draws[len(b.draws)-1]
}

// open makes sure the last record matches the given parameters.
// It returns false when a new record would exceed the record limit or the
// alignment padding does not fit, in which case the batch must be drawn
// first.
func (b *RenderBatch) open(mode Topology, texture uint32, projection, modelview Matrix) bool {
	d := b.last()
	if d != nil && d.Mode == mode && d.TextureID == texture &&
		d.Projection == projection && d.Modelview == modelview {
		return true
	}
	if d != nil && d.VertexCount == 0 {
		d.Mode, d.TextureID, d.Projection, d.Modelview = mode, texture, projection, modelview
		return true
	}
	if len(b.draws) >= b.maxDraws {
		return false
	}

	buf := &b.buffers[b.current]
	if d != nil {
		align := vertexAlignment(d.Mode, d.VertexCount)
		if !b.fits(align) {
			return false
		}
		d.VertexAlignment = align
		buf.count += align
	}
	b.draws = append(b.draws, DrawCall{
		Mode:       mode,
		TextureID:  texture,
		Projection: projection,
		Modelview:  modelview,
		first:      buf.count,
	})
	return true
}

// vertexAlignment returns the padding that keeps the next record on a
// four vertex boundary, which is where quad groups must start.
func vertexAlignment(mode Topology, count int) int {
	if mode == Quads {
		return 0
	}
	return (4 - count%4) % 4
}

// push appends v to the open record. It reports false when the buffer is
// full.
func (b *RenderBatch) push(v *Vertex) bool {
	d := b.last()
	buf := &b.buffers[b.current]
	if d == nil || buf.count >= b.Capacity() {
		return false
	}
	buf.vertices[buf.count] = *v
	buf.count++
	d.VertexCount++
	return true
}

// truncate drops the last n vertices of the open record.
func (b *RenderBatch) truncate(n int) {
	d := b.last()
	if d == nil {
		return
	}
	n = min(n, d.VertexCount)
	d.VertexCount -= n
	b.buffers[b.current].count -= n
}

// lastVertices returns the last n vertices of the open record.
func (b *RenderBatch) lastVertices(n int) []Vertex {
	d := b.last()
	if d == nil || n <= 0 {
		return nil
	}
	end := d.first + d.VertexCount
	return b.buffers[b.current].vertices[end-n : end]
}

// references reports whether any pending record samples texture id.
func (b *RenderBatch) references(id uint32) bool {
	for _, d := range b.draws {
		if d.TextureID == id && d.VertexCount > 0 {
			return true
		}
	}
	return false
}

// vertices returns the vertex data of record d, with quads expanded
// into two triangles each. The returned slice is reused by later calls.
func (b *RenderBatch) vertices(d *DrawCall) (Topology, []Vertex) {
	src := b.buffers[b.current].vertices[d.first : d.first+d.VertexCount]
	if d.Mode != Quads {
		return d.Mode, src
	}
	b.quadScratch = expandQuads(b.quadScratch[:0], src)
	return Triangles, b.quadScratch
}

// expandQuads appends the two triangles of every group of four quad
// vertices q0..q3: (q0, q1, q2) and (q2, q3, q0). Both share the q0-q2
// diagonal. A trailing partial quad is ignored.
func expandQuads(dst, src []Vertex) []Vertex {
	for i := 0; i+4 <= len(src); i += 4 {
		q := src[i : i+4]
		dst = append(dst, q[0], q[1], q[2], q[2], q[3], q[0])
	}
	return dst
}

// reset empties the batch after it was drawn and advances to the next
// vertex buffer.
func (b *RenderBatch) reset(depth float32) {
	b.buffers[b.current].count = 0
	b.current = (b.current + 1) % len(b.buffers)
	b.buffers[b.current].count = 0
	b.draws = b.draws[:0]
	b.depth = depth
}
