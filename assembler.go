// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

// vertexSink receives completed vertices from the assembler.
type vertexSink interface {
	emitVertex(v *Vertex)
}

// assembler turns attributes submitted one call at a time into complete
// vertex records.
//
// There is no explicit end-of-vertex call. A vertex is complete when an
// attribute slot that is already set gets written again; the pending set
// is then flushed and the new value starts the next vertex. Slots that
// were not written keep their last value.
type assembler struct {
	sink vertexSink

	// attributes is the number of slots the shader consumes. Writes to
	// higher slots are stored but never start a new vertex.
	attributes int

	topology Topology
	active   bool

	used   [numAttributes]bool
	last   Vertex
	backup Vertex

	// phase is the line parity for Lines and the position within the
	// current quad for Quads.
	phase int
}

func newAssembler(sink vertexSink, attributes int) assembler {
	return assembler{sink: sink, attributes: attributes, last: resetVertex}
}

// begin starts a primitive run.
func (a *assembler) begin(t Topology) {
	a.topology = t
	a.active = true
	a.used = [numAttributes]bool{}
	a.last = resetVertex
	a.backup = resetVertex
	a.phase = 0
}

// end flushes the pending vertex and closes the run.
func (a *assembler) end() {
	if a.pending() {
		a.flush()
	}
	a.active = false
}

// pending reports whether any consumed slot was written since the last
// flush.
func (a *assembler) pending() bool {
	for i := 0; i < a.attributes; i++ {
		if a.used[i] {
			return true
		}
	}
	return false
}

// set records one attribute value.
func (a *assembler) set(attr Attribute, v [4]float32) {
	if a.used[attr] && int(attr) < a.attributes {
		a.flush()
	}
	*a.last.attribute(attr) = v
	a.used[attr] = true
}

// flush hands the pending attribute set on according to the topology.
//
// Quads are emitted in submission order but the third vertex is held
// back one flush: phase 2 only saves it, and phase 3 emits it together
// with the fourth. The render batch builds both triangles of the quad
// from that group of four.
func (a *assembler) flush() {
	switch a.topology {
	case Lines:
		a.phase ^= 1
		a.send(&a.last)
	case Quads:
		switch a.phase {
		case 2:
			a.backup = a.last
			a.clearUsed()
		case 3:
			a.send(&a.backup)
			a.send(&a.last)
		default:
			a.send(&a.last)
		}
		a.phase = (a.phase + 1) % 4
	default:
		a.send(&a.last)
	}
}

func (a *assembler) send(v *Vertex) {
	a.sink.emitVertex(v)
	a.clearUsed()
}

func (a *assembler) clearUsed() {
	for i := 0; i < a.attributes; i++ {
		a.used[i] = false
	}
}
