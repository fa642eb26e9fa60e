// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import "testing"

// recordSink collects emitted vertices.
type recordSink struct {
	got []Vertex
}

func (r *recordSink) emitVertex(v *Vertex) { r.got = append(r.got, *v) }

func pos(x, y float32) [4]float32 { return [4]float32{x, y, 0, 1} }

func TestAssemblerQuadPhases(t *testing.T) {
	sink := &recordSink{}
	a := newAssembler(sink, DefaultShaderAttributes)
	a.begin(Quads)

	wantEmitted := []int{0, 1, 2, 2} // emitted count after each vertex
	for i := 0; i < 4; i++ {
		a.set(AttribPosition, pos(float32(i), 0))
		if i > 0 && len(sink.got) != wantEmitted[i] {
			t.Errorf("after vertex %d emitted = %d, want %d", i, len(sink.got), wantEmitted[i])
		}
	}
	a.end()
	if len(sink.got) != 4 {
		t.Fatalf("emitted = %d, want 4", len(sink.got))
	}
	// Phase 3 emits the held back vertex first, then the current one.
	for i, v := range sink.got {
		if v.Position[0] != float32(i) {
			t.Errorf("emitted[%d].x = %v, want %d", i, v.Position[0], i)
		}
	}
	if a.phase != 0 {
		t.Errorf("phase after one quad = %d, want 0", a.phase)
	}
}

func TestAssemblerLineParity(t *testing.T) {
	sink := &recordSink{}
	a := newAssembler(sink, DefaultShaderAttributes)
	a.begin(Lines)
	for i := 0; i < 3; i++ {
		a.set(AttribPosition, pos(float32(i), 0))
	}
	// Two flushes so far.
	if a.phase != 0 {
		t.Errorf("parity after 2 flushes = %d, want 0", a.phase)
	}
	a.end()
	if a.phase != 1 {
		t.Errorf("parity after 3 flushes = %d, want 1", a.phase)
	}
	if len(sink.got) != 3 {
		t.Errorf("emitted = %d, want 3", len(sink.got))
	}
}

func TestAssemblerUnconsumedSlotDoesNotSplit(t *testing.T) {
	sink := &recordSink{}
	a := newAssembler(sink, DefaultShaderAttributes)
	a.begin(Triangles)
	a.set(AttribNormal, [4]float32{1, 0, 0, 0})
	a.set(AttribNormal, [4]float32{0, 1, 0, 0})
	a.set(AttribPosition, pos(1, 1))
	a.end()
	if len(sink.got) != 1 {
		t.Fatalf("emitted = %d, want 1", len(sink.got))
	}
	if n := sink.got[0].Normal; n != [4]float32{0, 1, 0, 0} {
		t.Errorf("normal = %v, want last written", n)
	}

	// With four consumed slots the normal does start a new vertex.
	sink.got = nil
	a = newAssembler(sink, 4)
	a.begin(Triangles)
	a.set(AttribNormal, [4]float32{1, 0, 0, 0})
	a.set(AttribNormal, [4]float32{0, 1, 0, 0})
	a.end()
	if len(sink.got) != 2 {
		t.Errorf("emitted with 4 slots = %d, want 2", len(sink.got))
	}
}

func TestAssemblerBeginResetsValues(t *testing.T) {
	sink := &recordSink{}
	a := newAssembler(sink, DefaultShaderAttributes)
	a.begin(Triangles)
	a.set(AttribColor, [4]float32{0.5, 0.5, 0.5, 0.5})
	a.set(AttribTexCoord, [4]float32{1, 1, 0, 0})
	a.end()

	a.begin(Triangles)
	a.set(AttribPosition, pos(0, 0))
	a.end()
	last := sink.got[len(sink.got)-1]
	if last.Color != resetVertex.Color || last.TexCoord != resetVertex.TexCoord || last.Normal != resetVertex.Normal {
		t.Errorf("vertex after Begin = %+v, want reset attributes", last)
	}
}

func TestAssemblerEndWithoutPendingEmitsNothing(t *testing.T) {
	sink := &recordSink{}
	a := newAssembler(sink, DefaultShaderAttributes)
	a.begin(Triangles)
	a.end()
	if len(sink.got) != 0 {
		t.Errorf("emitted = %d, want 0", len(sink.got))
	}
}
