// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import (
	"errors"
	"testing"
)

func TestMatrixStackRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		mode MatrixMode
	}{
		{"modelview", Modelview},
		{"projection", Projection},
		{"projection bottom", ProjectionBottom},
		{"texture", TextureMatrix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(t)
			ctx.MatrixMode(tt.mode)
			ctx.Translatef(3, 4, 5)
			ctx.Rotatef(30, 0, 0, 1)
			before := ctx.ActiveMatrix()

			for i := 0; i < 3; i++ {
				if err := ctx.PushMatrix(); err != nil {
					t.Fatalf("PushMatrix() error = %v", err)
				}
				ctx.Translatef(float32(i), 2, 0)
				ctx.Rotatef(45, 1, 1, 0)
				ctx.Scalef(2, 0.5, 1)
			}
			ctx.MultMatrixf(Translate(9, 9, 9).Floats())
			for i := 0; i < 3; i++ {
				ctx.PopMatrix()
			}

			if got := ctx.ActiveMatrix(); !got.ApproxEqual(before, eps) {
				t.Errorf("active after round trip = %v, want %v", got, before)
			}
			if d := ctx.MatrixStackDepth(); d != 0 {
				t.Errorf("MatrixStackDepth() = %d, want 0", d)
			}
		})
	}
}

func TestLoadIdentityTranslateZero(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.Translatef(5, 6, 7)
	ctx.LoadIdentity()
	ctx.Translatef(0, 0, 0)
	if got := ctx.ActiveMatrix(); !got.IsIdentity() {
		t.Errorf("ActiveMatrix() = %v, want identity", got)
	}
}

func TestPushRedirectsModelviewToTransform(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.Translatef(1, 0, 0)
	base := ctx.MatrixModelview()

	if err := ctx.PushMatrix(); err != nil {
		t.Fatal(err)
	}
	ctx.Translatef(10, 0, 0)

	if got := ctx.MatrixModelview(); got != base {
		t.Errorf("modelview changed inside push: %v, want %v", got, base)
	}
	if got := ctx.MatrixTransform(); got != Translate(10, 0, 0) {
		t.Errorf("MatrixTransform() = %v, want Translate(10,0,0)", got)
	}

	// Reselecting modelview inside the push keeps targeting the transform.
	ctx.MatrixMode(Projection)
	ctx.MatrixMode(Modelview)
	ctx.Translatef(0, 5, 0)
	if got := ctx.MatrixModelview(); got != base {
		t.Errorf("modelview changed after MatrixMode(Modelview): %v", got)
	}

	ctx.PopMatrix()
	if got := ctx.MatrixTransform(); !got.IsIdentity() {
		t.Errorf("MatrixTransform() after pop = %v, want identity", got)
	}
	if ctx.matrices.transformRequired {
		t.Error("transformRequired still set at depth 0")
	}
	ctx.Translatef(0, 0, 1)
	if got := ctx.MatrixModelview(); got != base.Multiply(Translate(0, 0, 1)) {
		t.Errorf("modelview after pop did not become active again: %v", got)
	}
}

func TestPushTransformAppliedToVertices(t *testing.T) {
	ctx, fb := newTestContext(t)
	if err := ctx.PushMatrix(); err != nil {
		t.Fatal(err)
	}
	ctx.Translatef(10, 20, 0)
	ctx.Scalef(2, 2, 1)

	ctx.Begin(Triangles)
	ctx.Vertex3f(1, 1, 0)
	ctx.Vertex3f(2, 1, 0)
	ctx.Vertex3f(1, 2, 0)
	ctx.End()
	ctx.PopMatrix()
	ctx.DrawRenderBatchActive()

	if len(fb.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(fb.draws))
	}
	cmd := fb.draws[0]
	if !cmd.Modelview.IsIdentity() {
		t.Errorf("record modelview = %v, want identity", cmd.Modelview)
	}
	want := [][2]float32{{12, 22}, {14, 22}, {12, 24}}
	for i, v := range cmd.Vertices {
		if v.Position[0] != want[i][0] || v.Position[1] != want[i][1] {
			t.Errorf("vertex %d position = %v, want %v", i, v.Position, want[i])
		}
	}
}

func TestPushOverflowRejected(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.MatrixMode(Projection)
	for i := 0; i < MaxMatrixStackSize; i++ {
		if err := ctx.PushMatrix(); err != nil {
			t.Fatalf("PushMatrix() #%d error = %v", i+1, err)
		}
	}
	err := ctx.PushMatrix()
	if !errors.Is(err, ErrMatrixStackOverflow) {
		t.Fatalf("PushMatrix() past the bound error = %v, want ErrMatrixStackOverflow", err)
	}
	if d := ctx.MatrixStackDepth(); d != MaxMatrixStackSize {
		t.Errorf("MatrixStackDepth() = %d, want %d", d, MaxMatrixStackSize)
	}
}

func TestPopEmptyStack(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.Translatef(1, 2, 3)
	want := ctx.ActiveMatrix()
	for i := 0; i < 3; i++ {
		ctx.PopMatrix()
	}
	if d := ctx.MatrixStackDepth(); d != 0 {
		t.Errorf("MatrixStackDepth() = %d, want 0", d)
	}
	if got := ctx.ActiveMatrix(); got != want {
		t.Errorf("ActiveMatrix() = %v, want %v", got, want)
	}
}

func TestUnknownMatrixModeIgnored(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.MatrixMode(Projection)
	ctx.MatrixMode(MatrixMode(0x9999))
	if got := ctx.CurrentMatrixMode(); got != Projection {
		t.Errorf("CurrentMatrixMode() = %v, want projection", got)
	}
}

func TestDegenerateOrthoLeavesMatrix(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.MatrixMode(Projection)
	ctx.Ortho(0, 400, 240, 0, 0, 1)
	want := ctx.ActiveMatrix()
	ctx.Ortho(5, 5, 0, 1, 0, 1)
	ctx.Frustum(-1, 1, 2, 2, 1, 10)
	if got := ctx.ActiveMatrix(); got != want {
		t.Errorf("ActiveMatrix() = %v, want %v", got, want)
	}
}

func TestOrthoComposesWithActive(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.MatrixMode(Projection)
	ctx.Translatef(1, 0, 0)
	ctx.Ortho(0, 2, 0, 2, -1, 1)

	o, _ := Ortho(0, 2, 0, 2, -1, 1)
	want := Translate(1, 0, 0).Multiply(o)
	if got := ctx.ActiveMatrix(); !got.ApproxEqual(want, eps) {
		t.Errorf("ActiveMatrix() = %v, want %v", got, want)
	}
}

func TestSetMatrixProjectionFollowsScreen(t *testing.T) {
	ctx, _ := newTestContext(t)
	top := Translate(1, 0, 0)
	bottom := Translate(0, 1, 0)
	ctx.SetMatrixProjection(top)
	ctx.SetCurrentScreen(ScreenBottom)
	ctx.SetMatrixProjection(bottom)

	if got := ctx.MatrixProjection(); got != bottom {
		t.Errorf("bottom MatrixProjection() = %v, want %v", got, bottom)
	}
	ctx.SetCurrentScreen(ScreenTop)
	if got := ctx.MatrixProjection(); got != top {
		t.Errorf("top MatrixProjection() = %v, want %v", got, top)
	}
}
