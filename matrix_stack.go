// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import "fmt"

// MaxMatrixStackSize is the number of matrices PushMatrix can save.
const MaxMatrixStackSize = 32

// MatrixMode selects the matrix that transform calls modify.
// The values match the GL enums, plus a secondary projection for the
// bottom screen.
type MatrixMode int32

const (
	Modelview        MatrixMode = 0x1700 // GL_MODELVIEW
	Projection       MatrixMode = 0x1701 // GL_PROJECTION
	TextureMatrix    MatrixMode = 0x1702 // GL_TEXTURE
	ProjectionBottom MatrixMode = 0x1703 // projection of the bottom screen
)

// String returns the mode name.
func (m MatrixMode) String() string {
	switch m {
	case Modelview:
		return "modelview"
	case Projection:
		return "projection"
	case TextureMatrix:
		return "texture"
	case ProjectionBottom:
		return "projection_bottom"
	default:
		return fmt.Sprintf("MatrixMode(%#x)", int32(m))
	}
}

// matrixStack is the legacy GL matrix state: one shared stack of saved
// matrices plus the matrices each mode targets.
//
// Pushing in modelview mode redirects later modelview edits into
// transform, which is applied to vertex positions on the CPU. The base
// modelview therefore stays untouched until the stack is empty again.
type matrixStack struct {
	mode    MatrixMode
	current *Matrix

	modelview        Matrix
	projection       Matrix
	projectionBottom Matrix
	texture          Matrix
	transform        Matrix

	transformRequired bool

	stack [MaxMatrixStackSize]Matrix
	depth int
}

func (s *matrixStack) reset() {
	s.modelview = Identity()
	s.projection = Identity()
	s.projectionBottom = Identity()
	s.texture = Identity()
	s.transform = Identity()
	for i := range s.stack {
		s.stack[i] = Identity()
	}
	s.depth = 0
	s.transformRequired = false
	s.mode = Modelview
	s.current = &s.modelview
}

// setMode selects the active matrix. It reports false for unknown modes,
// which leave the state unchanged.
func (s *matrixStack) setMode(mode MatrixMode) bool {
	switch mode {
	case Modelview:
		if s.transformRequired {
			s.current = &s.transform
		} else {
			s.current = &s.modelview
		}
	case Projection:
		s.current = &s.projection
	case ProjectionBottom:
		s.current = &s.projectionBottom
	case TextureMatrix:
		s.current = &s.texture
	default:
		return false
	}
	s.mode = mode
	return true
}

// push saves the active matrix. A full stack rejects the push.
func (s *matrixStack) push() error {
	if s.depth >= MaxMatrixStackSize {
		return fmt.Errorf("%w (max %d)", ErrMatrixStackOverflow, MaxMatrixStackSize)
	}
	if s.mode == Modelview {
		s.transformRequired = true
		s.current = &s.transform
	}
	s.stack[s.depth] = *s.current
	s.depth++
	return nil
}

// pop restores the last saved matrix. It reports false when the stack
// was empty.
func (s *matrixStack) pop() bool {
	popped := false
	if s.depth > 0 {
		s.depth--
		*s.current = s.stack[s.depth]
		popped = true
	}
	if s.depth == 0 && s.mode == Modelview {
		s.current = &s.modelview
		s.transformRequired = false
	}
	return popped
}

func (s *matrixStack) loadIdentity() { *s.current = Identity() }

// apply composes f into the active matrix so that f acts on local space
// first: active = active * f.
func (s *matrixStack) apply(f Matrix) { *s.current = s.current.Multiply(f) }

// activeProjection returns the projection used for screen.
func (s *matrixStack) activeProjection(screen Screen) Matrix {
	if screen == ScreenBottom {
		return s.projectionBottom
	}
	return s.projection
}
