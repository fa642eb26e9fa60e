// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

// MatrixMode selects the matrix that later transform calls modify.
// Unknown modes are logged and ignored.
func (c *Context) MatrixMode(mode MatrixMode) {
	if !c.matrices.setMode(mode) {
		c.log.Warn("rlgl: unknown matrix mode", "mode", mode)
	}
}

// CurrentMatrixMode returns the selected matrix mode.
func (c *Context) CurrentMatrixMode() MatrixMode { return c.matrices.mode }

// PushMatrix saves the active matrix on the stack. In modelview mode the
// following transforms accumulate into a separate transform that is
// applied to submitted vertices until the matching PopMatrix.
//
// A full stack rejects the push and returns ErrMatrixStackOverflow.
func (c *Context) PushMatrix() error {
	if err := c.matrices.push(); err != nil {
		c.log.Error("rlgl: matrix stack overflow", "max", MaxMatrixStackSize, "mode", c.matrices.mode)
		return err
	}
	return nil
}

// PopMatrix restores the last saved matrix. Popping an empty stack is a
// no-op.
func (c *Context) PopMatrix() {
	if !c.matrices.pop() {
		c.log.Debug("rlgl: pop on empty matrix stack")
	}
}

// MatrixStackDepth returns the number of saved matrices.
func (c *Context) MatrixStackDepth() int { return c.matrices.depth }

// LoadIdentity resets the active matrix.
func (c *Context) LoadIdentity() { c.matrices.loadIdentity() }

// Translatef multiplies the active matrix by a translation.
func (c *Context) Translatef(x, y, z float32) { c.matrices.apply(Translate(x, y, z)) }

// Rotatef multiplies the active matrix by a rotation of angleDeg degrees
// around the axis (x, y, z).
func (c *Context) Rotatef(angleDeg, x, y, z float32) {
	c.matrices.apply(Rotate(deg2rad(angleDeg), x, y, z))
}

// Scalef multiplies the active matrix by a scale.
func (c *Context) Scalef(x, y, z float32) { c.matrices.apply(Scale(x, y, z)) }

// MultMatrixf multiplies the active matrix by m, given as 16 column-major
// floats.
func (c *Context) MultMatrixf(m [16]float32) { c.matrices.apply(MatrixFromFloats(m)) }

// Ortho multiplies the active matrix by an orthographic projection.
// Degenerate bounds are logged and leave the matrix unchanged.
func (c *Context) Ortho(left, right, bottom, top, near, far float64) {
	m, ok := Ortho(left, right, bottom, top, near, far)
	if !ok {
		c.log.Warn("rlgl: degenerate ortho bounds ignored",
			"left", left, "right", right, "bottom", bottom, "top", top, "near", near, "far", far)
		return
	}
	c.matrices.apply(m)
}

// Frustum multiplies the active matrix by a perspective projection.
// Degenerate bounds are logged and leave the matrix unchanged.
func (c *Context) Frustum(left, right, bottom, top, near, far float64) {
	m, ok := Frustum(left, right, bottom, top, near, far)
	if !ok {
		c.log.Warn("rlgl: degenerate frustum bounds ignored",
			"left", left, "right", right, "bottom", bottom, "top", top, "near", near, "far", far)
		return
	}
	c.matrices.apply(m)
}

// Viewport sets the viewport rectangle of the current screen. Pending
// draws are submitted with the previous viewport first.
func (c *Context) Viewport(x, y, width, height int) {
	r := Rect{X: x, Y: y, Width: width, Height: height}
	if r == c.state.Viewport {
		return
	}
	c.DrawRenderBatchActive()
	c.state.Viewport = r
}

// MatrixModelview returns the base modelview matrix.
func (c *Context) MatrixModelview() Matrix { return c.matrices.modelview }

// MatrixProjection returns the projection of the current screen.
func (c *Context) MatrixProjection() Matrix { return c.matrices.activeProjection(c.screen) }

// MatrixTransform returns the transform accumulated since the outermost
// modelview PushMatrix, or the identity outside of one.
func (c *Context) MatrixTransform() Matrix {
	if !c.matrices.transformRequired {
		return Identity()
	}
	return c.matrices.transform
}

// ActiveMatrix returns the matrix transform calls currently modify.
func (c *Context) ActiveMatrix() Matrix { return *c.matrices.current }

// SetMatrixModelview replaces the base modelview matrix.
func (c *Context) SetMatrixModelview(m Matrix) { c.matrices.modelview = m }

// SetMatrixProjection replaces the projection of the current screen.
func (c *Context) SetMatrixProjection(m Matrix) {
	if c.screen == ScreenBottom {
		c.matrices.projectionBottom = m
		return
	}
	c.matrices.projection = m
}
