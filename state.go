// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import "image/color"

// setState applies a render state change. Pending draws are submitted
// with the old state first, so nothing drawn before the change observes
// the new state.
func (c *Context) setState(update func(s *RenderState)) {
	next := c.state
	update(&next)
	if next == c.state {
		return
	}
	c.DrawRenderBatchActive()
	c.state = next
}

// SetBlendMode selects the blend mode. It is a no-op unless the mode
// changes.
func (c *Context) SetBlendMode(mode BlendMode) {
	if mode < BlendAlpha || mode > BlendSubtractColors {
		c.log.Warn("rlgl: unknown blend mode", "mode", mode)
		return
	}
	c.setState(func(s *RenderState) { s.Blend = mode })
}

// BlendMode returns the current blend mode.
func (c *Context) BlendMode() BlendMode { return c.state.Blend }

// EnableDepthTest enables the depth test.
func (c *Context) EnableDepthTest() { c.setState(func(s *RenderState) { s.DepthTest = true }) }

// DisableDepthTest disables the depth test.
func (c *Context) DisableDepthTest() { c.setState(func(s *RenderState) { s.DepthTest = false }) }

// EnableDepthMask enables depth writes.
func (c *Context) EnableDepthMask() { c.setState(func(s *RenderState) { s.DepthMask = true }) }

// DisableDepthMask disables depth writes.
func (c *Context) DisableDepthMask() { c.setState(func(s *RenderState) { s.DepthMask = false }) }

// EnableBackfaceCulling culls clockwise triangles.
func (c *Context) EnableBackfaceCulling() { c.setState(func(s *RenderState) { s.Cull = true }) }

// DisableBackfaceCulling draws triangles of both windings.
func (c *Context) DisableBackfaceCulling() { c.setState(func(s *RenderState) { s.Cull = false }) }

// EnableScissorTest clips drawing to the scissor rectangle.
func (c *Context) EnableScissorTest() { c.setState(func(s *RenderState) { s.Scissor = true }) }

// DisableScissorTest stops clipping to the scissor rectangle.
func (c *Context) DisableScissorTest() { c.setState(func(s *RenderState) { s.Scissor = false }) }

// Scissor sets the scissor rectangle.
func (c *Context) Scissor(x, y, width, height int) {
	c.setState(func(s *RenderState) { s.ScissorRect = Rect{X: x, Y: y, Width: width, Height: height} })
}

// EnableWireMode draws triangle edges only.
func (c *Context) EnableWireMode() { c.setState(func(s *RenderState) { s.Wire = true }) }

// DisableWireMode draws filled triangles.
func (c *Context) DisableWireMode() { c.setState(func(s *RenderState) { s.Wire = false }) }

// State returns the render state the next draw is submitted with.
func (c *Context) State() RenderState { return c.state }

// ClearColor sets the color ClearScreenBuffers fills with.
func (c *Context) ClearColor(r, g, b, a uint8) {
	c.clearColor = color.RGBA{R: r, G: g, B: b, A: a}
}

// ClearScreenBuffers clears the color and depth buffers of the current
// screen. Pending draws are submitted first.
func (c *Context) ClearScreenBuffers() {
	c.DrawRenderBatchActive()
	if err := c.backend.Clear(c.screen, c.clearColor); err != nil {
		c.stats.BackendErrors++
		c.log.Error("rlgl: backend clear failed", "screen", c.screen, "error", err)
	}
}

// SetCurrentScreen selects the output target. Pending draws go to the
// previous target first. The bottom screen uses the secondary projection
// and gets its full size as viewport.
func (c *Context) SetCurrentScreen(s Screen) {
	if s != ScreenTop && s != ScreenBottom {
		c.log.Warn("rlgl: unknown screen", "screen", s)
		return
	}
	if s == c.screen {
		return
	}
	c.DrawRenderBatchActive()
	c.screen = s
	c.state.Viewport = c.screenRect(s)
}

// CurrentScreen returns the selected output target.
func (c *Context) CurrentScreen() Screen { return c.screen }

// EnableStereoRender draws every batch once per eye into the two halves
// of the viewport.
func (c *Context) EnableStereoRender() {
	if c.stereo {
		return
	}
	c.DrawRenderBatchActive()
	c.stereo = true
}

// DisableStereoRender returns to single view rendering.
func (c *Context) DisableStereoRender() {
	if !c.stereo {
		return
	}
	c.DrawRenderBatchActive()
	c.stereo = false
}

// IsStereoRenderEnabled reports whether stereo rendering is on.
func (c *Context) IsStereoRenderEnabled() bool { return c.stereo }

// SetMatrixProjectionStereo sets the per-eye projections.
func (c *Context) SetMatrixProjectionStereo(left, right Matrix) {
	c.stereoProjection = [2]Matrix{left, right}
}

// SetMatrixViewOffsetStereo sets the per-eye view offsets applied on top
// of the modelview.
func (c *Context) SetMatrixViewOffsetStereo(left, right Matrix) {
	c.stereoViewOffset = [2]Matrix{left, right}
}

// BeginFrame starts a frame.
func (c *Context) BeginFrame() {
	c.batch.depth = 0
}

// EndFrame draws the active batch and presents every screen.
func (c *Context) EndFrame() error {
	if c.closed {
		return ErrClosed
	}
	c.DrawRenderBatchActive()
	c.stats.Frames++
	if err := c.backend.Present(); err != nil {
		c.stats.BackendErrors++
		c.log.Error("rlgl: backend present failed", "error", err)
		return err
	}
	return nil
}
