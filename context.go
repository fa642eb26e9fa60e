// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import (
	"fmt"
	"image/color"
	"log/slog"
)

// Context is an immediate-mode render state machine bound to one
// backend. It owns the matrix stack, the attribute assembler, the texture
// table and the default render batch.
//
// A Context is not safe for concurrent use. Independent contexts share
// nothing and may be used from different goroutines.
type Context struct {
	backend Backend
	caps    Caps
	log     *slog.Logger

	width, height int

	matrices matrixStack
	asm      assembler
	textures *textureManager

	defaultBatch *RenderBatch
	batch        *RenderBatch

	// Snapshot taken at Begin for the draw call record.
	beginProjection Matrix
	beginModelview  Matrix

	// primVertices counts vertices emitted since Begin.
	primVertices int

	texture        uint32
	defaultTexture uint32

	state      RenderState
	screen     Screen
	clearColor color.RGBA

	stereo           bool
	stereoProjection [2]Matrix
	stereoViewOffset [2]Matrix

	stats  Stats
	closed bool
}

// New initializes a Context for a framebuffer of width x height pixels.
// The backend given with WithBackend is initialized and owned by the
// Context from then on.
func New(width, height int, opts ...ContextOption) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		return nil, ErrNoBackend
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}
	propagateLogger(o.backend, log)

	if err := o.backend.Init(width, height); err != nil {
		return nil, fmt.Errorf("rlgl: init backend %s: %w", o.backend.Name(), err)
	}

	c := &Context{
		backend:    o.backend,
		caps:       o.backend.Caps(),
		log:        log,
		width:      width,
		height:     height,
		screen:     o.screen,
		clearColor: color.RGBA{A: 255},
	}
	c.matrices.reset()
	c.asm = newAssembler(c, o.shaderAttributes)
	c.textures = newTextureManager(c.backend, c.caps, log)
	c.defaultBatch = NewRenderBatch(o.batchBuffers, o.batchElements, o.maxDraws)
	c.batch = c.defaultBatch
	c.stereoProjection = [2]Matrix{Identity(), Identity()}
	c.stereoViewOffset = [2]Matrix{Identity(), Identity()}

	c.state = RenderState{
		Blend:     BlendAlpha,
		DepthMask: true,
		Viewport:  c.screenRect(c.screen),
	}

	if o.defaultTexture {
		id, err := c.textures.create(defaultTexturePixels(), 8, 8, PixelFormatGrayscale, 1)
		if err != nil {
			c.log.Warn("rlgl: failed to load default texture", "error", err)
		} else {
			c.defaultTexture = id
			c.log.Info("rlgl: default texture loaded", "id", id)
		}
	}

	c.log.Info("rlgl: default state initialized",
		"backend", c.backend.Name(), "version", c.caps.Version,
		"width", width, "height", height,
		"batch_buffers", o.batchBuffers, "batch_elements", o.batchElements)
	return c, nil
}

// defaultTexturePixels returns an 8x8 grayscale white image.
func defaultTexturePixels() []byte {
	p := make([]byte, 64)
	for i := range p {
		p[i] = 0xFF
	}
	return p
}

// Close draws any pending batch, frees every texture and closes the
// backend. Close is idempotent.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.DrawRenderBatchActive()
	c.textures.destroyAll()
	c.backend.Close()
	c.closed = true
	c.log.Info("rlgl: context closed", "stats", c.stats)
}

// SetLogger replaces the logger of the Context and its backend.
// Pass nil to silence the Context.
func (c *Context) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	c.log = l
	c.textures.log = l
	propagateLogger(c.backend, l)
}

// Backend returns the backend the Context submits to.
func (c *Context) Backend() Backend { return c.backend }

// Caps returns the capabilities reported by the backend at init.
func (c *Context) Caps() Caps { return c.caps }

// Version returns the API version string of the backend.
func (c *Context) Version() string { return c.caps.Version }

// FramebufferSize returns the size given to New.
func (c *Context) FramebufferSize() (width, height int) { return c.width, c.height }

// DefaultTextureID returns the id of the 8x8 white texture, or 0 when it
// was not created.
func (c *Context) DefaultTextureID() uint32 { return c.defaultTexture }

// Stats returns counters accumulated since New.
func (c *Context) Stats() Stats { return c.stats }

// screenRect returns the full viewport of screen s.
func (c *Context) screenRect(s Screen) Rect {
	if sz := c.caps.ScreenSize(s); sz.X > 0 && sz.Y > 0 {
		return Rect{Width: sz.X, Height: sz.Y}
	}
	return Rect{Width: c.width, Height: c.height}
}

// Stats holds rendering counters.
type Stats struct {
	Frames          int
	BatchDraws      int
	DrawCalls       int
	Vertices        int
	DroppedVertices int
	BackendErrors   int
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frames", s.Frames),
		slog.Int("batch_draws", s.BatchDraws),
		slog.Int("draw_calls", s.DrawCalls),
		slog.Int("vertices", s.Vertices),
		slog.Int("dropped_vertices", s.DroppedVertices),
		slog.Int("backend_errors", s.BackendErrors),
	)
}

// String returns a one line summary.
func (s Stats) String() string {
	return fmt.Sprintf("%d frames, %d batch draws, %d draw calls, %d vertices (%d dropped)",
		s.Frames, s.BatchDraws, s.DrawCalls, s.Vertices, s.DroppedVertices)
}
