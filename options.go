// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import "log/slog"

// Default render batch limits.
const (
	DefaultBatchBuffers  = 1    // vertex buffers per batch
	DefaultBatchElements = 2048 // quads per vertex buffer
	DefaultBatchDraws    = 256  // draw call records per batch
)

// ContextOption configures a Context during creation.
// Use functional options to customize Context behavior.
//
// Example:
//
//	b, _ := backend.Get("pica")
//	ctx, err := rlgl.New(400, 240,
//	    rlgl.WithBackend(b),
//	    rlgl.WithBatchSize(2, 1024),
//	)
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	backend          Backend
	logger           *slog.Logger
	batchBuffers     int
	batchElements    int
	maxDraws         int
	shaderAttributes int
	screen           Screen
	defaultTexture   bool
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		batchBuffers:     DefaultBatchBuffers,
		batchElements:    DefaultBatchElements,
		maxDraws:         DefaultBatchDraws,
		shaderAttributes: DefaultShaderAttributes,
		screen:           ScreenTop,
		defaultTexture:   true,
	}
}

// WithBackend sets the GPU backend the Context submits to. New fails
// with ErrNoBackend without one.
func WithBackend(b Backend) ContextOption {
	return func(o *contextOptions) {
		o.backend = b
	}
}

// WithLogger sets the logger of the Context. Without it the Context uses
// the package logger at creation time (see SetLogger).
func WithLogger(l *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		o.logger = l
	}
}

// WithBatchSize sets the number of vertex buffers of the default batch
// and the number of quads each buffer holds. Values below 1 are ignored.
func WithBatchSize(buffers, elements int) ContextOption {
	return func(o *contextOptions) {
		if buffers > 0 {
			o.batchBuffers = buffers
		}
		if elements > 0 {
			o.batchElements = elements
		}
	}
}

// WithMaxDrawCalls sets the number of draw call records a batch holds
// before it is drawn. Values below 1 are ignored.
func WithMaxDrawCalls(n int) ContextOption {
	return func(o *contextOptions) {
		if n > 0 {
			o.maxDraws = n
		}
	}
}

// WithShaderAttributes sets how many attribute slots the active shader
// consumes, starting at AttribPosition. Only resubmitting a consumed slot
// starts a new vertex. The value is clamped to 1..4.
func WithShaderAttributes(n int) ContextOption {
	return func(o *contextOptions) {
		o.shaderAttributes = min(max(n, 1), int(numAttributes))
	}
}

// WithScreen selects the output target that is current after New.
func WithScreen(s Screen) ContextOption {
	return func(o *contextOptions) {
		o.screen = s
	}
}

// WithoutDefaultTexture skips creating the 8x8 white default texture,
// so the first CreateTexture returns id 1.
func WithoutDefaultTexture() ContextOption {
	return func(o *contextOptions) {
		o.defaultTexture = false
	}
}
