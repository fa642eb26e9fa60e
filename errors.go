// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import "errors"

// Capacity errors.
var (
	// ErrMatrixStackOverflow is returned by PushMatrix when the stack
	// already holds MaxMatrixStackSize matrices. The push is rejected.
	ErrMatrixStackOverflow = errors.New("rlgl: matrix stack overflow")

	// ErrBatchOverflow is returned when a render batch cannot hold the
	// requested number of vertices even after being drawn.
	ErrBatchOverflow = errors.New("rlgl: render batch overflow")
)

// Resource errors.
var (
	// ErrUnsupportedFormat is returned when the backend has no native
	// texel encoding for a pixel format.
	ErrUnsupportedFormat = errors.New("rlgl: unsupported pixel format")

	// ErrInvalidTextureSize is returned for texture dimensions the
	// backend cannot allocate.
	ErrInvalidTextureSize = errors.New("rlgl: invalid texture size")

	// ErrInvalidPixelData is returned when a pixel buffer is shorter than
	// its declared dimensions and format require.
	ErrInvalidPixelData = errors.New("rlgl: invalid pixel data")

	// ErrUnknownTexture is returned for texture ids that are not live.
	ErrUnknownTexture = errors.New("rlgl: unknown texture id")
)

// Lifecycle errors.
var (
	// ErrNoBackend is returned by New when no backend was given and none
	// is registered.
	ErrNoBackend = errors.New("rlgl: no backend available")

	// ErrInvalidSize is returned by New for non-positive framebuffer sizes.
	ErrInvalidSize = errors.New("rlgl: invalid framebuffer size")

	// ErrClosed is returned by operations on a closed Context.
	ErrClosed = errors.New("rlgl: context closed")
)
