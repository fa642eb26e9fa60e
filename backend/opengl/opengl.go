// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cgo && !nogpu

package opengl

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/backend"
)

// Errors returned by the OpenGL backend.
var (
	ErrNotInitialized       = errors.New("opengl: backend not initialized")
	ErrUnsupportedFormat    = errors.New("opengl: texture format not supported")
	ErrUnsupportedParameter = errors.New("opengl: texture parameter not supported")
	ErrUnsupportedScreen    = errors.New("opengl: only the top screen is rendered")
	ErrForeignTexture       = errors.New("opengl: texture was not created by this backend")
)

func init() {
	backend.Register(backend.BackendOpenGL, func() rlgl.Backend { return New() })
}

// Option configures a Backend.
type Option func(*Backend)

// WithPresent sets the function Present calls after flushing, usually
// the SwapBuffers of the window owning the context.
func WithPresent(fn func()) Option {
	return func(b *Backend) { b.present = fn }
}

// Backend draws through the fixed function pipeline of the GL context
// current on the calling thread.
type Backend struct {
	mu sync.Mutex

	width, height int
	version       string
	maxTexture    int
	present       func()

	frames   int
	textures int
	log      *slog.Logger
	ready    bool
}

// New returns an uninitialized backend.
func New(opts ...Option) *Backend {
	b := &Backend{log: rlgl.Logger()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendOpenGL }

// SetLogger sets the logger used by the backend.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = l
}

// Init loads the GL entry points and sets the default state.
func (b *Backend) Init(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl: failed to initialize OpenGL: %w", err)
	}
	b.version = gl.GoStr(gl.GetString(gl.VERSION))
	vendor, renderer := gl.GoStr(gl.GetString(gl.VENDOR)), gl.GoStr(gl.GetString(gl.RENDERER))

	var maxTex int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)
	b.maxTexture = int(maxTex)
	b.width, b.height = width, height

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.DepthFunc(gl.LEQUAL)
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)
	gl.ShadeModel(gl.SMOOTH)
	gl.ClearDepth(1)
	gl.Viewport(0, 0, int32(width), int32(height)) //nolint:gosec // sizes validated by rlgl
	if err := glError("init"); err != nil {
		return err
	}

	b.ready = true
	b.log.Info("opengl: initialized", "vendor", vendor, "renderer", renderer,
		"version", b.version, "max_texture_size", b.maxTexture)
	return nil
}

// Caps reports a linear texture layout bounded by GL_MAX_TEXTURE_SIZE.
func (b *Backend) Caps() rlgl.Caps {
	return rlgl.Caps{
		Version:        "OpenGL " + b.version,
		Layout:         rlgl.LayoutLinear,
		MinTextureSize: 1,
		MaxTextureSize: b.maxTexture,
		Formats:        SupportedFormats(),
		Screens:        []image.Point{{X: b.width, Y: b.height}},
	}
}

// SupportedFormats returns the formats GL 2.1 can upload without
// extensions.
func SupportedFormats() []rlgl.PixelFormat {
	return []rlgl.PixelFormat{
		rlgl.PixelFormatGrayscale, rlgl.PixelFormatGrayAlpha, rlgl.PixelFormatR5G6B5,
		rlgl.PixelFormatR8G8B8, rlgl.PixelFormatR5G5B5A1, rlgl.PixelFormatR4G4B4A4,
		rlgl.PixelFormatR8G8B8A8,
	}
}

// Present flushes the GL command stream and calls the present function.
func (b *Backend) Present() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return ErrNotInitialized
	}
	gl.Flush()
	if b.present != nil {
		b.present()
	}
	b.frames++
	return glError("present")
}

// Frames returns the number of Present calls.
func (b *Backend) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// TextureCount returns the number of live textures.
func (b *Backend) TextureCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.textures
}

// ReadPixels returns the back buffer with the origin at the top-left.
func (b *Backend) ReadPixels() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	gl.ReadPixels(0, 0, int32(b.width), int32(b.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix)) //nolint:gosec // sizes validated by rlgl
	flipRows(img.Pix, img.Stride)
	return img
}

// flipRows reverses the row order of pix in place.
func flipRows(pix []byte, stride int) {
	row := make([]byte, stride)
	for top, bottom := 0, len(pix)-stride; top < bottom; top, bottom = top+stride, bottom-stride {
		copy(row, pix[top:top+stride])
		copy(pix[top:top+stride], pix[bottom:bottom+stride])
		copy(pix[bottom:bottom+stride], row)
	}
}

// Close marks the backend closed. Textures are freed by rlgl before.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ready = false
	b.log.Debug("opengl: closed", "frames", b.frames)
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl: %s: GL error %#x", op, code)
	}
	return nil
}
