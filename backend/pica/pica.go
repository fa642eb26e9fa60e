// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pica

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/backend"
	"github.com/gogpu/rlgl/internal/parallel"
)

// Screen sizes of the two output targets.
var (
	TopScreenSize    = image.Pt(400, 240)
	BottomScreenSize = image.Pt(320, 240)
)

// Texture size limits of the texture unit.
const (
	MinTextureSize = 8
	MaxTextureSize = 1024
)

// Errors returned by the PICA200 backend.
var (
	ErrNotInitialized       = errors.New("pica: backend not initialized")
	ErrUnsupportedFormat    = errors.New("pica: texture format not supported")
	ErrPartialUpdate        = errors.New("pica: tiled textures are updated whole")
	ErrCompressedMipmaps    = errors.New("pica: cannot generate mipmaps of a compressed texture")
	ErrUnsupportedParameter = errors.New("pica: texture parameter not supported")
	ErrForeignTexture       = errors.New("pica: texture was not created by this backend")
)

func init() {
	backend.Register(backend.BackendPica, func() rlgl.Backend { return New() })
}

// Option configures a Backend.
type Option func(*Backend)

// WithScreens overrides the sizes of the top and bottom screens.
func WithScreens(top, bottom image.Point) Option {
	return func(b *Backend) {
		if top.X > 0 && top.Y > 0 {
			b.sizes[rlgl.ScreenTop] = top
		}
		if bottom.X > 0 && bottom.Y > 0 {
			b.sizes[rlgl.ScreenBottom] = bottom
		}
	}
}

// WithWorkers rasterizes each draw on n goroutines, splitting the clip
// rectangle into horizontal bands. Zero uses GOMAXPROCS; the default of 1
// rasterizes on the calling goroutine.
func WithWorkers(n int) Option {
	return func(b *Backend) { b.workers = n }
}

// target is one render target with its display buffer.
type target struct {
	color   *image.RGBA
	depth   []float32
	display *image.RGBA
	clear   uint32 // last clear value in PICA register order
}

// Backend is a software model of the PICA200 GPU. It renders into one
// color and depth buffer per screen and copies them to display buffers on
// Present. Textures are stored in the tiled 8x8 layout the hardware
// samples from.
//
// Backend is safe for concurrent use; rlgl drives it from one goroutine.
type Backend struct {
	mu sync.Mutex

	sizes   [2]image.Point
	targets [2]*target
	frames  int

	// Uniform registers of the last draw, in PICA layout.
	projection Uniform
	modelview  Uniform

	workers int
	pool    *parallel.WorkerPool

	textures int // live texture count
	log      *slog.Logger
	ready    bool
}

// New returns an uninitialized backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		sizes:   [2]image.Point{TopScreenSize, BottomScreenSize},
		workers: 1,
		log:     rlgl.Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendPica }

// SetLogger sets the logger used by the backend.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = l
}

// Init allocates the render targets. The framebuffer size given by rlgl
// is ignored: the screens have fixed sizes.
func (b *Backend) Init(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sz := range b.sizes {
		r := image.Rectangle{Max: sz}
		b.targets[i] = &target{
			color:   image.NewRGBA(r),
			depth:   make([]float32, sz.X*sz.Y),
			display: image.NewRGBA(r),
		}
		b.targets[i].clearTo(color.RGBA{A: 255})
	}
	if width != b.sizes[0].X || height != b.sizes[0].Y {
		b.log.Debug("pica: framebuffer size differs from top screen",
			"width", width, "height", height, "top", b.sizes[0])
	}
	if b.workers != 1 && b.pool == nil {
		b.pool = parallel.NewWorkerPool(b.workers)
	}
	b.ready = true
	b.log.Info("pica: initialized", "top", b.sizes[0], "bottom", b.sizes[1], "workers", b.rasterWorkers())
	return nil
}

// Caps reports the texture unit limits and the screen sizes.
func (b *Backend) Caps() rlgl.Caps {
	return rlgl.Caps{
		Version:        "PICA200",
		Layout:         rlgl.LayoutTiled8x8,
		PowerOfTwo:     true,
		MinTextureSize: MinTextureSize,
		MaxTextureSize: MaxTextureSize,
		Formats:        SupportedFormats(),
		Screens:        []image.Point{b.sizes[0], b.sizes[1]},
	}
}

func (b *Backend) target(s rlgl.Screen) (*target, error) {
	if !b.ready {
		return nil, ErrNotInitialized
	}
	if s != rlgl.ScreenTop && s != rlgl.ScreenBottom {
		return nil, fmt.Errorf("pica: unknown screen %v", s)
	}
	return b.targets[s], nil
}

// Clear fills the color buffer of screen s and resets its depth buffer.
func (b *Backend) Clear(s rlgl.Screen, c color.RGBA) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, err := b.target(s)
	if err != nil {
		return err
	}
	t.clear = PackClearColor(c)
	t.clearTo(UnpackClearColor(t.clear))
	return nil
}

func (t *target) clearTo(c color.RGBA) {
	pix := t.color.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	clear(t.depth)
}

// PackClearColor returns c in the byte order of the clear value register,
// 0xRRGGBBAA.
func PackClearColor(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// UnpackClearColor is the inverse of PackClearColor.
func UnpackClearColor(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// ClearValue returns the last clear register value of screen s.
func (b *Backend) ClearValue(s rlgl.Screen) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t, err := b.target(s); err == nil {
		return t.clear
	}
	return 0
}

// Present transfers both color buffers to their display buffers.
func (b *Backend) Present() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return ErrNotInitialized
	}
	for _, t := range b.targets {
		draw.Draw(t.display, t.display.Bounds(), t.color, image.Point{}, draw.Src)
	}
	b.frames++
	return nil
}

// Frames returns the number of Present calls.
func (b *Backend) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// Image returns a copy of the display buffer of screen s, as it was at
// the last Present.
func (b *Backend) Image(s rlgl.Screen) *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, err := b.target(s)
	if err != nil {
		return nil
	}
	out := image.NewRGBA(t.display.Bounds())
	copy(out.Pix, t.display.Pix)
	return out
}

// Screenshot returns the display buffer of screen s scaled to size with
// nearest neighbor filtering, for pixel exact enlargements.
func (b *Backend) Screenshot(s rlgl.Screen, size image.Point) *image.RGBA {
	src := b.Image(s)
	if src == nil {
		return nil
	}
	if size.X <= 0 || size.Y <= 0 || size == src.Bounds().Size() {
		return src
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Uniforms returns the projection and modelview registers of the last
// draw.
func (b *Backend) Uniforms() (projection, modelview Uniform) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.projection, b.modelview
}

// TextureCount returns the number of live textures.
func (b *Backend) TextureCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.textures
}

// Close releases the render targets.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.targets = [2]*target{}
	if b.pool != nil {
		b.pool.Close()
		b.pool = nil
	}
	b.ready = false
	b.log.Debug("pica: closed", "frames", b.frames)
}

func (b *Backend) rasterWorkers() int {
	if b.pool == nil {
		return 1
	}
	return b.pool.Workers()
}
