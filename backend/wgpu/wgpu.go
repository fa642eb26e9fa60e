// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/backend"

	// Vulkan HAL for devices opened by the backend itself.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Errors returned by the wgpu backend.
var (
	ErrNotInitialized       = errors.New("wgpu: backend not initialized")
	ErrNoAdapter            = errors.New("wgpu: no GPU adapter found")
	ErrNilProvider          = errors.New("wgpu: nil device provider")
	ErrNoHAL                = errors.New("wgpu: provider does not expose HAL types")
	ErrUnsupportedFormat    = errors.New("wgpu: texture format not supported")
	ErrUnsupportedParameter = errors.New("wgpu: texture parameter not supported")
	ErrForeignTexture       = errors.New("wgpu: texture was not created by this backend")
	ErrUnsupportedScreen    = errors.New("wgpu: only the top screen is rendered")
)

// gpuWaitTimeout bounds every wait for submitted work.
const gpuWaitTimeout = 5 * time.Second

func init() {
	backend.Register(backend.BackendWGPU, func() rlgl.Backend { return New() })
}

// Option configures a Backend.
type Option func(*Backend)

// WithFormat sets the color target format. Only RGBA8Unorm and
// BGRA8Unorm are supported.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(b *Backend) {
		if f == gputypes.TextureFormatRGBA8Unorm || f == gputypes.TextureFormatBGRA8Unorm {
			b.format = f
		}
	}
}

// WithDevice renders with an existing device and queue. The backend does
// not destroy them on Close.
func WithDevice(device hal.Device, queue hal.Queue) Option {
	return func(b *Backend) {
		b.device, b.queue = device, queue
		b.external = device != nil
	}
}

// WithSPIRV compiles the shader to SPIR-V with naga instead of handing
// WGSL to the HAL.
func WithSPIRV() Option {
	return func(b *Backend) { b.spirv = true }
}

// halProvider exposes the HAL objects behind a gpucontext.DeviceProvider.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Backend renders rlgl batches with a WebGPU HAL device.
//
// Backend is safe for concurrent use; rlgl drives it from one goroutine.
type Backend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	external bool
	spirv    bool

	format        gputypes.TextureFormat
	width, height int
	limits        gputypes.Limits

	target    renderTarget
	pipelines *pipelineCache
	white     *texture
	frame     *frameEncoder
	image     *image.RGBA

	frames   int
	textures int
	log      *slog.Logger
	ready    bool
}

// New returns an uninitialized backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		format: gputypes.TextureFormatRGBA8Unorm,
		limits: gputypes.DefaultLimits(),
		log:    rlgl.Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromProvider returns a backend sharing the device of p, as provided
// by a gogpu window. The color target uses the surface format of p when
// it is supported.
func NewFromProvider(p gpucontext.DeviceProvider, opts ...Option) (*Backend, error) {
	if p == nil {
		return nil, ErrNilProvider
	}
	hp, ok := p.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	all := append([]Option{WithFormat(p.SurfaceFormat()), WithDevice(device, queue)}, opts...)
	return New(all...), nil
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendWGPU }

// SetLogger sets the logger used by the backend.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = l
}

// Init opens a device when none was given, then creates the render
// target and the shared GPU objects.
func (b *Backend) Init(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device == nil {
		if err := b.openDevice(); err != nil {
			return err
		}
	}
	b.width, b.height = width, height

	if err := b.target.ensure(b.device, uint32(width), uint32(height), b.format); err != nil { //nolint:gosec // sizes validated by rlgl
		b.release()
		return fmt.Errorf("wgpu: %w", err)
	}
	pc, err := newPipelineCache(b.device, b.format, b.spirv)
	if err != nil {
		b.release()
		return fmt.Errorf("wgpu: %w", err)
	}
	b.pipelines = pc

	white, err := b.newTexture(rlgl.TextureDesc{Width: 1, Height: 1, Format: rlgl.PixelFormatR8G8B8A8, Mipmaps: 1},
		[]byte{0xFF, 0xFF, 0xFF, 0xFF})
	if err != nil {
		b.release()
		return fmt.Errorf("wgpu: white texture: %w", err)
	}
	b.white = white

	b.ready = true
	b.log.Info("wgpu: initialized", "width", width, "height", height, "format", b.format, "spirv", b.spirv)
	return nil
}

// openDevice opens the first discrete or integrated Vulkan adapter.
func (b *Backend) openDevice() error {
	hb, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("%w: vulkan backend not available", ErrNoAdapter)
	}
	instance, err := hb.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil && len(adapters) > 0 {
		selected = &adapters[0]
	}
	if selected == nil {
		instance.Destroy()
		return ErrNoAdapter
	}
	open, err := selected.Adapter.Open(gputypes.Features(0), b.limits)
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("wgpu: open device: %w", err)
	}
	b.instance = instance
	b.device, b.queue = open.Device, open.Queue
	b.log.Info("wgpu: device opened", "adapter", selected.Info.Name, "type", selected.Info.DeviceType)
	return nil
}

// Caps reports a linear texture layout without size restrictions beyond
// the device limits.
func (b *Backend) Caps() rlgl.Caps {
	return rlgl.Caps{
		Version:        "WebGPU",
		Layout:         rlgl.LayoutLinear,
		MinTextureSize: 1,
		MaxTextureSize: int(b.limits.MaxTextureDimension2D),
		Formats:        SupportedFormats(),
		Screens:        []image.Point{{X: b.width, Y: b.height}},
	}
}

// SupportedFormats returns the rlgl formats the backend converts to RGBA8.
func SupportedFormats() []rlgl.PixelFormat {
	return []rlgl.PixelFormat{
		rlgl.PixelFormatGrayscale, rlgl.PixelFormatGrayAlpha, rlgl.PixelFormatR5G6B5,
		rlgl.PixelFormatR8G8B8, rlgl.PixelFormatR5G5B5A1, rlgl.PixelFormatR4G4B4A4,
		rlgl.PixelFormatR8G8B8A8,
	}
}

// Frames returns the number of Present calls.
func (b *Backend) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// TextureCount returns the number of live textures, not counting the
// internal white texture.
func (b *Backend) TextureCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.textures
}

// Image returns a copy of the color target as read back by the last
// Present, or nil before the first one.
func (b *Backend) Image() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.image == nil {
		return nil
	}
	out := image.NewRGBA(b.image.Rect)
	copy(out.Pix, b.image.Pix)
	return out
}

// Close waits for pending work and releases every GPU object.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready {
		if err := b.submit(); err != nil {
			b.log.Warn("wgpu: final submit failed", "error", err)
		}
	}
	b.release()
	b.log.Debug("wgpu: closed", "frames", b.frames)
}

func (b *Backend) release() {
	b.ready = false
	if b.device == nil {
		return
	}
	if b.white != nil {
		b.white.destroy(b.device)
		b.white = nil
	}
	if b.pipelines != nil {
		b.pipelines.destroy()
		b.pipelines = nil
	}
	b.target.destroy(b.device)
	if !b.external {
		b.device.Destroy()
		b.device, b.queue = nil, nil
		if b.instance != nil {
			b.instance.Destroy()
			b.instance = nil
		}
	}
}
