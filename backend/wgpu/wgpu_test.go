// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/backend"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// newBackend returns a backend initialized on a noop device.
func newBackend(t *testing.T, w, h int) *Backend {
	t.Helper()
	device, queue := createNoopDevice(t)
	b := New(WithDevice(device, queue))
	if err := b.Init(w, h); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

type fakeProvider struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
}

func (p *fakeProvider) Device() gpucontext.Device             { return nil }
func (p *fakeProvider) Queue() gpucontext.Queue               { return nil }
func (p *fakeProvider) Adapter() gpucontext.Adapter           { return nil }
func (p *fakeProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p *fakeProvider) HalDevice() any                        { return p.device }
func (p *fakeProvider) HalQueue() any                         { return p.queue }

// plainProvider has no HAL accessors.
type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device             { return nil }
func (plainProvider) Queue() gpucontext.Queue               { return nil }
func (plainProvider) Adapter() gpucontext.Adapter           { return nil }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendWGPU) {
		t.Fatalf("IsRegistered(%q) = false, want true", backend.BackendWGPU)
	}
	if got := New().Name(); got != backend.BackendWGPU {
		t.Errorf("Name() = %q, want %q", got, backend.BackendWGPU)
	}
}

func TestInitWithDevice(t *testing.T) {
	b := newBackend(t, 64, 32)

	caps := b.Caps()
	if caps.Version != "WebGPU" {
		t.Errorf("Caps().Version = %q, want %q", caps.Version, "WebGPU")
	}
	if caps.Layout != rlgl.LayoutLinear {
		t.Errorf("Caps().Layout = %v, want linear", caps.Layout)
	}
	if len(caps.Screens) != 1 || caps.Screens[0] != image.Pt(64, 32) {
		t.Errorf("Caps().Screens = %v, want [(64,32)]", caps.Screens)
	}
	if caps.Supports(rlgl.PixelFormatDXT1RGB) {
		t.Error("Caps().Supports(DXT1) = true, want false")
	}
	if b.target.width != 64 || b.target.height != 32 {
		t.Errorf("target = %dx%d, want 64x32", b.target.width, b.target.height)
	}
	if b.white == nil {
		t.Error("white texture not created")
	}
}

func TestNotInitialized(t *testing.T) {
	b := New()
	if err := b.Clear(rlgl.ScreenTop, color.RGBA{}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Clear() error = %v, want ErrNotInitialized", err)
	}
	if err := b.Present(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Present() error = %v, want ErrNotInitialized", err)
	}
	if _, err := b.CreateTexture(rlgl.TextureDesc{Width: 1, Height: 1, Format: rlgl.PixelFormatR8G8B8A8}, make([]byte, 4)); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("CreateTexture() error = %v, want ErrNotInitialized", err)
	}
}

func TestContextFrame(t *testing.T) {
	device, queue := createNoopDevice(t)
	b := New(WithDevice(device, queue))
	ctx, err := rlgl.New(64, 32, rlgl.WithBackend(b))
	if err != nil {
		t.Fatalf("rlgl.New() error = %v", err)
	}
	t.Cleanup(ctx.Close)

	ctx.MatrixMode(rlgl.Projection)
	ctx.LoadIdentity()
	ctx.Ortho(0, 64, 32, 0, 0, 1)
	ctx.MatrixMode(rlgl.Modelview)
	ctx.LoadIdentity()

	ctx.ClearColor(10, 20, 30, 255)
	ctx.ClearScreenBuffers()
	ctx.Begin(rlgl.Quads)
	ctx.Color4ub(255, 0, 0, 255)
	ctx.Vertex2f(4, 4)
	ctx.Vertex2f(4, 20)
	ctx.Vertex2f(20, 20)
	ctx.Vertex2f(20, 4)
	ctx.End()
	ctx.EnableWireMode()
	ctx.Begin(rlgl.Triangles)
	ctx.Vertex2f(30, 4)
	ctx.Vertex2f(30, 20)
	ctx.Vertex2f(50, 20)
	ctx.End()

	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() error = %v", err)
	}
	if got := b.Frames(); got != 1 {
		t.Errorf("Frames() = %d, want 1", got)
	}
	if got := ctx.Stats().DrawCalls; got < 2 {
		t.Errorf("Stats().DrawCalls = %d, want >= 2", got)
	}
	if got := ctx.Stats().BackendErrors; got != 0 {
		t.Errorf("Stats().BackendErrors = %d, want 0", got)
	}
	img := b.Image()
	if img == nil || img.Bounds() != image.Rect(0, 0, 64, 32) {
		t.Fatalf("Image() = %v, want a 64x32 image", img)
	}
	if b.frame != nil {
		t.Error("frame encoder still open after Present")
	}
	// solid, wire
	if len(b.pipelines.pipelines) != 2 {
		t.Errorf("pipelines = %d, want 2", len(b.pipelines.pipelines))
	}
}

func TestDrawBottomScreen(t *testing.T) {
	b := newBackend(t, 16, 16)
	cmd := &rlgl.DrawCommand{Mode: rlgl.Triangles, Vertices: make([]rlgl.Vertex, 3), Screen: rlgl.ScreenBottom}
	if err := b.Draw(cmd); !errors.Is(err, ErrUnsupportedScreen) {
		t.Errorf("Draw(bottom) error = %v, want ErrUnsupportedScreen", err)
	}
	if err := b.Clear(rlgl.ScreenBottom, color.RGBA{}); !errors.Is(err, ErrUnsupportedScreen) {
		t.Errorf("Clear(bottom) error = %v, want ErrUnsupportedScreen", err)
	}
}

func TestDrawSkipsEmpty(t *testing.T) {
	b := newBackend(t, 16, 16)
	tests := []struct {
		name string
		cmd  rlgl.DrawCommand
	}{
		{"no vertices", rlgl.DrawCommand{Mode: rlgl.Triangles, State: rlgl.RenderState{Viewport: rlgl.Rect{Width: 16, Height: 16}}}},
		{"partial triangle", rlgl.DrawCommand{Mode: rlgl.Triangles, Vertices: make([]rlgl.Vertex, 2), State: rlgl.RenderState{Viewport: rlgl.Rect{Width: 16, Height: 16}}}},
		{"empty scissor", rlgl.DrawCommand{Mode: rlgl.Lines, Vertices: make([]rlgl.Vertex, 2), State: rlgl.RenderState{
			Viewport: rlgl.Rect{Width: 16, Height: 16}, Scissor: true, ScissorRect: rlgl.Rect{X: 20, Y: 20, Width: 4, Height: 4},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.Draw(&tt.cmd); err != nil {
				t.Fatalf("Draw() error = %v", err)
			}
			if b.frame != nil {
				t.Error("Draw() recorded a pass")
			}
		})
	}
	if err := b.Draw(&rlgl.DrawCommand{Mode: rlgl.Quads, Vertices: make([]rlgl.Vertex, 4)}); err == nil {
		t.Error("Draw(Quads) error = nil, want error")
	}
}

func TestTextureLifecycle(t *testing.T) {
	b := newBackend(t, 16, 16)
	red565 := []byte{0x00, 0xF8}
	data := make([]byte, 4*4*2)
	for i := 0; i < len(data); i += 2 {
		copy(data[i:], red565)
	}
	tex, err := b.CreateTexture(rlgl.TextureDesc{Width: 4, Height: 4, Format: rlgl.PixelFormatR5G6B5, Mipmaps: 1}, data)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if got := b.TextureCount(); got != 1 {
		t.Errorf("TextureCount() = %d, want 1", got)
	}
	wt := tex.(*texture)
	if got := wt.levels[0].NRGBAAt(0, 0); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("texel (0, 0) = %v, want red", got)
	}

	// Blue 2x1 patch at (1, 2).
	if err := b.UpdateTexture(tex, image.Rect(1, 2, 3, 3), []byte{0x1F, 0x00, 0x1F, 0x00}); err != nil {
		t.Fatalf("UpdateTexture() error = %v", err)
	}
	for _, p := range []image.Point{{1, 2}, {2, 2}} {
		if got := wt.levels[0].NRGBAAt(p.X, p.Y); got != (color.NRGBA{B: 255, A: 255}) {
			t.Errorf("texel %v = %v, want blue", p, got)
		}
	}
	if got := wt.levels[0].NRGBAAt(0, 2); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("texel (0, 2) = %v, want red", got)
	}

	n, err := b.GenerateMipmaps(tex)
	if err != nil {
		t.Fatalf("GenerateMipmaps() error = %v", err)
	}
	if n != 3 {
		t.Errorf("GenerateMipmaps() = %d, want 3", n)
	}
	if got := wt.levels[2].Bounds(); got != image.Rect(0, 0, 1, 1) {
		t.Errorf("level 2 bounds = %v, want 1x1", got)
	}

	if err := b.SetTextureParameter(tex, rlgl.TextureWrapS, rlgl.WrapRepeat); err != nil {
		t.Errorf("SetTextureParameter(wrap repeat) error = %v", err)
	}
	if err := b.SetTextureParameter(tex, rlgl.TextureWrapT, rlgl.WrapMirrorClamp); !errors.Is(err, ErrUnsupportedParameter) {
		t.Errorf("SetTextureParameter(mirror clamp) error = %v, want ErrUnsupportedParameter", err)
	}
	if err := b.SetTextureParameter(tex, rlgl.TextureMinFilter, rlgl.FilterAnisotropic); err != nil {
		t.Errorf("SetTextureParameter(anisotropic) error = %v", err)
	}

	b.DestroyTexture(tex)
	b.DestroyTexture(tex)
	if got := b.TextureCount(); got != 0 {
		t.Errorf("TextureCount() after destroy = %d, want 0", got)
	}
	if err := b.UpdateTexture(tex, image.Rect(0, 0, 1, 1), red565); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("UpdateTexture(destroyed) error = %v, want ErrForeignTexture", err)
	}
	if err := b.SetTextureParameter("other", rlgl.TextureWrapS, rlgl.WrapClamp); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("SetTextureParameter(foreign) error = %v, want ErrForeignTexture", err)
	}
}

func TestCreateTextureUnsupportedFormat(t *testing.T) {
	b := newBackend(t, 16, 16)
	_, err := b.CreateTexture(rlgl.TextureDesc{Width: 4, Height: 4, Format: rlgl.PixelFormatDXT1RGB, Mipmaps: 1}, make([]byte, 8))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("CreateTexture(DXT1) error = %v, want ErrUnsupportedFormat", err)
	}
	_, err = b.CreateTexture(rlgl.TextureDesc{Width: 4, Height: 4, Format: rlgl.PixelFormatR8G8B8A8, Mipmaps: 1}, make([]byte, 8))
	if err == nil {
		t.Error("CreateTexture(short data) error = nil, want error")
	}
}

func TestPipelineCacheReuse(t *testing.T) {
	b := newBackend(t, 16, 16)
	pc := b.pipelines
	s := rlgl.RenderState{Blend: rlgl.BlendAlpha, DepthMask: true}

	p1, err := pc.pipeline(keyFor(s, false))
	if err != nil {
		t.Fatalf("pipeline() error = %v", err)
	}
	p2, err := pc.pipeline(keyFor(s, false))
	if err != nil {
		t.Fatalf("pipeline() error = %v", err)
	}
	if p1 != p2 {
		t.Error("pipeline() returned a new pipeline for the same key")
	}
	s.Blend = rlgl.BlendAdditive
	if _, err := pc.pipeline(keyFor(s, false)); err != nil {
		t.Fatalf("pipeline() error = %v", err)
	}
	if _, err := pc.pipeline(keyFor(s, true)); err != nil {
		t.Fatalf("pipeline() error = %v", err)
	}
	if got := len(pc.pipelines); got != 3 {
		t.Errorf("cached pipelines = %d, want 3", got)
	}
}

func TestBlendState(t *testing.T) {
	tests := []struct {
		mode     rlgl.BlendMode
		src, dst gputypes.BlendFactor
		op       gputypes.BlendOperation
	}{
		{rlgl.BlendAlpha, gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha, gputypes.BlendOperationAdd},
		{rlgl.BlendAdditive, gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOne, gputypes.BlendOperationAdd},
		{rlgl.BlendMultiplied, gputypes.BlendFactorDst, gputypes.BlendFactorOneMinusSrcAlpha, gputypes.BlendOperationAdd},
		{rlgl.BlendAddColors, gputypes.BlendFactorOne, gputypes.BlendFactorOne, gputypes.BlendOperationAdd},
		{rlgl.BlendSubtractColors, gputypes.BlendFactorOne, gputypes.BlendFactorOne, gputypes.BlendOperationSubtract},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			c := blendState(tt.mode).Color
			if c.SrcFactor != tt.src || c.DstFactor != tt.dst || c.Operation != tt.op {
				t.Errorf("blendState(%v).Color = %+v, want {%v %v %v}", tt.mode, c, tt.src, tt.dst, tt.op)
			}
		})
	}
}

func TestSamplerModes(t *testing.T) {
	if got := addressMode(rlgl.WrapMirrorRepeat); got != gputypes.AddressModeMirrorRepeat {
		t.Errorf("addressMode(mirror repeat) = %v, want MirrorRepeat", got)
	}
	if got := addressMode(rlgl.WrapRepeat); got != gputypes.AddressModeRepeat {
		t.Errorf("addressMode(repeat) = %v, want Repeat", got)
	}
	tests := []struct {
		filter   int32
		min, mip gputypes.FilterMode
	}{
		{rlgl.FilterNearest, gputypes.FilterModeNearest, gputypes.FilterModeNearest},
		{rlgl.FilterLinearMipNearest, gputypes.FilterModeLinear, gputypes.FilterModeNearest},
		{rlgl.FilterNearestMipLinear, gputypes.FilterModeNearest, gputypes.FilterModeLinear},
		{rlgl.FilterMipLinear, gputypes.FilterModeLinear, gputypes.FilterModeLinear},
		{rlgl.FilterAnisotropic, gputypes.FilterModeLinear, gputypes.FilterModeLinear},
	}
	for _, tt := range tests {
		minF, mipF := minFilterMode(tt.filter)
		if minF != tt.min || mipF != tt.mip {
			t.Errorf("minFilterMode(%#x) = (%v, %v), want (%v, %v)", tt.filter, minF, mipF, tt.min, tt.mip)
		}
	}
}

func TestClipRects(t *testing.T) {
	tests := []struct {
		name     string
		state    rlgl.RenderState
		vp, clip image.Rectangle
	}{
		{
			"full",
			rlgl.RenderState{Viewport: rlgl.Rect{Width: 100, Height: 50}},
			image.Rect(0, 0, 100, 50), image.Rect(0, 0, 100, 50),
		},
		{
			"bottom left quarter",
			rlgl.RenderState{Viewport: rlgl.Rect{Width: 50, Height: 25}},
			image.Rect(0, 25, 50, 50), image.Rect(0, 25, 50, 50),
		},
		{
			"scissor",
			rlgl.RenderState{
				Viewport: rlgl.Rect{Width: 100, Height: 50},
				Scissor:  true, ScissorRect: rlgl.Rect{X: 10, Y: 0, Width: 20, Height: 10},
			},
			image.Rect(0, 0, 100, 50), image.Rect(10, 40, 30, 50),
		},
		{
			"viewport past target",
			rlgl.RenderState{Viewport: rlgl.Rect{X: 80, Width: 40, Height: 50}},
			image.Rect(80, 0, 120, 50), image.Rect(80, 0, 100, 50),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp, clip := clipRects(tt.state, 100, 50)
			if vp != tt.vp || clip != tt.clip {
				t.Errorf("clipRects() = (%v, %v), want (%v, %v)", vp, clip, tt.vp, tt.clip)
			}
		})
	}
}

func TestWireframe(t *testing.T) {
	v := make([]rlgl.Vertex, 4)
	for i := range v {
		v[i].Position[0] = float32(i)
	}
	got := wireframe(v)
	want := []float32{0, 1, 1, 2, 2, 0}
	if len(got) != len(want) {
		t.Fatalf("len(wireframe()) = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Position[0] != w {
			t.Errorf("wireframe()[%d].x = %v, want %v", i, got[i].Position[0], w)
		}
	}
}

func TestVertexBytes(t *testing.T) {
	v := []rlgl.Vertex{{
		Position: [4]float32{1, 2, 3, 1},
		TexCoord: [4]float32{0.25, 0.75, 9, 9},
		Color:    [4]float32{0.5, 0, 1, 1},
	}}
	b := vertexBytes(v)
	if len(b) != vertexStride {
		t.Fatalf("len(vertexBytes()) = %d, want %d", len(b), vertexStride)
	}
	at := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b[off:])) }
	checks := []struct {
		off  int
		want float32
	}{
		{0, 1}, {8, 3}, {uvOffset, 0.25}, {uvOffset + 4, 0.75}, {colorOffset, 0.5}, {colorOffset + 8, 1},
	}
	for _, c := range checks {
		if got := at(c.off); got != c.want {
			t.Errorf("float at %d = %v, want %v", c.off, got, c.want)
		}
	}
}

func TestMatrixBytes(t *testing.T) {
	b := matrixBytes(rlgl.Translate(5, 6, 7))
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b[12*4:])); got != 5 {
		t.Errorf("m[12] = %v, want 5", got)
	}
}

func TestNewFromProvider(t *testing.T) {
	if _, err := NewFromProvider(nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("NewFromProvider(nil) error = %v, want ErrNilProvider", err)
	}
	if _, err := NewFromProvider(plainProvider{}); !errors.Is(err, ErrNoHAL) {
		t.Errorf("NewFromProvider(plain) error = %v, want ErrNoHAL", err)
	}
	if _, err := NewFromProvider(&fakeProvider{}); !errors.Is(err, ErrNoHAL) {
		t.Errorf("NewFromProvider(nil device) error = %v, want ErrNoHAL", err)
	}

	device, queue := createNoopDevice(t)
	b, err := NewFromProvider(&fakeProvider{device: device, queue: queue, format: gputypes.TextureFormatBGRA8Unorm})
	if err != nil {
		t.Fatalf("NewFromProvider() error = %v", err)
	}
	if b.format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("format = %v, want BGRA8Unorm", b.format)
	}
	if !b.external {
		t.Error("external = false, want true")
	}
	if err := b.Init(8, 8); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := b.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	b.Close()
	if b.device == nil {
		t.Error("Close() dropped the shared device")
	}
}

func TestWithFormatIgnoresUnsupported(t *testing.T) {
	b := New(WithFormat(gputypes.TextureFormatR8Unorm))
	if b.format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8Unorm", b.format)
	}
}

func TestCompileSPIRV(t *testing.T) {
	code, err := compileSPIRV(shaderSource)
	if err != nil {
		if strings.Contains(err.Error(), "not yet implemented") || strings.Contains(err.Error(), "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("compileSPIRV() error = %v", err)
	}
	if len(code) == 0 {
		t.Fatal("compileSPIRV() returned no words")
	}
	if code[0] != 0x07230203 {
		t.Errorf("SPIR-V magic = %#x, want 0x07230203", code[0])
	}
}
