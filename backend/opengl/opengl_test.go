// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cgo && !nogpu

package opengl

import (
	"errors"
	"image/color"
	"os"
	"runtime"
	"testing"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/backend"
)

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendOpenGL) {
		t.Fatal("opengl backend not registered")
	}
	b, err := backend.Get(backend.BackendOpenGL)
	if err != nil || b.Name() != backend.BackendOpenGL {
		t.Fatalf("Get(%q) = %v, %v, want the opengl backend", backend.BackendOpenGL, b, err)
	}
}

func TestNotInitialized(t *testing.T) {
	b := New()
	if _, err := b.CreateTexture(rlgl.TextureDesc{Width: 1, Height: 1, Format: rlgl.PixelFormatR8G8B8A8}, make([]byte, 4)); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("CreateTexture() error = %v, want ErrNotInitialized", err)
	}
	if err := b.Draw(&rlgl.DrawCommand{Mode: rlgl.Triangles}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Draw() error = %v, want ErrNotInitialized", err)
	}
	if err := b.Clear(rlgl.ScreenTop, color.RGBA{}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Clear() error = %v, want ErrNotInitialized", err)
	}
	if err := b.Present(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Present() error = %v, want ErrNotInitialized", err)
	}
	if img := b.ReadPixels(); img != nil {
		t.Errorf("ReadPixels() = %v, want nil", img.Bounds())
	}
}

func TestForeignTexture(t *testing.T) {
	b := New()
	other := &texture{owner: New(), id: 1}
	if err := b.SetTextureParameter(other, rlgl.TextureWrapS, rlgl.WrapRepeat); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("SetTextureParameter(foreign) error = %v, want ErrForeignTexture", err)
	}
	if _, err := b.GenerateMipmaps("not a texture"); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("GenerateMipmaps(string) error = %v, want ErrForeignTexture", err)
	}
}

func TestTextureFormat(t *testing.T) {
	tests := []struct {
		format rlgl.PixelFormat
		want   texFormat
	}{
		{rlgl.PixelFormatGrayscale, texFormat{gl.LUMINANCE, gl.LUMINANCE, gl.UNSIGNED_BYTE}},
		{rlgl.PixelFormatGrayAlpha, texFormat{gl.LUMINANCE_ALPHA, gl.LUMINANCE_ALPHA, gl.UNSIGNED_BYTE}},
		{rlgl.PixelFormatR5G6B5, texFormat{gl.RGB, gl.RGB, gl.UNSIGNED_SHORT_5_6_5}},
		{rlgl.PixelFormatR8G8B8, texFormat{gl.RGB, gl.RGB, gl.UNSIGNED_BYTE}},
		{rlgl.PixelFormatR5G5B5A1, texFormat{gl.RGBA, gl.RGBA, gl.UNSIGNED_SHORT_5_5_5_1}},
		{rlgl.PixelFormatR4G4B4A4, texFormat{gl.RGBA, gl.RGBA, gl.UNSIGNED_SHORT_4_4_4_4}},
		{rlgl.PixelFormatR8G8B8A8, texFormat{gl.RGBA, gl.RGBA, gl.UNSIGNED_BYTE}},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			got, ok := textureFormat(tt.format)
			if !ok || got != tt.want {
				t.Errorf("textureFormat() = %v, %v, want %v, true", got, ok, tt.want)
			}
		})
	}
	if len(SupportedFormats()) != len(tests) {
		t.Errorf("SupportedFormats() has %d formats, want %d", len(SupportedFormats()), len(tests))
	}
	for _, f := range []rlgl.PixelFormat{rlgl.PixelFormatETC1RGB, rlgl.PixelFormatDXT1RGB, rlgl.PixelFormatR32} {
		if _, ok := textureFormat(f); ok {
			t.Errorf("textureFormat(%v) ok = true, want false", f)
		}
	}
}

func TestTextureParameter(t *testing.T) {
	tests := []struct {
		name      string
		param     rlgl.TextureParam
		value     int32
		wantName  uint32
		wantValue int32
		wantErr   bool
	}{
		{"mag nearest", rlgl.TextureMagFilter, rlgl.FilterNearest, gl.TEXTURE_MAG_FILTER, gl.NEAREST, false},
		{"mag mipmap", rlgl.TextureMagFilter, rlgl.FilterMipLinear, 0, 0, true},
		{"min trilinear", rlgl.TextureMinFilter, rlgl.FilterMipLinear, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR, false},
		{"min anisotropic", rlgl.TextureMinFilter, rlgl.FilterAnisotropic, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR, false},
		{"wrap s repeat", rlgl.TextureWrapS, rlgl.WrapRepeat, gl.TEXTURE_WRAP_S, gl.REPEAT, false},
		{"wrap t mirror", rlgl.TextureWrapT, rlgl.WrapMirrorRepeat, gl.TEXTURE_WRAP_T, gl.MIRRORED_REPEAT, false},
		{"mirror clamp", rlgl.TextureWrapT, rlgl.WrapMirrorClamp, 0, 0, true},
		{"unknown", rlgl.TextureParam(0x1234), rlgl.WrapClamp, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, value, err := textureParameter(tt.param, tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedParameter) {
					t.Errorf("textureParameter() error = %v, want ErrUnsupportedParameter", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("textureParameter() error = %v", err)
			}
			if name != tt.wantName || value != tt.wantValue {
				t.Errorf("textureParameter() = %#x, %#x, want %#x, %#x", name, value, tt.wantName, tt.wantValue)
			}
		})
	}
}

func TestBlendFor(t *testing.T) {
	tests := []struct {
		mode rlgl.BlendMode
		want blendFunc
	}{
		{rlgl.BlendAlpha, blendFunc{gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.FUNC_ADD}},
		{rlgl.BlendAdditive, blendFunc{gl.SRC_ALPHA, gl.ONE, gl.FUNC_ADD}},
		{rlgl.BlendMultiplied, blendFunc{gl.DST_COLOR, gl.ONE_MINUS_SRC_ALPHA, gl.FUNC_ADD}},
		{rlgl.BlendAddColors, blendFunc{gl.ONE, gl.ONE, gl.FUNC_ADD}},
		{rlgl.BlendSubtractColors, blendFunc{gl.ONE, gl.ONE, gl.FUNC_SUBTRACT}},
	}
	for _, tt := range tests {
		if got := blendFor(tt.mode); got != tt.want {
			t.Errorf("blendFor(%v) = %+v, want %+v", tt.mode, got, tt.want)
		}
	}
}

func TestVertexLayout(t *testing.T) {
	if vertexStride != 64 {
		t.Errorf("vertexStride = %d, want 64", vertexStride)
	}
	if texCoordOffset != 16 || colorOffset != 32 {
		t.Errorf("offsets = %d, %d, want 16, 32", texCoordOffset, colorOffset)
	}
}

func TestFlipRows(t *testing.T) {
	pix := []byte{1, 1, 2, 2, 3, 3}
	flipRows(pix, 2)
	want := []byte{3, 3, 2, 2, 1, 1}
	for i := range want {
		if pix[i] != want[i] {
			t.Fatalf("flipRows() = %v, want %v", pix, want)
		}
	}
}

// openTestWindow opens a hidden window or skips when no display is
// available.
func openTestWindow(t *testing.T, w, h int) *Window {
	t.Helper()
	if runtime.GOOS == "darwin" {
		t.Skip("GLFW needs the main thread on macOS")
	}
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		t.Skip("no display available")
	}
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)
	win, err := OpenWindow(w, h, "rlgl test", false)
	if err != nil {
		t.Skipf("OpenWindow() error = %v", err)
	}
	t.Cleanup(win.Close)
	return win
}

func TestContextFrame(t *testing.T) {
	win := openTestWindow(t, 32, 16)
	w, h := win.Size()
	b := win.Backend()
	ctx, err := rlgl.New(w, h, rlgl.WithBackend(b))
	if err != nil {
		t.Skipf("rlgl.New() error = %v", err)
	}
	t.Cleanup(ctx.Close)

	ctx.MatrixMode(rlgl.Projection)
	ctx.LoadIdentity()
	ctx.Ortho(0, float64(w), float64(h), 0, 0, 1)
	ctx.MatrixMode(rlgl.Modelview)
	ctx.LoadIdentity()

	ctx.ClearColor(0, 0, 255, 255)
	ctx.ClearScreenBuffers()
	ctx.Begin(rlgl.Quads)
	ctx.Color4ub(255, 0, 0, 255)
	ctx.Vertex2f(0, 0)
	ctx.Vertex2f(0, float32(h))
	ctx.Vertex2f(float32(w)/2, float32(h))
	ctx.Vertex2f(float32(w)/2, 0)
	ctx.End()

	// Read before EndFrame swaps the back buffer.
	ctx.DrawRenderBatchActive()
	if got := ctx.Stats().BackendErrors; got != 0 {
		t.Fatalf("Stats().BackendErrors = %d, want 0", got)
	}
	img := b.ReadPixels()
	if got := img.RGBAAt(w/4, h/2); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("left pixel = %v, want red", got)
	}
	if got := img.RGBAAt(w*3/4, h/2); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("right pixel = %v, want blue", got)
	}
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() error = %v", err)
	}
	if got := b.Frames(); got != 1 {
		t.Errorf("Frames() = %d, want 1", got)
	}
	if got := b.TextureCount(); got != 1 {
		t.Errorf("TextureCount() = %d, want 1 (default texture)", got)
	}
}
