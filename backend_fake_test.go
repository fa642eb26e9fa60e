// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"testing"
)

// fakeTexture is the texture object of fakeBackend.
type fakeTexture struct {
	serial int
	desc   TextureDesc
	data   []byte
	params map[TextureParam]int32
}

// fakeClear records one Clear call.
type fakeClear struct {
	screen Screen
	color  color.RGBA
}

// fakeBackend records every call for inspection.
type fakeBackend struct {
	caps Caps

	initW, initH int
	draws        []DrawCommand
	clears       []fakeClear
	created      []*fakeTexture
	destroyed    []*fakeTexture
	updates      []image.Rectangle
	presents     int
	closed       bool
	events       []string

	drawErr error
	logger  *slog.Logger
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		caps: Caps{
			Version: "fake",
			Layout:  LayoutLinear,
			Screens: []image.Point{{X: 400, Y: 240}, {X: 320, Y: 240}},
		},
	}
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Init(width, height int) error {
	f.initW, f.initH = width, height
	return nil
}

func (f *fakeBackend) Caps() Caps { return f.caps }

func (f *fakeBackend) CreateTexture(desc TextureDesc, data []byte) (Texture, error) {
	t := &fakeTexture{
		serial: len(f.created) + 1,
		desc:   desc,
		data:   append([]byte(nil), data...),
		params: map[TextureParam]int32{},
	}
	f.created = append(f.created, t)
	f.events = append(f.events, "create")
	return t, nil
}

func (f *fakeBackend) UpdateTexture(tex Texture, rect image.Rectangle, data []byte) error {
	t := tex.(*fakeTexture)
	t.data = append(t.data[:0], data...)
	f.updates = append(f.updates, rect)
	f.events = append(f.events, "update")
	return nil
}

func (f *fakeBackend) DestroyTexture(tex Texture) {
	f.destroyed = append(f.destroyed, tex.(*fakeTexture))
	f.events = append(f.events, "destroy")
}

func (f *fakeBackend) GenerateMipmaps(tex Texture) (int, error) {
	t := tex.(*fakeTexture)
	levels := 1
	for w, h := t.desc.Width, t.desc.Height; w > 1 || h > 1; w, h = max(w/2, 1), max(h/2, 1) {
		levels++
	}
	t.desc.Mipmaps = levels
	return levels, nil
}

func (f *fakeBackend) SetTextureParameter(tex Texture, param TextureParam, value int32) error {
	if param == TextureMinFilter && value == FilterAnisotropic {
		return errors.New("fake: anisotropic filtering not supported")
	}
	tex.(*fakeTexture).params[param] = value
	return nil
}

func (f *fakeBackend) Draw(cmd *DrawCommand) error {
	if f.drawErr != nil {
		return f.drawErr
	}
	c := *cmd
	c.Vertices = append([]Vertex(nil), cmd.Vertices...)
	f.draws = append(f.draws, c)
	f.events = append(f.events, "draw")
	return nil
}

func (f *fakeBackend) Clear(screen Screen, c color.RGBA) error {
	f.clears = append(f.clears, fakeClear{screen: screen, color: c})
	f.events = append(f.events, "clear")
	return nil
}

func (f *fakeBackend) Present() error {
	f.presents++
	f.events = append(f.events, "present")
	return nil
}

func (f *fakeBackend) Close() { f.closed = true }

func (f *fakeBackend) SetLogger(l *slog.Logger) { f.logger = l }

// newTestContext creates a 400x240 Context on a fake backend without the
// default texture, so texture ids start at 1.
func newTestContext(t *testing.T, opts ...ContextOption) (*Context, *fakeBackend) {
	t.Helper()
	return newTestContextWith(t, newFakeBackend(), opts...)
}

func newTestContextWith(t *testing.T, fb *fakeBackend, opts ...ContextOption) (*Context, *fakeBackend) {
	t.Helper()
	all := append([]ContextOption{WithBackend(fb), WithoutDefaultTexture()}, opts...)
	ctx, err := New(400, 240, all...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(ctx.Close)
	return ctx, fb
}

// quad submits an axis aligned quad at (x, y) with edge size, one color
// per corner, in the color-then-position calling convention.
func quad(ctx *Context, x, y, size float32, colors [4][4]uint8) {
	corners := [4][2]float32{{x, y}, {x, y + size}, {x + size, y + size}, {x + size, y}}
	ctx.Begin(Quads)
	for i, p := range corners {
		c := colors[i]
		ctx.Color4ub(c[0], c[1], c[2], c[3])
		ctx.Vertex2f(p[0], p[1])
	}
	ctx.End()
}

var white4 = [4][4]uint8{
	{255, 255, 255, 255}, {255, 255, 255, 255}, {255, 255, 255, 255}, {255, 255, 255, 255},
}
