// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import (
	"fmt"
	"image"
	"image/color"
	"slices"
)

// Backend is the GPU submission target of a Context. A Context owns its
// backend: it calls Init once from New and Close once from Close, and
// never calls it concurrently.
//
// Implementations live in the backend/ subpackages and register
// themselves with backend.Register.
type Backend interface {
	// Name returns the backend identifier ("pica", "wgpu", "opengl").
	Name() string

	// Init prepares the backend for a framebuffer of the given size.
	Init(width, height int) error

	// Caps describes what the backend can store and draw.
	Caps() Caps

	// CreateTexture allocates a texture and uploads data, which is
	// already in the layout reported by Caps().Layout and holds
	// desc.Mipmaps levels back to back.
	CreateTexture(desc TextureDesc, data []byte) (Texture, error)

	// UpdateTexture replaces the level 0 texels of the rectangle rect.
	// For tiled layouts rect always covers the whole texture.
	UpdateTexture(tex Texture, rect image.Rectangle, data []byte) error

	// DestroyTexture releases a texture created by CreateTexture.
	DestroyTexture(tex Texture)

	// GenerateMipmaps builds the mip chain of tex and returns the new
	// level count.
	GenerateMipmaps(tex Texture) (int, error)

	// SetTextureParameter changes a wrap or filter parameter.
	SetTextureParameter(tex Texture, param TextureParam, value int32) error

	// Draw submits one draw call record.
	Draw(cmd *DrawCommand) error

	// Clear fills the color and depth buffers of a screen.
	Clear(screen Screen, c color.RGBA) error

	// Present finishes the frame on every screen.
	Present() error

	// Close releases all backend resources.
	Close()
}

// Texture is a backend-owned texture object. Its concrete type is private
// to the backend that created it.
type Texture any

// TextureDesc describes a texture allocation.
type TextureDesc struct {
	Width   int
	Height  int
	Format  PixelFormat
	Mipmaps int
}

// Caps reports backend capabilities consulted by the resource manager and
// the facade.
type Caps struct {
	// Version is a human readable API version, e.g. "PICA200".
	Version string

	// Layout is the texel layout CreateTexture expects.
	Layout TextureLayout

	// PowerOfTwo requires texture dimensions to be powers of two.
	PowerOfTwo bool

	// MinTextureSize and MaxTextureSize bound each texture dimension.
	// Zero means no bound.
	MinTextureSize int
	MaxTextureSize int

	// Formats lists the supported pixel formats. Nil means every
	// uncompressed format.
	Formats []PixelFormat

	// Screens holds the size of each output target, indexed by Screen.
	Screens []image.Point
}

// Supports reports whether the backend can store format f.
func (c Caps) Supports(f PixelFormat) bool {
	if !f.Valid() {
		return false
	}
	if c.Formats == nil {
		return !f.Compressed()
	}
	return slices.Contains(c.Formats, f)
}

// ScreenSize returns the size of screen s, falling back to the first
// screen for targets the backend does not have.
func (c Caps) ScreenSize(s Screen) image.Point {
	if int(s) >= 0 && int(s) < len(c.Screens) {
		return c.Screens[s]
	}
	if len(c.Screens) > 0 {
		return c.Screens[0]
	}
	return image.Point{}
}

// Screen selects an output target on backends with several displays.
type Screen int

const (
	ScreenTop Screen = iota
	ScreenBottom
)

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case ScreenTop:
		return "top"
	case ScreenBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Screen(%d)", int(s))
	}
}

// BlendMode selects how fragments combine with the framebuffer.
type BlendMode int

const (
	BlendAlpha          BlendMode = iota // alpha blending
	BlendAdditive                        // add colors weighted by alpha
	BlendMultiplied                      // multiply colors
	BlendAddColors                       // add colors
	BlendSubtractColors                  // subtract colors
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendAlpha:
		return "alpha"
	case BlendAdditive:
		return "additive"
	case BlendMultiplied:
		return "multiplied"
	case BlendAddColors:
		return "add_colors"
	case BlendSubtractColors:
		return "subtract_colors"
	default:
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
}

// Rect is an integer rectangle in framebuffer pixels with a bottom-left
// origin, as glViewport and glScissor take it.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// RenderState is the fixed-function state a draw call is submitted with.
type RenderState struct {
	Blend       BlendMode
	DepthTest   bool
	DepthMask   bool
	Cull        bool
	Wire        bool
	Scissor     bool
	ScissorRect Rect
	Viewport    Rect
}

// DrawCommand is one draw call record as handed to a backend.
//
// Quads have already been expanded, so Mode is Lines or Triangles.
// Positions are in object space; Projection and Modelview are the
// matrices captured when the record was opened.
type DrawCommand struct {
	Mode       Topology
	Vertices   []Vertex
	TextureID  uint32
	Texture    Texture // nil draws untextured
	Projection Matrix
	Modelview  Matrix
	State      RenderState
	Screen     Screen

	// Eye is 0 or 1 while stereo rendering is enabled and -1 otherwise.
	Eye int
}
