// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/rlgl/internal/handle"
	"github.com/gogpu/rlgl/internal/swizzle"
)

// TextureInfo describes a live texture.
type TextureInfo struct {
	ID      uint32
	Width   int
	Height  int
	Format  PixelFormat
	Mipmaps int
}

// textureEntry is the handle table payload of one texture.
type textureEntry struct {
	tex  Texture
	desc TextureDesc

	// tiled is the level 0 image in tiled layout. It is kept for
	// backends with tiled storage so sub-rectangle updates can be
	// re-tiled and uploaded whole.
	tiled []byte
}

// textureManager owns the texture handle table and translates texel data
// into the backend layout.
type textureManager struct {
	backend Backend
	caps    Caps
	log     *slog.Logger
	table   handle.Table[*textureEntry]
}

func newTextureManager(b Backend, caps Caps, log *slog.Logger) *textureManager {
	return &textureManager{backend: b, caps: caps, log: log}
}

func (m *textureManager) tiled(f PixelFormat) bool {
	return m.caps.Layout == LayoutTiled8x8 && !f.Compressed()
}

// checkSize validates texture dimensions against the backend limits.
func (m *textureManager) checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, width, height)
	}
	if m.caps.PowerOfTwo && (!isPowerOfTwo(width) || !isPowerOfTwo(height)) {
		return fmt.Errorf("%w: %dx%d is not a power of two", ErrInvalidTextureSize, width, height)
	}
	if lo := m.caps.MinTextureSize; lo > 0 && (width < lo || height < lo) {
		return fmt.Errorf("%w: %dx%d below minimum %d", ErrInvalidTextureSize, width, height, lo)
	}
	if hi := m.caps.MaxTextureSize; hi > 0 && (width > hi || height > hi) {
		return fmt.Errorf("%w: %dx%d above maximum %d", ErrInvalidTextureSize, width, height, hi)
	}
	if m.caps.Layout == LayoutTiled8x8 && (width%swizzle.TileSize != 0 || height%swizzle.TileSize != 0) {
		return fmt.Errorf("%w: %dx%d is not a multiple of the tile size", ErrInvalidTextureSize, width, height)
	}
	return nil
}

// create validates, converts and uploads a texture. On failure nothing is
// allocated and the returned id is 0.
func (m *textureManager) create(pixels []byte, width, height int, format PixelFormat, mipmaps int) (uint32, error) {
	if !m.caps.Supports(format) {
		m.log.Warn("rlgl: texture format not supported by backend",
			"format", format, "backend", m.backend.Name())
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err := m.checkSize(width, height); err != nil {
		m.log.Warn("rlgl: texture size not supported", "width", width, "height", height, "error", err)
		return 0, err
	}
	mipmaps = max(mipmaps, 1)
	if m.tiled(format) {
		if n := tiledLevels(width, height); mipmaps > n {
			m.log.Warn("rlgl: mip levels below the tile size dropped", "requested", mipmaps, "kept", n)
			mipmaps = n
		}
	}

	size := format.MipChainSize(width, height, mipmaps)
	switch {
	case pixels == nil:
		pixels = make([]byte, size)
	case len(pixels) < size:
		m.log.Warn("rlgl: texture data too short", "have", len(pixels), "want", size)
		return 0, fmt.Errorf("%w: have %d bytes, want %d", ErrInvalidPixelData, len(pixels), size)
	}

	desc := TextureDesc{Width: width, Height: height, Format: format, Mipmaps: mipmaps}
	data := pixels[:size]
	var tiled []byte
	if m.tiled(format) {
		var err error
		if data, err = swizzleChain(data, desc); err != nil {
			m.log.Warn("rlgl: texture swizzle failed", "error", err)
			return 0, err
		}
		tiled = append([]byte(nil), data[:format.DataSize(width, height)]...)
	}

	tex, err := m.backend.CreateTexture(desc, data)
	if err != nil {
		m.log.Warn("rlgl: backend failed to create texture", "width", width, "height", height, "error", err)
		return 0, fmt.Errorf("rlgl: create texture: %w", err)
	}
	id := m.table.Insert(&textureEntry{tex: tex, desc: desc, tiled: tiled})
	m.log.Info("rlgl: texture loaded", "id", id, "width", width, "height", height,
		"format", format, "mipmaps", mipmaps)
	return id, nil
}

// tiledLevels returns how many mip levels of a texture stay at least one
// tile in both dimensions.
func tiledLevels(width, height int) int {
	n := 0
	for width >= swizzle.TileSize && height >= swizzle.TileSize {
		n++
		width, height = width/2, height/2
	}
	return max(n, 1)
}

// swizzleChain converts every level of a linear mip chain to tiled layout.
func swizzleChain(src []byte, desc TextureDesc) ([]byte, error) {
	dst := make([]byte, len(src))
	bpp := desc.Format.BytesPerPixel()
	w, h, off := desc.Width, desc.Height, 0
	for level := 0; level < desc.Mipmaps; level++ {
		n := desc.Format.DataSize(w, h)
		if err := swizzle.Swizzle(dst[off:off+n], src[off:off+n], w, h, bpp); err != nil {
			return nil, fmt.Errorf("rlgl: mip level %d: %w", level, err)
		}
		off += n
		w, h = max(w/2, 1), max(h/2, 1)
	}
	return dst, nil
}

// lookup returns the entry of id, logging a warning on a miss.
func (m *textureManager) lookup(id uint32, op string) (*textureEntry, error) {
	e, ok := m.table.Get(id)
	if !ok {
		m.log.Warn("rlgl: unknown texture id", "id", id, "op", op)
		return nil, fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	return e, nil
}

// update rewrites the level 0 rectangle (x, y, w, h).
func (m *textureManager) update(id uint32, x, y, w, h int, format PixelFormat, pixels []byte) error {
	e, err := m.lookup(id, "update")
	if err != nil {
		return err
	}
	if format != e.desc.Format {
		m.log.Warn("rlgl: texture update format mismatch", "id", id, "have", e.desc.Format, "got", format)
		return fmt.Errorf("%w: texture %d is %v, update is %v", ErrUnsupportedFormat, id, e.desc.Format, format)
	}
	rect := image.Rect(x, y, x+w, y+h)
	if w <= 0 || h <= 0 || !rect.In(image.Rect(0, 0, e.desc.Width, e.desc.Height)) {
		m.log.Warn("rlgl: texture update outside texture", "id", id, "rect", rect)
		return fmt.Errorf("%w: update %v outside %dx%d", ErrInvalidTextureSize, rect, e.desc.Width, e.desc.Height)
	}
	if need := format.DataSize(w, h); len(pixels) < need {
		m.log.Warn("rlgl: texture update data too short", "id", id, "have", len(pixels), "want", need)
		return fmt.Errorf("%w: have %d bytes, want %d", ErrInvalidPixelData, len(pixels), need)
	}

	if m.caps.Layout == LayoutTiled8x8 {
		if format.Compressed() {
			m.log.Warn("rlgl: compressed textures cannot be updated", "id", id, "format", format)
			return fmt.Errorf("%w: update of %v", ErrUnsupportedFormat, format)
		}
		err := swizzle.SwizzleRect(e.tiled, pixels, e.desc.Width, e.desc.Height, x, y, w, h, format.BytesPerPixel())
		if err != nil {
			return fmt.Errorf("rlgl: update texture %d: %w", id, err)
		}
		rect, pixels = image.Rect(0, 0, e.desc.Width, e.desc.Height), e.tiled
	}
	if err := m.backend.UpdateTexture(e.tex, rect, pixels); err != nil {
		m.log.Warn("rlgl: backend failed to update texture", "id", id, "error", err)
		return fmt.Errorf("rlgl: update texture %d: %w", id, err)
	}
	return nil
}

// destroy frees the backend texture and its id together.
func (m *textureManager) destroy(id uint32) error {
	e, ok := m.table.Remove(id)
	if !ok {
		m.log.Warn("rlgl: unable to unload texture", "id", id)
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	m.backend.DestroyTexture(e.tex)
	m.log.Debug("rlgl: texture unloaded", "id", id)
	return nil
}

func (m *textureManager) generateMipmaps(id uint32) (int, error) {
	e, err := m.lookup(id, "mipmaps")
	if err != nil {
		return 0, err
	}
	n, err := m.backend.GenerateMipmaps(e.tex)
	if err != nil {
		m.log.Warn("rlgl: mipmap generation failed", "id", id, "error", err)
		return e.desc.Mipmaps, fmt.Errorf("rlgl: generate mipmaps %d: %w", id, err)
	}
	e.desc.Mipmaps = n
	return n, nil
}

func (m *textureManager) setParameter(id uint32, param TextureParam, value int32) error {
	e, err := m.lookup(id, "parameter")
	if err != nil {
		return err
	}
	if err := m.backend.SetTextureParameter(e.tex, param, value); err != nil {
		m.log.Warn("rlgl: texture parameter rejected", "id", id, "param", param, "value", value, "error", err)
		return fmt.Errorf("rlgl: texture %d parameter %#x: %w", id, int32(param), err)
	}
	return nil
}

func (m *textureManager) info(id uint32) (TextureInfo, bool) {
	e, ok := m.table.Get(id)
	if !ok {
		return TextureInfo{}, false
	}
	d := e.desc
	return TextureInfo{ID: id, Width: d.Width, Height: d.Height, Format: d.Format, Mipmaps: d.Mipmaps}, true
}

// destroyAll frees every texture, in ascending id order.
func (m *textureManager) destroyAll() {
	m.table.Each(func(_ uint32, e *textureEntry) {
		m.backend.DestroyTexture(e.tex)
	})
	m.table.Clear()
}
