// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

// CreateTexture uploads a texture and returns its id.
//
// pixels holds mipmaps levels back to back in row-major order with the
// origin at the top-left; nil allocates an empty texture. Unsupported
// formats, dimensions the backend cannot store and short pixel buffers
// are logged and return id 0 with ErrUnsupportedFormat,
// ErrInvalidTextureSize or ErrInvalidPixelData.
func (c *Context) CreateTexture(pixels []byte, width, height int, format PixelFormat, mipmaps int) (uint32, error) {
	if c.closed {
		return 0, ErrClosed
	}
	return c.textures.create(pixels, width, height, format, mipmaps)
}

// UpdateTexture replaces the texels of the rectangle (x, y, width, height)
// of level 0. format must match the texture format.
func (c *Context) UpdateTexture(id uint32, x, y, width, height int, format PixelFormat, pixels []byte) error {
	if c.batch.references(id) {
		c.DrawRenderBatchActive()
	}
	return c.textures.update(id, x, y, width, height, format, pixels)
}

// DestroyTexture frees a texture and its id. Unknown ids are logged and
// return ErrUnknownTexture without changing anything. Pending draws that
// sample the texture are submitted first, and a binding to it is
// cleared.
func (c *Context) DestroyTexture(id uint32) error {
	if !c.textures.table.Contains(id) {
		return c.textures.destroy(id)
	}
	if c.texture == id {
		c.texture = 0
	}
	if c.batch.references(id) {
		c.DrawRenderBatchActive()
	} else if d := c.batch.last(); c.asm.active && d != nil && d.TextureID == id {
		c.openRecord()
	}
	if c.defaultTexture == id {
		c.defaultTexture = 0
	}
	return c.textures.destroy(id)
}

// SetTexture binds a texture for the following primitives. Id 0 unbinds
// and disables texturing. Between Begin and End the binding applies from
// the next complete primitive on. Unknown ids are logged and return
// ErrUnknownTexture with the binding unchanged.
func (c *Context) SetTexture(id uint32) error {
	if id != 0 {
		if _, err := c.textures.lookup(id, "bind"); err != nil {
			return err
		}
	}
	if id == c.texture {
		return nil
	}
	c.texture = id
	return nil
}

// BoundTexture returns the id bound by SetTexture, 0 when none.
func (c *Context) BoundTexture() uint32 { return c.texture }

// GenerateMipmaps builds the mip chain of a texture and returns its level
// count.
func (c *Context) GenerateMipmaps(id uint32) (int, error) {
	if c.batch.references(id) {
		c.DrawRenderBatchActive()
	}
	return c.textures.generateMipmaps(id)
}

// SetTextureParameter changes a wrap or filter parameter of a texture.
func (c *Context) SetTextureParameter(id uint32, param TextureParam, value int32) error {
	if c.batch.references(id) {
		c.DrawRenderBatchActive()
	}
	return c.textures.setParameter(id, param, value)
}

// TextureInfo returns the description of a live texture.
func (c *Context) TextureInfo(id uint32) (TextureInfo, bool) { return c.textures.info(id) }

// TextureCount returns the number of live textures, including the
// default texture.
func (c *Context) TextureCount() int { return c.textures.table.Len() }
