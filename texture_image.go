// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// LoadTextureFromImage converts img to R8G8B8A8 and uploads it.
// When the backend requires power-of-two textures, or bounds the texture
// size, the image is rescaled with bilinear filtering to the nearest size
// the backend accepts.
func (c *Context) LoadTextureFromImage(img image.Image) (uint32, error) {
	if img == nil || img.Bounds().Empty() {
		c.log.Warn("rlgl: empty image not loaded")
		return 0, fmt.Errorf("%w: empty image", ErrInvalidTextureSize)
	}
	pix := ImageToNRGBA(img, c.TextureSizeFor(img.Bounds().Dx(), img.Bounds().Dy()))
	return c.CreateTexture(pix.Pix, pix.Rect.Dx(), pix.Rect.Dy(), PixelFormatR8G8B8A8, 1)
}

// TextureSizeFor returns the texture size the backend would store an
// image of width x height at.
func (c *Context) TextureSizeFor(width, height int) image.Point {
	fit := func(n int) int {
		if c.caps.PowerOfTwo {
			n = nextPowerOfTwo(n)
		}
		if lo := c.caps.MinTextureSize; lo > 0 && n < lo {
			n = lo
		}
		if hi := c.caps.MaxTextureSize; hi > 0 && n > hi {
			n = hi
		}
		return n
	}
	return image.Pt(fit(width), fit(height))
}

// ImageToNRGBA returns img as a non-premultiplied RGBA image of the given
// size, scaling when the size differs from the image bounds.
func ImageToNRGBA(img image.Image, size image.Point) *image.NRGBA {
	b := img.Bounds()
	if size.X <= 0 || size.Y <= 0 {
		size = b.Size()
	}
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && b.Size() == size && n.Stride == 4*size.X {
		return n
	}
	dst := image.NewNRGBA(image.Rectangle{Max: size})
	if b.Size() == size {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}
	return dst
}
