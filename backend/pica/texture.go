// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pica

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/internal/pixel"
	"github.com/gogpu/rlgl/internal/swizzle"
)

// texture is a texture in tiled storage.
type texture struct {
	owner  *Backend
	desc   rlgl.TextureDesc
	color  TexColor
	bpp    int      // bytes per texel, 0 for compressed formats
	levels [][]byte // tiled mip levels

	magFilter, minFilter int32
	wrapS, wrapT         int32
}

func (b *Backend) lookup(t rlgl.Texture) (*texture, error) {
	tex, ok := t.(*texture)
	if !ok || tex.owner != b || tex.levels == nil {
		return nil, ErrForeignTexture
	}
	return tex, nil
}

// CreateTexture stores a tiled mip chain. data must already be in the
// tiled layout.
func (b *Backend) CreateTexture(desc rlgl.TextureDesc, data []byte) (rlgl.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return nil, ErrNotInitialized
	}
	tc, ok := TextureFormat(desc.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, desc.Format)
	}
	levels := max(desc.Mipmaps, 1)
	if need := desc.Format.MipChainSize(desc.Width, desc.Height, levels); len(data) < need {
		return nil, fmt.Errorf("pica: texture data has %d bytes, want %d", len(data), need)
	}

	tex := &texture{
		owner:     b,
		desc:      desc,
		color:     tc,
		magFilter: rlgl.FilterLinear,
		minFilter: rlgl.FilterNearest,
		wrapS:     rlgl.WrapClamp,
		wrapT:     rlgl.WrapClamp,
	}
	if !desc.Format.Compressed() {
		tex.bpp = desc.Format.BytesPerPixel()
	} else {
		b.log.Debug("pica: compressed texture is sampled as white", "format", tc)
	}
	w, h, off := desc.Width, desc.Height, 0
	for i := 0; i < levels; i++ {
		n := desc.Format.DataSize(w, h)
		tex.levels = append(tex.levels, append([]byte(nil), data[off:off+n]...))
		off += n
		w, h = max(w/2, 1), max(h/2, 1)
	}
	tex.desc.Mipmaps = levels
	b.textures++
	return tex, nil
}

// UpdateTexture replaces level 0. Tiled data can only be replaced whole.
func (b *Backend) UpdateTexture(t rlgl.Texture, rect image.Rectangle, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.lookup(t)
	if err != nil {
		return err
	}
	if rect != image.Rect(0, 0, tex.desc.Width, tex.desc.Height) {
		return fmt.Errorf("%w: %v", ErrPartialUpdate, rect)
	}
	if len(data) < len(tex.levels[0]) {
		return fmt.Errorf("pica: update has %d bytes, want %d", len(data), len(tex.levels[0]))
	}
	copy(tex.levels[0], data)
	return nil
}

// DestroyTexture frees a texture.
func (b *Backend) DestroyTexture(t rlgl.Texture) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.lookup(t)
	if err != nil {
		return
	}
	tex.levels = nil
	b.textures--
}

// GenerateMipmaps rebuilds the mip chain from level 0 with a 2x2 box
// filter, down to the smallest level that still covers a whole tile.
func (b *Backend) GenerateMipmaps(t rlgl.Texture) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.lookup(t)
	if err != nil {
		return 0, err
	}
	if tex.bpp == 0 {
		return len(tex.levels), ErrCompressedMipmaps
	}

	levels := tex.levels[:1]
	w, h := tex.desc.Width, tex.desc.Height
	for w/2 >= swizzle.TileSize && h/2 >= swizzle.TileSize {
		next, err := tex.downsample(levels[len(levels)-1], w, h)
		if err != nil {
			return len(tex.levels), err
		}
		levels = append(levels, next)
		w, h = w/2, h/2
	}
	tex.levels = levels
	tex.desc.Mipmaps = len(levels)
	return len(levels), nil
}

// downsample halves a tiled level.
func (t *texture) downsample(src []byte, w, h int) ([]byte, error) {
	linear := make([]byte, len(src))
	if err := swizzle.Unswizzle(linear, src, w, h, t.bpp); err != nil {
		return nil, err
	}
	dw, dh := w/2, h/2
	out := make([]byte, dw*dh*t.bpp)
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			var r, g, bl, a uint32
			for _, p := range [4]image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
				i := ((2*y+p.Y)*w + 2*x + p.X) * t.bpp
				c := pixel.Decode(t.desc.Format, linear[i:i+t.bpp])
				r, g, bl, a = r+uint32(c.R), g+uint32(c.G), bl+uint32(c.B), a+uint32(c.A)
			}
			c := color.NRGBA{R: uint8(r / 4), G: uint8(g / 4), B: uint8(bl / 4), A: uint8(a / 4)}
			i := (y*dw + x) * t.bpp
			pixel.Encode(t.desc.Format, c, out[i:i+t.bpp])
		}
	}
	tiled := make([]byte, len(out))
	if err := swizzle.Swizzle(tiled, out, dw, dh, t.bpp); err != nil {
		return nil, err
	}
	return tiled, nil
}

// SetTextureParameter sets a filter or wrap mode.
func (b *Backend) SetTextureParameter(t rlgl.Texture, param rlgl.TextureParam, value int32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.lookup(t)
	if err != nil {
		return err
	}
	switch param {
	case rlgl.TextureMagFilter:
		if value != rlgl.FilterNearest && value != rlgl.FilterLinear {
			return fmt.Errorf("%w: mag filter %#x", ErrUnsupportedParameter, value)
		}
		tex.magFilter = value
	case rlgl.TextureMinFilter:
		switch value {
		case rlgl.FilterNearest, rlgl.FilterLinear, rlgl.FilterMipNearest,
			rlgl.FilterLinearMipNearest, rlgl.FilterNearestMipLinear, rlgl.FilterMipLinear:
			tex.minFilter = value
		default:
			return fmt.Errorf("%w: min filter %#x", ErrUnsupportedParameter, value)
		}
	case rlgl.TextureWrapS, rlgl.TextureWrapT:
		if value != rlgl.WrapRepeat && value != rlgl.WrapClamp && value != rlgl.WrapMirrorRepeat {
			return fmt.Errorf("%w: wrap %#x", ErrUnsupportedParameter, value)
		}
		if param == rlgl.TextureWrapS {
			tex.wrapS = value
		} else {
			tex.wrapT = value
		}
	default:
		return fmt.Errorf("%w: %#x", ErrUnsupportedParameter, int32(param))
	}
	return nil
}

// texel fetches level 0 texel (x, y), with y counted from the top row.
func (t *texture) texel(x, y int) color.NRGBA {
	if t.bpp == 0 || len(t.levels) == 0 {
		return color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	off := swizzle.TexelOffset(x, y, t.desc.Width, t.desc.Height) * t.bpp
	return decodeTexel(t.desc.Format, t.levels[0][off:off+t.bpp])
}

// wrap maps texel coordinate i into [0, n).
func wrap(i, n int, mode int32) int {
	switch mode {
	case rlgl.WrapRepeat:
		i %= n
		if i < 0 {
			i += n
		}
	case rlgl.WrapMirrorRepeat:
		p := 2 * n
		i %= p
		if i < 0 {
			i += p
		}
		if i >= n {
			i = p - 1 - i
		}
	default:
		i = min(max(i, 0), n-1)
	}
	return i
}

// sample returns the filtered texture color at (u, v) as floats in 0..1.
func (t *texture) sample(u, v float32) [4]float32 {
	w, h := t.desc.Width, t.desc.Height
	fx, fy := u*float32(w), v*float32(h)

	if t.magFilter != rlgl.FilterLinear {
		x := wrap(int(math.Floor(float64(fx))), w, t.wrapS)
		y := wrap(int(math.Floor(float64(fy))), h, t.wrapT)
		return toFloat(t.texel(x, y))
	}

	fx, fy = fx-0.5, fy-0.5
	x0, y0 := int(math.Floor(float64(fx))), int(math.Floor(float64(fy)))
	ax, ay := fx-float32(x0), fy-float32(y0)
	xa, xb := wrap(x0, w, t.wrapS), wrap(x0+1, w, t.wrapS)
	ya, yb := wrap(y0, h, t.wrapT), wrap(y0+1, h, t.wrapT)

	c00, c10 := toFloat(t.texel(xa, ya)), toFloat(t.texel(xb, ya))
	c01, c11 := toFloat(t.texel(xa, yb)), toFloat(t.texel(xb, yb))
	var out [4]float32
	for i := range out {
		top := c00[i] + (c10[i]-c00[i])*ax
		bottom := c01[i] + (c11[i]-c01[i])*ax
		out[i] = top + (bottom-top)*ay
	}
	return out
}

func toFloat(c color.NRGBA) [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}
