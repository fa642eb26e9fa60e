// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cgo && !nogpu

package opengl

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v2.1/gl"
	"golang.org/x/image/draw"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/internal/pixel"
)

// texFormat is the upload format of an rlgl pixel format.
type texFormat struct {
	internal int32
	format   uint32
	xtype    uint32
}

// textureFormat maps f to its GL 2.1 upload format. The 16-bit rlgl
// encodings are native-endian words, which is what the packed GL types
// read.
func textureFormat(f rlgl.PixelFormat) (texFormat, bool) {
	switch f {
	case rlgl.PixelFormatGrayscale:
		return texFormat{gl.LUMINANCE, gl.LUMINANCE, gl.UNSIGNED_BYTE}, true
	case rlgl.PixelFormatGrayAlpha:
		return texFormat{gl.LUMINANCE_ALPHA, gl.LUMINANCE_ALPHA, gl.UNSIGNED_BYTE}, true
	case rlgl.PixelFormatR5G6B5:
		return texFormat{gl.RGB, gl.RGB, gl.UNSIGNED_SHORT_5_6_5}, true
	case rlgl.PixelFormatR8G8B8:
		return texFormat{gl.RGB, gl.RGB, gl.UNSIGNED_BYTE}, true
	case rlgl.PixelFormatR5G5B5A1:
		return texFormat{gl.RGBA, gl.RGBA, gl.UNSIGNED_SHORT_5_5_5_1}, true
	case rlgl.PixelFormatR4G4B4A4:
		return texFormat{gl.RGBA, gl.RGBA, gl.UNSIGNED_SHORT_4_4_4_4}, true
	case rlgl.PixelFormatR8G8B8A8:
		return texFormat{gl.RGBA, gl.RGBA, gl.UNSIGNED_BYTE}, true
	}
	return texFormat{}, false
}

// texture is a GL texture object with level 0 kept on the CPU.
type texture struct {
	owner  *Backend
	id     uint32
	desc   rlgl.TextureDesc
	fmt    texFormat
	level0 []byte
}

func (b *Backend) lookup(t rlgl.Texture) (*texture, error) {
	tex, ok := t.(*texture)
	if !ok || tex.owner != b || tex.id == 0 {
		return nil, ErrForeignTexture
	}
	return tex, nil
}

// bind binds tex to GL_TEXTURE_2D and returns a function restoring the
// previous binding.
func bind(id uint32) func() {
	var last int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &last)
	gl.BindTexture(gl.TEXTURE_2D, id)
	return func() { gl.BindTexture(gl.TEXTURE_2D, uint32(last)) } //nolint:gosec // GL names are unsigned
}

// CreateTexture uploads every level of data with glTexImage2D.
func (b *Backend) CreateTexture(desc rlgl.TextureDesc, data []byte) (rlgl.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return nil, ErrNotInitialized
	}
	tf, ok := textureFormat(desc.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, desc.Format)
	}
	levels := max(desc.Mipmaps, 1)
	if need := desc.Format.MipChainSize(desc.Width, desc.Height, levels); len(data) < need {
		return nil, fmt.Errorf("opengl: texture data has %d bytes, want %d", len(data), need)
	}

	tex := &texture{owner: b, desc: desc, fmt: tf}
	tex.desc.Mipmaps = levels
	tex.level0 = append([]byte(nil), data[:desc.Format.DataSize(desc.Width, desc.Height)]...)

	gl.GenTextures(1, &tex.id)
	restore := bind(tex.id)
	defer restore()

	w, h, off := desc.Width, desc.Height, 0
	for i := 0; i < levels; i++ {
		n := desc.Format.DataSize(w, h)
		gl.TexImage2D(gl.TEXTURE_2D, int32(i), tf.internal, int32(w), int32(h), 0, tf.format, tf.xtype, gl.Ptr(data[off:off+n])) //nolint:gosec // sizes validated by rlgl
		off += n
		w, h = max(w/2, 1), max(h/2, 1)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(levels-1)) //nolint:gosec // small
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	if err := glError("create texture"); err != nil {
		gl.DeleteTextures(1, &tex.id)
		return nil, err
	}
	b.textures++
	b.log.Debug("opengl: texture created", "id", tex.id, "size", image.Pt(desc.Width, desc.Height), "format", desc.Format)
	return tex, nil
}

// UpdateTexture replaces the level 0 texels of rect with glTexSubImage2D.
func (b *Backend) UpdateTexture(t rlgl.Texture, rect image.Rectangle, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.lookup(t)
	if err != nil {
		return err
	}
	bpp := tex.desc.Format.BytesPerPixel()
	if need := rect.Dx() * rect.Dy() * bpp; len(data) < need {
		return fmt.Errorf("opengl: update has %d bytes, want %d", len(data), need)
	}
	for y := 0; y < rect.Dy(); y++ {
		dst := ((rect.Min.Y+y)*tex.desc.Width + rect.Min.X) * bpp
		copy(tex.level0[dst:dst+rect.Dx()*bpp], data[y*rect.Dx()*bpp:])
	}

	restore := bind(tex.id)
	defer restore()
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(rect.Min.X), int32(rect.Min.Y), int32(rect.Dx()), int32(rect.Dy()), //nolint:gosec // inside texture
		tex.fmt.format, tex.fmt.xtype, gl.Ptr(data))
	return glError("update texture")
}

// DestroyTexture deletes the GL texture object.
func (b *Backend) DestroyTexture(t rlgl.Texture) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.lookup(t)
	if err != nil {
		return
	}
	gl.DeleteTextures(1, &tex.id)
	tex.id, tex.level0 = 0, nil
	b.textures--
}

// mipChain halves level 0 down to 1x1 with a bilinear filter.
func mipChain(level0 *image.NRGBA) []*image.NRGBA {
	chain := []*image.NRGBA{level0}
	w, h := level0.Rect.Dx(), level0.Rect.Dy()
	for w > 1 || h > 1 {
		w, h = max(w/2, 1), max(h/2, 1)
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		prev := chain[len(chain)-1]
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), prev, prev.Bounds(), draw.Src, nil)
		chain = append(chain, dst)
	}
	return chain
}

// GenerateMipmaps computes the chain on the CPU and uploads levels 1 and
// up as RGBA8. The internal format of the texture is kept.
func (b *Backend) GenerateMipmaps(t rlgl.Texture) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.lookup(t)
	if err != nil {
		return 0, err
	}
	img, err := pixel.ToNRGBA(tex.desc.Format, tex.level0, tex.desc.Width, tex.desc.Height)
	if err != nil {
		return tex.desc.Mipmaps, fmt.Errorf("opengl: %w", err)
	}
	chain := mipChain(img)

	restore := bind(tex.id)
	defer restore()
	for i := 1; i < len(chain); i++ {
		lv := chain[i]
		gl.TexImage2D(gl.TEXTURE_2D, int32(i), tex.fmt.internal, int32(lv.Rect.Dx()), int32(lv.Rect.Dy()), 0, //nolint:gosec // small
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(lv.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(len(chain)-1)) //nolint:gosec // small
	if err := glError("generate mipmaps"); err != nil {
		return tex.desc.Mipmaps, err
	}
	tex.desc.Mipmaps = len(chain)
	return len(chain), nil
}

// textureParameter validates a parameter and returns the GL value.
// GL 2.1 has neither anisotropic filtering nor mirror clamp in core;
// anisotropic filtering falls back to trilinear.
func textureParameter(param rlgl.TextureParam, value int32) (uint32, int32, error) {
	switch param {
	case rlgl.TextureMagFilter:
		if value != rlgl.FilterNearest && value != rlgl.FilterLinear {
			return 0, 0, fmt.Errorf("%w: mag filter %#x", ErrUnsupportedParameter, value)
		}
		return gl.TEXTURE_MAG_FILTER, value, nil
	case rlgl.TextureMinFilter:
		switch value {
		case rlgl.FilterNearest, rlgl.FilterLinear, rlgl.FilterMipNearest,
			rlgl.FilterLinearMipNearest, rlgl.FilterNearestMipLinear, rlgl.FilterMipLinear:
			return gl.TEXTURE_MIN_FILTER, value, nil
		case rlgl.FilterAnisotropic:
			return gl.TEXTURE_MIN_FILTER, rlgl.FilterMipLinear, nil
		}
		return 0, 0, fmt.Errorf("%w: min filter %#x", ErrUnsupportedParameter, value)
	case rlgl.TextureWrapS, rlgl.TextureWrapT:
		if value != rlgl.WrapRepeat && value != rlgl.WrapClamp && value != rlgl.WrapMirrorRepeat {
			return 0, 0, fmt.Errorf("%w: wrap %#x", ErrUnsupportedParameter, value)
		}
		return uint32(param), value, nil //nolint:gosec // GL enum
	}
	return 0, 0, fmt.Errorf("%w: %#x", ErrUnsupportedParameter, int32(param))
}

// SetTextureParameter sets a filter or wrap mode.
func (b *Backend) SetTextureParameter(t rlgl.Texture, param rlgl.TextureParam, value int32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.lookup(t)
	if err != nil {
		return err
	}
	pname, v, err := textureParameter(param, value)
	if err != nil {
		return err
	}
	restore := bind(tex.id)
	defer restore()
	gl.TexParameteri(gl.TEXTURE_2D, pname, v)
	return glError("texture parameter")
}
