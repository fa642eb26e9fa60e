// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/internal/pixel"
)

// texture is an RGBA8 GPU texture with a CPU copy of every level. The
// copy serves partial updates and mipmap generation.
type texture struct {
	owner  *Backend
	desc   rlgl.TextureDesc
	tex    hal.Texture
	view   hal.TextureView
	levels []*image.NRGBA

	magFilter, minFilter int32
	wrapS, wrapT         int32
}

func (b *Backend) lookup(t rlgl.Texture) (*texture, error) {
	tex, ok := t.(*texture)
	if !ok || tex.owner != b || tex.tex == nil {
		return nil, ErrForeignTexture
	}
	return tex, nil
}

// newTexture decodes every level of data and uploads the chain.
func (b *Backend) newTexture(desc rlgl.TextureDesc, data []byte) (*texture, error) {
	if !pixel.Supported(desc.Format) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, desc.Format)
	}
	n := max(desc.Mipmaps, 1)
	if need := desc.Format.MipChainSize(desc.Width, desc.Height, n); len(data) < need {
		return nil, fmt.Errorf("wgpu: texture data has %d bytes, want %d", len(data), need)
	}

	t := &texture{
		owner:     b,
		desc:      desc,
		magFilter: rlgl.FilterLinear,
		minFilter: rlgl.FilterNearest,
		wrapS:     rlgl.WrapClamp,
		wrapT:     rlgl.WrapClamp,
	}
	w, h, off := desc.Width, desc.Height, 0
	for i := 0; i < n; i++ {
		img, err := pixel.ToNRGBA(desc.Format, data[off:], w, h)
		if err != nil {
			return nil, err
		}
		t.levels = append(t.levels, img)
		off += desc.Format.DataSize(w, h)
		w, h = max(w/2, 1), max(h/2, 1)
	}
	t.desc.Mipmaps = n
	if err := b.allocate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// allocate creates the GPU texture of t for its current level count and
// uploads every level.
func (b *Backend) allocate(t *texture) error {
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "rlgl_texture",
		Size:          hal.Extent3D{Width: uint32(t.desc.Width), Height: uint32(t.desc.Height), DepthOrArrayLayers: 1}, //nolint:gosec // sizes validated by rlgl
		MipLevelCount: uint32(len(t.levels)),                                                                             //nolint:gosec // small
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create texture: %w", err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "rlgl_texture_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: uint32(len(t.levels)), //nolint:gosec // small
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create texture view: %w", err)
	}
	t.tex, t.view = tex, view
	for i, img := range t.levels {
		b.upload(t, i, img.Rect)
	}
	return nil
}

// upload copies rect of level i to the GPU.
func (b *Backend) upload(t *texture, level int, rect image.Rectangle) {
	img := t.levels[level]
	sub := img.SubImage(rect).(*image.NRGBA)
	b.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: uint32(level),                                             //nolint:gosec // small
			Origin:   hal.Origin3D{X: uint32(rect.Min.X), Y: uint32(rect.Min.Y)}, //nolint:gosec // inside texture
		},
		sub.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(sub.Stride), //nolint:gosec // small
			RowsPerImage: uint32(rect.Dy()),  //nolint:gosec // small
		},
		&hal.Extent3D{Width: uint32(rect.Dx()), Height: uint32(rect.Dy()), DepthOrArrayLayers: 1}, //nolint:gosec // small
	)
}

// release destroys the GPU objects of t.
func (t *texture) release(device hal.Device) {
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

func (t *texture) destroy(device hal.Device) {
	t.release(device)
	t.levels = nil
}

// CreateTexture converts data to RGBA8 and uploads every level.
func (b *Backend) CreateTexture(desc rlgl.TextureDesc, data []byte) (rlgl.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return nil, ErrNotInitialized
	}
	t, err := b.newTexture(desc, data)
	if err != nil {
		return nil, err
	}
	b.textures++
	return t, nil
}

// UpdateTexture replaces the level 0 texels of rect.
func (b *Backend) UpdateTexture(t rlgl.Texture, rect image.Rectangle, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.lookup(t)
	if err != nil {
		return err
	}
	src, err := pixel.ToNRGBA(tex.desc.Format, data, rect.Dx(), rect.Dy())
	if err != nil {
		return fmt.Errorf("wgpu: update texture: %w", err)
	}
	// Draws recorded so far sample the old texels.
	if err := b.submit(); err != nil {
		return err
	}
	draw.Draw(tex.levels[0], rect, src, image.Point{}, draw.Src)
	b.upload(tex, 0, rect)
	return nil
}

// DestroyTexture frees a texture once pending draws have completed.
func (b *Backend) DestroyTexture(t rlgl.Texture) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.lookup(t)
	if err != nil {
		return
	}
	if err := b.submit(); err != nil {
		b.log.Warn("wgpu: submit before texture destroy failed", "error", err)
	}
	tex.destroy(b.device)
	b.textures--
}

// GenerateMipmaps rebuilds the chain from level 0 down to 1x1 with a
// bilinear filter and reallocates the GPU texture.
func (b *Backend) GenerateMipmaps(t rlgl.Texture) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.lookup(t)
	if err != nil {
		return 0, err
	}
	levels := tex.levels[:1]
	w, h := tex.desc.Width, tex.desc.Height
	for w > 1 || h > 1 {
		w, h = max(w/2, 1), max(h/2, 1)
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		prev := levels[len(levels)-1]
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), prev, prev.Bounds(), draw.Src, nil)
		levels = append(levels, dst)
	}

	if err := b.submit(); err != nil {
		return len(tex.levels), err
	}
	old := *tex
	tex.levels = levels
	tex.desc.Mipmaps = len(levels)
	if err := b.allocate(tex); err != nil {
		*tex = old
		return len(tex.levels), err
	}
	old.release(b.device)
	return len(levels), nil
}

// SetTextureParameter sets a filter or wrap mode. Mirror clamp has no
// WebGPU address mode.
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
		case rlgl.FilterNearest, rlgl.FilterLinear, rlgl.FilterMipNearest, rlgl.FilterLinearMipNearest,
			rlgl.FilterNearestMipLinear, rlgl.FilterMipLinear, rlgl.FilterAnisotropic:
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
