// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// depthFormat is the format of the depth attachment.
const depthFormat = gputypes.TextureFormatDepth24Plus

// copyPitchAlignment is the row alignment of texture to buffer copies.
const copyPitchAlignment = 256

// renderTarget is the offscreen color and depth attachment pair.
type renderTarget struct {
	color     hal.Texture
	colorView hal.TextureView
	depth     hal.Texture
	depthView hal.TextureView
	format    gputypes.TextureFormat
	width     uint32
	height    uint32
}

// ensure creates the attachments, or recreates them when the size or
// format changed.
func (rt *renderTarget) ensure(device hal.Device, w, h uint32, format gputypes.TextureFormat) error {
	if rt.color != nil && rt.width == w && rt.height == h && rt.format == format {
		return nil
	}
	rt.destroy(device)

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	color, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "rlgl_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color target: %w", err)
	}
	rt.color = color

	colorView, err := device.CreateTextureView(color, &hal.TextureViewDescriptor{Label: "rlgl_color_view"})
	if err != nil {
		rt.destroy(device)
		return fmt.Errorf("create color view: %w", err)
	}
	rt.colorView = colorView

	depth, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "rlgl_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		rt.destroy(device)
		return fmt.Errorf("create depth target: %w", err)
	}
	rt.depth = depth

	depthView, err := device.CreateTextureView(depth, &hal.TextureViewDescriptor{Label: "rlgl_depth_view"})
	if err != nil {
		rt.destroy(device)
		return fmt.Errorf("create depth view: %w", err)
	}
	rt.depthView = depthView

	rt.format, rt.width, rt.height = format, w, h
	return nil
}

func (rt *renderTarget) destroy(device hal.Device) {
	if device == nil {
		return
	}
	if rt.depthView != nil {
		device.DestroyTextureView(rt.depthView)
		rt.depthView = nil
	}
	if rt.depth != nil {
		device.DestroyTexture(rt.depth)
		rt.depth = nil
	}
	if rt.colorView != nil {
		device.DestroyTextureView(rt.colorView)
		rt.colorView = nil
	}
	if rt.color != nil {
		device.DestroyTexture(rt.color)
		rt.color = nil
	}
	rt.width, rt.height = 0, 0
}

// readback copies the color target into img, which must match its size.
func (b *Backend) readback(img *image.RGBA) error {
	rt := &b.target
	w, h := rt.width, rt.height
	bytesPerRow := w * 4
	aligned := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	size := uint64(aligned) * uint64(h)

	staging, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rlgl_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(staging)

	enc, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "rlgl_readback"})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding("rlgl_readback"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: rt.color,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	enc.CopyTextureToBuffer(rt.color, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: aligned, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: rt.color, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: rt.color,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
	if err := b.finish(enc); err != nil {
		return err
	}

	data := make([]byte, size)
	if err := b.queue.ReadBuffer(staging, 0, data); err != nil {
		return fmt.Errorf("wgpu: readback: %w", err)
	}
	for row := 0; row < int(h); row++ {
		src := data[row*int(aligned) : row*int(aligned)+int(bytesPerRow)]
		dst := img.Pix[row*img.Stride : row*img.Stride+int(bytesPerRow)]
		copy(dst, src)
		if rt.format == gputypes.TextureFormatBGRA8Unorm {
			for i := 0; i < len(dst); i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	return nil
}
