// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu is an rlgl backend on top of the gogpu/wgpu HAL.
//
// Batches are drawn with one WGSL render pipeline per combination of blend
// mode, depth state, culling and primitive type. Every texture is stored as
// RGBA8 whatever its rlgl format, and every draw samples one texture; draws
// without a texture sample a white texel.
//
// The backend renders offscreen. Present submits the frame and reads the
// color target back, so the result is available from Backend.Image:
//
//	b := wgpu.New()
//	ctx, err := rlgl.New(800, 600, rlgl.WithBackend(b))
//	...
//	ctx.EndFrame()
//	img := b.Image()
//
// A device owned by an application, such as a gogpu window, is shared with
// NewFromProvider. Without one, Init opens a Vulkan device.
//
// Build with the nogpu tag to leave the package out.
package wgpu
