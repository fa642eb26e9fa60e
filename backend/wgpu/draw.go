// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rlgl"
)

// frameEncoder records the passes of one frame. Objects referenced by
// recorded passes are destroyed after the frame is submitted.
type frameEncoder struct {
	enc     hal.CommandEncoder
	garbage []func()
}

// encoder returns the encoder of the current frame, starting one if
// needed.
func (b *Backend) encoder() (*frameEncoder, error) {
	if b.frame != nil {
		return b.frame, nil
	}
	enc, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "rlgl_frame"})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding("rlgl_frame"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	b.frame = &frameEncoder{enc: enc}
	return b.frame, nil
}

// submit sends the recorded passes and waits for them.
func (b *Backend) submit() error {
	f := b.frame
	if f == nil {
		return nil
	}
	b.frame = nil
	err := b.finish(f.enc)
	for _, g := range f.garbage {
		g()
	}
	return err
}

// finish ends enc, submits it and waits on a fence.
func (b *Backend) finish(enc hal.CommandEncoder) error {
	cmd, err := enc.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmd)

	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmd}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	ok, err := b.device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// clipRects converts the bottom-left viewport and scissor of s to top-left
// rectangles in a target of height h. clip is the area pixels may be
// written to.
func clipRects(s rlgl.RenderState, w, h int) (vp, clip image.Rectangle) {
	flip := func(r rlgl.Rect) image.Rectangle {
		return image.Rect(r.X, h-(r.Y+r.Height), r.X+r.Width, h-r.Y)
	}
	vp = flip(s.Viewport)
	clip = vp.Intersect(image.Rect(0, 0, w, h))
	if s.Scissor {
		clip = clip.Intersect(flip(s.ScissorRect))
	}
	return vp, clip
}

// wireframe expands a triangle list into the line list of its edges.
func wireframe(v []rlgl.Vertex) []rlgl.Vertex {
	out := make([]rlgl.Vertex, 0, len(v)/3*6)
	for i := 0; i+3 <= len(v); i += 3 {
		a, b, c := v[i], v[i+1], v[i+2]
		out = append(out, a, b, b, c, c, a)
	}
	return out
}

// vertexBytes packs vertices in the layout of the vertex shader input.
func vertexBytes(v []rlgl.Vertex) []byte {
	out := make([]byte, len(v)*vertexStride)
	for i := range v {
		var f [floatsPerVertex]float32
		copy(f[0:4], v[i].Position[:])
		copy(f[4:6], v[i].TexCoord[:2])
		copy(f[6:10], v[i].Color[:])
		for k, x := range f {
			binary.LittleEndian.PutUint32(out[i*vertexStride+k*4:], math.Float32bits(x))
		}
	}
	return out
}

// matrixBytes packs m column-major, the layout of a WGSL mat4x4.
func matrixBytes(m rlgl.Matrix) []byte {
	out := make([]byte, uniformSize)
	for i, x := range m {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(x))
	}
	return out
}

// Draw records one render pass for cmd into the current frame.
func (b *Backend) Draw(cmd *rlgl.DrawCommand) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return ErrNotInitialized
	}
	if cmd.Screen != rlgl.ScreenTop {
		return fmt.Errorf("%w: %v", ErrUnsupportedScreen, cmd.Screen)
	}

	verts, lines := cmd.Vertices, false
	switch cmd.Mode {
	case rlgl.Triangles:
		verts = verts[:len(verts)/3*3]
		if cmd.State.Wire {
			verts, lines = wireframe(verts), true
		}
	case rlgl.Lines:
		verts, lines = verts[:len(verts)/2*2], true
	default:
		return fmt.Errorf("wgpu: unsupported primitive %v", cmd.Mode)
	}
	if len(verts) == 0 {
		return nil
	}
	vp, clip := clipRects(cmd.State, b.width, b.height)
	if clip.Empty() {
		return nil
	}

	tex := b.white
	if cmd.Texture != nil {
		t, err := b.lookup(cmd.Texture)
		if err != nil {
			return err
		}
		tex = t
	}
	pipeline, err := b.pipelines.pipeline(keyFor(cmd.State, lines))
	if err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}
	sampler, err := b.pipelines.sampler(tex)
	if err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}

	data := vertexBytes(verts)
	vb, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rlgl_vertices",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create vertex buffer: %w", err)
	}
	b.queue.WriteBuffer(vb, 0, data)

	ub, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rlgl_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		b.device.DestroyBuffer(vb)
		return fmt.Errorf("wgpu: create uniform buffer: %w", err)
	}
	b.queue.WriteBuffer(ub, 0, matrixBytes(cmd.Projection.Multiply(cmd.Modelview)))

	bg, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "rlgl_bind_group",
		Layout: b.pipelines.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Offset: 0, Size: uniformSize}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: tex.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: sampler.NativeHandle()}},
		},
	})
	if err != nil {
		b.device.DestroyBuffer(ub)
		b.device.DestroyBuffer(vb)
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}

	f, err := b.encoder()
	if err != nil {
		b.device.DestroyBindGroup(bg)
		b.device.DestroyBuffer(ub)
		b.device.DestroyBuffer(vb)
		return err
	}
	f.garbage = append(f.garbage, func() {
		b.device.DestroyBindGroup(bg)
		b.device.DestroyBuffer(ub)
		b.device.DestroyBuffer(vb)
	})

	rp := f.enc.BeginRenderPass(b.passDescriptor("rlgl_draw", gputypes.LoadOpLoad, color.RGBA{}))
	rp.SetPipeline(pipeline)
	rp.SetBindGroup(0, bg, nil)
	rp.SetVertexBuffer(0, vb, 0)
	rp.SetViewport(float32(vp.Min.X), float32(vp.Min.Y), float32(vp.Dx()), float32(vp.Dy()), 0, 1)
	rp.SetScissorRect(uint32(clip.Min.X), uint32(clip.Min.Y), uint32(clip.Dx()), uint32(clip.Dy())) //nolint:gosec // inside target
	rp.Draw(uint32(len(verts)), 1, 0, 0)                                                               //nolint:gosec // batch sized
	rp.End()
	return nil
}

// passDescriptor returns a pass over the render target that loads or
// clears both attachments.
func (b *Backend) passDescriptor(label string, load gputypes.LoadOp, c color.RGBA) *hal.RenderPassDescriptor {
	return &hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    b.target.colorView,
			LoadOp:  load,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255,
			},
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            b.target.depthView,
			DepthLoadOp:     load,
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: 1.0,
		},
	}
}

// Clear records a pass that clears the color target to c and the depth
// target to the far plane.
func (b *Backend) Clear(s rlgl.Screen, c color.RGBA) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return ErrNotInitialized
	}
	if s != rlgl.ScreenTop {
		return fmt.Errorf("%w: %v", ErrUnsupportedScreen, s)
	}
	f, err := b.encoder()
	if err != nil {
		return err
	}
	rp := f.enc.BeginRenderPass(b.passDescriptor("rlgl_clear", gputypes.LoadOpClear, c))
	rp.End()
	return nil
}

// Present submits the frame and reads the color target back into the
// image returned by Image.
func (b *Backend) Present() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return ErrNotInitialized
	}
	if err := b.submit(); err != nil {
		return err
	}
	if b.image == nil || b.image.Rect.Dx() != b.width || b.image.Rect.Dy() != b.height {
		b.image = image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	}
	if err := b.readback(b.image); err != nil {
		return err
	}
	b.frames++
	return nil
}
