// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rlgl"
)

//go:embed shaders/rlgl.wgsl
var shaderSource string

// Vertex buffer layout: position vec4, texcoord vec2, color vec4.
const (
	vertexStride    = 40
	uvOffset        = 16
	colorOffset     = 24
	uniformSize     = 64
	floatsPerVertex = vertexStride / 4
)

// pipelineKey selects one render pipeline. The fixed-function state a
// draw needs is baked into the pipeline.
type pipelineKey struct {
	blend     rlgl.BlendMode
	depthTest bool
	depthMask bool
	cull      bool
	lines     bool
}

func keyFor(s rlgl.RenderState, lines bool) pipelineKey {
	return pipelineKey{
		blend:     s.Blend,
		depthTest: s.DepthTest,
		depthMask: s.DepthMask,
		cull:      s.Cull,
		lines:     lines,
	}
}

// samplerKey selects one sampler.
type samplerKey struct {
	mag, min     int32
	wrapS, wrapT int32
}

// pipelineCache owns the shader, the layouts and every pipeline and
// sampler created so far.
type pipelineCache struct {
	device hal.Device
	format gputypes.TextureFormat

	shader     hal.ShaderModule
	layout     hal.BindGroupLayout
	pipeLayout hal.PipelineLayout

	pipelines map[pipelineKey]hal.RenderPipeline
	samplers  map[samplerKey]hal.Sampler
}

func newPipelineCache(device hal.Device, format gputypes.TextureFormat, spirv bool) (*pipelineCache, error) {
	pc := &pipelineCache{
		device:    device,
		format:    format,
		pipelines: make(map[pipelineKey]hal.RenderPipeline),
		samplers:  make(map[samplerKey]hal.Sampler),
	}

	source := hal.ShaderSource{WGSL: shaderSource}
	if spirv {
		code, err := compileSPIRV(shaderSource)
		if err != nil {
			return nil, err
		}
		source = hal.ShaderSource{SPIRV: code}
	}
	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "rlgl_shader",
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", err)
	}
	pc.shader = shader

	layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "rlgl_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		pc.destroy()
		return nil, fmt.Errorf("create bind group layout: %w", err)
	}
	pc.layout = layout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "rlgl_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{layout},
	})
	if err != nil {
		pc.destroy()
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}
	pc.pipeLayout = pipeLayout
	return pc, nil
}

// compileSPIRV compiles WGSL to SPIR-V words with naga.
func compileSPIRV(wgsl string) ([]uint32, error) {
	b, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V size %d is not a multiple of 4", len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}

// pipeline returns the pipeline for key, creating it on first use.
func (pc *pipelineCache) pipeline(key pipelineKey) (hal.RenderPipeline, error) {
	if p, ok := pc.pipelines[key]; ok {
		return p, nil
	}

	topology := gputypes.PrimitiveTopologyTriangleList
	if key.lines {
		topology = gputypes.PrimitiveTopologyLineList
	}
	cull := gputypes.CullModeNone
	if key.cull && !key.lines {
		cull = gputypes.CullModeBack
	}
	compare := gputypes.CompareFunctionAlways
	if key.depthTest {
		compare = gputypes.CompareFunctionLessEqual
	}
	blend := blendState(key.blend)

	p, err := pc.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("rlgl_pipeline_%v", key.blend),
		Layout: pc.pipeLayout,
		Vertex: hal.VertexState{
			Module:     pc.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{{
				ArrayStride: vertexStride,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes: []gputypes.VertexAttribute{
					{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
					{Format: gputypes.VertexFormatFloat32x2, Offset: uvOffset, ShaderLocation: 1},
					{Format: gputypes.VertexFormatFloat32x4, Offset: colorOffset, ShaderLocation: 2},
				},
			}},
		},
		Fragment: &hal.FragmentState{
			Module:     pc.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    pc.format,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: key.depthTest && key.depthMask,
			DepthCompare:      compare,
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  topology,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  cull,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}
	pc.pipelines[key] = p
	return p, nil
}

// blendState returns the blend equations of mode, matching the GL path.
func blendState(mode rlgl.BlendMode) gputypes.BlendState {
	over := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		Operation: gputypes.BlendOperationAdd,
	}
	switch mode {
	case rlgl.BlendAdditive:
		return gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: over,
		}
	case rlgl.BlendMultiplied:
		return gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDst,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: over,
		}
	case rlgl.BlendAddColors, rlgl.BlendSubtractColors:
		op := gputypes.BlendOperationAdd
		if mode == rlgl.BlendSubtractColors {
			op = gputypes.BlendOperationSubtract
		}
		c := gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOne,
			Operation: op,
		}
		return gputypes.BlendState{Color: c, Alpha: c}
	default:
		return gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: over,
		}
	}
}

// sampler returns the sampler for the parameters of t.
func (pc *pipelineCache) sampler(t *texture) (hal.Sampler, error) {
	key := samplerKey{mag: t.magFilter, min: t.minFilter, wrapS: t.wrapS, wrapT: t.wrapT}
	if s, ok := pc.samplers[key]; ok {
		return s, nil
	}
	minFilter, mipFilter := minFilterMode(key.min)
	s, err := pc.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "rlgl_sampler",
		AddressModeU: addressMode(key.wrapS),
		AddressModeV: addressMode(key.wrapT),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filterMode(key.mag),
		MinFilter:    minFilter,
		MipmapFilter: mipFilter,
		LodMaxClamp:  32,
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	pc.samplers[key] = s
	return s, nil
}

func filterMode(v int32) gputypes.FilterMode {
	if v == rlgl.FilterNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

// minFilterMode splits a GL minification filter into the WebGPU min and
// mipmap filters. Anisotropic filtering is sampled as trilinear.
func minFilterMode(v int32) (gputypes.FilterMode, gputypes.FilterMode) {
	switch v {
	case rlgl.FilterNearest, rlgl.FilterMipNearest:
		return gputypes.FilterModeNearest, gputypes.FilterModeNearest
	case rlgl.FilterNearestMipLinear:
		return gputypes.FilterModeNearest, gputypes.FilterModeLinear
	case rlgl.FilterLinear, rlgl.FilterLinearMipNearest:
		return gputypes.FilterModeLinear, gputypes.FilterModeNearest
	default:
		return gputypes.FilterModeLinear, gputypes.FilterModeLinear
	}
}

func addressMode(v int32) gputypes.AddressMode {
	switch v {
	case rlgl.WrapRepeat:
		return gputypes.AddressModeRepeat
	case rlgl.WrapMirrorRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

func (pc *pipelineCache) destroy() {
	for k, p := range pc.pipelines {
		pc.device.DestroyRenderPipeline(p)
		delete(pc.pipelines, k)
	}
	for k, s := range pc.samplers {
		pc.device.DestroySampler(s)
		delete(pc.samplers, k)
	}
	if pc.pipeLayout != nil {
		pc.device.DestroyPipelineLayout(pc.pipeLayout)
		pc.pipeLayout = nil
	}
	if pc.layout != nil {
		pc.device.DestroyBindGroupLayout(pc.layout)
		pc.layout = nil
	}
	if pc.shader != nil {
		pc.device.DestroyShaderModule(pc.shader)
		pc.shader = nil
	}
}
