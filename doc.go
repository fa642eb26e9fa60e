// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rlgl provides an immediate-mode, OpenGL 1.1 style drawing API on
// top of pluggable GPU backends.
//
// # Overview
//
// A [Context] is a render state machine in the spirit of raylib's rlgl:
//
//   - a legacy GL matrix stack (modelview, projection, a secondary
//     projection for a second screen, and a texture matrix)
//   - immediate-mode vertex submission with Begin, Vertex*, TexCoord2f,
//     Normal3f, Color* and End
//   - a render batch that groups submitted vertices into draw calls
//   - a texture table with small, recycled integer ids
//   - fixed-function state: blend mode, depth test, culling, scissor and
//     wire mode
//
// Vertices are assembled without an explicit "next vertex" call: writing
// an attribute that was already written for the current vertex completes
// it. Attributes that are not written keep their last value. Quads are
// expanded into two triangles for backends without a quad primitive.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/rlgl"
//	    "github.com/gogpu/rlgl/backend"
//	    _ "github.com/gogpu/rlgl/backend/pica"
//	)
//
//	b, err := backend.Get("pica")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx, err := rlgl.New(400, 240, rlgl.WithBackend(b))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	ctx.MatrixMode(rlgl.Projection)
//	ctx.LoadIdentity()
//	ctx.Ortho(0, 400, 240, 0, 0, 1)
//	ctx.MatrixMode(rlgl.Modelview)
//
//	ctx.Begin(rlgl.Quads)
//	ctx.Color4ub(255, 0, 0, 255)
//	ctx.Vertex2f(10, 10)
//	ctx.Vertex2f(10, 100)
//	ctx.Vertex2f(100, 100)
//	ctx.Vertex2f(100, 10)
//	ctx.End()
//	_ = ctx.EndFrame()
//
// # Backends
//
// Backends implement [Backend] and register with the backend package:
//
//   - backend/pica: software model of a tile-based handheld GPU with a
//     top and a bottom screen, swizzled texture storage and image output
//   - backend/wgpu: WebGPU through gogpu/wgpu HAL
//   - backend/opengl: fixed-function OpenGL 2.1 through go-gl
//
// # Errors and logging
//
// Nothing in the immediate-mode path returns an error: misuse is logged
// and tolerated. Resource and capacity operations are logged and also
// return sentinel errors (see errors.go). Logging goes through log/slog
// and is silent by default, see [SetLogger].
//
// # Thread Safety
//
// A Context is not safe for concurrent use.
package rlgl
