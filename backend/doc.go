// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides the registry of rlgl rendering backends.
//
// Backend packages register a factory from their init() function, so
// importing a backend for its side effect makes it available:
//
//	import _ "github.com/gogpu/rlgl/backend/pica"
//
// # Backend Selection
//
// Default creates the first backend in the order wgpu, opengl, pica,
// followed by any other registered name. Setting RLGL_BACKEND restricts
// it to one backend. Get requests a backend by name:
//
//	b, err := backend.Default()
//	b, err := backend.Get("pica")
//
// The returned backend is not initialized. Hand it to [rlgl.New], which
// initializes it and owns it from then on:
//
//	ctx, err := rlgl.New(400, 240, rlgl.WithBackend(b))
//
// # Available Backends
//
//   - "pica": software model of the PICA200 GPU (always available)
//   - "wgpu": WebGPU through gogpu/wgpu HAL (not with the nogpu tag)
//   - "opengl": legacy OpenGL 2.1 through go-gl (needs cgo and a current
//     GL context)
package backend
