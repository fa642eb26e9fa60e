// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package opengl renders rlgl batches with the legacy OpenGL 2.1 fixed
// function pipeline through go-gl.
//
// Matrices are loaded with glLoadMatrixf and vertices are drawn from
// client-side arrays, so the backend needs no shaders. A GL context must
// be current on the calling thread before rlgl.New initializes the
// backend. OpenWindow creates one with GLFW:
//
//	runtime.LockOSThread()
//	win, err := opengl.OpenWindow(800, 450, "rlgl", true)
//	if err != nil {
//		return err
//	}
//	defer win.Close()
//	ctx, err := rlgl.New(800, 450, rlgl.WithBackend(win.Backend()))
//
// Textures keep a CPU copy of level 0 for mipmap generation, which GL 2.1
// lacks as an entry point. Compressed formats are not supported.
//
// The package needs cgo and is excluded by the nogpu build tag.
package opengl
