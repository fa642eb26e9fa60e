// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pica is a software model of the PICA200 GPU as an rlgl backend.
//
// The backend renders to two fixed size screens, 400x240 on top and
// 320x240 on the bottom, and stores textures in the 8x8 tiled layout of
// the texture unit. It mirrors the hardware conventions rlgl has to deal
// with on that target:
//
//   - matrices are uploaded with every column reversed, see MatrixLayout
//   - the clear value is packed as 0xRRGGBBAA, see PackClearColor
//   - the depth test keeps fragments at or beyond the stored depth
//   - textures must be power of two sized between 8 and 1024 texels
//
// Importing the package registers the backend under backend.BackendPica:
//
//	import _ "github.com/gogpu/rlgl/backend/pica"
//
//	ctx, err := backend.NewContext(400, 240)
//
// Rendered screens are read back with Backend.Image after a frame ends.
// WithWorkers spreads the rasterization of each draw over several
// goroutines.
package pica
