// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import "errors"

// Backend name constants.
const (
	// BackendWGPU is the name of the WebGPU backend (gogpu/wgpu HAL).
	BackendWGPU = "wgpu"
	// BackendOpenGL is the name of the fixed-function OpenGL 2.1 backend.
	BackendOpenGL = "opengl"
	// BackendPica is the name of the software PICA200 backend.
	BackendPica = "pica"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)
