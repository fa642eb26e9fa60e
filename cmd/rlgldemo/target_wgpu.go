// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package main

import (
	"image"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/backend/wgpu"
)

func openWGPU() (*target, error) {
	b := wgpu.New()
	return &target{
		backend:  b,
		snapshot: func(rlgl.Screen) *image.RGBA { return b.Image() },
		close:    func() {},
	}, nil
}
