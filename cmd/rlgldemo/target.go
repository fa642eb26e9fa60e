// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/backend"
	"github.com/gogpu/rlgl/backend/pica"
)

var errNotBuilt = errors.New("backend not built into this binary")

// target is a backend together with the way its frames are read back.
type target struct {
	backend   rlgl.Backend
	snapshot  func(s rlgl.Screen) *image.RGBA
	hasBottom bool
	close     func()
}

func openTarget(o options) (*target, error) {
	switch o.backend {
	case backend.BackendPica:
		b := pica.New(pica.WithScreens(image.Pt(o.width, o.height), pica.BottomScreenSize), pica.WithWorkers(o.workers))
		return &target{backend: b, snapshot: b.Image, hasBottom: true, close: func() {}}, nil
	case backend.BackendWGPU:
		return openWGPU()
	case backend.BackendOpenGL:
		return openOpenGL(o.width, o.height)
	}
	return nil, fmt.Errorf("unknown backend %q, registered: %v", o.backend, backend.Available())
}
