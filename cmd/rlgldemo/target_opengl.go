// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cgo && !nogpu

package main

import (
	"image"
	"runtime"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/backend/opengl"
)

// openOpenGL renders into a hidden window. The backend has no present
// hook, so the back buffer is still readable after EndFrame.
func openOpenGL(width, height int) (*target, error) {
	runtime.LockOSThread()
	win, err := opengl.OpenWindow(width, height, "rlgldemo", false)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	b := opengl.New()
	return &target{
		backend:  b,
		snapshot: func(rlgl.Screen) *image.RGBA { return b.ReadPixels() },
		close: func() {
			win.Close()
			runtime.UnlockOSThread()
		},
	}, nil
}
