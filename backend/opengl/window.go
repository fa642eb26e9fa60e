// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cgo && !nogpu

package opengl

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window with a current OpenGL 2.1 context. All methods
// must be called from the thread that opened it.
type Window struct {
	win           *glfw.Window
	width, height int
}

// OpenWindow initializes GLFW and opens a window whose context is made
// current on the calling thread. An invisible window serves offscreen
// rendering.
func OpenWindow(width, height int, title string, visible bool) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("opengl: failed to initialize glfw: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.DepthBits, 24)
	if visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("opengl: failed to create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	// The framebuffer can be larger than the window on high-DPI displays.
	fw, fh := win.GetFramebufferSize()
	return &Window{win: win, width: fw, height: fh}, nil
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) { return w.width, w.height }

// Backend returns a backend presenting to the window.
func (w *Window) Backend(opts ...Option) *Backend {
	return New(append([]Option{WithPresent(w.win.SwapBuffers)}, opts...)...)
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// PollEvents processes pending window events.
func (w *Window) PollEvents() { glfw.PollEvents() }

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
