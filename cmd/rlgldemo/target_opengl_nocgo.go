// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !cgo || nogpu

package main

import "fmt"

func openOpenGL(int, int) (*target, error) {
	return nil, fmt.Errorf("opengl: %w (needs cgo)", errNotBuilt)
}
