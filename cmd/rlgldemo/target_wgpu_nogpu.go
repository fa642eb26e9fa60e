// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build nogpu

package main

import "fmt"

func openWGPU() (*target, error) {
	return nil, fmt.Errorf("wgpu: %w (nogpu)", errNotBuilt)
}
