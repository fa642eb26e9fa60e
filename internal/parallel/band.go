// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package parallel

import "image"

// Bands splits r into at most n horizontal bands of at least minHeight
// rows. The bands cover r exactly, top to bottom. An empty r yields no
// bands.
func Bands(r image.Rectangle, n, minHeight int) []image.Rectangle {
	if r.Empty() {
		return nil
	}
	h := r.Dy()
	n = min(max(n, 1), max(h/max(minHeight, 1), 1))

	bands := make([]image.Rectangle, 0, n)
	y := r.Min.Y
	for i := range n {
		// Spread the remainder over the first bands.
		rows := h / n
		if i < h%n {
			rows++
		}
		bands = append(bands, image.Rect(r.Min.X, y, r.Max.X, y+rows))
		y += rows
	}
	return bands
}
