// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package swizzle converts linear texel data to and from the 8x8 tiled
// layout used by tile-based texture units.
//
// The tiled layout stores the image as 8x8 tiles in row-major tile order.
// Inside a tile, pixel i (i = x + y*8 in tile coordinates) lands at
// position order[i], a Z-order curve over 2x2 blocks. Tile row 0 is the
// bottom of the image: source row height-1-r feeds tiled row r. The bytes
// of every pixel are stored in reverse order (RGBA is stored as ABGR).
package swizzle

import (
	"errors"
	"fmt"
)

// TileSize is the edge length of a tile in pixels.
const TileSize = 8

var (
	// ErrTileAlignment is returned when a dimension is not a multiple of TileSize.
	ErrTileAlignment = errors.New("swizzle: dimensions must be multiples of 8")

	// ErrShortBuffer is returned when a buffer is too small for the image.
	ErrShortBuffer = errors.New("swizzle: buffer too small")

	// ErrPixelSize is returned for pixel sizes other than 1 to 4 bytes.
	ErrPixelSize = errors.New("swizzle: unsupported bytes per pixel")
)

// order maps a pixel index inside a tile to its tiled position.
var order = [TileSize * TileSize]int{
	0, 1, 4, 5, 16, 17, 20, 21,
	2, 3, 6, 7, 18, 19, 22, 23,
	8, 9, 12, 13, 24, 25, 28, 29,
	10, 11, 14, 15, 26, 27, 30, 31,
	32, 33, 36, 37, 48, 49, 52, 53,
	34, 35, 38, 39, 50, 51, 54, 55,
	40, 41, 44, 45, 56, 57, 60, 61,
	42, 43, 46, 47, 58, 59, 62, 63,
}

// TexelOffset returns the tiled pixel index of the pixel at (x, y), where
// (0, 0) is the top-left pixel of the linear image.
func TexelOffset(x, y, width, height int) int {
	row := height - 1 - y
	tile := x/TileSize + (row/TileSize)*(width/TileSize)
	return tile*TileSize*TileSize + order[x%TileSize+(row%TileSize)*TileSize]
}

// Size returns the number of bytes an image of the given shape occupies.
func Size(width, height, bytesPerPixel int) int {
	return width * height * bytesPerPixel
}

// Swizzle writes the tiled form of the linear image src into dst.
func Swizzle(dst, src []byte, width, height, bytesPerPixel int) error {
	if err := check(dst, src, width, height, bytesPerPixel); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			s := (x + y*width) * bytesPerPixel
			d := TexelOffset(x, y, width, height) * bytesPerPixel
			for k := 0; k < bytesPerPixel; k++ {
				dst[d+bytesPerPixel-1-k] = src[s+k]
			}
		}
	}
	return nil
}

// Unswizzle writes the linear form of the tiled image src into dst.
// It is the exact inverse of Swizzle.
func Unswizzle(dst, src []byte, width, height, bytesPerPixel int) error {
	if err := check(dst, src, width, height, bytesPerPixel); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := (x + y*width) * bytesPerPixel
			s := TexelOffset(x, y, width, height) * bytesPerPixel
			for k := 0; k < bytesPerPixel; k++ {
				dst[d+k] = src[s+bytesPerPixel-1-k]
			}
		}
	}
	return nil
}

// SwizzleRect re-tiles the sub-rectangle (x, y, w, h) of a linear image
// into the tiled image dst of size width x height. src holds only the
// rectangle, tightly packed.
func SwizzleRect(dst, src []byte, width, height, x, y, w, h, bytesPerPixel int) error {
	if width%TileSize != 0 || height%TileSize != 0 {
		return ErrTileAlignment
	}
	if bytesPerPixel < 1 || bytesPerPixel > 4 {
		return fmt.Errorf("%w: %d", ErrPixelSize, bytesPerPixel)
	}
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > width || y+h > height {
		return fmt.Errorf("swizzle: rectangle %dx%d+%d+%d outside %dx%d", w, h, x, y, width, height)
	}
	if len(src) < Size(w, h, bytesPerPixel) || len(dst) < Size(width, height, bytesPerPixel) {
		return ErrShortBuffer
	}
	for ry := 0; ry < h; ry++ {
		for rx := 0; rx < w; rx++ {
			s := (rx + ry*w) * bytesPerPixel
			d := TexelOffset(x+rx, y+ry, width, height) * bytesPerPixel
			for k := 0; k < bytesPerPixel; k++ {
				dst[d+bytesPerPixel-1-k] = src[s+k]
			}
		}
	}
	return nil
}

func check(dst, src []byte, width, height, bytesPerPixel int) error {
	if width <= 0 || height <= 0 || width%TileSize != 0 || height%TileSize != 0 {
		return fmt.Errorf("%w: %dx%d", ErrTileAlignment, width, height)
	}
	if bytesPerPixel < 1 || bytesPerPixel > 4 {
		return fmt.Errorf("%w: %d", ErrPixelSize, bytesPerPixel)
	}
	n := Size(width, height, bytesPerPixel)
	if len(src) < n || len(dst) < n {
		return fmt.Errorf("%w: need %d bytes", ErrShortBuffer, n)
	}
	return nil
}
