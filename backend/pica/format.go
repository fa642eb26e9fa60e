// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pica

import (
	"fmt"
	"image/color"

	"github.com/gogpu/rlgl"
	"github.com/gogpu/rlgl/internal/pixel"
)

// TexColor is a texture color format of the PICA200 texture unit.
type TexColor uint8

// Texture unit formats, with their register values.
const (
	TexRGBA8    TexColor = 0x0 // 8-bit red, green, blue and alpha
	TexRGB8     TexColor = 0x1 // 8-bit red, green and blue
	TexRGBA5551 TexColor = 0x2 // 5-bit color, 1-bit alpha
	TexRGB565   TexColor = 0x3 // 5-bit red and blue, 6-bit green
	TexRGBA4    TexColor = 0x4 // 4-bit red, green, blue and alpha
	TexLA8      TexColor = 0x5 // 8-bit luminance and alpha
	TexHILO8    TexColor = 0x6 // 8-bit hi/lo pair
	TexL8       TexColor = 0x7 // 8-bit luminance
	TexA8       TexColor = 0x8 // 8-bit alpha
	TexLA4      TexColor = 0x9 // 4-bit luminance and alpha
	TexL4       TexColor = 0xA // 4-bit luminance
	TexA4       TexColor = 0xB // 4-bit alpha
	TexETC1     TexColor = 0xC // ETC1 compressed
	TexETC1A4   TexColor = 0xD // ETC1 with 4-bit alpha
)

var texColorNames = [...]string{
	"RGBA8", "RGB8", "RGBA5551", "RGB565", "RGBA4", "LA8", "HILO8",
	"L8", "A8", "LA4", "L4", "A4", "ETC1", "ETC1A4",
}

func (c TexColor) String() string {
	if int(c) < len(texColorNames) {
		return texColorNames[c]
	}
	return fmt.Sprintf("TexColor(%d)", c)
}

// BitsPerPixel returns the storage size of one texel in bits, 0 for an
// unknown format.
func (c TexColor) BitsPerPixel() int {
	switch c {
	case TexRGBA8:
		return 32
	case TexRGB8:
		return 24
	case TexRGBA5551, TexRGB565, TexRGBA4, TexLA8, TexHILO8:
		return 16
	case TexL8, TexA8, TexLA4:
		return 8
	case TexL4, TexA4, TexETC1, TexETC1A4:
		return 4
	}
	return 0
}

// formatTable maps rlgl pixel formats to texture unit formats. Formats
// without an entry cannot be stored.
var formatTable = map[rlgl.PixelFormat]TexColor{
	rlgl.PixelFormatGrayscale: TexL8,
	rlgl.PixelFormatGrayAlpha: TexLA8,
	rlgl.PixelFormatR5G6B5:    TexRGB565,
	rlgl.PixelFormatR8G8B8:    TexRGB8,
	rlgl.PixelFormatR5G5B5A1:  TexRGBA5551,
	rlgl.PixelFormatR4G4B4A4:  TexRGBA4,
	rlgl.PixelFormatR8G8B8A8:  TexRGBA8,
	rlgl.PixelFormatETC1RGB:   TexETC1,
}

// TextureFormat returns the texture unit format of f.
func TextureFormat(f rlgl.PixelFormat) (TexColor, bool) {
	c, ok := formatTable[f]
	return c, ok
}

// SupportedFormats returns the rlgl formats the backend stores, in rlgl
// enum order.
func SupportedFormats() []rlgl.PixelFormat {
	out := make([]rlgl.PixelFormat, 0, len(formatTable))
	for f := rlgl.PixelFormatGrayscale; f <= rlgl.PixelFormatASTC8x8RGBA; f++ {
		if _, ok := formatTable[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// decodeTexel converts one stored texel to a color. Stored texels have
// their bytes reversed relative to the linear rlgl encoding.
func decodeTexel(f rlgl.PixelFormat, stored []byte) color.NRGBA {
	var b [4]byte
	n := min(len(stored), len(b))
	for i := 0; i < n; i++ {
		b[i] = stored[len(stored)-1-i]
	}
	return pixel.Decode(f, b[:n])
}
