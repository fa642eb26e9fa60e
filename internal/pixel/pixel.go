// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pixel converts between the uncompressed rlgl pixel formats and
// 8-bit NRGBA colors.
//
// Texels are in the linear rlgl encoding: bytes in memory order, 16-bit
// formats as little-endian words with red in the top bits.
package pixel

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/rlgl"
)

// Supported reports whether f can be converted.
func Supported(f rlgl.PixelFormat) bool {
	switch f {
	case rlgl.PixelFormatGrayscale, rlgl.PixelFormatGrayAlpha, rlgl.PixelFormatR5G6B5,
		rlgl.PixelFormatR8G8B8, rlgl.PixelFormatR5G5B5A1, rlgl.PixelFormatR4G4B4A4,
		rlgl.PixelFormatR8G8B8A8:
		return true
	}
	return false
}

// Decode converts one texel. Unsupported formats decode as opaque white.
func Decode(f rlgl.PixelFormat, p []byte) color.NRGBA {
	var b [4]byte
	copy(b[:], p)

	switch f {
	case rlgl.PixelFormatGrayscale:
		return color.NRGBA{R: b[0], G: b[0], B: b[0], A: 0xFF}
	case rlgl.PixelFormatGrayAlpha:
		return color.NRGBA{R: b[0], G: b[0], B: b[0], A: b[1]}
	case rlgl.PixelFormatR5G6B5:
		v := binary.LittleEndian.Uint16(b[:2])
		return color.NRGBA{R: Expand(v>>11, 5), G: Expand(v>>5&0x3F, 6), B: Expand(v&0x1F, 5), A: 0xFF}
	case rlgl.PixelFormatR8G8B8:
		return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xFF}
	case rlgl.PixelFormatR5G5B5A1:
		v := binary.LittleEndian.Uint16(b[:2])
		return color.NRGBA{R: Expand(v>>11, 5), G: Expand(v>>6&0x1F, 5), B: Expand(v>>1&0x1F, 5), A: uint8(v&1) * 0xFF}
	case rlgl.PixelFormatR4G4B4A4:
		v := binary.LittleEndian.Uint16(b[:2])
		return color.NRGBA{R: Expand(v>>12, 4), G: Expand(v>>8&0xF, 4), B: Expand(v>>4&0xF, 4), A: Expand(v&0xF, 4)}
	case rlgl.PixelFormatR8G8B8A8:
		return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
	}
	return color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
}

// Encode writes c to dst in format f. Channels are truncated to the
// format's precision.
func Encode(f rlgl.PixelFormat, c color.NRGBA, dst []byte) {
	var b [4]byte
	switch f {
	case rlgl.PixelFormatGrayscale:
		b[0] = Luma(c)
	case rlgl.PixelFormatGrayAlpha:
		b[0], b[1] = Luma(c), c.A
	case rlgl.PixelFormatR5G6B5:
		binary.LittleEndian.PutUint16(b[:2], uint16(c.R>>3)<<11|uint16(c.G>>2)<<5|uint16(c.B>>3))
	case rlgl.PixelFormatR8G8B8:
		b[0], b[1], b[2] = c.R, c.G, c.B
	case rlgl.PixelFormatR5G5B5A1:
		a := uint16(0)
		if c.A >= 0x80 {
			a = 1
		}
		binary.LittleEndian.PutUint16(b[:2], uint16(c.R>>3)<<11|uint16(c.G>>3)<<6|uint16(c.B>>3)<<1|a)
	case rlgl.PixelFormatR4G4B4A4:
		binary.LittleEndian.PutUint16(b[:2], uint16(c.R>>4)<<12|uint16(c.G>>4)<<8|uint16(c.B>>4)<<4|uint16(c.A>>4))
	case rlgl.PixelFormatR8G8B8A8:
		b = [4]byte{c.R, c.G, c.B, c.A}
	}
	copy(dst, b[:])
}

// ToNRGBA decodes a width x height image in format f.
func ToNRGBA(f rlgl.PixelFormat, data []byte, width, height int) (*image.NRGBA, error) {
	if !Supported(f) {
		return nil, fmt.Errorf("pixel: cannot convert %v", f)
	}
	bpp := f.BytesPerPixel()
	if need := width * height * bpp; len(data) < need {
		return nil, fmt.Errorf("pixel: %d bytes for %dx%d %v, want %d", len(data), width, height, f, need)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if f == rlgl.PixelFormatR8G8B8A8 {
		copy(img.Pix, data)
		return img, nil
	}
	for i := 0; i < width*height; i++ {
		c := Decode(f, data[i*bpp:(i+1)*bpp])
		img.Pix[i*4], img.Pix[i*4+1], img.Pix[i*4+2], img.Pix[i*4+3] = c.R, c.G, c.B, c.A
	}
	return img, nil
}

// Expand widens an n-bit channel to 8 bits.
func Expand(v uint16, bits uint) uint8 {
	top := uint16(1)<<bits - 1
	return uint8(uint32(v&top) * 0xFF / uint32(top))
}

// Luma returns the Rec. 601 luminance of c.
func Luma(c color.NRGBA) uint8 {
	return uint8((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)) / 1000)
}
