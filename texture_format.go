// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rlgl

import "fmt"

// PixelFormat identifies the encoding of texel data handed to
// CreateTexture. The numbering follows raylib's PixelFormat enum.
type PixelFormat int32

const (
	PixelFormatGrayscale PixelFormat = iota + 1 // 8 bpp, no alpha
	PixelFormatGrayAlpha                        // 8*2 bpp, 2 channels
	PixelFormatR5G6B5                           // 16 bpp
	PixelFormatR8G8B8                           // 24 bpp
	PixelFormatR5G5B5A1                         // 16 bpp, 1 bit alpha
	PixelFormatR4G4B4A4                         // 16 bpp, 4 bit alpha
	PixelFormatR8G8B8A8                         // 32 bpp
	PixelFormatR32                              // 32 bpp, 1 float channel
	PixelFormatR32G32B32                        // 32*3 bpp, 3 float channels
	PixelFormatR32G32B32A32                     // 32*4 bpp, 4 float channels
	PixelFormatDXT1RGB                          // 4 bpp, no alpha
	PixelFormatDXT1RGBA                         // 4 bpp, 1 bit alpha
	PixelFormatDXT3RGBA                         // 8 bpp
	PixelFormatDXT5RGBA                         // 8 bpp
	PixelFormatETC1RGB                          // 4 bpp
	PixelFormatETC2RGB                          // 4 bpp
	PixelFormatETC2EACRGBA                      // 8 bpp
	PixelFormatPVRTRGB                          // 4 bpp
	PixelFormatPVRTRGBA                         // 4 bpp
	PixelFormatASTC4x4RGBA                      // 8 bpp
	PixelFormatASTC8x8RGBA                      // 2 bpp
)

var pixelFormatNames = map[PixelFormat]string{
	PixelFormatGrayscale:    "GRAYSCALE",
	PixelFormatGrayAlpha:    "GRAY_ALPHA",
	PixelFormatR5G6B5:       "R5G6B5",
	PixelFormatR8G8B8:       "R8G8B8",
	PixelFormatR5G5B5A1:     "R5G5B5A1",
	PixelFormatR4G4B4A4:     "R4G4B4A4",
	PixelFormatR8G8B8A8:     "R8G8B8A8",
	PixelFormatR32:          "R32",
	PixelFormatR32G32B32:    "R32G32B32",
	PixelFormatR32G32B32A32: "R32G32B32A32",
	PixelFormatDXT1RGB:      "DXT1_RGB",
	PixelFormatDXT1RGBA:     "DXT1_RGBA",
	PixelFormatDXT3RGBA:     "DXT3_RGBA",
	PixelFormatDXT5RGBA:     "DXT5_RGBA",
	PixelFormatETC1RGB:      "ETC1_RGB",
	PixelFormatETC2RGB:      "ETC2_RGB",
	PixelFormatETC2EACRGBA:  "ETC2_EAC_RGBA",
	PixelFormatPVRTRGB:      "PVRT_RGB",
	PixelFormatPVRTRGBA:     "PVRT_RGBA",
	PixelFormatASTC4x4RGBA:  "ASTC_4x4_RGBA",
	PixelFormatASTC8x8RGBA:  "ASTC_8x8_RGBA",
}

// String returns the format name.
func (f PixelFormat) String() string {
	if s, ok := pixelFormatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("PixelFormat(%d)", int32(f))
}

// Valid reports whether f is a known format.
func (f PixelFormat) Valid() bool {
	return f >= PixelFormatGrayscale && f <= PixelFormatASTC8x8RGBA
}

// Compressed reports whether f is a block-compressed format.
func (f PixelFormat) Compressed() bool {
	return f >= PixelFormatDXT1RGB && f <= PixelFormatASTC8x8RGBA
}

// BitsPerPixel returns the storage cost of one texel, or 0 for unknown
// formats.
func (f PixelFormat) BitsPerPixel() int {
	switch f {
	case PixelFormatGrayscale:
		return 8
	case PixelFormatGrayAlpha, PixelFormatR5G6B5, PixelFormatR5G5B5A1, PixelFormatR4G4B4A4:
		return 16
	case PixelFormatR8G8B8:
		return 24
	case PixelFormatR8G8B8A8, PixelFormatR32:
		return 32
	case PixelFormatR32G32B32:
		return 96
	case PixelFormatR32G32B32A32:
		return 128
	case PixelFormatDXT1RGB, PixelFormatDXT1RGBA, PixelFormatETC1RGB, PixelFormatETC2RGB,
		PixelFormatPVRTRGB, PixelFormatPVRTRGBA:
		return 4
	case PixelFormatDXT3RGBA, PixelFormatDXT5RGBA, PixelFormatETC2EACRGBA, PixelFormatASTC4x4RGBA:
		return 8
	case PixelFormatASTC8x8RGBA:
		return 2
	default:
		return 0
	}
}

// BytesPerPixel returns the byte size of one texel for uncompressed
// formats and 0 for compressed ones.
func (f PixelFormat) BytesPerPixel() int {
	if f.Compressed() {
		return 0
	}
	return f.BitsPerPixel() / 8
}

// DataSize returns the byte size of a width x height image in format f.
// Compressed formats never go below one 4x4 block.
func (f PixelFormat) DataSize(width, height int) int {
	size := width * height * f.BitsPerPixel() / 8
	if width < 4 && height < 4 {
		switch {
		case f >= PixelFormatDXT1RGB && f < PixelFormatDXT3RGBA:
			size = 8
		case f >= PixelFormatDXT3RGBA && f < PixelFormatASTC8x8RGBA:
			size = 16
		}
	}
	return size
}

// MipChainSize returns the byte size of levels mip levels starting at
// width x height, halving each dimension per level down to 1.
func (f PixelFormat) MipChainSize(width, height, levels int) int {
	total := 0
	for i := 0; i < levels; i++ {
		total += f.DataSize(width, height)
		width, height = max(width/2, 1), max(height/2, 1)
	}
	return total
}

// TextureParam names a texture parameter for SetTextureParameter.
// The values match the GL enums.
type TextureParam int32

const (
	TextureMagFilter TextureParam = 0x2800
	TextureMinFilter TextureParam = 0x2801
	TextureWrapS     TextureParam = 0x2802
	TextureWrapT     TextureParam = 0x2803
)

// Texture parameter values.
const (
	FilterNearest          int32 = 0x2600
	FilterLinear           int32 = 0x2601
	FilterMipNearest       int32 = 0x2700
	FilterLinearMipNearest int32 = 0x2701
	FilterNearestMipLinear int32 = 0x2702
	FilterMipLinear        int32 = 0x2703
	FilterAnisotropic      int32 = 0x3000

	WrapRepeat       int32 = 0x2901
	WrapClamp        int32 = 0x812F
	WrapMirrorRepeat int32 = 0x8370
	WrapMirrorClamp  int32 = 0x8742
)

// TextureLayout is the texel memory layout a backend expects.
type TextureLayout int

const (
	// LayoutLinear is row-major storage with the origin at the top-left.
	LayoutLinear TextureLayout = iota

	// LayoutTiled8x8 is the swizzled 8x8 tile layout with a bottom-left
	// origin.
	LayoutTiled8x8
)

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
