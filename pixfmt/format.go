// Package pixfmt is the pixel-format model: a closed enumeration of GPU
// pixel encodings used across the decoders, plus the per-format metadata
// (channel masks, block size, sRGB twin, signedness) every decoder needs to
// negotiate a destination format with its allocator.
package pixfmt

import "fmt"

// Format is a closed enumeration of pixel encodings. Zero value is Undefined.
type Format uint16

const (
	Undefined Format = iota

	// Uncompressed color.
	R8_UNORM
	R8G8_UNORM
	R8G8_SNORM
	R8G8B8_UNORM
	R8G8B8_SRGB
	B8G8R8_UNORM
	B8G8R8_SRGB
	R8G8B8A8_UNORM
	R8G8B8A8_SRGB
	R8G8B8A8_SNORM
	B8G8R8A8_UNORM
	B8G8R8A8_SRGB
	B8G8R8X8_UNORM
	B8G8R8X8_SRGB
	R5G6B5_UNORM
	A1R5G5B5_UNORM
	A4R4G4B4_UNORM
	A2B10G10R10_UNORM
	A2R10G10B10_UNORM
	R16G16_UNORM
	R16G16_SNORM
	R16G16B16_UNORM
	R16G16B16A16_UNORM
	R16_SFLOAT
	R16G16_SFLOAT
	R16G16B16A16_SFLOAT
	R32_SFLOAT
	R32G32_SFLOAT
	R32G32B32A32_SFLOAT
	R11G11B10_FLOAT

	// Luminance / alpha-only.
	L8_UNORM
	L8A8_UNORM
	A8_UNORM
	L16_UNORM

	// Block-compressed (BC).
	BC1_RGBA_UNORM_BLOCK
	BC1_RGBA_SRGB_BLOCK
	BC2_UNORM_BLOCK
	BC2_SRGB_BLOCK
	BC3_UNORM_BLOCK
	BC3_SRGB_BLOCK
	BC4_UNORM_BLOCK
	BC4_SNORM_BLOCK
	BC5_UNORM_BLOCK
	BC5_SNORM_BLOCK
	BC6H_UFLOAT_BLOCK
	BC6H_SFLOAT_BLOCK
	BC7_UNORM_BLOCK
	BC7_SRGB_BLOCK

	// ETC2 / EAC.
	ETC2_R8G8B8_UNORM_BLOCK
	ETC2_R8G8B8_SRGB_BLOCK
	ETC2_R8G8B8A8_UNORM_BLOCK
	ETC2_R8G8B8A8_SRGB_BLOCK
	EAC_R11_UNORM_BLOCK
	EAC_R11G11_UNORM_BLOCK
)

// Channel identifies a single channel of a pixel format.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Alpha
	Luminance
)

// BlockExtent is the pixel extent of one storage block: 1x1 for
// uncompressed formats, 4x4 for BC*/ETC2/EAC.
type BlockExtent struct {
	X, Y uint32
}

// FormatInfo is the per-format metadata record described in spec §3.
type FormatInfo struct {
	Format        Format
	Name          string
	BlockByteSize uint32
	Block         BlockExtent
	ChannelCount  int
	Signed        bool
	SRGB          bool
	srgbTwin      Format // Undefined if none
	RedBits       uint8
	GreenBits     uint8
	BlueBits      uint8
	AlphaBits     uint8
	RedMask       uint32
	GreenMask     uint32
	BlueMask      uint32
	AlphaMask     uint32
}

var infoTable = map[Format]FormatInfo{}

func register(fi FormatInfo) {
	infoTable[fi.Format] = fi
}

// Info returns the metadata record for format. The zero value is
// returned, with Format == Undefined, if format is not recognized.
func Info(format Format) FormatInfo {
	if fi, ok := infoTable[format]; ok {
		return fi
	}
	return FormatInfo{}
}

// IsKnown reports whether format is a recognized, non-Undefined format.
func IsKnown(format Format) bool {
	_, ok := infoTable[format]
	return ok
}

// SRGBTwin returns the sRGB (or linear) counterpart of format, if one
// exists. It maps in both directions: linear -> sRGB and sRGB -> linear.
func SRGBTwin(format Format) (Format, bool) {
	fi := Info(format)
	if fi.srgbTwin == Undefined {
		return Undefined, false
	}
	return fi.srgbTwin, true
}

// HasChannel reports whether format carries the given channel.
func HasChannel(format Format, channel Channel) bool {
	return ChannelBitMask(format, channel) != 0 || (channel == Alpha && hasZeroWidthAlphaChannel(format))
}

func hasZeroWidthAlphaChannel(format Format) bool {
	switch format {
	case R8G8B8A8_UNORM, R8G8B8A8_SRGB, R8G8B8A8_SNORM, B8G8R8A8_UNORM, B8G8R8A8_SRGB,
		A1R5G5B5_UNORM, A4R4G4B4_UNORM, A2B10G10R10_UNORM, A2R10G10B10_UNORM,
		R16G16B16A16_UNORM, R16G16B16A16_SFLOAT, L8A8_UNORM, A8_UNORM,
		BC1_RGBA_UNORM_BLOCK, BC1_RGBA_SRGB_BLOCK, BC2_UNORM_BLOCK, BC2_SRGB_BLOCK,
		BC3_UNORM_BLOCK, BC3_SRGB_BLOCK, BC7_UNORM_BLOCK, BC7_SRGB_BLOCK,
		ETC2_R8G8B8A8_UNORM_BLOCK, ETC2_R8G8B8A8_SRGB_BLOCK:
		return true
	default:
		return false
	}
}

// ChannelBitMask returns the bitmask for channel within the packed
// representation of format, or 0 if format has no such channel.
func ChannelBitMask(format Format, channel Channel) uint32 {
	fi := Info(format)
	switch channel {
	case Red, Luminance:
		return fi.RedMask
	case Green:
		return fi.GreenMask
	case Blue:
		return fi.BlueMask
	case Alpha:
		return fi.AlphaMask
	default:
		return 0
	}
}

// Is8888UNorm reports whether format is an unsigned-normalized 8-bit x4
// channel layout (used by decode swizzle dispatch).
func Is8888UNorm(format Format) bool {
	switch format {
	case R8G8B8A8_UNORM, B8G8R8A8_UNORM, B8G8R8X8_UNORM:
		return true
	default:
		return false
	}
}

// Is5551UNorm reports whether format packs RGB in 5 bits and alpha in 1 bit.
func Is5551UNorm(format Format) bool {
	return format == A1R5G5B5_UNORM
}

// Is888SRGB reports whether format is an 8-bit-per-channel sRGB color format.
func Is888SRGB(format Format) bool {
	switch format {
	case R8G8B8_SRGB, B8G8R8_SRGB, R8G8B8A8_SRGB, B8G8R8A8_SRGB, B8G8R8X8_SRGB:
		return true
	default:
		return false
	}
}

func (f Format) String() string {
	if fi, ok := infoTable[f]; ok && fi.Name != "" {
		return fi.Name
	}
	return fmt.Sprintf("Format(%d)", uint16(f))
}

func init() {
	registerUncompressed()
	registerBlockCompressed()
}
