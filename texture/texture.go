// Package texture holds the decoder-agnostic data model: the geometric
// description of a texture (Extent, TextureParams, Dimension) and the
// addressing tuple (MipSurfaceKey) every allocator uses to locate one
// surface's byte span.
package texture

import (
	"fmt"

	"github.com/goopsie/teximp/pixfmt"
)

// MaxExtent is the largest width or height a decoder will accept; larger
// values are rejected as DimensionsTooLarge before any allocation happens.
const MaxExtent = 16384

// Dimension is the texture's addressing shape.
type Dimension int

const (
	Dimension1D Dimension = iota
	Dimension2D
	Dimension3D
	DimensionCube
)

func (d Dimension) String() string {
	switch d {
	case Dimension1D:
		return "1D"
	case Dimension2D:
		return "2D"
	case Dimension3D:
		return "3D"
	case DimensionCube:
		return "Cube"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// Extent is the (width, height, depth) of a texture's base mip level.
// Depth is 1 for anything that isn't a 3D texture.
type Extent struct {
	Width, Height, Depth uint32
}

// Valid reports whether e satisfies the positivity and size-bound
// invariants every decoder must check before allocating.
func (e Extent) Valid() bool {
	if e.Width == 0 || e.Height == 0 || e.Depth == 0 {
		return false
	}
	if e.Width > MaxExtent || e.Height > MaxExtent {
		return false
	}
	return true
}

// MipExtent returns the extent of mip level `mip` of a texture whose base
// extent is e, clamped to at least 1 in each dimension (the standard
// floor(base >> mip) mip-chain rule).
func (e Extent) MipExtent(mip uint32) Extent {
	shrink := func(v uint32) uint32 {
		s := v >> mip
		if s == 0 {
			s = 1
		}
		return s
	}
	return Extent{Width: shrink(e.Width), Height: shrink(e.Height), Depth: shrink(e.Depth)}
}

// TextureParams fully describes one texture's shape and pixel encoding, as
// negotiated between a decoder and its allocator.
type TextureParams struct {
	Format    pixfmt.Format
	Dimension Dimension
	Extent    Extent
	ArraySize uint32
	Faces     uint32
	Mips      uint32
}

// Valid enforces the faces==6 <=> Cube invariant and the positivity
// invariants on ArraySize/Faces/Mips.
func (p TextureParams) Valid() bool {
	if p.ArraySize == 0 || p.Mips == 0 {
		return false
	}
	if p.Faces != 1 && p.Faces != 6 {
		return false
	}
	if (p.Faces == 6) != (p.Dimension == DimensionCube) {
		return false
	}
	return p.Extent.Valid()
}

// MipSurfaceKey addresses exactly one 2D surface within a texture: one
// array slice, one cubemap face (always 0 for non-cube textures), one mip
// level.
type MipSurfaceKey struct {
	ArraySlice uint32
	Face       uint32
	Mip        uint32
}

// SurfaceByteSize returns the number of bytes a surface of the given mip
// extent occupies for a format with the given block byte size and block
// extent, per the block-aligned sizing rule every decoder uses.
func SurfaceByteSize(mipExtent Extent, blockByteSize uint32, blockX, blockY uint32) uint32 {
	blocksWide := (mipExtent.Width + blockX - 1) / blockX
	blocksHigh := (mipExtent.Height + blockY - 1) / blockY
	return blocksWide * blocksHigh * blockByteSize * mipExtent.Depth
}
