// Package rowdecode provides stateless per-row decoders for BMP's packed
// pixel encodings: palette-indexed (1/2/4/8-bit), 16-bit packed-mask,
// 24/32-bit direct color. Each function decodes exactly one row from a
// byte slice into a caller-provided RGBA8 destination slice, built on top
// of pixconv's pure kernels. Row direction and disk-row padding are the
// caller's responsibility (they vary per container format); these
// functions only ever see one already-isolated row's bytes.
package rowdecode

import (
	"github.com/goopsie/teximp/pixconv"
)

// RowPitch returns the on-disk byte pitch of one BMP row: the pixel data
// width rounded up to a 4-byte boundary, per the BMP row-padding rule.
func RowPitch(width int, bitsPerPixel int) int {
	bits := width * bitsPerPixel
	bytes := (bits + 7) / 8
	return (bytes + 3) &^ 3
}

// Palette1 decodes one row of 1-bit palette indices.
func Palette1(row []byte, width int, palette []pixconv.RGBA8, dst []pixconv.RGBA8) {
	idx := make([]uint8, width)
	pixconv.Palette1Bit(row, width, idx)
	for i, ix := range idx {
		dst[i] = pixconv.ResolveIndex(palette, ix)
	}
}

// Palette2 decodes one row of 2-bit palette indices.
func Palette2(row []byte, width int, palette []pixconv.RGBA8, dst []pixconv.RGBA8) {
	idx := make([]uint8, width)
	pixconv.Palette2Bit(row, width, idx)
	for i, ix := range idx {
		dst[i] = pixconv.ResolveIndex(palette, ix)
	}
}

// Palette4 decodes one row of 4-bit palette indices.
func Palette4(row []byte, width int, palette []pixconv.RGBA8, dst []pixconv.RGBA8) {
	idx := make([]uint8, width)
	pixconv.Palette4Bit(row, width, idx)
	for i, ix := range idx {
		dst[i] = pixconv.ResolveIndex(palette, ix)
	}
}

// Palette8 decodes one row of 8-bit palette indices.
func Palette8(row []byte, width int, palette []pixconv.RGBA8, dst []pixconv.RGBA8) {
	idx := make([]uint8, width)
	pixconv.Palette8Bit(row, width, idx)
	for i, ix := range idx {
		dst[i] = pixconv.ResolveIndex(palette, ix)
	}
}

// Packed16 decodes one row of 16-bit packed pixels (555/565/5551/4444 or
// any other mask set) using the given channel masks.
func Packed16(row []byte, width int, rMask, gMask, bMask, aMask uint32, dst []pixconv.RGBA8) {
	for i := 0; i < width; i++ {
		v := uint16(row[2*i]) | uint16(row[2*i+1])<<8
		dst[i] = pixconv.UnpackMask16(v, rMask, gMask, bMask, aMask)
	}
}

// Direct24 decodes one row of 24-bit BGR pixels (BMP's native byte order).
func Direct24(row []byte, width int, dst []pixconv.RGBA8) {
	for i := 0; i < width; i++ {
		b := row[3*i]
		g := row[3*i+1]
		r := row[3*i+2]
		dst[i] = pixconv.RGBA8{R: r, G: g, B: b, A: 255}
	}
}

// Direct32 decodes one row of 32-bit BGRA/BGRX pixels using explicit
// masks; if aMask is zero, alpha is forced to 255 rather than computed.
func Direct32(row []byte, width int, rMask, gMask, bMask, aMask uint32, dst []pixconv.RGBA8) {
	for i := 0; i < width; i++ {
		v := uint32(row[4*i]) | uint32(row[4*i+1])<<8 | uint32(row[4*i+2])<<16 | uint32(row[4*i+3])<<24
		dst[i] = pixconv.UnpackMask32(v, rMask, gMask, bMask, aMask)
	}
}
