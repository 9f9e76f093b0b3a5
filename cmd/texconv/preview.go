// preview.go - decompresses a decoded surface to RGBA for PNG preview
// output. This is read-only tooling around the teximp core: it never
// recompresses back to a block format.

package main

import (
	"fmt"
	"image"
	"math"

	"github.com/goopsie/teximp/pixconv"
	"github.com/goopsie/teximp/pixfmt"
)

// surfaceToRGBA expands one decoded surface (width x height, in format fi)
// into a standard-library image for PNG encoding.
func surfaceToRGBA(data []byte, width, height int, fi pixfmt.FormatInfo) (*image.NRGBA, error) {
	switch fi.Format {
	case pixfmt.R8G8B8A8_UNORM, pixfmt.R8G8B8A8_SRGB:
		return planarRGBACopy(data, width, height)
	case pixfmt.B8G8R8A8_UNORM, pixfmt.B8G8R8A8_SRGB:
		return swizzleBGRA(data, width, height)
	case pixfmt.R8G8B8_UNORM, pixfmt.R8G8B8_SRGB:
		return expand888(data, width, height, false)
	case pixfmt.B8G8R8_UNORM, pixfmt.B8G8R8_SRGB:
		return expand888(data, width, height, true)
	case pixfmt.L8_UNORM, pixfmt.A8_UNORM:
		return expandGray8(data, width, height)
	case pixfmt.BC1_RGBA_UNORM_BLOCK, pixfmt.BC1_RGBA_SRGB_BLOCK:
		return decompressBC1(data, width, height, fi.SRGB)
	case pixfmt.BC2_UNORM_BLOCK, pixfmt.BC2_SRGB_BLOCK:
		return decompressBC3(data, width, height, fi.SRGB, true)
	case pixfmt.BC3_UNORM_BLOCK, pixfmt.BC3_SRGB_BLOCK:
		return decompressBC3(data, width, height, fi.SRGB, false)
	case pixfmt.BC4_UNORM_BLOCK, pixfmt.BC4_SNORM_BLOCK:
		return decompressBC4AsGray(data, width, height, fi.Signed)
	case pixfmt.BC5_UNORM_BLOCK, pixfmt.BC5_SNORM_BLOCK:
		return decompressBC5(data, width, height, fi.Signed)
	default:
		return nil, fmt.Errorf("no preview decompressor for format %s", fi.Format)
	}
}

func planarRGBACopy(data []byte, width, height int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if len(data) < width*height*4 {
		return nil, fmt.Errorf("surface data truncated")
	}
	copy(img.Pix, data[:width*height*4])
	return img, nil
}

func swizzleBGRA(data []byte, width, height int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if len(data) < width*height*4 {
		return nil, fmt.Errorf("surface data truncated")
	}
	for i := 0; i < width*height; i++ {
		off := i * 4
		b, g, r, a := data[off], data[off+1], data[off+2], data[off+3]
		img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = r, g, b, a
	}
	return img, nil
}

func expand888(data []byte, width, height int, bgr bool) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if len(data) < width*height*3 {
		return nil, fmt.Errorf("surface data truncated")
	}
	for i := 0; i < width*height; i++ {
		src := i * 3
		dst := i * 4
		c0, c1, c2 := data[src], data[src+1], data[src+2]
		if bgr {
			img.Pix[dst], img.Pix[dst+1], img.Pix[dst+2] = c2, c1, c0
		} else {
			img.Pix[dst], img.Pix[dst+1], img.Pix[dst+2] = c0, c1, c2
		}
		img.Pix[dst+3] = 255
	}
	return img, nil
}

func expandGray8(data []byte, width, height int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if len(data) < width*height {
		return nil, fmt.Errorf("surface data truncated")
	}
	for i := 0; i < width*height; i++ {
		px := pixconv.GrayToRGB(data[i])
		dst := i * 4
		img.Pix[dst], img.Pix[dst+1], img.Pix[dst+2], img.Pix[dst+3] = px.R, px.G, px.B, px.A
	}
	return img, nil
}

func decodeColorEndpoints(c0, c1 uint16) (rgb0, rgb1 [3]uint8) {
	r0 := (c0 >> 11) & 0x1f
	g0 := (c0 >> 5) & 0x3f
	b0 := c0 & 0x1f
	rgb0 = [3]uint8{uint8((r0 << 3) | (r0 >> 2)), uint8((g0 << 2) | (g0 >> 4)), uint8((b0 << 3) | (b0 >> 2))}

	r1 := (c1 >> 11) & 0x1f
	g1 := (c1 >> 5) & 0x3f
	b1 := c1 & 0x1f
	rgb1 = [3]uint8{uint8((r1 << 3) | (r1 >> 2)), uint8((g1 << 2) | (g1 >> 4)), uint8((b1 << 3) | (b1 >> 2))}
	return
}

// decompressBC1 decompresses BC1/DXT1 4x4 blocks to RGBA, including the
// 1-bit punch-through alpha branch when c0 <= c1.
func decompressBC1(data []byte, width, height int, srgb bool) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	blockW, blockH := (width+3)/4, (height+3)/4

	offset := 0
	for by := 0; by < blockH; by++ {
		for bx := 0; bx < blockW; bx++ {
			if offset+8 > len(data) {
				return nil, fmt.Errorf("bc1 data truncated")
			}
			c0 := uint16(data[offset]) | uint16(data[offset+1])<<8
			c1 := uint16(data[offset+2]) | uint16(data[offset+3])<<8
			offset += 4
			rgb0, rgb1 := decodeColorEndpoints(c0, c1)

			var rgb [4][3]uint8
			if srgb {
				rgb = interpolateSRGB(rgb0, rgb1, c0 > c1)
			} else {
				rgb = interpolateLinear(rgb0, rgb1, c0 > c1)
			}
			colors := [4][4]uint8{
				{rgb[0][0], rgb[0][1], rgb[0][2], 255},
				{rgb[1][0], rgb[1][1], rgb[1][2], 255},
				{rgb[2][0], rgb[2][1], rgb[2][2], 255},
				{rgb[3][0], rgb[3][1], rgb[3][2], 255},
			}
			if c0 <= c1 {
				colors[3][3] = 0
			}

			indices := uint32(data[offset]) | uint32(data[offset+1])<<8 | uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24
			offset += 4
			writeBlock4x4(img, bx, by, width, height, func(py, px int) [4]uint8 {
				idx := (indices >> uint(2*(py*4+px))) & 3
				return colors[idx]
			})
		}
	}
	return img, nil
}

// decompressBC3 decompresses BC2/BC3 blocks: an 8-byte alpha block (BC2's
// explicit 4-bit alpha when explicitAlpha is set, BC3's interpolated alpha
// otherwise) followed by an always-4-color BC1-style color block.
func decompressBC3(data []byte, width, height int, srgb, explicitAlpha bool) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	blockW, blockH := (width+3)/4, (height+3)/4

	offset := 0
	for by := 0; by < blockH; by++ {
		for bx := 0; bx < blockW; bx++ {
			if offset+16 > len(data) {
				return nil, fmt.Errorf("bc3 data truncated")
			}
			alphaBlock := data[offset : offset+8]
			alphas := decodeBC4Palette(data[offset], data[offset+1], false)
			var alphaIdx uint64
			for i := 0; i < 6; i++ {
				alphaIdx |= uint64(data[offset+2+i]) << uint(i*8)
			}
			offset += 8

			c0 := uint16(data[offset]) | uint16(data[offset+1])<<8
			c1 := uint16(data[offset+2]) | uint16(data[offset+3])<<8
			offset += 4
			rgb0, rgb1 := decodeColorEndpoints(c0, c1)

			var colors [4][3]uint8
			if srgb {
				colors = interpolateSRGB(rgb0, rgb1, true)
			} else {
				colors = interpolateLinear(rgb0, rgb1, true)
			}

			indices := uint32(data[offset]) | uint32(data[offset+1])<<8 | uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24
			offset += 4
			writeBlock4x4(img, bx, by, width, height, func(py, px int) [4]uint8 {
				pidx := py*4 + px
				c := colors[(indices>>uint(2*pidx))&3]
				if explicitAlpha {
					nib := (alphaBlock[pidx/2] >> uint(4*(pidx%2))) & 0xf
					return [4]uint8{c[0], c[1], c[2], nib<<4 | nib}
				}
				a := alphas[(alphaIdx>>uint(3*pidx))&7]
				return [4]uint8{c[0], c[1], c[2], uint16ToUint8(a)}
			})
		}
	}
	return img, nil
}

func uint16ToUint8(v int16) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// decodeBC4Palette reconstructs the 8-value BC4 interpolated palette for
// one channel, as either a UNORM [0,255] or SNORM [-127,127] ramp.
func decodeBC4Palette(e0, e1 byte, signed bool) [8]int16 {
	var v0, v1 int16
	if signed {
		v0, v1 = int16(int8(e0)), int16(int8(e1))
	} else {
		v0, v1 = int16(e0), int16(e1)
	}

	var out [8]int16
	out[0], out[1] = v0, v1
	if v0 > v1 {
		for i := 2; i < 8; i++ {
			out[i] = int16((int(v0)*(8-i) + int(v1)*(i-1)) / 7)
		}
	} else {
		for i := 2; i < 6; i++ {
			out[i] = int16((int(v0)*(6-i) + int(v1)*(i-1)) / 5)
		}
		if signed {
			out[6], out[7] = -127, 127
		} else {
			out[6], out[7] = 0, 255
		}
	}
	return out
}

// decompressBC4AsGray previews a single BC4 channel as a grayscale image.
func decompressBC4AsGray(data []byte, width, height int, signed bool) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	blockW, blockH := (width+3)/4, (height+3)/4

	offset := 0
	for by := 0; by < blockH; by++ {
		for bx := 0; bx < blockW; bx++ {
			if offset+8 > len(data) {
				return nil, fmt.Errorf("bc4 data truncated")
			}
			palette := decodeBC4Palette(data[offset], data[offset+1], signed)
			var indices uint64
			for i := 0; i < 6; i++ {
				indices |= uint64(data[offset+2+i]) << uint(i*8)
			}
			offset += 8
			writeBlock4x4(img, bx, by, width, height, func(py, px int) [4]uint8 {
				pidx := py*4 + px
				v := unormalizeBC4(palette[(indices>>uint(3*pidx))&7], signed)
				return [4]uint8{v, v, v, 255}
			})
		}
	}
	return img, nil
}

func unormalizeBC4(v int16, signed bool) uint8 {
	if !signed {
		return uint16ToUint8(v)
	}
	f := (float64(v)/127.0 + 1) / 2 * 255
	if f < 0 {
		f = 0
	}
	if f > 255 {
		f = 255
	}
	return uint8(f)
}

// decompressBC5 decompresses a two-channel BC5 normal map and reconstructs
// the Z channel as sqrt(1 - X^2 - Y^2), the standard tangent-space normal
// map convention, storing the result as RGB with B holding the
// reconstructed Z and A forced opaque.
func decompressBC5(data []byte, width, height int, signed bool) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	blockW, blockH := (width+3)/4, (height+3)/4
	blockBytes := 8

	offset := 0
	for by := 0; by < blockH; by++ {
		for bx := 0; bx < blockW; bx++ {
			if offset+2*blockBytes > len(data) {
				return nil, fmt.Errorf("bc5 data truncated")
			}
			rPalette := decodeBC4Palette(data[offset], data[offset+1], signed)
			var rIdx uint64
			for i := 0; i < 6; i++ {
				rIdx |= uint64(data[offset+2+i]) << uint(i*8)
			}
			offset += blockBytes

			gPalette := decodeBC4Palette(data[offset], data[offset+1], signed)
			var gIdx uint64
			for i := 0; i < 6; i++ {
				gIdx |= uint64(data[offset+2+i]) << uint(i*8)
			}
			offset += blockBytes

			writeBlock4x4(img, bx, by, width, height, func(py, px int) [4]uint8 {
				pidx := py*4 + px
				rRaw := rPalette[(rIdx>>uint(3*pidx))&7]
				gRaw := gPalette[(gIdx>>uint(3*pidx))&7]
				r8 := unormalizeBC4(rRaw, signed)
				g8 := unormalizeBC4(gRaw, signed)

				nx := float64(r8)/127.5 - 1
				ny := float64(g8)/127.5 - 1
				nz2 := 1 - nx*nx - ny*ny
				var nz float64
				if nz2 > 0 {
					nz = math.Sqrt(nz2)
				}
				b8 := uint8(math.Min(255, math.Max(0, (nz+1)*127.5)))
				return [4]uint8{r8, g8, b8, 255}
			})
		}
	}
	return img, nil
}

func writeBlock4x4(img *image.NRGBA, bx, by, width, height int, pixel func(py, px int) [4]uint8) {
	for py := 0; py < 4; py++ {
		for px := 0; px < 4; px++ {
			x, y := bx*4+px, by*4+py
			if x >= width || y >= height {
				continue
			}
			c := pixel(py, px)
			off := img.PixOffset(x, y)
			img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = c[0], c[1], c[2], c[3]
		}
	}
}

func srgbToLinear(c uint8) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSrgb(v float64) uint8 {
	if v <= 0.0031308 {
		return uint8(math.Min(255, math.Max(0, v*12.92*255.0)))
	}
	srgb := 1.055*math.Pow(v, 1.0/2.4) - 0.055
	return uint8(math.Min(255, math.Max(0, srgb*255.0)))
}

// interpolateLinear builds the 4-color BC1/BC3 ramp by mixing 8-bit
// endpoints directly. fourColor selects the always-4-color BC3 ramp
// (2/3,1/3 and 1/3,2/3); otherwise it follows BC1's punch-through-alpha
// convention of a 1/2,1/2 midpoint and a transparent-black fourth entry.
func interpolateLinear(rgb0, rgb1 [3]uint8, fourColor bool) [4][3]uint8 {
	var out [4][3]uint8
	out[0], out[1] = rgb0, rgb1
	mix := func(w0, w1, div int) [3]uint8 {
		return [3]uint8{
			uint8((w0*int(rgb0[0]) + w1*int(rgb1[0])) / div),
			uint8((w0*int(rgb0[1]) + w1*int(rgb1[1])) / div),
			uint8((w0*int(rgb0[2]) + w1*int(rgb1[2])) / div),
		}
	}
	if fourColor {
		out[2] = mix(2, 1, 3)
		out[3] = mix(1, 2, 3)
	} else {
		out[2] = mix(1, 1, 2)
		out[3] = [3]uint8{0, 0, 0}
	}
	return out
}

// interpolateSRGB mixes endpoints in linear light before re-encoding, the
// way the teacher's decoder keeps sRGB gradients from darkening.
func interpolateSRGB(rgb0, rgb1 [3]uint8, fourColor bool) [4][3]uint8 {
	lin := func(c [3]uint8) [3]float64 {
		return [3]float64{srgbToLinear(c[0]), srgbToLinear(c[1]), srgbToLinear(c[2])}
	}
	l0, l1 := lin(rgb0), lin(rgb1)
	mix := func(w0, w1, div float64) [3]uint8 {
		return [3]uint8{
			linearToSrgb((w0*l0[0] + w1*l1[0]) / div),
			linearToSrgb((w0*l0[1] + w1*l1[1]) / div),
			linearToSrgb((w0*l0[2] + w1*l1[2]) / div),
		}
	}
	var out [4][3]uint8
	out[0], out[1] = rgb0, rgb1
	if fourColor {
		out[2] = mix(2, 1, 3)
		out[3] = mix(1, 2, 3)
	} else {
		out[2] = mix(1, 1, 2)
		out[3] = [3]uint8{0, 0, 0}
	}
	return out
}
