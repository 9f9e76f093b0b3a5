// Package bmp decodes Windows/OS2 Bitmap (BMP) files: all eight header
// variants (core V2 through V5, plus the two OS/2 variants), RGB/Bitfields/
// RLE4/RLE8 compression, palette expansion and mask-based color. The
// header-variant dispatch and row-padding arithmetic follow the same
// binary.Read-a-fixed-struct idiom the teacher's DDS parser uses.
package bmp

import (
	"io"
	"math"

	"github.com/goopsie/teximp/internal/streamio"
	"github.com/goopsie/teximp/internal/texerr"
	"github.com/goopsie/teximp/pixconv"
	"github.com/goopsie/teximp/pixfmt"
	"github.com/goopsie/teximp/rowdecode"
	"github.com/goopsie/teximp/texalloc"
	"github.com/goopsie/teximp/texture"
)

// Options configures BMP-specific decode preferences.
type Options struct {
	PadRGBWithAlpha bool
	AssumeSRGB      bool
}

const (
	compressionRGB            = 0
	compressionRLE8           = 1
	compressionRLE4           = 2
	compressionBitfields      = 3
	compressionJPEG           = 4
	compressionPNG            = 5
	compressionAlphaBitfields = 6
)

// normalized is every BMP header variant widened to a common shape, with
// sentinel defaults applied for fields a variant doesn't carry.
type normalized struct {
	width, height       int32
	bitsPerPixel        uint16
	compression         uint32
	sizeOfBitmap        uint32
	colorsUsed          uint32
	rMask, gMask, bMask, aMask uint32
	colorSpaceCalibrated bool
}

// CheckSignature reports whether r begins with the 2-byte 'BM' magic,
// restoring position on failure.
func CheckSignature(r io.ReadSeeker) (bool, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}
	var buf [2]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil || n != 2 {
		r.Seek(start, io.SeekStart)
		return false, nil
	}
	if buf[0] != 'B' || buf[1] != 'M' {
		r.Seek(start, io.SeekStart)
		return false, nil
	}
	return true, nil
}

// Decode parses a BMP stream (positioned just past the 2-byte signature)
// and writes its single surface into alloc.
func Decode(rs io.ReadSeeker, alloc texalloc.Allocator, opts Options) error {
	sr := streamio.New(rs)

	fileSize, ok, err := sr.ReadU32LE()
	if err != nil || !ok {
		return readHeaderErr(err)
	}
	_ = fileSize
	if _, ok, err := sr.ReadU16LE(); err != nil || !ok {
		return readHeaderErr(err)
	}
	if _, ok, err := sr.ReadU16LE(); err != nil || !ok {
		return readHeaderErr(err)
	}
	bitmapOffset, ok, err := sr.ReadU32LE()
	if err != nil || !ok {
		return readHeaderErr(err)
	}

	headerSize, ok, err := sr.ReadU32LE()
	if err != nil || !ok {
		return readHeaderErr(err)
	}

	n, pal, err := readVariant(sr, headerSize)
	if err != nil {
		return err
	}

	width := n.width
	height := n.height
	if headerSize == 12 && height == math.MinInt16 {
		return texerr.New(texerr.InvalidDataInImage, "bmp core header height is MinInt16")
	}
	topDown := height < 0
	if height < 0 {
		height = -height
	}
	if width < 0 {
		width = -width
	}
	if width == 0 || height == 0 {
		return texerr.New(texerr.InvalidDataInImage, "bmp has zero width or height")
	}
	if uint32(width) > texture.MaxExtent || uint32(height) > texture.MaxExtent {
		return texerr.New(texerr.DimensionsTooLarge, "bmp width/height exceeds maximum")
	}

	switch n.bitsPerPixel {
	case 1, 2, 4, 8, 16, 24, 32:
	default:
		return texerr.New(texerr.InvalidDataInImage, "bmp has unsupported bits-per-pixel")
	}
	switch n.compression {
	case compressionRGB, compressionRLE8, compressionRLE4, compressionBitfields, compressionAlphaBitfields:
	case compressionJPEG, compressionPNG:
		return texerr.New(texerr.UnsupportedFeature, "bmp embedded jpeg/png compression is not supported")
	default:
		return texerr.New(texerr.InvalidDataInImage, "bmp has unrecognized compression")
	}

	applyDefaultMasks(&n)

	format, padded := nativeFormat(n, opts)
	if opts.AssumeSRGB && n.colorSpaceCalibrated {
		if twin, ok := pixfmt.SRGBTwin(format); ok {
			format = twin
		}
	}

	native := pixfmt.FormatLayout(format)
	wider := pixfmt.WiderLayouts(native)
	chosenLayout, err := texalloc.NegotiateLayout(alloc, native, wider)
	if err != nil {
		return err
	}
	chosenFormat, err := texalloc.NegotiateFormat(alloc, chosenLayout, []pixfmt.Format{format})
	if err != nil {
		return err
	}
	_ = padded

	params := texture.TextureParams{
		Format:    chosenFormat,
		Dimension: texture.Dimension2D,
		Extent:    texture.Extent{Width: uint32(width), Height: uint32(height), Depth: 1},
		ArraySize: 1,
		Faces:     1,
		Mips:      1,
	}
	if !params.Valid() {
		return texerr.New(texerr.InvalidDataInImage, "bmp texture params failed validation")
	}
	if err := texalloc.AllocateAll(alloc, params); err != nil {
		return err
	}

	if err := sr.SeekAbs(int64(bitmapOffset)); err != nil {
		return texerr.Wrap(texerr.NotEnoughData, "seek to bitmap data", err)
	}

	rows, err := decodePixels(sr, n, int(width), int(height), pal)
	if err != nil {
		return err
	}

	key := texture.MipSurfaceKey{ArraySlice: 0, Face: 0, Mip: 0}
	dst, err := alloc.AccessTextureData(0, key)
	if err != nil {
		return texerr.Wrap(texerr.TextureAllocationFailed, "access surface", err)
	}
	fi := pixfmt.Info(chosenFormat)
	writeSurface(dst, rows, int(width), int(height), topDown, fi)

	return nil
}

func readHeaderErr(err error) error {
	if err != nil {
		return texerr.Wrap(texerr.CouldNotReadHeader, "read bmp header", err)
	}
	return texerr.New(texerr.CouldNotReadHeader, "bmp stream ended during header")
}

func applyDefaultMasks(n *normalized) {
	if (n.compression == compressionBitfields || n.compression == compressionAlphaBitfields) &&
		n.rMask == 0 && n.gMask == 0 && n.bMask == 0 {
		switch n.bitsPerPixel {
		case 16:
			n.rMask, n.gMask, n.bMask = 0x7c00, 0x03e0, 0x001f
		case 32:
			n.rMask, n.gMask, n.bMask = 0x00ff0000, 0x0000ff00, 0x000000ff
		}
	}
}

// nativeFormat picks the destination layout's best format per spec §4.F:
// 8888 for palette/padded, 888 otherwise; 16-bit inputs keep their mask
// shape. padded reports whether an alpha channel was synthesized.
func nativeFormat(n normalized, opts Options) (pixfmt.Format, bool) {
	switch n.bitsPerPixel {
	case 1, 2, 4, 8:
		if opts.PadRGBWithAlpha {
			return pixfmt.R8G8B8A8_UNORM, true
		}
		return pixfmt.R8G8B8A8_UNORM, true
	case 16:
		if n.rMask == 0xf800 && n.gMask == 0x07e0 && n.bMask == 0x001f {
			return pixfmt.R5G6B5_UNORM, false
		}
		return pixfmt.A1R5G5B5_UNORM, false
	case 24:
		if opts.PadRGBWithAlpha {
			return pixfmt.R8G8B8A8_UNORM, true
		}
		return pixfmt.R8G8B8_UNORM, false
	case 32:
		return pixfmt.R8G8B8A8_UNORM, true
	default:
		return pixfmt.R8G8B8A8_UNORM, true
	}
}

func decodePixels(sr *streamio.Reader, n normalized, width, height int, pal []pixconv.RGBA8) ([][]pixconv.RGBA8, error) {
	rows := make([][]pixconv.RGBA8, height)
	for i := range rows {
		rows[i] = make([]pixconv.RGBA8, width)
	}

	switch n.compression {
	case compressionRLE4, compressionRLE8:
		size := n.sizeOfBitmap
		if size == 0 {
			remaining, err := sr.Size()
			if err != nil {
				return nil, texerr.Wrap(texerr.NotEnoughData, "stat stream", err)
			}
			cur, _ := sr.Tell()
			size = uint32(remaining - cur)
		}
		data, ok, err := sr.ReadBytes(int(size))
		if err != nil {
			return nil, texerr.Wrap(texerr.NotEnoughData, "read rle data", err)
		}
		if !ok {
			return nil, texerr.New(texerr.NotEnoughData, "bmp rle stream truncated")
		}
		var grid [][]uint8
		if n.compression == compressionRLE4 {
			grid, err = pixconv.RLEExpandBMP4(data, width, height)
		} else {
			grid, err = pixconv.RLEExpandBMP8(data, width, height)
		}
		if err != nil {
			return nil, texerr.Wrap(texerr.InvalidDataInImage, "expand rle", err)
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				rows[y][x] = pixconv.ResolveIndex(pal, grid[y][x])
			}
		}
		return rows, nil

	default:
		pitch := rowdecode.RowPitch(width, int(n.bitsPerPixel))
		for y := 0; y < height; y++ {
			row, ok, err := sr.ReadBytes(pitch)
			if err != nil {
				return nil, texerr.Wrap(texerr.NotEnoughData, "read bmp row", err)
			}
			if !ok {
				return nil, texerr.New(texerr.NotEnoughData, "bmp pixel data truncated")
			}
			switch n.bitsPerPixel {
			case 1:
				rowdecode.Palette1(row, width, pal, rows[y])
			case 2:
				rowdecode.Palette2(row, width, pal, rows[y])
			case 4:
				rowdecode.Palette4(row, width, pal, rows[y])
			case 8:
				rowdecode.Palette8(row, width, pal, rows[y])
			case 16:
				rowdecode.Packed16(row, width, n.rMask, n.gMask, n.bMask, n.aMask, rows[y])
			case 24:
				rowdecode.Direct24(row, width, rows[y])
			case 32:
				rowdecode.Direct32(row, width, n.rMask, n.gMask, n.bMask, n.aMask, rows[y])
			}
		}
		return rows, nil
	}
}

// writeSurface packs decoded RGBA8 rows into dst in the chosen GPU
// format's byte layout, honoring BMP row direction (positive on-disk
// height means row 0 of `rows` is the bottom of the image).
func writeSurface(dst []byte, rows [][]pixconv.RGBA8, width, height int, topDown bool, fi pixfmt.FormatInfo) {
	bypp := int(fi.BlockByteSize)
	pitch := width * bypp
	for y := 0; y < height; y++ {
		var srcRow []pixconv.RGBA8
		if topDown {
			srcRow = rows[y]
		} else {
			srcRow = rows[height-1-y]
		}
		base := y * pitch
		for x := 0; x < width; x++ {
			px := srcRow[x]
			off := base + x*bypp
			packPixel(dst[off:off+bypp], px, fi)
		}
	}
}

func packPixel(dst []byte, px pixconv.RGBA8, fi pixfmt.FormatInfo) {
	switch {
	case pixfmt.Is8888UNorm(fi.Format) || fi.Format == pixfmt.R8G8B8A8_SRGB || fi.Format == pixfmt.B8G8R8A8_SRGB:
		if fi.Format == pixfmt.R8G8B8A8_UNORM || fi.Format == pixfmt.R8G8B8A8_SRGB {
			dst[0], dst[1], dst[2], dst[3] = px.R, px.G, px.B, px.A
		} else {
			dst[0], dst[1], dst[2], dst[3] = px.B, px.G, px.R, px.A
		}
	case fi.Format == pixfmt.R8G8B8_UNORM || fi.Format == pixfmt.R8G8B8_SRGB:
		dst[0], dst[1], dst[2] = px.R, px.G, px.B
	case fi.Format == pixfmt.B8G8R8_UNORM || fi.Format == pixfmt.B8G8R8_SRGB:
		dst[0], dst[1], dst[2] = px.B, px.G, px.R
	case fi.Format == pixfmt.R5G6B5_UNORM:
		v := uint16(px.R>>3)<<11 | uint16(px.G>>2)<<5 | uint16(px.B>>3)
		dst[0], dst[1] = byte(v), byte(v>>8)
	case fi.Format == pixfmt.A1R5G5B5_UNORM:
		var a uint16
		if px.A != 0 {
			a = 1
		}
		v := a<<15 | uint16(px.R>>3)<<10 | uint16(px.G>>3)<<5 | uint16(px.B>>3)
		dst[0], dst[1] = byte(v), byte(v>>8)
	default:
		for i := range dst {
			dst[i] = 0
		}
	}
}
