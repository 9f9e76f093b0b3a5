// Package tga decodes Truevision TGA files: the 18-byte header, the six
// image-type decode paths (uncompressed/RLE × true-color/color-map/gray),
// the optional footer/extension area that governs alpha policy, and the
// image-origin-derived row direction.
package tga

import (
	"io"

	"github.com/goopsie/teximp/internal/streamio"
	"github.com/goopsie/teximp/internal/texerr"
	"github.com/goopsie/teximp/pixconv"
	"github.com/goopsie/teximp/pixfmt"
	"github.com/goopsie/teximp/texalloc"
	"github.com/goopsie/teximp/texture"
)

// Options configures TGA-specific decode preferences.
type Options struct {
	PadRGBWithAlpha bool
	AssumeSRGB      bool
}

const footerSignature = "TRUEVISION-XFILE.\x00"

const (
	imageTypeColorMap        = 1
	imageTypeTrueColor       = 2
	imageTypeGray            = 3
	imageTypeRLEColorMap     = 9
	imageTypeRLETrueColor    = 10
	imageTypeRLEGray         = 11
)

const (
	attrNoAlpha               = 0
	attrUndefinedIgnore       = 1
	attrUndefinedKeep         = 2
	attrAlpha                 = 3
	attrPreMultAlpha          = 4
)

type header struct {
	IDLength        uint8
	ColorMapType    uint8
	ImageType       uint8
	CMFirstEntry    uint16
	CMLength        uint16
	CMEntrySize     uint8
	XOrigin         uint16
	YOrigin         uint16
	Width           uint16
	Height          uint16
	PixelDepth      uint8
	ImageDescriptor uint8
}

// CheckSignature validates the header fields at the top of the file (TGA
// has no leading magic; the real signature is the trailing footer, which
// this function does not require — see Decode for the footer check).
func CheckSignature(r io.ReadSeeker) (bool, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}
	var buf [18]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil || n != 18 {
		r.Seek(start, io.SeekStart)
		return false, nil
	}
	imageType := buf[2]
	switch imageType {
	case imageTypeColorMap, imageTypeTrueColor, imageTypeGray,
		imageTypeRLEColorMap, imageTypeRLETrueColor, imageTypeRLEGray:
	default:
		r.Seek(start, io.SeekStart)
		return false, nil
	}
	width := uint16(buf[12]) | uint16(buf[13])<<8
	height := uint16(buf[14]) | uint16(buf[15])<<8
	if width == 0 || height == 0 {
		r.Seek(start, io.SeekStart)
		return false, nil
	}
	r.Seek(start, io.SeekStart)
	return true, nil
}

// Decode parses a TGA stream (positioned at its start) and writes its
// single surface into alloc.
func Decode(rs io.ReadSeeker, alloc texalloc.Allocator, opts Options) error {
	sr := streamio.New(rs)

	var hdr header
	ok, err := sr.ReadStruct(&hdr)
	if err != nil {
		return texerr.Wrap(texerr.CouldNotReadHeader, "read tga header", err)
	}
	if !ok {
		return texerr.New(texerr.CouldNotReadHeader, "tga header truncated")
	}
	if uint32(hdr.Width) > texture.MaxExtent || uint32(hdr.Height) > texture.MaxExtent {
		return texerr.New(texerr.DimensionsTooLarge, "tga width/height exceeds maximum")
	}

	origin := (hdr.ImageDescriptor >> 4) & 0x3
	if origin == 1 || origin == 3 { // LR, UR
		return texerr.New(texerr.UnsupportedFeature, "tga right-origin image is not supported")
	}
	topDown := origin == 2 // UL

	keepAlpha, err := resolveAlphaPolicy(sr, hdr)
	if err != nil {
		return err
	}

	if _, ok, err := sr.ReadBytes(int(hdr.IDLength)); err != nil || !ok {
		return texerr.Wrap(texerr.CouldNotReadHeader, "skip tga image id", err)
	}

	var palette []pixconv.RGBA8
	if hdr.ColorMapType == 1 {
		palette, err = readColorMap(sr, hdr)
		if err != nil {
			return err
		}
	}

	width, height := int(hdr.Width), int(hdr.Height)
	rows, err := decodeRows(sr, hdr, palette, width, height)
	if err != nil {
		return err
	}

	format := nativeFormat(hdr, opts, keepAlpha)
	if opts.AssumeSRGB {
		if twin, ok := pixfmt.SRGBTwin(format); ok && pixfmt.Info(twin).SRGB {
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
	chosenFI := pixfmt.Info(chosenFormat)

	params := texture.TextureParams{
		Format:    chosenFormat,
		Dimension: texture.Dimension2D,
		Extent:    texture.Extent{Width: uint32(width), Height: uint32(height), Depth: 1},
		ArraySize: 1,
		Faces:     1,
		Mips:      1,
	}
	if !params.Valid() {
		return texerr.New(texerr.InvalidDataInImage, "tga texture params failed validation")
	}
	if err := texalloc.AllocateAll(alloc, params); err != nil {
		return err
	}

	key := texture.MipSurfaceKey{ArraySlice: 0, Face: 0, Mip: 0}
	dst, err := alloc.AccessTextureData(0, key)
	if err != nil {
		return texerr.Wrap(texerr.TextureAllocationFailed, "access surface", err)
	}
	writeSurface(dst, rows, width, height, topDown, chosenFI, keepAlpha)

	return nil
}

func resolveAlphaPolicy(sr *streamio.Reader, hdr header) (bool, error) {
	pos, err := sr.Tell()
	if err != nil {
		return false, texerr.Wrap(texerr.FailedToReadFile, "tell", err)
	}
	size, err := sr.Size()
	if err != nil {
		return false, texerr.Wrap(texerr.FailedToReadFile, "stat", err)
	}
	if size >= 26 {
		if err := sr.SeekEnd(-26); err != nil {
			return false, texerr.Wrap(texerr.FailedToReadFile, "seek footer", err)
		}
		extOffset, ok, err := sr.ReadU32LE()
		var signature []byte
		if err == nil && ok {
			if _, ok, err = sr.ReadU32LE(); err == nil && ok { // developer directory offset
				signature, ok, err = sr.ReadBytes(len(footerSignature))
			}
		}
		if err == nil && ok && string(signature) == footerSignature && extOffset > 0 {
			if err := sr.SeekAbs(int64(extOffset)); err == nil {
				if _, ok, err := sr.ReadBytes(494); err == nil && ok {
					attrType, ok, err := sr.ReadU8()
					if err == nil && ok {
						sr.SeekAbs(pos)
						switch attrType {
						case attrNoAlpha, attrUndefinedIgnore:
							return false, nil
						case attrUndefinedKeep, attrAlpha, attrPreMultAlpha:
							return true, nil
						}
					}
				}
			}
		}
	}
	if err := sr.SeekAbs(pos); err != nil {
		return false, texerr.Wrap(texerr.FailedToReadFile, "seek back", err)
	}
	return (hdr.ImageDescriptor & 0xf) > 0, nil
}

func readColorMap(sr *streamio.Reader, hdr header) ([]pixconv.RGBA8, error) {
	entryBytes := int(hdr.CMEntrySize) / 8
	pal := make([]pixconv.RGBA8, int(hdr.CMLength))
	for i := range pal {
		entry, ok, err := sr.ReadBytes(entryBytes)
		if err != nil {
			return nil, texerr.Wrap(texerr.CouldNotReadHeader, "read tga color map", err)
		}
		if !ok {
			return nil, texerr.New(texerr.CouldNotReadHeader, "tga color map truncated")
		}
		switch entryBytes {
		case 2:
			v := uint16(entry[0]) | uint16(entry[1])<<8
			pal[i] = pixconv.Unpack5551(v)
		case 3:
			pal[i] = pixconv.RGBA8{B: entry[0], G: entry[1], R: entry[2], A: 255}
		case 4:
			pal[i] = pixconv.RGBA8{B: entry[0], G: entry[1], R: entry[2], A: entry[3]}
		}
	}
	return pal, nil
}

func decodeRows(sr *streamio.Reader, hdr header, palette []pixconv.RGBA8, width, height int) ([][]pixconv.RGBA8, error) {
	rows := make([][]pixconv.RGBA8, height)
	for i := range rows {
		rows[i] = make([]pixconv.RGBA8, width)
	}

	bypp := int(hdr.PixelDepth) / 8
	if hdr.PixelDepth == 15 {
		bypp = 2
	}

	readPixel := func() (pixconv.RGBA8, error) {
		raw, ok, err := sr.ReadBytes(bypp)
		if err != nil {
			return pixconv.RGBA8{}, texerr.Wrap(texerr.NotEnoughData, "read tga pixel", err)
		}
		if !ok {
			return pixconv.RGBA8{}, texerr.New(texerr.NotEnoughData, "tga pixel data truncated")
		}
		return decodeRawPixel(raw, hdr, palette)
	}

	switch hdr.ImageType {
	case imageTypeColorMap, imageTypeTrueColor, imageTypeGray:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				px, err := readPixel()
				if err != nil {
					return nil, err
				}
				rows[y][x] = px
			}
		}
		return rows, nil

	case imageTypeRLEColorMap, imageTypeRLETrueColor, imageTypeRLEGray:
		x, y := 0, 0
		for y < height {
			ctrl, ok, err := sr.ReadU8()
			if err != nil {
				return nil, texerr.Wrap(texerr.NotEnoughData, "read tga rle control byte", err)
			}
			if !ok {
				return nil, texerr.New(texerr.NotEnoughData, "tga rle stream truncated")
			}
			isRun := ctrl&0x80 != 0
			count := int(ctrl&0x7f) + 1

			if isRun {
				raw, ok, err := sr.ReadBytes(bypp)
				if err != nil || !ok {
					return nil, texerr.New(texerr.NotEnoughData, "tga rle run pixel truncated")
				}
				px, err := decodeRawPixel(raw, hdr, palette)
				if err != nil {
					return nil, err
				}
				for i := 0; i < count; i++ {
					if y >= height {
						return nil, texerr.New(texerr.InvalidDataInImage, "tga rle run overruns image")
					}
					rows[y][x] = px
					x++
					if x >= width {
						x = 0
						y++
					}
				}
			} else {
				for i := 0; i < count; i++ {
					if y >= height {
						return nil, texerr.New(texerr.InvalidDataInImage, "tga rle literal overruns image")
					}
					px, err := readPixel()
					if err != nil {
						return nil, err
					}
					rows[y][x] = px
					x++
					if x >= width {
						x = 0
						y++
					}
				}
			}
		}
		return rows, nil

	default:
		return nil, texerr.New(texerr.InvalidDataInImage, "unrecognized tga image type")
	}
}

func decodeRawPixel(raw []byte, hdr header, palette []pixconv.RGBA8) (pixconv.RGBA8, error) {
	switch hdr.ImageType {
	case imageTypeColorMap, imageTypeRLEColorMap:
		return pixconv.ResolveIndex(palette, raw[0]), nil
	case imageTypeGray, imageTypeRLEGray:
		if len(raw) >= 2 {
			return pixconv.GrayToRGBA(raw[0], raw[1]), nil
		}
		return pixconv.GrayToRGB(raw[0]), nil
	case imageTypeTrueColor, imageTypeRLETrueColor:
		switch len(raw) {
		case 2:
			v := uint16(raw[0]) | uint16(raw[1])<<8
			return pixconv.Unpack5551(v), nil
		case 3:
			return pixconv.RGBA8{B: raw[0], G: raw[1], R: raw[2], A: 255}, nil
		case 4:
			return pixconv.RGBA8{B: raw[0], G: raw[1], R: raw[2], A: raw[3]}, nil
		}
	}
	return pixconv.RGBA8{}, texerr.New(texerr.InvalidDataInImage, "unsupported tga pixel depth")
}

func nativeFormat(hdr header, opts Options, keepAlpha bool) pixfmt.Format {
	switch hdr.PixelDepth {
	case 8:
		return pixfmt.R8G8B8A8_UNORM
	case 15:
		return pixfmt.A1R5G5B5_UNORM
	case 16:
		return pixfmt.A1R5G5B5_UNORM
	case 24:
		if opts.PadRGBWithAlpha {
			return pixfmt.R8G8B8A8_UNORM
		}
		return pixfmt.R8G8B8_UNORM
	case 32:
		return pixfmt.R8G8B8A8_UNORM
	default:
		return pixfmt.R8G8B8A8_UNORM
	}
}

func writeSurface(dst []byte, rows [][]pixconv.RGBA8, width, height int, topDown bool, fi pixfmt.FormatInfo, keepAlpha bool) {
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
			if !keepAlpha {
				px.A = 255
			}
			off := base + x*bypp
			packPixel(dst[off:off+bypp], px, fi)
		}
	}
}

func packPixel(dst []byte, px pixconv.RGBA8, fi pixfmt.FormatInfo) {
	switch fi.Format {
	case pixfmt.R8G8B8A8_UNORM, pixfmt.R8G8B8A8_SRGB:
		dst[0], dst[1], dst[2], dst[3] = px.R, px.G, px.B, px.A
	case pixfmt.R8G8B8_UNORM, pixfmt.R8G8B8_SRGB:
		dst[0], dst[1], dst[2] = px.R, px.G, px.B
	case pixfmt.A1R5G5B5_UNORM:
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
