// Package ktx decodes KTX v1 containers: the 12-byte identifier, the
// GL-style 52-byte header, the key/value metadata block, and the
// mip×array×face surface walk with its 4-byte padding between surfaces.
package ktx

import (
	"io"

	"github.com/goopsie/teximp/internal/streamio"
	"github.com/goopsie/teximp/internal/texerr"
	"github.com/goopsie/teximp/pixfmt"
	"github.com/goopsie/teximp/texalloc"
	"github.com/goopsie/teximp/texture"
)

// Options configures KTX-specific decode preferences.
type Options struct {
	AssumeSRGB bool
}

var fileIdentifier = [12]byte{0xAB, 'K', 'T', 'X', ' ', '1', '1', 0xBB, '\r', '\n', 0x1A, '\n'}

const (
	endiannessNative    = 0x04030201
	endiannessByteSwap  = 0x01020304
)

// KeyValue is one entry of the KTX key/value metadata block, preserved in
// file order; duplicate keys are allowed.
type KeyValue struct {
	Key   string
	Value []byte
}

type header struct {
	Endianness          uint32
	GLType              uint32
	GLTypeSize          uint32
	GLFormat            uint32
	GLInternalFormat    uint32
	GLBaseInternalFormat uint32
	PixelWidth          uint32
	PixelHeight         uint32
	PixelDepth          uint32
	NumberOfArrayElements uint32
	NumberOfFaces       uint32
	NumberOfMipmapLevels uint32
	BytesOfKeyValueData uint32
}

// CheckSignature reports whether r begins with the KTX v1 identifier,
// restoring position on failure.
func CheckSignature(r io.ReadSeeker) (bool, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}
	var buf [12]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil || n != 12 {
		r.Seek(start, io.SeekStart)
		return false, nil
	}
	if buf != fileIdentifier {
		r.Seek(start, io.SeekStart)
		return false, nil
	}
	return true, nil
}

// Decode parses a KTX v1 stream (positioned just past the identifier) and
// writes every surface into alloc.
func Decode(rs io.ReadSeeker, alloc texalloc.Allocator, opts Options) error {
	sr := streamio.New(rs)

	var hdr header
	ok, err := sr.ReadStruct(&hdr)
	if err != nil {
		return texerr.Wrap(texerr.CouldNotReadHeader, "read ktx header", err)
	}
	if !ok {
		return texerr.New(texerr.CouldNotReadHeader, "ktx header truncated")
	}
	if hdr.Endianness == endiannessByteSwap {
		return texerr.New(texerr.UnsupportedFeature, "ktx byte-swapped endianness is not supported")
	}
	if hdr.Endianness != endiannessNative {
		return texerr.New(texerr.CouldNotReadHeader, "ktx endianness field is neither native nor byte-swapped")
	}
	if hdr.PixelWidth > texture.MaxExtent || hdr.PixelHeight > texture.MaxExtent {
		return texerr.New(texerr.DimensionsTooLarge, "ktx width/height exceeds maximum")
	}

	kvs, err := readKeyValueData(sr, hdr.BytesOfKeyValueData)
	if err != nil {
		return err
	}
	_ = kvs

	format, ok := glFormatTable[glKey{hdr.GLInternalFormat, hdr.GLFormat, hdr.GLType}]
	if !ok {
		return texerr.New(texerr.UnknownFormat, "no GPU format mapping for this GL format triple")
	}
	fi := pixfmt.Info(format)
	if opts.AssumeSRGB && !fi.SRGB {
		if twin, ok := pixfmt.SRGBTwin(format); ok && pixfmt.Info(twin).SRGB {
			format = twin
			fi = pixfmt.Info(format)
		}
	}

	dimension := texture.Dimension2D
	switch {
	case hdr.NumberOfFaces > 1:
		dimension = texture.DimensionCube
	case hdr.PixelHeight == 0:
		dimension = texture.Dimension1D
	case hdr.PixelDepth > 0:
		dimension = texture.Dimension3D
	}

	arraySize := hdr.NumberOfArrayElements
	if arraySize == 0 {
		arraySize = 1
	}
	faces := hdr.NumberOfFaces
	if faces == 0 {
		faces = 1
	}
	mips := hdr.NumberOfMipmapLevels
	if mips == 0 {
		mips = 1
	}
	height := hdr.PixelHeight
	if height == 0 {
		height = 1
	}
	depth := hdr.PixelDepth
	if depth == 0 {
		depth = 1
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
		Dimension: dimension,
		Extent:    texture.Extent{Width: hdr.PixelWidth, Height: height, Depth: depth},
		ArraySize: arraySize,
		Faces:     faces,
		Mips:      mips,
	}
	if !params.Valid() {
		return texerr.New(texerr.InvalidDataInImage, "ktx texture params failed validation")
	}
	if err := texalloc.AllocateAll(alloc, params); err != nil {
		return err
	}

	for mip := uint32(0); mip < mips; mip++ {
		if _, ok, err := sr.ReadU32LE(); err != nil || !ok { // imageSize, advisory
			return texerr.New(texerr.NotEnoughData, "ktx stream ended before mip image size")
		}
		mipExtent := params.Extent.MipExtent(mip)
		surfaceSize := texture.SurfaceByteSize(mipExtent, chosenFI.BlockByteSize, chosenFI.Block.X, chosenFI.Block.Y)

		for slice := uint32(0); slice < arraySize; slice++ {
			for face := uint32(0); face < faces; face++ {
				buf, ok, err := sr.ReadBytes(int(surfaceSize))
				if err != nil {
					return texerr.Wrap(texerr.NotEnoughData, "read ktx surface", err)
				}
				if !ok {
					return texerr.New(texerr.NotEnoughData, "ktx surface truncated")
				}
				key := texture.MipSurfaceKey{ArraySlice: slice, Face: face, Mip: mip}
				dst, err := alloc.AccessTextureData(0, key)
				if err != nil {
					return texerr.Wrap(texerr.TextureAllocationFailed, "access surface", err)
				}
				copy(dst, buf)

				// Between surfaces, skip up to the next 4-byte boundary.
				// 1-byte-block formats carry a quirk: even when surfaceSize
				// is already a multiple of 4 (padding computes to 0), at
				// least one byte is still skipped.
				pad := padding(surfaceSize)
				if pad == 0 && chosenFI.BlockByteSize == 1 {
					pad = 1
				}
				if pad > 0 {
					if _, ok, err := sr.ReadBytes(int(pad)); err != nil || !ok {
						return texerr.New(texerr.NotEnoughData, "ktx inter-surface padding truncated")
					}
				}
			}
		}
	}

	return nil
}

// padding returns the number of bytes needed to round n up to the next
// multiple of 4, i.e. (4 - (n%4)) % 4.
func padding(n uint32) uint32 {
	return (4 - (n % 4)) % 4
}

func readKeyValueData(sr *streamio.Reader, totalBytes uint32) ([]KeyValue, error) {
	var out []KeyValue
	remaining := int64(totalBytes)
	for remaining > 0 {
		length, ok, err := sr.ReadU32LE()
		if err != nil {
			return nil, texerr.Wrap(texerr.CouldNotReadHeader, "read ktx kv length", err)
		}
		if !ok {
			return nil, texerr.New(texerr.CouldNotReadHeader, "ktx kv block truncated")
		}
		remaining -= 4
		data, ok, err := sr.ReadBytes(int(length))
		if err != nil {
			return nil, texerr.Wrap(texerr.CouldNotReadHeader, "read ktx kv entry", err)
		}
		if !ok {
			return nil, texerr.New(texerr.CouldNotReadHeader, "ktx kv entry truncated")
		}
		remaining -= int64(length)

		nul := -1
		for i, b := range data {
			if b == 0 {
				nul = i
				break
			}
		}
		if nul < 0 {
			out = append(out, KeyValue{Key: string(data)})
		} else {
			out = append(out, KeyValue{Key: string(data[:nul]), Value: data[nul+1:]})
		}

		pad := padding(length)
		if pad > 0 {
			if _, ok, err := sr.ReadBytes(int(pad)); err != nil || !ok {
				return nil, texerr.New(texerr.CouldNotReadHeader, "ktx kv padding truncated")
			}
			remaining -= int64(pad)
		}
	}
	return out, nil
}

type glKey struct {
	internalFormat, format, glType uint32
}

// glFormatTable is a pure table from (GLInternalFormat, GLFormat, GLType)
// to GPU format, covering a few uncompressed 8-bit formats plus the S3TC,
// RGTC and ETC2/EAC compressed formats this module supports. GLType 0 marks a compressed internal
// format (GLFormat and GLType are both 0 for those per the KTX spec).
var glFormatTable = map[glKey]pixfmt.Format{
	{0x8058, 0x1908, 0x1401}: pixfmt.R8G8B8A8_UNORM, // GL_RGBA8, GL_RGBA, GL_UNSIGNED_BYTE
	{0x8C43, 0x1908, 0x1401}: pixfmt.R8G8B8A8_SRGB,  // GL_SRGB8_ALPHA8
	{0x8051, 0x1907, 0x1401}: pixfmt.R8G8B8_UNORM,   // GL_RGB8, GL_RGB
	{0x8C41, 0x1907, 0x1401}: pixfmt.R8G8B8_SRGB,    // GL_SRGB8
	{0x8229, 0x1903, 0x1401}: pixfmt.R8_UNORM,       // GL_R8, GL_RED
	{0x822B, 0x8227, 0x1401}: pixfmt.R8G8_UNORM,     // GL_RG8, GL_RG

	{0x83F1, 0, 0}: pixfmt.BC1_RGBA_UNORM_BLOCK, // GL_COMPRESSED_RGBA_S3TC_DXT1_EXT
	{0x8C4D, 0, 0}: pixfmt.BC1_RGBA_SRGB_BLOCK,  // GL_COMPRESSED_SRGB_ALPHA_S3TC_DXT1_EXT
	{0x83F2, 0, 0}: pixfmt.BC2_UNORM_BLOCK,      // DXT3
	{0x8C4E, 0, 0}: pixfmt.BC2_SRGB_BLOCK,
	{0x83F3, 0, 0}: pixfmt.BC3_UNORM_BLOCK, // DXT5
	{0x8C4F, 0, 0}: pixfmt.BC3_SRGB_BLOCK,
	{0x8DBB, 0, 0}: pixfmt.BC4_UNORM_BLOCK, // GL_COMPRESSED_RED_RGTC1
	{0x8DBC, 0, 0}: pixfmt.BC4_SNORM_BLOCK,
	{0x8DBD, 0, 0}: pixfmt.BC5_UNORM_BLOCK, // GL_COMPRESSED_RG_RGTC2
	{0x8DBE, 0, 0}: pixfmt.BC5_SNORM_BLOCK,
	{0x9274, 0, 0}: pixfmt.ETC2_R8G8B8_UNORM_BLOCK, // GL_COMPRESSED_RGB8_ETC2
	{0x9275, 0, 0}: pixfmt.ETC2_R8G8B8_SRGB_BLOCK,
	{0x9278, 0, 0}: pixfmt.ETC2_R8G8B8A8_UNORM_BLOCK, // GL_COMPRESSED_RGBA8_ETC2_EAC
	{0x9279, 0, 0}: pixfmt.ETC2_R8G8B8A8_SRGB_BLOCK,
	{0x9270, 0, 0}: pixfmt.EAC_R11_UNORM_BLOCK, // GL_COMPRESSED_R11_EAC
}
