// Package dds decodes DDS (DirectDraw Surface) containers: the legacy
// DDS_PIXELFORMAT mask/FourCC encodings plus the DX10 extension header,
// cubemap/volume/array dimension resolution, and the mip×face×array
// surface walk. Adapted from the DDS header parsing in the teacher's
// cmd/texconv, generalized from "decode straight to PNG" into the
// negotiate-then-write-surfaces contract every decoder in this module uses.
package dds

import (
	"encoding/binary"
	"io"

	"github.com/goopsie/teximp/internal/streamio"
	"github.com/goopsie/teximp/internal/texerr"
	"github.com/goopsie/teximp/pixfmt"
	"github.com/goopsie/teximp/texalloc"
	"github.com/goopsie/teximp/texture"
)

// Options configures DDS-specific decode preferences.
type Options struct {
	AssumeSRGB bool
}

const magic = 0x20534444 // "DDS "

const (
	ddsFlagMipMapCount = 0x00020000

	ddpfAlphaPixels = 0x00000001
	ddpfFourCC      = 0x00000004
	ddpfRGB         = 0x00000040
	ddpfLuminance   = 0x00020000

	caps2Cubemap = 0x00000200
	caps2Volume  = 0x00200000

	cubemapAllFaces = 0x0000FC00 // POSITIVEX..NEGATIVEZ, all 6 bits

	miscTextureCube = 0x4
)

var cubemapFaceBits = [6]uint32{0x400, 0x800, 0x1000, 0x2000, 0x4000, 0x8000}

type pixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      [4]byte
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

type fileHeader struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       pixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

type dx10Header struct {
	DXGIFormat        uint32
	ResourceDimension uint32
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}

// CheckSignature reports whether r begins with the DDS magic, restoring
// the stream position to just past the 4-byte signature on success and to
// its original position on failure.
func CheckSignature(r io.ReadSeeker) (bool, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}
	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil || n != 4 {
		r.Seek(start, io.SeekStart)
		return false, nil
	}
	if binary.LittleEndian.Uint32(buf[:]) != magic {
		r.Seek(start, io.SeekStart)
		return false, nil
	}
	return true, nil
}

// Decode parses a DDS stream (positioned just past the signature) and
// writes every surface into alloc.
func Decode(rs io.ReadSeeker, alloc texalloc.Allocator, opts Options) error {
	sr := streamio.New(rs)

	var hdr fileHeader
	ok, err := sr.ReadStruct(&hdr)
	if err != nil {
		return texerr.Wrap(texerr.CouldNotReadHeader, "read dds header", err)
	}
	if !ok || hdr.Size != 124 || hdr.PixelFormat.Size != 32 {
		return texerr.New(texerr.CouldNotReadHeader, "malformed dds header")
	}
	if hdr.Width > texture.MaxExtent || hdr.Height > texture.MaxExtent {
		return texerr.New(texerr.DimensionsTooLarge, "dds width/height exceeds maximum")
	}

	var dx10 dx10Header
	hasDX10 := string(hdr.PixelFormat.FourCC[:]) == "DX10" && hdr.PixelFormat.Flags&ddpfFourCC != 0
	if hasDX10 {
		ok, err := sr.ReadStruct(&dx10)
		if err != nil {
			return texerr.Wrap(texerr.CouldNotReadHeader, "read dx10 header", err)
		}
		if !ok {
			return texerr.New(texerr.CouldNotReadHeader, "truncated dx10 header")
		}
	}

	format, err := resolveFormat(hdr, dx10, hasDX10)
	if err != nil {
		return err
	}
	fi := pixfmt.Info(format)
	if opts.AssumeSRGB && !fi.SRGB {
		if twin, ok := pixfmt.SRGBTwin(format); ok && pixfmt.Info(twin).SRGB {
			format = twin
			fi = pixfmt.Info(format)
		}
	}

	dimension, faceMask, arraySize, depth := resolveDimension(hdr, dx10, hasDX10)

	mips := uint32(1)
	if hdr.Flags&ddsFlagMipMapCount != 0 && hdr.MipMapCount > 0 {
		mips = hdr.MipMapCount
	}
	faces := uint32(1)
	if dimension == texture.DimensionCube {
		faces = 6
	}

	native := pixfmt.FormatLayout(format)
	wider := pixfmt.WiderLayouts(native)
	chosenLayout, err := texalloc.NegotiateLayout(alloc, native, wider)
	if err != nil {
		return err
	}
	_ = chosenLayout

	candidates := []pixfmt.Format{format}
	chosenFormat, err := texalloc.NegotiateFormat(alloc, chosenLayout, candidates)
	if err != nil {
		return err
	}
	chosenFI := pixfmt.Info(chosenFormat)

	params := texture.TextureParams{
		Format:    chosenFormat,
		Dimension: dimension,
		Extent:    texture.Extent{Width: hdr.Width, Height: hdr.Height, Depth: depth},
		ArraySize: arraySize,
		Faces:     faces,
		Mips:      mips,
	}
	if !params.Valid() {
		return texerr.New(texerr.InvalidDataInImage, "dds texture params failed validation")
	}
	if err := texalloc.AllocateAll(alloc, params); err != nil {
		return err
	}

	for slice := uint32(0); slice < arraySize; slice++ {
		for face := uint32(0); face < faces; face++ {
			if dimension == texture.DimensionCube && faceMask&cubemapFaceBits[face] == 0 {
				continue
			}
			for mip := uint32(0); mip < mips; mip++ {
				mipExtent := params.Extent.MipExtent(mip)
				size := texture.SurfaceByteSize(mipExtent, chosenFI.BlockByteSize, chosenFI.Block.X, chosenFI.Block.Y)
				buf, ok, err := sr.ReadBytes(int(size))
				if err != nil {
					return texerr.Wrap(texerr.NotEnoughData, "read dds surface", err)
				}
				if !ok {
					return texerr.New(texerr.NotEnoughData, "dds stream ended before last surface")
				}
				key := texture.MipSurfaceKey{ArraySlice: slice, Face: face, Mip: mip}
				dst, err := alloc.AccessTextureData(0, key)
				if err != nil {
					return texerr.Wrap(texerr.TextureAllocationFailed, "access surface", err)
				}
				copy(dst, buf)
			}
		}
	}

	return nil
}

func resolveDimension(hdr fileHeader, dx10 dx10Header, hasDX10 bool) (dim texture.Dimension, faceMask, arraySize, depth uint32) {
	arraySize = 1
	depth = 1

	if hdr.Caps2&caps2Cubemap != 0 {
		return texture.DimensionCube, hdr.Caps2 & cubemapAllFaces, 1, 1
	}
	if hasDX10 {
		arr := dx10.ArraySize
		if arr == 0 {
			arr = 1
		}
		if dx10.MiscFlag&miscTextureCube != 0 {
			return texture.DimensionCube, cubemapAllFaces, arr, 1
		}
		switch dx10.ResourceDimension {
		case 2: // TEXTURE1D
			return texture.Dimension1D, 0, arr, 1
		case 4: // TEXTURE3D
			d := hdr.Depth
			if d == 0 {
				d = 1
			}
			return texture.Dimension3D, 0, 1, d
		default: // TEXTURE2D
			return texture.Dimension2D, 0, arr, 1
		}
	}
	if hdr.Caps2&caps2Volume != 0 {
		d := hdr.Depth
		if d == 0 {
			d = 1
		}
		return texture.Dimension3D, 0, 1, d
	}
	if hdr.Height == 0 {
		return texture.Dimension1D, 0, 1, 1
	}
	return texture.Dimension2D, 0, 1, 1
}

func resolveFormat(hdr fileHeader, dx10 dx10Header, hasDX10 bool) (pixfmt.Format, error) {
	if hasDX10 {
		f, ok := dxgiFormatTable[dx10.DXGIFormat]
		if !ok {
			return pixfmt.Undefined, texerr.New(texerr.UnknownFormat, "unrecognized DXGI format")
		}
		return f, nil
	}

	pf := hdr.PixelFormat
	if pf.Flags&ddpfFourCC != 0 {
		key := string(pf.FourCC[:])
		if f, ok := fourCCTable[key]; ok {
			return f, nil
		}
		return pixfmt.Undefined, texerr.New(texerr.UnknownFormat, "unrecognized DDS FourCC: "+key)
	}

	// Uncompressed RGB/RGBA/Alpha/Luminance with explicit masks: scan the
	// format table for the first uncompressed entry whose bit count and
	// R/G/B/A masks match, per spec's "first match wins" rule.
	for _, f := range uncompressedCandidateOrder {
		fi := pixfmt.Info(f)
		if fi.Block.X != 1 || fi.Block.Y != 1 {
			continue
		}
		if fi.BlockByteSize*8 != pf.RGBBitCount {
			continue
		}
		if fi.RedMask != pf.RBitMask || fi.GreenMask != pf.GBitMask || fi.BlueMask != pf.BBitMask {
			continue
		}
		wantAlpha := pf.Flags&ddpfAlphaPixels != 0
		if wantAlpha && fi.AlphaMask != pf.ABitMask {
			continue
		}
		if !wantAlpha && fi.AlphaMask != 0 {
			continue
		}
		return f, nil
	}
	_ = ddpfRGB
	_ = ddpfLuminance
	return pixfmt.Undefined, texerr.New(texerr.UnknownFormat, "no uncompressed DDS format matches pixel masks")
}

// uncompressedCandidateOrder fixes the scan order for mask-based format
// resolution so matching is deterministic.
var uncompressedCandidateOrder = []pixfmt.Format{
	pixfmt.R8G8B8A8_UNORM, pixfmt.B8G8R8A8_UNORM, pixfmt.B8G8R8X8_UNORM,
	pixfmt.R8G8B8_UNORM, pixfmt.B8G8R8_UNORM,
	pixfmt.R5G6B5_UNORM, pixfmt.A1R5G5B5_UNORM, pixfmt.A4R4G4B4_UNORM,
	pixfmt.A2B10G10R10_UNORM, pixfmt.A2R10G10B10_UNORM,
	pixfmt.L8_UNORM, pixfmt.L8A8_UNORM, pixfmt.A8_UNORM, pixfmt.L16_UNORM,
	pixfmt.R8_UNORM, pixfmt.R8G8_UNORM, pixfmt.R16G16_UNORM,
}

var fourCCTable = map[string]pixfmt.Format{
	"DXT1": pixfmt.BC1_RGBA_UNORM_BLOCK,
	"DXT2": pixfmt.BC2_UNORM_BLOCK,
	"DXT3": pixfmt.BC2_UNORM_BLOCK,
	"DXT4": pixfmt.BC3_UNORM_BLOCK,
	"DXT5": pixfmt.BC3_UNORM_BLOCK,
	"ATI1": pixfmt.BC4_UNORM_BLOCK,
	"BC4U": pixfmt.BC4_UNORM_BLOCK,
	"BC4S": pixfmt.BC4_SNORM_BLOCK,
	"ATI2": pixfmt.BC5_UNORM_BLOCK,
	"BC5U": pixfmt.BC5_UNORM_BLOCK,
	"BC5S": pixfmt.BC5_SNORM_BLOCK,
}

// dxgiFormatTable maps the DX10 extension's DXGIFormat field to a GPU
// format. Only the subset of the DXGI_FORMAT enum reachable from this
// module's pixfmt.Format set is included; anything else is UnknownFormat.
var dxgiFormatTable = map[uint32]pixfmt.Format{
	2:  pixfmt.R32G32B32A32_SFLOAT,
	10: pixfmt.R16G16B16A16_SFLOAT,
	11: pixfmt.R16G16B16A16_UNORM,
	16: pixfmt.R32G32_SFLOAT,
	24: pixfmt.A2B10G10R10_UNORM,
	26: pixfmt.R11G11B10_FLOAT,
	28: pixfmt.R8G8B8A8_UNORM,
	29: pixfmt.R8G8B8A8_SRGB,
	31: pixfmt.R8G8B8A8_SNORM,
	35: pixfmt.R16G16_UNORM,
	37: pixfmt.R16G16_SNORM,
	41: pixfmt.R32_SFLOAT,
	49: pixfmt.R8G8_UNORM,
	51: pixfmt.R8G8_SNORM,
	54: pixfmt.R16_SFLOAT,
	61: pixfmt.R8_UNORM,
	71: pixfmt.BC1_RGBA_UNORM_BLOCK,
	72: pixfmt.BC1_RGBA_SRGB_BLOCK,
	74: pixfmt.BC2_UNORM_BLOCK,
	75: pixfmt.BC2_SRGB_BLOCK,
	77: pixfmt.BC3_UNORM_BLOCK,
	78: pixfmt.BC3_SRGB_BLOCK,
	80: pixfmt.BC4_UNORM_BLOCK,
	81: pixfmt.BC4_SNORM_BLOCK,
	83: pixfmt.BC5_UNORM_BLOCK,
	84: pixfmt.BC5_SNORM_BLOCK,
	85: pixfmt.R5G6B5_UNORM,
	86: pixfmt.A1R5G5B5_UNORM,
	87: pixfmt.B8G8R8A8_UNORM,
	88: pixfmt.B8G8R8X8_UNORM,
	91: pixfmt.B8G8R8A8_SRGB,
	93: pixfmt.B8G8R8X8_SRGB,
	95: pixfmt.BC6H_UFLOAT_BLOCK,
	96: pixfmt.BC6H_SFLOAT_BLOCK,
	98: pixfmt.BC7_UNORM_BLOCK,
	99: pixfmt.BC7_SRGB_BLOCK,
}
