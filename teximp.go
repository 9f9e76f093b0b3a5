// Package teximp is the importer dispatch (component J): given a path and
// an opaque byte stream, it identifies one of the supported container
// formats and drives the matching decoder against a caller-supplied
// texalloc.Allocator, returning a Result with terminal status/error state.
package teximp

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/goopsie/teximp/internal/texerr"
	"github.com/goopsie/teximp/texalloc"

	"github.com/goopsie/teximp/formats/bmp"
	"github.com/goopsie/teximp/formats/dds"
	"github.com/goopsie/teximp/formats/ktx"
	"github.com/goopsie/teximp/formats/tga"
)

// ErrorKind re-exports texerr.Kind as part of this package's public API,
// so callers never need to import the internal package directly.
type ErrorKind = texerr.Kind

const (
	ErrorKindNone                                 = texerr.None
	ErrorKindFileNotFound                         = texerr.FileNotFound
	ErrorKindFailedToOpenFile                      = texerr.FailedToOpenFile
	ErrorKindFailedToReadFile                      = texerr.FailedToReadFile
	ErrorKindSignatureNotRecognized                = texerr.SignatureNotRecognized
	ErrorKindCouldNotReadHeader                    = texerr.CouldNotReadHeader
	ErrorKindNotEnoughData                         = texerr.NotEnoughData
	ErrorKindInvalidDataInImage                    = texerr.InvalidDataInImage
	ErrorKindDimensionsTooLarge                    = texerr.DimensionsTooLarge
	ErrorKindUnknownFormat                         = texerr.UnknownFormat
	ErrorKindUnsupportedFeature                    = texerr.UnsupportedFeature
	ErrorKindConversionError                       = texerr.ConversionError
	ErrorKindInvalidTextureAllocatorFormatLayout   = texerr.InvalidTextureAllocatorFormatLayout
	ErrorKindInvalidTextureAllocatorFormat         = texerr.InvalidTextureAllocatorFormat
	ErrorKindTextureAllocationFailed               = texerr.TextureAllocationFailed
	ErrorKindUnknownFileFormat                     = texerr.UnknownFileFormat
	ErrorKindUnknown                               = texerr.Unknown
)

// Error is this package's public error type; see texerr.Error for fields.
type Error = texerr.Error

// Status is the terminal state of one import attempt.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "Loading"
	case StatusSuccess:
		return "Success"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FileFormat identifies which container format was used (or attempted).
type FileFormat int

const (
	FileFormatUnknown FileFormat = iota
	FileFormatBMP
	FileFormatDDS
	FileFormatEXR
	FileFormatJPEG
	FileFormatKTX
	FileFormatPNG
	FileFormatTGA
	FileFormatTIFF
)

func (f FileFormat) String() string {
	switch f {
	case FileFormatBMP:
		return "BMP"
	case FileFormatDDS:
		return "DDS"
	case FileFormatEXR:
		return "EXR"
	case FileFormatJPEG:
		return "JPEG"
	case FileFormatKTX:
		return "KTX"
	case FileFormatPNG:
		return "PNG"
	case FileFormatTGA:
		return "TGA"
	case FileFormatTIFF:
		return "TIFF"
	default:
		return "Unknown"
	}
}

// Options configures decode-time preferences shared by every decoder.
type Options struct {
	// PadRGBWithAlpha is a preference, never a guarantee: an allocator may
	// still accept a 3-channel layout if the decoder offers one.
	PadRGBWithAlpha bool
	// AssumeSRGB is an advisory hint: when the source lacks a color-space
	// tag, prefer the sRGB twin of 8-bit UNorm color formats.
	AssumeSRGB bool
}

// Result is the only public state on an import handle: terminal
// status/error plus which path and format were involved.
type Result struct {
	Status       Status
	ErrorKind    ErrorKind
	ErrorMessage string
	FilePath     string
	FileFormat   FileFormat
}

func success(path string, format FileFormat) Result {
	return Result{Status: StatusSuccess, ErrorKind: texerr.None, FilePath: path, FileFormat: format}
}

func failure(path string, format FileFormat, err error) Result {
	kind := texerr.KindOf(err)
	msg := err.Error()
	return Result{Status: StatusError, ErrorKind: kind, ErrorMessage: msg, FilePath: path, FileFormat: format}
}

// fixedOrder (below) is the dispatch order used when the extension doesn't
// identify a format, or isn't recognized. EXR, JPEG, PNG and TIFF are
// deliberately absent: they are out of scope per this module's purpose (see
// SPEC_FULL.md), but their dispatch slots are preserved in spirit by the
// explicit named cases below so adding a decoder later never reorders the
// rest.
type decoder interface {
	CheckSignature(r io.ReadSeeker) (bool, error)
	Decode(r io.ReadSeeker, alloc texalloc.Allocator, opts Options) error
}

func extensionFormat(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp", ".dib":
		return FileFormatBMP
	case ".dds":
		return FileFormatDDS
	case ".ktx":
		return FileFormatKTX
	case ".tga":
		return FileFormatTGA
	case ".exr":
		return FileFormatEXR
	case ".jpg", ".jpeg":
		return FileFormatJPEG
	case ".png":
		return FileFormatPNG
	case ".tif", ".tiff":
		return FileFormatTIFF
	default:
		return FileFormatUnknown
	}
}

type formatDecoder struct {
	format FileFormat
	dec    decoder
}

// fixedOrder mirrors spec §4.J's {Bitmap, Dds, Exr, Jpeg, Ktx, Png, Targa,
// Tiff} dispatch order. EXR/JPEG/PNG/TIFF have no entries: this is a
// conforming partial implementation per "a conforming implementation may
// omit any decoder; the rest MUST remain operative."
var fixedOrder = []formatDecoder{
	{FileFormatBMP, bmpDecoder{}},
	{FileFormatDDS, ddsDecoder{}},
	{FileFormatKTX, ktxDecoder{}},
	{FileFormatTGA, tgaDecoder{}},
}

type bmpDecoder struct{}

func (bmpDecoder) CheckSignature(r io.ReadSeeker) (bool, error) { return bmp.CheckSignature(r) }
func (bmpDecoder) Decode(r io.ReadSeeker, alloc texalloc.Allocator, opts Options) error {
	return bmp.Decode(r, alloc, bmp.Options{PadRGBWithAlpha: opts.PadRGBWithAlpha, AssumeSRGB: opts.AssumeSRGB})
}

type ddsDecoder struct{}

func (ddsDecoder) CheckSignature(r io.ReadSeeker) (bool, error) { return dds.CheckSignature(r) }
func (ddsDecoder) Decode(r io.ReadSeeker, alloc texalloc.Allocator, opts Options) error {
	return dds.Decode(r, alloc, dds.Options{AssumeSRGB: opts.AssumeSRGB})
}

type ktxDecoder struct{}

func (ktxDecoder) CheckSignature(r io.ReadSeeker) (bool, error) { return ktx.CheckSignature(r) }
func (ktxDecoder) Decode(r io.ReadSeeker, alloc texalloc.Allocator, opts Options) error {
	return ktx.Decode(r, alloc, ktx.Options{AssumeSRGB: opts.AssumeSRGB})
}

type tgaDecoder struct{}

func (tgaDecoder) CheckSignature(r io.ReadSeeker) (bool, error) { return tga.CheckSignature(r) }
func (tgaDecoder) Decode(r io.ReadSeeker, alloc texalloc.Allocator, opts Options) error {
	return tga.Decode(r, alloc, tga.Options{PadRGBWithAlpha: opts.PadRGBWithAlpha, AssumeSRGB: opts.AssumeSRGB})
}

// ImportTexture identifies path's container format and decodes it into
// alloc. path is used for error messages and extension-based format
// hinting only; it is never opened by this function — r is the data.
func ImportTexture(path string, r io.ReadSeeker, alloc texalloc.Allocator, opts Options) Result {
	if hint := extensionFormat(path); hint != FileFormatUnknown {
		if fd, ok := lookup(hint); ok {
			ok, err := fd.dec.CheckSignature(r)
			if err != nil {
				return failure(path, hint, texerr.Wrap(texerr.CouldNotReadHeader, "check signature", err))
			}
			if ok {
				if err := fd.dec.Decode(r, alloc, opts); err != nil {
					return failure(path, hint, err)
				}
				return success(path, hint)
			}
		}
	}

	for _, fd := range fixedOrder {
		ok, err := fd.dec.CheckSignature(r)
		if err != nil {
			return failure(path, fd.format, texerr.Wrap(texerr.CouldNotReadHeader, "check signature", err))
		}
		if !ok {
			continue
		}
		if err := fd.dec.Decode(r, alloc, opts); err != nil {
			return failure(path, fd.format, err)
		}
		return success(path, fd.format)
	}

	return failure(path, FileFormatUnknown, texerr.New(texerr.UnknownFileFormat, "no decoder recognized this stream"))
}

func lookup(format FileFormat) (formatDecoder, bool) {
	for _, fd := range fixedOrder {
		if fd.format == format {
			return fd, true
		}
	}
	return formatDecoder{}, false
}
