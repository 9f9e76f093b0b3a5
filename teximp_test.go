package teximp

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/goopsie/teximp/memtex"
)

// buildBMP builds a minimal 1x1, 24bpp, uncompressed, bottom-up BMP
// (BITMAPINFOHEADER variant). Bytes are hand-assembled per the public BMP
// wire format rather than via formats/bmp's unexported header struct, since
// this test lives outside that package.
func buildBMP() []byte {
	var buf bytes.Buffer
	buf.WriteString("BM")
	binary.Write(&buf, binary.LittleEndian, uint32(0))  // bfSize, unused
	binary.Write(&buf, binary.LittleEndian, uint16(0))  // reserved1
	binary.Write(&buf, binary.LittleEndian, uint16(0))  // reserved2
	binary.Write(&buf, binary.LittleEndian, uint32(54)) // bfOffBits

	binary.Write(&buf, binary.LittleEndian, uint32(40)) // headerSize
	binary.Write(&buf, binary.LittleEndian, int32(1))   // width
	binary.Write(&buf, binary.LittleEndian, int32(1))   // height
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // planes
	binary.Write(&buf, binary.LittleEndian, uint16(24)) // bpp
	binary.Write(&buf, binary.LittleEndian, uint32(0))  // compression
	binary.Write(&buf, binary.LittleEndian, uint32(0))  // sizeOfBitmap
	binary.Write(&buf, binary.LittleEndian, int32(0))   // xPelsPerMeter
	binary.Write(&buf, binary.LittleEndian, int32(0))   // yPelsPerMeter
	binary.Write(&buf, binary.LittleEndian, uint32(0))  // colorsUsed
	binary.Write(&buf, binary.LittleEndian, uint32(0))  // colorsImportant

	buf.Write([]byte{0, 0, 255, 0}) // BGR red + 1 padding byte (pitch rounds 3 up to 4)
	return buf.Bytes()
}

// buildTGA builds a minimal 1x1, 24bpp, uncompressed true-color TGA with no
// footer/extension area, per the public TGA header layout.
func buildTGA() []byte {
	var buf bytes.Buffer
	buf.WriteByte(0)           // IDLength
	buf.WriteByte(0)           // ColorMapType
	buf.WriteByte(2)           // ImageType: true-color
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // CMFirstEntry
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // CMLength
	buf.WriteByte(0)           // CMEntrySize
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // XOrigin
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // YOrigin
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // Width
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // Height
	buf.WriteByte(24)          // PixelDepth
	buf.WriteByte(0)           // ImageDescriptor

	buf.Write([]byte{0, 0, 255}) // BGR red
	return buf.Bytes()
}

func TestImportTextureExtensionHint(t *testing.T) {
	r := bytes.NewReader(buildBMP())
	alloc := memtex.New()
	result := ImportTexture("image.bmp", r, alloc, Options{})
	if result.Status != StatusSuccess {
		t.Fatalf("got status %v, want Success (err=%s)", result.Status, result.ErrorMessage)
	}
	if result.FileFormat != FileFormatBMP {
		t.Errorf("got format %v, want BMP", result.FileFormat)
	}
	if len(alloc.Textures) != 1 {
		t.Errorf("got %d textures, want 1", len(alloc.Textures))
	}
}

func TestImportTextureFixedOrderFallback(t *testing.T) {
	r := bytes.NewReader(buildTGA())
	alloc := memtex.New()
	// "image.dat" carries no recognized extension, so dispatch falls through
	// to the fixed decoder order and must still find TGA by signature.
	result := ImportTexture("image.dat", r, alloc, Options{})
	if result.Status != StatusSuccess {
		t.Fatalf("got status %v, want Success (err=%s)", result.Status, result.ErrorMessage)
	}
	if result.FileFormat != FileFormatTGA {
		t.Errorf("got format %v, want TGA", result.FileFormat)
	}
}

func TestImportTextureUnknownFileFormat(t *testing.T) {
	r := bytes.NewReader([]byte("not any recognized texture container"))
	alloc := memtex.New()
	result := ImportTexture("image.dat", r, alloc, Options{})
	if result.Status != StatusError {
		t.Fatalf("got status %v, want Error", result.Status)
	}
	if result.ErrorKind != ErrorKindUnknownFileFormat {
		t.Errorf("got error kind %v, want UnknownFileFormat", result.ErrorKind)
	}
}

func TestImportTextureDecodeFailurePropagates(t *testing.T) {
	data := buildBMP()
	// width field lives at byte offset 18 (14-byte file header + 4-byte headerSize)
	binary.LittleEndian.PutUint32(data[18:22], 0)
	r := bytes.NewReader(data)
	alloc := memtex.New()
	result := ImportTexture("image.bmp", r, alloc, Options{})
	if result.Status != StatusError {
		t.Fatalf("got status %v, want Error", result.Status)
	}
	if result.FileFormat != FileFormatBMP {
		t.Errorf("got format %v, want BMP", result.FileFormat)
	}
	if result.ErrorKind != ErrorKindInvalidDataInImage {
		t.Errorf("got error kind %v, want InvalidDataInImage", result.ErrorKind)
	}
}

func TestStatusString(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{StatusLoading, "Loading"},
		{StatusSuccess, "Success"},
		{StatusError, "Error"},
		{Status(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.status.String(); got != c.want {
			t.Errorf("Status(%d).String() = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestFileFormatString(t *testing.T) {
	cases := []struct {
		format FileFormat
		want   string
	}{
		{FileFormatBMP, "BMP"},
		{FileFormatDDS, "DDS"},
		{FileFormatKTX, "KTX"},
		{FileFormatTGA, "TGA"},
		{FileFormatUnknown, "Unknown"},
	}
	for _, c := range cases {
		if got := c.format.String(); got != c.want {
			t.Errorf("FileFormat(%d).String() = %q, want %q", c.format, got, c.want)
		}
	}
}
