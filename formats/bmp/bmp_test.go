package bmp

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/goopsie/teximp/internal/texerr"
	"github.com/goopsie/teximp/memtex"
	"github.com/goopsie/teximp/pixfmt"
	"github.com/goopsie/teximp/texture"
)

// buildBMP24 builds a minimal 2x1, 24bpp, uncompressed, bottom-up BMP
// (BITMAPINFOHEADER) with pixel 0 red and pixel 1 green.
func buildBMP24() []byte {
	var buf bytes.Buffer
	buf.WriteString("BM")
	binary.Write(&buf, binary.LittleEndian, uint32(0))  // bfSize, unused
	binary.Write(&buf, binary.LittleEndian, uint16(0))  // reserved1
	binary.Write(&buf, binary.LittleEndian, uint16(0))  // reserved2
	binary.Write(&buf, binary.LittleEndian, uint32(54)) // bfOffBits

	binary.Write(&buf, binary.LittleEndian, uint32(40)) // headerSize
	binary.Write(&buf, binary.LittleEndian, int32(2))   // width
	binary.Write(&buf, binary.LittleEndian, int32(1))   // height (positive: bottom-up)
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // planes
	binary.Write(&buf, binary.LittleEndian, uint16(24)) // bpp
	binary.Write(&buf, binary.LittleEndian, uint32(0))  // compression
	binary.Write(&buf, binary.LittleEndian, uint32(0))  // sizeOfBitmap
	binary.Write(&buf, binary.LittleEndian, int32(0))   // xPelsPerMeter
	binary.Write(&buf, binary.LittleEndian, int32(0))   // yPelsPerMeter
	binary.Write(&buf, binary.LittleEndian, uint32(0))  // colorsUsed
	binary.Write(&buf, binary.LittleEndian, uint32(0))  // colorsImportant

	// pixel row: BGR,BGR + 2 padding bytes (pitch rounds 6 up to 8)
	buf.Write([]byte{0, 0, 255, 0, 255, 0, 0, 0})
	return buf.Bytes()
}

func TestCheckSignature(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		r := bytes.NewReader(buildBMP24())
		ok, err := CheckSignature(r)
		if err != nil || !ok {
			t.Fatalf("got (%v, %v), want (true, nil)", ok, err)
		}
		pos, _ := r.Seek(0, io.SeekCurrent)
		if pos != 2 {
			t.Errorf("got position %d after valid signature, want 2", pos)
		}
	})

	t.Run("InvalidRestoresPosition", func(t *testing.T) {
		r := bytes.NewReader([]byte{0xff, 0xd8, 0, 0})
		ok, err := CheckSignature(r)
		if err != nil || ok {
			t.Fatalf("got (%v, %v), want (false, nil)", ok, err)
		}
		pos, _ := r.Seek(0, io.SeekCurrent)
		if pos != 0 {
			t.Errorf("got position %d after invalid signature, want 0 (restored)", pos)
		}
	})
}

func TestDecodeUncompressed24Bit(t *testing.T) {
	data := buildBMP24()
	r := bytes.NewReader(data)
	if ok, err := CheckSignature(r); err != nil || !ok {
		t.Fatalf("signature check failed: %v %v", ok, err)
	}

	alloc := memtex.New()
	if err := Decode(r, alloc, Options{}); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(alloc.Textures) != 1 {
		t.Fatalf("got %d textures, want 1", len(alloc.Textures))
	}
	tex := alloc.Textures[0]
	if tex.Format != pixfmt.R8G8B8_UNORM {
		t.Errorf("got format %v, want R8G8B8_UNORM", tex.Format)
	}
	if tex.Params.Extent.Width != 2 || tex.Params.Extent.Height != 1 {
		t.Fatalf("got extent %+v, want 2x1", tex.Params.Extent)
	}

	surface := tex.Surface(texture.MipSurfaceKey{})
	want := []byte{255, 0, 0, 0, 255, 0}
	if !bytes.Equal(surface, want) {
		t.Errorf("got surface %v, want %v", surface, want)
	}
}

func TestDecodeRejectsZeroDimensions(t *testing.T) {
	data := buildBMP24()
	// width field lives at byte offset 18 (14-byte file header + 4-byte headerSize)
	binary.LittleEndian.PutUint32(data[18:22], 0)
	r := bytes.NewReader(data)
	CheckSignature(r)

	alloc := memtex.New()
	err := Decode(r, alloc, Options{})
	if err == nil {
		t.Fatal("expected error for zero width")
	}
	if texerr.KindOf(err) != texerr.InvalidDataInImage {
		t.Errorf("got kind %v, want InvalidDataInImage", texerr.KindOf(err))
	}
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	data := buildBMP24()[:20]
	r := bytes.NewReader(data)
	CheckSignature(r)

	alloc := memtex.New()
	err := Decode(r, alloc, Options{})
	if err == nil {
		t.Fatal("expected error for truncated header")
	}
	if texerr.KindOf(err) != texerr.CouldNotReadHeader {
		t.Errorf("got kind %v, want CouldNotReadHeader", texerr.KindOf(err))
	}
}
