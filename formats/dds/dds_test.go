package dds

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/goopsie/teximp/internal/texerr"
	"github.com/goopsie/teximp/memtex"
	"github.com/goopsie/teximp/pixfmt"
	"github.com/goopsie/teximp/texture"
)

func buildDDS(hdr fileHeader, dx10 *dx10Header, surface []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(magic))
	binary.Write(&buf, binary.LittleEndian, hdr)
	if dx10 != nil {
		binary.Write(&buf, binary.LittleEndian, *dx10)
	}
	buf.Write(surface)
	return buf.Bytes()
}

func bc1Header(width, height uint32) fileHeader {
	var hdr fileHeader
	hdr.Size = 124
	hdr.Height = height
	hdr.Width = width
	hdr.PixelFormat.Size = 32
	hdr.PixelFormat.Flags = ddpfFourCC
	copy(hdr.PixelFormat.FourCC[:], "DXT1")
	return hdr
}

func TestCheckSignature(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		data := buildDDS(bc1Header(8, 8), nil, make([]byte, 32))
		r := bytes.NewReader(data)
		ok, err := CheckSignature(r)
		if err != nil || !ok {
			t.Fatalf("got (%v, %v), want (true, nil)", ok, err)
		}
	})

	t.Run("WrongMagic", func(t *testing.T) {
		r := bytes.NewReader([]byte{1, 2, 3, 4})
		ok, err := CheckSignature(r)
		if err != nil || ok {
			t.Fatalf("got (%v, %v), want (false, nil)", ok, err)
		}
	})
}

func TestDecodeBC1(t *testing.T) {
	surface := bytes.Repeat([]byte{0xaa}, 32)
	data := buildDDS(bc1Header(8, 8), nil, surface)
	r := bytes.NewReader(data)
	if ok, err := CheckSignature(r); err != nil || !ok {
		t.Fatalf("signature check failed: %v %v", ok, err)
	}

	alloc := memtex.New()
	if err := Decode(r, alloc, Options{}); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	tex := alloc.Textures[0]
	if tex.Format != pixfmt.BC1_RGBA_UNORM_BLOCK {
		t.Errorf("got format %v, want BC1_RGBA_UNORM_BLOCK", tex.Format)
	}
	if tex.Params.Extent.Width != 8 || tex.Params.Extent.Height != 8 || tex.Params.Mips != 1 {
		t.Errorf("got params %+v, unexpected", tex.Params)
	}
	got := tex.Surface(texture.MipSurfaceKey{})
	if !bytes.Equal(got, surface) {
		t.Error("surface bytes do not match input")
	}
}

func TestDecodeCubemap(t *testing.T) {
	hdr := bc1Header(4, 4)
	hdr.Caps2 = caps2Cubemap | cubemapAllFaces
	// 4x4 BC1 = 1 block = 8 bytes per face, 6 faces
	surface := bytes.Repeat([]byte{0x11}, 8*6)
	data := buildDDS(hdr, nil, surface)
	r := bytes.NewReader(data)
	CheckSignature(r)

	alloc := memtex.New()
	if err := Decode(r, alloc, Options{}); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	tex := alloc.Textures[0]
	if tex.Params.Dimension != texture.DimensionCube || tex.Params.Faces != 6 {
		t.Errorf("got params %+v, want cube with 6 faces", tex.Params)
	}
	for face := uint32(0); face < 6; face++ {
		if s := tex.Surface(texture.MipSurfaceKey{Face: face}); len(s) != 8 {
			t.Errorf("face %d: got %d bytes, want 8", face, len(s))
		}
	}
}

func TestDecodeUnknownFourCC(t *testing.T) {
	hdr := bc1Header(8, 8)
	copy(hdr.PixelFormat.FourCC[:], "ZZZZ")
	data := buildDDS(hdr, nil, make([]byte, 32))
	r := bytes.NewReader(data)
	CheckSignature(r)

	alloc := memtex.New()
	err := Decode(r, alloc, Options{})
	if err == nil {
		t.Fatal("expected error for unrecognized FourCC")
	}
	if texerr.KindOf(err) != texerr.UnknownFormat {
		t.Errorf("got kind %v, want UnknownFormat", texerr.KindOf(err))
	}
}

func TestDecodeTruncatedSurface(t *testing.T) {
	data := buildDDS(bc1Header(8, 8), nil, make([]byte, 4)) // needs 32
	r := bytes.NewReader(data)
	CheckSignature(r)

	alloc := memtex.New()
	err := Decode(r, alloc, Options{})
	if err == nil {
		t.Fatal("expected error for truncated surface data")
	}
	if texerr.KindOf(err) != texerr.NotEnoughData {
		t.Errorf("got kind %v, want NotEnoughData", texerr.KindOf(err))
	}
}
