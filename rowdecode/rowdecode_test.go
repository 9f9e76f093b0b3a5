package rowdecode

import (
	"testing"

	"github.com/goopsie/teximp/pixconv"
)

func TestRowPitch(t *testing.T) {
	cases := []struct {
		width, bpp int
		want       int
	}{
		{1, 1, 4},
		{8, 1, 4},
		{9, 1, 4},
		{4, 8, 4},
		{5, 8, 8},
		{3, 24, 12},
	}
	for _, c := range cases {
		if got := RowPitch(c.width, c.bpp); got != c.want {
			t.Errorf("RowPitch(%d, %d) = %d, want %d", c.width, c.bpp, got, c.want)
		}
	}
}

func TestPaletteRows(t *testing.T) {
	palette := []pixconv.RGBA8{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}

	t.Run("Palette1", func(t *testing.T) {
		dst := make([]pixconv.RGBA8, 8)
		Palette1([]byte{0b10110010}, 8, palette, dst)
		want := []uint8{1, 0, 1, 1, 0, 0, 1, 0}
		for i, w := range want {
			if dst[i] != palette[w] {
				t.Errorf("pixel %d: got %+v, want palette[%d]", i, dst[i], w)
			}
		}
	})

	t.Run("Palette8", func(t *testing.T) {
		dst := make([]pixconv.RGBA8, 2)
		Palette8([]byte{0, 1}, 2, palette, dst)
		if dst[0] != palette[0] || dst[1] != palette[1] {
			t.Errorf("got %+v, want %+v", dst, palette)
		}
	})
}

func TestPacked16(t *testing.T) {
	dst := make([]pixconv.RGBA8, 1)
	row := []byte{0xff, 0xff} // all bits set
	Packed16(row, 1, 0xf800, 0x07e0, 0x001f, 0, dst)
	want := pixconv.RGBA8{R: 255, G: 255, B: 255, A: 255}
	if dst[0] != want {
		t.Errorf("got %+v, want %+v", dst[0], want)
	}
}

func TestDirect24(t *testing.T) {
	dst := make([]pixconv.RGBA8, 1)
	row := []byte{0x10, 0x20, 0x30} // B,G,R
	Direct24(row, 1, dst)
	want := pixconv.RGBA8{R: 0x30, G: 0x20, B: 0x10, A: 255}
	if dst[0] != want {
		t.Errorf("got %+v, want %+v", dst[0], want)
	}
}

func TestDirect32(t *testing.T) {
	t.Run("WithAlphaMask", func(t *testing.T) {
		dst := make([]pixconv.RGBA8, 1)
		row := []byte{0x10, 0x20, 0x30, 0x40} // B,G,R,A
		Direct32(row, 1, 0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000, dst)
		want := pixconv.RGBA8{R: 0x30, G: 0x20, B: 0x10, A: 0x40}
		if dst[0] != want {
			t.Errorf("got %+v, want %+v", dst[0], want)
		}
	})

	t.Run("ZeroAlphaMaskForcesOpaque", func(t *testing.T) {
		dst := make([]pixconv.RGBA8, 1)
		row := []byte{0x10, 0x20, 0x30, 0x00}
		Direct32(row, 1, 0x00ff0000, 0x0000ff00, 0x000000ff, 0, dst)
		if dst[0].A != 255 {
			t.Errorf("got alpha %d, want 255", dst[0].A)
		}
	})
}
