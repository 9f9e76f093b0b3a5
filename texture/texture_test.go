package texture

import (
	"testing"

	"github.com/goopsie/teximp/pixfmt"
)

func TestExtentValid(t *testing.T) {
	cases := []struct {
		name string
		e    Extent
		want bool
	}{
		{"ok2D", Extent{Width: 256, Height: 256, Depth: 1}, true},
		{"zeroWidth", Extent{Width: 0, Height: 1, Depth: 1}, false},
		{"zeroDepth", Extent{Width: 1, Height: 1, Depth: 0}, false},
		{"tooWide", Extent{Width: MaxExtent + 1, Height: 1, Depth: 1}, false},
		{"atLimit", Extent{Width: MaxExtent, Height: MaxExtent, Depth: 1}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.e.Valid(); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestMipExtent(t *testing.T) {
	base := Extent{Width: 256, Height: 128, Depth: 1}

	t.Run("Mip0IsBase", func(t *testing.T) {
		if got := base.MipExtent(0); got != base {
			t.Errorf("got %+v, want %+v", got, base)
		}
	})

	t.Run("Halving", func(t *testing.T) {
		want := Extent{Width: 64, Height: 32, Depth: 1}
		if got := base.MipExtent(2); got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("ClampsToOne", func(t *testing.T) {
		want := Extent{Width: 1, Height: 1, Depth: 1}
		if got := base.MipExtent(10); got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})
}

func TestTextureParamsValid(t *testing.T) {
	base := TextureParams{
		Format:    pixfmt.R8G8B8A8_UNORM,
		Dimension: Dimension2D,
		Extent:    Extent{Width: 4, Height: 4, Depth: 1},
		ArraySize: 1,
		Faces:     1,
		Mips:      1,
	}

	t.Run("Valid2D", func(t *testing.T) {
		if !base.Valid() {
			t.Error("expected valid 2D params")
		}
	})

	t.Run("ZeroArraySize", func(t *testing.T) {
		p := base
		p.ArraySize = 0
		if p.Valid() {
			t.Error("expected invalid for zero array size")
		}
	})

	t.Run("BadFaceCount", func(t *testing.T) {
		p := base
		p.Faces = 3
		if p.Valid() {
			t.Error("expected invalid for faces != 1 or 6")
		}
	})

	t.Run("CubeRequiresSixFaces", func(t *testing.T) {
		p := base
		p.Dimension = DimensionCube
		p.Faces = 1
		if p.Valid() {
			t.Error("expected invalid: Cube dimension with Faces=1")
		}
		p.Faces = 6
		if !p.Valid() {
			t.Error("expected valid: Cube dimension with Faces=6")
		}
	})

	t.Run("SixFacesRequiresCube", func(t *testing.T) {
		p := base
		p.Faces = 6
		if p.Valid() {
			t.Error("expected invalid: Faces=6 without Cube dimension")
		}
	})
}

func TestSurfaceByteSize(t *testing.T) {
	t.Run("Uncompressed", func(t *testing.T) {
		e := Extent{Width: 4, Height: 4, Depth: 1}
		got := SurfaceByteSize(e, 4, 1, 1)
		if got != 64 {
			t.Errorf("got %d, want 64", got)
		}
	})

	t.Run("BlockCompressedRoundsUp", func(t *testing.T) {
		e := Extent{Width: 5, Height: 5, Depth: 1}
		got := SurfaceByteSize(e, 8, 4, 4)
		if got != 32 {
			t.Errorf("got %d, want 32 (2x2 blocks * 8 bytes)", got)
		}
	})

	t.Run("MultiDepth", func(t *testing.T) {
		e := Extent{Width: 4, Height: 4, Depth: 2}
		got := SurfaceByteSize(e, 4, 1, 1)
		if got != 128 {
			t.Errorf("got %d, want 128", got)
		}
	})
}

func TestDimensionString(t *testing.T) {
	cases := []struct {
		d    Dimension
		want string
	}{
		{Dimension1D, "1D"},
		{Dimension2D, "2D"},
		{Dimension3D, "3D"},
		{DimensionCube, "Cube"},
		{Dimension(99), "Dimension(99)"},
	}
	for _, c := range cases {
		if got := c.d.String(); got != c.want {
			t.Errorf("Dimension(%d).String() = %q, want %q", c.d, got, c.want)
		}
	}
}
