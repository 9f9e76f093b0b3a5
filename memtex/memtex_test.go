package memtex

import (
	"testing"

	"github.com/goopsie/teximp/pixfmt"
	"github.com/goopsie/teximp/texture"
)

func textureParams() texture.TextureParams {
	return texture.TextureParams{
		Format:    pixfmt.R8G8B8A8_UNORM,
		Dimension: texture.Dimension2D,
		Extent:    texture.Extent{Width: 4, Height: 4, Depth: 1},
		ArraySize: 1,
		Faces:     1,
		Mips:      2,
	}
}

func TestDefaultNegotiation(t *testing.T) {
	a := New()

	t.Run("AcceptsNativeLayout", func(t *testing.T) {
		got, err := a.SelectFormatLayout(pixfmt.Layout_8_8_8_8, []pixfmt.Layout{pixfmt.Layout_16_16_16_16})
		if err != nil || got != pixfmt.Layout_8_8_8_8 {
			t.Fatalf("got (%v, %v), want (Layout_8_8_8_8, nil)", got, err)
		}
	})

	t.Run("AcceptsFirstCandidateFormat", func(t *testing.T) {
		candidates := []pixfmt.Format{pixfmt.B8G8R8A8_UNORM, pixfmt.R8G8B8A8_UNORM}
		got, err := a.SelectFormat(pixfmt.Layout_8_8_8_8, candidates)
		if err != nil || got != pixfmt.B8G8R8A8_UNORM {
			t.Fatalf("got (%v, %v), want (B8G8R8A8_UNORM, nil)", got, err)
		}
	})

	t.Run("RejectsEmptyCandidates", func(t *testing.T) {
		if _, err := a.SelectFormat(pixfmt.Layout_8_8_8_8, nil); err == nil {
			t.Error("expected error for empty candidate list")
		}
	})
}

func TestLayoutAndFormatPreference(t *testing.T) {
	a := New().
		WithLayoutPreference(func(native pixfmt.Layout, wider []pixfmt.Layout) pixfmt.Layout {
			if len(wider) > 0 {
				return wider[0]
			}
			return native
		}).
		WithFormatPreference(func(layout pixfmt.Layout, candidates []pixfmt.Format) pixfmt.Format {
			return candidates[len(candidates)-1]
		})

	got, _ := a.SelectFormatLayout(pixfmt.Layout_5_6_5, []pixfmt.Layout{pixfmt.Layout_8_8_8_8})
	if got != pixfmt.Layout_8_8_8_8 {
		t.Errorf("got %v, want Layout_8_8_8_8", got)
	}

	candidates := []pixfmt.Format{pixfmt.R8G8B8A8_UNORM, pixfmt.B8G8R8A8_UNORM}
	format, _ := a.SelectFormat(pixfmt.Layout_8_8_8_8, candidates)
	if format != pixfmt.B8G8R8A8_UNORM {
		t.Errorf("got %v, want B8G8R8A8_UNORM", format)
	}
}

func TestAllocateTexture(t *testing.T) {
	t.Run("AllocatesEverySurface", func(t *testing.T) {
		a := New()
		params := textureParams()
		ok, err := a.AllocateTexture(params, 0)
		if err != nil || !ok {
			t.Fatalf("got (%v, %v), want (true, nil)", ok, err)
		}
		if len(a.Textures) != 1 {
			t.Fatalf("got %d textures, want 1", len(a.Textures))
		}
		for mip := uint32(0); mip < params.Mips; mip++ {
			key := texture.MipSurfaceKey{Mip: mip}
			data, err := a.AccessTextureData(0, key)
			if err != nil {
				t.Fatalf("mip %d: %v", mip, err)
			}
			wantExtent := params.Extent.MipExtent(mip)
			wantSize := wantExtent.Width * wantExtent.Height * 4
			if uint32(len(data)) != wantSize {
				t.Errorf("mip %d: got %d bytes, want %d", mip, len(data), wantSize)
			}
		}
	})

	t.Run("RejectsInvalidParams", func(t *testing.T) {
		a := New()
		bad := textureParams()
		bad.ArraySize = 0
		ok, err := a.AllocateTexture(bad, 0)
		if ok || err == nil {
			t.Error("expected rejection of invalid params")
		}
	})

	t.Run("AccessUnknownSurfaceFails", func(t *testing.T) {
		a := New()
		a.AllocateTexture(textureParams(), 0)
		if _, err := a.AccessTextureData(0, texture.MipSurfaceKey{Mip: 99}); err == nil {
			t.Error("expected error for never-allocated surface")
		}
	})

	t.Run("AccessOutOfRangeIndexFails", func(t *testing.T) {
		a := New()
		if _, err := a.AccessTextureData(0, texture.MipSurfaceKey{}); err == nil {
			t.Error("expected error for out-of-range texture index")
		}
	})
}
