// Package memtex is a reference in-memory texalloc.Allocator: it accepts
// the decoder's native layout and first candidate format, and backs every
// surface with a plain byte slice. It exists so the format decoders and
// their tests can run end-to-end without a caller-supplied GPU allocator,
// playing the role original_source's cputex::unique_texture plays for the
// C++ implementation this module was distilled from.
package memtex

import (
	"fmt"

	"github.com/goopsie/teximp/pixfmt"
	"github.com/goopsie/teximp/texalloc"
	"github.com/goopsie/teximp/texture"
)

// Surface is one decoded 2D byte region plus the key that addresses it.
type Surface struct {
	Key  texture.MipSurfaceKey
	Data []byte
}

// Texture is one fully-allocated texture: its negotiated params and every
// surface indexed by MipSurfaceKey.
type Texture struct {
	Params   texture.TextureParams
	Format   pixfmt.Format
	Layout   pixfmt.Layout
	surfaces map[texture.MipSurfaceKey][]byte
}

// Surface returns the byte span for key, or nil if it was never allocated.
func (t *Texture) Surface(key texture.MipSurfaceKey) []byte {
	return t.surfaces[key]
}

// Allocator is the reference Allocator. Zero value is ready to use.
type Allocator struct {
	Textures []*Texture

	preferLayout func(native pixfmt.Layout, wider []pixfmt.Layout) pixfmt.Layout
	preferFormat func(layout pixfmt.Layout, candidates []pixfmt.Format) pixfmt.Format

	current *Texture
}

var _ texalloc.Allocator = (*Allocator)(nil)

// New returns an Allocator that always accepts the decoder's default offer
// (native layout, first candidate format) per spec §4.E's default rule.
func New() *Allocator {
	return &Allocator{}
}

// WithLayoutPreference overrides the layout the allocator selects; f
// receives the decoder's native layout and its wider options.
func (a *Allocator) WithLayoutPreference(f func(native pixfmt.Layout, wider []pixfmt.Layout) pixfmt.Layout) *Allocator {
	a.preferLayout = f
	return a
}

// WithFormatPreference overrides the format the allocator selects.
func (a *Allocator) WithFormatPreference(f func(layout pixfmt.Layout, candidates []pixfmt.Format) pixfmt.Format) *Allocator {
	a.preferFormat = f
	return a
}

func (a *Allocator) SelectFormatLayout(native pixfmt.Layout, wider []pixfmt.Layout) (pixfmt.Layout, error) {
	if a.preferLayout != nil {
		return a.preferLayout(native, wider), nil
	}
	return native, nil
}

func (a *Allocator) SelectFormat(layout pixfmt.Layout, candidates []pixfmt.Format) (pixfmt.Format, error) {
	if len(candidates) == 0 {
		return pixfmt.Undefined, fmt.Errorf("no candidate formats offered")
	}
	if a.preferFormat != nil {
		return a.preferFormat(layout, candidates), nil
	}
	return candidates[0], nil
}

func (a *Allocator) PreAllocation(textureCount int) error {
	return nil
}

func (a *Allocator) AllocateTexture(params texture.TextureParams, index int) (bool, error) {
	if !params.Valid() {
		return false, fmt.Errorf("invalid texture params: %+v", params)
	}
	fi := pixfmt.Info(params.Format)
	t := &Texture{
		Params:   params,
		Format:   params.Format,
		Layout:   pixfmt.FormatLayout(params.Format),
		surfaces: make(map[texture.MipSurfaceKey][]byte),
	}
	for slice := uint32(0); slice < params.ArraySize; slice++ {
		for face := uint32(0); face < params.Faces; face++ {
			for mip := uint32(0); mip < params.Mips; mip++ {
				mipExtent := params.Extent.MipExtent(mip)
				size := texture.SurfaceByteSize(mipExtent, fi.BlockByteSize, fi.Block.X, fi.Block.Y)
				key := texture.MipSurfaceKey{ArraySlice: slice, Face: face, Mip: mip}
				t.surfaces[key] = make([]byte, size)
			}
		}
	}
	a.Textures = append(a.Textures, t)
	a.current = t
	return true, nil
}

func (a *Allocator) PostAllocation() error {
	return nil
}

func (a *Allocator) AccessTextureData(index int, key texture.MipSurfaceKey) ([]byte, error) {
	if index < 0 || index >= len(a.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", index)
	}
	data, ok := a.Textures[index].surfaces[key]
	if !ok {
		return nil, fmt.Errorf("surface %+v was never allocated", key)
	}
	return data, nil
}
