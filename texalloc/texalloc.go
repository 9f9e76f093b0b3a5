// Package texalloc defines the format-negotiation contract between a
// decoder and its caller-supplied allocator, and the small helper functions
// every decoder uses to drive the two-phase handshake.
package texalloc

import (
	"fmt"

	"github.com/goopsie/teximp/internal/texerr"
	"github.com/goopsie/teximp/pixfmt"
	"github.com/goopsie/teximp/texture"
)

// Allocator is implemented by the caller. A decoder never picks the final
// GPU format or owns texture memory itself; it always negotiates through
// this interface, synchronously and without suspension.
type Allocator interface {
	// SelectFormatLayout is phase 1 of negotiation: given the decoder's
	// tightest matching layout and the wider layouts it is willing to
	// up-convert into, return the layout to actually use. It must return
	// native or one of wider; any other value is a protocol violation.
	SelectFormatLayout(native pixfmt.Layout, wider []pixfmt.Layout) (pixfmt.Layout, error)

	// SelectFormat is phase 2: given the layout chosen in phase 1 and the
	// decoder's ordered candidate formats (best first), return the format
	// to use. It must return one of candidates.
	SelectFormat(layout pixfmt.Layout, candidates []pixfmt.Format) (pixfmt.Format, error)

	// PreAllocation is called once before any AllocateTexture call, with
	// the number of textures about to be allocated if known (0 if unknown
	// ahead of time).
	PreAllocation(textureCount int) error

	// AllocateTexture reserves storage for one texture at the given index.
	// A false return (with no error) is a TextureAllocationFailed.
	AllocateTexture(params texture.TextureParams, index int) (bool, error)

	// PostAllocation is called once after the last AllocateTexture call.
	PostAllocation() error

	// AccessTextureData returns a mutable byte span for exactly one
	// surface. The decoder writes exactly SurfaceByteSize(...) bytes into
	// the returned slice.
	AccessTextureData(index int, key texture.MipSurfaceKey) ([]byte, error)
}

// NegotiateLayout drives phase 1 of the protocol and validates the
// allocator's answer.
func NegotiateLayout(a Allocator, native pixfmt.Layout, wider []pixfmt.Layout) (pixfmt.Layout, error) {
	chosen, err := a.SelectFormatLayout(native, wider)
	if err != nil {
		return pixfmt.LayoutUndefined, texerr.Wrap(texerr.InvalidTextureAllocatorFormatLayout, "select format layout", err)
	}
	if chosen == native {
		return chosen, nil
	}
	for _, w := range wider {
		if chosen == w {
			return chosen, nil
		}
	}
	return pixfmt.LayoutUndefined, texerr.New(texerr.InvalidTextureAllocatorFormatLayout,
		fmt.Sprintf("allocator returned layout %d, not native or offered", chosen))
}

// NegotiateFormat drives phase 2 of the protocol and validates the
// allocator's answer.
func NegotiateFormat(a Allocator, layout pixfmt.Layout, candidates []pixfmt.Format) (pixfmt.Format, error) {
	chosen, err := a.SelectFormat(layout, candidates)
	if err != nil {
		return pixfmt.Undefined, texerr.Wrap(texerr.InvalidTextureAllocatorFormat, "select format", err)
	}
	for _, c := range candidates {
		if chosen == c {
			return chosen, nil
		}
	}
	return pixfmt.Undefined, texerr.New(texerr.InvalidTextureAllocatorFormat,
		fmt.Sprintf("allocator returned format %s, not among offered candidates", chosen))
}

// AllocateAll runs the allocation phase (PreAllocation, one AllocateTexture
// per params, PostAllocation) for a single-texture decode, which is every
// decoder in this module: BMP, DDS, KTX and TGA each produce exactly one
// texture per call.
func AllocateAll(a Allocator, params texture.TextureParams) error {
	if err := a.PreAllocation(1); err != nil {
		return texerr.Wrap(texerr.TextureAllocationFailed, "pre-allocation", err)
	}
	ok, err := a.AllocateTexture(params, 0)
	if err != nil {
		return texerr.Wrap(texerr.TextureAllocationFailed, "allocate texture", err)
	}
	if !ok {
		return texerr.New(texerr.TextureAllocationFailed, "allocate texture: allocator declined")
	}
	if err := a.PostAllocation(); err != nil {
		return texerr.Wrap(texerr.TextureAllocationFailed, "post-allocation", err)
	}
	return nil
}
