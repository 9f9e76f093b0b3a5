package pixfmt

// Layout is a coarse equivalence class of formats that share the same
// per-channel bit widths, regardless of channel order or sRGB-ness. Every
// format belongs to exactly one layout. Layouts are ordered by "wider": a
// layout A is wider than B if every channel width in A is >= the
// corresponding channel width in B, so a decoder can losslessly widen data
// encoded for B into a surface allocated for A.
type Layout uint16

const (
	LayoutUndefined Layout = iota
	Layout_8
	Layout_8_8
	Layout_8_8_8
	Layout_8_8_8_8
	Layout_5_6_5
	Layout_5_5_5_1
	Layout_4_4_4_4
	Layout_10_10_10_2
	Layout_16
	Layout_16_16
	Layout_16_16_16
	Layout_16_16_16_16
	Layout_32
	Layout_32_32
	Layout_32_32_32_32
	Layout_11_11_10
	Layout_BC1
	Layout_BC2
	Layout_BC3
	Layout_BC4
	Layout_BC5
	Layout_BC6H
	Layout_BC7
	Layout_ETC2_RGB
	Layout_ETC2_RGBA
	Layout_EAC_R11
	Layout_EAC_R11G11
)

var layoutTable = map[Format]Layout{
	R8_UNORM: Layout_8, L8_UNORM: Layout_8, A8_UNORM: Layout_8,
	L8A8_UNORM: Layout_8_8, R8G8_UNORM: Layout_8_8, R8G8_SNORM: Layout_8_8,
	L16_UNORM: Layout_16,

	R8G8B8_UNORM: Layout_8_8_8, R8G8B8_SRGB: Layout_8_8_8,
	B8G8R8_UNORM: Layout_8_8_8, B8G8R8_SRGB: Layout_8_8_8,

	R8G8B8A8_UNORM: Layout_8_8_8_8, R8G8B8A8_SRGB: Layout_8_8_8_8, R8G8B8A8_SNORM: Layout_8_8_8_8,
	B8G8R8A8_UNORM: Layout_8_8_8_8, B8G8R8A8_SRGB: Layout_8_8_8_8,
	B8G8R8X8_UNORM: Layout_8_8_8_8, B8G8R8X8_SRGB: Layout_8_8_8_8,

	R5G6B5_UNORM:    Layout_5_6_5,
	A1R5G5B5_UNORM:  Layout_5_5_5_1,
	A4R4G4B4_UNORM:  Layout_4_4_4_4,

	A2B10G10R10_UNORM: Layout_10_10_10_2, A2R10G10B10_UNORM: Layout_10_10_10_2,

	R16G16_UNORM: Layout_16_16, R16G16_SNORM: Layout_16_16, R16G16_SFLOAT: Layout_16_16,
	R16G16B16_UNORM:      Layout_16_16_16,
	R16G16B16A16_UNORM:   Layout_16_16_16_16, R16G16B16A16_SFLOAT: Layout_16_16_16_16,
	R16_SFLOAT: Layout_16,

	R32_SFLOAT: Layout_32, R32G32_SFLOAT: Layout_32_32, R32G32B32A32_SFLOAT: Layout_32_32_32_32,
	R11G11B10_FLOAT: Layout_11_11_10,

	BC1_RGBA_UNORM_BLOCK: Layout_BC1, BC1_RGBA_SRGB_BLOCK: Layout_BC1,
	BC2_UNORM_BLOCK: Layout_BC2, BC2_SRGB_BLOCK: Layout_BC2,
	BC3_UNORM_BLOCK: Layout_BC3, BC3_SRGB_BLOCK: Layout_BC3,
	BC4_UNORM_BLOCK: Layout_BC4, BC4_SNORM_BLOCK: Layout_BC4,
	BC5_UNORM_BLOCK: Layout_BC5, BC5_SNORM_BLOCK: Layout_BC5,
	BC6H_UFLOAT_BLOCK: Layout_BC6H, BC6H_SFLOAT_BLOCK: Layout_BC6H,
	BC7_UNORM_BLOCK: Layout_BC7, BC7_SRGB_BLOCK: Layout_BC7,

	ETC2_R8G8B8_UNORM_BLOCK: Layout_ETC2_RGB, ETC2_R8G8B8_SRGB_BLOCK: Layout_ETC2_RGB,
	ETC2_R8G8B8A8_UNORM_BLOCK: Layout_ETC2_RGBA, ETC2_R8G8B8A8_SRGB_BLOCK: Layout_ETC2_RGBA,
	EAC_R11_UNORM_BLOCK: Layout_EAC_R11, EAC_R11G11_UNORM_BLOCK: Layout_EAC_R11G11,
}

// channelWidths per layout, used only to decide the "wider" partial order.
// Block-compressed layouts never widen into one another; they compare equal
// only to themselves.
var layoutChannelWidths = map[Layout][4]uint8{
	Layout_8:            {8, 0, 0, 0},
	Layout_8_8:          {8, 8, 0, 0},
	Layout_8_8_8:        {8, 8, 8, 0},
	Layout_8_8_8_8:      {8, 8, 8, 8},
	Layout_5_6_5:        {5, 6, 5, 0},
	Layout_5_5_5_1:      {5, 5, 5, 1},
	Layout_4_4_4_4:      {4, 4, 4, 4},
	Layout_10_10_10_2:   {10, 10, 10, 2},
	Layout_16:           {16, 0, 0, 0},
	Layout_16_16:        {16, 16, 0, 0},
	Layout_16_16_16:     {16, 16, 16, 0},
	Layout_16_16_16_16:  {16, 16, 16, 16},
	Layout_32:           {32, 0, 0, 0},
	Layout_32_32:        {32, 32, 0, 0},
	Layout_32_32_32_32:  {32, 32, 32, 32},
	Layout_11_11_10:     {11, 11, 10, 0},
}

// FormatLayout returns the coarse equivalence class of format. Each
// block-compressed family (e.g. BC1 UNORM and its sRGB twin) has a layout of
// its own that no other family shares.
func FormatLayout(format Format) Layout {
	if l, ok := layoutTable[format]; ok {
		return l
	}
	return LayoutUndefined
}

func isBlockLayout(l Layout) bool {
	switch l {
	case Layout_BC1, Layout_BC2, Layout_BC3, Layout_BC4, Layout_BC5, Layout_BC6H, Layout_BC7,
		Layout_ETC2_RGB, Layout_ETC2_RGBA, Layout_EAC_R11, Layout_EAC_R11G11:
		return true
	default:
		return false
	}
}

// CanHold reports whether a value encoded for src can be losslessly widened
// into a surface allocated with layout dst: every per-channel bit width in
// src must be <= the corresponding width in dst. Block-compressed layouts
// only hold themselves.
func CanHold(dst, src Layout) bool {
	if dst == src {
		return true
	}
	if isBlockLayout(dst) || isBlockLayout(src) {
		return false
	}
	dw, ok := layoutChannelWidths[dst]
	if !ok {
		return false
	}
	sw, ok := layoutChannelWidths[src]
	if !ok {
		return false
	}
	for i := range dw {
		if sw[i] > dw[i] {
			return false
		}
	}
	return true
}

// WiderLayouts returns every registered layout that can losslessly hold a
// value encoded in native, excluding native itself, ordered from narrowest
// to widest by total channel bit count. A decoder passes this list (plus
// native) to the allocator during the layout phase of the negotiation
// protocol.
func WiderLayouts(native Layout) []Layout {
	if isBlockLayout(native) {
		return nil
	}
	var out []Layout
	for l := range layoutChannelWidths {
		if l == native {
			continue
		}
		if CanHold(l, native) {
			out = append(out, l)
		}
	}
	sortLayoutsByWidth(out)
	return out
}

func layoutTotalWidth(l Layout) int {
	w := layoutChannelWidths[l]
	return int(w[0]) + int(w[1]) + int(w[2]) + int(w[3])
}

func sortLayoutsByWidth(ls []Layout) {
	for i := 1; i < len(ls); i++ {
		for j := i; j > 0 && layoutTotalWidth(ls[j-1]) > layoutTotalWidth(ls[j]); j-- {
			ls[j-1], ls[j] = ls[j], ls[j-1]
		}
	}
}
