package pixfmt

func registerUncompressed() {
	block1x1 := BlockExtent{1, 1}

	reg := func(fi FormatInfo) {
		fi.Block = block1x1
		register(fi)
	}

	reg(FormatInfo{Format: R8_UNORM, Name: "R8_UNORM", BlockByteSize: 1, ChannelCount: 1,
		RedMask: 0xff})
	reg(FormatInfo{Format: L8_UNORM, Name: "L8_UNORM", BlockByteSize: 1, ChannelCount: 1,
		RedMask: 0xff})
	reg(FormatInfo{Format: A8_UNORM, Name: "A8_UNORM", BlockByteSize: 1, ChannelCount: 1,
		AlphaMask: 0xff})
	reg(FormatInfo{Format: L8A8_UNORM, Name: "L8A8_UNORM", BlockByteSize: 2, ChannelCount: 2,
		RedMask: 0x00ff, AlphaMask: 0xff00})
	reg(FormatInfo{Format: L16_UNORM, Name: "L16_UNORM", BlockByteSize: 2, ChannelCount: 1,
		RedMask: 0xffff})

	reg(FormatInfo{Format: R8G8_UNORM, Name: "R8G8_UNORM", BlockByteSize: 2, ChannelCount: 2,
		RedMask: 0x00ff, GreenMask: 0xff00})
	reg(FormatInfo{Format: R8G8_SNORM, Name: "R8G8_SNORM", BlockByteSize: 2, ChannelCount: 2,
		Signed: true, RedMask: 0x00ff, GreenMask: 0xff00})

	reg(FormatInfo{Format: R8G8B8_UNORM, Name: "R8G8B8_UNORM", BlockByteSize: 3, ChannelCount: 3,
		RedMask: 0x0000ff, GreenMask: 0x00ff00, BlueMask: 0xff0000, srgbTwin: R8G8B8_SRGB})
	reg(FormatInfo{Format: R8G8B8_SRGB, Name: "R8G8B8_SRGB", BlockByteSize: 3, ChannelCount: 3, SRGB: true,
		RedMask: 0x0000ff, GreenMask: 0x00ff00, BlueMask: 0xff0000, srgbTwin: R8G8B8_UNORM})
	reg(FormatInfo{Format: B8G8R8_UNORM, Name: "B8G8R8_UNORM", BlockByteSize: 3, ChannelCount: 3,
		RedMask: 0xff0000, GreenMask: 0x00ff00, BlueMask: 0x0000ff, srgbTwin: B8G8R8_SRGB})
	reg(FormatInfo{Format: B8G8R8_SRGB, Name: "B8G8R8_SRGB", BlockByteSize: 3, ChannelCount: 3, SRGB: true,
		RedMask: 0xff0000, GreenMask: 0x00ff00, BlueMask: 0x0000ff, srgbTwin: B8G8R8_UNORM})

	reg(FormatInfo{Format: R8G8B8A8_UNORM, Name: "R8G8B8A8_UNORM", BlockByteSize: 4, ChannelCount: 4,
		RedMask: 0x000000ff, GreenMask: 0x0000ff00, BlueMask: 0x00ff0000, AlphaMask: 0xff000000,
		srgbTwin: R8G8B8A8_SRGB})
	reg(FormatInfo{Format: R8G8B8A8_SRGB, Name: "R8G8B8A8_SRGB", BlockByteSize: 4, ChannelCount: 4, SRGB: true,
		RedMask: 0x000000ff, GreenMask: 0x0000ff00, BlueMask: 0x00ff0000, AlphaMask: 0xff000000,
		srgbTwin: R8G8B8A8_UNORM})
	reg(FormatInfo{Format: R8G8B8A8_SNORM, Name: "R8G8B8A8_SNORM", BlockByteSize: 4, ChannelCount: 4, Signed: true,
		RedMask: 0x000000ff, GreenMask: 0x0000ff00, BlueMask: 0x00ff0000, AlphaMask: 0xff000000})
	reg(FormatInfo{Format: B8G8R8A8_UNORM, Name: "B8G8R8A8_UNORM", BlockByteSize: 4, ChannelCount: 4,
		RedMask: 0x00ff0000, GreenMask: 0x0000ff00, BlueMask: 0x000000ff, AlphaMask: 0xff000000,
		srgbTwin: B8G8R8A8_SRGB})
	reg(FormatInfo{Format: B8G8R8A8_SRGB, Name: "B8G8R8A8_SRGB", BlockByteSize: 4, ChannelCount: 4, SRGB: true,
		RedMask: 0x00ff0000, GreenMask: 0x0000ff00, BlueMask: 0x000000ff, AlphaMask: 0xff000000,
		srgbTwin: B8G8R8A8_UNORM})
	reg(FormatInfo{Format: B8G8R8X8_UNORM, Name: "B8G8R8X8_UNORM", BlockByteSize: 4, ChannelCount: 3,
		RedMask: 0x00ff0000, GreenMask: 0x0000ff00, BlueMask: 0x000000ff, srgbTwin: B8G8R8X8_SRGB})
	reg(FormatInfo{Format: B8G8R8X8_SRGB, Name: "B8G8R8X8_SRGB", BlockByteSize: 4, ChannelCount: 3, SRGB: true,
		RedMask: 0x00ff0000, GreenMask: 0x0000ff00, BlueMask: 0x000000ff, srgbTwin: B8G8R8X8_UNORM})

	reg(FormatInfo{Format: R5G6B5_UNORM, Name: "R5G6B5_UNORM", BlockByteSize: 2, ChannelCount: 3,
		RedMask: 0xf800, GreenMask: 0x07e0, BlueMask: 0x001f})
	reg(FormatInfo{Format: A1R5G5B5_UNORM, Name: "A1R5G5B5_UNORM", BlockByteSize: 2, ChannelCount: 4,
		RedMask: 0x7c00, GreenMask: 0x03e0, BlueMask: 0x001f, AlphaMask: 0x8000})
	reg(FormatInfo{Format: A4R4G4B4_UNORM, Name: "A4R4G4B4_UNORM", BlockByteSize: 2, ChannelCount: 4,
		RedMask: 0x0f00, GreenMask: 0x00f0, BlueMask: 0x000f, AlphaMask: 0xf000})

	reg(FormatInfo{Format: A2B10G10R10_UNORM, Name: "A2B10G10R10_UNORM", BlockByteSize: 4, ChannelCount: 4,
		RedMask: 0x000003ff, GreenMask: 0x000ffc00, BlueMask: 0x3ff00000, AlphaMask: 0xc0000000})
	reg(FormatInfo{Format: A2R10G10B10_UNORM, Name: "A2R10G10B10_UNORM", BlockByteSize: 4, ChannelCount: 4,
		RedMask: 0x3ff00000, GreenMask: 0x000ffc00, BlueMask: 0x000003ff, AlphaMask: 0xc0000000})

	reg(FormatInfo{Format: R16G16_UNORM, Name: "R16G16_UNORM", BlockByteSize: 4, ChannelCount: 2,
		RedMask: 0x0000ffff, GreenMask: 0xffff0000})
	reg(FormatInfo{Format: R16G16_SNORM, Name: "R16G16_SNORM", BlockByteSize: 4, ChannelCount: 2, Signed: true,
		RedMask: 0x0000ffff, GreenMask: 0xffff0000})
	reg(FormatInfo{Format: R16G16B16_UNORM, Name: "R16G16B16_UNORM", BlockByteSize: 6, ChannelCount: 3})
	reg(FormatInfo{Format: R16G16B16A16_UNORM, Name: "R16G16B16A16_UNORM", BlockByteSize: 8, ChannelCount: 4})

	reg(FormatInfo{Format: R16_SFLOAT, Name: "R16_SFLOAT", BlockByteSize: 2, ChannelCount: 1, Signed: true})
	reg(FormatInfo{Format: R16G16_SFLOAT, Name: "R16G16_SFLOAT", BlockByteSize: 4, ChannelCount: 2, Signed: true})
	reg(FormatInfo{Format: R16G16B16A16_SFLOAT, Name: "R16G16B16A16_SFLOAT", BlockByteSize: 8, ChannelCount: 4, Signed: true})
	reg(FormatInfo{Format: R32_SFLOAT, Name: "R32_SFLOAT", BlockByteSize: 4, ChannelCount: 1, Signed: true})
	reg(FormatInfo{Format: R32G32_SFLOAT, Name: "R32G32_SFLOAT", BlockByteSize: 8, ChannelCount: 2, Signed: true})
	reg(FormatInfo{Format: R32G32B32A32_SFLOAT, Name: "R32G32B32A32_SFLOAT", BlockByteSize: 16, ChannelCount: 4, Signed: true})
	reg(FormatInfo{Format: R11G11B10_FLOAT, Name: "R11G11B10_FLOAT", BlockByteSize: 4, ChannelCount: 3})
}
