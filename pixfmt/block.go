package pixfmt

func registerBlockCompressed() {
	block4x4 := BlockExtent{4, 4}

	reg := func(fi FormatInfo) {
		fi.Block = block4x4
		register(fi)
	}

	reg(FormatInfo{Format: BC1_RGBA_UNORM_BLOCK, Name: "BC1_RGBA_UNORM_BLOCK", BlockByteSize: 8, ChannelCount: 4,
		srgbTwin: BC1_RGBA_SRGB_BLOCK})
	reg(FormatInfo{Format: BC1_RGBA_SRGB_BLOCK, Name: "BC1_RGBA_SRGB_BLOCK", BlockByteSize: 8, ChannelCount: 4, SRGB: true,
		srgbTwin: BC1_RGBA_UNORM_BLOCK})
	reg(FormatInfo{Format: BC2_UNORM_BLOCK, Name: "BC2_UNORM_BLOCK", BlockByteSize: 16, ChannelCount: 4,
		srgbTwin: BC2_SRGB_BLOCK})
	reg(FormatInfo{Format: BC2_SRGB_BLOCK, Name: "BC2_SRGB_BLOCK", BlockByteSize: 16, ChannelCount: 4, SRGB: true,
		srgbTwin: BC2_UNORM_BLOCK})
	reg(FormatInfo{Format: BC3_UNORM_BLOCK, Name: "BC3_UNORM_BLOCK", BlockByteSize: 16, ChannelCount: 4,
		srgbTwin: BC3_SRGB_BLOCK})
	reg(FormatInfo{Format: BC3_SRGB_BLOCK, Name: "BC3_SRGB_BLOCK", BlockByteSize: 16, ChannelCount: 4, SRGB: true,
		srgbTwin: BC3_UNORM_BLOCK})
	reg(FormatInfo{Format: BC4_UNORM_BLOCK, Name: "BC4_UNORM_BLOCK", BlockByteSize: 8, ChannelCount: 1})
	reg(FormatInfo{Format: BC4_SNORM_BLOCK, Name: "BC4_SNORM_BLOCK", BlockByteSize: 8, ChannelCount: 1, Signed: true})
	reg(FormatInfo{Format: BC5_UNORM_BLOCK, Name: "BC5_UNORM_BLOCK", BlockByteSize: 16, ChannelCount: 2})
	reg(FormatInfo{Format: BC5_SNORM_BLOCK, Name: "BC5_SNORM_BLOCK", BlockByteSize: 16, ChannelCount: 2, Signed: true})
	reg(FormatInfo{Format: BC6H_UFLOAT_BLOCK, Name: "BC6H_UFLOAT_BLOCK", BlockByteSize: 16, ChannelCount: 3})
	reg(FormatInfo{Format: BC6H_SFLOAT_BLOCK, Name: "BC6H_SFLOAT_BLOCK", BlockByteSize: 16, ChannelCount: 3, Signed: true})
	reg(FormatInfo{Format: BC7_UNORM_BLOCK, Name: "BC7_UNORM_BLOCK", BlockByteSize: 16, ChannelCount: 4,
		srgbTwin: BC7_SRGB_BLOCK})
	reg(FormatInfo{Format: BC7_SRGB_BLOCK, Name: "BC7_SRGB_BLOCK", BlockByteSize: 16, ChannelCount: 4, SRGB: true,
		srgbTwin: BC7_UNORM_BLOCK})

	reg(FormatInfo{Format: ETC2_R8G8B8_UNORM_BLOCK, Name: "ETC2_R8G8B8_UNORM_BLOCK", BlockByteSize: 8, ChannelCount: 3,
		srgbTwin: ETC2_R8G8B8_SRGB_BLOCK})
	reg(FormatInfo{Format: ETC2_R8G8B8_SRGB_BLOCK, Name: "ETC2_R8G8B8_SRGB_BLOCK", BlockByteSize: 8, ChannelCount: 3, SRGB: true,
		srgbTwin: ETC2_R8G8B8_UNORM_BLOCK})
	reg(FormatInfo{Format: ETC2_R8G8B8A8_UNORM_BLOCK, Name: "ETC2_R8G8B8A8_UNORM_BLOCK", BlockByteSize: 16, ChannelCount: 4,
		srgbTwin: ETC2_R8G8B8A8_SRGB_BLOCK})
	reg(FormatInfo{Format: ETC2_R8G8B8A8_SRGB_BLOCK, Name: "ETC2_R8G8B8A8_SRGB_BLOCK", BlockByteSize: 16, ChannelCount: 4, SRGB: true,
		srgbTwin: ETC2_R8G8B8A8_UNORM_BLOCK})
	reg(FormatInfo{Format: EAC_R11_UNORM_BLOCK, Name: "EAC_R11_UNORM_BLOCK", BlockByteSize: 8, ChannelCount: 1})
	reg(FormatInfo{Format: EAC_R11G11_UNORM_BLOCK, Name: "EAC_R11G11_UNORM_BLOCK", BlockByteSize: 16, ChannelCount: 2})
}
