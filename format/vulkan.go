package format

import "fmt"

// VulkanFormat is a raw VkFormat value. Values are the Vulkan core enum
// constants; the import path hands them to vkCreateImage unchanged.
type VulkanFormat uint32

const (
	VKFormatUndefined VulkanFormat = 0

	VKFormatR8Unorm VulkanFormat = 9
	VKFormatR8Snorm VulkanFormat = 10
	VKFormatR8Uint  VulkanFormat = 13
	VKFormatR8Sint  VulkanFormat = 14

	VKFormatR8G8Unorm VulkanFormat = 16
	VKFormatR8G8Snorm VulkanFormat = 17
	VKFormatR8G8Uint  VulkanFormat = 20
	VKFormatR8G8Sint  VulkanFormat = 21

	VKFormatR8G8B8A8Unorm VulkanFormat = 37
	VKFormatR8G8B8A8Snorm VulkanFormat = 38
	VKFormatR8G8B8A8Uint  VulkanFormat = 41
	VKFormatR8G8B8A8Sint  VulkanFormat = 42
	VKFormatR8G8B8A8Srgb  VulkanFormat = 43
	VKFormatB8G8R8A8Unorm VulkanFormat = 44
	VKFormatB8G8R8A8Srgb  VulkanFormat = 50

	VKFormatA2B10G10R10UnormPack32 VulkanFormat = 64

	VKFormatR16Unorm  VulkanFormat = 70
	VKFormatR16Snorm  VulkanFormat = 71
	VKFormatR16Uint   VulkanFormat = 74
	VKFormatR16Sint   VulkanFormat = 75
	VKFormatR16Sfloat VulkanFormat = 76

	VKFormatR16G16Unorm  VulkanFormat = 77
	VKFormatR16G16Snorm  VulkanFormat = 78
	VKFormatR16G16Uint   VulkanFormat = 81
	VKFormatR16G16Sint   VulkanFormat = 82
	VKFormatR16G16Sfloat VulkanFormat = 83

	VKFormatR16G16B16A16Unorm  VulkanFormat = 91
	VKFormatR16G16B16A16Snorm  VulkanFormat = 92
	VKFormatR16G16B16A16Uint   VulkanFormat = 95
	VKFormatR16G16B16A16Sint   VulkanFormat = 96
	VKFormatR16G16B16A16Sfloat VulkanFormat = 97

	VKFormatR32Uint   VulkanFormat = 98
	VKFormatR32Sint   VulkanFormat = 99
	VKFormatR32Sfloat VulkanFormat = 100

	VKFormatR32G32Uint   VulkanFormat = 101
	VKFormatR32G32Sint   VulkanFormat = 102
	VKFormatR32G32Sfloat VulkanFormat = 103

	VKFormatR32G32B32A32Uint   VulkanFormat = 107
	VKFormatR32G32B32A32Sint   VulkanFormat = 108
	VKFormatR32G32B32A32Sfloat VulkanFormat = 109

	VKFormatB10G11R11UfloatPack32 VulkanFormat = 122
	VKFormatE5B9G9R9UfloatPack32  VulkanFormat = 123

	VKFormatD16Unorm        VulkanFormat = 124
	VKFormatD32Sfloat       VulkanFormat = 126
	VKFormatS8Uint          VulkanFormat = 127
	VKFormatD24UnormS8Uint  VulkanFormat = 129
	VKFormatD32SfloatS8Uint VulkanFormat = 130

	VKFormatBC1RGBAUnormBlock VulkanFormat = 133
	VKFormatBC1RGBASrgbBlock  VulkanFormat = 134
	VKFormatBC2UnormBlock     VulkanFormat = 135
	VKFormatBC2SrgbBlock      VulkanFormat = 136
	VKFormatBC3UnormBlock     VulkanFormat = 137
	VKFormatBC3SrgbBlock      VulkanFormat = 138
	VKFormatBC4UnormBlock     VulkanFormat = 139
	VKFormatBC4SnormBlock     VulkanFormat = 140
	VKFormatBC5UnormBlock     VulkanFormat = 141
	VKFormatBC5SnormBlock     VulkanFormat = 142
	VKFormatBC6HUfloatBlock   VulkanFormat = 143
	VKFormatBC6HSfloatBlock   VulkanFormat = 144
	VKFormatBC7UnormBlock     VulkanFormat = 145
	VKFormatBC7SrgbBlock      VulkanFormat = 146

	VKFormatETC2R8G8B8UnormBlock   VulkanFormat = 147
	VKFormatETC2R8G8B8SrgbBlock    VulkanFormat = 148
	VKFormatETC2R8G8B8A1UnormBlock VulkanFormat = 149
	VKFormatETC2R8G8B8A1SrgbBlock  VulkanFormat = 150
	VKFormatETC2R8G8B8A8UnormBlock VulkanFormat = 151
	VKFormatETC2R8G8B8A8SrgbBlock  VulkanFormat = 152

	VKFormatEACR11UnormBlock    VulkanFormat = 153
	VKFormatEACR11SnormBlock    VulkanFormat = 154
	VKFormatEACR11G11UnormBlock VulkanFormat = 155
	VKFormatEACR11G11SnormBlock VulkanFormat = 156
)

// vulkanRows maps neutral formats to VkFormat values. Depth24Plus lowers
// to D32_SFLOAT, so D32_SFLOAT reverses to Depth32Float (first row wins).
var vulkanRows = []row[VulkanFormat]{
	{FormatR8Unorm, VKFormatR8Unorm},
	{FormatR8Snorm, VKFormatR8Snorm},
	{FormatR8Uint, VKFormatR8Uint},
	{FormatR8Sint, VKFormatR8Sint},
	{FormatR16Uint, VKFormatR16Uint},
	{FormatR16Sint, VKFormatR16Sint},
	{FormatR16Unorm, VKFormatR16Unorm},
	{FormatR16Snorm, VKFormatR16Snorm},
	{FormatR16Float, VKFormatR16Sfloat},
	{FormatRG8Unorm, VKFormatR8G8Unorm},
	{FormatRG8Snorm, VKFormatR8G8Snorm},
	{FormatRG8Uint, VKFormatR8G8Uint},
	{FormatRG8Sint, VKFormatR8G8Sint},
	{FormatRG16Unorm, VKFormatR16G16Unorm},
	{FormatRG16Snorm, VKFormatR16G16Snorm},
	{FormatR32Uint, VKFormatR32Uint},
	{FormatR32Sint, VKFormatR32Sint},
	{FormatR32Float, VKFormatR32Sfloat},
	{FormatRG16Uint, VKFormatR16G16Uint},
	{FormatRG16Sint, VKFormatR16G16Sint},
	{FormatRG16Float, VKFormatR16G16Sfloat},
	{FormatRGBA8Unorm, VKFormatR8G8B8A8Unorm},
	{FormatRGBA8UnormSrgb, VKFormatR8G8B8A8Srgb},
	{FormatBGRA8UnormSrgb, VKFormatB8G8R8A8Srgb},
	{FormatRGBA8Snorm, VKFormatR8G8B8A8Snorm},
	{FormatBGRA8Unorm, VKFormatB8G8R8A8Unorm},
	{FormatRGBA8Uint, VKFormatR8G8B8A8Uint},
	{FormatRGBA8Sint, VKFormatR8G8B8A8Sint},
	{FormatRGB10A2Unorm, VKFormatA2B10G10R10UnormPack32},
	{FormatRG11B10Float, VKFormatB10G11R11UfloatPack32},
	{FormatRG32Uint, VKFormatR32G32Uint},
	{FormatRG32Sint, VKFormatR32G32Sint},
	{FormatRG32Float, VKFormatR32G32Sfloat},
	{FormatRGBA16Uint, VKFormatR16G16B16A16Uint},
	{FormatRGBA16Sint, VKFormatR16G16B16A16Sint},
	{FormatRGBA16Unorm, VKFormatR16G16B16A16Unorm},
	{FormatRGBA16Snorm, VKFormatR16G16B16A16Snorm},
	{FormatRGBA16Float, VKFormatR16G16B16A16Sfloat},
	{FormatRGBA32Uint, VKFormatR32G32B32A32Uint},
	{FormatRGBA32Sint, VKFormatR32G32B32A32Sint},
	{FormatRGBA32Float, VKFormatR32G32B32A32Sfloat},
	{FormatDepth32Float, VKFormatD32Sfloat},
	{FormatDepth32FloatStencil8, VKFormatD32SfloatS8Uint},
	{FormatDepth24Plus, VKFormatD32Sfloat},
	{FormatDepth24PlusStencil8, VKFormatD24UnormS8Uint},
	{FormatDepth16Unorm, VKFormatD16Unorm},
	{FormatRGB9E5Ufloat, VKFormatE5B9G9R9UfloatPack32},
	{FormatBC1RGBAUnorm, VKFormatBC1RGBAUnormBlock},
	{FormatBC1RGBAUnormSrgb, VKFormatBC1RGBASrgbBlock},
	{FormatBC2RGBAUnorm, VKFormatBC2UnormBlock},
	{FormatBC2RGBAUnormSrgb, VKFormatBC2SrgbBlock},
	{FormatBC3RGBAUnorm, VKFormatBC3UnormBlock},
	{FormatBC3RGBAUnormSrgb, VKFormatBC3SrgbBlock},
	{FormatBC4RUnorm, VKFormatBC4UnormBlock},
	{FormatBC4RSnorm, VKFormatBC4SnormBlock},
	{FormatBC5RGUnorm, VKFormatBC5UnormBlock},
	{FormatBC5RGSnorm, VKFormatBC5SnormBlock},
	{FormatBC6HRGBUfloat, VKFormatBC6HUfloatBlock},
	{FormatBC6HRGBFloat, VKFormatBC6HSfloatBlock},
	{FormatBC7RGBAUnorm, VKFormatBC7UnormBlock},
	{FormatBC7RGBAUnormSrgb, VKFormatBC7SrgbBlock},
	{FormatETC2RGB8Unorm, VKFormatETC2R8G8B8UnormBlock},
	{FormatETC2RGB8UnormSrgb, VKFormatETC2R8G8B8SrgbBlock},
	{FormatETC2RGB8A1Unorm, VKFormatETC2R8G8B8A1UnormBlock},
	{FormatETC2RGB8A1UnormSrgb, VKFormatETC2R8G8B8A1SrgbBlock},
	{FormatETC2RGBA8Unorm, VKFormatETC2R8G8B8A8UnormBlock},
	{FormatETC2RGBA8UnormSrgb, VKFormatETC2R8G8B8A8SrgbBlock},
	{FormatEACR11Unorm, VKFormatEACR11UnormBlock},
	{FormatEACR11Snorm, VKFormatEACR11SnormBlock},
	{FormatEACRG11Unorm, VKFormatEACR11G11UnormBlock},
	{FormatEACRG11Snorm, VKFormatEACR11G11SnormBlock},
	{FormatStencil8, VKFormatS8Uint},
}

var (
	pxToVulkan map[PixelFormat]VulkanFormat
	vulkanToPx map[VulkanFormat]PixelFormat
)

func init() {
	pxToVulkan, vulkanToPx = buildMaps(vulkanRows)
}

// ToVulkan returns the VkFormat equivalent to f.
func ToVulkan(f PixelFormat) (VulkanFormat, error) {
	vf, ok := pxToVulkan[f]
	if !ok {
		return VKFormatUndefined, fmt.Errorf("%w: %v has no Vulkan equivalent", ErrUnsupported, f)
	}
	return vf, nil
}

// FromVulkan returns the neutral format equivalent to vf.
func FromVulkan(vf VulkanFormat) (PixelFormat, error) {
	f, ok := vulkanToPx[vf]
	if !ok {
		return FormatUnknown, fmt.Errorf("%w: VkFormat %d has no equivalent", ErrUnsupported, vf)
	}
	return f, nil
}
