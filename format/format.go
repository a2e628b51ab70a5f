// Package format translates pixel formats between the neutral format space
// used throughout the capture pipeline and the native spaces of the
// graphics APIs it touches: WebGPU texture formats, Vulkan VkFormat values,
// and DXGI formats.
//
// Translation is table-driven. Each native space has one row list; forward
// and reverse maps are derived from it at package init. When two rows share
// a key the first row wins, which is how deliberately one-way mappings are
// expressed (DXGI R8G8B8A8_TYPELESS resolves to RGBA8Unorm, but RGBA8Unorm
// resolves back to R8G8B8A8_UNORM; video formats like NV12 have a DXGI
// identity and nothing else).
//
// A failed lookup returns an error wrapping [ErrUnsupported]. Callers are
// expected to fail fast: a texture in a format with no equivalent in the
// target space cannot be imported, and no GPU resource should be created
// before that is known.
package format

import (
	"errors"
	"fmt"
)

// ErrUnsupported is wrapped by all conversion errors.
var ErrUnsupported = errors.New("unsupported pixel format conversion")

// PixelFormat is the neutral color/depth format space. It is a superset of
// every native space the pipeline can meet: some formats exist only in one
// native API and translate to nothing elsewhere.
type PixelFormat uint8

const (
	FormatUnknown PixelFormat = iota

	FormatR8Unorm
	FormatR8Snorm
	FormatR8Uint
	FormatR8Sint

	FormatR16Uint
	FormatR16Sint
	FormatR16Unorm
	FormatR16Snorm
	FormatR16Float

	FormatRG8Unorm
	FormatRG8Snorm
	FormatRG8Uint
	FormatRG8Sint

	FormatR32Uint
	FormatR32Sint
	FormatR32Float

	FormatRG16Uint
	FormatRG16Sint
	FormatRG16Unorm
	FormatRG16Snorm
	FormatRG16Float

	FormatRGBA8Unorm
	FormatRGBA8UnormSrgb
	FormatRGBA8Snorm
	FormatRGBA8Uint
	FormatRGBA8Sint
	FormatBGRA8Unorm
	FormatBGRA8UnormSrgb

	FormatRGB10A2Unorm
	FormatRG11B10Float
	FormatRGB9E5Ufloat

	FormatRG32Uint
	FormatRG32Sint
	FormatRG32Float

	FormatRGBA16Uint
	FormatRGBA16Sint
	FormatRGBA16Unorm
	FormatRGBA16Snorm
	FormatRGBA16Float

	FormatRGBA32Uint
	FormatRGBA32Sint
	FormatRGBA32Float

	FormatStencil8
	FormatDepth16Unorm
	FormatDepth24Plus
	FormatDepth24PlusStencil8
	FormatDepth32Float
	FormatDepth32FloatStencil8

	FormatBC1RGBAUnorm
	FormatBC1RGBAUnormSrgb
	FormatBC2RGBAUnorm
	FormatBC2RGBAUnormSrgb
	FormatBC3RGBAUnorm
	FormatBC3RGBAUnormSrgb
	FormatBC4RUnorm
	FormatBC4RSnorm
	FormatBC5RGUnorm
	FormatBC5RGSnorm
	FormatBC6HRGBUfloat
	FormatBC6HRGBFloat
	FormatBC7RGBAUnorm
	FormatBC7RGBAUnormSrgb

	FormatETC2RGB8Unorm
	FormatETC2RGB8UnormSrgb
	FormatETC2RGB8A1Unorm
	FormatETC2RGB8A1UnormSrgb
	FormatETC2RGBA8Unorm
	FormatETC2RGBA8UnormSrgb
	FormatEACR11Unorm
	FormatEACR11Snorm
	FormatEACRG11Unorm
	FormatEACRG11Snorm

	// Video formats. These exist in the DXGI space only: desktop
	// duplication and media engines hand them out, but they have no
	// WebGPU or Vulkan texture equivalent here.
	FormatAYUV
	FormatNV12
	FormatY410
	FormatP010
)

var pixelFormatNames = map[PixelFormat]string{
	FormatUnknown:              "unknown",
	FormatR8Unorm:              "r8unorm",
	FormatR8Snorm:              "r8snorm",
	FormatR8Uint:               "r8uint",
	FormatR8Sint:               "r8sint",
	FormatR16Uint:              "r16uint",
	FormatR16Sint:              "r16sint",
	FormatR16Unorm:             "r16unorm",
	FormatR16Snorm:             "r16snorm",
	FormatR16Float:             "r16float",
	FormatRG8Unorm:             "rg8unorm",
	FormatRG8Snorm:             "rg8snorm",
	FormatRG8Uint:              "rg8uint",
	FormatRG8Sint:              "rg8sint",
	FormatR32Uint:              "r32uint",
	FormatR32Sint:              "r32sint",
	FormatR32Float:             "r32float",
	FormatRG16Uint:             "rg16uint",
	FormatRG16Sint:             "rg16sint",
	FormatRG16Unorm:            "rg16unorm",
	FormatRG16Snorm:            "rg16snorm",
	FormatRG16Float:            "rg16float",
	FormatRGBA8Unorm:           "rgba8unorm",
	FormatRGBA8UnormSrgb:       "rgba8unorm-srgb",
	FormatRGBA8Snorm:           "rgba8snorm",
	FormatRGBA8Uint:            "rgba8uint",
	FormatRGBA8Sint:            "rgba8sint",
	FormatBGRA8Unorm:           "bgra8unorm",
	FormatBGRA8UnormSrgb:       "bgra8unorm-srgb",
	FormatRGB10A2Unorm:         "rgb10a2unorm",
	FormatRG11B10Float:         "rg11b10float",
	FormatRGB9E5Ufloat:         "rgb9e5ufloat",
	FormatRG32Uint:             "rg32uint",
	FormatRG32Sint:             "rg32sint",
	FormatRG32Float:            "rg32float",
	FormatRGBA16Uint:           "rgba16uint",
	FormatRGBA16Sint:           "rgba16sint",
	FormatRGBA16Unorm:          "rgba16unorm",
	FormatRGBA16Snorm:          "rgba16snorm",
	FormatRGBA16Float:          "rgba16float",
	FormatRGBA32Uint:           "rgba32uint",
	FormatRGBA32Sint:           "rgba32sint",
	FormatRGBA32Float:          "rgba32float",
	FormatStencil8:             "stencil8",
	FormatDepth16Unorm:         "depth16unorm",
	FormatDepth24Plus:          "depth24plus",
	FormatDepth24PlusStencil8:  "depth24plus-stencil8",
	FormatDepth32Float:         "depth32float",
	FormatDepth32FloatStencil8: "depth32float-stencil8",
	FormatBC1RGBAUnorm:         "bc1-rgba-unorm",
	FormatBC1RGBAUnormSrgb:     "bc1-rgba-unorm-srgb",
	FormatBC2RGBAUnorm:         "bc2-rgba-unorm",
	FormatBC2RGBAUnormSrgb:     "bc2-rgba-unorm-srgb",
	FormatBC3RGBAUnorm:         "bc3-rgba-unorm",
	FormatBC3RGBAUnormSrgb:     "bc3-rgba-unorm-srgb",
	FormatBC4RUnorm:            "bc4-r-unorm",
	FormatBC4RSnorm:            "bc4-r-snorm",
	FormatBC5RGUnorm:           "bc5-rg-unorm",
	FormatBC5RGSnorm:           "bc5-rg-snorm",
	FormatBC6HRGBUfloat:        "bc6h-rgb-ufloat",
	FormatBC6HRGBFloat:         "bc6h-rgb-float",
	FormatBC7RGBAUnorm:         "bc7-rgba-unorm",
	FormatBC7RGBAUnormSrgb:     "bc7-rgba-unorm-srgb",
	FormatETC2RGB8Unorm:        "etc2-rgb8unorm",
	FormatETC2RGB8UnormSrgb:    "etc2-rgb8unorm-srgb",
	FormatETC2RGB8A1Unorm:      "etc2-rgb8a1unorm",
	FormatETC2RGB8A1UnormSrgb:  "etc2-rgb8a1unorm-srgb",
	FormatETC2RGBA8Unorm:       "etc2-rgba8unorm",
	FormatETC2RGBA8UnormSrgb:   "etc2-rgba8unorm-srgb",
	FormatEACR11Unorm:          "eac-r11unorm",
	FormatEACR11Snorm:          "eac-r11snorm",
	FormatEACRG11Unorm:         "eac-rg11unorm",
	FormatEACRG11Snorm:         "eac-rg11snorm",
	FormatAYUV:                 "ayuv",
	FormatNV12:                 "nv12",
	FormatY410:                 "y410",
	FormatP010:                 "p010",
}

func (f PixelFormat) String() string {
	if s, ok := pixelFormatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("PixelFormat(%d)", uint8(f))
}

// BytesPerTexel returns the texel size for uncompressed single-plane
// formats, or 0 for compressed, packed-depth, and planar video formats.
// Upload paths use it to compute row pitches.
func (f PixelFormat) BytesPerTexel() int {
	switch f {
	case FormatR8Unorm, FormatR8Snorm, FormatR8Uint, FormatR8Sint, FormatStencil8:
		return 1
	case FormatR16Uint, FormatR16Sint, FormatR16Unorm, FormatR16Snorm, FormatR16Float,
		FormatRG8Unorm, FormatRG8Snorm, FormatRG8Uint, FormatRG8Sint,
		FormatDepth16Unorm:
		return 2
	case FormatR32Uint, FormatR32Sint, FormatR32Float,
		FormatRG16Uint, FormatRG16Sint, FormatRG16Unorm, FormatRG16Snorm, FormatRG16Float,
		FormatRGBA8Unorm, FormatRGBA8UnormSrgb, FormatRGBA8Snorm, FormatRGBA8Uint, FormatRGBA8Sint,
		FormatBGRA8Unorm, FormatBGRA8UnormSrgb,
		FormatRGB10A2Unorm, FormatRG11B10Float, FormatRGB9E5Ufloat,
		FormatDepth32Float:
		return 4
	case FormatRG32Uint, FormatRG32Sint, FormatRG32Float,
		FormatRGBA16Uint, FormatRGBA16Sint, FormatRGBA16Unorm, FormatRGBA16Snorm, FormatRGBA16Float:
		return 8
	case FormatRGBA32Uint, FormatRGBA32Sint, FormatRGBA32Float:
		return 16
	default:
		return 0
	}
}
