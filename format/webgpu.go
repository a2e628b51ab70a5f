package format

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// webgpuRows maps neutral formats to WebGPU texture formats. ETC2/EAC,
// Stencil8, Depth24Plus, and the video formats are absent on purpose:
// nothing in the WebGPU path consumes them.
var webgpuRows = []row[gputypes.TextureFormat]{
	{FormatR8Unorm, gputypes.TextureFormatR8Unorm},
	{FormatR8Snorm, gputypes.TextureFormatR8Snorm},
	{FormatR8Uint, gputypes.TextureFormatR8Uint},
	{FormatR8Sint, gputypes.TextureFormatR8Sint},
	{FormatR16Uint, gputypes.TextureFormatR16Uint},
	{FormatR16Sint, gputypes.TextureFormatR16Sint},
	{FormatR16Unorm, gputypes.TextureFormatR16Unorm},
	{FormatR16Snorm, gputypes.TextureFormatR16Snorm},
	{FormatR16Float, gputypes.TextureFormatR16Float},
	{FormatRG8Unorm, gputypes.TextureFormatRG8Unorm},
	{FormatRG8Snorm, gputypes.TextureFormatRG8Snorm},
	{FormatRG8Uint, gputypes.TextureFormatRG8Uint},
	{FormatRG8Sint, gputypes.TextureFormatRG8Sint},
	{FormatRG16Unorm, gputypes.TextureFormatRG16Unorm},
	{FormatRG16Snorm, gputypes.TextureFormatRG16Snorm},
	{FormatR32Uint, gputypes.TextureFormatR32Uint},
	{FormatR32Sint, gputypes.TextureFormatR32Sint},
	{FormatR32Float, gputypes.TextureFormatR32Float},
	{FormatRG16Uint, gputypes.TextureFormatRG16Uint},
	{FormatRG16Sint, gputypes.TextureFormatRG16Sint},
	{FormatRG16Float, gputypes.TextureFormatRG16Float},
	{FormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm},
	{FormatRGBA8UnormSrgb, gputypes.TextureFormatRGBA8UnormSrgb},
	{FormatBGRA8UnormSrgb, gputypes.TextureFormatBGRA8UnormSrgb},
	{FormatRGBA8Snorm, gputypes.TextureFormatRGBA8Snorm},
	{FormatBGRA8Unorm, gputypes.TextureFormatBGRA8Unorm},
	{FormatRGBA8Uint, gputypes.TextureFormatRGBA8Uint},
	{FormatRGBA8Sint, gputypes.TextureFormatRGBA8Sint},
	{FormatRGB10A2Unorm, gputypes.TextureFormatRGB10A2Unorm},
	{FormatRG11B10Float, gputypes.TextureFormatRG11B10Ufloat},
	{FormatRG32Uint, gputypes.TextureFormatRG32Uint},
	{FormatRG32Sint, gputypes.TextureFormatRG32Sint},
	{FormatRG32Float, gputypes.TextureFormatRG32Float},
	{FormatRGBA16Uint, gputypes.TextureFormatRGBA16Uint},
	{FormatRGBA16Sint, gputypes.TextureFormatRGBA16Sint},
	{FormatRGBA16Unorm, gputypes.TextureFormatRGBA16Unorm},
	{FormatRGBA16Snorm, gputypes.TextureFormatRGBA16Snorm},
	{FormatRGBA16Float, gputypes.TextureFormatRGBA16Float},
	{FormatRGBA32Uint, gputypes.TextureFormatRGBA32Uint},
	{FormatRGBA32Sint, gputypes.TextureFormatRGBA32Sint},
	{FormatRGBA32Float, gputypes.TextureFormatRGBA32Float},
	{FormatDepth32Float, gputypes.TextureFormatDepth32Float},
	{FormatDepth32FloatStencil8, gputypes.TextureFormatDepth32FloatStencil8},
	{FormatDepth24PlusStencil8, gputypes.TextureFormatDepth24PlusStencil8},
	{FormatRGB9E5Ufloat, gputypes.TextureFormatRGB9E5Ufloat},
	{FormatBC1RGBAUnorm, gputypes.TextureFormatBC1RGBAUnorm},
	{FormatBC1RGBAUnormSrgb, gputypes.TextureFormatBC1RGBAUnormSrgb},
	{FormatBC2RGBAUnorm, gputypes.TextureFormatBC2RGBAUnorm},
	{FormatBC2RGBAUnormSrgb, gputypes.TextureFormatBC2RGBAUnormSrgb},
	{FormatBC3RGBAUnorm, gputypes.TextureFormatBC3RGBAUnorm},
	{FormatBC3RGBAUnormSrgb, gputypes.TextureFormatBC3RGBAUnormSrgb},
	{FormatBC4RUnorm, gputypes.TextureFormatBC4RUnorm},
	{FormatBC4RSnorm, gputypes.TextureFormatBC4RSnorm},
	{FormatBC5RGUnorm, gputypes.TextureFormatBC5RGUnorm},
	{FormatBC5RGSnorm, gputypes.TextureFormatBC5RGSnorm},
	{FormatBC6HRGBUfloat, gputypes.TextureFormatBC6HRGBUfloat},
	{FormatBC6HRGBFloat, gputypes.TextureFormatBC6HRGBFloat},
	{FormatBC7RGBAUnorm, gputypes.TextureFormatBC7RGBAUnorm},
	{FormatBC7RGBAUnormSrgb, gputypes.TextureFormatBC7RGBAUnormSrgb},
	{FormatDepth16Unorm, gputypes.TextureFormatDepth16Unorm},
}

var (
	pxToWebGPU map[PixelFormat]gputypes.TextureFormat
	webGPUToPx map[gputypes.TextureFormat]PixelFormat
)

func init() {
	pxToWebGPU, webGPUToPx = buildMaps(webgpuRows)
}

// ToWebGPU returns the WebGPU texture format equivalent to f.
func ToWebGPU(f PixelFormat) (gputypes.TextureFormat, error) {
	tf, ok := pxToWebGPU[f]
	if !ok {
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: %v has no WebGPU equivalent", ErrUnsupported, f)
	}
	return tf, nil
}

// FromWebGPU returns the neutral format equivalent to tf.
func FromWebGPU(tf gputypes.TextureFormat) (PixelFormat, error) {
	f, ok := webGPUToPx[tf]
	if !ok {
		return FormatUnknown, fmt.Errorf("%w: WebGPU format %d has no equivalent", ErrUnsupported, tf)
	}
	return f, nil
}
