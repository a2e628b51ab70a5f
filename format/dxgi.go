package format

import "fmt"

// DXGIFormat is a raw DXGI_FORMAT value.
type DXGIFormat uint32

const (
	DXGIFormatUnknown DXGIFormat = 0

	DXGIFormatR32G32B32A32Float DXGIFormat = 2
	DXGIFormatR32G32B32A32Uint  DXGIFormat = 3
	DXGIFormatR32G32B32A32Sint  DXGIFormat = 4

	DXGIFormatR16G16B16A16Float DXGIFormat = 10
	DXGIFormatR16G16B16A16Unorm DXGIFormat = 11
	DXGIFormatR16G16B16A16Uint  DXGIFormat = 12
	DXGIFormatR16G16B16A16Snorm DXGIFormat = 13
	DXGIFormatR16G16B16A16Sint  DXGIFormat = 14

	DXGIFormatR32G32Float DXGIFormat = 16
	DXGIFormatR32G32Uint  DXGIFormat = 17
	DXGIFormatR32G32Sint  DXGIFormat = 18

	DXGIFormatD32FloatS8X24Uint DXGIFormat = 20

	DXGIFormatR10G10B10A2Unorm DXGIFormat = 24
	DXGIFormatR11G11B10Float   DXGIFormat = 26

	DXGIFormatR8G8B8A8Typeless  DXGIFormat = 27
	DXGIFormatR8G8B8A8Unorm     DXGIFormat = 28
	DXGIFormatR8G8B8A8UnormSrgb DXGIFormat = 29
	DXGIFormatR8G8B8A8Uint      DXGIFormat = 30
	DXGIFormatR8G8B8A8Snorm     DXGIFormat = 31
	DXGIFormatR8G8B8A8Sint      DXGIFormat = 32

	DXGIFormatR16G16Float DXGIFormat = 34
	DXGIFormatR16G16Unorm DXGIFormat = 35
	DXGIFormatR16G16Uint  DXGIFormat = 36
	DXGIFormatR16G16Snorm DXGIFormat = 37
	DXGIFormatR16G16Sint  DXGIFormat = 38

	DXGIFormatD32Float DXGIFormat = 40
	DXGIFormatR32Float DXGIFormat = 41
	DXGIFormatR32Uint  DXGIFormat = 42
	DXGIFormatR32Sint  DXGIFormat = 43

	DXGIFormatD24UnormS8Uint DXGIFormat = 45

	DXGIFormatR8G8Unorm DXGIFormat = 49
	DXGIFormatR8G8Uint  DXGIFormat = 50
	DXGIFormatR8G8Snorm DXGIFormat = 51
	DXGIFormatR8G8Sint  DXGIFormat = 52

	DXGIFormatR16Float DXGIFormat = 54
	DXGIFormatD16Unorm DXGIFormat = 55
	DXGIFormatR16Unorm DXGIFormat = 56
	DXGIFormatR16Uint  DXGIFormat = 57
	DXGIFormatR16Snorm DXGIFormat = 58
	DXGIFormatR16Sint  DXGIFormat = 59

	DXGIFormatR8Unorm DXGIFormat = 61
	DXGIFormatR8Uint  DXGIFormat = 62
	DXGIFormatR8Snorm DXGIFormat = 63
	DXGIFormatR8Sint  DXGIFormat = 64

	DXGIFormatR9G9B9E5SharedExp DXGIFormat = 67

	DXGIFormatBC1Unorm     DXGIFormat = 71
	DXGIFormatBC1UnormSrgb DXGIFormat = 72
	DXGIFormatBC2Unorm     DXGIFormat = 74
	DXGIFormatBC2UnormSrgb DXGIFormat = 75
	DXGIFormatBC3Unorm     DXGIFormat = 77
	DXGIFormatBC3UnormSrgb DXGIFormat = 78
	DXGIFormatBC4Unorm     DXGIFormat = 80
	DXGIFormatBC4Snorm     DXGIFormat = 81
	DXGIFormatBC5Unorm     DXGIFormat = 83
	DXGIFormatBC5Snorm     DXGIFormat = 84

	DXGIFormatB8G8R8A8Unorm     DXGIFormat = 87
	DXGIFormatB8G8R8A8UnormSrgb DXGIFormat = 91

	DXGIFormatBC6HUF16     DXGIFormat = 95
	DXGIFormatBC6HSF16     DXGIFormat = 96
	DXGIFormatBC7Unorm     DXGIFormat = 98
	DXGIFormatBC7UnormSrgb DXGIFormat = 99

	DXGIFormatAYUV DXGIFormat = 100
	DXGIFormatY410 DXGIFormat = 101
	DXGIFormatNV12 DXGIFormat = 103
	DXGIFormatP010 DXGIFormat = 104
)

// dxgiRows maps neutral formats to DXGI formats. R8G8B8A8_TYPELESS resolves
// into RGBA8Unorm but the reverse direction picks R8G8B8A8_UNORM (first row
// wins). The video formats at the bottom exist only in this space.
var dxgiRows = []row[DXGIFormat]{
	{FormatR8Unorm, DXGIFormatR8Unorm},
	{FormatR8Snorm, DXGIFormatR8Snorm},
	{FormatR8Uint, DXGIFormatR8Uint},
	{FormatR8Sint, DXGIFormatR8Sint},
	{FormatR16Uint, DXGIFormatR16Uint},
	{FormatR16Sint, DXGIFormatR16Sint},
	{FormatR16Unorm, DXGIFormatR16Unorm},
	{FormatR16Snorm, DXGIFormatR16Snorm},
	{FormatR16Float, DXGIFormatR16Float},
	{FormatRG8Unorm, DXGIFormatR8G8Unorm},
	{FormatRG8Snorm, DXGIFormatR8G8Snorm},
	{FormatRG8Uint, DXGIFormatR8G8Uint},
	{FormatRG8Sint, DXGIFormatR8G8Sint},
	{FormatRG16Unorm, DXGIFormatR16G16Unorm},
	{FormatRG16Snorm, DXGIFormatR16G16Snorm},
	{FormatR32Uint, DXGIFormatR32Uint},
	{FormatR32Sint, DXGIFormatR32Sint},
	{FormatR32Float, DXGIFormatR32Float},
	{FormatRG16Uint, DXGIFormatR16G16Uint},
	{FormatRG16Sint, DXGIFormatR16G16Sint},
	{FormatRG16Float, DXGIFormatR16G16Float},
	{FormatRGBA8Unorm, DXGIFormatR8G8B8A8Unorm},
	{FormatRGBA8Unorm, DXGIFormatR8G8B8A8Typeless},
	{FormatRGBA8UnormSrgb, DXGIFormatR8G8B8A8UnormSrgb},
	{FormatBGRA8UnormSrgb, DXGIFormatB8G8R8A8UnormSrgb},
	{FormatRGBA8Snorm, DXGIFormatR8G8B8A8Snorm},
	{FormatBGRA8Unorm, DXGIFormatB8G8R8A8Unorm},
	{FormatRGBA8Uint, DXGIFormatR8G8B8A8Uint},
	{FormatRGBA8Sint, DXGIFormatR8G8B8A8Sint},
	{FormatRGB10A2Unorm, DXGIFormatR10G10B10A2Unorm},
	{FormatRG11B10Float, DXGIFormatR11G11B10Float},
	{FormatRG32Uint, DXGIFormatR32G32Uint},
	{FormatRG32Sint, DXGIFormatR32G32Sint},
	{FormatRG32Float, DXGIFormatR32G32Float},
	{FormatRGBA16Uint, DXGIFormatR16G16B16A16Uint},
	{FormatRGBA16Sint, DXGIFormatR16G16B16A16Sint},
	{FormatRGBA16Unorm, DXGIFormatR16G16B16A16Unorm},
	{FormatRGBA16Snorm, DXGIFormatR16G16B16A16Snorm},
	{FormatRGBA16Float, DXGIFormatR16G16B16A16Float},
	{FormatRGBA32Uint, DXGIFormatR32G32B32A32Uint},
	{FormatRGBA32Sint, DXGIFormatR32G32B32A32Sint},
	{FormatRGBA32Float, DXGIFormatR32G32B32A32Float},
	{FormatDepth32Float, DXGIFormatD32Float},
	{FormatDepth32FloatStencil8, DXGIFormatD32FloatS8X24Uint},
	{FormatDepth24PlusStencil8, DXGIFormatD24UnormS8Uint},
	{FormatRGB9E5Ufloat, DXGIFormatR9G9B9E5SharedExp},
	{FormatBC1RGBAUnorm, DXGIFormatBC1Unorm},
	{FormatBC1RGBAUnormSrgb, DXGIFormatBC1UnormSrgb},
	{FormatBC2RGBAUnorm, DXGIFormatBC2Unorm},
	{FormatBC2RGBAUnormSrgb, DXGIFormatBC2UnormSrgb},
	{FormatBC3RGBAUnorm, DXGIFormatBC3Unorm},
	{FormatBC3RGBAUnormSrgb, DXGIFormatBC3UnormSrgb},
	{FormatBC4RUnorm, DXGIFormatBC4Unorm},
	{FormatBC4RSnorm, DXGIFormatBC4Snorm},
	{FormatBC5RGUnorm, DXGIFormatBC5Unorm},
	{FormatBC5RGSnorm, DXGIFormatBC5Snorm},
	{FormatBC6HRGBUfloat, DXGIFormatBC6HUF16},
	{FormatBC6HRGBFloat, DXGIFormatBC6HSF16},
	{FormatBC7RGBAUnorm, DXGIFormatBC7Unorm},
	{FormatBC7RGBAUnormSrgb, DXGIFormatBC7UnormSrgb},
	{FormatDepth16Unorm, DXGIFormatD16Unorm},
	{FormatAYUV, DXGIFormatAYUV},
	{FormatNV12, DXGIFormatNV12},
	{FormatY410, DXGIFormatY410},
	{FormatP010, DXGIFormatP010},
}

var (
	pxToDXGI map[PixelFormat]DXGIFormat
	dxgiToPx map[DXGIFormat]PixelFormat
)

func init() {
	pxToDXGI, dxgiToPx = buildMaps(dxgiRows)
}

// ToDXGI returns the DXGI format equivalent to f.
func ToDXGI(f PixelFormat) (DXGIFormat, error) {
	df, ok := pxToDXGI[f]
	if !ok {
		return DXGIFormatUnknown, fmt.Errorf("%w: %v has no DXGI equivalent", ErrUnsupported, f)
	}
	return df, nil
}

// FromDXGI returns the neutral format equivalent to df.
func FromDXGI(df DXGIFormat) (PixelFormat, error) {
	f, ok := dxgiToPx[df]
	if !ok {
		return FormatUnknown, fmt.Errorf("%w: DXGI format %d has no equivalent", ErrUnsupported, df)
	}
	return f, nil
}
