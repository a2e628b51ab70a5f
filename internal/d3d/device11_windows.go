//go:build windows

package d3d

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/vrscreencap/vrscreencap/format"
)

var (
	d3d11DLL              = syscall.NewLazyDLL("d3d11.dll")
	procD3D11CreateDevice = d3d11DLL.NewProc("D3D11CreateDevice")
)

const (
	d3dDriverTypeHardware = 1
	d3dFeatureLevel11_0   = 0xb000
	d3d11SDKVersion       = 7

	d3d11CreateDeviceBGRASupport = 0x20

	d3d11UsageDefault       = 0
	d3d11BindShaderResource = 0x8
	d3d11BindRenderTarget   = 0x20
	d3d11ResourceMiscShared = 0x2

	// ID3D11Device vtable
	d3d11DeviceCreateTexture2D    = 5
	d3d11DeviceOpenSharedResource = 28

	// ID3D11Texture2D vtable (IUnknown + ID3D11DeviceChild + ID3D11Resource)
	d3d11Texture2DGetDesc = 10

	// ID3D11DeviceContext vtable
	d3d11CtxCopyResource = 47
	d3d11CtxFlush        = 111
)

var (
	iidIDXGIDevice     = comGUID{0x54ec77fa, 0x1377, 0x44e6, [8]byte{0x8c, 0x32, 0x88, 0xfd, 0x5f, 0x44, 0xc8, 0x4c}}
	iidIDXGIResource   = comGUID{0x035f3ab4, 0x482e, 0x4e50, [8]byte{0xb4, 0x1f, 0x8a, 0x7f, 0x8b, 0xd8, 0x96, 0x0b}}
	iidID3D11Texture2D = comGUID{0x6f15aaf2, 0xd208, 0x4e89, [8]byte{0x9a, 0xb4, 0x48, 0x95, 0x35, 0xd3, 0x4f, 0x9c}}
)

// d3d11Texture2DDesc matches D3D11_TEXTURE2D_DESC (44 bytes).
type d3d11Texture2DDesc struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         uint32
	SampleCount    uint32 // DXGI_SAMPLE_DESC.Count
	SampleQuality  uint32 // DXGI_SAMPLE_DESC.Quality
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

// Device11 wraps an ID3D11Device and its immediate context.
type Device11 struct {
	device  uintptr // ID3D11Device
	context uintptr // ID3D11DeviceContext
}

// NewDevice11 creates a hardware D3D11 device on the default adapter.
func NewDevice11() (*Device11, error) {
	var device, context uintptr
	featureLevel := uint32(d3dFeatureLevel11_0)
	var actualLevel uint32
	hr, _, _ := procD3D11CreateDevice.Call(
		0, // pAdapter (NULL = default)
		uintptr(d3dDriverTypeHardware),
		0, // Software
		uintptr(d3d11CreateDeviceBGRASupport),
		uintptr(unsafe.Pointer(&featureLevel)),
		1,
		uintptr(d3d11SDKVersion),
		uintptr(unsafe.Pointer(&device)),
		uintptr(unsafe.Pointer(&actualLevel)),
		uintptr(unsafe.Pointer(&context)),
	)
	if int32(hr) < 0 {
		return nil, fmt.Errorf("d3d: D3D11CreateDevice failed: 0x%08X", uint32(hr))
	}
	return &Device11{device: device, context: context}, nil
}

// QuerySharedTexture opens a legacy (KMT) shared texture handle and
// reports its description. The resource is released before returning;
// only the description is kept. Failure means the handle is not a
// D3D11-shareable texture.
func (d *Device11) QuerySharedTexture(handle uintptr) (TextureInfo, error) {
	var tex uintptr
	_, err := comCall(d.device, d3d11DeviceOpenSharedResource,
		handle,
		uintptr(unsafe.Pointer(&iidID3D11Texture2D)),
		uintptr(unsafe.Pointer(&tex)),
	)
	if err != nil {
		return TextureInfo{}, fmt.Errorf("d3d: OpenSharedResource(0x%X): %w", handle, err)
	}
	defer comRelease(tex)

	var desc d3d11Texture2DDesc
	// GetDesc returns void.
	syscall.SyscallN(comVtblFn(tex, d3d11Texture2DGetDesc), tex, uintptr(unsafe.Pointer(&desc)))
	return TextureInfo{
		Width:       desc.Width,
		Height:      desc.Height,
		ArraySize:   desc.ArraySize,
		SampleCount: desc.SampleCount,
		MipLevels:   desc.MipLevels,
		Format:      format.DXGIFormat(desc.Format),
	}, nil
}

// Close releases the device and context.
func (d *Device11) Close() error {
	comRelease(d.context)
	comRelease(d.device)
	d.context = 0
	d.device = 0
	return nil
}
