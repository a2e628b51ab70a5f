//go:build windows

package d3d

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/vrscreencap/vrscreencap/format"
)

var (
	d3d12DLL              = syscall.NewLazyDLL("d3d12.dll")
	procD3D12CreateDevice = d3d12DLL.NewProc("D3D12CreateDevice")
)

// GenericAll is the access mask requesting full access to a named
// shared resource.
const GenericAll = 0x10000000

const (
	// ID3D12Device vtable (IUnknown + ID3D12Object, then device
	// methods starting at 7)
	d3d12DeviceOpenSharedHandle       = 32
	d3d12DeviceOpenSharedHandleByName = 33

	// ID3D12Resource vtable
	d3d12ResourceGetDesc = 10
)

var (
	iidID3D12Device   = comGUID{0x189819f1, 0x1db6, 0x4b57, [8]byte{0xbe, 0x54, 0x18, 0x21, 0x33, 0x9b, 0x85, 0xf7}}
	iidID3D12Resource = comGUID{0x696442be, 0xa72e, 0x4059, [8]byte{0xbc, 0x79, 0x5b, 0x5c, 0x98, 0x04, 0x0f, 0xad}}
)

// d3d12ResourceDesc matches D3D12_RESOURCE_DESC.
type d3d12ResourceDesc struct {
	Dimension        uint32
	_                uint32
	Alignment        uint64
	Width            uint64
	Height           uint32
	DepthOrArraySize uint16
	MipLevels        uint16
	Format           uint32
	SampleCount      uint32 // DXGI_SAMPLE_DESC.Count
	SampleQuality    uint32 // DXGI_SAMPLE_DESC.Quality
	Layout           uint32
	Flags            uint32
}

// Device12 wraps an ID3D12Device.
type Device12 struct {
	device uintptr // ID3D12Device
}

// NewDevice12 creates a D3D12 device on the default adapter.
func NewDevice12() (*Device12, error) {
	var device uintptr
	hr, _, _ := procD3D12CreateDevice.Call(
		0, // pAdapter (NULL = default)
		uintptr(d3dFeatureLevel11_0),
		uintptr(unsafe.Pointer(&iidID3D12Device)),
		uintptr(unsafe.Pointer(&device)),
	)
	if int32(hr) < 0 {
		return nil, fmt.Errorf("d3d: D3D12CreateDevice failed: 0x%08X", uint32(hr))
	}
	return &Device12{device: device}, nil
}

// OpenSharedHandleByName resolves a named shared resource to an NT
// handle. The caller owns the handle and must close it.
func (d *Device12) OpenSharedHandleByName(name string, access uint32) (uintptr, error) {
	name16, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, fmt.Errorf("d3d: invalid resource name %q: %w", name, err)
	}
	var handle uintptr
	_, err = comCall(d.device, d3d12DeviceOpenSharedHandleByName,
		uintptr(unsafe.Pointer(name16)),
		uintptr(access),
		uintptr(unsafe.Pointer(&handle)),
	)
	if err != nil {
		return 0, fmt.Errorf("d3d: OpenSharedHandleByName(%q): %w", name, err)
	}
	return handle, nil
}

// QuerySharedResource opens an NT shared handle as an ID3D12Resource
// and reports its description. The resource is released before
// returning.
func (d *Device12) QuerySharedResource(handle uintptr) (TextureInfo, error) {
	var res uintptr
	_, err := comCall(d.device, d3d12DeviceOpenSharedHandle,
		handle,
		uintptr(unsafe.Pointer(&iidID3D12Resource)),
		uintptr(unsafe.Pointer(&res)),
	)
	if err != nil {
		return TextureInfo{}, fmt.Errorf("d3d: OpenSharedHandle(0x%X): %w", handle, err)
	}
	defer comRelease(res)

	// GetDesc returns D3D12_RESOURCE_DESC by value; the x64 ABI passes
	// a hidden pointer for the result.
	var desc d3d12ResourceDesc
	syscall.SyscallN(comVtblFn(res, d3d12ResourceGetDesc), res, uintptr(unsafe.Pointer(&desc)))
	return TextureInfo{
		Width:       uint32(desc.Width),
		Height:      desc.Height,
		ArraySize:   uint32(desc.DepthOrArraySize),
		SampleCount: desc.SampleCount,
		MipLevels:   uint32(desc.MipLevels),
		Format:      format.DXGIFormat(desc.Format),
	}, nil
}

// Close releases the device.
func (d *Device12) Close() error {
	comRelease(d.device)
	d.device = 0
	return nil
}
