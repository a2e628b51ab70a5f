//go:build windows

package d3d

import (
	"fmt"
	"syscall"
	"unsafe"
)

const (
	dxgiFormatB8G8R8A8 = 87

	dxgiErrWaitTimeout = 0x887A0027
	dxgiErrAccessLost  = 0x887A0026

	// DXGI COM vtable indices
	dxgiDeviceGetAdapter        = 7  // IDXGIDevice
	dxgiAdapterEnumOutputs      = 7  // IDXGIAdapter
	dxgiOutput1DuplicateOutput  = 22 // IDXGIOutput1
	dxgiDuplGetDesc             = 7  // IDXGIOutputDuplication
	dxgiDuplAcquireNextFrame    = 8  // IDXGIOutputDuplication
	dxgiDuplReleaseFrame        = 14 // IDXGIOutputDuplication
	dxgiResourceGetSharedHandle = 8  // IDXGIResource
)

var iidIDXGIOutput1 = comGUID{0x00cddea8, 0x939b, 0x4b83, [8]byte{0xa3, 0x40, 0xa6, 0x85, 0x22, 0x66, 0x66, 0xcc}}

type dxgiRational struct {
	Numerator   uint32
	Denominator uint32
}

// dxgiModeDesc matches DXGI_MODE_DESC.
type dxgiModeDesc struct {
	Width            uint32
	Height           uint32
	RefreshRate      dxgiRational
	Format           uint32
	ScanlineOrdering uint32
	Scaling          uint32
}

// dxgiOutDuplDesc matches DXGI_OUTDUPL_DESC.
type dxgiOutDuplDesc struct {
	ModeDesc                   dxgiModeDesc
	Rotation                   uint32
	DesktopImageInSystemMemory int32 // BOOL
}

// dxgiOutDuplFrameInfo matches DXGI_OUTDUPL_FRAME_INFO.
type dxgiOutDuplFrameInfo struct {
	LastPresentTime           int64
	LastMouseUpdateTime       int64
	AccumulatedFrames         uint32
	RectsCoalesced            int32
	ProtectedContentMaskedOut int32
	PointerPositionX          int32
	PointerPositionY          int32
	PointerVisible            int32
	TotalMetadataBufferSize   uint32
	PointerShapeBufferSize    uint32
}

// Duplication captures one desktop output via DXGI Desktop Duplication
// and mirrors every acquired frame into a shared BGRA texture. The
// shared texture's legacy handle stays stable for the lifetime of the
// session, so it can be imported once and refreshed with CaptureFrame.
type Duplication struct {
	dev         *Device11
	duplication uintptr // IDXGIOutputDuplication
	shared      uintptr // ID3D11Texture2D, MiscFlags SHARED
	handle      uintptr // legacy shared handle of the mirror texture
	width       uint32
	height      uint32
}

// NewDuplication duplicates the given output of the device's adapter.
// The device stays owned by the caller.
func NewDuplication(dev *Device11, output int) (*Duplication, error) {
	var dxgiDevice uintptr
	_, err := comCall(dev.device, vtblQueryInterface,
		uintptr(unsafe.Pointer(&iidIDXGIDevice)),
		uintptr(unsafe.Pointer(&dxgiDevice)),
	)
	if err != nil {
		return nil, fmt.Errorf("d3d: QueryInterface IDXGIDevice: %w", err)
	}
	defer comRelease(dxgiDevice)

	var adapter uintptr
	_, err = comCall(dxgiDevice, dxgiDeviceGetAdapter, uintptr(unsafe.Pointer(&adapter)))
	if err != nil {
		return nil, fmt.Errorf("d3d: IDXGIDevice::GetAdapter: %w", err)
	}
	defer comRelease(adapter)

	var out uintptr
	_, err = comCall(adapter, dxgiAdapterEnumOutputs,
		uintptr(output),
		uintptr(unsafe.Pointer(&out)),
	)
	if err != nil {
		return nil, fmt.Errorf("d3d: IDXGIAdapter::EnumOutputs(%d): %w", output, err)
	}

	var output1 uintptr
	_, err = comCall(out, vtblQueryInterface,
		uintptr(unsafe.Pointer(&iidIDXGIOutput1)),
		uintptr(unsafe.Pointer(&output1)),
	)
	comRelease(out)
	if err != nil {
		return nil, fmt.Errorf("d3d: QueryInterface IDXGIOutput1: %w", err)
	}
	defer comRelease(output1)

	var duplication uintptr
	_, err = comCall(output1, dxgiOutput1DuplicateOutput,
		dev.device,
		uintptr(unsafe.Pointer(&duplication)),
	)
	if err != nil {
		return nil, fmt.Errorf("d3d: IDXGIOutput1::DuplicateOutput: %w", err)
	}

	var duplDesc dxgiOutDuplDesc
	hr, _, _ := syscall.SyscallN(
		comVtblFn(duplication, dxgiDuplGetDesc),
		duplication,
		uintptr(unsafe.Pointer(&duplDesc)),
	)
	if int32(hr) < 0 {
		comRelease(duplication)
		return nil, fmt.Errorf("d3d: IDXGIOutputDuplication::GetDesc failed: 0x%08X", uint32(hr))
	}
	width, height := duplDesc.ModeDesc.Width, duplDesc.ModeDesc.Height
	if width == 0 || height == 0 {
		comRelease(duplication)
		return nil, fmt.Errorf("d3d: invalid duplication dimensions %dx%d", width, height)
	}

	// Mirror texture. SHARED (non-NT) so the handle can be imported by
	// another API on the same adapter.
	sharedDesc := d3d11Texture2DDesc{
		Width:       width,
		Height:      height,
		MipLevels:   1,
		ArraySize:   1,
		Format:      dxgiFormatB8G8R8A8,
		SampleCount: 1,
		Usage:       d3d11UsageDefault,
		BindFlags:   d3d11BindShaderResource | d3d11BindRenderTarget,
		MiscFlags:   d3d11ResourceMiscShared,
	}
	var shared uintptr
	_, err = comCall(dev.device, d3d11DeviceCreateTexture2D,
		uintptr(unsafe.Pointer(&sharedDesc)),
		0, // pInitialData
		uintptr(unsafe.Pointer(&shared)),
	)
	if err != nil {
		comRelease(duplication)
		return nil, fmt.Errorf("d3d: CreateTexture2D shared mirror: %w", err)
	}

	var dxgiRes uintptr
	_, err = comCall(shared, vtblQueryInterface,
		uintptr(unsafe.Pointer(&iidIDXGIResource)),
		uintptr(unsafe.Pointer(&dxgiRes)),
	)
	if err != nil {
		comRelease(shared)
		comRelease(duplication)
		return nil, fmt.Errorf("d3d: QueryInterface IDXGIResource: %w", err)
	}
	var handle uintptr
	_, err = comCall(dxgiRes, dxgiResourceGetSharedHandle, uintptr(unsafe.Pointer(&handle)))
	comRelease(dxgiRes)
	if err != nil {
		comRelease(shared)
		comRelease(duplication)
		return nil, fmt.Errorf("d3d: IDXGIResource::GetSharedHandle: %w", err)
	}

	return &Duplication{
		dev:         dev,
		duplication: duplication,
		shared:      shared,
		handle:      handle,
		width:       width,
		height:      height,
	}, nil
}

// Size reports the duplicated output's dimensions.
func (d *Duplication) Size() (width, height uint32) { return d.width, d.height }

// SharedHandle reports the legacy shared handle of the mirror texture.
func (d *Duplication) SharedHandle() uintptr { return d.handle }

// CaptureFrame acquires the next desktop frame and copies it into the
// mirror texture. ErrWaitTimeout means no update arrived within
// timeoutMS; ErrAccessLost means the session must be recreated.
func (d *Duplication) CaptureFrame(timeoutMS uint32) error {
	var frameInfo dxgiOutDuplFrameInfo
	var resource uintptr
	hr, _, _ := syscall.SyscallN(
		comVtblFn(d.duplication, dxgiDuplAcquireNextFrame),
		d.duplication,
		uintptr(timeoutMS),
		uintptr(unsafe.Pointer(&frameInfo)),
		uintptr(unsafe.Pointer(&resource)),
	)
	switch uint32(hr) {
	case 0:
	case dxgiErrWaitTimeout:
		return ErrWaitTimeout
	case dxgiErrAccessLost:
		return ErrAccessLost
	default:
		if int32(hr) < 0 {
			return fmt.Errorf("d3d: AcquireNextFrame failed: 0x%08X", uint32(hr))
		}
	}
	defer syscall.SyscallN(comVtblFn(d.duplication, dxgiDuplReleaseFrame), d.duplication)

	var tex uintptr
	_, err := comCall(resource, vtblQueryInterface,
		uintptr(unsafe.Pointer(&iidID3D11Texture2D)),
		uintptr(unsafe.Pointer(&tex)),
	)
	comRelease(resource)
	if err != nil {
		return fmt.Errorf("d3d: QueryInterface acquired frame: %w", err)
	}
	// CopyResource and Flush return void.
	syscall.SyscallN(comVtblFn(d.dev.context, d3d11CtxCopyResource), d.dev.context, d.shared, tex)
	syscall.SyscallN(comVtblFn(d.dev.context, d3d11CtxFlush), d.dev.context)
	comRelease(tex)
	return nil
}

// Close releases the duplication session and the mirror texture. The
// device is left open.
func (d *Duplication) Close() error {
	comRelease(d.shared)
	comRelease(d.duplication)
	d.shared = 0
	d.duplication = 0
	d.handle = 0
	return nil
}
