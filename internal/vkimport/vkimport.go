// Package vkimport imports Direct3D shared texture handles into Vulkan
// images through VK_KHR_external_memory_win32 and reads their pixels
// back for upload. It drives the Vulkan loader directly through
// syscall, no CGO.
package vkimport

import "errors"

var (
	// ErrNotSupported is returned when the platform or driver lacks
	// external memory import.
	ErrNotSupported = errors.New("vkimport: not supported on this platform")
	// ErrNoDevice indicates no Vulkan physical device was found.
	ErrNoDevice = errors.New("vkimport: no vulkan device")
)

// HandleType identifies the Windows handle flavor being imported.
type HandleType uint32

const (
	// HandleTypeOpaqueWin32 is an NT handle exported by Vulkan itself.
	HandleTypeOpaqueWin32 HandleType = 0x2
	// HandleTypeD3D11TextureKMT is a legacy (KMT) D3D11 shared handle.
	HandleTypeD3D11TextureKMT HandleType = 0x10
	// HandleTypeD3D12Resource is an NT handle to a D3D12 resource.
	HandleTypeD3D12Resource HandleType = 0x40
)

// ImageDesc describes a shared texture to import. The image is created
// with exactly these dimensions so its memory requirements line up with
// the producer's allocation; zero ArrayLayers or MipLevels means 1.
type ImageDesc struct {
	Width       uint32
	Height      uint32
	ArrayLayers uint32
	MipLevels   uint32
	Format      uint32 // VkFormat
	// BytesPerTexel sizes the readback staging buffer. Required.
	BytesPerTexel uint32
	Handle        uintptr
	HandleType    HandleType
}
