// Package exttex imports GPU images shared by other processes.
//
// A capture producer (a game, the OS compositor) exports its swap texture
// as an OS shared handle. Import adopts that image into the rendering
// device without copying pixels: the format is translated fail-fast, the
// backend maps the handle onto device memory, and the result is wrapped as
// an unbound texture ready for Bind.
package exttex

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/vrscreencap/vrscreencap"
	"github.com/vrscreencap/vrscreencap/format"
	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/texture"
)

// Descriptor describes an externally shared image. It mirrors what the
// producing side reports about its texture; nothing here has touched the
// local GPU yet.
type Descriptor struct {
	// Handle is the OS shared handle (D3D11 KMT handle or D3D12 NT
	// handle). Ownership stays with the caller; Import does not close it.
	Handle uintptr
	// Source is the API the producer used to export the handle.
	Source gpu.SourceAPI

	Width     uint32
	Height    uint32
	ArraySize uint32
	MipLevels uint32
	// SampleCount above 1 is flattened to 1 on import; shared handles do
	// not carry resolve state across APIs.
	SampleCount uint32

	Format format.PixelFormat
}

// Import adopts the shared image described by desc into the device and
// returns it as an unbound texture.
//
// Format translation happens before any GPU resource exists, so an
// unsupported format costs nothing to reject. If the backend fails partway
// it is responsible for unwinding its native handles; Import destroys the
// adopted texture if the final wrap fails.
func Import(dev gpu.Device, desc *Descriptor, label string) (*texture.Texture2D, error) {
	wgFormat, err := format.ToWebGPU(desc.Format)
	if err != nil {
		return nil, fmt.Errorf("exttex: %s: %w", label, err)
	}
	vkFormat, err := format.ToVulkan(desc.Format)
	if err != nil {
		return nil, fmt.Errorf("exttex: %s: %w", label, err)
	}
	bpt := desc.Format.BytesPerTexel()
	if bpt == 0 {
		return nil, fmt.Errorf("exttex: %s: %w: %v has no per-texel stride",
			label, gpu.ErrImportUnsupported, desc.Format)
	}

	importer, ok := dev.(gpu.ExternalImporter)
	if !ok {
		return nil, fmt.Errorf("exttex: %s: %w", label, gpu.ErrImportUnsupported)
	}

	size := gpu.Extent3D{
		Width:              desc.Width,
		Height:             desc.Height,
		DepthOrArrayLayers: max(desc.ArraySize, 1),
	}
	mips := max(desc.MipLevels, 1)

	vrscreencap.Logger().Debug("importing external image",
		"label", label,
		"source", desc.Source,
		"handle", fmt.Sprintf("%#x", desc.Handle),
		"format", desc.Format,
		"width", desc.Width,
		"height", desc.Height,
	)

	tex, err := importer.ImportExternalImage(&gpu.ExternalImageDescriptor{
		Label:         label,
		Handle:        desc.Handle,
		Source:        desc.Source,
		Size:          size,
		MipLevelCount: mips,
		SampleCount:   1,
		Format:        wgFormat,
		VulkanFormat:  uint32(vkFormat),
		BytesPerTexel: uint32(bpt),
		Usage:         gputypes.TextureUsageCopySrc | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("exttex: import %s: %w", label, err)
	}

	return texture.FromRaw(dev, tex, label, size, wgFormat)
}
