//go:build windows

package vkimport

import (
	"strings"
	"testing"
)

func TestExternalImageInfoMatchesDescriptor(t *testing.T) {
	desc := &ImageDesc{
		Width:         2560,
		Height:        1440,
		ArrayLayers:   2,
		MipLevels:     11,
		Format:        37, // VK_FORMAT_R8G8B8A8_UNORM
		BytesPerTexel: 4,
	}
	info := externalImageInfo(desc, nil)

	if info.extentWidth != 2560 || info.extentHeight != 1440 || info.extentDepth != 1 {
		t.Errorf("extent = %dx%dx%d", info.extentWidth, info.extentHeight, info.extentDepth)
	}
	if info.arrayLayers != 2 {
		t.Errorf("arrayLayers = %d, want 2", info.arrayLayers)
	}
	if info.mipLevels != 11 {
		t.Errorf("mipLevels = %d, want 11", info.mipLevels)
	}
	// Single queue family: concurrent sharing with no family list is
	// invalid usage, and producers export with exclusive sharing.
	if info.sharingMode != 0 {
		t.Errorf("sharingMode = %d, want exclusive (0)", info.sharingMode)
	}
}

func TestExternalImageInfoDefaultsLayersAndMips(t *testing.T) {
	info := externalImageInfo(&ImageDesc{Width: 64, Height: 64, BytesPerTexel: 4}, nil)
	if info.arrayLayers != 1 || info.mipLevels != 1 {
		t.Errorf("layers/mips = %d/%d, want 1/1", info.arrayLayers, info.mipLevels)
	}
}

func TestImageByteSizeCoversAllLayers(t *testing.T) {
	im := &Image{width: 100, height: 50, layers: 2, texel: 8}
	if got := im.byteSize(); got != 100*50*2*8 {
		t.Errorf("byteSize() = %d, want %d", got, 100*50*2*8)
	}
}

func TestImportImageRejectsZeroTexelSize(t *testing.T) {
	d := &Device{}
	if _, err := d.ImportImage(&ImageDesc{Width: 64, Height: 64}); err == nil {
		t.Fatal("ImportImage should reject a zero texel size")
	}
}

func TestFenceWaitError(t *testing.T) {
	if err := fenceWaitError(vkSuccess); err != nil {
		t.Errorf("fenceWaitError(success) = %v", err)
	}
	err := fenceWaitError(vkTimeout)
	if err == nil || !strings.Contains(err.Error(), "timed") && !strings.Contains(err.Error(), "signaled") {
		t.Errorf("fenceWaitError(timeout) = %v, want timeout error", err)
	}
	if err := fenceWaitError(-4); err == nil { // VK_ERROR_DEVICE_LOST
		t.Error("fenceWaitError(device lost) = nil, want error")
	}
}
