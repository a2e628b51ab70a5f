package exttex

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/vrscreencap/vrscreencap/format"
	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/gpu/gputest"
)

func testDescriptor() *Descriptor {
	return &Descriptor{
		Handle:      0xbeef,
		Source:      gpu.SourceD3D11,
		Width:       1920,
		Height:      1080,
		ArraySize:   1,
		MipLevels:   1,
		SampleCount: 4,
		Format:      format.FormatBGRA8UnormSrgb,
	}
}

func TestImport(t *testing.T) {
	dev := &gputest.Device{}
	tex, err := Import(dev, testDescriptor(), "game stream")
	if err != nil {
		t.Fatalf("Import() = %v", err)
	}

	if len(dev.ImportCalls) != 1 {
		t.Fatalf("ImportCalls = %d, want 1", len(dev.ImportCalls))
	}
	call := dev.ImportCalls[0]
	if call.Handle != 0xbeef {
		t.Errorf("Handle = %#x, want 0xbeef", call.Handle)
	}
	if call.Source != gpu.SourceD3D11 {
		t.Errorf("Source = %v, want d3d11", call.Source)
	}
	if call.Size.Width != 1920 || call.Size.Height != 1080 || call.Size.DepthOrArrayLayers != 1 {
		t.Errorf("Size = %+v", call.Size)
	}
	if call.Format != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("Format = %v, want BGRA8UnormSrgb", call.Format)
	}
	if call.VulkanFormat != uint32(format.VKFormatB8G8R8A8Srgb) {
		t.Errorf("VulkanFormat = %d, want %d", call.VulkanFormat, format.VKFormatB8G8R8A8Srgb)
	}
	if call.BytesPerTexel != 4 {
		t.Errorf("BytesPerTexel = %d, want 4", call.BytesPerTexel)
	}
	// Multisampled sources flatten to one sample.
	if call.SampleCount != 1 {
		t.Errorf("SampleCount = %d, want 1", call.SampleCount)
	}

	if got := tex.Size(); got.Width != 1920 || got.Height != 1080 {
		t.Errorf("texture Size() = %+v", got)
	}
	if tex.Format() != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("texture Format() = %v", tex.Format())
	}
}

func TestImportUnsupportedFormatFailsFast(t *testing.T) {
	dev := &gputest.Device{}
	desc := testDescriptor()
	desc.Format = format.FormatNV12 // DXGI-only, no WebGPU/Vulkan mapping

	_, err := Import(dev, desc, "video surface")
	if !errors.Is(err, format.ErrUnsupported) {
		t.Fatalf("Import() = %v, want format.ErrUnsupported", err)
	}

	// Fail-fast: the device was never touched.
	if len(dev.ImportCalls) != 0 {
		t.Errorf("ImportCalls = %d, want 0", len(dev.ImportCalls))
	}
	if n := dev.LiveTextures(); n != 0 {
		t.Errorf("LiveTextures() = %d, want 0", n)
	}
	if len(dev.Views) != 0 || len(dev.Samplers) != 0 {
		t.Error("no views or samplers should exist after a fail-fast reject")
	}
}

func TestImportRejectsFormatsWithoutTexelStride(t *testing.T) {
	dev := &gputest.Device{}
	desc := testDescriptor()
	// BC1 translates cleanly but is block compressed; the copy-through
	// readback cannot address it per texel.
	desc.Format = format.FormatBC1RGBAUnorm

	_, err := Import(dev, desc, "compressed stream")
	if !errors.Is(err, gpu.ErrImportUnsupported) {
		t.Fatalf("Import() = %v, want gpu.ErrImportUnsupported", err)
	}
	if len(dev.ImportCalls) != 0 {
		t.Errorf("ImportCalls = %d, want 0", len(dev.ImportCalls))
	}
}

func TestImportWideTexelStride(t *testing.T) {
	dev := &gputest.Device{}
	desc := testDescriptor()
	desc.Format = format.FormatRGBA16Float
	desc.ArraySize = 2

	if _, err := Import(dev, desc, "hdr stream"); err != nil {
		t.Fatal(err)
	}
	call := dev.ImportCalls[0]
	if call.BytesPerTexel != 8 {
		t.Errorf("BytesPerTexel = %d, want 8", call.BytesPerTexel)
	}
	if call.Size.DepthOrArrayLayers != 2 {
		t.Errorf("DepthOrArrayLayers = %d, want 2", call.Size.DepthOrArrayLayers)
	}
}

func TestImportWithoutCapability(t *testing.T) {
	// Embedding the interface strips the fake's ImportExternalImage from
	// the method set, modeling a backend without import support.
	dev := plainDevice{Device: &gputest.Device{}}
	_, err := Import(dev, testDescriptor(), "game stream")
	if !errors.Is(err, gpu.ErrImportUnsupported) {
		t.Fatalf("Import() = %v, want gpu.ErrImportUnsupported", err)
	}
}

type plainDevice struct {
	gpu.Device
}

func TestImportBackendFailureLeaksNothing(t *testing.T) {
	dev := &gputest.Device{FailImport: errors.New("stale handle")}
	if _, err := Import(dev, testDescriptor(), "game stream"); err == nil {
		t.Fatal("Import() should fail")
	}
	if n := dev.LiveTextures(); n != 0 {
		t.Errorf("LiveTextures() = %d, want 0", n)
	}
}

func TestImportWrapFailureDestroysTexture(t *testing.T) {
	dev := &gputest.Device{FailCreateView: errors.New("boom")}
	if _, err := Import(dev, testDescriptor(), "game stream"); err == nil {
		t.Fatal("Import() should fail")
	}
	// The imported texture must not outlive the failed wrap.
	if n := dev.LiveTextures(); n != 0 {
		t.Errorf("LiveTextures() = %d, want 0", n)
	}
}

func TestImportDefaultsArrayAndMips(t *testing.T) {
	dev := &gputest.Device{}
	desc := testDescriptor()
	desc.ArraySize = 0
	desc.MipLevels = 0
	if _, err := Import(dev, desc, "bare"); err != nil {
		t.Fatal(err)
	}
	call := dev.ImportCalls[0]
	if call.Size.DepthOrArrayLayers != 1 || call.MipLevelCount != 1 {
		t.Errorf("layers/mips = %d/%d, want 1/1", call.Size.DepthOrArrayLayers, call.MipLevelCount)
	}
}
