package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/gpu/gputest"
)

func newTestTexture(t *testing.T, dev *gputest.Device) *Texture2D {
	t.Helper()
	tex, err := New(dev, "test", gpu.Extent3D{Width: 64, Height: 32}, gputypes.TextureFormatBGRA8Unorm, gpu.DefaultTextureUsage)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return tex
}

func TestNewCreatesViewAndSampler(t *testing.T) {
	dev := &gputest.Device{}
	tex := newTestTexture(t, dev)

	if len(dev.Textures) != 1 || len(dev.Views) != 1 || len(dev.Samplers) != 1 {
		t.Fatalf("resources = %d textures, %d views, %d samplers; want 1 each",
			len(dev.Textures), len(dev.Views), len(dev.Samplers))
	}
	if got := tex.Size(); got.Width != 64 || got.Height != 32 || got.DepthOrArrayLayers != 1 {
		t.Errorf("Size() = %+v", got)
	}
	if tex.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format() = %v", tex.Format())
	}
}

func TestNewZeroExtent(t *testing.T) {
	dev := &gputest.Device{}
	if _, err := New(dev, "bad", gpu.Extent3D{}, gputypes.TextureFormatRGBA8Unorm, gpu.DefaultTextureUsage); !errors.Is(err, ErrZeroExtent) {
		t.Errorf("New(zero extent) = %v, want ErrZeroExtent", err)
	}
	if len(dev.Textures) != 0 {
		t.Error("no texture should be created for a zero extent")
	}
}

func TestNewCleansUpOnViewFailure(t *testing.T) {
	dev := &gputest.Device{FailCreateView: errors.New("boom")}
	if _, err := New(dev, "fail", gpu.Extent3D{Width: 4, Height: 4}, gputypes.TextureFormatRGBA8Unorm, gpu.DefaultTextureUsage); err == nil {
		t.Fatal("New() should fail when view creation fails")
	}
	if n := dev.LiveTextures(); n != 0 {
		t.Errorf("LiveTextures() = %d after failed New, want 0", n)
	}
}

func TestNewCleansUpOnSamplerFailure(t *testing.T) {
	dev := &gputest.Device{FailCreateSampler: errors.New("boom")}
	if _, err := New(dev, "fail", gpu.Extent3D{Width: 4, Height: 4}, gputypes.TextureFormatRGBA8Unorm, gpu.DefaultTextureUsage); err == nil {
		t.Fatal("New() should fail when sampler creation fails")
	}
	if n := dev.LiveTextures(); n != 0 {
		t.Errorf("LiveTextures() = %d after failed New, want 0", n)
	}
}

func TestBindConsumes(t *testing.T) {
	dev := &gputest.Device{}
	layout, err := DefaultBindGroupLayout(dev)
	if err != nil {
		t.Fatal(err)
	}
	tex := newTestTexture(t, dev)

	bound, err := tex.Bind(layout)
	if err != nil {
		t.Fatalf("Bind() = %v", err)
	}
	if bound.BindGroup() == nil {
		t.Fatal("Bound.BindGroup() = nil")
	}

	// The consumed texture can neither be bound again nor destroyed.
	if _, err := tex.Bind(layout); !errors.Is(err, ErrConsumed) {
		t.Errorf("second Bind() = %v, want ErrConsumed", err)
	}
	if err := tex.Destroy(); !errors.Is(err, ErrConsumed) {
		t.Errorf("Destroy() after Bind = %v, want ErrConsumed", err)
	}

	// The Bound side still releases everything.
	if err := bound.Destroy(); err != nil {
		t.Fatalf("Bound.Destroy() = %v", err)
	}
	if n := dev.LiveTextures(); n != 0 {
		t.Errorf("LiveTextures() = %d after Bound.Destroy, want 0", n)
	}
	if n := dev.LiveSamplers(); n != 0 {
		t.Errorf("LiveSamplers() = %d after Bound.Destroy, want 0", n)
	}
}

func TestBindGroupEntries(t *testing.T) {
	dev := &gputest.Device{}
	layout, err := DefaultBindGroupLayout(dev)
	if err != nil {
		t.Fatal(err)
	}
	tex := newTestTexture(t, dev)
	if _, err := tex.Bind(layout); err != nil {
		t.Fatal(err)
	}

	bg := dev.BindGroups[0]
	if len(bg.Desc.Entries) != 2 {
		t.Fatalf("bind group has %d entries, want 2", len(bg.Desc.Entries))
	}
	if bg.Desc.Entries[0].Binding != 0 || bg.Desc.Entries[0].TextureView == nil {
		t.Error("binding 0 should carry the texture view")
	}
	if bg.Desc.Entries[1].Binding != 1 || bg.Desc.Entries[1].Sampler == nil {
		t.Error("binding 1 should carry the sampler")
	}
}

func TestBindFailureLeavesTextureUsable(t *testing.T) {
	dev := &gputest.Device{}
	layout, err := DefaultBindGroupLayout(dev)
	if err != nil {
		t.Fatal(err)
	}
	tex := newTestTexture(t, dev)

	dev.FailCreateBind = errors.New("boom")
	if _, err := tex.Bind(layout); err == nil {
		t.Fatal("Bind() should fail")
	}

	// A failed Bind does not consume the texture.
	dev.FailCreateBind = nil
	if _, err := tex.Bind(layout); err != nil {
		t.Errorf("Bind() after failed attempt = %v", err)
	}
}

func TestDestroyIdempotent(t *testing.T) {
	dev := &gputest.Device{}
	tex := newTestTexture(t, dev)
	if err := tex.Destroy(); err != nil {
		t.Fatalf("Destroy() = %v", err)
	}
	if err := tex.Destroy(); err != nil {
		t.Fatalf("second Destroy() = %v", err)
	}
	if n := dev.LiveTextures(); n != 0 {
		t.Errorf("LiveTextures() = %d, want 0", n)
	}
}

func TestWritePixels(t *testing.T) {
	dev := &gputest.Device{}
	q := &gputest.Queue{}
	tex := newTestTexture(t, dev)
	data := make([]byte, 64*32*4)
	tex.WritePixels(q, data, 64*4)

	if len(q.Writes) != 1 {
		t.Fatalf("Writes = %d, want 1", len(q.Writes))
	}
	w := q.Writes[0]
	if w.DataLen != len(data) {
		t.Errorf("DataLen = %d, want %d", w.DataLen, len(data))
	}
	if w.Layout.BytesPerRow != 64*4 {
		t.Errorf("BytesPerRow = %d, want %d", w.Layout.BytesPerRow, 64*4)
	}
	if w.Size.Width != 64 || w.Size.Height != 32 {
		t.Errorf("Size = %+v", w.Size)
	}
}

func TestFromBytes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	ctx, dev, q := gputest.NewContext()
	tex, err := FromBytes(ctx, "decoded", buf.Bytes())
	if err != nil {
		t.Fatalf("FromBytes() = %v", err)
	}
	if got := tex.Size(); got.Width != 3 || got.Height != 2 {
		t.Errorf("Size() = %+v, want 3x2", got)
	}
	if tex.Format() != gputypes.TextureFormatRGBA8UnormSrgb {
		t.Errorf("Format() = %v, want RGBA8UnormSrgb", tex.Format())
	}
	if len(q.Writes) != 1 || q.Writes[0].DataLen != 3*2*4 {
		t.Errorf("upload = %+v, want one write of %d bytes", q.Writes, 3*2*4)
	}
	if dev.LiveTextures() != 1 {
		t.Errorf("LiveTextures() = %d, want 1", dev.LiveTextures())
	}
}

func TestFromBytesBadData(t *testing.T) {
	ctx, dev, _ := gputest.NewContext()
	if _, err := FromBytes(ctx, "garbage", []byte("not an image")); err == nil {
		t.Fatal("FromBytes() should fail on undecodable data")
	}
	if dev.LiveTextures() != 0 {
		t.Error("no texture should be created for undecodable data")
	}
}

func TestFromRawAdoptsTexture(t *testing.T) {
	dev := &gputest.Device{}
	raw, err := dev.CreateTexture(&gpu.TextureDescriptor{
		Label: "external",
		Size:  gpu.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	tex, err := FromRaw(dev, raw, "external", gpu.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 1}, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("FromRaw() = %v", err)
	}
	if tex.Handle() != raw {
		t.Error("FromRaw should wrap the given texture handle")
	}

	// Adoption transfers ownership: a failure inside FromRaw destroys raw.
	dev2 := &gputest.Device{}
	raw2, _ := dev2.CreateTexture(&gpu.TextureDescriptor{Label: "external2"})
	dev2.FailCreateSampler = errors.New("boom")
	if _, err := FromRaw(dev2, raw2, "external2", gpu.Extent3D{Width: 8, Height: 8}, gputypes.TextureFormatRGBA8Unorm); err == nil {
		t.Fatal("FromRaw() should fail")
	}
	if n := dev2.LiveTextures(); n != 0 {
		t.Errorf("LiveTextures() = %d after failed FromRaw, want 0", n)
	}
}

func TestAsRenderTarget(t *testing.T) {
	dev := &gputest.Device{}
	tex := newTestTexture(t, dev)

	rt, err := AsRenderTarget(tex, "target", 0.5)
	if err != nil {
		t.Fatalf("AsRenderTarget() = %v", err)
	}
	if got := rt.Size(); got.Width != 32 || got.Height != 16 {
		t.Errorf("Size() = %+v, want 32x16", got)
	}
	if rt.Format() != tex.Format() {
		t.Errorf("Format() = %v, want source format %v", rt.Format(), tex.Format())
	}
	rec := dev.Textures[len(dev.Textures)-1]
	if rec.Desc.Usage&gputypes.TextureUsageRenderAttachment == 0 {
		t.Error("render target usage should include RenderAttachment")
	}
}

func TestAsRenderTargetWithExtent(t *testing.T) {
	dev := &gputest.Device{}
	tex := newTestTexture(t, dev)

	size := gpu.Extent3D{Width: 100, Height: 50, DepthOrArrayLayers: 1}
	rt, err := AsRenderTargetWithExtent(tex, "target", size, gputypes.TextureFormatRGBA16Float)
	if err != nil {
		t.Fatalf("AsRenderTargetWithExtent() = %v", err)
	}
	if got := rt.Size(); got != size {
		t.Errorf("Size() = %+v, want %+v", got, size)
	}
	if rt.Format() != gputypes.TextureFormatRGBA16Float {
		t.Errorf("Format() = %v, want RGBA16Float", rt.Format())
	}

	if err := tex.Destroy(); err != nil {
		t.Fatalf("Destroy() = %v", err)
	}
	if _, err := AsRenderTargetWithExtent(tex, "late", size, gputypes.TextureFormatRGBA8Unorm); !errors.Is(err, ErrReleased) {
		t.Errorf("err = %v, want ErrReleased", err)
	}
}
