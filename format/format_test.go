package format

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestWebGPURoundTrip(t *testing.T) {
	for f := range pxToWebGPU {
		tf, err := ToWebGPU(f)
		if err != nil {
			t.Fatalf("ToWebGPU(%v) = %v", f, err)
		}
		back, err := FromWebGPU(tf)
		if err != nil {
			t.Fatalf("FromWebGPU(%d) = %v", tf, err)
		}
		if back != f {
			t.Errorf("round trip %v -> %d -> %v", f, tf, back)
		}
	}
}

func TestVulkanRoundTrip(t *testing.T) {
	// Depth24Plus lowers to D32_SFLOAT, which canonically reverses to
	// Depth32Float. Every other mapping is two-way.
	oneWay := map[PixelFormat]PixelFormat{
		FormatDepth24Plus: FormatDepth32Float,
	}
	for f := range pxToVulkan {
		vf, err := ToVulkan(f)
		if err != nil {
			t.Fatalf("ToVulkan(%v) = %v", f, err)
		}
		back, err := FromVulkan(vf)
		if err != nil {
			t.Fatalf("FromVulkan(%d) = %v", vf, err)
		}
		want := f
		if w, ok := oneWay[f]; ok {
			want = w
		}
		if back != want {
			t.Errorf("round trip %v -> %d -> %v, want %v", f, vf, back, want)
		}
	}
}

func TestDXGIRoundTrip(t *testing.T) {
	for f := range pxToDXGI {
		df, err := ToDXGI(f)
		if err != nil {
			t.Fatalf("ToDXGI(%v) = %v", f, err)
		}
		back, err := FromDXGI(df)
		if err != nil {
			t.Fatalf("FromDXGI(%d) = %v", df, err)
		}
		if back != f {
			t.Errorf("round trip %v -> %d -> %v", f, df, back)
		}
	}
}

func TestDXGIConversion(t *testing.T) {
	df, err := ToDXGI(FormatRGBA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	if df != DXGIFormatR8G8B8A8Unorm {
		t.Errorf("ToDXGI(FormatRGBA8Unorm) = %d, want %d", df, DXGIFormatR8G8B8A8Unorm)
	}

	f, err := FromDXGI(DXGIFormatR8G8B8A8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatRGBA8Unorm {
		t.Errorf("FromDXGI(R8G8B8A8_UNORM) = %v, want %v", f, FormatRGBA8Unorm)
	}

	// Y410 is a DXGI-only video format.
	if _, err := ToWebGPU(FormatY410); err == nil {
		t.Error("ToWebGPU(FormatY410) should fail")
	}
}

func TestTypelessResolvesOneWay(t *testing.T) {
	// TYPELESS resolves into the neutral space, but the canonical reverse
	// is the UNORM variant.
	f, err := FromDXGI(DXGIFormatR8G8B8A8Typeless)
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatRGBA8Unorm {
		t.Errorf("FromDXGI(R8G8B8A8_TYPELESS) = %v, want %v", f, FormatRGBA8Unorm)
	}
	df, err := ToDXGI(f)
	if err != nil {
		t.Fatal(err)
	}
	if df != DXGIFormatR8G8B8A8Unorm {
		t.Errorf("ToDXGI(%v) = %d, want %d", f, df, DXGIFormatR8G8B8A8Unorm)
	}
}

func TestVideoFormatsAreDXGIOnly(t *testing.T) {
	for _, f := range []PixelFormat{FormatAYUV, FormatNV12, FormatY410, FormatP010} {
		if _, err := ToDXGI(f); err != nil {
			t.Errorf("ToDXGI(%v) = %v, want success", f, err)
		}
		if _, err := ToWebGPU(f); !errors.Is(err, ErrUnsupported) {
			t.Errorf("ToWebGPU(%v) = %v, want ErrUnsupported", f, err)
		}
		if _, err := ToVulkan(f); !errors.Is(err, ErrUnsupported) {
			t.Errorf("ToVulkan(%v) = %v, want ErrUnsupported", f, err)
		}
	}
}

func TestUnknownFormatFails(t *testing.T) {
	if _, err := ToWebGPU(FormatUnknown); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ToWebGPU(FormatUnknown) = %v, want ErrUnsupported", err)
	}
	if _, err := ToVulkan(FormatUnknown); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ToVulkan(FormatUnknown) = %v, want ErrUnsupported", err)
	}
	if _, err := ToDXGI(FormatUnknown); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ToDXGI(FormatUnknown) = %v, want ErrUnsupported", err)
	}
	if _, err := FromWebGPU(gputypes.TextureFormatUndefined); !errors.Is(err, ErrUnsupported) {
		t.Errorf("FromWebGPU(Undefined) = %v, want ErrUnsupported", err)
	}
}

func TestStereoPairs(t *testing.T) {
	// Spot-check the sRGB pairs, which are the ones game streams use.
	tests := []struct {
		px PixelFormat
		wg gputypes.TextureFormat
		vk VulkanFormat
		dx DXGIFormat
	}{
		{FormatRGBA8UnormSrgb, gputypes.TextureFormatRGBA8UnormSrgb, VKFormatR8G8B8A8Srgb, DXGIFormatR8G8B8A8UnormSrgb},
		{FormatBGRA8UnormSrgb, gputypes.TextureFormatBGRA8UnormSrgb, VKFormatB8G8R8A8Srgb, DXGIFormatB8G8R8A8UnormSrgb},
		{FormatBGRA8Unorm, gputypes.TextureFormatBGRA8Unorm, VKFormatB8G8R8A8Unorm, DXGIFormatB8G8R8A8Unorm},
	}
	for _, tt := range tests {
		if got, err := ToWebGPU(tt.px); err != nil || got != tt.wg {
			t.Errorf("ToWebGPU(%v) = %d, %v, want %d", tt.px, got, err, tt.wg)
		}
		if got, err := ToVulkan(tt.px); err != nil || got != tt.vk {
			t.Errorf("ToVulkan(%v) = %d, %v, want %d", tt.px, got, err, tt.vk)
		}
		if got, err := ToDXGI(tt.px); err != nil || got != tt.dx {
			t.Errorf("ToDXGI(%v) = %d, %v, want %d", tt.px, got, err, tt.dx)
		}
	}
}

func TestBytesPerTexel(t *testing.T) {
	tests := []struct {
		f    PixelFormat
		want int
	}{
		{FormatR8Unorm, 1},
		{FormatRG8Unorm, 2},
		{FormatRGBA8Unorm, 4},
		{FormatBGRA8Unorm, 4},
		{FormatRGBA16Float, 8},
		{FormatRGBA32Float, 16},
		{FormatBC7RGBAUnorm, 0},
		{FormatNV12, 0},
	}
	for _, tt := range tests {
		if got := tt.f.BytesPerTexel(); got != tt.want {
			t.Errorf("BytesPerTexel(%v) = %d, want %d", tt.f, got, tt.want)
		}
	}
}

func TestPixelFormatString(t *testing.T) {
	if got := FormatBGRA8Unorm.String(); got != "bgra8unorm" {
		t.Errorf("String() = %q, want %q", got, "bgra8unorm")
	}
	if got := PixelFormat(250).String(); got != "PixelFormat(250)" {
		t.Errorf("String() = %q, want %q", got, "PixelFormat(250)")
	}
}
