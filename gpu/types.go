package gpu

import "github.com/gogpu/gputypes"

// DefaultTextureUsage covers the common case for screen textures: sampled
// in the compositor, copyable in both directions for ring-buffer blits and
// staged uploads.
const DefaultTextureUsage = gputypes.TextureUsageTextureBinding |
	gputypes.TextureUsageCopySrc |
	gputypes.TextureUsageCopyDst

// Extent3D is the size of a texture in texels.
type Extent3D struct {
	Width              uint32
	Height             uint32
	DepthOrArrayLayers uint32
}

// Origin3D is a texel offset into a texture.
type Origin3D struct {
	X, Y, Z uint32
}

// TextureDescriptor describes a texture to create.
type TextureDescriptor struct {
	Label         string
	Size          Extent3D
	MipLevelCount uint32
	SampleCount   uint32
	Dimension     gputypes.TextureDimension
	Format        gputypes.TextureFormat
	Usage         gputypes.TextureUsage
}

// TextureViewDescriptor describes a view over an existing texture.
// A zero Format means "same as the texture".
type TextureViewDescriptor struct {
	Label         string
	Format        gputypes.TextureFormat
	Dimension     gputypes.TextureViewDimension
	Aspect        gputypes.TextureAspect
	MipLevelCount uint32
}

// SamplerDescriptor describes a sampler.
type SamplerDescriptor struct {
	Label        string
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	AddressModeW gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode
}

// BindGroupLayoutDescriptor describes the resource slots of a bind group.
// Entries reuse the gputypes layout-entry shape directly.
type BindGroupLayoutDescriptor struct {
	Label   string
	Entries []gputypes.BindGroupLayoutEntry
}

// BindGroupEntry binds one resource to one slot. Exactly one of
// TextureView and Sampler is set.
type BindGroupEntry struct {
	Binding     uint32
	TextureView TextureView
	Sampler     Sampler
}

// BindGroupDescriptor describes a bind group against a layout.
type BindGroupDescriptor struct {
	Label   string
	Layout  BindGroupLayout
	Entries []BindGroupEntry
}

// ImageCopyTexture identifies one subresource of a texture for a copy.
type ImageCopyTexture struct {
	Texture  Texture
	MipLevel uint32
	Origin   Origin3D
	Aspect   gputypes.TextureAspect
}

// ImageDataLayout describes the memory layout of CPU pixel data.
type ImageDataLayout struct {
	Offset       uint64
	BytesPerRow  uint32
	RowsPerImage uint32
}

// SourceAPI identifies which Direct3D runtime produced a shared handle.
// The import path differs: D3D11 KMT handles and D3D12 NT handles map to
// different Vulkan external-memory handle types.
type SourceAPI uint8

const (
	SourceD3D11 SourceAPI = iota
	SourceD3D12
)

func (s SourceAPI) String() string {
	switch s {
	case SourceD3D11:
		return "d3d11"
	case SourceD3D12:
		return "d3d12"
	default:
		return "unknown"
	}
}

// ExternalImageDescriptor carries everything a backend needs to import a
// shared image. Formats arrive pre-translated: Format in the backend's own
// space, VulkanFormat as the raw VkFormat value, BytesPerTexel as the
// texel stride, so the backend never consults the format tables itself.
type ExternalImageDescriptor struct {
	Label         string
	Handle        uintptr
	Source        SourceAPI
	Size          Extent3D
	MipLevelCount uint32
	SampleCount   uint32
	Format        gputypes.TextureFormat
	VulkanFormat  uint32
	BytesPerTexel uint32
	Usage         gputypes.TextureUsage
}
