// Package texture wraps GPU images in a two-state lifecycle: a Texture2D
// is created unbound, then consumed exactly once by Bind, which yields a
// Bound texture carrying its bind group. The split keeps "sampled by the
// compositor" and "still being assembled" apart at the type level.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Register decoders for FromBytes.
	_ "image/jpeg"
	_ "image/png"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/vrscreencap/vrscreencap/gpu"
)

// Texture-related errors.
var (
	// ErrReleased is returned when operating on a destroyed texture.
	ErrReleased = errors.New("texture: texture has been destroyed")

	// ErrConsumed is returned when a texture that was already bound is
	// bound or destroyed again.
	ErrConsumed = errors.New("texture: texture already consumed by Bind")

	// ErrZeroExtent is returned for empty texture dimensions.
	ErrZeroExtent = errors.New("texture: extent must be non-zero")
)

// Texture2D is an unbound GPU texture with its view and sampler. It
// exposes no bind group: only the Bound value returned by Bind does.
type Texture2D struct {
	dev     gpu.Device
	tex     gpu.Texture
	view    gpu.TextureView
	sampler gpu.Sampler

	size   gpu.Extent3D
	format gputypes.TextureFormat
	label  string

	consumed bool
	released bool
}

// New creates an empty texture with a view and a clamp-to-edge linear
// sampler. Partially created resources are destroyed on failure.
func New(dev gpu.Device, label string, size gpu.Extent3D, format gputypes.TextureFormat, usage gputypes.TextureUsage) (*Texture2D, error) {
	if size.Width == 0 || size.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrZeroExtent, size.Width, size.Height)
	}
	if size.DepthOrArrayLayers == 0 {
		size.DepthOrArrayLayers = 1
	}
	tex, err := dev.CreateTexture(&gpu.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("texture: create %q: %w", label, err)
	}
	return wrap(dev, tex, label, size, format)
}

// FromRaw adopts an existing device texture (typically imported from an
// external shared handle) and equips it with a view and sampler. Ownership
// transfers: on failure the texture is destroyed.
func FromRaw(dev gpu.Device, tex gpu.Texture, label string, size gpu.Extent3D, format gputypes.TextureFormat) (*Texture2D, error) {
	return wrap(dev, tex, label, size, format)
}

func wrap(dev gpu.Device, tex gpu.Texture, label string, size gpu.Extent3D, format gputypes.TextureFormat) (*Texture2D, error) {
	view, err := dev.CreateTextureView(tex, &gpu.TextureViewDescriptor{
		Label:         label,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		dev.DestroyTexture(tex)
		return nil, fmt.Errorf("texture: create view %q: %w", label, err)
	}
	sampler, err := dev.CreateSampler(&gpu.SamplerDescriptor{
		Label:        label,
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		dev.DestroyTexture(tex)
		return nil, fmt.Errorf("texture: create sampler %q: %w", label, err)
	}
	return &Texture2D{
		dev:     dev,
		tex:     tex,
		view:    view,
		sampler: sampler,
		size:    size,
		format:  format,
		label:   label,
	}, nil
}

// FromImage creates a sampled texture from a decoded image and uploads its
// pixels. Non-RGBA sources (paletted PNGs, YCbCr JPEGs) are converted.
func FromImage(ctx *gpu.Context, label string, img image.Image) (*Texture2D, error) {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	size := gpu.Extent3D{Width: uint32(b.Dx()), Height: uint32(b.Dy()), DepthOrArrayLayers: 1}
	t, err := New(ctx.Device, label, size, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		return nil, err
	}
	t.WritePixels(ctx.Queue, rgba.Pix, 4*size.Width)
	return t, nil
}

// FromBytes decodes an encoded image (PNG, JPEG) and uploads it.
func FromBytes(ctx *gpu.Context, label string, data []byte) (*Texture2D, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %q: %w", label, err)
	}
	return FromImage(ctx, label, img)
}

// AsRenderTargetWithExtent derives a new unbound texture from t with a
// caller-chosen extent and format, inheriting 2D dimensionality and
// adding render-attachment usage.
func AsRenderTargetWithExtent(t *Texture2D, label string, size gpu.Extent3D, format gputypes.TextureFormat) (*Texture2D, error) {
	if t.released {
		return nil, ErrReleased
	}
	return New(t.dev, label, size, format,
		gpu.DefaultTextureUsage|gputypes.TextureUsageRenderAttachment)
}

// AsRenderTarget derives a new unbound texture from t with the same format
// and scaled dimensions. Used to build accumulation targets that mirror a
// screen texture.
func AsRenderTarget(t *Texture2D, label string, scale float64) (*Texture2D, error) {
	w := uint32(float64(t.size.Width) * scale)
	h := uint32(float64(t.size.Height) * scale)
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	size := gpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	return AsRenderTargetWithExtent(t, label, size, t.format)
}

// Size returns the texture extent.
func (t *Texture2D) Size() gpu.Extent3D { return t.size }

// Format returns the texture format.
func (t *Texture2D) Format() gputypes.TextureFormat { return t.format }

// Label returns the debug label.
func (t *Texture2D) Label() string { return t.label }

// View returns the texture view handle.
func (t *Texture2D) View() gpu.TextureView { return t.view }

// Handle returns the raw device texture, for copy commands.
func (t *Texture2D) Handle() gpu.Texture { return t.tex }

// WritePixels schedules an upload of tightly packed pixel rows into mip 0.
func (t *Texture2D) WritePixels(q gpu.Queue, data []byte, bytesPerRow uint32) {
	if t.released || t.consumed {
		return
	}
	q.WriteTexture(
		&gpu.ImageCopyTexture{Texture: t.tex, Aspect: gputypes.TextureAspectAll},
		data,
		&gpu.ImageDataLayout{BytesPerRow: bytesPerRow, RowsPerImage: t.size.Height},
		&t.size,
	)
}

// Bind consumes t, producing a Bound texture whose bind group pairs the
// view at binding 0 with the sampler at binding 1. After a successful Bind
// the Texture2D is spent: further Bind or Destroy calls are rejected, and
// resource ownership lives with the returned Bound.
func (t *Texture2D) Bind(layout gpu.BindGroupLayout) (*Bound, error) {
	if t.released {
		return nil, ErrReleased
	}
	if t.consumed {
		return nil, ErrConsumed
	}
	group, err := t.dev.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:  t.label,
		Layout: layout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, TextureView: t.view},
			{Binding: 1, Sampler: t.sampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("texture: bind %q: %w", t.label, err)
	}
	t.consumed = true
	return &Bound{tex: t, group: group}, nil
}

// Destroy releases the texture, its sampler, and the view. Destroy on a
// consumed texture is rejected; the owning Bound must be destroyed instead.
func (t *Texture2D) Destroy() error {
	if t.consumed {
		return ErrConsumed
	}
	if t.released {
		return nil
	}
	t.released = true
	t.dev.DestroySampler(t.sampler)
	t.dev.DestroyTexture(t.tex)
	return nil
}

// Bound is a texture that has been bound exactly once. It is the only type
// carrying a bind group, so the compositor can only sample textures that
// completed the full acquisition path.
type Bound struct {
	tex   *Texture2D
	group gpu.BindGroup
}

// BindGroup returns the bind group created by Bind.
func (b *Bound) BindGroup() gpu.BindGroup { return b.group }

// Size returns the texture extent.
func (b *Bound) Size() gpu.Extent3D { return b.tex.size }

// Format returns the texture format.
func (b *Bound) Format() gputypes.TextureFormat { return b.tex.format }

// Label returns the debug label.
func (b *Bound) Label() string { return b.tex.label }

// Handle returns the raw device texture, for copy commands.
func (b *Bound) Handle() gpu.Texture { return b.tex.tex }

// WritePixels schedules an upload into the underlying texture.
func (b *Bound) WritePixels(q gpu.Queue, data []byte, bytesPerRow uint32) {
	if b.tex.released {
		return
	}
	q.WriteTexture(
		&gpu.ImageCopyTexture{Texture: b.tex.tex, Aspect: gputypes.TextureAspectAll},
		data,
		&gpu.ImageDataLayout{BytesPerRow: bytesPerRow, RowsPerImage: b.tex.size.Height},
		&b.tex.size,
	)
}

// Destroy releases the bind group and the underlying texture resources.
// Safe to call more than once.
func (b *Bound) Destroy() error {
	if b.tex.released {
		return nil
	}
	b.tex.dev.DestroyBindGroup(b.group)
	b.tex.released = true
	b.tex.dev.DestroySampler(b.tex.sampler)
	b.tex.dev.DestroyTexture(b.tex.tex)
	return nil
}

// DefaultBindGroupLayout creates the texture+sampler layout every Bound
// texture binds against: a filterable 2D texture at binding 0 and a
// filtering sampler at binding 1, both fragment-visible.
func DefaultBindGroupLayout(dev gpu.Device) (gpu.BindGroupLayout, error) {
	return dev.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label: "screen texture layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler: &gputypes.SamplerBindingLayout{
					Type: gputypes.SamplerBindingTypeFiltering,
				},
			},
		},
	})
}
