//go:build windows

package loaders

import (
	"fmt"
	"unsafe"

	"github.com/vrscreencap/vrscreencap"
	"github.com/vrscreencap/vrscreencap/exttex"
	"github.com/vrscreencap/vrscreencap/format"
	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/internal/d3d"
	"github.com/vrscreencap/vrscreencap/internal/shmem"
	"github.com/vrscreencap/vrscreencap/texture"

	"golang.org/x/sys/windows"
)

// Katanga-convention producers publish their shared texture handle as
// the first machine word of a fixed-name mapping.
const (
	katangaMappingName = `Local\KatangaMappedFile`
	katangaStreamName  = "DX12VRStream"
)

// HandleResolver turns the producer's published handle word into an
// importable descriptor. Resolvers are tried in order; the first
// success wins. Each resolver owns whatever device or handle it opens.
type HandleResolver interface {
	Name() string
	Resolve(word uintptr) (exttex.Descriptor, error)
	Close() error
}

// d3d11Resolver treats the word as a legacy D3D11 shared handle.
type d3d11Resolver struct {
	dev *d3d.Device11
}

func (*d3d11Resolver) Name() string { return "d3d11-shared-resource" }

func (r *d3d11Resolver) Resolve(word uintptr) (exttex.Descriptor, error) {
	if r.dev == nil {
		dev, err := d3d.NewDevice11()
		if err != nil {
			return exttex.Descriptor{}, err
		}
		r.dev = dev
	}
	info, err := r.dev.QuerySharedTexture(word)
	if err != nil {
		return exttex.Descriptor{}, err
	}
	px, err := format.FromDXGI(info.Format)
	if err != nil {
		return exttex.Descriptor{}, err
	}
	return exttex.Descriptor{
		Handle:      word,
		Source:      gpu.SourceD3D11,
		Width:       info.Width,
		Height:      info.Height,
		ArraySize:   info.ArraySize,
		MipLevels:   info.MipLevels,
		SampleCount: info.SampleCount,
		Format:      px,
	}, nil
}

func (r *d3d11Resolver) Close() error {
	if r.dev != nil {
		r.dev.Close()
		r.dev = nil
	}
	return nil
}

// d3d12Resolver ignores the word and opens the producer's well-known
// named stream resource instead.
type d3d12Resolver struct {
	dev    *d3d.Device12
	handle uintptr // NT handle, owned
}

func (*d3d12Resolver) Name() string { return "d3d12-named-handle" }

func (r *d3d12Resolver) Resolve(word uintptr) (exttex.Descriptor, error) {
	if r.dev == nil {
		dev, err := d3d.NewDevice12()
		if err != nil {
			return exttex.Descriptor{}, err
		}
		r.dev = dev
	}
	r.closeHandle()
	h, err := r.dev.OpenSharedHandleByName(katangaStreamName, d3d.GenericAll)
	if err != nil {
		return exttex.Descriptor{}, err
	}
	info, err := r.dev.QuerySharedResource(h)
	if err != nil {
		windows.CloseHandle(windows.Handle(h))
		return exttex.Descriptor{}, err
	}
	px, err := format.FromDXGI(info.Format)
	if err != nil {
		windows.CloseHandle(windows.Handle(h))
		return exttex.Descriptor{}, err
	}
	r.handle = h
	return exttex.Descriptor{
		Handle:      h,
		Source:      gpu.SourceD3D12,
		Width:       info.Width,
		Height:      info.Height,
		ArraySize:   info.ArraySize,
		MipLevels:   info.MipLevels,
		SampleCount: info.SampleCount,
		Format:      px,
	}, nil
}

func (r *d3d12Resolver) closeHandle() {
	if r.handle != 0 {
		windows.CloseHandle(windows.Handle(r.handle))
		r.handle = 0
	}
}

func (r *d3d12Resolver) Close() error {
	r.closeHandle()
	if r.dev != nil {
		r.dev.Close()
		r.dev = nil
	}
	return nil
}

// Katanga imports the shared texture advertised by a Katanga-convention
// producer. The handle word is resolved against D3D11 first, then
// against the producer's named D3D12 stream.
type Katanga struct {
	mapping   *shmem.Mapping
	resolvers []HandleResolver
	word      uintptr
	loaded    bool
}

// NewKatanga returns the shared-memory import loader with the default
// resolution strategies.
func NewKatanga() *Katanga {
	return NewKatangaWithResolvers(&d3d11Resolver{}, &d3d12Resolver{})
}

// NewKatangaWithResolvers returns a loader with a caller-chosen
// resolution strategy order.
func NewKatangaWithResolvers(resolvers ...HandleResolver) *Katanga {
	return &Katanga{resolvers: resolvers}
}

func (k *Katanga) Name() string { return "katanga" }

func (k *Katanga) Load(ctx *gpu.Context) (*TextureSource, error) {
	if k.mapping == nil {
		m, err := shmem.Open(katangaMappingName, unsafe.Sizeof(uintptr(0)))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoSource, err)
		}
		k.mapping = m
	}
	word, err := k.mapping.ReadUintptr()
	if err != nil || word == 0 {
		k.closeMapping()
		return nil, fmt.Errorf("%w: no handle published", ErrNoSource)
	}

	var lastErr error
	for _, r := range k.resolvers {
		desc, err := r.Resolve(word)
		if err != nil {
			vrscreencap.Logger().Debug("katanga handle resolution failed",
				"resolver", r.Name(), "error", err)
			lastErr = err
			continue
		}
		tex, err := exttex.Import(ctx.Device, &desc, "katanga screen")
		if err != nil {
			lastErr = err
			continue
		}
		vrscreencap.Logger().Info("katanga source acquired",
			"resolver", r.Name(), "width", desc.Width, "height", desc.Height,
			"format", desc.Format)
		k.word = word
		k.loaded = true
		return &TextureSource{
			Texture: tex,
			Width:   desc.Width,
			Height:  desc.Height,
			Stereo:  StereoModeFullSideBySide,
		}, nil
	}
	k.closeMapping()
	if lastErr == nil {
		lastErr = ErrNoSource
	}
	return nil, fmt.Errorf("loaders: katanga: %w", lastErr)
}

// Update is a no-op: the shared texture is sampled in place, and
// IsInvalid polls the producer's handle word for changes.
func (k *Katanga) Update(ctx *gpu.Context, tex *texture.Bound) error {
	return nil
}

func (k *Katanga) IsInvalid() bool {
	if !k.loaded {
		return false
	}
	if k.mapping == nil {
		return true
	}
	word, err := k.mapping.ReadUintptr()
	return err != nil || word != k.word
}

func (k *Katanga) EncodePrePass(enc gpu.CommandEncoder, tex *texture.Bound) error { return nil }

func (k *Katanga) closeMapping() {
	if k.mapping != nil {
		k.mapping.Close()
		k.mapping = nil
	}
	k.loaded = false
	k.word = 0
}

func (k *Katanga) Close() error {
	k.closeMapping()
	for _, r := range k.resolvers {
		r.Close()
	}
	return nil
}
