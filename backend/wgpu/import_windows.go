package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/vrscreencap/vrscreencap"
	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/internal/vkimport"
)

// externalState carries the copy-through import machinery. Shared D3D
// images live on a dedicated Vulkan device; their pixels cross to the
// render device through host memory on every RefreshImports.
type externalState struct {
	imp    *vkimport.Device
	impErr error
	tried  bool
	images map[hal.Texture]*importedImage
}

// importedImage pairs a shared source image with the HAL texture that
// mirrors it, plus a reusable staging slice for the per-frame readback.
type importedImage struct {
	img   *vkimport.Image
	size  hal.Extent3D
	texel uint32
	pix   []byte
	label string
}

func (s *externalState) importer() (*vkimport.Device, error) {
	if !s.tried {
		s.tried = true
		imp, err := vkimport.NewDevice()
		if err != nil {
			s.impErr = fmt.Errorf("%w: %v", gpu.ErrImportUnsupported, err)
			vrscreencap.Logger().Warn("external image import unavailable", "error", err)
		} else {
			s.imp = imp
			s.images = make(map[hal.Texture]*importedImage)
		}
	}
	if s.impErr != nil {
		return nil, s.impErr
	}
	return s.imp, nil
}

func (s *externalState) release(tex hal.Texture) {
	if rec, ok := s.images[tex]; ok {
		rec.img.Destroy()
		delete(s.images, tex)
	}
}

func (s *externalState) close() {
	for tex, rec := range s.images {
		rec.img.Destroy()
		delete(s.images, tex)
	}
	if s.imp != nil {
		s.imp.Close()
		s.imp = nil
	}
}

// ImportExternalImage adopts a shared Direct3D image. The returned
// texture is an ordinary HAL texture; its contents track the shared
// image only as often as RefreshImports runs.
func (d *Device) ImportExternalImage(desc *gpu.ExternalImageDescriptor) (gpu.Texture, error) {
	imp, err := d.ext.importer()
	if err != nil {
		return nil, err
	}

	var handleType vkimport.HandleType
	switch desc.Source {
	case gpu.SourceD3D11:
		handleType = vkimport.HandleTypeD3D11TextureKMT
	case gpu.SourceD3D12:
		handleType = vkimport.HandleTypeD3D12Resource
	default:
		return nil, fmt.Errorf("wgpu: import %q: unknown source api %v", desc.Label, desc.Source)
	}

	layers := max(desc.Size.DepthOrArrayLayers, 1)
	texel := desc.BytesPerTexel
	if texel == 0 {
		texel = 4
	}
	img, err := imp.ImportImage(&vkimport.ImageDesc{
		Width:         desc.Size.Width,
		Height:        desc.Size.Height,
		ArrayLayers:   layers,
		MipLevels:     desc.MipLevelCount,
		Format:        desc.VulkanFormat,
		BytesPerTexel: texel,
		Handle:        desc.Handle,
		HandleType:    handleType,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: import %q: %w", desc.Label, err)
	}

	usage := desc.Usage
	if usage == 0 {
		usage = gpu.DefaultTextureUsage
	}
	tex, err := d.CreateTexture(&gpu.TextureDescriptor{
		Label:         desc.Label,
		Size:          desc.Size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         usage | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		img.Destroy()
		return nil, err
	}
	ht := tex.(hal.Texture)

	rec := &importedImage{
		img: img,
		size: hal.Extent3D{
			Width:              desc.Size.Width,
			Height:             desc.Size.Height,
			DepthOrArrayLayers: layers,
		},
		texel: texel,
		pix:   make([]byte, uint64(desc.Size.Width)*uint64(desc.Size.Height)*uint64(layers)*uint64(texel)),
		label: desc.Label,
	}
	d.ext.images[ht] = rec

	// Prime the mirror so the first composited frame is not garbage.
	if err := d.refreshOne(ht, rec); err != nil {
		vrscreencap.Logger().Warn("initial frame readback failed", "label", desc.Label, "error", err)
	}
	return tex, nil
}

// RefreshImports copies the current contents of every imported shared
// image into its mirror texture. Call once per tick, before encoding
// work that samples imported textures. The first error is returned but
// remaining imports are still refreshed.
func (d *Device) RefreshImports() error {
	var firstErr error
	for tex, rec := range d.ext.images {
		if err := d.refreshOne(tex, rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (d *Device) refreshOne(tex hal.Texture, rec *importedImage) error {
	if err := rec.img.ReadPixels(rec.pix); err != nil {
		return fmt.Errorf("wgpu: refresh %q: %w", rec.label, err)
	}
	d.queue.q.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		rec.pix,
		&hal.ImageDataLayout{BytesPerRow: rec.size.Width * rec.texel, RowsPerImage: rec.size.Height},
		&rec.size,
	)
	return nil
}
