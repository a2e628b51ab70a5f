package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/vrscreencap/vrscreencap/gpu"
)

// submitTimeout bounds the fence wait after each queue submission.
const submitTimeout = 5 * time.Second

// nativeHandle is satisfied by HAL resources that expose their backend
// handle for bind-group construction.
type nativeHandle interface {
	NativeHandle() uintptr
}

// textureRecord tracks per-texture state the HAL does not: the format
// (views with a zero format inherit it) and the views created against the
// texture, which are released together with it.
type textureRecord struct {
	format gputypes.TextureFormat
	size   hal.Extent3D
	views  []hal.TextureView
}

// Device implements gpu.Device on top of hal.Device.
type Device struct {
	instance hal.Instance
	dev      hal.Device
	queue    *Queue

	textures map[hal.Texture]*textureRecord
	ext      externalState
}

func newDevice(instance hal.Instance, dev hal.Device, queue hal.Queue) *Device {
	d := &Device{
		instance: instance,
		dev:      dev,
		textures: make(map[hal.Texture]*textureRecord),
	}
	d.queue = &Queue{dev: dev, q: queue}
	return d
}

func (d *Device) queueAdapter() *Queue { return d.queue }

// Close releases the HAL device and instance. All resources created
// through the device must be destroyed first.
func (d *Device) Close() {
	d.ext.close()
	if d.dev != nil {
		d.dev.Destroy()
		d.dev = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}

func (d *Device) CreateTexture(desc *gpu.TextureDescriptor) (gpu.Texture, error) {
	hd := halTextureDescriptor(desc)
	tex, err := d.dev.CreateTexture(hd)
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %q: %w", desc.Label, err)
	}
	d.textures[tex] = &textureRecord{format: hd.Format, size: hd.Size}
	return tex, nil
}

func (d *Device) CreateTextureView(tex gpu.Texture, desc *gpu.TextureViewDescriptor) (gpu.TextureView, error) {
	ht, ok := tex.(hal.Texture)
	if !ok {
		return nil, fmt.Errorf("wgpu: create view %q: %w", desc.Label, gpu.ErrInvalidHandle)
	}
	rec := d.textures[ht]
	if rec == nil {
		return nil, fmt.Errorf("wgpu: create view %q: %w", desc.Label, gpu.ErrInvalidHandle)
	}
	format := desc.Format
	if format == 0 {
		format = rec.format
	}
	mips := desc.MipLevelCount
	if mips == 0 {
		mips = 1
	}
	view, err := d.dev.CreateTextureView(ht, &hal.TextureViewDescriptor{
		Label:           desc.Label,
		Format:          format,
		Dimension:       desc.Dimension,
		Aspect:          desc.Aspect,
		MipLevelCount:   mips,
		ArrayLayerCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create view %q: %w", desc.Label, err)
	}
	rec.views = append(rec.views, view)
	return view, nil
}

func (d *Device) CreateSampler(desc *gpu.SamplerDescriptor) (gpu.Sampler, error) {
	s, err := d.dev.CreateSampler(&hal.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: desc.AddressModeU,
		AddressModeV: desc.AddressModeV,
		AddressModeW: desc.AddressModeW,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: desc.MipmapFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler %q: %w", desc.Label, err)
	}
	return s, nil
}

func (d *Device) CreateBindGroupLayout(desc *gpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	layout, err := d.dev.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: desc.Entries,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create bind group layout %q: %w", desc.Label, err)
	}
	return layout, nil
}

func (d *Device) CreateBindGroup(desc *gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	layout, ok := desc.Layout.(hal.BindGroupLayout)
	if !ok {
		return nil, fmt.Errorf("wgpu: create bind group %q: layout: %w", desc.Label, gpu.ErrInvalidHandle)
	}
	entries := make([]gputypes.BindGroupEntry, 0, len(desc.Entries))
	for _, e := range desc.Entries {
		entry := gputypes.BindGroupEntry{Binding: e.Binding}
		switch {
		case e.TextureView != nil:
			v, ok := e.TextureView.(nativeHandle)
			if !ok {
				return nil, fmt.Errorf("wgpu: create bind group %q: binding %d: %w",
					desc.Label, e.Binding, gpu.ErrInvalidHandle)
			}
			entry.Resource = gputypes.TextureViewBinding{
				TextureView: v.NativeHandle(),
			}
		case e.Sampler != nil:
			s, ok := e.Sampler.(nativeHandle)
			if !ok {
				return nil, fmt.Errorf("wgpu: create bind group %q: binding %d: %w",
					desc.Label, e.Binding, gpu.ErrInvalidHandle)
			}
			entry.Resource = gputypes.SamplerBinding{
				Sampler: s.NativeHandle(),
			}
		default:
			return nil, fmt.Errorf("wgpu: create bind group %q: binding %d has no resource",
				desc.Label, e.Binding)
		}
		entries = append(entries, entry)
	}
	bg, err := d.dev.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create bind group %q: %w", desc.Label, err)
	}
	return bg, nil
}

func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	enc, err := d.dev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder %q: %w", label, err)
	}
	if err := enc.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding %q: %w", label, err)
	}
	return &CommandEncoder{enc: enc}, nil
}

func (d *Device) DestroyTexture(tex gpu.Texture) {
	ht, ok := tex.(hal.Texture)
	if !ok {
		return
	}
	if rec := d.textures[ht]; rec != nil {
		for _, v := range rec.views {
			d.dev.DestroyTextureView(v)
		}
		delete(d.textures, ht)
	}
	d.ext.release(ht)
	d.dev.DestroyTexture(ht)
}

func (d *Device) DestroySampler(s gpu.Sampler) {
	if hs, ok := s.(hal.Sampler); ok {
		d.dev.DestroySampler(hs)
	}
}

func (d *Device) DestroyBindGroup(bg gpu.BindGroup) {
	if hb, ok := bg.(hal.BindGroup); ok {
		d.dev.DestroyBindGroup(hb)
	}
}

// Queue implements gpu.Queue. Submissions are synchronous: each Submit
// waits on a fence before returning so the single-goroutine pipeline never
// races the GPU on buffer reuse.
type Queue struct {
	dev hal.Device
	q   hal.Queue
}

func (q *Queue) WriteTexture(dst *gpu.ImageCopyTexture, data []byte, layout *gpu.ImageDataLayout, size *gpu.Extent3D) {
	ht, ok := dst.Texture.(hal.Texture)
	if !ok {
		return
	}
	q.q.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  ht,
			MipLevel: dst.MipLevel,
			Origin:   hal.Origin3D{X: dst.Origin.X, Y: dst.Origin.Y, Z: dst.Origin.Z},
			Aspect:   dst.Aspect,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       layout.Offset,
			BytesPerRow:  layout.BytesPerRow,
			RowsPerImage: layout.RowsPerImage,
		},
		&hal.Extent3D{Width: size.Width, Height: size.Height, DepthOrArrayLayers: size.DepthOrArrayLayers},
	)
}

func (q *Queue) Submit(buffers ...gpu.CommandBuffer) error {
	if len(buffers) == 0 {
		return nil
	}
	halBufs := make([]hal.CommandBuffer, 0, len(buffers))
	for _, b := range buffers {
		hb, ok := b.(hal.CommandBuffer)
		if !ok {
			return fmt.Errorf("wgpu: submit: %w", gpu.ErrInvalidHandle)
		}
		halBufs = append(halBufs, hb)
	}
	defer func() {
		for _, hb := range halBufs {
			q.dev.FreeCommandBuffer(hb)
		}
	}()

	fence, err := q.dev.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer q.dev.DestroyFence(fence)

	if err := q.q.Submit(halBufs, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	ok, err := q.dev.Wait(fence, 1, submitTimeout)
	if err != nil {
		return fmt.Errorf("wgpu: wait for submission: %w", err)
	}
	if !ok {
		return fmt.Errorf("wgpu: wait for submission: timed out after %v", submitTimeout)
	}
	return nil
}

// CommandEncoder implements gpu.CommandEncoder over hal.CommandEncoder.
// The encoder begins recording at creation and is single-use.
type CommandEncoder struct {
	enc      hal.CommandEncoder
	finished bool
}

func (e *CommandEncoder) CopyTextureToTexture(src, dst *gpu.ImageCopyTexture, size *gpu.Extent3D) {
	st, sok := src.Texture.(hal.Texture)
	dt, dok := dst.Texture.(hal.Texture)
	if !sok || !dok || e.finished {
		return
	}
	e.enc.CopyTextureToTexture(st, dt, []hal.TextureCopy{{
		SrcBase: hal.ImageCopyTexture{
			Texture:  st,
			MipLevel: src.MipLevel,
			Origin:   hal.Origin3D{X: src.Origin.X, Y: src.Origin.Y, Z: src.Origin.Z},
			Aspect:   src.Aspect,
		},
		DstBase: hal.ImageCopyTexture{
			Texture:  dt,
			MipLevel: dst.MipLevel,
			Origin:   hal.Origin3D{X: dst.Origin.X, Y: dst.Origin.Y, Z: dst.Origin.Z},
			Aspect:   dst.Aspect,
		},
		Size: hal.Extent3D{Width: size.Width, Height: size.Height, DepthOrArrayLayers: size.DepthOrArrayLayers},
	}})
}

func (e *CommandEncoder) Finish() (gpu.CommandBuffer, error) {
	if e.finished {
		return nil, fmt.Errorf("wgpu: encoder already finished")
	}
	e.finished = true
	buf, err := e.enc.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	return buf, nil
}

func halTextureDescriptor(desc *gpu.TextureDescriptor) *hal.TextureDescriptor {
	mips := desc.MipLevelCount
	if mips == 0 {
		mips = 1
	}
	samples := desc.SampleCount
	if samples == 0 {
		samples = 1
	}
	layers := desc.Size.DepthOrArrayLayers
	if layers == 0 {
		layers = 1
	}
	return &hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Size.Width,
			Height:             desc.Size.Height,
			DepthOrArrayLayers: layers,
		},
		MipLevelCount: mips,
		SampleCount:   samples,
		Dimension:     desc.Dimension,
		Format:        desc.Format,
		Usage:         desc.Usage,
	}
}
