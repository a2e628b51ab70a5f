// Package gputest provides an in-memory gpu.Device fake for tests.
//
// The fake records every resource it hands out and every destroy call, so
// tests can assert on leak-freedom (LiveTextures) and call ordering. Each
// Fail* field, when non-nil, makes the corresponding operation return that
// error, which is how failure paths are exercised without a real GPU.
package gputest

import (
	"fmt"

	"github.com/vrscreencap/vrscreencap/gpu"
)

// TextureRec is the concrete handle the fake returns for gpu.Texture.
type TextureRec struct {
	ID        int
	Desc      gpu.TextureDescriptor
	External  *gpu.ExternalImageDescriptor // non-nil for imported textures
	Destroyed bool
}

// ViewRec is the concrete handle for gpu.TextureView.
type ViewRec struct {
	ID      int
	Texture *TextureRec
	Desc    gpu.TextureViewDescriptor
}

// SamplerRec is the concrete handle for gpu.Sampler.
type SamplerRec struct {
	ID        int
	Desc      gpu.SamplerDescriptor
	Destroyed bool
}

// LayoutRec is the concrete handle for gpu.BindGroupLayout.
type LayoutRec struct {
	ID   int
	Desc gpu.BindGroupLayoutDescriptor
}

// BindGroupRec is the concrete handle for gpu.BindGroup.
type BindGroupRec struct {
	ID        int
	Desc      gpu.BindGroupDescriptor
	Destroyed bool
}

// Device is a fake gpu.Device. The zero value is ready to use.
//
// Device also implements gpu.ExternalImporter; set FailImport to simulate a
// platform without import support (use gpu.ErrImportUnsupported) or a
// stale handle.
type Device struct {
	nextID int

	Textures   []*TextureRec
	Views      []*ViewRec
	Samplers   []*SamplerRec
	Layouts    []*LayoutRec
	BindGroups []*BindGroupRec

	FailCreateTexture error
	FailCreateView    error
	FailCreateSampler error
	FailCreateLayout  error
	FailCreateBind    error
	FailEncoder       error
	FailImport        error

	// ImportCalls records every ImportExternalImage invocation, including
	// failed ones.
	ImportCalls []gpu.ExternalImageDescriptor
}

func (d *Device) id() int {
	d.nextID++
	return d.nextID
}

func (d *Device) CreateTexture(desc *gpu.TextureDescriptor) (gpu.Texture, error) {
	if d.FailCreateTexture != nil {
		return nil, d.FailCreateTexture
	}
	rec := &TextureRec{ID: d.id(), Desc: *desc}
	d.Textures = append(d.Textures, rec)
	return rec, nil
}

func (d *Device) CreateTextureView(tex gpu.Texture, desc *gpu.TextureViewDescriptor) (gpu.TextureView, error) {
	if d.FailCreateView != nil {
		return nil, d.FailCreateView
	}
	rec, ok := tex.(*TextureRec)
	if !ok {
		return nil, fmt.Errorf("gputest: %w: %T", gpu.ErrInvalidHandle, tex)
	}
	v := &ViewRec{ID: d.id(), Texture: rec, Desc: *desc}
	d.Views = append(d.Views, v)
	return v, nil
}

func (d *Device) CreateSampler(desc *gpu.SamplerDescriptor) (gpu.Sampler, error) {
	if d.FailCreateSampler != nil {
		return nil, d.FailCreateSampler
	}
	s := &SamplerRec{ID: d.id(), Desc: *desc}
	d.Samplers = append(d.Samplers, s)
	return s, nil
}

func (d *Device) CreateBindGroupLayout(desc *gpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	if d.FailCreateLayout != nil {
		return nil, d.FailCreateLayout
	}
	l := &LayoutRec{ID: d.id(), Desc: *desc}
	d.Layouts = append(d.Layouts, l)
	return l, nil
}

func (d *Device) CreateBindGroup(desc *gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	if d.FailCreateBind != nil {
		return nil, d.FailCreateBind
	}
	bg := &BindGroupRec{ID: d.id(), Desc: *desc}
	d.BindGroups = append(d.BindGroups, bg)
	return bg, nil
}

func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	if d.FailEncoder != nil {
		return nil, d.FailEncoder
	}
	return &Encoder{Label: label}, nil
}

func (d *Device) DestroyTexture(tex gpu.Texture) {
	if rec, ok := tex.(*TextureRec); ok {
		rec.Destroyed = true
	}
}

func (d *Device) DestroySampler(s gpu.Sampler) {
	if rec, ok := s.(*SamplerRec); ok {
		rec.Destroyed = true
	}
}

func (d *Device) DestroyBindGroup(bg gpu.BindGroup) {
	if rec, ok := bg.(*BindGroupRec); ok {
		rec.Destroyed = true
	}
}

func (d *Device) ImportExternalImage(desc *gpu.ExternalImageDescriptor) (gpu.Texture, error) {
	d.ImportCalls = append(d.ImportCalls, *desc)
	if d.FailImport != nil {
		return nil, d.FailImport
	}
	ext := *desc
	rec := &TextureRec{
		ID: d.id(),
		Desc: gpu.TextureDescriptor{
			Label:         desc.Label,
			Size:          desc.Size,
			MipLevelCount: desc.MipLevelCount,
			SampleCount:   desc.SampleCount,
			Format:        desc.Format,
			Usage:         desc.Usage,
		},
		External: &ext,
	}
	d.Textures = append(d.Textures, rec)
	return rec, nil
}

// LiveTextures counts textures created but not yet destroyed.
func (d *Device) LiveTextures() int {
	n := 0
	for _, t := range d.Textures {
		if !t.Destroyed {
			n++
		}
	}
	return n
}

// LiveSamplers counts samplers created but not yet destroyed.
func (d *Device) LiveSamplers() int {
	n := 0
	for _, s := range d.Samplers {
		if !s.Destroyed {
			n++
		}
	}
	return n
}

// WriteRec records one Queue.WriteTexture call.
type WriteRec struct {
	Dst     *TextureRec
	DataLen int
	Layout  gpu.ImageDataLayout
	Size    gpu.Extent3D
}

// Queue is a fake gpu.Queue. The zero value is ready to use.
type Queue struct {
	Writes     []WriteRec
	Submitted  int
	FailSubmit error
}

func (q *Queue) WriteTexture(dst *gpu.ImageCopyTexture, data []byte, layout *gpu.ImageDataLayout, size *gpu.Extent3D) {
	rec, _ := dst.Texture.(*TextureRec)
	q.Writes = append(q.Writes, WriteRec{
		Dst:     rec,
		DataLen: len(data),
		Layout:  *layout,
		Size:    *size,
	})
}

func (q *Queue) Submit(buffers ...gpu.CommandBuffer) error {
	if q.FailSubmit != nil {
		return q.FailSubmit
	}
	q.Submitted += len(buffers)
	return nil
}

// CopyRec records one texture-to-texture copy.
type CopyRec struct {
	Src, Dst *TextureRec
	Size     gpu.Extent3D
}

// Encoder is the fake gpu.CommandEncoder. Finish returns the encoder
// itself as the command buffer.
type Encoder struct {
	Label    string
	Copies   []CopyRec
	Finished bool
}

func (e *Encoder) CopyTextureToTexture(src, dst *gpu.ImageCopyTexture, size *gpu.Extent3D) {
	s, _ := src.Texture.(*TextureRec)
	d, _ := dst.Texture.(*TextureRec)
	e.Copies = append(e.Copies, CopyRec{Src: s, Dst: d, Size: *size})
}

func (e *Encoder) Finish() (gpu.CommandBuffer, error) {
	e.Finished = true
	return e, nil
}

// NewContext returns a gpu.Context backed by fresh fakes, plus the fakes
// themselves for assertions.
func NewContext() (*gpu.Context, *Device, *Queue) {
	d := &Device{}
	q := &Queue{}
	return &gpu.Context{Device: d, Queue: q}, d, q
}
