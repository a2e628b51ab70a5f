package gpu

import "errors"

// Sentinel errors shared by backends.
var (
	// ErrDeviceLost indicates the underlying device became unusable.
	ErrDeviceLost = errors.New("gpu: device lost")
	// ErrInvalidHandle indicates a handle argument did not originate from
	// this backend.
	ErrInvalidHandle = errors.New("gpu: invalid resource handle")
	// ErrImportUnsupported indicates the backend cannot import external
	// images on this platform.
	ErrImportUnsupported = errors.New("gpu: external image import not supported")
)

// Opaque resource handles. Each backend returns its own concrete values;
// callers must not depend on the dynamic type. Distinct named types keep
// call sites readable even though the compiler cannot tell them apart.
type (
	// Texture is a device image.
	Texture interface{}
	// TextureView is a shader-visible view over a Texture.
	TextureView interface{}
	// Sampler configures texture filtering and addressing.
	Sampler interface{}
	// BindGroupLayout describes the shape of a BindGroup.
	BindGroupLayout interface{}
	// BindGroup binds concrete resources for a draw.
	BindGroup interface{}
	// CommandBuffer is a finished, submittable recording.
	CommandBuffer interface{}
)

// Device creates and destroys GPU resources.
//
// All methods are single-threaded: the capture pipeline runs on one
// goroutine and backends are not required to synchronize.
type Device interface {
	CreateTexture(desc *TextureDescriptor) (Texture, error)
	CreateTextureView(tex Texture, desc *TextureViewDescriptor) (TextureView, error)
	CreateSampler(desc *SamplerDescriptor) (Sampler, error)
	CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) (BindGroupLayout, error)
	CreateBindGroup(desc *BindGroupDescriptor) (BindGroup, error)
	CreateCommandEncoder(label string) (CommandEncoder, error)

	DestroyTexture(tex Texture)
	DestroySampler(s Sampler)
	DestroyBindGroup(bg BindGroup)
}

// Queue uploads data and submits recorded work.
type Queue interface {
	// WriteTexture schedules a CPU-to-GPU copy of data into dst.
	WriteTexture(dst *ImageCopyTexture, data []byte, layout *ImageDataLayout, size *Extent3D)
	// Submit executes the given command buffers in order.
	Submit(buffers ...CommandBuffer) error
}

// CommandEncoder records GPU-to-GPU transfer work.
type CommandEncoder interface {
	CopyTextureToTexture(src, dst *ImageCopyTexture, size *Extent3D)
	// Finish closes the recording. The encoder must not be reused after.
	Finish() (CommandBuffer, error)
}

// Context bundles the handles a loader needs to produce textures.
type Context struct {
	Device Device
	Queue  Queue
}

// ExternalImporter is implemented by devices that can adopt a GPU image
// created by another process via an OS shared handle. Discover it with a
// type assertion on Device:
//
//	imp, ok := dev.(gpu.ExternalImporter)
type ExternalImporter interface {
	// ImportExternalImage wraps the shared image described by desc as a
	// Texture without copying pixel data. The returned texture is owned by
	// this device and must be released with DestroyTexture.
	ImportExternalImage(desc *ExternalImageDescriptor) (Texture, error)
}
