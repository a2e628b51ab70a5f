// Package wgpu implements the gpu.Device and gpu.Queue interfaces on top
// of the gogpu/wgpu hardware abstraction layer.
//
// The backend opens the Vulkan HAL, preferring a discrete adapter, and
// exposes the subset of the device surface the capture pipeline needs:
// textures, views, samplers, bind groups and transfer-only command
// encoding.
//
// # External images
//
// On Windows the device additionally implements gpu.ExternalImporter.
// Shared Direct3D images are imported through a dedicated Vulkan device
// (see internal/vkimport) and mirrored into an ordinary HAL texture.
// The HAL does not expose a way to wrap a foreign VkImage, so the import
// is copy-through: each call to RefreshImports reads the current frame
// from the shared image and uploads it with Queue.WriteTexture. Callers
// drive RefreshImports once per tick, before encoding work that samples
// imported textures.
package wgpu
