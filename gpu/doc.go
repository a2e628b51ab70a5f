// Package gpu defines the narrow device abstraction the capture pipeline
// renders against.
//
// The interfaces here are consumer-side: they name only the operations the
// pipeline actually performs (texture creation, uploads, copies, bind
// groups), not the full surface of any particular graphics API. The
// backend/wgpu package adapts gogpu/wgpu's hal to these interfaces;
// gpu/gputest provides an in-memory fake for tests.
//
// Optional capabilities (external image import, raw Vulkan handle access)
// are expressed as separate interfaces discovered by type assertion, so a
// backend that cannot provide them degrades gracefully.
package gpu
