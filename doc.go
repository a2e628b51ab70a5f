// Package vrscreencap acquires desktop screen content as GPU textures for
// presentation inside a VR compositor.
//
// # Overview
//
// vrscreencap sits between capture producers (shared-memory game streams,
// OS desktop duplication, CPU frame grabbers) and a WebGPU-style renderer.
// It owns three concerns:
//
//   - translating pixel formats between the neutral format space and the
//     native spaces (WebGPU, Vulkan, DXGI) — see the format package
//   - importing externally produced GPU images zero-copy via OS shared
//     handles — see the exttex package
//   - selecting, monitoring, and hot-swapping the capture source at run
//     time — see the loaders package
//
// # Quick Start
//
//	import (
//	    "github.com/vrscreencap/vrscreencap/backend/wgpu"
//	    "github.com/vrscreencap/vrscreencap/loaders"
//	    "github.com/vrscreencap/vrscreencap/texture"
//	)
//
//	ctx, dev, err := wgpu.NewContext()
//	if err != nil { ... }
//	defer dev.Close()
//
//	layout, err := texture.DefaultBindGroupLayout(ctx.Device)
//	if err != nil { ... }
//
//	sel := loaders.NewSelector(layout, loaders.DefaultStack(0)...)
//	for running {
//	    sel.Tick(ctx, time.Now())
//	    if bound := sel.Bound(); bound != nil { ... }
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: format, texture, exttex, loaders, config
//   - GPU abstraction: gpu (interfaces), backend/wgpu (hal adapter)
//   - Internal: shmem (shared memory), d3d (Direct3D interop),
//     vkimport (Vulkan external-memory import)
package vrscreencap
