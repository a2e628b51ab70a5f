package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/vrscreencap/vrscreencap/gpu"
)

// NewContext opens the Vulkan HAL and returns a ready-to-use device and
// queue pair. Discrete adapters are preferred, then integrated ones, then
// whatever the driver enumerates first.
//
// Close the returned Device when done; it owns the HAL instance.
func NewContext() (*gpu.Context, *Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, nil, fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, nil, fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, fmt.Errorf("wgpu: no adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		for i := range adapters {
			if adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
				selected = &adapters[i]
				break
			}
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, fmt.Errorf("wgpu: open adapter %q: %w", selected.Info.Name, err)
	}

	dev := newDevice(instance, openDev.Device, openDev.Queue)
	ctx := &gpu.Context{Device: dev, Queue: dev.queueAdapter()}
	return ctx, dev, nil
}
