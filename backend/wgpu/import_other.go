//go:build !windows

package wgpu

import "github.com/gogpu/wgpu/hal"

// externalState is empty off Windows; the device does not implement
// gpu.ExternalImporter and the capability assertion in exttex fails
// cleanly.
type externalState struct{}

func (externalState) release(hal.Texture) {}

func (externalState) close() {}

// RefreshImports is a no-op off Windows.
func (d *Device) RefreshImports() error { return nil }
