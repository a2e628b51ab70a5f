// Package d3d provides minimal Direct3D 11/12 interop for opening
// shared texture resources and duplicating desktop output. It speaks
// COM directly through syscall, no CGO.
package d3d

import (
	"errors"

	"github.com/vrscreencap/vrscreencap/format"
)

var (
	// ErrWaitTimeout indicates no new frame arrived within the timeout.
	ErrWaitTimeout = errors.New("d3d: wait timeout")
	// ErrAccessLost indicates the duplication session was invalidated
	// (mode change, desktop switch) and must be recreated.
	ErrAccessLost = errors.New("d3d: duplication access lost")
	// ErrNotSupported is returned on platforms without Direct3D.
	ErrNotSupported = errors.New("d3d: not supported on this platform")
)

// TextureInfo describes a shared texture resource.
type TextureInfo struct {
	Width       uint32
	Height      uint32
	ArraySize   uint32
	SampleCount uint32
	MipLevels   uint32
	Format      format.DXGIFormat
}
