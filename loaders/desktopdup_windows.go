//go:build windows

package loaders

import (
	"errors"
	"fmt"

	"github.com/vrscreencap/vrscreencap"
	"github.com/vrscreencap/vrscreencap/exttex"
	"github.com/vrscreencap/vrscreencap/format"
	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/internal/d3d"
	"github.com/vrscreencap/vrscreencap/texture"
)

// DesktopDuplication captures one display output through DXGI Desktop
// Duplication. The duplication session mirrors acquired frames into a
// shared D3D11 texture whose handle is imported once; per-tick Update
// only refreshes the mirror and watches for mode changes.
type DesktopDuplication struct {
	output int

	dev     *d3d.Device11
	dupl    *d3d.Duplication
	handle  uintptr // imported shared handle
	width   uint32
	height  uint32
	invalid bool
	loaded  bool
}

// NewDesktopDuplication captures the given output of the default
// adapter (0 is the primary display).
func NewDesktopDuplication(output int) *DesktopDuplication {
	return &DesktopDuplication{output: output}
}

func (l *DesktopDuplication) Name() string { return "desktop-duplication" }

// SetOutput retargets the loader to another display output. If the
// loader is live, the current session is flagged invalid so the next
// tick reacquires against the new output.
func (l *DesktopDuplication) SetOutput(output int) {
	if output == l.output {
		return
	}
	l.output = output
	l.invalid = true
}

func (l *DesktopDuplication) Load(ctx *gpu.Context) (*TextureSource, error) {
	if l.dev == nil {
		dev, err := d3d.NewDevice11()
		if err != nil {
			return nil, fmt.Errorf("loaders: desktop duplication: %w", err)
		}
		l.dev = dev
	}
	if l.dupl != nil {
		l.dupl.Close()
		l.dupl = nil
	}
	dupl, err := d3d.NewDuplication(l.dev, l.output)
	if err != nil {
		return nil, fmt.Errorf("loaders: desktop duplication: %w", err)
	}
	// Prime the mirror; a timeout just means the desktop is idle.
	if err := dupl.CaptureFrame(uint32(AcquireTimeout.Milliseconds())); err != nil &&
		!errors.Is(err, d3d.ErrWaitTimeout) {
		dupl.Close()
		return nil, fmt.Errorf("loaders: desktop duplication: %w", err)
	}

	w, h := dupl.Size()
	desc := exttex.Descriptor{
		Handle:      dupl.SharedHandle(),
		Source:      gpu.SourceD3D11,
		Width:       w,
		Height:      h,
		ArraySize:   1,
		MipLevels:   1,
		SampleCount: 1,
		Format:      format.FormatBGRA8Unorm,
	}
	tex, err := exttex.Import(ctx.Device, &desc, "desktop screen")
	if err != nil {
		dupl.Close()
		return nil, err
	}
	vrscreencap.Logger().Info("desktop duplication acquired",
		"output", l.output, "width", w, "height", h)
	l.dupl = dupl
	l.handle = desc.Handle
	l.width, l.height = w, h
	l.invalid = false
	l.loaded = true
	return &TextureSource{Texture: tex, Width: w, Height: h, Stereo: StereoModeMono}, nil
}

// Update refreshes the shared mirror with the latest desktop frame. A
// changed mode or a lost session flags invalidation; a new import only
// happens when the shared handle itself differs from the bound one.
func (l *DesktopDuplication) Update(ctx *gpu.Context, tex *texture.Bound) error {
	if l.dupl == nil {
		l.invalid = true
		return nil
	}
	err := l.dupl.CaptureFrame(uint32(AcquireTimeout.Milliseconds()))
	switch {
	case err == nil:
	case errors.Is(err, d3d.ErrWaitTimeout):
		// No desktop update this tick.
	case errors.Is(err, d3d.ErrAccessLost):
		l.invalid = true
		return nil
	default:
		return err
	}
	if w, h := l.dupl.Size(); w != l.width || h != l.height {
		l.invalid = true
		return nil
	}
	if l.dupl.SharedHandle() != l.handle {
		l.invalid = true
	}
	return nil
}

func (l *DesktopDuplication) IsInvalid() bool { return l.loaded && l.invalid }

func (l *DesktopDuplication) EncodePrePass(enc gpu.CommandEncoder, tex *texture.Bound) error {
	return nil
}

func (l *DesktopDuplication) Close() error {
	if l.dupl != nil {
		l.dupl.Close()
		l.dupl = nil
	}
	if l.dev != nil {
		l.dev.Close()
		l.dev = nil
	}
	l.loaded = false
	return nil
}
