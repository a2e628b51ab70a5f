package loaders

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/texture"
)

// FrameGrabber captures desktop pixels into system memory. It is the
// platform half of the pixel-copy fallback; tests inject fakes.
type FrameGrabber interface {
	// Geometry reports the current capture dimensions.
	Geometry() (width, height uint32, err error)
	// Grab returns the next frame as tightly packed BGRA, or nil when
	// no new frame arrived within the timeout.
	Grab(timeout time.Duration) ([]byte, error)
	// Close releases all capture resources.
	Close() error
}

// FrameCopy is the lower-performance fallback for platforms without
// zero-copy capture: pixels travel through system memory and are
// uploaded with a plain buffer-to-texture copy every tick.
type FrameCopy struct {
	grabber FrameGrabber
	width   uint32
	height  uint32
	invalid bool
}

// NewFrameCopy builds a pixel-copy loader over the given grabber. The
// loader takes ownership of the grabber.
func NewFrameCopy(g FrameGrabber) *FrameCopy {
	return &FrameCopy{grabber: g}
}

func (f *FrameCopy) Name() string { return "framecopy" }

func (f *FrameCopy) Load(ctx *gpu.Context) (*TextureSource, error) {
	w, h, err := f.grabber.Geometry()
	if err != nil {
		return nil, fmt.Errorf("loaders: framecopy geometry: %w", err)
	}
	tex, err := texture.New(ctx.Device, "framecopy screen",
		gpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst,
	)
	if err != nil {
		return nil, fmt.Errorf("loaders: framecopy texture: %w", err)
	}
	if data, err := f.grabber.Grab(AcquireTimeout); err == nil && data != nil {
		tex.WritePixels(ctx.Queue, data, 4*w)
	}
	f.width, f.height = w, h
	f.invalid = false
	return &TextureSource{Texture: tex, Width: w, Height: h, Stereo: StereoModeMono}, nil
}

func (f *FrameCopy) Update(ctx *gpu.Context, tex *texture.Bound) error {
	w, h, err := f.grabber.Geometry()
	if err != nil {
		f.invalid = true
		return nil
	}
	if w != f.width || h != f.height {
		f.invalid = true
		return nil
	}
	data, err := f.grabber.Grab(AcquireTimeout)
	if err != nil {
		return fmt.Errorf("loaders: framecopy grab: %w", err)
	}
	if data == nil {
		return nil
	}
	tex.WritePixels(ctx.Queue, data, 4*w)
	return nil
}

func (f *FrameCopy) IsInvalid() bool { return f.invalid }

func (f *FrameCopy) EncodePrePass(enc gpu.CommandEncoder, tex *texture.Bound) error { return nil }

func (f *FrameCopy) Close() error { return f.grabber.Close() }
