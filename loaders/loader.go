// Package loaders acquires desktop screen content as GPU textures.
//
// A Loader is one capture strategy: zero-copy import of a producer's
// shared texture, OS screen duplication, or a plain pixel-copy
// fallback. Loaders are held in priority order by a Selector, which
// polls for invalidation every tick and periodically probes whether a
// better strategy became available.
package loaders

import (
	"errors"
	"time"

	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/texture"
)

var (
	// ErrNoSource indicates the loader found nothing to capture.
	ErrNoSource = errors.New("loaders: no capturable source")
	// ErrNotSupported indicates the strategy is unavailable on this
	// platform.
	ErrNotSupported = errors.New("loaders: not supported on this platform")
	// ErrStaleHandle indicates the producer's handle no longer
	// resolves; a fresh Load is required.
	ErrStaleHandle = errors.New("loaders: stale source handle")
)

// AcquireTimeout bounds every per-tick wait inside Update. A loader
// stall stops frame pacing entirely, so waits are never unbounded.
const AcquireTimeout = 8 * time.Millisecond

// StereoMode describes how a captured frame packs stereo views.
type StereoMode int

const (
	StereoModeMono StereoMode = iota
	StereoModeSideBySide
	StereoModeTopAndBottom
	StereoModeFullSideBySide
	StereoModeFullTopAndBottom
)

func (m StereoMode) String() string {
	switch m {
	case StereoModeMono:
		return "mono"
	case StereoModeSideBySide:
		return "sbs"
	case StereoModeTopAndBottom:
		return "tab"
	case StereoModeFullSideBySide:
		return "full-sbs"
	case StereoModeFullTopAndBottom:
		return "full-tab"
	default:
		return "unknown"
	}
}

// AspectMultiplier is the factor applied to width/height when a frame
// carries both eyes: side-by-side frames are half as wide per eye,
// top-and-bottom frames twice as tall.
func (m StereoMode) AspectMultiplier() float32 {
	switch m {
	case StereoModeSideBySide, StereoModeFullSideBySide:
		return 0.5
	case StereoModeTopAndBottom, StereoModeFullTopAndBottom:
		return 2
	default:
		return 1
	}
}

// TextureSource is a successfully loaded screen texture plus the
// layout metadata the compositor needs.
type TextureSource struct {
	Texture *texture.Texture2D
	Width   uint32
	Height  uint32
	Stereo  StereoMode
}

// AspectRatio reports the per-eye display aspect ratio.
func (s *TextureSource) AspectRatio() float32 {
	if s.Height == 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height) * s.Stereo.AspectMultiplier()
}

// Loader is one capture backend. Lifecycle: Load (first acquisition,
// may allocate and import), then a steady-state loop of IsInvalid
// (cheap, every tick) and Update (refresh), then Close releasing every
// OS resource the loader opened. Once IsInvalid reports true, Update
// must not be called again until a fresh Load succeeds.
type Loader interface {
	// Name identifies the strategy in logs.
	Name() string

	// Load performs the first acquisition and returns an unbound
	// screen texture. Expensive; called on selection and reacquire
	// only.
	Load(ctx *gpu.Context) (*TextureSource, error)

	// Update refreshes the bound texture. Cheap; called every tick.
	// Push-style sources upload new pixels here; import-style sources
	// only re-check the producer's handle and flag invalidation.
	Update(ctx *gpu.Context, tex *texture.Bound) error

	// IsInvalid reports whether the source characteristics changed
	// (resolution, producer cycling its buffer, producer exit). O(1),
	// safe every frame.
	IsInvalid() bool

	// EncodePrePass records GPU commands needed before the main
	// render pass. Most backends no-op.
	EncodePrePass(enc gpu.CommandEncoder, tex *texture.Bound) error

	// Close releases all OS resources owned by the loader.
	Close() error
}
