package loaders

import (
	"sync/atomic"
	"time"

	"github.com/vrscreencap/vrscreencap"
	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/texture"
)

// DefaultUpgradeInterval is how often the selector probes whether a
// higher-priority loader became usable.
const DefaultUpgradeInterval = 10 * time.Second

// Selector owns a fixed-priority loader stack and the currently active
// screen texture. Tick drives the whole protocol: invalidation polling
// on the active loader every call, per-tick refresh, and a throttled
// upgrade scan of higher-priority loaders.
//
// Tick runs on the render thread; only RequestReload is safe to call
// from other goroutines.
type Selector struct {
	loaders []Loader
	layout  gpu.BindGroupLayout

	active int // index into loaders, -1 when none
	bound  *texture.Bound
	width  uint32
	height uint32
	stereo StereoMode

	upgradeInterval time.Duration
	lastUpgrade     time.Time
	reload          atomic.Bool
}

// NewSelector builds a selector over loaders in priority order
// (highest first). The layout is the 2-slot texture+sampler binding
// layout every bound screen texture uses.
func NewSelector(layout gpu.BindGroupLayout, ls ...Loader) *Selector {
	return &Selector{
		loaders:         ls,
		layout:          layout,
		active:          -1,
		upgradeInterval: DefaultUpgradeInterval,
	}
}

// SetUpgradeInterval overrides the upgrade probe interval. Zero probes
// every tick.
func (s *Selector) SetUpgradeInterval(d time.Duration) { s.upgradeInterval = d }

// Active returns the currently selected loader, or nil.
func (s *Selector) Active() Loader {
	if s.active < 0 {
		return nil
	}
	return s.loaders[s.active]
}

// Loaders returns the stack in priority order, for configuration that
// must reach individual loaders. The slice is the selector's own;
// callers must not reorder it.
func (s *Selector) Loaders() []Loader { return s.loaders }

// Bound returns the active bound screen texture, or nil.
func (s *Selector) Bound() *texture.Bound { return s.bound }

// Stereo reports the active source's stereo layout.
func (s *Selector) Stereo() StereoMode { return s.stereo }

// Size reports the active source's dimensions.
func (s *Selector) Size() (width, height uint32) { return s.width, s.height }

// AspectRatio reports the active source's per-eye aspect ratio.
func (s *Selector) AspectRatio() float32 {
	src := TextureSource{Width: s.width, Height: s.height, Stereo: s.stereo}
	return src.AspectRatio()
}

// RequestReload forces an invalidation pass on the next Tick. Safe
// from any goroutine.
func (s *Selector) RequestReload() { s.reload.Store(true) }

// Tick advances the protocol by one frame: polls invalidation, updates
// the active texture, and (on the upgrade interval) probes loaders
// strictly above the active one. It never fails hard; a tick with no
// usable loader leaves the selector inactive until a later tick
// succeeds.
func (s *Selector) Tick(ctx *gpu.Context, now time.Time) {
	forced := s.reload.Swap(false)

	if s.active >= 0 {
		l := s.loaders[s.active]
		if forced || l.IsInvalid() {
			// Retry the same loader before falling back to the scan.
			vrscreencap.Logger().Info("screen source invalidated", "loader", l.Name())
			idx := s.active
			s.clearActive()
			if s.activate(ctx, idx) {
				s.lastUpgrade = now
				return
			}
		} else {
			if err := l.Update(ctx, s.bound); err != nil {
				vrscreencap.Logger().Warn("screen update failed",
					"loader", l.Name(), "error", err)
				s.clearActive()
			}
		}
	}

	switch {
	case s.active < 0:
		s.scan(ctx, len(s.loaders))
		s.lastUpgrade = now
	case now.Sub(s.lastUpgrade) >= s.upgradeInterval:
		s.scan(ctx, s.active)
		s.lastUpgrade = now
	}
}

// EncodePrePass records the active loader's pre-pass commands.
func (s *Selector) EncodePrePass(enc gpu.CommandEncoder) error {
	if s.active < 0 || s.bound == nil {
		return nil
	}
	return s.loaders[s.active].EncodePrePass(enc, s.bound)
}

// scan tries Load on loaders[0:limit] in priority order, stopping at
// the first success.
func (s *Selector) scan(ctx *gpu.Context, limit int) {
	for i := 0; i < limit && i < len(s.loaders); i++ {
		if s.activate(ctx, i) {
			return
		}
	}
}

// activate loads loaders[idx] and swaps it in. The previous texture is
// destroyed only after the new one fully exists.
func (s *Selector) activate(ctx *gpu.Context, idx int) bool {
	l := s.loaders[idx]
	src, err := l.Load(ctx)
	if err != nil {
		vrscreencap.Logger().Debug("loader unavailable", "loader", l.Name(), "error", err)
		return false
	}
	bound, err := src.Texture.Bind(s.layout)
	if err != nil {
		vrscreencap.Logger().Warn("screen texture bind failed",
			"loader", l.Name(), "error", err)
		src.Texture.Destroy()
		return false
	}
	old := s.bound
	s.bound = bound
	s.width, s.height = src.Width, src.Height
	s.stereo = src.Stereo
	s.active = idx
	if old != nil {
		old.Destroy()
	}
	vrscreencap.Logger().Info("screen source selected",
		"loader", l.Name(), "width", src.Width, "height", src.Height,
		"stereo", src.Stereo)
	return true
}

func (s *Selector) clearActive() {
	if s.bound != nil {
		s.bound.Destroy()
		s.bound = nil
	}
	s.active = -1
	s.width, s.height = 0, 0
	s.stereo = StereoModeMono
}

// Close tears down the active texture and every loader.
func (s *Selector) Close() error {
	s.clearActive()
	var firstErr error
	for _, l := range s.loaders {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
