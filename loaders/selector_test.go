package loaders

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/gpu/gputest"
	"github.com/vrscreencap/vrscreencap/texture"
)

type fakeLoader struct {
	name    string
	loadErr error

	loadCalls    int
	updateCalls  int
	prePassCalls int
	updateErr    error
	invalid      bool
	closed       bool
}

func (f *fakeLoader) Name() string { return f.name }

func (f *fakeLoader) Load(ctx *gpu.Context) (*TextureSource, error) {
	f.loadCalls++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	tex, err := texture.New(ctx.Device, f.name,
		gpu.Extent3D{Width: 64, Height: 32, DepthOrArrayLayers: 1},
		gputypes.TextureFormatBGRA8Unorm, gpu.DefaultTextureUsage)
	if err != nil {
		return nil, err
	}
	f.invalid = false
	return &TextureSource{Texture: tex, Width: 64, Height: 32, Stereo: StereoModeMono}, nil
}

func (f *fakeLoader) Update(ctx *gpu.Context, tex *texture.Bound) error {
	f.updateCalls++
	return f.updateErr
}

func (f *fakeLoader) IsInvalid() bool { return f.invalid }

func (f *fakeLoader) EncodePrePass(enc gpu.CommandEncoder, tex *texture.Bound) error {
	f.prePassCalls++
	return nil
}

func (f *fakeLoader) Close() error {
	f.closed = true
	return nil
}

func newTestSelector(t *testing.T, ls ...Loader) (*Selector, *gpu.Context, *gputest.Device) {
	t.Helper()
	ctx, dev, _ := gputest.NewContext()
	layout, err := texture.DefaultBindGroupLayout(ctx.Device)
	if err != nil {
		t.Fatalf("DefaultBindGroupLayout: %v", err)
	}
	return NewSelector(layout, ls...), ctx, dev
}

func TestSelectorPicksFirstSuccess(t *testing.T) {
	a := &fakeLoader{name: "a", loadErr: errors.New("unavailable")}
	b := &fakeLoader{name: "b"}
	c := &fakeLoader{name: "c"}
	s, ctx, _ := newTestSelector(t, a, b, c)

	s.Tick(ctx, time.Now())

	if s.Active() != b {
		t.Fatalf("active = %v, want b", s.Active())
	}
	if a.loadCalls != 1 {
		t.Errorf("a.loadCalls = %d, want 1", a.loadCalls)
	}
	if c.loadCalls != 0 {
		t.Errorf("c tried after b succeeded: loadCalls = %d", c.loadCalls)
	}
	if s.Bound() == nil {
		t.Error("no bound texture after selection")
	}
}

func TestSelectorInvalidationRetriesSameLoaderFirst(t *testing.T) {
	a := &fakeLoader{name: "a", loadErr: errors.New("unavailable")}
	b := &fakeLoader{name: "b"}
	s, ctx, _ := newTestSelector(t, a, b)

	now := time.Now()
	s.Tick(ctx, now)
	if s.Active() != b {
		t.Fatalf("active = %v, want b", s.Active())
	}
	aLoads := a.loadCalls

	b.invalid = true
	s.Tick(ctx, now.Add(time.Millisecond))

	if s.Active() != b {
		t.Fatalf("active after reacquire = %v, want b", s.Active())
	}
	if b.loadCalls != 2 {
		t.Errorf("b.loadCalls = %d, want 2", b.loadCalls)
	}
	if a.loadCalls != aLoads {
		t.Errorf("full scan ran before same-loader retry: a.loadCalls %d -> %d",
			aLoads, a.loadCalls)
	}
}

func TestSelectorInvalidationFallsBackToScan(t *testing.T) {
	a := &fakeLoader{name: "a", loadErr: errors.New("unavailable")}
	b := &fakeLoader{name: "b"}
	c := &fakeLoader{name: "c"}
	s, ctx, dev := newTestSelector(t, a, b, c)

	now := time.Now()
	s.Tick(ctx, now)
	if s.Active() != b {
		t.Fatalf("active = %v, want b", s.Active())
	}

	b.invalid = true
	b.loadErr = errors.New("producer gone")
	s.Tick(ctx, now.Add(time.Millisecond))

	if s.Active() != c {
		t.Fatalf("active = %v, want c", s.Active())
	}
	// Exactly one live texture: c's. b's was destroyed on invalidation.
	if n := dev.LiveTextures(); n != 1 {
		t.Errorf("live textures = %d, want 1", n)
	}
}

func TestSelectorUpgradeScan(t *testing.T) {
	a := &fakeLoader{name: "a", loadErr: errors.New("unavailable")}
	b := &fakeLoader{name: "b"}
	s, ctx, dev := newTestSelector(t, a, b)

	now := time.Now()
	s.Tick(ctx, now)
	if s.Active() != b {
		t.Fatalf("active = %v, want b", s.Active())
	}

	// Below the interval nothing is probed.
	a.loadErr = nil
	s.Tick(ctx, now.Add(time.Second))
	if s.Active() != b || a.loadCalls != 1 {
		t.Fatalf("premature upgrade: active=%v a.loadCalls=%d", s.Active(), a.loadCalls)
	}

	s.Tick(ctx, now.Add(DefaultUpgradeInterval+time.Second))
	if s.Active() != a {
		t.Fatalf("active = %v, want a after upgrade", s.Active())
	}
	if n := dev.LiveTextures(); n != 1 {
		t.Errorf("live textures = %d, want 1 (old destroyed after swap)", n)
	}
}

func TestSelectorUpgradeScanStopsAtActive(t *testing.T) {
	a := &fakeLoader{name: "a", loadErr: errors.New("unavailable")}
	b := &fakeLoader{name: "b"}
	c := &fakeLoader{name: "c"}
	s, ctx, _ := newTestSelector(t, a, b, c)

	now := time.Now()
	s.Tick(ctx, now)
	s.Tick(ctx, now.Add(DefaultUpgradeInterval+time.Second))

	// The upgrade probe covers only loaders strictly above b.
	if b.loadCalls != 1 {
		t.Errorf("b re-probed while active: loadCalls = %d", b.loadCalls)
	}
	if c.loadCalls != 0 {
		t.Errorf("lower-priority c probed: loadCalls = %d", c.loadCalls)
	}
	if a.loadCalls != 2 {
		t.Errorf("a.loadCalls = %d, want 2", a.loadCalls)
	}
}

func TestSelectorUpdateRunsEveryTick(t *testing.T) {
	b := &fakeLoader{name: "b"}
	s, ctx, _ := newTestSelector(t, b)

	now := time.Now()
	s.Tick(ctx, now)
	s.Tick(ctx, now.Add(time.Millisecond))
	s.Tick(ctx, now.Add(2*time.Millisecond))

	if b.updateCalls != 2 {
		t.Errorf("updateCalls = %d, want 2", b.updateCalls)
	}
}

func TestSelectorUpdateErrorForcesReacquire(t *testing.T) {
	b := &fakeLoader{name: "b"}
	s, ctx, _ := newTestSelector(t, b)

	now := time.Now()
	s.Tick(ctx, now)
	b.updateErr = errors.New("upload failed")
	s.Tick(ctx, now.Add(time.Millisecond))

	if s.Active() != b {
		t.Fatalf("active = %v, want b reacquired", s.Active())
	}
	if b.loadCalls != 2 {
		t.Errorf("b.loadCalls = %d, want 2", b.loadCalls)
	}
}

func TestSelectorRequestReload(t *testing.T) {
	b := &fakeLoader{name: "b"}
	s, ctx, _ := newTestSelector(t, b)

	now := time.Now()
	s.Tick(ctx, now)
	s.RequestReload()
	s.Tick(ctx, now.Add(time.Millisecond))

	if b.loadCalls != 2 {
		t.Errorf("b.loadCalls = %d, want 2 after reload request", b.loadCalls)
	}
}

func TestSelectorNoUsableLoader(t *testing.T) {
	a := &fakeLoader{name: "a", loadErr: errors.New("unavailable")}
	s, ctx, dev := newTestSelector(t, a)

	s.Tick(ctx, time.Now())

	if s.Active() != nil {
		t.Errorf("active = %v, want nil", s.Active())
	}
	if s.Bound() != nil {
		t.Error("bound texture without an active loader")
	}
	if n := dev.LiveTextures(); n != 0 {
		t.Errorf("live textures = %d, want 0", n)
	}
}

func TestSelectorBlankBaseline(t *testing.T) {
	a := &fakeLoader{name: "a", loadErr: errors.New("unavailable")}
	s, ctx, _ := newTestSelector(t, a, NewBlank())

	s.Tick(ctx, time.Now())

	if s.Active() == nil || s.Active().Name() != "blank" {
		t.Fatalf("active = %v, want blank fallback", s.Active())
	}
	w, h := s.Size()
	if w != 1 || h != 1 {
		t.Errorf("size = %dx%d, want 1x1", w, h)
	}
}

func TestSelectorEncodePrePassDelegates(t *testing.T) {
	b := &fakeLoader{name: "b"}
	s, ctx, _ := newTestSelector(t, b)
	s.Tick(ctx, time.Now())

	enc, err := ctx.Device.CreateCommandEncoder("pre pass")
	if err != nil {
		t.Fatalf("CreateCommandEncoder: %v", err)
	}
	if err := s.EncodePrePass(enc); err != nil {
		t.Fatalf("EncodePrePass: %v", err)
	}
	if b.prePassCalls != 1 {
		t.Errorf("prePassCalls = %d, want 1", b.prePassCalls)
	}
}

func TestSelectorClose(t *testing.T) {
	a := &fakeLoader{name: "a", loadErr: errors.New("unavailable")}
	b := &fakeLoader{name: "b"}
	s, ctx, dev := newTestSelector(t, a, b)
	s.Tick(ctx, time.Now())

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("not all loaders closed")
	}
	if n := dev.LiveTextures(); n != 0 {
		t.Errorf("live textures after Close = %d, want 0", n)
	}
}
