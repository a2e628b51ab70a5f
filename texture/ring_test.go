package texture

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/gpu/gputest"
)

func TestNewAccumulationRing(t *testing.T) {
	dev := &gputest.Device{}
	layout, err := DefaultBindGroupLayout(dev)
	if err != nil {
		t.Fatal(err)
	}
	src := newTestTexture(t, dev)

	ring, err := NewAccumulationRing(src, layout, 3, 1.0)
	if err != nil {
		t.Fatalf("NewAccumulationRing() = %v", err)
	}
	if ring.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ring.Len())
	}
	// Source plus three targets.
	if n := dev.LiveTextures(); n != 4 {
		t.Errorf("LiveTextures() = %d, want 4", n)
	}
}

func TestNewAccumulationRingCleansUpOnFailure(t *testing.T) {
	dev := &gputest.Device{}
	layout, err := DefaultBindGroupLayout(dev)
	if err != nil {
		t.Fatal(err)
	}
	src, err := New(dev, "src", gpu.Extent3D{Width: 8, Height: 8}, gputypes.TextureFormatBGRA8Unorm, gpu.DefaultTextureUsage)
	if err != nil {
		t.Fatal(err)
	}

	dev.FailCreateBind = errors.New("boom")
	if _, err := NewAccumulationRing(src, layout, 3, 1.0); err == nil {
		t.Fatal("NewAccumulationRing() should fail")
	}
	// Only the source survives.
	if n := dev.LiveTextures(); n != 1 {
		t.Errorf("LiveTextures() = %d after failed ring, want 1 (source)", n)
	}
}

func TestEncodeAccumulate(t *testing.T) {
	dev := &gputest.Device{}
	layout, err := DefaultBindGroupLayout(dev)
	if err != nil {
		t.Fatal(err)
	}

	frameTex := newTestTexture(t, dev)
	frame, err := frameTex.Bind(layout)
	if err != nil {
		t.Fatal(err)
	}

	srcTex := newTestTexture(t, dev)
	ring, err := NewAccumulationRing(srcTex, layout, 2, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	enc := &gputest.Encoder{}
	EncodeAccumulate(enc, frame, ring)

	if len(enc.Copies) != 1 {
		t.Fatalf("Copies = %d, want 1", len(enc.Copies))
	}
	c := enc.Copies[0]
	if c.Src == nil || c.Dst == nil {
		t.Fatal("copy endpoints not recorded")
	}
	// Ring targets are half-size, so the copy clamps to them.
	if c.Size.Width != 32 || c.Size.Height != 16 {
		t.Errorf("copy size = %+v, want 32x16", c.Size)
	}
}
