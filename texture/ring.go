package texture

import (
	"fmt"

	"github.com/vrscreencap/vrscreencap/gpu"
)

// NewAccumulationRing builds a round-robin buffer of n bound render
// targets derived from src, each scaled by scale and bound against layout.
// On any failure the targets created so far are destroyed.
func NewAccumulationRing(src *Texture2D, layout gpu.BindGroupLayout, n int, scale float64) (*RoundRobin[*Bound], error) {
	targets := make([]*Bound, 0, n)
	destroyAll := func() {
		for _, b := range targets {
			b.Destroy()
		}
	}
	for i := 0; i < n; i++ {
		t, err := AsRenderTarget(src, fmt.Sprintf("%s accumulation %d", src.Label(), i), scale)
		if err != nil {
			destroyAll()
			return nil, err
		}
		b, err := t.Bind(layout)
		if err != nil {
			t.Destroy()
			destroyAll()
			return nil, err
		}
		targets = append(targets, b)
	}
	return NewRoundRobin(targets...), nil
}

// EncodeAccumulate records a copy of the current frame into the ring's
// next slot. The copy extent is clamped to the smaller of the two
// textures, so scaled rings stay in bounds.
func EncodeAccumulate(enc gpu.CommandEncoder, frame *Bound, ring *RoundRobin[*Bound]) {
	dst := ring.Next()
	size := frame.Size()
	if d := dst.Size(); d.Width < size.Width {
		size.Width = d.Width
	}
	if d := dst.Size(); d.Height < size.Height {
		size.Height = d.Height
	}
	size.DepthOrArrayLayers = 1
	enc.CopyTextureToTexture(
		&gpu.ImageCopyTexture{Texture: frame.Handle()},
		&gpu.ImageCopyTexture{Texture: dst.Handle()},
		&size,
	)
}
