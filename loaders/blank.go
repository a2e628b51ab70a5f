package loaders

import (
	_ "embed"
	"fmt"

	"github.com/vrscreencap/vrscreencap/gpu"
	"github.com/vrscreencap/vrscreencap/texture"
)

// blankGrey is the placeholder art shown when nothing can be captured.
//
//go:embed assets/blank_grey.png
var blankGrey []byte

// Blank always succeeds and never invalidates. It returns a grey
// placeholder texture so the pipeline always has something to display,
// and doubles as a hardware-independent deterministic baseline in tests.
type Blank struct{}

// NewBlank returns the fallback loader.
func NewBlank() *Blank { return &Blank{} }

func (*Blank) Name() string { return "blank" }

// Load decodes the embedded placeholder. The source always reports a
// 1x1 extent no matter the art's actual size.
func (*Blank) Load(ctx *gpu.Context) (*TextureSource, error) {
	tex, err := texture.FromBytes(ctx, "blank screen", blankGrey)
	if err != nil {
		return nil, fmt.Errorf("loaders: blank texture: %w", err)
	}
	return &TextureSource{Texture: tex, Width: 1, Height: 1, Stereo: StereoModeMono}, nil
}

func (*Blank) Update(ctx *gpu.Context, tex *texture.Bound) error { return nil }

func (*Blank) IsInvalid() bool { return false }

func (*Blank) EncodePrePass(enc gpu.CommandEncoder, tex *texture.Bound) error { return nil }

func (*Blank) Close() error { return nil }
