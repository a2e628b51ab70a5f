package loaders

import (
	"testing"
)

func TestStereoModeAspectMultiplier(t *testing.T) {
	tests := []struct {
		mode StereoMode
		want float32
	}{
		{StereoModeMono, 1},
		{StereoModeSideBySide, 0.5},
		{StereoModeFullSideBySide, 0.5},
		{StereoModeTopAndBottom, 2},
		{StereoModeFullTopAndBottom, 2},
	}
	for _, tt := range tests {
		if got := tt.mode.AspectMultiplier(); got != tt.want {
			t.Errorf("%v.AspectMultiplier() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestTextureSourceAspectRatio(t *testing.T) {
	src := &TextureSource{Width: 1920, Height: 1080, Stereo: StereoModeFullSideBySide}
	want := float32(1920) / float32(1080) * 0.5
	if got := src.AspectRatio(); got != want {
		t.Errorf("AspectRatio() = %v, want %v", got, want)
	}

	zero := &TextureSource{Width: 100, Height: 0}
	if got := zero.AspectRatio(); got != 1 {
		t.Errorf("AspectRatio() with zero height = %v, want 1", got)
	}
}

func TestStereoModeString(t *testing.T) {
	if got := StereoModeFullSideBySide.String(); got != "full-sbs" {
		t.Errorf("String() = %q, want %q", got, "full-sbs")
	}
	if got := StereoMode(99).String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}
