package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.XCurvature != 0.4 || cfg.YCurvature != 0.08 {
		t.Errorf("curvature = %v/%v, want 0.4/0.08", cfg.XCurvature, cfg.YCurvature)
	}
	if !cfg.SwapEyes {
		t.Error("SwapEyes should default to true")
	}
	if cfg.FlipX || cfg.FlipY {
		t.Error("flips should default to false")
	}
	if cfg.Distance != 20.0 || cfg.Scale != 40.0 {
		t.Errorf("distance/scale = %v/%v, want 20/40", cfg.Distance, cfg.Scale)
	}
}

func TestParams(t *testing.T) {
	cfg := &Config{XCurvature: 0.4, YCurvature: 0.08, SwapEyes: true, FlipY: true}
	p := cfg.Params()
	if p.XCurvature != 0.4 || p.YCurvature != 0.08 {
		t.Errorf("curvature = %v/%v, want 0.4/0.08", p.XCurvature, p.YCurvature)
	}
	if p.EyeOffset != 1 {
		t.Errorf("EyeOffset = %v, want 1", p.EyeOffset)
	}
	if p.YOffset != 1 {
		t.Errorf("YOffset = %v, want 1", p.YOffset)
	}
	if p.XOffset != 0 {
		t.Errorf("XOffset = %v, want 0", p.XOffset)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrscreencap.json")
	data := `{"distance": 5.5, "flip_x": true, "swap_eyes": false, "capture_output": 1}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Distance != 5.5 {
		t.Errorf("Distance = %v, want 5.5", cfg.Distance)
	}
	if !cfg.FlipX {
		t.Error("FlipX should be true")
	}
	if cfg.SwapEyes {
		t.Error("SwapEyes should be overridden to false")
	}
	if cfg.CaptureOutput != 1 {
		t.Errorf("CaptureOutput = %d, want 1", cfg.CaptureOutput)
	}
	// Unset keys keep their defaults.
	if cfg.Scale != 40.0 {
		t.Errorf("Scale = %v, want default 40", cfg.Scale)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Distance != 20.0 {
		t.Errorf("Distance = %v, want default 20", cfg.Distance)
	}
}

func TestWatchDeliversReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrscreencap.json")
	if err := os.WriteFile(path, []byte(`{"distance": 10}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()
	if cfg.Distance != 10 {
		t.Fatalf("initial Distance = %v, want 10", cfg.Distance)
	}

	if err := os.WriteFile(path, []byte(`{"distance": 3}`), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case next := <-w.Changes():
		if next.Distance != 3 {
			t.Errorf("reloaded Distance = %v, want 3", next.Distance)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatchKeepsPreviousOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrscreencap.json")
	if err := os.WriteFile(path, []byte(`{"distance": 10}`), 0o600); err != nil {
		t.Fatal(err)
	}

	_, w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`{not json`), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Changes():
		t.Fatalf("unexpected config delivered: %+v", cfg)
	case <-time.After(2 * time.Second):
	}
}
