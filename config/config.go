// Package config loads and watches runtime options: screen placement
// parameters consumed by the compositor and capture settings consumed by
// the loader stack. Values come from defaults, then a JSON or TOML config
// file, then VRSCREENCAP_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config is the full set of runtime options.
type Config struct {
	// XCurvature is the maximum screen depth at the center, in meters.
	XCurvature float32 `mapstructure:"x_curvature"`
	// YCurvature is the maximum vertical depth at the center, in meters.
	YCurvature float32 `mapstructure:"y_curvature"`
	// SwapEyes exchanges the left and right halves of stereo sources.
	// geo-11 emits them swapped on some GPUs.
	SwapEyes bool `mapstructure:"swap_eyes"`
	FlipX    bool `mapstructure:"flip_x"`
	FlipY    bool `mapstructure:"flip_y"`
	// Distance from the viewer in meters.
	Distance float32 `mapstructure:"distance"`
	// Scale is the screen width in meters.
	Scale float32 `mapstructure:"scale"`
	// Ambient enables the ambient dome behind the screen.
	Ambient bool `mapstructure:"ambient"`
	// CaptureOutput selects which display the desktop capture mirrors.
	CaptureOutput int `mapstructure:"capture_output"`
}

// ScreenParams is the shader-facing form of the screen options. Boolean
// toggles become 0/1 offsets so the uniform layout stays all-float.
type ScreenParams struct {
	XCurvature float32
	YCurvature float32
	EyeOffset  float32
	YOffset    float32
	XOffset    float32
}

// Params converts the config to its shader-facing form.
func (c *Config) Params() ScreenParams {
	p := ScreenParams{
		XCurvature: c.XCurvature,
		YCurvature: c.YCurvature,
	}
	if c.SwapEyes {
		p.EyeOffset = 1
	}
	if c.FlipY {
		p.YOffset = 1
	}
	if c.FlipX {
		p.XOffset = 1
	}
	return p
}

// Default returns the built-in option values.
func Default() *Config {
	return &Config{
		XCurvature: 0.4,
		YCurvature: 0.08,
		SwapEyes:   true,
		Distance:   20.0,
		Scale:      40.0,
	}
}

// Load reads the config file at cfgFile, or searches the standard
// locations when cfgFile is empty. A missing file is not an error; the
// defaults apply.
func Load(cfgFile string) (*Config, error) {
	cfg, _, err := load(cfgFile)
	return cfg, err
}

func load(cfgFile string) (*Config, *viper.Viper, error) {
	cfg := Default()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("vrscreencap")
		v.SetConfigType("json")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("VRSCREENCAP")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, fmt.Errorf("config: read: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return cfg, v, nil
}

func configDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("ProgramData"), "VRScreenCap")
	case "darwin":
		return "/Library/Application Support/VRScreenCap"
	default:
		return "/etc/vrscreencap"
	}
}
