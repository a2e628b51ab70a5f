// Command vrscreencap runs the capture pipeline headlessly: it opens a
// GPU device, builds the platform loader stack, and keeps the selected
// screen texture current until interrupted. The VR session and the
// compositor consume the texture out of band; this process owns
// acquisition only.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vrscreencap/vrscreencap"
	"github.com/vrscreencap/vrscreencap/backend/wgpu"
	"github.com/vrscreencap/vrscreencap/config"
	"github.com/vrscreencap/vrscreencap/loaders"
	"github.com/vrscreencap/vrscreencap/texture"
)

var (
	version = "0.1.0"
	cfgFile string
	verbose bool
	output  int
	fps     int
)

var rootCmd = &cobra.Command{
	Use:   "vrscreencap",
	Short: "Desktop screen capture for VR compositors",
	Long:  `vrscreencap mirrors desktop or game content into GPU textures for presentation inside a VR compositor.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the capture pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCapture()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vrscreencap v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file to load and watch for live changes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	runCmd.Flags().IntVar(&output, "output", -1, "display output to capture (overrides config)")
	runCmd.Flags().IntVar(&fps, "fps", 60, "acquisition tick rate")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCapture() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	vrscreencap.SetLogger(logger)

	var (
		cfg     *config.Config
		watcher *config.Watcher
		changes <-chan *config.Config
		err     error
	)
	if cfgFile != "" {
		cfg, watcher, err = config.Watch(cfgFile)
		if err != nil {
			return err
		}
		defer watcher.Close()
		changes = watcher.Changes()
	} else {
		cfg, err = config.Load("")
		if err != nil {
			return err
		}
	}
	if output >= 0 {
		cfg.CaptureOutput = output
	}

	ctx, dev, err := wgpu.NewContext()
	if err != nil {
		return err
	}
	defer dev.Close()

	layout, err := texture.DefaultBindGroupLayout(ctx.Device)
	if err != nil {
		return err
	}

	sel := loaders.NewSelector(layout, loaders.DefaultStack(cfg.CaptureOutput)...)
	defer sel.Close()

	logger.Info("capture pipeline started",
		"version", version, "fps", fps, "output", cfg.CaptureOutput)
	logScreenParams(logger, cfg)

	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sigChan:
			logger.Info("shutting down")
			return nil
		case next := <-changes:
			applyConfig(logger, sel, cfg, next)
			cfg = next
		case now := <-ticker.C:
			sel.Tick(ctx, now)
			if err := dev.RefreshImports(); err != nil {
				logger.Warn("import refresh failed", "error", err)
			}
		}
	}
}

// applyConfig pushes a reloaded config into the running pipeline. Screen
// placement values only need logging; the compositor reads them from the
// config store. A changed capture output retargets the duplication
// loader and forces a reacquire.
func applyConfig(logger *slog.Logger, sel *loaders.Selector, old, next *config.Config) {
	logScreenParams(logger, next)
	if next.CaptureOutput == old.CaptureOutput {
		return
	}
	for _, l := range sel.Loaders() {
		if r, ok := l.(interface{ SetOutput(int) }); ok {
			r.SetOutput(next.CaptureOutput)
		}
	}
	sel.RequestReload()
	logger.Info("capture output changed",
		"from", old.CaptureOutput, "to", next.CaptureOutput)
}

func logScreenParams(logger *slog.Logger, cfg *config.Config) {
	p := cfg.Params()
	logger.Info("screen parameters",
		"distance", cfg.Distance, "scale", cfg.Scale,
		"x_curvature", p.XCurvature, "y_curvature", p.YCurvature,
		"swap_eyes", cfg.SwapEyes, "flip_x", cfg.FlipX, "flip_y", cfg.FlipY,
		"ambient", cfg.Ambient)
}
