package main

import (
	"flag"

	"github.com/iburimskiy/audio-tunnel/internal/config"
)

// Command-line flags. Values given explicitly on the command line override
// whatever the config file says.
var (
	// configFlag points at a YAML config; empty means built-in defaults.
	configFlag = flag.String("config", "", "path to a YAML config file")

	// pickConfigFlag opens a native file dialog to choose the config.
	pickConfigFlag = flag.Bool("pick-config", false, "choose the config file with a file dialog")

	// writeConfigFlag dumps the default config to a file and exits.
	writeConfigFlag = flag.String("write-config", "", "write the default config to this path and exit")

	backendFlag = flag.String("backend", "ebiten", "renderer: ebiten | terminal")

	// seedFlag fixes the random source; 0 seeds from the clock.
	seedFlag = flag.Int64("seed", 0, "random seed for geometry, stars and sound (0 = time based)")

	fpsFlag = flag.Float64("fps", 60, "target frames per second (0 = uncapped)")

	muteFlag = flag.Bool("mute", false, "start with sound muted")

	// autoplayFlag lets the first ring recycle open the audio device
	// without waiting for a click or key press.
	autoplayFlag = flag.Bool("autoplay", false, "open audio without waiting for a user gesture")

	widthFlag  = flag.Int("width", config.WindowWidth, "initial window width")
	heightFlag = flag.Int("height", config.WindowHeight, "initial window height")

	// debugFlag enables debug logging and the HUD overlay.
	debugFlag = flag.Bool("debug", false, "debug logging and HUD overlay")

	logFileFlag = flag.String("log-file", "", "write logs to this file (the terminal backend discards them otherwise)")
)

// applyFlags copies explicitly set flags over cfg.
func applyFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fps":
			cfg.Frame.TargetFPS = *fpsFlag
		case "autoplay":
			cfg.Sound.RequireGesture = !*autoplayFlag
		}
	})
}
