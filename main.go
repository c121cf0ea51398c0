package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/audio-tunnel/internal/config"
	"github.com/iburimskiy/audio-tunnel/internal/game"
	"github.com/iburimskiy/audio-tunnel/internal/rng"
	"github.com/iburimskiy/audio-tunnel/internal/synth"
	"github.com/iburimskiy/audio-tunnel/internal/term"
)

func main() {
	flag.Parse()

	logFile, err := setupLogging(*backendFlag, *logFileFlag, *debugFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("open log file")
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if *writeConfigFlag != "" {
		def := config.Default()
		if err := config.Save(*writeConfigFlag, &def); err != nil {
			log.Fatal().Err(err).Str("path", *writeConfigFlag).Msg("write config")
		}
		log.Info().Str("path", *writeConfigFlag).Msg("default config written")
		return
	}

	path := *configFlag
	if *pickConfigFlag {
		if path, err = pickConfig(); err != nil {
			log.Warn().Err(err).Msg("config dialog failed; using defaults")
		}
	}
	cfg := loadConfig(path)
	applyFlags(flag.CommandLine, &cfg)
	if err := cfg.Validate(); err != nil {
		log.Warn().Err(err).Msg("flags produced an invalid config; using defaults")
		cfg = config.Default()
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := rng.New(seed)
	log.Debug().Int64("seed", seed).Str("backend", *backendFlag).Msg("starting")

	var (
		out synth.Output
		tap *synth.Tap
	)
	if cfg.Sound.Enabled {
		so := synth.NewSpeakerOutput(cfg.Sound)
		out, tap = so, so.Tap()
	}
	engine := synth.NewEngine(out, cfg.Sound, src, log.Logger)
	if *muteFlag {
		engine.SetMuted(true)
	}

	ctrl := game.NewController(cfg, src, engine, log.Logger)
	ctrl.Start(time.Now())

	switch *backendFlag {
	case "terminal":
		err = runTerminal(ctrl, engine, cfg.Frame.TargetFPS)
	default:
		if *backendFlag != "ebiten" {
			log.Warn().Str("backend", *backendFlag).Msg("unknown backend; using ebiten")
		}
		err = runWindow(ctrl, engine, tap, cfg.Frame.TargetFPS)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("tunnel exited")
	}
}

// setupLogging installs the global console logger. The terminal backend
// owns the tty, so its logs go to a file or nowhere.
func setupLogging(backend, path string, debug bool) (*os.File, error) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	var f *os.File
	if path != "" {
		var err error
		if f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, err
		}
		out = f
	} else if backend == "terminal" {
		out = io.Discard
	}
	log.Logger = log.Output(out)
	return f, nil
}

func pickConfig() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Open Tunnel Config"),
		zenity.FileFilters{{
			Name:     "YAML",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}

// loadConfig never fails: a missing or broken file falls back to defaults.
func loadConfig(path string) config.Config {
	if path == "" {
		return config.Default()
	}
	c, err := config.Load(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config load failed; using defaults")
		return config.Default()
	}
	log.Info().Str("path", path).Msg("config loaded")
	return *c
}

func runWindow(ctrl *game.Controller, audio game.Audio, tap *synth.Tap, fps float64) error {
	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle("Audio Tunnel - Space: start/stop, M: mute, F1: HUD, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if fps > 0 {
		ebiten.SetTPS(int(math.Ceil(fps)))
	}

	g := game.NewGame(ctrl, audio, tap, *debugFlag)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(ctrl *game.Controller, audio game.Audio, fps float64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return term.Run(ctx, screen, ctrl, audio, fps, *debugFlag)
}
