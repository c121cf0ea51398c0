package synth

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/iburimskiy/audio-tunnel/internal/config"
	"github.com/iburimskiy/audio-tunnel/internal/rng"
)

// Stats is a snapshot of the engine counters for the HUD.
type Stats struct {
	State   State
	Played  uint64
	Skipped uint64
	Muted   bool

	// Active is the number of voices still sounding, when the output can
	// tell.
	Active int
}

// mixer is implemented by outputs that track their sounding voices.
type mixer interface {
	Voices() int
	Silence()
}

// Engine turns ring triggers into voices. It never queues: a trigger that
// arrives while the output is not running is dropped.
type Engine struct {
	out Output
	cfg config.Sound
	src rng.Source
	log zerolog.Logger

	muted   atomic.Bool
	warned  atomic.Bool
	played  atomic.Uint64
	skipped atomic.Uint64
}

func NewEngine(out Output, cfg config.Sound, src rng.Source, logger zerolog.Logger) *Engine {
	e := &Engine{
		out: out,
		cfg: cfg,
		src: src,
		log: logger.With().Str("component", "synth").Logger(),
	}
	e.muted.Store(!cfg.Enabled)
	return e
}

// Unlock is called on a user gesture and opens the output.
func (e *Engine) Unlock() {
	if e.out == nil || e.muted.Load() {
		return
	}
	e.resume()
}

func (e *Engine) resume() {
	if e.out.State() == Running {
		return
	}
	if err := e.out.Resume(); err != nil {
		if !e.warned.Swap(true) {
			e.log.Warn().Err(err).Msg("continuing without sound")
		}
		return
	}
	e.log.Debug().Int("sample_rate", int(e.out.SampleRate())).Msg("audio output running")
}

// Trigger plays one tone for a recycled ring. It reports whether a voice
// was started.
func (e *Engine) Trigger(tr Trigger) bool {
	if e.out == nil || e.muted.Load() {
		e.skipped.Add(1)
		return false
	}
	if e.out.State() == Suspended && !e.cfg.RequireGesture {
		e.resume()
	}
	if e.out.State() != Running {
		e.skipped.Add(1)
		return false
	}

	spec := PlanVoice(e.cfg, tr, e.src)
	e.out.Play(BuildVoice(spec, e.out.SampleRate()))
	e.played.Add(1)
	return true
}

// SetMuted mutes or unmutes. Muting cuts voices that are still sounding.
func (e *Engine) SetMuted(m bool) {
	e.muted.Store(m)
	if mx, ok := e.out.(mixer); ok && m {
		mx.Silence()
	}
}

// ToggleMute flips mute and returns the new state.
func (e *Engine) ToggleMute() bool {
	m := !e.muted.Load()
	e.SetMuted(m)
	return m
}

func (e *Engine) Stats() Stats {
	s := Stats{
		State:   Unavailable,
		Played:  e.played.Load(),
		Skipped: e.skipped.Load(),
		Muted:   e.muted.Load(),
	}
	if e.out != nil {
		s.State = e.out.State()
	}
	if mx, ok := e.out.(mixer); ok {
		s.Active = mx.Voices()
	}
	return s
}
