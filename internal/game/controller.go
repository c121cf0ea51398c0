// Package game wires the simulation together: it owns the per-tick pipeline
// and the ebiten window that drives it.
package game

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/iburimskiy/audio-tunnel/internal/clock"
	"github.com/iburimskiy/audio-tunnel/internal/config"
	"github.com/iburimskiy/audio-tunnel/internal/input"
	"github.com/iburimskiy/audio-tunnel/internal/phase"
	"github.com/iburimskiy/audio-tunnel/internal/render"
	"github.com/iburimskiy/audio-tunnel/internal/rng"
	"github.com/iburimskiy/audio-tunnel/internal/stars"
	"github.com/iburimskiy/audio-tunnel/internal/synth"
	"github.com/iburimskiy/audio-tunnel/internal/tunnel"
)

// Voicer receives one trigger per recycled ring.
type Voicer interface {
	Trigger(synth.Trigger) bool
}

// SimulationContext is all mutable state of a running tunnel. Only the tick
// goroutine touches it.
type SimulationContext struct {
	Clock *clock.Clock
	Phase *phase.Scheduler
	Field *tunnel.Field
	Stars *stars.Field
	Input *input.Tracker

	Width, Height int
	Snapshot      phase.Snapshot

	Start    time.Time
	Last     time.Time
	Frames   uint64
	Recycles uint64
}

// Status is a read-only view for the HUD.
type Status struct {
	Running  bool
	Phase    phase.ID
	Progress float64
	Rings    int
	Points   int
	Frames   uint64
	Recycles uint64
	Uptime   time.Duration
}

type Controller struct {
	sim     *SimulationContext
	painter *render.Painter
	voices  Voicer
	log     zerolog.Logger

	running bool
	sprites []stars.Sprite
}

func NewController(cfg config.Config, src rng.Source, voices Voicer, logger zerolog.Logger) *Controller {
	tracker := input.NewTracker(cfg.Input.FollowSpeed, cfg.Input.Influence)
	return &Controller{
		sim: &SimulationContext{
			Clock: clock.New(cfg.Frame.TargetFPS, cfg.Frame.MaxDelta),
			Phase: phase.NewScheduler(cfg.Phase, cfg.Sparse, cfg.Dense),
			Field: tunnel.NewField(cfg.Tunnel, src),
			Stars: stars.NewField(cfg.Stars, src),
			Input: tracker,
		},
		painter: render.NewPainter(tunnel.NewGradient(cfg.Color, cfg.Tunnel.NearClip), cfg.Tunnel.LineWidth),
		voices:  voices,
		log:     logger.With().Str("component", "game").Logger(),
	}
}

// Sim exposes the simulation state, mostly for tests and the HUD.
func (c *Controller) Sim() *SimulationContext { return c.sim }

// Resize adopts a new surface size and starts the cycle over: follow offset,
// timers, phase, rings and stars are all reset. Empty sizes are ignored.
func (c *Controller) Resize(w, h int, now time.Time) {
	if w <= 0 || h <= 0 {
		return
	}
	s := c.sim
	s.Width, s.Height = w, h
	s.Field.Camera.SetViewport(w, h)
	s.Input.SetCenter(float64(w)/2, float64(h)/2)
	s.Input.Reset()
	s.Stars.Reset(w, h)
	c.restart(now)
	c.refreshSprites()
	c.log.Debug().Int("width", w).Int("height", h).Msg("resized")
}

func (c *Controller) restart(now time.Time) {
	s := c.sim
	s.Clock.Reset(now)
	s.Phase.Reset(now)
	s.Start = now
	s.Last = now
	s.Snapshot = s.Phase.Update(now)
	s.Field.Init(s.Snapshot.Profile, s.Snapshot.PointCount)
}

// Start resumes ticking from a fresh HoldA with rebuilt rings. It reports
// false when already running.
func (c *Controller) Start(now time.Time) bool {
	if c.running {
		return false
	}
	c.running = true
	c.restart(now)
	c.log.Debug().Msg("started")
	return true
}

// Stop freezes the last frame. It reports false when already stopped.
func (c *Controller) Stop() bool {
	if !c.running {
		return false
	}
	c.running = false
	c.log.Debug().Uint64("frames", c.sim.Frames).Msg("stopped")
	return true
}

func (c *Controller) Running() bool { return c.running }

// Pointer aims the tunnel at a cursor position.
func (c *Controller) Pointer(x, y float64) { c.sim.Input.Pointer(x, y) }

// Touch aims the tunnel at the first touch.
func (c *Controller) Touch(points []input.Touch) { c.sim.Input.Touch(points) }

// Tick advances the simulation by one frame. It reports false when nothing
// ran: stopped, not sized yet, or throttled.
func (c *Controller) Tick(now time.Time) bool {
	s := c.sim
	if !c.running || s.Width == 0 {
		return false
	}
	dt, ok := s.Clock.Tick(now)
	if !ok {
		return false
	}

	snap := s.Phase.Update(now)
	s.Snapshot = snap
	if snap.Reinit || len(s.Field.Rings) != snap.Profile.RingCount() {
		s.Field.Init(snap.Profile, snap.PointCount)
		c.log.Debug().Stringer("phase", snap.ID).Int("rings", len(s.Field.Rings)).Msg("rings reinitialised")
	}

	follow := s.Input.Smooth(dt)
	s.Stars.Update(dt)

	t := float64(now.Sub(s.Start)) / float64(time.Millisecond)
	s.Field.Advance(dt, t, snap.Profile, snap.PointCount, tunnel.Point(follow), c.recycled)
	s.Field.SortByDepth()
	c.refreshSprites()

	s.Last = now
	s.Frames++
	return true
}

func (c *Controller) recycled(r *tunnel.Ring) {
	s := c.sim
	s.Recycles++
	if c.voices == nil {
		return
	}
	c.voices.Trigger(synth.Trigger{
		CenterX:  r.Center.X,
		Width:    float64(s.Width),
		Progress: s.Snapshot.Progress,
	})
}

// refreshSprites resolves star appearance once per executed tick so
// repaints of the same frame show the same twinkle.
func (c *Controller) refreshSprites() {
	s := c.sim
	follow := s.Input.Current()
	c.sprites = s.Stars.Sprites(c.sprites[:0], follow.X, follow.Y)
}

// Paint draws the current frame. A stopped controller paints its last
// frame again.
func (c *Controller) Paint(surf render.Surface) {
	s := c.sim
	c.painter.Clear(surf)
	c.painter.Stars(surf, c.sprites)
	c.painter.Rings(surf, s.Field.Rings, s.Field.Camera.Z, s.Field.RenderDepth(s.Snapshot.Profile))
}

func (c *Controller) Status() Status {
	s := c.sim
	return Status{
		Running:  c.running,
		Phase:    s.Snapshot.ID,
		Progress: s.Snapshot.Progress,
		Rings:    len(s.Field.Rings),
		Points:   s.Snapshot.PointCount,
		Frames:   s.Frames,
		Recycles: s.Recycles,
		Uptime:   s.Last.Sub(s.Start),
	}
}
