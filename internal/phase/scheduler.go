// Package phase schedules the four-window cycle that blends the sparse and
// dense tunnel presets.
package phase

import (
	"time"

	"github.com/iburimskiy/audio-tunnel/internal/config"
)

// ID names a window of the cycle.
type ID int

const (
	HoldA ID = iota
	TransitionAB
	HoldB
	TransitionBA
)

func (id ID) String() string {
	switch id {
	case HoldA:
		return "hold-a"
	case TransitionAB:
		return "transition-a-b"
	case HoldB:
		return "hold-b"
	case TransitionBA:
		return "transition-b-a"
	default:
		return "unknown"
	}
}

// Snapshot is the scheduler output for one tick.
type Snapshot struct {
	ID         ID
	Progress   float64 // 0 = preset A, 1 = preset B
	Profile    Profile
	PointCount int

	// Reinit is set on the tick a window is (re)entered.
	Reinit bool
}

// Scheduler maps wall-clock time onto the cycle
// HoldA(D) -> TransitionAB(T) -> HoldB(D) -> TransitionBA(T).
type Scheduler struct {
	a, b       Profile
	points     *config.PointsCycle
	hold       time.Duration
	transition time.Duration

	epoch       time.Time
	pointsEpoch time.Time
	current     ID
}

func NewScheduler(cfg config.Phase, a, b config.Preset) *Scheduler {
	s := &Scheduler{
		a:          FromPreset(a),
		b:          FromPreset(b),
		hold:       cfg.Hold,
		transition: cfg.Transition,
	}
	if b.Points != nil {
		pc := *b.Points
		s.points = &pc
	}
	return s
}

// CycleLength is 2D+2T.
func (s *Scheduler) CycleLength() time.Duration {
	return 2*s.hold + 2*s.transition
}

// Reset restarts the cycle at now in HoldA.
func (s *Scheduler) Reset(now time.Time) {
	s.epoch = now
	s.pointsEpoch = now
	s.current = HoldA
}

// Epoch is the start of the current cycle run.
func (s *Scheduler) Epoch() time.Time { return s.epoch }

// At is the pure schedule: elapsed time since the epoch to a snapshot. The
// dense point sub-cycle is measured from the start of the HoldB window.
func (s *Scheduler) At(elapsed time.Duration) Snapshot {
	cycle := s.CycleLength()
	if cycle <= 0 {
		return s.hold0()
	}
	e := elapsed % cycle
	if e < 0 {
		e += cycle
	}

	d, t := s.hold, s.transition
	switch {
	case e < d:
		return s.hold0()
	case e < d+t:
		p := float64(e-d) / float64(t)
		return s.blend(TransitionAB, p)
	case e < 2*d+t:
		return s.holdB(e - d - t)
	default:
		p := 1 - float64(e-2*d-t)/float64(t)
		return s.blend(TransitionBA, p)
	}
}

// Update evaluates the schedule at now and tracks window re-entry. Entering
// HoldB restarts the point sub-cycle.
func (s *Scheduler) Update(now time.Time) Snapshot {
	snap := s.At(now.Sub(s.epoch))
	if snap.ID != s.current {
		snap.Reinit = true
		if snap.ID == HoldB {
			s.pointsEpoch = now
		}
		s.current = snap.ID
	}
	if snap.ID == HoldB && s.points != nil {
		snap.Profile.PointsPerRing = pointsAt(*s.points, now.Sub(s.pointsEpoch))
		snap.PointCount = PointCount(snap.Profile.PointsPerRing)
	}
	return snap
}

func (s *Scheduler) hold0() Snapshot {
	return Snapshot{ID: HoldA, Progress: 0, Profile: s.a, PointCount: PointCount(s.a.PointsPerRing)}
}

func (s *Scheduler) holdB(into time.Duration) Snapshot {
	prof := s.b
	if s.points != nil {
		prof.PointsPerRing = pointsAt(*s.points, into)
	}
	return Snapshot{ID: HoldB, Progress: 1, Profile: prof, PointCount: PointCount(prof.PointsPerRing)}
}

// blend interpolates between presets; point count heads for the value the
// dense hold settles on.
func (s *Scheduler) blend(id ID, p float64) Snapshot {
	target := s.b
	if s.points != nil {
		target.PointsPerRing = s.points.Inner
	}
	prof := Lerp(s.a, target, p)
	return Snapshot{ID: id, Progress: p, Profile: prof, PointCount: PointCount(prof.PointsPerRing)}
}
