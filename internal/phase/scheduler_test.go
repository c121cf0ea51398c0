package phase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/audio-tunnel/internal/config"
)

func newDefaultScheduler() *Scheduler {
	c := config.Default()
	return NewScheduler(c.Phase, c.Sparse, c.Dense)
}

func TestAtTransitionScenario(t *testing.T) {
	s := newDefaultScheduler()

	snap := s.At(12 * time.Second)
	assert.Equal(t, TransitionAB, snap.ID)
	assert.InDelta(t, 0.4, snap.Progress, 1e-9)
	assert.InDelta(t, 3.8, snap.Profile.NumRings, 1e-9)
	assert.Equal(t, 4, snap.Profile.RingCount())
}

func TestAtWindows(t *testing.T) {
	s := newDefaultScheduler()
	tests := []struct {
		at       time.Duration
		id       ID
		progress float64
	}{
		{0, HoldA, 0},
		{9999 * time.Millisecond, HoldA, 0},
		{10 * time.Second, TransitionAB, 0},
		{15 * time.Second, HoldB, 1},
		{24 * time.Second, HoldB, 1},
		{25 * time.Second, TransitionBA, 1},
		{27500 * time.Millisecond, TransitionBA, 0.5},
		{30 * time.Second, HoldA, 0},
	}
	for _, tt := range tests {
		snap := s.At(tt.at)
		assert.Equal(t, tt.id, snap.ID, "at %v", tt.at)
		assert.InDelta(t, tt.progress, snap.Progress, 1e-9, "at %v", tt.at)
	}
}

func TestAtHoldsArePurePresets(t *testing.T) {
	c := config.Default()
	s := NewScheduler(c.Phase, c.Sparse, c.Dense)

	a := s.At(time.Second)
	assert.Equal(t, FromPreset(c.Sparse), a.Profile)
	assert.Equal(t, 400, a.PointCount)

	b := s.At(15 * time.Second)
	want := FromPreset(c.Dense)
	want.PointsPerRing = c.Dense.Points.Outer
	assert.Equal(t, want, b.Profile)
	assert.Equal(t, 20, b.PointCount)
}

func TestAtIsPeriodic(t *testing.T) {
	s := newDefaultScheduler()
	cycle := s.CycleLength()
	require.Equal(t, 30*time.Second, cycle)

	for at := -7 * time.Second; at < 2*cycle; at += 730 * time.Millisecond {
		assert.Equal(t, s.At(at), s.At(at+cycle), "at %v", at)
	}
}

func TestTransitionPointsHeadForDenseHold(t *testing.T) {
	c := config.Default()
	s := NewScheduler(c.Phase, c.Sparse, c.Dense)

	mid := s.At(12500 * time.Millisecond)
	assert.InDelta(t, (400.0+100.0)/2, mid.Profile.PointsPerRing, 1e-9)
	assert.Equal(t, 250, mid.PointCount)
}

func TestPointSubCycle(t *testing.T) {
	pc := config.PointsCycle{Outer: 20, Inner: 100, Down: 5 * time.Second, Hold: 5 * time.Second, Up: 5 * time.Second}

	assert.InDelta(t, 20, pointsAt(pc, 0), 1e-9)
	assert.InDelta(t, 60, pointsAt(pc, 2500*time.Millisecond), 1e-9)
	assert.InDelta(t, 100, pointsAt(pc, 7*time.Second), 1e-9)
	assert.InDelta(t, 60, pointsAt(pc, 12500*time.Millisecond), 1e-9)
	assert.InDelta(t, 20, pointsAt(pc, 15*time.Second), 1e-9)
}

func TestPointCountFloor(t *testing.T) {
	assert.Equal(t, 3, PointCount(0))
	assert.Equal(t, 3, PointCount(2.4))
	assert.Equal(t, 4, PointCount(3.5))
	assert.Equal(t, 100, PointCount(99.6))
}

func TestUpdateFlagsReentry(t *testing.T) {
	s := newDefaultScheduler()
	epoch := time.Unix(1000, 0)
	s.Reset(epoch)

	assert.False(t, s.Update(epoch).Reinit, "reset already sits in HoldA")
	assert.False(t, s.Update(epoch.Add(5*time.Second)).Reinit)

	snap := s.Update(epoch.Add(10 * time.Second))
	assert.Equal(t, TransitionAB, snap.ID)
	assert.True(t, snap.Reinit)
	assert.False(t, s.Update(epoch.Add(11*time.Second)).Reinit)

	snap = s.Update(epoch.Add(15 * time.Second))
	assert.Equal(t, HoldB, snap.ID)
	assert.True(t, snap.Reinit)
}

func TestUpdateRestartsPointCycleOnHoldBEntry(t *testing.T) {
	s := newDefaultScheduler()
	epoch := time.Unix(1000, 0)
	s.Reset(epoch)

	// enter HoldB a little late, the sub-cycle starts from the entry tick
	entry := epoch.Add(17 * time.Second)
	s.Update(epoch.Add(12 * time.Second))
	snap := s.Update(entry)
	require.Equal(t, HoldB, snap.ID)
	assert.Equal(t, 20, snap.PointCount)

	snap = s.Update(entry.Add(2500 * time.Millisecond))
	assert.Equal(t, 60, snap.PointCount)
}

func TestZeroTransitionIsDegenerateCycle(t *testing.T) {
	c := config.Default()
	c.Phase.Transition = 0
	c.Dense = c.Sparse
	s := NewScheduler(c.Phase, c.Sparse, c.Dense)

	for at := time.Duration(0); at < 40*time.Second; at += time.Second {
		snap := s.At(at)
		assert.NotEqual(t, TransitionAB, snap.ID)
		assert.NotEqual(t, TransitionBA, snap.ID)
		assert.Equal(t, FromPreset(c.Sparse), snap.Profile)
	}
}

func TestZeroCyclePinsHoldA(t *testing.T) {
	c := config.Default()
	c.Phase = config.Phase{}
	s := NewScheduler(c.Phase, c.Sparse, c.Dense)
	assert.Equal(t, HoldA, s.At(time.Hour).ID)
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "transition-a-b", TransitionAB.String())
	assert.Equal(t, "unknown", ID(9).String())
}
