// Package clock turns display callbacks into clamped simulation steps.
package clock

import "time"

// throttleSlack absorbs scheduler jitter so a callback arriving a hair early
// is not dropped as a whole frame.
const throttleSlack = time.Millisecond

// Clock produces a delta time per executed tick and optionally throttles
// callbacks to a target frame rate. A zero TargetFPS disables throttling.
type Clock struct {
	TargetFPS float64
	MaxDelta  float64 // seconds

	last time.Time
}

func New(targetFPS, maxDelta float64) *Clock {
	return &Clock{TargetFPS: targetFPS, MaxDelta: maxDelta}
}

// Reset makes now the reference for the next delta.
func (c *Clock) Reset(now time.Time) {
	c.last = now
}

// Nominal is the fixed step used whenever the measured gap is unusable.
func (c *Clock) Nominal() float64 {
	if c.TargetFPS > 0 {
		return 1 / c.TargetFPS
	}
	return 1.0 / 60
}

// Tick returns the seconds elapsed since the last executed tick. ok is false
// when the call arrived before the target interval; the caller must skip the
// frame body and wait for the next callback.
func (c *Clock) Tick(now time.Time) (dt float64, ok bool) {
	if c.TargetFPS > 0 && !c.last.IsZero() {
		interval := time.Duration(float64(time.Second) / c.TargetFPS)
		if gap := now.Sub(c.last); gap >= 0 && gap < interval-throttleSlack {
			return 0, false
		}
	}

	if c.last.IsZero() {
		dt = c.Nominal()
	} else {
		dt = now.Sub(c.last).Seconds()
		if dt <= 0 || dt > c.MaxDelta {
			dt = c.Nominal()
		}
	}
	c.last = now
	return dt, true
}
