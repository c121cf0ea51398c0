// Package rng holds the single random source every simulation component
// draws from, so a seeded run reproduces geometry, twinkle and audio jitter.
package rng

import "math/rand"

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

// New returns a seeded source.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Range draws a value in [lo, hi).
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Spread draws a value in [center-width, center+width).
func Spread(src Source, center, width float64) float64 {
	return center + (src.Float64()-0.5)*2*width
}

// Fixed always returns the same value. Tests use it to pin every draw.
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }

// Sequence replays values in order and wraps around.
type Sequence struct {
	Values []float64
	next   int
}

func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
