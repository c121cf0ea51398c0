package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(99), New(99)
	for i := 0; i < 32; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestRangeAndSpread(t *testing.T) {
	assert.Equal(t, 2.0, Range(Fixed(0), 2, 6))
	assert.Equal(t, 4.0, Range(Fixed(0.5), 2, 6))

	assert.Equal(t, 7.0, Spread(Fixed(0), 10, 3))
	assert.Equal(t, 10.0, Spread(Fixed(0.5), 10, 3))
	assert.InDelta(t, 12.4, Spread(Fixed(0.9), 10, 3), 1e-12)
}

func TestRangeStaysInBounds(t *testing.T) {
	src := New(5)
	for i := 0; i < 1000; i++ {
		v := Range(src, -1, 3)
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 3.0)
	}
}

func TestSequenceWraps(t *testing.T) {
	s := &Sequence{Values: []float64{0.1, 0.2}}
	assert.Equal(t, []float64{0.1, 0.2, 0.1}, []float64{s.Float64(), s.Float64(), s.Float64()})

	assert.Equal(t, 0.0, (&Sequence{}).Float64())
}
