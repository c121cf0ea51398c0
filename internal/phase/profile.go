package phase

import (
	"math"
	"time"

	"github.com/iburimskiy/audio-tunnel/internal/config"
)

// Profile is the active tunnel shape for one tick.
type Profile struct {
	NumRings        float64
	PointsPerRing   float64
	BaseRadius      float64
	RadiusVariation float64
	PulseAmplitude  float64
	WaveAmplitudeX  float64
	WaveAmplitudeY  float64
	WaveFrequency   float64
}

// FromPreset copies the numeric fields of a preset.
func FromPreset(p config.Preset) Profile {
	return Profile{
		NumRings:        p.NumRings,
		PointsPerRing:   p.PointsPerRing,
		BaseRadius:      p.BaseRadius,
		RadiusVariation: p.RadiusVariation,
		PulseAmplitude:  p.PulseAmplitude,
		WaveAmplitudeX:  p.WaveAmplitudeX,
		WaveAmplitudeY:  p.WaveAmplitudeY,
		WaveFrequency:   p.WaveFrequency,
	}
}

// RingCount is the number of rings actually instantiated.
func (p Profile) RingCount() int {
	n := int(math.Round(p.NumRings))
	if n < 0 {
		return 0
	}
	return n
}

// PointCount resolves a fractional point count to the geometry floor.
func PointCount(v float64) int {
	n := int(math.Round(v))
	if n < config.MinPoints {
		return config.MinPoints
	}
	return n
}

// Lerp blends every field of a towards b.
func Lerp(a, b Profile, t float64) Profile {
	return Profile{
		NumRings:        lerp(a.NumRings, b.NumRings, t),
		PointsPerRing:   lerp(a.PointsPerRing, b.PointsPerRing, t),
		BaseRadius:      lerp(a.BaseRadius, b.BaseRadius, t),
		RadiusVariation: lerp(a.RadiusVariation, b.RadiusVariation, t),
		PulseAmplitude:  lerp(a.PulseAmplitude, b.PulseAmplitude, t),
		WaveAmplitudeX:  lerp(a.WaveAmplitudeX, b.WaveAmplitudeX, t),
		WaveAmplitudeY:  lerp(a.WaveAmplitudeY, b.WaveAmplitudeY, t),
		WaveFrequency:   lerp(a.WaveFrequency, b.WaveFrequency, t),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// pointsAt evaluates the dense-hold point sub-cycle elapsed into the cycle.
func pointsAt(c config.PointsCycle, elapsed time.Duration) float64 {
	total := c.Total()
	if total <= 0 {
		return c.Inner
	}
	e := elapsed % total
	if e < 0 {
		e += total
	}
	switch {
	case e < c.Down:
		return lerp(c.Outer, c.Inner, float64(e)/float64(c.Down))
	case e < c.Down+c.Hold:
		return c.Inner
	default:
		if c.Up <= 0 {
			return c.Outer
		}
		return lerp(c.Inner, c.Outer, float64(e-c.Down-c.Hold)/float64(c.Up))
	}
}
