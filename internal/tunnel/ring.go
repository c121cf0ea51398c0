package tunnel

import (
	"math"

	"github.com/iburimskiy/audio-tunnel/internal/config"
)

type Point struct {
	X, Y float64
}

// Ring is one cross-section of the tunnel.
type Ring struct {
	Z          float64
	BaseRadius float64

	// radius pulse: sin(t*Speed + Phase) * Amplitude
	Speed     float64
	Phase     float64
	Amplitude float64

	Local     []Point
	Center    Point
	Projected []Projection
}

// Regenerate rebuilds the local perimeter with count evenly spaced points.
// Degenerate input leaves the ring without points.
func (r *Ring) Regenerate(count int) {
	r.Local = r.Local[:0]
	if r.BaseRadius <= 0 || count < config.MinPoints {
		return
	}
	for j := 0; j < count; j++ {
		angle := float64(j) / float64(count) * 2 * math.Pi
		r.Local = append(r.Local, Point{
			X: math.Cos(angle) * r.BaseRadius,
			Y: math.Sin(angle) * r.BaseRadius,
		})
	}
}

// PulseScale is the uniform scale applied to Local at time t (ms).
func (r *Ring) PulseScale(t float64) float64 {
	if r.BaseRadius <= 0 {
		return 1
	}
	offset := math.Sin(t*r.Speed+r.Phase) * r.Amplitude
	effective := math.Max(config.MinRadius, r.BaseRadius+offset)
	return effective / r.BaseRadius
}
