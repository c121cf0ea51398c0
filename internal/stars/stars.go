// Package stars simulates the parallax star field behind the tunnel.
package stars

import (
	"math"

	"github.com/iburimskiy/audio-tunnel/internal/config"
	"github.com/iburimskiy/audio-tunnel/internal/rng"
)

// Star lives in screen space; Z only controls speed, size and parallax.
type Star struct {
	X, Y, Z float64
}

// Sprite is what the painter draws for one star this frame.
type Sprite struct {
	X, Y   float64
	Radius float64
	Alpha  float64
}

type Field struct {
	Stars []Star
	MaxZ  float64

	width, height float64
	cfg           config.Stars
	src           rng.Source
}

func NewField(cfg config.Stars, src rng.Source) *Field {
	return &Field{cfg: cfg, src: src}
}

// Reset scatters a fresh set of stars over a w x h viewport.
func (f *Field) Reset(w, h int) {
	f.width, f.height = float64(w), float64(h)
	f.MaxZ = math.Max(math.Max(f.width, f.height), f.cfg.MinDepth)
	f.Stars = make([]Star, f.cfg.Count)
	for i := range f.Stars {
		f.respawn(&f.Stars[i])
	}
}

func (f *Field) respawn(s *Star) {
	s.X = f.src.Float64() * f.width
	s.Y = f.src.Float64() * f.height
	s.Z = f.src.Float64() * f.MaxZ
}

// Update pushes every star away from the screen center, faster when near.
func (f *Field) Update(dt float64) {
	if dt <= 0 {
		return
	}
	cx, cy := f.width/2, f.height/2
	for i := range f.Stars {
		s := &f.Stars[i]
		speed := f.cfg.SpeedFactor / (s.Z + 1)
		s.X += (s.X - cx) * speed * dt
		s.Y += (s.Y - cy) * speed * dt
		if s.X < 0 || s.X > f.width || s.Y < 0 || s.Y > f.height {
			f.respawn(s)
		}
	}
}

// Appearance resolves size, brightness, twinkle and parallax for one star.
// ok is false when the star would be invisible.
func (f *Field) Appearance(s Star, followX, followY float64) (Sprite, bool) {
	depth := 0.0
	if f.MaxZ > 0 {
		depth = s.Z / f.MaxZ
	}
	radius := lerp(f.cfg.MaxRadius, f.cfg.MinRadius, depth)
	alpha := lerp(f.cfg.MaxAlpha, f.cfg.MinAlpha, depth)
	if f.src.Float64() < f.cfg.TwinkleChance {
		amount := f.cfg.TwinkleAmount
		alpha *= 1 - amount + f.src.Float64()*amount*2
	}
	alpha = math.Max(0, math.Min(1, alpha))
	if radius <= 0 || alpha <= 0 {
		return Sprite{}, false
	}

	parallax := 1 / (s.Z + f.cfg.ParallaxBias)
	return Sprite{
		X:      s.X - followX*parallax,
		Y:      s.Y - followY*parallax,
		Radius: radius,
		Alpha:  alpha,
	}, true
}

// Sprites appends the visible sprites of the whole field to dst.
func (f *Field) Sprites(dst []Sprite, followX, followY float64) []Sprite {
	for _, s := range f.Stars {
		if sp, ok := f.Appearance(s, followX, followY); ok {
			dst = append(dst, sp)
		}
	}
	return dst
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
