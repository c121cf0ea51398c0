package tunnel

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/audio-tunnel/internal/config"
)

// HSLA uses degrees for H, percent for S and L, and 0..1 for A.
type HSLA struct {
	H, S, L, A float64
}

// NRGBA converts to a straight-alpha color for drawing.
func (c HSLA) NRGBA() color.NRGBA {
	r, g, b := colorful.Hsl(c.H, clamp01(c.S/100), clamp01(c.L/100)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(c.A) * 255))}
}

func lerpHSL(a, b config.HSL, t float64) HSLA {
	return HSLA{
		H: a.H + (b.H-a.H)*t,
		S: a.S + (b.S-a.S)*t,
		L: a.L + (b.L-a.L)*t,
		A: 1,
	}
}

// Gradient colors rings by camera-relative depth: far->mid over the far
// segment, mid->near over the near one. The split sits at MidFactor of the
// tunnel depth.
type Gradient struct {
	Far, Mid, Near config.HSL
	MidFactor      float64
	HueShift       float64
	FadeFactor     float64
	NearClip       float64
}

func NewGradient(cfg config.Color, nearClip float64) Gradient {
	return Gradient{
		Far:        cfg.Far,
		Mid:        cfg.Mid,
		Near:       cfg.Near,
		MidFactor:  cfg.MidFactor,
		HueShift:   cfg.HueShift,
		FadeFactor: cfg.FadeFactor,
		NearClip:   nearClip,
	}
}

// Split is the relative depth where the two segments meet.
func (g Gradient) Split(maxDepth float64) float64 {
	return maxDepth * g.MidFactor
}

// RingColor is the base color of a ring at relative depth rel.
func (g Gradient) RingColor(rel, maxDepth float64) HSLA {
	var c HSLA
	if mid := g.Split(maxDepth); rel >= mid {
		c = lerpHSL(g.Far, g.Mid, g.farNorm(rel, maxDepth))
	} else {
		c = lerpHSL(g.Mid, g.Near, g.nearNorm(rel, maxDepth))
	}
	c.A = g.Alpha(rel, maxDepth)
	return c
}

// farNorm is 0 at the far plane and 1 at the split.
func (g Gradient) farNorm(rel, maxDepth float64) float64 {
	mid := g.Split(maxDepth)
	length := maxDepth - mid
	if length <= 0 {
		return 1
	}
	return clamp01((maxDepth - rel) / length)
}

// nearNorm is 0 at the split and 1 at the near plane.
func (g Gradient) nearNorm(rel, maxDepth float64) float64 {
	mid := g.Split(maxDepth)
	length := mid - g.NearClip
	if length <= 0 {
		return 1
	}
	return clamp01((mid - rel) / length)
}

// Alpha is opaque near the camera and fades far rings in from nothing at
// FadeFactor of the tunnel depth.
func (g Gradient) Alpha(rel, maxDepth float64) float64 {
	span := maxDepth * g.FadeFactor
	if span <= 0 {
		return 0
	}
	return math.Max(0, 1-rel/span)
}

// VertexColor nudges the hue of edge j of count around the ring.
func (g Gradient) VertexColor(base HSLA, j, count int) HSLA {
	if count <= 0 {
		return base
	}
	base.H = math.Mod(base.H+float64(j)/float64(count)*g.HueShift, 360)
	return base
}
