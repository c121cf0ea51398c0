// Package tunnel owns ring geometry: lifecycle, projection and depth color.
package tunnel

import (
	"math"
	"sort"

	"github.com/iburimskiy/audio-tunnel/internal/config"
	"github.com/iburimskiy/audio-tunnel/internal/phase"
	"github.com/iburimskiy/audio-tunnel/internal/rng"
)

// Field is the set of live rings plus the camera looking through them.
type Field struct {
	Rings  []*Ring
	Camera Camera

	// MaxDepth is NumRings*spacing at the last Init, before rounding.
	MaxDepth float64

	cfg config.Tunnel
	src rng.Source
}

func NewField(cfg config.Tunnel, src rng.Source) *Field {
	return &Field{
		Camera: Camera{FOV: cfg.FOV, NearClip: cfg.NearClip},
		cfg:    cfg,
		src:    src,
	}
}

// Init throws every ring away and lays out round(NumRings) fresh ones from
// the camera outwards. The camera sits at a third of the tunnel depth.
func (f *Field) Init(p phase.Profile, points int) {
	f.MaxDepth = p.NumRings * f.cfg.RingSpacing
	f.Camera.Z = f.MaxDepth / 3

	n := p.RingCount()
	f.Rings = make([]*Ring, n)
	for i := range f.Rings {
		r := &Ring{}
		f.seed(r, f.Camera.Z+float64(i)*f.cfg.RingSpacing, p, points)
		f.Rings[i] = r
	}
}

// RenderDepth is the far plane used for recycling, follow blending and color.
func (f *Field) RenderDepth(p phase.Profile) float64 {
	return float64(p.RingCount()) * f.cfg.RingSpacing
}

// seed gives a ring fresh random shape parameters at depth z.
func (f *Field) seed(r *Ring, z float64, p phase.Profile, points int) {
	r.Z = z
	r.BaseRadius = math.Max(config.MinRadius, rng.Spread(f.src, p.BaseRadius, p.RadiusVariation))
	r.Speed = f.cfg.PulseSpeed * rng.Range(f.src, 0.7, 1.3)
	r.Phase = rng.Range(f.src, 0, 2*math.Pi)
	r.Amplitude = p.PulseAmplitude * rng.Range(f.src, 0.5, 1.5)
	r.Center = Point{}
	r.Projected = r.Projected[:0]
	r.Regenerate(points)
}

// Advance moves every ring towards the camera by Speed*dt, recycles rings
// that crossed the near plane, and reprojects all of them. t is the session
// time in milliseconds; follow is the smoothed pointer offset. onRecycle
// runs once per recycled ring, after it has been pushed to the far end.
func (f *Field) Advance(dt, t float64, p phase.Profile, points int, follow Point, onRecycle func(*Ring)) {
	far := f.RenderDepth(p)

	for _, r := range f.Rings {
		r.Z -= f.cfg.Speed * dt
		rel := r.Z - f.Camera.Z

		if rel < f.Camera.NearClip {
			keepX := r.Center.X
			f.seed(r, f.Camera.Z+far, p, points)
			r.Center.X = keepX
			if onRecycle != nil {
				onRecycle(r)
			}
			rel = r.Z - f.Camera.Z
		} else if len(r.Local) != points {
			r.Regenerate(points)
		}

		f.place(r, rel, far, t, p, follow)
	}
}

// place recomputes center, pulse and the projected perimeter of one ring.
func (f *Field) place(r *Ring, rel, far, t float64, p phase.Profile, follow Point) {
	blend := 1.0
	if far > 0 {
		blend = clamp01(rel / far)
	}
	angle := r.Z*p.WaveFrequency + t*f.cfg.WaveSpeed
	r.Center = Point{
		X: follow.X*blend + p.WaveAmplitudeX*math.Sin(angle),
		Y: follow.Y*blend + p.WaveAmplitudeY*math.Cos(angle),
	}

	scale := r.PulseScale(t)
	r.Projected = r.Projected[:0]
	for _, lp := range r.Local {
		r.Projected = append(r.Projected, f.Camera.Project(
			r.Center.X+lp.X*scale,
			r.Center.Y+lp.Y*scale,
			r.Z,
		))
	}
}

// SortByDepth orders rings far to near for the painter. The sort is stable
// so equal depths keep their order.
func (f *Field) SortByDepth() {
	sort.SliceStable(f.Rings, func(i, j int) bool {
		return f.Rings[i].Z > f.Rings[j].Z
	})
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
