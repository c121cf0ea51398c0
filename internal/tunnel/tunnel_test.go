package tunnel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/audio-tunnel/internal/config"
	"github.com/iburimskiy/audio-tunnel/internal/phase"
	"github.com/iburimskiy/audio-tunnel/internal/rng"
)

func sparse() phase.Profile { return phase.FromPreset(config.Default().Sparse) }

func newTestField(src rng.Source) *Field {
	f := NewField(config.Default().Tunnel, src)
	f.Camera.SetViewport(800, 600)
	return f
}

func TestProjectCullsInsideNearClip(t *testing.T) {
	cam := Camera{FOV: 15, NearClip: 1, Z: 10, CenterX: 400, CenterY: 300}

	p := cam.Project(50, 50, 10.5)
	assert.Equal(t, Projection{X: 400, Y: 300, Scale: 0}, p)
	assert.False(t, p.Visible())

	p = cam.Project(50, -20, 11)
	require.True(t, p.Visible())
	assert.InDelta(t, 15.0/16, p.Scale, 1e-12)
	assert.InDelta(t, 400+50*15.0/16, p.X, 1e-9)
	assert.InDelta(t, 300-20*15.0/16, p.Y, 1e-9)
}

func TestProjectScaleMonotonic(t *testing.T) {
	cam := Camera{FOV: 15, NearClip: 1, Z: 3}
	prev := math.Inf(1)
	for z := 4.0; z < 200; z += 0.75 {
		s := cam.Project(1, 1, z).Scale
		assert.Greater(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
		assert.Less(t, s, prev, "z=%v", z)
		prev = s
	}
}

func TestInitBuildsRoundedRingCount(t *testing.T) {
	f := newTestField(rng.New(1))
	p := sparse()
	p.NumRings = 3.8

	f.Init(p, 40)
	require.Len(t, f.Rings, 4)
	assert.InDelta(t, 3.8*3, f.MaxDepth, 1e-12)
	assert.InDelta(t, 3.8*3/3, f.Camera.Z, 1e-12)
	for i, r := range f.Rings {
		assert.InDelta(t, f.Camera.Z+float64(i)*3, r.Z, 1e-12)
		assert.Len(t, r.Local, 40)
	}
}

func TestSeedClampsRadiusAndPoints(t *testing.T) {
	// 0 drives the spread to base-variation, far below the floor
	f := newTestField(rng.Fixed(0))
	f.Init(sparse(), phase.PointCount(1))

	for _, r := range f.Rings {
		assert.GreaterOrEqual(t, r.BaseRadius, config.MinRadius)
		assert.GreaterOrEqual(t, len(r.Local), config.MinPoints)
	}
}

func TestRandomDrawsKeepInvariants(t *testing.T) {
	src := rng.New(42)
	f := newTestField(src)
	dense := phase.FromPreset(config.Default().Dense)
	for i := 0; i < 50; i++ {
		f.Init(dense, phase.PointCount(src.Float64()*10))
		for _, r := range f.Rings {
			assert.GreaterOrEqual(t, r.BaseRadius, 1.0)
			assert.GreaterOrEqual(t, len(r.Local), 3)
		}
	}
}

func TestRegenerateDegenerate(t *testing.T) {
	r := &Ring{BaseRadius: 0}
	r.Regenerate(10)
	assert.Empty(t, r.Local)

	r = &Ring{BaseRadius: 5}
	r.Regenerate(2)
	assert.Empty(t, r.Local)

	r.Regenerate(4)
	require.Len(t, r.Local, 4)
	assert.InDelta(t, 5, r.Local[0].X, 1e-12)
	assert.InDelta(t, 5, r.Local[1].Y, 1e-12)
}

func TestAdvanceRecyclesOncePerCrossing(t *testing.T) {
	f := newTestField(rng.New(7))
	p := sparse()
	f.Init(p, 12)
	far := f.RenderDepth(p)

	recycled := map[*Ring]int{}
	for tick := 0; tick < 600; tick++ {
		before := map[*Ring]float64{}
		for _, r := range f.Rings {
			before[r] = r.Z
		}
		f.Advance(1.0/60, float64(tick)*16, p, 12, Point{}, func(r *Ring) {
			recycled[r]++
			rel := r.Z - f.Camera.Z
			assert.GreaterOrEqual(t, rel-f.Camera.NearClip, far-f.Camera.NearClip)
			assert.Less(t, before[r]-7.0/60-f.Camera.Z, f.Camera.NearClip, "only rings that crossed recycle")
		})
		assert.Len(t, f.Rings, p.RingCount())
		for _, r := range f.Rings {
			assert.GreaterOrEqual(t, r.Z-f.Camera.Z, f.Camera.NearClip)
		}
	}
	// 10s at speed 7 over a 9-unit tunnel recycles every ring several times
	require.Len(t, recycled, 3)
	for _, n := range recycled {
		assert.GreaterOrEqual(t, n, 7)
	}
}

func TestAdvancePreservesCenterXOnRecycle(t *testing.T) {
	f := newTestField(rng.Fixed(0.5))
	p := sparse()
	f.Init(p, 8)
	r := f.Rings[0]
	r.Z = f.Camera.Z + 1.01
	r.Center.X = 123

	var seen float64
	f.Advance(0.1, 0, p, 8, Point{}, func(r *Ring) { seen = r.Center.X })
	assert.Equal(t, 123.0, seen)
}

func TestAdvanceRegeneratesOnPointChange(t *testing.T) {
	f := newTestField(rng.New(3))
	p := sparse()
	f.Init(p, 8)
	radii := make([]float64, len(f.Rings))
	for i, r := range f.Rings {
		radii[i] = r.BaseRadius
	}

	recycled := map[*Ring]bool{}
	f.Advance(0.001, 0, p, 20, Point{}, func(r *Ring) { recycled[r] = true })
	require.Len(t, recycled, 1, "the ring sitting at the camera recycles")
	for i, r := range f.Rings {
		assert.Len(t, r.Local, 20)
		assert.Len(t, r.Projected, 20)
		if !recycled[r] {
			assert.Equal(t, radii[i], r.BaseRadius, "regeneration keeps the ring's shape parameters")
		}
	}
}

func TestAdvanceFollowBlendsWithDepth(t *testing.T) {
	f := newTestField(rng.Fixed(0.5))
	p := sparse()
	p.WaveAmplitudeX = 0
	p.WaveAmplitudeY = 0
	f.Init(p, 8)

	f.Advance(0, 0, p, 8, Point{X: 90, Y: -30}, nil)
	far := f.RenderDepth(p)
	for _, r := range f.Rings {
		blend := clamp01((r.Z - f.Camera.Z) / far)
		assert.InDelta(t, 90*blend, r.Center.X, 1e-9)
		assert.InDelta(t, -30*blend, r.Center.Y, 1e-9)
	}
}

func TestPulseScaleFloor(t *testing.T) {
	r := &Ring{BaseRadius: 10, Speed: 1, Phase: -math.Pi / 2, Amplitude: 50}
	assert.InDelta(t, 0.1, r.PulseScale(0), 1e-12)

	r = &Ring{BaseRadius: 10, Speed: 1, Phase: math.Pi / 2, Amplitude: 5}
	assert.InDelta(t, 1.5, r.PulseScale(0), 1e-12)
}

func TestSortByDepthIsStableDescending(t *testing.T) {
	a, b, c, d := &Ring{Z: 5}, &Ring{Z: 9}, &Ring{Z: 5}, &Ring{Z: 1}
	f := &Field{Rings: []*Ring{a, b, c, d}}
	f.SortByDepth()
	assert.Equal(t, []*Ring{b, a, c, d}, f.Rings)
}

func TestGradientContinuousAtSplit(t *testing.T) {
	g := NewGradient(config.Default().Color, 1)
	max := 30.0
	mid := g.Split(max)

	far := lerpHSL(g.Far, g.Mid, g.farNorm(mid, max))
	near := lerpHSL(g.Mid, g.Near, g.nearNorm(mid, max))
	assert.InDelta(t, far.H, near.H, 1e-9)
	assert.InDelta(t, far.S, near.S, 1e-9)
	assert.InDelta(t, far.L, near.L, 1e-9)

	just := g.RingColor(mid-1e-9, max)
	at := g.RingColor(mid, max)
	assert.InDelta(t, at.H, just.H, 1e-6)
}

func TestGradientEndpoints(t *testing.T) {
	cfg := config.Default().Color
	g := NewGradient(cfg, 1)

	farC := g.RingColor(30, 30)
	assert.Equal(t, cfg.Far.H, farC.H)
	assert.Equal(t, cfg.Far.L, farC.L)
	assert.Equal(t, 0.0, farC.A, "far rings are fully faded")

	nearC := g.RingColor(1, 30)
	assert.Equal(t, cfg.Near.H, nearC.H)
	assert.InDelta(t, 1-1/27.0, nearC.A, 1e-12)
}

func TestVertexColorHueSweep(t *testing.T) {
	g := Gradient{HueShift: 10}
	base := HSLA{H: 355, S: 100, L: 50, A: 1}
	assert.InDelta(t, 355, g.VertexColor(base, 0, 4).H, 1e-12)
	assert.InDelta(t, 2.5, g.VertexColor(base, 3, 4).H, 1e-9)
}

func TestHSLAToNRGBA(t *testing.T) {
	assert.Equal(t, uint8(255), HSLA{H: 0, S: 0, L: 100, A: 1}.NRGBA().R)
	blue := HSLA{H: 240, S: 100, L: 50, A: 0.5}.NRGBA()
	assert.Equal(t, uint8(0), blue.R)
	assert.Equal(t, uint8(255), blue.B)
	assert.Equal(t, uint8(128), blue.A)
}
