package synth

import "math"

// biquad is a second order IIR section (RBJ cookbook, transposed direct
// form II).
type biquad struct {
	b0, b1, b2, a1, a2 float64
	z1, z2             float64
}

type filterKind int

const (
	lowPass filterKind = iota
	highPass
)

// set recomputes coefficients without clearing state, so the cutoff can be
// swept while the filter runs.
func (f *biquad) set(kind filterKind, cutoff, q, rate float64) {
	if q <= 0 {
		q = math.Sqrt2 / 2
	}
	cutoff = math.Max(1, math.Min(cutoff, rate*0.49))
	w0 := 2 * math.Pi * cutoff / rate
	cos, alpha := math.Cos(w0), math.Sin(w0)/(2*q)
	a0 := 1 + alpha

	switch kind {
	case highPass:
		f.b0 = (1 + cos) / 2 / a0
		f.b1 = -(1 + cos) / a0
		f.b2 = (1 + cos) / 2 / a0
	default:
		f.b0 = (1 - cos) / 2 / a0
		f.b1 = (1 - cos) / a0
		f.b2 = (1 - cos) / 2 / a0
	}
	f.a1 = -2 * cos / a0
	f.a2 = (1 - alpha) / a0
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.z1
	f.z1 = f.b1*x - f.a1*y + f.z2
	f.z2 = f.b2*x - f.a2*y
	return y
}

// echo is a feedback delay line mixed over the dry signal.
type echo struct {
	buf      []float64
	pos      int
	feedback float64
	wet      float64
}

func newEcho(samples int, feedback, wet float64) *echo {
	if samples < 1 {
		samples = 1
	}
	return &echo{buf: make([]float64, samples), feedback: feedback, wet: wet}
}

func (e *echo) process(x float64) float64 {
	delayed := e.buf[e.pos]
	e.buf[e.pos] = x + delayed*e.feedback
	e.pos++
	if e.pos == len(e.buf) {
		e.pos = 0
	}
	return x + delayed*e.wet
}
