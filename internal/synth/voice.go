// Package synth plans and renders the short organ tones played when a ring
// recycles, and owns the speaker output they are mixed into.
package synth

import (
	"math"
	"time"

	"github.com/iburimskiy/audio-tunnel/internal/config"
	"github.com/iburimskiy/audio-tunnel/internal/rng"
)

// tailFloor is the echo level below which the tail is cut (-60 dB).
const tailFloor = 1e-3

// Keyframe pins an automated value at a time offset into the voice.
type Keyframe struct {
	At    time.Duration
	Value float64
}

// Envelope is a piecewise linear automation curve. Keyframes must be sorted.
type Envelope []Keyframe

// At evaluates the envelope, holding the first and last values outside
// the keyed range. An empty envelope is 0.
func (e Envelope) At(t time.Duration) float64 {
	n := len(e)
	if n == 0 {
		return 0
	}
	if t <= e[0].At {
		return e[0].Value
	}
	if t >= e[n-1].At {
		return e[n-1].Value
	}
	for i := 0; i < n-1; i++ {
		a, b := e[i], e[i+1]
		if t > b.At {
			continue
		}
		span := b.At - a.At
		if span <= 0 {
			return b.Value
		}
		u := float64(t-a.At) / float64(span)
		return a.Value + (b.Value-a.Value)*u
	}
	return e[n-1].Value
}

// Partial is one sine of the organ tone.
type Partial struct {
	Freq float64
	Gain float64
}

type Filter struct {
	Cutoff Envelope
	Q      float64
}

type Delay struct {
	Time     time.Duration
	Feedback float64
	Wet      float64
}

// VoiceSpec fully describes one tone. It is plain data so it can be planned
// and checked without an audio device.
type VoiceSpec struct {
	Duration time.Duration
	Partials []Partial
	Gain     Envelope
	HighPass Filter
	LowPass  Filter
	Delay    Delay
	Pan      float64
}

// Tail is how long the echo keeps sounding after Duration.
func (v VoiceSpec) Tail() time.Duration {
	d := v.Delay
	if d.Time <= 0 || d.Wet <= 0 || d.Feedback <= 0 {
		return 0
	}
	if d.Feedback >= 1 {
		// never decays; keep a single repeat
		return d.Time
	}
	repeats := math.Ceil(math.Log(tailFloor) / math.Log(d.Feedback))
	return time.Duration(repeats) * d.Time
}

// Trigger carries what the tunnel knows about a recycled ring.
type Trigger struct {
	CenterX  float64
	Width    float64
	Progress float64
}

// NormX maps the ring center to [-1, 1] across the viewport width.
func (tr Trigger) NormX() float64 {
	if tr.Width <= 0 {
		return 0
	}
	return math.Max(-1, math.Min(1, tr.CenterX/(tr.Width/2)))
}

// PlanVoice turns a ring trigger into a tone. The ring's horizontal
// position shifts the pitch by up to half of ShiftRange either way, phase
// progress detunes the partials and opens the low-pass sweep.
func PlanVoice(p config.Sound, tr Trigger, src rng.Source) VoiceSpec {
	normX := tr.NormX()
	progress := math.Max(0, math.Min(1, tr.Progress))

	base := p.BaseFreq + normX*p.ShiftRange/2 + src.Float64()*p.FreqJitter - p.FreqJitter/2
	detune := 1 + progress*p.Detune

	partials := make([]Partial, len(p.Harmonics))
	for i, g := range p.Harmonics {
		partials[i] = Partial{Freq: base * float64(i+1) * detune, Gain: g}
	}

	peak := p.LowPass.PeakLow + (p.LowPass.PeakHigh-p.LowPass.PeakLow)*progress
	peakAt := time.Duration(float64(p.Duration) * p.LowPass.PeakAt)

	v := VoiceSpec{
		Duration: p.Duration,
		Partials: partials,
		Gain: Envelope{
			{At: 0, Value: 0},
			{At: p.Attack, Value: p.Volume},
			{At: p.Duration, Value: 0},
		},
		HighPass: Filter{Cutoff: Envelope{{At: 0, Value: p.HighPass.Freq}}, Q: p.HighPass.Q},
		LowPass: Filter{
			Cutoff: Envelope{
				{At: 0, Value: p.LowPass.Floor},
				{At: peakAt, Value: peak},
				{At: p.Duration, Value: p.LowPass.Floor},
			},
			Q: p.LowPass.Q,
		},
		Delay: Delay{
			Time:     time.Duration(float64(p.Echo.Time) * (1 + progress*p.Echo.Stretch)),
			Feedback: p.Echo.Feedback,
			Wet:      p.Echo.Wet,
		},
	}
	if p.Pan {
		v.Pan = normX
	}
	return v
}
