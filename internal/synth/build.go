package synth

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// controlBlock is how many samples share one evaluation of the cutoff
// envelopes.
const controlBlock = 32

// voice renders a VoiceSpec sample by sample:
// partials -> gain -> high-pass -> low-pass -> dry + echo.
type voice struct {
	spec  VoiceSpec
	rate  beep.SampleRate
	phase []float64
	step  []float64

	hp, lp biquad
	echo   *echo

	pos   int
	tone  int
	total int
}

// BuildVoice realises a planned tone as a finite stereo streamer. It ends
// once the tone and its echo tail have played out.
func BuildVoice(spec VoiceSpec, rate beep.SampleRate) beep.Streamer {
	v := &voice{
		spec:  spec,
		rate:  rate,
		phase: make([]float64, len(spec.Partials)),
		step:  make([]float64, len(spec.Partials)),
		echo:  newEcho(rate.N(spec.Delay.Time), spec.Delay.Feedback, spec.Delay.Wet),
		tone:  rate.N(spec.Duration),
		total: rate.N(spec.Duration + spec.Tail()),
	}
	for i, p := range spec.Partials {
		v.step[i] = p.Freq / float64(rate)
	}

	var s beep.Streamer = v
	if spec.Pan != 0 {
		s = &effects.Pan{Streamer: s, Pan: spec.Pan}
	}
	return s
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.pos >= v.total {
			return i, i > 0
		}
		if v.pos%controlBlock == 0 {
			v.control()
		}

		var x float64
		if v.pos < v.tone {
			for k, p := range v.spec.Partials {
				x += p.Gain * math.Sin(2*math.Pi*v.phase[k])
				v.phase[k] += v.step[k]
				v.phase[k] -= math.Floor(v.phase[k])
			}
			x *= v.spec.Gain.At(v.at())
		}
		x = v.lp.process(v.hp.process(x))
		x = v.echo.process(x)

		samples[i][0] = x
		samples[i][1] = x
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

func (v *voice) at() time.Duration {
	return v.rate.D(v.pos)
}

func (v *voice) control() {
	t := v.at()
	r := float64(v.rate)
	v.hp.set(highPass, v.spec.HighPass.Cutoff.At(t), v.spec.HighPass.Q, r)
	v.lp.set(lowPass, v.spec.LowPass.Cutoff.At(t), v.spec.LowPass.Q, r)
}

// newVolume scales a stream linearly; 0 or less is silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
