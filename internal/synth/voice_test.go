package synth

import (
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/audio-tunnel/internal/config"
	"github.com/iburimskiy/audio-tunnel/internal/rng"
)

func TestPlanVoicePitchFollowsRingX(t *testing.T) {
	cfg := config.Default().Sound
	tests := []struct {
		name    string
		centerX float64
		want    float64
	}{
		{"right edge", 400, 105},
		{"center", 0, 55},
		{"left edge", -400, 5},
		{"clamped", 2000, 105},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 0.5 cancels the jitter
			v := PlanVoice(cfg, Trigger{CenterX: tt.centerX, Width: 800}, rng.Fixed(0.5))
			require.Len(t, v.Partials, 4)
			assert.InDelta(t, tt.want, v.Partials[0].Freq, 1e-9)
		})
	}
}

func TestPlanVoiceOrganPartials(t *testing.T) {
	cfg := config.Default().Sound
	v := PlanVoice(cfg, Trigger{Width: 800, Progress: 1}, rng.Fixed(0.5))

	for i, p := range v.Partials {
		assert.InDelta(t, 55*float64(i+1)*1.1, p.Freq, 1e-9)
		assert.Equal(t, cfg.Harmonics[i], p.Gain)
	}
	assert.Equal(t, 900*time.Millisecond, v.Duration)
	assert.Equal(t, 225*time.Millisecond, v.Delay.Time)
	assert.Equal(t, 0.3, v.Delay.Feedback)
	assert.Equal(t, 0.35, v.Delay.Wet)
	assert.Equal(t, 0.0, v.Pan)
}

func TestPlanVoiceEnvelopes(t *testing.T) {
	cfg := config.Default().Sound
	v := PlanVoice(cfg, Trigger{Width: 800, Progress: 0.5}, rng.Fixed(0.5))

	assert.Equal(t, 0.0, v.Gain.At(0))
	assert.InDelta(t, 0.35, v.Gain.At(5*time.Millisecond), 1e-9)
	assert.InDelta(t, 0.7, v.Gain.At(10*time.Millisecond), 1e-9)
	assert.InDelta(t, 0.35, v.Gain.At(455*time.Millisecond), 1e-9)
	assert.Equal(t, 0.0, v.Gain.At(900*time.Millisecond))
	assert.Equal(t, 0.0, v.Gain.At(2*time.Second))

	assert.Equal(t, 50.0, v.HighPass.Cutoff.At(300*time.Millisecond))
	assert.Equal(t, 200.0, v.LowPass.Cutoff.At(0))
	assert.InDelta(t, 3000, v.LowPass.Cutoff.At(360*time.Millisecond), 1e-9)
	assert.Equal(t, 200.0, v.LowPass.Cutoff.At(900*time.Millisecond))
}

func TestPlanVoicePan(t *testing.T) {
	cfg := config.Default().Sound
	v := PlanVoice(cfg, Trigger{CenterX: -200, Width: 800}, rng.Fixed(0.5))
	assert.InDelta(t, -0.5, v.Pan, 1e-12)

	cfg.Pan = false
	v = PlanVoice(cfg, Trigger{CenterX: -200, Width: 800}, rng.Fixed(0.5))
	assert.Equal(t, 0.0, v.Pan)
}

func TestEnvelopeEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, Envelope(nil).At(time.Second))
	assert.Equal(t, 3.0, Envelope{{At: time.Second, Value: 3}}.At(0))

	step := Envelope{{At: 0, Value: 1}, {At: time.Second, Value: 1}, {At: time.Second, Value: 5}}
	assert.Equal(t, 5.0, step.At(time.Second))
}

func TestTail(t *testing.T) {
	v := VoiceSpec{Delay: Delay{Time: 150 * time.Millisecond, Feedback: 0.3, Wet: 0.35}}
	// 0.3^6 is the first repeat under -60 dB
	assert.Equal(t, 900*time.Millisecond, v.Tail())

	v.Delay.Feedback = 0
	assert.Equal(t, time.Duration(0), v.Tail())
}

func drain(s beep.Streamer) (left, right []float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			left = append(left, smp[0])
			right = append(right, smp[1])
		}
		if !ok {
			return
		}
	}
}

func TestBuildVoiceTerminates(t *testing.T) {
	rate := beep.SampleRate(8000)
	v := PlanVoice(config.Default().Sound, Trigger{Width: 800}, rng.Fixed(0.5))

	left, right := drain(BuildVoice(v, rate))
	assert.Len(t, left, rate.N(v.Duration+v.Tail()))

	var peak float64
	for i := range left {
		require.False(t, math.IsNaN(left[i]) || math.IsInf(left[i], 0))
		assert.Equal(t, left[i], right[i], "centered voices are mono")
		peak = math.Max(peak, math.Abs(left[i]))
	}
	assert.Greater(t, peak, 0.0)
	assert.Less(t, peak, 2.0)
}

func TestBuildVoicePansHard(t *testing.T) {
	rate := beep.SampleRate(8000)
	v := PlanVoice(config.Default().Sound, Trigger{CenterX: 400, Width: 800}, rng.Fixed(0.5))
	require.Equal(t, 1.0, v.Pan)

	left, right := drain(BuildVoice(v, rate))
	var l, r float64
	for i := range left {
		l += left[i] * left[i]
		r += right[i] * right[i]
	}
	assert.Less(t, l, r)
}
