package game

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/audio-tunnel/internal/config"
	"github.com/iburimskiy/audio-tunnel/internal/render"
	"github.com/iburimskiy/audio-tunnel/internal/synth"
)

// meterWindow is how many recent output samples feed the meter.
const meterWindow = 2048

// Meter turns recent output samples into smoothed band levels.
type Meter struct {
	Bands []float64
	phase float64
}

func NewMeter(bands int) *Meter {
	return &Meter{Bands: make([]float64, bands)}
}

// Update splits samples into equal slices and eases each band towards the
// compressed RMS of its slice.
func (m *Meter) Update(samples [][2]float64) {
	n := len(m.Bands)
	if n == 0 || len(samples) == 0 {
		return
	}
	segment := int(math.Max(1, float64(len(samples))/float64(n)))
	for i := 0; i < n; i++ {
		start := i * segment
		end := start + segment
		if start >= len(samples) {
			break
		}
		if end > len(samples) {
			end = len(samples)
		}

		var sumSquares float64
		for s := start; s < end; s++ {
			mono := (samples[s][0] + samples[s][1]) * 0.5
			sumSquares += mono * mono
		}
		rms := math.Sqrt(sumSquares / float64(end-start))
		mag := math.Pow(rms, 0.3)
		m.Bands[i] = config.SmoothingFactor*m.Bands[i] + (1-config.SmoothingFactor)*mag
	}
	m.phase += 0.002
}

// Draw paints the meter as a bar of colored segments inside x, y, w, h.
func (m *Meter) Draw(s render.Surface, x, y, w, h float64) {
	if len(m.Bands) == 0 {
		return
	}
	s.FillRect(x, y, w, h, color.RGBA{R: 20, G: 25, B: 35, A: 200})

	segmentWidth := w / float64(len(m.Bands))
	for i, level := range m.Bands {
		level = clamp01(level)
		segmentHeight := math.Max(2, level*(h-4))

		hue := math.Mod((m.phase+float64(i)/float64(len(m.Bands))*0.5)*360, 360)
		r, g, b := colorful.Hsv(hue, 0.8, 0.9).RGB255()
		c := color.NRGBA{R: r, G: g, B: b, A: uint8(100 + 155*level)}

		sx := x + float64(i)*segmentWidth
		sy := y + h - segmentHeight
		s.FillRect(sx, sy, math.Max(1, segmentWidth-1), segmentHeight, c)
	}
}

// StatusLine is the one-line HUD summary shared by both backends.
func StatusLine(st Status, audio synth.Stats, fps, tps float64) string {
	state := "running"
	if !st.Running {
		state = "stopped"
	}
	sound := audio.State.String()
	if audio.Muted {
		sound = "muted"
	}
	return fmt.Sprintf(
		"%s %s | phase %s %.2f | rings %d points %d | voices %d/%d skipped, %d sounding | audio %s | fps %.0f tps %.0f",
		state, formatDuration(st.Uptime), st.Phase, st.Progress, st.Rings, st.Points,
		audio.Played, audio.Skipped, audio.Active, sound, fps, tps,
	)
}

const HelpLine = "Space: start/stop  M: mute  F1: HUD  Esc/Q: quit  click: enable sound"
