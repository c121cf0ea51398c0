package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Output tap size and HUD meter smoothing
	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	MeterBands      = 64

	// Geometry floors
	MinPoints = 3
	MinRadius = 1.0
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// HSL is a color in degrees / percent / percent.
type HSL struct {
	H float64 `yaml:"h"`
	S float64 `yaml:"s"`
	L float64 `yaml:"l"`
}

// PointsCycle drives the point count while the dense preset holds:
// Outer -> Inner over Down, hold Inner, Inner -> Outer over Up.
type PointsCycle struct {
	Outer float64       `yaml:"outer"`
	Inner float64       `yaml:"inner"`
	Down  time.Duration `yaml:"down"`
	Hold  time.Duration `yaml:"hold"`
	Up    time.Duration `yaml:"up"`
}

// Total is the length of one sub-cycle.
func (p PointsCycle) Total() time.Duration { return p.Down + p.Hold + p.Up }

// Preset is one named tunnel shape.
type Preset struct {
	NumRings        float64      `yaml:"num_rings"`
	PointsPerRing   float64      `yaml:"points_per_ring"`
	BaseRadius      float64      `yaml:"base_radius"`
	RadiusVariation float64      `yaml:"radius_variation"`
	PulseAmplitude  float64      `yaml:"pulse_amplitude"`
	WaveAmplitudeX  float64      `yaml:"wave_amplitude_x"`
	WaveAmplitudeY  float64      `yaml:"wave_amplitude_y"`
	WaveFrequency   float64      `yaml:"wave_frequency"`
	Points          *PointsCycle `yaml:"points_cycle,omitempty"`
}

type Phase struct {
	Hold       time.Duration `yaml:"hold"`
	Transition time.Duration `yaml:"transition"`
}

type Tunnel struct {
	RingSpacing float64 `yaml:"ring_spacing"`
	Speed       float64 `yaml:"speed"`
	FOV         float64 `yaml:"fov"`
	NearClip    float64 `yaml:"near_clip"`
	PulseSpeed  float64 `yaml:"pulse_speed"` // radians per millisecond
	WaveSpeed   float64 `yaml:"wave_speed"`  // radians per millisecond
	LineWidth   float64 `yaml:"line_width"`
}

type Color struct {
	Far        HSL     `yaml:"far"`
	Mid        HSL     `yaml:"mid"`
	Near       HSL     `yaml:"near"`
	MidFactor  float64 `yaml:"mid_factor"`
	HueShift   float64 `yaml:"hue_shift"`
	FadeFactor float64 `yaml:"fade_factor"`
}

type Stars struct {
	Count         int     `yaml:"count"`
	MinDepth      float64 `yaml:"min_depth"`
	MaxRadius     float64 `yaml:"max_radius"`
	MinRadius     float64 `yaml:"min_radius"`
	MaxAlpha      float64 `yaml:"max_alpha"`
	MinAlpha      float64 `yaml:"min_alpha"`
	TwinkleChance float64 `yaml:"twinkle_chance"`
	TwinkleAmount float64 `yaml:"twinkle_amount"`
	SpeedFactor   float64 `yaml:"speed_factor"`
	ParallaxBias  float64 `yaml:"parallax_bias"`
}

type Filter struct {
	Freq float64 `yaml:"freq"`
	Q    float64 `yaml:"q"`
}

type Sweep struct {
	Floor    float64 `yaml:"floor"`
	PeakLow  float64 `yaml:"peak_low"`
	PeakHigh float64 `yaml:"peak_high"`
	PeakAt   float64 `yaml:"peak_at"` // fraction of the tone duration
	Q        float64 `yaml:"q"`
}

type Echo struct {
	Time     time.Duration `yaml:"time"`
	Stretch  float64       `yaml:"stretch"`
	Feedback float64       `yaml:"feedback"`
	Wet      float64       `yaml:"wet"`
}

type Sound struct {
	Enabled        bool          `yaml:"enabled"`
	RequireGesture bool          `yaml:"require_gesture"`
	SampleRate     int           `yaml:"sample_rate"`
	Buffer         time.Duration `yaml:"buffer"`
	MasterVolume   float64       `yaml:"master_volume"`
	BaseFreq       float64       `yaml:"base_freq"`
	FreqJitter     float64       `yaml:"freq_jitter"`
	ShiftRange     float64       `yaml:"shift_range"`
	Detune         float64       `yaml:"detune"`
	Duration       time.Duration `yaml:"duration"`
	Attack         time.Duration `yaml:"attack"`
	Volume         float64       `yaml:"volume"`
	Harmonics      []float64     `yaml:"harmonics"`
	HighPass       Filter        `yaml:"high_pass"`
	LowPass        Sweep         `yaml:"low_pass"`
	Echo           Echo          `yaml:"echo"`
	Pan            bool          `yaml:"pan"`
}

type Input struct {
	FollowSpeed float64 `yaml:"follow_speed"`
	Influence   float64 `yaml:"influence"`
}

type Frame struct {
	TargetFPS float64 `yaml:"target_fps"`
	MaxDelta  float64 `yaml:"max_delta"` // seconds
}

// Config is the full set of tunables. Zero values are never valid; start
// from Default and override.
type Config struct {
	Frame  Frame  `yaml:"frame"`
	Phase  Phase  `yaml:"phase"`
	Sparse Preset `yaml:"sparse"`
	Dense  Preset `yaml:"dense"`
	Tunnel Tunnel `yaml:"tunnel"`
	Color  Color  `yaml:"color"`
	Stars  Stars  `yaml:"stars"`
	Sound  Sound  `yaml:"sound"`
	Input  Input  `yaml:"input"`
}

// Default returns the stock tunnel: three sparse rings blending into five
// dense ones every thirty seconds.
func Default() Config {
	return Config{
		Frame: Frame{TargetFPS: 60, MaxDelta: 0.1},
		Phase: Phase{Hold: 10 * time.Second, Transition: 5 * time.Second},
		Sparse: Preset{
			NumRings:        3,
			PointsPerRing:   400,
			BaseRadius:      10,
			RadiusVariation: 2000,
			PulseAmplitude:  10,
			WaveAmplitudeX:  1,
			WaveAmplitudeY:  0,
			WaveFrequency:   0.5,
		},
		Dense: Preset{
			NumRings:        5,
			PointsPerRing:   100,
			BaseRadius:      100,
			RadiusVariation: 5000,
			PulseAmplitude:  100,
			WaveAmplitudeX:  10,
			WaveAmplitudeY:  0,
			WaveFrequency:   12.5,
			Points: &PointsCycle{
				Outer: 20,
				Inner: 100,
				Down:  5 * time.Second,
				Hold:  5 * time.Second,
				Up:    5 * time.Second,
			},
		},
		Tunnel: Tunnel{
			RingSpacing: 3,
			Speed:       7,
			FOV:         15,
			NearClip:    1,
			PulseSpeed:  0.003,
			WaveSpeed:   0.101,
			LineWidth:   1,
		},
		Color: Color{
			Far:        HSL{H: 0, S: 0, L: 100},
			Mid:        HSL{H: 240, S: 100, L: 50},
			Near:       HSL{H: 120, S: 100, L: 50},
			MidFactor:  0.1,
			HueShift:   1,
			FadeFactor: 0.9,
		},
		Stars: Stars{
			Count:         200,
			MinDepth:      500,
			MaxRadius:     1.5,
			MinRadius:     0.1,
			MaxAlpha:      1,
			MinAlpha:      0.1,
			TwinkleChance: 0.01,
			TwinkleAmount: 0.4,
			SpeedFactor:   40,
			ParallaxBias:  10,
		},
		Sound: Sound{
			Enabled:        true,
			RequireGesture: true,
			SampleRate:     44100,
			Buffer:         50 * time.Millisecond,
			MasterVolume:   1,
			BaseFreq:       55,
			FreqJitter:     1,
			ShiftRange:     100,
			Detune:         0.1,
			Duration:       900 * time.Millisecond,
			Attack:         10 * time.Millisecond,
			Volume:         0.7,
			Harmonics:      []float64{0.1, 0.2, 0.3, 0.4},
			HighPass:       Filter{Freq: 50, Q: 1},
			LowPass:        Sweep{Floor: 200, PeakLow: 2000, PeakHigh: 4000, PeakAt: 0.4, Q: 1},
			Echo:           Echo{Time: 150 * time.Millisecond, Stretch: 0.5, Feedback: 0.3, Wet: 0.35},
			Pan:            true,
		},
		Input: Input{FollowSpeed: 0.5, Influence: 1.5},
	}
}

// Load reads a YAML file over Default, so partial files only override the
// keys they name.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate rejects values the frame pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Frame.TargetFPS >= 0, "frame.target_fps must be >= 0, got %v", c.Frame.TargetFPS)
	check(c.Frame.MaxDelta > 0, "frame.max_delta must be > 0, got %v", c.Frame.MaxDelta)
	check(c.Phase.Hold >= 0, "phase.hold must be >= 0, got %v", c.Phase.Hold)
	check(c.Phase.Transition >= 0, "phase.transition must be >= 0, got %v", c.Phase.Transition)

	for name, p := range map[string]Preset{"sparse": c.Sparse, "dense": c.Dense} {
		check(p.NumRings >= 1, "%s.num_rings must be >= 1, got %v", name, p.NumRings)
		check(p.PointsPerRing >= MinPoints, "%s.points_per_ring must be >= %d, got %v", name, MinPoints, p.PointsPerRing)
		check(p.RadiusVariation >= 0, "%s.radius_variation must be >= 0, got %v", name, p.RadiusVariation)
		if p.Points != nil {
			check(p.Points.Down >= 0 && p.Points.Hold >= 0 && p.Points.Up >= 0,
				"%s.points_cycle durations must be >= 0", name)
		}
	}

	check(c.Tunnel.RingSpacing > 0, "tunnel.ring_spacing must be > 0, got %v", c.Tunnel.RingSpacing)
	check(c.Tunnel.FOV > 0, "tunnel.fov must be > 0, got %v", c.Tunnel.FOV)
	check(c.Tunnel.NearClip >= 0, "tunnel.near_clip must be >= 0, got %v", c.Tunnel.NearClip)
	check(c.Color.MidFactor > 0 && c.Color.MidFactor < 1, "color.mid_factor must be in (0,1), got %v", c.Color.MidFactor)
	check(c.Color.FadeFactor > 0, "color.fade_factor must be > 0, got %v", c.Color.FadeFactor)
	check(c.Stars.Count >= 0, "stars.count must be >= 0, got %v", c.Stars.Count)
	check(c.Stars.ParallaxBias > 0, "stars.parallax_bias must be > 0, got %v", c.Stars.ParallaxBias)
	check(c.Input.FollowSpeed >= 0, "input.follow_speed must be >= 0, got %v", c.Input.FollowSpeed)

	if c.Sound.Enabled {
		check(c.Sound.SampleRate > 0, "sound.sample_rate must be > 0, got %v", c.Sound.SampleRate)
		check(c.Sound.Duration > 0, "sound.duration must be > 0, got %v", c.Sound.Duration)
		check(c.Sound.Attack >= 0 && c.Sound.Attack < c.Sound.Duration,
			"sound.attack must be in [0, duration), got %v", c.Sound.Attack)
		check(len(c.Sound.Harmonics) > 0, "sound.harmonics must not be empty")
		check(c.Sound.Echo.Feedback >= 0 && c.Sound.Echo.Feedback < 1,
			"sound.echo.feedback must be in [0,1), got %v", c.Sound.Echo.Feedback)
		check(c.Sound.Echo.Time > 0, "sound.echo.time must be > 0, got %v", c.Sound.Echo.Time)
	}

	return errors.Join(errs...)
}
