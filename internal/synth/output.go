package synth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/audio-tunnel/internal/config"
)

// ErrUnavailable means no audio device could be opened. The app keeps
// running without sound.
var ErrUnavailable = errors.New("audio output unavailable")

type State int

const (
	Suspended State = iota
	Running
	Unavailable
)

func (s State) String() string {
	switch s {
	case Suspended:
		return "suspended"
	case Running:
		return "running"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Output is where voices end up.
type Output interface {
	State() State
	// Resume opens the device if needed. It is safe to call repeatedly.
	Resume() error
	// Play adds a finished-on-its-own streamer to the mix.
	Play(s beep.Streamer)
	SampleRate() beep.SampleRate
}

// SpeakerOutput plays through the system speaker:
// voices -> mixer -> master volume -> tap -> speaker.
type SpeakerOutput struct {
	rate   beep.SampleRate
	buffer time.Duration

	mu    sync.Mutex
	state State
	err   error

	mixer *beep.Mixer
	tap   *Tap

	// init is speaker.Init outside of tests.
	init func(beep.SampleRate, int) error
	play func(...beep.Streamer)
}

func NewSpeakerOutput(cfg config.Sound) *SpeakerOutput {
	mixer := &beep.Mixer{}
	return &SpeakerOutput{
		rate:   beep.SampleRate(cfg.SampleRate),
		buffer: cfg.Buffer,
		mixer:  mixer,
		tap:    NewTap(newVolume(mixer, cfg.MasterVolume), config.VisualRingSize),
		init:   speaker.Init,
		play:   speaker.Play,
	}
}

func (o *SpeakerOutput) SampleRate() beep.SampleRate { return o.rate }

// Tap exposes the recorded output for meters.
func (o *SpeakerOutput) Tap() *Tap { return o.tap }

func (o *SpeakerOutput) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *SpeakerOutput) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case Running:
		return nil
	case Unavailable:
		return fmt.Errorf("%w: %v", ErrUnavailable, o.err)
	}

	buf := o.rate.N(o.buffer)
	if buf < 1 {
		buf = o.rate.N(time.Second / 20)
	}
	if err := o.init(o.rate, buf); err != nil {
		o.state = Unavailable
		o.err = err
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	o.play(o.tap)
	o.state = Running
	return nil
}

func (o *SpeakerOutput) Play(s beep.Streamer) {
	if o.State() != Running {
		return
	}
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Voices is the number of streamers still sounding.
func (o *SpeakerOutput) Voices() int {
	if o.State() != Running {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return o.mixer.Len()
}

// Silence drops every sounding voice.
func (o *SpeakerOutput) Silence() {
	if o.State() != Running {
		return
	}
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
}
