package synth

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap passes a stream through unchanged and keeps the most recent samples
// in a fixed ring so meters can look at what the speaker actually played.
type Tap struct {
	Source beep.Streamer

	mu     sync.RWMutex
	ring   [][2]float64
	head   int // next write position
	filled int
}

func NewTap(src beep.Streamer, size int) *Tap {
	if size < 1 {
		size = 1
	}
	return &Tap{Source: src, ring: make([][2]float64, size)}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n <= 0 {
		return n, ok
	}

	t.mu.Lock()
	in := samples[:n]
	if len(in) > len(t.ring) {
		in = in[len(in)-len(t.ring):]
	}
	for len(in) > 0 {
		c := copy(t.ring[t.head:], in)
		in = in[c:]
		t.head = (t.head + c) % len(t.ring)
		t.filled = min(t.filled+c, len(t.ring))
	}
	t.mu.Unlock()
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot copies out up to n of the latest samples, oldest first. It never
// returns more than has been recorded.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, t.filled)
	if n <= 0 {
		return nil
	}
	out := make([][2]float64, n)
	start := (t.head - n + len(t.ring)) % len(t.ring)
	c := copy(out, t.ring[start:])
	copy(out[c:], t.ring)
	return out
}

// Level is the RMS of both channels over the last n samples.
func (t *Tap) Level(n int) float64 {
	samples := t.Snapshot(n)
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s[0]*s[0] + s[1]*s[1]
	}
	return math.Sqrt(sum / float64(2*len(samples)))
}
