// Package input turns pointer and touch positions into the smoothed offset
// the tunnel and star field follow.
package input

// Vec is a screen-space offset.
type Vec struct {
	X, Y float64
}

// Touch is one active touch point.
type Touch struct {
	ID   int
	X, Y float64
}

// Tracker keeps a target offset from the screen center and eases the
// current offset towards it.
type Tracker struct {
	FollowSpeed float64
	Influence   float64

	center  Vec
	target  Vec
	current Vec
}

func NewTracker(followSpeed, influence float64) *Tracker {
	return &Tracker{FollowSpeed: followSpeed, Influence: influence}
}

// SetCenter moves the reference point, usually on resize.
func (t *Tracker) SetCenter(x, y float64) {
	t.center = Vec{X: x, Y: y}
}

// Pointer aims at a cursor position.
func (t *Tracker) Pointer(x, y float64) {
	t.target = Vec{
		X: (x - t.center.X) * t.Influence,
		Y: (y - t.center.Y) * t.Influence,
	}
}

// Touch aims at the first touch. An empty slice leaves the target alone.
func (t *Tracker) Touch(points []Touch) {
	if len(points) == 0 {
		return
	}
	t.Pointer(points[0].X, points[0].Y)
}

// Smooth eases current towards target. At 60 fps one step closes
// FollowSpeed of the gap.
func (t *Tracker) Smooth(dt float64) Vec {
	amount := t.FollowSpeed * dt * 60
	if amount > 1 {
		amount = 1
	}
	if amount > 0 {
		t.current.X += (t.target.X - t.current.X) * amount
		t.current.Y += (t.target.Y - t.current.Y) * amount
	}
	return t.current
}

func (t *Tracker) Current() Vec { return t.current }
func (t *Tracker) Target() Vec  { return t.target }

// Reset zeroes target and current offset.
func (t *Tracker) Reset() {
	t.target = Vec{}
	t.current = Vec{}
}
