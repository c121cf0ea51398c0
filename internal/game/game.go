package game

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/audio-tunnel/internal/config"
	"github.com/iburimskiy/audio-tunnel/internal/input"
	"github.com/iburimskiy/audio-tunnel/internal/render"
	"github.com/iburimskiy/audio-tunnel/internal/synth"
)

// Audio is the part of the synth engine the window talks to.
type Audio interface {
	Unlock()
	ToggleMute() bool
	Stats() synth.Stats
}

// Game adapts a Controller to ebiten's Update/Draw/Layout loop.
type Game struct {
	ctrl  *Controller
	audio Audio
	tap   *synth.Tap
	meter *Meter

	width, height int
	showHUD       bool

	// input edge detection
	prevKey    map[ebiten.Key]bool
	lastCursor image.Point
	touchIDs   []ebiten.TouchID
	touches    []input.Touch
	keys       []ebiten.Key

	now func() time.Time
}

// NewGame builds the window driver. audio and tap may be nil.
func NewGame(ctrl *Controller, audio Audio, tap *synth.Tap, showHUD bool) *Game {
	return &Game{
		ctrl:    ctrl,
		audio:   audio,
		tap:     tap,
		meter:   NewMeter(config.MeterBands),
		showHUD: showHUD,
		prevKey: map[ebiten.Key]bool{},
		now:     time.Now,
	}
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	gesture := len(g.keys) > 0 ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])) > 0
	if gesture && g.audio != nil {
		g.audio.Unlock()
	}

	now := g.now()
	if justPressed(ebiten.KeySpace) {
		if g.ctrl.Running() {
			g.ctrl.Stop()
		} else {
			g.ctrl.Start(now)
		}
	}
	if justPressed(ebiten.KeyF1) {
		g.showHUD = !g.showHUD
	}
	if justPressed(ebiten.KeyM) && g.audio != nil {
		g.audio.ToggleMute()
	}

	x, y := ebiten.CursorPosition()
	if cur := image.Pt(x, y); cur != g.lastCursor {
		g.lastCursor = cur
		g.ctrl.Pointer(float64(x), float64(y))
	}
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		g.touches = g.touches[:0]
		for _, id := range g.touchIDs {
			tx, ty := ebiten.TouchPosition(id)
			g.touches = append(g.touches, input.Touch{ID: int(id), X: float64(tx), Y: float64(ty)})
		}
		g.ctrl.Touch(g.touches)
	}

	g.ctrl.Tick(now)
	if g.showHUD && g.tap != nil {
		g.meter.Update(g.tap.Snapshot(meterWindow))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	surf := render.EbitenSurface{Image: screen, Antialias: true}
	g.ctrl.Paint(surf)
	if !g.showHUD {
		return
	}

	var stats synth.Stats
	if g.audio != nil {
		stats = g.audio.Stats()
	} else {
		stats.State = synth.Unavailable
	}
	ebitenutil.DebugPrintAt(screen, StatusLine(g.ctrl.Status(), stats, ebiten.ActualFPS(), ebiten.ActualTPS()), 12, 12)
	ebitenutil.DebugPrintAt(screen, HelpLine, 12, 28)
	if g.tap != nil {
		w, h := surf.Size()
		g.meter.Draw(surf, 20, float64(h)-60, float64(w)-40, 40)
	}
}

// Layout follows the window size and restarts the tunnel when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.ctrl.Resize(outsideWidth, outsideHeight, g.now())
	}
	return outsideWidth, outsideHeight
}
