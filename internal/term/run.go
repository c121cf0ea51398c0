package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/audio-tunnel/internal/game"
	"github.com/iburimskiy/audio-tunnel/internal/synth"
)

// driver applies terminal events to the controller. It only runs on the
// loop goroutine.
type driver struct {
	screen  tcell.Screen
	surf    *Screen
	ctrl    *game.Controller
	audio   game.Audio
	showHUD bool
	now     func() time.Time
}

// Run drives ctrl from a ticker at fps until the context ends or the user
// quits. The caller owns screen and must Fini it afterwards.
func Run(ctx context.Context, screen tcell.Screen, ctrl *game.Controller, audio game.Audio, fps float64, showHUD bool) error {
	if fps <= 0 {
		fps = 60
	}
	screen.EnableMouse()
	screen.HideCursor()

	d := &driver{
		screen:  screen,
		surf:    NewScreen(screen),
		ctrl:    ctrl,
		audio:   audio,
		showHUD: showHUD,
		now:     time.Now,
	}
	w, h := d.surf.Size()
	ctrl.Resize(w, h, d.now())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !d.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			d.frame(now)
		}
	}
}

// handle reports false when the user asked to quit.
func (d *driver) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		}
		d.unlock()
		switch {
		case ev.Key() == tcell.KeyF1:
			d.showHUD = !d.showHUD
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			if d.ctrl.Running() {
				d.ctrl.Stop()
			} else {
				d.ctrl.Start(d.now())
			}
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'm' || ev.Rune() == 'M'):
			if d.audio != nil {
				d.audio.ToggleMute()
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		d.ctrl.Pointer(float64(x*CellWidth+CellWidth/2), float64(y*CellHeight+CellHeight/2))
		if ev.Buttons()&tcell.Button1 != 0 {
			d.unlock()
		}
	case *tcell.EventResize:
		d.screen.Sync()
		w, h := d.surf.Size()
		d.ctrl.Resize(w, h, d.now())
	}
	return true
}

func (d *driver) unlock() {
	if d.audio != nil {
		d.audio.Unlock()
	}
}

func (d *driver) frame(now time.Time) {
	d.ctrl.Tick(now)
	d.ctrl.Paint(d.surf)
	if d.showHUD {
		stats := synth.Stats{State: synth.Unavailable}
		if d.audio != nil {
			stats = d.audio.Stats()
		}
		st := d.ctrl.Status()
		var fps float64
		if secs := st.Uptime.Seconds(); secs > 0 {
			fps = float64(st.Frames) / secs
		}
		d.surf.Text(0, 0, game.StatusLine(st, stats, fps, fps))
	}
	d.screen.Show()
}
