// Package term runs the tunnel inside a terminal. Each cell stands for a
// block of virtual pixels so the simulation keeps its pixel-scale geometry.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

const (
	CellWidth  = 8
	CellHeight = 16
)

// Canvas is the part of tcell.Screen the surface draws with.
type Canvas interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Screen implements render.Surface over a terminal cell grid. Colors are
// premultiplied onto black since cells cannot blend.
type Screen struct {
	canvas Canvas
}

func NewScreen(c Canvas) *Screen {
	return &Screen{canvas: c}
}

// Size is in virtual pixels.
func (s *Screen) Size() (int, int) {
	cols, rows := s.canvas.Size()
	return cols * CellWidth, rows * CellHeight
}

func (s *Screen) FillRect(x, y, w, h float64, c color.Color) {
	cols, rows := s.canvas.Size()
	x0, y0 := cell(x, y)
	x1, y1 := cell(x+w-1, y+h-1)
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, cols-1), min(y1, rows-1)

	style := tcell.StyleDefault.Background(flatten(c))
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			s.canvas.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// StrokeLine rasterises with Bresenham on the cell grid. Width is ignored,
// a cell is already wider than any stroke.
func (s *Screen) StrokeLine(x0, y0, x1, y1, _ float64, c color.Color) {
	ax, ay := cell(x0, y0)
	bx, by := cell(x1, y1)
	style := tcell.StyleDefault.Foreground(flatten(c)).Background(tcell.ColorBlack)
	glyph := lineGlyph(x1-x0, y1-y0)

	dx := abs(bx - ax)
	dy := -abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	err := dx + dy
	for {
		s.plot(ax, ay, glyph, style)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
}

func (s *Screen) FillCircle(cx, cy, r float64, c color.Color) {
	x, y := cell(cx, cy)
	glyph := '.'
	if r >= 1 {
		glyph = '*'
	}
	s.plot(x, y, glyph, tcell.StyleDefault.Foreground(flatten(c)).Background(tcell.ColorBlack))
}

func (s *Screen) plot(x, y int, r rune, style tcell.Style) {
	cols, rows := s.canvas.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	s.canvas.SetContent(x, y, r, nil, style)
}

// Text writes a plain string starting at a cell.
func (s *Screen) Text(x, y int, text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range []rune(text) {
		s.plot(x+i, y, r, style)
	}
}

func cell(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// lineGlyph picks a character that follows the slope of the segment.
func lineGlyph(dx, dy float64) rune {
	// cells are twice as tall as wide
	dy *= float64(CellWidth) / CellHeight
	switch {
	case math.Abs(dy) < math.Abs(dx)*0.4:
		return '-'
	case math.Abs(dx) < math.Abs(dy)*0.4:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func flatten(c color.Color) tcell.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	a := int32(n.A)
	return tcell.NewRGBColor(int32(n.R)*a/255, int32(n.G)*a/255, int32(n.B)*a/255)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
