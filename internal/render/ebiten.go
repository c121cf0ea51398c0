package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface draws onto an ebiten image with the vector package.
type EbitenSurface struct {
	Image     *ebiten.Image
	Antialias bool
}

func (s EbitenSurface) Size() (int, int) {
	b := s.Image.Bounds()
	return b.Dx(), b.Dy()
}

func (s EbitenSurface) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.Image, float32(x), float32(y), float32(w), float32(h), c, s.Antialias)
}

func (s EbitenSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(s.Image, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, s.Antialias)
}

func (s EbitenSurface) FillCircle(cx, cy, r float64, c color.Color) {
	vector.DrawFilledCircle(s.Image, float32(cx), float32(cy), float32(r), c, s.Antialias)
}
