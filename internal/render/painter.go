package render

import (
	"image/color"

	"github.com/iburimskiy/audio-tunnel/internal/stars"
	"github.com/iburimskiy/audio-tunnel/internal/tunnel"
)

// Painter draws frames back to front: background, stars, rings.
type Painter struct {
	Background color.Color
	LineWidth  float64
	Gradient   tunnel.Gradient
}

func NewPainter(g tunnel.Gradient, lineWidth float64) *Painter {
	if lineWidth <= 0 {
		lineWidth = 1
	}
	return &Painter{Background: color.Black, LineWidth: lineWidth, Gradient: g}
}

func (p *Painter) Clear(s Surface) {
	w, h := s.Size()
	s.FillRect(0, 0, float64(w), float64(h), p.Background)
}

func (p *Painter) Stars(s Surface, sprites []stars.Sprite) {
	for _, sp := range sprites {
		c := color.NRGBA{R: 255, G: 255, B: 255, A: uint8(sp.Alpha*255 + 0.5)}
		s.FillCircle(sp.X, sp.Y, sp.Radius, c)
	}
}

// Rings strokes each ring's perimeter and the connectors to the next ring
// in the slice. rings must already be sorted far to near.
func (p *Painter) Rings(s Surface, rings []*tunnel.Ring, cameraZ, maxDepth float64) {
	for i, r := range rings {
		pts := r.Projected
		n := len(pts)
		if n < 3 || !pts[0].Visible() {
			continue
		}
		base := p.Gradient.RingColor(r.Z-cameraZ, maxDepth)
		if base.A <= 0 {
			continue
		}

		var next []tunnel.Projection
		if i+1 < len(rings) {
			if np := rings[i+1].Projected; len(np) == n && np[0].Visible() {
				next = np
			}
		}

		for j := 0; j < n; j++ {
			a, b := pts[j], pts[(j+1)%n]
			c := p.Gradient.VertexColor(base, j, n).NRGBA()
			if a.Visible() && b.Visible() {
				s.StrokeLine(a.X, a.Y, b.X, b.Y, p.LineWidth, c)
			}
			if next != nil && a.Visible() && next[j].Visible() {
				s.StrokeLine(a.X, a.Y, next[j].X, next[j].Y, p.LineWidth, c)
			}
		}
	}
}
