package tunnel

// Camera is fixed on the z axis looking down +z.
type Camera struct {
	FOV      float64
	NearClip float64
	Z        float64
	CenterX  float64
	CenterY  float64
}

// Projection is a screen point. Scale 0 means the source point was culled.
type Projection struct {
	X, Y  float64
	Scale float64
}

// Visible reports whether the point survived the near-clip test.
func (p Projection) Visible() bool { return p.Scale > 0 }

// SetViewport centers the projection on a w x h surface.
func (c *Camera) SetViewport(w, h int) {
	c.CenterX = float64(w) / 2
	c.CenterY = float64(h) / 2
}

// Project maps a world point to the screen with a pinhole model.
func (c *Camera) Project(x, y, z float64) Projection {
	rel := z - c.Z
	if rel < c.NearClip {
		return Projection{X: c.CenterX, Y: c.CenterY, Scale: 0}
	}
	scale := c.FOV / (c.FOV + rel)
	return Projection{
		X:     c.CenterX + x*scale,
		Y:     c.CenterY + y*scale,
		Scale: scale,
	}
}
