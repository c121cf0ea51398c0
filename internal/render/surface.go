// Package render draws a simulation frame onto any backend that can fill
// rectangles, stroke lines and fill circles.
package render

import "image/color"

// Surface is the drawing contract every backend implements. Coordinates are
// in pixels with the origin at the top left.
type Surface interface {
	Size() (w, h int)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
}
