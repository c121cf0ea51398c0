package render

import "image/color"

type OpKind int

const (
	OpRect OpKind = iota
	OpLine
	OpCircle
)

// Op is one recorded draw call. For rects X1/Y1 hold width and height, for
// circles X1 holds the radius.
type Op struct {
	Kind           OpKind
	X0, Y0, X1, Y1 float64
	Width          float64
	Color          color.NRGBA
}

// Recorder is a Surface that keeps every call instead of drawing.
type Recorder struct {
	W, H int
	Ops  []Op
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, X0: x, Y0: y, X1: w, Y1: h, Color: nrgba(c)})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: nrgba(c)})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X0: cx, Y0: cy, X1: rad, Color: nrgba(c)})
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
