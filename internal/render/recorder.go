package render

import colorful "github.com/lucasb-eyer/go-colorful"

// OpKind names a recorded drawing call.
type OpKind string

const (
	OpClear    OpKind = "clear"
	OpFillRect OpKind = "fillRect"
	OpFillText OpKind = "fillText"
	OpStroke   OpKind = "stroke"
)

// Op is one recorded call with the state current at the time.
type Op struct {
	Kind       OpKind
	X, Y, W, H float64
	X2, Y2     float64
	Text       string
	Align      Align
	Stroke     Stroke
	Color      colorful.Color
	FontSize   float64
}

// Recorder is a Surface that records calls instead of drawing.
type Recorder struct {
	Width, Height float64
	Ops           []Op

	fill, stroke colorful.Color
	font         float64
}

func (r *Recorder) SetSize(w, h float64)            { r.Width, r.Height = w, h }
func (r *Recorder) Size() (float64, float64)        { return r.Width, r.Height }
func (r *Recorder) SetFillColor(c colorful.Color)   { r.fill = c }
func (r *Recorder) SetStrokeColor(c colorful.Color) { r.stroke = c }
func (r *Recorder) SetFont(size float64)            { r.font = size }

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: r.fill})
}

func (r *Recorder) FillText(x, y float64, text string, align Align) {
	r.Ops = append(r.Ops, Op{Kind: OpFillText, X: x, Y: y, Text: text, Align: align, Color: r.fill, FontSize: r.font})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, X: x1, Y: y1, X2: x2, Y2: y2, Stroke: s, Color: r.stroke})
}

// Filter returns the recorded ops of one kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns every drawn string in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Filter(OpFillText) {
		out = append(out, op.Text)
	}
	return out
}

// Reset forgets recorded ops.
func (r *Recorder) Reset() { r.Ops = nil }
