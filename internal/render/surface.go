// Package render paints the Gantt header and chart onto an immediate-mode
// drawing surface. Surfaces exist for PDF output, terminal cells and
// recording in tests.
package render

import colorful "github.com/lucasb-eyer/go-colorful"

// Align is the horizontal anchor of FillText.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Stroke describes a line. A nil Dash draws a solid line.
type Stroke struct {
	Width float64
	Dash  []float64
}

// Surface is a 2D drawing context with explicit pixel dimensions.
type Surface interface {
	SetSize(width, height float64)
	Size() (width, height float64)
	Clear()
	SetFillColor(c colorful.Color)
	SetStrokeColor(c colorful.Color)
	SetFont(size float64)
	FillRect(x, y, w, h float64)
	FillText(x, y float64, text string, align Align)
	StrokeLine(x1, y1, x2, y2 float64, s Stroke)
}

// alignedX returns the left edge of a run of width w anchored at x.
func alignedX(x, w float64, align Align) float64 {
	switch align {
	case AlignCenter:
		return x - w/2
	case AlignRight:
		return x - w
	default:
		return x
	}
}
