package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// continuation marks the second column of a double-width rune.
const continuation rune = 0

type cell struct {
	r      rune
	fg, bg colorful.Color
	hasFg  bool
	hasBg  bool
}

var blankCell = cell{r: ' '}

// CellSurface rasterises drawing calls onto a terminal grid. Coordinates
// stay in pixels; each cell covers CellWidth x CellHeight of them.
type CellSurface struct {
	CellWidth  float64
	CellHeight float64

	width, height float64
	cols, rows    int
	cells         []cell
	fill, stroke  colorful.Color
}

func NewCellSurface(cellWidth, cellHeight float64) *CellSurface {
	return &CellSurface{CellWidth: cellWidth, CellHeight: cellHeight}
}

func (c *CellSurface) SetSize(w, h float64) {
	c.width, c.height = w, h
	c.cols = int(math.Ceil(w / c.CellWidth))
	c.rows = int(math.Ceil(h / c.CellHeight))
	c.cells = make([]cell, c.cols*c.rows)
	c.Clear()
}

func (c *CellSurface) Size() (float64, float64) { return c.width, c.height }

// Cols and Rows are the grid dimensions.
func (c *CellSurface) Cols() int { return c.cols }
func (c *CellSurface) Rows() int { return c.rows }

func (c *CellSurface) Clear() {
	for i := range c.cells {
		c.cells[i] = blankCell
	}
}

func (c *CellSurface) SetFillColor(col colorful.Color)   { c.fill = col }
func (c *CellSurface) SetStrokeColor(col colorful.Color) { c.stroke = col }

// SetFont is ignored; terminals have one font size.
func (c *CellSurface) SetFont(float64) {}

func (c *CellSurface) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

func (c *CellSurface) FillRect(x, y, w, h float64) {
	c0 := int(math.Round(x / c.CellWidth))
	c1 := int(math.Round((x + w) / c.CellWidth))
	if c1 == c0 && w > 0 {
		c1 = c0 + 1
	}
	r0 := int(math.Floor(y / c.CellHeight))
	r1 := int(math.Ceil((y + h) / c.CellHeight))
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			if p := c.at(col, row); p != nil {
				*p = cell{r: ' ', bg: c.fill, hasBg: true}
			}
		}
	}
}

func (c *CellSurface) FillText(x, y float64, text string, align Align) {
	row := int(math.Floor(y / c.CellHeight))
	if row >= c.rows {
		row = c.rows - 1
	}
	width := float64(ansi.StringWidth(text))
	col := int(math.Round(alignedX(x/c.CellWidth, width, align)))
	for _, r := range text {
		rw := ansi.StringWidth(string(r))
		if rw == 0 {
			continue
		}
		p := c.at(col, row)
		if p != nil && (rw == 1 || col+1 < c.cols) {
			p.r, p.fg, p.hasFg = r, c.fill, true
			if rw == 2 {
				next := c.at(col+1, row)
				next.r, next.fg, next.hasFg, next.bg, next.hasBg = continuation, c.fill, true, p.bg, p.hasBg
			}
		}
		col += rw
	}
}

func (c *CellSurface) StrokeLine(x1, y1, x2, y2 float64, s Stroke) {
	switch {
	case x1 == x2:
		glyph := '│'
		if len(s.Dash) > 0 {
			glyph = '┊'
		} else if s.Width >= 2 {
			glyph = '┃'
		}
		col := int(math.Floor(x1 / c.CellWidth))
		if col == c.cols && col > 0 {
			col--
		}
		r0 := int(math.Floor(math.Min(y1, y2) / c.CellHeight))
		r1 := int(math.Ceil(math.Max(y1, y2) / c.CellHeight))
		for row := r0; row < r1; row++ {
			c.stamp(col, row, glyph)
		}
	case y1 == y2:
		row := int(math.Floor(y1 / c.CellHeight))
		c0 := int(math.Floor(math.Min(x1, x2) / c.CellWidth))
		c1 := int(math.Ceil(math.Max(x1, x2) / c.CellWidth))
		for col := c0; col < c1; col++ {
			c.stamp(col, row, '─')
		}
	}
}

func (c *CellSurface) stamp(col, row int, glyph rune) {
	p := c.at(col, row)
	if p == nil || p.r == continuation {
		return
	}
	p.r, p.fg, p.hasFg = glyph, c.stroke, true
}

// PlainLine returns one grid row without styling.
func (c *CellSurface) PlainLine(row int) string {
	if row < 0 || row >= c.rows {
		return ""
	}
	var b strings.Builder
	for col := 0; col < c.cols; col++ {
		if r := c.at(col, row).r; r != continuation {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// View renders the width x height window whose top-left cell is (col, row).
// Cells outside the grid are blank.
func (c *CellSurface) View(col, row, width, height int) string {
	lines := make([]string, 0, height)
	for y := row; y < row+height; y++ {
		lines = append(lines, c.viewLine(col, y, width))
	}
	return strings.Join(lines, "\n")
}

func (c *CellSurface) viewLine(col, row, width int) string {
	var b, run strings.Builder
	var runStyle cell
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(cellStyle(runStyle).Render(run.String()))
		run.Reset()
	}
	for x := col; x < col+width; x++ {
		p := c.at(x, row)
		cur := blankCell
		if p != nil {
			cur = *p
		}
		switch {
		case cur.r == continuation && x == col:
			cur.r = ' '
		case cur.r == continuation:
			continue
		case ansi.StringWidth(string(cur.r)) == 2 && x == col+width-1:
			cur.r = ' '
		}
		if !sameStyle(cur, runStyle) {
			flush()
			runStyle = cur
		}
		run.WriteRune(cur.r)
	}
	flush()
	return b.String()
}

func sameStyle(a, b cell) bool {
	return a.hasFg == b.hasFg && a.hasBg == b.hasBg && a.fg == b.fg && a.bg == b.bg
}

func cellStyle(c cell) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c.hasFg {
		st = st.Foreground(lipgloss.Color(c.fg.Hex()))
	}
	if c.hasBg {
		st = st.Background(lipgloss.Color(c.bg.Hex()))
	}
	return st
}
