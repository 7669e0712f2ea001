package render

import (
	"io"
	"strings"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/go-pdf/fpdf"
	colorful "github.com/lucasb-eyer/go-colorful"
	"go.trai.ch/zerr"
)

var (
	ErrNothingToExport = zerr.New("no dated rows to export")
	ErrPDFOutput       = zerr.New("failed to write pdf")
)

const pdfFont = "Helvetica"

// PDFSurface draws onto a region of an fpdf page whose top-left corner is
// the origin passed to NewPDFSurface.
type PDFSurface struct {
	pdf    *fpdf.Fpdf
	ox, oy float64
	width  float64
	height float64
	tr     func(string) string
}

func NewPDFSurface(pdf *fpdf.Fpdf, originX, originY float64) *PDFSurface {
	return &PDFSurface{
		pdf: pdf,
		ox:  originX,
		oy:  originY,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (p *PDFSurface) SetSize(w, h float64)     { p.width, p.height = w, h }
func (p *PDFSurface) Size() (float64, float64) { return p.width, p.height }

func (p *PDFSurface) Clear() {
	if p.width <= 0 || p.height <= 0 {
		return
	}
	p.pdf.SetFillColor(255, 255, 255)
	p.pdf.Rect(p.ox, p.oy, p.width, p.height, "F")
}

// SetFillColor also sets the text colour, as FillText uses the fill.
func (p *PDFSurface) SetFillColor(c colorful.Color) {
	r, g, b := c.RGB255()
	p.pdf.SetFillColor(int(r), int(g), int(b))
	p.pdf.SetTextColor(int(r), int(g), int(b))
}

func (p *PDFSurface) SetStrokeColor(c colorful.Color) {
	r, g, b := c.RGB255()
	p.pdf.SetDrawColor(int(r), int(g), int(b))
}

func (p *PDFSurface) SetFont(size float64) {
	p.pdf.SetFont(pdfFont, "", size)
}

func (p *PDFSurface) FillRect(x, y, w, h float64) {
	p.pdf.Rect(p.ox+x, p.oy+y, w, h, "F")
}

func (p *PDFSurface) FillText(x, y float64, text string, align Align) {
	text = p.tr(text)
	x = alignedX(x, p.pdf.GetStringWidth(text), align)
	p.pdf.Text(p.ox+x, p.oy+y, text)
}

func (p *PDFSurface) StrokeLine(x1, y1, x2, y2 float64, s Stroke) {
	width := s.Width
	if width <= 0 {
		width = 1
	}
	p.pdf.SetLineWidth(width)
	p.pdf.SetDashPattern(s.Dash, 0)
	p.pdf.Line(p.ox+x1, p.oy+y1, p.ox+x2, p.oy+y2)
	if len(s.Dash) > 0 {
		p.pdf.SetDashPattern([]float64{}, 0)
	}
}

// PDFOptions controls ExportPDF.
type PDFOptions struct {
	Title string
	Unit  gantt.Unit
}

const (
	pdfMargin     = 28.0
	pdfTitleSpace = 24.0
)

// ExportPDF writes rows as a landscape A4 Gantt chart, paginated by rows.
// Every page shares one timeline so bars line up across pages.
func (r *Renderer) ExportPDF(w io.Writer, rows []gantt.Row, opts PDFOptions) error {
	if gantt.ValidRows(rows) == 0 {
		return ErrNothingToExport
	}
	tl := r.Timeline(rows, opts.Unit)
	if !tl.Range.Valid() {
		return ErrNothingToExport
	}

	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pageW, pageH := pdf.GetPageSize()
	listW := float64(config.ListWidthPx)
	chartW := pageW - 2*pdfMargin - listW
	top := pdfMargin + pdfTitleSpace
	bodyTop := top + r.Metrics.HeaderHeight
	perPage := int((pageH - bodyTop - pdfMargin) / r.Metrics.RowHeight)
	if perPage < 1 {
		perPage = 1
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for from := 0; from < len(rows); from += perPage {
		to := min(from+perPage, len(rows))
		page := rows[from:to]
		pdf.AddPage()

		pdf.SetFont(pdfFont, "B", 14)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(pdfMargin, pdfMargin+14, tr(opts.Title))

		r.PaintHeader(NewPDFSurface(pdf, pdfMargin+listW, top), chartW, tl)
		r.paintPDFList(pdf, tr, page, pdfMargin, bodyTop, listW)
		r.PaintChart(NewPDFSurface(pdf, pdfMargin+listW, bodyTop), chartW, page, tl)
	}

	if err := pdf.Output(w); err != nil {
		return zerr.Wrap(err, ErrPDFOutput.Error())
	}
	return nil
}

func (r *Renderer) paintPDFList(pdf *fpdf.Fpdf, tr func(string) string, rows []gantt.Row, x, y, width float64) {
	pdf.SetFont(pdfFont, "", 9)
	tc := r.Palette.Text
	cr, cg, cb := tc.RGB255()
	pdf.SetTextColor(int(cr), int(cg), int(cb))
	for i, row := range rows {
		indent := float64(row.Depth * config.IndentPx)
		label := tr(fitPDFText(pdf, strings.TrimSpace(row.Node.Label()), width-indent-4))
		pdf.Text(x+indent, y+float64(i)*r.Metrics.RowHeight+r.Metrics.RowHeight/2+3, label)
	}
}

// fitPDFText shortens s until it fits width.
func fitPDFText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
