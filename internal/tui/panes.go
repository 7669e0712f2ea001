package tui

import (
	"math"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/orchestrator"
	"github.com/akyairhashvil/mvno/internal/render"
	"github.com/akyairhashvil/mvno/internal/scroll"
)

const (
	cellW = float64(config.CellWidthPx)
	cellH = float64(config.CellHeightPx)
)

// Panes are the three scrollable areas of the chart screen. Geometry is
// kept in pixels so the synchronizer sees the same numbers a browser
// would; one terminal cell is cellW x cellH pixels.
type Panes struct {
	Header *scroll.Viewport
	Chart  *scroll.Viewport
	List   *scroll.Viewport

	HeaderSurface *render.CellSurface
	ChartSurface  *render.CellSurface

	ListCols  int
	ChartCols int
	BodyRows  int
}

func newPanes(loop *scroll.Loop) *Panes {
	p := &Panes{
		Header:        scroll.NewViewport("header", loop),
		Chart:         scroll.NewViewport("chart", loop),
		List:          scroll.NewViewport("list", loop),
		HeaderSurface: render.NewCellSurface(cellW, cellH),
		ChartSurface:  render.NewCellSurface(cellW, cellH),
	}
	p.Chart.SetScrollbar(config.ScrollbarWidth * cellW)
	return p
}

// Wire connects scroll events to the synchronizer and returns the view a
// controller mounts.
func (p *Panes) Wire(sync *scroll.Synchronizer) orchestrator.View {
	p.Header.OnScroll(sync.OnHeaderScroll)
	p.Chart.OnScroll(sync.OnChartScroll)
	p.List.OnScroll(sync.OnListScroll)
	return orchestrator.View{
		Header:       p.HeaderSurface,
		Chart:        p.ChartSurface,
		HeaderRegion: p.Header,
		ChartRegion:  p.Chart,
		ListRegion:   p.List,
	}
}

// Layout sizes the panes for a terminal of width x height cells. The side
// list takes listCols (clamped), the header HeaderRows and the footer
// FooterRows; the chart gets the rest. A one-column divider separates
// list and chart.
func (p *Panes) Layout(width, height, listCols int) {
	listCols = max(config.MinListWidth, listCols)
	if listCols > width/2 {
		listCols = max(1, width/2)
	}
	p.ListCols = listCols
	p.ChartCols = max(0, width-listCols-1)
	p.BodyRows = max(0, height-config.HeaderRows-config.FooterRows)

	p.Header.SetOuterSize(float64(p.ChartCols)*cellW, config.HeaderRows*cellH)
	p.Chart.SetOuterSize(float64(p.ChartCols)*cellW, float64(p.BodyRows)*cellH)
	p.List.SetOuterSize(float64(p.ListCols)*cellW, float64(p.BodyRows)*cellH)
}

// ChartPainted and HeaderPainted resize the scrollable content after a paint.
func (p *Panes) ChartPainted(w, h float64) {
	p.Chart.SetContentSize(w, h)
	p.List.SetContentSize(float64(p.ListCols)*cellW, h)
}

func (p *Panes) HeaderPainted(w, h float64) {
	p.Header.SetContentSize(w, h)
}

// FirstRow is the index of the topmost visible list row.
func (p *Panes) FirstRow() int {
	return int(math.Round(p.List.ScrollTop() / cellH))
}

// ScrollbarShown reports whether the chart reserves its scrollbar column.
func (p *Panes) ScrollbarShown() bool {
	return scroll.Gutter(p.Chart) > 0
}

// HeaderView renders the visible part of the header surface.
func (p *Panes) HeaderView() string {
	cols := int(p.Header.ClientWidth() / cellW)
	pad := p.ChartCols - cols
	view := p.HeaderSurface.View(toCell(p.Header.ScrollLeft(), cellW), 0, cols, config.HeaderRows)
	return padLines(view, pad)
}

// ChartView renders the visible part of the chart surface plus the
// scrollbar column when one is shown.
func (p *Panes) ChartView(bar func(int) string) string {
	cols := int(p.Chart.ClientWidth() / cellW)
	view := p.ChartSurface.View(toCell(p.Chart.ScrollLeft(), cellW), toCell(p.Chart.ScrollTop(), cellH), cols, p.BodyRows)
	if !p.ScrollbarShown() || bar == nil {
		return view
	}
	return appendColumn(view, bar)
}

// thumb returns the scrollbar thumb's first row and length.
func (p *Panes) thumb() (int, int) {
	total := p.Chart.ScrollHeight()
	if total <= 0 || p.BodyRows == 0 {
		return 0, 0
	}
	length := max(1, int(float64(p.BodyRows)*p.Chart.ClientHeight()/total))
	maxTop := scroll.MaxScrollTop(p.Chart)
	start := 0
	if maxTop > 0 {
		start = int(math.Round(float64(p.BodyRows-length) * p.Chart.ScrollTop() / maxTop))
	}
	return start, length
}

func toCell(px, size float64) int {
	return int(math.Round(px / size))
}
