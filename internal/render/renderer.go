package render

import (
	"log/slog"
	"math"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/util"
	"github.com/jonboulle/clockwork"
)

// Renderer paints timeline headers and chart bodies.
type Renderer struct {
	Palette Palette
	Metrics Metrics
	Locale  string

	clock  clockwork.Clock
	logger *slog.Logger
}

// NewRenderer creates a renderer with pixel metrics and the default palette.
// The clock decides where the today marker goes.
func NewRenderer(clock clockwork.Clock, logger *slog.Logger) *Renderer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Renderer{
		Palette: DefaultPalette(),
		Metrics: PixelMetrics,
		Locale:  config.LocaleEnglish,
		clock:   clock,
		logger:  util.OrDiscard(logger),
	}
}

// Timeline computes the bands and range covering rows.
func (r *Renderer) Timeline(rows []gantt.Row, unit gantt.Unit) gantt.Timeline {
	return gantt.BuildTimeline(rows, unit, r.Locale)
}

// ContentWidth is the width the chart needs at the unit's density, never
// less than minWidth.
func (r *Renderer) ContentWidth(tl gantt.Timeline, minWidth float64) float64 {
	w := float64(tl.Range.Days()) * DensityFor(tl.Unit).DayWidth
	return math.Max(w, minWidth)
}

// RenderHeader paints the header bands for rows. It returns false, leaving
// the surface cleared, when there is nothing to draw.
func (r *Renderer) RenderHeader(s Surface, width float64, rows []gantt.Row, unit gantt.Unit) bool {
	if gantt.ValidRows(rows) == 0 {
		s.Clear()
		return false
	}
	return r.PaintHeader(s, width, r.Timeline(rows, unit))
}

// RenderChart paints the chart body for rows.
func (r *Renderer) RenderChart(s Surface, width float64, rows []gantt.Row, unit gantt.Unit) bool {
	return r.PaintChart(s, width, rows, r.Timeline(rows, unit))
}

// PaintHeader paints tl's bands: background, centred labels, dashed
// separators on each band's right edge and the today marker.
func (r *Renderer) PaintHeader(s Surface, width float64, tl gantt.Timeline) bool {
	if !tl.Range.Valid() || width <= 0 {
		r.logger.Debug("header skipped", "width", width, "range_valid", tl.Range.Valid())
		s.Clear()
		return false
	}
	d := DensityFor(tl.Unit)
	h := r.Metrics.HeaderHeight
	s.SetSize(width, h)
	s.SetFillColor(r.Palette.HeaderBackground)
	s.FillRect(0, 0, width, h)

	s.SetFont(d.FontSize)
	for _, b := range tl.Bands {
		x0 := tl.Range.X(b.Start, width)
		x1 := tl.Range.X(b.EndExclusive(), width)
		s.SetFillColor(r.Palette.Text)
		s.FillText((x0+x1)/2, h/2+d.FontSize/3, b.Label, AlignCenter)
		s.SetStrokeColor(r.Palette.Grid)
		s.StrokeLine(x1, 0, x1, h, d.Separator())
	}
	r.paintToday(s, width, h, tl.Range)
	return true
}

// PaintChart paints one bar per dated row against tl. Rows without dates
// keep their slot but draw nothing.
func (r *Renderer) PaintChart(s Surface, width float64, rows []gantt.Row, tl gantt.Timeline) bool {
	if !tl.Range.Valid() || width <= 0 || gantt.ValidRows(rows) == 0 {
		r.logger.Debug("chart skipped", "width", width, "rows", len(rows), "range_valid", tl.Range.Valid())
		s.Clear()
		return false
	}
	d := DensityFor(tl.Unit)
	rh, bh := r.Metrics.RowHeight, r.Metrics.BarHeight
	height := float64(len(rows)) * rh
	s.SetSize(width, height)
	s.SetFillColor(r.Palette.Background)
	s.FillRect(0, 0, width, height)

	s.SetStrokeColor(r.Palette.Grid)
	for _, b := range tl.Bands {
		x := tl.Range.X(b.EndExclusive(), width)
		s.StrokeLine(x, 0, x, height, d.Separator())
	}

	for i, row := range rows {
		n := row.Node
		if n == nil || !n.HasDates() {
			continue
		}
		x0 := tl.Range.X(n.Start, width)
		x1 := tl.Range.X(n.End.AddDate(0, 0, 1), width)
		w := math.Max(x1-x0, 1)
		y := float64(i)*rh + (rh-bh)/2

		s.SetFillColor(r.Palette.Track(n.Kind))
		s.FillRect(x0, y, w, bh)
		if n.PercentComplete > 0 {
			s.SetFillColor(r.Palette.KindColor(n.Kind))
			s.FillRect(x0, y, w*float64(n.PercentComplete)/100, bh)
		}
	}
	r.paintToday(s, width, height, tl.Range)
	return true
}

func (r *Renderer) paintToday(s Surface, width, height float64, rng gantt.Range) {
	today := gantt.DateOf(r.clock.Now())
	if !rng.Contains(today) {
		return
	}
	x := rng.X(today, width)
	s.SetStrokeColor(r.Palette.Today)
	s.StrokeLine(x, 0, x, height, Stroke{Width: 2})
}

// TodayX is the today marker's offset, or -1 when today is outside tl.
func (r *Renderer) TodayX(tl gantt.Timeline, width float64) float64 {
	today := gantt.DateOf(r.clock.Now())
	if !tl.Range.Valid() || !tl.Range.Contains(today) {
		return -1
	}
	return tl.Range.X(today, width)
}
