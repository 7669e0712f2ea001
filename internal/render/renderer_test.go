package render

import (
	"math"
	"testing"
	"time"

	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/testutil"
	"github.com/jonboulle/clockwork"
)

func scenarioRows(t *testing.T) []gantt.Row {
	t.Helper()
	tree := gantt.BuildTree(testutil.ScenarioTasks())
	s := gantt.NewExpansionState()
	s.SetTreeData(tree)
	s.ExpandAll()
	return gantt.Flatten(tree, s)
}

func newTestRenderer(now time.Time) *Renderer {
	return NewRenderer(clockwork.NewFakeClockAt(now), nil)
}

func TestRenderHeaderMonthBands(t *testing.T) {
	r := newTestRenderer(testutil.Day(2026, 3, 4).Add(15 * time.Hour))
	rec := &Recorder{}
	if !r.RenderHeader(rec, 310, scenarioRows(t), gantt.UnitMonth) {
		t.Fatalf("expected header to render")
	}
	if rec.Width != 310 || rec.Height != PixelMetrics.HeaderHeight {
		t.Fatalf("unexpected surface size %vx%v", rec.Width, rec.Height)
	}
	texts := rec.Texts()
	if len(texts) != 1 || texts[0] != "Mar 2026" {
		t.Fatalf("unexpected labels %v", texts)
	}
	label := rec.Filter(OpFillText)[0]
	if label.Align != AlignCenter || label.X != 155 {
		t.Fatalf("label not centred: %+v", label)
	}
	if label.FontSize != DensityFor(gantt.UnitMonth).FontSize {
		t.Fatalf("font size %v not taken from density table", label.FontSize)
	}

	strokes := rec.Filter(OpStroke)
	if len(strokes) != 2 {
		t.Fatalf("expected separator and today marker, got %d strokes", len(strokes))
	}
	if len(strokes[0].Stroke.Dash) == 0 || strokes[0].X != 310 {
		t.Fatalf("expected dashed separator at right edge, got %+v", strokes[0])
	}
	// Mar 4 is day 3 of 31.
	wantX := 3.0 / 31.0 * 310
	if today := strokes[1]; len(today.Stroke.Dash) != 0 || math.Abs(today.X-wantX) > 1e-9 {
		t.Fatalf("unexpected today marker %+v, want x=%v", today, wantX)
	}
}

func TestRenderWeekUsesDenserStyle(t *testing.T) {
	r := newTestRenderer(testutil.Day(2025, 1, 1))
	rec := &Recorder{}
	r.RenderHeader(rec, 100, scenarioRows(t), gantt.UnitWeek)
	week, month := DensityFor(gantt.UnitWeek), DensityFor(gantt.UnitMonth)
	if week.FontSize >= month.FontSize || week.Dash[0] >= month.Dash[0] {
		t.Fatalf("week density should be smaller and tighter than month")
	}
	if got := rec.Filter(OpFillText)[0].FontSize; got != week.FontSize {
		t.Fatalf("font size = %v, want %v", got, week.FontSize)
	}
	if len(rec.Filter(OpStroke)) != 1 {
		t.Fatalf("today marker must be skipped outside the range")
	}
}

func TestRenderChartBars(t *testing.T) {
	r := newTestRenderer(testutil.Day(2020, 1, 1))
	rows := scenarioRows(t)
	rec := &Recorder{}
	if !r.RenderChart(rec, 700, rows, gantt.UnitWeek) {
		t.Fatalf("expected chart to render")
	}
	if rec.Height != float64(len(rows))*PixelMetrics.RowHeight {
		t.Fatalf("height = %v", rec.Height)
	}
	rects := rec.Filter(OpFillRect)
	// background + one track per row + a progress fill for every row above 0%
	progress := 0
	for _, row := range rows {
		if row.Node.PercentComplete > 0 {
			progress++
		}
	}
	if want := 1 + len(rows) + progress; len(rects) != want {
		t.Fatalf("expected %d rects, got %d", want, len(rects))
	}
	// Week range is Mar 2..Mar 9 and tasks run Mar 2..Mar 6 inclusive.
	track := rects[1]
	if track.X != 0 || math.Abs(track.W-500) > 1e-9 {
		t.Fatalf("unexpected bar geometry %+v", track)
	}
}

func TestRenderNoOpOnEmptyRows(t *testing.T) {
	r := newTestRenderer(time.Now())
	undated := gantt.BuildTree([]models.Task{testutil.NewTask().Undated().Build()})
	rows := gantt.Flatten(undated, nil)
	for name, render := range map[string]func(Surface) bool{
		"header": func(s Surface) bool { return r.RenderHeader(s, 100, rows, gantt.UnitMonth) },
		"chart":  func(s Surface) bool { return r.RenderChart(s, 100, rows, gantt.UnitMonth) },
		"nil":    func(s Surface) bool { return r.RenderChart(s, 100, nil, gantt.UnitMonth) },
	} {
		rec := &Recorder{}
		if render(rec) {
			t.Fatalf("%s: expected no-op", name)
		}
		if len(rec.Ops) != 1 || rec.Ops[0].Kind != OpClear {
			t.Fatalf("%s: expected a single clear, got %+v", name, rec.Ops)
		}
	}
}

func TestContentWidth(t *testing.T) {
	r := newTestRenderer(time.Now())
	tl := r.Timeline(scenarioRows(t), gantt.UnitWeek)
	if got := r.ContentWidth(tl, 10); got != 7*DensityFor(gantt.UnitWeek).DayWidth {
		t.Fatalf("ContentWidth = %v", got)
	}
	if got := r.ContentWidth(tl, 1000); got != 1000 {
		t.Fatalf("ContentWidth should respect the minimum, got %v", got)
	}
}

func TestTodayX(t *testing.T) {
	r := newTestRenderer(testutil.Day(2026, 3, 5))
	tl := r.Timeline(scenarioRows(t), gantt.UnitWeek)
	if got := r.TodayX(tl, 700); got != 300 {
		t.Fatalf("TodayX = %v, want 300", got)
	}
	r = newTestRenderer(testutil.Day(2027, 1, 1))
	if got := r.TodayX(tl, 700); got != -1 {
		t.Fatalf("TodayX outside range = %v", got)
	}
}

func TestPaletteFallback(t *testing.T) {
	if PaletteFor("nope") != DefaultPalette() {
		t.Fatalf("unknown palette should fall back to default")
	}
	p := DefaultPalette()
	if p.Track(gantt.KindTask) == p.KindColor(gantt.KindTask) {
		t.Fatalf("track colour should be blended")
	}
	if p.KindColor(gantt.NodeKind(9)) != p.KindColor(gantt.KindTask) {
		t.Fatalf("unknown kinds use the task colour")
	}
}
