package render

import (
	"strings"
	"testing"

	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/testutil"
)

func TestCellSurfaceGrid(t *testing.T) {
	c := NewCellSurface(8, 14)
	c.SetSize(80, 28)
	if c.Cols() != 10 || c.Rows() != 2 {
		t.Fatalf("grid = %dx%d", c.Cols(), c.Rows())
	}
	c.SetFillColor(DefaultPalette().Text)
	c.FillText(40, 20, "abcd", AlignCenter)
	if got := c.PlainLine(1); got != "   abcd   " {
		t.Fatalf("line = %q", got)
	}
	c.SetStrokeColor(DefaultPalette().Grid)
	c.StrokeLine(80, 0, 80, 28, Stroke{Dash: []float64{2, 2}})
	if got := c.PlainLine(0); !strings.HasSuffix(got, "┊") {
		t.Fatalf("expected dashed separator in last column, got %q", got)
	}
}

func TestCellSurfaceWideRunes(t *testing.T) {
	c := NewCellSurface(1, 1)
	c.SetSize(6, 1)
	c.FillText(0, 0, "1월x", AlignLeft)
	if got := c.PlainLine(0); got != "1월x  " {
		t.Fatalf("line = %q", got)
	}
	// A view starting on the second half of a wide rune pads with a space.
	if got := c.View(2, 0, 3, 1); !strings.Contains(got, "x") || strings.Contains(got, "월") {
		t.Fatalf("view = %q", got)
	}
}

func TestCellSurfaceFillRectOverwritesText(t *testing.T) {
	c := NewCellSurface(1, 1)
	c.SetSize(4, 1)
	c.FillText(0, 0, "abcd", AlignLeft)
	c.FillRect(1, 0, 2, 1)
	if got := c.PlainLine(0); got != "a  d" {
		t.Fatalf("line = %q", got)
	}
}

func TestCellSurfaceRendersChart(t *testing.T) {
	r := NewRenderer(nil, nil)
	r.Metrics = CellMetrics(1)
	tree := gantt.BuildTree(testutil.ScenarioTasks())
	rows := gantt.Flatten(tree, gantt.NewIDSet(tree[0].ID))
	c := NewCellSurface(1, 1)
	if !r.RenderChart(c, 70, rows, gantt.UnitWeek) {
		t.Fatalf("expected chart to render")
	}
	if c.Rows() != len(rows) || c.Cols() != 70 {
		t.Fatalf("grid = %dx%d", c.Cols(), c.Rows())
	}
	if view := c.View(0, 0, 5, 2); len(strings.Split(view, "\n")) != 2 {
		t.Fatalf("expected two view lines, got %q", view)
	}
}
