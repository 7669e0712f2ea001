package render

import (
	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/gantt"
)

// Density is the visual density of one date unit.
type Density struct {
	FontSize  float64
	LineWidth float64
	Dash      []float64
	// DayWidth is the minimum horizontal space given to one day.
	DayWidth float64
}

// Separator is the dashed band separator stroke.
func (d Density) Separator() Stroke {
	return Stroke{Width: d.LineWidth, Dash: d.Dash}
}

var densities = map[gantt.Unit]Density{
	gantt.UnitMonth: {FontSize: 12, LineWidth: 1, Dash: []float64{4, 3}, DayWidth: 4},
	gantt.UnitWeek:  {FontSize: 10, LineWidth: 0.5, Dash: []float64{2, 2}, DayWidth: 12},
}

// DensityFor looks up the unit's density, falling back to months.
func DensityFor(u gantt.Unit) Density {
	if d, ok := densities[u]; ok {
		return d
	}
	return densities[gantt.UnitMonth]
}

// Metrics are the vertical dimensions of the chart.
type Metrics struct {
	RowHeight    float64
	BarHeight    float64
	HeaderHeight float64
}

// PixelMetrics are used for PDF output.
var PixelMetrics = Metrics{
	RowHeight:    config.RowHeightPx,
	BarHeight:    config.BarHeightPx,
	HeaderHeight: config.HeaderHeightPx,
}

// CellMetrics fits one row per terminal line of cellHeight pixels.
func CellMetrics(cellHeight float64) Metrics {
	return Metrics{
		RowHeight:    cellHeight,
		BarHeight:    cellHeight,
		HeaderHeight: cellHeight * config.HeaderRows,
	}
}
