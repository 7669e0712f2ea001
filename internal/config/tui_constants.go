package config

// Layout constants.
const (
	// DefaultListWidth is the side list width in columns.
	DefaultListWidth = 36

	// MinListWidth is the narrowest side list we render.
	MinListWidth = 16

	// HeaderRows is the height of the timeline header pane.
	HeaderRows = 2

	// FooterRows holds the statistics and key help lines.
	FooterRows = 2

	// ScrollbarWidth is the gutter reserved by the chart pane when rows overflow.
	ScrollbarWidth = 1

	// IndentColumns is the indent per tree level in the side list.
	IndentColumns = 2

	// FrameInterval paces the TUI's animation frames.
	FrameIntervalMillis = 16

	// CellWidthPx and CellHeightPx are the pixel size of one terminal cell
	// as seen by the renderer and the scroll regions.
	CellWidthPx  = 8
	CellHeightPx = 14

	// ScrollStepColumns is the horizontal distance of one h/l key press.
	ScrollStepColumns = 4

	// EditPanelWidth is the width of the edit and search panels.
	EditPanelWidth = 50
)

// Pixel layout used by the PDF renderer.
const (
	RowHeightPx    = 28
	BarHeightPx    = 16
	HeaderHeightPx = 36
	IndentPx       = 16
	ListWidthPx    = 220
)

// Input constraints.
const (
	MaxNameLength     = 120
	MaxResourceLength = 60

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "…"
)
