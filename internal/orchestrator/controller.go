package orchestrator

import (
	"log/slog"
	"time"

	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/render"
	"github.com/akyairhashvil/mvno/internal/scroll"
	"github.com/akyairhashvil/mvno/internal/util"
)

// View is what a host mounts: two drawing surfaces and three scroll
// regions. Missing pieces are skipped.
type View struct {
	Header       render.Surface
	Chart        render.Surface
	HeaderRegion scroll.PaddedRegion
	ChartRegion  scroll.Region
	ListRegion   scroll.Region
}

// Hooks let the host react to paints, e.g. to resize its scroll content.
type Hooks struct {
	ChartPainted  func(width, height float64)
	HeaderPainted func(width, height float64)
	// ExpansionChanged fires after user-driven expansion changes.
	ExpansionChanged func(*gantt.ExpansionState)
}

// Options configure a Controller.
type Options struct {
	Unit        gantt.Unit
	Debounce    time.Duration
	HeaderDelay time.Duration
	Scroll      scroll.Options
	Hooks       Hooks
	Logger      *slog.Logger
}

// PaintStats counts completed paint steps.
type PaintStats struct {
	Chart, Header, Restore int
}

// Controller owns one chart view: the tasks, the tree built from them, the
// expansion state, the visible rows and timeline, and the renderer,
// synchronizer and orchestrator that draw them.
type Controller struct {
	loop     *scroll.Loop
	renderer *render.Renderer
	sync     *scroll.Synchronizer
	orch     *Orchestrator
	hooks    Hooks
	logger   *slog.Logger
	view     View

	unit      gantt.Unit
	tasks     []models.Task
	filter    func(models.Task) bool
	tree      []*gantt.TreeNode
	expansion *gantt.ExpansionState
	rows      []gantt.Row
	timeline  gantt.Timeline

	viewWidth  float64
	chartWidth float64

	saved      scroll.Position
	hasSaved   bool
	positioned bool
	stats      PaintStats
}

func NewController(loop *scroll.Loop, renderer *render.Renderer, opts Options) *Controller {
	logger := util.OrDiscard(opts.Logger)
	if opts.Scroll.Logger == nil {
		opts.Scroll.Logger = logger
	}
	unit := opts.Unit
	if unit == "" {
		unit = gantt.UnitMonth
	}
	c := &Controller{
		loop:      loop,
		renderer:  renderer,
		sync:      scroll.NewSynchronizer(loop, opts.Scroll),
		hooks:     opts.Hooks,
		logger:    logger,
		unit:      unit,
		expansion: gantt.NewExpansionState(),
	}
	c.orch = New(loop, Steps{
		PaintChart:    c.paintChart,
		PaintHeader:   c.paintHeader,
		RestoreScroll: c.restoreScroll,
	}, opts.Debounce, opts.HeaderDelay, logger)
	return c
}

// Attach mounts the host's surfaces and regions.
func (c *Controller) Attach(v View) {
	c.view = v
	c.sync.Attach(v.HeaderRegion, v.ChartRegion, v.ListRegion)
	c.positioned = false
	c.orch.Schedule("attach")
}

// Detach unmounts the view: pending repaints are dropped and the
// synchronizer lets go of its regions.
func (c *Controller) Detach() {
	c.orch.Cancel()
	c.sync.Detach()
	c.view = View{}
	c.positioned = false
	c.hasSaved = false
}

func (c *Controller) Synchronizer() *scroll.Synchronizer { return c.sync }
func (c *Controller) Orchestrator() *Orchestrator        { return c.orch }
func (c *Controller) Expansion() *gantt.ExpansionState   { return c.expansion }
func (c *Controller) Rows() []gantt.Row                  { return c.rows }
func (c *Controller) Tree() []*gantt.TreeNode            { return c.tree }
func (c *Controller) Timeline() gantt.Timeline           { return c.timeline }
func (c *Controller) Unit() gantt.Unit                   { return c.unit }
func (c *Controller) Tasks() []models.Task               { return c.tasks }
func (c *Controller) ChartWidth() float64                { return c.chartWidth }
func (c *Controller) Stats() PaintStats                  { return c.stats }

// SetTasks replaces the task source. Tasks without usable dates are dropped.
func (c *Controller) SetTasks(tasks []models.Task) {
	c.tasks = models.ValidTasks(tasks)
	c.rebuild()
	c.saveScroll()
	c.orch.Schedule("tasks")
}

// SetFilter limits the tree to tasks matching fn; nil shows everything.
func (c *Controller) SetFilter(fn func(models.Task) bool) {
	c.filter = fn
	c.rebuild()
	c.saveScroll()
	c.orch.Schedule("filter")
}

// UpdateTask applies upd to the local copy of a task and repaints. It
// reports whether the task was found; persisting is the caller's job.
func (c *Controller) UpdateTask(id string, upd models.TaskUpdate) bool {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i] = upd.Apply(c.tasks[i])
			c.rebuild()
			c.saveScroll()
			c.orch.Schedule("update")
			return true
		}
	}
	return false
}

// RestoreExpansion replaces the expanded ids, e.g. from saved settings.
func (c *Controller) RestoreExpansion(ids []gantt.NodeID) {
	c.expansion.Restore(ids)
	c.refreshRows()
	c.orch.Schedule("restore-expansion")
}

// Toggle opens or closes a group and repaints without debouncing.
func (c *Controller) Toggle(id gantt.NodeID) bool {
	n := gantt.Find(c.tree, id)
	if n == nil || !n.HasChildren() {
		return false
	}
	c.saveScroll()
	open := c.expansion.Toggle(id)
	c.refreshRows()
	c.expansionChanged()
	c.orch.Immediate("toggle")
	return open
}

func (c *Controller) ExpandAll() {
	c.saveScroll()
	c.expansion.ExpandAll()
	c.refreshRows()
	c.expansionChanged()
	c.orch.Schedule("expand-all")
}

func (c *Controller) CollapseAll() {
	c.saveScroll()
	c.expansion.CollapseAll()
	c.refreshRows()
	c.expansionChanged()
	c.orch.Schedule("collapse-all")
}

// ExpandToLevel shows rows down to level.
func (c *Controller) ExpandToLevel(level int) {
	c.saveScroll()
	c.expansion.ExpandToLevel(level)
	c.refreshRows()
	c.expansionChanged()
	c.orch.Schedule("expand-level")
}

// SetUnit switches between month and week headers. The horizontal layout
// changes completely, so the view is positioned afresh.
func (c *Controller) SetUnit(u gantt.Unit) {
	if u == c.unit {
		return
	}
	c.unit = u
	c.refreshTimeline()
	c.positioned = false
	c.hasSaved = false
	c.orch.Schedule("unit")
}

// Resize tells the controller the chart's visible width changed.
func (c *Controller) Resize(chartClientWidth float64) {
	c.viewWidth = chartClientWidth
	c.refreshTimeline()
	c.sync.OnResize()
	c.saveScroll()
	c.orch.Schedule("resize")
}

// Render requests a debounced repaint.
func (c *Controller) Render() { c.orch.Schedule("render") }

// ScrollToToday centres the today marker. It reports false when today is
// outside the timeline or the chart has not been painted.
func (c *Controller) ScrollToToday() bool {
	x := c.renderer.TodayX(c.timeline, c.chartWidth)
	if x < 0 || c.view.ChartRegion == nil {
		return false
	}
	c.sync.PositionInitial(x - c.view.ChartRegion.ClientWidth()/2)
	return true
}

// RowAt maps a vertical chart offset to a row index, or -1.
func (c *Controller) RowAt(y float64) int {
	i := int(y / c.renderer.Metrics.RowHeight)
	if y < 0 || i >= len(c.rows) {
		return -1
	}
	return i
}

func (c *Controller) rebuild() {
	tasks := c.tasks
	if c.filter != nil {
		tasks = make([]models.Task, 0, len(c.tasks))
		for _, t := range c.tasks {
			if c.filter(t) {
				tasks = append(tasks, t)
			}
		}
	}
	c.tree = gantt.BuildTree(tasks)
	c.expansion.SetTreeData(c.tree)
	c.refreshRows()
}

func (c *Controller) refreshRows() {
	c.rows = gantt.Flatten(c.tree, c.expansion)
	c.refreshTimeline()
}

func (c *Controller) refreshTimeline() {
	c.timeline = c.renderer.Timeline(c.rows, c.unit)
	c.chartWidth = c.renderer.ContentWidth(c.timeline, c.viewWidth)
}

func (c *Controller) expansionChanged() {
	if c.hooks.ExpansionChanged != nil {
		c.hooks.ExpansionChanged(c.expansion)
	}
}

// saveScroll remembers the chart offset to restore after the next paint.
// The first save wins until it is consumed.
func (c *Controller) saveScroll() {
	if c.hasSaved || !c.positioned {
		return
	}
	c.saved = c.sync.Snapshot()
	c.hasSaved = true
}

func (c *Controller) paintChart() {
	if c.view.Chart == nil {
		return
	}
	ok := c.renderer.PaintChart(c.view.Chart, c.chartWidth, c.rows, c.timeline)
	c.stats.Chart++
	if c.hooks.ChartPainted != nil {
		c.hooks.ChartPainted(paintedSize(c.view.Chart, ok))
	}
	c.sync.OnContentChange()
}

func (c *Controller) paintHeader() {
	if c.view.Header == nil {
		return
	}
	ok := c.renderer.PaintHeader(c.view.Header, c.chartWidth, c.timeline)
	c.stats.Header++
	if c.hooks.HeaderPainted != nil {
		c.hooks.HeaderPainted(paintedSize(c.view.Header, ok))
	}
	c.sync.UpdateGutter()
}

func (c *Controller) restoreScroll() {
	c.stats.Restore++
	switch {
	case !c.positioned && c.timeline.Range.Valid():
		c.positioned = true
		target := 0.0
		if x := c.renderer.TodayX(c.timeline, c.chartWidth); x >= 0 && c.view.ChartRegion != nil {
			target = x - c.view.ChartRegion.ClientWidth()/2
		}
		c.sync.PositionInitial(target)
	case c.hasSaved:
		c.hasSaved = false
		c.sync.Restore(c.saved)
	default:
		c.sync.Resync()
	}
}

func paintedSize(s render.Surface, ok bool) (float64, float64) {
	if !ok {
		return 0, 0
	}
	return s.Size()
}
