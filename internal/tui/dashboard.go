package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/akyairhashvil/mvno/internal/backup"
	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/orchestrator"
	"github.com/akyairhashvil/mvno/internal/render"
	"github.com/akyairhashvil/mvno/internal/scroll"
	"github.com/akyairhashvil/mvno/internal/util"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

// --- Messages ---

// frameMsg drives the scroll loop: every frame runs due timers, queued
// scroll events and animation-frame callbacks.
type frameMsg time.Time

// backupTickMsg asks for an auto-backup check.
type backupTickMsg time.Time

const backupCheckInterval = time.Minute

func frameCmd() tea.Cmd {
	return tea.Tick(config.FrameIntervalMillis*time.Millisecond, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func backupTickCmd() tea.Cmd {
	return tea.Tick(backupCheckInterval, func(t time.Time) tea.Msg { return backupTickMsg(t) })
}

// Options wires the dashboard to its collaborators.
type Options struct {
	Settings config.Settings
	Backups  *backup.Manager // nil disables backups
	Clock    clockwork.Clock
	Logger   *slog.Logger
	// ReportsDir receives PDF and task exports.
	ReportsDir string
}

// --- Model ---
type DashboardModel struct {
	ctx        context.Context
	db         Database
	backups    *backup.Manager
	policy     backup.Policy
	clock      clockwork.Clock
	logger     *slog.Logger
	reportsDir string

	loop     *scroll.Loop
	renderer *render.Renderer
	ctrl     *orchestrator.Controller
	panes    *Panes
	keys     *HandlerRegistry

	view   *ViewState
	modal  *ModalManager
	search SearchManager
	edit   EditForm
	theme  Theme

	frameScheduled bool
	Message        string
	err            error
	width, height  int
}

func NewDashboardModel(ctx context.Context, db Database, opts Options) DashboardModel {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := util.OrDiscard(opts.Logger)
	s := opts.Settings
	theme := ThemeFor(s.Theme)

	loop := scroll.NewLoop(clock)
	renderer := render.NewRenderer(clock, logger)
	renderer.Metrics = render.CellMetrics(cellH)
	if s.Locale != "" {
		renderer.Locale = s.Locale
	}
	renderer.Palette = theme.ChartPalette()

	panes := newPanes(loop)
	scrollOpts := scroll.DefaultOptions()
	if s.Scroll.SyncInterval > 0 {
		scrollOpts.SyncInterval = s.Scroll.SyncInterval.Std()
	}
	if s.Scroll.LayoutRetryDelay > 0 {
		scrollOpts.RetryDelay = s.Scroll.LayoutRetryDelay.Std()
	}
	if s.Scroll.LayoutRetryLimit > 0 {
		scrollOpts.RetryLimit = s.Scroll.LayoutRetryLimit
	}
	scrollOpts.Logger = logger

	view := newViewState(s.ListWidth)
	ctrl := orchestrator.NewController(loop, renderer, orchestrator.Options{
		Unit:        gantt.ParseUnit(s.Unit),
		Debounce:    s.Render.Debounce.Std(),
		HeaderDelay: s.Render.HeaderDelay.Std(),
		Scroll:      scrollOpts,
		Logger:      logger,
		Hooks: orchestrator.Hooks{
			ChartPainted:  panes.ChartPainted,
			HeaderPainted: panes.HeaderPainted,
			ExpansionChanged: func(*gantt.ExpansionState) {
				view.expansionDirty = true
			},
		},
	})
	ctrl.Attach(panes.Wire(ctrl.Synchronizer()))

	si := textinput.New()
	si.Placeholder = "status:in-progress major:Network resource:ops text..."
	si.Width = config.EditPanelWidth - 4

	m := DashboardModel{
		ctx:        ctx,
		db:         db,
		backups:    opts.Backups,
		policy:     backup.PolicyFromSettings(s.Backup),
		clock:      clock,
		logger:     logger,
		reportsDir: opts.ReportsDir,
		loop:       loop,
		renderer:   renderer,
		ctrl:       ctrl,
		panes:      panes,
		keys:       NewHandlerRegistry(),
		view:       view,
		modal:      newModalManager(),
		search:     NewSearchManager(si),
		edit:       NewEditForm(),
		theme:      theme,
	}
	registerKeys(m.keys)
	return m
}

func (m DashboardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{loadTasksCmd(m.ctx, m.db)}
	if m.backups != nil && m.policy.Enabled {
		cmds = append(cmds, backupTickCmd())
	}
	return tea.Batch(cmds...)
}

// quit unmounts the chart view before the program exits.
func (m DashboardModel) quit() (DashboardModel, tea.Cmd, bool) {
	m.ctrl.Detach()
	return m, tea.Quit, true
}

// Controller exposes the chart controller, mainly for tests.
func (m DashboardModel) Controller() *orchestrator.Controller { return m.ctrl }

// pump schedules the next frame while the scroll loop has work queued.
func (m *DashboardModel) pump() tea.Cmd {
	if m.frameScheduled || !m.loop.Pending() {
		return nil
	}
	m.frameScheduled = true
	return frameCmd()
}

// cursorRow returns the selected row, if any.
func (m DashboardModel) cursorRow() (gantt.Row, bool) {
	rows := m.ctrl.Rows()
	if m.view.cursor < 0 || m.view.cursor >= len(rows) {
		return gantt.Row{}, false
	}
	return rows[m.view.cursor], true
}

func (m *DashboardModel) setStatusError(msg string) {
	m.Message = ""
	m.err = &statusError{msg: msg}
}

type statusError struct{ msg string }

func (e *statusError) Error() string { return e.msg }
