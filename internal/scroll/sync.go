package scroll

import (
	"log/slog"
	"math"
	"time"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/util"
)

// State is the synchronizer's write state.
type State int

const (
	// StateIdle accepts scroll events and propagates them.
	StateIdle State = iota
	// StateSyncing means a programmatic write is in flight; scroll events
	// from the written regions are swallowed until the next frame.
	StateSyncing
)

func (s State) String() string {
	if s == StateSyncing {
		return "syncing"
	}
	return "idle"
}

// Options tune the synchronizer.
type Options struct {
	// SyncInterval is the minimum time between horizontal header writes
	// driven by chart scroll events. The last event of a burst is always
	// applied.
	SyncInterval time.Duration
	// Tolerance is the distance (px) below which offsets count as equal.
	Tolerance    float64
	RetryDelay   time.Duration
	RetryLimit   int
	VerifyFrames int
	Logger       *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		SyncInterval: config.HorizontalSyncInterval,
		Tolerance:    config.BoundaryTolerance,
		RetryDelay:   config.LayoutRetryDelay,
		RetryLimit:   config.LayoutRetryLimit,
		VerifyFrames: config.VerifyFrames,
	}
}

// Position is a saved chart scroll offset.
type Position struct {
	Left, Top float64
}

// Synchronizer couples three regions: the header scrolls horizontally with
// the chart, the side list vertically. One instance serves one chart view.
type Synchronizer struct {
	loop   *Loop
	opts   Options
	logger *slog.Logger

	header PaddedRegion
	chart  Region
	list   Region

	state         State
	written       map[Region]*echo
	chartEchoed   bool
	settlePending bool

	lastHorizontal time.Time
	trailing       *Timer

	retries    int
	retryTimer *Timer
	retryFn    func()

	writes int
}

// echo is what the synchronizer wrote to one region while syncing.
type echo struct {
	left, top       float64
	hasLeft, hasTop bool
}

func NewSynchronizer(loop *Loop, opts Options) *Synchronizer {
	d := DefaultOptions()
	if opts.SyncInterval <= 0 {
		opts.SyncInterval = d.SyncInterval
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = d.Tolerance
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = d.RetryDelay
	}
	if opts.RetryLimit <= 0 {
		opts.RetryLimit = d.RetryLimit
	}
	if opts.VerifyFrames <= 0 {
		opts.VerifyFrames = d.VerifyFrames
	}
	return &Synchronizer{
		loop:    loop,
		opts:    opts,
		logger:  util.OrDiscard(opts.Logger),
		written: make(map[Region]*echo),
	}
}

// Attach sets the regions. Any of them may be nil while not mounted;
// operations needing a missing region do nothing.
func (s *Synchronizer) Attach(header PaddedRegion, chart, list Region) {
	s.header, s.chart, s.list = nil, nil, nil
	if header != nil && !isNil(header) {
		s.header = header
	}
	if chart != nil && !isNil(chart) {
		s.chart = chart
	}
	if list != nil && !isNil(list) {
		s.list = list
	}
}

// Detach drops the regions and cancels pending timers. Frame callbacks
// already queued find no regions and do nothing.
func (s *Synchronizer) Detach() {
	s.Attach(nil, nil, nil)
	s.trailing.Stop()
	s.trailing = nil
	s.retryTimer.Stop()
	s.retryTimer = nil
	s.retryFn = nil
	s.retries = 0
	s.state = StateIdle
	s.chartEchoed = false
	clear(s.written)
}

func (s *Synchronizer) State() State { return s.state }

// Writes counts programmatic offset writes.
func (s *Synchronizer) Writes() int { return s.writes }

func (s *Synchronizer) horizontalReady() bool { return s.header != nil && s.chart != nil }
func (s *Synchronizer) verticalReady() bool   { return s.list != nil && s.chart != nil }

// swallowed reports whether an event from r echoes one of our own writes.
func (s *Synchronizer) swallowed(r Region) bool {
	if s.state != StateSyncing {
		return false
	}
	if _, ok := s.written[r]; !ok {
		return false
	}
	if r == s.chart {
		s.chartEchoed = true
	}
	return true
}

// beginWrite enters syncing for r and schedules the return to idle on the
// next frame, after the write's own scroll event has been delivered.
func (s *Synchronizer) beginWrite(r Region) *echo {
	s.state = StateSyncing
	e, ok := s.written[r]
	if !ok {
		e = &echo{}
		s.written[r] = e
	}
	if !s.settlePending {
		s.settlePending = true
		s.loop.RequestFrame(s.settle)
	}
	return e
}

// settle returns to idle. A swallowed chart event may have carried user
// movement on an axis we did not write, so that axis is re-derived.
func (s *Synchronizer) settle() {
	s.settlePending = false
	s.state = StateIdle
	e := s.written[s.chart]
	echoed := s.chartEchoed
	s.chartEchoed = false
	clear(s.written)
	if !echoed || s.chart == nil {
		return
	}
	if !s.matches(e, true) && s.horizontalReady() && !s.headerInSync() {
		s.logger.Debug("chart moved while syncing", "left", s.chart.ScrollLeft())
		s.throttledHeaderSync()
	}
	if !s.matches(e, false) {
		s.syncListNow()
	}
}

// matches reports whether the chart still holds the offset written on one
// axis during the last syncing phase.
func (s *Synchronizer) matches(e *echo, horizontal bool) bool {
	if e == nil {
		return false
	}
	if horizontal {
		return e.hasLeft && math.Abs(s.chart.ScrollLeft()-e.left) <= s.opts.Tolerance
	}
	return e.hasTop && math.Abs(s.chart.ScrollTop()-e.top) <= s.opts.Tolerance
}

func (s *Synchronizer) headerInSync() bool {
	v, _ := s.mapLeft(s.chart, s.header)
	return math.Abs(s.header.ScrollLeft()-v) <= s.opts.Tolerance
}

func (s *Synchronizer) writeLeft(r Region, v float64, exact bool) bool {
	diff := math.Abs(r.ScrollLeft() - v)
	if diff <= s.opts.Tolerance && !(exact && diff > 0) {
		return false
	}
	e := s.beginWrite(r)
	r.SetScrollLeft(v)
	e.left, e.hasLeft = r.ScrollLeft(), true
	s.writes++
	return true
}

func (s *Synchronizer) writeTop(r Region, v float64) bool {
	if math.Abs(r.ScrollTop()-v) <= s.opts.Tolerance {
		return false
	}
	e := s.beginWrite(r)
	r.SetScrollTop(v)
	e.top, e.hasTop = r.ScrollTop(), true
	s.writes++
	return true
}

// mapLeft converts src's horizontal offset to dst's scale by ratio. A source
// within Tolerance of its end maps to dst's own end.
func (s *Synchronizer) mapLeft(src, dst Region) (v float64, snapped bool) {
	srcMax, dstMax := MaxScrollLeft(src), MaxScrollLeft(dst)
	if dstMax <= 0 || srcMax <= 0 {
		return 0, false
	}
	left := src.ScrollLeft()
	if srcMax-left <= s.opts.Tolerance {
		return dstMax, true
	}
	if srcMax == dstMax {
		return left, false
	}
	return math.Min(left/srcMax*dstMax, dstMax), false
}

func (s *Synchronizer) syncHeaderNow() bool {
	if !s.horizontalReady() {
		return false
	}
	v, snapped := s.mapLeft(s.chart, s.header)
	return s.writeLeft(s.header, v, snapped)
}

func (s *Synchronizer) syncListNow() bool {
	if !s.verticalReady() {
		return false
	}
	return s.writeTop(s.list, math.Min(s.chart.ScrollTop(), MaxScrollTop(s.list)))
}

// throttledHeaderSync writes at most once per SyncInterval and always
// applies the trailing value of a burst.
func (s *Synchronizer) throttledHeaderSync() {
	if s.trailing != nil {
		return
	}
	now := s.loop.Clock().Now()
	elapsed := now.Sub(s.lastHorizontal)
	if s.lastHorizontal.IsZero() || elapsed >= s.opts.SyncInterval {
		s.lastHorizontal = now
		s.syncHeaderNow()
		return
	}
	s.trailing = s.loop.AfterFunc(s.opts.SyncInterval-elapsed, func() {
		s.trailing = nil
		s.lastHorizontal = s.loop.Clock().Now()
		s.syncHeaderNow()
	})
}

// OnChartScroll handles a scroll event from the chart body.
func (s *Synchronizer) OnChartScroll() {
	if s.chart == nil || s.swallowed(s.chart) {
		return
	}
	s.syncListNow()
	if s.horizontalReady() {
		s.throttledHeaderSync()
	}
}

// OnListScroll mirrors the side list's vertical offset onto the chart.
func (s *Synchronizer) OnListScroll() {
	if !s.verticalReady() || s.swallowed(s.list) {
		return
	}
	s.writeTop(s.chart, math.Min(s.list.ScrollTop(), MaxScrollTop(s.chart)))
}

// OnHeaderScroll maps a header scroll back onto the chart.
func (s *Synchronizer) OnHeaderScroll() {
	if !s.horizontalReady() || s.swallowed(s.header) {
		return
	}
	v, snapped := s.mapLeft(s.header, s.chart)
	s.writeLeft(s.chart, v, snapped)
}

// Resync derives header and list offsets from the chart. It returns the
// number of writes made; with unchanged geometry a second call makes none.
func (s *Synchronizer) Resync() int {
	if s.chart == nil {
		return 0
	}
	before := s.writes
	s.syncListNow()
	s.syncHeaderNow()
	return s.writes - before
}

// UpdateGutter copies the chart's scrollbar width onto the header's right
// padding so both have the same visible width, then re-derives the header
// offset, since padding changes the header's scrollable range.
func (s *Synchronizer) UpdateGutter() {
	if !s.horizontalReady() {
		return
	}
	if !s.layoutReady() {
		s.retryLater(s.UpdateGutter)
		return
	}
	s.layoutOK()
	gutter := Gutter(s.chart)
	if math.Abs(gutter-s.header.PaddingRight()) > 0.01 {
		s.logger.Debug("header padding updated", "gutter", gutter)
		s.header.SetPaddingRight(gutter)
	}
	s.syncHeaderNow()
}

// OnResize re-measures after the view changed size.
func (s *Synchronizer) OnResize() { s.UpdateGutter() }

// OnContentChange re-measures after rows were added or removed, which may
// show or hide the chart's scrollbar.
func (s *Synchronizer) OnContentChange() {
	s.UpdateGutter()
	s.syncListNow()
}

// PositionInitial sets header and chart to the same horizontal offset in
// one pass, then re-checks the header VerifyFrames frames later.
func (s *Synchronizer) PositionInitial(target float64) {
	if !s.horizontalReady() {
		return
	}
	if !s.layoutReady() {
		s.retryLater(func() { s.PositionInitial(target) })
		return
	}
	s.layoutOK()
	s.writeLeft(s.chart, clampTo(target, MaxScrollLeft(s.chart)), true)
	s.writeLeft(s.header, clampTo(target, MaxScrollLeft(s.header)), true)
	s.verifyAfter(s.opts.VerifyFrames)
}

func (s *Synchronizer) verifyAfter(frames int) {
	if frames <= 0 {
		s.verify()
		return
	}
	s.loop.RequestFrame(func() { s.verifyAfter(frames - 1) })
}

func (s *Synchronizer) verify() {
	if !s.horizontalReady() {
		return
	}
	want, _ := s.mapLeft(s.chart, s.header)
	if math.Abs(s.header.ScrollLeft()-want) > s.opts.Tolerance {
		s.logger.Debug("header offset corrected", "have", s.header.ScrollLeft(), "want", want)
		s.writeLeft(s.header, want, true)
	}
}

// Snapshot returns the chart's offsets.
func (s *Synchronizer) Snapshot() Position {
	if s.chart == nil {
		return Position{}
	}
	return Position{Left: s.chart.ScrollLeft(), Top: s.chart.ScrollTop()}
}

// Restore scrolls the chart to p and brings header and list along.
func (s *Synchronizer) Restore(p Position) {
	if s.chart == nil {
		return
	}
	if !s.layoutReady() {
		s.retryLater(func() { s.Restore(p) })
		return
	}
	s.layoutOK()
	s.writeLeft(s.chart, clampTo(p.Left, MaxScrollLeft(s.chart)), true)
	s.writeTop(s.chart, clampTo(p.Top, MaxScrollTop(s.chart)))
	s.Resync()
}

func (s *Synchronizer) layoutReady() bool {
	for _, r := range []Region{s.chart, s.header, s.list} {
		if r != nil && !laidOut(r) {
			return false
		}
	}
	return true
}

func (s *Synchronizer) layoutOK() {
	s.retries = 0
}

// retryLater runs fn after RetryDelay, at most RetryLimit times in a row.
// While a retry is pending, a newer fn replaces the older one.
func (s *Synchronizer) retryLater(fn func()) {
	s.retryFn = fn
	if s.retryTimer != nil {
		return
	}
	if s.retries >= s.opts.RetryLimit {
		s.logger.Warn("layout not ready, giving up", "attempts", s.retries)
		s.retryFn = nil
		return
	}
	s.retries++
	s.retryTimer = s.loop.AfterFunc(s.opts.RetryDelay, func() {
		s.retryTimer = nil
		fn := s.retryFn
		s.retryFn = nil
		if fn != nil {
			fn()
		}
	})
}

// Retries is the number of consecutive layout retries so far.
func (s *Synchronizer) Retries() int { return s.retries }

func clampTo(v, max float64) float64 {
	return math.Min(math.Max(0, v), max)
}

// isNil catches typed nil pointers stored in a Region.
func isNil(r Region) bool {
	if v, ok := r.(*Viewport); ok {
		return v == nil
	}
	return false
}
