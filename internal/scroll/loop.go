package scroll

import (
	"container/heap"
	"time"

	"github.com/jonboulle/clockwork"
)

// Loop is a single-threaded cooperative scheduler with three queues:
// posted tasks, animation-frame callbacks and timers. Nothing runs until
// the host calls RunDue or RunFrame, so every callback executes on the
// host's goroutine. Loop is not safe for concurrent use.
type Loop struct {
	clock  clockwork.Clock
	tasks  []func()
	frames []func()
	timers timerHeap
	seq    uint64
}

func NewLoop(clock clockwork.Clock) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Loop{clock: clock}
}

func (l *Loop) Clock() clockwork.Clock { return l.clock }

// Post queues fn to run before the next timer or frame callback.
func (l *Loop) Post(fn func()) {
	l.tasks = append(l.tasks, fn)
}

// RequestFrame queues fn for the next RunFrame. Callbacks requested while
// a frame is running wait for the following one.
func (l *Loop) RequestFrame(fn func()) {
	l.frames = append(l.frames, fn)
}

// Timer is a pending AfterFunc callback.
type Timer struct {
	when  time.Time
	seq   uint64
	fn    func()
	index int
	loop  *Loop
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (t *Timer) Stop() bool {
	if t == nil || t.index < 0 {
		return false
	}
	heap.Remove(&t.loop.timers, t.index)
	return true
}

// AfterFunc schedules fn to run once d has elapsed on the loop's clock.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	l.seq++
	t := &Timer{when: l.clock.Now().Add(d), seq: l.seq, fn: fn, loop: l}
	heap.Push(&l.timers, t)
	return t
}

// NextDeadline returns the earliest pending timer deadline.
func (l *Loop) NextDeadline() (time.Time, bool) {
	if len(l.timers) == 0 {
		return time.Time{}, false
	}
	return l.timers[0].when, true
}

// Pending reports whether anything is queued.
func (l *Loop) Pending() bool {
	return len(l.tasks) > 0 || len(l.frames) > 0 || len(l.timers) > 0
}

// HasFrames reports whether a frame callback is waiting.
func (l *Loop) HasFrames() bool { return len(l.frames) > 0 }

func (l *Loop) runTasks() int {
	n := 0
	for len(l.tasks) > 0 {
		fn := l.tasks[0]
		l.tasks = l.tasks[1:]
		fn()
		n++
	}
	return n
}

// RunDue runs queued tasks and every timer whose deadline has passed, in
// deadline order. Tasks posted by a callback run before the next timer.
func (l *Loop) RunDue() int {
	n := l.runTasks()
	now := l.clock.Now()
	for len(l.timers) > 0 && !l.timers[0].when.After(now) {
		t := heap.Pop(&l.timers).(*Timer)
		t.fn()
		n++
		n += l.runTasks()
	}
	return n
}

// RunFrame runs due work, then the frame callbacks queued so far.
func (l *Loop) RunFrame() int {
	n := l.RunDue()
	frames := l.frames
	l.frames = nil
	for _, fn := range frames {
		fn()
		n++
		n += l.runTasks()
	}
	return n
}

// Settle runs frames until no frame callbacks remain or limit frames have
// run. Timers that are not yet due stay pending.
func (l *Loop) Settle(limit int) int {
	n := l.RunDue()
	for i := 0; i < limit && l.HasFrames(); i++ {
		n += l.RunFrame()
	}
	return n
}

type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].when.Equal(h[j].when) {
		return h[i].seq < h[j].seq
	}
	return h[i].when.Before(h[j].when)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
