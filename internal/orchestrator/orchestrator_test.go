package orchestrator

import (
	"reflect"
	"testing"
	"time"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/scroll"
	"github.com/jonboulle/clockwork"
)

type orchRig struct {
	clock clockwork.FakeClock
	loop  *scroll.Loop
	orch  *Orchestrator
	calls []string
}

func newOrchRig() *orchRig {
	r := &orchRig{clock: clockwork.NewFakeClock()}
	r.loop = scroll.NewLoop(r.clock)
	r.orch = New(r.loop, Steps{
		PaintChart:    func() { r.calls = append(r.calls, "chart") },
		PaintHeader:   func() { r.calls = append(r.calls, "header") },
		RestoreScroll: func() { r.calls = append(r.calls, "restore") },
	}, 0, 0, nil)
	return r
}

func (r *orchRig) advance(d time.Duration) {
	r.clock.Advance(d)
	r.loop.RunDue()
}

func TestScheduleDebouncesAndSequences(t *testing.T) {
	r := newOrchRig()
	r.orch.Schedule("a")
	r.advance(40 * time.Millisecond)
	r.orch.Schedule("b")
	r.advance(40 * time.Millisecond)
	r.orch.Schedule("c")
	r.advance(config.RepaintDebounce - time.Millisecond)
	if len(r.calls) != 0 {
		t.Fatalf("nothing should run inside the debounce window, got %v", r.calls)
	}

	r.advance(time.Millisecond)
	if want := []string{"chart"}; !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	r.loop.RunFrame()
	if len(r.calls) != 1 {
		t.Fatalf("header must wait for its delay, got %v", r.calls)
	}

	r.advance(config.HeaderDelay)
	if want := []string{"chart", "header"}; !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	r.loop.RunFrame()
	if want := []string{"chart", "header", "restore"}; !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	if r.orch.Runs() != 1 || r.orch.Pending() {
		t.Fatalf("expected exactly one run, got %d", r.orch.Runs())
	}
}

func TestImmediateBypassesDebounce(t *testing.T) {
	r := newOrchRig()
	r.orch.Schedule("data")
	r.orch.Immediate("toggle")
	if want := []string{"chart"}; !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("immediate should paint the chart synchronously, got %v", r.calls)
	}
	r.advance(time.Second)
	r.loop.Settle(5)
	if want := []string{"chart", "header", "restore"}; !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("pending debounced run should have been dropped, got %v", r.calls)
	}
}

func TestNewRunSupersedesInFlightSteps(t *testing.T) {
	r := newOrchRig()
	r.orch.Immediate("first")
	r.advance(10 * time.Millisecond)
	r.orch.Immediate("second")
	r.advance(config.HeaderDelay)
	r.loop.Settle(5)
	want := []string{"chart", "chart", "header", "restore"}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
}

func TestCancel(t *testing.T) {
	r := newOrchRig()
	r.orch.Schedule("x")
	r.orch.Cancel()
	r.advance(time.Second)
	r.loop.Settle(5)
	if len(r.calls) != 0 || r.orch.Pending() {
		t.Fatalf("cancelled repaint ran: %v", r.calls)
	}
}

func TestNilStepsAreSkipped(t *testing.T) {
	fc := clockwork.NewFakeClock()
	loop := scroll.NewLoop(fc)
	o := New(loop, Steps{}, time.Millisecond, time.Millisecond, nil)
	o.Immediate("noop")
	fc.Advance(time.Second)
	loop.Settle(3)
	if o.Runs() != 1 {
		t.Fatalf("runs = %d", o.Runs())
	}
}
