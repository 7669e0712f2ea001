// Package orchestrator decides when the Gantt view repaints. Change
// notifications are debounced into one repaint, and each repaint runs chart,
// then header, then scroll restoration as separately scheduled steps.
package orchestrator

import (
	"log/slog"
	"time"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/scroll"
	"github.com/akyairhashvil/mvno/internal/util"
)

// Steps are the three phases of a repaint. Nil steps are skipped.
type Steps struct {
	PaintChart    func()
	PaintHeader   func()
	RestoreScroll func()
}

// Orchestrator schedules repaints on a scroll.Loop.
type Orchestrator struct {
	loop        *scroll.Loop
	steps       Steps
	debounce    time.Duration
	headerDelay time.Duration
	logger      *slog.Logger

	pending     *scroll.Timer
	headerTimer *scroll.Timer
	generation  uint64
	runs        int
}

// New creates an orchestrator. Zero durations use the defaults.
func New(loop *scroll.Loop, steps Steps, debounce, headerDelay time.Duration, logger *slog.Logger) *Orchestrator {
	if debounce <= 0 {
		debounce = config.RepaintDebounce
	}
	if headerDelay <= 0 {
		headerDelay = config.HeaderDelay
	}
	return &Orchestrator{
		loop:        loop,
		steps:       steps,
		debounce:    debounce,
		headerDelay: headerDelay,
		logger:      util.OrDiscard(logger),
	}
}

// Schedule requests a repaint after the debounce window. A later request
// replaces an earlier one that has not fired yet.
func (o *Orchestrator) Schedule(reason string) {
	if o.pending.Stop() {
		o.logger.Debug("repaint superseded", "reason", reason)
	}
	o.pending = o.loop.AfterFunc(o.debounce, func() {
		o.pending = nil
		o.run(reason)
	})
}

// Immediate repaints now, dropping any pending or in-flight sequence.
func (o *Orchestrator) Immediate(reason string) {
	o.Cancel()
	o.run(reason)
}

// Cancel drops the pending repaint and the remaining steps of a running one.
func (o *Orchestrator) Cancel() {
	o.pending.Stop()
	o.pending = nil
	o.headerTimer.Stop()
	o.headerTimer = nil
	o.generation++
}

// Pending reports whether a debounced repaint is waiting.
func (o *Orchestrator) Pending() bool { return o.pending != nil }

// Runs counts started repaint sequences.
func (o *Orchestrator) Runs() int { return o.runs }

func (o *Orchestrator) run(reason string) {
	o.runs++
	o.generation++
	gen := o.generation
	o.logger.Debug("repaint", "reason", reason, "run", o.runs)

	call(o.steps.PaintChart)
	o.headerTimer.Stop()
	o.headerTimer = o.loop.AfterFunc(o.headerDelay, func() {
		o.headerTimer = nil
		if gen != o.generation {
			return
		}
		call(o.steps.PaintHeader)
		o.loop.RequestFrame(func() {
			if gen != o.generation {
				return
			}
			call(o.steps.RestoreScroll)
		})
	})
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
