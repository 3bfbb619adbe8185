// Package mainloop runs work serially on the goroutine that owns the main
// OS thread, interleaved with pumping the platform run loop.
package mainloop

import (
	"context"
	"time"
)

// DefaultPumpInterval bounds how long one run loop pump may block before
// queued work is picked up.
const DefaultPumpInterval = 50 * time.Millisecond

// Loop is a serial executor. Functions passed to Async run one at a time,
// in submission order, on the goroutine that called Run.
type Loop struct {
	queue    chan func()
	pump     func(time.Duration) bool
	interval time.Duration
}

// New returns a Loop that calls pump while idle. pump reports whether it
// waited; when it returns at once (nothing to run), the loop waits up to the
// pump interval on its queue before pumping again. A nil pump makes the loop
// block on its queue instead.
func New(pump func(time.Duration) bool) *Loop {
	return &Loop{
		queue:    make(chan func(), 64),
		pump:     pump,
		interval: DefaultPumpInterval,
	}
}

// SetPumpInterval changes the maximum time spent in one pump call.
func (l *Loop) SetPumpInterval(d time.Duration) {
	if d > 0 {
		l.interval = d
	}
}

// Async schedules f to run on the loop. It blocks only when the queue is full.
func (l *Loop) Async(f func()) {
	l.queue <- f
}

// Run executes queued functions until ctx is done. Functions still queued
// when ctx is cancelled are run before Run returns.
func (l *Loop) Run(ctx context.Context) {
	for {
		if l.pump == nil {
			select {
			case <-ctx.Done():
				l.drain()
				return
			case f := <-l.queue:
				f()
			}
			continue
		}

		select {
		case <-ctx.Done():
			l.drain()
			return
		case f := <-l.queue:
			f()
		default:
			if l.pump(l.interval) {
				continue
			}
			select {
			case <-ctx.Done():
				l.drain()
				return
			case f := <-l.queue:
				f()
			case <-time.After(l.interval):
			}
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case f := <-l.queue:
			f()
		default:
			return
		}
	}
}
