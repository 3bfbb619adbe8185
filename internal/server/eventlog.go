package server

import (
	"sync"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/mj1618/axwatch/internal/model"
)

// EventLog keeps the most recent watch events for the events tool.
type EventLog struct {
	mu      sync.Mutex
	events  *arraylist.List
	max     int
	dropped int
}

// NewEventLog creates a log holding at most max events. A non-positive max
// keeps a single event.
func NewEventLog(max int) *EventLog {
	if max <= 0 {
		max = 1
	}
	return &EventLog{
		events: arraylist.New(),
		max:    max,
	}
}

// Emit appends ev, evicting the oldest event when full.
func (l *EventLog) Emit(ev model.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events.Add(ev)
	for l.events.Size() > l.max {
		l.events.Remove(0)
		l.dropped++
	}
}

// Recent returns up to limit events with TS >= since, oldest first.
// A non-positive limit returns every matching event.
func (l *EventLog) Recent(limit int, since int64) []model.Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.Event, 0, l.events.Size())
	for _, v := range l.events.Values() {
		ev := v.(model.Event)
		if ev.TS >= since {
			out = append(out, ev)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Len returns the number of events held.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events.Size()
}

// Dropped returns how many events were evicted so far.
func (l *EventLog) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}
