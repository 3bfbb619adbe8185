package launch

import "github.com/mj1618/axwatch/internal/model"

// Sink receives the events produced by a session.
type Sink interface {
	Emit(ev model.Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ev model.Event)

func (f SinkFunc) Emit(ev model.Event) { f(ev) }

// MultiSink fans an event out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) Emit(ev model.Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(ev)
		}
	}
}

type discard struct{}

func (discard) Emit(model.Event) {}
