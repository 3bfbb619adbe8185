package launch

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mj1618/axwatch/internal/model"
	"github.com/mj1618/axwatch/internal/platform"
)

// Result describes what a launch sequence run achieved.
type Result struct {
	Outcome      Outcome        `yaml:"outcome"           json:"outcome"`
	Trusted      bool           `yaml:"trusted"           json:"trusted"`
	Process      *model.Process `yaml:"app,omitempty"     json:"app,omitempty"`
	Notification string         `yaml:"notification"      json:"notification"`
	Err          error          `yaml:"-"                 json:"-"`
}

// Status is a point-in-time snapshot of a session.
type Status struct {
	Result       `yaml:",inline"`
	Handle       string `yaml:"handle,omitempty"       json:"handle,omitempty"`
	Subscription string `yaml:"subscription,omitempty" json:"subscription,omitempty"`
	Received     int    `yaml:"received"               json:"received"`
	Closed       bool   `yaml:"closed"                 json:"closed"`
	Error        string `yaml:"error,omitempty"        json:"error,omitempty"`
}

// Session owns the automation handle and the subscription acquired by a
// launch sequence run. Close releases both.
type Session struct {
	mu       sync.Mutex
	result   Result
	app      platform.Application
	sub      platform.Subscription
	received int
	closed   bool

	sink   Sink
	logger *slog.Logger
	now    func() time.Time
}

func (s *Session) fail(outcome Outcome, err error, evType model.EventType) {
	s.mu.Lock()
	s.result.Outcome = outcome
	s.result.Err = err
	proc := s.result.Process
	notification := s.result.Notification
	s.mu.Unlock()

	s.sink.Emit(model.Event{
		Type:         evType,
		TS:           s.now().Unix(),
		Notification: notification,
		App:          proc,
		Message:      fmt.Sprintf("%s: %v", outcome, err),
	})
}

func (s *Session) observe(app platform.Application, notification string) error {
	sub, err := app.Observe(notification, s.handle)
	if err != nil {
		if !errors.Is(err, platform.ErrObserve) {
			err = fmt.Errorf("%s %s: %w: %w", app, notification, platform.ErrObserve, err)
		}
		return err
	}

	proc := app.Process()
	s.mu.Lock()
	s.app = app
	s.sub = sub
	s.result.Outcome = OutcomeRegistered
	s.mu.Unlock()

	s.logger.Info("registered observer", "app", app.String(), "notification", notification, "subscription", sub.ID())
	s.sink.Emit(model.Event{
		Type:         model.EventRegistered,
		TS:           s.now().Unix(),
		Subscription: sub.ID(),
		Notification: notification,
		Handle:       app.String(),
		App:          &proc,
	})
	return nil
}

// handle is the notification callback. It runs on the main run loop,
// once per delivered notification, with no deduplication.
func (s *Session) handle(notification string, el model.Element) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.received++
	subID := ""
	if s.sub != nil {
		subID = s.sub.ID()
	}
	s.mu.Unlock()

	s.sink.Emit(model.Event{
		Type:         model.EventNotification,
		TS:           s.now().Unix(),
		Subscription: subID,
		Notification: notification,
		Element:      &el,
	})
}

// Result returns the outcome of the run that produced the session.
func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Err returns the error that stopped the sequence, or nil once registered.
func (s *Session) Err() error {
	return s.Result().Err
}

// Received returns the number of notifications delivered so far.
func (s *Session) Received() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.received
}

// Status returns a snapshot suitable for printing.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		Result:   s.result,
		Received: s.received,
		Closed:   s.closed,
	}
	if s.app != nil {
		st.Handle = s.app.String()
	}
	if s.sub != nil {
		st.Subscription = s.sub.ID()
	}
	if s.result.Err != nil {
		st.Error = s.result.Err.Error()
	}
	return st
}

// Close unregisters the observer and releases the automation handle.
// It must run on the main run loop. Calling Close more than once is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	app, sub := s.app, s.sub
	notification := s.result.Notification
	s.mu.Unlock()

	var errs []error
	if sub != nil {
		if err := sub.Close(); err != nil {
			errs = append(errs, fmt.Errorf("unobserve %s: %w", notification, err))
		}
	}
	if app != nil {
		if err := app.Close(); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", app, err))
		}
		s.logger.Info("unregistered observer", "app", app.String(), "notification", notification)
		proc := app.Process()
		s.sink.Emit(model.Event{
			Type:         model.EventUnregistered,
			TS:           s.now().Unix(),
			Notification: notification,
			Handle:       app.String(),
			App:          &proc,
		})
	}
	return errors.Join(errs...)
}
