// Package platformtest provides an in-memory platform.Provider for tests.
package platformtest

import (
	"fmt"
	"sync"
	"time"

	"github.com/mj1618/axwatch/internal/model"
	"github.com/mj1618/axwatch/internal/platform"
)

// Fake implements every platform backend in memory.
type Fake struct {
	mu sync.Mutex

	Trusted    bool
	Apps       []model.Process
	FindErr    error
	WrapErr    error
	ObserveErr error
	ShellErr   error

	PromptCalls  int
	TrustCalls   int
	WrapCalls    int
	ObserveCalls int
	Pumps        int
	UIModes      []platform.UIMode

	apps   []*FakeApplication
	nextID int
}

// Provider returns a platform.Provider backed by f.
func (f *Fake) Provider() *platform.Provider {
	return &platform.Provider{
		Trust:     f,
		Processes: f,
		Automator: f,
		RunLoop:   f,
		Shell:     f,
	}
}

func (f *Fake) IsTrusted(prompt bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TrustCalls++
	if prompt {
		f.PromptCalls++
	}
	return f.Trusted
}

func (f *Fake) RunningApplications(bundleID string) ([]model.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	var out []model.Process
	for _, p := range f.Apps {
		if bundleID == "" || p.BundleID == bundleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *Fake) ApplicationForPID(pid int) (model.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.Apps {
		if p.PID == pid {
			return p, nil
		}
	}
	return model.Process{}, fmt.Errorf("pid %d: %w", pid, platform.ErrProcessNotFound)
}

func (f *Fake) Application(p model.Process) (platform.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.WrapCalls++
	if f.WrapErr != nil {
		return nil, f.WrapErr
	}
	app := &FakeApplication{fake: f, proc: p}
	f.apps = append(f.apps, app)
	return app, nil
}

func (f *Fake) Pump(d time.Duration) bool {
	f.mu.Lock()
	f.Pumps++
	f.mu.Unlock()
	time.Sleep(d)
	return true
}

func (f *Fake) SetUIMode(mode platform.UIMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ShellErr != nil {
		return f.ShellErr
	}
	f.UIModes = append(f.UIModes, mode)
	return nil
}

// Fire delivers a notification to every open subscription registered for it.
// It returns the number of handlers invoked.
func (f *Fake) Fire(notification string, el model.Element) int {
	f.mu.Lock()
	var subs []*FakeSubscription
	for _, app := range f.apps {
		for _, s := range app.subs {
			if !s.closed && s.notification == notification {
				subs = append(subs, s)
			}
		}
	}
	f.mu.Unlock()

	for _, s := range subs {
		s.handler(notification, el)
	}
	return len(subs)
}

// OpenSubscriptions counts subscriptions that have not been closed.
func (f *Fake) OpenSubscriptions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, app := range f.apps {
		for _, s := range app.subs {
			if !s.closed {
				n++
			}
		}
	}
	return n
}

// Applications returns every handle constructed so far.
func (f *Fake) Applications() []*FakeApplication {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeApplication(nil), f.apps...)
}

// FakeApplication is an in-memory platform.Application.
type FakeApplication struct {
	fake   *Fake
	proc   model.Process
	subs   []*FakeSubscription
	closed bool
}

func (a *FakeApplication) Process() model.Process { return a.proc }

func (a *FakeApplication) String() string {
	return fmt.Sprintf("<Application %s>", a.proc)
}

// Closed reports whether Close was called on the handle.
func (a *FakeApplication) Closed() bool {
	a.fake.mu.Lock()
	defer a.fake.mu.Unlock()
	return a.closed
}

func (a *FakeApplication) Observe(notification string, handler platform.NotificationHandler) (platform.Subscription, error) {
	f := a.fake
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ObserveCalls++
	if f.ObserveErr != nil {
		return nil, f.ObserveErr
	}
	f.nextID++
	s := &FakeSubscription{
		fake:         f,
		id:           fmt.Sprintf("sub-%d", f.nextID),
		notification: notification,
		handler:      handler,
	}
	a.subs = append(a.subs, s)
	return s, nil
}

func (a *FakeApplication) Close() error {
	a.fake.mu.Lock()
	defer a.fake.mu.Unlock()
	a.closed = true
	return nil
}

// FakeSubscription is an in-memory platform.Subscription.
type FakeSubscription struct {
	fake         *Fake
	id           string
	notification string
	handler      platform.NotificationHandler
	closed       bool
}

func (s *FakeSubscription) ID() string           { return s.id }
func (s *FakeSubscription) Notification() string { return s.notification }

func (s *FakeSubscription) Close() error {
	s.fake.mu.Lock()
	defer s.fake.mu.Unlock()
	if s.closed {
		return fmt.Errorf("subscription %s already closed", s.id)
	}
	s.closed = true
	return nil
}
