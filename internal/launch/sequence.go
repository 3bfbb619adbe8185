// Package launch implements the one-shot launch sequence: check accessibility
// trust, find the target application, wrap it in an automation handle and
// register a single notification observer on it.
package launch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mj1618/axwatch/internal/mainloop"
	"github.com/mj1618/axwatch/internal/model"
	"github.com/mj1618/axwatch/internal/platform"
)

// Config selects the application and notification to observe.
type Config struct {
	BundleID     string // Bundle identifier to look up, e.g. "com.apple.finder"
	PID          int    // Observe this process instead of looking up BundleID (0 = unset)
	Notification string // Accessibility notification name, e.g. "AXWindowMoved"
	Prompt       bool   // Let the OS show its permission prompt when untrusted
}

// Sequence runs the launch steps against a platform provider.
type Sequence struct {
	provider *platform.Provider
	cfg      Config
	sink     Sink
	logger   *slog.Logger
	now      func() time.Time
}

// New returns a Sequence. A nil sink discards events.
func New(provider *platform.Provider, cfg Config, sink Sink) *Sequence {
	if sink == nil {
		sink = discard{}
	}
	return &Sequence{
		provider: provider,
		cfg:      cfg,
		sink:     sink,
		logger:   slog.Default(),
		now:      time.Now,
	}
}

// WithLogger replaces the logger used for diagnostics.
func (s *Sequence) WithLogger(l *slog.Logger) *Sequence {
	s.logger = l
	return s
}

// Schedule dispatches one run of the sequence onto loop. The session is
// delivered on the returned channel once the run completes.
func (s *Sequence) Schedule(loop *mainloop.Loop) <-chan *Session {
	ch := make(chan *Session, 1)
	loop.Async(func() {
		ch <- s.Run()
	})
	return ch
}

// Run executes every step once and returns the resulting session. It never
// panics on a missing process or an unwrappable one; those are reported
// through the session result.
func (s *Sequence) Run() *Session {
	sess := &Session{
		sink:   s.sink,
		logger: s.logger,
		now:    s.now,
		result: Result{Notification: s.cfg.Notification},
	}

	sess.result.Trusted = s.CheckTrust()

	proc, err := s.FindProcess()
	if err != nil {
		s.logger.Warn("target application not running, observer not registered", "error", err)
		sess.fail(OutcomeProcessNotFound, err, model.EventSkipped)
		return sess
	}
	sess.result.Process = &proc

	app, err := s.Wrap(proc)
	if err != nil {
		if errors.Is(err, platform.ErrNotTrusted) {
			s.logger.Error("cannot create automation handle: accessibility permission missing",
				"app", proc.String(),
				"settings", "System Settings > Privacy & Security > Accessibility",
				"error", err)
			sess.fail(OutcomeAutomationUnavailable, err, model.EventSkipped)
			return sess
		}
		s.logger.Error("cannot create automation handle", "app", proc.String(), "error", err)
		sess.fail(OutcomeAutomationUnavailable, err, model.EventSkipped)
		return sess
	}

	if err := sess.observe(app, s.cfg.Notification); err != nil {
		s.logger.Error("cannot register observer", "app", app.String(), "notification", s.cfg.Notification, "error", err)
		if cerr := app.Close(); cerr != nil {
			s.logger.Debug("release automation handle", "error", cerr)
		}
		sess.fail(OutcomeObserveFailed, err, model.EventSkipped)
		return sess
	}
	return sess
}

// CheckTrust queries the accessibility trust flag. An untrusted process is
// reported but never stops the sequence.
func (s *Sequence) CheckTrust() bool {
	trusted := s.provider.Trust.IsTrusted(s.cfg.Prompt)
	if !trusted {
		s.logger.Warn("needs accessibility permission",
			"settings", "System Settings > Privacy & Security > Accessibility")
		s.sink.Emit(model.Event{
			Type:    model.EventWarning,
			TS:      s.now().Unix(),
			Message: "needs permission!!",
		})
	}
	return trusted
}

// FindProcess returns the target process: the one with the configured PID,
// or else the last running application with the configured bundle identifier.
func (s *Sequence) FindProcess() (model.Process, error) {
	if s.cfg.PID != 0 {
		p, err := s.provider.Processes.ApplicationForPID(s.cfg.PID)
		if err != nil {
			return model.Process{}, asNotFound(fmt.Sprintf("pid %d", s.cfg.PID), err)
		}
		return p, nil
	}

	procs, err := s.provider.Processes.RunningApplications(s.cfg.BundleID)
	if err != nil {
		return model.Process{}, asNotFound(s.cfg.BundleID, err)
	}
	p, ok := model.LastProcess(procs)
	if !ok {
		return model.Process{}, fmt.Errorf("%s: %w", s.cfg.BundleID, platform.ErrProcessNotFound)
	}
	return p, nil
}

// Wrap constructs the automation handle for p.
func (s *Sequence) Wrap(p model.Process) (platform.Application, error) {
	app, err := s.provider.Automator.Application(p)
	if err != nil {
		if errors.Is(err, platform.ErrAutomationUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w: %w", p, platform.ErrAutomationUnavailable, err)
	}
	if app == nil {
		return nil, fmt.Errorf("%s: %w", p, platform.ErrAutomationUnavailable)
	}
	return app, nil
}

func asNotFound(target string, err error) error {
	if errors.Is(err, platform.ErrProcessNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", target, platform.ErrProcessNotFound, err)
}
