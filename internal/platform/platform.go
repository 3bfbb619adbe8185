package platform

import (
	"time"

	"github.com/mj1618/axwatch/internal/model"
)

// TrustChecker queries the OS accessibility trust flag.
type TrustChecker interface {
	// IsTrusted reports whether this process may control other applications.
	// When prompt is true the OS shows its own permission dialog if untrusted.
	IsTrusted(prompt bool) bool
}

// ProcessFinder looks up running applications in the shared workspace.
type ProcessFinder interface {
	// RunningApplications returns running applications in OS order.
	// An empty bundleID returns every regular application.
	RunningApplications(bundleID string) ([]model.Process, error)

	// ApplicationForPID returns the running application with the given PID.
	ApplicationForPID(pid int) (model.Process, error)
}

// Automator wraps running processes in accessibility automation handles.
type Automator interface {
	// Application constructs a handle for p. It fails with
	// ErrAutomationUnavailable when the process cannot be wrapped.
	Application(p model.Process) (Application, error)
}

// NotificationHandler receives the element a notification pertains to.
type NotificationHandler func(notification string, element model.Element)

// Application is an accessibility handle on one running application.
type Application interface {
	Process() model.Process

	// Observe registers handler for notification on the application element.
	// The returned Subscription must be closed to unregister it.
	Observe(notification string, handler NotificationHandler) (Subscription, error)

	// Close releases the underlying accessibility element.
	Close() error

	String() string
}

// Subscription is a registered notification observer.
type Subscription interface {
	ID() string
	Notification() string
	Close() error
}

// RunLoop drives the OS main run loop on the calling (main) thread.
type RunLoop interface {
	// Pump runs the run loop for at most d, returning early once a
	// source has been handled. It returns false when the run loop had
	// nothing to run and returned without waiting.
	Pump(d time.Duration) bool
}

// AppShell configures the process as a (windowless) application.
type AppShell interface {
	SetUIMode(mode UIMode) error
}
