//go:build darwin

package darwin

/*
#include "axwatch_darwin.h"
*/
import "C"
import (
	"errors"
	"fmt"
	"sync"

	"github.com/mj1618/axwatch/internal/model"
	"github.com/mj1618/axwatch/internal/platform"
)

// Automator implements platform.Automator with AXUIElementCreateApplication.
type Automator struct{}

// NewAutomator creates a macOS automator.
func NewAutomator() *Automator {
	return &Automator{}
}

// Application wraps p in an accessibility application element. The element
// is checked by reading its role, so an untrusted process or a process that
// does not answer accessibility requests fails here rather than on Observe.
func (a *Automator) Application(p model.Process) (platform.Application, error) {
	var code C.int
	ref := C.axw_app_element(C.int(p.PID), &code)
	if ref == 0 {
		return nil, fmt.Errorf("%s: %w: %w", p, platform.ErrAutomationUnavailable,
			&platform.AXError{Op: "wrap", Code: int(code)})
	}
	return &application{
		proc: p,
		ref:  ref,
		subs: make(map[string]*subscription),
	}, nil
}

// application is an AXUIElement for a running application.
type application struct {
	proc model.Process
	ref  C.uintptr_t

	mu     sync.Mutex
	subs   map[string]*subscription
	closed bool
}

func (a *application) Process() model.Process { return a.proc }

func (a *application) String() string {
	return fmt.Sprintf("<Application %s>", a.proc)
}

// Close removes any subscriptions still open and releases the element.
func (a *application) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	subs := make([]*subscription, 0, len(a.subs))
	for _, s := range a.subs {
		subs = append(subs, s)
	}
	a.mu.Unlock()

	var errs []error
	for _, s := range subs {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	C.axw_release(a.ref)
	return errors.Join(errs...)
}

func (a *application) forget(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.subs, id)
}
