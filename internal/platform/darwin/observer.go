//go:build darwin

package darwin

/*
#include "axwatch_darwin.h"
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/google/uuid"

	"github.com/mj1618/axwatch/internal/logutil"
	"github.com/mj1618/axwatch/internal/model"
	"github.com/mj1618/axwatch/internal/platform"
)

// subscriptions resolves the refcon of a callback. A token is removed only
// after axw_unobserve has detached the observer from the main run loop.
var subscriptions registry[subscription]

// subscription is one AXObserver registered for one notification on one
// application element.
type subscription struct {
	id           string
	notification string
	app          *application
	handler      platform.NotificationHandler
	token        uintptr
	observer     C.uintptr_t

	mu     sync.Mutex
	closed bool
}

// Observe registers handler for notification. The observer's run loop source
// is attached to the main run loop, so handler runs there.
func (a *application) Observe(notification string, handler platform.NotificationHandler) (platform.Subscription, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, fmt.Errorf("%s: %w: application handle closed", a, platform.ErrObserve)
	}

	s := &subscription{
		id:           uuid.NewString(),
		notification: notification,
		app:          a,
		handler:      handler,
	}
	s.token = subscriptions.add(s)

	cName := C.CString(notification)
	defer C.free(unsafe.Pointer(cName))

	var obs C.uintptr_t
	code := C.axw_observe(C.int(a.proc.PID), a.ref, cName, C.uintptr_t(s.token), &obs)
	if code != 0 {
		subscriptions.remove(s.token)
		return nil, &platform.AXError{Op: "observe", Code: int(code)}
	}
	s.observer = obs
	a.subs[s.id] = s
	return s, nil
}

func (s *subscription) ID() string           { return s.id }
func (s *subscription) Notification() string { return s.notification }

// Close removes the notification and releases the observer.
func (s *subscription) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	cName := C.CString(s.notification)
	defer C.free(unsafe.Pointer(cName))

	code := C.axw_unobserve(s.observer, s.app.ref, cName)
	subscriptions.remove(s.token)
	s.app.forget(s.id)
	if code != 0 {
		return &platform.AXError{Op: "unobserve", Code: int(code)}
	}
	return nil
}

func (s *subscription) deliver(notification string, el model.Element) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	s.handler(notification, el)
}

//export goAXNotification
func goAXNotification(token C.uintptr_t, notification, role, subrole, title *C.char, pid C.int) {
	dispatch(uintptr(token), C.GoString(notification), model.Element{
		Role:    C.GoString(role),
		Subrole: C.GoString(subrole),
		Title:   C.GoString(title),
		PID:     int(pid),
	})
}

// dispatch delivers a callback to the subscription registered under token.
// Unknown tokens (a subscription already closed) are dropped.
func dispatch(token uintptr, notification string, el model.Element) {
	s := subscriptions.get(token)
	if s == nil {
		logutil.Trace("accessibility callback for closed subscription", "token", token)
		return
	}
	logutil.Trace("accessibility callback", "subscription", s.id, "pid", el.PID)
	s.deliver(notification, el)
}
