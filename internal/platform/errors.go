package platform

import (
	"errors"
	"fmt"
)

var (
	// ErrNotTrusted means the process lacks accessibility permission.
	ErrNotTrusted = errors.New("accessibility permission required")

	// ErrProcessNotFound means no running application matched the lookup.
	ErrProcessNotFound = errors.New("process not found")

	// ErrAutomationUnavailable means a process was found but could not be
	// wrapped in an accessibility handle.
	ErrAutomationUnavailable = errors.New("automation handle unavailable")

	// ErrObserve means registering a notification observer failed.
	ErrObserve = errors.New("observe notification failed")
)

// AXError is a non-zero AXError code returned by the accessibility API.
type AXError struct {
	Op   string
	Code int
}

var axErrorNames = map[int]string{
	-25200: "kAXErrorFailure",
	-25201: "kAXErrorIllegalArgument",
	-25202: "kAXErrorInvalidUIElement",
	-25203: "kAXErrorInvalidUIElementObserver",
	-25204: "kAXErrorCannotComplete",
	-25205: "kAXErrorAttributeUnsupported",
	-25206: "kAXErrorActionUnsupported",
	-25207: "kAXErrorNotificationUnsupported",
	-25208: "kAXErrorNotImplemented",
	-25209: "kAXErrorNotificationAlreadyRegistered",
	-25210: "kAXErrorNotificationNotRegistered",
	-25211: "kAXErrorAPIDisabled",
	-25212: "kAXErrorNoValue",
	-25213: "kAXErrorParameterizedAttributeUnsupported",
	-25214: "kAXErrorNotEnoughPrecision",
}

func (e *AXError) Error() string {
	name, ok := axErrorNames[e.Code]
	if !ok {
		name = "unknown AXError"
	}
	return fmt.Sprintf("%s: %s (%d)", e.Op, name, e.Code)
}

// Is lets errors.Is match observer registration failures against ErrObserve
// and disabled-API failures against ErrNotTrusted.
func (e *AXError) Is(target error) bool {
	switch target {
	case ErrObserve:
		return e.Op == "observe"
	case ErrNotTrusted:
		return e.Code == -25211
	}
	return false
}
