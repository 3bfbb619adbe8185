//go:build darwin

package darwin

/*
#include "axwatch_darwin.h"
*/
import "C"
import "time"

// RunLoop pumps the CoreFoundation main run loop, where AXObserver
// callbacks are delivered. Pump must be called on the main thread.
type RunLoop struct{}

// NewRunLoop creates a macOS run loop pump.
func NewRunLoop() *RunLoop {
	return &RunLoop{}
}

// Pump runs the main run loop in the default mode for at most d. It
// returns false when the mode has no sources or timers, in which case
// CFRunLoopRunInMode returns kCFRunLoopRunFinished without waiting.
func (r *RunLoop) Pump(d time.Duration) bool {
	return C.axw_pump(C.double(d.Seconds())) != 0
}
