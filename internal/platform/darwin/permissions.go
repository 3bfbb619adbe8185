//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include "axwatch_darwin.h"
*/
import "C"

// Trust implements platform.TrustChecker with AXIsProcessTrusted.
type Trust struct{}

// NewTrust creates a macOS trust checker.
func NewTrust() *Trust {
	return &Trust{}
}

// IsTrusted reports whether the process has accessibility permission. With
// prompt set, macOS shows its permission dialog when the answer is no.
func (t *Trust) IsTrusted(prompt bool) bool {
	p := C.int(0)
	if prompt {
		p = 1
	}
	return C.axw_is_trusted(p) != 0
}
