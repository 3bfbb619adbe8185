//go:build darwin

package darwin

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"

	"github.com/mj1618/axwatch/internal/platform"
)

var loadAppKitOnce sync.Once
var loadAppKitErr error

func loadAppKit() error {
	loadAppKitOnce.Do(func() {
		for _, fw := range []string{
			"/System/Library/Frameworks/Foundation.framework/Foundation",
			"/System/Library/Frameworks/AppKit.framework/AppKit",
		} {
			if _, err := purego.Dlopen(fw, purego.RTLD_LAZY|purego.RTLD_GLOBAL); err != nil {
				loadAppKitErr = fmt.Errorf("load %s: %w", fw, err)
				return
			}
		}
	})
	return loadAppKitErr
}

// Shell implements platform.AppShell on NSApplication.
type Shell struct{}

// NewShell creates the macOS application shell.
func NewShell() *Shell {
	return &Shell{}
}

// SetUIMode sets the NSApplication activation policy. It must be called on
// the main thread.
func (s *Shell) SetUIMode(mode platform.UIMode) error {
	if err := loadAppKit(); err != nil {
		return err
	}

	// NSApplicationActivationPolicy: Regular = 0, Accessory = 1, Prohibited = 2.
	var policy int
	switch mode {
	case platform.UIModeRegular:
		policy = 0
	case platform.UIModeAccessory:
		policy = 1
	case platform.UIModeBackground:
		policy = 2
	default:
		return fmt.Errorf("unknown ui mode %q", mode)
	}

	cls := objc.GetClass("NSApplication")
	if cls == 0 {
		return fmt.Errorf("NSApplication class not found: %w", platform.ErrUnsupported)
	}
	app := objc.ID(cls).Send(objc.RegisterName("sharedApplication"))
	if app == 0 {
		return fmt.Errorf("failed to get NSApplication sharedApplication")
	}
	if ok := objc.Send[bool](app, objc.RegisterName("setActivationPolicy:"), policy); !ok {
		return fmt.Errorf("setActivationPolicy failed for %s", mode)
	}
	return nil
}
