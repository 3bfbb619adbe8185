package platform

import (
	"fmt"
	"sort"
	"strings"
)

// UIMode is the activation policy of the application shell.
type UIMode string

const (
	UIModeRegular    UIMode = "regular"    // Dock icon and menu bar
	UIModeAccessory  UIMode = "accessory"  // no Dock icon, may show windows
	UIModeBackground UIMode = "background" // no UI at all
)

// ParseUIMode converts a --ui-mode flag value to a UIMode.
func ParseUIMode(s string) (UIMode, error) {
	switch UIMode(strings.ToLower(s)) {
	case UIModeRegular:
		return UIModeRegular, nil
	case UIModeAccessory, "":
		return UIModeAccessory, nil
	case UIModeBackground:
		return UIModeBackground, nil
	default:
		return UIModeAccessory, fmt.Errorf("unknown ui mode: %q (expected regular, accessory, or background)", s)
	}
}

// Notifications maps short notification aliases to accessibility notification names.
var Notifications = map[string]string{
	"window-moved":           "AXWindowMoved",
	"window-resized":         "AXWindowResized",
	"window-created":         "AXWindowCreated",
	"window-minimized":       "AXWindowMiniaturized",
	"window-deminimized":     "AXWindowDeminiaturized",
	"focused-window-changed": "AXFocusedWindowChanged",
	"application-activated":  "AXApplicationActivated",
	"application-hidden":     "AXApplicationHidden",
	"application-shown":      "AXApplicationShown",
	"title-changed":          "AXTitleChanged",
	"ui-element-destroyed":   "AXUIElementDestroyed",
}

// ParseNotification resolves an alias or a raw "AX..." name to the
// accessibility notification name.
func ParseNotification(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("notification name is required")
	}
	if name, ok := Notifications[strings.ToLower(s)]; ok {
		return name, nil
	}
	if strings.HasPrefix(s, "AX") && len(s) > 2 {
		return s, nil
	}
	return "", fmt.Errorf("unknown notification: %q (use an AX notification name or one of: %s)", s, strings.Join(NotificationAliases(), ", "))
}

// NotificationAliases returns the known aliases in sorted order.
func NotificationAliases() []string {
	aliases := make([]string, 0, len(Notifications))
	for alias := range Notifications {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
