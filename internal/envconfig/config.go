package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultBundleID     = "com.apple.finder"
	DefaultNotification = "window-moved"
	DefaultEventLogSize = 256
)

var (
	// Set via AXWATCH_DEBUG in the environment
	Debug bool
	// Set via AXWATCH_BUNDLE_ID in the environment
	BundleID string
	// Set via AXWATCH_NOTIFICATION in the environment
	Notification string
	// Set via AXWATCH_DESKTOP_NOTIFY in the environment
	DesktopNotify bool
	// Set via AXWATCH_EVENT_LOG_SIZE in the environment
	EventLogSize int
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"AXWATCH_DEBUG":          {"AXWATCH_DEBUG", Debug, "Show additional debug information (e.g. AXWATCH_DEBUG=1)"},
		"AXWATCH_BUNDLE_ID":      {"AXWATCH_BUNDLE_ID", BundleID, "Bundle identifier of the application to observe (default \"com.apple.finder\")"},
		"AXWATCH_NOTIFICATION":   {"AXWATCH_NOTIFICATION", Notification, "Accessibility notification to observe (default \"window-moved\")"},
		"AXWATCH_DESKTOP_NOTIFY": {"AXWATCH_DESKTOP_NOTIFY", DesktopNotify, "Post a desktop notification for every received event"},
		"AXWATCH_EVENT_LOG_SIZE": {"AXWATCH_EVENT_LOG_SIZE", EventLogSize, "Number of recent events kept for the MCP events tool (default 256)"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

func LoadConfig() {
	Debug = false
	if d := clean("AXWATCH_DEBUG"); d != "" {
		if b, err := strconv.ParseBool(d); err == nil {
			Debug = b
		} else {
			Debug = true
		}
	}

	BundleID = DefaultBundleID
	if id := clean("AXWATCH_BUNDLE_ID"); id != "" {
		BundleID = id
	}

	Notification = DefaultNotification
	if n := clean("AXWATCH_NOTIFICATION"); n != "" {
		Notification = n
	}

	DesktopNotify = false
	if dn := clean("AXWATCH_DESKTOP_NOTIFY"); dn != "" {
		b, err := strconv.ParseBool(dn)
		if err != nil {
			slog.Error("invalid setting, ignoring", "AXWATCH_DESKTOP_NOTIFY", dn, "error", err)
		} else {
			DesktopNotify = b
		}
	}

	EventLogSize = DefaultEventLogSize
	if s := clean("AXWATCH_EVENT_LOG_SIZE"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			slog.Error("invalid setting, ignoring", "AXWATCH_EVENT_LOG_SIZE", s, "error", err)
		} else {
			EventLogSize = n
		}
	}
}
