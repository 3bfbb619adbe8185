package model

import (
	"fmt"
	"time"
)

// Process is a running application as reported by the workspace.
type Process struct {
	Name       string    `yaml:"name"                  json:"name"`
	BundleID   string    `yaml:"bundle_id,omitempty"   json:"bundle_id,omitempty"`
	PID        int       `yaml:"pid"                   json:"pid"`
	Active     bool      `yaml:"active,omitempty"      json:"active,omitempty"`
	LaunchedAt time.Time `yaml:"launched_at,omitempty" json:"launched_at,omitempty"`
}

func (p Process) String() string {
	if p.BundleID == "" {
		return fmt.Sprintf("%s pid=%d", p.Name, p.PID)
	}
	return fmt.Sprintf("%s (%s) pid=%d", p.Name, p.BundleID, p.PID)
}

// LastProcess returns the last process in OS order, which is the one the
// workspace launched most recently for a bundle identifier.
func LastProcess(procs []Process) (Process, bool) {
	if len(procs) == 0 {
		return Process{}, false
	}
	return procs[len(procs)-1], true
}
