package model

import (
	"fmt"
	"strings"
)

// Element describes the accessibility element a notification pertains to.
// It is always the observed application itself or an element it owns.
type Element struct {
	Role    string `yaml:"role"              json:"role"`              // Raw AXRole, e.g. "AXWindow"
	Subrole string `yaml:"subrole,omitempty" json:"subrole,omitempty"` // Raw AXSubrole
	Title   string `yaml:"title,omitempty"   json:"title,omitempty"`
	PID     int    `yaml:"pid"               json:"pid"`
}

// Short returns the compact role code of the element.
func (e Element) Short() string {
	return MapRole(e.Role)
}

// String renders the element the way it appears in event lines:
// <AXWindow/AXStandardWindow "Documents" pid=412>
func (e Element) String() string {
	var b strings.Builder
	b.WriteByte('<')
	role := e.Role
	if role == "" {
		role = "AXUnknown"
	}
	b.WriteString(role)
	if e.Subrole != "" {
		b.WriteByte('/')
		b.WriteString(e.Subrole)
	}
	if e.Title != "" {
		fmt.Fprintf(&b, " %q", e.Title)
	}
	fmt.Fprintf(&b, " pid=%d>", e.PID)
	return b.String()
}
