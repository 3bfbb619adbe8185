package model

import "fmt"

// EventType classifies an Event.
type EventType string

const (
	EventRegistered   EventType = "registered"
	EventNotification EventType = "notification"
	EventWarning      EventType = "warning"
	EventSkipped      EventType = "skipped"
	EventUnregistered EventType = "unregistered"
)

// Event is one line of watch output.
type Event struct {
	Type         EventType `yaml:"type"                   json:"type"`
	TS           int64     `yaml:"ts"                     json:"ts"`
	Subscription string    `yaml:"subscription,omitempty" json:"subscription,omitempty"`
	Notification string    `yaml:"notification,omitempty" json:"notification,omitempty"`
	Handle       string    `yaml:"handle,omitempty"       json:"handle,omitempty"`
	App          *Process  `yaml:"app,omitempty"          json:"app,omitempty"`
	Element      *Element  `yaml:"element,omitempty"      json:"element,omitempty"`
	Message      string    `yaml:"message,omitempty"      json:"message,omitempty"`
}

// Text returns the plain-text form of the event.
func (e Event) Text() string {
	switch e.Type {
	case EventRegistered:
		return fmt.Sprintf("registered for %s", e.Handle)
	case EventNotification:
		if e.Element == nil {
			return "<nil> received notification."
		}
		return fmt.Sprintf("%s received notification.", e.Element)
	case EventUnregistered:
		return fmt.Sprintf("unregistered from %s", e.Handle)
	default:
		return e.Message
	}
}
