// Package notify posts desktop notifications for watch events.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/mj1618/axwatch/internal/model"
)

// AppName is the title shown on posted notifications.
const AppName = "axwatch"

// Desktop posts a desktop notification for every received accessibility
// notification. Other event types are ignored.
type Desktop struct {
	notify func(title, message string) error
}

// NewDesktop returns a Desktop backed by beeep.
func NewDesktop() *Desktop {
	beeep.AppName = AppName
	return &Desktop{notify: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

func (d *Desktop) Emit(ev model.Event) {
	if ev.Type != model.EventNotification {
		return
	}
	title := AppName
	if ev.Element != nil {
		title = AppName + ": " + ev.Element.Short()
	}
	body := ev.Text()
	go func() {
		if err := d.notify(title, body); err != nil {
			slog.Debug("desktop notification failed", "error", err)
		}
	}()
}
