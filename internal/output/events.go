package output

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mj1618/axwatch/internal/model"
	"gopkg.in/yaml.v3"
)

// EventWriter streams watch events to w. Text output prints one message per
// line; JSON output is JSONL; YAML output is a stream of documents.
// Skipped events are only written in the structured formats.
type EventWriter struct {
	mu      sync.Mutex
	w       io.Writer
	format  Format
	jsonEnc *json.Encoder
	yamlEnc *yaml.Encoder
}

// NewEventWriter returns an EventWriter for format.
func NewEventWriter(w io.Writer, format Format) *EventWriter {
	ew := &EventWriter{w: w, format: format}
	switch format {
	case FormatJSON:
		ew.jsonEnc = json.NewEncoder(w)
		ew.jsonEnc.SetEscapeHTML(false)
	case FormatYAML:
		ew.yamlEnc = yaml.NewEncoder(w)
	}
	return ew
}

// Emit writes one event. Write errors are logged, not returned, since the
// caller is an accessibility callback with nowhere to send them.
func (ew *EventWriter) Emit(ev model.Event) {
	ew.mu.Lock()
	defer ew.mu.Unlock()

	var err error
	switch ew.format {
	case FormatJSON:
		err = ew.jsonEnc.Encode(ev)
	case FormatYAML:
		err = ew.yamlEnc.Encode(ev)
	default:
		if ev.Type == model.EventSkipped {
			return
		}
		_, err = fmt.Fprintln(ew.w, ev.Text())
	}
	if err != nil {
		slog.Warn("write event", "type", ev.Type, "error", err)
	}
}

// Close flushes a YAML stream.
func (ew *EventWriter) Close() error {
	ew.mu.Lock()
	defer ew.mu.Unlock()
	if ew.yamlEnc != nil {
		return ew.yamlEnc.Close()
	}
	return nil
}
