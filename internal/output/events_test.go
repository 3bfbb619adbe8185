package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mj1618/axwatch/internal/model"
	"gopkg.in/yaml.v3"
)

func sampleEvents() []model.Event {
	finder := &model.Process{Name: "Finder", BundleID: "com.apple.finder", PID: 412}
	return []model.Event{
		{Type: model.EventWarning, TS: 1, Message: "needs permission!!"},
		{Type: model.EventSkipped, TS: 1, Message: "process-not-found: com.apple.finder: process not found"},
		{Type: model.EventRegistered, TS: 2, Subscription: "abc", Notification: "AXWindowMoved", Handle: "<Application Finder>", App: finder},
		{Type: model.EventNotification, TS: 3, Notification: "AXWindowMoved", Element: &model.Element{Role: "AXWindow", Title: "Documents", PID: 412}},
	}
}

func TestEventWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	ew := NewEventWriter(&buf, FormatText)
	for _, ev := range sampleEvents() {
		ew.Emit(ev)
	}

	want := strings.Join([]string{
		"needs permission!!",
		"registered for <Application Finder>",
		`<AXWindow "Documents" pid=412> received notification.`,
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Errorf("text output:\n%s\nwant:\n%s", got, want)
	}
}

func TestEventWriter_JSONL(t *testing.T) {
	var buf bytes.Buffer
	ew := NewEventWriter(&buf, FormatJSON)
	for _, ev := range sampleEvents() {
		ew.Emit(ev)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	var ev model.Event
	if err := json.Unmarshal([]byte(lines[3]), &ev); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if ev.Type != model.EventNotification || ev.Element == nil || ev.Element.Title != "Documents" {
		t.Errorf("decoded event = %+v", ev)
	}
	if strings.Contains(lines[0], "element") {
		t.Errorf("empty element should be omitted: %s", lines[0])
	}
}

func TestEventWriter_YAMLStream(t *testing.T) {
	var buf bytes.Buffer
	ew := NewEventWriter(&buf, FormatYAML)
	for _, ev := range sampleEvents() {
		ew.Emit(ev)
	}
	if err := ew.Close(); err != nil {
		t.Fatal(err)
	}

	dec := yaml.NewDecoder(&buf)
	var count int
	for {
		var ev model.Event
		if err := dec.Decode(&ev); err != nil {
			break
		}
		count++
	}
	if count != 4 {
		t.Errorf("decoded %d YAML documents, want 4", count)
	}
}
