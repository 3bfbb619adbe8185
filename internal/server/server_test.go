package server

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/axwatch/internal/launch"
	"github.com/mj1618/axwatch/internal/model"
	"github.com/mj1618/axwatch/internal/platform"
	"github.com/mj1618/axwatch/internal/platform/platformtest"
)

var finder = model.Process{Name: "Finder", BundleID: "com.apple.finder", PID: 412}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content type %T", res.Content[0])
	return text.Text, res.IsError
}

func TestHandleTrust(t *testing.T) {
	tests := []struct {
		name        string
		trusted     bool
		args        map[string]any
		wantPrompts int
	}{
		{"trusted", true, nil, 0},
		{"untrusted", false, nil, 0},
		{"prompt", false, map[string]any{"prompt": true}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &platformtest.Fake{Trusted: tt.trusted}
			s := New(fake.Provider(), NewEventLog(8))

			text, isErr := call(t, s.handleTrust, tt.args)
			require.False(t, isErr)

			var got struct {
				Trusted  bool   `yaml:"trusted"`
				Settings string `yaml:"settings"`
			}
			require.NoError(t, yaml.Unmarshal([]byte(text), &got))
			assert.Equal(t, tt.trusted, got.Trusted)
			if !tt.trusted {
				assert.Equal(t, settingsHint, got.Settings)
			}
			assert.Equal(t, tt.wantPrompts, fake.PromptCalls)
		})
	}
}

func TestHandleApps(t *testing.T) {
	safari := model.Process{Name: "Safari", BundleID: "com.apple.Safari", PID: 900}
	fake := &platformtest.Fake{Apps: []model.Process{finder, safari}}
	s := New(fake.Provider(), NewEventLog(8))

	text, isErr := call(t, s.handleApps, map[string]any{"bundle_id": "com.apple.finder"})
	require.False(t, isErr)
	assert.Contains(t, text, "bundle_id: com.apple.finder")
	assert.Contains(t, text, "Finder")
	assert.NotContains(t, text, "Safari")

	text, _ = call(t, s.handleApps, nil)
	assert.Contains(t, text, "Safari")
}

func TestHandleApps_Error(t *testing.T) {
	fake := &platformtest.Fake{FindErr: errors.New("workspace unavailable")}
	s := New(fake.Provider(), NewEventLog(8))

	text, isErr := call(t, s.handleApps, nil)
	assert.True(t, isErr)
	assert.Contains(t, text, "workspace unavailable")
}

func TestHandleApps_Unsupported(t *testing.T) {
	s := New(&platform.Provider{}, NewEventLog(8))
	_, isErr := call(t, s.handleApps, nil)
	assert.True(t, isErr)
	_, isErr = call(t, s.handleTrust, nil)
	assert.True(t, isErr)
}

func TestHandleStatus(t *testing.T) {
	fake := &platformtest.Fake{Trusted: true, Apps: []model.Process{finder}}
	log := NewEventLog(8)
	s := New(fake.Provider(), log)

	text, _ := call(t, s.handleStatus, nil)
	assert.Equal(t, "outcome: not-run\n", text)

	sess := launch.New(fake.Provider(), launch.Config{
		BundleID:     "com.apple.finder",
		Notification: "AXWindowMoved",
	}, log).Run()
	s.SetSession(sess)
	fake.Fire("AXWindowMoved", model.Element{Role: "AXWindow", PID: 412})

	text, isErr := call(t, s.handleStatus, nil)
	require.False(t, isErr)
	assert.Contains(t, text, "outcome: registered")
	assert.Contains(t, text, "received: 1")
	assert.Contains(t, text, "notification: AXWindowMoved")

	require.NoError(t, sess.Close())
	text, _ = call(t, s.handleStatus, nil)
	assert.Contains(t, text, "closed: true")
}

func TestHandleEvents(t *testing.T) {
	log := NewEventLog(8)
	log.Emit(model.Event{Type: model.EventRegistered, TS: 10, Handle: "<Application Finder>"})
	log.Emit(model.Event{Type: model.EventNotification, TS: 20, Notification: "AXWindowMoved"})
	log.Emit(model.Event{Type: model.EventNotification, TS: 30, Notification: "AXWindowMoved"})
	s := New((&platformtest.Fake{}).Provider(), log)

	text, isErr := call(t, s.handleEvents, map[string]any{"limit": float64(2), "since": float64(0)})
	require.False(t, isErr)

	var got struct {
		Events []model.Event `yaml:"events"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(text), &got))
	require.Len(t, got.Events, 2)
	assert.Equal(t, int64(20), got.Events[0].TS)
	assert.Equal(t, int64(30), got.Events[1].TS)
}

func TestParams(t *testing.T) {
	params := map[string]interface{}{
		"s": "finder",
		"n": float64(3),
		"b": true,
		"x": 7,
	}
	assert.Equal(t, "finder", stringParam(params, "s", ""))
	assert.Equal(t, "7", stringParam(params, "x", ""))
	assert.Equal(t, "def", stringParam(params, "missing", "def"))
	assert.Equal(t, 3, intParam(params, "n", 0))
	assert.Equal(t, 7, intParam(params, "x", 0))
	assert.Equal(t, 5, intParam(params, "s", 5))
	assert.True(t, boolParam(params, "b", false))
	assert.True(t, boolParam(params, "missing", true))
}

func TestServe_UnknownTransport(t *testing.T) {
	s := New((&platformtest.Fake{}).Provider(), NewEventLog(8))
	err := s.Serve(context.Background(), Config{Transport: "carrier-pigeon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport")
}
