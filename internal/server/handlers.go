package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/axwatch/internal/model"
	"github.com/mj1618/axwatch/internal/output"
)

const settingsHint = "System Settings > Privacy & Security > Accessibility"

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yaml encode: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleTrust(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	prompt := boolParam(params, "prompt", false)

	if s.provider.Trust == nil {
		return mcp.NewToolResultError("trust check not available on this platform"), nil
	}
	res := output.TrustResult{
		Trusted:  s.provider.Trust.IsTrusted(prompt),
		Prompted: prompt,
	}
	if !res.Trusted {
		res.Settings = settingsHint
	}
	return toText(res)
}

func (s *Server) handleApps(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	bundleID := stringParam(params, "bundle_id", "")

	if s.provider.Processes == nil {
		return mcp.NewToolResultError("process lookup not available on this platform"), nil
	}
	apps, err := s.provider.Processes.RunningApplications(bundleID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if apps == nil {
		apps = []model.Process{}
	}
	return toText(output.AppsResult{
		BundleID: bundleID,
		TS:       time.Now().Unix(),
		Apps:     apps,
	})
}

func (s *Server) handleStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := s.currentSession()
	if sess == nil {
		return mcp.NewToolResultText("outcome: not-run\n"), nil
	}
	return toText(sess.Status())
}

func (s *Server) handleEvents(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	limit := intParam(params, "limit", 0)
	since := intParam(params, "since", 0)

	events := s.events.Recent(limit, int64(since))
	return toText(struct {
		Dropped int           `yaml:"dropped,omitempty"`
		Events  []model.Event `yaml:"events"`
	}{
		Dropped: s.events.Dropped(),
		Events:  events,
	})
}

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
