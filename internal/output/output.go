package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mj1618/axwatch/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatText

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ParseFormat converts a --format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unsupported format: %s (use text, yaml, or json)", s)
	}
}

// AppsResult is the top-level output of the `apps` command.
type AppsResult struct {
	BundleID string          `yaml:"bundle_id,omitempty" json:"bundle_id,omitempty"`
	TS       int64           `yaml:"ts"                  json:"ts"`
	Apps     []model.Process `yaml:"apps"                json:"apps"`
}

// TrustResult is the top-level output of the `trust` command.
type TrustResult struct {
	Trusted  bool   `yaml:"trusted"            json:"trusted"`
	Prompted bool   `yaml:"prompted,omitempty" json:"prompted,omitempty"`
	Settings string `yaml:"settings,omitempty" json:"settings,omitempty"`
}

// Print serializes v to stdout in the current output format. Text output
// falls back to YAML for structured values.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML, FormatText:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintPrettyJSON serializes v to stdout as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML serializes v to stdout as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
