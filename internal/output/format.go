package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"
)

// Format selects how a manifest is printed.
type Format string

const (
	// FormatDiff prints a structural diff against the current manifest.
	FormatDiff Format = "diff"

	// FormatJSON prints the manifest as indented JSON.
	FormatJSON Format = "json"

	// FormatYAML prints the manifest as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat parses s into a Format. The second result is false for
// unknown formats.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "", "diff":
		return FormatDiff, true
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// ValidFormats returns the accepted format names.
func ValidFormats() []string {
	return []string{"diff", "json", "yaml"}
}

// FormatManifest renders a JSON manifest document as JSON or YAML.
func FormatManifest(data []byte, format Format) (string, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return "", fmt.Errorf("indenting manifest: %w", err)
		}
		return buf.String(), nil
	case FormatYAML:
		out, err := yaml.JSONToYAML(data)
		if err != nil {
			return "", fmt.Errorf("converting manifest to YAML: %w", err)
		}
		return strings.TrimRight(string(out), "\n"), nil
	default:
		return "", fmt.Errorf("format %q does not render a manifest", format)
	}
}
