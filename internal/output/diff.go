package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"
)

// DiffManifests renders a structural diff between two JSON manifest
// documents. It returns an empty string when they are equivalent.
func DiffManifests(before, after []byte, useColor bool) (string, error) {
	beforeYAML, err := yaml.JSONToYAML(before)
	if err != nil {
		return "", fmt.Errorf("converting current manifest: %w", err)
	}
	afterYAML, err := yaml.JSONToYAML(after)
	if err != nil {
		return "", fmt.Errorf("converting merged manifest: %w", err)
	}

	from, err := parseYAMLInput("current", beforeYAML)
	if err != nil {
		return "", fmt.Errorf("parsing current manifest: %w", err)
	}
	to, err := parseYAMLInput("merged", afterYAML)
	if err != nil {
		return "", fmt.Errorf("parsing merged manifest: %w", err)
	}

	report, err := dyff.CompareInputFiles(from, to)
	if err != nil {
		return "", fmt.Errorf("comparing manifests: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderReport(report, useColor)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

func renderReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	w := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := w.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
