// Package manifest models an application manifest (app.json) and merges one
// bundle's pages into another bundle's manifest as a subpackage.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
)

// Well-known manifest keys.
const (
	KeyPages       = "pages"
	KeySubPackages = "subPackages"
	KeyPreloadRule = "preloadRule"
)

// Manifest is an app.json document. Keys are kept in document order and
// values are held raw, so keys the merge does not touch re-serialize
// unchanged.
type Manifest struct {
	keys   []string
	fields map[string]json.RawMessage
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{fields: make(map[string]json.RawMessage)}
}

// Parse decodes an app.json document. Comments and trailing commas are
// tolerated. The top-level value must be an object.
func Parse(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("manifest must be a JSON object")
	}

	m := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading manifest key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("reading value of %q: %w", key, err)
		}
		m.Set(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading manifest end: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after manifest object")
	}

	return m, nil
}

// Keys returns the top-level keys in document order.
func (m *Manifest) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Get returns the raw value stored under key.
func (m *Manifest) Get(key string) (json.RawMessage, bool) {
	raw, ok := m.fields[key]
	return raw, ok
}

// Set stores a raw value under key. New keys are appended to the key order;
// existing keys keep their position. Duplicate keys in a parsed document
// resolve to the last value, as with encoding/json.
func (m *Manifest) Set(key string, raw json.RawMessage) {
	if _, ok := m.fields[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.fields[key] = append(json.RawMessage(nil), raw...)
}

// Delete removes key from the manifest.
func (m *Manifest) Delete(key string) {
	if _, ok := m.fields[key]; !ok {
		return
	}
	delete(m.fields, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Pages returns the page list.
func (m *Manifest) Pages() ([]string, error) {
	raw, ok := m.fields[KeyPages]
	if !ok {
		return nil, nil
	}
	var pages []string
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", KeyPages, err)
	}
	return pages, nil
}

// PreloadRule returns the raw preload configuration, if present.
func (m *Manifest) PreloadRule() (json.RawMessage, bool) {
	return m.Get(KeyPreloadRule)
}

// SetPreloadRule replaces the preload configuration wholesale. A nil rule
// removes the key, matching how an absent value serializes.
func (m *Manifest) SetPreloadRule(rule json.RawMessage) {
	if rule == nil {
		m.Delete(KeyPreloadRule)
		return
	}
	m.Set(KeyPreloadRule, rule)
}

// MarshalJSON encodes the manifest compactly with keys in document order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, m.fields[k]); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalIndent encodes the manifest like MarshalJSON, then indents it.
// An empty indent yields the compact form.
func (m *Manifest) MarshalIndent(indent string) ([]byte, error) {
	data, err := m.MarshalJSON()
	if err != nil || indent == "" {
		return data, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", indent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
