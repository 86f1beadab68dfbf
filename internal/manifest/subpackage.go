package manifest

import (
	"encoding/json"
	"path/filepath"
)

// SubPackage describes one entry of a manifest's subPackages list.
type SubPackage struct {
	Root        string   `json:"root"`
	Name        string   `json:"name,omitempty"`
	Pages       []string `json:"pages"`
	Independent bool     `json:"independent"`

	// raw holds the original encoding of entries read from a document.
	raw json.RawMessage
}

type subPackageFields SubPackage

// MarshalJSON re-emits entries read from a document verbatim and encodes new
// entries from their fields.
func (s SubPackage) MarshalJSON() ([]byte, error) {
	if s.raw != nil {
		return s.raw, nil
	}
	return json.Marshal(subPackageFields(s))
}

// UnmarshalJSON decodes an entry and remembers its original encoding.
// Entries that are not objects are kept raw with empty fields.
func (s *SubPackage) UnmarshalJSON(data []byte) error {
	var f subPackageFields
	// Malformed entries keep zero fields; raw below preserves them as written.
	_ = json.Unmarshal(data, &f)
	*s = SubPackage(f)
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

// SubPackages returns the normalized subPackages list. An absent key or a
// value that is not an array yields an empty list.
func (m *Manifest) SubPackages() []SubPackage {
	raw, ok := m.fields[KeySubPackages]
	if !ok {
		return []SubPackage{}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []SubPackage{}
	}

	subs := make([]SubPackage, 0, len(items))
	for _, item := range items {
		var s SubPackage
		_ = s.UnmarshalJSON(item)
		subs = append(subs, s)
	}
	return subs
}

// SetSubPackages replaces the subPackages list.
func (m *Manifest) SetSubPackages(subs []SubPackage) error {
	if subs == nil {
		subs = []SubPackage{}
	}
	data, err := json.Marshal(subs)
	if err != nil {
		return err
	}
	m.Set(KeySubPackages, data)
	return nil
}

// SubpackageRoot returns the subpackage root for a bundle directory: its
// base name followed by a slash.
func SubpackageRoot(dir string) string {
	return filepath.Base(filepath.Clean(dir)) + "/"
}
