package jsonschema

import (
	"bytes"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Marshal renders a document as compact JSON. Object keys are sorted, so
// the same codec tree always yields the same bytes.
func Marshal(doc Document) ([]byte, error) { return j.Marshal(doc) }

// MarshalIndent is like Marshal with indentation.
func MarshalIndent(doc Document, prefix, indent string) ([]byte, error) {
	return j.MarshalIndent(doc, prefix, indent)
}

// MarshalYAML renders a document as YAML with two-space indentation.
func MarshalYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any(doc)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
