// Package jsonschema projects bicodec codec trees into JSON Schema documents.
//
// Generation walks the codec tree once through a registry of per-tag parsers.
// Caller-supplied parsers are consulted before the built-in ones, so any tag
// can be overridden. Recursive codecs are emitted once under "definitions"
// and referenced everywhere else through "$ref".
package jsonschema

import (
	"encoding/json"
	"reflect"
)

// Schema is one JSON Schema fragment.
type Schema map[string]any

// Document is the result of Generate: the root fragment merged with the
// "definitions" map of every recursive codec reached.
type Document map[string]any

// Definitions returns the "definitions" entry.
func (d Document) Definitions() Schema {
	s, _ := asSchema(d["definitions"])
	return s
}

// Target selects which side of a codec a parser describes.
type Target string

const (
	TargetEncoded Target = "encoded"
	TargetDecoded Target = "decoded"
)

// asSchema views v as a fragment. Custom parsers may hand back plain maps.
func asSchema(v any) (Schema, bool) {
	switch s := v.(type) {
	case Schema:
		return s, true
	case map[string]any:
		return Schema(s), true
	case Document:
		return Schema(s), true
	}
	return nil, false
}

// schemaList views v as a list of fragments.
func schemaList(v any) []Schema {
	switch l := v.(type) {
	case []Schema:
		return l
	case []any:
		out := make([]Schema, 0, len(l))
		for _, e := range l {
			if s, ok := asSchema(e); ok {
				out = append(out, s)
			}
		}
		return out
	case []map[string]any:
		out := make([]Schema, 0, len(l))
		for _, e := range l {
			out = append(out, Schema(e))
		}
		return out
	}
	return nil
}

// stringList views v as a list of strings.
func stringList(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func isUnion(s Schema) bool {
	_, ok := s["anyOf"]
	return ok
}

// isObject reports whether s is a plain object fragment whose properties can
// be merged. Record fragments constrain additionalProperties with a schema
// and are not mergeable.
func isObject(s Schema) bool {
	if s["type"] != "object" {
		return false
	}
	if _, ok := asSchema(s["additionalProperties"]); ok {
		return false
	}
	return true
}

// jsonType names the JSON Schema type of a literal value.
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	}
	return ""
}

func anyList(ss []Schema) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
