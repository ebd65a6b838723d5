package bicodec

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// ResolveStructKey resolves the map key a struct field is read under when a
// struct is handed to an object or record codec.
// Priority: codec:"name" > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if ct := sf.Tag.Get("codec"); ct != "" {
		if i := strings.IndexByte(ct, ','); i >= 0 {
			ct = ct[:i]
		}
		if ct != "" {
			return ct
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt
		}
	}
	return sf.Name
}

// asMap views v as a string-keyed map. It accepts map[string]any, any map
// with string keys, and structs (or non-nil pointers to structs).
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case nil, Absent:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		out := map[string]any{}
		structFields(rv, out)
		return out, true
	}
	return nil, false
}

func structFields(rv reflect.Value, out map[string]any) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get("json") == "" && sf.Tag.Get("codec") == "" {
			structFields(rv.Field(i), out)
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		out[key] = rv.Field(i).Interface()
	}
}

// asSlice views v as a sequence. It accepts []any and any Go slice or array.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case nil, Absent, string:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

// toFloat converts every Go numeric kind and json.Number to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case nil, Absent, bool, string:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isNumber(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// typeName names the runtime type of v using the JSON vocabulary.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case Absent:
		return "undefined"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	if isNumber(v) {
		return "number"
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}

// sameValue compares scalars, treating numbers of different Go types as equal
// when their values are.
func sameValue(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch a.(type) {
	case string, bool, nil:
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// display renders v for error messages.
func display(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
