package bicodec

import (
	"sort"
	"strings"
)

// identity builds a validating identity codec for a JSON scalar type.
func identity(tag Tag, accept func(any) bool) *Codec {
	t := func(v any) (any, error) {
		if !accept(v) {
			return nil, Errorf(CodeInvalidType, map[string]string{"expected": string(tag), "received": typeName(v)})
		}
		return v, nil
	}
	return &Codec{tag: tag, required: true, encode: t, decode: t}
}

var (
	// String accepts Go strings and returns them unchanged.
	String = identity(TagString, func(v any) bool { _, ok := v.(string); return ok })
	// Number accepts every Go integer and float kind and json.Number.
	Number = identity(TagNumber, isNumber)
	// Boolean accepts Go bools.
	Boolean = identity(TagBoolean, func(v any) bool { _, ok := v.(bool); return ok })

	// Null accepts only nil.
	Null = func() *Codec {
		t := func(v any) (any, error) {
			if v != nil {
				return nil, Errorf(CodeNotNull, nil)
			}
			return nil, nil
		}
		return &Codec{tag: TagNull, required: true, encode: t, decode: t}
	}()

	// Any passes every value through without validation.
	Any = &Codec{tag: TagAny, required: true}
)

// Literal accepts exactly value. Numbers compare by value across Go types.
func Literal(value any) *Codec {
	t := func(v any) (any, error) {
		if !sameValue(value, v) {
			return nil, Errorf(CodeLiteralMismatch, map[string]string{"expected": display(value), "received": display(v)})
		}
		return v, nil
	}
	return &Codec{tag: TagLiteral, required: true, value: value, encode: t, decode: t}
}

// Enum accepts the values of valuesByKey, ordered by key.
func Enum(valuesByKey map[string]string) *Codec {
	keys := make([]string, 0, len(valuesByKey))
	for k := range valuesByKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, valuesByKey[k])
	}
	return EnumValues(values...)
}

// EnumValues accepts any of values, kept in the given order with
// duplicates removed.
func EnumValues(values ...string) *Codec {
	seen := map[string]bool{}
	permitted := make([]any, 0, len(values))
	names := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		permitted = append(permitted, v)
		names = append(names, v)
	}
	joined := strings.Join(names, ", ")
	t := func(v any) (any, error) {
		if s, ok := v.(string); ok && seen[s] {
			return v, nil
		}
		return nil, Errorf(CodeInvalidEnum, map[string]string{"received": display(v), "values": joined})
	}
	return &Codec{tag: TagEnum, required: true, values: permitted, encode: t, decode: t}
}
