package bicodec

import (
	"sort"
	"strconv"

	"github.com/reoring/bicodec/i18n"
)

// Object maps a fixed set of named fields. Declaration order is kept for
// schema output; a repeated name replaces the earlier codec in place.
//
// Missing keys reach the field codec as Undefined and fields whose result is
// Undefined are left out of the output. Every field is visited before the
// collected errors are returned, each prefixed with its field name.
func Object(fields ...Field) *Codec {
	shape := make([]Field, 0, len(fields))
	index := map[string]int{}
	for _, f := range fields {
		if i, ok := index[f.Name]; ok {
			shape[i] = f
			continue
		}
		index[f.Name] = len(shape)
		shape = append(shape, f)
	}
	c := &Codec{tag: TagObject, required: true, shape: shape}
	c.encode = objectTransform(dirEncode, shape)
	c.decode = objectTransform(dirDecode, shape)
	return c
}

func objectTransform(d direction, shape []Field) TransformFunc {
	return func(v any) (any, error) {
		m, ok := asMap(v)
		if !ok {
			return nil, Errorf(CodeExpectedMap, map[string]string{"received": typeName(v)})
		}
		out := make(map[string]any, len(shape))
		var errs collector
		for _, f := range shape {
			in, present := m[f.Name]
			if !present {
				in = Undefined
			}
			r, err := f.Codec.transform(d, in)
			if err != nil {
				errs.fieldError(f.Name, in, f.Codec, err)
				continue
			}
			if !IsUndefined(r) {
				out[f.Name] = r
			}
		}
		if err := errs.err(); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// fieldError records err for key. A required codec rejecting an absent
// value is reported as a missing field rather than a type mismatch.
func (c *collector) fieldError(key string, in any, codec *Codec, err error) {
	if IsUndefined(in) && codec.Required() {
		c.addMessage(i18n.T(CodeRequired, map[string]string{"field": key}))
		return
	}
	c.add(key, err)
}

// Record maps every value of a string-keyed map through value. Keys are
// visited in sorted order so errors come out deterministically.
func Record(value *Codec) *Codec {
	c := &Codec{tag: TagRecord, required: true, element: value}
	c.encode = recordTransform(dirEncode, value)
	c.decode = recordTransform(dirDecode, value)
	return c
}

func recordTransform(d direction, value *Codec) TransformFunc {
	return func(v any) (any, error) {
		m, ok := asMap(v)
		if !ok {
			return nil, Errorf(CodeExpectedMap, map[string]string{"received": typeName(v)})
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(m))
		var errs collector
		for _, k := range keys {
			r, err := value.transform(d, m[k])
			if err != nil {
				errs.fieldError(k, m[k], value, err)
				continue
			}
			if !IsUndefined(r) {
				out[k] = r
			}
		}
		if err := errs.err(); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// Array maps every element of a sequence through elem, keeping order and
// length. Element errors are collected and prefixed with "[i]".
func Array(elem *Codec) *Codec {
	c := &Codec{tag: TagArray, required: true, element: elem}
	c.encode = arrayTransform(dirEncode, elem)
	c.decode = arrayTransform(dirDecode, elem)
	return c
}

func arrayTransform(d direction, elem *Codec) TransformFunc {
	return func(v any) (any, error) {
		s, ok := asSlice(v)
		if !ok {
			return nil, Errorf(CodeExpectedArray, map[string]string{"received": typeName(v)})
		}
		out := make([]any, len(s))
		var errs collector
		for i, e := range s {
			r, err := elem.transform(d, e)
			if err != nil {
				errs.add(indexSegment(i), err)
				continue
			}
			out[i] = elementValue(r)
		}
		if err := errs.err(); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// Tuple maps a fixed-length sequence, the i-th codec applying to the i-th
// element.
func Tuple(codecs ...*Codec) *Codec {
	cs := append([]*Codec{}, codecs...)
	c := &Codec{tag: TagTuple, required: true, codecs: cs}
	c.encode = tupleTransform(dirEncode, cs)
	c.decode = tupleTransform(dirDecode, cs)
	return c
}

func tupleTransform(d direction, codecs []*Codec) TransformFunc {
	return func(v any) (any, error) {
		s, ok := asSlice(v)
		if !ok {
			return nil, Errorf(CodeExpectedArray, map[string]string{"received": typeName(v)})
		}
		if len(s) != len(codecs) {
			return nil, Errorf(CodeTupleLength, map[string]string{
				"expected": strconv.Itoa(len(codecs)),
				"received": strconv.Itoa(len(s)),
			})
		}
		out := make([]any, len(s))
		var errs collector
		for i, c := range codecs {
			r, err := c.transform(d, s[i])
			if err != nil {
				errs.add(indexSegment(i), err)
				continue
			}
			out[i] = elementValue(r)
		}
		if err := errs.err(); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// elementValue maps an Undefined element result to nil: a sequence has no
// slot to omit, so an absent element is written as null.
func elementValue(v any) any {
	if IsUndefined(v) {
		return nil
	}
	return v
}

func indexSegment(i int) string { return "[" + strconv.Itoa(i) + "]" }
