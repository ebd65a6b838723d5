package bicodec

import (
	"github.com/google/uuid"
)

// flatten concatenates a and b into one child list, splicing in the
// children of either side that already carries tag. Optional nodes stay
// whole so their absence handling survives.
func flatten(tag Tag, a, b *Codec) []*Codec {
	out := make([]*Codec, 0, 2)
	for _, c := range []*Codec{a, b} {
		if c.tag == tag && c.codecs != nil && c.required {
			out = append(out, c.codecs...)
			continue
		}
		out = append(out, c)
	}
	return out
}

// Intersection merges the object outputs of a and b. Nested intersections are
// flattened so the result always holds a single flat child list with a's
// children first.
func Intersection(a, b *Codec) *Codec { return newIntersection(flatten(TagIntersection, a, b)) }

func newIntersection(codecs []*Codec) *Codec {
	c := &Codec{tag: TagIntersection, required: true, codecs: codecs}
	c.encode = intersectionTransform(dirEncode, codecs)
	c.decode = intersectionTransform(dirDecode, codecs)
	return c
}

// intersectionTransform feeds the same input to every child and merges the
// resulting maps key by key; later children overwrite earlier ones.
func intersectionTransform(d direction, codecs []*Codec) TransformFunc {
	return func(v any) (any, error) {
		out := map[string]any{}
		for _, c := range codecs {
			r, err := c.transform(d, v)
			if err != nil {
				return nil, err
			}
			if IsUndefined(r) {
				continue
			}
			m, ok := asMap(r)
			if !ok {
				return nil, Errorf(CodeIntersectionMember, map[string]string{"received": typeName(r)})
			}
			for k, val := range m {
				out[k] = val
			}
		}
		return out, nil
	}
}

// Union accepts whatever the first matching child accepts. Nested unions are
// flattened and the declared order is kept: it decides which child wins.
func Union(a, b *Codec) *Codec { return newUnion(flatten(TagUnion, a, b)) }

func newUnion(codecs []*Codec) *Codec {
	c := &Codec{tag: TagUnion, required: true, codecs: codecs}
	c.encode = unionTransform(dirEncode, codecs)
	c.decode = unionTransform(dirDecode, codecs)
	return c
}

func unionTransform(d direction, codecs []*Codec) TransformFunc {
	return func(v any) (any, error) {
		var msgs []string
		for _, c := range codecs {
			r, err := c.transform(d, v)
			if err == nil {
				return r, nil
			}
			msgs = append(msgs, messagesOf(err)...)
		}
		return nil, &TransformError{Errors: msgs}
	}
}

// Optional lets c accept Undefined, which it passes through untouched. The
// tag is kept so schema generation still dispatches on the wrapped variant.
// Wrapping an optional codec again returns it unchanged.
func Optional(c *Codec) *Codec {
	if !c.required {
		return c
	}
	inner := c
	cp := c.clone()
	cp.required = false
	cp.encode = func(v any) (any, error) {
		if IsUndefined(v) {
			return Undefined, nil
		}
		return inner.Encode(v)
	}
	cp.decode = func(v any) (any, error) {
		if IsUndefined(v) {
			return Undefined, nil
		}
		return inner.Decode(v)
	}
	return cp
}

// Recursive stands in for the codec returned by resolver, which may refer
// back to the codec being defined. The resolver runs on every transform.
//
// id keys the schema definition cache and must be unique per declared
// recursive type; an empty id is replaced by a generated UUID.
func Recursive(id string, resolver func() *Codec) *Codec {
	if id == "" {
		id = uuid.NewString()
	}
	return &Codec{
		tag:      TagRecursive,
		required: true,
		id:       id,
		resolver: resolver,
		encode:   recursiveTransform(dirEncode, id, resolver),
		decode:   recursiveTransform(dirDecode, id, resolver),
	}
}

func recursiveTransform(d direction, id string, resolver func() *Codec) TransformFunc {
	return func(v any) (any, error) {
		body := resolver()
		if body == nil {
			return nil, Errorf(CodeUnresolved, map[string]string{"id": id})
		}
		return body.transform(d, v)
	}
}
