package bicodec

import "fmt"

// Omit returns a copy of c without the named fields. Objects drop the fields
// from their shape; intersections and unions rewrite every child and keep the
// child order. Children that never declared a field are left as they are.
func Omit(c *Codec, names ...string) (*Codec, error) {
	if len(names) == 0 {
		return nil, ErrEmptyMask
	}
	mask := make(map[string]bool, len(names))
	for _, n := range names {
		mask[n] = true
	}
	return rewrite(c, func(f Field) (Field, bool) { return f, !mask[f.Name] })
}

// MustOmit is like Omit but panics on error.
func MustOmit(c *Codec, names ...string) *Codec {
	out, err := Omit(c, names...)
	if err != nil {
		panic(err)
	}
	return out
}

// Partial returns a copy of c whose object fields are all optional,
// descending into intersections and unions.
func Partial(c *Codec) (*Codec, error) {
	return rewrite(c, func(f Field) (Field, bool) { return Field{Name: f.Name, Codec: Optional(f.Codec)}, true })
}

// MustPartial is like Partial but panics on error.
func MustPartial(c *Codec) *Codec {
	out, err := Partial(c)
	if err != nil {
		panic(err)
	}
	return out
}

// rewrite rebuilds the object nodes of c through fn, which maps a field and
// reports whether to keep it. Metadata and the required flag of every
// rewritten node are carried over.
func rewrite(c *Codec, fn func(Field) (Field, bool)) (*Codec, error) {
	var out *Codec
	switch c.tag {
	case TagObject:
		fields := make([]Field, 0, len(c.shape))
		for _, f := range c.shape {
			if nf, keep := fn(f); keep {
				fields = append(fields, nf)
			}
		}
		out = Object(fields...)
	case TagIntersection, TagUnion:
		children := make([]*Codec, len(c.codecs))
		for i, child := range c.codecs {
			rc, err := rewrite(child, fn)
			if err != nil {
				return nil, err
			}
			children[i] = rc
		}
		if c.tag == TagIntersection {
			out = newIntersection(children)
		} else {
			out = newUnion(children)
		}
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedRewrite, c.tag)
	}
	out.metadata = c.metadata
	if !c.required {
		out = Optional(out)
	}
	return out, nil
}
