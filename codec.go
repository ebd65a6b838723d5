package bicodec

// TransformFunc converts a value in one direction.
type TransformFunc func(v any) (any, error)

// Codec is an immutable node of a codec tree. It knows how to encode a
// decoded value, decode an encoded value, and exposes the variant data that
// schema generation and the rewrites need. Share nodes freely: no method
// mutates the receiver.
type Codec struct {
	tag      Tag
	encode   TransformFunc
	decode   TransformFunc
	metadata Metadata
	required bool

	shape    []Field
	element  *Codec
	codecs   []*Codec
	values   []any
	value    any
	id       string
	resolver func() *Codec
	extra    map[string]any
}

// New builds a custom codec. A nil encode or decode is the identity.
func New(tag Tag, encode, decode TransformFunc, props ...Props) *Codec {
	c := &Codec{tag: tag, encode: encode, decode: decode, required: true}
	for _, p := range props {
		if p.Metadata != nil {
			c.metadata = c.metadata.merge(p.Metadata)
		}
		if p.Required != nil {
			c.required = *p.Required
		}
		for k, v := range p.Extra {
			if c.extra == nil {
				c.extra = map[string]any{}
			}
			c.extra[k] = v
		}
	}
	return c
}

func (c *Codec) clone() *Codec {
	cp := *c
	return &cp
}

// Tag returns the variant discriminator.
func (c *Codec) Tag() Tag { return c.tag }

// Metadata returns a copy of the metadata.
func (c *Codec) Metadata() Metadata { return Metadata(nil).merge(c.metadata) }

// Required reports whether the value must be present. Only Optional clears it.
func (c *Codec) Required() bool { return c.required }

// Shape returns the object fields in declaration order.
func (c *Codec) Shape() []Field { return append([]Field(nil), c.shape...) }

// Element returns the child codec of arrays and records.
func (c *Codec) Element() *Codec { return c.element }

// Codecs returns the children of tuples, unions and intersections.
func (c *Codec) Codecs() []*Codec { return append([]*Codec(nil), c.codecs...) }

// Values returns the permitted values of an enum.
func (c *Codec) Values() []any { return append([]any(nil), c.values...) }

// Value returns the constant of a literal.
func (c *Codec) Value() any { return c.value }

// ID returns the identity of a recursive codec.
func (c *Codec) ID() string { return c.id }

// Resolve invokes the resolver of a recursive codec. It returns nil for every
// other variant.
func (c *Codec) Resolve() *Codec {
	if c.resolver == nil {
		return nil
	}
	return c.resolver()
}

// Prop returns a custom property set through Props.Extra.
func (c *Codec) Prop(key string) (any, bool) {
	v, ok := c.extra[key]
	return v, ok
}

// Encode converts a decoded value into its encoded form.
func (c *Codec) Encode(v any) (any, error) {
	if c.encode == nil {
		return v, nil
	}
	return c.encode(v)
}

// Decode converts an encoded value into its decoded form.
func (c *Codec) Decode(v any) (any, error) {
	if c.decode == nil {
		return v, nil
	}
	return c.decode(v)
}

// Meta returns a copy whose metadata is merged with patch (patch wins).
func (c *Codec) Meta(patch Metadata) *Codec {
	cp := c.clone()
	cp.metadata = c.metadata.merge(patch)
	return cp
}

// Optional is shorthand for Optional(c).
func (c *Codec) Optional() *Codec { return Optional(c) }

// And is shorthand for Intersection(c, other).
func (c *Codec) And(other *Codec) *Codec { return Intersection(c, other) }

// Or is shorthand for Union(c, other).
func (c *Codec) Or(other *Codec) *Codec { return Union(c, other) }

// direction selects one side of a codec.
type direction int

const (
	dirEncode direction = iota
	dirDecode
)

func (c *Codec) transform(d direction, v any) (any, error) {
	if d == dirEncode {
		return c.Encode(v)
	}
	return c.Decode(v)
}
