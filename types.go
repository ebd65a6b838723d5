package bicodec

// Tag identifies which variant a codec node is. Schema parsers are looked
// up by tag.
type Tag string

const (
	TagString       Tag = "string"
	TagNumber       Tag = "number"
	TagBoolean      Tag = "boolean"
	TagNull         Tag = "null"
	TagAny          Tag = "any"
	TagLiteral      Tag = "literal"
	TagEnum         Tag = "enum"
	TagObject       Tag = "object"
	TagArray        Tag = "array"
	TagTuple        Tag = "tuple"
	TagRecord       Tag = "record"
	TagUnion        Tag = "union"
	TagIntersection Tag = "intersection"
	TagRecursive    Tag = "recursive"
)

// Metadata carries descriptive data attached with Meta. The "description"
// key is picked up by schema generation.
type Metadata map[string]any

// Description returns the "description" entry when it is a string.
func (m Metadata) Description() (string, bool) {
	d, ok := m["description"].(string)
	return d, ok && d != ""
}

// merge returns a new map holding m overlaid by patch (patch wins).
func (m Metadata) merge(patch Metadata) Metadata {
	out := make(Metadata, len(m)+len(patch))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Props is the optional property bag passed to New.
type Props struct {
	Metadata Metadata
	// Required defaults to true when nil.
	Required *bool
	// Extra holds custom variant data readable through Codec.Prop.
	Extra map[string]any
}

// Absent is the type of Undefined.
type Absent struct{}

// String renders the absent value.
func (Absent) String() string { return "undefined" }

// Undefined marks a value that is not present at all, as opposed to nil
// (null). Object transforms feed it to field codecs for missing keys and
// drop fields whose transformed value is Undefined.
var Undefined = Absent{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(Absent)
	return ok
}

// Field is one named entry of an object shape.
type Field struct {
	Name  string
	Codec *Codec
}

// F builds a Field.
func F(name string, c *Codec) Field { return Field{Name: name, Codec: c} }
