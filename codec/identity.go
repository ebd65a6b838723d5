package codec

import (
	"fmt"

	"github.com/reoring/bicodec"
	"github.com/reoring/bicodec/jsonschema"
)

// Identity returns a codec under tag that accepts only values of Go type T
// and returns them unchanged in both directions.
func Identity[T any](tag bicodec.Tag) *bicodec.Codec {
	t := func(v any) (any, error) {
		if _, ok := v.(T); !ok {
			var zero T
			return nil, invalidType(fmt.Sprintf("%T", zero), v)
		}
		return v, nil
	}
	return bicodec.New(tag, t, t)
}

// IdentityParser renders every codec tagged tag as a copy of schema, on
// both sides.
func IdentityParser(tag bicodec.Tag, schema jsonschema.Schema) jsonschema.Parser {
	return jsonschema.NewParser(tag, func(*bicodec.Codec, *jsonschema.Context) (jsonschema.Schema, error) {
		out := make(jsonschema.Schema, len(schema))
		for k, v := range schema {
			out[k] = v
		}
		return out, nil
	})
}

func invalidType(expected string, v any) error {
	received := fmt.Sprintf("%T", v)
	switch v.(type) {
	case nil:
		received = "null"
	case bicodec.Absent:
		received = "undefined"
	}
	return bicodec.Errorf(bicodec.CodeInvalidType, map[string]string{"expected": expected, "received": received})
}
