package codec

import (
	"encoding/base64"

	"github.com/reoring/bicodec"
	"github.com/reoring/bicodec/jsonschema"
)

// TagBytes is the tag of the codec returned by Bytes.
const TagBytes bicodec.Tag = "Bytes"

// Bytes returns a codec between []byte (decoded) and a standard base64
// string (encoded).
func Bytes() *bicodec.Codec {
	return bicodec.New(TagBytes,
		func(v any) (any, error) {
			b, ok := v.([]byte)
			if !ok {
				return nil, invalidType("[]uint8", v)
			}
			return base64.StdEncoding.EncodeToString(b), nil
		},
		func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, invalidType("string", v)
			}
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, bicodec.Errorf(bicodec.CodeInvalidFormat, map[string]string{"format": "base64", "received": s})
			}
			return b, nil
		},
	)
}

// BytesParser renders Bytes codecs.
func BytesParser() jsonschema.Parser {
	return jsonschema.NewParser(TagBytes, func(_ *bicodec.Codec, ctx *jsonschema.Context) (jsonschema.Schema, error) {
		if ctx.Target == jsonschema.TargetDecoded {
			return jsonschema.Schema{
				"type":  "array",
				"items": jsonschema.Schema{"type": "integer", "minimum": 0, "maximum": 255},
			}, nil
		}
		return jsonschema.Schema{"type": "string", "contentEncoding": "base64"}, nil
	})
}
