// Package bicodec provides two-way codecs between a decoded in-memory shape
// and an encoded wire/storage shape.
//
//   - Primitive codecs (String, Number, Boolean, Literal, Enum, Null, Any)
//   - Structural codecs (Object, Array, Tuple, Record)
//   - Algebraic codecs (Intersection, Union, Optional, Recursive)
//   - Rewrites over object trees (Omit, Partial)
//   - A stable error model via TransformError (ordered, path-prefixed messages)
//
// Design policy:
//   - Codec nodes are immutable; Meta, Optional, And and Or return new nodes.
//   - Encode and Decode take already-parsed values (maps, slices, scalars).
//     DecodeJSON and EncodeJSON wrap them for JSON bytes and reject duplicate keys.
//   - JSON Schema projection lives in jsonschema/, ready-made custom codecs in codec/.
//
// Typical usage:
//
//	user := bicodec.Object(
//		bicodec.F("name", bicodec.String),
//		bicodec.F("created_at", codec.Time()),
//		bicodec.F("nickname", bicodec.String.Optional()),
//	)
//	wire, err := user.Encode(map[string]any{"name": "ada", "created_at": time.Now()})
//	doc, err := jsonschema.Generate(user, jsonschema.Options{Parsers: []jsonschema.Parser{codec.TimeParser()}})
package bicodec
