package codec

import (
	"time"

	"github.com/reoring/bicodec"
	"github.com/reoring/bicodec/jsonschema"
)

// TagTime is the tag of the codec returned by Time.
const TagTime bicodec.Tag = "Date"

// Time returns a codec between time.Time (decoded) and an RFC3339 string
// (encoded). Encoding normalizes to UTC; decoding accepts RFC3339 with or
// without fractional seconds.
func Time() *bicodec.Codec {
	return bicodec.New(TagTime, encodeTime, decodeTime)
}

func encodeTime(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return formatRFC3339Canonical(t), nil
	case *time.Time:
		if t != nil {
			return formatRFC3339Canonical(*t), nil
		}
	}
	return nil, invalidType("time.Time", v)
}

func decodeTime(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, invalidType("string", v)
	}
	t, err := parseRFC3339(s)
	if err != nil {
		return nil, bicodec.Errorf(bicodec.CodeInvalidFormat, map[string]string{"format": "RFC3339 time", "received": s})
	}
	return t, nil
}

// TimeParser renders Time codecs: a date-time string on the encoded side
// and an opaque time.Time node on the decoded side.
func TimeParser() jsonschema.Parser {
	return jsonschema.NewParser(TagTime, func(_ *bicodec.Codec, ctx *jsonschema.Context) (jsonschema.Schema, error) {
		if ctx.Target == jsonschema.TargetDecoded {
			return jsonschema.Schema{"type": "object", "goType": "time.Time"}, nil
		}
		return jsonschema.Schema{"type": "string", "format": "date-time"}, nil
	})
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
