package bicodec

import (
	"bytes"
	"io"
	"strings"

	j "github.com/goccy/go-json"

	"github.com/reoring/bicodec/i18n"
)

// DecodeJSON unmarshals data with go-json and decodes the result with c.
// Objects that repeat a key are rejected with one message per repetition; a
// plain unmarshal would silently keep the last value. Syntax errors from
// go-json are returned as is.
func DecodeJSON(c *Codec, data []byte) (any, error) {
	if err := checkDuplicateKeys(data); err != nil {
		return nil, err
	}
	var v any
	if err := j.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return c.Decode(v)
}

// EncodeJSON encodes v with c and marshals the result. An undefined result
// is written as null.
func EncodeJSON(c *Codec, v any) ([]byte, error) {
	out, err := c.Encode(v)
	if err != nil {
		return nil, err
	}
	if IsUndefined(out) {
		out = nil
	}
	return j.Marshal(out)
}

type jsonFrame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
}

// segment names the member currently being read inside f.
func (f *jsonFrame) segment() string {
	if f.object {
		return f.key
	}
	return indexSegment(f.index)
}

// checkDuplicateKeys walks the token stream of data and reports repeated
// object keys, prefixed with the path of the enclosing object.
func checkDuplicateKeys(data []byte) error {
	dec := j.NewDecoder(bytes.NewReader(data))
	var stack []*jsonFrame
	var col collector

	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.object {
			top.expectingKey = true
		} else {
			top.index++
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case j.Delim:
			switch v {
			case '{':
				stack = append(stack, &jsonFrame{object: true, keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, &jsonFrame{})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := stack[n-1]
				if _, dup := top.keys[v]; dup {
					col.addMessage(jsonPath(stack[:n-1]) + i18n.T(CodeDuplicateKey, map[string]string{"key": v}))
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
	return col.err()
}

func jsonPath(frames []*jsonFrame) string {
	if len(frames) == 0 {
		return ""
	}
	parts := make([]string, len(frames))
	for i, f := range frames {
		parts[i] = f.segment()
	}
	return strings.Join(parts, PathSeparator) + PathSeparator
}
