package jsonschema

import (
	"fmt"
	"log/slog"

	"github.com/reoring/bicodec"
)

// builtins is the default registry, consulted after caller parsers.
var builtins = []Parser{
	NewParser(bicodec.TagAny, func(*bicodec.Codec, *Context) (Schema, error) { return Schema{}, nil }),
	primitive(bicodec.TagString),
	primitive(bicodec.TagNumber),
	primitive(bicodec.TagBoolean),
	primitive(bicodec.TagNull),
	NewParser(bicodec.TagLiteral, parseLiteral),
	NewParser(bicodec.TagEnum, parseEnum),
	NewParser(bicodec.TagObject, parseObject),
	NewParser(bicodec.TagRecord, parseRecord),
	NewParser(bicodec.TagArray, parseArray),
	NewParser(bicodec.TagTuple, parseTuple),
	NewParser(bicodec.TagIntersection, parseIntersection),
	NewParser(bicodec.TagUnion, parseUnion),
	NewParser(bicodec.TagRecursive, parseRecursive),
}

func isBuiltinTag(tag bicodec.Tag) bool {
	for _, p := range builtins {
		if p.Tag == tag {
			return true
		}
	}
	return false
}

func primitive(tag bicodec.Tag) Parser {
	return NewParser(tag, func(*bicodec.Codec, *Context) (Schema, error) {
		return Schema{"type": string(tag)}, nil
	})
}

func parseLiteral(c *bicodec.Codec, _ *Context) (Schema, error) {
	s := Schema{"const": c.Value()}
	if t := jsonType(c.Value()); t != "" {
		s["type"] = t
	}
	return s, nil
}

func parseEnum(c *bicodec.Codec, _ *Context) (Schema, error) {
	return Schema{"type": "string", "enum": c.Values()}, nil
}

func parseObject(c *bicodec.Codec, ctx *Context) (Schema, error) {
	shape := c.Shape()
	props := make(Schema, len(shape))
	required := make([]string, 0, len(shape))
	for _, f := range shape {
		s, err := ctx.Parse(f.Codec)
		if err != nil {
			return nil, err
		}
		props[f.Name] = s
		if f.Codec.Required() {
			required = append(required, f.Name)
		}
	}
	return Schema{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": ctx.AllowAdditional,
		"required":             required,
	}, nil
}

func parseRecord(c *bicodec.Codec, ctx *Context) (Schema, error) {
	value, err := ctx.Parse(c.Element())
	if err != nil {
		return nil, err
	}
	return Schema{
		"type":                 "object",
		"properties":           Schema{},
		"required":             []string{},
		"additionalProperties": value,
	}, nil
}

func parseArray(c *bicodec.Codec, ctx *Context) (Schema, error) {
	items, err := ctx.Parse(c.Element())
	if err != nil {
		return nil, err
	}
	return Schema{"type": "array", "items": items}, nil
}

func parseTuple(c *bicodec.Codec, ctx *Context) (Schema, error) {
	items, err := parseAll(c.Codecs(), ctx)
	if err != nil {
		return nil, err
	}
	return Schema{
		"type":     "array",
		"items":    anyList(items),
		"minItems": len(items),
		"maxItems": len(items),
	}, nil
}

func parseUnion(c *bicodec.Codec, ctx *Context) (Schema, error) {
	alts, err := parseAll(c.Codecs(), ctx)
	if err != nil {
		return nil, err
	}
	return Schema{"anyOf": anyList(alts)}, nil
}

// parseRecursive registers a placeholder for the id before resolving the
// body, so re-entering the same id while the body is being rendered yields a
// reference instead of unbounded recursion.
func parseRecursive(c *bicodec.Codec, ctx *Context) (Schema, error) {
	id := c.ID()
	ref := Schema{"$ref": refTo(id)}
	if _, ok := ctx.defs.get(id); ok {
		ctx.logger.Debug("jsonschema: recursion cache hit", slog.String("id", id))
		return ref, nil
	}
	ctx.defs.set(id, Schema{})
	body := c.Resolve()
	if body == nil {
		return nil, fmt.Errorf("jsonschema: recursive codec %q resolved to nil", id)
	}
	s, err := ctx.Parse(body)
	if err != nil {
		return nil, err
	}
	ctx.defs.set(id, s)
	return ref, nil
}

func parseAll(codecs []*bicodec.Codec, ctx *Context) ([]Schema, error) {
	out := make([]Schema, 0, len(codecs))
	for _, c := range codecs {
		s, err := ctx.Parse(c)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
