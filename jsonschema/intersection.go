package jsonschema

import (
	"log/slog"

	"github.com/reoring/bicodec"
)

// parseIntersection renders an intersection so that additionalProperties
// sees every property a value may carry in a single properties block.
//
//   - only objects: merged into one object fragment.
//   - only unions: kept side by side under allOf.
//   - objects and unions: the merged objects form a base that is merged with
//     every alternative of every union; the products are collected under one
//     anyOf.
//
// Members that are neither (references, records, custom fragments) cannot be
// merged; the intersection then falls back to allOf over all members.
func parseIntersection(c *bicodec.Codec, ctx *Context) (Schema, error) {
	members, err := parseAll(c.Codecs(), ctx)
	if err != nil {
		return nil, err
	}
	var unions, objects []Schema
	for _, s := range members {
		switch {
		case isUnion(s):
			unions = append(unions, s)
		case isObject(s):
			objects = append(objects, s)
		default:
			ctx.logger.Debug("jsonschema: intersection member not mergeable, using allOf", slog.Int("members", len(members)))
			return Schema{"allOf": anyList(members)}, nil
		}
	}

	if len(unions) == 0 {
		return ctx.mergeObjects(objects...), nil
	}
	if len(objects) == 0 {
		return Schema{"allOf": anyList(unions)}, nil
	}

	base := ctx.mergeObjects(objects...)
	var products []Schema
	for _, u := range unions {
		for _, alt := range alternatives(u) {
			if !isObject(alt) {
				products = append(products, Schema{"allOf": []any{base, alt}})
				continue
			}
			products = append(products, ctx.mergeObjects(base, alt))
		}
	}
	ctx.logger.Debug("jsonschema: intersection expanded", slog.Int("unions", len(unions)), slog.Int("products", len(products)))
	return Schema{"anyOf": anyList(products)}, nil
}

// alternatives lists the anyOf branches of u, splicing in nested anyOf
// branches so that every product is a single object.
func alternatives(u Schema) []Schema {
	var out []Schema
	for _, alt := range schemaList(u["anyOf"]) {
		if isUnion(alt) {
			out = append(out, alternatives(alt)...)
			continue
		}
		out = append(out, alt)
	}
	return out
}

// mergeObjects unions the properties (later wins) and the required names
// (first occurrence order, no duplicates) of object fragments.
func (ctx *Context) mergeObjects(schemas ...Schema) Schema {
	props := Schema{}
	required := []string{}
	seen := map[string]bool{}
	for _, s := range schemas {
		if p, ok := asSchema(s["properties"]); ok {
			for k, v := range p {
				props[k] = v
			}
		}
		for _, r := range stringList(s["required"]) {
			if seen[r] {
				continue
			}
			seen[r] = true
			required = append(required, r)
		}
	}
	return Schema{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": ctx.AllowAdditional,
		"required":             required,
	}
}
