package jsonschema

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/reoring/bicodec"
)

// ErrNoParser is returned when no registered parser handles a codec's tag.
var ErrNoParser = errors.New("jsonschema: no parser configured for codec")

// ParseFunc renders one codec node. Use ctx.Parse for child codecs.
type ParseFunc func(c *bicodec.Codec, ctx *Context) (Schema, error)

// Parser binds a ParseFunc to the tag it handles.
type Parser struct {
	Tag   bicodec.Tag
	Parse ParseFunc
}

// NewParser builds a Parser for the Parsers option.
func NewParser(tag bicodec.Tag, fn ParseFunc) Parser { return Parser{Tag: tag, Parse: fn} }

// Options configures one Generate call.
type Options struct {
	// Target defaults to TargetEncoded. Built-in parsers ignore it.
	Target Target
	// Parsers are consulted before the built-in ones.
	Parsers []Parser
	// AllowAdditional sets additionalProperties on every object fragment.
	AllowAdditional bool
	// Logger receives debug records about dispatch decisions.
	Logger *slog.Logger
}

// Context is the state of one Generate call, handed to every parser.
type Context struct {
	Target          Target
	AllowAdditional bool

	parsers []Parser
	defs    *definitions
	logger  *slog.Logger
}

// Logger returns the logger configured for this call.
func (ctx *Context) Logger() *slog.Logger { return ctx.logger }

// Definition returns the cached fragment of a recursive id.
func (ctx *Context) Definition(id string) (Schema, bool) { return ctx.defs.get(id) }

// Parse dispatches c to the first parser registered for its tag and wraps
// the fragment with the codec's description, if any. A missing parser is an
// error: a schema that silently skips a type would be wrong.
func (ctx *Context) Parse(c *bicodec.Codec) (Schema, error) {
	var p *Parser
	for i := range ctx.parsers {
		if ctx.parsers[i].Tag == c.Tag() {
			p = &ctx.parsers[i]
			break
		}
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoParser, c.Tag())
	}
	s, err := p.Parse(c, ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = Schema{}
	}
	if d, ok := c.Metadata().Description(); ok {
		out := make(Schema, len(s)+1)
		out["description"] = d
		for k, v := range s {
			out[k] = v
		}
		return out, nil
	}
	return s, nil
}

// definitions is the per-call cache of recursive fragments, kept in
// insertion order.
type definitions struct {
	order []string
	m     map[string]Schema
}

func newDefinitions() *definitions { return &definitions{m: map[string]Schema{}} }

func (d *definitions) get(id string) (Schema, bool) {
	s, ok := d.m[id]
	return s, ok
}

func (d *definitions) set(id string, s Schema) {
	if _, ok := d.m[id]; !ok {
		d.order = append(d.order, id)
	}
	d.m[id] = s
}

func (d *definitions) schema() Schema {
	out := make(Schema, len(d.order))
	for _, id := range d.order {
		out[id] = d.m[id]
	}
	return out
}

// Generate renders c as a JSON Schema document. The definition cache is
// allocated per call, so concurrent calls over the same tree are safe.
func Generate(c *bicodec.Codec, opts ...Options) (Document, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Target == "" {
		o.Target = TargetEncoded
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	parsers := make([]Parser, 0, len(o.Parsers)+len(builtins))
	parsers = append(parsers, o.Parsers...)
	parsers = append(parsers, builtins...)
	for _, p := range o.Parsers {
		if isBuiltinTag(p.Tag) {
			logger.Debug("jsonschema: built-in parser overridden", slog.String("tag", string(p.Tag)))
		}
	}

	ctx := &Context{
		Target:          o.Target,
		AllowAdditional: o.AllowAdditional,
		parsers:         parsers,
		defs:            newDefinitions(),
		logger:          logger,
	}
	root, err := ctx.Parse(c)
	if err != nil {
		return nil, err
	}
	doc := Document{"definitions": ctx.defs.schema()}
	for k, v := range root {
		doc[k] = v
	}
	logger.Debug("jsonschema: generated",
		slog.String("tag", string(c.Tag())),
		slog.Int("definitions", len(ctx.defs.order)),
		slog.String("target", string(o.Target)))
	return doc, nil
}

// MustGenerate is like Generate but panics on error.
func MustGenerate(c *bicodec.Codec, opts ...Options) Document {
	doc, err := Generate(c, opts...)
	if err != nil {
		panic(err)
	}
	return doc
}

// refTo builds the pointer to a definition, escaping the id per RFC 6901.
func refTo(id string) string {
	esc := strings.ReplaceAll(strings.ReplaceAll(id, "~", "~0"), "/", "~1")
	return "#/definitions/" + esc
}
