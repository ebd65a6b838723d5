package jsonschema

import (
	"bytes"
	"errors"
	"strings"

	j "github.com/goccy/go-json"
	sjs "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/reoring/bicodec"
)

const documentURL = "mem:///bicodec/schema.json"

// Validator checks encoded values against a generated document.
type Validator struct {
	schema  *sjs.Schema
	printer *message.Printer
}

// NewValidator compiles doc as a draft-07 schema.
func NewValidator(doc Document) (*Validator, error) {
	inst, err := toInstance(doc)
	if err != nil {
		return nil, err
	}
	c := sjs.NewCompiler()
	c.DefaultDraft(sjs.Draft7)
	if err := c.AddResource(documentURL, inst); err != nil {
		return nil, err
	}
	s, err := c.Compile(documentURL)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: s, printer: message.NewPrinter(language.English)}, nil
}

// Validate checks v. Violations come back as a *bicodec.TransformError with
// one "<path> > <reason>" message per failing leaf.
func (v *Validator) Validate(value any) error {
	inst, err := toInstance(value)
	if err != nil {
		return err
	}
	err = v.schema.Validate(inst)
	if err == nil {
		return nil
	}
	var verr *sjs.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	var msgs []string
	v.collect(verr, &msgs)
	return bicodec.NewTransformError(msgs...)
}

func (v *Validator) collect(verr *sjs.ValidationError, msgs *[]string) {
	if len(verr.Causes) == 0 {
		msg := verr.ErrorKind.LocalizedString(v.printer)
		if len(verr.InstanceLocation) > 0 {
			msg = strings.Join(verr.InstanceLocation, bicodec.PathSeparator) + bicodec.PathSeparator + msg
		}
		*msgs = append(*msgs, msg)
		return
	}
	for _, cause := range verr.Causes {
		v.collect(cause, msgs)
	}
}

// ValidateEncoded encodes value with c and validates the result against the
// encoded-side schema of c. opts.Target is forced to TargetEncoded.
func ValidateEncoded(c *bicodec.Codec, value any, opts ...Options) (any, error) {
	encoded, err := c.Encode(value)
	if err != nil {
		return nil, err
	}
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	o.Target = TargetEncoded
	doc, err := Generate(c, o)
	if err != nil {
		return nil, err
	}
	val, err := NewValidator(doc)
	if err != nil {
		return nil, err
	}
	if err := val.Validate(encoded); err != nil {
		return nil, err
	}
	return encoded, nil
}

// toInstance converts v into the generic JSON shapes the validator expects.
func toInstance(v any) (any, error) {
	b, err := j.Marshal(v)
	if err != nil {
		return nil, err
	}
	return sjs.UnmarshalJSON(bytes.NewReader(b))
}
