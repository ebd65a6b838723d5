package bicodec_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/reoring/bicodec"
)

// upper encodes strings to upper case and decodes them to lower case.
var upper = bicodec.New("upper",
	func(v any) (any, error) { return strings.ToUpper(v.(string)), nil },
	func(v any) (any, error) { return strings.ToLower(v.(string)), nil },
)

func TestNew_DefaultsAndProps(t *testing.T) {
	c := bicodec.New("custom", nil, nil)
	if c.Tag() != "custom" || !c.Required() || len(c.Metadata()) != 0 {
		t.Fatalf("unexpected defaults: tag=%q required=%v meta=%v", c.Tag(), c.Required(), c.Metadata())
	}
	v, err := c.Encode(42)
	if err != nil || v != 42 {
		t.Fatalf("nil encode should be identity: v=%v err=%v", v, err)
	}

	no := false
	p := bicodec.New("custom", nil, nil, bicodec.Props{
		Metadata: bicodec.Metadata{"comment": "x"},
		Required: &no,
		Extra:    map[string]any{"unit": "ms"},
	})
	if p.Required() {
		t.Fatalf("expected Required=false from props")
	}
	if got, ok := p.Prop("unit"); !ok || got != "ms" {
		t.Fatalf("unexpected prop: %v %v", got, ok)
	}
	if p.Metadata()["comment"] != "x" {
		t.Fatalf("metadata not applied: %v", p.Metadata())
	}
}

func TestMeta_ReturnsNewNodeAndMerges(t *testing.T) {
	a := bicodec.String.Meta(bicodec.Metadata{"description": "first", "comment": "c"})
	b := a.Meta(bicodec.Metadata{"description": "second"})

	if len(bicodec.String.Metadata()) != 0 {
		t.Fatalf("receiver mutated: %v", bicodec.String.Metadata())
	}
	if d, _ := a.Metadata().Description(); d != "first" {
		t.Fatalf("a changed: %q", d)
	}
	want := bicodec.Metadata{"description": "second", "comment": "c"}
	if !reflect.DeepEqual(b.Metadata(), want) {
		t.Fatalf("merge mismatch\n got=%v\nwant=%v", b.Metadata(), want)
	}
	if b.Tag() != bicodec.TagString {
		t.Fatalf("tag lost: %q", b.Tag())
	}
	if _, err := b.Encode(1); err == nil {
		t.Fatalf("meta copy should keep validation")
	}
}

func TestMetadata_CopyIsolation(t *testing.T) {
	a := bicodec.Number.Meta(bicodec.Metadata{"k": 1})
	m := a.Metadata()
	m["k"] = 2
	if a.Metadata()["k"] != 1 {
		t.Fatalf("metadata accessor leaked internal map")
	}
}

func TestCustomCodec_RoundTrip(t *testing.T) {
	enc, err := upper.Encode("abc")
	if err != nil || enc != "ABC" {
		t.Fatalf("encode: %v %v", enc, err)
	}
	dec, err := upper.Decode(enc)
	if err != nil || dec != "abc" {
		t.Fatalf("decode: %v %v", dec, err)
	}
}
