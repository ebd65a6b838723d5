package bicodec_test

import (
	"reflect"
	"testing"

	"github.com/reoring/bicodec"
)

var (
	objA = bicodec.Object(bicodec.F("a", bicodec.String))
	objB = bicodec.Object(bicodec.F("b", bicodec.String))
	objC = bicodec.Object(bicodec.F("c", bicodec.String))
)

func sameCodecs(t *testing.T, got, want []*bicodec.Codec) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("child %d differs", i)
		}
	}
}

func TestIntersection_Flattens(t *testing.T) {
	left := objA.And(objB).And(objC)
	right := objA.And(objB.And(objC))
	if left.Tag() != bicodec.TagIntersection || right.Tag() != bicodec.TagIntersection {
		t.Fatalf("unexpected tags: %q %q", left.Tag(), right.Tag())
	}
	sameCodecs(t, left.Codecs(), []*bicodec.Codec{objA, objB, objC})
	sameCodecs(t, right.Codecs(), []*bicodec.Codec{objA, objB, objC})

	in := map[string]any{"a": "1", "b": "2", "c": "3"}
	l, err := left.Encode(in)
	if err != nil {
		t.Fatalf("left: %v", err)
	}
	r, err := right.Encode(in)
	if err != nil {
		t.Fatalf("right: %v", err)
	}
	if !reflect.DeepEqual(l, r) || !reflect.DeepEqual(l, in) {
		t.Fatalf("flattened forms disagree: %v vs %v", l, r)
	}
}

func TestUnion_Flattens(t *testing.T) {
	left := bicodec.String.Or(bicodec.Number).Or(bicodec.Boolean)
	right := bicodec.String.Or(bicodec.Number.Or(bicodec.Boolean))
	want := []*bicodec.Codec{bicodec.String, bicodec.Number, bicodec.Boolean}
	sameCodecs(t, left.Codecs(), want)
	sameCodecs(t, right.Codecs(), want)
}

func TestUnion_KeepsOptionalChildWhole(t *testing.T) {
	opt := bicodec.String.Or(bicodec.Number).Optional()
	u := opt.Or(bicodec.Boolean)
	sameCodecs(t, u.Codecs(), []*bicodec.Codec{opt, bicodec.Boolean})
	if out, err := u.Decode(bicodec.Undefined); err != nil || !bicodec.IsUndefined(out) {
		t.Fatalf("optional child lost: %v %v", out, err)
	}
}

func TestIntersection_EncodeMergesObjects(t *testing.T) {
	c := bicodec.Object(bicodec.F("a", bicodec.String)).And(bicodec.Object(bicodec.F("b", bicodec.String)))
	out, err := c.Encode(map[string]any{"a": "x", "b": "y"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !reflect.DeepEqual(out, map[string]any{"a": "x", "b": "y"}) {
		t.Fatalf("mismatch: %v", out)
	}
}

func TestIntersection_LaterChildWins(t *testing.T) {
	a := bicodec.Object(bicodec.F("a", bicodec.String))
	b := bicodec.Object(bicodec.F("a", upper))
	out, err := a.And(b).Encode(map[string]any{"a": "x"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !reflect.DeepEqual(out, map[string]any{"a": "X"}) {
		t.Fatalf("b should overwrite a: %v", out)
	}
	out, err = b.And(a).Encode(map[string]any{"a": "x"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !reflect.DeepEqual(out, map[string]any{"a": "x"}) {
		t.Fatalf("a should overwrite b: %v", out)
	}
}

func TestIntersection_PropagatesChildErrors(t *testing.T) {
	c := objA.And(objB)
	_, err := c.Encode(map[string]any{"a": "x"})
	got := errorsOf(t, err)
	if !reflect.DeepEqual(got, []string{"b is required"}) {
		t.Fatalf("unexpected: %v", got)
	}

	_, err = bicodec.Any.And(objA).Encode("scalar")
	got = errorsOf(t, err)
	if !reflect.DeepEqual(got, []string{"intersection member produced string, expected a map"}) {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestUnion_FirstMatchWins(t *testing.T) {
	first := bicodec.New("first", func(any) (any, error) { return "first", nil }, nil)
	second := bicodec.New("second", func(any) (any, error) { return "second", nil }, nil)
	out, err := first.Or(second).Encode("anything")
	if err != nil || out != "first" {
		t.Fatalf("declared order must win: %v %v", out, err)
	}
	out, err = second.Or(first).Encode("anything")
	if err != nil || out != "second" {
		t.Fatalf("declared order must win: %v %v", out, err)
	}
}

func TestUnion_ArrayOrNumber(t *testing.T) {
	c := bicodec.Array(bicodec.String).Or(bicodec.Number)
	out, err := c.Encode([]any{"x"})
	if err != nil || !reflect.DeepEqual(out, []any{"x"}) {
		t.Fatalf("array branch: %v %v", out, err)
	}
	out, err = c.Encode(5)
	if err != nil || out != 5 {
		t.Fatalf("number branch: %v %v", out, err)
	}
	_, err = c.Decode("not-an-array-or-number")
	got := errorsOf(t, err)
	want := []string{
		"expected an array but got string",
		"type must be number, received string",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestOptional_Laws(t *testing.T) {
	for _, c := range []*bicodec.Codec{bicodec.String, objA, bicodec.Array(bicodec.Number), objA.And(objB)} {
		opt := c.Optional()
		if opt.Required() {
			t.Fatalf("%s: optional must not be required", c.Tag())
		}
		if !c.Required() {
			t.Fatalf("%s: receiver mutated", c.Tag())
		}
		if opt.Tag() != c.Tag() {
			t.Fatalf("optional must keep tag %q, got %q", c.Tag(), opt.Tag())
		}
		if opt.Optional() != opt {
			t.Fatalf("%s: optional is not idempotent", c.Tag())
		}
		if v, err := opt.Encode(bicodec.Undefined); err != nil || !bicodec.IsUndefined(v) {
			t.Fatalf("%s: encode undefined: %v %v", c.Tag(), v, err)
		}
		if v, err := opt.Decode(bicodec.Undefined); err != nil || !bicodec.IsUndefined(v) {
			t.Fatalf("%s: decode undefined: %v %v", c.Tag(), v, err)
		}
	}
	if _, err := bicodec.String.Optional().Encode(1); err == nil {
		t.Fatalf("optional must still validate present values")
	}
	if _, err := bicodec.String.Optional().Encode(nil); err == nil {
		t.Fatalf("null is not absent")
	}
}

func TestOptional_KeepsMetadata(t *testing.T) {
	c := bicodec.String.Meta(bicodec.Metadata{"description": "d"}).Optional()
	if d, _ := c.Metadata().Description(); d != "d" {
		t.Fatalf("metadata lost: %v", c.Metadata())
	}
	m := c.Meta(bicodec.Metadata{"comment": "x"})
	if m.Required() {
		t.Fatalf("meta must keep optional flag")
	}
}

func treeCodec() *bicodec.Codec {
	var node *bicodec.Codec
	node = bicodec.Recursive("Node", func() *bicodec.Codec {
		return bicodec.Object(
			bicodec.F("a", bicodec.String),
			bicodec.F("b", node.Optional()),
		)
	})
	return node
}

func TestRecursive_EncodeDecode(t *testing.T) {
	node := treeCodec()
	in := map[string]any{"a": "1", "b": map[string]any{"a": "2", "b": map[string]any{"a": "3"}}}
	out, err := node.Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("mismatch: %v", out)
	}
	back, err := node.Decode(out)
	if err != nil || !reflect.DeepEqual(back, in) {
		t.Fatalf("round trip: %v %v", back, err)
	}

	_, err = node.Encode(map[string]any{"a": "1", "b": map[string]any{}})
	got := errorsOf(t, err)
	if !reflect.DeepEqual(got, []string{"b > a is required"}) {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestRecursive_Identity(t *testing.T) {
	node := treeCodec()
	if node.ID() != "Node" || node.Tag() != bicodec.TagRecursive {
		t.Fatalf("unexpected id/tag: %q %q", node.ID(), node.Tag())
	}
	if node.Resolve().Tag() != bicodec.TagObject {
		t.Fatalf("resolver should yield the object")
	}
	if node.Meta(bicodec.Metadata{"x": 1}).ID() != node.ID() {
		t.Fatalf("id must survive Meta")
	}
	a := bicodec.Recursive("", func() *bicodec.Codec { return bicodec.String })
	b := bicodec.Recursive("", func() *bicodec.Codec { return bicodec.String })
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("generated ids must be unique: %q %q", a.ID(), b.ID())
	}
	if bicodec.String.Resolve() != nil {
		t.Fatalf("non-recursive codecs resolve to nil")
	}
}

func TestRecursive_ResolverRunsPerCall(t *testing.T) {
	calls := 0
	r := bicodec.Recursive("count", func() *bicodec.Codec { calls++; return bicodec.String })
	_, _ = r.Encode("a")
	_, _ = r.Decode("b")
	if calls != 2 {
		t.Fatalf("expected 2 resolver calls, got %d", calls)
	}
}

func TestRecursive_NilResolverFails(t *testing.T) {
	r := bicodec.Recursive("Missing", func() *bicodec.Codec { return nil })
	for name, run := range map[string]func(any) (any, error){"encode": r.Encode, "decode": r.Decode} {
		_, err := run(1)
		if err == nil || err.Error() != "recursive codec Missing resolved to nil" {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
	}
	_, err := bicodec.Object(bicodec.F("child", r)).Encode(map[string]any{"child": 1})
	if err == nil || err.Error() != "child > recursive codec Missing resolved to nil" {
		t.Fatalf("unexpected nested error: %v", err)
	}
}

func TestRoundTrip_Law(t *testing.T) {
	codecs := []struct {
		c *bicodec.Codec
		v any
	}{
		{bicodec.Tuple(bicodec.String, bicodec.Number), []any{"x", 1}},
		{bicodec.Record(bicodec.Boolean), map[string]any{"k": true}},
		{objA.And(objB), map[string]any{"a": "1", "b": "2"}},
		{bicodec.Literal("x").Or(bicodec.Number), 3},
		{bicodec.Array(upper), []any{"a", "b"}},
	}
	for _, tc := range codecs {
		enc, err := tc.c.Encode(tc.v)
		if err != nil {
			t.Fatalf("%s encode: %v", tc.c.Tag(), err)
		}
		dec, err := tc.c.Decode(enc)
		if err != nil {
			t.Fatalf("%s decode: %v", tc.c.Tag(), err)
		}
		if !reflect.DeepEqual(dec, tc.v) {
			t.Fatalf("%s round trip: got=%v want=%v", tc.c.Tag(), dec, tc.v)
		}
	}
}
