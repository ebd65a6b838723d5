package bicodec_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/reoring/bicodec"
	"github.com/reoring/bicodec/i18n"
)

func TestObject_ReportsMissingFieldsRecursively(t *testing.T) {
	obj := bicodec.Object(
		bicodec.F("field_1", bicodec.String),
		bicodec.F("field_2", bicodec.Boolean),
		bicodec.F("field_3", bicodec.Object(
			bicodec.F("field_4", bicodec.String),
		)),
	)
	_, err := obj.Encode(map[string]any{"field_3": map[string]any{}})
	got := errorsOf(t, err)
	want := []string{
		"field_1 is required",
		"field_2 is required",
		"field_3 > field_4 is required",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestObject_ReportsNestedMissingAndWrongTypes(t *testing.T) {
	obj := bicodec.Object(
		bicodec.F("a", bicodec.String),
		bicodec.F("b", bicodec.Object(bicodec.F("c", bicodec.String))),
	)
	_, err := obj.Encode(map[string]any{"b": map[string]any{}})
	got := errorsOf(t, err)
	if !reflect.DeepEqual(got, []string{"a is required", "b > c is required"}) {
		t.Fatalf("unexpected: %v", got)
	}

	_, err = obj.Decode(map[string]any{"a": 1, "b": map[string]any{"c": false}})
	got = errorsOf(t, err)
	want := []string{
		"a > type must be string, received number",
		"b > c > type must be string, received boolean",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestRecord_ReportsWrongEntries(t *testing.T) {
	_, err := bicodec.Record(bicodec.String).Encode(map[string]any{
		"field_1": nil,
		"field_2": bicodec.Undefined,
		"field_3": map[string]any{},
		"field_4": "hello world",
	})
	got := errorsOf(t, err)
	want := []string{
		"field_1 > type must be string, received null",
		"field_2 is required",
		"field_3 > type must be string, received object",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestTransformError_ErrorAndPrefix(t *testing.T) {
	e := bicodec.NewTransformError("a", "b")
	if e.Error() != "a, b" {
		t.Fatalf("Error()=%q", e.Error())
	}
	p := e.Prefix("root")
	if !reflect.DeepEqual(p.ErrorsArray(), []string{"root > a", "root > b"}) {
		t.Fatalf("prefix: %v", p.ErrorsArray())
	}
	if !reflect.DeepEqual(e.ErrorsArray(), []string{"a", "b"}) {
		t.Fatalf("Prefix mutated receiver: %v", e.ErrorsArray())
	}

	empty := &bicodec.TransformError{}
	if len(empty.ErrorsArray()) != 1 {
		t.Fatalf("ErrorsArray must never be empty")
	}
}

func TestAsTransformError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("saving user: %w", bicodec.NewTransformError("x"))
	te, ok := bicodec.AsTransformError(wrapped)
	if !ok || te.Errors[0] != "x" {
		t.Fatalf("expected to unwrap TransformError: %v %v", te, ok)
	}
	if _, ok := bicodec.AsTransformError(errors.New("plain")); ok {
		t.Fatalf("plain errors are not TransformErrors")
	}
	if _, ok := bicodec.AsTransformError(nil); ok {
		t.Fatalf("nil is not a TransformError")
	}
}

func TestMessages_FollowTranslator(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	_, err := bicodec.String.Encode(1)
	got := errorsOf(t, err)
	if got[0] == "type must be string, received number" {
		t.Fatalf("expected translated message, got %q", got[0])
	}
}
