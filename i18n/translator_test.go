package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	got := T("invalid_type", map[string]string{"expected": "string", "received": "number"})
	if got != "type must be string, received number" {
		t.Fatalf("unexpected english message: %q", got)
	}

	SetLanguage("ja")
	defer SetLanguage("en")
	if msg := T("invalid_type", map[string]string{"expected": "string", "received": "number"}); msg == got {
		t.Fatalf("expected japanese message, got %q", msg)
	}
}

func TestTranslator_UnknownCodeFallsBackToCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo, got %q", msg)
	}
}

func TestTranslator_UnknownPlaceholderKept(t *testing.T) {
	if msg := T("required", nil); msg != "{field} is required" {
		t.Fatalf("unexpected template: %q", msg)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upperTranslator{})
	if msg := T("required", nil); msg != "X:required" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("not_null", nil); msg != "expected value to be null" {
		t.Fatalf("reset failed: %q", msg)
	}
}
