package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for transform error codes.
// data provides values substituted into {placeholders} of the message
// template (for example "expected" or "received").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var templates = map[string]map[string]string{
	"en": {
		"invalid_type":        "type must be {expected}, received {received}",
		"literal_mismatch":    "expected '{expected}' but got '{received}'",
		"invalid_enum":        "expected {received} to match one of {values}",
		"not_null":            "expected value to be null",
		"expected_map":        "expected a map but got {received}",
		"expected_array":      "expected an array but got {received}",
		"tuple_length":        "expected a tuple of length {expected} but got {received}",
		"required":            "{field} is required",
		"intersection_member": "intersection member produced {received}, expected a map",
		"invalid_format":      "invalid {format}: {received}",
		"transform_failed":    "transformation failed",
		"duplicate_key":       "key '{key}' duplicated",
		"unresolved":          "recursive codec {id} resolved to nil",
	},
	"ja": {
		"invalid_type":        "型は{expected}である必要がありますが、{received}を受け取りました",
		"literal_mismatch":    "'{expected}'が期待されましたが、'{received}'でした",
		"invalid_enum":        "{received}は{values}のいずれかである必要があります",
		"not_null":            "値はnullである必要があります",
		"expected_map":        "マップが期待されましたが、{received}でした",
		"expected_array":      "配列が期待されましたが、{received}でした",
		"tuple_length":        "長さ{expected}のタプルが期待されましたが、長さは{received}でした",
		"required":            "{field}は必須です",
		"intersection_member": "交差型のメンバーが{received}を返しました（マップが必要です）",
		"invalid_format":      "{format}として不正です: {received}",
		"transform_failed":    "変換に失敗しました",
		"duplicate_key":       "キー'{key}'が重複しています",
		"unresolved":          "再帰コーデック{id}の解決結果がnilです",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tpl, ok := templates[t.lang][code]
	if !ok {
		tpl, ok = templates["en"][code]
		if !ok {
			return code
		}
	}
	return expand(tpl, data)
}

// expand replaces {key} placeholders with values from data. Unknown
// placeholders are left untouched.
func expand(tpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tpl, "{") {
		return tpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// current holds the active Translator. Swapping it is safe while other
// goroutines are producing messages.
var current atomic.Pointer[holder]

type holder struct{ tr Translator }

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
