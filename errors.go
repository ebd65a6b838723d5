package bicodec

import (
	"errors"
	"strings"

	"github.com/reoring/bicodec/i18n"
)

// Error codes used to look up TransformError messages through i18n.
const (
	CodeInvalidType        = "invalid_type"
	CodeLiteralMismatch    = "literal_mismatch"
	CodeInvalidEnum        = "invalid_enum"
	CodeNotNull            = "not_null"
	CodeExpectedMap        = "expected_map"
	CodeExpectedArray      = "expected_array"
	CodeTupleLength        = "tuple_length"
	CodeRequired           = "required"
	CodeIntersectionMember = "intersection_member"
	CodeInvalidFormat      = "invalid_format"
	CodeTransformFailed    = "transform_failed"
	CodeDuplicateKey       = "duplicate_key"
	CodeUnresolved         = "unresolved"
)

// PathSeparator joins a field or key segment to a nested message.
const PathSeparator = " > "

var (
	// ErrUnsupportedRewrite is returned by Omit and Partial for codecs that are
	// not objects, intersections or unions.
	ErrUnsupportedRewrite = errors.New("bicodec: rewrite supports only object, intersection and union codecs")
	// ErrEmptyMask is returned by Omit when no field names are given.
	ErrEmptyMask = errors.New("bicodec: omit requires at least one field name")
)

// TransformError reports why an encode or decode failed. Errors holds one
// human-readable message per problem, in the order they were found.
type TransformError struct {
	Errors []string
}

// NewTransformError builds a TransformError from messages.
func NewTransformError(msgs ...string) *TransformError {
	return &TransformError{Errors: append([]string(nil), msgs...)}
}

// Errorf builds a single-message TransformError whose text comes from the
// current translator.
func Errorf(code string, data map[string]string) *TransformError {
	return &TransformError{Errors: []string{i18n.T(code, data)}}
}

// ErrorsArray returns the messages. It is never empty.
func (e *TransformError) ErrorsArray() []string {
	if len(e.Errors) == 0 {
		return []string{i18n.T(CodeTransformFailed, nil)}
	}
	return e.Errors
}

// Error joins all messages.
func (e *TransformError) Error() string { return strings.Join(e.ErrorsArray(), ", ") }

// Prefix returns a copy with every message prefixed by segment.
func (e *TransformError) Prefix(segment string) *TransformError {
	msgs := e.ErrorsArray()
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = segment + PathSeparator + m
	}
	return &TransformError{Errors: out}
}

// AsTransformError extracts a TransformError using errors.As internally.
func AsTransformError(err error) (*TransformError, bool) {
	if err == nil {
		return nil, false
	}
	var te *TransformError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// messagesOf returns the messages carried by err. Errors that are not
// TransformErrors contribute their Error text.
func messagesOf(err error) []string {
	if te, ok := AsTransformError(err); ok {
		return te.ErrorsArray()
	}
	return []string{err.Error()}
}

// collector accumulates per-field failures of object-like transforms.
type collector struct {
	msgs []string
}

func (c *collector) add(segment string, err error) {
	for _, m := range messagesOf(err) {
		c.msgs = append(c.msgs, segment+PathSeparator+m)
	}
}

func (c *collector) addMessage(msg string) { c.msgs = append(c.msgs, msg) }

func (c *collector) err() error {
	if len(c.msgs) == 0 {
		return nil
	}
	return &TransformError{Errors: c.msgs}
}
