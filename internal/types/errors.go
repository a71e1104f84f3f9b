package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a parse failure.
type ErrorKind uint8

const (
	// KindEndOfInput means the buffer ran out while a record was still open.
	KindEndOfInput ErrorKind = iota + 1
	// KindUnrecognizedTag means a tag is not in the table or has the wrong width.
	KindUnrecognizedTag
	// KindMalformedLine means a line inside a record does not start with a tag
	// where one was required.
	KindMalformedLine
	// KindInvalidText means a tag or content span is not valid UTF-8.
	KindInvalidText
)

// Sentinel errors, one per ErrorKind. A *ParseError unwraps to the sentinel
// matching its kind, so callers can test with errors.Is.
var (
	ErrEndOfInput      = errors.New("unexpected end of input")
	ErrUnrecognizedTag = errors.New("unrecognized tag")
	ErrMalformedLine   = errors.New("malformed line")
	ErrInvalidText     = errors.New("invalid UTF-8 text")
)

func (k ErrorKind) String() string {
	switch k {
	case KindEndOfInput:
		return "end of input"
	case KindUnrecognizedTag:
		return "unrecognized tag"
	case KindMalformedLine:
		return "malformed line"
	case KindInvalidText:
		return "invalid text"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindEndOfInput:
		return ErrEndOfInput
	case KindUnrecognizedTag:
		return ErrUnrecognizedTag
	case KindMalformedLine:
		return ErrMalformedLine
	case KindInvalidText:
		return ErrInvalidText
	default:
		return nil
	}
}

// ParseError describes why a record could not be parsed.
type ParseError struct {
	// Path of the parsed file, empty when parsing a buffer.
	Path string

	// Tag involved in the failure, if any.
	Tag string

	// Reason is a short human-readable description.
	Reason string

	// Offset is the absolute byte offset in the input where the failure was
	// detected.
	Offset int64

	// Record is the 0-based index of the failing record, -1 if unknown.
	Record int

	// Line is the 1-based line number of Offset, 0 if not computed.
	Line int

	Kind ErrorKind
}

// NewParseError returns a ParseError not yet attributed to a record.
func NewParseError(kind ErrorKind, offset int64, tag, reason string) *ParseError {
	return &ParseError{
		Kind:   kind,
		Offset: offset,
		Tag:    tag,
		Reason: reason,
		Record: -1,
	}
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Record >= 0 {
		fmt.Fprintf(&b, "record %d: ", e.Record)
	}
	b.WriteString(e.Kind.String())
	if e.Tag != "" {
		fmt.Fprintf(&b, " %q", e.Tag)
	}
	fmt.Fprintf(&b, " at offset %d", e.Offset)
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// Unwrap returns the sentinel error for the error's kind.
func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}
