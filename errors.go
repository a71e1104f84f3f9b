package ris

import (
	"github.com/simonhull/ris/internal/types"
)

// ParseError is an alias to types.ParseError.
// Re-exporting from internal/types to maintain public API.
type ParseError = types.ParseError

// ErrorKind is an alias to types.ErrorKind.
type ErrorKind = types.ErrorKind

// Error kinds reported by ParseError.Kind.
const (
	KindEndOfInput      = types.KindEndOfInput
	KindUnrecognizedTag = types.KindUnrecognizedTag
	KindMalformedLine   = types.KindMalformedLine
	KindInvalidText     = types.KindInvalidText
)

// Sentinel errors matched by errors.Is against a *ParseError of the
// corresponding kind.
var (
	ErrEndOfInput      = types.ErrEndOfInput
	ErrUnrecognizedTag = types.ErrUnrecognizedTag
	ErrMalformedLine   = types.ErrMalformedLine
	ErrInvalidText     = types.ErrInvalidText
)
