package ris_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/simonhull/ris"
)

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ris.ParseError
		contains []string
		excludes []string
	}{
		{
			name: "fully annotated",
			err: &ris.ParseError{
				Path:   "refs.ris",
				Line:   12,
				Record: 3,
				Kind:   ris.KindUnrecognizedTag,
				Tag:    "ZZ",
				Offset: 240,
				Reason: "tag is not part of the tag table",
			},
			contains: []string{"refs.ris: ", "line 12", "record 3", `unrecognized tag "ZZ"`, "offset 240", "tag table"},
		},
		{
			name: "not attributed to a record",
			err: &ris.ParseError{
				Record: -1,
				Kind:   ris.KindMalformedLine,
				Offset: 7,
			},
			contains: []string{"malformed line at offset 7"},
			excludes: []string{"record", "line 0", ": :"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
			for _, substr := range tt.excludes {
				if strings.Contains(msg, substr) {
					t.Errorf("error message %q should not contain %q", msg, substr)
				}
			}
		})
	}
}

func TestParseError_Is(t *testing.T) {
	kinds := map[ris.ErrorKind]error{
		ris.KindEndOfInput:      ris.ErrEndOfInput,
		ris.KindUnrecognizedTag: ris.ErrUnrecognizedTag,
		ris.KindMalformedLine:   ris.ErrMalformedLine,
		ris.KindInvalidText:     ris.ErrInvalidText,
	}

	for kind, sentinel := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			err := error(&ris.ParseError{Kind: kind, Record: -1})
			if !errors.Is(err, sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, sentinel)
			}
			for other, s := range kinds {
				if other != kind && errors.Is(err, s) {
					t.Errorf("errors.Is(%v, %v) = true", err, s)
				}
			}
		})
	}
}
