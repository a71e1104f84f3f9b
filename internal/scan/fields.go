package scan

import (
	"io"
	"iter"

	"github.com/simonhull/ris/internal/types"
)

// Field is one tagged field inside a record. Literal and Content alias the
// scanned buffer.
type Field struct {
	Tag types.Tag

	// Literal is the raw tag as found on the line, e.g. "AU  - ".
	Literal []byte

	// Content runs from after the tag to before the next tagged line. Interior
	// line terminators are kept; the one preceding the next tag is not.
	Content []byte

	// Offset is the absolute offset of the tag in the original input.
	Offset int
}

// FieldScanner splits one record into fields.
//
// Every line in a record must either start with a known tag or continue the
// content of the field above it. A line that starts with a well-formed tag
// missing from the table is reported as KindUnrecognizedTag; a field that does
// not start with a tag at all is reported as KindMalformedLine.
type FieldScanner struct {
	table *types.TagTable
	cursor
	base int
}

// NewFieldScanner returns a scanner over record, which starts at offset base
// of the original input. base only affects reported offsets.
func NewFieldScanner(record []byte, base int, table *types.TagTable) *FieldScanner {
	return &FieldScanner{
		table:  table,
		cursor: cursor{text: record},
		base:   base,
	}
}

// Next returns the next field, or io.EOF when the record is exhausted.
func (s *FieldScanner) Next() (Field, error) {
	if len(s.remaining()) < types.TagWidth {
		s.pos = len(s.text)
		return Field{}, io.EOF
	}

	tag, class := s.table.Classify(s.remaining())
	switch class {
	case types.TagUnknown:
		return Field{}, s.fail(types.KindUnrecognizedTag, tag, "tag is not part of the tag table")
	case types.TagNone:
		return Field{}, s.fail(types.KindMalformedLine, "", "line should start with a recognized tag")
	}

	f := Field{
		Tag:     tag,
		Literal: s.text[s.pos : s.pos+types.TagWidth],
		Offset:  s.base + s.pos,
	}
	s.pos += types.TagWidth
	contentStart := s.pos

	for {
		end, ok := s.takeLine()
		if !ok || len(s.remaining()) < types.TagWidth {
			s.pos = len(s.text)
			f.Content = s.text[contentStart:]
			return f, nil
		}
		next, class := s.table.Classify(s.remaining())
		switch class {
		case types.TagKnown:
			f.Content = s.text[contentStart:trimCR(s.text, contentStart, end)]
			return f, nil
		case types.TagUnknown:
			return Field{}, s.fail(types.KindUnrecognizedTag, next, "tag is not part of the tag table")
		case types.TagNone:
			// Continuation line.
		}
	}
}

func (s *FieldScanner) fail(kind types.ErrorKind, tag types.Tag, reason string) error {
	return types.NewParseError(kind, int64(s.base+s.pos), string(tag), reason)
}

// All returns an iterator over the remaining fields. Iteration stops after
// the first error.
func (s *FieldScanner) All() iter.Seq2[Field, error] {
	return func(yield func(Field, error) bool) {
		for {
			f, err := s.Next()
			if err == io.EOF {
				return
			}
			if !yield(f, err) || err != nil {
				return
			}
		}
	}
}
