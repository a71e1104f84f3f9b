package scan

import (
	"bytes"
	"io"
	"iter"

	"github.com/simonhull/ris/internal/types"
)

// Span is the half-open byte range [Start, End) of one record in the input.
// It runs from the first byte of the start tag to the end of the end tag's
// line, excluding that line's terminator.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes in the span.
func (s Span) Len() int { return s.End - s.Start }

// tagResult is the outcome of comparing a tag literal at the cursor.
type tagResult uint8

const (
	tagPresent tagResult = iota
	tagAbsent            // mismatch; the rest of the line is unread
	tagNewline           // a '\n' ended the attempt; the cursor is at a line start
	tagEOF
)

// RecordSplitter walks a buffer and yields the span of each record in order.
//
// Tags are anchored at the start of a line, so whenever a comparison fails
// the splitter skips straight to the next line instead of retrying at the
// following byte. Bytes outside records are ignored.
//
// A RecordSplitter is forward-only and not safe for concurrent use. Create a
// new one to scan the same buffer again.
type RecordSplitter struct {
	startLit string
	endLit   string
	startTag types.Tag
	cursor
	count int
	done  bool
}

// NewRecordSplitter returns a splitter over text using the start and end
// tags of table. A leading byte-order mark is skipped; span offsets remain
// relative to text.
func NewRecordSplitter(text []byte, table *types.TagTable) *RecordSplitter {
	s := &RecordSplitter{
		cursor:   cursor{text: text},
		startLit: table.StartLiteral(),
		endLit:   table.EndLiteral(),
		startTag: table.Start(),
	}
	if bytes.HasPrefix(text, bom) {
		s.pos = len(bom)
	}
	return s
}

// takeTag compares lit against the bytes at the cursor, consuming them as it
// goes. On tagPresent, start is the offset of the first byte of lit.
func (s *RecordSplitter) takeTag(lit string) (start int, res tagResult) {
	start = s.pos
	for i := 0; i < len(lit); i++ {
		if s.pos >= len(s.text) {
			return start, tagEOF
		}
		c := s.text[s.pos]
		s.pos++
		if c == '\n' {
			return start, tagNewline
		}
		if c != lit[i] {
			return start, tagAbsent
		}
	}
	return start, tagPresent
}

// seek advances to the next line that begins with lit and leaves the cursor
// just past it. It returns false if the buffer ends first.
func (s *RecordSplitter) seek(lit string) (int, bool) {
	for {
		start, res := s.takeTag(lit)
		switch res {
		case tagPresent:
			return start, true
		case tagEOF:
			return 0, false
		case tagAbsent:
			s.takeLine()
		case tagNewline:
		}
	}
}

// Next returns the span of the next record.
//
// It returns io.EOF once no further start tag exists. A start tag that is
// never followed by an end tag yields a *types.ParseError of kind
// KindEndOfInput; the splitter is exhausted afterwards.
func (s *RecordSplitter) Next() (Span, error) {
	if s.done {
		return Span{}, io.EOF
	}
	start, ok := s.seek(s.startLit)
	if !ok {
		s.done = true
		return Span{}, io.EOF
	}

	// The end tag is searched from the line after the start tag.
	if _, ok := s.takeLine(); ok {
		if _, ok := s.seek(s.endLit); ok {
			s.count++
			if end, ok := s.takeLine(); ok {
				return Span{Start: start, End: end}, nil
			}
			return Span{Start: start, End: len(s.text)}, nil
		}
	}

	s.done = true
	err := types.NewParseError(types.KindEndOfInput, int64(start), string(s.startTag), "record is never closed by an end tag")
	err.Record = s.count
	return Span{}, err
}

// All returns an iterator over the remaining spans. Iteration stops after
// the first error, which is yielded with a zero Span.
//
// Example:
//
//	for span, err := range scan.NewRecordSplitter(buf, table).All() {
//		if err != nil {
//			return err
//		}
//		process(buf[span.Start:span.End])
//	}
func (s *RecordSplitter) All() iter.Seq2[Span, error] {
	return func(yield func(Span, error) bool) {
		for {
			span, err := s.Next()
			if err == io.EOF {
				return
			}
			if !yield(span, err) || err != nil {
				return
			}
		}
	}
}

// Split runs a splitter over text to completion and returns every span.
func Split(text []byte, table *types.TagTable) ([]Span, error) {
	var spans []Span
	for span, err := range NewRecordSplitter(text, table).All() {
		if err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
	return spans, nil
}
