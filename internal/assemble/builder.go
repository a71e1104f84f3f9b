// Package assemble folds the fields of one record into a types.Record.
package assemble

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/simonhull/ris/internal/scan"
	"github.com/simonhull/ris/internal/types"
)

// fieldsHint is the typical number of distinct tags in an exported record.
const fieldsHint = 20

// Builder accumulates fields into a record.
//
// List tags collect every occurrence in source order. Any other tag keeps
// only its last occurrence. The end tag finishes the record and is never
// stored.
//
// The record type is the first line of the record's first field when that
// field is the start tag. A start tag repeated later in the record is stored
// like any other scalar but does not change the type.
type Builder struct {
	table    *types.TagTable
	rec      *types.Record
	zeroCopy bool
	started  bool
	done     bool
}

// NewBuilder returns a builder for one record. With zeroCopy set, stored
// strings share memory with the content passed to Handle, which must then
// stay unmodified for the lifetime of the record.
func NewBuilder(table *types.TagTable, zeroCopy bool) *Builder {
	return &Builder{
		table:    table,
		rec:      types.NewRecord(fieldsHint),
		zeroCopy: zeroCopy,
	}
}

// Handle adds one field. lit is the raw tag literal and offset its position
// in the input. It returns true once the end tag has been handled; further
// fields belong to the next record and must not be passed in.
func (b *Builder) Handle(lit, content []byte, offset int) (bool, error) {
	if b.done {
		return true, nil
	}
	if !utf8.Valid(lit) {
		return false, types.NewParseError(types.KindInvalidText, int64(offset), "", "tag is not valid UTF-8")
	}
	if len(lit) != types.TagWidth {
		return false, types.NewParseError(types.KindUnrecognizedTag, int64(offset), string(lit),
			fmt.Sprintf("tag should be %d bytes wide", types.TagWidth))
	}
	tag, class := b.table.Classify(lit)
	if class != types.TagKnown {
		return false, types.NewParseError(types.KindUnrecognizedTag, int64(offset), string(lit[:2]),
			"tag is not part of the tag table")
	}
	if tag == b.table.End() {
		b.done = true
		return true, nil
	}
	if !utf8.Valid(content) {
		return false, types.NewParseError(types.KindInvalidText, int64(offset+types.TagWidth), string(tag),
			"content is not valid UTF-8")
	}

	if !b.started && tag == b.table.Start() {
		b.rec.Type = b.str(firstLine(content))
	}
	b.started = true

	s := b.str(content)
	if b.table.IsListTag(tag) {
		b.rec.Append(tag, s)
	} else {
		b.rec.SetScalar(tag, s)
	}
	return false, nil
}

// Finish returns the completed record and detaches it from the builder.
// The builder must not be used afterwards.
func (b *Builder) Finish() *types.Record {
	rec := b.rec
	b.rec = nil
	return rec
}

// firstLine returns content up to its first line terminator.
func firstLine(content []byte) []byte {
	i := bytes.IndexByte(content, '\n')
	if i < 0 {
		return content
	}
	return bytes.TrimSuffix(content[:i], []byte{'\r'})
}

func (b *Builder) str(content []byte) string {
	if len(content) == 0 {
		return ""
	}
	if b.zeroCopy {
		return unsafe.String(unsafe.SliceData(content), len(content))
	}
	return string(content)
}

// Build scans the record at span in text and assembles it. index is the
// record's position in the input; it is attached to the record and to any
// *types.ParseError returned.
func Build(text []byte, span scan.Span, index int, table *types.TagTable, zeroCopy bool) (*types.Record, error) {
	b := NewBuilder(table, zeroCopy)
	fs := scan.NewFieldScanner(text[span.Start:span.End], span.Start, table)
	for f, err := range fs.All() {
		if err != nil {
			return nil, withRecord(err, index)
		}
		done, err := b.Handle(f.Literal, f.Content, f.Offset)
		if err != nil {
			return nil, withRecord(err, index)
		}
		if done {
			break
		}
	}
	rec := b.Finish()
	rec.Index = index
	rec.Offset = int64(span.Start)
	return rec, nil
}

func withRecord(err error, index int) error {
	var perr *types.ParseError
	if errors.As(err, &perr) {
		perr.Record = index
	}
	return err
}
