// Package types provides the core data structures for RIS parsing.
//
// This package defines the Tag and TagTable types that describe a record
// vocabulary, the Record and Value types that hold parsed fields, and the
// ParseError type shared by every stage of the parser.
package types

import (
	"fmt"
	"slices"
)

// TagWidth is the byte width of a tag literal: two tag characters followed
// by Separator.
const TagWidth = 6

// Separator follows the two tag characters on every tagged line.
const Separator = "  - "

// Tag is a two-character RIS field name such as "AU" or "TY".
type Tag string

// Distinguished tags delimiting a record.
const (
	// StartTag opens a record. Its content is the record type.
	StartTag Tag = "TY"
	// EndTag closes a record. Its content is discarded.
	EndTag Tag = "ER"
)

// Literal returns the tag as it appears at the start of a line, e.g. "AU  - ".
func (t Tag) Literal() string {
	return string(t) + Separator
}

// Valid reports whether t is two characters drawn from [A-Z0-9].
func (t Tag) Valid() bool {
	return len(t) == 2 && tagCode(t[0]) >= 0 && tagCode(t[1]) >= 0
}

// Tag characters are [0-9A-Z], so every two-character tag maps onto a
// dense index in [0, tagSpace). The table below is a perfect hash.
const (
	tagAlphabet = 36
	tagSpace    = tagAlphabet * tagAlphabet
)

// tagNames holds every possible Tag string so lookups never allocate.
var tagNames = func() (names [tagSpace]Tag) {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for i := range alphabet {
		for j := range alphabet {
			names[i*tagAlphabet+j] = Tag([]byte{alphabet[i], alphabet[j]})
		}
	}
	return names
}()

func tagCode(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// tagIndex returns the perfect-hash slot for the two tag characters, or -1.
func tagIndex(c0, c1 byte) int {
	a, b := tagCode(c0), tagCode(c1)
	if a < 0 || b < 0 {
		return -1
	}
	return a*tagAlphabet + b
}

// TagClass is the result of classifying the leading bytes of a line.
type TagClass uint8

const (
	// TagNone means the line does not start with tag-shaped bytes.
	TagNone TagClass = iota
	// TagUnknown means the line starts with a well-formed tag that the
	// table does not contain.
	TagUnknown
	// TagKnown means the line starts with a tag from the table.
	TagKnown
)

const (
	flagAllowed uint8 = 1 << iota
	flagList
)

// TagTable is a fixed tag vocabulary plus the subset of tags that may
// repeat within a record (list tags).
//
// A TagTable is immutable after construction and safe for concurrent use.
type TagTable struct {
	name     string
	start    Tag
	end      Tag
	startLit string
	endLit   string
	flags    [tagSpace]uint8
}

// NewTagTable builds a table from its vocabulary. The start and end tags are
// always allowed. List tags are implicitly allowed. The end tag cannot be a
// list tag since its content is never stored.
func NewTagTable(name string, start, end Tag, tags, listTags []Tag) (*TagTable, error) {
	if !start.Valid() {
		return nil, fmt.Errorf("tag table %q: invalid start tag %q", name, start)
	}
	if !end.Valid() {
		return nil, fmt.Errorf("tag table %q: invalid end tag %q", name, end)
	}
	if start == end {
		return nil, fmt.Errorf("tag table %q: start and end tag are both %q", name, start)
	}

	t := &TagTable{
		name:     name,
		start:    start,
		end:      end,
		startLit: start.Literal(),
		endLit:   end.Literal(),
	}
	for _, tag := range append([]Tag{start, end}, tags...) {
		if !tag.Valid() {
			return nil, fmt.Errorf("tag table %q: invalid tag %q", name, tag)
		}
		t.flags[tagIndex(tag[0], tag[1])] |= flagAllowed
	}
	for _, tag := range listTags {
		if !tag.Valid() {
			return nil, fmt.Errorf("tag table %q: invalid list tag %q", name, tag)
		}
		if tag == end {
			return nil, fmt.Errorf("tag table %q: end tag %q cannot be a list tag", name, tag)
		}
		t.flags[tagIndex(tag[0], tag[1])] |= flagAllowed | flagList
	}
	return t, nil
}

// MustTagTable is like NewTagTable but panics on error. It is intended for
// package-level tables built from literals.
func MustTagTable(name string, start, end Tag, tags, listTags []Tag) *TagTable {
	t, err := NewTagTable(name, start, end, tags, listTags)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the configuration name the table was built with.
func (t *TagTable) Name() string { return t.name }

// Start returns the tag that opens a record.
func (t *TagTable) Start() Tag { return t.start }

// End returns the tag that closes a record.
func (t *TagTable) End() Tag { return t.end }

// StartLiteral returns the start tag as it appears on a line.
func (t *TagTable) StartLiteral() string { return t.startLit }

// EndLiteral returns the end tag as it appears on a line.
func (t *TagTable) EndLiteral() string { return t.endLit }

// Classify inspects the first TagWidth bytes of b.
//
// It returns the tag and TagKnown when b starts with a tag literal from the
// table, TagUnknown when b starts with a tag-shaped literal that is not in
// the table, and TagNone otherwise (including when b is shorter than
// TagWidth).
func (t *TagTable) Classify(b []byte) (Tag, TagClass) {
	if len(b) < TagWidth || string(b[2:TagWidth]) != Separator {
		return "", TagNone
	}
	idx := tagIndex(b[0], b[1])
	if idx < 0 {
		return "", TagNone
	}
	if t.flags[idx]&flagAllowed == 0 {
		return tagNames[idx], TagUnknown
	}
	return tagNames[idx], TagKnown
}

// IsAllowed reports whether lit is exactly one tag literal from the table.
func (t *TagTable) IsAllowed(lit []byte) bool {
	if len(lit) != TagWidth {
		return false
	}
	_, class := t.Classify(lit)
	return class == TagKnown
}

// Contains reports whether tag is part of the vocabulary.
func (t *TagTable) Contains(tag Tag) bool {
	return tag.Valid() && t.flags[tagIndex(tag[0], tag[1])]&flagAllowed != 0
}

// IsListTag reports whether tag may repeat within a record.
func (t *TagTable) IsListTag(tag Tag) bool {
	return tag.Valid() && t.flags[tagIndex(tag[0], tag[1])]&flagList != 0
}

// Tags returns the vocabulary in sorted order.
func (t *TagTable) Tags() []Tag {
	return t.collect(flagAllowed)
}

// ListTags returns the list tags in sorted order.
func (t *TagTable) ListTags() []Tag {
	return t.collect(flagList)
}

func (t *TagTable) collect(flag uint8) []Tag {
	var out []Tag
	for idx, f := range t.flags {
		if f&flag != 0 {
			out = append(out, tagNames[idx])
		}
	}
	slices.Sort(out)
	return out
}

// DefaultTags is the standard RIS field vocabulary, excluding TY and ER.
var DefaultTags = []Tag{
	"A1", "A2", "A3", "A4", "AB", "AD", "AN", "AU", "AV",
	"BT",
	"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "CA", "CN", "CP", "CT", "CY",
	"DA", "DB", "DO", "DP",
	"ED", "EP", "ET",
	"ID", "IS",
	"J1", "J2", "JA", "JF", "JO",
	"KW",
	"L1", "L2", "L3", "L4", "LA", "LB", "LK",
	"M1", "M2", "M3",
	"N1", "N2", "NV",
	"OP",
	"PB", "PP", "PY",
	"RI", "RN", "RP",
	"SE", "SN", "SP", "ST",
	"T1", "T2", "T3", "TA", "TI", "TT",
	"U1", "U2", "U3", "U4", "U5", "UK", "UR",
	"VL", "VO",
	"Y1", "Y2",
}

// DefaultListTags are the tags collected in order rather than overwritten.
var DefaultListTags = []Tag{"A1", "A2", "A3", "A4", "AU", "KW", "L1", "L2", "L4", "N1", "UR"}
