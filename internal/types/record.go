package types

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"
)

// Value is the content stored under one tag of a record. It is either a
// single scalar string or, for list tags, the ordered sequence of every
// occurrence.
type Value struct {
	list   []string
	scalar string
	isList bool
}

// ScalarValue returns a Value holding a single string.
func ScalarValue(s string) Value {
	return Value{scalar: s}
}

// ListValue returns a Value holding an ordered list of strings.
func ListValue(items ...string) Value {
	return Value{list: items, isList: true}
}

// IsList reports whether v holds a list.
func (v Value) IsList() bool { return v.isList }

// String returns the scalar content, or the first list element for a list.
func (v Value) String() string {
	if v.isList {
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0]
	}
	return v.scalar
}

// Strings returns the content as a slice: every element for a list, or a
// single element for a scalar. The returned slice is a copy.
func (v Value) Strings() []string {
	if v.isList {
		return slices.Clone(v.list)
	}
	return []string{v.scalar}
}

// Len returns the number of strings held by v.
func (v Value) Len() int {
	if v.isList {
		return len(v.list)
	}
	return 1
}

// Equal reports whether two values hold the same variant and content.
func (v Value) Equal(other Value) bool {
	if v.isList != other.isList {
		return false
	}
	if v.isList {
		return slices.Equal(v.list, other.list)
	}
	return v.scalar == other.scalar
}

// MarshalJSON encodes a scalar as a JSON string and a list as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isList {
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return json.Marshal(v.scalar)
}

// Record is one bibliographic entry: the fields between a start tag and its
// matching end tag.
//
// Records are built once by the parser and never modified afterwards, so
// they are safe to share between goroutines.
type Record struct {
	fields map[Tag]Value

	// Type is the start tag's content, e.g. "JOUR".
	Type string

	// Offset is the byte offset of the record's start tag in the input.
	Offset int64

	// Index is the 0-based position of the record in the input.
	Index int
}

// NewRecord returns an empty record. sizeHint preallocates the field map.
func NewRecord(sizeHint int) *Record {
	return &Record{fields: make(map[Tag]Value, sizeHint)}
}

// SetScalar stores s under tag, replacing any earlier value.
func (r *Record) SetScalar(tag Tag, s string) {
	r.fields[tag] = Value{scalar: s}
}

// Append adds s to the list stored under tag, creating it if needed.
func (r *Record) Append(tag Tag, s string) {
	v := r.fields[tag]
	v.isList = true
	v.list = append(v.list, s)
	r.fields[tag] = v
}

// Get returns the value stored under tag.
func (r *Record) Get(tag Tag) (Value, bool) {
	v, ok := r.fields[tag]
	return v, ok
}

// Has reports whether the record has a value for tag.
func (r *Record) Has(tag Tag) bool {
	_, ok := r.fields[tag]
	return ok
}

// First returns the scalar value of tag, or the first element if tag holds a
// list. Returns "" when the tag is absent.
func (r *Record) First(tag Tag) string {
	return r.fields[tag].String()
}

// Values returns every string stored under tag, or nil when absent.
//
// Example:
//
//	for _, author := range rec.Values("AU") {
//		fmt.Println(author)
//	}
func (r *Record) Values(tag Tag) []string {
	v, ok := r.fields[tag]
	if !ok {
		return nil
	}
	return v.Strings()
}

// Len returns the number of distinct tags in the record.
func (r *Record) Len() int {
	return len(r.fields)
}

// Tags returns the record's tags in sorted order.
func (r *Record) Tags() []Tag {
	return slices.Sorted(maps.Keys(r.fields))
}

// All returns an iterator over the record's fields in unspecified order.
//
// Example:
//
//	for tag, v := range rec.All() {
//		fmt.Printf("%s: %v\n", tag, v.Strings())
//	}
func (r *Record) All() iter.Seq2[Tag, Value] {
	return func(yield func(Tag, Value) bool) {
		for tag, v := range r.fields {
			if !yield(tag, v) {
				return
			}
		}
	}
}

// Equal reports whether two records hold the same type and fields.
// Index and Offset are not compared.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Type == other.Type && maps.EqualFunc(r.fields, other.fields, Value.Equal)
}

// MarshalJSON encodes the record as an object mapping tag to value.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.fields)
}

