// Package scan locates RIS records inside a byte buffer and splits each
// record into its tagged fields.
//
// Both scanners work on the caller's buffer directly and return sub-slices
// of it; nothing is copied.
package scan

import "bytes"

// bom is the UTF-8 byte-order mark.
var bom = []byte{0xEF, 0xBB, 0xBF}

// cursor is a forward-only position in a byte buffer.
type cursor struct {
	text []byte
	pos  int
}

// remaining returns the unread bytes.
func (c *cursor) remaining() []byte {
	return c.text[c.pos:]
}

// atEnd reports whether every byte has been consumed.
func (c *cursor) atEnd() bool {
	return c.pos >= len(c.text)
}

// takeLine moves the cursor past the next '\n' and returns the index of that
// '\n'. If there is none, the cursor moves to the end and ok is false.
func (c *cursor) takeLine() (idx int, ok bool) {
	i := bytes.IndexByte(c.text[c.pos:], '\n')
	if i < 0 {
		c.pos = len(c.text)
		return 0, false
	}
	idx = c.pos + i
	c.pos = idx + 1
	return idx, true
}

// trimCR drops a single trailing '\r' from the span text[start:end].
func trimCR(text []byte, start, end int) int {
	if end > start && text[end-1] == '\r' {
		return end - 1
	}
	return end
}
