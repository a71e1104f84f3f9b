// Package ris parses RIS bibliographic exports into structured records.
//
// RIS is a line-oriented citation format. Every field sits on its own line,
// introduced by a two-character tag and a fixed separator:
//
//	TY  - JOUR
//	AU  - Glattauer, Daniel
//	AU  - Herzog, Anna
//	TI  - The title of the reference
//	ER  - 
//
// A record runs from a TY line to the next ER line. Anything outside
// records (numbering, blank lines, export banners) is ignored.
//
// # Quick Start
//
//	records, err := ris.ParseFile("export.ris")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, rec := range records {
//		fmt.Printf("%s: %s (%v)\n", rec.Type, rec.First("TI"), rec.Values("AU"))
//	}
//
// # Fields
//
// A Record maps each Tag to a Value. Tags that may repeat, such as AU and
// KW, are list tags: every occurrence is kept in source order. Any other tag
// keeps only its last occurrence. Content may span several lines; interior
// line breaks are preserved and the break before the next tag is dropped.
//
// The set of known tags and list tags is a TagTable. Two are registered:
// "ris" (the default) and "flat", which has no list tags. Select one with
// WithDialect, or build your own with NewTagTable and WithTagTable.
//
// # Concurrency
//
// Parse finds record boundaries in a single sequential pass, then assembles
// records on a pool of goroutines (runtime.NumCPU() by default, see
// WithWorkers). Output order always matches input order. Records reports
// records one at a time without the pool.
//
// # Error Handling
//
// Parsing is all or nothing. The first malformed record fails the whole
// call with a *ParseError carrying the record index, byte offset and line:
//
//	_, err := ris.Parse(data)
//	var perr *ris.ParseError
//	if errors.As(err, &perr) {
//		log.Printf("record %d, line %d: %s", perr.Record, perr.Line, perr.Kind)
//	}
//	if errors.Is(err, ris.ErrUnrecognizedTag) {
//		// ...
//	}
//
// # Memory
//
// The input is read once. Field content is copied into strings by default;
// WithZeroCopy makes content share memory with the input buffer instead.
package ris
