package ris

import (
	"log/slog"
	"runtime"

	"github.com/simonhull/ris/internal/registry"
)

// Option configures how input is parsed.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	records, err := ris.Parse(data,
//	    ris.WithWorkers(4),
//	    ris.WithDialect("flat"),
//	)
type Option func(*parseOptions)

// parseOptions holds configuration for a parse call.
type parseOptions struct {
	logger   *slog.Logger
	table    *TagTable // Explicit table; takes precedence over dialect
	dialect  string    // Registered dialect name
	path     string    // Reported in errors, set by ParseFile
	workers  int       // Worker pool size (<= 1 parses sequentially)
	zeroCopy bool      // Content strings alias the input buffer
}

// defaultOptions returns the default configuration.
func defaultOptions() *parseOptions {
	return &parseOptions{
		logger:  slog.New(slog.DiscardHandler),
		dialect: registry.Default,
		workers: runtime.NumCPU(),
	}
}

func applyOptions(opts []Option) *parseOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithWorkers sets how many records are assembled concurrently.
//
// The default is runtime.NumCPU(). Values of 1 or less parse every record
// on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *parseOptions) {
		o.workers = n
	}
}

// WithDialect selects a registered tag table by name.
//
// Built-in dialects are "ris" (the default, with repeatable author, keyword,
// note and link tags collected into lists) and "flat" (no list tags; a
// repeated tag keeps its last value). Additional dialects can be added with
// RegisterDialect.
func WithDialect(name string) Option {
	return func(o *parseOptions) {
		o.dialect = name
		o.table = nil
	}
}

// WithTagTable parses with a custom tag table instead of a registered dialect.
//
// Example:
//
//	table, err := ris.NewTagTable("custom", ris.StartTag, ris.EndTag,
//	    []ris.Tag{"AU", "TI", "PY"}, []ris.Tag{"AU"})
//	if err != nil {
//		return err
//	}
//	records, err := ris.Parse(data, ris.WithTagTable(table))
func WithTagTable(table *TagTable) Option {
	return func(o *parseOptions) {
		o.table = table
	}
}

// WithZeroCopy makes field content share memory with the input buffer
// instead of copying it.
//
// This avoids one allocation per field. The input must not be modified
// while any returned Record is in use.
func WithZeroCopy() Option {
	return func(o *parseOptions) {
		o.zeroCopy = true
	}
}

// WithLogger sets the logger used for diagnostics.
//
// By default nothing is logged. Parse logs record and worker counts at
// Debug level and the failing record at Warn level. Field content is never
// logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *parseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
