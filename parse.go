package ris

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/ris/internal/assemble"
	"github.com/simonhull/ris/internal/registry"
	"github.com/simonhull/ris/internal/scan"
)

// Parse parses every record in input.
//
// Records are returned in the order they appear in input. Bytes before the
// first start tag, between records, and after the last end tag are ignored,
// as is a leading UTF-8 byte-order mark.
//
// Parsing is all or nothing: if any record is malformed, Parse returns a
// *ParseError describing the first failure found and no records.
//
// Example:
//
//	records, err := ris.Parse(data)
//	if err != nil {
//		return err
//	}
//	for _, rec := range records {
//		fmt.Println(rec.Type, rec.First("TI"), rec.Values("AU"))
//	}
func Parse(input []byte, opts ...Option) ([]*Record, error) {
	return ParseContext(context.Background(), input, opts...)
}

// ParseContext is like Parse but stops early when ctx is cancelled, in
// which case ctx.Err() is returned.
//
// Record boundaries are found sequentially. The records themselves are then
// assembled on a pool of workers (see WithWorkers) and collected by index,
// so the output order never depends on scheduling.
func ParseContext(ctx context.Context, input []byte, opts ...Option) ([]*Record, error) {
	options := applyOptions(opts)
	records, err := parse(ctx, input, options)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			annotate(perr, input, options.path)
			logFailure(options, perr)
		}
		return nil, err
	}
	return records, nil
}

func parse(ctx context.Context, input []byte, options *parseOptions) ([]*Record, error) {
	table, err := options.tagTable()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	spans, err := scan.Split(input, table)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return nil, nil
	}

	workers := min(options.workers, len(spans))
	options.logger.Debug("records delimited",
		"records", len(spans),
		"workers", max(workers, 1),
		"dialect", table.Name())

	results := make([]*Record, len(spans))

	if workers <= 1 {
		for i, span := range spans {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rec, err := assemble.Build(input, span, i, table, options.zeroCopy)
			if err != nil {
				return nil, err
			}
			results[i] = rec
		}
	} else if err := assembleParallel(ctx, input, spans, table, options, results); err != nil {
		return nil, err
	}

	options.logger.Debug("records parsed",
		"records", len(results),
		"elapsed", time.Since(start))
	return results, nil
}

// assembleParallel builds every record on a pool of workers, writing each
// into results by index.
//
// When records fail, the one with the lowest index is reported, as in a
// sequential parse. A worker only skips a record that comes after a failure
// already seen, so every record before the lowest failing one is always
// assembled and the reported error never depends on scheduling.
func assembleParallel(ctx context.Context, input []byte, spans []scan.Span, table *TagTable, options *parseOptions, results []*Record) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(min(options.workers, len(spans)))

	errs := make([]error, len(spans))
	var firstFailed atomic.Int64
	firstFailed.Store(math.MaxInt64)

	for i, span := range spans {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if int64(i) > firstFailed.Load() {
				return nil
			}

			rec, err := assemble.Build(input, span, i, table, options.zeroCopy)
			if err != nil {
				errs[i] = err
				for {
					cur := firstFailed.Load()
					if int64(i) >= cur || firstFailed.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
				return nil
			}
			results[i] = rec
			return nil
		})
	}

	// Only cancellation of the parent context reaches the group.
	if err := g.Wait(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// tagTable resolves the configured table.
func (o *parseOptions) tagTable() (*TagTable, error) {
	if o.table != nil {
		return o.table, nil
	}
	table := registry.Get(o.dialect)
	if table == nil {
		return nil, fmt.Errorf("unknown dialect %q", o.dialect)
	}
	return table, nil
}

// annotate fills in the fields of a ParseError that depend on the whole input.
func annotate(perr *ParseError, input []byte, path string) {
	if perr.Path == "" {
		perr.Path = path
	}
	if perr.Line == 0 && perr.Offset >= 0 && perr.Offset <= int64(len(input)) {
		perr.Line = bytes.Count(input[:perr.Offset], []byte{'\n'}) + 1
	}
}

// logFailure reports an annotated parse error. Field content is never logged.
func logFailure(options *parseOptions, perr *ParseError) {
	options.logger.Warn("parse failed",
		"path", perr.Path,
		"record", perr.Record,
		"kind", perr.Kind.String(),
		"line", perr.Line)
}

// Records returns an iterator that parses input one record at a time on the
// calling goroutine.
//
// Unlike Parse, records are yielded as soon as they are assembled, so a
// consumer can stop early without parsing the rest of the input. Iteration
// stops after the first error, which is yielded with a nil record.
//
// Example:
//
//	for rec, err := range ris.Records(data) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(rec.First("TI"))
//	}
func Records(input []byte, opts ...Option) iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		options := applyOptions(opts)
		fail := func(err error) {
			var perr *ParseError
			if errors.As(err, &perr) {
				annotate(perr, input, options.path)
				logFailure(options, perr)
			}
			yield(nil, err)
		}

		table, err := options.tagTable()
		if err != nil {
			fail(err)
			return
		}

		i := 0
		for span, err := range scan.NewRecordSplitter(input, table).All() {
			if err != nil {
				fail(err)
				return
			}
			rec, err := assemble.Build(input, span, i, table, options.zeroCopy)
			if err != nil {
				fail(err)
				return
			}
			if !yield(rec, nil) {
				return
			}
			i++
		}
	}
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader, opts ...Option) ([]*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Parse(data, opts...)
}

// ParseFile reads and parses the file at path. Any *ParseError returned
// carries the path.
//
// The file is read into memory once; records never reference the file
// after ParseFile returns.
func ParseFile(path string, opts ...Option) ([]*Record, error) {
	return parseFile(context.Background(), path, opts)
}

func parseFile(ctx context.Context, path string, opts []Option) ([]*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	opts = append(opts[:len(opts):len(opts)], func(o *parseOptions) { o.path = path })
	return ParseContext(ctx, data, opts...)
}

// ParseMany parses multiple files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. Since files
// already run concurrently, each file's records are assembled sequentially
// unless opts include WithWorkers, in which case every file gets its own
// pool of that size.
//
// If any file fails, an error is returned and no results.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	sets, err := ris.ParseMany(ctx, []string{"a.ris", "b.ris"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for i, records := range sets {
//		fmt.Printf("file %d: %d records\n", i, len(records))
//	}
func ParseMany(ctx context.Context, paths []string, opts ...Option) ([][]*Record, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU()) // Limit concurrent operations

	results := make([][]*Record, len(paths))
	opts = append([]Option{WithWorkers(1)}, opts...)

	for i, path := range paths {
		g.Go(func() error {
			// Check for cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			// Errors already name the path
			records, err := parseFile(ctx, path, opts)
			if err != nil {
				return err
			}

			results[i] = records
			return nil
		})
	}

	// Wait for all to complete
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

