// Command risdump parses RIS files and prints their records as JSON.
//
// Usage:
//
//	risdump [-dialect ris] [-workers n] [-count] [-v] file.ris...
//
// With no files, standard input is parsed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/simonhull/ris"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "risdump: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("risdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dialect := fs.String("dialect", "ris", "tag table to parse with")
	workers := fs.Int("workers", 0, "records assembled concurrently per file (0: library default)")
	count := fs.Bool("count", false, "print record counts instead of records")
	verbose := fs.Bool("v", false, "log diagnostics to stderr")
	version := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: risdump [flags] [file.ris...]\n")
		fmt.Fprintf(stderr, "dialects: %v\n", ris.Dialects())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *version {
		info := ris.GetVersionInfo()
		fmt.Fprintf(stdout, "risdump %s (commit %s, built %s, %s)\n",
			info.Version, info.GitCommit, info.BuildTime, info.GoVersion)
		return nil
	}

	opts := []ris.Option{ris.WithDialect(*dialect)}
	if *workers > 0 {
		opts = append(opts, ris.WithWorkers(*workers))
	}
	if *verbose {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, ris.WithLogger(logger))
	}

	paths := fs.Args()
	var sets [][]*ris.Record
	if len(paths) == 0 {
		records, err := ris.ParseReader(stdin, opts...)
		if err != nil {
			return err
		}
		sets = [][]*ris.Record{records}
		paths = []string{"-"}
	} else {
		var err error
		sets, err = ris.ParseMany(context.Background(), paths, opts...)
		if err != nil {
			return err
		}
	}

	if *count {
		for i, records := range sets {
			fmt.Fprintf(stdout, "%s\t%d\n", paths[i], len(records))
		}
		return nil
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	for _, records := range sets {
		if records == nil {
			records = []*ris.Record{}
		}
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
