package scan

import (
	"errors"
	"io"
	"testing"

	"github.com/simonhull/ris/internal/types"
)

type field struct {
	tag     string
	content string
}

func scanFields(t *testing.T, record string) []field {
	t.Helper()
	var out []field
	for f, err := range NewFieldScanner([]byte(record), 0, testTable).All() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, field{string(f.Literal), string(f.Content)})
	}
	return out
}

func TestFieldScanner_Next(t *testing.T) {
	got := scanFields(t, "TY  - JOUR\nID  - 12345\nA2  - Glattauer, Daniel\nUR  - http://example_url.com\nER  - ")
	want := []field{
		{"TY  - ", "JOUR"},
		{"ID  - ", "12345"},
		{"A2  - ", "Glattauer, Daniel"},
		{"UR  - ", "http://example_url.com"},
		{"ER  - ", ""},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d fields %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFieldScanner_Content(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   string
	}{
		{"empty content", "AB  - \nER  - ", ""},
		{"single line", "AB  - aa\nER  - ", "aa"},
		{"three lines", "AB  - aa\naa\naa\nER  - ", "aa\naa\naa"},
		{"blank continuation", "AB  - aa\n\nER  - ", "aa\n"},
		{"content runs to end", "AB  - aa\nbb", "aa\nbb"},
		{"short trailing line", "AB  - aa\nbb\n", "aa\nbb\n"},
		{"crlf before next tag", "AB  - aa\r\nER  - ", "aa"},
		{"crlf inside content", "AB  - aa\r\nbb\r\nER  - ", "aa\r\nbb"},
		{"lowercase tag is content", "AB  - aa\nab  - bb\nER  - ", "aa\nab  - bb"},
		{"multibyte content", "AB  - Â© 2020\nER  - ", "Â© 2020"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := scanFields(t, tc.record)
			if len(got) == 0 {
				t.Fatal("no fields scanned")
			}
			if got[0].content != tc.want {
				t.Errorf("content = %q, want %q", got[0].content, tc.want)
			}
		})
	}
}

func TestFieldScanner_EOF(t *testing.T) {
	for _, record := range []string{"", "TY", "TY  -"} {
		s := NewFieldScanner([]byte(record), 0, testTable)
		if _, err := s.Next(); err != io.EOF {
			t.Errorf("Next(%q) error = %v, want io.EOF", record, err)
		}
	}
}

func TestFieldScanner_Offsets(t *testing.T) {
	s := NewFieldScanner([]byte("TY  - JOUR\nER  - "), 100, testTable)

	f, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if f.Tag != "TY" || f.Offset != 100 {
		t.Errorf("first field = %q at %d, want TY at 100", f.Tag, f.Offset)
	}

	f, err = s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if f.Tag != "ER" || f.Offset != 111 {
		t.Errorf("second field = %q at %d, want ER at 111", f.Tag, f.Offset)
	}
}

func TestFieldScanner_Errors(t *testing.T) {
	tests := []struct {
		name       string
		record     string
		wantKind   types.ErrorKind
		wantTag    string
		wantOffset int64
	}{
		{"unknown tag at field start", "ZZ  - foo\nER  - ", types.KindUnrecognizedTag, "ZZ", 0},
		{"unknown tag after field", "TY  - JOUR\nZZ  - foo\nER  - ", types.KindUnrecognizedTag, "ZZ", 11},
		{"unknown tag after continuation", "TY  - JOUR\nmore\nQ1  - foo\nER  - ", types.KindUnrecognizedTag, "Q1", 16},
		{"no tag at field start", "not a tag line\nER  - ", types.KindMalformedLine, "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			for _, e := range NewFieldScanner([]byte(tc.record), 0, testTable).All() {
				if e != nil {
					err = e
					break
				}
			}
			var perr *types.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if perr.Kind != tc.wantKind {
				t.Errorf("Kind = %v, want %v", perr.Kind, tc.wantKind)
			}
			if perr.Tag != tc.wantTag {
				t.Errorf("Tag = %q, want %q", perr.Tag, tc.wantTag)
			}
			if perr.Offset != tc.wantOffset {
				t.Errorf("Offset = %d, want %d", perr.Offset, tc.wantOffset)
			}
		})
	}
}

func TestFieldScanner_AllStopsEarly(t *testing.T) {
	s := NewFieldScanner([]byte("TY  - JOUR\nTI  - x\nER  - "), 0, testTable)
	n := 0
	for range s.All() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iterated %d times, want 1", n)
	}
	f, err := s.Next()
	if err != nil || f.Tag != "TI" {
		t.Errorf("Next() after break = %q, %v; want TI", f.Tag, err)
	}
}
