package scan

import (
	"errors"
	"io"
	"testing"

	"github.com/simonhull/ris/internal/types"
)

var testTable = types.MustTagTable("test", types.StartTag, types.EndTag, types.DefaultTags, types.DefaultListTags)

// spans collects every span text, failing the test on error.
func spans(t *testing.T, input string) []string {
	t.Helper()
	var out []string
	for span, err := range NewRecordSplitter([]byte(input), testTable).All() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, input[span.Start:span.End])
	}
	return out
}

func TestCursor_TakeLine(t *testing.T) {
	c := cursor{text: []byte("a\nbcd\negfh")}

	if idx, ok := c.takeLine(); !ok || idx != 1 {
		t.Errorf("takeLine() = %d, %v; want 1, true", idx, ok)
	}
	if idx, ok := c.takeLine(); !ok || idx != 5 {
		t.Errorf("takeLine() = %d, %v; want 5, true", idx, ok)
	}
	if _, ok := c.takeLine(); ok {
		t.Error("takeLine() ok = true at last line")
	}
	if !c.atEnd() {
		t.Error("cursor should be at end")
	}
	if _, ok := c.takeLine(); ok {
		t.Error("takeLine() ok = true at end")
	}
}

func TestRecordSplitter_TakeTag(t *testing.T) {
	s := NewRecordSplitter([]byte("foobar\nbarbar\nfo\nbar\n"), testTable)

	if start, res := s.takeTag("foo"); res != tagPresent || start != 0 {
		t.Errorf("takeTag() = %d, %v; want 0, present", start, res)
	}
	if s.text[s.pos] != 'b' || s.pos != 3 {
		t.Errorf("cursor at %d, want 3", s.pos)
	}

	s.takeLine()
	if _, res := s.takeTag("foo"); res != tagAbsent {
		t.Errorf("takeTag() = %v, want absent", res)
	}
	if s.pos != 8 {
		t.Errorf("cursor at %d, want 8 (one past the mismatch)", s.pos)
	}

	s.takeLine()
	if _, res := s.takeTag("foo"); res != tagNewline {
		t.Errorf("takeTag() = %v, want newline", res)
	}
	if s.pos != 17 {
		t.Errorf("cursor at %d, want 17 (start of next line)", s.pos)
	}

	s.takeLine()
	if _, res := s.takeTag("foo"); res != tagEOF {
		t.Errorf("takeTag() = %v, want EOF", res)
	}
}

func TestRecordSplitter_Next(t *testing.T) {
	input := `1.
TY  - JOUR
ID  - 12345
A2  - Glattauer, Daniel
UR  - http://example_url.com
ER  - 

2.
TY  - JOUR
ID  - 12345
T1  - The title of the reference
CY  - Germany
L2  - http://example2.com
UR  - http://example_url.com
ER  - 
`
	got := spans(t, input)
	want := []string{
		"TY  - JOUR\nID  - 12345\nA2  - Glattauer, Daniel\nUR  - http://example_url.com\nER  - ",
		"TY  - JOUR\nID  - 12345\nT1  - The title of the reference\nCY  - Germany\nL2  - http://example2.com\nUR  - http://example_url.com\nER  - ",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d spans, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRecordSplitter_ExhaustedStaysExhausted(t *testing.T) {
	s := NewRecordSplitter([]byte("TY  - \nER  - \n"), testTable)
	if _, err := s.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	for range 2 {
		if _, err := s.Next(); err != io.EOF {
			t.Errorf("Next() error = %v, want io.EOF", err)
		}
	}
}

func TestRecordSplitter_EdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "junk after end tag",
			input: "1.\nTY  - JOUR\nID  - 12345\nER  - \nfoobar\n",
			want:  []string{"TY  - JOUR\nID  - 12345\nER  - "},
		},
		{
			name:  "blank lines before start tag",
			input: "\n\n\nTY  - JOUR\nID  - 12345\nER  - \nfoobar\n",
			want:  []string{"TY  - JOUR\nID  - 12345\nER  - "},
		},
		{
			name:  "double byte characters",
			input: "\nTY  - Â©\nER  - \n\nTY  - JOUR\nER  - \n",
			want:  []string{"TY  - Â©\nER  - ", "TY  - JOUR\nER  - "},
		},
		{
			name:  "empty record at end of input",
			input: "TY  - \nER  - ",
			want:  []string{"TY  - \nER  - "},
		},
		{
			name:  "byte order mark",
			input: "\ufeffTY  - \nER  - ",
			want:  []string{"TY  - \nER  - "},
		},
		{
			name:  "end tag inside start line is not an end tag",
			input: "TY  - ER  - \nER  - \n",
			want:  []string{"TY  - ER  - \nER  - "},
		},
		{
			name:  "indented tag is not a tag",
			input: " TY  - JOUR\nTY  - BOOK\nER  - \n",
			want:  []string{"TY  - BOOK\nER  - "},
		},
		{
			name:  "crlf line endings",
			input: "TY  - JOUR\r\nER  - \r\n",
			want:  []string{"TY  - JOUR\r\nER  - \r"},
		},
		{
			name:  "no records",
			input: "just some text\nwithout tags\n",
			want:  nil,
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := spans(t, tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d spans %q, want %d", len(got), got, len(tc.want))
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("span %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestRecordSplitter_BOMOffsets(t *testing.T) {
	input := []byte("\ufeffTY  - \nER  - ")
	s := NewRecordSplitter(input, testTable)
	span, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if span.Start != 3 || span.End != len(input) {
		t.Errorf("span = %+v, want {3 %d}", span, len(input))
	}
}

func TestRecordSplitter_Unterminated(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantRecord int
		wantOffset int64
	}{
		{"no end tag", "TY  - JOUR\nTI  - Title\n", 0, 0},
		{"start tag on last line", "junk\nTY  - JOUR", 0, 5},
		{"second record open", "TY  - \nER  - \nTY  - BOOK\nTI  - x\n", 1, 14},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewRecordSplitter([]byte(tc.input), testTable)
			var err error
			for _, e := range s.All() {
				if e != nil {
					err = e
					break
				}
			}
			var perr *types.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if perr.Kind != types.KindEndOfInput {
				t.Errorf("Kind = %v, want end of input", perr.Kind)
			}
			if perr.Record != tc.wantRecord {
				t.Errorf("Record = %d, want %d", perr.Record, tc.wantRecord)
			}
			if perr.Offset != tc.wantOffset {
				t.Errorf("Offset = %d, want %d", perr.Offset, tc.wantOffset)
			}
			if _, err := s.Next(); err != io.EOF {
				t.Errorf("Next() after failure = %v, want io.EOF", err)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	input := []byte("TY  - A\nER  - \nTY  - B\nER  - \n")
	got, err := Split(input, testTable)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	want := []Span{{0, 14}, {15, 29}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Split() = %v, want %v", got, want)
	}
	if got[0].Len() != 14 {
		t.Errorf("Len() = %d, want 14", got[0].Len())
	}

	if _, err := Split([]byte("TY  - A\n"), testTable); !errors.Is(err, types.ErrEndOfInput) {
		t.Errorf("Split() error = %v, want ErrEndOfInput", err)
	}
}
