package fixedwidth

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestLineBreak(t *testing.T) {
	for _, tt := range []struct {
		lb    LineBreak
		width int
		bytes string
	}{
		{LineBreakNone, 0, ""},
		{LineBreakNewline, 1, "\n"},
		{LineBreakCRLF, 2, "\r\n"},
	} {
		if got := tt.lb.ByteWidth(); got != tt.width {
			t.Errorf("ByteWidth() = %d, want %d", got, tt.width)
		}
		if got := string(tt.lb.Bytes()); got != tt.bytes {
			t.Errorf("Bytes() = %q, want %q", got, tt.bytes)
		}
	}
}

func TestReaderNext(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
		lb    LineBreak
		want  []string
	}{
		{"unseparated", "aaaabbbb", LineBreakNone, []string{"aaaa", "bbbb"}},
		{"newline", "aaaa\nbbbb", LineBreakNewline, []string{"aaaa", "bbbb"}},
		{"newline with trailing break", "aaaa\nbbbb\n", LineBreakNewline, []string{"aaaa", "bbbb"}},
		{"crlf", "aaaa\r\nbbbb", LineBreakCRLF, []string{"aaaa", "bbbb"}},
		{"empty input", "", LineBreakNewline, nil},
		{"single record", "aaaa", LineBreakNewline, []string{"aaaa"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input), 4)
			r.SetLineBreak(tt.lb)

			var got []string
			for {
				rec, err := r.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatal(err)
				}
				got = append(got, string(rec))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("records = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReaderTruncatedRecord(t *testing.T) {
	r := NewReader(strings.NewReader("aaaab"), 4)

	if _, err := r.Next(); err != nil {
		t.Fatal(err)
	}
	_, err := r.Next()
	if !errors.Is(err, ErrUnexpectedEndOfRecord) {
		t.Errorf("err = %v, want ErrUnexpectedEndOfRecord", err)
	}
}

func TestReaderReadAllOwnsRecords(t *testing.T) {
	r := NewReader(strings.NewReader("aaaabbbb"), 4)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Records must not share the reader's scratch buffer.
	if string(records[0]) != "aaaa" || string(records[1]) != "bbbb" {
		t.Errorf("records = %q", records)
	}
}

func TestReaderDecodeAll(t *testing.T) {
	type row struct {
		N int
		S string
	}
	fields := Seq(NewField(0, 3), NewField(3, 5))

	r := NewReader(strings.NewReader("12 ab\n34 cd"), 5)
	r.SetLineBreak(LineBreakNewline)

	var rows []row
	if err := r.DecodeAll(NewDecoder(fields), &rows); err != nil {
		t.Fatal(err)
	}
	want := []row{{12, "ab"}, {34, "cd"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("DecodeAll() = %+v, want %+v", rows, want)
	}
}

func TestReaderDecodeAllRequiresSlicePointer(t *testing.T) {
	r := NewReader(strings.NewReader("aaaa"), 4)
	var invalid *InvalidDecodeError

	var rows []string
	if err := r.DecodeAll(NewDecoder(NewField(0, 4)), rows); !errors.As(err, &invalid) {
		t.Errorf("err = %v, want InvalidDecodeError", err)
	}
}
