package fixedwidth

import (
	"bytes"
	"testing"
)

func TestPad(t *testing.T) {
	for _, tt := range []struct {
		name  string
		value []byte
		f     Field
		want  []byte
	}{
		{"exact width", []byte("12345"), Field{End: 5, PadChar: 'T', Justify: Left}, []byte("12345")},
		{"truncates right when left justified", []byte("123456789"), Field{End: 5, PadChar: 'T', Justify: Left}, []byte("12345")},
		{"truncates right when right justified", []byte("123456789"), Field{End: 5, PadChar: 'T', Justify: Right}, []byte("12345")},
		{"pads right when left justified", []byte("123"), Field{End: 5, PadChar: 'T', Justify: Left}, []byte("123TT")},
		{"pads left when right justified", []byte("123"), Field{End: 5, PadChar: 'T', Justify: Right}, []byte("TT123")},
		{"empty value", nil, Field{End: 3, PadChar: '-', Justify: Left}, []byte("---")},
		{"zero width", []byte("123"), Field{End: 0, PadChar: 'T', Justify: Left}, []byte{}},
		{"offset field uses width not end", []byte("ab"), Field{Start: 10, End: 14, PadChar: ' ', Justify: Left}, []byte("ab  ")},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pad(tt.value, tt.f); !bytes.Equal(got, tt.want) {
				t.Errorf("Pad(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPadReturnsOwnedSlice(t *testing.T) {
	value := []byte("123456789")
	got := Pad(value, Field{End: 5, PadChar: ' ', Justify: Left})
	got[0] = 'x'
	if value[0] != '1' {
		t.Error("Pad aliased the input slice")
	}
}
