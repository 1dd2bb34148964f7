package fixedwidth

import (
	"fmt"
	"strings"
)

const defaultPadChar = ' '

// Justify determines which side of a field receives padding when an encoded
// value is shorter than the field width.
type Justify string

const (
	// Left aligns the value at the start of the field; padding follows it.
	Left Justify = "left"
	// Right aligns the value at the end of the field; padding precedes it.
	Right Justify = "right"
)

// Valid reports whether j is one of the defined justifications.
func (j Justify) Valid() bool {
	switch j {
	case Left, Right:
		return true
	default:
		return false
	}
}

// Field describes one addressable byte range in a record: a half-open
// [Start, End) interval, an optional logical name, the byte used to pad
// short values, and the side the value is justified to.
type Field struct {
	Name    string
	Start   int
	End     int
	PadChar byte
	Justify Justify
}

// Width returns the number of bytes the field occupies.
func (f Field) Width() int { return f.End - f.Start }

// Key returns the field name, or the synthesized "<start>..<end>" form when
// the field is unnamed. Map decoding uses Key for the entry keys.
func (f Field) Key() string {
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprintf("%d..%d", f.Start, f.End)
}

// FieldSet is a tree of field descriptors: either a single leaf Field or an
// ordered sequence of FieldSets. Sequences mirror nested structured types,
// and Flatten linearizes the tree into the ordered field list the Decoder
// and Encoder consume.
//
// FieldSet values are immutable; the builder methods return modified copies,
// so a layout may be shared freely between goroutines.
type FieldSet struct {
	leaf  bool
	field Field
	seq   []*FieldSet
}

// NewField returns a leaf FieldSet covering the half-open byte range
// [start, end) with defaults: unnamed, space padded, left justified.
// It panics if the range is inverted or negative.
func NewField(start, end int) *FieldSet {
	if start < 0 || start > end {
		panic(fmt.Sprintf("fixedwidth: invalid field range %d..%d", start, end))
	}
	return &FieldSet{
		leaf:  true,
		field: Field{Start: start, End: end, PadChar: defaultPadChar, Justify: Left},
	}
}

// Seq returns a FieldSet sequence of the given elements in order.
func Seq(sets ...*FieldSet) *FieldSet {
	return &FieldSet{seq: sets}
}

// Name returns a copy of fs with the given logical name. It is valid only on
// a leaf; a sequence has no singular name, so calling Name on one panics.
func (fs *FieldSet) Name(name string) *FieldSet {
	if !fs.leaf {
		panic("fixedwidth: Name is not valid on a field sequence")
	}
	f := fs.field
	f.Name = name
	return &FieldSet{leaf: true, field: f}
}

// PadWith returns a copy of fs using c as the pad character. On a sequence
// it applies to every leaf.
func (fs *FieldSet) PadWith(c byte) *FieldSet {
	if fs.leaf {
		f := fs.field
		f.PadChar = c
		return &FieldSet{leaf: true, field: f}
	}
	seq := make([]*FieldSet, len(fs.seq))
	for i, s := range fs.seq {
		seq[i] = s.PadWith(c)
	}
	return &FieldSet{seq: seq}
}

// Justify returns a copy of fs using the given justification. On a sequence
// it applies to every leaf. It panics if j is not a defined justification.
func (fs *FieldSet) Justify(j Justify) *FieldSet {
	if !j.Valid() {
		panic(fmt.Sprintf("fixedwidth: invalid justification %q", string(j)))
	}
	if fs.leaf {
		f := fs.field
		f.Justify = j
		return &FieldSet{leaf: true, field: f}
	}
	seq := make([]*FieldSet, len(fs.seq))
	for i, s := range fs.seq {
		seq[i] = s.Justify(j)
	}
	return &FieldSet{seq: seq}
}

// Append returns a sequence with other appended as a single element. If
// other is itself a sequence it stays nested.
func (fs *FieldSet) Append(other *FieldSet) *FieldSet {
	if fs.leaf {
		return &FieldSet{seq: []*FieldSet{fs, other}}
	}
	seq := make([]*FieldSet, 0, len(fs.seq)+1)
	seq = append(seq, fs.seq...)
	seq = append(seq, other)
	return &FieldSet{seq: seq}
}

// Extend is like Append but splices the top-level elements of a sequence
// into the receiver instead of nesting it.
func (fs *FieldSet) Extend(other *FieldSet) *FieldSet {
	if fs.leaf {
		if other.leaf {
			return fs.Append(other)
		}
		return Seq(fs).Extend(other)
	}
	seq := make([]*FieldSet, 0, len(fs.seq)+len(other.seq)+1)
	seq = append(seq, fs.seq...)
	if other.leaf {
		seq = append(seq, other)
	} else {
		seq = append(seq, other.seq...)
	}
	return &FieldSet{seq: seq}
}

// Flatten linearizes the tree into its leaves in depth-first, left-to-right
// order. The traversal uses an explicit stack so arbitrarily deep nesting
// cannot exhaust the call stack. Empty sequences contribute nothing.
func (fs *FieldSet) Flatten() []Field {
	var flat []Field
	stack := [][]*FieldSet{{fs}}

	for len(stack) > 0 {
		i := len(stack) - 1
		if len(stack[i]) == 0 {
			stack = stack[:i]
			continue
		}
		head := stack[i][0]
		stack[i] = stack[i][1:]
		if head.leaf {
			flat = append(flat, head.field)
		} else {
			stack = append(stack, head.seq)
		}
	}

	return flat
}

// String renders the tree structure, mostly for tests and debugging.
func (fs *FieldSet) String() string {
	if fs.leaf {
		f := fs.field
		s := fmt.Sprintf("%d..%d", f.Start, f.End)
		if f.Name != "" {
			s += fmt.Sprintf(" %q", f.Name)
		}
		if f.PadChar != defaultPadChar {
			s += fmt.Sprintf(" pad=%q", string(f.PadChar))
		}
		if f.Justify != Left {
			s += " " + string(f.Justify)
		}
		return s
	}
	parts := make([]string, len(fs.seq))
	for i, s := range fs.seq {
		parts[i] = s.String()
	}
	return "Seq[" + strings.Join(parts, " ") + "]"
}
