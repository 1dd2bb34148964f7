package fixedwidth

import (
	"bytes"
	"unicode/utf8"
)

// cursor is the single consumable position into a flattened field list held
// by one decode or encode pass. It advances monotonically and is never
// rewound; peeking does not advance. A cursor lives for exactly one record.
type cursor struct {
	fields []Field
	input  []byte
	pos    int
}

func newCursor(fields []Field, input []byte) *cursor {
	return &cursor{fields: fields, input: input}
}

func (c *cursor) done() bool { return c.pos >= len(c.fields) }

func (c *cursor) peekField() (Field, bool) {
	if c.done() {
		return Field{}, false
	}
	return c.fields[c.pos], true
}

// skip discards the next field without interpretation.
func (c *cursor) skip() {
	if !c.done() {
		c.pos++
	}
}

// nextField consumes one descriptor. Used on the encoding side, where
// exhaustion means the value shape outran the layout.
func (c *cursor) nextField() (Field, error) {
	if c.done() {
		return Field{}, ErrUnexpectedEndOfFields
	}
	f := c.fields[c.pos]
	c.pos++
	return f, nil
}

// slice extracts the field's byte range from the record. A range past the
// end of the record is a hard error, never clamped.
func (c *cursor) slice(f Field) ([]byte, error) {
	if f.Start > len(c.input) || f.End > len(c.input) {
		return nil, ErrUnexpectedEndOfRecord
	}
	return c.input[f.Start:f.End], nil
}

func (c *cursor) peekRaw() (Field, []byte, error) {
	f, ok := c.peekField()
	if !ok {
		return Field{}, nil, ErrUnexpectedEndOfRecord
	}
	b, err := c.slice(f)
	return f, b, err
}

func (c *cursor) nextRaw() (Field, []byte, error) {
	f, b, err := c.peekRaw()
	if err != nil {
		return f, b, err
	}
	c.pos++
	return f, b, nil
}

// trimmed converts field bytes to a string with surrounding whitespace
// removed. The trim is unconditional whitespace, not the field's configured
// pad character; a non-space pad survives decoding.
func trimmed(f Field, b []byte) (string, error) {
	t := bytes.TrimSpace(b)
	if !utf8.Valid(t) {
		return "", &InvalidEncodingError{Field: f}
	}
	return string(t), nil
}

func (c *cursor) peekTrimmed() (Field, string, error) {
	f, b, err := c.peekRaw()
	if err != nil {
		return f, "", err
	}
	s, err := trimmed(f, b)
	return f, s, err
}

func (c *cursor) nextTrimmed() (Field, string, error) {
	f, b, err := c.nextRaw()
	if err != nil {
		return f, "", err
	}
	s, err := trimmed(f, b)
	return f, s, err
}
