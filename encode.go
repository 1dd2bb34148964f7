package fixedwidth

import (
	"bufio"
	"bytes"
	"encoding"
	"io"
	"reflect"
	"strconv"
)

// Marshal returns the fixed-width encoding of v laid out by fields.
//
// Encoding mirrors decoding: every primitive consumes exactly one field,
// product types consume one field per element in declaration order, and a
// nil pointer or interface renders as an all-pad field. Values longer than
// their field are silently truncated on the right.
func Marshal(v interface{}, fields *FieldSet) ([]byte, error) {
	var buff bytes.Buffer
	if err := NewEncoder(&buff, fields).Encode(v); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// An Encoder writes fixed-width records described by a single layout to an
// output stream.
//
// The layout is flattened once at construction. Every Encode call walks it
// from the start with a fresh cursor, so an Encoder may emit many records.
type Encoder struct {
	w      *bufio.Writer
	fields []Field
}

// NewEncoder returns an Encoder writing to w with the given layout.
func NewEncoder(w io.Writer, fields *FieldSet) *Encoder {
	return &Encoder{
		w:      bufio.NewWriter(w),
		fields: fields.Flatten(),
	}
}

// Encode writes the fixed-width encoding of one record to the stream. No
// record separator is written; that is the Writer's concern.
func (e *Encoder) Encode(v interface{}) error {
	if v == nil {
		return nil
	}
	c := newCursor(e.fields, nil)
	if err := encodeValue(c, e.w, reflect.ValueOf(v)); err != nil {
		return err
	}
	return e.w.Flush()
}

type valueEncoder func(c *cursor, w *bufio.Writer, v reflect.Value) error

var (
	textMarshalerType    = reflect.TypeOf(new(encoding.TextMarshaler)).Elem()
	variantMarshalerType = reflect.TypeOf(new(VariantMarshaler)).Elem()
)

func encodeValue(c *cursor, w *bufio.Writer, v reflect.Value) error {
	return newValueEncoder(v.Type())(c, w, v)
}

// writeField consumes the next descriptor and writes value padded to its
// width.
func writeField(c *cursor, w *bufio.Writer, value []byte) error {
	f, err := c.nextField()
	if err != nil {
		return err
	}
	_, err = w.Write(Pad(value, f))
	return err
}

func newValueEncoder(t reflect.Type) valueEncoder {
	if t == nil {
		return nilEncoder
	}
	if t == charType {
		return charEncoder
	}
	if t.Implements(variantMarshalerType) {
		return variantEncoder
	}
	if t.Implements(textMarshalerType) {
		return textMarshalerEncoder
	}

	switch t.Kind() {
	case reflect.Ptr, reflect.Interface:
		return ptrInterfaceEncoder
	case reflect.Bool:
		return boolEncoder
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intEncoder
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintEncoder
	case reflect.Float32:
		return floatEncoder(32)
	case reflect.Float64:
		return floatEncoder(64)
	case reflect.String:
		return stringEncoder
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return bytesEncoder
		}
		return seqEncoder
	case reflect.Array:
		return seqEncoder
	case reflect.Struct:
		if t.NumField() == 0 {
			return unitEncoder
		}
		return structEncoder
	}
	return unsupportedEncoder(t)
}

func nilEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	return writeField(c, w, nil)
}

func boolEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	if v.Bool() {
		return writeField(c, w, []byte("1"))
	}
	return writeField(c, w, []byte("0"))
}

func intEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	return writeField(c, w, strconv.AppendInt(nil, v.Int(), 10))
}

func uintEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	return writeField(c, w, strconv.AppendUint(nil, v.Uint(), 10))
}

func floatEncoder(bitSize int) valueEncoder {
	return func(c *cursor, w *bufio.Writer, v reflect.Value) error {
		return writeField(c, w, strconv.AppendFloat(nil, v.Float(), 'f', -1, bitSize))
	}
}

func stringEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	return writeField(c, w, []byte(v.String()))
}

func bytesEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	return writeField(c, w, v.Bytes())
}

func charEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	return writeField(c, w, []byte(string(rune(v.Int()))))
}

// ptrInterfaceEncoder renders nil as an all-pad field, consuming one
// descriptor; a non-nil value is encoded in place.
func ptrInterfaceEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	if v.IsNil() {
		return writeField(c, w, nil)
	}
	return encodeValue(c, w, v.Elem())
}

// unitEncoder renders a unit marker identically to an absent optional.
func unitEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	return writeField(c, w, nil)
}

func seqEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	enc := newValueEncoder(v.Type().Elem())
	for i := 0; i < v.Len(); i++ {
		if err := enc(c, w, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func structEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	ss := cachedStructSpec(v.Type())
	for i, idx := range ss.indices {
		if err := ss.encoders[i](c, w, v.Field(idx)); err != nil {
			return err
		}
	}
	return nil
}

// variantEncoder writes the variant name as a string into the next field,
// then encodes a non-nil payload against the following fields.
func variantEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	name, payload, err := v.Interface().(VariantMarshaler).MarshalVariant()
	if err != nil {
		return err
	}
	if err := writeField(c, w, []byte(name)); err != nil {
		return err
	}
	if payload == nil {
		return nil
	}
	return encodeValue(c, w, reflect.ValueOf(payload))
}

func textMarshalerEncoder(c *cursor, w *bufio.Writer, v reflect.Value) error {
	b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return err
	}
	return writeField(c, w, b)
}

func unsupportedEncoder(t reflect.Type) valueEncoder {
	return func(c *cursor, w *bufio.Writer, v reflect.Value) error {
		return &UnsupportedTypeError{Type: t, Op: "encode"}
	}
}
