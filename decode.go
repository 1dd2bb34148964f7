package fixedwidth

import (
	"bytes"
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// Unmarshal decodes a single fixed-width record into the value pointed to by
// v, walking the flattened fields in order. If v is nil or not a pointer,
// Unmarshal returns an InvalidDecodeError.
func Unmarshal(data []byte, fields *FieldSet, v interface{}) error {
	return NewDecoder(fields).Decode(data, v)
}

// A Decoder decodes fixed-width records described by a single layout.
//
// The layout is flattened once at construction. Every Decode call walks it
// from the start with a fresh cursor, so a Decoder may be reused across
// records and shared between goroutines.
type Decoder struct {
	fields []Field
}

// NewDecoder returns a Decoder for the given layout.
func NewDecoder(fields *FieldSet) *Decoder {
	return &Decoder{fields: fields.Flatten()}
}

// Decode decodes one record into the value pointed to by v.
//
// Decoding is positional: product types (structs, arrays) consume one field
// per element in declaration order, slices and maps consume fields until the
// layout is exhausted, and every primitive consumes exactly one field.
func (d *Decoder) Decode(data []byte, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &InvalidDecodeError{reflect.TypeOf(v)}
	}
	return decodeValue(newCursor(d.fields, data), rv.Elem())
}

type valueSetter func(c *cursor, v reflect.Value) error

var (
	charType               = reflect.TypeOf(Char(0))
	textUnmarshalerType    = reflect.TypeOf(new(encoding.TextUnmarshaler)).Elem()
	variantUnmarshalerType = reflect.TypeOf(new(VariantUnmarshaler)).Elem()
)

func decodeValue(c *cursor, v reflect.Value) error {
	return newValueSetter(v.Type())(c, v)
}

func newValueSetter(t reflect.Type) valueSetter {
	if t == charType {
		return charSetter
	}
	if t.Kind() != reflect.Ptr &&
		(t.Implements(variantUnmarshalerType) || reflect.PtrTo(t).Implements(variantUnmarshalerType)) {
		return variantSetter
	}
	if t.Implements(textUnmarshalerType) {
		return textUnmarshalerSetter(t, false)
	}
	if reflect.PtrTo(t).Implements(textUnmarshalerType) {
		return textUnmarshalerSetter(t, true)
	}

	switch t.Kind() {
	case reflect.Ptr:
		return ptrSetter(t)
	case reflect.Bool:
		return boolSetter
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intSetter
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintSetter
	case reflect.Float32:
		return floatSetter(32)
	case reflect.Float64:
		return floatSetter(64)
	case reflect.String:
		return stringSetter
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return bytesSetter
		}
		return sliceSetter(t)
	case reflect.Array:
		return arraySetter
	case reflect.Struct:
		if t.NumField() == 0 {
			return unitSetter
		}
		return structSetter
	case reflect.Map:
		return mapSetter(t)
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return anySetter
		}
	}
	return unsupportedSetter(t)
}

func boolSetter(c *cursor, v reflect.Value) error {
	f, s, err := c.nextTrimmed()
	if err != nil {
		return err
	}
	if len(s) > 1 {
		return &ParseError{Kind: "bool", Value: s, Field: f,
			Cause: fmt.Errorf("expected at most 1 byte, got %d", len(s))}
	}
	// Empty and '0' are false; any other single byte is true.
	v.SetBool(s != "" && s != "0")
	return nil
}

func intSetter(c *cursor, v reflect.Value) error {
	f, s, err := c.nextTrimmed()
	if err != nil {
		return err
	}
	n, err := strconv.ParseInt(s, 10, v.Type().Bits())
	if err != nil {
		return &ParseError{Kind: "int", Value: s, Field: f, Cause: err}
	}
	v.SetInt(n)
	return nil
}

func uintSetter(c *cursor, v reflect.Value) error {
	f, s, err := c.nextTrimmed()
	if err != nil {
		return err
	}
	n, err := strconv.ParseUint(s, 10, v.Type().Bits())
	if err != nil {
		return &ParseError{Kind: "uint", Value: s, Field: f, Cause: err}
	}
	v.SetUint(n)
	return nil
}

func floatSetter(bitSize int) valueSetter {
	return func(c *cursor, v reflect.Value) error {
		f, s, err := c.nextTrimmed()
		if err != nil {
			return err
		}
		n, err := strconv.ParseFloat(s, bitSize)
		if err != nil {
			return &ParseError{Kind: "float", Value: s, Field: f, Cause: err}
		}
		v.SetFloat(n)
		return nil
	}
}

func stringSetter(c *cursor, v reflect.Value) error {
	_, s, err := c.nextTrimmed()
	if err != nil {
		return err
	}
	v.SetString(s)
	return nil
}

// bytesSetter hands back the raw field bytes, untrimmed, as an owned copy.
func bytesSetter(c *cursor, v reflect.Value) error {
	_, b, err := c.nextRaw()
	if err != nil {
		return err
	}
	v.SetBytes(append([]byte(nil), b...))
	return nil
}

func charSetter(c *cursor, v reflect.Value) error {
	f, s, err := c.nextTrimmed()
	if err != nil {
		return err
	}
	if len(s) > 1 {
		return &ParseError{Kind: "char", Value: s, Field: f,
			Cause: fmt.Errorf("expected at most 1 byte, got %d", len(s))}
	}
	r := ' '
	if s != "" {
		r, _ = utf8.DecodeRuneInString(s)
	}
	v.SetInt(int64(r))
	return nil
}

// ptrSetter treats pointers as optional values: a blank field decodes to
// nil, anything else decodes the pointed-to type in place.
func ptrSetter(t reflect.Type) valueSetter {
	return func(c *cursor, v reflect.Value) error {
		_, s, err := c.peekTrimmed()
		if err != nil {
			return err
		}
		if s == "" {
			c.skip()
			v.Set(reflect.Zero(t))
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return decodeValue(c, v.Elem())
	}
}

// unitSetter consumes and discards one field without interpretation.
func unitSetter(c *cursor, v reflect.Value) error {
	c.skip()
	return nil
}

func structSetter(c *cursor, v reflect.Value) error {
	t := v.Type()
	ss := cachedStructSpec(t)
	for i, idx := range ss.indices {
		if err := ss.setters[i](c, v.Field(idx)); err != nil {
			return &DecodeTypeError{Type: ss.types[i], Struct: t.Name(), Field: ss.names[i], Cause: err}
		}
	}
	return nil
}

func sliceSetter(t reflect.Type) valueSetter {
	return func(c *cursor, v reflect.Value) error {
		et := t.Elem()
		set := newValueSetter(et)
		out := reflect.MakeSlice(t, 0, 0)
		for !c.done() {
			ev := reflect.New(et).Elem()
			if err := set(c, ev); err != nil {
				return err
			}
			out = reflect.Append(out, ev)
		}
		v.Set(out)
		return nil
	}
}

func arraySetter(c *cursor, v reflect.Value) error {
	set := newValueSetter(v.Type().Elem())
	for i := 0; i < v.Len(); i++ {
		if err := set(c, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

// mapSetter decodes each remaining field as one entry: the key is the
// field's declared name or its synthesized "<start>..<end>" form, the value
// is decoded from the same field's bytes.
func mapSetter(t reflect.Type) valueSetter {
	return func(c *cursor, v reflect.Value) error {
		if t.Key().Kind() != reflect.String {
			return &UnsupportedTypeError{Type: t, Op: "decode"}
		}
		if v.IsNil() {
			v.Set(reflect.MakeMap(t))
		}
		et := t.Elem()
		set := newValueSetter(et)
		for !c.done() {
			f, _ := c.peekField()
			ev := reflect.New(et).Elem()
			if err := set(c, ev); err != nil {
				return err
			}
			kv := reflect.ValueOf(f.Key()).Convert(t.Key())
			v.SetMapIndex(kv, ev)
		}
		return nil
	}
}

// variantSetter resolves a tagged union from the declared name of the next
// field. The field is peeked, not consumed, and must be named.
func variantSetter(c *cursor, v reflect.Value) error {
	f, ok := c.peekField()
	if !ok {
		return ErrUnexpectedEndOfRecord
	}
	if f.Name == "" {
		return fmt.Errorf("fixedwidth: no name for field %s; a variant tag requires a named field", f.Key())
	}
	if !v.Type().Implements(variantUnmarshalerType) {
		v = v.Addr()
	}
	return v.Interface().(VariantUnmarshaler).UnmarshalVariant(f.Name)
}

func textUnmarshalerSetter(t reflect.Type, shouldAddr bool) valueSetter {
	return func(c *cursor, v reflect.Value) error {
		_, b, err := c.nextRaw()
		if err != nil {
			return err
		}
		if shouldAddr {
			v = v.Addr()
		}
		if t.Kind() == reflect.Ptr && v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return v.Interface().(encoding.TextUnmarshaler).UnmarshalText(bytes.TrimSpace(b))
	}
}

// anySetter is the best-effort path for untyped targets: single characters
// decode as bool or Char, then integer, then float, then the raw string.
// It is never used when a concrete type is requested.
func anySetter(c *cursor, v reflect.Value) error {
	_, s, err := c.nextTrimmed()
	if err != nil {
		return err
	}
	v.Set(reflect.ValueOf(decodeAny(s)))
	return nil
}

func decodeAny(s string) interface{} {
	if len(s) == 1 {
		switch s {
		case "1":
			return true
		case "0":
			return false
		}
		r, _ := utf8.DecodeRuneInString(s)
		return Char(r)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func unsupportedSetter(t reflect.Type) valueSetter {
	return func(c *cursor, v reflect.Value) error {
		return &UnsupportedTypeError{Type: t, Op: "decode"}
	}
}
