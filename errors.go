package fixedwidth

import (
	"errors"
	"reflect"
	"strconv"
)

// ErrUnexpectedEndOfRecord is returned during decoding when a value needs a
// field but the layout is exhausted, or a field's byte range lies outside
// the record.
var ErrUnexpectedEndOfRecord = errors.New("fixedwidth: unexpected end of record")

// ErrUnexpectedEndOfFields is returned during encoding when values remain
// but the layout is exhausted.
var ErrUnexpectedEndOfFields = errors.New("fixedwidth: unexpected end of fields")

// An InvalidDecodeError describes an invalid argument passed to Unmarshal or
// Decode. (The argument must be a non-nil pointer.)
type InvalidDecodeError struct {
	Type reflect.Type
}

func (e *InvalidDecodeError) Error() string {
	if e.Type == nil {
		return "fixedwidth: Decode(nil)"
	}
	if e.Type.Kind() != reflect.Ptr {
		return "fixedwidth: Decode(non-pointer " + e.Type.String() + ")"
	}
	return "fixedwidth: Decode(nil " + e.Type.String() + ")"
}

// A DecodeTypeError describes a record field that could not be decoded into
// a value of a specific Go type.
type DecodeTypeError struct {
	Type   reflect.Type // type of Go value it could not be assigned to
	Struct string       // name of the struct type containing the field
	Field  string       // name of the struct field holding the Go value
	Cause  error
}

func (e *DecodeTypeError) Error() string {
	s := "fixedwidth: cannot decode into Go value of type " + e.Type.String()
	if e.Struct != "" || e.Field != "" {
		s = "fixedwidth: cannot decode into Go struct field " + e.Struct + "." + e.Field + " of type " + e.Type.String()
	}
	if e.Cause != nil {
		return s + ": " + e.Cause.Error()
	}
	return s
}

func (e *DecodeTypeError) Unwrap() error { return e.Cause }

// A ParseError describes a field value that could not be interpreted as the
// requested primitive.
type ParseError struct {
	Kind  string // "bool", "int", "uint", "float", or "char"
	Value string // the trimmed field contents
	Field Field
	Cause error
}

func (e *ParseError) Error() string {
	s := "fixedwidth: cannot parse " + strconv.Quote(e.Value) + " in field " + e.Field.Key() + " as " + e.Kind
	if e.Cause != nil {
		return s + ": " + e.Cause.Error()
	}
	return s
}

func (e *ParseError) Unwrap() error { return e.Cause }

// An InvalidEncodingError reports field bytes that are not valid UTF-8 where
// text was required.
type InvalidEncodingError struct {
	Field Field
}

func (e *InvalidEncodingError) Error() string {
	return "fixedwidth: field " + e.Field.Key() + " is not valid UTF-8"
}

// An UnsupportedTypeError reports a value shape the record model cannot
// represent, such as maps on the encoding side.
type UnsupportedTypeError struct {
	Type reflect.Type
	Op   string // "decode" or "encode"
}

func (e *UnsupportedTypeError) Error() string {
	if e.Type == nil {
		return "fixedwidth: cannot " + e.Op + " unknown type"
	}
	return "fixedwidth: cannot " + e.Op + " type " + e.Type.String()
}
