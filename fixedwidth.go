// Package fixedwidth converts between flat fixed-width byte records and
// structured Go values. Records carry no delimiters and no schema; a
// caller-supplied FieldSet describes the byte range, padding, and
// justification of every field, and the Decoder and Encoder walk that
// layout positionally to reconstruct or render values.
package fixedwidth

// Char is a single-character field value. A blank field decodes to a space
// rather than failing, and trimmed values longer than one byte are rejected.
type Char rune

// VariantMarshaler is the interface implemented by values that are exactly
// one of several named alternatives.
//
// MarshalVariant reports the name of the selected variant and, optionally, a
// payload carried by it. The encoder writes the name as a string into the
// next field; a non-nil payload is then encoded against the following
// fields.
type VariantMarshaler interface {
	MarshalVariant() (name string, payload interface{}, err error)
}

// VariantUnmarshaler is the interface implemented by values that select one
// of several named alternatives during decoding.
//
// The decoder resolves the variant from the declared name of the next field
// in the layout, not from the record bytes; an unnamed field cannot select a
// variant and is an error. UnmarshalVariant should reject names outside the
// known set. Variants carrying a payload cannot be decoded: the layout has
// no way to express where a payload ends, so only the bare selection is
// supported.
type VariantUnmarshaler interface {
	UnmarshalVariant(name string) error
}
