package fixedwidth

import "bytes"

// Pad formats value to exactly the width of f. Values longer than the field
// are truncated on the right regardless of justification. Shorter values are
// padded with the field's pad character: after the content when left
// justified, before it when right justified.
func Pad(value []byte, f Field) []byte {
	width := f.Width()
	if len(value) >= width {
		return append([]byte(nil), value[:width]...)
	}

	padding := bytes.Repeat([]byte{f.PadChar}, width-len(value))
	out := make([]byte, 0, width)
	if f.Justify == Right {
		out = append(out, padding...)
		out = append(out, value...)
	} else {
		out = append(out, value...)
		out = append(out, padding...)
	}
	return out
}
