package fixedwidth

import (
	"bufio"
	"io"
	"reflect"

	"github.com/pkg/errors"
)

const writerBufferSize = 64 << 10

// A Writer writes fixed-size records to a byte stream, inserting the
// configured line break between records (never after the last one).
type Writer struct {
	w         *bufio.Writer
	linebreak LineBreak
	wrote     bool
}

// NewWriter returns a Writer that writes records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, writerBufferSize)}
}

// SetLineBreak configures the separator inserted between records.
func (w *Writer) SetLineBreak(lb LineBreak) {
	w.linebreak = lb
}

// WriteRecord writes one record verbatim.
func (w *Writer) WriteRecord(rec []byte) error {
	if err := w.separate(); err != nil {
		return err
	}
	if _, err := w.w.Write(rec); err != nil {
		return errors.Wrap(err, "fixedwidth: write record")
	}
	return nil
}

// EncodeAll encodes every element of the given slice or array as one record
// using the layout, separated by the configured line break.
func (w *Writer) EncodeAll(fields *FieldSet, records interface{}) error {
	rv := reflect.ValueOf(records)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return &UnsupportedTypeError{Type: reflect.TypeOf(records), Op: "encode"}
	}

	enc := NewEncoder(w.w, fields)
	for i := 0; i < rv.Len(); i++ {
		if err := w.separate(); err != nil {
			return err
		}
		if err := enc.Encode(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) separate() error {
	if w.wrote {
		if _, err := w.w.Write(w.linebreak.Bytes()); err != nil {
			return errors.Wrap(err, "fixedwidth: write line break")
		}
	}
	w.wrote = true
	return nil
}
