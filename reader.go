package fixedwidth

import (
	"bufio"
	"io"
	"reflect"

	"github.com/pkg/errors"
)

const readerBufferSize = 8 << 10

// A Reader reads fixed-size records from a byte stream. It frames the stream
// into width-sized slices and optionally skips a line break between records;
// it never interprets the bytes themselves.
type Reader struct {
	r         *bufio.Reader
	linebreak LineBreak
	buf       []byte
	lbBuf     []byte
}

// NewReader returns a Reader that frames r into records of width bytes.
func NewReader(r io.Reader, width int) *Reader {
	return &Reader{
		r:   bufio.NewReaderSize(r, readerBufferSize),
		buf: make([]byte, width),
	}
}

// SetLineBreak configures the separator skipped after each record.
func (r *Reader) SetLineBreak(lb LineBreak) {
	r.linebreak = lb
	r.lbBuf = make([]byte, lb.ByteWidth())
}

// Next returns the bytes of the next record. The returned slice is only
// valid until the following call to Next. A clean end of input is io.EOF; a
// truncated trailing record is an error wrapping ErrUnexpectedEndOfRecord.
func (r *Reader) Next() ([]byte, error) {
	n, err := io.ReadFull(r.r, r.buf)
	switch err {
	case nil:
	case io.EOF:
		return nil, io.EOF
	case io.ErrUnexpectedEOF:
		return nil, errors.Wrapf(ErrUnexpectedEndOfRecord, "%d trailing bytes", n)
	default:
		return nil, errors.Wrap(err, "fixedwidth: read record")
	}

	// Skip the separator. End of input directly after a record is fine; the
	// final record need not be terminated.
	if len(r.lbBuf) > 0 {
		if _, err := io.ReadFull(r.r, r.lbBuf); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, errors.Wrap(err, "fixedwidth: skip line break")
		}
	}
	return r.buf, nil
}

// ReadAll returns the remaining records as owned byte slices.
func (r *Reader) ReadAll() ([][]byte, error) {
	var records [][]byte
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, append([]byte(nil), rec...))
	}
}

// DecodeAll reads records until end of input, decoding each with dec and
// appending the results to the slice pointed to by v.
func (r *Reader) DecodeAll(dec *Decoder, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return &InvalidDecodeError{reflect.TypeOf(v)}
	}
	sv := rv.Elem()
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		ev := reflect.New(sv.Type().Elem())
		if err := dec.Decode(rec, ev.Interface()); err != nil {
			return err
		}
		sv.Set(reflect.Append(sv, ev.Elem()))
	}
}
