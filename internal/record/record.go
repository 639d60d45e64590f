/*
Package record splits a tileset file into the fixed-size records it is made
of. None of the formats carry a header or a record count so the only
structural check possible is that the buffer is consumed exactly by whole
records.
*/
package record

import (
	"encoding/binary"
	"io"

	"github.com/bodgit/tileset/errs"
)

// Format describes the fixed record layout of a file.
type Format struct {
	Name   string // used as the error prefix
	Record string // description of one record, used in errors
	Size   int    // bytes per record
}

// Decode splits b into records and converts each one with fn. If b is not
// an exact multiple of the record size nothing is converted and a
// *errs.DecodeError is returned.
func Decode[T any](f Format, b []byte, fn func([]byte) T) ([]T, error) {
	n := len(b) / f.Size
	if rem := len(b) - n*f.Size; rem != 0 {
		return nil, &errs.DecodeError{
			Format:    f.Name,
			Offset:    n * f.Size,
			Record:    f.Record,
			Remaining: rem,
			Size:      f.Size,
		}
	}

	out := make([]T, n)
	for i := range out {
		out[i] = fn(b[i*f.Size : (i+1)*f.Size])
	}
	return out, nil
}

// ReadAll reads r until EOF and decodes the result.
func ReadAll[T any](f Format, r io.Reader, fn func([]byte) T) ([]T, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(f, b, fn)
}

// Uint16s fills dst with consecutive little-endian words from b.
func Uint16s(dst []uint16, b []byte) {
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint16(b[i<<1:])
	}
}
