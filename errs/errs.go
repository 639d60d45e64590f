/*
Package errs defines the errors returned when decoding tileset files and when
resolving megatile coordinates against decoded tables.
*/
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is matched when a buffer ends in the middle of a record.
	ErrTruncated = errors.New("truncated input")
	// ErrTrailingData is matched when bytes remain after the last complete
	// record.
	ErrTrailingData = errors.New("trailing data")
	// ErrOutOfRange is matched when an index read from one table does not
	// exist in the table it refers to.
	ErrOutOfRange = errors.New("index out of range")
)

// DecodeError records a failure to decode a tileset file.
type DecodeError struct {
	Format    string // "cv5", "vx4", etc.
	Offset    int    // byte offset of the record that could not be decoded
	Record    string // description of the expected record
	Remaining int    // number of bytes left over from Offset onwards
	Size      int    // size of one record in bytes
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %d bytes at offset %d do not form a complete %s", e.Format, e.Remaining, e.Offset, e.Record)
}

// Unwrap always reports ErrTrailingData. A remainder exactly one byte short
// of a whole record also reports ErrTruncated, as the last record has most
// likely been cut short.
func (e *DecodeError) Unwrap() []error {
	if e.Remaining == e.Size-1 {
		return []error{ErrTruncated, ErrTrailingData}
	}
	return []error{ErrTrailingData}
}

// RangeError records an index that is not valid for a table.
type RangeError struct {
	Table string
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Table, e.Index, e.Len)
}

// Unwrap returns ErrOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// CheckIndex returns a *RangeError if i is not in [0,n).
func CheckIndex(table string, i, n int) error {
	if i < 0 || i >= n {
		return &RangeError{Table: table, Index: i, Len: n}
	}
	return nil
}
