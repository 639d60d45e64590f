package cv5

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/bodgit/tileset/errs"
	"github.com/stretchr/testify/require"
)

func group(header byte, refs ...uint16) []byte {
	b := bytes.Repeat([]byte{header}, headerSize)
	var w [GroupSize]uint16
	copy(w[:], refs)
	for _, v := range w {
		b = binary.LittleEndian.AppendUint16(b, v)
	}
	return b
}

func TestParse(t *testing.T) {
	b := append(group(0xff, 5), group(0xaa, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0x1234)...)
	require.Len(t, b, 2*format.Size)

	tbl, err := Parse(b)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	g, err := tbl.Group(0)
	require.NoError(t, err)
	require.Equal(t, Group{5}, g)

	r, err := tbl.Ref(1, 15)
	require.NoError(t, err)
	require.Equal(t, Ref(0x1234), r)

	r, err = tbl.Ref(1, 0)
	require.NoError(t, err)
	require.Equal(t, Ref(1), r)
}

func TestOutOfRange(t *testing.T) {
	tbl, err := Parse(group(0, 1))
	require.NoError(t, err)

	_, err = tbl.Group(1)
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	for _, j := range []int{-1, GroupSize} {
		_, err = tbl.Ref(0, j)
		require.ErrorIs(t, err, errs.ErrOutOfRange)
	}

	_, err = tbl.Ref(-1, 0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestParseLength(t *testing.T) {
	for n := 0; n <= 3; n++ {
		b := make([]byte, n*format.Size)

		tbl, err := Parse(b)
		require.NoError(t, err)
		require.Equal(t, n, tbl.Len())

		if n == 0 {
			continue
		}

		_, err = Parse(b[:len(b)-1])
		require.ErrorIs(t, err, errs.ErrTruncated)

		_, err = Parse(append(b, 0))
		require.ErrorIs(t, err, errs.ErrTrailingData)
	}

	// Header only
	_, err := Parse(make([]byte, headerSize))
	require.ErrorIs(t, err, errs.ErrTrailingData)
	require.NotErrorIs(t, err, errs.ErrTruncated)
}

func TestDecode(t *testing.T) {
	tbl, err := Decode(bytes.NewReader(group(0, 7)))
	require.NoError(t, err)

	r, err := tbl.Ref(0, 0)
	require.NoError(t, err)
	require.Equal(t, Ref(7), r)
}
