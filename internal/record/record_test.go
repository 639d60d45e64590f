package record

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bodgit/tileset/errs"
	"github.com/stretchr/testify/require"
)

var pairs = Format{Name: "test", Record: "2-byte pair", Size: 2}

func sum(b []byte) int {
	return int(b[0]) + int(b[1])
}

func TestDecode(t *testing.T) {
	t.Run("Exact", func(t *testing.T) {
		out, err := Decode(pairs, []byte{1, 2, 3, 4, 5, 6}, sum)
		require.NoError(t, err)
		require.Equal(t, []int{3, 7, 11}, out)
	})

	t.Run("Empty", func(t *testing.T) {
		out, err := Decode(pairs, nil, sum)
		require.NoError(t, err)
		require.Empty(t, out)
	})

	t.Run("Partial", func(t *testing.T) {
		out, err := Decode(pairs, []byte{1, 2, 3}, sum)
		require.Nil(t, out)
		require.ErrorIs(t, err, errs.ErrTruncated)
		require.ErrorIs(t, err, errs.ErrTrailingData)

		var de *errs.DecodeError
		require.True(t, errors.As(err, &de))
		require.Equal(t, 2, de.Offset)
		require.Equal(t, 1, de.Remaining)
		require.Equal(t, 2, de.Size)
		require.Equal(t, "test: 1 bytes at offset 2 do not form a complete 2-byte pair", de.Error())
	})

	t.Run("Leftover", func(t *testing.T) {
		quads := Format{Name: "test", Record: "4-byte quad", Size: 4}

		tests := []struct {
			name      string
			n         int
			truncated bool
		}{
			{"OneByte", 5, false},
			{"TwoBytes", 6, false},
			{"OneShort", 7, true},
			{"OneShortAfterTwo", 11, true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Decode(quads, make([]byte, tt.n), func(b []byte) byte { return b[0] })
				require.ErrorIs(t, err, errs.ErrTrailingData)
				if tt.truncated {
					require.ErrorIs(t, err, errs.ErrTruncated)
				} else {
					require.NotErrorIs(t, err, errs.ErrTruncated)
				}
			})
		}
	})
}

func TestReadAll(t *testing.T) {
	out, err := ReadAll(pairs, bytes.NewReader([]byte{0, 1, 0, 2}), sum)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, out)
}

func TestUint16s(t *testing.T) {
	dst := make([]uint16, 2)
	Uint16s(dst, []byte{0x34, 0x12, 0xff, 0x00})
	require.Equal(t, []uint16{0x1234, 0x00ff}, dst)
}
