package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	in := make([]int, 1000)
	for i := range in {
		in[i] = i
	}

	for _, workers := range []int{0, 1, 4, 32} {
		out, err := Map(context.Background(), in, workers, func(i int) (int, error) {
			return i * 2, nil
		})
		require.NoError(t, err)
		require.Len(t, out, len(in))
		for i, v := range out {
			require.Equal(t, i*2, v)
		}
	}
}

func TestMapEmpty(t *testing.T) {
	out, err := Map(context.Background(), []int{}, 4, func(i int) (int, error) {
		return i, nil
	})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMapError(t *testing.T) {
	errBad := errors.New("bad")
	in := make([]int, 100)
	for i := range in {
		in[i] = i
	}

	out, err := Map(context.Background(), in, 4, func(i int) (int, error) {
		if i == 50 {
			return 0, errBad
		}
		return i, nil
	})
	require.ErrorIs(t, err, errBad)
	require.Nil(t, out)
}

func TestMapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Map(ctx, make([]int, 100), 1, func(i int) (int, error) {
		return i, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMapStopsAfterError(t *testing.T) {
	errBad := errors.New("bad")
	in := make([]int, 1000)

	var calls atomic.Int32
	_, err := Map(context.Background(), in, 1, func(int) (int, error) {
		calls.Add(1)
		return 0, errBad
	})
	require.ErrorIs(t, err, errBad)
	require.NotErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(1), calls.Load())

	calls.Store(0)
	_, err = Map(context.Background(), in, 4, func(int) (int, error) {
		calls.Add(1)
		return 0, errBad
	})
	require.ErrorIs(t, err, errBad)
	require.LessOrEqual(t, calls.Load(), int32(4))
}
