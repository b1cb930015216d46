package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingScan(n int) *CooperativeScan {
	i := 0
	return NewCooperativeScan(func(ctx context.Context) (Batch, bool, error) {
		if i >= n {
			return Batch{}, false, nil
		}
		i++
		return Batch{Columns: i}, true, nil
	})
}

func TestDrainVisitsEveryBatch(t *testing.T) {
	var got []int
	err := Drain(context.Background(), countingScan(3), func(b Batch) error {
		got = append(got, b.Columns)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestDrainStopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Drain(context.Background(), countingScan(5), func(b Batch) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestCooperativeScanRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := countingScan(1).Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFanOutRunsAllScansAndCancelsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	scans := []*CooperativeScan{countingScan(3), countingScan(3)}
	var total int
	err := FanOut(context.Background(), scans, func(idx int, b Batch) error {
		total++
		if idx == 1 && b.Columns == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
