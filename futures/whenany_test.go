package futures_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sauravbiswasiupr/futures-core/futures"
)

func TestWhenAnySliceReportsWinnerValue(t *testing.T) {
	t.Parallel()

	ten := futures.Async(func() (int, error) {
		time.Sleep(5 * time.Millisecond)
		return 10, nil
	})
	eleven := futures.Async(func() (int, error) {
		time.Sleep(5 * time.Millisecond)
		return 11, nil
	})

	agg := futures.WhenAnySlice(ten, eleven)
	result, err := agg.Get()
	assert.NoError(t, err)

	winner, err := result.Tasks[result.Index].Get()
	assert.NoError(t, err)
	assert.Contains(t, []int{10, 11}, winner)
}

func TestWhenAnySingleInputIsDeterministicWinner(t *testing.T) {
	t.Parallel()

	only := futures.MakeReadyFuture(5)
	agg := futures.WhenAnySlice(only)

	result, err := agg.Get()
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Index)

	v, err := result.Tasks[0].Get()
	assert.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestThenAnyValuePropagatesWinnerErrorOnly(t *testing.T) {
	t.Parallel()

	winner := futures.MakeExceptionalFuture[int](assert.AnError)
	loser := futures.Async(func() (int, error) {
		time.Sleep(50 * time.Millisecond)
		return 1, nil
	})

	agg := futures.WhenAnySlice(winner, loser)
	result := futures.ThenAnyValue(agg, func(v int) (int, error) {
		t.Error("fn should not run when the winner errored")
		return v, nil
	})

	_, err := result.Get()
	assert.ErrorIs(t, err, assert.AnError)
}
