package futures_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sauravbiswasiupr/futures-core/futures"
)

func TestWhenAllSliceMultipliesThreeResults(t *testing.T) {
	t.Parallel()

	a := futures.Async(func() (int, error) { return 6, nil })
	b := futures.Async(func() (int, error) { return 7, nil })
	c := futures.Async(func() (int, error) { return 8, nil })

	product := futures.ThenAllSliceValues(
		futures.WhenAllSlice(a, b, c),
		func(values []int) (int, error) {
			return values[0] * values[1] * values[2], nil
		},
	)

	v, err := product.Get()
	assert.NoError(t, err)
	assert.Equal(t, 336, v)
}

func TestWhenAllValuesPropagatesLeftmostError(t *testing.T) {
	t.Parallel()

	ok1 := futures.Async(func() (int, error) { return 1, nil })
	failing := futures.MakeExceptionalFuture[int](assert.AnError)
	ok2 := futures.Async(func() (int, error) { return 2, nil })

	agg := futures.WhenAll(asAnyFuture(ok1), asAnyFuture(failing), asAnyFuture(ok2))
	called := false
	result := futures.ThenAllValues(agg, func(values []any) (int, error) {
		called = true
		return 0, nil
	})

	_, err := result.Get()
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, called)
}

func TestWhenAllCompletionRequiresEveryInput(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	slow := futures.Async(func() (int, error) {
		<-gate
		return 1, nil
	})
	fast := futures.MakeReadyFuture(2)

	agg := futures.WhenAllSlice(slow, fast)
	status, err := agg.WaitFor(0)
	assert.NoError(t, err)
	assert.Equal(t, futures.StatusTimeout, status)

	close(gate)
	tasks, err := agg.Get()
	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func asAnyFuture[T any](f *futures.Future[T]) futures.AnyFuture { return f }
