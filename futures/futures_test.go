package futures_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sauravbiswasiupr/futures-core/futures"
)

func TestMultipleChainedFutures(t *testing.T) {
	t.Parallel()

	first := futures.Async(func() (string, error) {
		time.Sleep(10 * time.Millisecond)
		return "Start", nil
	})
	second := futures.Then(first, func(s string) (string, error) {
		return s + " -> Step 1", nil
	})
	third := futures.Then(second, func(s string) (string, error) {
		return s + " -> Step 2", nil
	})
	fourth := futures.Then(third, func(s string) (string, error) {
		return s + " -> Step 3", nil
	})

	result, err := fourth.Get()
	assert.NoError(t, err)
	assert.Equal(t, "Start -> Step 1 -> Step 2 -> Step 3", result)
}

func TestErrorPropagation(t *testing.T) {
	t.Parallel()

	expectedError := "intentional failure in first future"
	var called int

	first := futures.Async(func() (string, error) {
		return "", fmt.Errorf("%s", expectedError)
	})
	second := futures.Then(first, func(s string) (string, error) {
		called++
		t.Error("this continuation should not run")
		return "unreachable", nil
	})

	result, err := second.Get()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), expectedError)
	assert.Equal(t, "", result)
	assert.Equal(t, 0, called)
}

func TestThenFutureShapeSeesError(t *testing.T) {
	t.Parallel()

	first := futures.MakeExceptionalFuture[int](fmt.Errorf("boom"))
	second := futures.ThenFuture(first, func(f *futures.Future[int]) (int, error) {
		if _, err := f.Get(); err != nil {
			return -1, nil
		}
		return 0, nil
	})

	result, err := second.Get()
	assert.NoError(t, err)
	assert.Equal(t, -1, result)
}

func TestMakeReadyFutureRoundTrip(t *testing.T) {
	t.Parallel()

	v, err := futures.MakeReadyFuture(42).Get()
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSharedFutureAllowsRepeatedGet(t *testing.T) {
	t.Parallel()

	shared := futures.Async(func() (int, error) { return 7, nil }).Share()

	v1, err1 := shared.Get()
	v2, err2 := shared.Get()
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, 7, v1)
	assert.Equal(t, 7, v2)
}

func TestUniqueFutureSecondGetFails(t *testing.T) {
	t.Parallel()

	f := futures.MakeReadyFuture(1)
	_, err := f.Get()
	assert.NoError(t, err)

	_, err = f.Get()
	assert.ErrorIs(t, err, futures.ErrFutureAlreadyRetrieved)
}

func TestWaitForTimeoutOnPendingFuture(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	f := futures.Async(func() (int, error) {
		<-gate
		return 1, nil
	})
	defer close(gate)

	status, err := f.WaitFor(10 * time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, futures.StatusTimeout, status)
}

func TestScheduleIsDeferredUntilWait(t *testing.T) {
	t.Parallel()

	var runs int
	f := futures.Schedule(func() (int, error) {
		runs++
		return 5, nil
	})

	status, err := f.WaitFor(0)
	assert.NoError(t, err)
	assert.Equal(t, futures.StatusDeferred, status)
	assert.Equal(t, 0, runs)

	v, err := f.Get()
	assert.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.Equal(t, 1, runs)
}

func TestThenOnDeferredAntecedentRunsOnGet(t *testing.T) {
	t.Parallel()

	var runs int
	antecedent := futures.Schedule(func() (int, error) {
		runs++
		return 5, nil
	})
	successor := futures.Then(antecedent, func(n int) (int, error) {
		return n * 2, nil
	})

	v, err := successor.Get()
	assert.NoError(t, err)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, runs)
}

func TestDeferredRunsExactlyOnceUnderConcurrentWaiters(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var runs int
	f := futures.Schedule(func() (int, error) {
		mu.Lock()
		runs++
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		return 9, nil
	}).Share()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.Get()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, runs)
}
