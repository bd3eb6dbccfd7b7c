package futures_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sauravbiswasiupr/futures-core/futures"
)

func TestStopSourceRequestStopIsIdempotent(t *testing.T) {
	t.Parallel()

	src := futures.NewStopSource()
	assert.True(t, src.RequestStop())
	assert.False(t, src.RequestStop())
	assert.True(t, src.StopRequested())
}

func TestStopTokenCallbackRunsOnce(t *testing.T) {
	t.Parallel()

	src := futures.NewStopSource()
	tok := src.Token()

	var runs int
	tok.RegisterCallback(func() { runs++ })
	src.RequestStop()
	src.RequestStop()

	assert.Equal(t, 1, runs)
}

func TestStopTokenCallbackRegisteredAfterStopRunsImmediately(t *testing.T) {
	t.Parallel()

	src := futures.NewStopSource()
	src.RequestStop()

	var runs int
	src.Token().RegisterCallback(func() { runs++ })
	assert.Equal(t, 1, runs)
}

func TestStopCallbackDeregisterPreventsRun(t *testing.T) {
	t.Parallel()

	src := futures.NewStopSource()
	var runs int
	cb := src.Token().RegisterCallback(func() { runs++ })
	cb.Deregister()
	src.RequestStop()

	assert.Equal(t, 0, runs)
}

func TestCooperativeCancellationUnblocksBoundedly(t *testing.T) {
	t.Parallel()

	var iterations int
	f := futures.AsyncStoppable(func(tok *futures.StopToken) (int, error) {
		for !tok.StopRequested() {
			iterations++
			time.Sleep(time.Millisecond)
		}
		return iterations, nil
	})

	time.Sleep(5 * time.Millisecond)
	f.RequestStop()

	status, err := f.WaitFor(time.Second)
	assert.NoError(t, err)
	assert.Equal(t, futures.StatusReady, status)

	v, err := f.Get()
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, v, 1)
}
