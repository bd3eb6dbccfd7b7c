package futures

import (
	"runtime"

	"go.uber.org/atomic"
)

// Promise is the producer-side endpoint of an operation state (C4).
// GetFuture may be called at most once; SetValue/SetError may each
// contribute the terminal result at most once, whichever comes first.
type Promise[T any] struct {
	st          *state[T]
	futureTaken atomic.Bool
	satisfied   atomic.Bool
}

// NewPromise constructs a pending operation state and a promise over it.
// The state is always continuable; pass OptStoppable to additionally attach
// a stop source reachable from the resulting future.
func NewPromise[T any](extra ...Options) *Promise[T] {
	o := OptContinuable
	for _, x := range extra {
		o = o.With(x)
	}
	p := &Promise[T]{st: newState[T](o)}
	runtime.SetFinalizer(p, finalizePromise[T])
	return p
}

// finalizePromise is the closest Go analogue to "the producer reference is
// dropped while still pending": if the promise becomes unreachable without
// ever being satisfied, any future still waiting on it observes
// ErrBrokenPromise rather than hanging forever.
func finalizePromise[T any](p *Promise[T]) {
	if !p.satisfied.Load() {
		p.st.markBrokenPromise()
	}
}

// GetFuture returns the one future tied to this promise. A second call
// fails with ErrFutureAlreadyRetrieved.
func (p *Promise[T]) GetFuture() (*Future[T], error) {
	if p == nil || p.st == nil {
		return nil, ErrPromiseUninitialized
	}
	if !p.futureTaken.CompareAndSwap(false, true) {
		return nil, ErrFutureAlreadyRetrieved
	}
	return newFuture(p.st), nil
}

// SetValue publishes v as the result. Fails with ErrPromiseAlreadySatisfied
// on a second call.
func (p *Promise[T]) SetValue(v T) error {
	if p == nil || p.st == nil {
		return ErrPromiseUninitialized
	}
	if !p.satisfied.CompareAndSwap(false, true) {
		return ErrPromiseAlreadySatisfied
	}
	return p.st.setValue(v)
}

// SetError publishes err as the result. Fails with
// ErrPromiseAlreadySatisfied on a second call.
func (p *Promise[T]) SetError(err error) error {
	if p == nil || p.st == nil {
		return ErrPromiseUninitialized
	}
	if !p.satisfied.CompareAndSwap(false, true) {
		return ErrPromiseAlreadySatisfied
	}
	return p.st.setError(err)
}

// StopToken exposes the promise-side stop token for a promise created with
// OptStoppable; returns nil otherwise.
func (p *Promise[T]) StopToken() *StopToken {
	if p == nil || p.st == nil || p.st.stopSource == nil {
		return nil
	}
	return p.st.stopSource.Token()
}
