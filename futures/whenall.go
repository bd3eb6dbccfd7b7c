package futures

import (
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// WhenAll combines heterogeneous futures into one continuable future whose
// value is the slice of the original futures (already terminal), in input
// order. Inputs that are our own Future/SharedFuture handles join via a
// continuation counter; any other AnyFuture implementation joins via an
// errgroup-driven polling goroutine instead, a slower but always-correct
// fallback for inputs that cannot register continuations.
func WhenAll(inputs ...AnyFuture) *Future[[]AnyFuture] {
	succ := newState[[]AnyFuture](OptContinuable)
	if len(inputs) == 0 {
		_ = succ.setValue(nil)
		return newFuture(succ)
	}

	remaining := atomic.NewInt32(int32(len(inputs)))
	var once sync.Once
	finish := func() {
		once.Do(func() {
			_ = succ.setValue(append([]AnyFuture(nil), inputs...))
		})
	}

	var polled []AnyFuture
	for _, in := range inputs {
		if cr, ok := in.(continuationRegistrar); ok {
			cr.onTerminal(func() {
				if remaining.Dec() == 0 {
					finish()
				}
			})
		} else {
			polled = append(polled, in)
		}
	}

	if len(polled) > 0 {
		go func() {
			g := new(errgroup.Group)
			for _, in := range polled {
				in := in
				g.Go(func() error {
					_ = in.Wait()
					if remaining.Dec() == 0 {
						finish()
					}
					return nil
				})
			}
			_ = g.Wait()
		}()
	}

	return newFuture(succ)
}

// WhenAllSlice is the homogeneous-sequence counterpart of WhenAll: all
// inputs share type T, so the result is a typed []*Future[T] rather than
// []AnyFuture.
func WhenAllSlice[T any](inputs ...*Future[T]) *Future[[]*Future[T]] {
	succ := newState[[]*Future[T]](OptContinuable)
	if len(inputs) == 0 {
		_ = succ.setValue(nil)
		return newFuture(succ)
	}

	remaining := atomic.NewInt32(int32(len(inputs)))
	var once sync.Once
	finish := func() {
		once.Do(func() {
			_ = succ.setValue(append([]*Future[T](nil), inputs...))
		})
	}
	for _, in := range inputs {
		in.onTerminal(func() {
			if remaining.Dec() == 0 {
				finish()
			}
		})
	}
	return newFuture(succ)
}

// ThenAllTuple continues a WhenAll aggregate with the whole slice of
// original futures (unwrapping shape A/B collapsed: Go has neither
// variadic heterogeneous tuples nor positional unpacking of a dynamic
// argument count, so the single []AnyFuture form serves both).
func ThenAllTuple[R any](agg *Future[[]AnyFuture], fn func([]AnyFuture) (R, error), opts ...ThenOption) *Future[R] {
	return Then(agg, fn, opts...)
}

// ThenAllValues continues a WhenAll aggregate with the positional values of
// each input (unwrapping shape C). If any input holds an error, fn is not
// called and the successor carries the leftmost (lowest-index) error.
func ThenAllValues[R any](agg *Future[[]AnyFuture], fn func([]any) (R, error), opts ...ThenOption) *Future[R] {
	wrapper := func(tasks []AnyFuture) (R, error) {
		values := make([]any, len(tasks))
		var firstErr error
		for i, t := range tasks {
			v, err := t.GetAny()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			values[i] = v
		}
		if firstErr != nil {
			return zeroOf[R](), firstErr
		}
		return fn(values)
	}
	return Then(agg, wrapper, opts...)
}

// ThenAllSliceValues is ThenAllValues for a WhenAllSlice aggregate, typed
// end to end.
func ThenAllSliceValues[T, R any](agg *Future[[]*Future[T]], fn func([]T) (R, error), opts ...ThenOption) *Future[R] {
	wrapper := func(tasks []*Future[T]) (R, error) {
		values := make([]T, len(tasks))
		var firstErr error
		for i, t := range tasks {
			v, err := t.Get()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			values[i] = v
		}
		if firstErr != nil {
			return zeroOf[R](), firstErr
		}
		return fn(values)
	}
	return Then(agg, wrapper, opts...)
}
