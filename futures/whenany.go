package futures

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// WhenAnyResult is the terminal value of a WhenAny aggregate: which input
// completed first, and all inputs (all still observable; WhenAny never
// cancels the losers).
type WhenAnyResult struct {
	Index int
	Tasks []AnyFuture
}

// WhenAny combines heterogeneous futures into one continuable future whose
// value reports which input completed first. Publication is write-once: if
// several inputs race, the first one this process observes wins;
// simultaneous-completion ordering is intentionally left unspecified.
func WhenAny(inputs ...AnyFuture) *Future[WhenAnyResult] {
	succ := newState[WhenAnyResult](OptContinuable)
	if len(inputs) == 0 {
		_ = succ.setValue(WhenAnyResult{Index: -1})
		return newFuture(succ)
	}

	tasks := append([]AnyFuture(nil), inputs...)
	var once sync.Once
	report := func(idx int) {
		once.Do(func() {
			_ = succ.setValue(WhenAnyResult{Index: idx, Tasks: tasks})
		})
	}

	var polled []int
	for i, in := range inputs {
		i := i
		if cr, ok := in.(continuationRegistrar); ok {
			cr.onTerminal(func() { report(i) })
		} else {
			polled = append(polled, i)
		}
	}
	if len(polled) > 0 {
		go func() {
			g := new(errgroup.Group)
			for _, idx := range polled {
				idx := idx
				g.Go(func() error {
					_ = inputs[idx].Wait()
					report(idx)
					return nil
				})
			}
			_ = g.Wait()
		}()
	}
	return newFuture(succ)
}

// WhenAnySliceResult is the typed counterpart of WhenAnyResult for
// WhenAnySlice, where every input shares type T.
type WhenAnySliceResult[T any] struct {
	Index int
	Tasks []*Future[T]
}

// WhenAnySlice is the homogeneous-sequence counterpart of WhenAny.
func WhenAnySlice[T any](inputs ...*Future[T]) *Future[WhenAnySliceResult[T]] {
	succ := newState[WhenAnySliceResult[T]](OptContinuable)
	if len(inputs) == 0 {
		_ = succ.setValue(WhenAnySliceResult[T]{Index: -1})
		return newFuture(succ)
	}

	tasks := append([]*Future[T](nil), inputs...)
	var once sync.Once
	report := func(idx int) {
		once.Do(func() {
			_ = succ.setValue(WhenAnySliceResult[T]{Index: idx, Tasks: tasks})
		})
	}
	for i, in := range inputs {
		i := i
		in.onTerminal(func() { report(i) })
	}
	return newFuture(succ)
}

// ThenAny continues a WhenAny aggregate with the whole result (unwrapping
// shape A).
func ThenAny[R any](agg *Future[WhenAnyResult], fn func(WhenAnyResult) (R, error), opts ...ThenOption) *Future[R] {
	return Then(agg, fn, opts...)
}

// ThenAnySplit continues a WhenAny aggregate with the index and the slice
// of all inputs split apart (unwrapping shapes B/C collapsed, for the same
// reason ThenAllTuple collapses A/B: no variadic heterogeneous positional
// args in Go).
func ThenAnySplit[R any](agg *Future[WhenAnyResult], fn func(index int, tasks []AnyFuture) (R, error), opts ...ThenOption) *Future[R] {
	wrapper := func(res WhenAnyResult) (R, error) { return fn(res.Index, res.Tasks) }
	return Then(agg, wrapper, opts...)
}

// ThenAnyWinner continues a homogeneous WhenAnySlice aggregate with just
// the winning future (unwrapping shape D; requires all inputs share type T,
// enforced here by Go's type system rather than a runtime check).
func ThenAnyWinner[T, R any](agg *Future[WhenAnySliceResult[T]], fn func(*Future[T]) (R, error), opts ...ThenOption) *Future[R] {
	wrapper := func(res WhenAnySliceResult[T]) (R, error) {
		return fn(res.Tasks[res.Index])
	}
	return Then(agg, wrapper, opts...)
}

// ThenAnyValue continues a homogeneous WhenAnySlice aggregate with just the
// winning value (unwrapping shape E). Errors auto-propagate from the
// winner only; the losers are left untouched.
func ThenAnyValue[T, R any](agg *Future[WhenAnySliceResult[T]], fn func(T) (R, error), opts ...ThenOption) *Future[R] {
	wrapper := func(res WhenAnySliceResult[T]) (R, error) {
		v, err := res.Tasks[res.Index].Get()
		if err != nil {
			return zeroOf[R](), err
		}
		return fn(v)
	}
	return Then(agg, wrapper, opts...)
}
