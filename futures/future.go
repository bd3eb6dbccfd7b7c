package futures

import "time"

// Future is a typed, move-only handle onto an operation state (C3). Get
// consumes validity: afterwards the handle is empty and a second Get fails
// with ErrFutureAlreadyRetrieved. Call Share to obtain a cloneable
// SharedFuture instead.
type Future[T any] struct {
	st        *state[T]
	retrieved bool
}

func newFuture[T any](st *state[T]) *Future[T] {
	return &Future[T]{st: st}
}

func erroredFuture[T any](err error) *Future[T] {
	return newFuture(erroredState[T](OptContinuable, err))
}

// Valid reports whether the handle still references a state.
func (f *Future[T]) Valid() bool {
	return f != nil && f.st != nil
}

// Options reports the capability set of the underlying state.
func (f *Future[T]) Options() Options {
	if !f.Valid() {
		return 0
	}
	return f.st.opts
}

func (f *Future[T]) ref() *state[T] { return f.st }
func (f *Future[T]) release()       { f.st = nil }

// onTerminal registers fn to run (possibly immediately) when the state
// becomes terminal. Used internally by WhenAll/WhenAny to join on futures
// without unwrapping their value type. Exported handles that cannot satisfy
// continuationRegistrar fall back to a polling join instead.
func (f *Future[T]) onTerminal(fn func()) {
	if f.st != nil {
		f.st.appendContinuation(fn)
	}
}

// Wait blocks until the future is terminal, running a deferred task inline
// first if necessary.
func (f *Future[T]) Wait() error {
	if !f.Valid() {
		return ErrNoState
	}
	f.st.wait()
	return nil
}

// WaitFor blocks for at most d.
func (f *Future[T]) WaitFor(d time.Duration) (WaitStatus, error) {
	if !f.Valid() {
		return StatusTimeout, ErrNoState
	}
	return f.st.waitFor(d), nil
}

// WaitUntil blocks until deadline t.
func (f *Future[T]) WaitUntil(t time.Time) (WaitStatus, error) {
	if !f.Valid() {
		return StatusTimeout, ErrNoState
	}
	return f.st.waitUntil(t), nil
}

// IsReady is a non-blocking observation of terminal status.
func (f *Future[T]) IsReady() bool {
	return f.Valid() && f.st.isReady()
}

// Get waits for and extracts the result, consuming the handle's validity.
func (f *Future[T]) Get() (T, error) {
	if f.retrieved {
		return zeroOf[T](), ErrFutureAlreadyRetrieved
	}
	if !f.Valid() {
		return zeroOf[T](), ErrFutureUninitialized
	}
	st := f.st
	f.st = nil
	f.retrieved = true
	return st.getValue()
}

// GetAny is Get with the result boxed as any, satisfying AnyFuture for use
// in heterogeneous WhenAll/WhenAny aggregates.
func (f *Future[T]) GetAny() (any, error) {
	return f.Get()
}

// Share converts a unique future into a shared one; the receiver becomes
// invalid and must not be used afterwards.
func (f *Future[T]) Share() *SharedFuture[T] {
	if !f.Valid() {
		return &SharedFuture[T]{}
	}
	st := f.st
	st.opts = st.opts.With(OptShared)
	f.st = nil
	return &SharedFuture[T]{st: st}
}

// RequestStop is a no-op, returning false, unless the future is stoppable.
func (f *Future[T]) RequestStop() bool {
	if !f.Valid() || f.st.stopSource == nil {
		return false
	}
	return f.st.stopSource.RequestStop()
}

// StopToken returns nil unless the future is stoppable.
func (f *Future[T]) StopToken() *StopToken {
	if !f.Valid() || f.st.stopSource == nil {
		return nil
	}
	return f.st.stopSource.Token()
}

// SharedFuture is a cloneable handle onto an operation state. Unlike
// Future, Get is non-destructive and may be called any number of times,
// from any number of holders.
type SharedFuture[T any] struct {
	st *state[T]
}

// Valid reports whether the handle still references a state.
func (f *SharedFuture[T]) Valid() bool { return f != nil && f.st != nil }

func (f *SharedFuture[T]) ref() *state[T] { return f.st }
func (f *SharedFuture[T]) release()       {} // copying, never invalidates

func (f *SharedFuture[T]) onTerminal(fn func()) {
	if f.st != nil {
		f.st.appendContinuation(fn)
	}
}

// Clone returns another handle onto the same state.
func (f *SharedFuture[T]) Clone() *SharedFuture[T] {
	if !f.Valid() {
		return &SharedFuture[T]{}
	}
	return &SharedFuture[T]{st: f.st}
}

// Options reports the capability set of the underlying state.
func (f *SharedFuture[T]) Options() Options {
	if !f.Valid() {
		return 0
	}
	return f.st.opts
}

func (f *SharedFuture[T]) Wait() error {
	if !f.Valid() {
		return ErrNoState
	}
	f.st.wait()
	return nil
}

func (f *SharedFuture[T]) WaitFor(d time.Duration) (WaitStatus, error) {
	if !f.Valid() {
		return StatusTimeout, ErrNoState
	}
	return f.st.waitFor(d), nil
}

func (f *SharedFuture[T]) WaitUntil(t time.Time) (WaitStatus, error) {
	if !f.Valid() {
		return StatusTimeout, ErrNoState
	}
	return f.st.waitUntil(t), nil
}

func (f *SharedFuture[T]) IsReady() bool {
	return f.Valid() && f.st.isReady()
}

// Get waits for and returns the result without consuming validity.
func (f *SharedFuture[T]) Get() (T, error) {
	if !f.Valid() {
		return zeroOf[T](), ErrFutureUninitialized
	}
	return f.st.getValue()
}

func (f *SharedFuture[T]) GetAny() (any, error) {
	return f.Get()
}

func (f *SharedFuture[T]) RequestStop() bool {
	if !f.Valid() || f.st.stopSource == nil {
		return false
	}
	return f.st.stopSource.RequestStop()
}

func (f *SharedFuture[T]) StopToken() *StopToken {
	if !f.Valid() || f.st.stopSource == nil {
		return nil
	}
	return f.st.stopSource.Token()
}

// stateHolder is implemented by *Future[T] and *SharedFuture[T]. Because its
// method names are unexported, no type outside this package can satisfy it,
// which lets Then/WhenAll distinguish "one of our own handles" (eligible for
// continuation-list registration) from a foreign Waitable (eligible only
// for the polling join fallback used for non-continuable inputs).
type stateHolder[T any] interface {
	ref() *state[T]
	release()
}

// Waitable is the minimal surface any future-like type must expose to
// interoperate with IsReady and the polling join path of WhenAll/WhenAny.
type Waitable interface {
	Wait() error
	WaitFor(d time.Duration) (WaitStatus, error)
	WaitUntil(t time.Time) (WaitStatus, error)
	IsReady() bool
}

// AnyFuture is a Waitable that can additionally surface its result boxed as
// any, for use in heterogeneous WhenAll/WhenAny aggregates.
type AnyFuture interface {
	Waitable
	GetAny() (any, error)
}

// continuationRegistrar is implemented by *Future[T] and *SharedFuture[T]
// for any T; see the comment on stateHolder for why foreign types cannot
// satisfy it.
type continuationRegistrar interface {
	onTerminal(fn func())
}
