package futures

// MakeReadyFuture builds a future whose state is already terminal with
// value v. MakeReadyFuture(v).Get() == v always.
func MakeReadyFuture[T any](v T) *Future[T] {
	st := newState[T](OptContinuable)
	_ = st.setValue(v)
	return newFuture(st)
}

// MakeExceptionalFuture builds a future whose state is already terminal
// with err.
func MakeExceptionalFuture[T any](err error) *Future[T] {
	return erroredFuture[T](err)
}

// AsyncOption configures Async/AsyncStoppable.
type AsyncOption func(*asyncConfig)

type asyncConfig struct {
	executor Executor
}

// WithAsyncExecutor submits the task to ex instead of DefaultExecutor.
func WithAsyncExecutor(ex Executor) AsyncOption {
	return func(c *asyncConfig) { c.executor = ex }
}

func buildAsyncConfig(opts []AsyncOption) *asyncConfig {
	c := &asyncConfig{}
	for _, o := range opts {
		o(c)
	}
	if c.executor == nil {
		c.executor = DefaultExecutor()
	}
	return c
}

// Async submits fn to an executor immediately and returns a continuable,
// executor-bound future over its eventual result.
func Async[T any](fn func() (T, error), opts ...AsyncOption) *Future[T] {
	cfg := buildAsyncConfig(opts)
	st := newState[T](OptContinuable.With(OptHasExecutor))
	st.executor = cfg.executor

	cfg.executor.Schedule(func() {
		v, err := runTask(st.id, fn)
		if err != nil {
			_ = st.setError(err)
		} else {
			_ = st.setValue(v)
		}
	})
	return newFuture(st)
}

// AsyncStoppable is Async for a task that cooperatively polls a StopToken;
// the returned future's RequestStop/StopToken become live.
func AsyncStoppable[T any](fn func(tok *StopToken) (T, error), opts ...AsyncOption) *Future[T] {
	cfg := buildAsyncConfig(opts)
	st := newState[T](OptContinuable.With(OptHasExecutor).With(OptStoppable))
	st.executor = cfg.executor
	tok := st.stopSource.Token()

	cfg.executor.Schedule(func() {
		v, err := runTask(st.id, func() (T, error) { return fn(tok) })
		if err != nil {
			_ = st.setError(err)
		} else {
			_ = st.setValue(v)
		}
	})
	return newFuture(st)
}

// Schedule builds an always-deferred future: fn runs inline, exactly once,
// on whichever goroutine first calls Wait/Get on the result.
func Schedule[T any](fn func() (T, error)) *Future[T] {
	return newFuture(newDeferredState[T](OptContinuable, fn))
}

// IsReady polls any Waitable (including futures defined outside this
// package, as long as they expose the same minimal surface) with a
// zero-duration timed wait.
func IsReady(w Waitable) bool {
	status, err := w.WaitFor(0)
	return err == nil && status == StatusReady
}
