package futures

// PackagedTask wraps a callable of signature func(Args) (R, error) together
// with a promise of its result (C4). Invoking it runs the function and
// publishes the outcome into the promise; it is itself a nullary-invokable
// once its argument is bound via Bind, so it may be handed to any Executor.
type PackagedTask[Args any, R any] struct {
	fn      func(Args) (R, error)
	promise *Promise[R]
}

// NewPackagedTask wraps fn in a fresh packaged task with its own promise.
func NewPackagedTask[Args any, R any](fn func(Args) (R, error)) *PackagedTask[Args, R] {
	return &PackagedTask[Args, R]{fn: fn, promise: NewPromise[R]()}
}

// GetFuture returns the future tied to this task's internal promise; see
// Promise.GetFuture for the at-most-once rule.
func (pt *PackagedTask[Args, R]) GetFuture() (*Future[R], error) {
	if pt == nil || pt.promise == nil {
		return nil, ErrPackagedTaskUninitialized
	}
	return pt.promise.GetFuture()
}

// Invoke runs the wrapped function with args and publishes its outcome.
func (pt *PackagedTask[Args, R]) Invoke(args Args) {
	if pt == nil || pt.promise == nil {
		return
	}
	v, err := runTask(pt.promise.st.id, func() (R, error) { return pt.fn(args) })
	if err != nil {
		_ = pt.promise.SetError(err)
	} else {
		_ = pt.promise.SetValue(v)
	}
}

// Bind returns a nullary closure over args, suitable for Executor.Schedule.
func (pt *PackagedTask[Args, R]) Bind(args Args) func() {
	return func() { pt.Invoke(args) }
}
