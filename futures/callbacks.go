package futures

// OnSuccess and OnFailure are sugar atop the continuation engine:
// appendContinuation already gives the "run immediately if already
// terminal, else queue" behaviour these two methods need.

// OnSuccess registers cb to run with the value once/if f completes
// successfully. Does not consume validity.
func (f *Future[T]) OnSuccess(cb func(T)) {
	st := f.st
	if st == nil {
		return
	}
	st.appendContinuation(func() {
		st.mu.Lock()
		v, err := st.value, st.err
		st.mu.Unlock()
		if err == nil {
			cb(v)
		}
	})
}

// OnFailure registers cb to run with the error once/if f fails.
func (f *Future[T]) OnFailure(cb func(error)) {
	st := f.st
	if st == nil {
		return
	}
	st.appendContinuation(func() {
		st.mu.Lock()
		err := st.err
		st.mu.Unlock()
		if err != nil {
			cb(err)
		}
	})
}

// OnSuccess registers cb on a shared future; may be registered from
// multiple holders since SharedFuture is cloneable.
func (f *SharedFuture[T]) OnSuccess(cb func(T)) {
	st := f.st
	if st == nil {
		return
	}
	st.appendContinuation(func() {
		st.mu.Lock()
		v, err := st.value, st.err
		st.mu.Unlock()
		if err == nil {
			cb(v)
		}
	})
}

// OnFailure registers cb on a shared future.
func (f *SharedFuture[T]) OnFailure(cb func(error)) {
	st := f.st
	if st == nil {
		return
	}
	st.appendContinuation(func() {
		st.mu.Lock()
		err := st.err
		st.mu.Unlock()
		if err != nil {
			cb(err)
		}
	})
}
