package futures

// ThenOption configures a single Then/ThenFuture call.
type ThenOption func(*thenConfig)

type thenConfig struct {
	executor Executor
}

// WithExecutor pins the continuation to run on ex instead of the
// antecedent's bound executor or the process-wide default.
func WithExecutor(ex Executor) ThenOption {
	return func(c *thenConfig) { c.executor = ex }
}

func buildThenConfig(opts []ThenOption) *thenConfig {
	c := &thenConfig{}
	for _, o := range opts {
		o(c)
	}
	return c
}

// resolveExecutor returns the executor the caller or the antecedent pins
// this continuation to, or nil if neither pins one. Callers that need a
// concrete executor to schedule on must substitute DefaultExecutor
// themselves: returning nil here, rather than substituting eagerly, is what
// lets buildSuccessor tell "genuinely no executor requested" (eligible for
// a deferred successor) apart from "resolved to the default" (not).
func resolveExecutor(explicit Executor, opts Options, bound Executor) Executor {
	if explicit != nil {
		return explicit
	}
	if opts.Has(OptHasExecutor) && bound != nil {
		return bound
	}
	return nil
}

// buildSuccessor implements the shared second half of Then/ThenFuture: pick
// eager-vs-deferred, build the successor state, and either wire a relay
// continuation onto the antecedent or hand the body straight to a deferred
// state. preferred is the executor resolved before any default
// substitution, so isInlineOrAbsent still sees "absent" for an antecedent
// that has no bound executor and whose caller supplied none.
func buildSuccessor[T, R any](antSt *state[T], succOptsIn Options, preferred Executor, body func() (R, error)) *Future[R] {
	if antSt.opts.Has(OptDeferred) && isInlineOrAbsent(preferred) {
		succOpts := succOptsIn
		if preferred != nil {
			succOpts = succOpts.With(OptHasExecutor)
		}
		succ := newDeferredState[R](succOpts, body)
		succ.executor = preferred
		return newFuture(succ)
	}

	executor := preferred
	if executor == nil {
		executor = DefaultExecutor()
	}

	succ := newState[R](succOptsIn.With(OptHasExecutor))
	succ.executor = executor

	relay := func() {
		executor.Schedule(func() {
			v, err := runTask(succ.id, body)
			if err != nil {
				_ = succ.setError(err)
			} else {
				_ = succ.setValue(v)
			}
		})
	}
	antSt.appendContinuation(relay)
	return newFuture(succ)
}

// Then builds a successor future that applies fn to the antecedent's
// already-extracted value (unwrapping shape 1). If the antecedent failed,
// fn is never called and the error propagates to the successor unchanged.
//
// f is consumed: if it is a unique Future it is moved (invalidated) into
// the continuation; if it is a SharedFuture it is effectively copied and
// remains usable by the caller.
func Then[T, R any](f stateHolder[T], fn func(T) (R, error), opts ...ThenOption) *Future[R] {
	cfg := buildThenConfig(opts)
	antSt := f.ref()
	if antSt == nil {
		return erroredFuture[R](ErrNoState)
	}
	f.release()

	succOpts := antSt.opts.Without(OptShared).With(OptContinuable)
	preferred := resolveExecutor(cfg.executor, antSt.opts, antSt.executor)

	body := func() (R, error) {
		v, err := antSt.getValue()
		if err != nil {
			return zeroOf[R](), err
		}
		return fn(v)
	}
	return buildSuccessor(antSt, succOpts, preferred, body)
}

// ThenFuture builds a successor future that applies fn to the antecedent
// future itself (unwrapping shape 0), so fn may inspect errors via Get/Wait
// instead of having them auto-propagated.
func ThenFuture[T, R any](f stateHolder[T], fn func(*Future[T]) (R, error), opts ...ThenOption) *Future[R] {
	cfg := buildThenConfig(opts)
	antSt := f.ref()
	if antSt == nil {
		return erroredFuture[R](ErrNoState)
	}
	f.release()

	succOpts := antSt.opts.Without(OptShared).With(OptContinuable)
	preferred := resolveExecutor(cfg.executor, antSt.opts, antSt.executor)

	body := func() (R, error) {
		inner := &Future[T]{st: antSt}
		return fn(inner)
	}
	return buildSuccessor(antSt, succOpts, preferred, body)
}
