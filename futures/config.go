package futures

import "runtime"

// DefaultPoolSize overrides the worker count of the process-wide default
// executor. Zero (the default) means max(2, runtime.GOMAXPROCS(0)). This is
// meant to be set once, before the default executor is first used; changing
// it after DefaultExecutor has run has no effect.
var DefaultPoolSize = 0

// PropagateExceptions controls what happens when a task or continuation
// panics. When true (the default) a panicking task (including the function
// passed to Then/ThenFuture) is captured and surfaced as an error on the
// future it belongs to, while a panicking OnSuccess/OnFailure or stop
// callback is logged and discarded. When false, the panic is logged and
// re-raised, terminating the process after a diagnostic.
var PropagateExceptions = true

func resolvePoolSize() int {
	if DefaultPoolSize > 0 {
		return DefaultPoolSize
	}
	if n := runtime.GOMAXPROCS(0); n > 2 {
		return n
	}
	return 2
}
