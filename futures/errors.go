package futures

import "github.com/pkg/errors"

// Sentinel errors covering the error surface described by the library:
// API misuse is reported synchronously at the call site, broken promises
// and task failures are recorded in the operation state and surfaced on
// Get. Every error carries both an identity (usable with errors.Is) and a
// human-readable message.
var (
	ErrBrokenPromise             = errors.New("futures: broken promise")
	ErrFutureAlreadyRetrieved    = errors.New("futures: future already retrieved")
	ErrPromiseAlreadySatisfied   = errors.New("futures: promise already satisfied")
	ErrNoState                   = errors.New("futures: no shared state")
	ErrPromiseUninitialized      = errors.New("futures: promise uninitialized")
	ErrPackagedTaskUninitialized = errors.New("futures: packaged task uninitialized")
	ErrFutureUninitialized       = errors.New("futures: future uninitialized")
	ErrFutureDeferred            = errors.New("futures: future is deferred and has not run")
)
