package futures

// Options is the closed set of capability tags an operation state may carry.
// A single monomorphic state type carries each capability's storage only
// when the corresponding tag is set, rather than having a distinct state
// type per capability combination.
type Options uint8

const (
	// OptContinuable enables Then: the state keeps a continuation list.
	OptContinuable Options = 1 << iota
	// OptStoppable attaches a stop source at construction.
	OptStoppable
	// OptDeferred marks the state as never scheduled; it runs inline on
	// first Wait/Get.
	OptDeferred
	// OptShared marks a future handle as cloneable, with non-destructive Get.
	OptShared
	// OptHasExecutor means the state carries an executor used by Then when
	// the caller supplies none.
	OptHasExecutor
)

// Has reports whether every bit in flag is set in o.
func (o Options) Has(flag Options) bool { return o&flag == flag }

// With returns o with flag set.
func (o Options) With(flag Options) Options { return o | flag }

// Without returns o with flag cleared.
func (o Options) Without(flag Options) Options { return o &^ flag }
