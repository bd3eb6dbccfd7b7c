// Package futures implements a general-purpose asynchronous-computation
// library: operation states that carry a task's eventual value or error,
// future/promise handles onto those states, and adaptors (Then, WhenAll,
// WhenAny) that compose them into pipelines.
//
// The package does not schedule anything itself beyond a process-wide
// default Executor; callers may supply their own Executor to any function
// that accepts one.
package futures
