package futures

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// WaitStatus is the outcome of a timed wait.
type WaitStatus int

const (
	// StatusReady means the state reached a terminal status before the deadline.
	StatusReady WaitStatus = iota
	// StatusTimeout means the deadline elapsed first.
	StatusTimeout
	// StatusDeferred means the state is an always-deferred task that has not
	// yet run; reported instead of StatusTimeout so a caller can choose to
	// run it rather than keep waiting.
	StatusDeferred
)

func (s WaitStatus) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusTimeout:
		return "timeout"
	case StatusDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

type terminalStatus int32

const (
	pending terminalStatus = iota
	readyValue
	readyError
)

// state is the operation state (C2): the shared object
// that carries a task's eventual value or error, synchronises waiters with
// producers, honours deferred evaluation, and publishes completion to a
// continuation list. Future, SharedFuture and Promise are all thin typed
// handles onto one of these.
type state[T any] struct {
	mu     sync.Mutex
	status atomic.Int32 // terminalStatus, fast lock-free observation path

	value T
	err   error

	opts Options

	done            chan struct{}
	continuations   []func()
	closedForAppend bool

	deferredOnce sync.Once
	deferredTask func() (T, error)
	deferredRan  atomic.Bool

	stopSource *StopSource
	executor   Executor

	waiters atomic.Int32

	id string // short diagnostic id, correlates log lines across a chain
}

func newState[T any](opts Options) *state[T] {
	s := &state[T]{
		opts: opts,
		done: make(chan struct{}),
		id:   uuid.NewString()[:8],
	}
	if opts.Has(OptStoppable) {
		s.stopSource = NewStopSource()
	}
	return s
}

// newDeferredState builds a state whose task runs inline on first Wait/Get
// rather than being scheduled on construction.
func newDeferredState[T any](opts Options, task func() (T, error)) *state[T] {
	s := newState[T](opts.With(OptDeferred))
	s.deferredTask = task
	return s
}

func zeroOf[T any]() T {
	var z T
	return z
}

// erroredState returns a state that is already terminal with err.
func erroredState[T any](opts Options, err error) *state[T] {
	s := newState[T](opts)
	_ = s.setError(err)
	return s
}

// publish is the sole path to a terminal status: write-once, continuations
// fired in FIFO order after the status flips but before waiters are woken.
func (s *state[T]) publish(v T, err error, st terminalStatus) error {
	s.mu.Lock()
	if terminalStatus(s.status.Load()) != pending {
		s.mu.Unlock()
		return ErrPromiseAlreadySatisfied
	}
	s.value = v
	s.err = err
	s.status.Store(int32(st))
	s.closedForAppend = true
	cbs := s.continuations
	s.continuations = nil
	s.mu.Unlock()

	for _, cb := range cbs {
		runContinuation(s.id, cb)
	}
	close(s.done)
	return nil
}

func (s *state[T]) setValue(v T) error {
	return s.publish(v, nil, readyValue)
}

func (s *state[T]) setError(err error) error {
	return s.publish(zeroOf[T](), err, readyError)
}

func (s *state[T]) markBrokenPromise() {
	_ = s.publish(zeroOf[T](), errors.WithStack(ErrBrokenPromise), readyError)
}

// appendContinuation appends fn if the state is still pending, otherwise
// runs it immediately on the calling goroutine. This is the "late append
// must observe terminal state and run immediately" rule that avoids a
// lost wakeup.
func (s *state[T]) appendContinuation(fn func()) {
	s.mu.Lock()
	if s.closedForAppend {
		s.mu.Unlock()
		runContinuation(s.id, fn)
		return
	}
	s.continuations = append(s.continuations, fn)
	s.mu.Unlock()
}

func runContinuation(id string, cb func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("state", id).Errorf("futures: continuation panicked: %v", r)
			if !PropagateExceptions {
				panic(r)
			}
		}
	}()
	cb()
}

// runDeferredIfNeeded self-executes the deferred task at most once,
// regardless of how many goroutines call Wait/Get concurrently.
func (s *state[T]) runDeferredIfNeeded() {
	if s.deferredTask == nil {
		return
	}
	s.deferredOnce.Do(func() {
		task := s.deferredTask
		v, err := runTask(s.id, task)
		s.deferredRan.Store(true)
		if err != nil {
			_ = s.publish(zeroOf[T](), err, readyError)
		} else {
			_ = s.publish(v, nil, readyValue)
		}
	})
}

func runTask[T any](id string, task func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("state", id).Errorf("futures: task panicked: %v", r)
			if PropagateExceptions {
				err = errors.Errorf("futures: task panicked: %v", r)
			} else {
				panic(r)
			}
		}
	}()
	return task()
}

// wait checks status before ever touching done. This fast path matters
// beyond the common case of an already-ready state: a continuation relay
// runs on the publishing goroutine while publish is still draining the
// continuation list, before done is closed, and that relay's body reads the
// antecedent's own value through this same wait (via getValue). Status is
// already terminal at that point, set under the same mutex that guards
// value/err before the continuation loop starts, so checking it first
// avoids the relay deadlocking on its own antecedent's done channel.
func (s *state[T]) wait() {
	s.runDeferredIfNeeded()
	if terminalStatus(s.status.Load()) != pending {
		return
	}
	s.waiters.Inc()
	<-s.done
	s.waiters.Dec()
}

func (s *state[T]) waitFor(d time.Duration) WaitStatus {
	if s.deferredTask != nil && !s.deferredRan.Load() {
		return StatusDeferred
	}
	if terminalStatus(s.status.Load()) != pending {
		return StatusReady
	}
	if d <= 0 {
		select {
		case <-s.done:
			return StatusReady
		default:
			return StatusTimeout
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	s.waiters.Inc()
	defer s.waiters.Dec()
	select {
	case <-s.done:
		return StatusReady
	case <-timer.C:
		return StatusTimeout
	}
}

func (s *state[T]) waitUntil(t time.Time) WaitStatus {
	return s.waitFor(time.Until(t))
}

func (s *state[T]) getValue() (T, error) {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.err
}

func (s *state[T]) isReady() bool {
	if s.deferredTask != nil && !s.deferredRan.Load() {
		return false
	}
	return terminalStatus(s.status.Load()) != pending
}
