package futures

import (
	"sync"

	"github.com/JekaMas/workerpool"
)

// Executor is the one operation the core needs from a scheduler: run a
// nullary task to completion, eventually, on some goroutine. Any type
// satisfying this is an acceptable Executor. The core only checks whether an
// executor is Inline (to decide whether a continuation of a deferred future
// stays deferred); it never compares executors with each other, so Then
// schedules its continuation even when the executor is the one the
// antecedent is bound to.
type Executor interface {
	Schedule(task func())
}

type inlineExecutor struct{}

func (inlineExecutor) Schedule(task func()) { task() }

// Inline runs scheduled tasks synchronously on the scheduling goroutine.
// Useful for tests and for single-threaded call sites that want eager,
// deterministic execution.
var Inline Executor = inlineExecutor{}

// SerialExecutor runs scheduled tasks one at a time, in submission order,
// on a single dedicated goroutine.
type SerialExecutor struct {
	tasks   chan func()
	closeCh chan struct{}
	once    sync.Once
}

// NewSerialExecutor starts a single-goroutine executor with the given
// submission queue depth.
func NewSerialExecutor(queueDepth int) *SerialExecutor {
	if queueDepth < 1 {
		queueDepth = 1
	}
	e := &SerialExecutor{
		tasks:   make(chan func(), queueDepth),
		closeCh: make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *SerialExecutor) run() {
	for {
		select {
		case task := <-e.tasks:
			task()
		case <-e.closeCh:
			return
		}
	}
}

// Schedule enqueues task, blocking if the queue is full.
func (e *SerialExecutor) Schedule(task func()) {
	select {
	case e.tasks <- task:
	case <-e.closeCh:
	}
}

// Close stops the worker goroutine. Tasks still queued are not guaranteed
// to run.
func (e *SerialExecutor) Close() {
	e.once.Do(func() { close(e.closeCh) })
}

// poolExecutor backs DefaultExecutor with a bounded goroutine pool from
// github.com/JekaMas/workerpool.
type poolExecutor struct {
	pool *workerpool.WorkerPool
}

func (p *poolExecutor) Schedule(task func()) { p.pool.Submit(task) }

func (p *poolExecutor) Shutdown() { p.pool.StopWait() }

var (
	defaultExecutorOnce sync.Once
	defaultExecutorInst *poolExecutor
)

// DefaultExecutor returns the process-wide default executor, constructed
// lazily on first use with worker count DefaultPoolSize (or
// max(2, GOMAXPROCS) if unset).
func DefaultExecutor() Executor {
	defaultExecutorOnce.Do(func() {
		size := resolvePoolSize()
		logger.WithField("size", size).Info("futures: starting default executor pool")
		defaultExecutorInst = &poolExecutor{pool: workerpool.New(size)}
	})
	return defaultExecutorInst
}

// ShutdownDefaultExecutor drains and stops the default executor, if it was
// ever constructed. A library cannot hook process exit itself; an embedding
// main package should call this during its own teardown.
func ShutdownDefaultExecutor() {
	if defaultExecutorInst != nil {
		defaultExecutorInst.Shutdown()
	}
}

func isInlineOrAbsent(ex Executor) bool {
	if ex == nil {
		return true
	}
	_, ok := ex.(inlineExecutor)
	return ok
}
