package futures

import (
	"sync"

	"go.uber.org/atomic"
)

// StopSource is the producer-side owner of a stop channel: a one-shot
// "stop requested" bit plus an ordered list of callbacks to run exactly
// once when the bit flips. Registration after a flipped bit never races
// with the flip: the callback either runs inline on the registering
// goroutine, or was already captured by RequestStop.
type StopSource struct {
	mu        sync.Mutex
	requested atomic.Bool
	callbacks []*stopCallback
	nextID    uint64
}

type stopCallback struct {
	id uint64
	fn func()
}

// StopCallback is the handle returned by StopToken.RegisterCallback; call
// Deregister to remove it before it would otherwise run.
type StopCallback struct {
	source *StopSource
	cb     *stopCallback
}

// Deregister removes the callback if it has not already run. Safe to call
// from any goroutine, including concurrently with RequestStop.
func (c *StopCallback) Deregister() {
	if c == nil || c.source == nil || c.cb == nil {
		return
	}
	c.source.mu.Lock()
	defer c.source.mu.Unlock()
	for i, cb := range c.source.callbacks {
		if cb == c.cb {
			c.source.callbacks = append(c.source.callbacks[:i], c.source.callbacks[i+1:]...)
			return
		}
	}
}

// NewStopSource constructs a fresh, non-requested stop source.
func NewStopSource() *StopSource {
	return &StopSource{}
}

// Token returns a cheap observer bound to this source.
func (s *StopSource) Token() *StopToken {
	return &StopToken{source: s}
}

// RequestStop idempotently flips the bit and invokes every currently
// registered callback exactly once, in registration order, on the calling
// goroutine. Returns true iff this call performed the flip.
func (s *StopSource) RequestStop() bool {
	if !s.requested.CompareAndSwap(false, true) {
		return false
	}
	s.mu.Lock()
	cbs := s.callbacks
	s.callbacks = nil
	s.mu.Unlock()

	for _, cb := range cbs {
		invokeStopCallback(cb.fn)
	}
	return true
}

// StopRequested reports the current value of the bit.
func (s *StopSource) StopRequested() bool {
	return s.requested.Load()
}

func (s *StopSource) registerCallback(fn func()) *StopCallback {
	if s.requested.Load() {
		invokeStopCallback(fn)
		return &StopCallback{}
	}
	s.mu.Lock()
	if s.requested.Load() {
		s.mu.Unlock()
		invokeStopCallback(fn)
		return &StopCallback{}
	}
	s.nextID++
	cb := &stopCallback{id: s.nextID, fn: fn}
	s.callbacks = append(s.callbacks, cb)
	s.mu.Unlock()
	return &StopCallback{source: s, cb: cb}
}

func invokeStopCallback(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("futures: stop callback panicked: %v", r)
			if !PropagateExceptions {
				panic(r)
			}
		}
	}()
	fn()
}

// StopToken is a cheap, copyable consumer-side observer of a StopSource.
type StopToken struct {
	source *StopSource
}

// StopRequested reports whether the bound source's bit is set. A nil token
// (no stop source available) always reports false.
func (t *StopToken) StopRequested() bool {
	return t != nil && t.source != nil && t.source.StopRequested()
}

// StopPossible reports whether a source still backs this token.
func (t *StopToken) StopPossible() bool {
	return t != nil && t.source != nil
}

// RegisterCallback appends fn to the source's callback list, or invokes it
// immediately if the bit is already set.
func (t *StopToken) RegisterCallback(fn func()) *StopCallback {
	if t == nil || t.source == nil || fn == nil {
		return &StopCallback{}
	}
	return t.source.registerCallback(fn)
}
