// Package rate provides call shapers for client-triggered operations:
// debouncing for bursty input such as search-as-you-type, and leading-edge
// throttling for actions that must not repeat within a window.
package rate

import (
	"sync"
	"time"
)

// Debouncer delays fn until wait has passed without another call. It is a
// two-state machine: idle (no timer) and pending (timer armed); every call
// cancels the pending timer and arms a fresh one with that call's argument,
// so only the last call in a burst fires. The deferred call is
// fire-and-forget: no result is propagated.
type Debouncer[T any] struct {
	mu    sync.Mutex
	timer *time.Timer
	fn    func(T)
	wait  time.Duration
}

func NewDebouncer[T any](fn func(T), wait time.Duration) *Debouncer[T] {
	return &Debouncer[T]{fn: fn, wait: wait}
}

// Call schedules fn(arg) after the wait, discarding any previously pending
// invocation.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() { d.fn(arg) })
}

// Stop cancels any pending invocation and returns the debouncer to idle.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Debounce wraps fn so that only the most recent call within any wait window
// executes.
func Debounce[T any](fn func(T), wait time.Duration) func(T) {
	return NewDebouncer(fn, wait).Call
}
