package rate

import (
	"sync"
	"time"
)

// Throttler runs fn on the first call and silently drops later calls until
// window has elapsed since the last execution; the next call through
// restarts the window. Fixed window, leading edge: no trailing call, no
// token bucket.
type Throttler[T any] struct {
	mu     sync.Mutex
	last   time.Time
	window time.Duration
	fn     func(T)
	now    func() time.Time
}

func NewThrottler[T any](fn func(T), window time.Duration) *Throttler[T] {
	return &Throttler[T]{fn: fn, window: window, now: time.Now}
}

// Call runs fn(arg) synchronously when the window is open, otherwise drops
// the call with no notification.
func (t *Throttler[T]) Call(arg T) {
	t.mu.Lock()
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.window {
		t.mu.Unlock()
		return
	}
	t.last = now
	t.mu.Unlock()
	t.fn(arg)
}

// Throttle wraps fn so at most one call per window executes, the first one.
func Throttle[T any](fn func(T), window time.Duration) func(T) {
	return NewThrottler(fn, window).Call
}
