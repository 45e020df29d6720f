package pad

import (
	"sync"
	"time"
)

// DefaultResizeInterval is the quiet period between two applied resizes.
const DefaultResizeInterval = 250 * time.Millisecond

// Throttler rate-limits calls to fn. The first call in a quiet period runs
// immediately; calls arriving within the interval are coalesced and the
// latest one runs when the interval ends. The last call is never dropped.
//
// Trailing calls run on a timer goroutine; dispatch, when set, moves them
// back onto the host's event loop.
type Throttler[T any] struct {
	interval time.Duration
	fn       func(T)
	dispatch func(func())

	mu      sync.Mutex
	timer   *time.Timer
	pending *T
	stopped bool
}

// NewThrottler creates a throttler. A non-positive interval means
// DefaultResizeInterval.
func NewThrottler[T any](interval time.Duration, dispatch func(func()), fn func(T)) *Throttler[T] {
	if interval <= 0 {
		interval = DefaultResizeInterval
	}
	return &Throttler[T]{interval: interval, fn: fn, dispatch: dispatch}
}

// Call requests fn(v).
func (t *Throttler[T]) Call(v T) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.timer != nil {
		t.pending = &v
		t.mu.Unlock()
		return
	}
	t.timer = time.AfterFunc(t.interval, t.flush)
	t.mu.Unlock()
	t.fn(v)
}

func (t *Throttler[T]) flush() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	v := t.pending
	t.pending = nil
	if v == nil {
		t.timer = nil
		t.mu.Unlock()
		return
	}
	t.timer = time.AfterFunc(t.interval, t.flush)
	t.mu.Unlock()

	if t.dispatch != nil {
		t.dispatch(func() { t.fn(*v) })
		return
	}
	t.fn(*v)
}

// Stop cancels any pending call. Later calls are ignored.
func (t *Throttler[T]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.pending = nil
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
