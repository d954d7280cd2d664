// Package async holds the small scheduling primitives the UI controllers
// are built on: a one-shot future, a resettable debouncer and a request
// sequence used to drop stale completions.
package async

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Future is a value that becomes available once. It is resolved exactly
// once; later Resolve calls are ignored.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewFuture returns an unresolved future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future that is already complete.
func Resolved[T any](v T, err error) *Future[T] {
	f := NewFuture[T]()
	f.Resolve(v, err)
	return f
}

// Go runs fn on a new goroutine and resolves the future with its result.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := NewFuture[T]()
	go func() {
		v, err := fn(ctx)
		f.Resolve(v, err)
	}()
	return f
}

// Resolve completes the future. It reports whether this call won.
func (f *Future[T]) Resolve(v T, err error) bool {
	won := false
	f.once.Do(func() {
		f.value, f.err = v, err
		close(f.done)
		won = true
	})
	return won
}

// Done is closed once the future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future resolves or ctx ends.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then calls fn with the result on its own goroutine once resolved.
func (f *Future[T]) Then(fn func(T, error)) {
	go func() {
		<-f.done
		fn(f.value, f.err)
	}()
}

// Debouncer delays a call until input has been quiet for a fixed interval.
// Each Trigger replaces the pending call and restarts the timer; only the
// trailing call runs.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer returns a debouncer with the given quiet interval.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, cancelling any call still pending.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Sequence hands out increasing request numbers. A completion is applied
// only if its number is still the latest one issued.
type Sequence struct {
	n atomic.Uint64
}

// Next issues a new number, superseding all earlier ones.
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// IsCurrent reports whether n is the latest issued number.
func (s *Sequence) IsCurrent(n uint64) bool {
	return s.n.Load() == n
}
