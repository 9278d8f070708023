package atom

import (
	"context"
	"sync"
)

// Future is a settle-once container for a value that becomes known later.
//
// Continuations registered before settlement run in the settling goroutine,
// in registration order. Continuations registered after settlement run
// immediately in the registering goroutine.
type Future[T any] struct {
	mu            sync.Mutex
	done          chan struct{}
	settled       bool
	val           T
	err           error
	continuations []func(T, error)
}

// NewFuture creates an unsettled Future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Go runs fn in its own goroutine and returns a pending Value that settles with fn's result.
func Go[T any](fn func() (T, error)) Value[T] {
	f := NewFuture[T]()

	go func() {
		v, err := fn()
		if err != nil {
			f.Reject(err)
			return
		}

		f.Resolve(v)
	}()

	return Pending(f)
}

// Resolve settles the Future with v. It returns false if the Future was already settled.
func (f *Future[T]) Resolve(v T) bool {
	return f.settle(v, nil)
}

// Reject settles the Future with err. It returns false if the Future was already settled.
func (f *Future[T]) Reject(err error) bool {
	var zero T
	return f.settle(zero, err)
}

// Done returns a channel that is closed once the Future is settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the Future is settled or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err

	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) settle(v T, err error) bool {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return false
	}

	f.settled = true
	f.val = v
	f.err = err
	continuations := f.continuations
	f.continuations = nil
	close(f.done)
	f.mu.Unlock()

	for _, continuation := range continuations {
		continuation(v, err)
	}

	return true
}

// whenSettled registers a continuation.
func (f *Future[T]) whenSettled(continuation func(T, error)) {
	f.mu.Lock()
	if !f.settled {
		f.continuations = append(f.continuations, continuation)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	continuation(f.val, f.err)
}
