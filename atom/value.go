package atom

import (
	"context"
)

// Value is the result of reading or writing an atom.
//
// A Value is exactly one of: a ready value, a failure, or a pending Future.
// The zero Value is a ready zero value.
type Value[T any] struct {
	val    T
	err    error
	future *Future[T]
}

// Resolved returns a ready Value.
func Resolved[T any](v T) Value[T] {
	return Value[T]{val: v}
}

// Rejected returns a failed Value.
func Rejected[T any](err error) Value[T] {
	return Value[T]{err: err}
}

// Pending returns a Value backed by f.
func Pending[T any](f *Future[T]) Value[T] {
	return Value[T]{future: f}
}

// IsAsync reports whether the Value is backed by a Future, settled or not.
func (v Value[T]) IsAsync() bool {
	return v.future != nil
}

// Future returns the backing Future, or nil for a synchronous Value.
func (v Value[T]) Future() *Future[T] {
	return v.future
}

// Get returns the value without blocking.
// For an unsettled asynchronous Value it returns ErrPending.
func (v Value[T]) Get() (T, error) {
	if v.future == nil {
		return v.val, v.err
	}

	select {
	case <-v.future.done:
		return v.future.val, v.future.err

	default:
		var zero T
		return zero, ErrPending
	}
}

// Await blocks until the Value is settled or ctx is done.
func (v Value[T]) Await(ctx context.Context) (T, error) {
	if v.future == nil {
		return v.val, v.err
	}

	return v.future.Await(ctx)
}

// Then maps a Value with fn.
// A synchronous Value is mapped immediately; an asynchronous one is continued
// on its Future without blocking and without spawning a goroutine.
// Failures short-circuit and are passed on unchanged.
func Then[T, U any](v Value[T], fn func(T) (U, error)) Value[U] {
	return Bind(v, func(t T) Value[U] {
		u, err := fn(t)
		if err != nil {
			return Rejected[U](err)
		}

		return Resolved(u)
	})
}

// Bind chains a Value with fn, which itself returns a Value.
func Bind[T, U any](v Value[T], fn func(T) Value[U]) Value[U] {
	if v.future == nil {
		if v.err != nil {
			return Rejected[U](v.err)
		}

		return fn(v.val)
	}

	next := NewFuture[U]()
	v.future.whenSettled(func(t T, err error) {
		if err != nil {
			next.Reject(err)
			return
		}

		fn(t).forwardTo(next)
	})

	return Pending(next)
}

// forwardTo settles f with the outcome of v.
func (v Value[T]) forwardTo(f *Future[T]) {
	v.whenSettled(func(t T, err error) {
		if err != nil {
			f.Reject(err)
			return
		}

		f.Resolve(t)
	})
}

// whenSettled calls fn with the outcome, immediately for a synchronous Value.
func (v Value[T]) whenSettled(fn func(T, error)) {
	if v.future == nil {
		fn(v.val, v.err)
		return
	}

	v.future.whenSettled(fn)
}
