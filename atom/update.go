package atom

// Update is a write instruction: either a literal next value, which may itself
// be pending, or a function from the previous value to the next one.
type Update[T any] struct {
	literal Value[T]
	fn      func(T) (T, error)
}

// Replace returns an Update with a literal next value.
func Replace[T any](v T) Update[T] {
	return Update[T]{literal: Resolved(v)}
}

// ReplaceWith returns an Update with a literal next value that may be pending.
func ReplaceWith[T any](v Value[T]) Update[T] {
	return Update[T]{literal: v}
}

// Modify returns an Update that derives the next value from the previous one.
func Modify[T any](fn func(T) T) Update[T] {
	return Update[T]{fn: func(prev T) (T, error) { return fn(prev), nil }}
}

// TryModify is Modify for updaters that can fail.
// A returned error aborts the write and reaches the writer unchanged.
func TryModify[T any](fn func(T) (T, error)) Update[T] {
	return Update[T]{fn: fn}
}

// IsFunc reports whether the Update carries an updater function.
func (u Update[T]) IsFunc() bool {
	return u.fn != nil
}

// Literal returns the literal next value. It is meaningless if IsFunc is true.
func (u Update[T]) Literal() Value[T] {
	return u.literal
}

// Apply resolves the Update against prev.
func (u Update[T]) Apply(prev T) Value[T] {
	if u.fn == nil {
		return u.literal
	}

	next, err := u.fn(prev)
	if err != nil {
		return Rejected[T](err)
	}

	return Resolved(next)
}
