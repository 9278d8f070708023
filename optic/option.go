package optic

// Option is a value that may be missing. It is how optional foci surface to readers.
type Option[A any] struct {
	value A
	ok    bool
}

// Some returns a present Option.
func Some[A any](v A) Option[A] {
	return Option[A]{value: v, ok: true}
}

// None returns a missing Option.
func None[A any]() Option[A] {
	return Option[A]{}
}

// Get returns the value and whether it is present.
func (o Option[A]) Get() (A, bool) {
	return o.value, o.ok
}

// IsSome reports whether the value is present.
func (o Option[A]) IsSome() bool {
	return o.ok
}

// OrElse returns the value if present and def otherwise.
func (o Option[A]) OrElse(def A) A {
	if !o.ok {
		return def
	}

	return o.value
}
