package optic

import (
	"maps"
	"slices"
)

// Prop focuses a field of every focus of o.
func Prop[S, A, B any](o Optic[S, A], get func(A) B, set func(A, B) A) Optic[S, B] {
	return Compose(o, Lens(get, set))
}

// Elems focuses every element of the slice focused by o.
func Elems[S, E any](o Optic[S, []E]) Optic[S, E] {
	return Compose(o, Traversal(
		func(xs []E) []E {
			return xs
		},
		func(xs []E, next []E) []E {
			out := slices.Clone(xs)
			copy(out, next)

			return out
		},
	))
}

// Find focuses the first element of the slice focused by o that matches pred.
func Find[S, E any](o Optic[S, []E], pred func(E) bool) Optic[S, E] {
	return Compose(o, Optional(
		func(xs []E) (E, bool) {
			if i := slices.IndexFunc(xs, pred); i >= 0 {
				return xs[i], true
			}

			var zero E
			return zero, false
		},
		func(xs []E, next E) []E {
			out := slices.Clone(xs)
			out[slices.IndexFunc(xs, pred)] = next

			return out
		},
	))
}

// Index focuses the element at position i of the slice focused by o, if it exists.
func Index[S, E any](o Optic[S, []E], i int) Optic[S, E] {
	return Compose(o, Optional(
		func(xs []E) (E, bool) {
			if i < 0 || i >= len(xs) {
				var zero E
				return zero, false
			}

			return xs[i], true
		},
		func(xs []E, next E) []E {
			out := slices.Clone(xs)
			out[i] = next

			return out
		},
	))
}

// Key focuses the entry k of the map focused by o, if it exists.
func Key[S any, K comparable, V any](o Optic[S, map[K]V], k K) Optic[S, V] {
	return Compose(o, Optional(
		func(m map[K]V) (V, bool) {
			v, ok := m[k]
			return v, ok
		},
		func(m map[K]V, next V) map[K]V {
			out := maps.Clone(m)
			out[k] = next

			return out
		},
	))
}

// Deref focuses the value behind the pointer focused by o. A nil pointer is a missing focus.
func Deref[S, A any](o Optic[S, *A]) Optic[S, A] {
	return Compose(o, Optional(
		func(p *A) (A, bool) {
			if p == nil {
				var zero A
				return zero, false
			}

			return *p, true
		},
		func(_ *A, next A) *A {
			return &next
		},
	))
}

// Unwrap focuses the value inside the Option focused by o. None is a missing focus.
func Unwrap[S, A any](o Optic[S, Option[A]]) Optic[S, A] {
	return Compose(o, Optional(
		func(opt Option[A]) (A, bool) {
			return opt.Get()
		},
		func(_ Option[A], next A) Option[A] {
			return Some(next)
		},
	))
}
