package optic

// Optic addresses zero, one or many values of type A inside a root of type S.
// The zero Optic addresses nothing. Optics are immutable and safe to share.
type Optic[S, A any] struct {
	kind    Kind
	collect func(S) []A
	modify  func(S, func(A) (A, error)) (S, error)
}

// For returns the identity lens on S. It is the starting point for describing a path.
func For[S any]() Optic[S, S] {
	return Optic[S, S]{
		kind: KindLens,
		collect: func(s S) []S {
			return []S{s}
		},
		modify: func(s S, fn func(S) (S, error)) (S, error) {
			return fn(s)
		},
	}
}

// Lens builds a lens step from a getter and a setter.
// set must return an updated copy and leave its input untouched.
func Lens[S, A any](get func(S) A, set func(S, A) S) Optic[S, A] {
	return Optic[S, A]{
		kind: KindLens,
		collect: func(s S) []A {
			return []A{get(s)}
		},
		modify: func(s S, fn func(A) (A, error)) (S, error) {
			next, err := fn(get(s))
			if err != nil {
				return s, err
			}

			return set(s, next), nil
		},
	}
}

// Optional builds an optional step. preview reports whether the focus is present;
// set is only called for a present focus.
func Optional[S, A any](preview func(S) (A, bool), set func(S, A) S) Optic[S, A] {
	return Optic[S, A]{
		kind: KindOptional,
		collect: func(s S) []A {
			if a, ok := preview(s); ok {
				return []A{a}
			}

			return nil
		},
		modify: func(s S, fn func(A) (A, error)) (S, error) {
			a, ok := preview(s)
			if !ok {
				return s, nil
			}

			next, err := fn(a)
			if err != nil {
				return s, err
			}

			return set(s, next), nil
		},
	}
}

// Traversal builds a traversal step. getAll lists the foci in order; setAll
// receives exactly as many values as getAll returned and rebuilds the root.
func Traversal[S, A any](getAll func(S) []A, setAll func(S, []A) S) Optic[S, A] {
	return Optic[S, A]{
		kind:    KindTraversal,
		collect: getAll,
		modify: func(s S, fn func(A) (A, error)) (S, error) {
			foci := getAll(s)
			if len(foci) == 0 {
				return s, nil
			}

			next := make([]A, len(foci))
			for i, focus := range foci {
				updated, err := fn(focus)
				if err != nil {
					return s, err
				}

				next[i] = updated
			}

			return setAll(s, next), nil
		},
	}
}

// Compose focuses inner on every focus of outer.
func Compose[S, A, B any](outer Optic[S, A], inner Optic[A, B]) Optic[S, B] {
	return Optic[S, B]{
		kind: join(outer.kind, inner.kind),
		collect: func(s S) []B {
			var foci []B
			for _, a := range outer.collectAll(s) {
				foci = append(foci, inner.collectAll(a)...)
			}

			return foci
		},
		modify: func(s S, fn func(B) (B, error)) (S, error) {
			return outer.modifyAll(s, func(a A) (A, error) {
				return inner.modifyAll(a, fn)
			})
		},
	}
}

// Kind returns how many foci the Optic addresses.
func (o Optic[S, A]) Kind() Kind {
	return o.kind
}

// When keeps only the foci matching pred. A lens becomes an optional.
func (o Optic[S, A]) When(pred func(A) bool) Optic[S, A] {
	filter := Optional(
		func(a A) (A, bool) { return a, pred(a) },
		func(_ A, next A) A { return next },
	)

	return Compose(o, filter)
}

// ValueOr turns an optional into a lens that reads def when the focus is missing.
// Writing through a missing focus stays a no-op; nothing is created.
// Lenses and traversals are returned unchanged.
func (o Optic[S, A]) ValueOr(def A) Optic[S, A] {
	if o.kind != KindOptional {
		return o
	}

	return Optic[S, A]{
		kind: KindLens,
		collect: func(s S) []A {
			if foci := o.collectAll(s); len(foci) > 0 {
				return foci[:1]
			}

			return []A{def}
		},
		modify: o.modify,
	}
}

func (o Optic[S, A]) collectAll(s S) []A {
	if o.collect == nil {
		return nil
	}

	return o.collect(s)
}

func (o Optic[S, A]) modifyAll(s S, fn func(A) (A, error)) (S, error) {
	if o.modify == nil {
		return s, nil
	}

	return o.modify(s, fn)
}
