package optic

// Get reads the single focus of a lens. Other kinds return ErrNotALens.
func Get[S, A any](o Optic[S, A], s S) (A, error) {
	foci := o.collectAll(s)
	if o.kind != KindLens || len(foci) != 1 {
		var zero A
		return zero, ErrNotALens
	}

	return foci[0], nil
}

// Preview reads the first focus, if any.
func Preview[S, A any](o Optic[S, A], s S) Option[A] {
	foci := o.collectAll(s)
	if len(foci) == 0 {
		return None[A]()
	}

	return Some(foci[0])
}

// Collect reads all foci in iteration order. It never returns nil.
func Collect[S, A any](o Optic[S, A], s S) []A {
	foci := o.collectAll(s)
	if foci == nil {
		return []A{}
	}

	return foci
}

// Set replaces every focus with v.
func Set[S, A any](o Optic[S, A], s S, v A) S {
	next, _ := o.modifyAll(s, func(A) (A, error) { return v, nil })
	return next
}

// Over replaces every focus with fn applied to it.
func Over[S, A any](o Optic[S, A], s S, fn func(A) A) S {
	next, _ := o.modifyAll(s, func(a A) (A, error) { return fn(a), nil })
	return next
}

// Modify replaces every focus with fn applied to it.
// The first error aborts the whole write: s is returned unchanged together with the error.
func Modify[S, A any](o Optic[S, A], s S, fn func(A) (A, error)) (S, error) {
	next, err := o.modifyAll(s, fn)
	if err != nil {
		return s, err
	}

	return next, nil
}

// Targets lists the foci a write visits, in iteration order.
// It equals Collect except for defaults read through ValueOr, which are never written.
func Targets[S, A any](o Optic[S, A], s S) []A {
	foci := []A{}

	_, _ = o.modifyAll(s, func(a A) (A, error) {
		foci = append(foci, a)
		return a, nil
	})

	return foci
}

// SetAll replaces the foci a write visits, in iteration order, with values.
// values must have exactly one entry per such focus (see Targets).
func SetAll[S, A any](o Optic[S, A], s S, values []A) (S, error) {
	if len(Targets(o, s)) != len(values) {
		return s, ErrFocusCountMismatch
	}

	i := 0

	return o.modifyAll(s, func(A) (A, error) {
		next := values[i]
		i++

		return next, nil
	})
}
