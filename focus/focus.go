package focus

import (
	"github.com/AntonStoeckl/focused-atoms-go/atom"
	"github.com/AntonStoeckl/focused-atoms-go/optic"
)

// Base is an atom that can be focused: any atom written with Update of its own value type.
type Base[S any] = atom.Atom[S, atom.Update[S]]

// Lens focuses base through a lens. describe receives the identity lens on the
// root and must return an optic of KindLens.
func Lens[S, A any](base *Base[S], describe func(root optic.Optic[S, S]) optic.Optic[S, A], options ...Option) (*Base[A], error) {
	o, c, err := prepare(base, describe, options, optic.KindLens)
	if err != nil {
		return nil, err
	}

	read := func(root S) (A, error) {
		return optic.Get(o, root)
	}

	produce := func(root S, u atom.Update[A]) atom.Value[S] {
		current, err := optic.Get(o, root)
		if err != nil {
			return atom.Rejected[S](err)
		}

		return atom.Then(u.Apply(current), func(next A) (S, error) {
			return optic.Set(o, root, next), nil
		})
	}

	return bridge(base, read, produce, c.label), nil
}

// Optional focuses base through a lens or an optional.
// A missing focus reads as None. Writing None, or writing while the focus is missing, leaves the base unchanged.
func Optional[S, A any](base *Base[S], describe func(root optic.Optic[S, S]) optic.Optic[S, A], options ...Option) (*Base[optic.Option[A]], error) {
	o, c, err := prepare(base, describe, options, optic.KindOptional)
	if err != nil {
		return nil, err
	}

	read := func(root S) (optic.Option[A], error) {
		return optic.Preview(o, root), nil
	}

	produce := func(root S, u atom.Update[optic.Option[A]]) atom.Value[S] {
		current := optic.Preview(o, root)

		return atom.Then(u.Apply(current), func(next optic.Option[A]) (S, error) {
			v, ok := next.Get()
			if !ok {
				return root, nil
			}

			return optic.Set(o, root, v), nil
		})
	}

	return bridge(base, read, produce, c.label), nil
}

// Traversal focuses base through an optic of any kind and reads all foci in order.
// A literal write replaces every focus; an updater is applied to each focus independently.
// If the updater fails for any focus, nothing is written.
func Traversal[S, A any](base *Base[S], describe func(root optic.Optic[S, S]) optic.Optic[S, A], options ...Option) (*atom.Atom[[]A, atom.Update[A]], error) {
	o, c, err := prepare(base, describe, options, optic.KindTraversal)
	if err != nil {
		return nil, err
	}

	read := func(root S) ([]A, error) {
		return optic.Collect(o, root), nil
	}

	produce := func(root S, u atom.Update[A]) atom.Value[S] {
		if !u.IsFunc() {
			return atom.Then(u.Literal(), func(next A) (S, error) {
				return optic.Set(o, root, next), nil
			})
		}

		foci := optic.Targets(o, root)
		next := make([]A, len(foci))

		for i, current := range foci {
			updated, err := u.Apply(current).Get()
			if err != nil {
				return atom.Rejected[S](err)
			}

			next[i] = updated
		}

		updatedRoot, err := optic.SetAll(o, root, next)
		if err != nil {
			return atom.Rejected[S](err)
		}

		return atom.Resolved(updatedRoot)
	}

	return bridge(base, read, produce, c.label), nil
}

func prepare[S, A any](base *Base[S], describe func(root optic.Optic[S, S]) optic.Optic[S, A], options []Option, widest optic.Kind) (optic.Optic[S, A], config, error) {
	if base == nil {
		return optic.Optic[S, A]{}, config{}, ErrNilBaseAtom
	}

	c, err := configure(base.Label(), options)
	if err != nil {
		return optic.Optic[S, A]{}, config{}, err
	}

	o := describe(optic.For[S]())
	if o.Kind() > widest {
		return optic.Optic[S, A]{}, config{}, ErrOpticKindMismatch
	}

	return o, c, nil
}

// bridge derives the focused atom.
//
// read maps a resolved root to the focused value. produce maps a resolved root
// and an update to the next root. Both are composed onto the base value, so a
// pending base value yields a pending read and a deferred write.
func bridge[S, V, X any](
	base *Base[S],
	read func(S) (V, error),
	produce func(S, atom.Update[X]) atom.Value[S],
	label string,
) *atom.Atom[V, atom.Update[X]] {
	return atom.Derive(
		func(g *atom.Getter) atom.Value[V] {
			return atom.Then(atom.Get(g, base), read)
		},
		func(g *atom.Getter, s *atom.Setter, u atom.Update[X]) atom.Value[struct{}] {
			current := atom.Get(g, base)

			// Updaters over a synchronous base are forwarded as updaters and retried with it.
			if u.IsFunc() && !current.IsAsync() {
				if _, err := current.Get(); err != nil {
					return atom.Rejected[struct{}](err)
				}

				return atom.Set(s, base, atom.TryModify(func(root S) (S, error) {
					return produce(root, u).Get()
				}))
			}

			next := atom.Bind(current, func(root S) atom.Value[S] {
				return produce(root, u)
			})

			if !next.IsAsync() {
				if _, err := next.Get(); err != nil {
					return atom.Rejected[struct{}](err)
				}
			}

			return atom.Set(s, base, atom.ReplaceWith(next))
		},
		atom.WithLabel(label),
	)
}
