// Package focus derives read/write atoms from a base atom and an optic.
//
// A focused atom holds no state of its own. Every read re-derives the focused
// value from the base atom's current value, and every write is translated into
// exactly one write of a new, immutably updated root to the base atom.
//
// The read shape follows the optic's kind:
//   - Lens: reads A, writes Update[A]
//   - Optional: reads optic.Option[A], writes Update[optic.Option[A]]; missing foci read as None
//     and writes through them are no-ops
//   - Traversal: reads []A, writes Update[A]; an updater is applied to every matched element
//
// If the base atom's value is pending, the focused read is pending on the same
// future and the write is deferred until the base value resolves. The base atom
// receives the pending next root and settles the write once its own effect is done.
//
// Focused lens and optional atoms are themselves valid base atoms, so focusing
// can be chained:
//
//	big := atom.New(Big{A: Inner{B: 0}})
//	a, _ := focus.Lens(big, func(o optic.Optic[Big, Big]) optic.Optic[Big, Inner] {
//		return optic.Prop(o, func(b Big) Inner { return b.A }, func(b Big, a Inner) Big { b.A = a; return b })
//	})
//	b, _ := focus.Lens(a, func(o optic.Optic[Inner, Inner]) optic.Optic[Inner, int] {
//		return optic.Prop(o, func(i Inner) int { return i.B }, func(i Inner, v int) Inner { i.B = v; return i })
//	})
//
//	atom.Write(ctx, store, b, atom.Modify(func(v int) int { return v + 3 }))
//
// Errors are never translated: a failing updater or a failing base atom reaches
// the writer unchanged, and a failing updater aborts before the base atom is written.
package focus
