// Package optic provides composable, immutable accessors ("optics") into nested values.
//
// An Optic[S, A] addresses zero, one or many values of type A inside a root of
// type S. It is a tagged variant over three kinds:
//   - KindLens: exactly one focus, always present
//   - KindOptional: zero or one focus
//   - KindTraversal: zero or more foci, in iteration order
//
// Composing two optics yields the less specific of their kinds, so a lens
// composed with an optional is an optional and anything composed with a
// traversal is a traversal.
//
// Optics are described starting from For, the identity lens on the root type:
//
//	type Item struct{ Qty *int }
//	type Order struct{ Items []Item }
//
//	items := optic.Prop(optic.For[Order](),
//		func(o Order) []Item { return o.Items },
//		func(o Order, items []Item) Order { o.Items = items; return o })
//
//	quantities := optic.Deref(optic.Prop(optic.Elems(items),
//		func(i Item) *int { return i.Qty },
//		func(i Item, q *int) Item { i.Qty = q; return i }))
//
//	optic.Collect(quantities, order)                 // all present quantities, in order
//	next := optic.Over(quantities, order, func(q int) int { return q + 1 })
//
// Writes never mutate their input: slices and maps on the path are cloned and
// pointers are re-allocated. Writes through a missing focus leave the root unchanged.
package optic
