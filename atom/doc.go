// Package atom provides a minimal reactive cell primitive ("atoms") with
// synchronous-or-asynchronous values.
//
// An atom is a description of a cell; its state lives in a Store. Primitive
// atoms hold a value directly, derived atoms compute their value from other
// atoms and may translate writes into writes on other atoms.
//
// Every read and write result is a Value, which is either settled (a value or
// an error) or pending on a Future. Then and Bind compose over both cases with
// the same code path, so callers never special-case asynchronous cells.
//
// Key types:
//   - Atom: a primitive or derived cell description
//   - Store: holds primitive values, the dependency graph and subscriptions
//   - Value / Future: settled-or-pending results
//   - Update: a literal next value or an updater function
//
// Common usage pattern:
//
//	store, _ := atom.NewStore(atom.WithLogger(slog.Default()))
//
//	counter := atom.New(0, atom.WithLabel("counter"))
//	doubled := atom.Computed(func(g *atom.Getter) atom.Value[int] {
//		return atom.Then(atom.Get(g, counter), func(c int) (int, error) { return c * 2, nil })
//	})
//
//	unsubscribe := atom.Subscribe(store, doubled, func() { fmt.Println("changed") })
//	defer unsubscribe()
//
//	_ = atom.Write(ctx, store, counter, atom.Modify(func(c int) int { return c + 1 }))
//	v, err := atom.Read(ctx, store, doubled).Await(ctx)
package atom
