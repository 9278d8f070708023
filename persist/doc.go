// Package persist provides atoms whose value lives in a storage backend.
//
// A Cell loads its value lazily on the first read in each Store and keeps it
// cached there. While the load is in flight the atom reads as a pending
// value, which makes a Cell the natural asynchronous base for focused atoms:
//
//	cell, err := persist.NewCell(ctx, backend, "settings", Settings{})
//	theme, err := focus.Lens(cell.Atom(), themeOptic)
//
//	atom.Write(ctx, store, theme, atom.Replace("dark")).Await(ctx)
//
// Every write resolves the update against the current value, saves the
// encoded result, and only then publishes it to the Store's subscribers. The
// write's Value settles once the save is done. Concurrent writes to the same
// cell are last-writer-wins.
//
// Values are encoded as JSON. Backends only see opaque bytes, see Backend.
package persist
