package focusctl

import (
	"context"

	"github.com/AntonStoeckl/focused-atoms-go/atom"
	"github.com/AntonStoeckl/focused-atoms-go/focus"
	"github.com/AntonStoeckl/focused-atoms-go/optic"
	"github.com/AntonStoeckl/focused-atoms-go/persist"
)

// App runs the focusctl operations against one backend and one store.
type App struct {
	backend persist.Backend
	store   *atom.Store
	logger  atom.Logger
}

// NewApp creates an App. logger may be nil.
func NewApp(backend persist.Backend, store *atom.Store, logger atom.Logger) (*App, error) {
	if backend == nil {
		return nil, persist.ErrNilBackend
	}

	if store == nil {
		return nil, atom.ErrNilStore
	}

	return &App{backend: backend, store: store, logger: logger}, nil
}

// Get reads the value at path of the document stored under key.
// For a traversal path the result is the list of all foci.
func (a *App) Get(ctx context.Context, key, path string) (Document, error) {
	target, err := a.focus(ctx, key, path)
	if err != nil {
		return nil, err
	}

	if target.many != nil {
		foci, err := atom.Read(ctx, a.store, target.many).Await(ctx)
		if err != nil {
			return nil, err
		}

		return foci, nil
	}

	focused, err := atom.Read(ctx, a.store, target.one).Await(ctx)
	if err != nil {
		return nil, err
	}

	v, ok := focused.Get()
	if !ok {
		return nil, ErrPathNotFound
	}

	return v, nil
}

// Set replaces the value at path. A traversal path replaces every focus.
func (a *App) Set(ctx context.Context, key, path string, value Document) error {
	target, err := a.focus(ctx, key, path)
	if err != nil {
		return err
	}

	if target.many != nil {
		_, err = atom.Write(ctx, a.store, target.many, atom.Replace(value)).Await(ctx)
		return err
	}

	return a.writeOne(ctx, target.one, func(Document) (Document, error) {
		return value, nil
	})
}

// Inc adds by to the number at path. A traversal path increments every focus,
// and nothing is written if any focus is not a number.
func (a *App) Inc(ctx context.Context, key, path string, by float64) error {
	target, err := a.focus(ctx, key, path)
	if err != nil {
		return err
	}

	add := func(d Document) (Document, error) {
		n, ok := d.(float64)
		if !ok {
			return d, ErrNotANumber
		}

		return n + by, nil
	}

	if target.many != nil {
		_, err = atom.Write(ctx, a.store, target.many, atom.TryModify(add)).Await(ctx)
		return err
	}

	return a.writeOne(ctx, target.one, add)
}

// Delete removes the document stored under key.
func (a *App) Delete(ctx context.Context, key string) error {
	cell, err := a.cell(ctx, key)
	if err != nil {
		return err
	}

	return cell.Reset(ctx, a.store)
}

type target struct {
	one  *focus.Base[optic.Option[Document]]
	many *atom.Atom[[]Document, atom.Update[Document]]
}

func (a *App) focus(ctx context.Context, key, path string) (target, error) {
	o, err := CompilePath(path)
	if err != nil {
		return target{}, err
	}

	cell, err := a.cell(ctx, key)
	if err != nil {
		return target{}, err
	}

	describe := func(optic.Optic[Document, Document]) optic.Optic[Document, Document] {
		return o
	}

	label := focus.WithLabel(key + ":" + path)

	if o.Kind() == optic.KindTraversal {
		many, err := focus.Traversal(cell.Atom(), describe, label)
		return target{many: many}, err
	}

	one, err := focus.Optional(cell.Atom(), describe, label)

	return target{one: one}, err
}

func (a *App) writeOne(ctx context.Context, one *focus.Base[optic.Option[Document]], fn func(Document) (Document, error)) error {
	update := atom.TryModify(func(current optic.Option[Document]) (optic.Option[Document], error) {
		v, ok := current.Get()
		if !ok {
			return current, ErrPathNotFound
		}

		next, err := fn(v)
		if err != nil {
			return current, err
		}

		return optic.Some(next), nil
	})

	_, err := atom.Write(ctx, a.store, one, update).Await(ctx)

	return err
}

func (a *App) cell(ctx context.Context, key string) (*persist.Cell[Document], error) {
	options := []persist.Option{}
	if a.logger != nil {
		options = append(options, persist.WithLogger(a.logger))
	}

	return persist.NewCell[Document](ctx, a.backend, key, nil, options...)
}
