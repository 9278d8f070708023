package atom

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// ReadFunc computes the value of a derived atom. Atoms read through g become dependencies.
type ReadFunc[V any] func(g *Getter) Value[V]

// WriteFunc handles a write to a derived atom, usually by setting other atoms through s.
type WriteFunc[A any] func(g *Getter, s *Setter, arg A) Value[struct{}]

// Atom describes a cell that reads as V and is written with arguments of type A.
// An Atom holds no state; its value lives in a Store.
type Atom[V, A any] struct {
	id        uint64
	label     string
	primitive bool
	initial   V
	read      ReadFunc[V]
	write     WriteFunc[A]
}

// AtomOption configures an Atom at construction.
type AtomOption func(*atomMeta)

type atomMeta struct {
	label string
}

// WithLabel sets the debug label used in logs, metrics and spans.
func WithLabel(label string) AtomOption {
	return func(m *atomMeta) {
		m.label = label
	}
}

var lastAtomID atomic.Uint64

func newMeta(options []AtomOption) (uint64, string) {
	id := lastAtomID.Add(1)
	meta := atomMeta{}

	for _, option := range options {
		option(&meta)
	}

	if meta.label == "" {
		meta.label = fmt.Sprintf("atom%d", id)
	}

	return id, meta.label
}

// New creates a primitive atom holding initial until it is written.
func New[T any](initial T, options ...AtomOption) *Atom[T, Update[T]] {
	id, label := newMeta(options)
	a := &Atom[T, Update[T]]{
		id:        id,
		label:     label,
		primitive: true,
		initial:   initial,
	}

	a.read = func(g *Getter) Value[T] {
		v, _ := loadPrimitive(g.store, a)
		return Resolved(v)
	}

	a.write = func(_ *Getter, s *Setter, u Update[T]) Value[struct{}] {
		return writePrimitive(s.store, a, u)
	}

	return a
}

// Derive creates a derived atom from a read and a write function.
// A nil write makes the atom read-only.
func Derive[V, A any](read ReadFunc[V], write WriteFunc[A], options ...AtomOption) *Atom[V, A] {
	id, label := newMeta(options)

	return &Atom[V, A]{
		id:    id,
		label: label,
		read:  read,
		write: write,
	}
}

// Computed creates a read-only derived atom.
func Computed[V any](read ReadFunc[V], options ...AtomOption) *Atom[V, struct{}] {
	return Derive[V, struct{}](read, nil, options...)
}

// Label returns the debug label.
func (a *Atom[V, A]) Label() string {
	return a.label
}

// String implements fmt.Stringer.
func (a *Atom[V, A]) String() string {
	return a.label
}

// IsPrimitive reports whether the atom holds its value directly.
func (a *Atom[V, A]) IsPrimitive() bool {
	return a.primitive
}

// Getter is handed to read and write functions to read other atoms.
type Getter struct {
	ctx    context.Context
	store  *Store
	reader uint64

	mu         sync.Mutex
	collecting bool
	deps       map[uint64]struct{}
}

// Context returns the context of the Read or Write that triggered this evaluation.
func (g *Getter) Context() context.Context {
	return g.ctx
}

// Store returns the Store the evaluation runs in.
func (g *Getter) Store() *Store {
	return g.store
}

// Setter is handed to write functions to write other atoms.
type Setter struct {
	ctx   context.Context
	store *Store
}

// Context returns the context of the Write that triggered this write function.
func (s *Setter) Context() context.Context {
	return s.ctx
}

// Get reads a inside a read or write function.
// Inside a read function a becomes a dependency of the atom being read.
func Get[V, A any](g *Getter, a *Atom[V, A]) Value[V] {
	g.record(a.id)

	return evaluate(g.ctx, g.store, a)
}

// record notes dependency for the reader. While the read function runs the
// dependencies are collected; calls made later by pending continuations add edges directly.
func (g *Getter) record(dependency uint64) {
	g.mu.Lock()
	if g.collecting {
		g.deps[dependency] = struct{}{}
		g.mu.Unlock()

		return
	}
	g.mu.Unlock()

	g.store.track(g.reader, dependency)
}

// Set writes arg to a inside a write function.
func Set[V, A any](s *Setter, a *Atom[V, A], arg A) Value[struct{}] {
	if a.write == nil {
		return Rejected[struct{}](ErrReadOnlyAtom)
	}

	return a.write(&Getter{ctx: s.ctx, store: s.store}, s, arg)
}

// evaluate runs the read function of a. The dependencies of a derived atom are
// swapped in one step once the read function returned.
func evaluate[V, A any](ctx context.Context, st *Store, a *Atom[V, A]) Value[V] {
	if a.primitive {
		return a.read(&Getter{ctx: ctx, store: st, reader: a.id})
	}

	g := &Getter{ctx: ctx, store: st, reader: a.id, collecting: true, deps: make(map[uint64]struct{})}
	v := a.read(g)

	g.mu.Lock()
	g.collecting = false
	st.replaceDependencies(a.id, g.deps)
	g.mu.Unlock()

	return v
}

// loadPrimitive returns the current value of a together with its version.
func loadPrimitive[T any](st *Store, a *Atom[T, Update[T]]) (T, uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()

	entry, ok := st.values[a.id]
	if !ok {
		return a.initial, 0
	}

	return entry.value.(T), entry.version
}

// writePrimitive stores the outcome of u.
// Literal updates are stored once they settle. Updater functions run against
// the latest value and are retried if a concurrent write got in between.
func writePrimitive[T any](st *Store, a *Atom[T, Update[T]], u Update[T]) Value[struct{}] {
	if !u.IsFunc() {
		return Then(u.Literal(), func(next T) (struct{}, error) {
			st.storePrimitive(a.id, a.label, next, 0, false)
			return struct{}{}, nil
		})
	}

	for {
		prev, version := loadPrimitive(st, a)

		next, err := u.Apply(prev).Get()
		if err != nil {
			return Rejected[struct{}](err)
		}

		if st.storePrimitive(a.id, a.label, next, version, true) {
			return Resolved(struct{}{})
		}
	}
}
