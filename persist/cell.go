package persist

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/singleflight"

	"github.com/AntonStoeckl/focused-atoms-go/atom"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Cell binds an atom to one key of a Backend.
type Cell[T any] struct {
	ctx      context.Context
	backend  Backend
	key      string
	initial  T
	logger   atom.Logger
	loads    singleflight.Group
	revision *atom.Atom[uint64, atom.Update[uint64]]
	a        *atom.Atom[T, atom.Update[T]]
	mu       sync.Mutex
	cached   map[uuid.UUID]atom.Value[T] // store id -> current value
}

// NewCell creates a Cell for key. A key that does not exist in the backend reads as initial.
// ctx bounds the lifetime of the cell's background loads.
func NewCell[T any](ctx context.Context, backend Backend, key string, initial T, options ...Option) (*Cell[T], error) {
	if backend == nil {
		return nil, ErrNilBackend
	}

	if key == "" {
		return nil, ErrEmptyKey
	}

	c := config{label: "persist(" + key + ")"}
	for _, option := range options {
		if err := option(&c); err != nil {
			return nil, err
		}
	}

	cell := &Cell[T]{
		ctx:     ctx,
		backend: backend,
		key:     key,
		initial: initial,
		logger:  c.logger,
		cached:  make(map[uuid.UUID]atom.Value[T]),
	}

	cell.revision = atom.New[uint64](0, atom.WithLabel(c.label+".revision"))
	cell.a = atom.Derive(cell.read, cell.write, atom.WithLabel(c.label))

	return cell, nil
}

// NewAtom is NewCell for callers that only need the atom.
func NewAtom[T any](ctx context.Context, backend Backend, key string, initial T, options ...Option) (*atom.Atom[T, atom.Update[T]], error) {
	cell, err := NewCell(ctx, backend, key, initial, options...)
	if err != nil {
		return nil, err
	}

	return cell.Atom(), nil
}

// Atom returns the atom backed by the cell.
func (c *Cell[T]) Atom() *atom.Atom[T, atom.Update[T]] {
	return c.a
}

// Key returns the backend key.
func (c *Cell[T]) Key() string {
	return c.key
}

// Refresh drops the value cached in st, so the next read loads it again.
func (c *Cell[T]) Refresh(ctx context.Context, st *atom.Store) error {
	c.mu.Lock()
	delete(c.cached, st.ID())
	c.mu.Unlock()

	_, err := atom.Write(ctx, st, c.revision, atom.Modify(increment)).Get()

	return err
}

// Reset deletes the key from the backend and publishes the initial value to st.
func (c *Cell[T]) Reset(ctx context.Context, st *atom.Store) error {
	start := time.Now()

	if err := c.backend.Delete(ctx, c.key); err != nil {
		err = errors.Join(ErrDeletingValueFailed, err)
		c.logError(logMsgDeleteFailed, err)

		return err
	}

	c.logDebug(logMsgDeleted, start)
	c.publish(st, atom.Resolved(c.initial))

	_, err := atom.Write(ctx, st, c.revision, atom.Modify(increment)).Get()

	return err
}

func (c *Cell[T]) read(g *atom.Getter) atom.Value[T] {
	return atom.Bind(atom.Get(g, c.revision), func(uint64) atom.Value[T] {
		return c.current(g.Store())
	})
}

func (c *Cell[T]) write(g *atom.Getter, s *atom.Setter, u atom.Update[T]) atom.Value[struct{}] {
	st := g.Store()

	next := atom.Bind(c.current(st), u.Apply)

	saved := atom.Bind(next, func(v T) atom.Value[T] {
		return atom.Go(func() (T, error) {
			return v, c.save(s.Context(), v)
		})
	})

	return atom.Bind(saved, func(v T) atom.Value[struct{}] {
		c.publish(st, atom.Resolved(v))
		return atom.Set(s, c.revision, atom.Modify(increment))
	})
}

// current returns the value cached for st, starting a load if there is none.
func (c *Cell[T]) current(st *atom.Store) atom.Value[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.cached[st.ID()]; ok {
		return v
	}

	f := atom.NewFuture[T]()
	v := atom.Pending(f)
	c.cached[st.ID()] = v

	go c.load(st.ID(), f)

	return v
}

func (c *Cell[T]) load(storeID uuid.UUID, f *atom.Future[T]) {
	start := time.Now()

	result, err, _ := c.loads.Do(c.key, func() (any, error) {
		return c.fetch()
	})

	if err != nil {
		c.mu.Lock()
		if c.cached[storeID].Future() == f {
			delete(c.cached, storeID)
		}
		c.mu.Unlock()

		c.logError(logMsgLoadFailed, err)
		f.Reject(err)

		return
	}

	c.logDebug(logMsgLoaded, start)
	f.Resolve(result.(T))
}

func (c *Cell[T]) fetch() (T, error) {
	data, ok, err := c.backend.Load(c.ctx, c.key)
	if err != nil {
		return c.initial, errors.Join(ErrLoadingValueFailed, err)
	}

	if !ok {
		return c.initial, nil
	}

	var v T
	if err = json.Unmarshal(data, &v); err != nil {
		return c.initial, errors.Join(ErrDecodingValueFailed, err)
	}

	return v, nil
}

func (c *Cell[T]) save(ctx context.Context, v T) error {
	start := time.Now()

	data, err := json.Marshal(v)
	if err != nil {
		err = errors.Join(ErrEncodingValueFailed, err)
		c.logError(logMsgSaveFailed, err)

		return err
	}

	if err = c.backend.Save(ctx, c.key, data); err != nil {
		err = errors.Join(ErrSavingValueFailed, err)
		c.logError(logMsgSaveFailed, err)

		return err
	}

	c.logDebug(logMsgSaved, start)

	return nil
}

func (c *Cell[T]) publish(st *atom.Store, v atom.Value[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cached[st.ID()] = v
}

func increment(n uint64) uint64 {
	return n + 1
}
