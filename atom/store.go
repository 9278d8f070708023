package atom

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the values of primitive atoms, the dependency graph between
// atoms and the subscriptions. It is safe for concurrent use.
//
// Read and write functions are always called without the Store's lock held,
// so they may freely read and write other atoms.
type Store struct {
	id               uuid.UUID
	mu               sync.Mutex
	values           map[uint64]primitiveEntry
	dependencies     map[uint64]map[uint64]struct{} // reader -> atoms it read
	dependents       map[uint64]map[uint64]struct{} // atom -> readers
	subscriptions    map[uint64][]*subscription
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

type primitiveEntry struct {
	value   any
	version uint64
}

type subscription struct {
	label    string
	listener func()
}

// NewStore creates an empty Store with optional configuration.
func NewStore(options ...StoreOption) (*Store, error) {
	st := &Store{
		id:            uuid.New(),
		values:        make(map[uint64]primitiveEntry),
		dependencies:  make(map[uint64]map[uint64]struct{}),
		dependents:    make(map[uint64]map[uint64]struct{}),
		subscriptions: make(map[uint64][]*subscription),
	}

	for _, option := range options {
		if err := option(st); err != nil {
			return nil, err
		}
	}

	return st, nil
}

var defaultStore = sync.OnceValue(func() *Store {
	st, _ := NewStore()
	return st
})

// DefaultStore returns a process-wide Store without observability configured.
func DefaultStore() *Store {
	return defaultStore()
}

// ID returns the Store's unique id, which is attached to its logs and metrics.
func (st *Store) ID() uuid.UUID {
	return st.id
}

// Read returns the current value of a.
// For an atom whose value is computed asynchronously the returned Value is pending.
func Read[V, A any](ctx context.Context, st *Store, a *Atom[V, A]) Value[V] {
	if st == nil {
		return Rejected[V](ErrNilStore)
	}

	start := time.Now()
	ctx, span := st.startTraceSpan(ctx, spanNameRead, a.label)

	v := evaluate(ctx, st, a)
	v.whenSettled(func(_ V, err error) {
		st.observe(ctx, span, operationRead, a.label, start, err)
	})

	return v
}

// Write hands arg to the write function of a.
// The returned Value settles once the write's effect completed, which is later
// than the call's return if any part of the write is asynchronous.
func Write[V, A any](ctx context.Context, st *Store, a *Atom[V, A], arg A) Value[struct{}] {
	if st == nil {
		return Rejected[struct{}](ErrNilStore)
	}

	start := time.Now()
	ctx, span := st.startTraceSpan(ctx, spanNameWrite, a.label)

	done := Set(&Setter{ctx: ctx, store: st}, a, arg)
	done.whenSettled(func(_ struct{}, err error) {
		st.observe(ctx, span, operationWrite, a.label, start, err)
	})

	return done
}

// Subscribe mounts a and calls listener after every change of a primitive atom
// that a depends on, directly or transitively.
// Dependencies are re-recorded whenever a is read, so listeners should read a.
func Subscribe[V, A any](st *Store, a *Atom[V, A], listener func()) (unsubscribe func()) {
	if st == nil {
		return func() {}
	}

	evaluate(context.Background(), st, a)

	sub := &subscription{label: a.label, listener: listener}

	st.mu.Lock()
	st.subscriptions[a.id] = append(st.subscriptions[a.id], sub)
	st.mu.Unlock()

	st.logOperation(logMsgSubscribed, logAttrAtom, a.label)

	var once sync.Once

	return func() {
		once.Do(func() {
			st.mu.Lock()
			st.subscriptions[a.id] = slices.DeleteFunc(st.subscriptions[a.id], func(s *subscription) bool {
				return s == sub
			})
			if len(st.subscriptions[a.id]) == 0 {
				delete(st.subscriptions, a.id)
			}
			st.mu.Unlock()

			st.logOperation(logMsgUnsubscribed, logAttrAtom, a.label)
		})
	}
}

// storePrimitive replaces the value of a primitive atom and notifies subscribers.
// With checkVersion set it only stores if the current version is expectedVersion.
func (st *Store) storePrimitive(id uint64, label string, value any, expectedVersion uint64, checkVersion bool) bool {
	st.mu.Lock()

	entry := st.values[id]
	if checkVersion && entry.version != expectedVersion {
		st.mu.Unlock()
		return false
	}

	st.values[id] = primitiveEntry{value: value, version: entry.version + 1}
	affected := st.affectedSubscriptions(id)

	st.mu.Unlock()

	st.notify(label, affected)

	return true
}

// affectedSubscriptions collects the subscriptions of id and of all its transitive dependents.
// The caller must hold st.mu.
func (st *Store) affectedSubscriptions(id uint64) []*subscription {
	affected := make([]*subscription, 0)
	visited := map[uint64]struct{}{id: {}}
	queue := []uint64{id}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		affected = append(affected, st.subscriptions[current]...)

		readers := make([]uint64, 0, len(st.dependents[current]))
		for reader := range st.dependents[current] {
			readers = append(readers, reader)
		}
		slices.Sort(readers)

		for _, reader := range readers {
			if _, seen := visited[reader]; seen {
				continue
			}

			visited[reader] = struct{}{}
			queue = append(queue, reader)
		}
	}

	return affected
}

// notify calls the listeners outside the lock. A panicking listener is logged and skipped.
func (st *Store) notify(changedLabel string, affected []*subscription) {
	for _, sub := range affected {
		st.callListener(sub)
	}

	if len(affected) > 0 {
		st.logOperation(logMsgListenersNotified, logAttrAtom, changedLabel, logAttrListenerCount, len(affected))
		st.recordValueMetrics(metricListenersNotified, float64(len(affected)), changedLabel)
	}
}

func (st *Store) callListener(sub *subscription) {
	defer func() {
		if recovered := recover(); recovered != nil {
			st.logWarn(logMsgListenerPanicked, logAttrAtom, sub.label, logAttrPanic, recovered)
		}
	}()

	sub.listener()
}

func (st *Store) track(reader, dependency uint64) {
	if reader == 0 || reader == dependency {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.dependencies[reader] == nil {
		st.dependencies[reader] = make(map[uint64]struct{})
	}
	st.dependencies[reader][dependency] = struct{}{}

	if st.dependents[dependency] == nil {
		st.dependents[dependency] = make(map[uint64]struct{})
	}
	st.dependents[dependency][reader] = struct{}{}
}

func (st *Store) replaceDependencies(reader uint64, deps map[uint64]struct{}) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for dependency := range st.dependencies[reader] {
		if _, kept := deps[dependency]; kept {
			continue
		}

		delete(st.dependents[dependency], reader)
		if len(st.dependents[dependency]) == 0 {
			delete(st.dependents, dependency)
		}
	}

	delete(st.dependencies, reader)
	delete(deps, reader)

	if len(deps) == 0 {
		return
	}

	st.dependencies[reader] = deps

	for dependency := range deps {
		if st.dependents[dependency] == nil {
			st.dependents[dependency] = make(map[uint64]struct{})
		}
		st.dependents[dependency][reader] = struct{}{}
	}
}
