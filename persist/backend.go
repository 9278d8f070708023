package persist

import (
	"context"
	"slices"
	"sync"
)

// Backend stores encoded values by key.
type Backend interface {
	// Load returns the stored bytes and whether the key exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save creates or replaces the value of key.
	Save(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// MemoryBackend is a Backend that keeps values in memory.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Load implements Backend.
func (b *MemoryBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.values[key]

	return slices.Clone(value), ok, nil
}

// Save implements Backend.
func (b *MemoryBackend) Save(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.values[key] = slices.Clone(value)

	return nil
}

// Delete implements Backend.
func (b *MemoryBackend) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.values, key)

	return nil
}

var _ Backend = (*MemoryBackend)(nil)
