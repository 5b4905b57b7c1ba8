package storage

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/reflect/internal/common"
)

// MemoryStore is a Store kept in process memory. It is safe for concurrent use
// and is used by tests and by the "memory" storage mode.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return common.CloneBytes(s.data[key]), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append(make([]byte, 0, len(value)), value...)
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Update stages writes in an overlay and applies them under a single lock
// once fn succeeds.
func (s *MemoryStore) Update(ctx context.Context, fn func(ctx context.Context, tx KV) error) error {
	tx := &memoryTx{base: s, writes: make(map[string][]byte)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range tx.writes {
		if v == nil {
			delete(s.data, k)
			continue
		}
		s.data[k] = v
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// memoryTx records writes; a nil value marks a removal.
type memoryTx struct {
	base   *MemoryStore
	writes map[string][]byte
}

func (t *memoryTx) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := t.writes[key]; ok {
		return common.CloneBytes(v), nil
	}
	return t.base.Get(ctx, key)
}

func (t *memoryTx) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.writes[key] = append(make([]byte, 0, len(value)), value...)
	return nil
}

func (t *memoryTx) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.writes[key] = nil
	return nil
}
