package repository

import (
	"context"
	"strings"
	"sync"

	appErrors "github.com/matheusrsantos97-lgtm/VetFlow/pkg/errors"
)

// KeyValueStore is the persistence collaborator for JSON blobs. Get returns
// appErrors.ErrKeyNotFound for absent keys; Delete of an absent key is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// NamespacedStore prefixes every key with "{prefix}:".
type NamespacedStore struct {
	prefix string
	next   KeyValueStore
}

// NewNamespacedStore wraps next. An empty prefix leaves keys untouched.
func NewNamespacedStore(prefix string, next KeyValueStore) *NamespacedStore {
	return &NamespacedStore{prefix: strings.TrimSuffix(prefix, ":"), next: next}
}

func (s *NamespacedStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

// Get implements KeyValueStore.
func (s *NamespacedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.next.Get(ctx, s.key(key))
}

// Set implements KeyValueStore.
func (s *NamespacedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.next.Set(ctx, s.key(key), value)
}

// Delete implements KeyValueStore.
func (s *NamespacedStore) Delete(ctx context.Context, key string) error {
	return s.next.Delete(ctx, s.key(key))
}

// MemoryStore keeps values in process memory. Values are copied on the way in and out.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

// Get implements KeyValueStore.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	if !ok {
		return nil, appErrors.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Set implements KeyValueStore.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements KeyValueStore.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
