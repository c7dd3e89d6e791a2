package repository

import (
	"context"
	"time"
)

// StoreObserver receives the latency and outcome of every store operation.
type StoreObserver interface {
	ObserveStore(op string, duration time.Duration, err error)
}

// InstrumentedStore reports each call of the wrapped store to an observer.
type InstrumentedStore struct {
	next     KeyValueStore
	observer StoreObserver
}

// NewInstrumentedStore wraps next. A nil observer returns next unchanged.
func NewInstrumentedStore(next KeyValueStore, observer StoreObserver) KeyValueStore {
	if observer == nil {
		return next
	}
	return &InstrumentedStore{next: next, observer: observer}
}

// Get implements KeyValueStore.
func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := s.next.Get(ctx, key)
	s.observer.ObserveStore("get", time.Since(start), err)
	return value, err
}

// Set implements KeyValueStore.
func (s *InstrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observer.ObserveStore("set", time.Since(start), err)
	return err
}

// Delete implements KeyValueStore.
func (s *InstrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	s.observer.ObserveStore("delete", time.Since(start), err)
	return err
}
