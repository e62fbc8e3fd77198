package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store keeps values in process memory with a sliding expiration
type Store[T any] struct {
	items    *cache.Cache
	notFound error
}

// NewStore creates a store. Get returns notFound for missing or expired keys.
func NewStore[T any](ttl, cleanupInterval time.Duration, notFound error) *Store[T] {
	return &Store[T]{
		items:    cache.New(ttl, cleanupInterval),
		notFound: notFound,
	}
}

// Save inserts or replaces a value and restarts its expiration
func (s *Store[T]) Save(_ context.Context, id string, v T) error {
	s.items.SetDefault(id, v)
	return nil
}

func (s *Store[T]) Get(_ context.Context, id string) (T, error) {
	v, ok := s.items.Get(id)
	if !ok {
		var zero T
		return zero, s.notFound
	}
	return v.(T), nil
}

// Delete is a no-op for unknown ids
func (s *Store[T]) Delete(_ context.Context, id string) error {
	s.items.Delete(id)
	return nil
}

func (s *Store[T]) Count() int {
	return s.items.ItemCount()
}

// OnEvicted registers a callback for expired and deleted values
func (s *Store[T]) OnEvicted(fn func(id string, v T)) {
	s.items.OnEvicted(func(id string, v any) {
		fn(id, v.(T))
	})
}
