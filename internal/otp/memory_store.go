package otp

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps pending verifications in process. Suitable for a
// single instance or for tests.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (s *MemoryStore) Save(_ context.Context, p Pending, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Set(p.ID, p, ttl)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Pending, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return Pending{}, ErrNotFound
	}
	return v.(Pending), nil
}

func (s *MemoryStore) Take(_ context.Context, id string) (Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.cache.Get(id)
	if !ok {
		return Pending{}, ErrNotFound
	}
	s.cache.Delete(id)

	return v.(Pending), nil
}

func (s *MemoryStore) RecordFailure(_ context.Context, id string, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exp, ok := s.cache.GetWithExpiration(id)
	if !ok {
		return 0, ErrNotFound
	}

	p := v.(Pending)
	p.Attempts++
	left := limit - p.Attempts
	if left <= 0 {
		s.cache.Delete(id)
		return 0, nil
	}

	ttl := cache.NoExpiration
	if !exp.IsZero() {
		if ttl = time.Until(exp); ttl <= 0 {
			s.cache.Delete(id)
			return 0, ErrNotFound
		}
	}
	s.cache.Set(id, p, ttl)

	return left, nil
}
