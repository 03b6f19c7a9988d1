package session

import (
	"context"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps results in process memory with a sliding expiry.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewMemoryStore returns a MemoryStore whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	ttl = defaultTTL(ttl)
	return &MemoryStore{cache: cache.New(ttl, 2*ttl), ttl: ttl}
}

// Load returns the result saved for id.
func (s *MemoryStore) Load(_ context.Context, id string) (mortgage.RepaymentResult, error) {
	v, ok := s.cache.Get(key(id))
	if !ok {
		return mortgage.RepaymentResult{}, ErrNotFound
	}
	result := v.(mortgage.RepaymentResult)
	s.cache.Set(key(id), result, s.ttl)
	return result, nil
}

// Save stores result for id, replacing any earlier result.
func (s *MemoryStore) Save(_ context.Context, id string, result mortgage.RepaymentResult) error {
	s.cache.Set(key(id), result, s.ttl)
	return nil
}

// Delete removes the result for id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(key(id))
	return nil
}

// Close releases nothing; go-cache's janitor stops once the cache is collected.
func (s *MemoryStore) Close() error {
	return nil
}
