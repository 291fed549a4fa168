package cache

import (
	"context"
	"fmt"
	"time"
)

// Service implements Cache on top of go-cache
type Service struct {
	goCache *GoCache
}

// NewService creates a new cache service. Items expire after
// defaultExpiration; expired items are swept every cleanupInterval.
func NewService(defaultExpiration, cleanupInterval time.Duration) *Service {
	return &Service{
		goCache: NewGoCache(defaultExpiration, cleanupInterval),
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.goCache != nil {
		s.goCache.Clear()
	}
}

// GetOrLoad returns the cached value for key or loads and caches it
func (s *Service) GetOrLoad(key string, loader LoaderFunc, ttl time.Duration) ([]byte, error) {
	if data, found := s.goCache.Get(key); found {
		return data, nil
	}

	data, err := loader()
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	s.goCache.Set(key, data, ttl)
	return data, nil
}

// Get returns the cached value for key if present and unexpired
func (s *Service) Get(key string) ([]byte, bool) {
	return s.goCache.Get(key)
}

// Set stores a value for key with the given ttl
func (s *Service) Set(key string, data []byte, ttl time.Duration) {
	s.goCache.Set(key, data, ttl)
}

// ItemCount returns the number of items in the cache
func (s *Service) ItemCount() int {
	return s.goCache.ItemCount()
}
