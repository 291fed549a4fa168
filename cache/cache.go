package cache

import "time"

//go:generate mockgen -destination=mocks/cache.go . Cache

// LoaderFunc loads the value for a key that is missing from the cache
type LoaderFunc func() ([]byte, error)

// Cache is a TTL cache for raw payloads keyed by string (request URLs
// in practice). Expiry is checked lazily on access; there is no manual
// invalidation.
type Cache interface {
	// GetOrLoad returns the cached value for key, or calls loader and
	// caches the result for ttl. A ttl of 0 uses the cache default.
	GetOrLoad(key string, loader LoaderFunc, ttl time.Duration) ([]byte, error)

	// Get returns the cached value for key if present and unexpired
	Get(key string) ([]byte, bool)

	// Set stores a value for key with the given ttl
	Set(key string, data []byte, ttl time.Duration)
}
