package domain

import (
	"context"
	"time"
)

// FlightProvider is implemented by every flight search back-end. Search
// blocks until results are available or ctx is done, and returns normalized
// flights. Implementations report transient failures with the error types in
// this package so the aggregation layer can classify them.
type FlightProvider interface {
	// Name returns the stable provider identifier, e.g. "skyscanner".
	Name() string

	// Search runs a flight search and returns normalized results.
	Search(ctx context.Context, criteria SearchCriteria) ([]Flight, error)

	// IsAvailable reports whether the provider is configured and enabled.
	IsAvailable() bool
}

// ResultCache stores normalized search results keyed by canonical search
// signature. Implementations are safe for concurrent use.
type ResultCache interface {
	Get(key string) ([]Flight, bool)

	// Set stores flights under key. An optional ttl overrides the cache's
	// default; a zero ttl stores an immediately-expired entry.
	Set(key string, flights []Flight, ttl ...time.Duration)

	// Exists reports whether key holds an unexpired entry without touching
	// the hit/miss counters.
	Exists(key string) bool

	// Delete removes key and reports whether an entry was removed.
	Delete(key string) bool

	Clear() int
	Stats() CacheStats
}

// CacheStats is a point-in-time snapshot of cache effectiveness counters.
type CacheStats struct {
	Size    int     `json:"size"`
	MaxSize int     `json:"max_size"`
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}
