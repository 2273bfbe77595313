package provider

import (
	"context"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/cache"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// Cached wraps any FlightProvider with read-through result caching.
// Only successful searches are stored; failures always pass through so a
// transient outage never poisons the cache.
type Cached struct {
	inner domain.FlightProvider
	cache domain.ResultCache
	log   *logger.Logger
}

// NewCached wraps inner with caching backed by c.
func NewCached(inner domain.FlightProvider, c domain.ResultCache, log *logger.Logger) *Cached {
	if log == nil {
		log = logger.Nop()
	}
	return &Cached{
		inner: inner,
		cache: c,
		log:   log.WithContext("component", "cached_provider").WithProvider(inner.Name()),
	}
}

var _ domain.FlightProvider = (*Cached)(nil)

// Name returns the wrapped provider's name so cache keys and registry
// entries stay stable regardless of wrapping.
func (c *Cached) Name() string { return c.inner.Name() }

// Search serves cached results when fresh, otherwise delegates and stores
// the outcome on success.
func (c *Cached) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Flight, error) {
	key := cache.Key(criteria, c.inner.Name())

	if flights, ok := c.cache.Get(key); ok {
		c.log.Info().
			Str("key", key).
			Int("flight_count", len(flights)).
			Msg("cache_hit")
		return flights, nil
	}
	c.log.Debug().Str("key", key).Msg("cache_miss")

	flights, err := c.inner.Search(ctx, criteria)
	if err != nil {
		c.log.Debug().
			Str("key", key).
			Err(err).
			Msg("cache_skip_error")
		return nil, err
	}

	c.cache.Set(key, flights)
	c.log.Info().
		Str("key", key).
		Int("flight_count", len(flights)).
		Msg("cache_stored")
	return flights, nil
}

// IsAvailable delegates to the wrapped provider.
func (c *Cached) IsAvailable() bool { return c.inner.IsAvailable() }
