package usecase

import (
	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
)

// ClearResult reports the outcome of a cache clear.
type ClearResult struct {
	EntriesCleared int `json:"entries_cleared"`
	EntriesBefore  int `json:"entries_before"`
}

// CacheUseCase exposes cache inspection and maintenance operations.
type CacheUseCase interface {
	Stats() (domain.CacheStats, error)
	Clear() (*ClearResult, error)
}

type cacheUseCase struct {
	cache domain.ResultCache
	log   *logger.Logger
}

// NewCacheUseCase creates a CacheUseCase over the given cache.
func NewCacheUseCase(cache domain.ResultCache, log *logger.Logger) CacheUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &cacheUseCase{
		cache: cache,
		log:   log.WithContext("use_case", "manage_cache"),
	}
}

// Stats implements CacheUseCase.
func (uc *cacheUseCase) Stats() (domain.CacheStats, error) {
	if uc.cache == nil {
		mgmtErr := domain.NewCacheManagementError("cache is not configured", nil)
		mgmtErr.WithContext("operation", "get_stats")
		return domain.CacheStats{}, mgmtErr
	}

	stats := uc.cache.Stats()
	uc.log.Info().
		Int("size", stats.Size).
		Uint64("hits", stats.Hits).
		Uint64("misses", stats.Misses).
		Float64("hit_rate", stats.HitRate).
		Msg("cache_stats_retrieved")
	return stats, nil
}

// Clear implements CacheUseCase.
func (uc *cacheUseCase) Clear() (*ClearResult, error) {
	if uc.cache == nil {
		mgmtErr := domain.NewCacheManagementError("cache is not configured", nil)
		mgmtErr.WithContext("operation", "clear")
		return nil, mgmtErr
	}

	before := uc.cache.Stats().Size
	cleared := uc.cache.Clear()

	uc.log.Info().
		Int("entries_cleared", cleared).
		Msg("cache_cleared")
	return &ClearResult{
		EntriesCleared: cleared,
		EntriesBefore:  before,
	}, nil
}

var _ CacheUseCase = (*cacheUseCase)(nil)
